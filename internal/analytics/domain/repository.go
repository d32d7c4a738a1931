package domain

import (
	"context"

	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"gorm.io/gorm"
)

// SummaryRow is one raw aggregate row before rounding. Averages are nil when no row contributed.
type SummaryRow struct {
	GroupKey             string
	AvgBaseSalary        *float64
	AvgBonus             *float64
	AvgTotalCompensation *float64
	AvgWorkload          *float64
	ChooseAgainCount     int64
	Total                int64
}

// Sample is the projection used for in-memory medians and per-group averages.
type Sample struct {
	Specialty         string
	State             string
	PracticeSetting   string
	BaseSalary        float64
	Bonus             *float64
	HoursWorked       float64
	SatisfactionLevel salarydomain.Satisfaction
}

type SatisfactionCount struct {
	Specialty         string
	SatisfactionLevel string
	Count             int64
}

type HourlyRate struct {
	AvgRate *float64
	Parsed  int64
}

type Repository interface {
	// Summaries aggregates filter matches; a zero groupBy yields one ungrouped row.
	Summaries(ctx context.Context, db *gorm.DB, filter salarydomain.Filter, groupBy salarydomain.Field) ([]SummaryRow, error)
	BaseSalaries(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]float64, error)
	Samples(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]Sample, error)
	SatisfactionCounts(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]SatisfactionCount, error)
	// HourlyRate averages base/hours over records where both are strictly positive.
	HourlyRate(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) (HourlyRate, error)
}
