package domain

import (
	"context"
	"errors"

	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/stats"
)

type SearchRequest struct {
	Specialty    string
	SubSpecialty string
	State        string
	Practice     string
	Page         int
	Limit        int
}

type SpecialtyStatsRequest struct {
	Specialty       string
	PracticeSetting string
}

type CompensationRequest struct {
	Specialty       string
	State           string
	PracticeSetting string
	Amount          float64
}

type Service interface {
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
	SpecialtyStats(ctx context.Context, req SpecialtyStatsRequest) ([]SpecialtyStats, error)
	StatsBySpecialtyName(ctx context.Context, name string) (NamedSpecialtyStats, error)
	SpecialtyInsights(ctx context.Context, name string) (SpecialtyInsights, error)
	CompensationAnalysis(ctx context.Context, req CompensationRequest) (CompensationAnalysis, error)

	GroupedSummary(ctx context.Context, filter salarydomain.Filter) ([]Summary, error)
	OverallSummary(ctx context.Context, filter salarydomain.Filter) (*Summary, error)
	PercentileBand(ctx context.Context, filter salarydomain.Filter) (*stats.PercentileBand, error)
	AverageHourlyRate(ctx context.Context, filter salarydomain.Filter) (*float64, int64, error)
	TopSatisfactionSpecialties(ctx context.Context) ([]SatisfactionRank, error)
}

var (
	ErrInvalidSpecialty = errors.New("invalid_specialty")
	ErrInvalidAmount    = errors.New("invalid_amount")
)
