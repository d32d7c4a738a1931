package domain

import (
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
	"github.com/smallbiznis/dentalpay/pkg/stats"
)

// Summary is the shared metric set for grouped and overall summaries.
// PracticeSetting is empty for the overall row.
type Summary struct {
	PracticeSetting         string   `json:"practiceSetting,omitempty"`
	AvgBaseSalary           float64  `json:"avgBaseSalary"`
	AvgBonus                *float64 `json:"avgBonus"`
	AvgTotalCompensation    float64  `json:"avgTotalCompensation"`
	AvgWorkload             float64  `json:"avgWorkload"`
	WouldChooseAgainPercent float64  `json:"wouldChooseAgainPercent"`
	SubmissionCount         int64    `json:"submissionCount"`
}

type SatisfactionRank struct {
	Specialty                string  `json:"specialty"`
	AverageSatisfactionLevel float64 `json:"averageSatisfactionLevel"`
	SubmissionCount          int64   `json:"submissionCount"`
}

type SearchResponse struct {
	pagination.PageInfo
	Data                       []salarydomain.SalaryRecord `json:"data"`
	Summary                    []Summary                   `json:"summary"`
	OverallSummary             *Summary                    `json:"overallSummary"`
	TopSatisfactionSpecialties []SatisfactionRank          `json:"topSatisfactionSpecialties"`
	Percentile                 *stats.PercentileBand       `json:"percentile"`
	AvgHourlyRate              *float64                    `json:"avgHourlyRate"`
	TotalParsed                int64                       `json:"totalParsed"`
}

type SpecialtyStats struct {
	Specialty       string  `json:"specialty"`
	AvgBaseSalary   float64 `json:"avgBaseSalary"`
	MedianSalary    float64 `json:"medianSalary"`
	AvgHoursWorked  float64 `json:"avgHoursWorked"`
	AvgSatisfaction float64 `json:"avgSatisfaction"`
	SubmissionCount int64   `json:"submissionCount"`
}

type NamedSpecialtyStats struct {
	Specialty           string   `json:"specialty"`
	SubmissionCount     int64    `json:"submissionCount"`
	AvgBaseSalary       float64  `json:"avgBaseSalary"`
	MedianSalary        float64  `json:"medianSalary"`
	MedianMonthlySalary float64  `json:"medianMonthlySalary"`
	MedianHourlyWage    *float64 `json:"medianHourlyWage"`
	AvgHoursWorked      float64  `json:"avgHoursWorked"`
	AvgSatisfaction     *float64 `json:"avgSatisfaction"`
}

type InsightsOverall struct {
	SubmissionCount    int64   `json:"submissionCount"`
	AvgTotalYearSalary float64 `json:"avgTotalYearSalary"`
}

type StateBreakdown struct {
	State              string  `json:"state"`
	Count              int64   `json:"count"`
	AvgTotalYearSalary float64 `json:"avgTotalYearSalary"`
}

type PracticeBreakdown struct {
	PracticeSetting    string  `json:"practiceSetting"`
	Count              int64   `json:"count"`
	AvgTotalYearSalary float64 `json:"avgTotalYearSalary"`
}

type SpecialtyInsights struct {
	Specialty         string              `json:"specialty"`
	Overall           InsightsOverall     `json:"overall"`
	ByState           []StateBreakdown    `json:"byState"`
	ByPracticeSetting []PracticeBreakdown `json:"byPracticeSetting"`
}

type CompensationAnalysis struct {
	Amount          float64               `json:"amount"`
	MarketAverage   float64               `json:"marketAverage"`
	PercentileLabel string                `json:"percentileLabel"`
	Grade           string                `json:"grade"`
	TotalRecords    int64                 `json:"totalRecords"`
	Percentiles     *stats.PercentileBand `json:"percentiles"`
}
