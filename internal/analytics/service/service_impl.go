package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/smallbiznis/dentalpay/internal/analytics/domain"
	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
	"github.com/smallbiznis/dentalpay/pkg/stats"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       domain.Repository
	SalaryRepo salarydomain.Repository
	Survey     *config.SurveyConfigHolder
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	salaryRepo salarydomain.Repository
	survey     *config.SurveyConfigHolder
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("analytics.service"),
		repo:       p.Repo,
		salaryRepo: p.SalaryRepo,
		survey:     p.Survey,
		metrics:    p.Metrics,
	}
}

func (s *Service) observe(ctx context.Context, operation string, err error) {
	s.metrics.RecordAnalyticsQuery(ctx, operation, err)
	if err != nil {
		s.log.Error("analytics query failed", zap.String("operation", operation), zap.Error(err))
	}
}

// Search returns one page of matches plus every aggregate view over the full match set.
// All sub-queries run concurrently and any failure fails the whole request.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (resp domain.SearchResponse, err error) {
	defer func() { s.observe(ctx, "search", err) }()

	filter := salarydomain.NewFilterBuilder().
		Specialty(req.Specialty).
		SubSpecialty(req.SubSpecialty).
		State(req.State).
		PracticeSetting(req.Practice).
		Build()

	cfg := s.survey.Get()
	page := pagination.New(req.Page, req.Limit, cfg.DefaultPageSize, cfg.MaxPageSize)

	var (
		records []salarydomain.SalaryRecord
		total   int64
		grouped []domain.Summary
		overall *domain.Summary
		top     []domain.SatisfactionRank
		band    *stats.PercentileBand
		hourly  *float64
		parsed  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.salaryRepo.List(gctx, s.db, filter, page)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.salaryRepo.Count(gctx, s.db, filter)
		return err
	})
	g.Go(func() (err error) {
		grouped, err = s.GroupedSummary(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		overall, err = s.OverallSummary(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.TopSatisfactionSpecialties(gctx)
		return err
	})
	g.Go(func() (err error) {
		band, err = s.PercentileBand(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		hourly, parsed, err = s.AverageHourlyRate(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SearchResponse{}, fmt.Errorf("search salaries: %w", err)
	}

	return domain.SearchResponse{
		PageInfo:                   pagination.NewPageInfo(page, total),
		Data:                       records,
		Summary:                    grouped,
		OverallSummary:             overall,
		TopSatisfactionSpecialties: top,
		Percentile:                 band,
		AvgHourlyRate:              hourly,
		TotalParsed:                parsed,
	}, nil
}

// GroupedSummary aggregates the matches per practice setting, largest group first.
func (s *Service) GroupedSummary(ctx context.Context, filter salarydomain.Filter) ([]domain.Summary, error) {
	rows, err := s.repo.Summaries(ctx, s.db, filter, salarydomain.FieldPracticeSetting)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summaryFromRow(row))
	}
	return summaries, nil
}

// OverallSummary is nil when nothing matches.
func (s *Service) OverallSummary(ctx context.Context, filter salarydomain.Filter) (*domain.Summary, error) {
	rows, err := s.repo.Summaries(ctx, s.db, filter, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Total == 0 {
		return nil, nil
	}
	summary := summaryFromRow(rows[0])
	summary.PracticeSetting = ""
	return &summary, nil
}

func (s *Service) PercentileBand(ctx context.Context, filter salarydomain.Filter) (*stats.PercentileBand, error) {
	salaries, err := s.repo.BaseSalaries(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return stats.Band(salaries), nil
}

// AverageHourlyRate averages base_salary/hours_worked over matches where both are positive.
// The second result is the number of records that qualified; the rate is nil when none did.
func (s *Service) AverageHourlyRate(ctx context.Context, filter salarydomain.Filter) (*float64, int64, error) {
	hourly, err := s.repo.HourlyRate(ctx, s.db, filter)
	if err != nil {
		return nil, 0, err
	}
	if hourly.Parsed == 0 || hourly.AvgRate == nil {
		return nil, hourly.Parsed, nil
	}
	rate := stats.Round(*hourly.AvgRate, 2)
	return &rate, hourly.Parsed, nil
}

// TopSatisfactionSpecialties ranks every specialty in the store, ignoring request filters.
func (s *Service) TopSatisfactionSpecialties(ctx context.Context) ([]domain.SatisfactionRank, error) {
	return s.topSatisfaction(ctx, s.survey.Get().TopSatisfactionLimit)
}

// topSatisfaction ranks specialties by mean satisfaction over records with a valid level.
func (s *Service) topSatisfaction(ctx context.Context, limit int) ([]domain.SatisfactionRank, error) {
	filter := salarydomain.NewFilterBuilder().SatisfactionValid().Build()
	counts, err := s.repo.SatisfactionCounts(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum   float64
		count int64
	}
	bySpecialty := map[string]*acc{}
	for _, c := range counts {
		score, ok := salarydomain.Satisfaction(c.SatisfactionLevel).Score()
		if !ok || c.Count <= 0 {
			continue
		}
		a := bySpecialty[c.Specialty]
		if a == nil {
			a = &acc{}
			bySpecialty[c.Specialty] = a
		}
		a.sum += score * float64(c.Count)
		a.count += c.Count
	}

	ranks := make([]domain.SatisfactionRank, 0, len(bySpecialty))
	for specialty, a := range bySpecialty {
		ranks = append(ranks, domain.SatisfactionRank{
			Specialty:                specialty,
			AverageSatisfactionLevel: stats.Round(a.sum/float64(a.count), 2),
			SubmissionCount:          a.count,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].AverageSatisfactionLevel != ranks[j].AverageSatisfactionLevel {
			return ranks[i].AverageSatisfactionLevel > ranks[j].AverageSatisfactionLevel
		}
		return ranks[i].Specialty < ranks[j].Specialty
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

func (s *Service) SpecialtyStats(ctx context.Context, req domain.SpecialtyStatsRequest) (result []domain.SpecialtyStats, err error) {
	defer func() { s.observe(ctx, "specialty_stats", err) }()

	filter := salarydomain.NewFilterBuilder().
		Specialty(req.Specialty).
		PracticeSetting(req.PracticeSetting).
		SatisfactionValid().
		Build()
	samples, err := s.repo.Samples(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("specialty stats: %w", err)
	}

	groups := map[string][]domain.Sample{}
	for _, sample := range samples {
		groups[sample.Specialty] = append(groups[sample.Specialty], sample)
	}

	result = make([]domain.SpecialtyStats, 0, len(groups))
	for specialty, group := range groups {
		var salaries, hours, scores []float64
		for _, sample := range group {
			salaries = append(salaries, sample.BaseSalary)
			hours = append(hours, sample.HoursWorked)
			if score, ok := sample.SatisfactionLevel.Score(); ok {
				scores = append(scores, score)
			}
		}
		avgSalary, _ := stats.Mean(salaries)
		median, _ := stats.Median(salaries)
		avgHours, _ := stats.Mean(hours)
		avgScore, _ := stats.Mean(scores)
		result = append(result, domain.SpecialtyStats{
			Specialty:       specialty,
			AvgBaseSalary:   stats.Round(avgSalary, 0),
			MedianSalary:    median,
			AvgHoursWorked:  stats.Round(avgHours, 1),
			AvgSatisfaction: stats.Round(avgScore, 1),
			SubmissionCount: int64(len(group)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SubmissionCount != result[j].SubmissionCount {
			return result[i].SubmissionCount > result[j].SubmissionCount
		}
		return result[i].Specialty < result[j].Specialty
	})
	return result, nil
}

func (s *Service) StatsBySpecialtyName(ctx context.Context, name string) (result domain.NamedSpecialtyStats, err error) {
	specialty := domain.NormalizeSpecialtyName(name)
	if specialty == "" {
		return domain.NamedSpecialtyStats{}, domain.ErrInvalidSpecialty
	}
	defer func() { s.observe(ctx, "stats_by_specialty", err) }()

	filter := salarydomain.NewFilterBuilder().Specialty(specialty).Build()
	samples, err := s.repo.Samples(ctx, s.db, filter)
	if err != nil {
		return domain.NamedSpecialtyStats{}, fmt.Errorf("stats by specialty: %w", err)
	}

	result = domain.NamedSpecialtyStats{Specialty: specialty, SubmissionCount: int64(len(samples))}
	if len(samples) == 0 {
		return result, nil
	}

	salaries := make([]float64, 0, len(samples))
	hours := make([]float64, 0, len(samples))
	var scores []float64
	for _, sample := range samples {
		salaries = append(salaries, sample.BaseSalary)
		hours = append(hours, sample.HoursWorked)
		if score, ok := sample.SatisfactionLevel.Score(); ok {
			scores = append(scores, score)
		}
	}

	avgSalary, _ := stats.Mean(salaries)
	median, _ := stats.Median(salaries)
	avgHours, _ := stats.Mean(hours)

	result.AvgBaseSalary = stats.Round(avgSalary, 0)
	result.MedianSalary = median
	result.MedianMonthlySalary = stats.Round(median/12, 0)
	result.AvgHoursWorked = stats.Round(avgHours, 1)
	if avgHours > 0 {
		wage := stats.Round(median/(avgHours*52), 2)
		result.MedianHourlyWage = &wage
	}
	if avgScore, ok := stats.Mean(scores); ok {
		rounded := stats.Round(avgScore, 1)
		result.AvgSatisfaction = &rounded
	}
	return result, nil
}

func (s *Service) SpecialtyInsights(ctx context.Context, name string) (result domain.SpecialtyInsights, err error) {
	specialty := domain.NormalizeSpecialtyName(name)
	if specialty == "" {
		return domain.SpecialtyInsights{}, domain.ErrInvalidSpecialty
	}
	defer func() { s.observe(ctx, "specialty_insights", err) }()

	filter := salarydomain.NewFilterBuilder().Specialty(specialty).Build()

	var overall, byState, byPractice []domain.SummaryRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overall, err = s.repo.Summaries(gctx, s.db, filter, 0)
		return err
	})
	g.Go(func() (err error) {
		byState, err = s.repo.Summaries(gctx, s.db, filter, salarydomain.FieldState)
		return err
	})
	g.Go(func() (err error) {
		byPractice, err = s.repo.Summaries(gctx, s.db, filter, salarydomain.FieldPracticeSetting)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SpecialtyInsights{}, fmt.Errorf("specialty insights: %w", err)
	}

	result = domain.SpecialtyInsights{
		Specialty:         specialty,
		ByState:           make([]domain.StateBreakdown, 0, len(byState)),
		ByPracticeSetting: make([]domain.PracticeBreakdown, 0, len(byPractice)),
	}
	if len(overall) > 0 {
		result.Overall = domain.InsightsOverall{
			SubmissionCount:    overall[0].Total,
			AvgTotalYearSalary: roundedAvg(overall[0].AvgTotalCompensation, 0),
		}
	}
	for _, row := range byState {
		result.ByState = append(result.ByState, domain.StateBreakdown{
			State:              row.GroupKey,
			Count:              row.Total,
			AvgTotalYearSalary: roundedAvg(row.AvgTotalCompensation, 0),
		})
	}
	for _, row := range byPractice {
		result.ByPracticeSetting = append(result.ByPracticeSetting, domain.PracticeBreakdown{
			PracticeSetting:    row.GroupKey,
			Count:              row.Total,
			AvgTotalYearSalary: roundedAvg(row.AvgTotalCompensation, 0),
		})
	}
	sort.SliceStable(result.ByState, func(i, j int) bool {
		if result.ByState[i].Count != result.ByState[j].Count {
			return result.ByState[i].Count > result.ByState[j].Count
		}
		return result.ByState[i].State < result.ByState[j].State
	})
	sort.SliceStable(result.ByPracticeSetting, func(i, j int) bool {
		if result.ByPracticeSetting[i].Count != result.ByPracticeSetting[j].Count {
			return result.ByPracticeSetting[i].Count > result.ByPracticeSetting[j].Count
		}
		return result.ByPracticeSetting[i].PracticeSetting < result.ByPracticeSetting[j].PracticeSetting
	})
	return result, nil
}

// CompensationAnalysis grades amount against the base salaries of the matching population.
func (s *Service) CompensationAnalysis(ctx context.Context, req domain.CompensationRequest) (result domain.CompensationAnalysis, err error) {
	specialty := domain.NormalizeSpecialtyName(req.Specialty)
	if specialty == "" {
		return domain.CompensationAnalysis{}, domain.ErrInvalidSpecialty
	}
	if req.Amount <= 0 {
		return domain.CompensationAnalysis{}, domain.ErrInvalidAmount
	}
	defer func() { s.observe(ctx, "compensation_analysis", err) }()

	filter := salarydomain.NewFilterBuilder().
		Specialty(specialty).
		State(strings.TrimSpace(req.State)).
		PracticeSetting(strings.TrimSpace(req.PracticeSetting)).
		Positive(salarydomain.FieldBaseSalary).
		Build()
	salaries, err := s.repo.BaseSalaries(ctx, s.db, filter)
	if err != nil {
		return domain.CompensationAnalysis{}, fmt.Errorf("compensation analysis: %w", err)
	}

	result = domain.CompensationAnalysis{Amount: req.Amount, TotalRecords: int64(len(salaries))}
	average, ok := stats.Mean(salaries)
	if !ok || average <= 0 {
		return result, nil
	}

	band := stats.Band(salaries)
	result.MarketAverage = stats.Round(average, 0)
	result.Percentiles = band
	result.PercentileLabel = domain.ClassifyPercentile(req.Amount, *band)
	result.Grade = domain.Grade(req.Amount / average)
	return result, nil
}

func summaryFromRow(row domain.SummaryRow) domain.Summary {
	summary := domain.Summary{
		PracticeSetting:      row.GroupKey,
		AvgBaseSalary:        roundedAvg(row.AvgBaseSalary, 0),
		AvgTotalCompensation: roundedAvg(row.AvgTotalCompensation, 0),
		AvgWorkload:          roundedAvg(row.AvgWorkload, 0),
		SubmissionCount:      row.Total,
	}
	if row.AvgBonus != nil {
		bonus := stats.Round(*row.AvgBonus, 0)
		summary.AvgBonus = &bonus
	}
	if row.Total > 0 {
		summary.WouldChooseAgainPercent = stats.Round(float64(row.ChooseAgainCount)/float64(row.Total)*100, 0)
	}
	return summary
}

func roundedAvg(v *float64, places int) float64 {
	if v == nil {
		return 0
	}
	return stats.Round(*v, places)
}
