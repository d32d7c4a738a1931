package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/config"
	ledgerdomain "github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	"github.com/smallbiznis/dentalpay/internal/observability/logger"
	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	"github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Ledger   ledgerdomain.Service
	Survey   *config.SurveyConfigHolder
	Notifier domain.Notifier  `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	ledger   ledgerdomain.Service
	survey   *config.SurveyConfigHolder
	notifier domain.Notifier
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("salary.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		ledger:   p.Ledger,
		survey:   p.Survey,
		notifier: p.Notifier,
		metrics:  p.Metrics,
	}
}

// Submit persists the record first; the ledger write and notification only follow a successful save.
func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (domain.SalaryRecord, error) {
	record, err := recordFromRequest(req)
	if err != nil {
		return domain.SalaryRecord{}, err
	}

	email := ledgerdomain.NormalizeEmail(req.Email)
	if email != "" && !ledgerdomain.ValidEmail(email) {
		return domain.SalaryRecord{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	record.ID = s.genID.Generate()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.SalaryRecord{}, fmt.Errorf("insert salary record: %w", err)
	}
	s.metrics.RecordSubmission(ctx, record.PracticeSetting)

	log := logger.WithContext(ctx, s.log).With(zap.String("salary_id", record.ID.String()))
	if email != "" {
		if err := s.ledger.Record(ctx, email, ledgerdomain.SourceSalary); err != nil {
			log.Error("record submitter email failed", zap.Error(err))
			return domain.SalaryRecord{}, fmt.Errorf("record submitter email: %w", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, record); err != nil {
			log.Warn("enqueue submission notification failed", zap.Error(err))
		}
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return domain.ListResponse{}, domain.ErrInvalidSalaryRange
	}

	builder := domain.NewFilterBuilder().
		Specialty(req.Specialty).
		PracticeSetting(req.PracticeSetting).
		Experience(req.Experience).
		SalaryRange(req.MinSalary, req.MaxSalary)
	if strings.TrimSpace(req.Satisfaction) != "" {
		level, err := domain.ParseSatisfaction(req.Satisfaction)
		if err != nil {
			return domain.ListResponse{}, err
		}
		builder.Satisfaction(level)
	}
	filter := builder.Build()

	cfg := s.survey.Get()
	page := pagination.New(req.Page, req.Limit, cfg.DefaultPageSize, cfg.MaxPageSize)

	var (
		records []domain.SalaryRecord
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.List(gctx, s.db, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, s.db, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ListResponse{}, fmt.Errorf("list salary records: %w", err)
	}

	return domain.ListResponse{
		PageInfo: pagination.NewPageInfo(page, total),
		Data:     records,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db, domain.Filter{})
}

func recordFromRequest(req domain.SubmitRequest) (domain.SalaryRecord, error) {
	record := domain.SalaryRecord{
		Specialty:               strings.TrimSpace(req.Specialty),
		SubSpecialty:            strings.TrimSpace(req.SubSpecialty),
		State:                   strings.TrimSpace(req.State),
		City:                    strings.TrimSpace(req.City),
		PracticeSetting:         strings.TrimSpace(req.PracticeSetting),
		CompensationType:        strings.TrimSpace(req.CompensationType),
		Bonus:                   req.Bonus,
		PTOWeeks:                req.PTOWeeks,
		SatisfactionLevel:       req.SatisfactionLevel,
		Rating:                  req.Rating,
		InsightsImprovement:     strings.TrimSpace(req.InsightsImprovement),
		InsightsWorkLifeBalance: strings.TrimSpace(req.InsightsWorkLifeBalance),
		ProductionPercentage:    strings.TrimSpace(req.ProductionPercentage),
	}

	switch {
	case record.Specialty == "":
		return record, domain.ErrInvalidSpecialty
	case record.State == "":
		return record, domain.ErrInvalidState
	case record.PracticeSetting == "":
		return record, domain.ErrInvalidPracticeSetting
	case req.BaseSalary == nil || *req.BaseSalary < 0:
		return record, domain.ErrInvalidBaseSalary
	case req.HoursWorked == nil || *req.HoursWorked <= 0:
		return record, domain.ErrInvalidHoursWorked
	case req.YearsOfExperience == nil || *req.YearsOfExperience < 0:
		return record, domain.ErrInvalidYearsOfExperience
	case req.Bonus != nil && *req.Bonus < 0:
		return record, domain.ErrInvalidBonus
	case req.PTOWeeks != nil && *req.PTOWeeks < 0:
		return record, domain.ErrInvalidPTOWeeks
	case req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5):
		return record, domain.ErrInvalidRating
	case record.SatisfactionLevel != "" && !record.SatisfactionLevel.Valid():
		return record, domain.ErrInvalidSatisfaction
	}
	record.BaseSalary = *req.BaseSalary
	record.HoursWorked = *req.HoursWorked
	record.YearsOfExperience = *req.YearsOfExperience

	choice := req.WouldChooseSpecialtyAgain
	if strings.TrimSpace(choice) == "" {
		choice = req.ChooseSpecialty
	}
	switch c := strings.ToLower(strings.TrimSpace(choice)); c {
	case "", domain.ChoiceYes, domain.ChoiceNo:
		record.WouldChooseSpecialtyAgain = c
	default:
		return record, domain.ErrInvalidChooseAgain
	}

	return record, nil
}
