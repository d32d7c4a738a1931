package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	"github.com/smallbiznis/dentalpay/internal/observability/metrics"
	"github.com/smallbiznis/dentalpay/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("emailledger.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, email, source string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	entry := domain.EmailEntry{
		ID:        s.genID.Generate(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	inserted, err := s.repo.UpsertIfAbsent(ctx, s.db, &entry)
	if err != nil {
		// A concurrent insert that lost the race on a dialect without ON CONFLICT support.
		if db.IsDuplicateKeyErr(err) {
			return nil
		}
		return fmt.Errorf("upsert email: %w", err)
	}
	if inserted {
		s.metrics.RecordLedgerUpsert(ctx, source)
		s.log.Debug("email recorded", zap.String("source", source))
	}
	return nil
}
