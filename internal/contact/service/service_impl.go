package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/contact/domain"
	ledgerdomain "github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	"github.com/smallbiznis/dentalpay/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Ledger ledgerdomain.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	ledger ledgerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("contact.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		ledger: p.Ledger,
	}
}

func (s *Service) CreateContact(ctx context.Context, req domain.ContactRequest) (domain.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ContactMessage{}, domain.ErrInvalidName
	}
	email, err := validEmail(req.Email)
	if err != nil {
		return domain.ContactMessage{}, err
	}

	now := s.clock.Now()
	msg := domain.ContactMessage{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		Metadata:  metadata(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertContact(ctx, s.db, &msg); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("insert contact: %w", err)
	}
	if err := s.recordEmail(ctx, email, ledgerdomain.SourceContact); err != nil {
		return domain.ContactMessage{}, err
	}
	return msg, nil
}

func (s *Service) CreateFeedback(ctx context.Context, req domain.FeedbackRequest) (domain.FeedbackMessage, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FeedbackMessage{}, domain.ErrInvalidName
	}
	email, err := validEmail(req.Email)
	if err != nil {
		return domain.FeedbackMessage{}, err
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.FeedbackMessage{}, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	msg := domain.FeedbackMessage{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Category:  category,
		Feedback:  req.Feedback,
		Metadata:  metadata(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertFeedback(ctx, s.db, &msg); err != nil {
		return domain.FeedbackMessage{}, fmt.Errorf("insert feedback: %w", err)
	}
	if err := s.recordEmail(ctx, email, ledgerdomain.SourceFeedback); err != nil {
		return domain.FeedbackMessage{}, err
	}
	return msg, nil
}

func (s *Service) recordEmail(ctx context.Context, email, source string) error {
	if err := s.ledger.Record(ctx, email, source); err != nil {
		logger.WithContext(ctx, s.log).Error("email ledger write failed after message was stored",
			zap.String("source", source),
			zap.Error(err),
		)
		return fmt.Errorf("record email: %w", err)
	}
	return nil
}

func validEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" || !ledgerdomain.ValidEmail(ledgerdomain.NormalizeEmail(email)) {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func metadata(extra map[string]any) datatypes.JSONMap {
	if len(extra) == 0 {
		return nil
	}
	return datatypes.JSONMap(extra)
}
