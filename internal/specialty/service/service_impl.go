package service

import (
	"context"
	"fmt"

	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/smallbiznis/dentalpay/internal/specialty/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   domain.Repository
	Survey *config.SurveyConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	survey *config.SurveyConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("specialty.service"),
		repo:   p.Repo,
		survey: p.Survey,
	}
}

func (s *Service) Search(ctx context.Context, key string) ([]domain.SpecialtyEntry, error) {
	entries, err := s.repo.Search(ctx, s.db, key, s.survey.Get().SpecialtySearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search specialties: %w", err)
	}
	return entries, nil
}

func (s *Service) List(ctx context.Context) ([]domain.SpecialtyEntry, error) {
	entries, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	return entries, nil
}
