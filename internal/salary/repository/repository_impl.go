package repository

import (
	"context"

	"github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.SalaryRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Page) ([]domain.SalaryRecord, error) {
	records := []domain.SalaryRecord{}
	err := db.WithContext(ctx).
		Model(&domain.SalaryRecord{}).
		Scopes(FilterScope(filter)).
		Order("created_at desc, id desc").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.SalaryRecord{}).
		Scopes(FilterScope(filter)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
