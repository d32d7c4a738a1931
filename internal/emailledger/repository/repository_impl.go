package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) UpsertIfAbsent(ctx context.Context, db *gorm.DB, entry *domain.EmailEntry) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.EmailEntry, error) {
	var entry domain.EmailEntry
	err := db.WithContext(ctx).Where("email = ?", email).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.EmailEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
