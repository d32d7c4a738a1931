package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/dentalpay/internal/specialty/domain"
	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE wildcards. '!' works as an escape character on every supported dialect.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, key string, limit int) ([]domain.SpecialtyEntry, error) {
	entries := []domain.SpecialtyEntry{}
	stmt := db.WithContext(ctx).Model(&domain.SpecialtyEntry{})
	if key = strings.TrimSpace(key); key != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(key)) + "%"
		stmt = stmt.Where("LOWER(speciality) LIKE ? ESCAPE '!'", pattern)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Order("speciality, id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.SpecialtyEntry, error) {
	entries := []domain.SpecialtyEntry{}
	if err := db.WithContext(ctx).Order("speciality, id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.SpecialtyEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, entries []domain.SpecialtyEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(entries, 100).Error
}
