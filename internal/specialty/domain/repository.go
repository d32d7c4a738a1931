package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Search matches key as a case-insensitive literal substring of the specialty name.
	Search(ctx context.Context, db *gorm.DB, key string, limit int) ([]SpecialtyEntry, error)
	List(ctx context.Context, db *gorm.DB) ([]SpecialtyEntry, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	InsertBatch(ctx context.Context, db *gorm.DB, entries []SpecialtyEntry) error
}
