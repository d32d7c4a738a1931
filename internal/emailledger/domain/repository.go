package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// UpsertIfAbsent inserts entry unless its email already exists and reports whether a row was written.
	UpsertIfAbsent(ctx context.Context, db *gorm.DB, entry *EmailEntry) (bool, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*EmailEntry, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
