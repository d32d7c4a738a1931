package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertContact(ctx context.Context, db *gorm.DB, msg *ContactMessage) error
	InsertFeedback(ctx context.Context, db *gorm.DB, msg *FeedbackMessage) error
}
