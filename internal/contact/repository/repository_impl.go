package repository

import (
	"context"

	"github.com/smallbiznis/dentalpay/internal/contact/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertContact(ctx context.Context, db *gorm.DB, msg *domain.ContactMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}

func (r *repo) InsertFeedback(ctx context.Context, db *gorm.DB, msg *domain.FeedbackMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}
