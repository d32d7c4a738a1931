package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EmailEntry is one known submitter address. Email is the natural key.
type EmailEntry struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Email     string       `gorm:"size:320;not null;uniqueIndex:ux_emails_email" json:"email"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`
}

func (EmailEntry) TableName() string { return "emails" }
