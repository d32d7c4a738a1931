package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ContactMessage struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     string            `gorm:"size:320;not null" json:"email"`
	Phone     string            `gorm:"size:64" json:"phone,omitempty"`
	Subject   string            `gorm:"size:255" json:"subject,omitempty"`
	Message   string            `gorm:"type:text" json:"message,omitempty"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
}

func (ContactMessage) TableName() string { return "contacts" }

type FeedbackMessage struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     string            `gorm:"size:320;not null" json:"email"`
	Category  string            `gorm:"size:255;not null" json:"category"`
	Feedback  string            `gorm:"type:text" json:"feedback,omitempty"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
}

func (FeedbackMessage) TableName() string { return "feedbacks" }
