package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SpecialtyEntry is one row of the specialty catalog used for autocomplete.
type SpecialtyEntry struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Speciality    string       `gorm:"column:speciality;size:255;not null;index:idx_specialities_speciality" json:"speciality"`
	SubSpeciality string       `gorm:"column:sub_speciality;size:255" json:"sub_speciality,omitempty"`
	Slug          string       `gorm:"-" json:"slug"`
	CreatedAt     time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updatedAt"`
}

func (SpecialtyEntry) TableName() string { return "specialities" }

// AfterFind derives the URL slug, e.g. "oral-and-maxillofacial-surgery".
func (e *SpecialtyEntry) AfterFind(*gorm.DB) error {
	e.Slug = Slugify(e.Speciality)
	return nil
}

func Slugify(name string) string {
	return slug.Make(name)
}
