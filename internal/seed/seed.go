package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	specialtydomain "github.com/smallbiznis/dentalpay/internal/specialty/domain"
	specialtyrepository "github.com/smallbiznis/dentalpay/internal/specialty/repository"
	"gorm.io/gorm"
)

type specialty struct {
	name string
	sub  string
}

// defaultSpecialties is the recognized dental specialty catalog plus general practice.
var defaultSpecialties = []specialty{
	{name: "General Dentistry"},
	{name: "Dental Anesthesiology"},
	{name: "Dental Public Health"},
	{name: "Endodontics"},
	{name: "Oral and Maxillofacial Pathology"},
	{name: "Oral and Maxillofacial Radiology"},
	{name: "Oral and Maxillofacial Surgery"},
	{name: "Oral and Maxillofacial Surgery", sub: "Cosmetic Facial Surgery"},
	{name: "Oral Medicine"},
	{name: "Orofacial Pain"},
	{name: "Orthodontics"},
	{name: "Orthodontics", sub: "Dentofacial Orthopedics"},
	{name: "Pediatric Dentistry"},
	{name: "Periodontics"},
	{name: "Periodontics", sub: "Implant Dentistry"},
	{name: "Prosthodontics"},
	{name: "Cosmetic Dentistry"},
}

// EnsureSpecialties fills the specialty catalog when it is empty. Existing rows are never touched.
func EnsureSpecialties(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo := specialtyrepository.Provide()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := repo.Count(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		entries := make([]specialtydomain.SpecialtyEntry, 0, len(defaultSpecialties))
		for _, s := range defaultSpecialties {
			entries = append(entries, specialtydomain.SpecialtyEntry{
				ID:            node.Generate(),
				Speciality:    s.name,
				SubSpeciality: s.sub,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		return repo.InsertBatch(ctx, tx, entries)
	})
}
