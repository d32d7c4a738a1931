package domain

import (
	"context"

	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *SalaryRecord) error
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Page) ([]SalaryRecord, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
}
