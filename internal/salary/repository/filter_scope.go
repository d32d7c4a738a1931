package repository

import (
	"github.com/smallbiznis/dentalpay/internal/salary/domain"
	"gorm.io/gorm"
)

// FilterScope renders filter as WHERE clauses. Predicates on unknown fields are skipped.
func FilterScope(filter domain.Filter) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		for _, p := range filter.Predicates {
			if p == nil || !p.Target().Valid() {
				continue
			}
			col := p.Target().Column()
			switch pred := p.(type) {
			case domain.Eq:
				stmt = stmt.Where(col+" = ?", pred.Value)
			case domain.In:
				if len(pred.Values) == 0 {
					stmt = stmt.Where("1 = 0")
					continue
				}
				stmt = stmt.Where(col+" IN ?", pred.Values)
			case domain.Range:
				if pred.Min != nil {
					if pred.ExclusiveMin {
						stmt = stmt.Where(col+" > ?", *pred.Min)
					} else {
						stmt = stmt.Where(col+" >= ?", *pred.Min)
					}
				}
				if pred.Max != nil {
					stmt = stmt.Where(col+" <= ?", *pred.Max)
				}
			}
		}
		return stmt
	}
}
