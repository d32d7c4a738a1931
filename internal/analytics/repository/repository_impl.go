package repository

import (
	"context"

	"github.com/smallbiznis/dentalpay/internal/analytics/domain"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	salaryrepository "github.com/smallbiznis/dentalpay/internal/salary/repository"
	"gorm.io/gorm"
)

const summaryColumns = `AVG(base_salary) AS avg_base_salary,
	AVG(bonus) AS avg_bonus,
	AVG(base_salary + COALESCE(bonus, 0)) AS avg_total_compensation,
	AVG(hours_worked) AS avg_workload,
	COALESCE(SUM(CASE WHEN would_choose_specialty_again = 'yes' THEN 1 ELSE 0 END), 0) AS choose_again_count,
	COUNT(*) AS total`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) salaries(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) *gorm.DB {
	return db.WithContext(ctx).
		Model(&salarydomain.SalaryRecord{}).
		Scopes(salaryrepository.FilterScope(filter))
}

func (r *repo) Summaries(ctx context.Context, db *gorm.DB, filter salarydomain.Filter, groupBy salarydomain.Field) ([]domain.SummaryRow, error) {
	rows := []domain.SummaryRow{}
	stmt := r.salaries(ctx, db, filter)
	if groupBy.Valid() {
		col := groupBy.Column()
		stmt = stmt.
			Select(col + " AS group_key, " + summaryColumns).
			Group(col).
			Order("total DESC, " + col)
	} else {
		stmt = stmt.Select(summaryColumns)
	}
	if err := stmt.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) BaseSalaries(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]float64, error) {
	values := []float64{}
	if err := r.salaries(ctx, db, filter).Order("base_salary").Pluck("base_salary", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) Samples(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]domain.Sample, error) {
	samples := []domain.Sample{}
	err := r.salaries(ctx, db, filter).
		Select("specialty, state, practice_setting, base_salary, bonus, hours_worked, COALESCE(satisfaction_level, '') AS satisfaction_level").
		Scan(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *repo) SatisfactionCounts(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) ([]domain.SatisfactionCount, error) {
	counts := []domain.SatisfactionCount{}
	err := r.salaries(ctx, db, filter).
		Select("specialty, satisfaction_level, COUNT(*) AS count").
		Group("specialty, satisfaction_level").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repo) HourlyRate(ctx context.Context, db *gorm.DB, filter salarydomain.Filter) (domain.HourlyRate, error) {
	var rate domain.HourlyRate
	positive := salarydomain.NewFilterBuilder().
		Positive(salarydomain.FieldBaseSalary).
		Positive(salarydomain.FieldHoursWorked).
		Build()
	err := r.salaries(ctx, db, filter.With(positive.Predicates...)).
		Select("AVG(base_salary / hours_worked) AS avg_rate, COUNT(*) AS parsed").
		Scan(&rate).Error
	if err != nil {
		return domain.HourlyRate{}, err
	}
	return rate, nil
}
