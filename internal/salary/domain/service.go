package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/dentalpay/pkg/db/pagination"
)

// SubmitRequest is the survey payload. Numeric fields are pointers so absence is distinguishable from zero.
type SubmitRequest struct {
	Specialty                 string       `json:"specialty"`
	SubSpecialty              string       `json:"sub_specialty"`
	State                     string       `json:"state"`
	City                      string       `json:"city"`
	PracticeSetting           string       `json:"practiceSetting"`
	CompensationType          string       `json:"compensation_type"`
	BaseSalary                *float64     `json:"base_salary"`
	Bonus                     *float64     `json:"bonus"`
	HoursWorked               *float64     `json:"hoursWorked"`
	PTOWeeks                  *float64     `json:"ptoWeeks"`
	SatisfactionLevel         Satisfaction `json:"satisfactionLevel"`
	WouldChooseSpecialtyAgain string       `json:"would_choose_specialty_again"`
	ChooseSpecialty           string       `json:"chooseSpecialty"`
	YearsOfExperience         *int         `json:"yearsOfExperience"`
	Rating                    *int         `json:"rating"`
	InsightsImprovement       string       `json:"insights_improvement"`
	InsightsWorkLifeBalance   string       `json:"insights_work_life_balance"`
	ProductionPercentage      string       `json:"production_percentage"`
	Email                     string       `json:"email"`
}

type ListRequest struct {
	Specialty       string
	PracticeSetting string
	Experience      string
	MinSalary       *float64
	MaxSalary       *float64
	Satisfaction    string
	Page            int
	Limit           int
}

type ListResponse struct {
	pagination.PageInfo
	Data []SalaryRecord `json:"data"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SalaryRecord, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Count(ctx context.Context) (int64, error)
}

// Notifier hands a saved record to the notification pipeline without waiting for delivery.
type Notifier interface {
	Notify(ctx context.Context, record SalaryRecord) error
}

var (
	ErrInvalidSpecialty         = errors.New("invalid_specialty")
	ErrInvalidState             = errors.New("invalid_state")
	ErrInvalidPracticeSetting   = errors.New("invalid_practice_setting")
	ErrInvalidBaseSalary        = errors.New("invalid_base_salary")
	ErrInvalidBonus             = errors.New("invalid_bonus")
	ErrInvalidHoursWorked       = errors.New("invalid_hours_worked")
	ErrInvalidPTOWeeks          = errors.New("invalid_pto_weeks")
	ErrInvalidSatisfaction      = errors.New("invalid_satisfaction")
	ErrInvalidChooseAgain       = errors.New("invalid_would_choose_specialty_again")
	ErrInvalidYearsOfExperience = errors.New("invalid_years_of_experience")
	ErrInvalidRating            = errors.New("invalid_rating")
	ErrInvalidEmail             = errors.New("invalid_email")
	ErrInvalidSalaryRange       = errors.New("invalid_salary_range")
)
