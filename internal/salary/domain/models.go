package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// SalaryRecord is one survey response. Records are never updated after insert.
type SalaryRecord struct {
	ID                        snowflake.ID `gorm:"primaryKey" json:"id"`
	Specialty                 string       `gorm:"column:specialty;size:255;not null;index:idx_salaries_specialty" json:"specialty"`
	SubSpecialty              string       `gorm:"column:sub_specialty;size:255" json:"sub_specialty,omitempty"`
	State                     string       `gorm:"column:state;size:64;not null;index:idx_salaries_state" json:"state"`
	City                      string       `gorm:"column:city;size:255" json:"city,omitempty"`
	PracticeSetting           string       `gorm:"column:practice_setting;size:255;not null;index:idx_salaries_practice_setting" json:"practiceSetting"`
	CompensationType          string       `gorm:"column:compensation_type;size:64" json:"compensation_type,omitempty"`
	BaseSalary                float64      `gorm:"column:base_salary;not null" json:"base_salary"`
	Bonus                     *float64     `gorm:"column:bonus" json:"bonus,omitempty"`
	HoursWorked               float64      `gorm:"column:hours_worked;not null" json:"hoursWorked"`
	PTOWeeks                  *float64     `gorm:"column:pto_weeks" json:"ptoWeeks,omitempty"`
	SatisfactionLevel         Satisfaction `gorm:"column:satisfaction_level;size:8" json:"satisfactionLevel,omitempty"`
	WouldChooseSpecialtyAgain string       `gorm:"column:would_choose_specialty_again;size:8" json:"would_choose_specialty_again,omitempty"`
	YearsOfExperience         int          `gorm:"column:years_of_experience;not null" json:"yearsOfExperience"`
	Rating                    *int         `gorm:"column:rating" json:"rating,omitempty"`
	InsightsImprovement       string       `gorm:"column:insights_improvement;type:text" json:"insights_improvement,omitempty"`
	InsightsWorkLifeBalance   string       `gorm:"column:insights_work_life_balance;type:text" json:"insights_work_life_balance,omitempty"`
	ProductionPercentage      string       `gorm:"column:production_percentage;size:64" json:"production_percentage,omitempty"`
	CreatedAt                 time.Time    `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt                 time.Time    `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (SalaryRecord) TableName() string { return "salaries" }

// TotalCompensation is base salary plus bonus, with a missing bonus counted as zero.
func (r SalaryRecord) TotalCompensation() float64 {
	if r.Bonus == nil {
		return r.BaseSalary
	}
	return r.BaseSalary + *r.Bonus
}

const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

// SatisfactionLevels are the only stored satisfaction values.
var SatisfactionLevels = []string{"1", "2", "3", "4", "5"}

// Satisfaction is a single digit "1".."5" or empty when the respondent skipped it.
type Satisfaction string

// UnmarshalJSON accepts a JSON string or integral number; anything else is rejected.
func (s *Satisfaction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*s = Satisfaction(strings.TrimSpace(v))
	case float64:
		if v != math.Trunc(v) {
			return ErrInvalidSatisfaction
		}
		*s = Satisfaction(strconv.FormatInt(int64(v), 10))
	default:
		return ErrInvalidSatisfaction
	}
	return nil
}

func (s Satisfaction) Valid() bool {
	for _, level := range SatisfactionLevels {
		if string(s) == level {
			return true
		}
	}
	return false
}

// Score converts a valid level to its numeric value.
func (s Satisfaction) Score() (float64, bool) {
	if !s.Valid() {
		return 0, false
	}
	return float64(s[0] - '0'), true
}

// ParseSatisfaction validates a raw query or form value.
func ParseSatisfaction(raw string) (Satisfaction, error) {
	s := Satisfaction(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", ErrInvalidSatisfaction
	}
	return s, nil
}
