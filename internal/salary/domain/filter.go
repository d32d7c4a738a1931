package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Field is the closed set of filterable salary attributes.
type Field int

const (
	FieldSpecialty Field = iota + 1
	FieldSubSpecialty
	FieldState
	FieldPracticeSetting
	FieldYearsOfExperience
	FieldBaseSalary
	FieldSatisfaction
	FieldHoursWorked
)

var fieldColumns = map[Field]string{
	FieldSpecialty:         "specialty",
	FieldSubSpecialty:      "sub_specialty",
	FieldState:             "state",
	FieldPracticeSetting:   "practice_setting",
	FieldYearsOfExperience: "years_of_experience",
	FieldBaseSalary:        "base_salary",
	FieldSatisfaction:      "satisfaction_level",
	FieldHoursWorked:       "hours_worked",
}

func (f Field) Column() string {
	return fieldColumns[f]
}

func (f Field) Valid() bool {
	_, ok := fieldColumns[f]
	return ok
}

func (f Field) String() string {
	if col, ok := fieldColumns[f]; ok {
		return col
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// Predicate is one of Eq, Range or In.
type Predicate interface {
	Target() Field
	predicate()
}

// Eq matches a field exactly.
type Eq struct {
	Field Field
	Value string
}

// Range bounds a numeric field. Nil bounds are open; ExclusiveMin turns Min into a strict bound.
type Range struct {
	Field        Field
	Min          *float64
	Max          *float64
	ExclusiveMin bool
}

// In matches a field against a fixed set of values.
type In struct {
	Field  Field
	Values []string
}

func (p Eq) Target() Field    { return p.Field }
func (p Range) Target() Field { return p.Field }
func (p In) Target() Field    { return p.Field }

func (Eq) predicate()    {}
func (Range) predicate() {}
func (In) predicate()    {}

// Filter is a conjunction of predicates.
type Filter struct {
	Predicates []Predicate
}

func (f Filter) Empty() bool {
	return len(f.Predicates) == 0
}

// With returns a copy of f extended with ps; f itself is not modified.
func (f Filter) With(ps ...Predicate) Filter {
	out := make([]Predicate, 0, len(f.Predicates)+len(ps))
	out = append(out, f.Predicates...)
	out = append(out, ps...)
	return Filter{Predicates: out}
}

// Eq returns the value of the first equality predicate on field.
func (f Filter) Eq(field Field) (string, bool) {
	for _, p := range f.Predicates {
		if eq, ok := p.(Eq); ok && eq.Field == field {
			return eq.Value, true
		}
	}
	return "", false
}

// FilterBuilder collects optional query inputs; blank inputs add nothing.
type FilterBuilder struct {
	predicates []Predicate
}

func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

func (b *FilterBuilder) eq(field Field, value string) *FilterBuilder {
	if value = strings.TrimSpace(value); value != "" {
		b.predicates = append(b.predicates, Eq{Field: field, Value: value})
	}
	return b
}

func (b *FilterBuilder) Specialty(v string) *FilterBuilder       { return b.eq(FieldSpecialty, v) }
func (b *FilterBuilder) SubSpecialty(v string) *FilterBuilder    { return b.eq(FieldSubSpecialty, v) }
func (b *FilterBuilder) State(v string) *FilterBuilder           { return b.eq(FieldState, v) }
func (b *FilterBuilder) PracticeSetting(v string) *FilterBuilder { return b.eq(FieldPracticeSetting, v) }

// Experience applies "10-20" as an inclusive range and "26+" as a lower bound.
// Input without a leading integer is ignored.
func (b *FilterBuilder) Experience(raw string) *FilterBuilder {
	lower, upper, ok := ParseExperienceRange(raw)
	if !ok {
		return b
	}
	lo := float64(lower)
	r := Range{Field: FieldYearsOfExperience, Min: &lo}
	if upper != nil {
		hi := float64(*upper)
		r.Max = &hi
	}
	b.predicates = append(b.predicates, r)
	return b
}

// SalaryRange bounds base salary; either side may be nil.
func (b *FilterBuilder) SalaryRange(min, max *float64) *FilterBuilder {
	if min == nil && max == nil {
		return b
	}
	b.predicates = append(b.predicates, Range{Field: FieldBaseSalary, Min: min, Max: max})
	return b
}

func (b *FilterBuilder) Satisfaction(level Satisfaction) *FilterBuilder {
	if level == "" {
		return b
	}
	b.predicates = append(b.predicates, Eq{Field: FieldSatisfaction, Value: string(level)})
	return b
}

// SatisfactionValid keeps only records with a level in "1".."5".
func (b *FilterBuilder) SatisfactionValid() *FilterBuilder {
	values := make([]string, len(SatisfactionLevels))
	copy(values, SatisfactionLevels)
	b.predicates = append(b.predicates, In{Field: FieldSatisfaction, Values: values})
	return b
}

// Positive requires field > 0.
func (b *FilterBuilder) Positive(field Field) *FilterBuilder {
	zero := 0.0
	b.predicates = append(b.predicates, Range{Field: field, Min: &zero, ExclusiveMin: true})
	return b
}

func (b *FilterBuilder) Build() Filter {
	return Filter{}.With(b.predicates...)
}

var experiencePattern = regexp.MustCompile(`^(\d+)(?:-(\d+))?`)

// ParseExperienceRange reads a leading "min" or "min-max" from raw.
func ParseExperienceRange(raw string) (lower int, upper *int, ok bool) {
	m := experiencePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, nil, false
	}
	lower, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, nil, false
	}
	if m[2] == "" {
		return lower, nil, true
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return lower, nil, true
	}
	return lower, &hi, true
}
