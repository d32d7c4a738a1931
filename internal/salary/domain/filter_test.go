package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceRange(t *testing.T) {
	cases := []struct {
		raw   string
		lower int
		upper *int
		ok    bool
	}{
		{raw: "10-20", lower: 10, upper: intPtr(20), ok: true},
		{raw: "26+", lower: 26, ok: true},
		{raw: "5", lower: 5, ok: true},
		{raw: " 0-2 years", lower: 0, upper: intPtr(2), ok: true},
		{raw: "senior", ok: false},
		{raw: "", ok: false},
	}
	for _, tc := range cases {
		lower, upper, ok := ParseExperienceRange(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.lower, lower, tc.raw)
		assert.Equal(t, tc.upper, upper, tc.raw)
	}
}

func TestFilterBuilderSkipsBlankInputs(t *testing.T) {
	filter := NewFilterBuilder().
		Specialty("  ").
		State("").
		Experience("not a number").
		SalaryRange(nil, nil).
		Satisfaction("").
		Build()
	assert.True(t, filter.Empty())
}

func TestFilterBuilderProducesTypedPredicates(t *testing.T) {
	minSalary := 100000.0
	filter := NewFilterBuilder().
		Specialty(" Orthodontics ").
		PracticeSetting("Private Practice").
		Experience("26+").
		SalaryRange(&minSalary, nil).
		SatisfactionValid().
		Positive(FieldHoursWorked).
		Build()

	require.Len(t, filter.Predicates, 6)
	assert.Equal(t, Eq{Field: FieldSpecialty, Value: "Orthodontics"}, filter.Predicates[0])
	assert.Equal(t, Eq{Field: FieldPracticeSetting, Value: "Private Practice"}, filter.Predicates[1])

	experience, ok := filter.Predicates[2].(Range)
	require.True(t, ok)
	assert.Equal(t, 26.0, *experience.Min)
	assert.Nil(t, experience.Max)

	salary := filter.Predicates[3].(Range)
	assert.Equal(t, FieldBaseSalary, salary.Field)
	assert.Nil(t, salary.Max)

	in := filter.Predicates[4].(In)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, in.Values)

	positive := filter.Predicates[5].(Range)
	assert.True(t, positive.ExclusiveMin)
	assert.Equal(t, "hours_worked", positive.Field.Column())

	value, ok := filter.Eq(FieldSpecialty)
	assert.True(t, ok)
	assert.Equal(t, "Orthodontics", value)
}

func TestFilterWithDoesNotAlias(t *testing.T) {
	base := NewFilterBuilder().State("CA").Build()
	a := base.With(Eq{Field: FieldSpecialty, Value: "A"})
	b := base.With(Eq{Field: FieldSpecialty, Value: "B"})

	assert.Len(t, base.Predicates, 1)
	va, _ := a.Eq(FieldSpecialty)
	vb, _ := b.Eq(FieldSpecialty)
	assert.Equal(t, "A", va)
	assert.Equal(t, "B", vb)
}

func TestSatisfactionUnmarshal(t *testing.T) {
	var req struct {
		Level Satisfaction `json:"level"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"level": 4}`), &req))
	assert.Equal(t, Satisfaction("4"), req.Level)

	require.NoError(t, json.Unmarshal([]byte(`{"level": " 2 "}`), &req))
	assert.Equal(t, Satisfaction("2"), req.Level)

	require.NoError(t, json.Unmarshal([]byte(`{"level": null}`), &req))
	assert.Equal(t, Satisfaction(""), req.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"level": 3.5}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"level": true}`), &req))
}

func TestSatisfactionScore(t *testing.T) {
	score, ok := Satisfaction("5").Score()
	assert.True(t, ok)
	assert.Equal(t, 5.0, score)

	_, ok = Satisfaction("very happy").Score()
	assert.False(t, ok)
	_, ok = Satisfaction("0").Score()
	assert.False(t, ok)

	_, err := ParseSatisfaction("6")
	assert.ErrorIs(t, err, ErrInvalidSatisfaction)
}

func TestTotalCompensation(t *testing.T) {
	bonus := 5000.0
	assert.Equal(t, 105000.0, SalaryRecord{BaseSalary: 100000, Bonus: &bonus}.TotalCompensation())
	assert.Equal(t, 100000.0, SalaryRecord{BaseSalary: 100000}.TotalCompensation())
}

func intPtr(v int) *int { return &v }
