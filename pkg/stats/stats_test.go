package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{name: "empty", values: nil, want: 0, ok: false},
		{name: "single", values: []float64{42}, want: 42, ok: true},
		{name: "odd", values: []float64{60000, 40000, 50000}, want: 50000, ok: true},
		{name: "even", values: []float64{70000, 40000, 60000, 50000}, want: 55000, ok: true},
		{name: "ties", values: []float64{10, 10, 20, 20}, want: 15, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Median(tc.values)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, _ = Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestBandIsMonotonic(t *testing.T) {
	values := []float64{180000, 95000, 120000, 240000, 150000, 130000, 310000, 99000, 175000, 205000, 160000}
	band := Band(values)
	if assert.NotNil(t, band) {
		assert.LessOrEqual(t, band.P10, band.P25)
		assert.LessOrEqual(t, band.P25, band.P50)
		assert.LessOrEqual(t, band.P50, band.P75)
		assert.LessOrEqual(t, band.P75, band.P90)
	}
}

func TestBandEmpty(t *testing.T) {
	assert.Nil(t, Band(nil))
	assert.Nil(t, Band([]float64{}))
}

func TestBandSingleValue(t *testing.T) {
	band := Band([]float64{123456.6})
	if assert.NotNil(t, band) {
		assert.Equal(t, PercentileBand{P10: 123457, P25: 123457, P50: 123457, P75: 123457, P90: 123457}, *band)
	}
}

func TestPercentileNearestRank(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	assert.Equal(t, 10.0, Percentile(sorted, 0.10))
	assert.Equal(t, 30.0, Percentile(sorted, 0.25))
	assert.Equal(t, 50.0, Percentile(sorted, 0.50))
	assert.Equal(t, 80.0, Percentile(sorted, 0.75))
	assert.Equal(t, 90.0, Percentile(sorted, 0.90))
	assert.Equal(t, 10.0, Percentile(sorted, 0))
	assert.Equal(t, 100.0, Percentile(sorted, 1))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 1234.57, Round(1234.5678, 2))
	assert.Equal(t, 40.3, Round(40.25, 1))
}

func TestMean(t *testing.T) {
	_, ok := Mean(nil)
	assert.False(t, ok)

	got, ok := Mean([]float64{1, 2, 3, 4})
	assert.True(t, ok)
	assert.Equal(t, 2.5, got)
}
