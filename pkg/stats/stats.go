// Package stats holds the numeric helpers behind the salary analytics: exact
// medians, nearest-rank percentiles and fixed-precision rounding.
package stats

import (
	"math"
	"sort"
)

// PercentileBand is the {p10,p25,p50,p75,p90} summary of a distribution.
type PercentileBand struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	if places <= 0 {
		return math.Round(v)
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Mean returns the arithmetic mean of values and false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Median returns the exact median of values. For an even count it is the mean
// of the two middle values of the ascending order. The input is not modified.
func Median(values []float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	sorted := sortedCopy(values)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// Percentile returns the nearest-rank percentile of an ascending slice.
// p is a fraction in [0,1]. The result is always an element of sorted.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	rank := int(math.Ceil(p * float64(n)))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// Band computes the rounded percentile band of values, or nil for no values.
func Band(values []float64) *PercentileBand {
	if len(values) == 0 {
		return nil
	}
	sorted := sortedCopy(values)
	return &PercentileBand{
		P10: Round(Percentile(sorted, 0.10), 0),
		P25: Round(Percentile(sorted, 0.25), 0),
		P50: Round(Percentile(sorted, 0.50), 0),
		P75: Round(Percentile(sorted, 0.75), 0),
		P90: Round(Percentile(sorted, 0.90), 0),
	}
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
