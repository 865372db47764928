// pkg/analyzer/math.go
package analyzer

import (
	"math"
	"sort"
)

// round2 rounds half away from zero to two decimal places
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ratioPct returns round2(100*numerator/denominator), or nil when the
// denominator is zero. Undefined ratios are reported as null rather
// than zero so reviewers can tell "no revenue" from "rate undefined".
func ratioPct(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	pct := round2(100 * numerator / denominator)
	return &pct
}

// median computes the continuous (linear-interpolated) 0.5 quantile of
// an unsorted sample. The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
