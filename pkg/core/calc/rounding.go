package calc

import "math"

// =============================================================================
// ROUNDING POLICY
// Currency values round half-to-even to 2 decimal places, exactly once,
// at the output boundary. Intermediate values stay full precision.
// =============================================================================

// RoundCurrency rounds a monetary amount to cents using banker's rounding,
// so repeated aggregation does not drift upward the way round-half-up does.
func RoundCurrency(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// rounded returns a copy of the metric with its value passed through
// RoundCurrency. Unavailable metrics pass through untouched.
func rounded(m Metric) Metric {
	if !m.Available {
		return m
	}
	m.Value = RoundCurrency(m.Value)
	return m
}
