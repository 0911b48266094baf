// Package validate provides reusable numeric integrity utilities.
// These functions can be called from tests, API handlers, or pipeline code
// to verify projection consistency and calculate derived growth metrics.
package validate

import (
	"fmt"
	"math"
)

// =============================================================================
// GROWTH CALCULATIONS
// =============================================================================

// CalculatePeriodGrowth returns the fractional change between two values:
// (current - prior) / prior. Growth from zero is reported as +Inf so callers
// can detect it rather than receive a silent zero.
func CalculatePeriodGrowth(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / prior
}

// CalculateCAGR returns the compound annual growth rate as a fraction:
// CAGR = (end/start)^(1/years) - 1. Non-positive start values and
// non-positive year counts yield 0.
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(endValue/startValue, 1.0/float64(years)) - 1
}

// =============================================================================
// CASH ROLL-FORWARD VALIDATION
// =============================================================================

// RollForwardCheck verifies prior cash + net flow = reported cash for one
// projection period.
type RollForwardCheck struct {
	Period       int
	PriorCash    float64
	NetFlow      float64
	ComputedCash float64
	ReportedCash float64
	Difference   float64
	IsConsistent bool
	Tolerance    float64
}

// CheckCashRollForward validates that a period's cumulative cash equals the
// prior period's cash plus the period's net flow within tolerance. Emitted
// period records round currency to cents, so tolerance should be at least a
// cent per chained period.
func CheckCashRollForward(period int, priorCash, netFlow, reportedCash, tolerance float64) *RollForwardCheck {
	computed := priorCash + netFlow
	diff := reportedCash - computed

	return &RollForwardCheck{
		Period:       period,
		PriorCash:    priorCash,
		NetFlow:      netFlow,
		ComputedCash: computed,
		ReportedCash: reportedCash,
		Difference:   diff,
		IsConsistent: math.Abs(diff) <= tolerance,
		Tolerance:    tolerance,
	}
}

// =============================================================================
// PLAUSIBILITY RANGE CHECKS
// =============================================================================

// RangeCheck identifies values outside a plausible range. Out-of-range
// values are suspicious rather than invalid, so they become warnings.
type RangeCheck struct {
	Metric    string
	Value     float64
	Min       float64
	Max       float64
	IsOutlier bool
	Reason    string
}

// CheckMetricRange flags a value lying outside [min, max].
func CheckMetricRange(metric string, value, min, max float64) *RangeCheck {
	check := &RangeCheck{
		Metric: metric,
		Value:  value,
		Min:    min,
		Max:    max,
	}

	if value < min {
		check.IsOutlier = true
		check.Reason = fmt.Sprintf("%s of %.4g below plausible minimum %.4g", metric, value, min)
		return check
	}
	if value > max {
		check.IsOutlier = true
		check.Reason = fmt.Sprintf("%s of %.4g exceeds plausible maximum %.4g", metric, value, max)
		return check
	}

	return check
}
