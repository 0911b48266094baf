// Package calc provides deterministic unit-economics calculations.
// This file defines the result types shared by the calculators.
package calc

// =============================================================================
// UNIT ECONOMICS DATA STRUCTURES
// =============================================================================

// Metric is one computed ratio. Available is false when the inputs needed
// to compute it were missing or degenerate; Reason says why.
type Metric struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"`
}

// UnitEconomics holds the per-customer and capital-efficiency ratios for
// one startup record. Currency metrics are rounded to 2 decimal places
// at emission; pure ratios are left at full precision.
type UnitEconomics struct {
	CAC           Metric `json:"cac"`            // blended acquisition cost per customer
	ARPU          Metric `json:"arpu"`           // average revenue per customer per month
	LTV           Metric `json:"ltv"`            // lifetime gross profit per customer
	LTVToCAC      Metric `json:"ltv_to_cac"`     // return on each acquisition dollar
	PaybackMonths Metric `json:"payback_months"` // months of contribution to recover CAC
	MonthlyBurn   Metric `json:"monthly_burn"`   // net cash consumed per month, floored at 0
	BurnMultiple  Metric `json:"burn_multiple"`  // burn per unit of net new revenue
	GrossMargin   Metric `json:"gross_margin"`   // margin the ratios above assume
}

func metricOf(v float64) Metric {
	return Metric{Value: v, Available: true}
}

func metricUnavailable(reason string) Metric {
	return Metric{Available: false, Reason: reason}
}
