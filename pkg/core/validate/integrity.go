package validate

import (
	"fmt"
	"math"
)

// =============================================================================
// PROJECTION INTEGRITY VALIDATION
// =============================================================================

// PeriodFlows is the slice of a projection period the integrity checks need.
// Callers convert their period records into this shape; validate stays
// independent of the projection package.
type PeriodFlows struct {
	Period         int
	Customers      float64
	Revenue        float64
	GrossProfit    float64
	Cost           float64
	NetCashFlow    float64
	CumulativeCash float64
	Saturated      bool
}

// IntegrityReport contains all consistency results for one projection.
type IntegrityReport struct {
	Scenario     string              `json:"scenario"`
	PeriodCount  int                 `json:"period_count"`
	RollForward  []*RollForwardCheck `json:"roll_forward_failures,omitempty"`
	AllPassed    bool                `json:"all_passed"`
	FailedChecks []string            `json:"failed_checks,omitempty"`
}

// ValidateProjectionIntegrity reconciles an emitted period sequence:
//  1. cumulative cash rolls forward: cum_t = cum_{t-1} + net_t
//  2. net flow decomposes: net_t = gross_profit_t - cost_t
//  3. customer counts are never negative
//  4. a saturated period carries zero customers and zero revenue
//
// Currency fields in emitted periods are rounded to cents, so tolerance
// should absorb at least two rounding steps per comparison.
func ValidateProjectionIntegrity(scenario string, periods []PeriodFlows, tolerance float64) *IntegrityReport {
	report := &IntegrityReport{
		Scenario:    scenario,
		PeriodCount: len(periods),
		AllPassed:   true,
	}

	for i, p := range periods {
		if i > 0 {
			check := CheckCashRollForward(p.Period, periods[i-1].CumulativeCash, p.NetCashFlow, p.CumulativeCash, tolerance)
			if !check.IsConsistent {
				report.AllPassed = false
				report.RollForward = append(report.RollForward, check)
				report.FailedChecks = append(report.FailedChecks,
					fmt.Sprintf("period %d: cumulative cash off by %.4f", p.Period, check.Difference))
			}
		}

		if diff := p.NetCashFlow - (p.GrossProfit - p.Cost); math.Abs(diff) > tolerance {
			report.AllPassed = false
			report.FailedChecks = append(report.FailedChecks,
				fmt.Sprintf("period %d: net flow does not equal gross profit minus cost (off by %.4f)", p.Period, diff))
		}

		if p.Customers < 0 {
			report.AllPassed = false
			report.FailedChecks = append(report.FailedChecks,
				fmt.Sprintf("period %d: negative customer count %.4f", p.Period, p.Customers))
		}

		if p.Saturated && (p.Customers != 0 || p.Revenue != 0) {
			report.AllPassed = false
			report.FailedChecks = append(report.FailedChecks,
				fmt.Sprintf("period %d: saturated but customers %.4f revenue %.4f", p.Period, p.Customers, p.Revenue))
		}
	}

	return report
}
