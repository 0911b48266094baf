package projection

import (
	"fmt"
	"math"

	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// RATE CONVERSIONS
// A rate quoted on one period length never converts to another by division:
// growth compounds, churn converts through the survival rate.
// =============================================================================

// CompoundRateAcrossSteps converts a per-period growth rate to a span of n
// periods. Fractional n inverts the conversion (annual to monthly via 1/12).
//
// FORMULA: r_n = (1 + r)^n - 1
func CompoundRateAcrossSteps(rate float64, n float64) float64 {
	return math.Pow(1+rate, n) - 1
}

// ChurnAcrossSteps converts a per-period churn rate to a span of n periods.
// Churn is not additive; the retained fraction is what compounds.
//
// FORMULA: c_n = 1 - (1 - c)^n
func ChurnAcrossSteps(churn float64, n float64) float64 {
	return 1 - math.Pow(1-churn, n)
}

// monthsPerBasis returns the length in months of the period a rate basis
// quotes on. An empty basis defaults to monthly.
func monthsPerBasis(basis RateBasis) (float64, error) {
	switch basis {
	case BasisMonthly, "":
		return 1, nil
	case BasisAnnual:
		return 12, nil
	default:
		return 0, &models.ConfigurationError{
			Setting: "rate_basis",
			Detail:  fmt.Sprintf("unknown rate basis %q", basis),
		}
	}
}

// conversionExponent returns the number of basis periods per projection step,
// i.e. the exponent carrying a declared rate onto the step length.
func conversionExponent(basis RateBasis, gran Granularity) (float64, error) {
	months, err := monthsPerBasis(basis)
	if err != nil {
		return 0, err
	}
	return gran.MonthsPerStep() / months, nil
}
