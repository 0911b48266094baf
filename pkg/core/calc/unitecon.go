package calc

import (
	"math"

	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// UNIT ECONOMICS ENGINE
// Pure ratio math over a normalized startup record. Every ratio that cannot
// be computed is reported as a CalculationError and the rest still compute.
// =============================================================================

// safeDiv guards the pure helpers below: a zero denominator yields zero
// instead of ±Inf. ComputeUnitEconomics checks denominators explicitly and
// never relies on this fallback for reported metrics.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// CustomerAcquisitionCost = Acquisition Spend / New Customers
func CustomerAcquisitionCost(acquisitionSpend, newCustomers float64) float64 {
	return safeDiv(acquisitionSpend, newCustomers)
}

// AverageRevenuePerUser = Monthly Revenue / Active Customers
func AverageRevenuePerUser(monthlyRevenue, activeCustomers float64) float64 {
	return safeDiv(monthlyRevenue, activeCustomers)
}

// LifetimeValue = (ARPU × Gross Margin) / Churn Rate
// Expected customer lifetime is 1/churn months, so this is the monthly
// margin contribution times the expected lifetime.
func LifetimeValue(arpu, grossMargin, churnRate float64) float64 {
	return safeDiv(arpu*grossMargin, churnRate)
}

// PaybackPeriodMonths = CAC / (ARPU × Gross Margin)
func PaybackPeriodMonths(cac, arpu, grossMargin float64) float64 {
	return safeDiv(cac, arpu*grossMargin)
}

// NetMonthlyBurn = Fixed Costs + COGS + Acquisition Spend − Revenue,
// floored at zero. A cash-flow-positive company burns nothing.
func NetMonthlyBurn(fixedCosts, monthlyRevenue, grossMargin, acquisitionSpend float64) float64 {
	burn := fixedCosts + (1-grossMargin)*monthlyRevenue + acquisitionSpend - monthlyRevenue
	return math.Max(0, burn)
}

// CapitalBurnMultiple = Monthly Burn / Net New Revenue
func CapitalBurnMultiple(monthlyBurn, netNewRevenue float64) float64 {
	return safeDiv(monthlyBurn, netNewRevenue)
}

// ComputeUnitEconomics derives the full ratio set from a normalized record.
// Ratios whose inputs are missing or degenerate come back unavailable with
// one CalculationError each; every other ratio is still computed. Currency
// metrics (cac, arpu, ltv, monthly_burn) are rounded to cents exactly once,
// on the returned struct. The record itself is never mutated.
func ComputeUnitEconomics(rec *models.StartupRecord) (*UnitEconomics, []models.CalculationError) {
	ue := &UnitEconomics{}
	var errs []models.CalculationError

	fail := func(metric string, kind models.CalcErrorKind, detail string) Metric {
		errs = append(errs, models.CalculationError{Metric: metric, Kind: kind, Detail: detail})
		return metricUnavailable(detail)
	}

	// --- CAC: stated value wins, otherwise spend per new customer ---
	switch {
	case rec.Has(models.FieldCAC):
		ue.CAC = metricOf(rec.CAC)
	case rec.Has(models.FieldAcquisitionSpend) && rec.Has(models.FieldNewCustomers):
		if rec.NewCustomers == 0 {
			ue.CAC = fail("cac", models.KindDivisionByZero, "new_customers_monthly is zero")
		} else {
			ue.CAC = metricOf(CustomerAcquisitionCost(rec.AcquisitionSpend, rec.NewCustomers))
		}
	default:
		ue.CAC = fail("cac", models.KindInsufficientData,
			"needs a stated cac or acquisition_spend with new_customers_monthly")
	}

	// --- ARPU: stated price wins, otherwise revenue per active customer ---
	switch {
	case rec.Provided(models.FieldPricePerCustomer):
		ue.ARPU = metricOf(rec.PricePerCustomer)
	case rec.Has(models.FieldMonthlyRevenue) && rec.Has(models.FieldActiveCustomers):
		if rec.ActiveCustomers == 0 {
			ue.ARPU = fail("arpu", models.KindDivisionByZero, "active_customers is zero")
		} else {
			ue.ARPU = metricOf(AverageRevenuePerUser(rec.MonthlyRevenue, rec.ActiveCustomers))
		}
	case rec.Has(models.FieldPricePerCustomer):
		ue.ARPU = metricOf(rec.PricePerCustomer)
	default:
		ue.ARPU = fail("arpu", models.KindInsufficientData,
			"needs price_per_customer or monthly_revenue with active_customers")
	}

	// --- LTV and payback: both demand a positive churn rate ---
	// Margin contribution collected after the expected lifetime (1/churn)
	// is never realized, so neither metric is certifiable without churn.
	churnOK := false
	switch {
	case !rec.Has(models.FieldChurnRate):
		ue.LTV = fail("ltv", models.KindInsufficientData, "churn_rate missing")
		ue.PaybackMonths = fail("payback_months", models.KindInsufficientData, "churn_rate missing")
	case rec.ChurnRate == 0:
		ue.LTV = fail("ltv", models.KindDivisionByZero, "churn_rate is zero")
		ue.PaybackMonths = fail("payback_months", models.KindDivisionByZero, "churn_rate is zero")
	default:
		churnOK = true
	}

	if churnOK {
		switch {
		case !ue.ARPU.Available:
			ue.LTV = fail("ltv", models.KindInsufficientData, "arpu unavailable")
		case !rec.Has(models.FieldGrossMargin):
			ue.LTV = fail("ltv", models.KindInsufficientData, "gross_margin missing")
		default:
			ue.LTV = metricOf(LifetimeValue(ue.ARPU.Value, rec.GrossMargin, rec.ChurnRate))
		}

		contribution := ue.ARPU.Value * rec.GrossMargin
		switch {
		case !ue.CAC.Available:
			ue.PaybackMonths = fail("payback_months", models.KindInsufficientData, "cac unavailable")
		case !ue.ARPU.Available:
			ue.PaybackMonths = fail("payback_months", models.KindInsufficientData, "arpu unavailable")
		case !rec.Has(models.FieldGrossMargin):
			ue.PaybackMonths = fail("payback_months", models.KindInsufficientData, "gross_margin missing")
		case contribution == 0:
			ue.PaybackMonths = fail("payback_months", models.KindDivisionByZero,
				"monthly margin contribution is zero")
		default:
			ue.PaybackMonths = metricOf(PaybackPeriodMonths(ue.CAC.Value, ue.ARPU.Value, rec.GrossMargin))
		}
	}

	// --- LTV:CAC ---
	switch {
	case !ue.LTV.Available:
		ue.LTVToCAC = fail("ltv_to_cac", models.KindInsufficientData, "ltv unavailable")
	case !ue.CAC.Available:
		ue.LTVToCAC = fail("ltv_to_cac", models.KindInsufficientData, "cac unavailable")
	case ue.CAC.Value == 0:
		ue.LTVToCAC = fail("ltv_to_cac", models.KindDivisionByZero, "cac is zero")
	default:
		ue.LTVToCAC = metricOf(ue.LTV.Value / ue.CAC.Value)
	}

	// --- Burn ---
	if rec.Has(models.FieldFixedCostsMonthly) && rec.Has(models.FieldMonthlyRevenue) && rec.Has(models.FieldGrossMargin) {
		spend := 0.0
		if rec.Has(models.FieldAcquisitionSpend) {
			spend = rec.AcquisitionSpend
		}
		ue.MonthlyBurn = metricOf(NetMonthlyBurn(rec.FixedCosts, rec.MonthlyRevenue, rec.GrossMargin, spend))
	} else {
		ue.MonthlyBurn = fail("monthly_burn", models.KindInsufficientData,
			"needs fixed_costs_monthly, monthly_revenue and gross_margin")
	}

	netNewRevenue := rec.MonthlyRevenue * rec.MoMGrowth
	switch {
	case !ue.MonthlyBurn.Available:
		ue.BurnMultiple = fail("burn_multiple", models.KindInsufficientData, "monthly_burn unavailable")
	case ue.MonthlyBurn.Value == 0:
		// No burn means perfect capital efficiency regardless of growth.
		ue.BurnMultiple = metricOf(0)
	case !rec.Has(models.FieldMoMGrowth):
		ue.BurnMultiple = fail("burn_multiple", models.KindInsufficientData, "mom_growth missing")
	case netNewRevenue <= 0:
		ue.BurnMultiple = fail("burn_multiple", models.KindDivisionByZero, "net new revenue is not positive")
	default:
		ue.BurnMultiple = metricOf(CapitalBurnMultiple(ue.MonthlyBurn.Value, netNewRevenue))
	}

	// --- Gross margin: input echo; absence is already reported by the
	// ratios that depend on it ---
	if rec.Has(models.FieldGrossMargin) {
		ue.GrossMargin = metricOf(rec.GrossMargin)
	} else {
		ue.GrossMargin = metricUnavailable("gross_margin missing")
	}

	// Output boundary: currency metrics round to cents exactly once.
	// Ratios and period counts stay full precision.
	ue.CAC = rounded(ue.CAC)
	ue.ARPU = rounded(ue.ARPU)
	ue.LTV = rounded(ue.LTV)
	ue.MonthlyBurn = rounded(ue.MonthlyBurn)

	return ue, errs
}
