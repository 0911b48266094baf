package projection

import (
	"fmt"

	"github.com/riddhi2106/VentureValuator/pkg/core/calc"
	"github.com/riddhi2106/VentureValuator/pkg/core/validate"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// SCENARIO PROJECTION ENGINE
// One recurrence, many assumption bundles. Identical inputs always produce
// identical period sequences.
// =============================================================================

// ProjectCustomers rolls the customer base forward one period.
//
// FORMULA: Customers_t = Customers_{t-1} × (1 + growth − churn)
func ProjectCustomers(prior, growthRate, churnRate float64) float64 {
	return prior * (1 + growthRate - churnRate)
}

// ProjectCost rolls operating cost forward one period.
//
// FORMULA: Cost_t = Cost_{t-1} × (1 + costGrowth)
func ProjectCost(prior, costGrowthRate float64) float64 {
	return prior * (1 + costGrowthRate)
}

// Project runs one scenario over the fixed five-year horizon at the given
// granularity. Declared rates are converted to the step length first, so
// granularity changes the step count, never the modeled economics.
func Project(rec *models.StartupRecord, sc ScenarioConfig, gran Granularity) (*ScenarioProjection, error) {
	if !gran.Valid() {
		return nil, &models.ConfigurationError{
			Setting: "granularity",
			Detail:  fmt.Sprintf("unknown granularity %q", gran),
		}
	}
	exp, err := conversionExponent(sc.RateBasis, gran)
	if err != nil {
		return nil, err
	}

	growth := CompoundRateAcrossSteps(sc.GrowthRate, exp)
	costGrowth := CompoundRateAcrossSteps(sc.CostGrowthRate, exp)

	// Churn precedence: scenario override, then the record. A record with no
	// churn information is modeled without attrition; the scorecard carries
	// the provenance of that gap.
	var churn float64
	switch {
	case sc.ChurnOverride != nil:
		churn = ChurnAcrossSteps(*sc.ChurnOverride, exp)
	case rec.Has(models.FieldChurnRate):
		churn = ChurnAcrossSteps(rec.ChurnRate, gran.MonthsPerStep())
	}

	return runRecurrence(rec, sc.Name, gran, growth, churn, costGrowth), nil
}

// ProjectAll runs every scenario in the registry against the same record.
// Results come back in registry order.
func ProjectAll(rec *models.StartupRecord, reg *Registry, gran Granularity) ([]*ScenarioProjection, error) {
	out := make([]*ScenarioProjection, 0, len(reg.order))
	for _, sc := range reg.All() {
		proj, err := Project(rec, sc, gran)
		if err != nil {
			return nil, err
		}
		out = append(out, proj)
	}
	return out, nil
}

// startingPrice resolves the per-customer monthly price the projection
// starts from: a stated price wins, then revenue per active customer, then
// whatever default the normalizer assigned.
func startingPrice(rec *models.StartupRecord) float64 {
	if rec.Provided(models.FieldPricePerCustomer) {
		return rec.PricePerCustomer
	}
	if rec.Has(models.FieldMonthlyRevenue) && rec.ActiveCustomers > 0 {
		return calc.AverageRevenuePerUser(rec.MonthlyRevenue, rec.ActiveCustomers)
	}
	return rec.PricePerCustomer
}

// runRecurrence executes the per-step model with rates already on the step
// basis. The recurrence carries full-precision values; currency is rounded
// only on the emitted period records.
func runRecurrence(rec *models.StartupRecord, name string, gran Granularity, growth, churn, costGrowth float64) *ScenarioProjection {
	monthsPerStep := gran.MonthsPerStep()

	customers := rec.ActiveCustomers
	price := startingPrice(rec) * monthsPerStep
	cost := rec.FixedCosts * monthsPerStep
	margin := rec.GrossMargin

	periods := gran.PeriodsPerHorizon()
	records := make([]PeriodRecord, 0, periods+1)

	cash := rec.FundingRaised // starting funds
	cumNet := 0.0             // cumulative net flow, excluding starting funds
	saturated := false
	breakeven, runway := -1, -1
	var firstRevenue, finalRevenue, totalRevenue float64

	for t := 0; t <= periods; t++ {
		if t > 0 {
			customers = ProjectCustomers(customers, growth, churn)
			cost = ProjectCost(cost, costGrowth)
		}
		// Churn beyond growth can only shrink the base to zero, never below.
		if customers < 0 {
			customers = 0
			saturated = true
		}

		revenue := customers * price
		grossProfit := revenue * margin
		net := grossProfit - cost
		cash += net
		cumNet += net

		if t == 0 {
			firstRevenue = revenue
		}
		finalRevenue = revenue
		totalRevenue += revenue

		if breakeven == -1 && cumNet >= 0 {
			breakeven = t
		}
		if runway == -1 && cash < 0 {
			runway = t
		}

		records = append(records, PeriodRecord{
			Period:         t,
			Customers:      customers,
			Revenue:        calc.RoundCurrency(revenue),
			GrossProfit:    calc.RoundCurrency(grossProfit),
			Cost:           calc.RoundCurrency(cost),
			NetCashFlow:    calc.RoundCurrency(net),
			CumulativeCash: calc.RoundCurrency(cash),
			Saturated:      saturated,
		})
	}

	return &ScenarioProjection{
		Scenario:    name,
		Granularity: gran,
		Periods:     records,
		Summary: Summary{
			FinalCustomers:    customers,
			FinalRevenue:      calc.RoundCurrency(finalRevenue),
			CumulativeRevenue: calc.RoundCurrency(totalRevenue),
			FinalCash:         calc.RoundCurrency(cash),
			BreakevenPeriod:   breakeven,
			RunwayPeriods:     runway,
			RevenueCAGR:       validate.CalculateCAGR(firstRevenue, finalRevenue, HorizonYears),
			Saturated:         saturated,
		},
	}
}
