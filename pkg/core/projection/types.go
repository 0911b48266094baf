// Package projection implements the five-year scenario revenue model:
// a deterministic customer/revenue/cost recurrence run once per scenario,
// plus a sensitivity sweep around the base assumptions.
package projection

// =============================================================================
// PROJECTION DATA STRUCTURES
// =============================================================================

// PeriodRecord is one step of a scenario projection. Period 0 is the company
// as submitted, at its current scale; later periods apply the scenario
// recurrence. Currency fields are rounded to cents at emission; Customers
// keeps full precision because it is a count, not money.
type PeriodRecord struct {
	Period         int     `json:"period"`
	Customers      float64 `json:"customers"`
	Revenue        float64 `json:"revenue"`
	GrossProfit    float64 `json:"gross_profit"`
	Cost           float64 `json:"cost"`
	NetCashFlow    float64 `json:"net_cash_flow"`
	CumulativeCash float64 `json:"cumulative_cash"` // includes starting funds
	Saturated      bool    `json:"saturated,omitempty"`
}

// Summary condenses one scenario run. BreakevenPeriod is the first period
// whose cumulative net cash flow (excluding starting funds) reaches zero.
// RunwayPeriods is the first period where funded cash goes negative. Both
// are -1 when the event never happens inside the horizon.
type Summary struct {
	FinalCustomers    float64 `json:"final_customers"`
	FinalRevenue      float64 `json:"final_revenue"`
	CumulativeRevenue float64 `json:"cumulative_revenue"`
	FinalCash         float64 `json:"final_cash"` // includes starting funds
	BreakevenPeriod   int     `json:"breakeven_period"`
	RunwayPeriods     int     `json:"runway_periods"`
	RevenueCAGR       float64 `json:"revenue_cagr"`
	Saturated         bool    `json:"saturated"`
}

// ScenarioProjection is the complete output of one scenario run.
type ScenarioProjection struct {
	Scenario    string         `json:"scenario"`
	Granularity Granularity    `json:"granularity"`
	Periods     []PeriodRecord `json:"periods"`
	Summary     Summary        `json:"summary"`
}
