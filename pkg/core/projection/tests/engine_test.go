package projection_test

import (
	"errors"
	"math"
	"testing"

	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

// startup builds a record with the given fields marked provided.
func startup(fields map[string]float64) *models.StartupRecord {
	rec := models.NewStartupRecord()
	for f, v := range fields {
		switch f {
		case models.FieldMonthlyRevenue:
			rec.MonthlyRevenue = v
		case models.FieldActiveCustomers:
			rec.ActiveCustomers = v
		case models.FieldChurnRate:
			rec.ChurnRate = v
		case models.FieldGrossMargin:
			rec.GrossMargin = v
		case models.FieldPricePerCustomer:
			rec.PricePerCustomer = v
		case models.FieldFixedCostsMonthly:
			rec.FixedCosts = v
		case models.FieldFundingRaised:
			rec.FundingRaised = v
		case models.FieldMoMGrowth:
			rec.MoMGrowth = v
		}
		rec.Fields[f] = models.StatusProvided
	}
	return rec
}

func TestProject_CompoundingAnchor(t *testing.T) {
	// 100 customers, 5%/period growth, 2%/period churn:
	// customers_12 = 100 * (1 + 0.05 - 0.02)^12 = 100 * 1.03^12 = 142.576...
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   100,
		models.FieldPricePerCustomer:  100,
		models.FieldGrossMargin:       0.70,
		models.FieldFixedCostsMonthly: 5000,
	})
	sc := projection.ScenarioConfig{
		Name:          projection.ScenarioBase,
		GrowthRate:    0.05,
		ChurnOverride: floatPtr(0.02),
		RateBasis:     projection.BasisMonthly,
	}

	proj, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if len(proj.Periods) != 61 {
		t.Fatalf("Expected 61 period records (period 0 + 60 steps), got %d", len(proj.Periods))
	}

	got := proj.Periods[12].Customers
	want := 100 * math.Pow(1.03, 12) // 142.576...
	if math.Abs(got-want) > 0.001 {
		t.Errorf("Expected period-12 customers %.3f, got %.3f", want, got)
	}

	// Revenue is customers x price, rounded to cents at emission.
	wantRev := math.RoundToEven(want*100*100) / 100
	if proj.Periods[12].Revenue != wantRev {
		t.Errorf("Expected period-12 revenue %.2f, got %.2f", wantRev, proj.Periods[12].Revenue)
	}
}

func TestProject_Determinism(t *testing.T) {
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   250,
		models.FieldPricePerCustomer:  80,
		models.FieldGrossMargin:       0.65,
		models.FieldChurnRate:         0.04,
		models.FieldFixedCostsMonthly: 20000,
		models.FieldFundingRaised:     500000,
	})
	sc := projection.ScenarioConfig{
		Name:           projection.ScenarioBase,
		GrowthRate:     0.05,
		CostGrowthRate: 0.02,
		RateBasis:      projection.BasisMonthly,
	}

	first, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	second, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	for i := range first.Periods {
		if first.Periods[i] != second.Periods[i] {
			t.Fatalf("Period %d differs between identical runs: %+v vs %+v",
				i, first.Periods[i], second.Periods[i])
		}
	}
	if first.Summary != second.Summary {
		t.Errorf("Summaries differ between identical runs")
	}
}

func TestProject_ScenarioMonotonicity(t *testing.T) {
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   500,
		models.FieldPricePerCustomer:  60,
		models.FieldGrossMargin:       0.55,
		models.FieldChurnRate:         0.03,
		models.FieldFixedCostsMonthly: 30000,
	})

	results := map[string]float64{}
	for _, sc := range projection.DefaultScenarios() {
		proj, err := projection.Project(rec, sc, projection.GranularityMonthly)
		if err != nil {
			t.Fatalf("Project(%s) failed: %v", sc.Name, err)
		}
		results[sc.Name] = proj.Summary.CumulativeRevenue
	}

	if results[projection.ScenarioOptimistic] < results[projection.ScenarioBase] {
		t.Errorf("Optimistic cumulative revenue %.2f below base %.2f",
			results[projection.ScenarioOptimistic], results[projection.ScenarioBase])
	}
	if results[projection.ScenarioBase] < results[projection.ScenarioConservative] {
		t.Errorf("Base cumulative revenue %.2f below conservative %.2f",
			results[projection.ScenarioBase], results[projection.ScenarioConservative])
	}
}

func TestProject_SaturationClamp(t *testing.T) {
	// Growth -50% with churn 60%: step factor = 1 - 0.5 - 0.6 = -0.1.
	// Customers would go negative at period 1; they must clamp to zero and
	// stay there, flagged saturated, with revenue never below zero.
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   100,
		models.FieldPricePerCustomer:  100,
		models.FieldGrossMargin:       0.70,
		models.FieldFixedCostsMonthly: 1000,
	})
	sc := projection.ScenarioConfig{
		Name:          "collapse",
		GrowthRate:    -0.50,
		ChurnOverride: floatPtr(0.60),
		RateBasis:     projection.BasisMonthly,
	}

	proj, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if proj.Periods[0].Saturated {
		t.Error("Period 0 reflects current state and must not be saturated")
	}
	for _, p := range proj.Periods[1:] {
		if p.Customers != 0 {
			t.Fatalf("Period %d customers = %f, expected clamp to 0", p.Period, p.Customers)
		}
		if !p.Saturated {
			t.Fatalf("Period %d not flagged saturated", p.Period)
		}
		if p.Revenue != 0 {
			t.Fatalf("Period %d revenue = %f, expected 0", p.Period, p.Revenue)
		}
	}
	if !proj.Summary.Saturated {
		t.Error("Summary must carry the saturation flag")
	}
	if proj.Summary.FinalCustomers != 0 || proj.Summary.FinalRevenue != 0 {
		t.Errorf("Expected zeroed final customers and revenue, got %f / %f",
			proj.Summary.FinalCustomers, proj.Summary.FinalRevenue)
	}
}

func TestProject_BreakevenAndRunway(t *testing.T) {
	// Margin 50%, price 100, 100 customers, growth 10%/period, no churn,
	// fixed costs 6000 flat, funding 1400.
	//
	//   t  customers  gross profit  net    cum net   funded cash
	//   0     100        5000      -1000    -1000        400
	//   1     110        5500       -500    -1500       -100   <- runway
	//   2     121        6050         50    -1450        -50
	//   3     133.1      6655        655     -795        605
	//   4     146.41     7320.5     1320.5    525.5     1925.5 <- breakeven
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   100,
		models.FieldPricePerCustomer:  100,
		models.FieldGrossMargin:       0.50,
		models.FieldFixedCostsMonthly: 6000,
		models.FieldFundingRaised:     1400,
	})
	sc := projection.ScenarioConfig{
		Name:       "steady",
		GrowthRate: 0.10,
		RateBasis:  projection.BasisMonthly,
	}

	proj, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	if proj.Summary.BreakevenPeriod != 4 {
		t.Errorf("Expected breakeven at period 4, got %d", proj.Summary.BreakevenPeriod)
	}
	if proj.Summary.RunwayPeriods != 1 {
		t.Errorf("Expected runway exhausted at period 1, got %d", proj.Summary.RunwayPeriods)
	}
	if proj.Periods[2].NetCashFlow != 50 {
		t.Errorf("Expected period-2 net flow 50, got %f", proj.Periods[2].NetCashFlow)
	}
}

func TestProject_GranularityEquivalence(t *testing.T) {
	// One annual step must equal twelve compounded monthly steps:
	// customers after year 1 = 100 * 1.05^12 either way.
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   100,
		models.FieldPricePerCustomer:  50,
		models.FieldGrossMargin:       0.60,
		models.FieldFixedCostsMonthly: 2000,
	})
	sc := projection.ScenarioConfig{
		Name:       projection.ScenarioBase,
		GrowthRate: 0.05,
		RateBasis:  projection.BasisMonthly,
	}

	monthly, err := projection.Project(rec, sc, projection.GranularityMonthly)
	if err != nil {
		t.Fatalf("monthly Project failed: %v", err)
	}
	annual, err := projection.Project(rec, sc, projection.GranularityAnnual)
	if err != nil {
		t.Fatalf("annual Project failed: %v", err)
	}

	if len(annual.Periods) != 6 {
		t.Fatalf("Expected 6 annual period records, got %d", len(annual.Periods))
	}

	if diff := math.Abs(annual.Periods[1].Customers - monthly.Periods[12].Customers); diff > 1e-6 {
		t.Errorf("Year-1 customers differ across granularities by %g", diff)
	}
	if diff := math.Abs(annual.Periods[5].Customers - monthly.Periods[60].Customers); diff > 1e-6 {
		t.Errorf("Year-5 customers differ across granularities by %g", diff)
	}

	// Annual period 0 covers twelve months of revenue at current scale.
	wantRev := 100 * 50 * 12.0
	if annual.Periods[0].Revenue != wantRev {
		t.Errorf("Expected annual period-0 revenue %.2f, got %.2f", wantRev, annual.Periods[0].Revenue)
	}
	if annual.Summary.FinalRevenue != annual.Periods[5].Revenue {
		t.Errorf("Summary final revenue %.2f does not match last period %.2f",
			annual.Summary.FinalRevenue, annual.Periods[5].Revenue)
	}
}

func TestProject_UnknownGranularity(t *testing.T) {
	rec := startup(map[string]float64{models.FieldActiveCustomers: 10})
	sc := projection.ScenarioConfig{Name: "x", GrowthRate: 0.05}

	_, err := projection.Project(rec, sc, projection.Granularity("weekly"))
	if err == nil {
		t.Fatal("Expected configuration error for unknown granularity")
	}
	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Setting != "granularity" {
		t.Errorf("Expected ConfigurationError on granularity, got %v", err)
	}
}
