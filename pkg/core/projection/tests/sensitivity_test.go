package projection_test

import (
	"testing"

	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

func sensitivityFixture() (*models.StartupRecord, projection.ScenarioConfig) {
	rec := startup(map[string]float64{
		models.FieldActiveCustomers:   400,
		models.FieldPricePerCustomer:  75,
		models.FieldGrossMargin:       0.65,
		models.FieldChurnRate:         0.03,
		models.FieldFixedCostsMonthly: 25000,
		models.FieldFundingRaised:     300000,
	})
	sc := projection.ScenarioConfig{
		Name:           projection.ScenarioBase,
		GrowthRate:     0.05,
		CostGrowthRate: 0.02,
		RateBasis:      projection.BasisMonthly,
	}
	return rec, sc
}

func TestAnalyze_GridShapeAndBounds(t *testing.T) {
	rec, sc := sensitivityFixture()

	report, err := projection.Analyze(rec, sc, projection.GranularityMonthly, projection.DefaultGrid())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Default grid: 5 growth deltas x 3 churn deltas.
	if len(report.Cells) != 15 {
		t.Fatalf("Expected 15 grid cells, got %d", len(report.Cells))
	}

	if report.MinFinalCash > report.MeanFinalCash || report.MeanFinalCash > report.MaxFinalCash {
		t.Errorf("Expected min <= mean <= max, got min=%.2f mean=%.2f max=%.2f",
			report.MinFinalCash, report.MeanFinalCash, report.MaxFinalCash)
	}
	if report.StdDevFinalCash < 0 {
		t.Errorf("Negative standard deviation %.4f", report.StdDevFinalCash)
	}

	// The extremes must belong to actual grid cells.
	foundMin, foundMax := false, false
	for _, c := range report.Cells {
		if c.FinalCash == report.MinFinalCash {
			foundMin = true
		}
		if c.FinalCash == report.MaxFinalCash {
			foundMax = true
		}
	}
	if !foundMin || !foundMax {
		t.Error("Min/max final cash not found among grid cells")
	}
}

func TestAnalyze_ElasticitySigns(t *testing.T) {
	rec, sc := sensitivityFixture()

	report, err := projection.Analyze(rec, sc, projection.GranularityMonthly, projection.DefaultGrid())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// More growth means more cumulative revenue.
	if report.GrowthElasticity <= 0 {
		t.Errorf("Expected positive growth elasticity, got %f", report.GrowthElasticity)
	}
	// More churn means less cumulative revenue.
	if report.ChurnElasticity >= 0 {
		t.Errorf("Expected negative churn elasticity, got %f", report.ChurnElasticity)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	rec, sc := sensitivityFixture()

	first, err := projection.Analyze(rec, sc, projection.GranularityMonthly, projection.DefaultGrid())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := projection.Analyze(rec, sc, projection.GranularityMonthly, projection.DefaultGrid())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for i := range first.Cells {
		if first.Cells[i] != second.Cells[i] {
			t.Fatalf("Cell %d differs between identical runs", i)
		}
	}
	if first.GrowthElasticity != second.GrowthElasticity ||
		first.ChurnElasticity != second.ChurnElasticity {
		t.Error("Elasticities differ between identical runs")
	}
}

func TestAnalyze_EmptyGridFallsBack(t *testing.T) {
	rec, sc := sensitivityFixture()

	report, err := projection.Analyze(rec, sc, projection.GranularityMonthly, projection.Grid{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(report.Cells) != 15 {
		t.Errorf("Expected default grid fallback (15 cells), got %d", len(report.Cells))
	}
}
