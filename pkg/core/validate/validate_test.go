package validate

import (
	"math"
	"testing"
)

// =============================================================================
// GROWTH TESTS
// =============================================================================

func TestCalculatePeriodGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{"Positive growth", 110, 100, 0.10},
		{"Negative growth", 90, 100, -0.10},
		{"Zero growth", 100, 100, 0.0},
		{"Double", 200, 100, 1.0},
		{"Halved", 50, 100, -0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePeriodGrowth(tt.current, tt.prior)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("CalculatePeriodGrowth(%v, %v) = %v, want %v", tt.current, tt.prior, result, tt.expected)
			}
		})
	}
}

func TestCalculatePeriodGrowth_FromZero(t *testing.T) {
	// Growth from a zero base must surface as +Inf, not a silent zero,
	// so callers can tell "new revenue stream" apart from "no change".
	g := CalculatePeriodGrowth(50, 0)
	if !math.IsInf(g, 1) {
		t.Errorf("Expected +Inf for growth from zero, got %f", g)
	}

	if g := CalculatePeriodGrowth(0, 0); g != 0 {
		t.Errorf("Expected 0 for zero-to-zero, got %f", g)
	}
}

// =============================================================================
// CAGR TESTS
// =============================================================================

func TestCalculateCAGR(t *testing.T) {
	// $100 growing to $121 over 2 years = 10% CAGR
	// (121/100)^0.5 - 1 = 0.10
	cagr := CalculateCAGR(100, 121, 2)
	if math.Abs(cagr-0.10) > 0.0001 {
		t.Errorf("CAGR = %f, expected 0.10", cagr)
	}

	// Doubling over 5 years: 2^(1/5) - 1 ≈ 0.1487
	cagr5 := CalculateCAGR(100, 200, 5)
	expected := math.Pow(2, 1.0/5.0) - 1
	if math.Abs(cagr5-expected) > 0.0001 {
		t.Errorf("CAGR = %f, expected %f", cagr5, expected)
	}
	t.Logf("100→200 over 5 years CAGR: %.2f%%", cagr5*100)

	// Degenerate inputs yield 0
	if c := CalculateCAGR(0, 200, 5); c != 0 {
		t.Errorf("Expected 0 CAGR for zero start, got %f", c)
	}
	if c := CalculateCAGR(100, 200, 0); c != 0 {
		t.Errorf("Expected 0 CAGR for zero years, got %f", c)
	}
}

// =============================================================================
// CASH ROLL-FORWARD TESTS
// =============================================================================

func TestCheckCashRollForward(t *testing.T) {
	// 1000 prior + 250 net flow = 1250 reported → consistent
	check := CheckCashRollForward(3, 1000, 250, 1250, 0.01)
	if !check.IsConsistent {
		t.Errorf("Expected consistent roll-forward, got difference %f", check.Difference)
	}
	if check.ComputedCash != 1250 {
		t.Errorf("Expected computed cash 1250, got %f", check.ComputedCash)
	}

	// Off by a dollar with cent tolerance → inconsistent
	check = CheckCashRollForward(3, 1000, 250, 1251, 0.01)
	if check.IsConsistent {
		t.Error("Expected inconsistent roll-forward for 1.00 difference")
	}
	if math.Abs(check.Difference-1.0) > 0.0001 {
		t.Errorf("Expected difference 1.0, got %f", check.Difference)
	}
	t.Logf("Roll-forward mismatch at period %d: %.2f vs %.2f", check.Period, check.ReportedCash, check.ComputedCash)
}

func TestCheckCashRollForward_NegativeFlows(t *testing.T) {
	// Burn: 5000 prior - 1200 net flow = 3800
	check := CheckCashRollForward(1, 5000, -1200, 3800, 0.01)
	if !check.IsConsistent {
		t.Errorf("Expected consistent roll-forward with negative flow, difference %f", check.Difference)
	}
}

// =============================================================================
// PLAUSIBILITY RANGE TESTS
// =============================================================================

func TestCheckMetricRange(t *testing.T) {
	// Monthly churn of 65% lies outside the plausible [0, 0.5] band.
	check := CheckMetricRange("churn_rate", 0.65, 0, 0.5)
	if !check.IsOutlier {
		t.Error("Expected 0.65 churn to be flagged as outlier")
	}
	if check.Reason == "" {
		t.Error("Expected a reason on outlier check")
	}
	t.Logf("Outlier reason: %s", check.Reason)

	// In-range value passes.
	check = CheckMetricRange("churn_rate", 0.05, 0, 0.5)
	if check.IsOutlier {
		t.Errorf("Expected 0.05 churn to pass, got reason %q", check.Reason)
	}

	// Below minimum.
	check = CheckMetricRange("gross_margin", -0.1, 0, 1)
	if !check.IsOutlier {
		t.Error("Expected negative margin to be flagged")
	}
}
