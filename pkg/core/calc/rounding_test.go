package calc

import "testing"

func TestRoundCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.344, 12.34},
		{12.346, 12.35},
		{1400.0, 1400.0},
		{0, 0},
		// Exact half-cents resolve to the even neighbor in both directions.
		{0.125, 0.12},
		{0.375, 0.38},
		{0.625, 0.62},
		{-0.125, -0.12},
	}
	for _, c := range cases {
		if got := RoundCurrency(c.in); got != c.want {
			t.Errorf("RoundCurrency(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestRoundedSkipsUnavailable(t *testing.T) {
	m := metricUnavailable("churn_rate missing")
	if r := rounded(m); r.Available || r.Reason != "churn_rate missing" {
		t.Errorf("Unavailable metric must pass through untouched, got %+v", r)
	}
}
