package validate

import (
	"testing"
)

// consistentPeriods builds a 4-period sequence whose flows reconcile exactly.
func consistentPeriods() []PeriodFlows {
	// gross profit and cost chosen so net = gp - cost; cash chains from 1000.
	return []PeriodFlows{
		{Period: 0, Customers: 100, Revenue: 10000, GrossProfit: 7000, Cost: 8000, NetCashFlow: -1000, CumulativeCash: 1000},
		{Period: 1, Customers: 103, Revenue: 10300, GrossProfit: 7210, Cost: 8160, NetCashFlow: -950, CumulativeCash: 50},
		{Period: 2, Customers: 106.09, Revenue: 10609, GrossProfit: 7426.30, Cost: 8323.20, NetCashFlow: -896.90, CumulativeCash: -846.90},
		{Period: 3, Customers: 109.27, Revenue: 10927.27, GrossProfit: 7649.09, Cost: 8489.66, NetCashFlow: -840.57, CumulativeCash: -1687.47},
	}
}

func TestValidateProjectionIntegrity_Clean(t *testing.T) {
	report := ValidateProjectionIntegrity("base", consistentPeriods(), 0.05)
	if !report.AllPassed {
		t.Fatalf("Expected clean report, failed checks: %v", report.FailedChecks)
	}
	if report.PeriodCount != 4 {
		t.Errorf("Expected 4 periods, got %d", report.PeriodCount)
	}
}

func TestValidateProjectionIntegrity_BrokenRollForward(t *testing.T) {
	periods := consistentPeriods()
	periods[2].CumulativeCash += 10 // corrupt the chain

	report := ValidateProjectionIntegrity("base", periods, 0.05)
	if report.AllPassed {
		t.Fatal("Expected roll-forward failure to be detected")
	}
	if len(report.RollForward) == 0 {
		t.Error("Expected roll-forward check details")
	}
	// Corrupting period 2 breaks its own roll-forward AND period 3's.
	if len(report.FailedChecks) < 2 {
		t.Errorf("Expected at least 2 failed checks, got %v", report.FailedChecks)
	}
}

func TestValidateProjectionIntegrity_NetFlowMismatch(t *testing.T) {
	periods := consistentPeriods()
	periods[1].NetCashFlow = 500 // no longer gp - cost, and chain breaks

	report := ValidateProjectionIntegrity("base", periods, 0.05)
	if report.AllPassed {
		t.Fatal("Expected net flow decomposition failure")
	}
}

func TestValidateProjectionIntegrity_SaturationContract(t *testing.T) {
	periods := []PeriodFlows{
		{Period: 0, Customers: 10, Revenue: 1000, GrossProfit: 700, Cost: 500, NetCashFlow: 200, CumulativeCash: 200},
		// saturated period claiming live customers violates the contract
		{Period: 1, Customers: 5, Revenue: 500, GrossProfit: 350, Cost: 510, NetCashFlow: -160, CumulativeCash: 40, Saturated: true},
	}

	report := ValidateProjectionIntegrity("conservative", periods, 0.05)
	if report.AllPassed {
		t.Fatal("Expected saturation contract violation")
	}

	// Negative customer counts are flagged regardless of saturation.
	periods[1] = PeriodFlows{Period: 1, Customers: -2, Revenue: 0, GrossProfit: 0, Cost: 510, NetCashFlow: -510, CumulativeCash: -310}
	report = ValidateProjectionIntegrity("conservative", periods, 0.05)
	if report.AllPassed {
		t.Fatal("Expected negative customer count to fail")
	}
}
