package normalize

import (
	"math"
	"testing"
)

func TestParseNumberString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain integer", "42", 42},
		{"Plain decimal", "1234.56", 1234.56},
		{"Dollar millions", "$1.2m", 1.2e6},
		{"Indian grouping", "₹3,50,000", 350000},
		{"Lakh suffix", "2 lakh", 200000},
		{"Crore suffix", "1.5 cr", 1.5e7},
		{"Rupee word", "rs. 750", 750},
		{"Billion short", "3.5bn", 3.5e9},
		{"Billion bare", "2b", 2e9},
		{"Thousand suffix", "250k", 250000},
		{"Million word", "4 million", 4e6},
		{"Western grouping", "1,200,000", 1.2e6},
		{"USD prefix", "usd 99", 99},
		{"Percent", "12%", 0.12},
		{"Negative percent", "-20%", -0.20},
		{"Percent word", "35 percent", 0.35},
		{"Accounting negative", "(500)", -500},
		{"Scientific", "1.2e6", 1.2e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := parseNumberString(tt.input)
			if err != nil {
				t.Fatalf("parseNumberString(%q) failed: %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("parseNumberString(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseNumberString_PercentFlag(t *testing.T) {
	// "150%" must keep its percent marking so fraction fields can reject it
	// instead of re-dividing it to 0.015.
	v, wasPercent, err := parseNumberString("150%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wasPercent {
		t.Error("Expected percent flag for '150%'")
	}
	if math.Abs(v-1.5) > 1e-9 {
		t.Errorf("Expected 1.5, got %v", v)
	}

	// Bare numbers are not percent-marked.
	_, wasPercent, _ = parseNumberString("70")
	if wasPercent {
		t.Error("Bare number should not be percent-marked")
	}
}

func TestParseNumberString_Errors(t *testing.T) {
	for _, input := range []string{"", "abc", "1.5x", "₹", "%"} {
		if _, _, err := parseNumberString(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestCoerceNumber_Types(t *testing.T) {
	if v, err := CoerceNumber(float64(3.25)); err != nil || v != 3.25 {
		t.Errorf("float64 passthrough failed: %v, %v", v, err)
	}
	if v, err := CoerceNumber(int(7)); err != nil || v != 7 {
		t.Errorf("int coercion failed: %v, %v", v, err)
	}
	if v, err := CoerceNumber("$2,500"); err != nil || v != 2500 {
		t.Errorf("string coercion failed: %v, %v", v, err)
	}
	if _, err := CoerceNumber(nil); err == nil {
		t.Error("Expected error for nil")
	}
	if _, err := CoerceNumber(true); err == nil {
		t.Error("Expected error for bool")
	}
}
