package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// DIMENSION WEIGHTS
// =============================================================================
// Five fixed dimensions, each weighted into the composite. Weights are
// configuration, never inferred from the record being scored.

// Scoring dimensions.
const (
	DimensionTeam       = "team"
	DimensionMarket     = "market"
	DimensionTraction   = "traction"
	DimensionProduct    = "product"
	DimensionFinancials = "financials"
)

// Default dimension weights. Sum is 1.0.
const (
	DefaultTeamWeight       = 0.15
	DefaultMarketWeight     = 0.20
	DefaultTractionWeight   = 0.25
	DefaultProductWeight    = 0.15
	DefaultFinancialsWeight = 0.25
)

// WeightSumTolerance bounds how far a weight sum may drift from 1.0.
const WeightSumTolerance = 0.001

// Dimensions lists the scoring dimensions in report order.
func Dimensions() []string {
	return []string{
		DimensionTeam,
		DimensionMarket,
		DimensionTraction,
		DimensionProduct,
		DimensionFinancials,
	}
}

// WeightSet maps each dimension to its share of the composite score.
type WeightSet map[string]float64

// DefaultWeights returns the standard weighting.
func DefaultWeights() WeightSet {
	return WeightSet{
		DimensionTeam:       DefaultTeamWeight,
		DimensionMarket:     DefaultMarketWeight,
		DimensionTraction:   DefaultTractionWeight,
		DimensionProduct:    DefaultProductWeight,
		DimensionFinancials: DefaultFinancialsWeight,
	}
}

// Validate checks that ws covers exactly the five dimensions, carries no
// negative weight, and sums to 1.0 within WeightSumTolerance.
func (ws WeightSet) Validate() error {
	for _, dim := range Dimensions() {
		w, ok := ws[dim]
		if !ok {
			return &models.ConfigurationError{
				Setting: "weights",
				Detail:  fmt.Sprintf("missing dimension %q", dim),
			}
		}
		if w < 0 {
			return &models.ConfigurationError{
				Setting: "weights",
				Detail:  fmt.Sprintf("negative weight %.4f for dimension %q", w, dim),
			}
		}
	}
	if len(ws) != len(Dimensions()) {
		known := make(map[string]bool, len(Dimensions()))
		for _, dim := range Dimensions() {
			known[dim] = true
		}
		var extras []string
		for name := range ws {
			if !known[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		return &models.ConfigurationError{
			Setting: "weights",
			Detail:  fmt.Sprintf("unknown dimension(s): %s", strings.Join(extras, ", ")),
		}
	}
	sum := 0.0
	for _, w := range ws {
		sum += w
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return &models.ConfigurationError{
			Setting: "weights",
			Detail:  fmt.Sprintf("weights sum to %.4f, want 1.0 within %.3f", sum, WeightSumTolerance),
		}
	}
	return nil
}
