package projection

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// SENSITIVITY ANALYSIS
// Re-runs the projection over a deterministic grid of growth/churn deltas
// around one scenario. No randomness: the grid is the whole experiment.
// =============================================================================

// elasticityStep is the half-width of the central difference used for the
// elasticity estimates.
const elasticityStep = 0.01

// Grid defines the assumption offsets swept around the scenario.
type Grid struct {
	GrowthDeltas []float64 `json:"growth_deltas" yaml:"growth_deltas"`
	ChurnDeltas  []float64 `json:"churn_deltas" yaml:"churn_deltas"`
}

// DefaultGrid sweeps growth ±2% and churn ±1% in 1% steps.
func DefaultGrid() Grid {
	return Grid{
		GrowthDeltas: []float64{-0.02, -0.01, 0, 0.01, 0.02},
		ChurnDeltas:  []float64{-0.01, 0, 0.01},
	}
}

// SensitivityCell is one grid point: the assumptions actually applied and
// the outcomes they produced.
type SensitivityCell struct {
	GrowthRate        float64 `json:"growth_rate"`
	ChurnRate         float64 `json:"churn_rate"`
	CumulativeRevenue float64 `json:"cumulative_revenue"`
	FinalCash         float64 `json:"final_cash"`
	BreakevenPeriod   int     `json:"breakeven_period"`
}

// SensitivityReport aggregates the sweep. Elasticities are central-difference
// estimates of cumulative revenue response, normalized to be dimensionless:
// (dR/dx) × (x/R).
type SensitivityReport struct {
	Scenario         string            `json:"scenario"`
	Granularity      Granularity       `json:"granularity"`
	Cells            []SensitivityCell `json:"cells"`
	MeanFinalCash    float64           `json:"mean_final_cash"`
	StdDevFinalCash  float64           `json:"stddev_final_cash"`
	MinFinalCash     float64           `json:"min_final_cash"`
	MaxFinalCash     float64           `json:"max_final_cash"`
	GrowthElasticity float64           `json:"growth_elasticity"`
	ChurnElasticity  float64           `json:"churn_elasticity"`
}

// Analyze sweeps the grid around one scenario and aggregates the outcomes.
func Analyze(rec *models.StartupRecord, sc ScenarioConfig, gran Granularity, grid Grid) (*SensitivityReport, error) {
	if len(grid.GrowthDeltas) == 0 || len(grid.ChurnDeltas) == 0 {
		grid = DefaultGrid()
	}

	baseChurn, err := effectiveChurn(rec, sc)
	if err != nil {
		return nil, err
	}

	report := &SensitivityReport{
		Scenario:    sc.Name,
		Granularity: gran,
		Cells:       make([]SensitivityCell, 0, len(grid.GrowthDeltas)*len(grid.ChurnDeltas)),
	}

	finalCash := make([]float64, 0, cap(report.Cells))
	for _, gd := range grid.GrowthDeltas {
		for _, cd := range grid.ChurnDeltas {
			growth := sc.GrowthRate + gd
			churn := clampRate(baseChurn + cd)
			proj, err := projectVariant(rec, sc, gran, growth, churn)
			if err != nil {
				return nil, err
			}
			report.Cells = append(report.Cells, SensitivityCell{
				GrowthRate:        growth,
				ChurnRate:         churn,
				CumulativeRevenue: proj.Summary.CumulativeRevenue,
				FinalCash:         proj.Summary.FinalCash,
				BreakevenPeriod:   proj.Summary.BreakevenPeriod,
			})
			finalCash = append(finalCash, proj.Summary.FinalCash)
		}
	}

	report.MeanFinalCash = stat.Mean(finalCash, nil)
	if len(finalCash) > 1 {
		report.StdDevFinalCash = stat.StdDev(finalCash, nil)
	}
	report.MinFinalCash = floats.Min(finalCash)
	report.MaxFinalCash = floats.Max(finalCash)

	report.GrowthElasticity, err = growthElasticity(rec, sc, gran, baseChurn)
	if err != nil {
		return nil, err
	}
	report.ChurnElasticity, err = churnElasticity(rec, sc, gran, baseChurn)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// effectiveChurn resolves the churn the scenario would actually apply,
// quoted on the scenario's rate basis.
func effectiveChurn(rec *models.StartupRecord, sc ScenarioConfig) (float64, error) {
	if sc.ChurnOverride != nil {
		return *sc.ChurnOverride, nil
	}
	if !rec.Has(models.FieldChurnRate) {
		return 0, nil
	}
	n, err := monthsPerBasis(sc.RateBasis)
	if err != nil {
		return 0, err
	}
	return ChurnAcrossSteps(rec.ChurnRate, n), nil
}

// projectVariant runs the scenario with growth and churn pinned to explicit
// values on the scenario's declared basis.
func projectVariant(rec *models.StartupRecord, sc ScenarioConfig, gran Granularity, growth, churn float64) (*ScenarioProjection, error) {
	v := sc
	v.GrowthRate = growth
	c := churn
	v.ChurnOverride = &c
	return Project(rec, v, gran)
}

// growthElasticity estimates (dR/dg) × (g/R) by central difference over
// cumulative revenue.
func growthElasticity(rec *models.StartupRecord, sc ScenarioConfig, gran Granularity, baseChurn float64) (float64, error) {
	up, err := projectVariant(rec, sc, gran, sc.GrowthRate+elasticityStep, baseChurn)
	if err != nil {
		return 0, err
	}
	down, err := projectVariant(rec, sc, gran, sc.GrowthRate-elasticityStep, baseChurn)
	if err != nil {
		return 0, err
	}
	center, err := projectVariant(rec, sc, gran, sc.GrowthRate, baseChurn)
	if err != nil {
		return 0, err
	}
	return elasticity(up.Summary.CumulativeRevenue, down.Summary.CumulativeRevenue, center.Summary.CumulativeRevenue, sc.GrowthRate), nil
}

// churnElasticity estimates (dR/dc) × (c/R) by central difference over
// cumulative revenue.
func churnElasticity(rec *models.StartupRecord, sc ScenarioConfig, gran Granularity, baseChurn float64) (float64, error) {
	up, err := projectVariant(rec, sc, gran, sc.GrowthRate, clampRate(baseChurn+elasticityStep))
	if err != nil {
		return 0, err
	}
	down, err := projectVariant(rec, sc, gran, sc.GrowthRate, clampRate(baseChurn-elasticityStep))
	if err != nil {
		return 0, err
	}
	center, err := projectVariant(rec, sc, gran, sc.GrowthRate, baseChurn)
	if err != nil {
		return 0, err
	}
	return elasticity(up.Summary.CumulativeRevenue, down.Summary.CumulativeRevenue, center.Summary.CumulativeRevenue, baseChurn), nil
}

func elasticity(up, down, center, x float64) float64 {
	if center == 0 {
		return 0
	}
	derivative := (up - down) / (2 * elasticityStep)
	return derivative * x / center
}

func clampRate(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
