package projection

import (
	"fmt"
	"math"

	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// SCENARIOS & GRANULARITY
// Scenarios differ only in assumption parameters, never in the formula.
// =============================================================================

// HorizonYears is the fixed projection horizon. Granularity changes the step
// count within it, not its length.
const HorizonYears = 5

// Granularity selects the projection step length.
type Granularity string

const (
	GranularityMonthly Granularity = "monthly" // 60 steps
	GranularityAnnual  Granularity = "annual"  // 5 steps
)

// Valid reports whether the granularity is one of the recognized values.
func (g Granularity) Valid() bool {
	return g == GranularityMonthly || g == GranularityAnnual
}

// MonthsPerStep returns the length of one projection step in months.
func (g Granularity) MonthsPerStep() float64 {
	if g == GranularityAnnual {
		return 12
	}
	return 1
}

// PeriodsPerHorizon returns the number of recurrence steps over the horizon.
func (g Granularity) PeriodsPerHorizon() int {
	if g == GranularityAnnual {
		return HorizonYears
	}
	return HorizonYears * 12
}

// RateBasis declares the period length a scenario's rates are quoted on.
// Rates are converted to the projection step by compounding, never by
// naive division.
type RateBasis string

const (
	BasisMonthly RateBasis = "monthly"
	BasisAnnual  RateBasis = "annual"
)

// ScenarioConfig is a named bundle of growth/churn/cost assumptions.
// ChurnOverride, when set, replaces the record's own churn rate and is
// quoted on the same basis as the other rates.
type ScenarioConfig struct {
	Name           string    `json:"name" yaml:"name"`
	GrowthRate     float64   `json:"growth_rate" yaml:"growth_rate"`
	CostGrowthRate float64   `json:"cost_growth_rate" yaml:"cost_growth_rate"`
	ChurnOverride  *float64  `json:"churn_override,omitempty" yaml:"churn_override,omitempty"`
	RateBasis      RateBasis `json:"rate_basis" yaml:"rate_basis"`
}

// Canonical scenario names, ordered pessimistic to optimistic.
const (
	ScenarioConservative = "conservative"
	ScenarioBase         = "base"
	ScenarioOptimistic   = "optimistic"
)

// Default per-month preset rates.
const (
	baseGrowthRate         = 0.05
	conservativeGrowthRate = 0.02
	optimisticGrowthRate   = 0.10
	baseCostGrowthRate     = 0.02
	conservativeCostGrowth = 0.03
)

// DefaultScenarios returns the built-in presets. Churn always comes from
// the record; only growth assumptions distinguish the presets.
func DefaultScenarios() []ScenarioConfig {
	return []ScenarioConfig{
		{Name: ScenarioConservative, GrowthRate: conservativeGrowthRate, CostGrowthRate: conservativeCostGrowth, RateBasis: BasisMonthly},
		{Name: ScenarioBase, GrowthRate: baseGrowthRate, CostGrowthRate: baseCostGrowthRate, RateBasis: BasisMonthly},
		{Name: ScenarioOptimistic, GrowthRate: optimisticGrowthRate, CostGrowthRate: baseCostGrowthRate, RateBasis: BasisMonthly},
	}
}

// DerivedScenarios builds the scenario set from the record's own observed
// growth instead of fixed presets: conservative halves it (floored at -2%
// per month), optimistic takes 1.5x. Cost growth keeps the preset pattern.
func DerivedScenarios(rec *models.StartupRecord) []ScenarioConfig {
	g := rec.MoMGrowth
	return []ScenarioConfig{
		{Name: ScenarioConservative, GrowthRate: math.Max(-0.02, 0.5*g), CostGrowthRate: conservativeCostGrowth, RateBasis: BasisMonthly},
		{Name: ScenarioBase, GrowthRate: g, CostGrowthRate: baseCostGrowthRate, RateBasis: BasisMonthly},
		{Name: ScenarioOptimistic, GrowthRate: 1.5 * g, CostGrowthRate: baseCostGrowthRate, RateBasis: BasisMonthly},
	}
}

// =============================================================================
// SCENARIO REGISTRY
// =============================================================================

// Registry holds the configured scenario set in presentation order and
// rejects lookups of unknown names.
type Registry struct {
	order  []string
	byName map[string]ScenarioConfig
}

// NewRegistry builds a registry from an explicit scenario list. Empty lists,
// unnamed entries and duplicate names are configuration errors.
func NewRegistry(scenarios []ScenarioConfig) (*Registry, error) {
	if len(scenarios) == 0 {
		return nil, &models.ConfigurationError{Setting: "scenarios", Detail: "at least one scenario is required"}
	}
	r := &Registry{byName: make(map[string]ScenarioConfig, len(scenarios))}
	for _, sc := range scenarios {
		if sc.Name == "" {
			return nil, &models.ConfigurationError{Setting: "scenarios", Detail: "scenario with empty name"}
		}
		if _, dup := r.byName[sc.Name]; dup {
			return nil, &models.ConfigurationError{Setting: "scenarios", Detail: fmt.Sprintf("duplicate scenario %q", sc.Name)}
		}
		r.order = append(r.order, sc.Name)
		r.byName[sc.Name] = sc
	}
	return r, nil
}

// DefaultRegistry returns the preset registry. It cannot fail.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(DefaultScenarios())
	return r
}

// Lookup returns the named scenario or a ConfigurationError listing it as
// unknown.
func (r *Registry) Lookup(name string) (ScenarioConfig, error) {
	sc, ok := r.byName[name]
	if !ok {
		return ScenarioConfig{}, &models.ConfigurationError{
			Setting: "scenario",
			Detail:  fmt.Sprintf("unknown scenario %q", name),
		}
	}
	return sc, nil
}

// Names lists the registered scenario names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the scenarios in registration order.
func (r *Registry) All() []ScenarioConfig {
	out := make([]ScenarioConfig, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
