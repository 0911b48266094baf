// Package config holds the engine configuration: scenario presets,
// dimension weights, granularity, sensitivity grid and integrity-check
// settings. Configuration is validated before any calculation starts;
// library code never reads the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/core/scoring"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// ScenarioSource selects where the scenario set comes from.
type ScenarioSource string

const (
	// SourcePresets runs the configured scenario table as-is.
	SourcePresets ScenarioSource = "presets"
	// SourceDerived builds the scenario set from the record's own observed
	// growth at run time; the configured table is ignored.
	SourceDerived ScenarioSource = "derived"
)

// DefaultTolerance is the cash roll-forward tolerance. Period records round
// three currency fields independently, so a reconciliation can drift up to
// 1.5 cents on rounding alone; 5 cents stays clear of that while still
// catching real inconsistencies.
const DefaultTolerance = 0.05

// EngineConfig bundles every knob of one evaluation run.
type EngineConfig struct {
	Granularity    projection.Granularity      `json:"granularity" yaml:"granularity"`
	HorizonYears   int                         `json:"horizon_years" yaml:"horizon_years"`
	ScenarioSource ScenarioSource              `json:"scenario_source" yaml:"scenario_source"`
	Scenarios      []projection.ScenarioConfig `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Weights        scoring.WeightSet           `json:"weights" yaml:"weights"`
	Sensitivity    projection.Grid             `json:"sensitivity" yaml:"sensitivity"`
	StrictChecks   bool                        `json:"strict_checks" yaml:"strict_checks"`
	Tolerance      float64                     `json:"tolerance" yaml:"tolerance"`
}

// Default returns the documented defaults: monthly steps over the fixed
// five-year horizon, the preset scenario table, standard weights, the
// default sensitivity grid, and strict integrity checks on.
func Default() *EngineConfig {
	return &EngineConfig{
		Granularity:    projection.GranularityMonthly,
		HorizonYears:   projection.HorizonYears,
		ScenarioSource: SourcePresets,
		Scenarios:      projection.DefaultScenarios(),
		Weights:        scoring.DefaultWeights(),
		Sensitivity:    projection.DefaultGrid(),
		StrictChecks:   true,
		Tolerance:      DefaultTolerance,
	}
}

// LoadFromFile reads a config file over the defaults and validates the
// result. YAML for .yaml/.yml paths, HJSON for anything else. Weight maps
// merge key-by-key onto the defaults; lists replace them wholesale.
func LoadFromFile(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &models.ConfigurationError{
				Setting: "file",
				Detail:  fmt.Sprintf("%s: %v", path, err),
			}
		}
	default:
		if err := hjson.Unmarshal(data, cfg); err != nil {
			return nil, &models.ConfigurationError{
				Setting: "file",
				Detail:  fmt.Sprintf("%s: %v", path, err),
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies every configuration rule before any calculation starts.
func (c *EngineConfig) Validate() error {
	if !c.Granularity.Valid() {
		return &models.ConfigurationError{
			Setting: "granularity",
			Detail:  fmt.Sprintf("unknown granularity %q", c.Granularity),
		}
	}
	if c.HorizonYears != projection.HorizonYears {
		return &models.ConfigurationError{
			Setting: "horizon_years",
			Detail:  fmt.Sprintf("horizon is fixed at %d years, got %d", projection.HorizonYears, c.HorizonYears),
		}
	}
	switch c.ScenarioSource {
	case SourcePresets, SourceDerived:
	default:
		return &models.ConfigurationError{
			Setting: "scenario_source",
			Detail:  fmt.Sprintf("unknown scenario source %q", c.ScenarioSource),
		}
	}
	if c.ScenarioSource == SourcePresets {
		if _, err := projection.NewRegistry(c.Scenarios); err != nil {
			return err
		}
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Tolerance <= 0 {
		return &models.ConfigurationError{
			Setting: "tolerance",
			Detail:  fmt.Sprintf("tolerance must be positive, got %g", c.Tolerance),
		}
	}
	return nil
}

// Registry builds the scenario registry for one run. A derived source reads
// the record's observed growth; presets use the configured table and never
// touch the record.
func (c *EngineConfig) Registry(rec *models.StartupRecord) (*projection.Registry, error) {
	if c.ScenarioSource == SourceDerived {
		return projection.NewRegistry(projection.DerivedScenarios(rec))
	}
	return projection.NewRegistry(c.Scenarios)
}
