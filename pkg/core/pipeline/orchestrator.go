package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/riddhi2106/VentureValuator/pkg/core/calc"
	"github.com/riddhi2106/VentureValuator/pkg/core/config"
	"github.com/riddhi2106/VentureValuator/pkg/core/normalize"
	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/core/scoring"
	"github.com/riddhi2106/VentureValuator/pkg/core/validate"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// EvaluationResult is the complete output of one pipeline run. Every derived
// entity is owned by the stage that produced it; nothing is mutated after
// construction.
type EvaluationResult struct {
	EvaluationID      string                                    `json:"evaluation_id"`
	GeneratedAt       time.Time                                 `json:"generated_at"`
	Record            *models.StartupRecord                     `json:"record"`
	UnitEconomics     *calc.UnitEconomics                       `json:"unit_economics"`
	Projections       map[string]*projection.ScenarioProjection `json:"projections"`
	Sensitivity       *projection.SensitivityReport             `json:"sensitivity"`
	Scorecard         *scoring.ScoreCard                        `json:"scorecard"`
	CalculationErrors []models.CalculationError                 `json:"calculation_errors"`
	Warnings          []string                                  `json:"warnings"`
}

// UnitEconomicsResult is the reduced bundle for callers that only need the
// ratio suite, not projections or scoring.
type UnitEconomicsResult struct {
	EvaluationID      string                    `json:"evaluation_id"`
	GeneratedAt       time.Time                 `json:"generated_at"`
	Record            *models.StartupRecord     `json:"record"`
	UnitEconomics     *calc.UnitEconomics       `json:"unit_economics"`
	CalculationErrors []models.CalculationError `json:"calculation_errors"`
	Warnings          []string                  `json:"warnings"`
}

// coreMetricFields are the unit-economics inputs. A payload that provides
// none of them leaves the engine nothing to model but defaults, so the run
// aborts instead of producing a fictional evaluation.
var coreMetricFields = []string{
	models.FieldMonthlyRevenue,
	models.FieldActiveCustomers,
	models.FieldNewCustomers,
	models.FieldAcquisitionSpend,
	models.FieldCAC,
	models.FieldChurnRate,
	models.FieldGrossMargin,
	models.FieldPricePerCustomer,
	models.FieldMoMGrowth,
}

// Evaluator manages the end-to-end evaluation flow:
// normalize -> unit economics -> projections -> sensitivity -> scoring.
// The configuration is validated before any calculation starts; nothing is
// retried internally.
type Evaluator struct {
	cfg *config.EngineConfig
}

// NewEvaluator creates an evaluator for one configuration. A nil config
// means the documented defaults.
func NewEvaluator(cfg *config.EngineConfig) *Evaluator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Evaluator{cfg: cfg}
}

// Config returns the configuration the evaluator runs with.
func (e *Evaluator) Config() *config.EngineConfig {
	return e.cfg
}

// Evaluate executes the full pipeline for a single raw record.
func (e *Evaluator) Evaluate(raw map[string]any) (*EvaluationResult, error) {
	start := time.Now()
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	evalID := uuid.New().String()
	fmt.Printf("[PIPELINE] %s: starting evaluation (granularity=%s, scenario_source=%s)\n",
		evalID, e.cfg.Granularity, e.cfg.ScenarioSource)

	// 1. Normalize
	rec, warnings, err := normalizeStage(evalID, raw)
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		EvaluationID:      evalID,
		GeneratedAt:       time.Now().UTC(),
		Record:            rec,
		Projections:       make(map[string]*projection.ScenarioProjection),
		CalculationErrors: []models.CalculationError{},
		Warnings:          warnings,
	}

	// 2. Unit economics
	ue, calcErrs := calc.ComputeUnitEconomics(rec)
	result.UnitEconomics = ue
	result.CalculationErrors = append(result.CalculationErrors, calcErrs...)
	fmt.Printf("[PIPELINE] %s: unit economics computed (%d metric(s) unavailable)\n", evalID, len(calcErrs))

	// 3. Scenario projections
	reg, err := e.cfg.Registry(rec)
	if err != nil {
		return nil, err
	}
	projections, err := projection.ProjectAll(rec, reg, e.cfg.Granularity)
	if err != nil {
		return nil, err
	}
	for _, proj := range projections {
		result.Projections[proj.Scenario] = proj
	}
	fmt.Printf("[PIPELINE] %s: projected %d scenario(s) over %d period(s)\n",
		evalID, len(projections), e.cfg.Granularity.PeriodsPerHorizon())

	if e.cfg.StrictChecks {
		result.Warnings = append(result.Warnings, e.integrityWarnings(evalID, projections)...)
	}

	// 4. Sensitivity around the anchor scenario
	anchor := anchorScenario(reg)
	sens, err := projection.Analyze(rec, anchor, e.cfg.Granularity, e.cfg.Sensitivity)
	if err != nil {
		return nil, err
	}
	result.Sensitivity = sens
	fmt.Printf("[PIPELINE] %s: sensitivity swept %d cell(s) around %q\n", evalID, len(sens.Cells), anchor.Name)

	// 5. Scoring against the anchor projection
	card, err := scoring.ScoreWithWeights(rec, ue, result.Projections[anchor.Name], e.cfg.Weights)
	if err != nil {
		return nil, err
	}
	result.Scorecard = card

	fmt.Printf("[PIPELINE] %s: completed in %v (composite=%d, flags=%d, warnings=%d)\n",
		evalID, time.Since(start), card.Composite, len(card.Flags), len(result.Warnings))
	return result, nil
}

// EvaluateUnitEconomics runs only the intake stages: normalize and the
// ratio suite. Same abort policy as the full pipeline.
func (e *Evaluator) EvaluateUnitEconomics(raw map[string]any) (*UnitEconomicsResult, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	evalID := uuid.New().String()
	rec, warnings, err := normalizeStage(evalID, raw)
	if err != nil {
		return nil, err
	}

	ue, calcErrs := calc.ComputeUnitEconomics(rec)
	fmt.Printf("[PIPELINE] %s: unit economics computed (%d metric(s) unavailable)\n", evalID, len(calcErrs))
	if calcErrs == nil {
		calcErrs = []models.CalculationError{}
	}

	return &UnitEconomicsResult{
		EvaluationID:      evalID,
		GeneratedAt:       time.Now().UTC(),
		Record:            rec,
		UnitEconomics:     ue,
		CalculationErrors: calcErrs,
		Warnings:          warnings,
	}, nil
}

// normalizeStage validates the raw payload. Field errors become warnings as
// long as at least one core metric was provided: partial progress is never
// thrown away, the caller may re-prompt its upstream extractor instead.
func normalizeStage(evalID string, raw map[string]any) (*models.StartupRecord, []string, error) {
	rec, verr := normalize.Normalize(raw)
	provided, defaulted, missing := statusCounts(rec)
	fmt.Printf("[PIPELINE] %s: normalized record (%d provided, %d defaulted, %d missing)\n",
		evalID, provided, defaulted, missing)

	warnings := []string{}
	if verr.Empty() {
		return rec, warnings, nil
	}
	if !hasUsableCore(rec) {
		fmt.Printf("[PIPELINE] %s: aborting, no usable core metric among %d field error(s)\n",
			evalID, len(verr.Fields))
		return nil, nil, verr
	}
	for _, f := range verr.Fields {
		warnings = append(warnings, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	fmt.Printf("[PIPELINE] %s: proceeding with %d field warning(s)\n", evalID, len(warnings))
	return rec, warnings, nil
}

// integrityWarnings reconciles every projected period against the recurrence
// that produced it: cash roll-forward, net flow decomposition, customer
// counts, saturation contract. Violations are surfaced, never fatal: the
// projection already shipped its numbers.
func (e *Evaluator) integrityWarnings(evalID string, projections []*projection.ScenarioProjection) []string {
	var warnings []string
	for _, proj := range projections {
		report := validate.ValidateProjectionIntegrity(proj.Scenario, periodFlows(proj.Periods), e.cfg.Tolerance)
		if report.AllPassed {
			continue
		}
		for _, failed := range report.FailedChecks {
			warnings = append(warnings, fmt.Sprintf("%s: %s", report.Scenario, failed))
		}
		fmt.Printf("[PIPELINE] %s: %d integrity failure(s) in scenario %s\n",
			evalID, len(report.FailedChecks), report.Scenario)
	}
	return warnings
}

// anchorScenario picks the projection scoring and sensitivity center on:
// the scenario named "base" when the table has one, else the first
// configured scenario.
func anchorScenario(reg *projection.Registry) projection.ScenarioConfig {
	if sc, err := reg.Lookup(projection.ScenarioBase); err == nil {
		return sc
	}
	return reg.All()[0]
}

func hasUsableCore(rec *models.StartupRecord) bool {
	for _, field := range coreMetricFields {
		if rec.Provided(field) {
			return true
		}
	}
	return false
}

func statusCounts(rec *models.StartupRecord) (provided, defaulted, missing int) {
	for _, field := range models.NumericFields() {
		switch rec.Status(field) {
		case models.StatusProvided:
			provided++
		case models.StatusDefaulted:
			defaulted++
		default:
			missing++
		}
	}
	return provided, defaulted, missing
}

func periodFlows(periods []projection.PeriodRecord) []validate.PeriodFlows {
	flows := make([]validate.PeriodFlows, len(periods))
	for i, p := range periods {
		flows[i] = validate.PeriodFlows{
			Period:         p.Period,
			Customers:      p.Customers,
			Revenue:        p.Revenue,
			GrossProfit:    p.GrossProfit,
			Cost:           p.Cost,
			NetCashFlow:    p.NetCashFlow,
			CumulativeCash: p.CumulativeCash,
			Saturated:      p.Saturated,
		}
	}
	return flows
}
