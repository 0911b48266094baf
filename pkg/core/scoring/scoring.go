package scoring

import (
	"fmt"
	"math"

	"github.com/riddhi2106/VentureValuator/pkg/core/calc"
	"github.com/riddhi2106/VentureValuator/pkg/core/projection"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// SCORING ENGINE
// =============================================================================
// Grades a normalized record and its derived metrics across five weighted
// dimensions and raises qualitative flags. Pure computation: identical
// inputs always produce an identical ScoreCard.

// NeutralScore stands in for a dimension with no scoreable inputs. It is a
// documented midpoint, never zero, so absent data does not read as failure.
const NeutralScore = 50.0

// Qualitative flag names.
const (
	FlagExcellentUnitEconomics = "excellent_unit_economics"
	FlagNegativeUnitEconomics  = "negative_unit_economics"
	FlagHighChurnRisk          = "high_churn_risk"
	FlagCapitalEfficient       = "capital_efficient"
	FlagShortRunway            = "short_runway"
	FlagGrowthSaturation       = "growth_saturation"
	FlagPreRevenue             = "pre_revenue"
	FlagThinMargins            = "thin_margins"
)

// Flag thresholds.
const (
	HighChurnRiskMin  = 0.08 // monthly churn fraction
	ShortRunwayMonths = 6.0
	ThinMarginsMax    = 0.20 // gross margin fraction
)

// SubScore is one graded dimension of the composite. Rationale lists the
// banded inputs behind the grade, in grading order.
type SubScore struct {
	Dimension  string            `json:"dimension"`
	Score      float64           `json:"score"` // 0..100
	Weight     float64           `json:"weight"`
	Provenance models.Provenance `json:"provenance"`
	Rationale  []string          `json:"rationale,omitempty"`
}

// Flag is one qualitative finding plus the evidence that fired it.
type Flag struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// ScoreCard is the weighted evaluation of one startup record.
type ScoreCard struct {
	Composite int        `json:"composite"` // 0..100
	SubScores []SubScore `json:"sub_scores"`
	Flags     []Flag     `json:"flags,omitempty"`
}

// Dimension returns the named sub-score, or nil when absent.
func (sc *ScoreCard) Dimension(name string) *SubScore {
	for i := range sc.SubScores {
		if sc.SubScores[i].Dimension == name {
			return &sc.SubScores[i]
		}
	}
	return nil
}

// HasFlag reports whether the named qualitative flag was raised.
func (sc *ScoreCard) HasFlag(name string) bool {
	for _, f := range sc.Flags {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Score grades rec with the default weights. ue and base may be nil when the
// upstream calculations could not run; the dimensions that depend on them
// fall back to the neutral default.
func Score(rec *models.StartupRecord, ue *calc.UnitEconomics, base *projection.ScenarioProjection) (*ScoreCard, error) {
	return ScoreWithWeights(rec, ue, base, DefaultWeights())
}

// ScoreWithWeights grades rec with an explicit weight set. An invalid weight
// set is a ConfigurationError raised before any grading starts.
func ScoreWithWeights(rec *models.StartupRecord, ue *calc.UnitEconomics, base *projection.ScenarioProjection, weights WeightSet) (*ScoreCard, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	card := &ScoreCard{SubScores: make([]SubScore, 0, len(Dimensions()))}
	composite := 0.0
	for _, dim := range Dimensions() {
		ds := scoreDimension(dim, rec, ue)
		ds.Weight = weights[dim]
		composite += ds.Score * ds.Weight
		card.SubScores = append(card.SubScores, ds)
	}
	card.Composite = clampComposite(math.Round(composite))
	card.Flags = qualitativeFlags(rec, ue, base)
	return card, nil
}

// FORMULA: dimension score = mean(band(input) for each available input)
//
// A dimension with no available inputs scores NeutralScore. Provenance is
// confident only when at least one contributing input was provided in the
// raw record (derived metrics count as provided when available); a score
// resting purely on defaults is estimated.
func scoreDimension(dim string, rec *models.StartupRecord, ue *calc.UnitEconomics) SubScore {
	var g grader
	switch dim {
	case DimensionTeam:
		if rec.Has(models.FieldTeamSize) {
			g.add(models.FieldTeamSize, teamSizeBand(rec.TeamSize), rec.Provided(models.FieldTeamSize))
		}
	case DimensionMarket:
		if rec.Has(models.FieldTAM) {
			g.add(models.FieldTAM, tamBand(rec.TAM), rec.Provided(models.FieldTAM))
		}
		if rec.Has(models.FieldMarketGrowthRate) {
			g.add(models.FieldMarketGrowthRate, marketGrowthBand(rec.MarketGrowthRate), rec.Provided(models.FieldMarketGrowthRate))
		}
	case DimensionTraction:
		if rec.Has(models.FieldMoMGrowth) {
			g.add(models.FieldMoMGrowth, growthBand(rec.MoMGrowth), rec.Provided(models.FieldMoMGrowth))
		}
		if rec.Has(models.FieldActiveCustomers) {
			g.add(models.FieldActiveCustomers, customerBaseBand(rec.ActiveCustomers), rec.Provided(models.FieldActiveCustomers))
		}
	case DimensionProduct:
		if rec.Has(models.FieldNPS) {
			g.add(models.FieldNPS, npsBand(rec.NPS), rec.Provided(models.FieldNPS))
		}
		if rec.Has(models.FieldRepeatRate) {
			g.add(models.FieldRepeatRate, repeatRateBand(rec.RepeatRate), rec.Provided(models.FieldRepeatRate))
		}
	case DimensionFinancials:
		if ue != nil && ue.LTVToCAC.Available {
			g.add("ltv_to_cac", ltvToCACBand(ue.LTVToCAC.Value), true)
		}
		if ue != nil && ue.BurnMultiple.Available {
			g.add("burn_multiple", burnMultipleBand(ue.BurnMultiple.Value), true)
		}
	}
	return g.score(dim)
}

// grader accumulates the bands contributing to one dimension.
type grader struct {
	bands     []float64
	rationale []string
	provided  bool
}

func (g *grader) add(input string, band float64, provided bool) {
	g.bands = append(g.bands, band)
	g.rationale = append(g.rationale, fmt.Sprintf("%s band %.0f", input, band))
	if provided {
		g.provided = true
	}
}

func (g *grader) score(dim string) SubScore {
	if len(g.bands) == 0 {
		return SubScore{
			Dimension:  dim,
			Score:      NeutralScore,
			Provenance: models.ProvenanceEstimated,
		}
	}
	total := 0.0
	for _, b := range g.bands {
		total += b
	}
	prov := models.ProvenanceEstimated
	if g.provided {
		prov = models.ProvenanceConfident
	}
	return SubScore{
		Dimension:  dim,
		Score:      total / float64(len(g.bands)),
		Provenance: prov,
		Rationale:  g.rationale,
	}
}

// clampComposite bounds the rounded weighted sum to [0, 100].
func clampComposite(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// qualitativeFlags raises threshold-rule flags in a fixed report order.
// Flags fire only on affirmative evidence: an unavailable metric or missing
// field never raises one.
func qualitativeFlags(rec *models.StartupRecord, ue *calc.UnitEconomics, base *projection.ScenarioProjection) []Flag {
	var flags []Flag
	raise := func(name, detail string) {
		flags = append(flags, Flag{Name: name, Detail: detail})
	}

	if ue != nil && ue.LTVToCAC.Available {
		if ue.LTVToCAC.Value >= LTVCACExcellentMin {
			raise(FlagExcellentUnitEconomics,
				fmt.Sprintf("ltv_to_cac %.2f >= %g", ue.LTVToCAC.Value, LTVCACExcellentMin))
		}
		if ue.LTVToCAC.Value < LTVCACMarginalMin {
			raise(FlagNegativeUnitEconomics,
				fmt.Sprintf("ltv_to_cac %.2f < %g", ue.LTVToCAC.Value, LTVCACMarginalMin))
		}
	}
	if rec.Has(models.FieldChurnRate) && rec.ChurnRate > HighChurnRiskMin {
		raise(FlagHighChurnRisk,
			fmt.Sprintf("monthly churn_rate %g > %g", rec.ChurnRate, HighChurnRiskMin))
	}
	if ue != nil && ue.BurnMultiple.Available && ue.BurnMultiple.Value < BurnMultipleExcellentMax {
		raise(FlagCapitalEfficient,
			fmt.Sprintf("burn_multiple %.2f < %g", ue.BurnMultiple.Value, BurnMultipleExcellentMax))
	}
	if base != nil && base.Summary.RunwayPeriods >= 0 {
		months := float64(base.Summary.RunwayPeriods) * base.Granularity.MonthsPerStep()
		if months < ShortRunwayMonths {
			raise(FlagShortRunway,
				fmt.Sprintf("runway %g months < %g", months, ShortRunwayMonths))
		}
	}
	if base != nil && base.Summary.Saturated {
		raise(FlagGrowthSaturation,
			fmt.Sprintf("%s scenario saturates within the horizon", base.Scenario))
	}
	if rec.Has(models.FieldMonthlyRevenue) && rec.MonthlyRevenue == 0 {
		raise(FlagPreRevenue, "monthly_revenue is 0")
	}
	if rec.Has(models.FieldGrossMargin) && rec.GrossMargin < ThinMarginsMax {
		raise(FlagThinMargins,
			fmt.Sprintf("gross_margin %g < %g", rec.GrossMargin, ThinMarginsMax))
	}
	return flags
}
