// Package normalize validates raw extracted startup records and fills
// documented defaults. The raw record comes from an upstream extraction
// collaborator and is untrusted, so every field gets a coercion attempt and
// normalization never stops at the first problem. The caller inspects the
// full error list to decide whether the record is usable or should be
// re-extracted.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/riddhi2106/VentureValuator/pkg/core/validate"
	"github.com/riddhi2106/VentureValuator/pkg/models"
)

// =============================================================================
// FIELD SPECIFICATIONS
// =============================================================================

type fieldKind int

const (
	kindCurrency       fieldKind = iota // non-negative money amount
	kindCount                           // non-negative quantity
	kindFraction                        // 0..1, percent forms reinterpreted
	kindSignedFraction                  // growth rates, negatives allowed
	kindScore                           // -100..100 (NPS)
)

type fieldSpec struct {
	name    string
	kind    fieldKind
	aliases []string // scanned in order, first present wins
}

// Alias tables cover the key spellings the extraction collaborator is known
// to emit. Unknown keys are ignored.
var fieldSpecs = []fieldSpec{
	{models.FieldMonthlyRevenue, kindCurrency,
		[]string{"monthly_revenue", "revenue_last_month", "revenue_monthly", "mrr"}},
	{models.FieldActiveCustomers, kindCount,
		[]string{"active_customers", "mau", "monthly_active_users", "active_users", "customers", "users"}},
	{models.FieldNewCustomers, kindCount,
		[]string{"new_customers_monthly", "new_customers", "monthly_new_customers", "new_users_monthly"}},
	{models.FieldAcquisitionSpend, kindCurrency,
		[]string{"acquisition_spend", "marketing_cost_monthly", "sales_marketing_spend", "acquisition_spend_monthly"}},
	{models.FieldCAC, kindCurrency,
		[]string{"cac", "customer_acquisition_cost"}},
	{models.FieldChurnRate, kindFraction,
		[]string{"churn_rate", "churn", "monthly_churn", "churn_monthly"}},
	{models.FieldGrossMargin, kindFraction,
		[]string{"gross_margin", "margin"}},
	{models.FieldPricePerCustomer, kindCurrency,
		[]string{"price_per_customer", "price", "arpu", "arpu_monthly", "avg_revenue_per_user"}},
	{models.FieldMoMGrowth, kindSignedFraction,
		[]string{"mom_growth", "mom_growth_rate", "monthly_growth", "growth_rate_monthly"}},
	{models.FieldFixedCostsMonthly, kindCurrency,
		[]string{"fixed_costs_monthly", "fixed_monthly_costs", "operating_costs_monthly", "tech_cost_monthly"}},
	{models.FieldFundingRaised, kindCurrency,
		[]string{"funding_raised", "total_funding", "funding", "capital_raised"}},
	{models.FieldTAM, kindCurrency,
		[]string{"tam", "total_addressable_market"}},
	{models.FieldSAM, kindCurrency,
		[]string{"sam", "serviceable_addressable_market"}},
	{models.FieldMarketGrowthRate, kindSignedFraction,
		[]string{"market_growth_rate", "market_growth"}},
	{models.FieldTeamSize, kindCount,
		[]string{"team_size", "employees", "headcount"}},
	{models.FieldCompetitorCount, kindCount,
		[]string{"competitor_count", "competitors", "num_competitors"}},
	{models.FieldNPS, kindScore,
		[]string{"nps", "net_promoter_score"}},
	{models.FieldRepeatRate, kindFraction,
		[]string{"repeat_rate", "repeat_purchase_rate"}},
}

// Documented defaults for optional fields. Fields not listed here stay
// missing when absent; the error list records them so callers can decide.
var defaultValues = map[string]float64{
	models.FieldMonthlyRevenue:    100000,
	models.FieldGrossMargin:       0.25,
	models.FieldMoMGrowth:         0.10,
	models.FieldFixedCostsMonthly: 800000,
	models.FieldFundingRaised:     0,
}

// defaultPrice applies when price cannot be derived from revenue/customers.
const defaultPrice = 250.0

// Plausibility bands. Values outside become warnings, never errors.
const (
	maxPlausibleChurn  = 0.5
	maxPlausibleGrowth = 3.0
)

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize validates a raw extracted record and returns a StartupRecord
// plus a ValidationError enumerating every missing or invalid field (nil if
// the record is complete). The record is always returned: partially valid
// input still normalizes the fields it can.
func Normalize(raw map[string]any) (*models.StartupRecord, *models.ValidationError) {
	rec := models.NewStartupRecord()
	verr := &models.ValidationError{}

	flat := flatten(raw)

	assignStrings(rec, flat)

	for _, spec := range fieldSpecs {
		value, alias, ok := firstAlias(flat, spec.aliases)
		if !ok {
			continue
		}
		assignNumeric(rec, verr, spec, alias, value)
	}

	// cogs_percent is the complement of gross margin; direct margin wins.
	if !rec.Has(models.FieldGrossMargin) && !verr.HasField(models.FieldGrossMargin) {
		if cogs, ok := flat["cogs_percent"]; ok {
			if v, wasPercent, err := coerce(cogs); err == nil {
				if v, err = asFraction(rec, "cogs_percent", v, wasPercent); err == nil && v >= 0 && v <= 1 {
					setField(rec, models.FieldGrossMargin, 1-v, models.StatusProvided)
				} else {
					verr.Addf(models.FieldGrossMargin, "cogs_percent value %v unusable", cogs)
				}
			}
		}
	}

	// "pricing" is usually descriptive text; a parseable money value in it
	// is taken as the per-customer price.
	if pricing, ok := flat["pricing"]; ok && !rec.Has(models.FieldPricePerCustomer) {
		if v, err := CoerceNumber(pricing); err == nil && v > 0 {
			setField(rec, models.FieldPricePerCustomer, v, models.StatusProvided)
		} else if s, isStr := pricing.(string); isStr && rec.PricingNotes == "" {
			rec.PricingNotes = strings.TrimSpace(s)
		}
	}

	applyDefaults(rec, verr)

	// Remaining gaps without defaults are recorded, not fatal.
	for _, field := range models.NumericFields() {
		if rec.Status(field) == models.StatusMissing && !verr.HasField(field) {
			verr.Add(field, "missing and no default defined")
		}
	}

	attachPlausibilityWarnings(rec)

	return rec, verr.OrNil()
}

// flatten lowercases top-level keys and merges one level of known nested
// objects. Top-level keys win over nested ones.
func flatten(raw map[string]any) map[string]any {
	flat := make(map[string]any, len(raw))
	for k, v := range raw {
		flat[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for _, nest := range []string{"notable_metrics", "metrics", "market"} {
		sub, ok := flat[nest].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range sub {
			key := strings.ToLower(strings.TrimSpace(k))
			if _, exists := flat[key]; !exists {
				flat[key] = v
			}
		}
	}
	return flat
}

func firstAlias(flat map[string]any, aliases []string) (any, string, bool) {
	for _, a := range aliases {
		if v, ok := flat[a]; ok {
			return v, a, true
		}
	}
	return nil, "", false
}

// assignNumeric coerces and range-checks one field. Failures are recorded
// against the canonical field name; the value stays missing.
func assignNumeric(rec *models.StartupRecord, verr *models.ValidationError, spec fieldSpec, alias string, raw any) {
	v, wasPercent, err := coerce(raw)
	if err != nil {
		verr.Addf(spec.name, "cannot coerce %q value %v: %v", alias, raw, err)
		return
	}

	switch spec.kind {
	case kindCurrency, kindCount:
		if v < 0 {
			verr.Addf(spec.name, "negative value %.4g rejected", v)
			return
		}

	case kindFraction:
		if v, err = asFraction(rec, spec.name, v, wasPercent); err != nil {
			verr.Add(spec.name, err.Error())
			return
		}
		if v < 0 || v > 1 {
			verr.Addf(spec.name, "value %.4g outside [0,1]", v)
			return
		}

	case kindSignedFraction:
		if v, err = asFraction(rec, spec.name, v, wasPercent); err != nil {
			verr.Add(spec.name, err.Error())
			return
		}

	case kindScore:
		if v < -100 || v > 100 {
			verr.Addf(spec.name, "score %.4g outside [-100,100]", v)
			return
		}
	}

	setField(rec, spec.name, v, models.StatusProvided)
}

// asFraction reinterprets bare values in (1,100] as percentages. Values the
// source explicitly wrote in percent form were already divided and are
// passed through, so "150%" stays 1.5 and fails the later range check
// instead of collapsing to 0.015.
func asFraction(rec *models.StartupRecord, field string, v float64, wasPercent bool) (float64, error) {
	if wasPercent {
		return v, nil
	}
	if math.Abs(v) > 100 {
		return 0, fmt.Errorf("rate %.4g implausibly large", v)
	}
	if math.Abs(v) > 1 {
		reinterpreted := v / 100
		rec.AddWarning(fmt.Sprintf("%s: interpreted %.4g as %.4g (percentage form)", field, v, reinterpreted))
		return reinterpreted, nil
	}
	return v, nil
}

// applyDefaults fills documented defaults for fields that never appeared in
// the raw record. Fields that appeared but failed validation do NOT receive
// defaults: masking an invalid value would hide the error.
func applyDefaults(rec *models.StartupRecord, verr *models.ValidationError) {
	for _, field := range models.NumericFields() {
		if rec.Status(field) != models.StatusMissing || verr.HasField(field) {
			continue
		}
		if dv, ok := defaultValues[field]; ok {
			setField(rec, field, dv, models.StatusDefaulted)
		}
	}

	// Price derives from revenue per customer when possible, else falls back
	// to the documented constant.
	if rec.Status(models.FieldPricePerCustomer) == models.StatusMissing && !verr.HasField(models.FieldPricePerCustomer) {
		if rec.Has(models.FieldActiveCustomers) && rec.ActiveCustomers > 0 {
			setField(rec, models.FieldPricePerCustomer, rec.MonthlyRevenue/rec.ActiveCustomers, models.StatusDefaulted)
		} else {
			setField(rec, models.FieldPricePerCustomer, defaultPrice, models.StatusDefaulted)
		}
	}
}

func attachPlausibilityWarnings(rec *models.StartupRecord) {
	if rec.Provided(models.FieldChurnRate) {
		if check := validate.CheckMetricRange(models.FieldChurnRate, rec.ChurnRate, 0, maxPlausibleChurn); check.IsOutlier {
			rec.AddWarning(check.Reason)
		}
	}
	if rec.Provided(models.FieldMoMGrowth) {
		if check := validate.CheckMetricRange(models.FieldMoMGrowth, rec.MoMGrowth, -1, maxPlausibleGrowth); check.IsOutlier {
			rec.AddWarning(check.Reason)
		}
	}
}

// assignStrings copies descriptive fields through untouched.
func assignStrings(rec *models.StartupRecord, flat map[string]any) {
	rec.Problem = stringAlias(flat, "problem", "problem_statement")
	rec.Solution = stringAlias(flat, "solution")
	rec.TargetCustomer = stringAlias(flat, "target_customer", "target_market")
	rec.BusinessModel = stringAlias(flat, "business_model")
	rec.PricingNotes = stringAlias(flat, "pricing_description", "pricing_notes")
	rec.GTMStrategy = stringAlias(flat, "gtm_strategy", "gtm", "go_to_market")
	rec.CostStructure = stringAlias(flat, "cost_structure")
	rec.Competition = stringAlias(flat, "competition", "competitive_landscape")
	rec.AssumptionNotes = stringAlias(flat, "assumptions", "assumption_notes")
}

func stringAlias(flat map[string]any, aliases ...string) string {
	for _, a := range aliases {
		if v, ok := flat[a]; ok {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func setField(rec *models.StartupRecord, name string, v float64, status models.FieldStatus) {
	if ref := fieldRef(rec, name); ref != nil {
		*ref = v
		rec.Fields[name] = status
	}
}

func fieldRef(rec *models.StartupRecord, name string) *float64 {
	switch name {
	case models.FieldMonthlyRevenue:
		return &rec.MonthlyRevenue
	case models.FieldActiveCustomers:
		return &rec.ActiveCustomers
	case models.FieldNewCustomers:
		return &rec.NewCustomers
	case models.FieldAcquisitionSpend:
		return &rec.AcquisitionSpend
	case models.FieldCAC:
		return &rec.CAC
	case models.FieldChurnRate:
		return &rec.ChurnRate
	case models.FieldGrossMargin:
		return &rec.GrossMargin
	case models.FieldPricePerCustomer:
		return &rec.PricePerCustomer
	case models.FieldMoMGrowth:
		return &rec.MoMGrowth
	case models.FieldFixedCostsMonthly:
		return &rec.FixedCosts
	case models.FieldFundingRaised:
		return &rec.FundingRaised
	case models.FieldTAM:
		return &rec.TAM
	case models.FieldSAM:
		return &rec.SAM
	case models.FieldMarketGrowthRate:
		return &rec.MarketGrowthRate
	case models.FieldTeamSize:
		return &rec.TeamSize
	case models.FieldCompetitorCount:
		return &rec.CompetitorCount
	case models.FieldNPS:
		return &rec.NPS
	case models.FieldRepeatRate:
		return &rec.RepeatRate
	}
	return nil
}
