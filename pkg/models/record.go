package models

// =============================================================================
// STARTUP RECORD: canonical input schema for the evaluation engine
// =============================================================================

// Canonical numeric field names. The normalizer maps extractor aliases
// (e.g. "revenue_last_month", "mau") onto these before validation, and the
// scoring engine queries field statuses by these names.
const (
	FieldMonthlyRevenue    = "monthly_revenue"
	FieldActiveCustomers   = "active_customers"
	FieldNewCustomers      = "new_customers_monthly"
	FieldAcquisitionSpend  = "acquisition_spend"
	FieldCAC               = "cac"
	FieldChurnRate         = "churn_rate"
	FieldGrossMargin       = "gross_margin"
	FieldPricePerCustomer  = "price_per_customer"
	FieldMoMGrowth         = "mom_growth"
	FieldFixedCostsMonthly = "fixed_costs_monthly"
	FieldFundingRaised     = "funding_raised"
	FieldTAM               = "tam"
	FieldSAM               = "sam"
	FieldMarketGrowthRate  = "market_growth_rate"
	FieldTeamSize          = "team_size"
	FieldCompetitorCount   = "competitor_count"
	FieldNPS               = "nps"
	FieldRepeatRate        = "repeat_rate"
)

// FieldStatus records how a numeric field obtained its value.
type FieldStatus string

const (
	StatusProvided  FieldStatus = "provided"  // present in the raw record
	StatusDefaulted FieldStatus = "defaulted" // filled from the documented default table
	StatusMissing   FieldStatus = "missing"   // absent and no safe default exists
)

// Provenance marks whether a derived figure rests on provided inputs or on
// neutral defaults. Consumers use it to distinguish confident from estimated
// sub-scores without re-deriving the inputs.
type Provenance string

const (
	ProvenanceConfident Provenance = "confident"
	ProvenanceEstimated Provenance = "estimated"
)

// StartupRecord is the validated, normalized input to every calculation.
// Descriptive strings are opaque: the engine never parses them further.
// Numeric fields always hold a value; Fields says whether that value was
// provided, defaulted, or is a zero standing in for a missing field.
type StartupRecord struct {
	// Descriptive fields (pass-through)
	Problem         string `json:"problem,omitempty"`
	Solution        string `json:"solution,omitempty"`
	TargetCustomer  string `json:"target_customer,omitempty"`
	BusinessModel   string `json:"business_model,omitempty"`
	PricingNotes    string `json:"pricing_description,omitempty"`
	GTMStrategy     string `json:"gtm_strategy,omitempty"`
	CostStructure   string `json:"cost_structure,omitempty"`
	Competition     string `json:"competition,omitempty"`
	AssumptionNotes string `json:"assumptions,omitempty"`

	// Core metrics
	MonthlyRevenue   float64 `json:"monthly_revenue"`       // currency/month
	ActiveCustomers  float64 `json:"active_customers"`      // MAU / paying customers
	NewCustomers     float64 `json:"new_customers_monthly"` // acquired last month
	AcquisitionSpend float64 `json:"acquisition_spend"`     // currency/month
	CAC              float64 `json:"cac"`                   // directly stated, currency
	ChurnRate        float64 `json:"churn_rate"`            // monthly fraction 0..1
	GrossMargin      float64 `json:"gross_margin"`          // fraction 0..1
	PricePerCustomer float64 `json:"price_per_customer"`    // monthly ARPU, currency
	MoMGrowth        float64 `json:"mom_growth"`            // observed revenue growth/month
	FixedCosts       float64 `json:"fixed_costs_monthly"`   // currency/month
	FundingRaised    float64 `json:"funding_raised"`        // currency

	// Market fields
	TAM              float64 `json:"tam"`                // currency
	SAM              float64 `json:"sam"`                // currency
	MarketGrowthRate float64 `json:"market_growth_rate"` // annual fraction

	// Team / competitive fields
	TeamSize        float64 `json:"team_size"`
	CompetitorCount float64 `json:"competitor_count"`

	// Product signals
	NPS        float64 `json:"nps"`         // -100..100
	RepeatRate float64 `json:"repeat_rate"` // fraction 0..1

	// Per-field provenance, keyed by the Field* constants.
	Fields map[string]FieldStatus `json:"field_status"`

	// Non-fatal plausibility notes attached during normalization.
	Warnings []string `json:"warnings,omitempty"`
}

// NewStartupRecord returns a record with every numeric field marked missing.
func NewStartupRecord() *StartupRecord {
	r := &StartupRecord{Fields: make(map[string]FieldStatus)}
	for _, f := range NumericFields() {
		r.Fields[f] = StatusMissing
	}
	return r
}

// NumericFields lists every canonical numeric field in a stable order.
func NumericFields() []string {
	return []string{
		FieldMonthlyRevenue,
		FieldActiveCustomers,
		FieldNewCustomers,
		FieldAcquisitionSpend,
		FieldCAC,
		FieldChurnRate,
		FieldGrossMargin,
		FieldPricePerCustomer,
		FieldMoMGrowth,
		FieldFixedCostsMonthly,
		FieldFundingRaised,
		FieldTAM,
		FieldSAM,
		FieldMarketGrowthRate,
		FieldTeamSize,
		FieldCompetitorCount,
		FieldNPS,
		FieldRepeatRate,
	}
}

// Status reports how the named field obtained its value. Unknown names are
// treated as missing.
func (r *StartupRecord) Status(field string) FieldStatus {
	if r == nil || r.Fields == nil {
		return StatusMissing
	}
	if s, ok := r.Fields[field]; ok {
		return s
	}
	return StatusMissing
}

// Has reports whether the field carries a usable value (provided or
// defaulted).
func (r *StartupRecord) Has(field string) bool {
	s := r.Status(field)
	return s == StatusProvided || s == StatusDefaulted
}

// Provided reports whether the field came from the raw record itself rather
// than the default table.
func (r *StartupRecord) Provided(field string) bool {
	return r.Status(field) == StatusProvided
}

// AddWarning appends a plausibility note. Warnings never invalidate a record.
func (r *StartupRecord) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
