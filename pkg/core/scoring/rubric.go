package scoring

// =============================================================================
// SCORING RUBRIC
// =============================================================================
// Threshold bands per graded metric. Every edge and band score is a named
// constant so the rubric is testable configuration, not inline numbers.
// Bands are lower-inclusive: a value equal to an edge earns that edge's band.

// LTV:CAC ratio bands (financials). A ratio of 3 means each customer returns
// three times what it cost to acquire.
const (
	LTVCACExcellentMin = 3.0
	LTVCACHealthyMin   = 2.0
	LTVCACMarginalMin  = 1.0

	LTVCACExcellentScore  = 90.0
	LTVCACHealthyScore    = 70.0
	LTVCACMarginalScore   = 50.0
	LTVCACUnderwaterScore = 10.0
)

func ltvToCACBand(ratio float64) float64 {
	switch {
	case ratio >= LTVCACExcellentMin:
		return LTVCACExcellentScore
	case ratio >= LTVCACHealthyMin:
		return LTVCACHealthyScore
	case ratio >= LTVCACMarginalMin:
		return LTVCACMarginalScore
	default:
		return LTVCACUnderwaterScore
	}
}

// Burn multiple bands (financials). Lower is better: cash burned per unit of
// net new revenue.
const (
	BurnMultipleExcellentMax = 1.0
	BurnMultipleGoodMax      = 1.5
	BurnMultipleFairMax      = 2.0
	BurnMultipleWeakMax      = 3.0

	BurnMultipleExcellentScore = 90.0
	BurnMultipleGoodScore      = 75.0
	BurnMultipleFairScore      = 60.0
	BurnMultipleWeakScore      = 40.0
	BurnMultiplePoorScore      = 20.0
)

func burnMultipleBand(multiple float64) float64 {
	switch {
	case multiple < BurnMultipleExcellentMax:
		return BurnMultipleExcellentScore
	case multiple < BurnMultipleGoodMax:
		return BurnMultipleGoodScore
	case multiple < BurnMultipleFairMax:
		return BurnMultipleFairScore
	case multiple < BurnMultipleWeakMax:
		return BurnMultipleWeakScore
	default:
		return BurnMultiplePoorScore
	}
}

// Month-over-month revenue growth bands (traction), monthly fractions.
const (
	GrowthHyperMin  = 0.15
	GrowthStrongMin = 0.10
	GrowthSteadyMin = 0.05
	GrowthFlatMin   = 0.0

	GrowthHyperScore    = 90.0
	GrowthStrongScore   = 75.0
	GrowthSteadyScore   = 60.0
	GrowthFlatScore     = 40.0
	GrowthNegativeScore = 20.0
)

func growthBand(rate float64) float64 {
	switch {
	case rate >= GrowthHyperMin:
		return GrowthHyperScore
	case rate >= GrowthStrongMin:
		return GrowthStrongScore
	case rate >= GrowthSteadyMin:
		return GrowthSteadyScore
	case rate >= GrowthFlatMin:
		return GrowthFlatScore
	default:
		return GrowthNegativeScore
	}
}

// Customer base bands (traction), active customer count.
const (
	CustomerBaseLargeMin = 10000.0
	CustomerBaseMidMin   = 1000.0
	CustomerBaseEarlyMin = 100.0

	CustomerBaseLargeScore   = 90.0
	CustomerBaseMidScore     = 70.0
	CustomerBaseEarlyScore   = 50.0
	CustomerBaseNascentScore = 30.0
)

func customerBaseBand(customers float64) float64 {
	switch {
	case customers >= CustomerBaseLargeMin:
		return CustomerBaseLargeScore
	case customers >= CustomerBaseMidMin:
		return CustomerBaseMidScore
	case customers >= CustomerBaseEarlyMin:
		return CustomerBaseEarlyScore
	default:
		return CustomerBaseNascentScore
	}
}

// Total addressable market bands (market), currency.
const (
	TAMHugeMin     = 10e9
	TAMLargeMin    = 1e9
	TAMModerateMin = 100e6

	TAMHugeScore     = 90.0
	TAMLargeScore    = 75.0
	TAMModerateScore = 55.0
	TAMNicheScore    = 30.0
)

func tamBand(tam float64) float64 {
	switch {
	case tam >= TAMHugeMin:
		return TAMHugeScore
	case tam >= TAMLargeMin:
		return TAMLargeScore
	case tam >= TAMModerateMin:
		return TAMModerateScore
	default:
		return TAMNicheScore
	}
}

// Market growth bands (market), annual fractions.
const (
	MarketGrowthRapidMin   = 0.20
	MarketGrowthHealthyMin = 0.10
	MarketGrowthModestMin  = 0.05

	MarketGrowthRapidScore    = 90.0
	MarketGrowthHealthyScore  = 70.0
	MarketGrowthModestScore   = 50.0
	MarketGrowthStagnantScore = 30.0
)

func marketGrowthBand(rate float64) float64 {
	switch {
	case rate >= MarketGrowthRapidMin:
		return MarketGrowthRapidScore
	case rate >= MarketGrowthHealthyMin:
		return MarketGrowthHealthyScore
	case rate >= MarketGrowthModestMin:
		return MarketGrowthModestScore
	default:
		return MarketGrowthStagnantScore
	}
}

// Team size bands (team), headcount.
const (
	TeamScaledMin = 15.0
	TeamBuiltMin  = 6.0
	TeamCoreMin   = 3.0

	TeamScaledScore   = 80.0
	TeamBuiltScore    = 65.0
	TeamCoreScore     = 50.0
	TeamFoundersScore = 35.0
)

func teamSizeBand(size float64) float64 {
	switch {
	case size >= TeamScaledMin:
		return TeamScaledScore
	case size >= TeamBuiltMin:
		return TeamBuiltScore
	case size >= TeamCoreMin:
		return TeamCoreScore
	default:
		return TeamFoundersScore
	}
}

// Net promoter score bands (product), -100..100.
const (
	NPSExcellentMin = 50.0
	NPSGoodMin      = 30.0
	NPSNeutralMin   = 0.0

	NPSExcellentScore = 90.0
	NPSGoodScore      = 70.0
	NPSNeutralScore   = 50.0
	NPSNegativeScore  = 25.0
)

func npsBand(nps float64) float64 {
	switch {
	case nps >= NPSExcellentMin:
		return NPSExcellentScore
	case nps >= NPSGoodMin:
		return NPSGoodScore
	case nps >= NPSNeutralMin:
		return NPSNeutralScore
	default:
		return NPSNegativeScore
	}
}

// Repeat purchase rate bands (product), fractions 0..1.
const (
	RepeatHabitualMin = 0.6
	RepeatStickyMin   = 0.4
	RepeatModerateMin = 0.2

	RepeatHabitualScore = 85.0
	RepeatStickyScore   = 65.0
	RepeatModerateScore = 45.0
	RepeatLowScore      = 30.0
)

func repeatRateBand(rate float64) float64 {
	switch {
	case rate >= RepeatHabitualMin:
		return RepeatHabitualScore
	case rate >= RepeatStickyMin:
		return RepeatStickyScore
	case rate >= RepeatModerateMin:
		return RepeatModerateScore
	default:
		return RepeatLowScore
	}
}
