package valuation

// KeywordSignal is one trigger phrase with its fixed dollar effect. Signals
// are non-exclusive: every phrase found in a description contributes.
type KeywordSignal struct {
	Phrase string
	Amount float64
}

// AreaRate holds the asymmetric per-square-foot rates for one bedroom
// category. Units below the comparable average are penalized more steeply
// than above-average units are rewarded.
type AreaRate struct {
	OverPerSqFt  float64
	UnderPerSqFt float64
}

// EngineConfig holds every table, weight and threshold the engine uses.
// It is fixed at construction time; alternate pricing tables or historical
// threshold revisions are just different configs.
type EngineConfig struct {
	Pricing PricingTable

	// Minimum comparable counts per method, tried most specific first.
	MinComparables map[Method]int

	// Base confidence per method plus the gate a verdict must clear.
	MethodConfidence map[Method]int
	ConfidenceGate   map[Method]int

	// Dollars per half-bath difference used by the bedroom-match method.
	HalfBathAdjustment float64

	// Rent bounds and staleness cutoff of the comparable quality filter.
	MaxComparableRent float64
	MaxDaysOnMarket   int

	// Per-square-foot rates keyed by bedroom count (3 covers 3+).
	AreaRates map[int]AreaRate

	// Fallback unit sizes keyed by bedroom count (4 covers 4+), used when a
	// subject has no published square footage.
	BedroomAreaEstimates map[int]float64

	QualitySignals     []KeywordSignal
	LocationSignals    []KeywordSignal
	GroundFloorPenalty float64
}

// DefaultEngineConfig returns the production configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Pricing: DefaultPricingTable(),

		MinComparables: map[Method]int{
			MethodExactMatch:       3,
			MethodBedBathSpecific:  8,
			MethodBedroomSpecific:  12,
			MethodAreaRateFallback: 20,
		},

		MethodConfidence: map[Method]int{
			MethodExactMatch:       95,
			MethodBedBathSpecific:  85,
			MethodBedroomSpecific:  75,
			MethodAreaRateFallback: 60,
		},

		ConfidenceGate: map[Method]int{
			MethodExactMatch:       70,
			MethodBedBathSpecific:  70,
			MethodBedroomSpecific:  60,
			MethodAreaRateFallback: 50,
		},

		HalfBathAdjustment: 200,

		MaxComparableRent: 50000,
		MaxDaysOnMarket:   120,

		AreaRates: map[int]AreaRate{
			0: {OverPerSqFt: 2.00, UnderPerSqFt: 3.00},
			1: {OverPerSqFt: 1.75, UnderPerSqFt: 2.75},
			2: {OverPerSqFt: 1.50, UnderPerSqFt: 2.50},
			3: {OverPerSqFt: 1.25, UnderPerSqFt: 2.25},
		},

		BedroomAreaEstimates: map[int]float64{
			0: 450,
			1: 650,
			2: 900,
			3: 1200,
			4: 1500,
		},

		QualitySignals: []KeywordSignal{
			{"gut renovated", 250},
			{"renovated", 150},
			{"luxury", 100},
			{"hardwood", 75},
			{"stainless steel", 50},
			{"needs work", -200},
			{"fixer", -200},
			{"as-is", -150},
			{"handyman special", -150},
		},

		LocationSignals: []KeywordSignal{
			{"tree-lined", 75},
			{"tree lined", 75},
			{"quiet", 50},
			{"noisy", -100},
			{"busy street", -75},
			{"high traffic", -50},
		},
		GroundFloorPenalty: 100,
	}
}
