package valuation

// Method identifies which comparable-selection strategy produced an estimate.
// Methods are ordered by specificity: an exact bed/bath match is trusted more
// than a price-per-square-foot fallback.
type Method int

const (
	MethodNone Method = iota
	MethodExactMatch
	MethodBedBathSpecific
	MethodBedroomSpecific
	MethodAreaRateFallback
)

// Label returns a human-readable name for the method.
func (m Method) Label() string {
	switch m {
	case MethodExactMatch:
		return "exact bed/bath match"
	case MethodBedBathSpecific:
		return "bed/bath match"
	case MethodBedroomSpecific:
		return "bedroom match"
	case MethodAreaRateFallback:
		return "price per sqft"
	default:
		return "none"
	}
}

// Adjustment categories used in the breakdown list.
const (
	CategoryAmenities     = "amenities"
	CategoryArea          = "area"
	CategoryQuality       = "quality"
	CategoryMicroLocation = "micro-location"
)

// AdjustmentEntry is one additive correction applied on top of the base value.
type AdjustmentEntry struct {
	Category string
	Amount   float64
	Detail   string
}

// ValuationResult is the output of estimating a subject's market rent.
// When Success is false no estimate could be produced (insufficient
// comparables) and Rationale names the shortfall; that is a normal outcome,
// not an error.
type ValuationResult struct {
	Success             bool
	Method              Method
	EstimatedMarketRent float64
	BaseMarketRent      float64
	TotalAdjustments    float64
	Adjustments         []AdjustmentEntry
	Confidence          int
	ComparablesUsed     int
	Rationale           string
}

// UndervaluationVerdict is the final decision on whether a listing is priced
// substantially below its estimated market rent.
type UndervaluationVerdict struct {
	IsUndervalued           bool
	DiscountPercent         float64
	EstimatedMarketRent     float64
	ActualRent              float64
	PotentialMonthlySavings float64
	Confidence              int
	Method                  Method
	ComparablesUsed         int
	Adjustments             []AdjustmentEntry
	Rationale               string
}

// VerdictOptions carries the caller-supplied decision policy. The discount
// threshold is a policy choice of the caller, not an engine constant.
type VerdictOptions struct {
	ThresholdPct float64
}
