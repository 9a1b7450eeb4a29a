package valuation

import (
	"fmt"

	"rental-scanner/models"
	"rental-scanner/utils"
)

// Engine estimates market rents from comparable listings and decides whether
// a subject listing is priced substantially below market. It holds only
// immutable configuration, performs no I/O, and is safe for concurrent use —
// one call per subject, fan out as wide as you like.
type Engine struct {
	cfg    EngineConfig
	logger *utils.Logger
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg EngineConfig, logger *utils.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// normalize returns a defensive copy of the record with boundary defaults
// applied. The caller's record is never touched.
func normalize(r *models.PropertyRecord) *models.PropertyRecord {
	c := *r
	if c.MonthlyRent < 0 {
		c.MonthlyRent = 0
	}
	if c.Bathrooms <= 0 {
		c.Bathrooms = 1
	}
	if c.AreaSqFt < 0 {
		c.AreaSqFt = 0
	}
	if c.DaysOnMarket < 0 {
		c.DaysOnMarket = 0
	}
	return &c
}

// SelectMethodAndEstimate runs the valuation pipeline for one subject:
// method selection, base value, adjustment layers, confidence. A failed
// selection yields Success=false with the shortfall in Rationale.
func (e *Engine) SelectMethodAndEstimate(subject *models.PropertyRecord, comparables []*models.PropertyRecord) *ValuationResult {
	return e.estimate(subject, comparables, subject.Neighborhood)
}

func (e *Engine) estimate(subject *models.PropertyRecord, comparables []*models.PropertyRecord, area string) *ValuationResult {
	subj := normalize(subject)

	method, comps, reason := e.selectComparables(subj, comparables)
	if method == MethodNone {
		e.logger.Debug("[valuation] %s: %s", subj.URL, reason)
		return &ValuationResult{Success: false, Method: MethodNone, Rationale: reason}
	}

	base := e.baseValue(method, subj, comps)
	if base <= 0 {
		return &ValuationResult{
			Success:   false,
			Method:    method,
			Rationale: fmt.Sprintf("base value could not be computed from %d comparables", len(comps)),
		}
	}

	manhattan := IsManhattan(area)
	entries, total := e.adjustments(method, subj, comps, manhattan)
	estimated := roundDollar(base + total)
	conf := e.confidence(method, len(comps), subj)

	return &ValuationResult{
		Success:             true,
		Method:              method,
		EstimatedMarketRent: estimated,
		BaseMarketRent:      base,
		TotalAdjustments:    total,
		Adjustments:         entries,
		Confidence:          conf,
		ComparablesUsed:     len(comps),
		Rationale: fmt.Sprintf("%s over %d comparables, base $%.0f, adjustments $%+.0f, confidence %d%%",
			method.Label(), len(comps), base, total, conf),
	}
}

// EstimateUndervaluation produces the final verdict for a subject against a
// comparable pool from the same area. The comparables are assumed to be
// geographically and temporally pre-filtered by the caller. The area label
// drives Manhattan vs outer-borough amenity pricing; when empty, the
// subject's own neighborhood is used.
func (e *Engine) EstimateUndervaluation(subject *models.PropertyRecord, comparables []*models.PropertyRecord, area string, opts VerdictOptions) *UndervaluationVerdict {
	if area == "" {
		area = subject.Neighborhood
	}

	res := e.estimate(subject, comparables, area)
	if !res.Success || res.EstimatedMarketRent <= 0 {
		return &UndervaluationVerdict{
			IsUndervalued: false,
			ActualRent:    subject.MonthlyRent,
			Method:        res.Method,
			Confidence:    0,
			Rationale:     "cannot evaluate: " + res.Rationale,
		}
	}

	actual := subject.MonthlyRent
	discount := roundTenth((res.EstimatedMarketRent - actual) / res.EstimatedMarketRent * 100)
	gate := e.cfg.ConfidenceGate[res.Method]
	undervalued := discount >= opts.ThresholdPct && res.Confidence >= gate

	savings := res.EstimatedMarketRent - actual
	if savings < 0 {
		savings = 0
	}

	var rationale string
	switch {
	case undervalued:
		rationale = fmt.Sprintf("listed $%.0f vs estimated market $%.0f — %.1f%% below market (%s, %d comparables, confidence %d%%)",
			actual, res.EstimatedMarketRent, discount, res.Method.Label(), res.ComparablesUsed, res.Confidence)
	case discount >= opts.ThresholdPct:
		rationale = fmt.Sprintf("%.1f%% below market but confidence %d%% under the %d%% gate for %s",
			discount, res.Confidence, gate, res.Method.Label())
	default:
		rationale = fmt.Sprintf("listed $%.0f vs estimated market $%.0f — %.1f%% discount is under the %.0f%% threshold",
			actual, res.EstimatedMarketRent, discount, opts.ThresholdPct)
	}

	return &UndervaluationVerdict{
		IsUndervalued:           undervalued,
		DiscountPercent:         discount,
		EstimatedMarketRent:     res.EstimatedMarketRent,
		ActualRent:              actual,
		PotentialMonthlySavings: roundDollar(savings),
		Confidence:              res.Confidence,
		Method:                  res.Method,
		ComparablesUsed:         res.ComparablesUsed,
		Adjustments:             res.Adjustments,
		Rationale:               rationale,
	}
}
