package valuation

import (
	"fmt"
	"strings"

	"rental-scanner/models"
)

// adjustments computes the four additive correction layers on top of the base
// value. Layers whose amount works out to exactly zero are omitted from the
// breakdown; the sum of the returned entries is always the returned total.
func (e *Engine) adjustments(method Method, subject *models.PropertyRecord, comps []*models.PropertyRecord, manhattan bool) ([]AdjustmentEntry, float64) {
	var entries []AdjustmentEntry

	if entry, ok := e.amenityAdjustment(subject, comps, manhattan); ok {
		entries = append(entries, entry)
	}
	if method != MethodAreaRateFallback {
		// The fallback method already prices area directly.
		if entry, ok := e.areaAdjustment(subject, comps); ok {
			entries = append(entries, entry)
		}
	}
	if entry, ok := e.keywordAdjustment(CategoryQuality, subject.Description, e.cfg.QualitySignals, 0); ok {
		entries = append(entries, entry)
	}
	if entry, ok := e.microLocationAdjustment(subject.Description); ok {
		entries = append(entries, entry)
	}

	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	return entries, total
}

// amenityAdjustment isolates the amenity effect already baked into comparable
// rents: the subject's amenity value minus the average amenity value across
// comparables. Percentage rules for the subject resolve against the
// comparable median rent, since the subject's own asking rent is the number
// under scrutiny.
func (e *Engine) amenityAdjustment(subject *models.PropertyRecord, comps []*models.PropertyRecord, manhattan bool) (AdjustmentEntry, bool) {
	baseRent := medianRent(comps)

	subjectSet := ExtractAmenities(subject.Amenities, subject.Description)
	subjectValue := e.cfg.Pricing.Value(subjectSet, baseRent, manhattan)

	var compAvg float64
	if len(comps) > 0 {
		var sum float64
		for _, c := range comps {
			set := ExtractAmenities(c.Amenities, c.Description)
			sum += e.cfg.Pricing.Value(set, c.MonthlyRent, manhattan)
		}
		compAvg = sum / float64(len(comps))
	}

	amount := subjectValue - compAvg
	if amount == 0 {
		return AdjustmentEntry{}, false
	}
	return AdjustmentEntry{
		Category: CategoryAmenities,
		Amount:   amount,
		Detail: fmt.Sprintf("subject amenities $%.0f vs comparable average $%.0f",
			subjectValue, compAvg),
	}, true
}

// areaAdjustment prices the subject's square footage against the comparable
// average at asymmetric per-sqft rates. Skipped when the subject's area is
// unknown or no comparable published one.
func (e *Engine) areaAdjustment(subject *models.PropertyRecord, comps []*models.PropertyRecord) (AdjustmentEntry, bool) {
	if subject.AreaSqFt <= 0 {
		return AdjustmentEntry{}, false
	}

	var sum float64
	var n int
	for _, c := range comps {
		if c.AreaSqFt > 0 {
			sum += c.AreaSqFt
			n++
		}
	}
	if n == 0 {
		return AdjustmentEntry{}, false
	}
	avgArea := sum / float64(n)

	category := subject.Bedrooms
	if category > 3 {
		category = 3
	}
	rate := e.cfg.AreaRates[category]

	delta := subject.AreaSqFt - avgArea
	var amount float64
	if delta > 0 {
		amount = delta * rate.OverPerSqFt
	} else {
		amount = delta * rate.UnderPerSqFt
	}
	if amount == 0 {
		return AdjustmentEntry{}, false
	}
	return AdjustmentEntry{
		Category: CategoryArea,
		Amount:   amount,
		Detail: fmt.Sprintf("%.0f sqft vs comparable average %.0f sqft",
			subject.AreaSqFt, avgArea),
	}, true
}

// keywordAdjustment sums every signal whose phrase appears in the
// description. Matches are non-exclusive. The extra amount (if any) is added
// on top of the matched signals.
func (e *Engine) keywordAdjustment(category, description string, signals []KeywordSignal, extra float64) (AdjustmentEntry, bool) {
	desc := strings.ToLower(description)

	amount := extra
	var matched []string
	for _, sig := range signals {
		if strings.Contains(desc, sig.Phrase) {
			amount += sig.Amount
			matched = append(matched, sig.Phrase)
		}
	}
	if amount == 0 {
		return AdjustmentEntry{}, false
	}

	detail := "no keyword signals"
	if len(matched) > 0 {
		detail = "matched: " + strings.Join(matched, ", ")
	}
	return AdjustmentEntry{Category: category, Amount: amount, Detail: detail}, true
}

// microLocationAdjustment scans for block-level signals, plus the
// ground-floor penalty for units without a garden to show for it.
func (e *Engine) microLocationAdjustment(description string) (AdjustmentEntry, bool) {
	desc := strings.ToLower(description)

	var extra float64
	if strings.Contains(desc, "ground floor") && !strings.Contains(desc, "garden") {
		extra = -e.cfg.GroundFloorPenalty
	}

	entry, ok := e.keywordAdjustment(CategoryMicroLocation, description, e.cfg.LocationSignals, extra)
	if ok && extra != 0 {
		entry.Detail += "; ground floor without garden"
		if entry.Detail == "no keyword signals; ground floor without garden" {
			entry.Detail = "ground floor without garden"
		}
	}
	return entry, ok
}
