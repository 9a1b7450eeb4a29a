package valuation

import (
	"fmt"
	"math"

	"rental-scanner/models"
)

// qualityOK is the data-quality filter applied to every comparable candidate.
// Listings sitting on the market past the staleness cutoff are unreliable
// comparables (often already rented at an unknown price, or stuck for a
// reason the record does not show).
func (e *Engine) qualityOK(c *models.PropertyRecord, requireBaths bool) bool {
	if c.MonthlyRent <= 0 || c.MonthlyRent > e.cfg.MaxComparableRent {
		return false
	}
	if requireBaths && c.Bathrooms <= 0 {
		return false
	}
	return c.DaysOnMarket <= e.cfg.MaxDaysOnMarket
}

// effectiveBaths applies the boundary default: an unparsed bathroom count
// counts as one bathroom.
func effectiveBaths(c *models.PropertyRecord) float64 {
	if c.Bathrooms <= 0 {
		return 1
	}
	return c.Bathrooms
}

// selectComparables walks the method waterfall and returns the first method
// whose comparable subset meets its minimum sample size, together with that
// subset. When no method qualifies it returns MethodNone and a reason naming
// the shortfall.
func (e *Engine) selectComparables(subject *models.PropertyRecord, pool []*models.PropertyRecord) (Method, []*models.PropertyRecord, string) {
	subjectBaths := effectiveBaths(subject)

	// Exact match: same bedrooms, bathroom count actually known and within
	// half a bath, strict quality filter.
	var exact []*models.PropertyRecord
	for _, c := range pool {
		if !e.qualityOK(c, true) {
			continue
		}
		if c.Bedrooms == subject.Bedrooms && math.Abs(c.Bathrooms-subjectBaths) <= 0.5 {
			exact = append(exact, c)
		}
	}
	if len(exact) >= e.cfg.MinComparables[MethodExactMatch] {
		return MethodExactMatch, exact, ""
	}

	// Bed/bath specific: slightly looser — comparables with a defaulted
	// bathroom count are tolerated.
	var bedBath []*models.PropertyRecord
	for _, c := range pool {
		if !e.qualityOK(c, false) {
			continue
		}
		if c.Bedrooms == subject.Bedrooms && math.Abs(effectiveBaths(c)-subjectBaths) <= 0.5 {
			bedBath = append(bedBath, c)
		}
	}
	if len(bedBath) >= e.cfg.MinComparables[MethodBedBathSpecific] {
		return MethodBedBathSpecific, bedBath, ""
	}

	// Bedroom specific: bathrooms ignored here, corrected later in the
	// estimator.
	var bedroom []*models.PropertyRecord
	for _, c := range pool {
		if e.qualityOK(c, false) && c.Bedrooms == subject.Bedrooms {
			bedroom = append(bedroom, c)
		}
	}
	if len(bedroom) >= e.cfg.MinComparables[MethodBedroomSpecific] {
		return MethodBedroomSpecific, bedroom, ""
	}

	// Area-rate fallback: any quality comparable with a known area.
	var byArea []*models.PropertyRecord
	for _, c := range pool {
		if e.qualityOK(c, false) && c.AreaSqFt > 0 {
			byArea = append(byArea, c)
		}
	}
	if len(byArea) >= e.cfg.MinComparables[MethodAreaRateFallback] {
		return MethodAreaRateFallback, byArea, ""
	}

	reason := fmt.Sprintf(
		"insufficient comparables: %d exact (need %d), %d bed/bath (need %d), %d bedroom (need %d), %d with area (need %d)",
		len(exact), e.cfg.MinComparables[MethodExactMatch],
		len(bedBath), e.cfg.MinComparables[MethodBedBathSpecific],
		len(bedroom), e.cfg.MinComparables[MethodBedroomSpecific],
		len(byArea), e.cfg.MinComparables[MethodAreaRateFallback],
	)
	return MethodNone, nil, reason
}
