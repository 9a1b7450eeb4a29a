package valuation

import (
	"math"
	"sort"

	"rental-scanner/models"
)

// median returns the middle value of the list (the average of the two middle
// values for even lengths). The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func medianRent(comps []*models.PropertyRecord) float64 {
	rents := make([]float64, 0, len(comps))
	for _, c := range comps {
		rents = append(rents, c.MonthlyRent)
	}
	return median(rents)
}

// estimatedArea returns the subject's published square footage, or a
// bedroom-count-based estimate when the listing did not publish one. The
// estimate is a local derived value only; the record is never written to.
func (e *Engine) estimatedArea(subject *models.PropertyRecord) float64 {
	if subject.AreaSqFt > 0 {
		return subject.AreaSqFt
	}
	beds := subject.Bedrooms
	if beds > 4 {
		beds = 4
	}
	return e.cfg.BedroomAreaEstimates[beds]
}

// baseValue computes the pre-adjustment market rent estimate for the chosen
// method over its comparable subset.
func (e *Engine) baseValue(method Method, subject *models.PropertyRecord, comps []*models.PropertyRecord) float64 {
	switch method {
	case MethodExactMatch, MethodBedBathSpecific:
		return medianRent(comps)

	case MethodBedroomSpecific:
		// Bathrooms were ignored during selection, so correct the median
		// rent for the bathroom-count difference here.
		base := medianRent(comps)
		baths := make([]float64, 0, len(comps))
		for _, c := range comps {
			baths = append(baths, effectiveBaths(c))
		}
		delta := effectiveBaths(subject) - median(baths)
		return base + (delta/0.5)*e.cfg.HalfBathAdjustment

	case MethodAreaRateFallback:
		rates := make([]float64, 0, len(comps))
		for _, c := range comps {
			if c.AreaSqFt > 0 && c.MonthlyRent > 0 {
				rates = append(rates, c.MonthlyRent/c.AreaSqFt)
			}
		}
		if len(rates) == 0 {
			return 0
		}
		return median(rates) * e.estimatedArea(subject)

	default:
		return 0
	}
}

// roundDollar rounds to whole dollars, half away from zero.
func roundDollar(v float64) float64 {
	return math.Round(v)
}

// roundTenth rounds to one decimal place, half up for positive values.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
