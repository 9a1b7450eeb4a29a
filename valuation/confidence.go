package valuation

import "rental-scanner/models"

// confidence scores how trustworthy an estimate is, from the method's
// specificity, the comparable sample size, and how complete the subject's own
// data is. Always an integer in [0,100].
func (e *Engine) confidence(method Method, sampleSize int, subject *models.PropertyRecord) int {
	score := e.cfg.MethodConfidence[method]

	switch {
	case sampleSize >= 20:
		score += 5
	case sampleSize >= 15:
		score += 3
	case sampleSize >= 10:
		score += 1
	case sampleSize < 5:
		score -= 10
	}

	if subject.AreaSqFt > 0 {
		score += 5
	}
	if len(ExtractAmenities(subject.Amenities, subject.Description)) > 0 {
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
