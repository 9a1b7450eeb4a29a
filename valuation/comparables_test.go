package valuation

import (
	"strings"
	"testing"

	"rental-scanner/models"
)

func comp(rent float64, beds int, baths float64) *models.PropertyRecord {
	return &models.PropertyRecord{MonthlyRent: rent, Bedrooms: beds, Bathrooms: baths, DaysOnMarket: 10}
}

func TestSelectExactMatch(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 2, Bathrooms: 1}

	pool := []*models.PropertyRecord{
		comp(3000, 2, 1),
		comp(3200, 2, 1),
		comp(3400, 2, 1),
		comp(5000, 3, 2), // wrong bedrooms
	}

	method, comps, _ := e.selectComparables(normalize(subject), pool)
	if method != MethodExactMatch {
		t.Fatalf("method = %v; want MethodExactMatch", method)
	}
	if len(comps) != 3 {
		t.Errorf("comparables used = %d; want 3", len(comps))
	}
	if got := e.baseValue(method, subject, comps); got != 3200 {
		t.Errorf("base value = %.0f; want 3200", got)
	}
}

func TestSelectWaterfallToBedroomSpecific(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 2, Bathrooms: 1}

	// 12 bedroom matches, but bathroom deltas too large for the tighter
	// tiers (only 2 within half a bath).
	var pool []*models.PropertyRecord
	pool = append(pool, comp(3000, 2, 1), comp(3100, 2, 1.5))
	for i := 0; i < 10; i++ {
		pool = append(pool, comp(3200, 2, 2.5))
	}

	method, comps, _ := e.selectComparables(normalize(subject), pool)
	if method != MethodBedroomSpecific {
		t.Fatalf("method = %v; want MethodBedroomSpecific", method)
	}
	if len(comps) != 12 {
		t.Errorf("comparables used = %d; want 12", len(comps))
	}

	// Confidence for this method never starts above 75.
	if base := e.cfg.MethodConfidence[method]; base > 75 {
		t.Errorf("bedroom-specific base confidence = %d; want ≤75", base)
	}
}

func TestSelectBedBathToleratesUnknownBaths(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1}

	// Bathroom counts unparsed (0): excluded from the exact tier, defaulted
	// to 1 for the looser bed/bath tier.
	var pool []*models.PropertyRecord
	for i := 0; i < 8; i++ {
		pool = append(pool, comp(3500, 1, 0))
	}

	method, comps, _ := e.selectComparables(normalize(subject), pool)
	if method != MethodBedBathSpecific {
		t.Fatalf("method = %v; want MethodBedBathSpecific", method)
	}
	if len(comps) != 8 {
		t.Errorf("comparables used = %d; want 8", len(comps))
	}
}

func TestQualityFilterRejections(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		c    *models.PropertyRecord
	}{
		{"zero rent", &models.PropertyRecord{MonthlyRent: 0, Bedrooms: 1, Bathrooms: 1}},
		{"absurd rent", &models.PropertyRecord{MonthlyRent: 50001, Bedrooms: 1, Bathrooms: 1}},
		{"stale", &models.PropertyRecord{MonthlyRent: 3000, Bedrooms: 1, Bathrooms: 1, DaysOnMarket: 121}},
	}
	for _, tt := range tests {
		if e.qualityOK(tt.c, false) {
			t.Errorf("%s: qualityOK = true; want false", tt.name)
		}
	}

	ok := &models.PropertyRecord{MonthlyRent: 3000, Bedrooms: 1, Bathrooms: 1, DaysOnMarket: 120}
	if !e.qualityOK(ok, true) {
		t.Error("healthy comparable rejected by quality filter")
	}
}

func TestSelectFailureNamesShortfall(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 2, Bathrooms: 1}

	pool := []*models.PropertyRecord{comp(3000, 2, 1), comp(3200, 2, 1)}

	method, _, reason := e.selectComparables(normalize(subject), pool)
	if method != MethodNone {
		t.Fatalf("method = %v; want MethodNone", method)
	}
	if !strings.Contains(reason, "insufficient comparables") {
		t.Errorf("reason %q does not name the shortfall", reason)
	}
	if !strings.Contains(reason, "2 exact (need 3)") {
		t.Errorf("reason %q does not include the exact-match count", reason)
	}
}
