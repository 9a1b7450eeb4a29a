package valuation

import (
	"math"
	"testing"

	"rental-scanner/models"
)

func TestAmenityAdjustmentDifferential(t *testing.T) {
	e := newTestEngine()

	subject := &models.PropertyRecord{
		MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1,
		Amenities: []string{"elevator", "dishwasher"},
	}
	// Comparables have no amenities at all, so the full subject value shows
	// up as a positive differential.
	comps := []*models.PropertyRecord{
		comp(3000, 1, 1), comp(3200, 1, 1), comp(3400, 1, 1),
	}

	entry, ok := e.amenityAdjustment(subject, comps, false)
	if !ok {
		t.Fatal("expected an amenity adjustment entry")
	}
	if entry.Amount != 60 {
		t.Errorf("amenity adjustment = %.0f; want 60 (elevator 25 + dishwasher 35)", entry.Amount)
	}
}

func TestAmenityAdjustmentOmittedWhenEqual(t *testing.T) {
	e := newTestEngine()

	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1}
	comps := []*models.PropertyRecord{comp(3000, 1, 1), comp(3200, 1, 1)}

	if _, ok := e.amenityAdjustment(subject, comps, false); ok {
		t.Error("zero amenity differential should be omitted from the breakdown")
	}
}

func TestAreaAdjustmentAsymmetricRates(t *testing.T) {
	e := newTestEngine()

	comps := []*models.PropertyRecord{
		{MonthlyRent: 3000, Bedrooms: 1, Bathrooms: 1, AreaSqFt: 700, DaysOnMarket: 5},
		{MonthlyRent: 3200, Bedrooms: 1, Bathrooms: 1, AreaSqFt: 700, DaysOnMarket: 5},
	}

	over := &models.PropertyRecord{Bedrooms: 1, AreaSqFt: 800}
	entry, ok := e.areaAdjustment(over, comps)
	if !ok {
		t.Fatal("expected an area adjustment entry")
	}
	if entry.Amount != 100*1.75 {
		t.Errorf("over-average adjustment = %.0f; want %.0f", entry.Amount, 100*1.75)
	}

	// The under-rate is steeper than the over-rate.
	under := &models.PropertyRecord{Bedrooms: 1, AreaSqFt: 600}
	entry, ok = e.areaAdjustment(under, comps)
	if !ok {
		t.Fatal("expected an area adjustment entry")
	}
	if entry.Amount != -100*2.75 {
		t.Errorf("under-average adjustment = %.0f; want %.0f", entry.Amount, -100*2.75)
	}
}

func TestAreaAdjustmentSkips(t *testing.T) {
	e := newTestEngine()

	withArea := []*models.PropertyRecord{{MonthlyRent: 3000, AreaSqFt: 700}}
	noArea := []*models.PropertyRecord{{MonthlyRent: 3000}}

	if _, ok := e.areaAdjustment(&models.PropertyRecord{Bedrooms: 1}, withArea); ok {
		t.Error("unknown subject area should skip the area adjustment")
	}
	if _, ok := e.areaAdjustment(&models.PropertyRecord{Bedrooms: 1, AreaSqFt: 700}, noArea); ok {
		t.Error("no comparable areas should skip the area adjustment")
	}
}

func TestQualityKeywordsSumNonExclusive(t *testing.T) {
	e := newTestEngine()

	desc := "Gut renovated luxury unit with hardwood floors"
	entry, ok := e.keywordAdjustment(CategoryQuality, desc, e.cfg.QualitySignals, 0)
	if !ok {
		t.Fatal("expected a quality adjustment entry")
	}
	// "gut renovated" (+250) also contains "renovated" (+150); both apply,
	// plus luxury (+100) and hardwood (+75).
	if entry.Amount != 575 {
		t.Errorf("quality adjustment = %.0f; want 575", entry.Amount)
	}
}

func TestQualityKeywordsNegative(t *testing.T) {
	e := newTestEngine()

	entry, ok := e.keywordAdjustment(CategoryQuality, "Needs work, sold as-is", e.cfg.QualitySignals, 0)
	if !ok {
		t.Fatal("expected a quality adjustment entry")
	}
	if entry.Amount != -350 {
		t.Errorf("quality adjustment = %.0f; want -350", entry.Amount)
	}
}

func TestMicroLocationGroundFloor(t *testing.T) {
	e := newTestEngine()

	entry, ok := e.microLocationAdjustment("Ground floor unit on a busy street")
	if !ok {
		t.Fatal("expected a micro-location entry")
	}
	if entry.Amount != -175 {
		t.Errorf("micro-location adjustment = %.0f; want -175 (ground floor -100, busy street -75)", entry.Amount)
	}

	// A garden apartment on the ground floor is not penalized for the floor.
	entry, ok = e.microLocationAdjustment("Ground floor garden apartment on a quiet block")
	if !ok {
		t.Fatal("expected a micro-location entry")
	}
	if entry.Amount != 50 {
		t.Errorf("micro-location adjustment = %.0f; want 50 (quiet only)", entry.Amount)
	}
}

// The estimated rent must always equal round(base + sum of breakdown entries).
func TestAdjustmentTotalsReconcile(t *testing.T) {
	e := newTestEngine()

	subject := &models.PropertyRecord{
		MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1, AreaSqFt: 600,
		Amenities:   []string{"elevator"},
		Description: "Renovated unit on a quiet tree-lined block",
	}
	var comps []*models.PropertyRecord
	for i := 0; i < 4; i++ {
		comps = append(comps, &models.PropertyRecord{
			MonthlyRent: 3000 + float64(i)*100, Bedrooms: 1, Bathrooms: 1,
			AreaSqFt: 650, DaysOnMarket: 10,
		})
	}

	res := e.SelectMethodAndEstimate(subject, comps)
	if !res.Success {
		t.Fatalf("valuation failed: %s", res.Rationale)
	}

	var sum float64
	for _, entry := range res.Adjustments {
		if entry.Amount == 0 {
			t.Errorf("zero-amount layer %q present in breakdown", entry.Category)
		}
		sum += entry.Amount
	}
	if sum != res.TotalAdjustments {
		t.Errorf("entry sum %.2f != TotalAdjustments %.2f", sum, res.TotalAdjustments)
	}
	if got := math.Round(res.BaseMarketRent + res.TotalAdjustments); got != res.EstimatedMarketRent {
		t.Errorf("estimated %.0f != round(base %.2f + adjustments %.2f)",
			res.EstimatedMarketRent, res.BaseMarketRent, res.TotalAdjustments)
	}
}
