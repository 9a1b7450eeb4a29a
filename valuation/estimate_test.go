package valuation

import (
	"testing"

	"rental-scanner/models"
	"rental-scanner/utils"
)

func testLogger() *utils.Logger { return utils.NewLogger() }

func newTestEngine() *Engine {
	return NewEngine(DefaultEngineConfig(), testLogger())
}

func TestMedianOddAndEven(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd", []float64{3000, 3200, 3400}, 3200},
		{"even", []float64{3000, 3200, 3400, 3600}, 3300},
		{"single", []float64{2500}, 2500},
		{"empty", nil, 0},
		{"unsorted", []float64{3400, 3000, 3200}, 3200},
		{"reordered even", []float64{3600, 3000, 3400, 3200}, 3300},
	}

	for _, tt := range tests {
		if got := median(tt.values); got != tt.want {
			t.Errorf("%s: median(%v) = %.1f; want %.1f", tt.name, tt.values, got, tt.want)
		}
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3400, 3000, 3200}
	median(values)
	if values[0] != 3400 || values[1] != 3000 || values[2] != 3200 {
		t.Errorf("median mutated its input: %v", values)
	}
}

func TestRoundTenth(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{(3000.0 - 2000.0) / 3000.0 * 100, 33.3},
		{28.571428, 28.6},
		{25.05, 25.1},
		{25.04, 25.0},
	}
	for _, tt := range tests {
		if got := roundTenth(tt.in); got != tt.want {
			t.Errorf("roundTenth(%f) = %.2f; want %.2f", tt.in, got, tt.want)
		}
	}
}

func TestBaseValueBedroomSpecificBathCorrection(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 2, Bathrooms: 2}

	var comps []*models.PropertyRecord
	for i := 0; i < 5; i++ {
		comps = append(comps, &models.PropertyRecord{MonthlyRent: 3000, Bedrooms: 2, Bathrooms: 1})
	}

	// Median rent 3000, median baths 1, subject has 2 → +$400/full bath.
	got := e.baseValue(MethodBedroomSpecific, subject, comps)
	if got != 3400 {
		t.Errorf("baseValue = %.0f; want 3400", got)
	}
}

func TestBaseValueAreaRateFallback(t *testing.T) {
	e := newTestEngine()

	comps := []*models.PropertyRecord{
		{MonthlyRent: 3000, AreaSqFt: 600}, // $5.00/sqft
		{MonthlyRent: 3600, AreaSqFt: 900}, // $4.00/sqft
		{MonthlyRent: 4500, AreaSqFt: 750}, // $6.00/sqft
	}

	subject := &models.PropertyRecord{Bedrooms: 1, AreaSqFt: 700}
	if got := e.baseValue(MethodAreaRateFallback, subject, comps); got != 3500 {
		t.Errorf("baseValue with known area = %.0f; want 3500 (5.00 × 700)", got)
	}

	// Unknown area falls back to the 1BR estimate of 650 sqft, and the
	// record itself must stay untouched.
	noArea := &models.PropertyRecord{Bedrooms: 1, AreaSqFt: 0}
	if got := e.baseValue(MethodAreaRateFallback, noArea, comps); got != 3250 {
		t.Errorf("baseValue with estimated area = %.0f; want 3250 (5.00 × 650)", got)
	}
	if noArea.AreaSqFt != 0 {
		t.Errorf("subject record was mutated: AreaSqFt = %.0f", noArea.AreaSqFt)
	}
}
