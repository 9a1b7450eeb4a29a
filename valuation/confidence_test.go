package valuation

import (
	"math/rand"
	"testing"

	"rental-scanner/models"
)

func TestConfidenceByMethod(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1}

	tests := []struct {
		method Method
		want   int
	}{
		// Sample size 7 sits in the no-modifier band; subject has no area
		// and no amenities, so no completeness bonus either.
		{MethodExactMatch, 95},
		{MethodBedBathSpecific, 85},
		{MethodBedroomSpecific, 75},
		{MethodAreaRateFallback, 60},
	}

	for _, tt := range tests {
		if got := e.confidence(tt.method, 7, subject); got != tt.want {
			t.Errorf("confidence(%v, 7) = %d; want %d", tt.method, got, tt.want)
		}
	}
}

func TestConfidenceSampleSizeModifiers(t *testing.T) {
	e := newTestEngine()
	subject := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1}

	tests := []struct {
		samples int
		want    int
	}{
		{25, 90}, // +5
		{20, 90}, // +5
		{15, 88}, // +3
		{10, 86}, // +1
		{9, 85},  // no modifier
		{5, 85},  // no modifier
		{4, 75},  // -10
	}

	for _, tt := range tests {
		if got := e.confidence(MethodBedBathSpecific, tt.samples, subject); got != tt.want {
			t.Errorf("confidence with %d samples = %d; want %d", tt.samples, got, tt.want)
		}
	}
}

func TestConfidenceCompletenessBonus(t *testing.T) {
	e := newTestEngine()

	withArea := &models.PropertyRecord{MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1, AreaSqFt: 650}
	if got := e.confidence(MethodExactMatch, 7, withArea); got != 100 {
		t.Errorf("confidence with area = %d; want 100 (95 + 5)", got)
	}

	full := &models.PropertyRecord{
		MonthlyRent: 2500, Bedrooms: 1, Bathrooms: 1, AreaSqFt: 650,
		Amenities: []string{"elevator"},
	}
	// 95 + 5 + 5 would be 105; the score clamps at 100.
	if got := e.confidence(MethodExactMatch, 7, full); got != 100 {
		t.Errorf("confidence clamping failed: got %d; want 100", got)
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	e := newTestEngine()
	methods := []Method{MethodExactMatch, MethodBedBathSpecific, MethodBedroomSpecific, MethodAreaRateFallback}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		subject := &models.PropertyRecord{
			MonthlyRent: float64(rng.Intn(10000)),
			Bedrooms:    rng.Intn(6),
			Bathrooms:   float64(rng.Intn(6)) / 2,
			AreaSqFt:    float64(rng.Intn(2000)) - 100,
		}
		if rng.Intn(2) == 0 {
			subject.Amenities = []string{"elevator", "gym"}
		}
		method := methods[rng.Intn(len(methods))]
		samples := rng.Intn(40)

		got := e.confidence(method, samples, subject)
		if got < 0 || got > 100 {
			t.Fatalf("confidence out of range: %d (method %v, samples %d, subject %+v)",
				got, method, samples, subject)
		}
	}
}
