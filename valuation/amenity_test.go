package valuation

import (
	"reflect"
	"testing"
)

func TestIsManhattan(t *testing.T) {
	tests := []struct {
		area string
		want bool
	}{
		{"East Village", true},
		{"east-village", true},
		{"Upper West Side", true},
		{"Hell's Kitchen", true},
		{"Manhattan", true},
		{"Williamsburg", false},
		{"Astoria", false},
		{"Park Slope", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsManhattan(tt.area); got != tt.want {
			t.Errorf("IsManhattan(%q) = %v; want %v", tt.area, got, tt.want)
		}
	}
}

func TestResolveFixedAndPercentage(t *testing.T) {
	table := DefaultPricingTable()

	// Elevator is a fixed rule on both sides of the river.
	if got := table.Resolve("elevator", 3000, true); got != 50 {
		t.Errorf("elevator in Manhattan = %.0f; want 50", got)
	}
	if got := table.Resolve("elevator", 3000, false); got != 25 {
		t.Errorf("elevator in outer borough = %.0f; want 25", got)
	}

	// Full-time doorman is percentage-based in Manhattan.
	if got := table.Resolve("doorman_full_time", 3000, true); got != 180 {
		t.Errorf("doorman_full_time at $3000 Manhattan = %.0f; want 180 (6%%)", got)
	}
	if got := table.Resolve("doorman_full_time", 3000, false); got != 175 {
		t.Errorf("doorman_full_time outer borough = %.0f; want fixed 175", got)
	}
}

func TestResolvePercentageWithZeroBaseRent(t *testing.T) {
	table := DefaultPricingTable()
	if got := table.Resolve("doorman_full_time", 0, true); got != 0 {
		t.Errorf("percentage rule with zero base rent = %.0f; want exactly 0", got)
	}
}

func TestResolveUnknownAmenityIgnored(t *testing.T) {
	table := DefaultPricingTable()
	if got := table.Resolve("helipad", 3000, true); got != 0 {
		t.Errorf("unknown amenity = %.0f; want 0", got)
	}
}

func TestValueSumsSet(t *testing.T) {
	table := DefaultPricingTable()
	set := []string{"elevator", "dishwasher", "helipad"}
	if got := table.Value(set, 3000, false); got != 60 {
		t.Errorf("Value = %.0f; want 60 (25 + 35, unknown ignored)", got)
	}
}

func TestExtractAmenitiesFromList(t *testing.T) {
	got := ExtractAmenities([]string{"Lift", "Dishwasher", "W/D in unit", "Unrecognized Thing"}, "")
	want := []string{"dishwasher", "elevator", "washer_dryer_in_unit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAmenities = %v; want %v", got, want)
	}
}

func TestExtractAmenitiesFromDescription(t *testing.T) {
	desc := "Sunny unit with a 24/7 doorman, in-unit laundry and a beautiful roof deck."
	got := ExtractAmenities(nil, desc)
	want := []string{"doorman_full_time", "roof_deck", "washer_dryer_in_unit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAmenities = %v; want %v", got, want)
	}
}

// A specific doorman phrase must not also register the generic doorman rule.
func TestExtractSpecificWinsOverGeneric(t *testing.T) {
	got := ExtractAmenities(nil, "Full-time doorman building")
	want := []string{"doorman_full_time"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAmenities = %v; want %v", got, want)
	}
}

func TestExtractMergesAndDeduplicates(t *testing.T) {
	got := ExtractAmenities([]string{"Elevator"}, "elevator building with dishwasher")
	want := []string{"dishwasher", "elevator"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAmenities = %v; want %v", got, want)
	}
}
