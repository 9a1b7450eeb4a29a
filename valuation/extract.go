package valuation

import (
	"sort"
	"strings"
)

// amenitySynonyms normalizes structured amenity-list entries to canonical
// identifiers. Listing sites label the same amenity many different ways
// ("lift", "elevator"; "w/d in unit", "in-unit laundry"), and comparables
// come from more than one source.
var amenitySynonyms = map[string]string{
	"doorman":               "doorman",
	"attended lobby":        "doorman",
	"virtual doorman":       "doorman",
	"full-time doorman":     "doorman_full_time",
	"full time doorman":     "doorman_full_time",
	"24/7 doorman":          "doorman_full_time",
	"24-hour doorman":       "doorman_full_time",
	"24 hour doorman":       "doorman_full_time",
	"concierge":             "concierge",
	"elevator":              "elevator",
	"lift":                  "elevator",
	"laundry":               "laundry_in_building",
	"laundry in building":   "laundry_in_building",
	"laundry room":          "laundry_in_building",
	"shared laundry":        "laundry_in_building",
	"washer/dryer":          "washer_dryer_in_unit",
	"washer dryer":          "washer_dryer_in_unit",
	"washer/dryer in unit":  "washer_dryer_in_unit",
	"w/d in unit":           "washer_dryer_in_unit",
	"in-unit laundry":       "washer_dryer_in_unit",
	"dishwasher":            "dishwasher",
	"gym":                   "gym",
	"fitness center":        "gym",
	"fitness room":          "gym",
	"health club":           "gym",
	"roof deck":             "roof_deck",
	"roofdeck":              "roof_deck",
	"rooftop":               "roof_deck",
	"roof terrace":          "roof_deck",
	"balcony":               "balcony",
	"terrace":               "terrace",
	"private outdoor space": "private_outdoor",
	"private outdoor":       "private_outdoor",
	"garden":                "garden",
	"courtyard":             "garden",
	"pool":                  "pool",
	"swimming pool":         "pool",
	"parking":               "parking",
	"garage":                "parking",
	"parking spot":          "parking",
	"central air":           "central_air",
	"central a/c":           "central_air",
	"central ac":            "central_air",
	"storage":               "storage",
	"storage space":         "storage",
	"bike room":             "bike_room",
	"bike storage":          "bike_room",
	"bicycle storage":       "bike_room",
	"pets allowed":          "pets_allowed",
	"pet friendly":          "pets_allowed",
	"pet-friendly":          "pets_allowed",
	"dogs allowed":          "pets_allowed",
	"cats allowed":          "pets_allowed",
	"live-in super":         "live_in_super",
	"live in super":         "live_in_super",
	"superintendent":        "live_in_super",
}

// descriptionRule maps free-text phrases to a canonical amenity. Rules in the
// same family are ordered most specific first; once one rule in a family
// matches, the rest of the family is suppressed so "24/7 doorman" does not
// also register as plain "doorman".
type descriptionRule struct {
	family    string
	canonical string
	phrases   []string
}

var descriptionRules = []descriptionRule{
	{"doorman", "doorman_full_time", []string{
		"24/7 doorman", "24-hour doorman", "24 hour doorman",
		"full-time doorman", "full time doorman",
	}},
	{"doorman", "doorman", []string{"doorman", "attended lobby"}},
	{"laundry", "washer_dryer_in_unit", []string{
		"washer/dryer in unit", "washer and dryer in unit",
		"in-unit washer", "in-unit laundry", "w/d in unit",
	}},
	{"laundry", "laundry_in_building", []string{
		"laundry in building", "laundry room", "laundry",
	}},
	{"outdoor", "private_outdoor", []string{"private outdoor space", "private outdoor"}},
	{"outdoor", "terrace", []string{"terrace"}},
	{"outdoor", "balcony", []string{"balcony"}},
	{"roof", "roof_deck", []string{"roof deck", "roofdeck", "rooftop"}},
	{"elevator", "elevator", []string{"elevator", "lift access"}},
	{"dishwasher", "dishwasher", []string{"dishwasher"}},
	{"gym", "gym", []string{"fitness center", "fitness room", "gym"}},
	{"garden", "garden", []string{"garden", "courtyard"}},
	{"pool", "pool", []string{"swimming pool", "pool"}},
	{"parking", "parking", []string{"parking", "garage"}},
	{"air", "central_air", []string{"central air", "central a/c", "central ac"}},
	{"pets", "pets_allowed", []string{"pets allowed", "pet friendly", "pet-friendly"}},
	{"concierge", "concierge", []string{"concierge"}},
	{"super", "live_in_super", []string{"live-in super", "live in super"}},
	{"storage", "storage", []string{"storage space", "bike room"}},
}

// ExtractAmenities merges a structured amenity list with amenities mined from
// the free-text description, returning a deduplicated set of canonical
// identifiers. Comparable listings have inconsistent structured-amenity
// coverage; description mining recovers signal the structured field misses.
func ExtractAmenities(listed []string, description string) []string {
	set := make(map[string]struct{})

	for _, raw := range listed {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		if canonical, ok := amenitySynonyms[key]; ok {
			set[canonical] = struct{}{}
			continue
		}
		// Fall back to substring matching for entries like
		// "Doorman (full-time)" that are not exact synonym keys.
		for _, rule := range descriptionRules {
			if matchesAny(key, rule.phrases) {
				set[rule.canonical] = struct{}{}
				break
			}
		}
	}

	desc := strings.ToLower(description)
	if desc != "" {
		matchedFamily := make(map[string]struct{})
		for _, rule := range descriptionRules {
			if _, done := matchedFamily[rule.family]; done {
				continue
			}
			if matchesAny(desc, rule.phrases) {
				set[rule.canonical] = struct{}{}
				matchedFamily[rule.family] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func matchesAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
