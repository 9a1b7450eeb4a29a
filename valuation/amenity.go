package valuation

import "strings"

// RuleKind says how an amenity rule converts to dollars.
type RuleKind int

const (
	// RuleFixed adds a flat dollar amount to the monthly rent.
	RuleFixed RuleKind = iota
	// RulePercentage adds a percentage of a base rent. A percentage rule
	// resolved against a zero base rent contributes exactly 0.
	RulePercentage
)

// PriceRule is one location-specific amenity adjustment rule.
type PriceRule struct {
	Kind   RuleKind
	Amount float64 // dollars for RuleFixed, percent (e.g. 4 = 4%) for RulePercentage
}

// AmenityPricing holds the two location-conditioned rules for one amenity.
// Manhattan rents capitalize amenities differently than the outer boroughs,
// so every amenity carries a rule for each.
type AmenityPricing struct {
	Manhattan    PriceRule
	OuterBorough PriceRule
}

// PricingTable maps canonical amenity identifiers to their pricing rules.
// The table is read-only once built and safe to share across goroutines.
type PricingTable map[string]AmenityPricing

// DefaultPricingTable returns the curated NYC amenity pricing table.
func DefaultPricingTable() PricingTable {
	return PricingTable{
		"doorman_full_time":   {Manhattan: PriceRule{RulePercentage, 6}, OuterBorough: PriceRule{RuleFixed, 175}},
		"doorman":             {Manhattan: PriceRule{RulePercentage, 4}, OuterBorough: PriceRule{RuleFixed, 100}},
		"concierge":           {Manhattan: PriceRule{RuleFixed, 75}, OuterBorough: PriceRule{RuleFixed, 50}},
		"elevator":            {Manhattan: PriceRule{RuleFixed, 50}, OuterBorough: PriceRule{RuleFixed, 25}},
		"laundry_in_building": {Manhattan: PriceRule{RuleFixed, 40}, OuterBorough: PriceRule{RuleFixed, 30}},
		"washer_dryer_in_unit": {
			Manhattan:    PriceRule{RuleFixed, 150},
			OuterBorough: PriceRule{RuleFixed, 100},
		},
		"dishwasher":      {Manhattan: PriceRule{RuleFixed, 50}, OuterBorough: PriceRule{RuleFixed, 35}},
		"gym":             {Manhattan: PriceRule{RuleFixed, 90}, OuterBorough: PriceRule{RuleFixed, 60}},
		"roof_deck":       {Manhattan: PriceRule{RuleFixed, 60}, OuterBorough: PriceRule{RuleFixed, 40}},
		"balcony":         {Manhattan: PriceRule{RulePercentage, 3}, OuterBorough: PriceRule{RuleFixed, 75}},
		"terrace":         {Manhattan: PriceRule{RulePercentage, 4}, OuterBorough: PriceRule{RuleFixed, 100}},
		"private_outdoor": {Manhattan: PriceRule{RulePercentage, 5}, OuterBorough: PriceRule{RuleFixed, 125}},
		"garden":          {Manhattan: PriceRule{RuleFixed, 75}, OuterBorough: PriceRule{RuleFixed, 60}},
		"pool":            {Manhattan: PriceRule{RuleFixed, 120}, OuterBorough: PriceRule{RuleFixed, 80}},
		"parking":         {Manhattan: PriceRule{RuleFixed, 275}, OuterBorough: PriceRule{RuleFixed, 150}},
		"central_air":     {Manhattan: PriceRule{RuleFixed, 75}, OuterBorough: PriceRule{RuleFixed, 50}},
		"storage":         {Manhattan: PriceRule{RuleFixed, 30}, OuterBorough: PriceRule{RuleFixed, 20}},
		"bike_room":       {Manhattan: PriceRule{RuleFixed, 15}, OuterBorough: PriceRule{RuleFixed, 10}},
		"pets_allowed":    {Manhattan: PriceRule{RuleFixed, 50}, OuterBorough: PriceRule{RuleFixed, 30}},
		"live_in_super":   {Manhattan: PriceRule{RuleFixed, 25}, OuterBorough: PriceRule{RuleFixed, 20}},
	}
}

// manhattanFragments are the neighborhood-name fragments that classify a
// listing as Manhattan. Matching is case-insensitive substring.
var manhattanFragments = []string{
	"manhattan", "midtown", "chelsea", "soho", "tribeca", "harlem",
	"east village", "west village", "greenwich village", "alphabet city",
	"upper east", "upper west", "financial district", "battery park",
	"hell's kitchen", "hells kitchen", "murray hill", "gramercy",
	"kips bay", "nolita", "little italy", "chinatown", "lower east side",
	"two bridges", "inwood", "washington heights", "morningside",
	"lenox hill", "yorkville", "turtle bay", "flatiron", "noho",
}

// IsManhattan reports whether a borough/neighborhood label refers to
// Manhattan rather than an outer borough. Accepts both display names
// ("East Village") and URL slugs ("east-village").
func IsManhattan(area string) bool {
	area = strings.ReplaceAll(strings.ToLower(area), "-", " ")
	for _, frag := range manhattanFragments {
		if strings.Contains(area, frag) {
			return true
		}
	}
	return false
}

// Resolve converts a single amenity identifier to a dollar amount. Unknown
// identifiers resolve to 0. A percentage rule with a zero base rent also
// resolves to 0, so the breakdown's accounting always reconciles.
func (t PricingTable) Resolve(amenity string, baseRent float64, manhattan bool) float64 {
	pricing, ok := t[amenity]
	if !ok {
		return 0
	}
	rule := pricing.OuterBorough
	if manhattan {
		rule = pricing.Manhattan
	}
	if rule.Kind == RulePercentage {
		if baseRent <= 0 {
			return 0
		}
		return baseRent * rule.Amount / 100
	}
	return rule.Amount
}

// Value sums the dollar value of an amenity set.
func (t PricingTable) Value(amenities []string, baseRent float64, manhattan bool) float64 {
	var total float64
	for _, a := range amenities {
		total += t.Resolve(a, baseRent, manhattan)
	}
	return total
}
