package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"rental-scanner/models"
	"rental-scanner/utils"
)

var (
	// rentRegexp captures numeric rent values like "$3,195/month"
	rentRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// bedsRegexp captures "2 bed", "2 beds", "2br", "2 BR"
	bedsRegexp = regexp.MustCompile(`(?i)(\d+)\s*(?:beds?|br\b|bedrooms?)`)
	// bathsRegexp captures "1 bath", "1.5 baths", "1.5ba"
	bathsRegexp = regexp.MustCompile(`(?i)(\d+(?:\.\d)?)\s*(?:baths?|ba\b|bathrooms?)`)
	// sqftRegexp captures "750 ft²", "750 sqft", "750 sq ft"
	sqftRegexp = regexp.MustCompile(`(?i)([\d,]+)\s*(?:ft²|ft2|sq\.?\s*ft|sqft|square feet)`)
	// daysRegexp captures "45 days on market", "listed 45 days ago"
	daysRegexp = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	// weeksRegexp captures "listed 3 weeks ago"
	weeksRegexp = regexp.MustCompile(`(?i)(\d+)\s*weeks?`)
)

// Cleaner transforms RawListings into clean, validated PropertyRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw listings and returns validated records. Listings with
// no URL, an unparseable rent, or an unparseable bedroom count are dropped —
// they can serve neither as subjects nor as comparables.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.PropertyRecord {
	seen := make(map[string]struct{})
	result := make([]*models.PropertyRecord, 0, len(raw))

	for _, r := range raw {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			c.logger.Warn("[cleaner] Dropping listing with empty URL: %s", r.Title)
			continue
		}

		if _, dup := seen[url]; dup {
			c.logger.Debug("[cleaner] Duplicate URL skipped: %s", url)
			continue
		}
		seen[url] = struct{}{}

		rent := c.parseRent(r.RawRent)
		if rent <= 0 {
			c.logger.Warn("[cleaner] Dropping listing with unparseable rent %q: %s", r.RawRent, url)
			continue
		}

		beds, bedsOK := c.parseBeds(r.RawBeds, r.Title)
		if !bedsOK {
			c.logger.Warn("[cleaner] Dropping listing with unknown bedroom count: %s", url)
			continue
		}

		record := &models.PropertyRecord{
			Source:       normaliseSource(r.Source),
			URL:          url,
			Title:        normaliseText(r.Title),
			MonthlyRent:  rent,
			Bedrooms:     beds,
			Bathrooms:    c.parseBaths(r.RawBaths),
			AreaSqFt:     c.parseSqft(r.RawSqft),
			Amenities:    normaliseAmenities(r.Amenities),
			Description:  normaliseText(r.Description),
			DaysOnMarket: c.parseDaysOnMarket(r.RawDaysListed),
			Neighborhood: normaliseText(r.Neighborhood),
			CreatedAt:    time.Now(),
		}

		result = append(result, record)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parseRent extracts the monthly dollar amount from strings like
// "$3,195/month" or "$3,195 no fee".
func (c *Cleaner) parseRent(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	match := rentRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}
	rent, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return rent
}

// parseBeds extracts the bedroom count. "Studio" counts as 0 bedrooms.
// The title is used as a fallback source since some cards fold the layout
// into the headline.
func (c *Cleaner) parseBeds(raw, title string) (int, bool) {
	for _, s := range []string{raw, title} {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "studio") {
			return 0, true
		}
		if m := bedsRegexp.FindStringSubmatch(s); len(m) >= 2 {
			n, err := strconv.Atoi(m[1])
			if err == nil && n >= 0 && n <= 10 {
				return n, true
			}
		}
	}
	return 0, false
}

// parseBaths extracts the bathroom count at half-step granularity.
// Returns 0 when the listing does not state one.
func (c *Cleaner) parseBaths(raw string) float64 {
	m := bathsRegexp.FindStringSubmatch(raw)
	if len(m) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil || val < 0 || val > 10 {
		return 0
	}
	// Snap to half-bath steps.
	return float64(int(val*2+0.5)) / 2
}

// parseSqft extracts the square footage. Returns 0 (unknown) when absent.
func (c *Cleaner) parseSqft(raw string) float64 {
	m := sqftRegexp.FindStringSubmatch(raw)
	if len(m) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || val < 50 || val > 20000 {
		return 0
	}
	return val
}

// parseDaysOnMarket extracts how long the listing has been up, from strings
// like "45 days on market" or "listed 3 weeks ago".
func (c *Cleaner) parseDaysOnMarket(raw string) int {
	lower := strings.ToLower(raw)
	if m := daysRegexp.FindStringSubmatch(lower); len(m) >= 2 {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			return n
		}
	}
	if m := weeksRegexp.FindStringSubmatch(lower); len(m) >= 2 {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			return n * 7
		}
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "new") {
		return 0
	}
	return 0
}

func normaliseAmenities(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = normaliseText(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func normaliseSource(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
