package models

import "time"

// RawListing holds unprocessed scraped data directly from the browser.
// Every field is kept as the string the page showed; parsing happens in the
// cleaner. This is written to CSV before any cleaning or transformation.
type RawListing struct {
	Title         string
	RawRent       string
	RawBeds       string
	RawBaths      string
	RawSqft       string
	Neighborhood  string
	RawDaysListed string
	Amenities     []string
	Description   string
	URL           string
	ScrapedAt     time.Time
	Source        string
}

// PropertyRecord is the cleaned, validated rental record. It is both what we
// store in PostgreSQL and what the valuation engine consumes as a subject or
// comparable. The engine never mutates a record.
//
// Field conventions: AreaSqFt == 0 means the listing did not publish a square
// footage. Bathrooms == 0 means the bathroom count could not be parsed; the
// engine defaults it to 1 at its boundary.
type PropertyRecord struct {
	ID           int64
	Source       string
	URL          string
	Title        string
	MonthlyRent  float64
	Bedrooms     int
	Bathrooms    float64
	AreaSqFt     float64
	Amenities    []string
	Description  string
	DaysOnMarket int
	Neighborhood string
	CreatedAt    time.Time
}

// ScanSummary holds the aggregate counts for one full pipeline run.
type ScanSummary struct {
	NeighborhoodsScanned int
	ListingsEvaluated    int
	ListingsSkipped      int
	UndervaluedFound     int
	InsufficientData     int
}
