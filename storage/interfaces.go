package storage

import "rental-scanner/models"

// RecordWriter is the interface any cleaned-record storage backend must satisfy.
type RecordWriter interface {
	Write(records []*models.PropertyRecord) error
	Close() error
}

// RawListingWriter is the interface for persisting unprocessed scraped data.
type RawListingWriter interface {
	WriteRaw(listings []*models.RawListing) error
	Close() error
}

// ComparableSource supplies the valuation engine with comparable pools.
type ComparableSource interface {
	FetchByNeighborhood(neighborhood string) ([]*models.PropertyRecord, error)
}
