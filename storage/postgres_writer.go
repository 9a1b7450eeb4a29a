package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"rental-scanner/models"
)

// PostgresWriter caches cleaned property records in PostgreSQL. The cache is
// what supplies comparable pools between scrape runs.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id             SERIAL PRIMARY KEY,
			source         VARCHAR(50)   NOT NULL,
			url            TEXT          UNIQUE NOT NULL,
			title          TEXT          NOT NULL,
			monthly_rent   NUMERIC(10,2) NOT NULL,
			bedrooms       INT           NOT NULL DEFAULT 0,
			bathrooms      NUMERIC(3,1)  NOT NULL DEFAULT 0,
			area_sqft      NUMERIC(8,1)  NOT NULL DEFAULT 0,
			amenities      TEXT[]        NOT NULL DEFAULT '{}',
			description    TEXT          NOT NULL DEFAULT '',
			days_on_market INT           NOT NULL DEFAULT 0,
			neighborhood   TEXT          NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_neighborhood ON properties(neighborhood);
		CREATE INDEX IF NOT EXISTS idx_properties_bedrooms     ON properties(bedrooms);
		CREATE INDEX IF NOT EXISTS idx_properties_rent         ON properties(monthly_rent);
	`)
	return err
}

// Write batch-upserts cleaned records, refreshing rent and staleness data for
// URLs we have seen before.
func (pw *PostgresWriter) Write(records []*models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.PropertyRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*11)

	for idx, r := range batch {
		base := idx * 11
		placeholders := make([]string, 11)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			r.Source, r.URL, r.Title, r.MonthlyRent, r.Bedrooms, r.Bathrooms,
			r.AreaSqFt, pq.Array(r.Amenities), r.Description, r.DaysOnMarket,
			r.Neighborhood)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (source, url, title, monthly_rent, bedrooms,
			bathrooms, area_sqft, amenities, description, days_on_market, neighborhood)
		VALUES %s
		ON CONFLICT (url) DO UPDATE SET
			monthly_rent   = EXCLUDED.monthly_rent,
			days_on_market = EXCLUDED.days_on_market,
			description    = EXCLUDED.description,
			amenities      = EXCLUDED.amenities
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// FetchByNeighborhood retrieves all cached records for one neighborhood —
// the comparable pool for listings in that area.
func (pw *PostgresWriter) FetchByNeighborhood(neighborhood string) ([]*models.PropertyRecord, error) {
	rows, err := pw.db.Query(`
		SELECT id, source, url, title, monthly_rent, bedrooms, bathrooms,
		       area_sqft, amenities, description, days_on_market, neighborhood, created_at
		FROM properties
		WHERE neighborhood = $1
		ORDER BY id
	`, neighborhood)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch neighborhood %q: %w", neighborhood, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FetchAll retrieves every cached record.
func (pw *PostgresWriter) FetchAll() ([]*models.PropertyRecord, error) {
	rows, err := pw.db.Query(`
		SELECT id, source, url, title, monthly_rent, bedrooms, bathrooms,
		       area_sqft, amenities, description, days_on_market, neighborhood, created_at
		FROM properties
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*models.PropertyRecord, error) {
	var records []*models.PropertyRecord
	for rows.Next() {
		r := &models.PropertyRecord{}
		if err := rows.Scan(
			&r.ID, &r.Source, &r.URL, &r.Title, &r.MonthlyRent, &r.Bedrooms,
			&r.Bathrooms, &r.AreaSqFt, pq.Array(&r.Amenities), &r.Description,
			&r.DaysOnMarket, &r.Neighborhood, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
