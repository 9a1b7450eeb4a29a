package main

import (
	"fmt"
	"os"
	"sync"

	"rental-scanner/config"
	"rental-scanner/models"
	"rental-scanner/scraper/streeteasy"
	"rental-scanner/services"
	"rental-scanner/storage"
	"rental-scanner/utils"
	"rental-scanner/valuation"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Undervalued Rental Scanner starting ===")
	logger.Info("Config — neighborhoods: %d | pages/area: %d | concurrency: %d | threshold: %.0f%%",
		len(cfg.Neighborhoods), cfg.PagesPerArea, cfg.MaxConcurrency, cfg.UndervaluedThresholdPct)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	scraper := streeteasy.New(cfg, logger)
	rawListings, err := scraper.Scrape()
	if err != nil {
		logger.Error("Scrape failed: %v", err)
	}

	if len(rawListings) == 0 {
		logger.Error("No listings were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d raw listings — writing to CSV...", len(rawListings))

	if err := csvWriter.WriteRaw(rawListings); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw listings saved to %s", cfg.CSVOutputPath)
	}

	cleaner := services.NewCleaner(logger)
	records := cleaner.Clean(rawListings)

	if len(records) == 0 {
		logger.Error("All listings were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	if err := pgWriter.Write(records); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Clean records cached in PostgreSQL (table: properties)")
	}

	findings, summary := scan(cfg, logger, pgWriter, records)

	reporter := services.NewReportService(logger)
	reporter.Print(findings, summary)

	fmt.Printf("  Done. Raw CSV → %s | Clean data → PostgreSQL (properties table)\n\n",
		cfg.CSVOutputPath)
}

// scan values every fresh listing against the cached comparable pool of its
// neighborhood. Each valuation is independent and read-only, so the work is
// fanned out on the worker pool.
func scan(cfg *config.Config, logger *utils.Logger, source storage.ComparableSource, records []*models.PropertyRecord) ([]*services.Finding, *models.ScanSummary) {
	engine := valuation.NewEngine(valuation.DefaultEngineConfig(), logger)
	opts := valuation.VerdictOptions{ThresholdPct: cfg.UndervaluedThresholdPct}

	byHood := make(map[string][]*models.PropertyRecord)
	for _, r := range records {
		byHood[r.Neighborhood] = append(byHood[r.Neighborhood], r)
	}

	summary := &models.ScanSummary{NeighborhoodsScanned: len(byHood)}

	var mu sync.Mutex
	var findings []*services.Finding
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, 0)

	for hood, subjects := range byHood {
		comparables, err := source.FetchByNeighborhood(hood)
		if err != nil {
			logger.Error("Comparable fetch failed for %s: %v", hood, err)
			comparables = subjects
		}

		for _, subject := range subjects {
			subject := subject
			hood := hood
			pool.Submit(func() {
				if services.LikelyRented(subject.DaysOnMarket, cfg.StaleAfterDays) {
					mu.Lock()
					summary.ListingsSkipped++
					mu.Unlock()
					logger.Debug("Skipping likely-rented listing (%d days on market): %s",
						subject.DaysOnMarket, subject.URL)
					return
				}

				// A listing never competes with itself.
				comps := make([]*models.PropertyRecord, 0, len(comparables))
				for _, c := range comparables {
					if c.URL != subject.URL {
						comps = append(comps, c)
					}
				}

				verdict := engine.EstimateUndervaluation(subject, comps, hood, opts)

				mu.Lock()
				defer mu.Unlock()
				summary.ListingsEvaluated++
				if verdict.Method == valuation.MethodNone {
					summary.InsufficientData++
				}
				if verdict.IsUndervalued {
					summary.UndervaluedFound++
				}
				findings = append(findings, &services.Finding{Property: subject, Verdict: verdict})
			})
		}
	}
	pool.Wait()

	logger.Info("Scan complete — %d evaluated, %d undervalued, %d with insufficient data",
		summary.ListingsEvaluated, summary.UndervaluedFound, summary.InsufficientData)

	return findings, summary
}
