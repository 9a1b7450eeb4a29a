package services

import (
	"fmt"
	"sort"
	"strings"

	"rental-scanner/models"
	"rental-scanner/utils"
	"rental-scanner/valuation"
)

// Finding pairs a scanned listing with its valuation verdict.
type Finding struct {
	Property *models.PropertyRecord
	Verdict  *valuation.UndervaluationVerdict
}

// ReportService renders the scan results to the terminal.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Print renders the undervalued findings (sorted by discount, deepest first)
// followed by the run summary.
func (s *ReportService) Print(findings []*Finding, summary *models.ScanSummary) {
	sep := strings.Repeat("═", 62)
	thin := strings.Repeat("─", 62)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏙  UNDERVALUED RENTAL SCAN\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	var undervalued []*Finding
	for _, f := range findings {
		if f.Verdict.IsUndervalued {
			undervalued = append(undervalued, f)
		}
	}
	sort.Slice(undervalued, func(i, j int) bool {
		return undervalued[i].Verdict.DiscountPercent > undervalued[j].Verdict.DiscountPercent
	})

	fmt.Printf("\033[1;33m  Undervalued Listings\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(undervalued) == 0 {
		fmt.Printf("  No undervalued listings found this run\n")
	}
	for i, f := range undervalued {
		v := f.Verdict
		fmt.Printf("  \033[1m%d.\033[0m %s\n", i+1, truncate(f.Property.Title, 56))
		fmt.Printf("     %s — %d bed / %.1f bath\n",
			f.Property.Neighborhood, f.Property.Bedrooms, f.Property.Bathrooms)
		fmt.Printf("     Listed \033[1;32m$%.0f\033[0m vs market \033[1m$%.0f\033[0m — "+
			"\033[1;31m%.1f%% below\033[0m (save $%.0f/mo)\n",
			v.ActualRent, v.EstimatedMarketRent, v.DiscountPercent, v.PotentialMonthlySavings)
		fmt.Printf("     Method: %s | comparables: %d | confidence: %d%%\n",
			v.Method.Label(), v.ComparablesUsed, v.Confidence)
		for _, adj := range v.Adjustments {
			fmt.Printf("       %-14s %+8.0f  %s\n", adj.Category, adj.Amount, truncate(adj.Detail, 40))
		}
		fmt.Printf("     %s\n\n", f.Property.URL)
	}

	fmt.Printf("\033[1;33m  Run Summary\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Neighborhoods scanned  : \033[1m%d\033[0m\n", summary.NeighborhoodsScanned)
	fmt.Printf("  Listings evaluated     : \033[1m%d\033[0m\n", summary.ListingsEvaluated)
	fmt.Printf("  Skipped (likely rented): \033[1m%d\033[0m\n", summary.ListingsSkipped)
	fmt.Printf("  Insufficient data      : \033[1m%d\033[0m\n", summary.InsufficientData)
	fmt.Printf("  Undervalued found      : \033[1;32m%d\033[0m\n", summary.UndervaluedFound)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
