package services

// LikelyRented flags listings that have sat on the market long enough that
// they have probably been rented without the site taking them down. The
// cutoff is policy, not engine logic: a stale listing is skipped as a scan
// subject, while the valuation engine applies its own stricter staleness
// filter to comparables.
func LikelyRented(daysOnMarket, staleAfterDays int) bool {
	if staleAfterDays <= 0 {
		return false
	}
	return daysOnMarket > staleAfterDays
}
