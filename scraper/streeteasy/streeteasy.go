package streeteasy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"rental-scanner/config"
	"rental-scanner/models"
	"rental-scanner/utils"
)

const (
	baseURL = "https://streeteasy.com"
	source  = "streeteasy"
)

// Scraper collects rental listings per neighborhood from search result pages
// and enriches them from detail pages.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.URLSet
	retry      *utils.RetryConfig

	mu       sync.Mutex
	listings []*models.RawListing
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		listings: make([]*models.RawListing, 0),
	}
}

// searchURL builds the rental search URL for a neighborhood slug and page.
func searchURL(neighborhood string, page int) string {
	url := fmt.Sprintf("%s/for-rent/%s", baseURL, neighborhood)
	if page > 1 {
		url = fmt.Sprintf("%s?page=%d", url, page)
	}
	return url
}

// Scrape drives pagination and detail-page scraping for every configured
// neighborhood.
func (s *Scraper) Scrape() ([]*models.RawListing, error) {
	s.logger.Info("[streeteasy] Starting scrape — %d neighborhoods, %d pages each",
		len(s.cfg.Neighborhoods), s.cfg.PagesPerArea)

	chromeBin := findChromeBinary()
	if chromeBin == "" && s.cfg.ChromeBin == "" {
		s.logger.Warn("[streeteasy] No Chrome binary found on PATH")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	for _, hood := range s.cfg.Neighborhoods {
		if err := s.scrapeNeighborhood(allocCtx, hood); err != nil {
			s.logger.Error("[streeteasy] Neighborhood %s failed: %v", hood, err)
		}
	}

	s.logger.Info("[streeteasy] Scrape complete — total raw listings: %d", len(s.listings))
	return s.listings, nil
}

func (s *Scraper) scrapeNeighborhood(allocCtx context.Context, hood string) error {
	for page := 1; page <= s.cfg.PagesPerArea; page++ {
		url := searchURL(hood, page)
		s.logger.Info("[streeteasy] Scraping %s page %d — %s", hood, page, url)

		pageListings, err := s.scrapePage(allocCtx, url, hood, page)
		if err != nil {
			return err
		}
		if len(pageListings) == 0 {
			s.logger.Warn("[streeteasy] %s page %d returned 0 listings — stopping", hood, page)
			break
		}

		s.enrichListings(allocCtx, pageListings)

		s.mu.Lock()
		s.listings = append(s.listings, pageListings...)
		total := len(s.listings)
		s.mu.Unlock()

		s.logger.Info("[streeteasy] %s page %d done — %d listings collected so far", hood, page, total)
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}
	return nil
}

// scrapePage loads a search results page and extracts listing cards.
func (s *Scraper) scrapePage(allocCtx context.Context, pageURL, hood string, pageNum int) ([]*models.RawListing, error) {
	var rawListings []*models.RawListing

	err := s.retry.Do(fmt.Sprintf("scrape-%s-page-%d", hood, pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type cardData struct {
			Title string `json:"title"`
			Rent  string `json:"rent"`
			Beds  string `json:"beds"`
			Baths string `json:"baths"`
			Sqft  string `json:"sqft"`
			Hood  string `json:"hood"`
			URL   string `json:"url"`
		}

		var cards []cardData

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),

			// Scroll to trigger lazy-loaded cards
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(`
				(function() {
					var results = [];

					var cardSelectors = [
						'[data-testid="listing-card"]',
						'li[class*="searchCardList"]',
						'article[class*="listingCard"]'
					];

					var cards = [];
					for (var si = 0; si < cardSelectors.length; si++) {
						cards = document.querySelectorAll(cardSelectors[si]);
						if (cards.length > 0) break;
					}

					// Fallback: walk rental links and use the closest card container
					if (cards.length === 0) {
						var links = document.querySelectorAll('a[href*="/building/"], a[href*="/rental/"]');
						var seen = {};
						for (var ri = 0; ri < links.length; ri++) {
							var link = links[ri];
							var href = link.href;
							if (!href || seen[href]) continue;
							seen[href] = true;

							var cardDiv = link.closest('li') || link.closest('article') || link.closest('div');
							var innerText = cardDiv ? cardDiv.innerText : link.innerText;
							var lines = innerText.split('\n').map(function(l){return l.trim();}).filter(Boolean);

							results.push({
								title: lines[0] || '',
								rent:  lines.find(function(l){return l.indexOf('$') !== -1;}) || '',
								beds:  lines.find(function(l){return /bed|studio/i.test(l);}) || '',
								baths: lines.find(function(l){return /bath/i.test(l);}) || '',
								sqft:  lines.find(function(l){return /ft²|sq/i.test(l);}) || '',
								hood:  lines.find(function(l){return /in /i.test(l);}) || '',
								url:   href
							});
						}
						return results;
					}

					var seen = {};
					for (var i = 0; i < cards.length; i++) {
						var card = cards[i];

						var linkEl = card.querySelector('a[href*="/building/"], a[href*="/rental/"]');
						var url = linkEl ? linkEl.href : '';
						if (!url || seen[url]) continue;
						seen[url] = true;

						var titleEl = card.querySelector('[data-testid="listing-card-address"]') ||
						              card.querySelector('address') ||
						              linkEl;
						var rentEl = card.querySelector('[data-testid="listing-card-price"]') ||
						             card.querySelector('[class*="price"]');
						var hoodEl = card.querySelector('[data-testid="listing-card-area"]') ||
						             card.querySelector('[class*="area"]');

						var beds = '', baths = '', sqft = '';
						var detailEls = card.querySelectorAll('[class*="BedsBaths"] li, [class*="detail"] li, span');
						for (var di = 0; di < detailEls.length; di++) {
							var t = detailEls[di].innerText || '';
							if (/bed|studio/i.test(t) && !beds) beds = t.trim();
							else if (/bath/i.test(t) && !baths) baths = t.trim();
							else if (/ft²|sq/i.test(t) && !sqft) sqft = t.trim();
						}

						results.push({
							title: titleEl ? titleEl.innerText.trim() : '',
							rent:  rentEl ? rentEl.innerText.trim() : '',
							beds:  beds,
							baths: baths,
							sqft:  sqft,
							hood:  hoodEl ? hoodEl.innerText.trim() : '',
							url:   url
						});
					}

					return results;
				})()
			`, &cards),
		)

		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[streeteasy] %s page %d — found %d cards", hood, pageNum, len(cards))

		for _, c := range cards {
			if c.URL == "" {
				continue
			}
			if !s.visitedURL.Add(c.URL) {
				s.logger.Debug("[streeteasy] Skipping duplicate: %s", c.URL)
				continue
			}

			hoodLabel := strings.TrimPrefix(c.Hood, "Rental unit in ")
			if hoodLabel == "" {
				hoodLabel = hood
			}

			rawListings = append(rawListings, &models.RawListing{
				Title:        c.Title,
				RawRent:      c.Rent,
				RawBeds:      c.Beds,
				RawBaths:     c.Baths,
				RawSqft:      c.Sqft,
				Neighborhood: hoodLabel,
				URL:          c.URL,
				ScrapedAt:    time.Now(),
				Source:       source,
			})
		}

		return nil
	})

	return rawListings, err
}

// enrichListings visits detail pages to pick up the description, the amenity
// list, days on market, and any layout fields the card did not show.
func (s *Scraper) enrichListings(allocCtx context.Context, listings []*models.RawListing) {
	for _, listing := range listings {
		l := listing
		if l.URL == "" {
			continue
		}

		s.pool.Submit(func() {
			enriched, err := s.scrapeDetailPage(allocCtx, l.URL)
			if err != nil {
				s.logger.Warn("[streeteasy] Detail page failed for %s: %v", l.URL, err)
				return
			}

			if l.RawBeds == "" {
				l.RawBeds = enriched.RawBeds
			}
			if l.RawBaths == "" {
				l.RawBaths = enriched.RawBaths
			}
			if l.RawSqft == "" {
				l.RawSqft = enriched.RawSqft
			}
			l.Description = enriched.Description
			l.Amenities = enriched.Amenities
			l.RawDaysListed = enriched.RawDaysListed

			s.logger.Debug("[streeteasy] Enriched: %s", l.Title)
		})
	}
	s.pool.Wait()
}

// scrapeDetailPage visits a listing detail page and extracts full information.
func (s *Scraper) scrapeDetailPage(allocCtx context.Context, url string) (*models.RawListing, error) {
	listing := &models.RawListing{URL: url, Source: source}

	err := s.retry.Do("detail-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		type detailData struct {
			Beds        string   `json:"beds"`
			Baths       string   `json:"baths"`
			Sqft        string   `json:"sqft"`
			DaysListed  string   `json:"daysListed"`
			Amenities   []string `json:"amenities"`
			Description string   `json:"description"`
		}

		var details detailData

		err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.Sleep(4*time.Second),

			chromedp.Evaluate(`
				(function() {
					var result = {
						beds: '', baths: '', sqft: '',
						daysListed: '', amenities: [], description: ''
					};

					// Layout facts (beds/baths/sqft chips)
					var facts = document.querySelectorAll(
						'[data-testid="propertyDetails"] li, [class*="detail_cell"], [class*="vitals"] span');
					for (var i = 0; i < facts.length; i++) {
						var t = (facts[i].innerText || '').trim();
						if (/bed|studio/i.test(t) && !result.beds) result.beds = t;
						else if (/bath/i.test(t) && !result.baths) result.baths = t;
						else if (/ft²|sq/i.test(t) && !result.sqft) result.sqft = t;
					}

					// Days on market
					var vitals = document.querySelectorAll('[class*="Vitals"] div, [class*="vitals"] div, main li');
					for (var v = 0; v < vitals.length; v++) {
						var vt = (vitals[v].innerText || '').toLowerCase();
						if (vt.indexOf('days on') !== -1 || vt.indexOf('day on') !== -1) {
							result.daysListed = vitals[v].innerText.trim();
							break;
						}
					}

					// Amenity list
					var amenityEls = document.querySelectorAll(
						'[data-testid="amenities"] li, [class*="AmenitiesBlock"] li, [class*="amenities"] li');
					var seen = {};
					for (var a = 0; a < amenityEls.length; a++) {
						var at = (amenityEls[a].innerText || '').trim();
						if (at && !seen[at]) {
							seen[at] = true;
							result.amenities.push(at);
						}
					}

					// Description
					var descSelectors = [
						'[data-testid="about-section"] p',
						'[class*="Description"] p',
						'section[class*="description"]'
					];
					for (var d = 0; d < descSelectors.length; d++) {
						var descEl = document.querySelector(descSelectors[d]);
						if (descEl && descEl.innerText.length > 30) {
							result.description = descEl.innerText.trim().substring(0, 1000);
							break;
						}
					}
					if (!result.description) {
						var paras = document.querySelectorAll('main p');
						var texts = [];
						for (var j = 0; j < paras.length && texts.join(' ').length < 800; j++) {
							var pt = paras[j].innerText.trim();
							if (pt.length > 20) texts.push(pt);
						}
						result.description = texts.join(' ').substring(0, 1000);
					}

					return result;
				})()
			`, &details),
		)

		if err != nil {
			return fmt.Errorf("chromedp detail extract: %w", err)
		}

		listing.RawBeds = details.Beds
		listing.RawBaths = details.Baths
		listing.RawSqft = details.Sqft
		listing.RawDaysListed = details.DaysListed
		listing.Amenities = details.Amenities
		listing.Description = details.Description

		return nil
	})

	return listing, err
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
