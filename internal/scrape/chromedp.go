package scrape

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"smartprice-backend/internal/config"
	"smartprice-backend/internal/model"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var asinRe = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)

// platformSite describes how to search one platform and pull offer strings
// from its product pages.
type platformSite struct {
	name      string
	baseURL   string
	searchURL func(query string) string
	listJS    string
	offersJS  string
}

var sites = []platformSite{
	{
		name:    "Amazon",
		baseURL: "https://www.amazon.in",
		searchURL: func(q string) string {
			return "https://www.amazon.in/s?k=" + url.QueryEscape(q)
		},
		listJS:   amazonListJS,
		offersJS: amazonOffersJS,
	},
	{
		name:    "Flipkart",
		baseURL: "https://www.flipkart.com",
		searchURL: func(q string) string {
			return "https://www.flipkart.com/search?q=" + url.QueryEscape(q)
		},
		listJS:   flipkartListJS,
		offersJS: flipkartOffersJS,
	},
}

// Service is the chromedp-backed Scraper. Platforms are fetched
// concurrently, each under its own timeout, and a failed platform simply
// contributes no listings.
type Service struct {
	cfg *config.Config
}

// NewService creates a browser-backed scraping Service.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Scrape searches every supported platform for the query and enriches each
// hit with the offer strings from its detail page.
func (s *Service) Scrape(ctx context.Context, query string, maxPerPlatform int) (map[string][]model.RawProduct, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if bin := findChromeBinary(s.cfg.ChromeBin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	allocCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	results := make(map[string][]model.RawProduct, len(sites))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, site := range sites {
		site := site
		wg.Add(1)
		go func() {
			defer wg.Done()

			platformCtx, cancel := context.WithTimeout(allocCtx, s.cfg.ScrapeTimeout)
			defer cancel()

			products, err := s.scrapePlatform(platformCtx, site, query, maxPerPlatform)
			if err != nil {
				// Partial data: the platform is excluded, siblings continue.
				log.Printf("scrape: %s failed for %q: %v", site.name, query, err)
			}

			mu.Lock()
			results[site.name] = products
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results, nil
}

// scrapePlatform loads the platform's search page, extracts listing cards,
// then visits detail pages through the worker pool to collect bank-offer
// strings.
func (s *Service) scrapePlatform(ctx context.Context, site platformSite, query string, max int) ([]model.RawProduct, error) {
	type cardData struct {
		Title         string `json:"title"`
		Price         string `json:"price"`
		OriginalPrice string `json:"original_price"`
		Rating        string `json:"rating"`
		URL           string `json:"url"`
	}

	var cards []cardData
	err := withRetry(ctx, site.name+"-search", s.cfg.MaxRetries, 2*time.Second, func() error {
		tabCtx, cancel := chromedp.NewContext(ctx)
		defer cancel()

		js := strings.ReplaceAll(site.listJS, "__LIMIT__", fmt.Sprintf("%d", max))
		return chromedp.Run(tabCtx,
			chromedp.Navigate(site.searchURL(query)),
			chromedp.Sleep(4*time.Second),
			chromedp.Evaluate(js, &cards),
		)
	})
	if err != nil {
		return nil, err
	}

	products := make([]*model.RawProduct, 0, len(cards))
	for _, c := range cards {
		u := canonicalURL(site, c.URL)
		if u == "" {
			continue
		}
		products = append(products, &model.RawProduct{
			Title:             c.Title,
			PriceText:         c.Price,
			OriginalPriceText: c.OriginalPrice,
			Rating:            c.Rating,
			URL:               u,
			Platform:          site.name,
		})
	}

	// Detail pages carry the credit card offers; fetch them with bounded
	// parallelism and per-platform pacing.
	pool := newWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)
	for _, p := range products {
		p := p
		pool.submit(ctx, func() {
			offers, err := s.scrapeOffers(ctx, site, p.URL)
			if err != nil {
				log.Printf("scrape: %s offers failed for %s: %v", site.name, p.URL, err)
				return
			}
			p.Offers = offers
		})
	}
	pool.wait()

	out := make([]model.RawProduct, 0, len(products))
	for _, p := range products {
		out = append(out, *p)
	}
	return out, nil
}

// scrapeOffers visits one product detail page and extracts the platform's
// offer strings.
func (s *Service) scrapeOffers(ctx context.Context, site platformSite, pageURL string) ([]string, error) {
	var offers []string
	err := withRetry(ctx, site.name+"-offers", s.cfg.MaxRetries, 2*time.Second, func() error {
		tabCtx, cancel := chromedp.NewContext(ctx)
		defer cancel()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(site.offersJS, &offers),
		)
	})
	return offers, err
}

// canonicalURL absolutizes scraped links and collapses Amazon links to the
// stable /dp/<ASIN> form.
func canonicalURL(site platformSite, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if site.name == "Amazon" {
		if m := asinRe.FindStringSubmatch(raw); m != nil {
			return site.baseURL + "/dp/" + m[1]
		}
	}
	if !strings.HasPrefix(raw, "http") {
		return site.baseURL + raw
	}
	return raw
}

// findChromeBinary locates the Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	for _, p := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
