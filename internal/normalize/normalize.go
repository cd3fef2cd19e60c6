package normalize

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"smartprice-backend/internal/model"
	"smartprice-backend/internal/rejects"
)

// platformOrder fixes both the supported-platform whitelist and the
// deterministic order in which platforms contribute listings.
var platformOrder = []string{"Amazon", "Flipkart"}

// priceRe captures the numeric part of a displayed price after commas are
// stripped: "₹73,500.00" -> 73500.00, "Rs. 999" -> 999.
var priceRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Platforms returns the supported platform names.
func Platforms() []string {
	out := make([]string, len(platformOrder))
	copy(out, platformOrder)
	return out
}

// SupportedPlatform reports whether the engine accepts listings from the
// given platform.
func SupportedPlatform(name string) bool {
	for _, p := range platformOrder {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Normalize converts loosely-typed scrape output into Listing records.
// Records without a parseable non-negative price are skipped locally and
// never abort the batch. Output order is deterministic: platforms in the
// fixed supported order, records in scrape arrival order within a platform,
// at most maxPerPlatform each.
func Normalize(byPlatform map[string][]model.RawProduct, maxPerPlatform int) []model.Listing {
	var listings []model.Listing
	for _, platform := range platformOrder {
		raw := lookup(byPlatform, platform)
		seen := make(map[string]struct{})
		kept := 0
		for _, r := range raw {
			if kept >= maxPerPlatform {
				break
			}
			url := strings.TrimSpace(r.URL)
			if url == "" {
				log.Printf("normalize: dropping %s record with empty URL: %q", platform, r.Title)
				rejects.Record(platform, r, "empty url")
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}

			price, ok := parsePrice(r.PriceText)
			fallback := false
			if !ok {
				// Displayed price unusable; fall back to the strike-through
				// original price when that parses.
				price, ok = parsePrice(r.OriginalPriceText)
				fallback = true
			}
			if !ok {
				log.Printf("normalize: dropping %s record without usable price: %q", platform, r.Title)
				rejects.Record(platform, r, "no parseable price")
				continue
			}

			seen[url] = struct{}{}
			kept++
			listings = append(listings, model.Listing{
				Title:         collapseSpace(r.Title),
				URL:           url,
				Platform:      platform,
				BasePrice:     price,
				RawOffers:     r.Offers,
				PriceFallback: fallback,
				Rating:        strings.TrimSpace(r.Rating),
			})
		}
	}
	return listings
}

// lookup finds a platform's records regardless of key casing.
func lookup(m map[string][]model.RawProduct, platform string) []model.RawProduct {
	if v, ok := m[platform]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, platform) {
			return v
		}
	}
	return nil
}

// parsePrice extracts a non-negative numeric price from a raw price string.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	m := priceRe.FindString(cleaned)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// collapseSpace trims and collapses internal whitespace.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
