package pricing

import (
	"sort"
	"strings"

	"smartprice-backend/internal/model"
)

// Rank orders results for the response: listings whose title contains the
// full search query (case-insensitive) come first, then ascending effective
// price, with scrape arrival order as the stable tie-break. The input slice
// is not mutated.
func Rank(query string, results []model.PriceResult) []model.PriceResult {
	ranked := make([]model.PriceResult, len(results))
	copy(ranked, results)

	q := strings.ToLower(strings.TrimSpace(query))
	matches := func(r model.PriceResult) bool {
		return q != "" && strings.Contains(strings.ToLower(r.ProductTitle), q)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := matches(ranked[i]), matches(ranked[j])
		if mi != mj {
			return mi
		}
		return ranked[i].EffectivePrice < ranked[j].EffectivePrice
	})
	return ranked
}
