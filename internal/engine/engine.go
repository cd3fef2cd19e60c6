package engine

import (
	"log"

	"smartprice-backend/internal/cards"
	"smartprice-backend/internal/model"
	"smartprice-backend/internal/normalize"
	"smartprice-backend/internal/offers"
	"smartprice-backend/internal/pricing"
)

// Engine wires the reconciliation pipeline: normalizer -> offer matcher
// (backed by the card alias resolver) -> effective-price calculator ->
// ranker. It is pure and deterministic: identical input always yields an
// identical ordered output, and it holds no per-request state.
type Engine struct {
	resolver *cards.Resolver
	matcher  *offers.Matcher
}

// New creates an Engine over the static card reference table.
func New() *Engine {
	r := cards.NewResolver()
	return &Engine{
		resolver: r,
		matcher:  offers.NewMatcher(r),
	}
}

// Analyze reconciles scraped listings against the user's cards and returns
// the ranked result set. A partial or empty listing set from any subset of
// platforms still produces a ranked (possibly empty) result.
func (e *Engine) Analyze(query string, userCards []string, byPlatform map[string][]model.RawProduct, maxPerPlatform int) []model.PriceResult {
	res := e.resolver.ResolveAll(userCards)
	for _, name := range res.Unresolved {
		log.Printf("engine: card %q resolved to nothing, excluded from matching", name)
	}
	hasUnresolvedCards := len(res.Unresolved) > 0

	listings := normalize.Normalize(byPlatform, maxPerPlatform)

	results := make([]model.PriceResult, 0, len(listings))
	for _, l := range listings {
		offer, unresolvedRef := e.matcher.Match(l, res.CardIDs)
		results = append(results, pricing.Compute(l, offer, pricing.Flags{
			UnresolvedRef: unresolvedRef || hasUnresolvedCards,
			Ambiguous:     res.Ambiguous,
		}))
	}
	return pricing.Rank(query, results)
}

// SupportedCards exposes the canonical card names for the read-only API.
func (e *Engine) SupportedCards() []string {
	return cards.Supported()
}
