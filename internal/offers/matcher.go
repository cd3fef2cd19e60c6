package offers

import (
	"smartprice-backend/internal/cards"
	"smartprice-backend/internal/model"
)

// PlatformRule captures per-platform combinability semantics. Rules are
// configuration so new platforms do not grow hard-coded branches.
type PlatformRule struct {
	// StackOnSpecial permits one extra card offer on top of an
	// already-applied special price. The special price component is part of
	// the displayed price, so it is never re-subtracted either way; the flag
	// records that the extra offer legitimately combines with it.
	StackOnSpecial bool
}

// DefaultRules: Flipkart allows one card offer to stack on its special
// price; every other platform gets at most one best offer.
var DefaultRules = map[string]PlatformRule{
	"Flipkart": {StackOnSpecial: true},
}

// Matcher selects the best applicable offer for a listing against a
// resolved card set.
type Matcher struct {
	resolver *cards.Resolver
	rules    map[string]PlatformRule
}

// NewMatcher creates a Matcher with the default platform rules.
func NewMatcher(resolver *cards.Resolver) *Matcher {
	return &Matcher{resolver: resolver, rules: DefaultRules}
}

// Match parses the listing's raw offers and picks the single eligible offer
// maximizing the discount, ties broken by earliest scrape order. It returns
// nil when nothing matches (no discount, not an error). The second return
// reports whether some non-excluded offer named a bank that resolved to
// nothing.
func (m *Matcher) Match(listing model.Listing, resolved []string) (*model.MatchedOffer, bool) {
	parsed := ParseAll(m.resolver, listing.RawOffers)

	var (
		best          *ParsedOffer
		bestValue     float64
		unresolvedRef bool
	)
	for i := range parsed {
		o := &parsed[i]
		if o.AlreadyApplied {
			// Already reflected in the displayed price.
			continue
		}
		if o.UnresolvedBank {
			unresolvedRef = true
		}
		if !o.Targets(resolved) {
			continue
		}
		v := o.Value(listing.BasePrice)
		if v <= 0 {
			continue
		}
		if best == nil || v > bestValue {
			best = o
			bestValue = v
		}
	}
	if best == nil {
		return nil, unresolvedRef
	}

	return &model.MatchedOffer{
		CardID:         m.recommendCard(best, resolved),
		DiscountAmount: bestValue,
		Description:    best.Raw,
		Combinable:     m.rules[listing.Platform].StackOnSpecial,
	}, unresolvedRef
}

// recommendCard picks the user card the offer should be applied with: the
// first resolved card the offer targets, or the first resolved card at all
// for bank-agnostic offers.
func (m *Matcher) recommendCard(o *ParsedOffer, resolved []string) string {
	for _, id := range o.CardIDs {
		for _, r := range resolved {
			if id == r {
				return id
			}
		}
	}
	if len(resolved) > 0 {
		return resolved[0]
	}
	return ""
}
