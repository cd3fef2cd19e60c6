package cards

import (
	"strings"

	"smartprice-backend/internal/model"
)

// Resolver maps user-supplied card names and offer text to canonical card
// identities. It is read-only after construction and safe for concurrent use.
type Resolver struct {
	cards []model.CanonicalCard
}

// NewResolver creates a Resolver backed by the static reference table.
func NewResolver() *Resolver {
	return &Resolver{cards: defaultCards}
}

// Resolution is the outcome of resolving a user's full card list.
type Resolution struct {
	// CardIDs holds the deduplicated canonical ids, in registry order.
	CardIDs []string
	// Ambiguous is set when a single input matched more than one canonical
	// card family.
	Ambiguous bool
	// Unresolved holds the inputs that matched nothing. They are excluded
	// from matching, never an error.
	Unresolved []string
}

// ResolveAll resolves every input name and dedupes across inputs that land
// on the same bank family.
func (r *Resolver) ResolveAll(names []string) Resolution {
	var res Resolution
	seen := make(map[string]struct{})
	for _, name := range names {
		ids := r.Resolve(name)
		if len(ids) == 0 {
			res.Unresolved = append(res.Unresolved, name)
			continue
		}
		if len(ids) > 1 {
			res.Ambiguous = true
		}
		for _, id := range ids {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
			}
		}
	}
	for _, c := range r.cards {
		if _, ok := seen[c.ID]; ok {
			res.CardIDs = append(res.CardIDs, c.ID)
		}
	}
	return res
}

// Resolve maps one card name to canonical ids. Matching passes, in order:
// case-insensitive exact match on id or alias, bank-token substring match,
// co-brand issuer table. An empty result means the name is unknown.
func (r *Resolver) Resolve(name string) []string {
	q := normalize(name)
	if q == "" {
		return nil
	}

	// Pass 1: exact id or alias.
	for _, c := range r.cards {
		if strings.ToLower(c.ID) == q {
			return []string{c.ID}
		}
		for _, a := range c.Aliases {
			if a == q {
				return []string{c.ID}
			}
		}
	}

	// Pass 2: bank-token substring in either direction, e.g. "HDFC" is
	// contained in "HDFC Bank Credit Card" and vice versa.
	var matched []string
	if t := bankToken(q); t != "" {
		for _, c := range r.cards {
			id := strings.ToLower(c.ID)
			if strings.Contains(id, t) || strings.Contains(q, bankToken(id)) {
				matched = append(matched, c.ID)
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	// Pass 3: co-brand families resolve to the issuing bank.
	for key, id := range coBrandIssuers {
		if strings.Contains(q, key) {
			matched = append(matched, id)
		}
	}
	return r.dedupe(matched)
}

// CardsInText reports which canonical cards an offer text targets, in
// registry order. Used to tag parsed offers with their card ids.
func (r *Resolver) CardsInText(text string) []string {
	t := normalize(text)
	if t == "" {
		return nil
	}
	var ids []string
	for _, c := range r.cards {
		if strings.Contains(t, strings.ToLower(c.ID)) {
			ids = append(ids, c.ID)
			continue
		}
		for _, a := range c.Aliases {
			if strings.Contains(t, a) {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids
}

// dedupe returns ids deduplicated in registry order.
func (r *Resolver) dedupe(ids []string) []string {
	if len(ids) <= 1 {
		return ids
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for _, c := range r.cards {
		if _, ok := set[c.ID]; ok {
			out = append(out, c.ID)
		}
	}
	return out
}

// bankToken extracts the bank name prefix of a card name: the words before
// the first "bank"/"credit"/"card" token. "HDFC Bank Credit Card" -> "hdfc",
// "Citibank Rewards" -> "citibank rewards" (no cut word).
func bankToken(s string) string {
	var prefix []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ",.()-")
		switch w {
		case "bank", "credit", "card", "cards", "debit":
			return strings.Join(prefix, " ")
		}
		if w != "" {
			prefix = append(prefix, w)
		}
	}
	return strings.Join(prefix, " ")
}

// normalize lowercases and collapses whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
