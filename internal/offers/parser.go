package offers

import (
	"regexp"
	"strconv"
	"strings"

	"smartprice-backend/internal/cards"
)

var (
	// percentRe captures "10% off", "5 % instant discount".
	percentRe = regexp.MustCompile(`(\d{1,2}(?:\.\d{1,2})?)\s*%`)
	// amountRe captures rupee amounts: "₹2,500", "Rs. 999", "INR 1500".
	amountRe = regexp.MustCompile(`(?i)(?:₹|rs\.?\s?|inr\s?)\s*([\d,]+(?:\.\d+)?)`)
	// capRe captures discount ceilings: "max ₹2000", "up to ₹1,000", "upto 4000".
	capRe = regexp.MustCompile(`(?i)(?:max(?:imum)?|up\s?to)\s*(?:of\s*)?(?:₹|rs\.?\s?|inr\s?)?\s*([\d,]+(?:\.\d+)?)`)
	// bankMentionRe captures "<Name> Bank" so offers naming an unknown bank
	// can be flagged as unresolved references.
	bankMentionRe = regexp.MustCompile(`(?i)\b([a-z]+)\s+banks?\b`)
	// allBanksRe marks offers that apply to cards from any bank.
	allBanksRe = regexp.MustCompile(`(?i)\ball\s+banks?\b`)
	// alreadyAppliedRe marks discounts already reflected in the displayed
	// price; these must never be re-subtracted.
	alreadyAppliedRe = regexp.MustCompile(`(?i)special\s+price|already\s+applied|price\s+inclusive\s+of`)
)

// ParsedOffer is one raw platform offer string broken into the fields the
// matcher needs.
type ParsedOffer struct {
	Raw   string
	Index int // position in scrape order, used for tie-breaks
	// CardIDs are the canonical cards this offer targets; empty with
	// AllCards false means the offer names no usable card.
	CardIDs  []string
	AllCards bool
	Percent  float64
	Flat     float64
	Cap      float64
	// AlreadyApplied offers are excluded from further discounting.
	AlreadyApplied bool
	// UnresolvedBank is set when the text names a bank that resolves to no
	// canonical card.
	UnresolvedBank bool
}

// Parse breaks a single raw offer string into a ParsedOffer.
func Parse(resolver *cards.Resolver, raw string, index int) ParsedOffer {
	o := ParsedOffer{Raw: raw, Index: index}
	o.AlreadyApplied = alreadyAppliedRe.MatchString(raw)
	o.AllCards = allBanksRe.MatchString(raw)
	o.CardIDs = resolver.CardsInText(raw)

	if m := bankMentionRe.FindStringSubmatch(raw); m != nil {
		bank := strings.ToLower(m[1])
		if bank != "all" && len(resolver.Resolve(bank)) == 0 {
			o.UnresolvedBank = true
		}
	}

	if m := percentRe.FindStringSubmatch(raw); m != nil {
		o.Percent = parseNumber(m[1])
	}

	// The cap amount must not be mistaken for a flat discount, so amounts
	// inside the cap expression are skipped.
	capLoc := capRe.FindStringSubmatchIndex(raw)
	if capLoc != nil {
		o.Cap = parseNumber(raw[capLoc[2]:capLoc[3]])
	}
	if o.Percent == 0 {
		for _, loc := range amountRe.FindAllStringSubmatchIndex(raw, -1) {
			if capLoc != nil && loc[0] >= capLoc[0] && loc[1] <= capLoc[1] {
				continue
			}
			o.Flat = parseNumber(raw[loc[2]:loc[3]])
			break
		}
	}
	return o
}

// ParseAll parses every raw offer of a listing, preserving scrape order.
func ParseAll(resolver *cards.Resolver, raws []string) []ParsedOffer {
	out := make([]ParsedOffer, 0, len(raws))
	for i, raw := range raws {
		out = append(out, Parse(resolver, raw, i))
	}
	return out
}

// Value computes the discount this offer yields on the given base price.
// Percentage offers are clamped to the cap; a cap with no flat amount (e.g.
// "Upto ₹4,000 discount") is itself the discount ceiling.
func (o ParsedOffer) Value(basePrice float64) float64 {
	if o.Percent > 0 {
		v := basePrice * o.Percent / 100
		if o.Cap > 0 && v > o.Cap {
			v = o.Cap
		}
		return v
	}
	if o.Flat > 0 {
		if o.Cap > 0 && o.Flat > o.Cap {
			return o.Cap
		}
		return o.Flat
	}
	return o.Cap
}

// Targets reports whether the offer applies to any of the resolved cards.
func (o ParsedOffer) Targets(resolved []string) bool {
	if o.AllCards {
		return len(resolved) > 0
	}
	for _, id := range o.CardIDs {
		for _, r := range resolved {
			if id == r {
				return true
			}
		}
	}
	return false
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
