package pricing

import (
	"log"

	"smartprice-backend/internal/model"
)

// Confidence penalties. The score starts at 1.0 and each data-quality issue
// subtracts a fixed amount, floored at 0.
const (
	penaltyUnresolvedRef = 0.2 // would-be-matching offer named an unknown bank
	penaltyAmbiguous     = 0.1 // a user card resolved to several families
	penaltyPriceFallback = 0.3 // displayed price unusable, original used
)

// Flags carries the data-quality signals accumulated while resolving cards
// and matching offers for one listing.
type Flags struct {
	UnresolvedRef bool
	Ambiguous     bool
}

// Compute builds the final PriceResult for one listing and its matched
// offer (or none). The discount is clamped so the effective price can never
// go negative; a clamp is a data-quality issue, not a failure.
func Compute(listing model.Listing, offer *model.MatchedOffer, flags Flags) model.PriceResult {
	var discount float64
	result := model.PriceResult{
		ProductTitle:  listing.Title,
		ProductURL:    listing.URL,
		Platform:      listing.Platform,
		OriginalPrice: listing.BasePrice,
	}

	if offer != nil {
		discount = offer.DiscountAmount
		if discount > listing.BasePrice {
			log.Printf("pricing: clamping discount %.2f to base price %.2f for %q",
				discount, listing.BasePrice, listing.Title)
			discount = listing.BasePrice
		}
		result.RecommendedCard = offer.CardID
		result.CardBenefit = offer.Description
	}

	result.TotalDiscount = round2(discount)
	result.EffectivePrice = round2(listing.BasePrice - discount)
	if discount > 0 && listing.BasePrice > 0 {
		result.SavingsPercentage = round2(discount / listing.BasePrice * 100)
	}
	result.ConfidenceScore = confidence(listing, flags)
	return result
}

// confidence applies the fixed penalty heuristic, bounded to [0, 1].
func confidence(listing model.Listing, flags Flags) float64 {
	score := 1.0
	if flags.UnresolvedRef {
		score -= penaltyUnresolvedRef
	}
	if flags.Ambiguous {
		score -= penaltyAmbiguous
	}
	if listing.PriceFallback {
		score -= penaltyPriceFallback
	}
	if score < 0 {
		score = 0
	}
	return round2(score)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
