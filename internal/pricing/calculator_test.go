package pricing

import (
	"testing"

	"smartprice-backend/internal/model"
)

func TestComputeWithOffer(t *testing.T) {
	listing := model.Listing{
		Title:     "iPhone 16",
		URL:       "https://www.amazon.in/dp/B0DGJH8RYG",
		Platform:  "Amazon",
		BasePrice: 50000,
	}
	offer := &model.MatchedOffer{
		CardID:         "HDFC Bank Credit Card",
		DiscountAmount: 2000,
		Description:    "10% off with HDFC Bank Credit Card, max ₹2000",
	}

	got := Compute(listing, offer, Flags{})
	if got.TotalDiscount != 2000 {
		t.Errorf("TotalDiscount = %v, want 2000", got.TotalDiscount)
	}
	if got.EffectivePrice != 48000 {
		t.Errorf("EffectivePrice = %v, want 48000", got.EffectivePrice)
	}
	if got.SavingsPercentage != 4.0 {
		t.Errorf("SavingsPercentage = %v, want 4.0", got.SavingsPercentage)
	}
	if got.RecommendedCard != "HDFC Bank Credit Card" {
		t.Errorf("RecommendedCard = %q", got.RecommendedCard)
	}
	if got.ConfidenceScore != 1.0 {
		t.Errorf("ConfidenceScore = %v, want 1.0", got.ConfidenceScore)
	}
}

func TestComputeNoOffer(t *testing.T) {
	listing := model.Listing{Title: "Pixel 9", Platform: "Flipkart", BasePrice: 60000}

	got := Compute(listing, nil, Flags{})
	if got.TotalDiscount != 0 {
		t.Errorf("TotalDiscount = %v, want 0", got.TotalDiscount)
	}
	if got.EffectivePrice != 60000 {
		t.Errorf("EffectivePrice = %v, want 60000", got.EffectivePrice)
	}
	if got.SavingsPercentage != 0 {
		t.Errorf("SavingsPercentage = %v, want 0", got.SavingsPercentage)
	}
	if got.RecommendedCard != "" {
		t.Errorf("RecommendedCard = %q, want absent", got.RecommendedCard)
	}
}

// A discount can never push the effective price below zero.
func TestComputeClampsDiscount(t *testing.T) {
	listing := model.Listing{Title: "Cable", Platform: "Amazon", BasePrice: 150}
	offer := &model.MatchedOffer{CardID: "SBI Credit Card", DiscountAmount: 500}

	got := Compute(listing, offer, Flags{})
	if got.TotalDiscount != 150 {
		t.Errorf("TotalDiscount = %v, want clamped 150", got.TotalDiscount)
	}
	if got.EffectivePrice != 0 {
		t.Errorf("EffectivePrice = %v, want 0", got.EffectivePrice)
	}
}

func TestComputeZeroPrice(t *testing.T) {
	listing := model.Listing{Title: "Freebie", Platform: "Amazon", BasePrice: 0}

	got := Compute(listing, nil, Flags{})
	if got.SavingsPercentage != 0 {
		t.Errorf("SavingsPercentage = %v, want 0 for zero price", got.SavingsPercentage)
	}
	if got.EffectivePrice != 0 {
		t.Errorf("EffectivePrice = %v, want 0", got.EffectivePrice)
	}
}

func TestConfidencePenalties(t *testing.T) {
	tests := []struct {
		name    string
		listing model.Listing
		flags   Flags
		want    float64
	}{
		{"clean", model.Listing{BasePrice: 100}, Flags{}, 1.0},
		{"unresolved ref", model.Listing{BasePrice: 100}, Flags{UnresolvedRef: true}, 0.8},
		{"ambiguous", model.Listing{BasePrice: 100}, Flags{Ambiguous: true}, 0.9},
		{"price fallback", model.Listing{BasePrice: 100, PriceFallback: true}, Flags{}, 0.7},
		{
			"all penalties",
			model.Listing{BasePrice: 100, PriceFallback: true},
			Flags{UnresolvedRef: true, Ambiguous: true},
			0.4,
		},
	}

	for _, tt := range tests {
		got := Compute(tt.listing, nil, tt.flags)
		if got.ConfidenceScore != tt.want {
			t.Errorf("%s: ConfidenceScore = %v, want %v", tt.name, got.ConfidenceScore, tt.want)
		}
		if got.ConfidenceScore < 0 || got.ConfidenceScore > 1 {
			t.Errorf("%s: confidence out of [0,1]: %v", tt.name, got.ConfidenceScore)
		}
	}
}
