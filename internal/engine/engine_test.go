package engine

import (
	"reflect"
	"testing"

	"smartprice-backend/internal/model"
)

func TestAnalyzeAmazonBankOffer(t *testing.T) {
	e := New()

	byPlatform := map[string][]model.RawProduct{
		"Amazon": {{
			Title:     "Apple iPhone 16",
			PriceText: "₹50,000",
			URL:       "https://www.amazon.in/dp/B0DGJH8RYG",
			Offers:    []string{"10% off with HDFC Bank Credit Card, max ₹2000"},
		}},
	}

	got := e.Analyze("iPhone 16", []string{"HDFC Bank Credit Card"}, byPlatform, 5)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}

	r := got[0]
	if r.TotalDiscount != 2000 {
		t.Errorf("TotalDiscount = %v, want 2000", r.TotalDiscount)
	}
	if r.EffectivePrice != 48000 {
		t.Errorf("EffectivePrice = %v, want 48000", r.EffectivePrice)
	}
	if r.SavingsPercentage != 4.0 {
		t.Errorf("SavingsPercentage = %v, want 4.0", r.SavingsPercentage)
	}
	if r.RecommendedCard != "HDFC Bank Credit Card" {
		t.Errorf("RecommendedCard = %q", r.RecommendedCard)
	}
}

// The Flipkart special price is already in the displayed price; only the
// stackable card offer may be subtracted.
func TestAnalyzeFlipkartSpecialPriceNotDoubleCounted(t *testing.T) {
	e := New()

	byPlatform := map[string][]model.RawProduct{
		"Flipkart": {{
			Title:     "Apple iPhone 16 (Black, 128 GB)",
			PriceText: "₹40,000",
			URL:       "https://www.flipkart.com/p/1",
			Offers: []string{
				"Special Price applied: -₹2000 (already applied)",
				"5% off with Axis Bank, max ₹1000",
			},
		}},
	}

	got := e.Analyze("iPhone 16", []string{"Flipkart Axis Bank Credit Card"}, byPlatform, 5)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if got[0].TotalDiscount != 1000 {
		t.Errorf("TotalDiscount = %v, want 1000 (special price excluded)", got[0].TotalDiscount)
	}
	if got[0].EffectivePrice != 39000 {
		t.Errorf("EffectivePrice = %v, want 39000", got[0].EffectivePrice)
	}
}

func TestAnalyzeUnmatchedCard(t *testing.T) {
	e := New()

	byPlatform := map[string][]model.RawProduct{
		"Amazon": {{
			Title:     "Apple iPhone 16",
			PriceText: "₹50,000",
			URL:       "https://www.amazon.in/dp/B0DGJH8RYG",
			Offers:    []string{"10% off with HDFC Bank Credit Card, max ₹2000"},
		}},
	}

	got := e.Analyze("iPhone 16", []string{"Citibank Rewards"}, byPlatform, 5)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}

	r := got[0]
	if r.TotalDiscount != 0 {
		t.Errorf("TotalDiscount = %v, want 0", r.TotalDiscount)
	}
	if r.RecommendedCard != "" {
		t.Errorf("RecommendedCard = %q, want absent", r.RecommendedCard)
	}
	if r.ConfidenceScore < 0 || r.ConfidenceScore >= 1 {
		t.Errorf("ConfidenceScore = %v, want reduced but >= 0", r.ConfidenceScore)
	}
	if r.EffectivePrice != r.OriginalPrice {
		t.Errorf("EffectivePrice = %v, want OriginalPrice %v", r.EffectivePrice, r.OriginalPrice)
	}
}

func TestAnalyzeRankingAcrossPlatforms(t *testing.T) {
	e := New()

	byPlatform := map[string][]model.RawProduct{
		"Amazon": {
			{Title: "iPhone 16 Case", PriceText: "₹500", URL: "https://a/1"},
			{Title: "Apple iPhone 16", PriceText: "₹73,500", URL: "https://a/2"},
		},
		"Flipkart": {
			{Title: "Apple iPhone 16 (Black)", PriceText: "₹72,900", URL: "https://f/1"},
		},
	}

	got := e.Analyze("iPhone 16", []string{"HDFC"}, byPlatform, 5)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}

	// All three titles contain "iPhone 16", so ranking falls to price alone.
	prices := []float64{got[0].EffectivePrice, got[1].EffectivePrice, got[2].EffectivePrice}
	if !(prices[0] <= prices[1] && prices[1] <= prices[2]) {
		t.Errorf("prices not ascending within query-match group: %v", prices)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	e := New()

	byPlatform := map[string][]model.RawProduct{
		"Amazon": {
			{Title: "Apple iPhone 16", PriceText: "₹73,500", URL: "https://a/1",
				Offers: []string{"Upto ₹4,000.00 discount on select Credit Cards", "5% off with ICICI Bank, max ₹1500"}},
			{Title: "iPhone 16 Cover", PriceText: "₹799", URL: "https://a/2"},
		},
		"Flipkart": {
			{Title: "Apple iPhone 16 (Black)", PriceText: "₹74,900", URL: "https://f/1",
				Offers: []string{"₹2500 Off On Flipkart Axis Bank Credit Card Non EMI Transactions"}},
		},
	}
	cardSet := []string{"ICICI", "Flipkart Axis Bank"}

	first := e.Analyze("iPhone 16", cardSet, byPlatform, 5)
	second := e.Analyze("iPhone 16", cardSet, byPlatform, 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("engine is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	e := New()

	got := e.Analyze("anything", []string{"HDFC"}, nil, 5)
	if len(got) != 0 {
		t.Errorf("got %d results from empty input, want 0", len(got))
	}

	got = e.Analyze("anything", []string{"HDFC"}, map[string][]model.RawProduct{
		"Amazon":   {},
		"Flipkart": nil,
	}, 5)
	if len(got) != 0 {
		t.Errorf("got %d results from empty platforms, want 0", len(got))
	}
}
