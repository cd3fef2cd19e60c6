package normalize

import (
	"testing"

	"smartprice-backend/internal/model"
)

func TestNormalizeDropsUnparseablePrice(t *testing.T) {
	byPlatform := map[string][]model.RawProduct{
		"Amazon": {
			{Title: "Good", PriceText: "₹73,500.00", URL: "https://a/1"},
			{Title: "Bad", PriceText: "Currently unavailable", URL: "https://a/2"},
			{Title: "NoURL", PriceText: "₹100"},
		},
	}

	got := Normalize(byPlatform, 5)
	if len(got) != 1 {
		t.Fatalf("got %d listings, want 1", len(got))
	}
	if got[0].Title != "Good" || got[0].BasePrice != 73500 {
		t.Errorf("unexpected listing: %+v", got[0])
	}
}

func TestNormalizePriceFallback(t *testing.T) {
	byPlatform := map[string][]model.RawProduct{
		"Flipkart": {
			{Title: "X", PriceText: "out of stock", OriginalPriceText: "₹79,900", URL: "https://f/1"},
		},
	}

	got := Normalize(byPlatform, 5)
	if len(got) != 1 {
		t.Fatalf("got %d listings, want 1", len(got))
	}
	if !got[0].PriceFallback {
		t.Error("PriceFallback should be set")
	}
	if got[0].BasePrice != 79900 {
		t.Errorf("BasePrice = %v, want 79900", got[0].BasePrice)
	}
}

func TestNormalizeBoundsAndOrder(t *testing.T) {
	byPlatform := map[string][]model.RawProduct{
		"Flipkart": {
			{Title: "F1", PriceText: "₹10", URL: "https://f/1"},
			{Title: "F2", PriceText: "₹20", URL: "https://f/2"},
		},
		"Amazon": {
			{Title: "A1", PriceText: "₹1", URL: "https://a/1"},
			{Title: "A2", PriceText: "₹2", URL: "https://a/2"},
			{Title: "A3", PriceText: "₹3", URL: "https://a/3"},
		},
	}

	got := Normalize(byPlatform, 2)
	wantTitles := []string{"A1", "A2", "F1", "F2"}
	if len(got) != len(wantTitles) {
		t.Fatalf("got %d listings, want %d", len(got), len(wantTitles))
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestNormalizeSkipsUnsupportedPlatform(t *testing.T) {
	byPlatform := map[string][]model.RawProduct{
		"EvilMart": {{Title: "X", PriceText: "₹10", URL: "https://e/1"}},
	}

	if got := Normalize(byPlatform, 5); len(got) != 0 {
		t.Errorf("got %d listings from unsupported platform, want 0", len(got))
	}
}

func TestNormalizeDedupesURLs(t *testing.T) {
	byPlatform := map[string][]model.RawProduct{
		"Amazon": {
			{Title: "First", PriceText: "₹10", URL: "https://a/1"},
			{Title: "Dup", PriceText: "₹20", URL: "https://a/1"},
		},
	}

	got := Normalize(byPlatform, 5)
	if len(got) != 1 || got[0].Title != "First" {
		t.Errorf("dedupe failed: %+v", got)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"₹73,500.00", 73500, true},
		{"Rs. 999", 999, true},
		{"1299", 1299, true},
		{"", 0, false},
		{"free", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parsePrice(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSupportedPlatform(t *testing.T) {
	if !SupportedPlatform("amazon") {
		t.Error("amazon should be supported regardless of case")
	}
	if SupportedPlatform("ebay") {
		t.Error("ebay is not supported")
	}
}
