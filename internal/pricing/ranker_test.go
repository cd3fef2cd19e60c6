package pricing

import (
	"testing"

	"smartprice-backend/internal/model"
)

func TestRankQueryMatchBeforePrice(t *testing.T) {
	results := []model.PriceResult{
		{ProductTitle: "USB-C Charger", EffectivePrice: 500},
		{ProductTitle: "Apple iPhone 16 (Black, 128 GB)", EffectivePrice: 72000},
		{ProductTitle: "Phone Case", EffectivePrice: 300},
		{ProductTitle: "iPhone 16 Plus", EffectivePrice: 80000},
	}

	ranked := Rank("iPhone 16", results)

	// Query matches first regardless of price, then ascending price.
	wantOrder := []string{
		"Apple iPhone 16 (Black, 128 GB)",
		"iPhone 16 Plus",
		"Phone Case",
		"USB-C Charger",
	}
	for i, want := range wantOrder {
		if ranked[i].ProductTitle != want {
			t.Errorf("position %d = %q, want %q", i, ranked[i].ProductTitle, want)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	results := []model.PriceResult{
		{ProductTitle: "Widget A", ProductURL: "a", EffectivePrice: 100},
		{ProductTitle: "Widget B", ProductURL: "b", EffectivePrice: 100},
		{ProductTitle: "Widget C", ProductURL: "c", EffectivePrice: 100},
	}

	ranked := Rank("gadget", results)
	for i, want := range []string{"a", "b", "c"} {
		if ranked[i].ProductURL != want {
			t.Errorf("position %d = %q, want %q (arrival order)", i, ranked[i].ProductURL, want)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	results := []model.PriceResult{
		{ProductTitle: "B", EffectivePrice: 200},
		{ProductTitle: "A", EffectivePrice: 100},
	}

	_ = Rank("", results)
	if results[0].ProductTitle != "B" {
		t.Error("input slice was reordered")
	}
}

func TestRankCaseInsensitiveMatch(t *testing.T) {
	results := []model.PriceResult{
		{ProductTitle: "cheap cable", EffectivePrice: 100},
		{ProductTitle: "APPLE IPHONE 16", EffectivePrice: 70000},
	}

	ranked := Rank("iphone 16", results)
	if ranked[0].ProductTitle != "APPLE IPHONE 16" {
		t.Errorf("case-insensitive match should rank first, got %q", ranked[0].ProductTitle)
	}
}
