package model

// RawProduct is one loosely-typed product record as it comes out of a
// platform scraper, before any validation or price parsing.
type RawProduct struct {
	Title             string   `json:"title"`
	PriceText         string   `json:"price"`
	OriginalPriceText string   `json:"original_price,omitempty"`
	Rating            string   `json:"rating,omitempty"`
	URL               string   `json:"url"`
	Platform          string   `json:"platform"`
	Offers            []string `json:"offers,omitempty"`
}

// Listing is the normalized, validated product record the engine operates on.
// It is created once per scrape result and never mutated afterwards.
type Listing struct {
	Title     string
	URL       string
	Platform  string
	BasePrice float64
	// RawOffers keeps the platform-native offer strings in scrape order.
	RawOffers []string
	// PriceFallback marks listings whose displayed price was unparseable and
	// whose BasePrice came from the strike-through/original price instead.
	PriceFallback bool
	Rating        string
}

// CanonicalCard is the normalized identity of a credit card / issuing bank.
// The reference table is loaded once at process start and shared read-only
// across requests.
type CanonicalCard struct {
	ID      string
	Aliases []string
}

// MatchedOffer is the single best discount selected for a listing against a
// resolved card set.
type MatchedOffer struct {
	CardID         string
	DiscountAmount float64
	Description    string
	// Combinable reports whether the platform allows this offer to stack on
	// an already-applied special price.
	Combinable bool
}
