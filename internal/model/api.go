package model

// AnalyzeRequest is the POST /analyze-prices body.
type AnalyzeRequest struct {
	ProductQuery           string   `json:"product_query" validate:"required,min=2,max=200"`
	UserCreditCards        []string `json:"user_credit_cards" validate:"required,min=1,max=20,dive,required"`
	MaxProductsPerPlatform int      `json:"max_products_per_platform" validate:"omitempty,min=1,max=20"`
}

// PriceResult is one fully reconciled product entry in the response, ordered
// by the ranking rules (query-title match first, then ascending effective
// price, stable on scrape arrival order).
type PriceResult struct {
	ProductTitle      string  `json:"product_title"`
	ProductURL        string  `json:"product_url"`
	Platform          string  `json:"platform"`
	OriginalPrice     float64 `json:"original_price"`
	TotalDiscount     float64 `json:"total_discount"`
	EffectivePrice    float64 `json:"effective_price"`
	SavingsPercentage float64 `json:"savings_percentage"`
	RecommendedCard   string  `json:"recommended_card,omitempty"`
	CardBenefit       string  `json:"card_benefit_description,omitempty"`
	ConfidenceScore   float64 `json:"confidence_score"`
}

// AnalyzeResponse wraps the ranked results.
type AnalyzeResponse struct {
	Products      []PriceResult `json:"products"`
	TotalProducts int           `json:"total_products"`
	Query         string        `json:"query"`
	Timestamp     string        `json:"timestamp"`
}
