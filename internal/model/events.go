package model

// AnalysisCompleted is the event emitted after each /analyze-prices request.
// It is published to Kafka topic price.analysis.completed and consumed by the
// stats projector.
type AnalysisCompleted struct {
	Query          string         `json:"query"`
	CardCount      int            `json:"card_count"`
	ProductCount   int            `json:"product_count"`
	Platforms      map[string]int `json:"platforms"` // platform -> listing count
	DurationMillis int64          `json:"duration_ms"`
	Timestamp      string         `json:"timestamp"`
}
