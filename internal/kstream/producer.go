package kstream

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"smartprice-backend/internal/model"
)

const analysisTopic = "price.analysis.completed"

// kafkaWriter constructs a producer for the given topic.
// segmentio/kafka-go: async writes with automatic batching, so publishing
// never blocks the request path.
func kafkaWriter(topic string) *kafka.Writer {
	broker := getenv("KAFKA_BROKER", "kafka:9092")
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// PublishAnalysisCompleted emits the per-request telemetry event. Callers
// treat a failure as log-and-continue; the analysis response never depends
// on the broker.
func PublishAnalysisCompleted(ctx context.Context, evt model.AnalysisCompleted) error {
	w := kafkaWriter(analysisTopic)
	defer w.Close()

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Keyed by query so repeated searches land on the same partition.
	msg := kafka.Message{
		Key:   []byte(evt.Query),
		Value: data,
		Time:  time.Now(),
	}
	return w.WriteMessages(ctx, msg)
}
