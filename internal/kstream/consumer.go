package kstream

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"smartprice-backend/internal/model"
	"smartprice-backend/internal/stats"
)

// kafkaReader creates a consumer-group reader for the given topic.
// segmentio/kafka-go: the group id enables load balancing and automatic
// offset management across instances.
func kafkaReader(topic, groupID string) *kafka.Reader {
	broker := getenv("KAFKA_BROKER", "kafka:9092")
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}

// ConsumeAnalysisTopic projects AnalysisCompleted events into the Redis
// stats counters. It runs until the context is cancelled.
func ConsumeAnalysisTopic(ctx context.Context, store *stats.Store) error {
	reader := kafkaReader(analysisTopic, "smartprice-stats")
	defer reader.Close()

	log.Printf("stats projector: consuming from %s", analysisTopic)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var evt model.AnalysisCompleted
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Printf("stats projector: bad event: %v", err)
			continue
		}

		if err := store.Record(ctx, evt); err != nil {
			log.Printf("stats projector: record failed: %v", err)
		}
	}
}
