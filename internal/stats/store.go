package stats

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"smartprice-backend/internal/model"
)

const (
	requestsKey  = "smartprice:stats:requests"
	productsKey  = "smartprice:stats:products"
	queriesKey   = "smartprice:stats:queries"   // sorted set, score = request count
	platformsKey = "smartprice:stats:platforms" // hash, platform -> listing count
)

// Store accumulates usage counters in Redis. It is written by the analysis
// event projector and read by the /api/stats endpoint.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Redis-backed stats store.
func NewStore(addr string) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Record folds one completed analysis into the counters.
func (s *Store) Record(ctx context.Context, evt model.AnalysisCompleted) error {
	// redis/go-redis/v9: pipeline the counter updates so one event costs a
	// single round trip.
	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, requestsKey)
	pipe.IncrBy(ctx, productsKey, int64(evt.ProductCount))
	pipe.ZIncrBy(ctx, queriesKey, 1, evt.Query)
	for platform, count := range evt.Platforms {
		pipe.HIncrBy(ctx, platformsKey, platform, int64(count))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot is the /api/stats payload.
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	TotalProducts  int64            `json:"total_products"`
	TopQueries     []QueryCount     `json:"top_queries"`
	PlatformCounts map[string]int64 `json:"platform_listing_counts"`
}

// QueryCount pairs a search query with how often it was requested.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Read assembles the current counters.
func (s *Store) Read(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{PlatformCounts: map[string]int64{}}

	if v, err := s.rdb.Get(ctx, requestsKey).Int64(); err == nil {
		snap.TotalRequests = v
	} else if err != redis.Nil {
		return nil, err
	}
	if v, err := s.rdb.Get(ctx, productsKey).Int64(); err == nil {
		snap.TotalProducts = v
	} else if err != redis.Nil {
		return nil, err
	}

	// redis/go-redis/v9: ZRevRangeWithScores returns the highest-scored
	// queries first.
	top, err := s.rdb.ZRevRangeWithScores(ctx, queriesKey, 0, 9).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	for _, z := range top {
		if q, ok := z.Member.(string); ok {
			snap.TopQueries = append(snap.TopQueries, QueryCount{Query: q, Count: int64(z.Score)})
		}
	}

	platforms, err := s.rdb.HGetAll(ctx, platformsKey).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	for platform, raw := range platforms {
		n, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			continue
		}
		snap.PlatformCounts[platform] = n
	}
	return snap, nil
}
