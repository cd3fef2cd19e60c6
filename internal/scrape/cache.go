package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"smartprice-backend/internal/model"
)

// Cache keeps recent scrape results in Redis so repeated queries skip the
// browser entirely. A cache failure is never fatal: misses and errors both
// fall through to a live scrape.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a Redis-backed scrape cache.
func NewCache(addr string, ttl time.Duration) *Cache {
	// redis/go-redis/v9: plain client, one connection pool per process.
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func cacheKey(query string, maxPerPlatform int) string {
	return fmt.Sprintf("smartprice:scrape:%s:%d", strings.ToLower(strings.TrimSpace(query)), maxPerPlatform)
}

// Get returns the cached scrape result for the query, or ok=false on miss.
func (c *Cache) Get(ctx context.Context, query string, maxPerPlatform int) (map[string][]model.RawProduct, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(query, maxPerPlatform)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: get failed: %v", err)
		return nil, false
	}

	var out map[string][]model.RawProduct
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		log.Printf("cache: bad payload for %q: %v", query, err)
		return nil, false
	}
	return out, true
}

// Put stores a scrape result under the configured TTL.
func (c *Cache) Put(ctx context.Context, query string, maxPerPlatform int, result map[string][]model.RawProduct) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("cache: marshal failed: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(query, maxPerPlatform), data, c.ttl).Err(); err != nil {
		log.Printf("cache: set failed: %v", err)
	}
}
