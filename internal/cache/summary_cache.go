// Package cache provides a Redis-backed cache for nightly summaries.
// Summaries are recomputed from the health store on every query; the cache
// only shortcuts repeated reads within a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gobigbed/bigbed/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds staleness between a session write and the next read.
const DefaultTTL = 5 * time.Minute

// Connect creates a Redis client, or nil when no address is configured.
// A nil client makes the cache a no-op.
func Connect(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// SummaryCache caches per-user nightly summaries keyed by window length.
// All methods are safe on a nil receiver or nil client.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func (c *SummaryCache) key(userID uuid.UUID, days int) string {
	return fmt.Sprintf("nights:%s:%d", userID, days)
}

// Get returns the cached summary and true on a hit. Errors degrade to a miss.
func (c *SummaryCache) Get(ctx context.Context, userID uuid.UUID, days int) ([]domain.SleepDay, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(userID, days)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []domain.SleepDay
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Set stores a summary. Failures are silent: the cache is best-effort.
func (c *SummaryCache) Set(ctx context.Context, userID uuid.UUID, days int, summary []domain.SleepDay) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, c.key(userID, days), raw, c.ttl)
}

// Invalidate drops every cached window for the user, called after a new
// interval is written.
func (c *SummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("nights:%s:*", userID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
