package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/haven/internal/model"
)

// SummaryCacheConfig configures the daily-summary cache.
type SummaryCacheConfig struct {
	// Enabled controls whether the cache is consulted at all.
	Enabled bool
	// TTL is how long a cached summary stays valid.
	TTL time.Duration
	// KeyPrefix namespaces the cache keys.
	KeyPrefix string
}

// DefaultSummaryCacheConfig caches summaries for a day under "haven:summary:".
func DefaultSummaryCacheConfig() *SummaryCacheConfig {
	return &SummaryCacheConfig{
		Enabled:   true,
		TTL:       24 * time.Hour,
		KeyPrefix: "haven:summary:",
	}
}

// SummaryCache caches generated daily summaries in redis. All operations are
// best-effort; a cache failure never fails the request.
type SummaryCache struct {
	redis  *goredis.Client
	config *SummaryCacheConfig
}

// NewSummaryCache creates a summary cache. redis may be nil, which disables
// the cache.
func NewSummaryCache(redis *goredis.Client, config *SummaryCacheConfig) *SummaryCache {
	if config == nil {
		config = DefaultSummaryCacheConfig()
	}
	return &SummaryCache{redis: redis, config: config}
}

func (c *SummaryCache) key(userID, date string) string {
	return fmt.Sprintf("%s%s:%s", c.config.KeyPrefix, userID, date)
}

func (c *SummaryCache) enabled() bool {
	return c != nil && c.config.Enabled && c.redis != nil
}

// Get returns the cached summary for the user and day, or nil on miss.
func (c *SummaryCache) Get(ctx context.Context, userID, date string) *model.DailySummary {
	if !c.enabled() {
		return nil
	}

	data, err := c.redis.Get(ctx, c.key(userID, date)).Bytes()
	if err != nil {
		return nil
	}

	var summary model.DailySummary
	if err := sonic.Unmarshal(data, &summary); err != nil {
		logger.Warnw("failed to decode cached summary", "key", c.key(userID, date), "error", err)
		return nil
	}
	return &summary
}

// Set stores the summary for the user and day.
func (c *SummaryCache) Set(ctx context.Context, summary *model.DailySummary) {
	if !c.enabled() {
		return
	}

	data, err := sonic.Marshal(summary)
	if err != nil {
		logger.Warnw("failed to encode summary for cache", "error", err)
		return
	}
	if err := c.redis.Set(ctx, c.key(summary.UserID, summary.Date), data, c.config.TTL).Err(); err != nil {
		logger.Warnw("failed to cache summary", "error", err)
	}
}

// Invalidate drops the cached summary for the user and day.
func (c *SummaryCache) Invalidate(ctx context.Context, userID, date string) {
	if !c.enabled() {
		return
	}
	if err := c.redis.Del(ctx, c.key(userID, date)).Err(); err != nil {
		logger.Warnw("failed to invalidate cached summary", "error", err)
	}
}
