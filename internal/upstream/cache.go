package upstream

import (
	"context"
	"encoding/json"
	"time"

	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// ListCache is a short-TTL read-through cache for upstream list endpoints.
// The admin board refetches aggressively; caching a few seconds of staleness
// keeps the core backend out of the hot path. A nil *ListCache is a no-op,
// so callers never branch on whether caching is configured.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewListCache connects to Redis per the cache config. Returns nil when
// caching is disabled or the Redis URL is malformed; the caller keeps
// working uncached.
func NewListCache(cfg config.CacheConfig, log *logger.Logger) *ListCache {
	if !cfg.IsCacheEnabled() {
		return nil
	}
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Warn("cache disabled, invalid redis url", "error", err.Error())
		return nil
	}
	return &ListCache{
		client: redis.NewClient(opts),
		ttl:    cfg.GetCacheTTL(),
		log:    log,
	}
}

// GetRecords returns the cached record list for key, or ok=false on miss.
// Redis failures read as misses.
func (c *ListCache) GetRecords(ctx context.Context, key string) ([]map[string]any, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "key", key, "error", err.Error())
		}
		return nil, false
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

// SetRecords stores a record list under key for the configured TTL.
func (c *ListCache) SetRecords(ctx context.Context, key string, records []map[string]any) {
	if c == nil {
		return
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate drops cache entries after a mutation so the next board fetch
// reflects it immediately.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "error", err.Error())
	}
}

// Close releases the Redis connection.
func (c *ListCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
