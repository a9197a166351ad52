package upstream

import (
	"context"
	"testing"
	"time"

	"casaora_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

type cacheTestConfig struct {
	url string
	ttl time.Duration
}

func (c cacheTestConfig) GetRedisURL() string        { return c.url }
func (c cacheTestConfig) GetCacheTTL() time.Duration { return c.ttl }
func (c cacheTestConfig) IsCacheEnabled() bool       { return c.url != "" }

func newTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewListCache(cacheTestConfig{url: "redis://" + mr.Addr(), ttl: 30 * time.Second}, logger.New("development"))
	if cache == nil {
		t.Fatal("NewListCache returned nil with valid config")
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestListCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.GetRecords(ctx, "apps:org-1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	records := []map[string]any{{"id": "a", "status": "new"}}
	cache.SetRecords(ctx, "apps:org-1", records)

	got, ok := cache.GetRecords(ctx, "apps:org-1")
	if !ok {
		t.Fatal("expected hit after SetRecords")
	}
	if len(got) != 1 || got[0]["id"] != "a" {
		t.Errorf("cached records = %v, want original list", got)
	}
}

func TestListCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.SetRecords(ctx, "apps:org-1", []map[string]any{{"id": "a"}})
	mr.FastForward(time.Minute)

	if _, ok := cache.GetRecords(ctx, "apps:org-1"); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestListCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.SetRecords(ctx, "apps:org-1", []map[string]any{{"id": "a"}})
	cache.Invalidate(ctx, "apps:org-1")

	if _, ok := cache.GetRecords(ctx, "apps:org-1"); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var cache *ListCache

	if _, ok := cache.GetRecords(context.Background(), "k"); ok {
		t.Error("nil cache should always miss")
	}
	cache.SetRecords(context.Background(), "k", nil)
	cache.Invalidate(context.Background(), "k")
	if err := cache.Close(); err != nil {
		t.Errorf("nil cache Close = %v, want nil", err)
	}
}

func TestNewListCacheDisabled(t *testing.T) {
	cache := NewListCache(cacheTestConfig{url: ""}, logger.New("development"))
	if cache != nil {
		t.Error("cache should be nil when disabled")
	}
}
