package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Entry is one cached upstream response body
type Entry struct {
	Body       string
	StoredAt   time.Time
	FreshUntil time.Time
}

func (e *Entry) Fresh(now time.Time) bool {
	return now.Before(e.FreshUntil)
}

// ResponseCache holds raw upstream responses keyed by call.
// Entries outlive their freshness window so a failing upstream can fall back to them.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, body string, freshness time.Duration)
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(context.Context, string) (*Entry, bool) { return nil, false }

func (Noop) Set(context.Context, string, string, time.Duration) {}

// Cache is a ResponseCache backed by any gocache store
type Cache struct {
	Cache *cache.Cache[string]

	// StaleFor is how long an entry is kept after it stops being fresh
	StaleFor time.Duration

	now func() time.Time
}

func NewMemory(staleFor time.Duration) *Cache {
	goCacheStore := gocachestore.NewGoCache(gocache.New(5*time.Minute, 10*time.Minute))

	return &Cache{
		Cache:    cache.New[string](goCacheStore),
		StaleFor: staleFor,
		now:      time.Now,
	}
}

func NewRedis(client *redis.Client, staleFor time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(90*time.Minute))

	return &Cache{
		Cache:    cache.New[string](redisStore),
		StaleFor: staleFor,
		now:      time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool) {
	value, err := c.Cache.Get(ctx, key)
	if err != nil || value == "" {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Discarding unreadable cache entry")
		return nil, false
	}

	return &entry, true
}

func (c *Cache) Set(ctx context.Context, key string, body string, freshness time.Duration) {
	if freshness <= 0 {
		return
	}

	now := c.now()
	entryJSON, _ := json.Marshal(&Entry{
		Body:       body,
		StoredAt:   now,
		FreshUntil: now.Add(freshness),
	})

	if err := c.Cache.Set(ctx, key, string(entryJSON), store.WithExpiration(freshness+c.StaleFor)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to store response in cache")
	}
}
