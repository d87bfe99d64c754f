package weather

import (
	"context"
	"sync"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/metrics"
)

const DefaultTTL = 10 * time.Minute

// bucket is a ~1km grid cell: coordinates truncated to two decimals.
type bucket struct {
	lat, lng int64
}

func bucketFor(lat, lng float64) bucket {
	return bucket{lat: int64(lat * 100), lng: int64(lng * 100)}
}

type entry struct {
	obs       domain.WeatherObservation
	fetchedAt time.Time
}

// Cache serves observations per grid cell for a fixed TTL. Concurrent misses
// for the same cell each call the provider.
type Cache struct {
	mu       sync.RWMutex
	entries  map[bucket]entry
	provider Provider
	ttl      time.Duration
	now      func() time.Time
}

func NewCache(provider Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  make(map[bucket]entry),
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, lat, lng float64) (domain.WeatherObservation, error) {
	key := bucketFor(lat, lng)
	now := c.now()

	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()
	if found && now.Sub(e.fetchedAt) < c.ttl {
		metrics.WeatherCacheHitsTotal.Inc()
		return e.obs, nil
	}

	metrics.WeatherCacheMissesTotal.Inc()
	obs, err := c.provider.Current(ctx, lat, lng)
	if err != nil {
		metrics.WeatherFetchErrorsTotal.Inc()
		return domain.WeatherObservation{}, err
	}

	c.mu.Lock()
	c.entries[key] = entry{obs: obs, fetchedAt: now}
	metrics.WeatherCacheItems.Set(float64(len(c.entries)))
	c.mu.Unlock()
	return obs, nil
}

// Prune drops expired cells and returns how many were removed.
func (c *Cache) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	metrics.WeatherCacheItems.Set(float64(len(c.entries)))
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
