// Package pricecache memoizes upstream quotes for a short TTL so a
// burst of commands does not turn into a burst of API calls.
package pricecache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/molinju/send-price-bot/internal/market"
)

// DefaultTTL keeps quotes just long enough to absorb command bursts
// without serving stale prices.
const DefaultTTL = 20 * time.Second

// Config controls cache behavior. The zero value gets DefaultTTL, an
// unbounded entry map and the wall clock.
type Config struct {
	// TTL is how long a stored value counts as live.
	TTL time.Duration
	// MaxEntries caps the entry map. Zero means unbounded.
	MaxEntries int
	// Now reports the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// entry holds one produced value and the time it was fetched. The
// value may be nil: "the upstream answered and had nothing" is a
// cachable result, unlike an error.
type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache stores produced values per market key until they age past the
// TTL. Errors are never stored, and concurrent misses for the same key
// share a single producer call.
type Cache[V any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	logger     *zap.Logger

	mu      sync.RWMutex
	entries map[market.Key]entry[V]

	flight singleflight.Group
}

// New builds a Cache from cfg, filling unset fields with defaults.
func New[V any](cfg Config) *Cache[V] {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Cache[V]{
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		now:        cfg.Now,
		logger:     cfg.Logger,
		entries:    make(map[market.Key]entry[V]),
	}
}

// GetOrFetch returns the live value for key, or runs produce and stores
// its result. A produce failure propagates to every waiting caller and
// leaves the cache unchanged.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key market.Key, produce func(ctx context.Context) (V, error)) (V, error) {
	e, state := c.lookup(key)
	resultsTotal.WithLabelValues(string(state)).Inc()
	if state == lookupHit {
		return e.value, nil
	}

	v, err, shared := c.flight.Do(key.String(), func() (any, error) {
		// Another caller may have refilled the entry while this one
		// waited to enter the flight group.
		if e, state := c.lookup(key); state == lookupHit {
			return e.value, nil
		}

		value, err := produce(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		c.logger.Debug("coalesced concurrent fetch", zap.Stringer("key", key))
	}

	return v.(V), nil
}

type lookupState string

const (
	lookupHit     lookupState = "hit"
	lookupMiss    lookupState = "miss"
	lookupExpired lookupState = "miss_expired"
)

func (c *Cache[V]) lookup(key market.Key) (entry[V], lookupState) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	switch {
	case !ok:
		return entry[V]{}, lookupMiss
	case c.now().Sub(e.fetchedAt) >= c.ttl:
		return entry[V]{}, lookupExpired
	}
	return e, lookupHit
}

func (c *Cache[V]) store(key market.Key, value V) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, fetchedAt: now}
	if c.maxEntries <= 0 || len(c.entries) <= c.maxEntries {
		return
	}

	// Best-effort cap: drop expired entries first, then arbitrary
	// ones, never the entry just written.
	for k, e := range c.entries {
		if len(c.entries) <= c.maxEntries {
			return
		}
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) <= c.maxEntries {
			return
		}
		if k == key {
			continue
		}
		delete(c.entries, k)
	}
}
