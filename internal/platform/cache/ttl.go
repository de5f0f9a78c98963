package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 10_000

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a bounded in-process cache whose loads are deduplicated per key.
// A zero ttl keeps entries without a deadline until they are evicted.
type TTL[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	flight     singleflight.Group
	now        func() time.Time
}

func NewTTL[V any](ttl time.Duration, maxEntries int) *TTL[V] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &TTL[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.expired(e, c.now()) {
		c.Delete(key)
		return zero, false
	}

	return e.value, true
}

func (c *TTL[V]) Set(key string, value V) {
	if key == "" {
		return
	}

	now := c.now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}
	c.store(key, value, expiresAt, now)
}

// SetUntil stores value until deadline or the cache ttl, whichever comes
// first. A deadline that has already passed stores nothing.
func (c *TTL[V]) SetUntil(key string, value V, deadline time.Time) {
	if key == "" {
		return
	}

	now := c.now()
	if !deadline.After(now) {
		c.Delete(key)
		return
	}
	expiresAt := deadline
	if c.ttl > 0 && now.Add(c.ttl).Before(deadline) {
		expiresAt = now.Add(c.ttl)
	}
	c.store(key, value, expiresAt, now)
}

func (c *TTL[V]) store(key string, value V, expiresAt, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers. Failed loads are not cached.
func (c *TTL[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, fmt.Errorf("loader is required")
	}
	return c.GetOrLoadUntil(ctx, key, func(ctx context.Context) (V, time.Time, error) {
		value, err := loader(ctx)
		return value, time.Time{}, err
	})
}

// GetOrLoadUntil is GetOrLoad for values that carry their own deadline. A
// zero deadline keeps the value for the cache ttl.
func (c *TTL[V]) GetOrLoadUntil(ctx context.Context, key string, loader func(context.Context) (V, time.Time, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, _, err := loader(ctx)
		return value, err
	}
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	loaded, err, _ := c.flight.Do(key, func() (any, error) {
		if cached, ok := c.Get(key); ok {
			return cached, nil
		}
		value, deadline, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if deadline.IsZero() {
			c.Set(key, value)
		} else {
			c.SetUntil(key, value, deadline)
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	return loaded.(V), nil
}

func (c *TTL[V]) expired(e entry[V], now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// evictLocked drops expired entries, then arbitrary ones until there is room.
func (c *TTL[V]) evictLocked(now time.Time) {
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
		}
	}
	for key := range c.entries {
		if len(c.entries) < c.maxEntries {
			return
		}
		delete(c.entries, key)
	}
}
