// Package ttlcache provides a shared, string-keyed TTL cache used to
// amortize repeated reads from the container engine, the kernel proc
// interface, and the platform RPC across a single collection pass.
package ttlcache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mostafa-wahied/portracker-core/internal/domain/cache"
	"github.com/mostafa-wahied/portracker-core/internal/domain/shared"
)

// Cache is a single shared map keyed by string, each entry carrying its own
// absolute expiry. Reads lazily evict expired entries. Concurrent
// GetOrSet misses for the same key are collapsed onto a single in-flight
// call via singleflight, strengthening the base contract's "eventual
// consistency" requirement without changing its outward semantics:
// memoization still only occurs when fn returns a defined value.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cache.Entry

	group    singleflight.Group
	disabled bool

	clock shared.Nower
}

// New creates an empty Cache. When disabled is true, GetOrSet always calls
// fn and Get always misses, short-circuiting the cache entirely.
//
// Params:
//   - disabled: the process-wide disable flag.
//
// Returns:
//   - *Cache: a ready-to-use cache.
func New(disabled bool) *Cache {
	return &Cache{
		entries:  make(map[string]cache.Entry),
		disabled: disabled,
		clock:    shared.DefaultClock,
	}
}

// Get returns the cached value for k, or ok=false on miss or expiry. An
// expired entry is evicted as a side effect of the lookup.
//
// Params:
//   - k: the cache key.
//
// Returns:
//   - any: the cached value, nil on miss.
//   - bool: true if the value was present and unexpired.
func (c *Cache) Get(k string) (any, bool) {
	if c.disabled {
		return nil, false
	}

	c.mu.RLock()
	entry, found := c.entries[k]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}

	now := c.clock.Now()
	if entry.Expired(now) {
		c.mu.Lock()
		delete(c.entries, k)
		c.mu.Unlock()
		return nil, false
	}

	return entry.Value, true
}

// Set stores v under k with the given ttl. A zero ttl means the entry
// never expires.
//
// Params:
//   - k: the cache key.
//   - v: the value to store.
//   - ttl: how long the entry remains valid; zero means no expiry.
func (c *Cache) Set(k string, v any, ttl time.Duration) {
	if c.disabled {
		return
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.clock.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[k] = cache.Entry{Value: v, ExpiresAt: expiresAt}
	c.mu.Unlock()
}

// Delete evicts k, if present.
//
// Params:
//   - k: the cache key to remove.
func (c *Cache) Delete(k string) {
	c.mu.Lock()
	delete(c.entries, k)
	c.mu.Unlock()
}

// Clear evicts every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cache.Entry)
	c.mu.Unlock()
}

// GetOrSet returns the cached value for k, computing and storing it via fn
// on a miss. When the disable flag is set, fn is called unconditionally
// and nothing is cached. Concurrent misses for the same key share one call
// to fn. fn errors are never cached: a failed computation is retried on
// the next call.
//
// Params:
//   - k: the cache key.
//   - ttl: the TTL to apply if fn succeeds.
//   - fn: the value producer, called at most once per TTL window absent
//     concurrent callers.
//
// Returns:
//   - any: the cached or freshly computed value.
//   - error: any error returned by fn.
func (c *Cache) GetOrSet(k string, ttl time.Duration, fn func() (any, error)) (any, error) {
	if c.disabled {
		return fn()
	}

	if v, ok := c.Get(k); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(k, func() (any, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(k, v, ttl)
		return v, nil
	})

	return v, err
}
