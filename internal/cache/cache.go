// Package cache implements the TTL-keyed result cache (C3): a mutable
// mapping shared across all in-flight requests, safe for concurrent
// readers and writers with no per-key locking since recomputing on a miss
// is acceptable. No teacher package covers wall-clock TTL caching with
// silent-failure semantics (the pack's cache-adjacent libraries are
// capacity-bounded LRUs, not TTL caches) so this is hand-rolled on
// sync.Map, justified in DESIGN.md.
package cache

import (
	"strings"
	"sync"
	"time"
)

// entry is the cache's internal (timestamp, serialized response) pair.
type entry struct {
	insertedAt time.Time
	value      []byte
}

// Cache is an in-memory TTL-keyed cache. All operations are safe for
// concurrent use. A Cache must be created with New; the zero value is not
// usable.
type Cache struct {
	ttl time.Duration
	m   sync.Map // string -> *entry
	now func() time.Time
}

// New creates a Cache with the given time-to-live. ttl <= 0 is clamped to
// 300 seconds, the spec default, since a non-expiring or instantly-expiring
// cache is never what a caller wants.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// Key constructs the canonical cache key from the raw query, a stable
// string representation of the applied filters, and the ranking variant.
func Key(rawQuery, filterRepr, variant string) string {
	var b strings.Builder
	b.WriteString(rawQuery)
	b.WriteString("::")
	b.WriteString(filterRepr)
	b.WriteString("::")
	b.WriteString(variant)
	return b.String()
}

// Get returns the cached value for key if present and within TTL. A
// missing, expired, or malformed entry is removed and reported as a miss;
// caching must never affect correctness, so Get never returns an error.
func (c *Cache) Get(key string) ([]byte, bool) {
	raw, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}

	e, ok := raw.(*entry)
	if !ok || e == nil {
		c.m.Delete(key)
		return nil, false
	}

	if c.now().Sub(e.insertedAt) > c.ttl {
		c.m.Delete(key)
		return nil, false
	}

	return e.value, true
}

// Set overwrites the entry for key unconditionally.
func (c *Cache) Set(key string, value []byte) {
	c.m.Store(key, &entry{insertedAt: c.now(), value: value})
}

// Len returns the number of entries currently stored, expired or not.
// Intended for tests and diagnostics only.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
