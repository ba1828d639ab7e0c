// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a cached item with the time it was stored.
type Entry struct {
	Data     interface{}
	StoredAt time.Time
}

// EntryInfo is an operational snapshot of a single entry, exposed by
// ListEntries for cache inspection endpoints.
type EntryInfo struct {
	Key      string        `json:"key"`
	StoredAt time.Time     `json:"stored_at"`
	Age      time.Duration `json:"age_ms"`
	Expired  bool          `json:"expired"`
}

// Stats is a diagnostic snapshot computed lazily at call time. Expiry is
// evaluated lazily on read, so valid/expired counts are derived by walking
// the current entries rather than maintained incrementally.
type Stats struct {
	TotalEntries   int   `json:"total_entries"`
	ValidEntries   int   `json:"valid_entries"`
	ExpiredEntries int   `json:"expired_entries"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
}

// Cache is a thread-safe in-memory key/value store with a fixed TTL.
// A lookup never returns an entry older than the configured TTL.
//
// The cache is best-effort: an absent or expired entry is a miss, never
// an error.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	clock   Clock
	name    string

	statsMu sync.Mutex
	hits    int64
	misses  int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects a clock, used by tests to control expiry.
func WithClock(clock Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

// New creates a cache with the given name and TTL. The name identifies the
// instance in stats endpoints and metrics labels.
func New(name string, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		clock:   systemClock{},
		name:    name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the instance name.
func (c *Cache) Name() string { return c.name }

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a value by key. It returns the stored value only if the
// entry's age is within the TTL; an expired entry is removed and reported
// as a miss. Get never returns stale data.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.expired(entry, c.clock.Now()) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry between the RUnlock and here.
		if current, ok := c.entries[key]; ok && current.StoredAt.Equal(entry.StoredAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with StoredAt = now, overwriting any existing entry
// for the key. For the same key, the last Set wins.
func (c *Cache) Set(key string, value interface{}) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Data:     value,
		StoredAt: now,
	}
}

// Delete removes a specific entry. No-op for absent keys.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries in a single atomic operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
}

// ClearMatching removes all entries whose key satisfies the predicate,
// e.g. all entries for a specific owner prefix. Returns the number of
// entries removed.
func (c *Cache) ClearMatching(pred func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if pred(key) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// SweepExpired removes all entries whose age exceeds the TTL and returns
// the number removed. Intended to run periodically to bound memory; Get
// correctness does not depend on it.
func (c *Cache) SweepExpired() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the current number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats computes a diagnostic snapshot at call time.
func (c *Cache) Stats() Stats {
	now := c.clock.Now()

	c.mu.RLock()
	total := len(c.entries)
	expired := 0
	for _, entry := range c.entries {
		if c.expired(entry, now) {
			expired++
		}
	}
	c.mu.RUnlock()

	c.statsMu.Lock()
	hits, misses := c.hits, c.misses
	c.statsMu.Unlock()

	return Stats{
		TotalEntries:   total,
		ValidEntries:   total - expired,
		ExpiredEntries: expired,
		Hits:           hits,
		Misses:         misses,
	}
}

// ListEntries returns an operational snapshot of all entries.
func (c *Cache) ListEntries() []EntryInfo {
	now := c.clock.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]EntryInfo, 0, len(c.entries))
	for key, entry := range c.entries {
		infos = append(infos, EntryInfo{
			Key:      key,
			StoredAt: entry.StoredAt,
			Age:      now.Sub(entry.StoredAt),
			Expired:  c.expired(entry, now),
		})
	}
	return infos
}

// expired reports whether an entry's age exceeds the TTL at the given time.
func (c *Cache) expired(entry Entry, now time.Time) bool {
	return now.Sub(entry.StoredAt) > c.ttl
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
}

// Key builds a cache key from a prefix and a parameter struct. Parameters
// are serialized to JSON and hashed for a compact key; the struct's fixed
// field order makes the serialization canonical, so semantically identical
// parameters always produce the same key.
func Key(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to a plain formatted key
		return fmt.Sprintf("%s:%v", prefix, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}

// WeatherKey builds a cache key from coordinates rounded to two decimal
// places plus a reading-type discriminator ("current" or "forecast"), so
// nearby requests share a cache line.
func WeatherKey(kind string, lat, lon float64) string {
	return fmt.Sprintf("weather:%s:%.2f:%.2f", kind, lat, lon)
}
