// Package cache provides an in-memory TTL cache for check results. The cache
// is an explicit collaborator injected into the pipeline; the resolver itself
// never touches it.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached check result stays fresh.
const DefaultTTL = time.Hour

// Memory is a process-local cache with per-entry expiry. Expired entries are
// dropped lazily on access. Nothing survives a restart.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewMemory creates a cache with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func NewMemory[V any](ttl time.Duration) *Memory[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and fresh.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another Set may have refreshed it.
		if current, ok := m.entries[key]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	m.entries[key] = entry[V]{
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}
	m.mu.Unlock()
}

// Delete removes key from the cache.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of entries, including any not yet lazily expired.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
