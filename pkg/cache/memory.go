package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process TTL cache. Eviction is lazy: entries are checked
// against the clock on read and dropped when expired.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   Clock
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory cache using the wall clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock creates an in-memory cache with an injected clock.
func NewMemoryWithClock(clock Clock) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

// Get returns the cached body for key if it has not expired.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if m.clock().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}

	return entry.body, true
}

// Set stores body under key for ttl.
func (m *Memory) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		body:      body,
		expiresAt: m.clock().Add(ttl),
	}
}

// Len returns the number of stored entries, including not-yet-evicted
// expired ones.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
