package cache

import (
	"context"
	"sync"
	"time"
)

// entry is a stored value with its expiry deadline.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a map-backed Cache guarded by a mutex. Expired entries are
// dropped lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	// now is injectable for expiry tests.
	now func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Ensure Memory implements the Cache interface
var _ Cache = (*Memory)(nil)

// Get implements Cache.Get
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}

	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	return e.value, true, nil
}

// Set implements Cache.Set
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Delete implements Cache.Delete
func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}
