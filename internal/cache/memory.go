package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Memory is an in-process cache bounded by entry count. When full, expired
// entries are evicted first, then the entry closest to expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	size    int
	clock   clockwork.Clock
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory creates a cache holding at most size entries for ttl each.
// A size below 1 is treated as 1.
func NewMemory(size int, ttl time.Duration, clock clockwork.Clock) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{
		entries: make(map[string]memoryEntry, size),
		ttl:     ttl,
		size:    size,
		clock:   clock,
	}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || m.clock.Now().After(entry.expiresAt) {
		return "", ErrMiss
	}
	return entry.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.size {
		m.evictLocked(now)
	}

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: now.Add(m.ttl),
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)

	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}

	if len(m.entries) >= m.size && oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}
