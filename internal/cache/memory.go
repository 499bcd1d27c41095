package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxEntries предел записей для NewMemoryCache
const DefaultMaxEntries = 10_000

// sweepInterval как часто Set вычищает просроченные записи
const sweepInterval = time.Minute

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache кэш в памяти процесса, безопасен для конкурентного доступа.
// Размер ограничен: при переполнении вытесняются давно не использованные записи.
type MemoryCache struct {
	items *lru.Cache[string, memoryEntry]
	now   func() time.Time

	mu        sync.Mutex
	lastSweep time.Time
}

// NewMemoryCache создает кэш на DefaultMaxEntries записей
func NewMemoryCache() *MemoryCache {
	c, err := NewBoundedMemoryCache(DefaultMaxEntries)
	if err != nil {
		panic(err)
	}
	return c
}

// NewBoundedMemoryCache создает кэш не более чем на maxEntries записей
func NewBoundedMemoryCache(maxEntries int) (*MemoryCache, error) {
	items, err := lru.New[string, memoryEntry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("invalid cache size %d: %w", maxEntries, err)
	}
	return &MemoryCache{items: items, now: time.Now}, nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	entry, ok := m.items.Get(key)
	if !ok {
		return "", false, nil
	}
	if entry.expired(m.now()) {
		m.items.Remove(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set сохраняет значение; ttl <= 0 означает хранение без срока
func (m *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	now := m.now()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.sweep(now)
	m.items.Add(key, entry)
	return nil
}

// sweep удаляет просроченные записи не чаще раза в sweepInterval
func (m *MemoryCache) sweep(now time.Time) {
	m.mu.Lock()
	if now.Sub(m.lastSweep) < sweepInterval {
		m.mu.Unlock()
		return
	}
	m.lastSweep = now
	m.mu.Unlock()

	for _, key := range m.items.Keys() {
		if entry, ok := m.items.Peek(key); ok && entry.expired(now) {
			m.items.Remove(key)
		}
	}
}

// Len возвращает количество записей
func (m *MemoryCache) Len() int {
	return m.items.Len()
}
