package storage

import (
	"context"
	"sync"
	"time"

	"github.com/malusev998/currency-converter"
)

type (
	MemoryStorage struct {
		mu      sync.Mutex
		entries map[string]memoryEntry
		now     func() time.Time
	}

	memoryEntry struct {
		table     currency.RateTable
		expiresAt time.Time
	}
)

// NewMemoryStorage returns a process local cache. Expired entries are
// dropped when they are next touched.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStorage) lookup(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}

	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}

	return entry, true
}

func (m *MemoryStorage) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookup(key)

	return ok, nil
}

func (m *MemoryStorage) Get(_ context.Context, key string) (currency.RateTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.lookup(key)
	if !ok {
		return currency.RateTable{}, currency.ErrCacheMiss
	}

	return entry.table.Clone(), nil
}

func (m *MemoryStorage) AddIfAbsent(_ context.Context, key string, table currency.RateTable, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); ok {
		return false, nil
	}

	m.entries[key] = memoryEntry{
		table:     table.Clone(),
		expiresAt: m.now().Add(ttl),
	}

	return true, nil
}

func (m *MemoryStorage) Migrate(context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)

	return nil
}

func (m *MemoryStorage) GetStorageProviderName() string {
	return string(Memory)
}
