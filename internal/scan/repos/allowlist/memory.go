package allowlist

import (
	"sync"

	"github.com/haukened/linkscan/internal/scan/domain"
)

// memoryStore keeps entries in first-seen order. Used when no database
// path is configured.
type memoryStore struct {
	mu      sync.RWMutex
	entries []domain.AllowEntry
	version uint64
	updated int64
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) RebuildAll(entries []domain.AllowEntry, version uint64, updatedUnix int64) error {
	cp := make([]domain.AllowEntry, len(entries))
	copy(cp, entries)
	m.mu.Lock()
	m.entries = cp
	m.version = version
	m.updated = updatedUnix
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) All() ([]domain.AllowEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.AllowEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return StoreStats{Entries: uint64(len(m.entries)), Version: m.version, UpdatedUnix: m.updated}
}

func (m *memoryStore) Close() error { return nil }

var _ Store = (*memoryStore)(nil)
