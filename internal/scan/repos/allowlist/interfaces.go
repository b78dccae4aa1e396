package allowlist

import "github.com/haukened/linkscan/internal/scan/domain"

// BloomSizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFilter is the minimal interface the repository needs from Bloom filters.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory constructs Bloom filters sized for a dataset.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// Store abstracts where allow-list entries are kept.
// - RebuildAll: replace the whole dataset atomically and record metadata
// - All: every entry in the store's iteration order
// - Stats: counts and metadata; Close: release resources
type Store interface {
	RebuildAll(entries []domain.AllowEntry, version uint64, updatedUnix int64) error
	All() ([]domain.AllowEntry, error)
	Stats() StoreStats
	Close() error
}

// Repository owns the current allow-list snapshot.
// Update writes the store, rebuilds the Bloom filter and swaps the snapshot;
// readers holding an older snapshot keep a consistent view.
type Repository interface {
	Snapshot() (*Snapshot, error)
	Update(entries []domain.AllowEntry) error
	Reload() error
	Stats() RepoStats
}
