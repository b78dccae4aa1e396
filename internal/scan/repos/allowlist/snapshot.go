package allowlist

import "github.com/haukened/linkscan/internal/scan/domain"

// Snapshot is an immutable allow-list view served to classifiers.
// A Bloom filter answers most negative Contains lookups without touching
// the exact set.
type Snapshot struct {
	list    *domain.AllowList
	bloom   BloomFilter
	version uint64
}

func newSnapshot(names []string, bf BloomFilter, version uint64) *Snapshot {
	list := domain.NewAllowList(names...)
	if bf != nil {
		for _, n := range list.Entries() {
			bf.Add([]byte(n))
		}
	}
	return &Snapshot{list: list, bloom: bf, version: version}
}

// Contains reports exact membership of a registrable domain.
func (s *Snapshot) Contains(name string) bool {
	if s.bloom != nil && !s.bloom.MightContain([]byte(name)) {
		return false
	}
	return s.list.Contains(name)
}

// Entries returns entry names in store order.
func (s *Snapshot) Entries() []string { return s.list.Entries() }

// Len returns the number of entries.
func (s *Snapshot) Len() int { return s.list.Len() }

// Version identifies the update that produced this snapshot.
func (s *Snapshot) Version() uint64 { return s.version }
