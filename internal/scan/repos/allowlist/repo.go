package allowlist

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/haukened/linkscan/internal/scan/common/clock"
	"github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/domain"
)

// ErrNoSnapshot is returned by Snapshot before the first Update or Reload.
var ErrNoSnapshot = errors.New("allow-list not loaded")

// repository implements Repository by composing a Store and a Bloom
// factory. Snapshots are swapped atomically; writers are serialized.
type repository struct {
	writeMu sync.Mutex
	current atomic.Pointer[Snapshot]
	store   Store
	factory BloomFactory
	fpRate  float64
	clock   clock.Clock
	logger  log.Logger
}

// Options configures a Repository.
type Options struct {
	Store   Store
	Factory BloomFactory // optional; snapshots skip the prefilter when nil
	FPRate  float64      // target false-positive rate for the Bloom filter
	Clock   clock.Clock
	Logger  log.Logger
}

// NewRepository constructs a Repository. Store, Clock and Logger default to
// an in-memory store, the real clock and a noop logger.
func NewRepository(opts Options) Repository {
	r := &repository{
		store:   opts.Store,
		factory: opts.Factory,
		fpRate:  opts.FPRate,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}
	if r.store == nil {
		r.store = NewMemoryStore()
	}
	if r.clock == nil {
		r.clock = clock.RealClock{}
	}
	if r.logger == nil {
		r.logger = log.NewNoopLogger()
	}
	return r
}

// Snapshot returns the current allow-list view.
func (r *repository) Snapshot() (*Snapshot, error) {
	s := r.current.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// Update rebuilds the store with entries, then publishes a fresh snapshot.
// Entries are de-duplicated by name, first occurrence wins.
func (r *repository) Update(entries []domain.AllowEntry) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	entries = dedupe(entries)
	version := r.store.Stats().Version + 1
	now := r.clock.Now().Unix()
	if err := r.store.RebuildAll(entries, version, now); err != nil {
		return fmt.Errorf("rebuild allow-list store: %w", err)
	}
	r.publish(domain.EntryNames(entries), version)
	r.logger.Info(map[string]any{
		"entries": len(entries),
		"version": version,
	}, "allow-list updated")
	return nil
}

// Reload publishes a snapshot of whatever the store currently holds.
func (r *repository) Reload() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	entries, err := r.store.All()
	if err != nil {
		return fmt.Errorf("read allow-list store: %w", err)
	}
	version := r.store.Stats().Version
	r.publish(domain.EntryNames(entries), version)
	r.logger.Info(map[string]any{
		"entries": len(entries),
		"version": version,
	}, "allow-list reloaded")
	return nil
}

// Stats reports the live snapshot and store metadata.
func (r *repository) Stats() RepoStats {
	st := RepoStats{Store: r.store.Stats()}
	if s := r.current.Load(); s != nil {
		st.SnapshotEntries = s.Len()
		st.SnapshotVersion = s.Version()
	}
	return st
}

func (r *repository) publish(names []string, version uint64) {
	var bf BloomFilter
	if r.factory != nil {
		bf = r.factory.New(uint64(len(names)), r.fpRate)
	}
	r.current.Store(newSnapshot(names, bf, version))
}

func dedupe(entries []domain.AllowEntry) []domain.AllowEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]domain.AllowEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e)
	}
	return out
}
