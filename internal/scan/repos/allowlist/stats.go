package allowlist

// StoreStats reports lightweight store metrics and metadata.
type StoreStats struct {
	Entries     uint64 // number of stored entries
	Version     uint64 // snapshot version (0 if unknown)
	UpdatedUnix int64  // last updated unix time (0 if unknown)
}

// RepoStats exposes the live snapshot alongside the underlying store stats.
type RepoStats struct {
	SnapshotEntries int
	SnapshotVersion uint64
	Store           StoreStats
}
