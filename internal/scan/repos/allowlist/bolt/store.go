package bolt

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/repos/allowlist"
)

var (
	bucketEntries = []byte("entries")
	bucketMeta    = []byte("meta")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")
)

// boltStore implements allowlist.Store using bbolt.
// Entries are keyed by name, so All returns them in ascending name order.
// Values hold the ingestion time (8 bytes, unix nanoseconds) followed by the source.
type boltStore struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
func New(path string) (allowlist.Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketEntries); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

// RebuildAll replaces every entry and the metadata in a single transaction.
func (s *boltStore) RebuildAll(entries []domain.AllowEntry, version uint64, updatedUnix int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketEntries)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := b.Put([]byte(e.Name), encodeValue(e)); err != nil {
				return err
			}
		}
		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyVersion, u64(version)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, u64(uint64(updatedUnix)))
	})
}

func (s *boltStore) All() ([]domain.AllowEntry, error) {
	var out []domain.AllowEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			e, err := decodeValue(k, v)
			if err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}

func (s *boltStore) Stats() allowlist.StoreStats {
	st := allowlist.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketEntries); b != nil {
			st.Entries = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(keyVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(keyUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

func encodeValue(e domain.AllowEntry) []byte {
	buf := make([]byte, 8, 8+len(e.Source))
	binary.BigEndian.PutUint64(buf, uint64(e.AddedAt.UnixNano()))
	return append(buf, e.Source...)
}

func decodeValue(k, v []byte) (domain.AllowEntry, error) {
	if len(v) < 8 {
		return domain.AllowEntry{}, fmt.Errorf("corrupt allow-list value for %q", k)
	}
	return domain.AllowEntry{
		Name:    string(k),
		Source:  string(v[8:]),
		AddedAt: time.Unix(0, int64(binary.BigEndian.Uint64(v[:8]))),
	}, nil
}

func u64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

var _ allowlist.Store = (*boltStore)(nil)
