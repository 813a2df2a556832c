package favorites

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const usersBucketName = "favorites"

// BoltStore is a Store backed by a bbolt file. Each user gets a nested
// bucket mapping tool name to an insertion sequence number.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bolt.DB
	closed bool
}

// OpenBoltStore opens (creating if needed) the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("favorites path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure favorites dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(usersBucketName))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create favorites bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database. It is safe to call more than once.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// List implements Store.
func (s *BoltStore) List(ctx context.Context, user string) ([]string, error) {
	if strings.TrimSpace(user) == "" {
		return nil, ErrUserRequired
	}
	type entry struct {
		name string
		seq  uint64
	}
	var entries []entry
	err := s.view(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(usersBucketName)).Bucket([]byte(user))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(key, value []byte) error {
			if len(value) != 8 {
				return fmt.Errorf("corrupt favorite %q for %s", key, user)
			}
			entries = append(entries, entry{name: string(key), seq: binary.BigEndian.Uint64(value)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out, nil
}

// Add implements Store.
func (s *BoltStore) Add(ctx context.Context, user, name string) error {
	if err := validate(user, name); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket, err := tx.Bucket([]byte(usersBucketName)).CreateBucketIfNotExists([]byte(user))
		if err != nil {
			return fmt.Errorf("create user bucket: %w", err)
		}
		if bucket.Get([]byte(name)) != nil {
			return nil
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		var value [8]byte
		binary.BigEndian.PutUint64(value[:], seq)
		return bucket.Put([]byte(name), value[:])
	})
}

// Remove implements Store.
func (s *BoltStore) Remove(ctx context.Context, user, name string) error {
	if err := validate(user, name); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(usersBucketName)).Bucket([]byte(user))
		if bucket == nil || bucket.Get([]byte(name)) == nil {
			return ErrNotFavorite
		}
		return bucket.Delete([]byte(name))
	})
}

func (s *BoltStore) view(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.View(fn)
}

func (s *BoltStore) update(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(fn)
}
