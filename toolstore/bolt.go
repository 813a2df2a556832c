package toolstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const toolsBucketName = "tools"

// BoltStore keeps tool records as JSON values in a bbolt file, keyed by ID.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bolt.DB
	closed bool
}

// OpenBoltStore opens (creating if needed) the database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("tool store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure tool store dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open tool store: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(toolsBucketName))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tools bucket: %w", err)
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
func (s *BoltStore) List(ctx context.Context) ([]ToolRecord, error) {
	var out []ToolRecord
	err := s.view(func(b *bolt.Bucket) error {
		out = []ToolRecord{}
		return b.ForEach(func(key, value []byte) error {
			rec, err := decodeRecord(key, value)
			if err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortRecords(out)
	return out, nil
}

// Get implements Store.
func (s *BoltStore) Get(ctx context.Context, id string) (ToolRecord, error) {
	var rec ToolRecord
	err := s.view(func(b *bolt.Bucket) error {
		var err error
		rec, err = getRecord(b, id)
		return err
	})
	return rec, err
}

// Create implements Store.
func (s *BoltStore) Create(ctx context.Context, rec ToolRecord) (ToolRecord, error) {
	rec, err := prepare(rec)
	if err != nil {
		return ToolRecord{}, err
	}
	err = s.update(func(b *bolt.Bucket) error {
		if b.Get([]byte(rec.ID)) != nil {
			return ErrDuplicateID
		}
		if err := b.ForEach(func(key, value []byte) error {
			existing, err := decodeRecord(key, value)
			if err != nil {
				return err
			}
			if existing.Path == rec.Path {
				return ErrDuplicatePath
			}
			return nil
		}); err != nil {
			return err
		}
		return putRecord(b, rec)
	})
	if err != nil {
		return ToolRecord{}, err
	}
	return rec, nil
}

// Toggle implements Store.
func (s *BoltStore) Toggle(ctx context.Context, id string, enabled, premium *bool) (ToolRecord, error) {
	var rec ToolRecord
	err := s.update(func(b *bolt.Bucket) error {
		var err error
		rec, err = getRecord(b, id)
		if err != nil {
			return err
		}
		applyToggle(&rec, enabled, premium)
		return putRecord(b, rec)
	})
	if err != nil {
		return ToolRecord{}, err
	}
	return rec, nil
}

// Delete implements Store.
func (s *BoltStore) Delete(ctx context.Context, id string) error {
	return s.update(func(b *bolt.Bucket) error {
		if id == "" || b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

func getRecord(b *bolt.Bucket, id string) (ToolRecord, error) {
	if id == "" {
		return ToolRecord{}, ErrNotFound
	}
	value := b.Get([]byte(id))
	if value == nil {
		return ToolRecord{}, ErrNotFound
	}
	return decodeRecord([]byte(id), value)
}

func decodeRecord(key, value []byte) (ToolRecord, error) {
	var rec ToolRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return ToolRecord{}, fmt.Errorf("decode tool %s: %w", key, err)
	}
	return rec, nil
}

func putRecord(b *bolt.Bucket, rec ToolRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode tool %s: %w", rec.ID, err)
	}
	return b.Put([]byte(rec.ID), value)
}

func (s *BoltStore) view(fn func(*bolt.Bucket) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(tx.Bucket([]byte(toolsBucketName)))
	})
}

func (s *BoltStore) update(fn func(*bolt.Bucket) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(tx.Bucket([]byte(toolsBucketName)))
	})
}
