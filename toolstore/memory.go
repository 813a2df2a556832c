package toolstore

import (
	"context"
	"sync"
)

// MemoryStore stores tool records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]ToolRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]ToolRecord),
	}
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]ToolRecord, error) {
	s.mu.RLock()
	out := make([]ToolRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sortRecords(out)
	return out, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (ToolRecord, error) {
	if id == "" {
		return ToolRecord{}, ErrNotFound
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return ToolRecord{}, ErrNotFound
	}
	return rec, nil
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, rec ToolRecord) (ToolRecord, error) {
	rec, err := prepare(rec)
	if err != nil {
		return ToolRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return ToolRecord{}, ErrDuplicateID
	}
	for _, existing := range s.records {
		if existing.Path == rec.Path {
			return ToolRecord{}, ErrDuplicatePath
		}
	}
	s.records[rec.ID] = rec
	return rec, nil
}

// Toggle implements Store.
func (s *MemoryStore) Toggle(ctx context.Context, id string, enabled, premium *bool) (ToolRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ToolRecord{}, ErrNotFound
	}
	applyToggle(&rec, enabled, premium)
	s.records[id] = rec
	return rec, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}
