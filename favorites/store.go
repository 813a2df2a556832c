package favorites

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Error values for favorite operations.
var (
	ErrUserRequired     = errors.New("user is required")
	ErrToolNameRequired = errors.New("tool name is required")
	ErrNotFavorite      = errors.New("tool is not a favorite")
	ErrStoreClosed      = errors.New("favorites store is closed")
)

// Store persists per-user favorite tool names.
type Store interface {
	// List returns the user's favorites in the order they were added.
	List(ctx context.Context, user string) ([]string, error)
	// Add marks name as a favorite. Adding an existing favorite is a no-op.
	Add(ctx context.Context, user, name string) error
	// Remove unmarks name. It returns ErrNotFavorite if name was not marked.
	Remove(ctx context.Context, user, name string) error
}

func validate(user, name string) error {
	if strings.TrimSpace(user) == "" {
		return ErrUserRequired
	}
	if strings.TrimSpace(name) == "" {
		return ErrToolNameRequired
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	names map[string][]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{names: make(map[string][]string)}
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, user string) ([]string, error) {
	if strings.TrimSpace(user) == "" {
		return nil, ErrUserRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names[user]))
	copy(out, s.names[user])
	return out, nil
}

// Add implements Store.
func (s *MemoryStore) Add(ctx context.Context, user, name string) error {
	if err := validate(user, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.names[user] {
		if n == name {
			return nil
		}
	}
	s.names[user] = append(s.names[user], name)
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(ctx context.Context, user, name string) error {
	if err := validate(user, name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	names := s.names[user]
	for i, n := range names {
		if n == name {
			s.names[user] = append(names[:i:i], names[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}
