package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBolt(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "nested", "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   openBolt(t),
	}
}

func TestStoreAddListRemove(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Add(ctx, "alice", "JWT Parser"))
			require.NoError(t, store.Add(ctx, "alice", "Hash Text"))
			require.NoError(t, store.Add(ctx, "alice", "Chmod Calculator"))
			require.NoError(t, store.Add(ctx, "bob", "Hash Text"))

			got, err := store.List(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, []string{"JWT Parser", "Hash Text", "Chmod Calculator"}, got)

			require.NoError(t, store.Remove(ctx, "alice", "Hash Text"))
			got, err = store.List(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, []string{"JWT Parser", "Chmod Calculator"}, got)

			got, err = store.List(ctx, "bob")
			require.NoError(t, err)
			require.Equal(t, []string{"Hash Text"}, got)
		})
	}
}

func TestStoreAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Add(ctx, "alice", "Hash Text"))
			require.NoError(t, store.Add(ctx, "alice", "Hash Text"))

			got, err := store.List(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, []string{"Hash Text"}, got)
		})
	}
}

func TestStoreValidation(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, store.Add(ctx, "", "Hash Text"), ErrUserRequired)
			require.ErrorIs(t, store.Add(ctx, "alice", "  "), ErrToolNameRequired)
			require.ErrorIs(t, store.Remove(ctx, "alice", "Hash Text"), ErrNotFavorite)
			_, err := store.List(ctx, " ")
			require.ErrorIs(t, err, ErrUserRequired)

			got, err := store.List(ctx, "nobody")
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestBoltStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.db")

	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, "alice", "URL Parser"))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.List(ctx, "alice")
	require.ErrorIs(t, err, ErrStoreClosed)

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()
	got, err := reopened.List(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"URL Parser"}, got)
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Add(ctx, "alice", "Hash Text"))

	got, err := store.List(ctx, "alice")
	require.NoError(t, err)
	got[0] = "mutated"

	again, err := store.List(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"Hash Text"}, again)
}

func TestOpenBoltStoreRequiresPath(t *testing.T) {
	_, err := OpenBoltStore("  ")
	require.Error(t, err)
}
