package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ft "github.com/shibukawa/ojformat/formattree"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	tree := ft.NewSequence(ft.NewItem("N"), ft.Newline{}, ft.NewLoop("i", "N", ft.NewItem("A", "i")), ft.Newline{})

	key := Key("input", "3\n1 2 3\n")

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	id, err := store.Put(ctx, key, tree)
	require.NoError(t, err)

	entry, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, entry.ID)
	assert.True(t, ft.Equal(tree, entry.Tree))
}

func TestPutReplacesAndStoresMisses(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	key := Key("output", "1\n")

	_, err := store.Put(ctx, key, ft.NewSequence(ft.NewItem("a"), ft.Newline{}))
	require.NoError(t, err)

	_, err = store.Put(ctx, key, nil)
	require.NoError(t, err)

	entry, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, entry.Tree)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("input", "a", "b"), Key("input", "a", "b"))
	assert.NotEqual(t, Key("input", "ab"), Key("input", "a", "b"))
	assert.NotEqual(t, Key("input", "a"), Key("output", "a"))
	assert.Len(t, Key("input"), 64)
}
