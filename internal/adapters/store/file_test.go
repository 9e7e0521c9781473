package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/adapters/store"
	"go.trai.ch/annocache/internal/core/domain"
)

func TestFilePool_CorruptFileIsMiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	pool, err := store.NewFilePool(dir)
	require.NoError(t, err)
	require.NoError(t, pool.Save(ctx, domain.NewItem("App.Corrupt", []byte("[]"), false)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))

	//nolint:gosec // test fixture
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	got, err := pool.GetItem(ctx, "App.Corrupt")
	require.NoError(t, err)
	assert.False(t, got.IsHit())

	require.NoError(t, pool.Save(ctx, domain.NewItem("App.Corrupt", []byte("[1]"), false)))
	got, err = pool.GetItem(ctx, "App.Corrupt")
	require.NoError(t, err)
	assert.True(t, got.IsHit())
	assert.Equal(t, []byte("[1]"), got.Get())
}

func TestFilePool_CommitLeavesNoTemporaryFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	pool, err := store.NewFilePool(dir)
	require.NoError(t, err)

	require.NoError(t, pool.SaveDeferred(ctx, domain.NewItem("A", []byte("a"), false)))
	require.NoError(t, pool.SaveDeferred(ctx, domain.NewItem("[C]A", []byte("1"), false)))
	require.NoError(t, pool.Commit(ctx))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, ".json", filepath.Ext(e.Name()))
	}
}

func TestFilePool_CommitFailurePublishesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "items")
	pool, err := store.NewFilePool(dir)
	require.NoError(t, err)

	require.NoError(t, pool.SaveDeferred(ctx, domain.NewItem("A", []byte("a"), false)))
	require.NoError(t, os.RemoveAll(dir))

	err = pool.Commit(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreCommitFailed.Error())
}

func TestNewFilePool_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := store.NewFilePool("")
	assert.ErrorContains(t, err, domain.ErrMissingStorePath.Error())
}
