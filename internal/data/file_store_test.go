package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/internal/core"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "report:products:abc-123"
	value := []byte(`{"status":"completed"}`)

	require.NoError(t, store.Set(ctx, key, value))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	existed, err := store.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "report:products:missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFileStore_DeleteMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	existed, err := store.Delete(context.Background(), "report:products:missing")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "report:seo_audit:xyz"
	require.NoError(t, store.Set(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, store.Set(ctx, key, []byte(`{"v":2}`)))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestFileStore_ListKeysFiltersByPrefix(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "report:products:a", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:products:b", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:keywords:c", []byte(`{}`)))

	keys, err := store.ListKeys(ctx, "report:products:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"report:products:a", "report:products:b"}, keys)

	all, err := store.ListKeys(ctx, "report:")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileStore_UnsafeKeyCharactersStayOnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key := `report:products:https://shop.example/item?id=1`
	require.NoError(t, store.Set(ctx, key, []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	assert.NotContains(t, entries[0].Name(), ":")
	assert.NotContains(t, entries[0].Name(), "?")

	// The original key must round-trip through the escaped filename.
	keys, err := store.ListKeys(ctx, "report:products:")
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)
}

func TestFileStore_KeyEncodingRoundTripsReportKeys(t *testing.T) {
	for _, key := range []string{
		"report:site_profile:5f6c1d6e-1b1f-4a8e-9a3e-2f9c0b1d2e3f",
		"report:products:0b9a8c7d-6e5f-4a3b-2c1d-0e9f8a7b6c5d",
		"report:seo_audit:1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d",
		"report:keywords:9e8d7c6b-5a4f-4e3d-2c1b-0a9f8e7d6c5b",
		"report:comparison:4d3c2b1a-0f9e-4d8c-7b6a-5f4e3d2c1b0a",
	} {
		assert.Equal(t, key, decodeKey(encodeKey(key)), "key %q", key)
	}
}

func TestFileStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "report:products:a", []byte(`{}`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi"), 0o600))

	keys, err := store.ListKeys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"report:products:a"}, keys)
}

func TestFileStore_EmptyKeyRejected(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set(context.Background(), "", []byte(`{}`)))
	_, err = store.Get(context.Background(), "")
	assert.Error(t, err)
}
