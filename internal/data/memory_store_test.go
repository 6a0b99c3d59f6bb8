package data

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/internal/core"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "report:site_profile:abc"
	value := []byte(`{"status":"running"}`)

	require.NoError(t, store.Set(ctx, key, value))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	existed, err := store.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, core.ErrNotFound)

	existed, err = store.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("original")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStore_ListKeysFiltersByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "report:keywords:a", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:keywords:b", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:comparison:c", []byte(`{}`)))

	keys, err := store.ListKeys(ctx, "report:keywords:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"report:keywords:a", "report:keywords:b"}, keys)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("report:products:%d", i)
			if err := store.Set(ctx, key, []byte(`{}`)); err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Get(ctx, key); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	keys, err := store.ListKeys(ctx, "report:products:")
	require.NoError(t, err)
	assert.Len(t, keys, 20)
}
