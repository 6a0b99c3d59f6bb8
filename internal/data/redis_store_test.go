package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/testutil"
)

func TestRedisStore_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := "report:products:redis-1"
		value := []byte(`{"status":"completed"}`)

		require.NoError(t, store.Set(ctx, key, value))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "report:products:nope")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		key := "report:products:redis-2"
		require.NoError(t, store.Set(ctx, key, []byte(`{}`)))

		existed, err := store.Delete(ctx, key)
		require.NoError(t, err)
		assert.True(t, existed)

		existed, err = store.Delete(ctx, key)
		require.NoError(t, err)
		assert.False(t, existed)
	})
}

func TestRedisStore_ListKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "report:seo_audit:a", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:seo_audit:b", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "report:keywords:c", []byte(`{}`)))

	keys, err := store.ListKeys(ctx, "report:seo_audit:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"report:seo_audit:a", "report:seo_audit:b"}, keys)

	none, err := store.ListKeys(ctx, "report:comparison:")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisStore_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	store := NewRedisStore(client)

	assert.NoError(t, store.Health(context.Background()))
}
