package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, KeyToken, []byte("abc")))
		value, err := kv.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), value)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", []byte("orig")))
		value, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		value[0] = 'X'

		again, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("orig"), again)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "gone", []byte("1")))
		require.NoError(t, kv.Delete(ctx, "gone"))
		_, err := kv.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing key is fine", func(t *testing.T) {
		assert.NoError(t, kv.Delete(ctx, "never-existed"))
	})
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
