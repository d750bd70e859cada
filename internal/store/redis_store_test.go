package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/amterp/foxhole/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, DefaultRedisPrefix, nil), mr
}

func TestRedisStore_WriteAndRead(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	ctx := context.Background()

	_, ok := store.Read(ctx, KeyTheme)
	assert.False(t, ok, "theme should be missing initially")

	require.NoError(t, store.Write(ctx, KeyTheme, "white"))

	got, ok := store.Read(ctx, KeyTheme)
	require.True(t, ok)
	assert.Equal(t, "white", got)

	raw, err := mr.Get("foxhole:theme")
	require.NoError(t, err)
	assert.Equal(t, "white", raw, "keys should be namespaced by the prefix")
}

func TestRedisStore_ReadAfterServerClosed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, DefaultRedisPrefix, nil)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, KeyUserName, "Ada"))
	mr.Close()

	_, ok := store.Read(ctx, KeyUserName)
	assert.False(t, ok, "unreachable server reads as missing")
	assert.Error(t, store.Write(ctx, KeyUserName, "Bob"), "unreachable server write must fail")
}

func TestOpenRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := OpenRedisStore(context.Background(), model.RedisConfig{Addr: mr.Addr(), Prefix: "test:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Write(context.Background(), KeyCards, `{"cards":[]}`))
	assert.True(t, mr.Exists("test:cards"))
}

func TestOpenRedisStore_RequiresAddr(t *testing.T) {
	_, err := OpenRedisStore(context.Background(), model.RedisConfig{}, nil)
	assert.Error(t, err)
}
