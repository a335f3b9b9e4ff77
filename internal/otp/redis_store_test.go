package otp

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	record := Record{Code: "123456", ExpiresAt: time.Now().Add(15 * time.Minute).UTC(), Verified: false}
	require.NoError(t, store.Put(ctx, "u1", record))

	got, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record.Code, got.Code)
	require.False(t, got.Verified)
	require.WithinDuration(t, record.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestRedisStoreAbsentKey(t *testing.T) {
	store, _ := newRedisStore(t)

	_, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStoreOverwrite(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	expiry := time.Now().Add(15 * time.Minute)
	require.NoError(t, store.Put(ctx, "u1", Record{Code: "111111", ExpiresAt: expiry}))
	require.NoError(t, store.Put(ctx, "u1", Record{Code: "222222", ExpiresAt: expiry}))

	got, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "222222", got.Code)
}

func TestRedisStoreEvictsAtExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", Record{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok, "entry should be evicted once the TTL elapses")
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", Record{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Delete(ctx, "u1"))

	_, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)
}
