package slotted

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisFragmentCache_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		_, err := NewRedisFragmentCache(ctx, RedisFragmentCacheConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCacheEmptyAddress)
	})

	t.Run("malformed url", func(t *testing.T) {
		_, err := NewRedisFragmentCache(ctx, RedisFragmentCacheConfig{URL: "http://localhost"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCacheBackendFailed)
	})
}

func TestRedisFragmentCache_FromClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	cache := NewRedisFragmentCacheFromClient(client, RedisFragmentCacheConfig{})
	assert.Equal(t, DefaultRedisKeyPrefix+"k", cache.key("k"))

	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())

	// the caller still owns the client
	assert.NotErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)

	_, _, err := cache.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCacheClosed)
}
