package slotted

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFragmentCacheConfig configures the Redis fragment cache.
type RedisFragmentCacheConfig struct {
	// URL is a redis:// connection URL. Ignored when a client is supplied.
	URL string

	// KeyPrefix namespaces all keys. Default: "slotted:fragment:".
	KeyPrefix string

	// TTL is the expiry set on every fragment. Zero means no expiry.
	TTL time.Duration
}

// RedisFragmentCache stores fragments in Redis as msgpack records.
type RedisFragmentCache struct {
	client     *redis.Client
	config     RedisFragmentCacheConfig
	ownsClient bool

	mu     sync.RWMutex
	closed bool
}

var _ FragmentCache = (*RedisFragmentCache)(nil)

// NewRedisFragmentCache connects to config.URL and verifies the connection.
func NewRedisFragmentCache(ctx context.Context, config RedisFragmentCacheConfig) (*RedisFragmentCache, error) {
	if config.URL == "" {
		return nil, NewConfigError(ErrMsgCacheEmptyAddress, CacheBackendRedis, nil)
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, NewCacheError(CacheBackendRedis, CacheOpOpen, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, NewCacheError(CacheBackendRedis, CacheOpOpen, err)
	}

	c := NewRedisFragmentCacheFromClient(client, config)
	c.ownsClient = true
	return c, nil
}

// NewRedisFragmentCacheFromClient wraps an existing client. The client's
// lifecycle stays with the caller.
func NewRedisFragmentCacheFromClient(client *redis.Client, config RedisFragmentCacheConfig) *RedisFragmentCache {
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisFragmentCache{client: client, config: config}
}

func (c *RedisFragmentCache) key(k string) string {
	return c.config.KeyPrefix + k
}

func (c *RedisFragmentCache) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return NewCacheClosedError(CacheBackendRedis)
	}
	return nil
}

// Get retrieves a fragment.
func (c *RedisFragmentCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := c.checkOpen(); err != nil {
		return "", false, err
	}

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, NewCacheError(CacheBackendRedis, CacheOpGet, err)
	}

	html, err := decodeFragment(CacheBackendRedis, data)
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

// Set stores a fragment with the configured TTL.
func (c *RedisFragmentCache) Set(ctx context.Context, key, html string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	data, err := encodeFragment(html)
	if err != nil {
		return NewCacheError(CacheBackendRedis, CacheOpSet, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.config.TTL).Err(); err != nil {
		return NewCacheError(CacheBackendRedis, CacheOpSet, err)
	}
	return nil
}

// Delete removes a fragment.
func (c *RedisFragmentCache) Delete(ctx context.Context, key string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return NewCacheError(CacheBackendRedis, CacheOpDelete, err)
	}
	return nil
}

// Clear removes every key under the configured prefix.
func (c *RedisFragmentCache) Clear(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.config.KeyPrefix+"*", redisScanBatchSize).Result()
		if err != nil {
			return NewCacheError(CacheBackendRedis, CacheOpClear, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return NewCacheError(CacheBackendRedis, CacheOpClear, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close marks the cache closed and closes the client if this cache opened it.
func (c *RedisFragmentCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
