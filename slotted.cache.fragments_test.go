package slotted

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a MemoryFragmentCache's notion of time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestMemoryCache(config MemoryFragmentCacheConfig) (*MemoryFragmentCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewMemoryFragmentCache(config)
	cache.now = clock.Now
	return cache, clock
}

func TestMemoryFragmentCache_Basic(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestMemoryCache(DefaultMemoryFragmentCacheConfig())

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "<p>v</p>"))
	html, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>v</p>", html)

	require.NoError(t, cache.Set(ctx, "k", "<p>w</p>"))
	html, _, _ = cache.Get(ctx, "k")
	assert.Equal(t, "<p>w</p>", html)

	stats := cache.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.EntryCount)
	assert.Equal(t, int64(len("<p>w</p>")), stats.TotalSize)
	assert.InDelta(t, 2.0/3.0, cache.HitRate(), 0.0001)

	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))
	_, ok, _ = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryFragmentCache_TTL(t *testing.T) {
	ctx := context.Background()
	cache, clock := newTestMemoryCache(MemoryFragmentCacheConfig{TTL: time.Minute})

	require.NoError(t, cache.Set(ctx, "a", "1"))
	require.NoError(t, cache.Set(ctx, "b", "2"))

	clock.Advance(30 * time.Second)
	_, ok, _ := cache.Get(ctx, "a")
	assert.True(t, ok)

	clock.Advance(31 * time.Second)
	_, ok, _ = cache.Get(ctx, "a")
	assert.False(t, ok)

	assert.Equal(t, 1, cache.Cleanup())
	assert.Equal(t, 0, cache.Stats().EntryCount)
	assert.Equal(t, int64(0), cache.Stats().TotalSize)
}

func TestMemoryFragmentCache_Eviction(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestMemoryCache(MemoryFragmentCacheConfig{MaxEntries: 2})

	require.NoError(t, cache.Set(ctx, "a", "1"))
	require.NoError(t, cache.Set(ctx, "b", "2"))
	require.NoError(t, cache.Set(ctx, "c", "3"))

	_, ok, _ := cache.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = cache.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, int64(1), cache.Stats().Evictions)

	t.Run("replacing a key does not evict", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "b", "22"))
		assert.Equal(t, int64(1), cache.Stats().Evictions)
		assert.Equal(t, 2, cache.Stats().EntryCount)
	})
}

func TestMemoryFragmentCache_OversizedSkipped(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestMemoryCache(MemoryFragmentCacheConfig{MaxFragmentSize: 4})

	require.NoError(t, cache.Set(ctx, "big", strings.Repeat("x", 5)))
	_, ok, _ := cache.Get(ctx, "big")
	assert.False(t, ok)

	t.Run("drops the previous value", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", "old"))
		require.NoError(t, cache.Set(ctx, "k", strings.Repeat("y", 5)))

		_, ok, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Stats().EntryCount)
		assert.Equal(t, int64(0), cache.Stats().TotalSize)
	})
}

func TestNewMemoryFragmentCache_NonPositiveLimits(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryFragmentCache(MemoryFragmentCacheConfig{
		TTL:             -time.Second,
		MaxEntries:      -1,
		MaxFragmentSize: -1,
	})

	assert.Equal(t, DefaultFragmentTTL, cache.config.TTL)
	assert.Equal(t, DefaultFragmentMaxEntries, cache.config.MaxEntries)
	assert.Equal(t, DefaultFragmentMaxSize, cache.config.MaxFragmentSize)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	html, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", html)
}

func TestMemoryFragmentCache_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestMemoryCache(MemoryFragmentCacheConfig{KeyPrefix: "site:"})

	require.NoError(t, cache.Set(ctx, "k", "v"))
	_, exists := cache.entries["site:k"]
	assert.True(t, exists)

	html, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", html)
}

func TestMemoryFragmentCache_ClearAndClose(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestMemoryCache(DefaultMemoryFragmentCacheConfig())

	require.NoError(t, cache.Set(ctx, "a", "1"))
	require.NoError(t, cache.Clear(ctx))
	_, ok, _ := cache.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().EntryCount)

	require.NoError(t, cache.Close())
	_, _, err := cache.Get(ctx, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCacheClosed)
	assert.Error(t, cache.Set(ctx, "a", "1"))
	assert.Error(t, cache.Delete(ctx, "a"))
	assert.Error(t, cache.Clear(ctx))
}

func TestMemoryFragmentCache_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cache := NewMemoryFragmentCache(DefaultMemoryFragmentCacheConfig())

	_, _, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, cache.Set(ctx, "k", "v"), context.Canceled)
}

func TestMemoryFragmentCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryFragmentCache(MemoryFragmentCacheConfig{MaxEntries: 16})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + (i+j)%26))
				_ = cache.Set(ctx, key, key)
				_, _, _ = cache.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Stats().EntryCount, 16)
}

func TestFragmentRecord_Codec(t *testing.T) {
	data, err := encodeFragment("<p>ok</p>")
	require.NoError(t, err)

	html, err := decodeFragment(CacheBackendRedis, data)
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", html)

	_, err = decodeFragment(CacheBackendRedis, []byte{0xc1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCacheDecodeFailed)
}
