package slotted

import (
	"context"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// FragmentCache stores rendered HTML fragments by key. Implementations must be
// safe for concurrent use.
type FragmentCache interface {
	// Get returns the cached fragment. A miss reports false with a nil error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a fragment, replacing any previous value.
	Set(ctx context.Context, key, html string) error

	// Delete removes a fragment. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every fragment owned by this cache.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// fragmentRecord is the encoded payload for remote backends.
type fragmentRecord struct {
	HTML      string `msgpack:"html"`
	CreatedAt int64  `msgpack:"created_at"`
}

func encodeFragment(html string) ([]byte, error) {
	return msgpack.Marshal(fragmentRecord{HTML: html, CreatedAt: time.Now().UnixMilli()})
}

func decodeFragment(backend string, data []byte) (string, error) {
	var rec fragmentRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return "", NewCacheDecodeError(backend, err)
	}
	return rec.HTML, nil
}

// MemoryFragmentCacheConfig configures the in-process fragment cache.
type MemoryFragmentCacheConfig struct {
	// TTL is how long fragments are cached. Default: 5 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of fragments. Default: 1000.
	MaxEntries int

	// MaxFragmentSize is the largest fragment stored, in bytes. Default: 1MB.
	MaxFragmentSize int

	// KeyPrefix is prepended to all keys.
	KeyPrefix string
}

// DefaultMemoryFragmentCacheConfig returns the default configuration.
func DefaultMemoryFragmentCacheConfig() MemoryFragmentCacheConfig {
	return MemoryFragmentCacheConfig{
		TTL:             DefaultFragmentTTL,
		MaxEntries:      DefaultFragmentMaxEntries,
		MaxFragmentSize: DefaultFragmentMaxSize,
	}
}

// FragmentCacheStats tracks cache performance.
type FragmentCacheStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	TotalSize  int64
	EntryCount int
}

type memoryFragment struct {
	html      string
	expiresAt time.Time
}

// MemoryFragmentCache is an in-process FragmentCache with TTL expiry and
// first-in-first-out eviction.
type MemoryFragmentCache struct {
	mu        sync.RWMutex
	entries   map[string]*memoryFragment
	config    MemoryFragmentCacheConfig
	stats     FragmentCacheStats
	evictList []string
	closed    bool
	now       func() time.Time
}

var _ FragmentCache = (*MemoryFragmentCache)(nil)

// NewMemoryFragmentCache creates an in-process fragment cache.
func NewMemoryFragmentCache(config MemoryFragmentCacheConfig) *MemoryFragmentCache {
	if config.TTL <= 0 {
		config.TTL = DefaultFragmentTTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultFragmentMaxEntries
	}
	if config.MaxFragmentSize <= 0 {
		config.MaxFragmentSize = DefaultFragmentMaxSize
	}

	return &MemoryFragmentCache{
		entries:   make(map[string]*memoryFragment),
		config:    config,
		evictList: make([]string, 0, config.MaxEntries),
		now:       time.Now,
	}
}

// Get retrieves a fragment if present and not expired.
func (c *MemoryFragmentCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	key = c.config.KeyPrefix + key

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", false, NewCacheClosedError(CacheBackendMemory)
	}

	entry, exists := c.entries[key]
	if !exists {
		c.stats.Misses++
		return "", false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.removeLocked(key)
		c.stats.Misses++
		return "", false, nil
	}

	c.stats.Hits++
	return entry.html, true, nil
}

// Set stores a fragment. Fragments larger than MaxFragmentSize are not
// stored and drop any previous value under key.
func (c *MemoryFragmentCache) Set(ctx context.Context, key, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key = c.config.KeyPrefix + key

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return NewCacheClosedError(CacheBackendMemory)
	}

	if len(html) > c.config.MaxFragmentSize {
		c.removeLocked(key)
		return nil
	}

	if _, exists := c.entries[key]; exists {
		c.removeLocked(key)
	} else if len(c.entries) >= c.config.MaxEntries {
		c.evictOldest()
	}

	c.entries[key] = &memoryFragment{
		html:      html,
		expiresAt: c.now().Add(c.config.TTL),
	}
	c.evictList = append(c.evictList, key)
	c.stats.EntryCount = len(c.entries)
	c.stats.TotalSize += int64(len(html))
	return nil
}

// Delete removes a fragment.
func (c *MemoryFragmentCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return NewCacheClosedError(CacheBackendMemory)
	}
	c.removeLocked(c.config.KeyPrefix + key)
	return nil
}

// Clear removes all fragments.
func (c *MemoryFragmentCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return NewCacheClosedError(CacheBackendMemory)
	}
	c.entries = make(map[string]*memoryFragment)
	c.evictList = make([]string, 0, c.config.MaxEntries)
	c.stats.TotalSize = 0
	c.stats.EntryCount = 0
	return nil
}

// Close drops all fragments. Later calls return a closed error.
func (c *MemoryFragmentCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.entries = nil
	c.evictList = nil
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryFragmentCache) Stats() FragmentCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (c *MemoryFragmentCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total)
}

// Cleanup removes expired fragments and returns how many were dropped.
// Call periodically for long-running applications.
func (c *MemoryFragmentCache) Cleanup() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

// removeLocked deletes key and its eviction slot. Caller holds mu.
func (c *MemoryFragmentCache) removeLocked(key string) {
	entry, exists := c.entries[key]
	if !exists {
		return
	}
	c.stats.TotalSize -= int64(len(entry.html))
	delete(c.entries, key)
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			break
		}
	}
	c.stats.EntryCount = len(c.entries)
}

// evictOldest removes the oldest entry. Caller holds mu.
func (c *MemoryFragmentCache) evictOldest() {
	if len(c.evictList) == 0 {
		return
	}
	c.removeLocked(c.evictList[0])
	c.stats.Evictions++
}
