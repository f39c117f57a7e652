package slotted

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-slotted/internal"
)

// Config is an engine configuration loaded from YAML.
type Config struct {
	DefaultPolicy RenderPolicy
	LogLevel      zapcore.Level
	Cache         CacheConfig
}

// CacheConfig selects and configures the fragment cache backend.
type CacheConfig struct {
	// Backend is "none", "memory", "redis" or "postgres".
	Backend string

	// Address is the redis URL or postgres DSN.
	Address    string
	TTL        time.Duration
	MaxEntries int
	KeyPrefix  string
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigReadFailed, path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration.
//
//	default_policy: compile_on_first_hit
//	log_level: debug
//	cache:
//	  backend: memory
//	  ttl: 10m
//	  max_entries: 500
func ParseConfig(data []byte) (*Config, error) {
	raw, err := internal.ParseFileConfig(data)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigInvalid, "", err)
	}

	policy, err := ParseRenderPolicy(raw.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	level, err := zapcore.ParseLevel(raw.LogLevel)
	if err != nil {
		return nil, NewConfigError(ErrMsgInvalidLogLevel, raw.LogLevel, err)
	}
	ttl, err := raw.Cache.TTLDuration()
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigInvalid, raw.Cache.TTL, err)
	}

	return &Config{
		DefaultPolicy: policy,
		LogLevel:      level,
		Cache: CacheConfig{
			Backend:    raw.Cache.Backend,
			Address:    raw.Cache.Address,
			TTL:        ttl,
			MaxEntries: raw.Cache.MaxEntries,
			KeyPrefix:  raw.Cache.KeyPrefix,
		},
	}, nil
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

// OpenFragmentCache connects the configured backend. It returns nil for the
// "none" backend.
func (c *Config) OpenFragmentCache(ctx context.Context) (FragmentCache, error) {
	switch c.Cache.Backend {
	case CacheBackendMemory:
		return NewMemoryFragmentCache(MemoryFragmentCacheConfig{
			TTL:        c.Cache.TTL,
			MaxEntries: c.Cache.MaxEntries,
			KeyPrefix:  c.Cache.KeyPrefix,
		}), nil
	case CacheBackendRedis:
		cache, err := NewRedisFragmentCache(ctx, RedisFragmentCacheConfig{
			URL:       c.Cache.Address,
			KeyPrefix: c.Cache.KeyPrefix,
			TTL:       c.Cache.TTL,
		})
		if err != nil {
			return nil, err
		}
		return cache, nil
	case CacheBackendPostgres:
		cache, err := NewPostgresFragmentCache(ctx, c.postgresCacheConfig())
		if err != nil {
			return nil, err
		}
		return cache, nil
	default:
		return nil, nil
	}
}

func (c *Config) postgresCacheConfig() PostgresFragmentCacheConfig {
	pg := DefaultPostgresFragmentCacheConfig()
	pg.ConnectionString = c.Cache.Address
	pg.TTL = c.Cache.TTL
	pg.KeyPrefix = c.Cache.KeyPrefix
	return pg
}

// Options converts the configuration into engine options, opening the
// fragment cache if one is configured. The logger is left to the caller.
func (c *Config) Options(ctx context.Context) ([]Option, error) {
	opts := []Option{WithDefaultPolicy(c.DefaultPolicy)}

	cache, err := c.OpenFragmentCache(ctx)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts = append(opts, WithFragmentCache(cache))
	}
	return opts, nil
}
