package internal

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML shape of an engine configuration.
//
// Example:
//
//	default_policy: compile_on_first_hit
//	log_level: debug
//	cache:
//	  backend: redis
//	  address: redis://localhost:6379/0
//	  ttl: 10m
//	  key_prefix: "site:"
type FileConfig struct {
	DefaultPolicy string          `yaml:"default_policy"`
	LogLevel      string          `yaml:"log_level"`
	Cache         CacheFileConfig `yaml:"cache"`
}

// CacheFileConfig configures the fragment cache backend.
type CacheFileConfig struct {
	Backend    string `yaml:"backend"`
	Address    string `yaml:"address"` // redis URL or postgres DSN
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
	KeyPrefix  string `yaml:"key_prefix"`
}

// TTLDuration parses the configured TTL, falling back to DefaultCacheTTL.
func (c CacheFileConfig) TTLDuration() (time.Duration, error) {
	raw := c.TTL
	if raw == "" {
		raw = DefaultCacheTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, NewConfigError(ErrMsgConfigInvalidTTL, err)
	}
	if d < 0 {
		return 0, NewConfigError(ErrMsgConfigInvalidTTL, nil)
	}
	return d, nil
}

// ParseFileConfig decodes and validates a YAML engine configuration.
// Missing fields receive their defaults.
func ParseFileConfig(data []byte) (*FileConfig, error) {
	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigParse, err)
	}

	if cfg.DefaultPolicy == "" {
		cfg.DefaultPolicy = DefaultConfigPolicy
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfigLogLevel
	}
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendNone
	}
	if cfg.Cache.MaxEntries < 0 {
		return nil, NewConfigError(ErrMsgConfigNegativeSize, nil)
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheEntries
	}

	switch cfg.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis, CacheBackendPostgres:
		if cfg.Cache.Address == "" {
			return nil, NewConfigError(ErrMsgConfigMissingAddress, nil)
		}
	default:
		return nil, NewConfigError(fmt.Sprintf(ErrFmtWithDetail, ErrMsgConfigUnknownBackend, cfg.Cache.Backend), nil)
	}

	if _, err := cfg.Cache.TTLDuration(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigError represents an error while reading an engine configuration.
type ConfigError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(ErrFmtWithCause, e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new config error.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		Message: message,
		Cause:   cause,
	}
}
