package internal

// Placeholder token delimiters for dynamic modules.
// A token looks like {{__SLOTTED_DYN__<instance>__<tag>__}}.
const (
	PlaceholderPrefix    = "{{__SLOTTED_DYN__"
	PlaceholderSeparator = "__"
	PlaceholderSuffix    = "__}}"
)

// Config file keys and values
const (
	CacheBackendNone     = "none"
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// Config defaults
const (
	DefaultConfigPolicy   = "never"
	DefaultConfigLogLevel = "info"
	DefaultCacheTTL       = "5m"
	DefaultCacheEntries   = 1000
)

// Config error messages
const (
	ErrMsgConfigParse          = "failed to parse config"
	ErrMsgConfigUnknownBackend = "unknown cache backend"
	ErrMsgConfigInvalidTTL     = "invalid cache ttl"
	ErrMsgConfigMissingAddress = "cache backend requires an address"
	ErrMsgConfigNegativeSize   = "cache max_entries cannot be negative"
)

// Error format string constants
const (
	ErrFmtWithCause  = "%s: %v"
	ErrFmtWithDetail = "%s: %s"
)
