package slotted

import "time"

// Error message constants - all error messages are constants
const (
	// Slot and context errors
	ErrMsgTypeMismatch = "slot value type mismatch"

	// Dynamic module errors
	ErrMsgUnknownDynamicTag = "unknown dynamic tag"

	// Engine errors
	ErrMsgTemplateNotFound  = "template not found"
	ErrMsgTemplateExists    = "template already registered"
	ErrMsgEmptyTemplateName = "template name cannot be empty"
	ErrMsgNilTemplateRoot   = "template root component cannot be nil"

	// Tree definition errors
	ErrMsgTreeParseFailed   = "failed to parse component tree"
	ErrMsgTreeEmptyNode     = "tree node must define tag, text, html, slot or children"
	ErrMsgTreeConflict      = "tree node defines conflicting content"
	ErrMsgTreeInvalidAttrs  = "tree node attrs must be a mapping of strings"
	ErrMsgTreeInvalidNode   = "tree node must be a mapping or a string"
	ErrMsgTreeUnknownField  = "unknown tree node field"
	ErrMsgTreeInvalidField  = "tree node field has an invalid value"
	ErrMsgTreeInvalidParent = "self-closing tree node cannot have children"

	// Fragment cache errors
	ErrMsgCacheBackendFailed = "fragment cache backend failed"
	ErrMsgCacheEmptyAddress  = "fragment cache address cannot be empty"
	ErrMsgCacheDecodeFailed  = "failed to decode cached fragment"
	ErrMsgCacheClosed        = "fragment cache is closed"

	// Config errors
	ErrMsgConfigInvalid    = "invalid engine configuration"
	ErrMsgConfigReadFailed = "failed to read config file"
	ErrMsgInvalidPolicy    = "invalid render policy"
	ErrMsgInvalidLogLevel  = "invalid log level"
)

// Error code constants for categorization
const (
	ErrCodeSlot    = "SLOTTED_SLOT"
	ErrCodeDynamic = "SLOTTED_DYNAMIC"
	ErrCodeEngine  = "SLOTTED_ENGINE"
	ErrCodeTree    = "SLOTTED_TREE"
	ErrCodeCache   = "SLOTTED_CACHE"
	ErrCodeConfig  = "SLOTTED_CONFIG"
)

// Metadata keys attached to errors
const (
	MetaKeySlot         = "slot"
	MetaKeyExpectedType = "expected_type"
	MetaKeyActualType   = "actual_type"
	MetaKeyTag          = "tag"
	MetaKeyTemplate     = "template"
	MetaKeyTemplateName = "template_name"
	MetaKeyBackend      = "backend"
	MetaKeyOperation    = "operation"
	MetaKeyValue        = "value"
	MetaKeyNode         = "node"
)

// Log message constants
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgCompileStart       = "compiling template"
	LogMsgCompileEnd         = "template compiled"
	LogMsgTemplateRegistered = "template registered"
	LogMsgTemplateRemoved    = "template unregistered"
	LogMsgRenderStart        = "rendering template"
	LogMsgFragmentHit        = "fragment cache hit"
	LogMsgFragmentMiss       = "fragment cache miss"
	LogMsgFragmentGetFailed  = "fragment cache read failed, rendering directly"
	LogMsgFragmentSetFailed  = "fragment cache write failed"
)

// Log field names
const (
	LogFieldTemplate     = "template"
	LogFieldSegments     = "segments"
	LogFieldSegmentsRaw  = "segments_before_merge"
	LogFieldSlots        = "slots"
	LogFieldCacheKey     = "cache_key"
	LogFieldCacheHit     = "cache_hit"
	LogFieldPolicy       = "policy"
	LogFieldOutputLength = "output_length"
)

// Render policy names
const (
	PolicyNameNeverCompile      = "never"
	PolicyNameCompileOnFirstHit = "compile_on_first_hit"
)

// Class added to every module before its content is built.
const ModuleClass = "module"

// Attribute names used by the generic tag builders
const (
	AttrClass = "class"
	AttrID    = "id"
)

// Instrumentation name for tracing and metrics
const InstrumentationName = "github.com/itsatony/go-slotted"

// Span names
const (
	SpanCompile      = "slotted.compile"
	SpanRender       = "slotted.render"
	SpanRenderCached = "slotted.render_cached"
)

// Fragment cache backend names (mirror the config file values)
const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// Fragment cache operation names
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
	CacheOpClear  = "clear"
	CacheOpOpen   = "open"
)

// Fragment cache defaults
const (
	DefaultFragmentTTL             = 5 * time.Minute
	DefaultFragmentMaxEntries      = 1000
	DefaultFragmentMaxSize         = 1 << 20 // 1MB
	DefaultRedisKeyPrefix          = "slotted:fragment:"
	DefaultPostgresTablePrefix     = "slotted_"
	DefaultPostgresMaxOpenConns    = 25
	DefaultPostgresMaxIdleConns    = 5
	DefaultPostgresConnMaxLifetime = 5 * time.Minute
	DefaultPostgresQueryTimeout    = 30 * time.Second
	redisScanBatchSize             = 256
)
