package slotted

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	defaultPolicy RenderPolicy
	fragmentCache FragmentCache
	metrics       *Metrics
	tracer        trace.Tracer
	logger        *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		defaultPolicy: PolicyNeverCompile,
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithDefaultPolicy sets the policy of contexts created by Engine.NewContext.
// Default: PolicyNeverCompile
func WithDefaultPolicy(p RenderPolicy) Option {
	return func(c *engineConfig) {
		c.defaultPolicy = p
	}
}

// WithFragmentCache enables Engine.RenderCached.
// Default: nil (RenderCached renders directly)
func WithFragmentCache(cache FragmentCache) Option {
	return func(c *engineConfig) {
		c.fragmentCache = cache
	}
}

// WithMetrics enables Prometheus instrumentation.
// Default: nil (no metrics)
func WithMetrics(m *Metrics) Option {
	return func(c *engineConfig) {
		c.metrics = m
	}
}

// WithTracer sets the tracer for engine spans.
// Default: the global OpenTelemetry tracer provider
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}
