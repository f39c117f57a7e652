package slotted

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Engine is a registry of named, compiled templates. It adds logging,
// tracing, metrics and an optional fragment cache around Compile and
// Template.Render. An Engine is safe for concurrent use.
type Engine struct {
	templates map[string]*Template
	tmplMu    sync.RWMutex // Protects templates map
	compiling singleflight.Group
	config    *engineConfig
	logger    *zap.Logger
	tracer    trace.Tracer
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := config.tracer
	if tracer == nil {
		tracer = otel.Tracer(InstrumentationName)
	}

	logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldPolicy, config.defaultPolicy.String()),
	)

	return &Engine{
		templates: make(map[string]*Template),
		config:    config,
		logger:    logger,
		tracer:    tracer,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// NewContext creates an empty render context with the engine's default policy.
func (e *Engine) NewContext() *RenderContext {
	return NewRenderContext().WithPolicy(e.config.defaultPolicy)
}

// Compile compiles root into a Template.
func (e *Engine) Compile(ctx context.Context, root Component) (*Template, error) {
	return e.compile(ctx, "", root)
}

func (e *Engine) compile(ctx context.Context, name string, root Component) (*Template, error) {
	if root == nil {
		return nil, NewNilTemplateRootError(name)
	}

	_, span := e.tracer.Start(ctx, SpanCompile, trace.WithAttributes(
		attribute.String(LogFieldTemplate, name),
	))
	defer span.End()

	e.logger.Debug(LogMsgCompileStart, zap.String(LogFieldTemplate, name))

	tmpl := Compile(root)
	stats := tmpl.Stats()

	span.SetAttributes(
		attribute.Int(LogFieldSegments, tmpl.SegmentCount()),
		attribute.Int(LogFieldSegmentsRaw, stats.BeforeMerge),
	)
	e.config.metrics.ObserveCompile(tmpl.SegmentCount())
	e.logger.Debug(LogMsgCompileEnd,
		zap.String(LogFieldTemplate, name),
		zap.Int(LogFieldSegments, tmpl.SegmentCount()),
		zap.Int(LogFieldSegmentsRaw, stats.BeforeMerge),
		zap.Strings(LogFieldSlots, tmpl.Slots()),
	)
	return tmpl, nil
}

// RegisterTemplate compiles root and registers it under name.
// Returns an error if a template with the same name already exists.
func (e *Engine) RegisterTemplate(ctx context.Context, name string, root Component) error {
	if name == "" {
		return NewEmptyTemplateNameError()
	}

	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		return NewTemplateExistsError(name)
	}

	tmpl, err := e.compile(ctx, name, root)
	if err != nil {
		return err
	}

	e.templates[name] = tmpl
	e.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplate, name))
	return nil
}

// MustRegisterTemplate registers a template and panics on error.
func (e *Engine) MustRegisterTemplate(ctx context.Context, name string, root Component) {
	if err := e.RegisterTemplate(ctx, name, root); err != nil {
		panic(err)
	}
}

// GetOrCompile returns the template registered under name, compiling the
// tree returned by build if it is missing. Concurrent callers for the same
// name share a single compilation.
func (e *Engine) GetOrCompile(ctx context.Context, name string, build func() Component) (*Template, error) {
	if name == "" {
		return nil, NewEmptyTemplateNameError()
	}
	if tmpl, ok := e.GetTemplate(name); ok {
		return tmpl, nil
	}

	v, err, _ := e.compiling.Do(name, func() (any, error) {
		if tmpl, ok := e.GetTemplate(name); ok {
			return tmpl, nil
		}
		tmpl, err := e.compile(ctx, name, build())
		if err != nil {
			return nil, err
		}

		e.tmplMu.Lock()
		defer e.tmplMu.Unlock()
		if existing, ok := e.templates[name]; ok {
			return existing, nil
		}
		e.templates[name] = tmpl
		e.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplate, name))
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Template), nil
}

// UnregisterTemplate removes a registered template by name.
// Returns true if the template existed and was removed, false otherwise.
func (e *Engine) UnregisterTemplate(name string) bool {
	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()

	if _, exists := e.templates[name]; exists {
		delete(e.templates, name)
		e.logger.Debug(LogMsgTemplateRemoved, zap.String(LogFieldTemplate, name))
		return true
	}
	return false
}

// GetTemplate retrieves a registered template by name.
func (e *Engine) GetTemplate(name string) (*Template, bool) {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	tmpl, ok := e.templates[name]
	return tmpl, ok
}

// HasTemplate checks if a template is registered with the given name.
func (e *Engine) HasTemplate(name string) bool {
	_, ok := e.GetTemplate(name)
	return ok
}

// ListTemplates returns all registered template names in sorted order.
func (e *Engine) ListTemplates() []string {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateCount returns the number of registered templates.
func (e *Engine) TemplateCount() int {
	e.tmplMu.RLock()
	defer e.tmplMu.RUnlock()

	return len(e.templates)
}

// Render executes the named template against rc. A nil rc renders with an
// empty context using the engine's default policy.
func (e *Engine) Render(ctx context.Context, name string, rc *RenderContext) (string, error) {
	tmpl, ok := e.GetTemplate(name)
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}

	_, span := e.tracer.Start(ctx, SpanRender, trace.WithAttributes(
		attribute.String(LogFieldTemplate, name),
	))
	defer span.End()

	html := e.execute(name, tmpl, rc)
	span.SetAttributes(attribute.Int(LogFieldOutputLength, len(html)))
	return html, nil
}

// RenderCached renders the named template through the fragment cache under
// cacheKey. Without a configured cache it behaves like Render. Cache backend
// failures are logged and the template is rendered directly.
func (e *Engine) RenderCached(ctx context.Context, name, cacheKey string, rc *RenderContext) (string, error) {
	cache := e.config.fragmentCache
	if cache == nil {
		return e.Render(ctx, name, rc)
	}

	tmpl, ok := e.GetTemplate(name)
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}

	ctx, span := e.tracer.Start(ctx, SpanRenderCached, trace.WithAttributes(
		attribute.String(LogFieldTemplate, name),
		attribute.String(LogFieldCacheKey, cacheKey),
	))
	defer span.End()

	key := fragmentKey(name, cacheKey)
	fields := []zap.Field{
		zap.String(LogFieldTemplate, name),
		zap.String(LogFieldCacheKey, cacheKey),
	}

	html, hit, err := cache.Get(ctx, key)
	switch {
	case err != nil:
		e.config.metrics.IncrementFragmentError()
		span.RecordError(err)
		e.logger.Warn(LogMsgFragmentGetFailed, append(fields, zap.Error(err))...)
		return e.execute(name, tmpl, rc), nil
	case hit:
		e.config.metrics.IncrementFragmentHit()
		span.SetAttributes(attribute.Bool(LogFieldCacheHit, true))
		e.logger.Debug(LogMsgFragmentHit, fields...)
		return html, nil
	}

	e.config.metrics.IncrementFragmentMiss()
	span.SetAttributes(attribute.Bool(LogFieldCacheHit, false))
	e.logger.Debug(LogMsgFragmentMiss, fields...)

	html = e.execute(name, tmpl, rc)
	if err := cache.Set(ctx, key, html); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrMsgCacheBackendFailed)
		e.logger.Warn(LogMsgFragmentSetFailed, append(fields, zap.Error(err))...)
	}
	return html, nil
}

// InvalidateFragment removes a cached fragment for the named template.
func (e *Engine) InvalidateFragment(ctx context.Context, name, cacheKey string) error {
	if e.config.fragmentCache == nil {
		return nil
	}
	return e.config.fragmentCache.Delete(ctx, fragmentKey(name, cacheKey))
}

// fragmentKey joins a template name and cache key. The name is length
// prefixed so names and keys containing ':' cannot collide.
func fragmentKey(name, cacheKey string) string {
	return strconv.Itoa(len(name)) + ":" + name + ":" + cacheKey
}

// FragmentCache returns the configured fragment cache, or nil.
func (e *Engine) FragmentCache() FragmentCache {
	return e.config.fragmentCache
}

// DefaultPolicy returns the policy applied by NewContext.
func (e *Engine) DefaultPolicy() RenderPolicy {
	return e.config.defaultPolicy
}

// Close releases the fragment cache, if any.
func (e *Engine) Close() error {
	if e.config.fragmentCache == nil {
		return nil
	}
	return e.config.fragmentCache.Close()
}

func (e *Engine) execute(name string, tmpl *Template, rc *RenderContext) string {
	if rc == nil {
		rc = e.NewContext()
	}
	e.logger.Debug(LogMsgRenderStart,
		zap.String(LogFieldTemplate, name),
		zap.String(LogFieldPolicy, rc.Policy().String()),
	)

	start := time.Now()
	html := tmpl.Render(rc)
	e.config.metrics.ObserveRender(name, time.Since(start))
	return html
}
