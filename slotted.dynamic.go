package slotted

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/itsatony/go-slotted/internal"
)

// DynamicContent pairs a registered placeholder tag with its replacement.
type DynamicContent struct {
	Tag     string
	Content Component
}

// Dynamic is shorthand for a DynamicContent literal.
func Dynamic(tag string, content Component) DynamicContent {
	return DynamicContent{Tag: tag, Content: content}
}

// DynamicModule is a module that caches its first rendered HTML and patches
// named placeholder regions on later renders. Placeholders must be registered
// with Placeholder or AddDynamic while the content is built.
type DynamicModule struct {
	*Module

	instanceID string
	tagsMu     sync.RWMutex
	tags       map[string]string // tag -> token
	order      []string
	building   atomic.Bool

	cached  atomic.Pointer[string]
	cacheMu sync.Mutex
}

// NewDynamicModule creates an unbuilt dynamic module.
func NewDynamicModule(tagName string, buildContent func(d *DynamicModule)) *DynamicModule {
	d := &DynamicModule{
		instanceID: internal.NewInstanceID(),
		tags:       make(map[string]string),
	}
	d.Module = NewModule(tagName, func(*Module) {
		if buildContent != nil {
			d.building.Store(true)
			defer d.building.Store(false)
			buildContent(d)
		}
	})
	return d
}

// Placeholder registers tag and returns the node that marks its position.
// Registering the same tag twice returns the same token.
func (d *DynamicModule) Placeholder(tag string) Component {
	d.tagsMu.Lock()
	defer d.tagsMu.Unlock()
	token, ok := d.tags[tag]
	if !ok {
		token = internal.PlaceholderToken(d.instanceID, tag)
		d.tags[tag] = token
		d.order = append(d.order, tag)
	}
	return Raw(token)
}

// AddDynamic registers tag and appends its placeholder as the next child.
func (d *DynamicModule) AddDynamic(tag string) *DynamicModule {
	d.WithChild(d.Placeholder(tag))
	return d
}

// RegisteredTags returns the registered tags in registration order.
// Called from the build function it reports the tags registered so far.
func (d *DynamicModule) RegisteredTags() []string {
	d.buildUnlessBuilding()
	d.tagsMu.RLock()
	defer d.tagsMu.RUnlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Token returns the raw placeholder token for tag.
func (d *DynamicModule) Token(tag string) (string, bool) {
	d.buildUnlessBuilding()
	d.tagsMu.RLock()
	defer d.tagsMu.RUnlock()
	token, ok := d.tags[tag]
	return token, ok
}

// buildUnlessBuilding builds the module unless its build function is
// running, in which case Build would block on the module lock.
func (d *DynamicModule) buildUnlessBuilding() {
	if !d.building.Load() {
		d.Build()
	}
}

// IsCached reports whether the first render has been captured.
func (d *DynamicModule) IsCached() bool {
	return d.cached.Load() != nil
}

// Render returns the cached HTML, capturing it on the first call.
// Unsubstituted placeholders appear as their raw tokens.
func (d *DynamicModule) Render(rc *RenderContext) string {
	if d == nil {
		return ""
	}
	if html := d.cached.Load(); html != nil {
		return *html
	}
	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()
	if html := d.cached.Load(); html != nil {
		return *html
	}
	html := d.Module.Render(rc)
	d.cached.Store(&html)
	return html
}

// RenderWithDynamic substitutes each update into the cached HTML. Every tag is
// checked before anything is rendered; an unregistered tag is an error.
// Registered tags without an update keep their raw token. When a tag is
// supplied more than once the last update wins.
func (d *DynamicModule) RenderWithDynamic(rc *RenderContext, updates ...DynamicContent) (string, error) {
	d.Build()
	d.tagsMu.RLock()
	for _, u := range updates {
		if _, ok := d.tags[u.Tag]; !ok {
			d.tagsMu.RUnlock()
			return "", NewUnknownDynamicTagError(u.Tag)
		}
	}
	d.tagsMu.RUnlock()

	base := d.Render(rc)
	if len(updates) == 0 {
		return base, nil
	}

	rendered := make(map[string]string, len(updates))
	for _, u := range updates {
		var html string
		if u.Content != nil {
			html = u.Content.Render(rc)
		}
		rendered[u.Tag] = html
	}

	pairs := make([]string, 0, 2*len(rendered))
	d.tagsMu.RLock()
	for _, tag := range d.order {
		if html, ok := rendered[tag]; ok {
			pairs = append(pairs, d.tags[tag], html)
		}
	}
	d.tagsMu.RUnlock()
	return strings.NewReplacer(pairs...).Replace(base), nil
}

// Rebuild discards the cached HTML and the registered tags, then assembles
// the content again. The instance token prefix is kept.
func (d *DynamicModule) Rebuild() {
	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()
	d.tagsMu.Lock()
	d.tags = make(map[string]string)
	d.order = nil
	d.tagsMu.Unlock()
	d.cached.Store(nil)
	d.Module.Rebuild()
}
