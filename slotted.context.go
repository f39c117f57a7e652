package slotted

import (
	"fmt"
	"maps"
	"strings"

	"github.com/itsatony/go-slotted/internal"
)

// RenderPolicy controls whether live entries are memoized after their first
// render.
type RenderPolicy int

const (
	// PolicyNeverCompile renders live entries fresh on every lookup.
	PolicyNeverCompile RenderPolicy = iota
	// PolicyCompileOnFirstHit replaces a live entry with its rendered HTML the
	// first time it is looked up. Defaults are never memoized.
	PolicyCompileOnFirstHit
)

// String returns the policy's config name.
func (p RenderPolicy) String() string {
	switch p {
	case PolicyNeverCompile:
		return PolicyNameNeverCompile
	case PolicyCompileOnFirstHit:
		return PolicyNameCompileOnFirstHit
	default:
		return fmt.Sprintf("RenderPolicy(%d)", int(p))
	}
}

// ParseRenderPolicy parses a policy name as used in config files and flags.
func ParseRenderPolicy(name string) (RenderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyNameNeverCompile, "":
		return PolicyNeverCompile, nil
	case PolicyNameCompileOnFirstHit:
		return PolicyCompileOnFirstHit, nil
	default:
		return PolicyNeverCompile, NewConfigError(ErrMsgInvalidPolicy, name, nil)
	}
}

// RenderContext maps slot names to entries for a single render.
// It is not safe for concurrent use. A nil *RenderContext reads as empty.
type RenderContext struct {
	entries map[string]SlotEntry
	policy  RenderPolicy
}

// NewRenderContext creates an empty context with PolicyNeverCompile.
func NewRenderContext() *RenderContext {
	return &RenderContext{entries: make(map[string]SlotEntry)}
}

// WithPolicy sets the memoization policy.
func (rc *RenderContext) WithPolicy(p RenderPolicy) *RenderContext {
	rc.policy = p
	return rc
}

// Policy returns the memoization policy.
func (rc *RenderContext) Policy() RenderPolicy {
	if rc == nil {
		return PolicyNeverCompile
	}
	return rc.policy
}

// Put stores value as a live entry, replacing any existing entry.
func Put[T any](rc *RenderContext, key SlotKey[T], value T) *RenderContext {
	rc.set(key.Name(), newLiveEntry(value))
	return rc
}

// Get returns the live value for key, or the key's default when no entry
// exists. Compiled entries hold markup rather than values and read as absent.
// A live value of a different type returns a type mismatch error.
func Get[T any](rc *RenderContext, key SlotKey[T]) (T, bool, error) {
	var zero T
	if entry, ok := rc.Entry(key); ok {
		switch e := entry.(type) {
		case LiveEntry:
			v, err := valueAs[T](key.Name(), e)
			if err != nil {
				return zero, false, err
			}
			return v, true, nil
		case CompiledEntry:
			return zero, false, nil
		}
	}
	v, ok := key.Default(rc)
	return v, ok, nil
}

// PutCompiled stores trusted HTML for key. The markup is emitted verbatim.
func (rc *RenderContext) PutCompiled(key Keyed, html string) *RenderContext {
	rc.set(key.Name(), CompiledEntry{HTML: html})
	return rc
}

// ClearCompiled removes key's entry if it is compiled. Live entries stay.
func (rc *RenderContext) ClearCompiled(key Keyed) *RenderContext {
	if _, ok := rc.entries[key.Name()].(CompiledEntry); ok {
		delete(rc.entries, key.Name())
	}
	return rc
}

func (rc *RenderContext) set(name string, entry SlotEntry) {
	if rc.entries == nil {
		rc.entries = make(map[string]SlotEntry)
	}
	rc.entries[name] = entry
}

// Remove deletes any entry for key.
func (rc *RenderContext) Remove(key Keyed) *RenderContext {
	delete(rc.entries, key.Name())
	return rc
}

// Has reports whether an explicit entry exists for key. Defaults do not count.
func (rc *RenderContext) Has(key Keyed) bool {
	_, ok := rc.Entry(key)
	return ok
}

// IsCompiled reports whether key holds a compiled entry.
func (rc *RenderContext) IsCompiled(key Keyed) bool {
	_, ok := rc.Compiled(key)
	return ok
}

// Compiled returns the HTML of key's compiled entry.
func (rc *RenderContext) Compiled(key Keyed) (string, bool) {
	entry, ok := rc.Entry(key)
	if !ok {
		return "", false
	}
	c, ok := entry.(CompiledEntry)
	return c.HTML, ok
}

// Entry returns the raw entry stored for key.
func (rc *RenderContext) Entry(key Keyed) (SlotEntry, bool) {
	if rc == nil {
		return nil, false
	}
	entry, ok := rc.entries[key.Name()]
	return entry, ok
}

// Len returns the number of explicit entries.
func (rc *RenderContext) Len() int {
	if rc == nil {
		return 0
	}
	return len(rc.entries)
}

// Clone returns an independent copy with the same entries and policy.
// Live values are shared, not deep-copied.
func (rc *RenderContext) Clone() *RenderContext {
	if rc == nil {
		return NewRenderContext()
	}
	return &RenderContext{entries: maps.Clone(rc.entries), policy: rc.policy}
}

type resolveMode int

const (
	// resolveValue renders nested components and escapes everything else.
	resolveValue resolveMode = iota
	// resolveText always escapes the stringified value.
	resolveText
)

// resolve produces the HTML for key. Compiled entries are emitted verbatim.
// Live entries render fresh and, under PolicyCompileOnFirstHit, are replaced
// with their output. Defaults are evaluated on every call and never stored.
func (rc *RenderContext) resolve(key Keyed, mode resolveMode) string {
	if entry, ok := rc.Entry(key); ok {
		switch e := entry.(type) {
		case CompiledEntry:
			return e.HTML
		case LiveEntry:
			html := renderValue(rc, e.Value, mode)
			if rc.policy == PolicyCompileOnFirstHit {
				rc.entries[key.Name()] = CompiledEntry{HTML: html}
			}
			return html
		}
	}
	v, ok := key.defaultValue(rc)
	if !ok {
		return ""
	}
	return renderValue(rc, v, mode)
}

func renderValue(rc *RenderContext, v any, mode resolveMode) string {
	if v == nil {
		return ""
	}
	if mode == resolveValue {
		if c, ok := v.(Component); ok {
			return c.Render(rc)
		}
	}
	switch s := v.(type) {
	case string:
		return internal.EscapeHTML(s)
	case fmt.Stringer:
		return internal.EscapeHTML(s.String())
	default:
		return internal.EscapeHTML(fmt.Sprint(v))
	}
}
