package slotted

import (
	"sync"
	"sync/atomic"
)

// Module is a composite node whose content is assembled exactly once.
// After Build the child list is fixed, so a module can be compiled into a
// Template or cached safely. Set properties before the first render.
type Module struct {
	*Tag

	buildContent func(m *Module)
	title        string

	built atomic.Bool
	mu    sync.Mutex
}

var (
	_ TaggedNode = (*Module)(nil)
	_ Buildable  = (*Module)(nil)
)

// NewModule creates an unbuilt module rendered as a tagName element.
// buildContent appends the module's children and runs at most once.
func NewModule(tagName string, buildContent func(m *Module)) *Module {
	return &Module{Tag: NewTag(tagName), buildContent: buildContent}
}

// WithModuleID sets the element id.
func (m *Module) WithModuleID(id string) *Module {
	m.Tag.WithID(id)
	return m
}

// WithTitle stores a title for buildContent to use.
func (m *Module) WithTitle(title string) *Module {
	m.title = title
	return m
}

// ModuleID returns the element id.
func (m *Module) ModuleID() string {
	id, _ := m.Tag.Attribute(AttrID)
	return id
}

// Title returns the title set with WithTitle.
func (m *Module) Title() string { return m.title }

// IsBuilt reports whether the content has been assembled.
func (m *Module) IsBuilt() bool { return m.built.Load() }

// Build assembles the content if it has not been assembled yet.
// Safe for concurrent use; later calls are no-ops.
func (m *Module) Build() {
	if m.built.Load() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.built.Load() {
		return
	}
	m.build()
}

// Rebuild discards the children and assembles the content again.
// Templates compiled from this module keep the old structure.
func (m *Module) Rebuild() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.built.Store(false)
	m.Tag.clearChildren()
	m.build()
}

// build must be called with mu held.
func (m *Module) build() {
	m.Tag.WithClass(ModuleClass)
	if m.buildContent != nil {
		m.buildContent(m)
	}
	m.built.Store(true)
}

// Render builds the module if needed and renders it as an ordinary tag.
func (m *Module) Render(rc *RenderContext) string {
	if m == nil {
		return ""
	}
	m.Build()
	return m.Tag.Render(rc)
}
