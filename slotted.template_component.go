package slotted

import "sync"

// TemplateComponent embeds a compiled template, bound to its own context, in
// a tree that is rendered directly.
type TemplateComponent struct {
	template *Template
	rc       *RenderContext
}

// NewTemplateComponent binds t to rc.
func NewTemplateComponent(t *Template, rc *RenderContext) *TemplateComponent {
	return &TemplateComponent{template: t, rc: rc}
}

// Render ignores the parent context and executes the bound template against
// the bound context.
func (c *TemplateComponent) Render(_ *RenderContext) string {
	if c.template == nil {
		return ""
	}
	return c.template.Render(c.rc)
}

// Template returns the bound template.
func (c *TemplateComponent) Template() *Template { return c.template }

// Context returns the bound context.
func (c *TemplateComponent) Context() *RenderContext { return c.rc }

// LazyTemplate returns a handle that compiles the tree produced by build on
// first use and returns the same Template afterwards. Suitable for
// package-level template variables:
//
//	var cardTemplate = slotted.LazyTemplate(func() slotted.Component { ... })
func LazyTemplate(build func() Component) func() *Template {
	return sync.OnceValue(func() *Template {
		return Compile(build())
	})
}
