package slotted

import (
	"strings"

	"github.com/itsatony/go-slotted/internal"
)

// Component is anything that can render itself to HTML given a render context.
// Components that do not depend on slots simply ignore the context.
// A nil *RenderContext is always accepted and behaves as an empty context.
type Component interface {
	Render(rc *RenderContext) string
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(rc *RenderContext) string

// Render calls f(rc).
func (f ComponentFunc) Render(rc *RenderContext) string {
	return f(rc)
}

// TaggedNode is the structural view the template compiler specializes on.
// Tag and Module implement it; other components are compiled as opaque
// segments that render through their own Render method.
type TaggedNode interface {
	Component

	// TagName returns the element name. An empty name marks a fragment,
	// which emits only its content.
	TagName() string

	// Attributes returns the attributes in insertion order.
	Attributes() []Attribute

	// IsSelfClosing reports whether the element is written as <name ... />.
	IsSelfClosing() bool

	// Children returns the child components in order. Callers must not
	// modify the returned slice.
	Children() []Component

	// InnerText returns the static inner text and whether it is trusted HTML.
	InnerText() (text string, trusted bool)

	// TextSlot returns the key bound as escaped inner text, or nil.
	TextSlot() Keyed
}

// Buildable is implemented by composite nodes whose structure is assembled
// once, lazily, before the first render or compilation.
type Buildable interface {
	Build()
}

// Attribute is a single HTML attribute. An empty value renders as a bare
// boolean attribute.
type Attribute struct {
	Name  string
	Value string
}

// writeTo appends the attribute with a leading space.
func (a Attribute) writeTo(sb *strings.Builder) {
	sb.WriteByte(' ')
	sb.WriteString(a.Name)
	if a.Value == "" {
		return
	}
	sb.WriteString(`="`)
	sb.WriteString(internal.EscapeAttr(a.Value))
	sb.WriteByte('"')
}

// String renders the attribute as it appears inside an opening tag.
func (a Attribute) String() string {
	var sb strings.Builder
	a.writeTo(&sb)
	return sb.String()
}

// textNode renders escaped text with no surrounding markup.
type textNode struct {
	text string
}

// Text returns a component rendering s as escaped text.
func Text(s string) Component {
	return textNode{text: s}
}

func (n textNode) Render(_ *RenderContext) string {
	return internal.EscapeHTML(n.text)
}

// rawNode renders trusted HTML verbatim.
type rawNode struct {
	html string
}

// Raw returns a component rendering html without escaping.
// Only use it for markup the application controls.
func Raw(html string) Component {
	return rawNode{html: html}
}

func (n rawNode) Render(_ *RenderContext) string {
	return n.html
}

// renderAll concatenates the output of each component.
func renderAll(sb *strings.Builder, rc *RenderContext, components []Component) {
	for _, c := range components {
		if c == nil {
			continue
		}
		sb.WriteString(c.Render(rc))
	}
}
