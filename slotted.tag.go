package slotted

import (
	"strings"

	"github.com/itsatony/go-slotted/internal"
)

// Tag is a generic HTML element: a name, ordered attributes, children and
// optional inner content. Builder methods return the receiver for chaining.
//
// A Tag is not safe for concurrent mutation. Once it is handed to Compile or
// shared between requests it must be treated as read-only.
type Tag struct {
	name        string
	attrs       []Attribute
	children    []Component
	selfClosing bool
	innerText   string
	trusted     bool
	textSlot    Keyed
}

var _ TaggedNode = (*Tag)(nil)

// NewTag creates an element with the given name.
func NewTag(name string) *Tag {
	return &Tag{name: name}
}

// NewSelfClosingTag creates a void element such as img or br.
func NewSelfClosingTag(name string) *Tag {
	return &Tag{name: name, selfClosing: true}
}

// Fragment groups children without emitting any markup of its own.
func Fragment(children ...Component) *Tag {
	return (&Tag{}).WithChild(children...)
}

// WithAttribute sets an attribute. An existing attribute of the same name is
// removed first, so the new value is rendered last.
func (t *Tag) WithAttribute(name, value string) *Tag {
	t.removeAttribute(name)
	t.attrs = append(t.attrs, Attribute{Name: name, Value: value})
	return t
}

// WithClass appends a class to the class attribute.
func (t *Tag) WithClass(class string) *Tag {
	t.addClass(class)
	return t
}

// WithID sets the id attribute.
func (t *Tag) WithID(id string) *Tag {
	return t.WithAttribute(AttrID, id)
}

// WithChild appends children in order. Nil components are ignored.
func (t *Tag) WithChild(children ...Component) *Tag {
	for _, c := range children {
		if c != nil {
			t.children = append(t.children, c)
		}
	}
	return t
}

// WithInnerText sets static text, escaped on output. It clears any text slot.
func (t *Tag) WithInnerText(text string) *Tag {
	t.innerText = text
	t.trusted = false
	t.textSlot = nil
	return t
}

// WithUnsafeHTML sets inner content that is emitted without escaping.
// Never pass user-provided content here.
func (t *Tag) WithUnsafeHTML(html string) *Tag {
	t.innerText = html
	t.trusted = true
	t.textSlot = nil
	return t
}

// WithTextSlot binds the inner text to a slot. The resolved value is always
// escaped. It clears any static inner text.
func (t *Tag) WithTextSlot(key SlotKey[string]) *Tag {
	t.textSlot = key
	t.innerText = ""
	t.trusted = false
	return t
}

// TagName returns the element name.
func (t *Tag) TagName() string { return t.name }

// Attributes returns a copy of the attributes in insertion order.
func (t *Tag) Attributes() []Attribute {
	out := make([]Attribute, len(t.attrs))
	copy(out, t.attrs)
	return out
}

// Attribute returns the value of the named attribute.
func (t *Tag) Attribute(name string) (string, bool) {
	for _, a := range t.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// IsSelfClosing reports whether the element is a void element.
func (t *Tag) IsSelfClosing() bool { return t.selfClosing }

// Children returns the child components.
func (t *Tag) Children() []Component { return t.children }

// InnerText returns the static inner text and whether it is trusted HTML.
func (t *Tag) InnerText() (string, bool) { return t.innerText, t.trusted }

// TextSlot returns the bound text slot key, or nil.
func (t *Tag) TextSlot() Keyed { return t.textSlot }

// Render writes the element directly, resolving any slots against rc.
func (t *Tag) Render(rc *RenderContext) string {
	if t == nil {
		return ""
	}
	var sb strings.Builder

	if t.name != "" {
		sb.WriteString(openTag(t.name, t.attrs, t.selfClosing))
		if t.selfClosing {
			return sb.String()
		}
	}

	if t.textSlot != nil {
		sb.WriteString(rc.resolve(t.textSlot, resolveText))
	} else if t.innerText != "" {
		sb.WriteString(innerContent(t.innerText, t.trusted))
	}

	renderAll(&sb, rc, t.children)

	if t.name != "" {
		sb.WriteString(closeTag(t.name))
	}
	return sb.String()
}

// clearChildren drops all children. Used by Module.Rebuild.
func (t *Tag) clearChildren() {
	t.children = nil
}

func (t *Tag) removeAttribute(name string) {
	kept := t.attrs[:0]
	for _, a := range t.attrs {
		if a.Name != name {
			kept = append(kept, a)
		}
	}
	t.attrs = kept
}

func (t *Tag) addClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" {
		return
	}
	existing, ok := t.Attribute(AttrClass)
	if !ok || existing == "" {
		t.WithAttribute(AttrClass, class)
		return
	}
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	// keep the class attribute in place
	for i := range t.attrs {
		if t.attrs[i].Name == AttrClass {
			t.attrs[i].Value = existing + " " + class
			return
		}
	}
}

// openTag renders "<name attrs>" or "<name attrs />".
func openTag(name string, attrs []Attribute, selfClosing bool) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, a := range attrs {
		a.writeTo(&sb)
	}
	if selfClosing {
		sb.WriteString(" />")
	} else {
		sb.WriteByte('>')
	}
	return sb.String()
}

func closeTag(name string) string {
	return "</" + name + ">"
}

func innerContent(text string, trusted bool) string {
	if trusted {
		return text
	}
	return internal.EscapeHTML(text)
}
