package slotted

import (
	"strings"

	"github.com/itsatony/go-slotted/internal"
)

// Template is a compiled component tree: a flat list of segments executed in
// order against a RenderContext. A Template never re-walks its source tree.
// It is immutable and safe for concurrent Render calls with distinct contexts.
type Template struct {
	segments []segment
	stats    TemplateStats
	slots    []string
	sizeHint int
}

// TemplateStats describes the segment program of a compiled template.
type TemplateStats struct {
	Literals    int `json:"literals"`
	Slots       int `json:"slots"`
	TextSlots   int `json:"text_slots"`
	Components  int `json:"components"`
	BeforeMerge int `json:"before_merge"`
}

// Total returns the number of segments after merging.
func (s TemplateStats) Total() int {
	return s.Literals + s.Slots + s.TextSlots + s.Components
}

// segment is one instruction of a compiled template.
type segment interface {
	appendTo(sb *strings.Builder, rc *RenderContext)
}

// literalSegment is pre-rendered markup.
type literalSegment string

func (s literalSegment) appendTo(sb *strings.Builder, _ *RenderContext) {
	sb.WriteString(string(s))
}

// slotSegment resolves a Slot node.
type slotSegment struct {
	key Keyed
}

func (s slotSegment) appendTo(sb *strings.Builder, rc *RenderContext) {
	sb.WriteString(rc.resolve(s.key, resolveValue))
}

// textSlotSegment resolves a tag's text slot. Live values are always escaped.
type textSlotSegment struct {
	key Keyed
}

func (s textSlotSegment) appendTo(sb *strings.Builder, rc *RenderContext) {
	sb.WriteString(rc.resolve(s.key, resolveText))
}

// componentSegment delegates to a node the compiler does not specialize.
type componentSegment struct {
	component Component
}

func (s componentSegment) appendTo(sb *strings.Builder, rc *RenderContext) {
	sb.WriteString(s.component.Render(rc))
}

// Compile walks root once and returns the optimized template.
// Composite nodes are built before they are read.
func Compile(root Component) *Template {
	return newTemplate(compileSegments(root), true)
}

// compileSegments runs the tree walk without the merge pass.
func compileSegments(root Component) []segment {
	c := &compiler{}
	c.walk(root)
	return c.segments
}

func newTemplate(segments []segment, optimize bool) *Template {
	before := len(segments)
	if optimize {
		segments = internal.MergeLiterals(segments, literalText, func(s string) segment {
			return literalSegment(s)
		})
	}

	t := &Template{segments: segments}
	t.stats.BeforeMerge = before
	seen := make(map[string]struct{})
	addSlot := func(k Keyed) {
		if _, ok := seen[k.Name()]; ok {
			return
		}
		seen[k.Name()] = struct{}{}
		t.slots = append(t.slots, k.Name())
	}

	for _, seg := range segments {
		switch s := seg.(type) {
		case literalSegment:
			t.stats.Literals++
			t.sizeHint += len(s)
		case slotSegment:
			t.stats.Slots++
			addSlot(s.key)
		case textSlotSegment:
			t.stats.TextSlots++
			addSlot(s.key)
		case componentSegment:
			t.stats.Components++
		}
	}
	return t
}

func literalText(s segment) (string, bool) {
	lit, ok := s.(literalSegment)
	return string(lit), ok
}

// Render executes the segment program against rc. A nil rc is treated as
// empty. Under PolicyCompileOnFirstHit the context is mutated.
func (t *Template) Render(rc *RenderContext) string {
	var sb strings.Builder
	sb.Grow(t.sizeHint)
	for _, seg := range t.segments {
		seg.appendTo(&sb, rc)
	}
	return sb.String()
}

// SegmentCount returns the number of segments after merging.
func (t *Template) SegmentCount() int {
	return len(t.segments)
}

// Slots returns the distinct slot names the template reads, in first-use order.
func (t *Template) Slots() []string {
	out := make([]string, len(t.slots))
	copy(out, t.slots)
	return out
}

// Stats returns segment counts.
func (t *Template) Stats() TemplateStats {
	return t.stats
}

type compiler struct {
	segments []segment
}

func (c *compiler) emit(s segment) {
	c.segments = append(c.segments, s)
}

func (c *compiler) literal(s string) {
	if s != "" {
		c.emit(literalSegment(s))
	}
}

func (c *compiler) walk(node Component) {
	if node == nil {
		return
	}
	if b, ok := node.(Buildable); ok {
		b.Build()
	}

	switch n := node.(type) {
	case *Slot:
		c.emit(slotSegment{key: n.Key()})
	case TaggedNode:
		c.walkTagged(n)
	default:
		c.emit(componentSegment{component: node})
	}
}

func (c *compiler) walkTagged(n TaggedNode) {
	name := n.TagName()
	if name != "" {
		c.literal(openTag(name, n.Attributes(), n.IsSelfClosing()))
		if n.IsSelfClosing() {
			return
		}
	}

	if key := n.TextSlot(); key != nil {
		c.emit(textSlotSegment{key: key})
	} else if text, trusted := n.InnerText(); text != "" {
		c.literal(innerContent(text, trusted))
	}

	for _, child := range n.Children() {
		c.walk(child)
	}

	if name != "" {
		c.literal(closeTag(name))
	}
}
