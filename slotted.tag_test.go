package slotted

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_Render(t *testing.T) {
	tests := []struct {
		name     string
		node     Component
		expected string
	}{
		{
			name:     "empty element",
			node:     NewTag("div"),
			expected: "<div></div>",
		},
		{
			name:     "attributes in insertion order",
			node:     NewTag("a").WithAttribute("href", "/x").WithAttribute("target", "_blank"),
			expected: `<a href="/x" target="_blank"></a>`,
		},
		{
			name:     "attribute values escaped",
			node:     NewTag("div").WithAttribute("title", `"quoted" & <b>`),
			expected: `<div title="&#34;quoted&#34; &amp; &lt;b&gt;"></div>`,
		},
		{
			name:     "bare boolean attribute",
			node:     NewTag("input").WithAttribute("disabled", ""),
			expected: "<input disabled></input>",
		},
		{
			name:     "self-closing",
			node:     NewSelfClosingTag("img").WithAttribute("src", "x.png"),
			expected: `<img src="x.png" />`,
		},
		{
			name:     "self-closing ignores children and text",
			node:     NewSelfClosingTag("br").WithInnerText("lost").WithChild(Text("lost")),
			expected: `<br />`,
		},
		{
			name:     "inner text escaped",
			node:     NewTag("p").WithInnerText("<script>alert(1)</script>"),
			expected: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>",
		},
		{
			name:     "trusted inner html verbatim",
			node:     NewTag("p").WithUnsafeHTML("<em>hi</em>"),
			expected: "<p><em>hi</em></p>",
		},
		{
			name:     "inner text before children",
			node:     NewTag("p").WithInnerText("a").WithChild(NewTag("b").WithInnerText("c")),
			expected: "<p>a<b>c</b></p>",
		},
		{
			name:     "fragment emits only content",
			node:     Fragment(Text("Hello "), Text("World")),
			expected: "Hello World",
		},
		{
			name:     "nil children skipped",
			node:     NewTag("ul").WithChild(nil, NewTag("li"), nil),
			expected: "<ul><li></li></ul>",
		},
		{
			name:     "raw leaf",
			node:     Raw("<hr>"),
			expected: "<hr>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node.Render(nil))
		})
	}
}

func TestTag_WithAttributeReplacesAndMovesToEnd(t *testing.T) {
	tag := NewTag("div").
		WithAttribute("a", "1").
		WithAttribute("b", "2").
		WithAttribute("a", "3")

	assert.Equal(t, `<div b="2" a="3"></div>`, tag.Render(nil))
	assert.Equal(t, []Attribute{{Name: "b", Value: "2"}, {Name: "a", Value: "3"}}, tag.Attributes())
}

func TestTag_WithClass(t *testing.T) {
	t.Run("appends classes", func(t *testing.T) {
		tag := NewTag("div").WithClass("card").WithClass("wide")
		v, ok := tag.Attribute(AttrClass)
		assert.True(t, ok)
		assert.Equal(t, "card wide", v)
	})

	t.Run("ignores duplicates and blanks", func(t *testing.T) {
		tag := NewTag("div").WithClass("card").WithClass("card").WithClass("  ")
		v, _ := tag.Attribute(AttrClass)
		assert.Equal(t, "card", v)
	})

	t.Run("keeps class position", func(t *testing.T) {
		tag := NewTag("div").WithClass("a").WithID("x").WithClass("b")
		assert.Equal(t, `<div class="a b" id="x"></div>`, tag.Render(nil))
	})
}

func TestTag_TextSlotAndInnerTextAreExclusive(t *testing.T) {
	key := NewSlotKeyWithDefault("title", "Default")

	t.Run("text slot clears inner text", func(t *testing.T) {
		tag := NewTag("h1").WithInnerText("static").WithTextSlot(key)
		text, _ := tag.InnerText()
		assert.Empty(t, text)
		assert.NotNil(t, tag.TextSlot())
		assert.Equal(t, "<h1>Default</h1>", tag.Render(nil))
	})

	t.Run("inner text clears text slot", func(t *testing.T) {
		tag := NewTag("h1").WithTextSlot(key).WithInnerText("static")
		assert.Nil(t, tag.TextSlot())
		assert.Equal(t, "<h1>static</h1>", tag.Render(nil))
	})

	t.Run("unsafe html clears text slot", func(t *testing.T) {
		tag := NewTag("h1").WithTextSlot(key).WithUnsafeHTML("<i>x</i>")
		assert.Nil(t, tag.TextSlot())
		text, trusted := tag.InnerText()
		assert.Equal(t, "<i>x</i>", text)
		assert.True(t, trusted)
	})
}

func TestTag_TextSlotEscapesLiveValue(t *testing.T) {
	key := NewSlotKey[string]("title")
	tag := NewTag("h1").WithTextSlot(key)

	rc := NewRenderContext()
	Put(rc, key, "<script>")
	assert.Equal(t, "<h1>&lt;script&gt;</h1>", tag.Render(rc))
}

func TestAttribute_String(t *testing.T) {
	assert.Equal(t, ` id="main"`, Attribute{Name: "id", Value: "main"}.String())
	assert.Equal(t, ` hidden`, Attribute{Name: "hidden"}.String())
}

func TestComponentFunc(t *testing.T) {
	key := NewSlotKey[string]("who")
	c := ComponentFunc(func(rc *RenderContext) string {
		v, _, _ := Get(rc, key)
		return "hi " + v
	})

	rc := NewRenderContext()
	Put(rc, key, "there")
	assert.Equal(t, "hi there", c.Render(rc))
}

func TestText_Escapes(t *testing.T) {
	assert.Equal(t, "a &amp; b", Text("a & b").Render(nil))
	assert.Equal(t, "it&#39;s", Text("it's").Render(nil))
}
