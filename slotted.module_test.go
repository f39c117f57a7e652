package slotted

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_BuildOnce(t *testing.T) {
	calls := 0
	m := NewModule("section", func(m *Module) {
		calls++
		m.WithChild(NewTag("h2").WithInnerText(m.Title()))
	}).WithTitle("Overview")

	assert.False(t, m.IsBuilt())
	m.Build()
	m.Build()
	assert.True(t, m.IsBuilt())
	assert.Equal(t, 1, calls)

	m.Render(nil)
	m.Render(NewRenderContext())
	assert.Equal(t, 1, calls)
	assert.Len(t, m.Children(), 1)
}

func TestModule_RenderBuildsOnFirstRender(t *testing.T) {
	m := NewModule("div", func(m *Module) {
		m.WithChild(Text("content"))
	}).WithModuleID("stats")

	assert.Equal(t, `<div id="stats" class="module">content</div>`, m.Render(nil))
	assert.Equal(t, "stats", m.ModuleID())
}

func TestModule_PropertiesAfterBuildAreNotReflected(t *testing.T) {
	m := NewModule("div", func(m *Module) {
		m.WithChild(Text(m.Title()))
	}).WithTitle("before")

	first := m.Render(nil)
	m.WithTitle("after")
	assert.Equal(t, first, m.Render(nil))
	assert.Equal(t, "after", m.Title())
}

func TestModule_Rebuild(t *testing.T) {
	calls := 0
	m := NewModule("div", func(m *Module) {
		calls++
		m.WithChild(Text(m.Title()))
	}).WithTitle("v1")

	assert.Equal(t, `<div class="module">v1</div>`, m.Render(nil))

	m.WithTitle("v2")
	m.Rebuild()
	assert.Equal(t, 2, calls)
	assert.True(t, m.IsBuilt())
	assert.Len(t, m.Children(), 1)
	assert.Equal(t, `<div class="module">v2</div>`, m.Render(nil))
}

func TestModule_ConcurrentBuild(t *testing.T) {
	var calls atomic.Int32
	m := NewModule("div", func(m *Module) {
		calls.Add(1)
		m.WithChild(Text("x"))
	})

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, `<div class="module">x</div>`, m.Render(nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestModule_NilBuilder(t *testing.T) {
	m := NewModule("aside", nil)
	assert.Equal(t, `<aside class="module"></aside>`, m.Render(nil))
}

func TestModule_IsTaggedNode(t *testing.T) {
	var node Component = NewModule("nav", nil)
	tagged, ok := node.(TaggedNode)
	require.True(t, ok)
	assert.Equal(t, "nav", tagged.TagName())

	_, ok = node.(Buildable)
	assert.True(t, ok)
}
