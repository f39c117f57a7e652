package slotted

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTempl(t *testing.T) {
	rc := NewRenderContext()
	Put(rc, testName, "templ")

	var sb strings.Builder
	err := ToTempl(NewTag("b").WithChild(NewSlot(testName)), rc).Render(context.Background(), &sb)
	require.NoError(t, err)
	assert.Equal(t, "<b>templ</b>", sb.String())

	sb.Reset()
	require.NoError(t, ToTempl(nil, rc).Render(context.Background(), &sb))
	assert.Empty(t, sb.String())
}

func TestFromTempl(t *testing.T) {
	ctx := context.Background()

	t.Run("renders inside a template", func(t *testing.T) {
		inner := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<em>from templ</em>")
			return err
		})
		tmpl := Compile(NewTag("div").WithChild(FromTempl(ctx, inner)))
		assert.Equal(t, "<div><em>from templ</em></div>", tmpl.Render(nil))
	})

	t.Run("render error yields empty output", func(t *testing.T) {
		failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
			return errors.New("boom")
		})
		assert.Empty(t, FromTempl(ctx, failing).Render(nil))
	})

	t.Run("nil component", func(t *testing.T) {
		assert.Empty(t, FromTempl(ctx, nil).Render(nil))
	})

	t.Run("round trip", func(t *testing.T) {
		c := FromTempl(ctx, ToTempl(Text("<x>"), nil))
		assert.Equal(t, "&lt;x&gt;", c.Render(nil))
	})
}
