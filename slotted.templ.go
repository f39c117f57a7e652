package slotted

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ToTempl exposes a component, bound to rc, as a templ.Component so it can be
// used inside templ views or served with templ.Handler.
func ToTempl(c Component, rc *RenderContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if c == nil {
			return nil
		}
		_, err := io.WriteString(w, c.Render(rc))
		return err
	})
}

// FromTempl wraps a templ.Component as a Component. The templ component is
// rendered with ctx; a render error produces empty output.
func FromTempl(ctx context.Context, c templ.Component) Component {
	return ComponentFunc(func(*RenderContext) string {
		if c == nil {
			return ""
		}
		var sb strings.Builder
		if err := c.Render(ctx, &sb); err != nil {
			return ""
		}
		return sb.String()
	})
}
