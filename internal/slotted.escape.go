package internal

import (
	"github.com/a-h/templ"
)

// EscapeHTML escapes text for an HTML body context.
// The characters <, >, &, ' and " are replaced by entities.
func EscapeHTML(s string) string {
	return templ.EscapeString(s)
}

// EscapeAttr escapes a value for use inside a double-quoted attribute.
func EscapeAttr(s string) string {
	return templ.EscapeString(s)
}
