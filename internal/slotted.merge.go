package internal

import (
	"strings"
)

// MergeLiterals collapses every maximal run of consecutive literal segments
// into a single literal segment. Non-literal segments keep their relative
// order. Runs whose merged text is empty are dropped entirely.
//
// literal reports whether a segment is a literal and returns its text;
// makeLiteral constructs a literal segment from merged text.
func MergeLiterals[S any](segments []S, literal func(S) (string, bool), makeLiteral func(string) S) []S {
	merged := make([]S, 0, len(segments))
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			merged = append(merged, makeLiteral(buf.String()))
			buf.Reset()
		}
	}

	for _, seg := range segments {
		if text, ok := literal(seg); ok {
			buf.WriteString(text)
			continue
		}
		flush()
		merged = append(merged, seg)
	}
	flush()

	return merged
}
