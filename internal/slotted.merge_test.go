package internal

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSeg is a minimal segment: literal text or an opaque marker.
type testSeg struct {
	text    string
	literal bool
}

func testLiteral(s testSeg) (string, bool) { return s.text, s.literal }
func testMake(text string) testSeg         { return testSeg{text: text, literal: true} }

func execSegs(segs []testSeg) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.literal {
			sb.WriteString(s.text)
		} else {
			sb.WriteString("[" + s.text + "]")
		}
	}
	return sb.String()
}

func TestMergeLiterals(t *testing.T) {
	t.Run("merges adjacent literals", func(t *testing.T) {
		in := []testSeg{testMake("<div>"), testMake("<p>"), {text: "slot"}, testMake("</p>"), testMake("</div>")}
		out := MergeLiterals(in, testLiteral, testMake)

		require.Len(t, out, 3)
		assert.Equal(t, "<div><p>", out[0].text)
		assert.False(t, out[1].literal)
		assert.Equal(t, "</p></div>", out[2].text)
	})

	t.Run("keeps consecutive non-literals apart", func(t *testing.T) {
		in := []testSeg{{text: "a"}, {text: "b"}}
		out := MergeLiterals(in, testLiteral, testMake)
		assert.Equal(t, in, out)
	})

	t.Run("drops empty literal runs", func(t *testing.T) {
		in := []testSeg{testMake(""), {text: "a"}, testMake(""), testMake("")}
		out := MergeLiterals(in, testLiteral, testMake)
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].text)
	})

	t.Run("nil input", func(t *testing.T) {
		out := MergeLiterals[testSeg](nil, testLiteral, testMake)
		assert.Empty(t, out)
	})
}

func TestMergeLiterals_PreservesOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := rng.Intn(20)
		in := make([]testSeg, 0, n)
		for j := 0; j < n; j++ {
			if rng.Intn(3) == 0 {
				in = append(in, testSeg{text: string(rune('a' + rng.Intn(26)))})
			} else {
				in = append(in, testMake(strings.Repeat("x", rng.Intn(3))))
			}
		}

		out := MergeLiterals(in, testLiteral, testMake)
		assert.Equal(t, execSegs(in), execSegs(out))
		assert.LessOrEqual(t, len(out), len(in))

		// no two literals remain adjacent
		for j := 1; j < len(out); j++ {
			assert.False(t, out[j-1].literal && out[j].literal)
		}
	}
}
