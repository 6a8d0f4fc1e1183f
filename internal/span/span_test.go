package span

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilePos(t *testing.T) {
	data := []byte("result:i = 2;\nprint(result);\n")
	f := NewFile(0, "main.nail", data)
	for i, b := range data {
		if b == '\n' {
			f.AddLine(i + 1)
		}
	}

	pos := f.Pos(0)
	require.Equal(t, Pos{Line: 1, Col: 1}, pos)

	pos = f.Pos(14) // 'p' of print, start of line 2
	require.Equal(t, Pos{Line: 2, Col: 1}, pos)
}

func TestSpanJoin(t *testing.T) {
	data := []byte("a + b")
	f := NewFile(0, "x.nail", data)
	left := NewSpan(f, 0, 1)
	right := NewSpan(f, 4, 5)
	joined := left.Join(right)
	require.Equal(t, "a + b", joined.Text())
}

func TestHandlerAccumulates(t *testing.T) {
	data := []byte("x = 1;")
	f := NewFile(0, "x.nail", data)
	h := NewHandler()
	require.False(t, h.Failed())
	h.Errorf(ParseError, NewSpan(f, 0, 1), "unexpected token %q", "x")
	h.Errorf(NameError, NewSpan(f, 4, 5), "undeclared identifier")
	require.True(t, h.Failed())
	require.Len(t, h.Diagnostics(), 2)
}

func TestRenderIncludesCaret(t *testing.T) {
	data := []byte("r:i = 1;\n")
	f := NewFile(0, "x.nail", data)
	f.AddLine(9)
	d := Diagnostic{
		Severity: Error,
		Kind:     LexError,
		Message:  "identifier must be at least two characters",
		Primary:  NewSpan(f, 0, 1),
	}
	out := Render(d)
	require.Contains(t, out, "x.nail:1:1: error: identifier must be at least two characters")
	require.Contains(t, out, "^")
}
