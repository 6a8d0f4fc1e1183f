package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nail-lang/nailc/token"
)

type memOpener map[string][]byte

func (m memOpener) Open(path string) ([]byte, error) {
	if data, ok := m[path]; ok {
		return data, nil
	}
	return nil, &pathError{path}
}

type pathError struct{ path string }

func (e *pathError) Error() string { return "no such file: " + e.path }

func kinds(stream *token.Stream) []token.Kind {
	out := make([]token.Kind, len(stream.Tokens))
	for i, t := range stream.Tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexArithmeticAndPrint(t *testing.T) {
	src := "result:i = 2 + 3 * 4;\nprint(result);\n"
	opener := memOpener{"main.nail": []byte(src)}
	stream, h := Lex(opener, "", "main.nail")
	require.Empty(t, h.Diagnostics())
	require.Equal(t, []token.Kind{
		token.SnakeIdent, token.Colon, token.TyInt, token.Eq,
		token.IntLit, token.Plus, token.IntLit, token.Star, token.IntLit, token.Semi,
		token.SnakeIdent, token.LParen, token.SnakeIdent, token.RParen, token.Semi,
		token.EOF,
	}, kinds(stream))
}

func TestLexSingleLetterIdentifierRejected(t *testing.T) {
	opener := memOpener{"main.nail": []byte("x:i = 1;")}
	_, h := Lex(opener, "", "main.nail")
	require.True(t, h.Failed())
	require.Contains(t, h.Diagnostics()[0].Message, "at least two characters")
}

func TestLexTypeMarkerSingleLetterAllowed(t *testing.T) {
	opener := memOpener{"main.nail": []byte("f main():v { r; }")}
	_, h := Lex(opener, "", "main.nail")
	require.Empty(t, h.Diagnostics())
}

func TestLexFloatRequiresDigitsOnBothSides(t *testing.T) {
	opener := memOpener{"main.nail": []byte("num:f = 1.;")}
	_, h := Lex(opener, "", "main.nail")
	require.True(t, h.Failed())
}

func TestLexStringEscapes(t *testing.T) {
	opener := memOpener{"main.nail": []byte("s:s = `a\\nb\\tc\\`d\\\\e`;")}
	stream, h := Lex(opener, "", "main.nail")
	require.Empty(t, h.Diagnostics())
	var strTok token.Token
	for _, tk := range stream.Tokens {
		if tk.Kind == token.StringLit {
			strTok = tk
		}
	}
	require.Equal(t, "a\nb\tc`d\\e", strTok.Str)
}

func TestLexIncludeExpansion(t *testing.T) {
	opener := memOpener{
		"main.nail": []byte("insert(`lib.nail`)\nprint(helper);\n"),
		"lib.nail":  []byte("helper:i = 1;\n"),
	}
	stream, h := Lex(opener, "", "main.nail")
	require.Empty(t, h.Diagnostics())

	var sawHelperDeclFromLib bool
	for _, tk := range stream.Tokens {
		if tk.Text == "helper" && tk.Span.File.Path() == "lib.nail" {
			sawHelperDeclFromLib = true
		}
	}
	require.True(t, sawHelperDeclFromLib, "tokens from the included file must carry the included file's span")
}

func TestLexIncludeCycleDetected(t *testing.T) {
	opener := memOpener{
		"a.nail": []byte("insert(`b.nail`)\n"),
		"b.nail": []byte("insert(`a.nail`)\n"),
	}
	_, h := Lex(opener, "", "a.nail")
	require.True(t, h.Failed())
	found := false
	for _, d := range h.Diagnostics() {
		if strings.Contains(d.Message, "cycle") {
			found = true
		}
	}
	require.True(t, found)
}

func TestLexCommentsPreserveSpans(t *testing.T) {
	opener := memOpener{"main.nail": []byte("xx:i = 1; // comment\nyy:i = 2;\n")}
	stream, h := Lex(opener, "", "main.nail")
	require.Empty(t, h.Diagnostics())
	require.Contains(t, kinds(stream), token.IntLit)
}
