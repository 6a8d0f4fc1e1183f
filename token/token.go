package token

import "github.com/nail-lang/nailc/internal/span"

// Token is a tagged lexeme: a Kind, the Span of source it came from, and,
// for literals and identifiers, the decoded value.
type Token struct {
	Kind  Kind
	Span  span.Span
	Text  string // raw source text, e.g. "42", "`hi`", "total"
	Int   int64  // valid when Kind == IntLit
	Float float64
	Str   string // decoded string contents, valid when Kind == StringLit
	Bool  bool
}

// Stream is the output of the lexer: an ordered slice of tokens always
// ending in an EOF token (spec §4.D "Output").
type Stream struct {
	Tokens []Token
}

// At returns the token at i, or the trailing EOF token if i is past the end.
func (s *Stream) At(i int) Token {
	if i < 0 || i >= len(s.Tokens) {
		return s.Tokens[len(s.Tokens)-1]
	}
	return s.Tokens[i]
}
