// Package parser turns a token.Stream into an ast.File: a hand-written
// recursive-descent parser with Pratt-style operator precedence (spec §2
// Component E, §4.E). Its cursor shape — curToken/peekToken over an
// explicit token source, expect helpers that record a diagnostic and
// return a boolean, and a synchronize routine for error recovery — is
// grounded on hand-written compiler front-ends in the retrieval pack
// (e.g. a GMX-template compiler's internal/compiler/parser package); the
// teacher's own parser is goyacc-generated and has no hand-written
// counterpart to imitate directly.
package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/token"
)

// Parser walks a token.Stream by index, always holding the current token
// and one token of lookahead.
type Parser struct {
	toks []token.Token
	pos  int
	h    *span.Handler
}

// Parse builds an ast.File from stream, reporting syntax errors to h and
// recovering at statement/brace boundaries so a single input can surface
// more than one diagnostic (spec §4.E "Error recovery").
func Parse(stream *token.Stream, h *span.Handler) *ast.File {
	p := &Parser{toks: stream.Tokens, h: h}
	file := &ast.File{}
	for !p.curIs(token.EOF) {
		item := p.parseTopLevel()
		if item != nil {
			file.Items = append(file.Items, item)
		}
	}
	return file
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) curIs(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// expect advances past the current token if it has kind k, otherwise
// records a parse error and leaves the cursor in place.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.curIs(k) {
		return p.advance(), true
	}
	p.errorf("expected %s, found %s", k, p.cur().Kind)
	return p.cur(), false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.h.Errorf(span.ParseError, p.cur().Span, format, args...)
}

// synchronize discards tokens until the next statement terminator or a
// closing brace at the current nesting depth, so one malformed
// declaration doesn't cascade into spurious errors for the rest of the
// file (spec §4.E "Error recovery").
func (p *Parser) synchronize() {
	depth := 0
	for !p.curIs(token.EOF) {
		switch p.cur().Kind {
		case token.Semi:
			if depth == 0 {
				p.advance()
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		}
		p.advance()
	}
}

// joinSpan is a small helper used throughout the parser to build a node's
// span from its first to its last consumed token.
func joinSpan(start, end span.Span) span.Span { return start.Join(end) }
