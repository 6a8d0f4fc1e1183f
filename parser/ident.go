package parser

import "github.com/nail-lang/nailc/token"

// The lexer hands back a fixed type-marker Kind for the eight letters
// exempt from the two-character minimum (spec §4.D.3) regardless of
// whether they appear in a type position or a name position: `a:i` is a
// value binding named "a" with declared type Int, but the "a" token itself
// carries Kind token.TyArray, not token.SnakeIdent. Every place the grammar
// binds or references a name must therefore accept these marker kinds too.
var identLikeKinds = map[token.Kind]bool{
	token.SnakeIdent: true,
	token.TyInt:      true,
	token.TyFloat:    true,
	token.TyString:   true,
	token.TyBool:     true,
	token.TyVoid:     true,
	token.TyArray:    true,
	token.TyHash:     true,
	token.TyError:    true,
	token.KwF:        true, // "f" lexes as KwF even outside a declaration position
}

func (p *Parser) curIsIdentLike() bool { return identLikeKinds[p.cur().Kind] }

// expectName consumes a name token, accepting both a plain SnakeIdent and
// any single-letter type-marker token used as a name (spec §4.D.3's
// exemption list).
func (p *Parser) expectName() (token.Token, bool) {
	if p.curIsIdentLike() {
		return p.advance(), true
	}
	p.errorf("expected an identifier, found %s", p.cur().Kind)
	return p.cur(), false
}
