package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/token"
)

// parseType parses a type annotation: a base type optionally suffixed with
// `!e` to mark it fallible (spec §3 "Type", §4.E parameter/return syntax).
func (p *Parser) parseType() ast.Type {
	base := p.parseBaseType()
	if p.curIs(token.Bang) {
		p.advance()
		if _, ok := p.expect(token.TyError); !ok {
			return base
		}
		return ast.Result(base)
	}
	return base
}

func (p *Parser) parseBaseType() ast.Type {
	switch p.cur().Kind {
	case token.TyInt:
		p.advance()
		return ast.Primitive(ast.Int)
	case token.TyFloat, token.KwF:
		p.advance()
		return ast.Primitive(ast.Float)
	case token.TyString:
		p.advance()
		return ast.Primitive(ast.String)
	case token.TyBool:
		p.advance()
		return ast.Primitive(ast.Bool)
	case token.TyVoid:
		p.advance()
		return ast.Primitive(ast.Void)
	case token.TyError:
		p.advance()
		return ast.Primitive(ast.ErrorPrim)
	case token.TyArray:
		p.advance()
		p.expect(token.Colon)
		elem := p.parseType()
		return ast.Array(elem)
	case token.TyHash:
		p.advance()
		p.expect(token.Colon)
		key := p.parseType()
		p.expect(token.Colon)
		val := p.parseType()
		return ast.HashMap(key, val)
	case token.PascalIdent:
		name := p.advance().Text
		// Unresolved until the checker looks it up against the struct/enum
		// symbol table (ast.Type doc comment on TagUnresolved).
		return ast.Unresolved(name)
	default:
		p.errorf("expected a type, found %s", p.cur().Kind)
		return ast.Primitive(ast.PrimInvalid)
	}
}
