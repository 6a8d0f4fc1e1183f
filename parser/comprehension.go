package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/token"
)

var comprehensionKinds = map[token.Kind]ast.ComprehensionKind{
	token.KwMap:    ast.CompMap,
	token.KwFilter: ast.CompFilter,
	token.KwReduce: ast.CompReduce,
	token.KwEach:   ast.CompEach,
	token.KwFind:   ast.CompFind,
	token.KwAll:    ast.CompAll,
	token.KwAny:    ast.CompAny,
}

// parseComprehension parses one of the seven named collection
// comprehensions, which share the syntax
// `KIND element-ident [index-ident] in source-expr [from seed-expr] { body }`
// (spec §4.E "Collection comprehension"). The `from` clause is only valid
// for `reduce`; the checker, not the parser, rejects it elsewhere so the
// diagnostic can cite the specific kind.
func (p *Parser) parseComprehension() ast.Expr {
	kindTok := p.advance()
	kind := comprehensionKinds[kindTok.Kind]

	elem, ok := p.expectName()
	if !ok {
		p.synchronize()
		return &ast.Comprehension{Base: ast.NewBase(kindTok.Span), Kind: kind}
	}
	indexName := ""
	if p.curIsIdentLike() {
		indexName = p.advance().Text
	}
	p.expect(token.KwIn)
	source := p.parseExpr()

	var seed ast.Expr
	if p.curIs(token.KwFrom) {
		p.advance()
		seed = p.parseExpr()
	}

	body := p.parseBlock()
	return &ast.Comprehension{
		Base:      ast.NewBase(joinSpan(kindTok.Span, body.Span())),
		Kind:      kind,
		ElemName:  elem.Text,
		IndexName: indexName,
		Source:    source,
		Seed:      seed,
		Body:      body,
	}
}
