package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/token"
)

// parseConditional parses `if { guard => block, ..., else => block }` into
// an ordered list of branches plus an optional else block (spec §4.E
// "Conditional").
func (p *Parser) parseConditional() ast.Expr {
	start, _ := p.expect(token.KwIf)
	p.expect(token.LBrace)

	var branches []ast.CondBranch
	var elseBlock *ast.Block
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		if p.curIs(token.KwElse) {
			p.advance()
			p.expect(token.FatArrow)
			elseBlock = p.parseBlock()
		} else {
			guard := p.parseExpr()
			p.expect(token.FatArrow)
			body := p.parseBlock()
			branches = append(branches, ast.CondBranch{Guard: guard, Body: body})
		}
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBrace)
	return &ast.Conditional{
		Base:     ast.NewBase(joinSpan(start.Span, end.Span)),
		Branches: branches,
		Else:     elseBlock,
	}
}
