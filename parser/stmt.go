package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/token"
)

// parseStmt parses one statement inside a block (spec §4.E "Iteration",
// "Concurrency forms", and the control-transfer/const forms of §3).
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.curIs(token.KwFor):
		return p.parseForStmt()
	case p.curIs(token.KwWhile):
		return p.parseWhileStmt()
	case p.curIs(token.KwLoop):
		return p.parseLoopStmt()
	case p.curIs(token.KwParallel):
		return p.parseParallelStmt()
	case p.curIs(token.KwSpawn):
		return p.parseSpawnStmt()
	case p.curIs(token.KwBreak):
		t := p.advance()
		semi, _ := p.expect(token.Semi)
		return &ast.BreakStmt{Base: ast.NewBase(joinSpan(t.Span, semi.Span))}
	case p.curIs(token.KwContinue):
		t := p.advance()
		semi, _ := p.expect(token.Semi)
		return &ast.ContinueStmt{Base: ast.NewBase(joinSpan(t.Span, semi.Span))}
	case p.curIs(token.KwReturn):
		return p.parseReturnStmt()
	case p.curIs(token.KwYield):
		return p.parseYieldStmt()
	case p.curIsIdentLike() && p.peek().Kind == token.Colon:
		decl := p.parseConstDecl()
		return decl.(*ast.ConstDecl)
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.advance().Span // `for`
	name, ok := p.expectName()
	if !ok {
		p.synchronize()
		return &ast.ExprStmt{Base: ast.NewBase(start)}
	}
	p.expect(token.KwIn)
	src := p.parseExpr()
	body := p.parseBlock()
	return &ast.ForStmt{Base: ast.NewBase(joinSpan(start, body.Span())), ElemName: name.Text, Source: src, Body: body}
}

// parseWhileStmt parses `while guard [from init] max limit { body }`. The
// max clause is mandatory (spec §4.E); its absence is reported but parsing
// still recovers with a nil Limit so the rest of the file can be checked.
func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.advance().Span // `while`
	guard := p.parseExpr()
	var init ast.Expr
	if p.curIs(token.KwFrom) {
		p.advance()
		init = p.parseExpr()
	}
	var limit ast.Expr
	if p.curIs(token.KwMax) {
		p.advance()
		limit = p.parseExpr()
	} else {
		p.errorf("while loop is missing its mandatory max clause")
	}
	body := p.parseBlock()
	return &ast.WhileStmt{
		Base:  ast.NewBase(joinSpan(start, body.Span())),
		Guard: guard,
		Init:  init,
		Limit: limit,
		Body:  body,
	}
}

func (p *Parser) parseLoopStmt() ast.Stmt {
	start := p.advance().Span // `loop`
	indexName := ""
	if p.curIsIdentLike() {
		indexName = p.advance().Text
	}
	body := p.parseBlock()
	return &ast.LoopStmt{Base: ast.NewBase(joinSpan(start, body.Span())), IndexName: indexName, Body: body}
}

func (p *Parser) parseParallelStmt() ast.Stmt {
	start, _ := p.expect(token.KwParallel)
	p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end, _ := p.expect(token.RBrace)
	return &ast.ParallelStmt{Base: ast.NewBase(joinSpan(start.Span, end.Span)), Stmts: stmts}
}

func (p *Parser) parseSpawnStmt() ast.Stmt {
	start, _ := p.expect(token.KwSpawn)
	body := p.parseBlock()
	return &ast.SpawnStmt{Base: ast.NewBase(joinSpan(start.Span, body.Span())), Body: body}
}

// parseReturnStmt parses `r expr;` or, in a Void function, bare `r;`
// (spec §3 "Return statement", §4.F).
func (p *Parser) parseReturnStmt() ast.Stmt {
	start, _ := p.expect(token.KwReturn)
	if p.curIs(token.Semi) {
		semi := p.advance()
		return &ast.ReturnStmt{Base: ast.NewBase(joinSpan(start.Span, semi.Span))}
	}
	val := p.parseExpr()
	semi, _ := p.expect(token.Semi)
	return &ast.ReturnStmt{Base: ast.NewBase(joinSpan(start.Span, semi.Span)), Value: val}
}

// parseYieldStmt parses `y expr;`, legal only inside a comprehension body
// (enforced by the checker, not the parser, per spec §4.F).
func (p *Parser) parseYieldStmt() ast.Stmt {
	start, _ := p.expect(token.KwYield)
	if p.curIs(token.Semi) {
		semi := p.advance()
		return &ast.YieldStmt{Base: ast.NewBase(joinSpan(start.Span, semi.Span))}
	}
	val := p.parseExpr()
	semi, _ := p.expect(token.Semi)
	return &ast.YieldStmt{Base: ast.NewBase(joinSpan(start.Span, semi.Span)), Value: val}
}

// parseExprStmt parses any expression used as a statement. A trailing
// semicolon is required except after a block-bodied expression (a
// conditional or a comprehension), whose closing brace already ends the
// statement (spec §4.E scenario of a bare top-level `if { ... }`).
func (p *Parser) parseExprStmt() ast.Stmt {
	x := p.parseExpr()
	if x == nil {
		p.synchronize()
		return &ast.ExprStmt{Base: ast.NewBase(p.cur().Span)}
	}
	end := x.Span()
	switch x.Kind() {
	case ast.KindConditional, ast.KindComprehension:
		if p.curIs(token.Semi) {
			end = p.advance().Span
		}
	default:
		if semi, ok := p.expect(token.Semi); ok {
			end = semi.Span
		}
	}
	return &ast.ExprStmt{Base: ast.NewBase(joinSpan(x.Span(), end)), X: x}
}
