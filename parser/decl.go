package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/token"
)

// parseTopLevel parses one top-level form: a struct, enum, or function
// declaration, a const declaration, or a bare expression statement (spec
// §4.E "Top-level forms"). On a syntax error it records a diagnostic and
// resynchronizes so later declarations are still parsed.
func (p *Parser) parseTopLevel() ast.Node {
	switch {
	case p.curIs(token.KwStruct):
		return p.parseStructDecl()
	case p.curIs(token.KwEnum):
		return p.parseEnumDecl()
	case p.curIs(token.KwF):
		return p.parseFuncDecl()
	case p.curIsIdentLike() && p.peek().Kind == token.Colon:
		return p.parseConstDecl()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseStructDecl() ast.Node {
	start := p.advance().Span // `struct`
	name, ok := p.expect(token.PascalIdent)
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(token.LBrace); !ok {
		p.synchronize()
		return nil
	}
	var fields []ast.StructField
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		fname, ok := p.expectName()
		if !ok {
			p.synchronize()
			return nil
		}
		p.expect(token.Colon)
		ftype := p.parseType()
		fields = append(fields, ast.StructField{Name: fname.Text, Type: ftype})
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBrace)
	return &ast.StructDecl{Base: ast.NewBase(joinSpan(start, end.Span)), Name: name.Text, Fields: fields}
}

func (p *Parser) parseEnumDecl() ast.Node {
	start := p.advance().Span // `enum`
	name, ok := p.expect(token.PascalIdent)
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(token.LBrace); !ok {
		p.synchronize()
		return nil
	}
	var variants []string
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		v, ok := p.expect(token.PascalIdent)
		if !ok {
			p.synchronize()
			return nil
		}
		variants = append(variants, v.Text)
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBrace)
	return &ast.EnumDecl{Base: ast.NewBase(joinSpan(start, end.Span)), Name: name.Text, Variants: variants}
}

func (p *Parser) parseFuncDecl() ast.Node {
	start := p.advance().Span // `f`
	name, ok := p.expectName()
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(token.LParen); !ok {
		p.synchronize()
		return nil
	}
	var params []ast.Param
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		pname, ok := p.expectName()
		if !ok {
			p.synchronize()
			return nil
		}
		p.expect(token.Colon)
		ptype := p.parseType()
		params = append(params, ast.Param{Name: pname.Text, Type: ptype})
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen)
	p.expect(token.Colon)
	retType := p.parseType()
	body := p.parseBlock()
	end := body.Span()
	return &ast.FuncDecl{
		Base:       ast.NewBase(joinSpan(start, end)),
		Name:       name.Text,
		Params:     params,
		ReturnType: retType,
		Fallible:   retType.IsResult(),
		Body:       body,
	}
}

// parseConstDecl parses `name:type = expr;`, valid both at the top level
// and as a statement inside a block (spec §4.E, §3 "Declaration").
func (p *Parser) parseConstDecl() ast.Node {
	name, _ := p.expectName()
	p.expect(token.Colon)
	declared := p.parseType()
	p.expect(token.Eq)
	init := p.parseExpr()
	semi, _ := p.expect(token.Semi)
	end := semi.Span
	if init != nil {
		end = init.Span()
	}
	return &ast.ConstDecl{
		Base:        ast.NewBase(joinSpan(name.Span, end)),
		Name:        name.Text,
		Declared:    declared,
		Initializer: init,
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start, _ := p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end, _ := p.expect(token.RBrace)
	return &ast.Block{Base: ast.NewBase(joinSpan(start.Span, end.Span)), Stmts: stmts}
}
