package parser

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/token"
)

// parseExpr is the entry point into the precedence ladder of spec §4.E,
// loosest to tightest: logical-or, logical-and, equality, relational,
// additive, multiplicative, unary, pipe, postfix.
func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.curIs(token.OrOr) {
		p.advance()
		right := p.parseAnd()
		left = p.binary(left, ast.OpOr, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.curIs(token.AndAnd) {
		p.advance()
		right := p.parseEquality()
		left = p.binary(left, ast.OpAnd, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.curIs(token.EqEq) || p.curIs(token.NotEq) {
		op := ast.OpEq
		if p.cur().Kind == token.NotEq {
			op = ast.OpNotEq
		}
		p.advance()
		right := p.parseRelational()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.curIs(token.Lt) || p.curIs(token.LtEq) || p.curIs(token.Gt) || p.curIs(token.GtEq) {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Lt:
			op = ast.OpLt
		case token.LtEq:
			op = ast.OpLtEq
		case token.Gt:
			op = ast.OpGt
		case token.GtEq:
			op = ast.OpGtEq
		}
		p.advance()
		right := p.parseAdditive()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.curIs(token.Plus) || p.curIs(token.Minus) {
		op := ast.OpAdd
		if p.cur().Kind == token.Minus {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.curIs(token.Star) || p.curIs(token.Slash) || p.curIs(token.Percent) {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.Percent:
			op = ast.OpMod
		}
		p.advance()
		right := p.parseUnary()
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) binary(left ast.Expr, op ast.BinaryOp, right ast.Expr) ast.Expr {
	if left == nil || right == nil {
		return left
	}
	return &ast.Binary{Base: ast.NewBase(joinSpan(left.Span(), right.Span())), Op: op, Left: left, Right: right}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Minus:
		t := p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Base: ast.NewBase(joinSpan(t.Span, operand.Span())), Op: ast.OpNeg, Operand: operand}
	case token.Bang:
		t := p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Base: ast.NewBase(joinSpan(t.Span, operand.Span())), Op: ast.OpNot, Operand: operand}
	default:
		return p.parsePipe()
	}
}

// parsePipe implements `left |> call(args...)`: the right-hand side must be
// a call, and left becomes its final argument (spec §4.E precedence table).
func (p *Parser) parsePipe() ast.Expr {
	left := p.parsePostfix()
	for p.curIs(token.PipeArrow) {
		p.advance()
		rhs := p.parsePostfix()
		call, ok := rhs.(*ast.Call)
		if !ok {
			p.h.Errorf(span.ParseError, rhs.Span(), "pipe target must be a call")
			continue
		}
		call.Args = append(call.Args, left)
		call.AnyOfChoice = append(call.AnyOfChoice, -1)
		sp := joinSpan(left.Span(), call.Span())
		left = &ast.Pipe{Base: ast.NewBase(sp), Left: left, Call: call}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			expr = p.finishCall(expr)
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			end, _ := p.expect(token.RBracket)
			expr = &ast.IndexAccess{Base: ast.NewBase(joinSpan(expr.Span(), end.Span)), Receiver: expr, Index: idx}
		case token.Dot:
			p.advance()
			field, ok := p.expectName()
			if !ok {
				return expr
			}
			expr = &ast.FieldAccess{Base: ast.NewBase(joinSpan(expr.Span(), field.Span)), Receiver: expr, Field: field.Text}
		case token.ColonColon:
			p.advance()
			variant, ok := p.expect(token.PascalIdent)
			if !ok {
				return expr
			}
			ident, isIdent := expr.(*ast.Ident)
			enumName := ""
			if isIdent {
				enumName = ident.Name
			} else {
				p.h.Errorf(span.ParseError, expr.Span(), "enum variant access requires an enum name on the left of '::'")
			}
			expr = &ast.EnumVariant{
				Base:        ast.NewBase(joinSpan(expr.Span(), variant.Span)),
				EnumName:    enumName,
				VariantName: variant.Text,
			}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.advance() // `(`
	var args []ast.Expr
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpr())
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RParen)
	choice := make([]int, len(args))
	for i := range choice {
		choice[i] = -1
	}
	return &ast.Call{Base: ast.NewBase(joinSpan(callee.Span(), end.Span)), Callee: callee, Args: args, AnyOfChoice: choice}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Base: ast.NewBase(t.Span), Value: t.Int}
	case token.FloatLit:
		p.advance()
		return &ast.FloatLit{Base: ast.NewBase(t.Span), Value: t.Float}
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Base: ast.NewBase(t.Span), Value: t.Str}
	case token.BoolLit:
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(t.Span), Value: t.Bool}
	case token.SnakeIdent, token.TyInt, token.TyFloat, token.TyString, token.TyBool,
		token.TyVoid, token.TyArray, token.TyHash, token.TyError, token.KwF:
		p.advance()
		return &ast.Ident{Base: ast.NewBase(t.Span), Name: t.Text}
	case token.PascalIdent:
		p.advance()
		if p.curIs(token.LBrace) {
			return p.finishStructLit(t)
		}
		return &ast.Ident{Base: ast.NewBase(t.Span), Name: t.Text}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	case token.LBracket:
		return p.parseArrayLit()
	case token.KwIf:
		return p.parseConditional()
	case token.KwMap, token.KwFilter, token.KwReduce, token.KwEach, token.KwFind, token.KwAll, token.KwAny:
		return p.parseComprehension()
	default:
		p.errorf("unexpected token %s in expression", t.Kind)
		p.advance()
		return &ast.Ident{Base: ast.NewBase(t.Span), Name: "<error>"}
	}
}

func (p *Parser) parseArrayLit() ast.Expr {
	start, _ := p.expect(token.LBracket)
	var elems []ast.Expr
	for !p.curIs(token.RBracket) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpr())
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBracket)
	return &ast.ArrayLit{Base: ast.NewBase(joinSpan(start.Span, end.Span)), Elems: elems}
}

func (p *Parser) finishStructLit(name token.Token) ast.Expr {
	p.expect(token.LBrace)
	var fields []ast.StructLitField
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		fname, ok := p.expectName()
		if !ok {
			break
		}
		p.expect(token.Colon)
		val := p.parseExpr()
		fields = append(fields, ast.StructLitField{Name: fname.Text, Value: val})
		if p.curIs(token.Comma) {
			p.advance()
		}
	}
	end, _ := p.expect(token.RBrace)
	return &ast.StructLit{Base: ast.NewBase(joinSpan(name.Span, end.Span)), Name: name.Text, Fields: fields}
}
