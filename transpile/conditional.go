package transpile

import (
	"fmt"
	"strings"

	"github.com/nail-lang/nailc/ast"
)

// emitConditionalStmt renders a Conditional used in statement position as a
// plain Rust if/else-if/else chain (spec §4.G "Conditional").
func (e *emitter) emitConditionalStmt(c *ast.Conditional) {
	for i, br := range c.Branches {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		e.writef("%s %s {\n", kw, e.emitExpr(br.Guard))
		e.indent++
		e.emitStmts(br.Body.Stmts)
		e.indent--
	}
	if c.Else != nil {
		e.writeln("} else {")
		e.indent++
		e.emitStmts(c.Else.Stmts)
		e.indent--
	}
	e.writeln("}")
}

// emitConditionalExpr renders a Conditional used in expression position.
// Each branch's tail statement (a return, per the grammar's only allowed
// tail form) becomes the block's trailing expression, matching Rust's
// if/else-as-expression semantics directly — no closure wrapper needed,
// unlike comprehensions.
func (e *emitter) emitConditionalExpr(c *ast.Conditional) string {
	var b strings.Builder
	for i, br := range c.Branches {
		if i > 0 {
			b.WriteString(" else ")
		}
		fmt.Fprintf(&b, "if %s ", e.emitExpr(br.Guard))
		b.WriteString(e.blockExprString(br.Body))
	}
	if c.Else != nil {
		b.WriteString(" else ")
		b.WriteString(e.blockExprString(c.Else))
	}
	return b.String()
}

// blockExprString renders a block whose tail statement is a return as a
// Rust block expression `{ stmts...; tail_expr }`.
func (e *emitter) blockExprString(blk *ast.Block) string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, s := range blk.Stmts {
		if ret, ok := s.(*ast.ReturnStmt); ok {
			if ret.Value != nil {
				b.WriteString(e.emitExpr(ret.Value))
			} else {
				b.WriteString("()")
			}
			continue
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(e.stmtExprString(s))
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

// stmtExprString renders a non-tail statement inline for use inside a
// block-expression string (const decls and bare expression statements are
// the only forms the grammar allows before a branch's tail return).
func (e *emitter) stmtExprString(s ast.Stmt) string {
	switch x := s.(type) {
	case *ast.ConstDecl:
		return "let " + x.Name + " = " + e.emitExpr(x.Initializer)
	case *ast.ExprStmt:
		if x.X == nil {
			return ""
		}
		return e.emitExpr(x.X)
	default:
		return ""
	}
}
