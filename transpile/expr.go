package transpile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nail-lang/nailc/ast"
)

// emitExpr renders e as a Rust expression (spec §4.G "Lowering rules").
// Comprehensions are expression-valued in Nail but a Rust `for` loop
// evaluates to `()`, so they are wrapped in an immediately-invoked closure
// here; conditionals become a plain `if`/`else` expression
// (emitConditionalExpr). emitStmt special-cases a conditional or an `each`
// comprehension in statement position and emits the plain control-flow shape.
func (e *emitter) emitExpr(x ast.Expr) string {
	switch v := x.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(v.Value, 10)
	case *ast.FloatLit:
		s := strconv.FormatFloat(v.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case *ast.StringLit:
		return rustStringLiteral(v.Value)
	case *ast.BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.Ident:
		return v.Name
	case *ast.FieldAccess:
		return e.emitExpr(v.Receiver) + "." + v.Field
	case *ast.IndexAccess:
		return e.emitIndexAccess(v)
	case *ast.Binary:
		return e.emitBinary(v)
	case *ast.Unary:
		return e.emitUnary(v)
	case *ast.Call:
		return e.emitCall(v)
	case *ast.ArrayLit:
		return e.emitArrayLit(v)
	case *ast.StructLit:
		return e.emitStructLit(v)
	case *ast.EnumVariant:
		return v.EnumName + "::" + v.VariantName
	case *ast.Pipe:
		return e.emitExpr(v.Call)
	case *ast.Conditional:
		return e.emitConditionalExpr(v)
	case *ast.Comprehension:
		return e.emitComprehensionExpr(v)
	default:
		return "/* unsupported expression */"
	}
}

func rustStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (e *emitter) emitIndexAccess(ix *ast.IndexAccess) string {
	recv := e.emitExpr(ix.Receiver)
	idx := e.emitExpr(ix.Index)
	if ix.Receiver.Type().Tag == ast.TagHashMap {
		return fmt.Sprintf("%s.get(&(%s)).cloned().expect(\"missing key\")", recv, idx)
	}
	return fmt.Sprintf("%s[(%s) as usize]", recv, idx)
}

var binaryOpSym = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
	ast.OpEq: "==", ast.OpNotEq: "!=", ast.OpLt: "<", ast.OpLtEq: "<=",
	ast.OpGt: ">", ast.OpGtEq: ">=", ast.OpAnd: "&&", ast.OpOr: "||",
}

func (e *emitter) emitBinary(b *ast.Binary) string {
	left := e.emitExpr(b.Left)
	right := e.emitExpr(b.Right)
	if b.Op == ast.OpAdd && b.Left.Type().Equal(ast.Primitive(ast.String)) {
		return fmt.Sprintf("format!(\"{}{}\", %s, %s)", left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, binaryOpSym[b.Op], right)
}

func (e *emitter) emitUnary(u *ast.Unary) string {
	operand := e.emitExpr(u.Operand)
	if u.Op == ast.OpNot {
		return "!" + operand
	}
	return "-" + operand
}

func (e *emitter) emitArrayLit(a *ast.ArrayLit) string {
	parts := make([]string, len(a.Elems))
	for i, el := range a.Elems {
		parts[i] = e.emitExpr(el)
	}
	return "vec![" + strings.Join(parts, ", ") + "]"
}

func (e *emitter) emitStructLit(sl *ast.StructLit) string {
	parts := make([]string, len(sl.Fields))
	for i, f := range sl.Fields {
		parts[i] = f.Name + ": " + e.emitExpr(f.Value)
	}
	return sl.Name + " { " + strings.Join(parts, ", ") + " }"
}
