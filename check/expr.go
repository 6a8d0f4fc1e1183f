package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
)

// inferExpr computes e's type, records it via e.SetType, and returns it
// (spec §3 "Annotated AST": "every expression ... has its inferred type").
func (c *Checker) inferExpr(e ast.Expr, sc *scope) ast.Type {
	t := c.infer(e, sc)
	e.SetType(t)
	return t
}

func (c *Checker) infer(e ast.Expr, sc *scope) ast.Type {
	switch x := e.(type) {
	case *ast.IntLit:
		return ast.Primitive(ast.Int)
	case *ast.FloatLit:
		return ast.Primitive(ast.Float)
	case *ast.StringLit:
		return ast.Primitive(ast.String)
	case *ast.BoolLit:
		return ast.Primitive(ast.Bool)
	case *ast.Ident:
		return c.inferIdent(x, sc)
	case *ast.FieldAccess:
		return c.inferFieldAccess(x, sc)
	case *ast.IndexAccess:
		return c.inferIndexAccess(x, sc)
	case *ast.Binary:
		return c.inferBinary(x, sc)
	case *ast.Unary:
		return c.inferUnary(x, sc)
	case *ast.Call:
		return c.checkCall(x, sc)
	case *ast.ArrayLit:
		return c.inferArrayLit(x, sc)
	case *ast.StructLit:
		return c.inferStructLit(x, sc)
	case *ast.EnumVariant:
		return c.inferEnumVariant(x)
	case *ast.Pipe:
		return c.inferPipe(x, sc)
	case *ast.Conditional:
		return c.checkConditional(x, sc)
	case *ast.Comprehension:
		return c.checkComprehension(x, sc)
	default:
		c.h.Errorf(span.TypeError, e.Span(), "unchecked expression kind %d", e.Kind())
		return ast.Primitive(ast.PrimInvalid)
	}
}

// inferIdent resolves a name against the innermost enclosing scope, then
// falls back to a user-declared function name so `safe`'s handler argument
// and plain function-reference-by-name forms resolve (spec §4.F
// "Identifier").
func (c *Checker) inferIdent(id *ast.Ident, sc *scope) ast.Type {
	if b, ok := sc.lookup(id.Name); ok {
		id.Resolved = b
		return b.BType
	}
	if fn, ok := c.g.Funcs[id.Name]; ok {
		id.Resolved = fn
		params := make([]ast.Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
		}
		return ast.Func(params, fn.ReturnType)
	}
	c.h.Errorf(span.NameError, id.Span(), "undefined name %q", id.Name)
	return ast.Primitive(ast.PrimInvalid)
}

func (c *Checker) inferFieldAccess(f *ast.FieldAccess, sc *scope) ast.Type {
	recvType := c.inferExpr(f.Receiver, sc)
	if recvType.Tag != ast.TagStruct {
		c.h.Errorf(span.TypeError, f.Span(), "field access requires a struct, found %s", recvType)
		return ast.Primitive(ast.PrimInvalid)
	}
	sd, ok := c.g.Structs[recvType.Name]
	if !ok {
		return ast.Primitive(ast.PrimInvalid)
	}
	for _, field := range sd.Fields {
		if field.Name == f.Field {
			return field.Type
		}
	}
	c.h.Errorf(span.NameError, f.Span(), "struct %s has no field %q", recvType.Name, f.Field)
	return ast.Primitive(ast.PrimInvalid)
}

func (c *Checker) inferIndexAccess(ix *ast.IndexAccess, sc *scope) ast.Type {
	recvType := c.inferExpr(ix.Receiver, sc)
	idxType := c.inferExpr(ix.Index, sc)

	switch recvType.Tag {
	case ast.TagArray:
		if !idxType.Equal(ast.Primitive(ast.Int)) {
			c.h.Errorf(span.TypeError, ix.Index.Span(), "array index must be Int, found %s", idxType)
		}
		return *recvType.Elem
	case ast.TagHashMap:
		if !idxType.Equal(*recvType.Key) {
			c.h.Errorf(span.TypeError, ix.Index.Span(), "hashmap key must be %s, found %s", *recvType.Key, idxType)
		}
		return *recvType.Value
	default:
		c.h.Errorf(span.TypeError, ix.Span(), "indexing requires an array or hashmap, found %s", recvType)
		return ast.Primitive(ast.PrimInvalid)
	}
}

// inferBinary implements spec §4.F "Binary op".
func (c *Checker) inferBinary(b *ast.Binary, sc *scope) ast.Type {
	lt := c.inferExpr(b.Left, sc)
	rt := c.inferExpr(b.Right, sc)

	switch b.Op {
	case ast.OpAdd:
		if lt.Equal(ast.Primitive(ast.String)) && rt.Equal(ast.Primitive(ast.String)) {
			return ast.Primitive(ast.String)
		}
		return c.arithmetic(b, lt, rt)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return c.arithmetic(b, lt, rt)
	case ast.OpEq, ast.OpNotEq:
		if !lt.Equal(rt) {
			c.h.Errorf(span.TypeError, b.Span(), "cannot compare %s with %s", lt, rt)
		}
		return ast.Primitive(ast.Bool)
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		if !lt.Equal(rt) {
			c.h.Errorf(span.TypeError, b.Span(), "cannot compare %s with %s", lt, rt)
		}
		return ast.Primitive(ast.Bool)
	case ast.OpAnd, ast.OpOr:
		boolT := ast.Primitive(ast.Bool)
		if !lt.Equal(boolT) || !rt.Equal(boolT) {
			c.h.Errorf(span.TypeError, b.Span(), "logical operators require Bool operands, found %s and %s", lt, rt)
		}
		return boolT
	default:
		return ast.Primitive(ast.PrimInvalid)
	}
}

func (c *Checker) arithmetic(b *ast.Binary, lt, rt ast.Type) ast.Type {
	intT, floatT := ast.Primitive(ast.Int), ast.Primitive(ast.Float)
	switch {
	case lt.Equal(intT) && rt.Equal(intT):
		return intT
	case lt.Equal(floatT) && rt.Equal(floatT):
		return floatT
	default:
		c.h.Errorf(span.TypeError, b.Span(), "arithmetic requires both operands Int or both Float, found %s and %s", lt, rt)
		return ast.Primitive(ast.PrimInvalid)
	}
}

func (c *Checker) inferUnary(u *ast.Unary, sc *scope) ast.Type {
	operand := c.inferExpr(u.Operand, sc)
	switch u.Op {
	case ast.OpNeg:
		if !operand.Equal(ast.Primitive(ast.Int)) && !operand.Equal(ast.Primitive(ast.Float)) {
			c.h.Errorf(span.TypeError, u.Span(), "unary - requires Int or Float, found %s", operand)
		}
		return operand
	case ast.OpNot:
		if !operand.Equal(ast.Primitive(ast.Bool)) {
			c.h.Errorf(span.TypeError, u.Span(), "unary ! requires Bool, found %s", operand)
		}
		return ast.Primitive(ast.Bool)
	default:
		return ast.Primitive(ast.PrimInvalid)
	}
}

func (c *Checker) inferArrayLit(a *ast.ArrayLit, sc *scope) ast.Type {
	if len(a.Elems) == 0 {
		c.h.Errorf(span.TypeError, a.Span(), "cannot infer the element type of an empty array literal")
		return ast.Array(ast.Primitive(ast.PrimInvalid))
	}
	first := c.inferExpr(a.Elems[0], sc)
	for _, e := range a.Elems[1:] {
		t := c.inferExpr(e, sc)
		if !t.Equal(first) {
			c.h.Errorf(span.TypeError, e.Span(), "array elements must share one type; first was %s, this is %s", first, t)
		}
	}
	return ast.Array(first)
}

func (c *Checker) inferStructLit(sl *ast.StructLit, sc *scope) ast.Type {
	sd, ok := c.g.Structs[sl.Name]
	if !ok {
		c.h.Errorf(span.NameError, sl.Span(), "undefined struct %q", sl.Name)
		for _, f := range sl.Fields {
			c.inferExpr(f.Value, sc)
		}
		return ast.Primitive(ast.PrimInvalid)
	}

	provided := map[string]bool{}
	for _, f := range sl.Fields {
		got := c.inferExpr(f.Value, sc)
		provided[f.Name] = true
		var want ast.Type
		found := false
		for _, decl := range sd.Fields {
			if decl.Name == f.Name {
				want, found = decl.Type, true
				break
			}
		}
		if !found {
			c.h.Errorf(span.NameError, sl.Span(), "struct %s has no field %q", sl.Name, f.Name)
			continue
		}
		if !want.Equal(got) {
			c.h.Errorf(span.TypeError, sl.Span(), "field %q of %s expects %s, found %s", f.Name, sl.Name, want, got)
		}
	}
	for _, decl := range sd.Fields {
		if !provided[decl.Name] {
			c.h.Errorf(span.TypeError, sl.Span(), "struct literal %s is missing field %q", sl.Name, decl.Name)
		}
	}
	return ast.StructRef(sl.Name)
}

// inferEnumVariant implements spec §4.F "Enum variant access".
func (c *Checker) inferEnumVariant(ev *ast.EnumVariant) ast.Type {
	ed, ok := c.g.Enums[ev.EnumName]
	if !ok {
		c.h.Errorf(span.NameError, ev.Span(), "undefined enum %q", ev.EnumName)
		return ast.Primitive(ast.PrimInvalid)
	}
	for _, v := range ed.Variants {
		if v == ev.VariantName {
			return ast.EnumRef(ev.EnumName)
		}
	}
	c.h.Errorf(span.NameError, ev.Span(), "enum %s has no variant %q", ev.EnumName, ev.VariantName)
	return ast.EnumRef(ev.EnumName)
}

// inferPipe implements spec §4.F "Pipe": `x |> f(a, b)` is typed as if
// written `f(a, b, x)`. The parser already appended Left onto Call.Args, so
// checking the already-rewritten call reproduces that typing exactly.
func (c *Checker) inferPipe(p *ast.Pipe, sc *scope) ast.Type {
	c.inferExpr(p.Left, sc)
	return c.checkCall(p.Call, sc)
}

// resultCompatible reports whether an actual result type may be used where
// declared (itself a result type) is expected. A bare `err("msg")` carries
// no inner type of its own (checkErrorConstructor types it as a result whose
// inner type is the PrimInvalid wildcard), so it unifies with any declared
// result per spec §4.F
// "Return statement": "...or be wrapped by ok(..)/err(..)".
func resultCompatible(declared, actual ast.Type) bool {
	if !declared.IsResult() || !actual.IsResult() {
		return false
	}
	if actual.Elem.Tag == ast.TagPrimitive && actual.Elem.Prim == ast.PrimInvalid {
		return true
	}
	return declared.Elem.Equal(*actual.Elem)
}
