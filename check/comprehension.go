package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
)

// comprehensionCtx accumulates the yielded type(s) observed while checking
// one comprehension body, pushed/popped around checkBlockStmts so
// checkYieldStmt (in stmt.go) can find the innermost comprehension a yield
// belongs to.
type comprehensionCtx struct {
	kind      ast.ComprehensionKind
	elemType  ast.Type // map: the single yielded type, once observed
	accumType ast.Type // reduce: the accumulator/seed type
	hasYield  bool
}

// checkComprehension implements spec §4.F "Collection comprehension" and
// §4.E's seven named forms.
func (c *Checker) checkComprehension(comp *ast.Comprehension, sc *scope) ast.Type {
	srcType := c.inferExpr(comp.Source, sc)

	elemType := ast.Primitive(ast.PrimInvalid)
	indexType := ast.Primitive(ast.Int)
	switch srcType.Tag {
	case ast.TagArray:
		elemType = *srcType.Elem
	case ast.TagHashMap:
		elemType = *srcType.Value
		indexType = *srcType.Key
	default:
		c.h.Errorf(span.TypeError, comp.Source.Span(), "comprehension source must be an array or hashmap, found %s", srcType)
	}

	ctx := &comprehensionCtx{kind: comp.Kind}
	body := newScope(sc)
	if comp.Kind == ast.CompReduce {
		// reduce binds its first ident to the running accumulator (seed
		// type) and its second ident to the array element, not an index:
		// `reduce acc elem in xs from 0 { y acc + elem; }`.
		if comp.Seed == nil {
			c.h.Errorf(span.ControlFlowError, comp.Span(), "reduce requires a from seed-expr")
		} else {
			ctx.accumType = c.inferExpr(comp.Seed, sc)
		}
		body.define(comp.ElemName, ctx.accumType, comp.Span())
		if comp.IndexName != "" {
			body.define(comp.IndexName, elemType, comp.Span())
		}
	} else {
		body.define(comp.ElemName, elemType, comp.Span())
		if comp.IndexName != "" {
			body.define(comp.IndexName, indexType, comp.Span())
		}
		if comp.Seed != nil {
			c.h.Errorf(span.ControlFlowError, comp.Seed.Span(), "%s does not take a from clause", comp.Kind)
		}
	}

	c.compStack = append(c.compStack, ctx)
	for _, s := range comp.Body.Stmts {
		c.checkStmt(s, body)
	}
	c.compStack = c.compStack[:len(c.compStack)-1]

	if comp.Kind != ast.CompEach && !blockAlwaysYields(comp.Body) {
		c.h.Errorf(span.ControlFlowError, comp.Body.Span(),
			"%s body does not yield on every control-flow path", comp.Kind)
	}

	switch comp.Kind {
	case ast.CompMap:
		return ast.Array(ctx.elemType)
	case ast.CompFilter:
		return srcType
	case ast.CompReduce:
		return ctx.accumType
	case ast.CompEach:
		return ast.Primitive(ast.Void)
	case ast.CompFind:
		return ast.Result(elemType)
	case ast.CompAll, ast.CompAny:
		return ast.Primitive(ast.Bool)
	default:
		return ast.Primitive(ast.PrimInvalid)
	}
}
