package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
)

// checkFuncBody type-checks one function's body against its resolved
// signature (spec §4.F "Pass 2"). Parameters are bound into a fresh scope;
// the body's own block opens a child scope of that, matching spec §3
// "Scope": "function bodies, blocks, comprehension bodies, and conditional
// branches each open a new child scope."
func (c *Checker) checkFuncBody(f *ast.FuncDecl) {
	prevFunc := c.currentFunc
	c.currentFunc = f
	defer func() { c.currentFunc = prevFunc }()

	params := newScope(nil)
	for _, p := range f.Params {
		params.define(p.Name, p.Type, f.Span())
	}
	c.checkBlockStmts(f.Body, params)

	if !f.ReturnType.IsVoid() && !blockAlwaysReturns(f.Body) {
		c.h.Errorf(span.ControlFlowError, f.Body.Span(),
			"function %q does not return a value on every control-flow path", f.Name)
	}
}

// checkBlockStmts opens a child scope of parent and checks every statement
// of b against it.
func (c *Checker) checkBlockStmts(b *ast.Block, parent *scope) {
	inner := newScope(parent)
	for _, s := range b.Stmts {
		c.checkStmt(s, inner)
	}
}

func (c *Checker) checkStmt(s ast.Stmt, sc *scope) {
	switch x := s.(type) {
	case *ast.ConstDecl:
		c.checkConstDecl(x, sc)
	case *ast.ExprStmt:
		if x.X != nil {
			c.inferExpr(x.X, sc)
		}
	case *ast.ForStmt:
		c.checkForStmt(x, sc)
	case *ast.WhileStmt:
		c.checkWhileStmt(x, sc)
	case *ast.LoopStmt:
		c.checkLoopStmt(x, sc)
	case *ast.ParallelStmt:
		c.checkParallelStmt(x, sc)
	case *ast.SpawnStmt:
		c.checkBlockStmts(x.Body, newScope(sc))
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Nothing to type-check.
	case *ast.ReturnStmt:
		c.checkReturnStmt(x, sc)
	case *ast.YieldStmt:
		c.checkYieldStmt(x, sc)
	}
}

// checkConstDecl checks `name:type = expr;` (spec §4.F "Const declaration").
// Shadowing is permitted: defining name again in sc simply replaces the
// binding for subsequent statements without touching the prior one.
func (c *Checker) checkConstDecl(d *ast.ConstDecl, sc *scope) {
	declared, init := c.checkConstDeclValue(d, sc)
	sc.define(d.Name, declared, d.Span())
	_ = init
}

// checkConstDeclValue resolves d's declared type and checks its initializer
// without mutating sc — used directly by checkConstDecl and, for the
// no-cross-visibility rule, by checkParallelStmt (spec §5 "Statements
// inside a parallel block do not observe each other's bindings").
func (c *Checker) checkConstDeclValue(d *ast.ConstDecl, sc *scope) (declared ast.Type, initType ast.Type) {
	declared = c.resolveType(d.Declared, d.Span())
	if d.Initializer == nil {
		return declared, ast.Primitive(ast.PrimInvalid)
	}
	initType = c.inferExpr(d.Initializer, sc)

	switch {
	case initType.IsVoid():
		c.h.Errorf(span.TypeError, d.Span(), "cannot bind %q to a void-valued expression", d.Name)
	case initType.IsResult() && !declared.IsResult():
		c.h.Errorf(span.TypeError, d.Span(),
			"%q has declared type %s but its initializer is a result %s; discharge it with safe/danger/expect first",
			d.Name, declared, initType)
	case !resultCompatible(declared, initType) && !declared.Equal(initType):
		c.h.Errorf(span.TypeError, d.Span(),
			"%q declared as %s but initializer has type %s", d.Name, declared, initType)
	}
	return declared, initType
}

func (c *Checker) checkForStmt(f *ast.ForStmt, sc *scope) {
	srcType := c.inferExpr(f.Source, sc)
	elem := ast.Primitive(ast.PrimInvalid)
	if srcType.Tag == ast.TagArray {
		elem = *srcType.Elem
	} else {
		c.h.Errorf(span.TypeError, f.Source.Span(), "for loop source must be an array, found %s", srcType)
	}
	body := newScope(sc)
	body.define(f.ElemName, elem, f.Span())
	c.checkBlockStmts(f.Body, body)
}

func (c *Checker) checkWhileStmt(w *ast.WhileStmt, sc *scope) {
	guardType := c.inferExpr(w.Guard, sc)
	if !guardType.Equal(ast.Primitive(ast.Bool)) {
		c.h.Errorf(span.TypeError, w.Guard.Span(), "while guard must be Bool, found %s", guardType)
	}
	if w.Init != nil {
		c.inferExpr(w.Init, sc)
	}
	if w.Limit != nil {
		limitType := c.inferExpr(w.Limit, sc)
		if !limitType.Equal(ast.Primitive(ast.Int)) {
			c.h.Errorf(span.TypeError, w.Limit.Span(), "while max clause must be Int, found %s", limitType)
		}
	}
	c.checkBlockStmts(w.Body, newScope(sc))
}

func (c *Checker) checkLoopStmt(l *ast.LoopStmt, sc *scope) {
	body := newScope(sc)
	if l.IndexName != "" {
		body.define(l.IndexName, ast.Primitive(ast.Int), l.Span())
	}
	for _, s := range l.Body.Stmts {
		c.checkStmt(s, body)
	}
}

// checkParallelStmt checks each statement against the scope as it stood at
// the block's entry, then publishes every binding produced afterward (spec
// §4.E/§5: bindings are visible after the block but siblings never see each
// other's bindings while inside it).
func (c *Checker) checkParallelStmt(p *ast.ParallelStmt, sc *scope) {
	type pendingBinding struct {
		name string
		typ  ast.Type
		sp   span.Span
	}
	var pending []pendingBinding

	for _, s := range p.Stmts {
		if cd, ok := s.(*ast.ConstDecl); ok {
			declared, _ := c.checkConstDeclValue(cd, sc)
			pending = append(pending, pendingBinding{cd.Name, declared, cd.Span()})
			continue
		}
		c.checkStmt(s, sc)
	}

	for _, b := range pending {
		sc.define(b.name, b.typ, b.sp)
	}
}

func (c *Checker) checkReturnStmt(r *ast.ReturnStmt, sc *scope) {
	if len(c.compStack) > 0 {
		c.h.Errorf(span.ControlFlowError, r.Span(),
			"return is not allowed inside a comprehension body; use yield")
		if r.Value != nil {
			c.inferExpr(r.Value, sc)
		}
		return
	}
	if c.currentFunc == nil {
		c.h.Errorf(span.ControlFlowError, r.Span(), "return used outside a function body")
		return
	}
	want := c.currentFunc.ReturnType

	if r.Value == nil {
		if !want.IsVoid() {
			c.h.Errorf(span.TypeError, r.Span(), "function %q must return a value of type %s", c.currentFunc.Name, want)
		}
		return
	}

	got := c.inferExpr(r.Value, sc)
	switch {
	case want.IsVoid():
		c.h.Errorf(span.TypeError, r.Span(), "function %q returns Void and must not return a value", c.currentFunc.Name)
	case want.IsResult():
		if !resultCompatible(want, got) && !want.Equal(got) {
			c.h.Errorf(span.TypeError, r.Span(),
				"function %q returns %s; this expression has type %s (wrap it with ok/err first)",
				c.currentFunc.Name, want, got)
		}
	default:
		if !want.Equal(got) {
			c.h.Errorf(span.TypeError, r.Span(), "function %q returns %s; this expression has type %s", c.currentFunc.Name, want, got)
		}
	}
}

func (c *Checker) checkYieldStmt(y *ast.YieldStmt, sc *scope) {
	if len(c.compStack) == 0 {
		c.h.Errorf(span.ControlFlowError, y.Span(), "yield used outside a comprehension body")
		if y.Value != nil {
			c.inferExpr(y.Value, sc)
		}
		return
	}
	ctx := c.compStack[len(c.compStack)-1]
	ctx.hasYield = true

	got := ast.Primitive(ast.Void)
	if y.Value != nil {
		got = c.inferExpr(y.Value, sc)
	}

	switch ctx.kind {
	case ast.CompMap:
		if ctx.elemType.IsZero() {
			ctx.elemType = got
		} else if !ctx.elemType.Equal(got) {
			c.h.Errorf(span.TypeError, y.Span(), "map yields must all share one type; first was %s, this is %s", ctx.elemType, got)
		}
	case ast.CompFilter, ast.CompFind, ast.CompAll, ast.CompAny:
		if !got.Equal(ast.Primitive(ast.Bool)) {
			c.h.Errorf(span.TypeError, y.Span(), "%s body must yield Bool, found %s", ctx.kind, got)
		}
	case ast.CompReduce:
		if ctx.accumType.IsZero() {
			ctx.accumType = got
		} else if !ctx.accumType.Equal(got) {
			c.h.Errorf(span.TypeError, y.Span(), "reduce yield must match the accumulator type %s, found %s", ctx.accumType, got)
		}
	case ast.CompEach:
		if y.Value != nil {
			c.h.Errorf(span.TypeError, y.Span(), "each body's yield must not carry a value")
		}
	}
}

// blockAlwaysReturns reports whether every control-flow path through b ends
// in a return (spec §3 invariant: "Every function body ends with a return
// on every control-flow path, unless the function returns Void"). A
// conditional expression statement with an else arm is the only branching
// tail form considered; any other compound statement in tail position (a
// loop, a parallel or spawn block) counts as not terminating.
func blockAlwaysReturns(b *ast.Block) bool { return blockTerminates(b, isReturn) }

// blockAlwaysYields is the same analysis for the comprehension invariant
// ("Every collection comprehension body ends with a yield on every
// control-flow path").
func blockAlwaysYields(b *ast.Block) bool { return blockTerminates(b, isYield) }

type terminalKind int

const (
	isReturn terminalKind = iota
	isYield
)

func blockTerminates(b *ast.Block, want terminalKind) bool {
	if b == nil || len(b.Stmts) == 0 {
		return false
	}
	last := b.Stmts[len(b.Stmts)-1]
	switch s := last.(type) {
	case *ast.ReturnStmt:
		return want == isReturn
	case *ast.YieldStmt:
		return want == isYield
	case *ast.ExprStmt:
		cond, ok := s.X.(*ast.Conditional)
		if !ok || cond.Else == nil {
			return false
		}
		for _, br := range cond.Branches {
			if !blockTerminates(br.Body, want) {
				return false
			}
		}
		return blockTerminates(cond.Else, want)
	default:
		return false
	}
}
