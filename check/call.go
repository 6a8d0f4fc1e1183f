package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/registry"
)

// checkCall implements spec §4.F "Call". The registry is consulted first;
// a handful of error-handling entries carry a Tag that means their literal
// Params/Return don't describe their real, type-parametric behavior (ok/err
// construct a result around whatever was passed; danger/expect/safe unwrap
// one), so those are special-cased on the tag rather than on the
// checker branching on the name directly — the one documented exception the
// registry itself claims for `print`'s variadic tag extends naturally to
// these (spec §4.B "The registry is the only place where per-function
// knowledge lives").
func (c *Checker) checkCall(call *ast.Call, sc *scope) ast.Type {
	callee, ok := call.Callee.(*ast.Ident)
	if !ok {
		c.h.Errorf(span.TypeError, call.Span(), "call target must be a name")
		for _, a := range call.Args {
			c.inferExpr(a, sc)
		}
		return ast.Primitive(ast.PrimInvalid)
	}

	if entry, ok := c.reg.Lookup(callee.Name); ok {
		switch entry.Tag {
		case registry.TagErrorConstructor:
			return c.checkErrorConstructor(entry, call, sc)
		case registry.TagErrorDischarger:
			return c.checkErrorDischarger(entry, call, sc)
		default:
			return c.checkRegistryCall(entry, call, sc)
		}
	}

	fn, ok := c.g.Funcs[callee.Name]
	if !ok {
		c.h.Errorf(span.NameError, call.Span(), "undefined function %q", callee.Name)
		for _, a := range call.Args {
			c.inferExpr(a, sc)
		}
		return ast.Primitive(ast.PrimInvalid)
	}
	callee.Resolved = fn

	if len(call.Args) != len(fn.Params) {
		c.h.Errorf(span.TypeError, call.Span(), "%s takes %d argument(s), found %d", fn.Name, len(fn.Params), len(call.Args))
	}
	for i, a := range call.Args {
		got := c.inferExpr(a, sc)
		if i < len(fn.Params) && !fn.Params[i].Type.Equal(got) {
			c.h.Errorf(span.TypeError, a.Span(), "%s parameter %d expects %s, found %s", fn.Name, i+1, fn.Params[i].Type, got)
		}
		if i < len(call.AnyOfChoice) {
			call.AnyOfChoice[i] = -1
		}
	}
	return fn.ReturnType
}

// checkRegistryCall handles an ordinary (non-tagged-discharge) stdlib
// entry, including `print`'s variadic-any form and any-of parameter
// resolution (spec §4.F "Call": "Any-of parameters accept any of their
// listed types; the chosen alternative is recorded on the call node").
func (c *Checker) checkRegistryCall(entry registry.Entry, call *ast.Call, sc *scope) ast.Type {
	c.markUsed(entry.Name)

	if entry.Variadic {
		for _, a := range call.Args {
			c.inferExpr(a, sc)
		}
		call.AnyOfChoice = make([]int, len(call.Args))
		for i := range call.AnyOfChoice {
			call.AnyOfChoice[i] = -1
		}
		return entry.Return
	}

	if len(call.Args) != len(entry.Params) {
		c.h.Errorf(span.TypeError, call.Span(), "%s takes %d argument(s), found %d", entry.Name, len(entry.Params), len(call.Args))
	}
	call.AnyOfChoice = make([]int, len(call.Args))
	for i, a := range call.Args {
		got := c.inferExpr(a, sc)
		call.AnyOfChoice[i] = -1
		if i >= len(entry.Params) {
			continue
		}
		param := entry.Params[i]
		if param.Tag == ast.TagAnyOf {
			choice := -1
			for j, alt := range param.AnyOf {
				if alt.Equal(got) {
					choice = j
					break
				}
			}
			if choice < 0 {
				c.h.Errorf(span.TypeError, a.Span(), "%s parameter %d accepts %s, found %s", entry.Name, i+1, param, got)
			}
			call.AnyOfChoice[i] = choice
		} else if !param.Equal(got) {
			c.h.Errorf(span.TypeError, a.Span(), "%s parameter %d expects %s, found %s", entry.Name, i+1, param, got)
		}
	}
	return entry.Return
}

// checkErrorConstructor implements `ok(v)` and `err(msg)` (spec §4.F
// "Result-type discipline": "A value of type T!e may be produced only by a
// fallible call or by ok/err").
func (c *Checker) checkErrorConstructor(entry registry.Entry, call *ast.Call, sc *scope) ast.Type {
	c.markUsed(entry.Name)
	if len(call.Args) != 1 {
		c.h.Errorf(span.TypeError, call.Span(), "%s takes exactly one argument", entry.Name)
		for _, a := range call.Args {
			c.inferExpr(a, sc)
		}
		return ast.Result(ast.Primitive(ast.PrimInvalid))
	}
	got := c.inferExpr(call.Args[0], sc)
	call.AnyOfChoice = []int{-1}

	// Entries are dispatched on shape, not name: the one whose declared
	// Return is bare Error takes a message and carries no inner type of its
	// own (it unifies with whatever result type the surrounding context
	// expects, via resultCompatible's PrimInvalid wildcard); the other wraps
	// its argument's own type as the result's inner type.
	if entry.Return.Equal(ast.Primitive(ast.ErrorPrim)) {
		if !got.Equal(ast.Primitive(ast.String)) {
			c.h.Errorf(span.TypeError, call.Args[0].Span(), "%s's argument must be String, found %s", entry.Name, got)
		}
		return ast.Result(ast.Primitive(ast.PrimInvalid))
	}
	return ast.Result(got)
}

// checkErrorDischarger implements `danger(expr)`, `expect(expr)`, and
// `safe(expr, handler)` (spec §4.F "Result-type discipline"). Whether a
// second, handler argument is expected is read off entry.HandlerParam rather
// than special-cased on the name "safe" (registry.go: "the checker reads
// this field rather than special-casing the name").
func (c *Checker) checkErrorDischarger(entry registry.Entry, call *ast.Call, sc *scope) ast.Type {
	c.markUsed(entry.Name)
	takesHandler := !entry.HandlerParam.IsZero()

	if len(call.Args) == 0 {
		c.h.Errorf(span.TypeError, call.Span(), "%s requires a result-typed argument", entry.Name)
		return ast.Primitive(ast.PrimInvalid)
	}
	argType := c.inferExpr(call.Args[0], sc)
	if !argType.IsResult() {
		c.h.Errorf(span.TypeError, call.Args[0].Span(), "%s requires a result-typed argument, found %s", entry.Name, argType)
		inner := ast.Primitive(ast.PrimInvalid)
		if takesHandler && len(call.Args) > 1 {
			c.checkSafeHandler(call.Args[1], inner)
		}
		call.AnyOfChoice = make([]int, len(call.Args))
		for i := range call.AnyOfChoice {
			call.AnyOfChoice[i] = -1
		}
		return inner
	}
	inner := ast.Primitive(ast.PrimInvalid)
	if argType.Elem != nil {
		inner = *argType.Elem
	}

	if takesHandler {
		if len(call.Args) != 2 {
			c.h.Errorf(span.TypeError, call.Span(), "%s takes exactly two arguments: a result and a handler", entry.Name)
		} else {
			c.checkSafeHandler(call.Args[1], inner)
		}
	} else if len(call.Args) != 1 {
		c.h.Errorf(span.TypeError, call.Span(), "%s takes exactly one argument", entry.Name)
	}

	call.AnyOfChoice = make([]int, len(call.Args))
	for i := range call.AnyOfChoice {
		call.AnyOfChoice[i] = -1
	}
	return inner
}

// checkSafeHandler resolves safe's second argument: a reference to a
// user-declared function from Error to the discharged inner type (spec
// §4.F: "the handler is a function taking Error and returning T").
func (c *Checker) checkSafeHandler(handlerExpr ast.Expr, inner ast.Type) {
	handlerIdent, ok := handlerExpr.(*ast.Ident)
	if !ok {
		c.h.Errorf(span.TypeError, handlerExpr.Span(), "safe's handler must name a function")
		return
	}
	fn, ok := c.g.Funcs[handlerIdent.Name]
	if !ok {
		c.h.Errorf(span.NameError, handlerExpr.Span(), "undefined function %q", handlerIdent.Name)
		return
	}
	handlerIdent.Resolved = fn
	errT := ast.Primitive(ast.ErrorPrim)
	if len(fn.Params) != 1 || !fn.Params[0].Type.Equal(errT) {
		c.h.Errorf(span.TypeError, handlerExpr.Span(), "safe's handler must take a single Error parameter")
	}
	if inner.Tag != ast.TagPrimitive || inner.Prim != ast.PrimInvalid {
		if !fn.ReturnType.Equal(inner) {
			c.h.Errorf(span.TypeError, handlerExpr.Span(), "safe's handler must return %s, found %s", inner, fn.ReturnType)
		}
	}
	handlerIdent.SetType(ast.Func([]ast.Type{errT}, fn.ReturnType))
}
