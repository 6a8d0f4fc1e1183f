package transpile

import (
	"fmt"
	"strings"

	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/registry"
)

// emitCall lowers a call expression (spec §4.G "Call"): a registry entry
// instantiates its abstract CALL(module, function, args) template; anything
// else is a direct call to a user-declared function.
func (e *emitter) emitCall(call *ast.Call) string {
	callee, ok := call.Callee.(*ast.Ident)
	if !ok {
		return "/* unsupported call target */"
	}
	if entry, ok := e.reg.Lookup(callee.Name); ok {
		switch entry.Tag {
		case registry.TagVariadicPrint:
			return e.emitPrintCall(call)
		case registry.TagErrorConstructor:
			return e.emitErrorConstructorCall(entry, call)
		case registry.TagErrorDischarger:
			return e.emitErrorDischargeCall(entry, call)
		default:
			return e.emitRegistryCall(entry, call)
		}
	}
	return callee.Name + "(" + e.emitArgs(call.Args) + ")"
}

func (e *emitter) emitArgs(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.emitExpr(a)
	}
	return strings.Join(parts, ", ")
}

// emitRegistryCall renders CALL(module, function, args) as a path call into
// the nail-rt support crate (spec §4.B "Target call template").
func (e *emitter) emitRegistryCall(entry registry.Entry, call *ast.Call) string {
	return fmt.Sprintf("nail_rt::%s::%s(%s)", entry.Module, entry.Name, e.emitArgs(call.Args))
}

// emitPrintCall lowers print's variadic-any form to println! (spec §4.B
// "variadic-print", §4.G "Lowering rules").
func (e *emitter) emitPrintCall(call *ast.Call) string {
	if len(call.Args) == 0 {
		return `println!()`
	}
	fmtStr := strings.TrimSpace(strings.Repeat("{} ", len(call.Args)))
	return fmt.Sprintf("println!(%q, %s)", fmtStr, e.emitArgs(call.Args))
}

// emitErrorConstructorCall lowers ok/err to Rust's Result constructors
// (spec §4.G "Error discharge": "ok(v)/err(m) lower to the target's result
// constructors"). Told apart by the registry's own Return shape (err's
// Return is bare Error), the same test the checker uses, rather than the
// literal name.
func (e *emitter) emitErrorConstructorCall(entry registry.Entry, call *ast.Call) string {
	arg := e.emitExpr(call.Args[0])
	if entry.Return.Equal(ast.Primitive(ast.ErrorPrim)) {
		return fmt.Sprintf("Err(NailError::new(%s))", arg)
	}
	return fmt.Sprintf("Ok(%s)", arg)
}

// emitErrorDischargeCall lowers danger/expect to an unwrap-or-panic form and
// safe to a pattern match invoking its handler on error (spec §4.G "Error
// discharge"). Whether a handler argument is present is read off
// entry.HandlerParam, matching the checker's dispatch in check/call.go.
func (e *emitter) emitErrorDischargeCall(entry registry.Entry, call *ast.Call) string {
	arg := e.emitExpr(call.Args[0])
	if !entry.HandlerParam.IsZero() {
		handler := e.emitExpr(call.Args[1])
		return fmt.Sprintf("(match %s { Ok(__v) => __v, Err(__e) => %s(__e) })", arg, handler)
	}
	if entry.Name == "expect" {
		return fmt.Sprintf("%s.expect(\"expect() on an error result\")", arg)
	}
	return fmt.Sprintf("%s.unwrap()", arg)
}
