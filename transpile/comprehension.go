package transpile

import (
	"fmt"
	"strings"

	"github.com/nail-lang/nailc/ast"
)

// emitComprehensionExpr lowers one of the seven named comprehensions (spec
// §4.G "Lowering rules") to a Rust closure invoked immediately, since Rust's
// for-loop is statement-only. Each kind differs only in what its yield does
// with the element currently in scope, so the shared control-flow skeleton
// (iterate source, bind elem/index, run body) is generated once and the
// per-kind meaning of `y expr;` is injected via a sink function.
func (e *emitter) emitComprehensionExpr(comp *ast.Comprehension) string {
	var b strings.Builder
	b.WriteString("(|| {\n")
	e.indent++
	e.writeCompPrelude(&b, comp)
	e.indent--
	e.writeIndentInto(&b)
	b.WriteString("})()")
	return b.String()
}

// emitComprehensionStmt renders an each comprehension used as a statement
// as a bare loop, skipping the closure wrapper. Other kinds keep the wrapper
// even when their result is discarded, because their yields lower to
// `return`s that must not leave the enclosing function.
func (e *emitter) emitComprehensionStmt(comp *ast.Comprehension) {
	var b strings.Builder
	e.writeCompPrelude(&b, comp)
	e.buf.WriteString(b.String())
}

func (e *emitter) writeIndentInto(b *strings.Builder) {
	b.WriteString(strings.Repeat("    ", e.indent))
}

func (e *emitter) writeCompPrelude(b *strings.Builder, comp *ast.Comprehension) {
	src := e.emitExpr(comp.Source)
	indent := strings.Repeat("    ", e.indent)

	switch comp.Kind {
	case ast.CompMap:
		fmt.Fprintf(b, "%slet mut __out = Vec::new();\n", indent)
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%s__out.push(%s);\n", ind, val)
		})
		fmt.Fprintf(b, "%s__out\n", indent)

	case ast.CompFilter:
		fmt.Fprintf(b, "%slet mut __out = Vec::new();\n", indent)
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%sif %s { __out.push(%s.clone()); }\n", ind, val, comp.ElemName)
		})
		fmt.Fprintf(b, "%s__out\n", indent)

	case ast.CompReduce:
		// reduce binds its first ident (ElemName) to the running
		// accumulator and its second ident (IndexName) to the array
		// element, so the accumulator is a real mutable Rust binding
		// under that name rather than a synthetic one, and the loop
		// iterates elements directly instead of enumerating an index.
		fmt.Fprintf(b, "%slet mut %s = %s;\n", indent, comp.ElemName, e.emitExpr(comp.Seed))
		e.writeReduceLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%s%s = %s;\n", ind, comp.ElemName, val)
		})
		fmt.Fprintf(b, "%s%s\n", indent, comp.ElemName)

	case ast.CompEach:
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%slet _ = %s;\n", ind, val)
		})

	case ast.CompFind:
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%sif %s { return Ok(%s.clone()); }\n", ind, val, comp.ElemName)
		})
		fmt.Fprintf(b, "%sErr(NailError::new(\"not found\".to_string()))\n", indent)

	case ast.CompAll:
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%sif !(%s) { return false; }\n", ind, val)
		})
		fmt.Fprintf(b, "%strue\n", indent)

	case ast.CompAny:
		e.writeCompLoop(b, comp, src, func(ind string, val string) string {
			return fmt.Sprintf("%sif %s { return true; }\n", ind, val)
		})
		fmt.Fprintf(b, "%sfalse\n", indent)
	}
}

// writeCompLoop emits the shared `for elem in source.iter()` skeleton (with
// `.enumerate()` and an `(index, elem)` pattern when an index is bound) and
// renders the body, replacing every yield statement it finds
// with sink's rendering of the yielded expression.
func (e *emitter) writeCompLoop(b *strings.Builder, comp *ast.Comprehension, src string, sink func(indent, value string) string) {
	indent := strings.Repeat("    ", e.indent)
	iterExpr := src + ".iter()"
	if comp.IndexName != "" {
		fmt.Fprintf(b, "%sfor (%s, %s) in %s.enumerate() {\n", indent, comp.IndexName, comp.ElemName, iterExpr)
	} else {
		fmt.Fprintf(b, "%sfor %s in %s {\n", indent, comp.ElemName, iterExpr)
	}
	e.indent++
	e.writeCompBody(b, comp.Body, sink)
	e.indent--
	fmt.Fprintf(b, "%s}\n", indent)
}

// writeReduceLoop emits the element-only loop skeleton reduce needs: its
// first ident already names the accumulator (bound outside the loop), so the
// loop binds only the second ident to the element, never an index.
func (e *emitter) writeReduceLoop(b *strings.Builder, comp *ast.Comprehension, src string, sink func(indent, value string) string) {
	indent := strings.Repeat("    ", e.indent)
	elemBinding := comp.IndexName
	if elemBinding == "" {
		elemBinding = "_"
	}
	fmt.Fprintf(b, "%sfor %s in %s.iter() {\n", indent, elemBinding, src)
	e.indent++
	e.writeCompBody(b, comp.Body, sink)
	e.indent--
	fmt.Fprintf(b, "%s}\n", indent)
}

// writeCompBody walks a comprehension body statement by statement, threading
// sink through any nested conditional so a yield reachable only through a
// branch still lowers correctly.
func (e *emitter) writeCompBody(b *strings.Builder, blk *ast.Block, sink func(indent, value string) string) {
	indent := strings.Repeat("    ", e.indent)
	for _, s := range blk.Stmts {
		switch x := s.(type) {
		case *ast.YieldStmt:
			if x.Value != nil {
				b.WriteString(sink(indent, e.emitExpr(x.Value)))
			} else {
				b.WriteString(sink(indent, "()"))
			}
		case *ast.ConstDecl:
			fmt.Fprintf(b, "%slet %s = %s;\n", indent, x.Name, e.emitExpr(x.Initializer))
		case *ast.ExprStmt:
			if cond, ok := x.X.(*ast.Conditional); ok {
				e.writeCompConditional(b, cond, sink)
			} else if x.X != nil {
				fmt.Fprintf(b, "%s%s;\n", indent, e.emitExpr(x.X))
			}
		default:
			fmt.Fprintf(b, "%s// unsupported comprehension-body statement\n", indent)
		}
	}
}

func (e *emitter) writeCompConditional(b *strings.Builder, cond *ast.Conditional, sink func(indent, value string) string) {
	indent := strings.Repeat("    ", e.indent)
	for i, br := range cond.Branches {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		fmt.Fprintf(b, "%s%s %s {\n", indent, kw, e.emitExpr(br.Guard))
		e.indent++
		e.writeCompBody(b, br.Body, sink)
		e.indent--
	}
	if cond.Else != nil {
		fmt.Fprintf(b, "%s} else {\n", indent)
		e.indent++
		e.writeCompBody(b, cond.Else, sink)
		e.indent--
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
