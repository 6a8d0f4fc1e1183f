package transpile

import (
	"fmt"

	"github.com/nail-lang/nailc/ast"
)

// emitStmts renders a block's statements in order.
func (e *emitter) emitStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

// emitStmt dispatches one statement (spec §4.G "Lowering rules"). Expression
// statements holding a Conditional or an each Comprehension skip the
// expression form and emit the plain control-flow shape directly, since
// nothing needs their produced value here.
func (e *emitter) emitStmt(s ast.Stmt) {
	switch x := s.(type) {
	case *ast.ConstDecl:
		e.writef("let %s: %s = %s;\n", x.Name, rustType(x.Declared), e.emitExpr(x.Initializer))

	case *ast.ExprStmt:
		switch inner := x.X.(type) {
		case *ast.Conditional:
			e.writeIndent()
			e.emitConditionalStmt(inner)
		case *ast.Comprehension:
			if inner.Kind == ast.CompEach {
				e.writeIndent()
				e.emitComprehensionStmt(inner)
			} else {
				e.writef("let _ = %s;\n", e.emitExpr(inner))
			}
		case nil:
		default:
			e.writef("%s;\n", e.emitExpr(inner))
		}

	case *ast.ForStmt:
		e.writef("for %s in %s.iter() {\n", x.ElemName, e.emitExpr(x.Source))
		e.indent++
		e.emitStmts(x.Body.Stmts)
		e.indent--
		e.writeln("}")

	case *ast.WhileStmt:
		e.emitWhileStmt(x)

	case *ast.LoopStmt:
		e.emitLoopStmt(x)

	case *ast.ParallelStmt:
		e.emitParallelStmt(x)

	case *ast.SpawnStmt:
		e.writeln("tokio::spawn(async move {")
		e.indent++
		e.emitStmts(x.Body.Stmts)
		e.indent--
		e.writeln("});")

	case *ast.BreakStmt:
		e.writeln("break;")

	case *ast.ContinueStmt:
		e.writeln("continue;")

	case *ast.ReturnStmt:
		if x.Value != nil {
			e.writef("return %s;\n", e.emitExpr(x.Value))
		} else {
			e.writeln("return;")
		}

	case *ast.YieldStmt:
		// Reachable only as dead code outside a comprehension; the checker
		// rejects this case before transpilation runs.
		if x.Value != nil {
			e.writef("return %s;\n", e.emitExpr(x.Value))
		}

	default:
		e.writeln("// unsupported statement")
	}
}

// emitWhileStmt lowers `while guard [from init] max limit { body }` to a
// bounded loop: Nail's max clause has no direct Rust equivalent, so it's
// lowered to an explicit counter that panics once the bound is exceeded
// (spec §4.E "while").
func (e *emitter) emitWhileStmt(w *ast.WhileStmt) {
	if w.Init != nil {
		e.writef("let mut __while_init = %s;\n", e.emitExpr(w.Init))
	}
	e.writef("let mut __while_iters: i64 = 0;\n")
	e.writef("while %s {\n", e.emitExpr(w.Guard))
	e.indent++
	e.writef("__while_iters += 1;\n")
	e.writef("if __while_iters > %s { panic!(\"while loop exceeded max iterations\"); }\n", e.emitExpr(w.Limit))
	e.emitStmts(w.Body.Stmts)
	e.indent--
	e.writeln("}")
}

// emitLoopStmt lowers `loop [name] { body }`, an unbounded loop with an
// optional auto-incrementing index binding.
func (e *emitter) emitLoopStmt(l *ast.LoopStmt) {
	if l.IndexName != "" {
		e.writef("let mut %s: i64 = 0;\n", l.IndexName)
	}
	e.writeln("loop {")
	e.indent++
	e.emitStmts(l.Body.Stmts)
	if l.IndexName != "" {
		e.writef("%s += 1;\n", l.IndexName)
	}
	e.indent--
	e.writeln("}")
}

// emitParallelStmt lowers `parallel { stmt; ... }` to a structured-concurrency
// join: each statement runs on its own task, and any const declarations made
// directly inside the block become visible in the enclosing scope only after
// every task has completed (spec §4.E "Concurrency forms": "bindings
// declared in the block are scoped to the enclosing block and populated
// after the join").
func (e *emitter) emitParallelStmt(p *ast.ParallelStmt) {
	e.writeln("{")
	e.indent++
	for i, s := range p.Stmts {
		if cd, ok := s.(*ast.ConstDecl); ok {
			e.writef("let __par_%d = tokio::spawn(async move { %s });\n", i, e.emitExpr(cd.Initializer))
		} else {
			e.writef("let __par_%d = tokio::spawn(async move { %s });\n", i, e.stmtAsAsyncBlock(s))
		}
	}
	for i, s := range p.Stmts {
		if cd, ok := s.(*ast.ConstDecl); ok {
			e.writef("let %s: %s = __par_%d.await.unwrap();\n", cd.Name, rustType(cd.Declared), i)
		} else {
			e.writef("__par_%d.await.unwrap();\n", i)
		}
	}
	e.indent--
	e.writeln("}")
}

// stmtAsAsyncBlock renders a non-binding statement inline for use as the
// body of a spawned task.
func (e *emitter) stmtAsAsyncBlock(s ast.Stmt) string {
	if es, ok := s.(*ast.ExprStmt); ok && es.X != nil {
		return e.emitExpr(es.X)
	}
	return fmt.Sprintf("/* %T */", s)
}
