// Package transpile implements the Nail transpiler (spec §2 Component G,
// §4.G): it walks the checker's annotated AST in source order and emits
// Rust source text plus a dependency manifest, with no optimization
// passes — a pretty-printer, not a compiler backend.
//
// Shape grounded on the teacher's experimental/printer package: one
// print/emit function per AST node kind, building output by walking the
// tree once. The teacher's dom.Sink/token.Cursor machinery exists to
// preserve original whitespace and comments for round-tripping protobuf
// source; Nail's transpiler has no round-trip requirement (it always
// emits fresh target text), so that layer is replaced here with a plain
// indent-tracking strings.Builder writer.
package transpile

import (
	"fmt"
	"strings"

	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/check"
	"github.com/nail-lang/nailc/registry"
)

// Output is the transpiler's result (spec §4.G "Output").
type Output struct {
	Source        string
	ManifestLines []string
}

// emitter holds the mutable state threaded through the AST walk.
type emitter struct {
	buf    strings.Builder
	indent int
	reg    *registry.Registry
	used   map[string]registry.Entry
}

// Transpile lowers res (the checker's annotated result) to Rust source plus
// its dependency manifest (spec §4.G).
func Transpile(res *check.Result, reg *registry.Registry) Output {
	e := &emitter{reg: reg, used: res.Used}
	e.writeln("#![allow(dead_code, unused_variables)]")
	e.writeln("")
	e.emitFile(res.File)

	manifest := registry.NewManifest()
	for _, entry := range res.Used {
		for _, lib := range entry.Libraries {
			manifest.AddLibrary(lib)
		}
	}
	if e.usesRuntime(res) {
		manifest.AddLibrary("core_runtime")
	}
	if usesConcurrency(res.File) {
		manifest.AddLibrary("concurrency_runtime")
	}

	return Output{Source: e.buf.String(), ManifestLines: manifest.Lines()}
}

// usesConcurrency reports whether file contains a parallel or spawn block
// anywhere, so the tokio dependency it lowers to (stmt.go's
// emitParallelStmt/emitStmt SpawnStmt case) only appears in the manifest
// when something actually needs it.
func usesConcurrency(file *ast.File) bool {
	for _, item := range file.Items {
		if fn, ok := item.(*ast.FuncDecl); ok && blockUsesConcurrency(fn.Body) {
			return true
		}
		if s, ok := item.(ast.Stmt); ok && stmtUsesConcurrency(s) {
			return true
		}
	}
	return false
}

func blockUsesConcurrency(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if stmtUsesConcurrency(s) {
			return true
		}
	}
	return false
}

func stmtUsesConcurrency(s ast.Stmt) bool {
	switch x := s.(type) {
	case *ast.ParallelStmt, *ast.SpawnStmt:
		return true
	case *ast.ForStmt:
		return blockUsesConcurrency(x.Body)
	case *ast.WhileStmt:
		return blockUsesConcurrency(x.Body)
	case *ast.LoopStmt:
		return blockUsesConcurrency(x.Body)
	case *ast.ExprStmt:
		if cond, ok := x.X.(*ast.Conditional); ok {
			for _, br := range cond.Branches {
				if blockUsesConcurrency(br.Body) {
					return true
				}
			}
			return blockUsesConcurrency(cond.Else)
		}
	}
	return false
}

// usesRuntime reports whether anything transpiled needs nail-rt's support
// types (the Error wrapper used by ok/err/danger/expect/safe). Grounded on
// spec §4.B's registry-closure property: every stdlib-backed concern names
// its own libraries, but the Error/Result scaffolding itself is ambient
// infrastructure the registry doesn't itemize per entry.
func (e *emitter) usesRuntime(res *check.Result) bool {
	for _, fn := range res.Globals.Funcs {
		if fn.Fallible {
			return true
		}
	}
	return false
}

func (e *emitter) writeIndent() {
	e.buf.WriteString(strings.Repeat("    ", e.indent))
}

func (e *emitter) writeln(s string) {
	if s != "" {
		e.writeIndent()
		e.buf.WriteString(s)
	}
	e.buf.WriteByte('\n')
}

func (e *emitter) writef(format string, args ...interface{}) {
	e.writeIndent()
	fmt.Fprintf(&e.buf, format, args...)
}
