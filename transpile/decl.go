package transpile

import (
	"strings"

	"github.com/nail-lang/nailc/ast"
)

// emitFile walks the top-level items in source order (spec §4.G "Output":
// "emits one Rust item per top-level declaration, preserving source order").
func (e *emitter) emitFile(file *ast.File) {
	for _, item := range file.Items {
		switch x := item.(type) {
		case *ast.FuncDecl:
			e.emitFuncDecl(x)
		case *ast.StructDecl:
			e.emitStructDecl(x)
		case *ast.EnumDecl:
			e.emitEnumDecl(x)
		case *ast.ConstDecl:
			e.writef("const %s: %s = %s;\n", strings.ToUpper(x.Name), rustType(x.Declared), e.emitExpr(x.Initializer))
		default:
			if s, ok := item.(ast.Stmt); ok {
				e.emitStmt(s)
			}
		}
		e.writeln("")
	}
}

// emitFuncDecl lowers `f name(params):return_type { body }`. A function
// whose declared return type is a Result (Fallible, set by the parser) becomes
// `async fn` so its body may call other fallible functions and stdlib
// entries that themselves lower to async nail-rt calls (spec §5 "Concurrency
// & Resource Model": async is surfaced only where a function's signature
// already names fallibility).
func (e *emitter) emitFuncDecl(f *ast.FuncDecl) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + rustType(p.Type)
	}
	asyncKw := ""
	if f.Fallible {
		asyncKw = "async "
	}
	e.writef("pub %sfn %s(%s) -> %s {\n", asyncKw, f.Name, strings.Join(params, ", "), rustType(f.ReturnType))
	e.indent++
	e.emitStmts(f.Body.Stmts)
	e.indent--
	e.writeln("}")
}

func (e *emitter) emitStructDecl(s *ast.StructDecl) {
	e.writeln("#[derive(Debug, Clone)]")
	e.writef("pub struct %s {\n", s.Name)
	e.indent++
	for _, f := range s.Fields {
		e.writef("pub %s: %s,\n", f.Name, rustType(f.Type))
	}
	e.indent--
	e.writeln("}")
}

func (e *emitter) emitEnumDecl(en *ast.EnumDecl) {
	e.writeln("#[derive(Debug, Clone, PartialEq, Eq)]")
	e.writef("pub enum %s {\n", en.Name)
	e.indent++
	for _, v := range en.Variants {
		e.writef("%s,\n", v)
	}
	e.indent--
	e.writeln("}")
}
