// Package check implements the Nail type checker (spec §2 Component F,
// §4.F). It runs in two passes over a parsed *ast.File: Pass 1 collects
// every top-level struct, enum, and function signature into a global
// symbol table (forward references allowed); Pass 2 walks each function
// body and top-level statement, inferring and recording a type on every
// expression and resolving every identifier reference.
//
// Shape grounded on the teacher's linker package
// (linker/linker.go's Link + linker/resolve.go's resolveReferences): a
// first pass that pools every declared symbol before any reference is
// resolved, followed by a second pass that walks the tree resolving names
// against the now-complete pool and reporting everything it finds wrong
// without stopping at the first error.
package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/registry"
)

// Globals is the symbol table produced by Pass 1 (spec §4.F "Pass 1").
type Globals struct {
	Funcs   map[string]*ast.FuncDecl
	Structs map[string]*ast.StructDecl
	Enums   map[string]*ast.EnumDecl
}

// Result is the checker's output: the same *ast.File, now annotated in
// place, plus the global symbol table and the set of stdlib entries
// actually referenced (spec §4.F "Output", "Used-stdlib tracking").
type Result struct {
	File    *ast.File
	Globals *Globals
	Used    map[string]registry.Entry
}

// Checker holds the mutable state threaded through both passes.
type Checker struct {
	reg  *registry.Registry
	g    *Globals
	h    *span.Handler
	used map[string]registry.Entry

	currentFunc *ast.FuncDecl
	compStack   []*comprehensionCtx
}

// Check runs both passes over file against reg and returns the annotated
// result plus a diagnostic handler (spec §4.F "Input"/"Output"). Like the
// lexer and parser, checking never panics on malformed user input; it
// records diagnostics and keeps going so a single file reports as many
// problems as possible in one run.
func Check(file *ast.File, reg *registry.Registry) (*Result, *span.Handler) {
	c := &Checker{
		reg: reg,
		h:   span.NewHandler(),
		g: &Globals{
			Funcs:   map[string]*ast.FuncDecl{},
			Structs: map[string]*ast.StructDecl{},
			Enums:   map[string]*ast.EnumDecl{},
		},
		used: map[string]registry.Entry{},
	}

	c.collectSignatures(file)

	top := newScope(nil)
	for _, item := range file.Items {
		switch x := item.(type) {
		case *ast.FuncDecl:
			c.checkFuncBody(x)
		case *ast.StructDecl, *ast.EnumDecl:
			// Fully handled by collectSignatures.
		case *ast.ConstDecl:
			c.checkConstDecl(x, top)
		default:
			if s, ok := item.(ast.Stmt); ok {
				c.checkStmt(s, top)
			}
		}
	}

	return &Result{File: file, Globals: c.g, Used: c.used}, c.h
}

func (c *Checker) markUsed(name string) {
	if e, ok := c.reg.Lookup(name); ok {
		c.used[name] = e
	}
}

// scope is a mapping from identifier to declared type plus a parent link
// (spec §3 "Scope"). Shadowing a name in the current scope hides, rather
// than mutates, the prior binding.
type scope struct {
	vars   map[string]*ast.Binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]*ast.Binding{}, parent: parent}
}

func (s *scope) define(name string, t ast.Type, sp span.Span) *ast.Binding {
	b := &ast.Binding{Base: ast.NewBase(sp), Name: name, BType: t}
	s.vars[name] = b
	return b
}

func (s *scope) lookup(name string) (*ast.Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}
