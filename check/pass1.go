package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
)

// collectSignatures is Pass 1 (spec §4.F "Pass 1"). Struct, enum, and
// function names share one top-level namespace (spec "Duplicate names are
// an error"); registration happens before any signature is resolved so
// forward references between declarations work regardless of source order.
func (c *Checker) collectSignatures(file *ast.File) {
	seen := map[string]span.Span{}
	register := func(name string, sp span.Span) bool {
		if prior, ok := seen[name]; ok {
			c.h.Report(span.Diagnostic{
				Severity: span.Error, Kind: span.NameError, Primary: sp,
				Message: "duplicate top-level name " + name,
				Secondary: []span.Label{{Span: prior, Text: "first declared here"}},
			})
			return false
		}
		seen[name] = sp
		return true
	}

	for _, item := range file.Items {
		switch d := item.(type) {
		case *ast.StructDecl:
			if register(d.Name, d.Span()) {
				c.g.Structs[d.Name] = d
			}
		case *ast.EnumDecl:
			if register(d.Name, d.Span()) {
				c.g.Enums[d.Name] = d
			}
		case *ast.FuncDecl:
			if register(d.Name, d.Span()) {
				c.g.Funcs[d.Name] = d
			}
		}
	}

	for _, item := range file.Items {
		switch d := item.(type) {
		case *ast.StructDecl:
			for i, f := range d.Fields {
				resolved := c.resolveType(f.Type, d.Span())
				d.Fields[i].Type = resolved
				if !resolved.Concrete() {
					c.h.Errorf(span.TypeError, d.Span(),
						"struct field %q of %s must have a concrete type, found %s", f.Name, d.Name, resolved)
				}
			}
		case *ast.FuncDecl:
			for i, p := range d.Params {
				d.Params[i].Type = c.resolveType(p.Type, d.Span())
			}
			d.ReturnType = c.resolveType(d.ReturnType, d.Span())
		}
	}
}

// resolveType walks t, looking up any TagUnresolved name against the
// struct/enum symbol table (spec §4.F "references in signatures to
// undefined types are errors").
func (c *Checker) resolveType(t ast.Type, sp span.Span) ast.Type {
	switch t.Tag {
	case ast.TagUnresolved:
		if _, ok := c.g.Structs[t.Name]; ok {
			return ast.StructRef(t.Name)
		}
		if _, ok := c.g.Enums[t.Name]; ok {
			return ast.EnumRef(t.Name)
		}
		c.h.Errorf(span.NameError, sp, "undefined type %q", t.Name)
		return ast.Primitive(ast.PrimInvalid)
	case ast.TagArray:
		elem := c.resolveType(*t.Elem, sp)
		return ast.Array(elem)
	case ast.TagHashMap:
		key := c.resolveType(*t.Key, sp)
		val := c.resolveType(*t.Value, sp)
		if !key.Concrete() || !val.Concrete() {
			c.h.Errorf(span.TypeError, sp, "hashmap key and value types must be concrete")
		}
		return ast.HashMap(key, val)
	case ast.TagResult:
		return ast.Result(c.resolveType(*t.Elem, sp))
	case ast.TagFunc:
		params := make([]ast.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveType(p, sp)
		}
		ret := c.resolveType(*t.Return, sp)
		return ast.Func(params, ret)
	case ast.TagAnyOf:
		alts := make([]ast.Type, len(t.AnyOf))
		for i, a := range t.AnyOf {
			alts[i] = c.resolveType(a, sp)
		}
		return ast.AnyOf(alts...)
	default:
		return t
	}
}
