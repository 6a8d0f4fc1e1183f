package ast

func (*FuncDecl) Kind() NodeKind   { return KindFuncDecl }
func (*FuncDecl) declNode()        {}
func (f *FuncDecl) DeclName() string { return f.Name }

func (*StructDecl) Kind() NodeKind     { return KindStructDecl }
func (*StructDecl) declNode()          {}
func (s *StructDecl) DeclName() string { return s.Name }

func (*EnumDecl) Kind() NodeKind     { return KindEnumDecl }
func (*EnumDecl) declNode()          {}
func (e *EnumDecl) DeclName() string { return e.Name }

// Param is one `name:type` function parameter.
type Param struct {
	Name string
	Type Type
}

// FuncDecl is `f name(params):return_type { body }` (spec §4.E).
type FuncDecl struct {
	Base
	Name       string
	Params     []Param
	ReturnType Type
	Fallible   bool // true when ReturnType.IsResult()
	Body       *Block
}

// StructField is one `field : type` entry of a StructDecl.
type StructField struct {
	Name string
	Type Type
}

// StructDecl is `struct Name { field: type, ... }` (spec §4.E).
type StructDecl struct {
	Base
	Name   string
	Fields []StructField
}

// EnumDecl is `enum Name { Variant, Variant, ... }` (spec §4.E); variants
// carry no associated data.
type EnumDecl struct {
	Base
	Name     string
	Variants []string
}

// Binding is a local name binding that is not itself a top-level
// declaration: a function parameter, a loop/comprehension element or index,
// or a const declared inside a block. The checker (package check)
// constructs one per scope entry so that ast.Ident.Resolved always has a
// Decl to point to (spec §3 "Annotated AST": "every identifier reference
// ... has a resolved declaration"), without widening the sealed Decl
// interface's marker method outside this package.
type Binding struct {
	Base
	Name  string
	BType Type
}

func (*Binding) Kind() NodeKind     { return KindBinding }
func (*Binding) declNode()          {}
func (b *Binding) DeclName() string { return b.Name }

// File is the root of a parsed Nail source file: an ordered list of
// top-level declarations and statements (spec §4.E "Output").
type File struct {
	Path  string
	Items []Node // each is a Decl or a Stmt (top-level expression statements and const decls are allowed)
}
