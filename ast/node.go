// Package ast defines the Nail abstract syntax tree: a closed sum of node
// kinds (spec §3 "AST node"), each tagged with its Kind and carrying the
// Span it was parsed from. The checker (package check) annotates these same
// node values in place by attaching resolved types and declarations;
// nothing in this package depends on the checker.
package ast

import "github.com/nail-lang/nailc/internal/span"

// NodeKind tags every concrete node type, matching the teacher's practice of
// preferring a closed sum with an explicit tag (spec §9) over an open class
// hierarchy.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Expressions
	KindIntLit
	KindFloatLit
	KindStringLit
	KindBoolLit
	KindIdent
	KindFieldAccess
	KindIndexAccess
	KindBinary
	KindUnary
	KindCall
	KindArrayLit
	KindStructLit
	KindEnumVariant
	KindPipe
	KindBlock
	KindConditional
	KindComprehension

	// Statements
	KindFor
	KindWhile
	KindLoop
	KindParallel
	KindSpawn
	KindBreak
	KindContinue
	KindReturn
	KindYield
	KindConstDecl
	KindExprStmt

	// Top-level declarations
	KindFuncDecl
	KindStructDecl
	KindEnumDecl

	// KindBinding tags a Binding, the checker's node for a local name
	// binding that is not itself a top-level declaration.
	KindBinding
)

// Node is implemented by every AST node. Expr, Stmt and Decl are marker
// interfaces over Node used to keep signatures honest about what a
// production accepts.
type Node interface {
	Kind() NodeKind
	Span() span.Span
}

// Expr is any node usable in expression position. The checker attaches an
// inferred Type to every Expr (spec §3 "Annotated AST").
type Expr interface {
	Node
	exprNode()
	Type() Type
	SetType(Type)
}

// Stmt is any node usable in statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a named top-level entity (spec §3 "Declaration").
type Decl interface {
	Node
	declNode()
	DeclName() string
}

// Base is embedded by every concrete node to provide its span and a typed
// slot for the checker's inferred type where applicable. It is exported so
// the parser (which constructs nodes) and the checker (which annotates
// them) can both work with it directly.
type Base struct {
	span span.Span
	typ  Type
}

// NewBase builds the Base embedded in a freshly parsed node.
func NewBase(s span.Span) Base { return Base{span: s} }

func (b *Base) Span() span.Span { return b.span }
func (b *Base) Type() Type      { return b.typ }
func (b *Base) SetType(t Type)  { b.typ = t }
