package ast

func (*IntLit) Kind() NodeKind      { return KindIntLit }
func (*IntLit) exprNode()           {}
func (*FloatLit) Kind() NodeKind    { return KindFloatLit }
func (*FloatLit) exprNode()         {}
func (*StringLit) Kind() NodeKind   { return KindStringLit }
func (*StringLit) exprNode()        {}
func (*BoolLit) Kind() NodeKind     { return KindBoolLit }
func (*BoolLit) exprNode()          {}
func (*Ident) Kind() NodeKind       { return KindIdent }
func (*Ident) exprNode()            {}
func (*FieldAccess) Kind() NodeKind { return KindFieldAccess }
func (*FieldAccess) exprNode()      {}
func (*IndexAccess) Kind() NodeKind { return KindIndexAccess }
func (*IndexAccess) exprNode()      {}
func (*Binary) Kind() NodeKind      { return KindBinary }
func (*Binary) exprNode()           {}
func (*Unary) Kind() NodeKind       { return KindUnary }
func (*Unary) exprNode()            {}
func (*Call) Kind() NodeKind        { return KindCall }
func (*Call) exprNode()             {}
func (*ArrayLit) Kind() NodeKind    { return KindArrayLit }
func (*ArrayLit) exprNode()         {}
func (*StructLit) Kind() NodeKind   { return KindStructLit }
func (*StructLit) exprNode()        {}
func (*EnumVariant) Kind() NodeKind { return KindEnumVariant }
func (*EnumVariant) exprNode()      {}
func (*Pipe) Kind() NodeKind        { return KindPipe }
func (*Pipe) exprNode()             {}
func (*Block) Kind() NodeKind       { return KindBlock }
func (*Block) exprNode()            {}
func (*Conditional) Kind() NodeKind { return KindConditional }
func (*Conditional) exprNode()      {}
func (*Comprehension) Kind() NodeKind { return KindComprehension }
func (*Comprehension) exprNode()      {}

// IntLit is an integer literal (spec §4.F "Literals").
type IntLit struct {
	Base
	Value int64
}

// FloatLit is a floating-point literal; the lexer requires a decimal point
// with at least one digit on each side (spec §4.D.2).
type FloatLit struct {
	Base
	Value float64
}

// StringLit is a backtick-delimited string literal with escapes already
// decoded by the lexer (spec §4.D.2).
type StringLit struct {
	Base
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Base
	Value bool
}

// Ident is a reference to a previously declared binding. Resolved is filled
// in by the checker (spec §3 "Annotated AST").
type Ident struct {
	Base
	Name     string
	Resolved Decl // nil until the checker resolves it
}

// FieldAccess is `receiver.field`.
type FieldAccess struct {
	Base
	Receiver Expr
	Field    string
}

// IndexAccess is `receiver[index]`, used for both array indexing and
// hashmap key lookup.
type IndexAccess struct {
	Base
	Receiver Expr
	Index    Expr
}

// BinaryOp enumerates the binary operators of spec §3.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
)

// Binary is a binary-operator expression.
type Binary struct {
	Base
	Op          BinaryOp
	Left, Right Expr
}

// UnaryOp enumerates the unary operators of spec §3.
type UnaryOp int

const (
	OpNeg UnaryOp = iota // numeric negate
	OpNot                // logical not
)

// Unary is a unary-operator expression.
type Unary struct {
	Base
	Op      UnaryOp
	Operand Expr
}

// Call is a function call, to either a user-declared function or a stdlib
// registry entry. AnyOfChoice records, for a registry call whose matched
// parameter was an any-of, which alternative the checker picked (spec
// §4.F "Call", §9 "Stdlib polymorphism via any-of").
type Call struct {
	Base
	Callee      Expr // usually *Ident
	Args        []Expr
	AnyOfChoice []int // len(Args); -1 when the corresponding param isn't any-of
}

// ArrayLit is `[expr, expr, ...]`; element types must unify (spec §4.F
// "Collection comprehension" implies arrays carry a single element type).
type ArrayLit struct {
	Base
	Elems []Expr
}

// StructLit is `Name { field: expr, ... }`.
type StructLit struct {
	Base
	Name   string
	Fields []StructLitField
}

// StructLitField is one `field: expr` entry in a StructLit.
type StructLitField struct {
	Name  string
	Value Expr
}

// EnumVariant is `Name::Variant` (spec §4.F "Enum variant access").
type EnumVariant struct {
	Base
	EnumName    string
	VariantName string
}

// Pipe is `left |> call(args...)`, parsed so that left becomes the final
// argument of call (spec §4.E "Parser" precedence table).
type Pipe struct {
	Base
	Left Expr
	Call *Call
}

// Block is an ordered list of statements, optionally ending in an
// expression-producing statement (Return inside a conditional branch, Yield
// inside a comprehension body).
type Block struct {
	Base
	Stmts []Stmt
}

// CondBranch is one `guard => block` arm of a Conditional.
type CondBranch struct {
	Guard Expr
	Body  *Block
}

// Conditional is the `if { guard => block, ..., else => block }` form
// (spec §4.E "Conditional").
type Conditional struct {
	Base
	Branches []CondBranch
	Else     *Block // nil if no else arm
}

// ComprehensionKind enumerates the seven named comprehensions (spec §4.E).
type ComprehensionKind int

const (
	CompMap ComprehensionKind = iota
	CompFilter
	CompReduce
	CompEach
	CompFind
	CompAll
	CompAny
)

func (k ComprehensionKind) String() string {
	switch k {
	case CompMap:
		return "map"
	case CompFilter:
		return "filter"
	case CompReduce:
		return "reduce"
	case CompEach:
		return "each"
	case CompFind:
		return "find"
	case CompAll:
		return "all"
	case CompAny:
		return "any"
	default:
		return "?"
	}
}

// Comprehension is one of the seven collection operations (spec §4.E, §3).
type Comprehension struct {
	Base
	Kind      ComprehensionKind
	ElemName  string
	IndexName string // "" if no index binding was declared
	Source    Expr
	Seed      Expr // non-nil only for Kind == CompReduce
	Body      *Block
}
