package ast

func (*ForStmt) Kind() NodeKind      { return KindFor }
func (*ForStmt) stmtNode()           {}
func (*WhileStmt) Kind() NodeKind    { return KindWhile }
func (*WhileStmt) stmtNode()         {}
func (*LoopStmt) Kind() NodeKind     { return KindLoop }
func (*LoopStmt) stmtNode()          {}
func (*ParallelStmt) Kind() NodeKind { return KindParallel }
func (*ParallelStmt) stmtNode()      {}
func (*SpawnStmt) Kind() NodeKind    { return KindSpawn }
func (*SpawnStmt) stmtNode()         {}
func (*BreakStmt) Kind() NodeKind    { return KindBreak }
func (*BreakStmt) stmtNode()         {}
func (*ContinueStmt) Kind() NodeKind { return KindContinue }
func (*ContinueStmt) stmtNode()      {}
func (*ReturnStmt) Kind() NodeKind   { return KindReturn }
func (*ReturnStmt) stmtNode()        {}
func (*YieldStmt) Kind() NodeKind    { return KindYield }
func (*YieldStmt) stmtNode()         {}
func (*ConstDecl) Kind() NodeKind    { return KindConstDecl }
func (*ConstDecl) stmtNode()         {}
func (*ExprStmt) Kind() NodeKind     { return KindExprStmt }
func (*ExprStmt) stmtNode()          {}

// ForStmt is `for name in expr { body }` (spec §4.E "Iteration").
type ForStmt struct {
	Base
	ElemName string
	Source   Expr
	Body     *Block
}

// WhileStmt is `while guard [from init] max limit { body }`. The max clause
// is mandatory (spec §4.E).
type WhileStmt struct {
	Base
	Guard Expr
	Init  Expr // nil if no `from` clause
	Limit Expr
	Body  *Block
}

// LoopStmt is `loop [name] { body }`, an infinite loop with an optional
// auto-incrementing index binding (spec §4.E).
type LoopStmt struct {
	Base
	IndexName string // "" if not present
	Body      *Block
}

// ParallelStmt is `parallel { stmt; stmt; ... }` (spec §4.E "Concurrency
// forms").
type ParallelStmt struct {
	Base
	Stmts []Stmt
}

// SpawnStmt is `spawn { body }`, a fire-and-forget background task.
type SpawnStmt struct {
	Base
	Body *Block
}

// BreakStmt is `break;`.
type BreakStmt struct{ Base }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Base }

// ReturnStmt is `r expr;` or, in a Void function, bare `r;`.
type ReturnStmt struct {
	Base
	Value Expr // nil for a bare return in a Void function
}

// YieldStmt is `y expr;`, legal only inside a comprehension body
// (spec §4.F "Yield statement").
type YieldStmt struct {
	Base
	Value Expr // nil for `each`'s statement form
}

// ConstDecl is `name:type = expr;`, legal both as a top-level declaration
// and as a statement inside a block (spec §3 "Declaration").
type ConstDecl struct {
	Base
	Name        string
	Declared    Type
	Initializer Expr
}

func (c *ConstDecl) DeclName() string { return c.Name }
func (*ConstDecl) declNode()          {}

// ExprStmt is any expression used as a statement, terminated by `;`.
type ExprStmt struct {
	Base
	X Expr
}
