package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/lexer"
	"github.com/nail-lang/nailc/token"
)

type memOpener map[string][]byte

func (m memOpener) Open(path string) ([]byte, error) {
	return m[path], nil
}

func parse(t *testing.T, src string) (*ast.File, *span.Handler) {
	t.Helper()
	stream, lexH := lexer.Lex(memOpener{"main.nail": []byte(src)}, "", "main.nail")
	require.Empty(t, lexH.Diagnostics(), "lexing %q should not fail", src)
	h := span.NewHandler()
	file := Parse(stream, h)
	return file, h
}

func parseExprString(t *testing.T, src string) ast.Expr {
	t.Helper()
	file, h := parse(t, src)
	require.Empty(t, h.Diagnostics())
	require.Len(t, file.Items, 1)
	stmt, ok := file.Items[0].(*ast.ExprStmt)
	require.True(t, ok)
	return stmt.X
}

func TestParseConstDeclArithmetic(t *testing.T) {
	file, h := parse(t, "result:i = 2 + 3 * 4;")
	require.Empty(t, h.Diagnostics())
	require.Len(t, file.Items, 1)
	decl, ok := file.Items[0].(*ast.ConstDecl)
	require.True(t, ok)
	require.Equal(t, "result", decl.Name)

	bin, ok := decl.Initializer.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseMultiplicationBindsTighterThanAddition(t *testing.T) {
	expr := parseExprString(t, "2 + 3 * 4;")
	bin := expr.(*ast.Binary)
	require.Equal(t, ast.OpAdd, bin.Op)
	_, rightIsMul := bin.Right.(*ast.Binary)
	require.True(t, rightIsMul)
}

func TestParseFunctionDecl(t *testing.T) {
	file, h := parse(t, "f add(a:i, b:i):i { r a + b; }")
	require.Empty(t, h.Diagnostics())
	fn, ok := file.Items[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.False(t, fn.Fallible)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParseFallibleFunctionDecl(t *testing.T) {
	file, h := parse(t, "f divide(a:i, b:i):i!e { r ok(a); }")
	require.Empty(t, h.Diagnostics())
	fn := file.Items[0].(*ast.FuncDecl)
	require.True(t, fn.Fallible)
	require.True(t, fn.ReturnType.IsResult())
}

func TestParseStructAndEnumDecl(t *testing.T) {
	file, h := parse(t, "struct Point { px: i, py: i }\nenum Light { Red, Yellow, Green }\n")
	require.Empty(t, h.Diagnostics())
	st, ok := file.Items[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)

	en, ok := file.Items[1].(*ast.EnumDecl)
	require.True(t, ok)
	require.Equal(t, []string{"Red", "Yellow", "Green"}, en.Variants)
}

func TestParseArrayLiteralAndMapComprehension(t *testing.T) {
	file, h := parse(t, "nums:a:i = [1,2,3]; doubled:a:i = map val in nums { y val * 2; };")
	require.Empty(t, h.Diagnostics())
	require.Len(t, file.Items, 2)

	decl := file.Items[0].(*ast.ConstDecl)
	arr, ok := decl.Initializer.(*ast.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Elems, 3)

	mapped := file.Items[1].(*ast.ConstDecl)
	comp, ok := mapped.Initializer.(*ast.Comprehension)
	require.True(t, ok)
	require.Equal(t, ast.CompMap, comp.Kind)
	require.Equal(t, "val", comp.ElemName)
	require.Empty(t, comp.IndexName)
	require.Nil(t, comp.Seed)
}

func TestParseReduceWithSeed(t *testing.T) {
	file, h := parse(t, "total:i = reduce acc val in xs from 0 { y acc + val; };")
	require.Empty(t, h.Diagnostics())
	decl := file.Items[0].(*ast.ConstDecl)
	comp := decl.Initializer.(*ast.Comprehension)
	require.Equal(t, ast.CompReduce, comp.Kind)
	require.Equal(t, "acc", comp.ElemName)
	require.Equal(t, "val", comp.IndexName)
	require.NotNil(t, comp.Seed)
}

func TestParseConditionalWithElse(t *testing.T) {
	src := "if { b == 0 => { r err(`div by zero`); }, else => { r ok(a); } }"
	expr := parseExprString(t, src)
	cond, ok := expr.(*ast.Conditional)
	require.True(t, ok)
	require.Len(t, cond.Branches, 1)
	require.NotNil(t, cond.Else)
}

func TestParseEnumVariantAccessAndEquality(t *testing.T) {
	file, h := parse(t, "xx:Light = Light::Red;\nif { xx == Light::Red => { print(`r`); } }")
	require.Empty(t, h.Diagnostics())
	decl := file.Items[0].(*ast.ConstDecl)
	variant, ok := decl.Initializer.(*ast.EnumVariant)
	require.True(t, ok)
	require.Equal(t, "Light", variant.EnumName)
	require.Equal(t, "Red", variant.VariantName)
}

func TestParsePipeAppendsFinalArgument(t *testing.T) {
	expr := parseExprString(t, "xs |> array_sum();")
	pipe, ok := expr.(*ast.Pipe)
	require.True(t, ok)
	require.Len(t, pipe.Call.Args, 1)
	ident, ok := pipe.Call.Args[0].(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "xs", ident.Name)
}

func TestParseWhileRequiresMaxClause(t *testing.T) {
	file, h := parse(t, "while true max 10 { break; }")
	require.Empty(t, h.Diagnostics())
	ws, ok := file.Items[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.NotNil(t, ws.Limit)

	_, missing := parse(t, "while true { break; }")
	require.True(t, missing.Failed())
}

func TestParseParallelAndSpawnBlocks(t *testing.T) {
	file, h := parse(t, "parallel { a:i = 1; b:i = 2; }\nspawn { print(`hi`); }\n")
	require.Empty(t, h.Diagnostics())
	pb, ok := file.Items[0].(*ast.ParallelStmt)
	require.True(t, ok)
	require.Len(t, pb.Stmts, 2)

	sb, ok := file.Items[1].(*ast.SpawnStmt)
	require.True(t, ok)
	require.Len(t, sb.Body.Stmts, 1)
}

func TestParseMissingSemicolonRecovers(t *testing.T) {
	_, h := parse(t, "a:i = 1\nb:i = 2;")
	require.True(t, h.Failed())
	require.Equal(t, span.ParseError, h.Diagnostics()[0].Kind)
}

func TestParseFieldAccessAndIndexAccess(t *testing.T) {
	expr := parseExprString(t, "point.px;")
	fa, ok := expr.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "px", fa.Field)

	expr2 := parseExprString(t, "nums[0];")
	ia, ok := expr2.(*ast.IndexAccess)
	require.True(t, ok)
	_, isInt := ia.Index.(*ast.IntLit)
	require.True(t, isInt)
}

func TestParseUnaryNegateAndNot(t *testing.T) {
	expr := parseExprString(t, "-xx;")
	un, ok := expr.(*ast.Unary)
	require.True(t, ok)
	require.Equal(t, ast.OpNeg, un.Op)

	expr2 := parseExprString(t, "!ok;")
	un2, ok := expr2.(*ast.Unary)
	require.True(t, ok)
	require.Equal(t, ast.OpNot, un2.Op)
}

func TestParsePanicsNeverHang(t *testing.T) {
	// Malformed input at top level must still terminate parsing.
	_, h := parse(t, "struct {")
	require.True(t, h.Failed())
	require.NotEmpty(t, token.Kind(0).String()) // sanity: token package linked in
}
