package check

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/lexer"
	"github.com/nail-lang/nailc/parser"
	"github.com/nail-lang/nailc/registry"
)

type memOpener map[string][]byte

func (m memOpener) Open(path string) ([]byte, error) {
	return m[path], nil
}

func checkSource(t *testing.T, src string) (*Result, *span.Handler) {
	t.Helper()
	stream, lexH := lexer.Lex(memOpener{"main.nail": []byte(src)}, "", "main.nail")
	require.Empty(t, lexH.Diagnostics(), "lexing %q should not fail", src)
	parseH := span.NewHandler()
	file := parser.Parse(stream, parseH)
	require.Empty(t, parseH.Diagnostics(), "parsing %q should not fail", src)
	res, h := Check(file, registry.New())
	return res, h
}

func kinds(h *span.Handler) []span.Kind {
	ks := make([]span.Kind, len(h.Diagnostics()))
	for i, d := range h.Diagnostics() {
		ks[i] = d.Kind
	}
	return ks
}

func TestCheckConstDeclMatchingType(t *testing.T) {
	_, h := checkSource(t, "total:i = 2 + 3;")
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckConstDeclTypeMismatch(t *testing.T) {
	_, h := checkSource(t, "total:i = `nope`;")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

func TestCheckFunctionBodyAndReturnCoverage(t *testing.T) {
	_, h := checkSource(t, "f add(px:i, py:i):i { r px + py; }")
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckFunctionMissingReturnOnAllPaths(t *testing.T) {
	src := "f pick(flag:b):i { if { flag == true => { r 1; } } }"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.ControlFlowError)
}

func TestCheckFunctionReturnCoveredByExhaustiveElse(t *testing.T) {
	src := "f pick(flag:b):i { if { flag == true => { r 1; }, else => { r 2; } } }"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckCallArityAndArgTypeMismatch(t *testing.T) {
	src := "f add(px:i, py:i):i { r px + py; }\nresult:i = add(1);"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

func TestCheckUndefinedFunctionCall(t *testing.T) {
	_, h := checkSource(t, "result:i = bogus(1);")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.NameError)
}

func TestCheckDuplicateTopLevelName(t *testing.T) {
	src := "f noop():v { }\nf noop():v { }"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.NameError)
}

func TestCheckStructLiteralFieldCompleteness(t *testing.T) {
	_, h := checkSource(t, "struct Point { px: i, py: i }\npt:Point = Point { px: 1, py: 2 };")
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckStructLiteralMissingField(t *testing.T) {
	_, h := checkSource(t, "struct Point { px: i, py: i }\npt:Point = Point { px: 1 };")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

func TestCheckStructLiteralUnknownField(t *testing.T) {
	_, h := checkSource(t, "struct Point { px: i, py: i }\npt:Point = Point { px: 1, py: 2, pz: 3 };")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.NameError)
}

func TestCheckEnumVariantAccessAndExhaustiveConditional(t *testing.T) {
	src := "enum Light { Red, Yellow, Green }\n" +
		"xx:Light = Light::Red;\n" +
		"result:i = if { xx == Light::Red => { r 1; }, xx == Light::Yellow => { r 2; }, xx == Light::Green => { r 3; } };"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckEnumConditionalNotExhaustive(t *testing.T) {
	src := "enum Light { Red, Yellow, Green }\n" +
		"xx:Light = Light::Red;\n" +
		"result:i = if { xx == Light::Red => { r 1; }, xx == Light::Yellow => { r 2; } };"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

// TestCheckConditionalUnifiesOkAndWildcardErrBranches pins spec §8 scenario
// 4: a branch typed Result(Int) via ok(...) and a branch typed Result via
// err(...)'s PrimInvalid wildcard must unify without a spurious
// "branches must all produce" diagnostic.
func TestCheckConditionalUnifiesOkAndWildcardErrBranches(t *testing.T) {
	src := "f divide(px:i, py:i):i!e {\n" +
		"  r if { py == 0 => { r err(`divide by zero`); }, else => { r ok(px / py); } };\n" +
		"}\n"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckConditionalRejectsMismatchedConcreteResultBranches(t *testing.T) {
	src := "f pick(px:i):i!e {\n" +
		"  r if { px == 0 => { r ok(1); }, else => { r ok(`nope`); } };\n" +
		"}\n"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

func TestCheckMapComprehension(t *testing.T) {
	src := "nums:a:i = [1, 2, 3];\ndoubled:a:i = map val in nums { y val * 2; };"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckMapComprehensionInconsistentYieldType(t *testing.T) {
	src := "nums:a:i = [1, 2, 3];\n" +
		"bad:a:i = map val in nums { if { val == 1 => { y `one`; } } y val; };"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
}

func TestCheckReduceComprehension(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\ntotal:i = reduce acc val in xs from 0 { y acc + val; };"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckReduceRequiresSeed(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\ntotal:i = reduce acc val in xs { y acc + val; };"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
}

func TestCheckFindComprehensionProducesResult(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\nhit:i!e = find val in xs { y val == 2; };"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckComprehensionBodyMustYieldOnEveryPath(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\n" +
		"doubled:a:i = map val in xs { if { val == 1 => { y val; } } };"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.ControlFlowError)
}

func TestCheckResultDischargeDanger(t *testing.T) {
	src := "f divide(nn:i, dd:i):i!e { r ok(nn); }\nresult:i = danger(divide(4, 2));"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckResultDischargeExpect(t *testing.T) {
	src := "f divide(nn:i, dd:i):i!e { r ok(nn); }\nresult:i = expect(divide(4, 2));"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckResultDischargeSafe(t *testing.T) {
	src := "f fallback(problem:e):i { r 0; }\n" +
		"f divide(nn:i, dd:i):i!e { r ok(nn); }\n" +
		"result:i = safe(divide(4, 2), fallback);"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckDischargeRequiresResultArgument(t *testing.T) {
	_, h := checkSource(t, "result:i = danger(4);")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.TypeError)
}

func TestCheckOkAndErrConstructors(t *testing.T) {
	src := "f divide(nn:i, dd:i):i!e { if { dd == 0 => { r err(`div by zero`); } } r ok(nn); }"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckPipeCallTyping(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\ntotal:i = xs |> array_length();"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckParallelBindingsVisibleAfterBlockOnly(t *testing.T) {
	src := "parallel { one:i = 1; two:i = one + 1; }\nresult:i = one + two;"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.NameError)
}

func TestCheckParallelBindingsVisibleAfterwards(t *testing.T) {
	src := "parallel { one:i = 1; two:i = 2; }\nresult:i = one + two;"
	_, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
}

func TestCheckReturnInsideComprehensionIsError(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\ndoubled:a:i = map val in xs { r val; };"
	_, h := checkSource(t, src)
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.ControlFlowError)
}

func TestCheckYieldOutsideComprehensionIsError(t *testing.T) {
	_, h := checkSource(t, "y 4;")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.ControlFlowError)
}

func TestCheckUndefinedTypeInSignature(t *testing.T) {
	_, h := checkSource(t, "f build():Bogus { r 0; }")
	require.True(t, h.Failed())
	require.Contains(t, kinds(h), span.NameError)
}

func TestCheckUsedStdlibTracking(t *testing.T) {
	src := "xs:a:i = [1, 2, 3];\ntotal:i = xs |> array_length();"
	res, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
	_, ok := res.Used["array_length"]
	require.True(t, ok)
}

func TestCheckGlobalsCollected(t *testing.T) {
	src := "struct Point { px: i, py: i }\nenum Light { Red, Green }\nf noop():v { }"
	res, h := checkSource(t, src)
	require.False(t, h.Failed(), "%v", kinds(h))
	require.Contains(t, res.Globals.Structs, "Point")
	require.Contains(t, res.Globals.Enums, "Light")
	require.Contains(t, res.Globals.Funcs, "noop")
}

func TestCheckAnnotatesExpressionTypes(t *testing.T) {
	file, h := checkSource(t, "result:i = 2 + 3;")
	require.False(t, h.Failed())
	decl := file.File.Items[0].(*ast.ConstDecl)
	require.Equal(t, ast.Primitive(ast.Int), decl.Initializer.Type())
}
