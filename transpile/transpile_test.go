package transpile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nail-lang/nailc/check"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/lexer"
	"github.com/nail-lang/nailc/parser"
	"github.com/nail-lang/nailc/registry"
)

type memOpener map[string][]byte

func (m memOpener) Open(path string) ([]byte, error) {
	return m[path], nil
}

func transpileSource(t *testing.T, src string) Output {
	t.Helper()
	stream, lexH := lexer.Lex(memOpener{"main.nail": []byte(src)}, "", "main.nail")
	require.Empty(t, lexH.Diagnostics(), "lexing %q should not fail", src)
	parseH := span.NewHandler()
	file := parser.Parse(stream, parseH)
	require.Empty(t, parseH.Diagnostics(), "parsing %q should not fail", src)
	reg := registry.New()
	res, checkH := check.Check(file, reg)
	require.False(t, checkH.Failed(), "checking %q should not fail", src)
	return Transpile(res, reg)
}

func TestTranspileConstDecl(t *testing.T) {
	out := transpileSource(t, "total:i = 2 + 3;")
	require.Contains(t, out.Source, "const TOTAL: i64 = (2 + 3);")
}

func TestTranspileStructDecl(t *testing.T) {
	out := transpileSource(t, "struct Point { px: i, py: i }")
	require.Contains(t, out.Source, "pub struct Point {")
	require.Contains(t, out.Source, "pub px: i64,")
	require.Contains(t, out.Source, "pub py: i64,")
}

func TestTranspileEnumDecl(t *testing.T) {
	out := transpileSource(t, "enum Color { Red, Green, Blue }")
	require.Contains(t, out.Source, "pub enum Color {")
	require.Contains(t, out.Source, "Red,")
}

func TestTranspileSimpleFuncDecl(t *testing.T) {
	out := transpileSource(t, "f add(px:i, py:i):i { r px + py; }")
	require.Contains(t, out.Source, "pub fn add(px: i64, py: i64) -> i64 {")
	require.Contains(t, out.Source, "return (px + py);")
}

func TestTranspileFallibleFuncIsAsync(t *testing.T) {
	out := transpileSource(t, "f risky(px:i):i!e { r ok(px); }")
	require.Contains(t, out.Source, "pub async fn risky(px: i64) -> Result<i64, NailError> {")
}

func TestTranspileRegistryCall(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; count:i = array_length(xs); }")
	require.Contains(t, out.Source, "nail_rt::")
	require.Contains(t, out.Source, "array_length")
}

func TestTranspilePrintCall(t *testing.T) {
	out := transpileSource(t, "f main():v { print(`hello`); }")
	require.Contains(t, out.Source, "println!(")
}

func TestTranspileOkErrConstructors(t *testing.T) {
	out := transpileSource(t, "f risky():i!e { r ok(1); }")
	require.Contains(t, out.Source, "Ok(1)")
}

func TestTranspileErrConstructor(t *testing.T) {
	out := transpileSource(t, "f risky():i!e { r err(`boom`); }")
	require.Contains(t, out.Source, "Err(NailError::new(")
}

func TestTranspileDangerDischarge(t *testing.T) {
	out := transpileSource(t, `
f risky():i!e { r ok(1); }
f main():v { v:i = danger(risky()); }
`)
	require.Contains(t, out.Source, ".unwrap()")
}

func TestTranspileExpectDischarge(t *testing.T) {
	out := transpileSource(t, `
f risky():i!e { r ok(1); }
f main():v { v:i = expect(risky()); }
`)
	require.Contains(t, out.Source, ".expect(")
}

func TestTranspileSafeDischarge(t *testing.T) {
	out := transpileSource(t, `
f risky():i!e { r ok(1); }
f fallback(problem:e):i { r 0; }
f main():v { v:i = safe(risky(), fallback); }
`)
	require.Contains(t, out.Source, "match")
	require.Contains(t, out.Source, "fallback(__e)")
}

func TestTranspileMapComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; ys:a:i = map num in xs { y num * 2; }; }")
	require.Contains(t, out.Source, "__out.push(")
	require.Contains(t, out.Source, "for num in xs")
}

func TestTranspileFilterComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; ys:a:i = filter num in xs { y num > 1; }; }")
	require.Contains(t, out.Source, "if (num > 1)")
	require.Contains(t, out.Source, "__out.push(num.clone())")
}

func TestTranspileReduceComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; total:i = reduce acc val in xs from 0 { y acc + val; }; }")
	require.Contains(t, out.Source, "let mut acc = 0;")
	require.Contains(t, out.Source, "for val in xs.iter()")
	require.Contains(t, out.Source, "acc = (acc + val);")
}

// TestTranspileReduceSumsAllElements pins spec §8 scenario 3: reducing
// [1,2,3,4] from 0 with acc+val must thread every element through the
// accumulator, not just the last element or the last index.
func TestTranspileReduceSumsAllElements(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3, 4]; total:i = reduce acc val in xs from 0 { y acc + val; }; }")
	require.NotContains(t, out.Source, "enumerate")
	require.Contains(t, out.Source, "let mut acc = 0;")
	require.Contains(t, out.Source, "for val in xs.iter() {")
	require.Contains(t, out.Source, "acc = (acc + val);")
	require.Contains(t, out.Source, "acc\n")
}

func TestTranspileEachComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; each num in xs { print(num); }; }")
	require.Contains(t, out.Source, "println!(")
}

func TestTranspileFindComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; found:i!e = find num in xs { y num > 1; }; }")
	require.Contains(t, out.Source, "return Ok(num.clone());")
	require.Contains(t, out.Source, "not found")
}

func TestTranspileAllComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:b = [true, false]; ok:b = all num in xs { y num; }; }")
	require.Contains(t, out.Source, "if !(num) { return false; }")
}

func TestTranspileAnyComprehension(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:b = [true, false]; ok:b = any num in xs { y num; }; }")
	require.Contains(t, out.Source, "if num { return true; }")
}

func TestTranspileConditionalExpr(t *testing.T) {
	out := transpileSource(t, `
f pick(flag:b):i {
    r if { flag == true => { r 1; }, else => { r 0; } };
}
`)
	require.Contains(t, out.Source, "if (flag == true)")
}

func TestTranspileWhileLoop(t *testing.T) {
	out := transpileSource(t, "f main():v { while true max 10 { print(1); } }")
	require.Contains(t, out.Source, "exceeded max iterations")
}

func TestTranspileLoopWithIndex(t *testing.T) {
	out := transpileSource(t, "f main():v { loop idx { print(idx); break; } }")
	require.Contains(t, out.Source, "loop {")
	require.Contains(t, out.Source, "idx += 1;")
}

func TestTranspileForStmt(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1, 2, 3]; for num in xs { print(num); } }")
	require.Contains(t, out.Source, "for num in xs.iter() {")
}

func TestTranspileSpawnBlock(t *testing.T) {
	out := transpileSource(t, "f main():v { spawn { print(1); } }")
	require.Contains(t, out.Source, "tokio::spawn(async move {")
}

func TestTranspileParallelBlock(t *testing.T) {
	out := transpileSource(t, `
f one():i { r 1; }
f main():v { parallel { a:i = one(); } }
`)
	require.Contains(t, out.Source, "tokio::spawn")
	require.Contains(t, out.Source, "__par_0.await.unwrap()")
}

func TestTranspileArrayAndHashmapTypes(t *testing.T) {
	out := transpileSource(t, "f main():v { xs:a:i = [1]; hm:h:s:i = hashmap_new(); }")
	require.Contains(t, out.Source, "Vec<i64>")
	require.Contains(t, out.Source, "HashMap<String, i64>")
}

func TestTranspileManifestDedupAndSort(t *testing.T) {
	out := transpileSource(t, `
f main():v {
    h1:s = crypto_sha256(`+"`hi`"+`);
    h2:s = crypto_sha256(`+"`yo`"+`);
}
`)
	require.Len(t, out.ManifestLines, 1)
	require.Contains(t, out.ManifestLines[0], "sha2")
}

func TestTranspileManifestIncludesCoreRuntimeForFallible(t *testing.T) {
	out := transpileSource(t, "f risky():i!e { r ok(1); }")
	require.Contains(t, out.ManifestLines, `nail-rt = "0.1"`)
}

func TestTranspileStructLiteral(t *testing.T) {
	out := transpileSource(t, `
struct Point { px: i, py: i }
f main():v { pt:Point = Point { px: 1, py: 2 }; }
`)
	require.Contains(t, out.Source, "Point { px: 1, py: 2 }")
}

func TestTranspileEnumVariantAccess(t *testing.T) {
	out := transpileSource(t, `
enum Color { Red, Green }
f main():v { cc:Color = Color::Red; }
`)
	require.Contains(t, out.Source, "Color::Red")
}

func TestTranspileManifestIncludesTokioForConcurrency(t *testing.T) {
	out := transpileSource(t, "f main():v { spawn { print(1); } }")
	require.Contains(t, out.ManifestLines, `tokio = "1"`)
}

func TestTranspileManifestOmitsTokioWithoutConcurrency(t *testing.T) {
	out := transpileSource(t, "f main():v { print(1); }")
	require.NotContains(t, out.ManifestLines, `tokio = "1"`)
}
