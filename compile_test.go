package nail

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nail-lang/nailc/internal/diffreport"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/registry"
)

type memOpener map[string][]byte

func (m memOpener) Open(path string) ([]byte, error) {
	return m[path], nil
}

func TestCompileLexOnlyStopsAfterLexing(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("total:i = 2 + 3;")}, "", "main.nail", ModeLex, registry.New())
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.Tokens)
	require.Nil(t, res.File)
	require.Nil(t, res.Checked)
	require.Empty(t, res.Source)
}

func TestCompileParseOnlyStopsAfterParsing(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("total:i = 2 + 3;")}, "", "main.nail", ModeParse, registry.New())
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.File)
	require.Nil(t, res.Checked)
}

func TestCompileCheckOnlyStopsAfterChecking(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("total:i = 2 + 3;")}, "", "main.nail", ModeCheck, registry.New())
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.Checked)
	require.Empty(t, res.Source)
}

func TestCompileTranspileProducesSourceAndManifest(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("f add(px:i, py:i):i { r px + py; }")}, "", "main.nail", ModeTranspile, registry.New())
	require.Empty(t, res.Diagnostics)
	require.Contains(t, res.Source, "pub fn add")
	require.NotNil(t, res.Manifest)
}

func TestCompileDepsOnlyOmitsSourceButKeepsManifest(t *testing.T) {
	src := "f main():v { h:s = crypto_sha256(`hi`); }"
	res := Compile(memOpener{"main.nail": []byte(src)}, "", "main.nail", ModeDeps, registry.New())
	require.Empty(t, res.Diagnostics)
	require.Empty(t, res.Source)
	require.Contains(t, res.Manifest, `sha2 = "0.10"`)
}

func TestCompileHaltsPipelineOnLexError(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("@@@")}, "", "main.nail", ModeTranspile, registry.New())
	require.NotEmpty(t, res.Diagnostics)
	require.Nil(t, res.File)
	require.Nil(t, res.Checked)
}

func TestCompileHaltsPipelineOnCheckError(t *testing.T) {
	res := Compile(memOpener{"main.nail": []byte("total:i = `nope`;")}, "", "main.nail", ModeTranspile, registry.New())
	require.NotEmpty(t, res.Diagnostics)
	require.Contains(t, diagnosticKinds(res.Diagnostics), span.TypeError)
	require.Empty(t, res.Source)
}

func TestCompileAllRunsIndependentFilesConcurrently(t *testing.T) {
	opener := memOpener{
		"a.nail": []byte("total:i = 1 + 1;"),
		"b.nail": []byte("total:i = 2 + 2;"),
	}
	results, err := CompileAll(context.Background(), opener, "", []string{"a.nail", "b.nail"}, ModeCheck, registry.New())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Empty(t, r.Diagnostics)
		require.NotNil(t, r.Checked)
	}
}

// TestCompileTranspileIsDeterministic checks spec §8 property 10:
// compiling the same input twice yields byte-identical target source and
// manifest. A mismatch is reported as a unified diff rather than a bare
// string inequality so a regression is easy to read.
func TestCompileTranspileIsDeterministic(t *testing.T) {
	src := `
struct Point { px: i, py: i }
f distance(pa:Point, pb:Point):i {
    dx:i = pa.px - pb.px;
    dy:i = pa.py - pb.py;
    r dx * dx + dy * dy;
}
`
	opener := memOpener{"main.nail": []byte(src)}
	first := Compile(opener, "", "main.nail", ModeTranspile, registry.New())
	second := Compile(opener, "", "main.nail", ModeTranspile, registry.New())
	require.Empty(t, first.Diagnostics)

	require.Empty(t, diffreport.Compare(second.Source, first.Source))
	if diff := cmp.Diff(first.Manifest, second.Manifest); diff != "" {
		t.Errorf("manifest differs between runs (-first +second):\n%s", diff)
	}
}

func diagnosticKinds(ds []span.Diagnostic) []span.Kind {
	ks := make([]span.Kind, len(ds))
	for i, d := range ds {
		ks[i] = d.Kind
	}
	return ks
}
