// Package nail is the Nail compiler's library entry point (spec §2
// "System overview", §6 "External interfaces"): a single function turning
// one source file into a token stream, an AST, a type-checked AST, emitted
// target source, or a dependency manifest, depending on the requested mode.
//
// Shape grounded on the teacher's top-level Compiler (compiler.go): a
// small struct wrapping the pipeline stages behind one Compile method,
// with diagnostics accumulated behind a *span.Handler rather than a single
// error and concurrency across independent files handled by the caller,
// not hidden inside a single-file Compile call.
package nail

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/check"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/lexer"
	"github.com/nail-lang/nailc/parser"
	"github.com/nail-lang/nailc/registry"
	"github.com/nail-lang/nailc/token"
	"github.com/nail-lang/nailc/transpile"
)

// Mode selects the pipeline's stopping point (spec §6 "mode selects the
// stopping point: lex-only, parse-only, check-only, transpile, or
// deps-only").
type Mode int

const (
	ModeLex Mode = iota
	ModeParse
	ModeCheck
	ModeTranspile
	ModeDeps
)

// CompileResult carries the diagnostics from every stage that ran plus
// whichever payload the requested Mode stopped at (spec §6 "CompileResult
// carries: a list of diagnostics ..., and, depending on mode: the token
// stream, the AST, the annotated AST plus used-stdlib set, the emitted
// target source text plus manifest, or only the manifest").
type CompileResult struct {
	Path        string
	Diagnostics []span.Diagnostic

	Tokens   *token.Stream      // set when Mode >= ModeLex
	File     *ast.File          // set when Mode >= ModeParse
	Checked  *check.Result      // set when Mode >= ModeCheck
	Source   string             // set when Mode == ModeTranspile
	Manifest []string           // set when Mode == ModeTranspile or ModeDeps
}

// Compile runs the pipeline over the file at path up through mode (spec §6
// "conceptually compile(source_file_path, mode) -> CompileResult"). Each
// stage's diagnostics are accumulated onto the result; per spec §7
// "Propagation", a stage that reports any error halts the pipeline before
// the next stage runs.
func Compile(opener lexer.Opener, root, path string, mode Mode, reg *registry.Registry) CompileResult {
	res := CompileResult{Path: path}

	stream, lexH := lexer.Lex(opener, root, path)
	res.Diagnostics = append(res.Diagnostics, lexH.Diagnostics()...)
	res.Tokens = stream
	if lexH.Failed() || mode == ModeLex {
		return res
	}

	parseH := span.NewHandler()
	file := parser.Parse(stream, parseH)
	res.Diagnostics = append(res.Diagnostics, parseH.Diagnostics()...)
	res.File = file
	if parseH.Failed() || mode == ModeParse {
		return res
	}

	checked, checkH := check.Check(file, reg)
	res.Diagnostics = append(res.Diagnostics, checkH.Diagnostics()...)
	res.Checked = checked
	if checkH.Failed() || mode == ModeCheck {
		return res
	}

	out := transpile.Transpile(checked, reg)
	res.Manifest = out.ManifestLines
	if mode == ModeTranspile {
		res.Source = out.Source
	}
	return res
}

// CompileAll runs Compile over every path concurrently, grounded on the
// teacher's own practice of fanning per-file compilation work out across
// goroutines (compiler.go's semaphore-bounded executor) — this driver uses
// errgroup for the same "run N independent per-file pipelines, collect
// every result" shape. A failure in one file's pipeline does not cancel the
// others; each result is returned independently so the caller sees every
// file's diagnostics. Diagnostics are carried on the results, never as the
// returned error, so the error is always nil.
func CompileAll(ctx context.Context, opener lexer.Opener, root string, paths []string, mode Mode, reg *registry.Registry) ([]CompileResult, error) {
	results := make([]CompileResult, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			results[i] = Compile(opener, root, p, mode, reg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
