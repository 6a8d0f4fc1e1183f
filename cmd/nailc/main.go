// Command nailc is the Nail compiler's CLI driver (spec §6 "External
// interfaces": "The surrounding CLI driver is out of scope but is expected
// to recognize the mode flags ... and the positional argument"). It is the
// thinnest possible wrapper over the nail package's Compile entry point.
package main

import (
	"fmt"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	nail "github.com/nail-lang/nailc"
	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/lexer"
	"github.com/nail-lang/nailc/registry"
)

var version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

var logger = zap.NewNop()

var args struct {
	lexOnly   bool
	parseOnly bool
	checkOnly bool
	transpile bool
	depsOnly  bool
	root      string
	verbose   bool
}

var cmdRoot = &cobra.Command{
	Use:          "nailc [flags] FILE",
	Short:        "compile a Nail source file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func main() {
	cmdRoot.PersistentFlags().BoolVar(&args.lexOnly, "lex-only", false, "stop after lexing and print the token stream")
	cmdRoot.PersistentFlags().BoolVar(&args.parseOnly, "parse-only", false, "stop after parsing and print the AST")
	cmdRoot.PersistentFlags().BoolVar(&args.checkOnly, "check-only", false, "stop after checking, reporting diagnostics only")
	cmdRoot.PersistentFlags().BoolVar(&args.transpile, "transpile", false, "emit target source and the dependency manifest")
	cmdRoot.PersistentFlags().BoolVar(&args.depsOnly, "deps-only", false, "emit only the dependency manifest")
	cmdRoot.PersistentFlags().StringVar(&args.root, "root", "", "project root that include paths must stay within")
	cmdRoot.PersistentFlags().BoolVar(&args.verbose, "verbose", false, "trace pipeline stage transitions to stderr")
	cmdRoot.Flags().Bool("version", false, "print version and exit")

	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, positional []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		fmt.Println(version.String())
		return nil
	}

	if args.verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		built, err := cfg.Build()
		if err == nil {
			logger = built
		}
	}

	mode, err := resolveMode()
	if err != nil {
		return err
	}

	path := positional[0]
	logger.Debug("starting compilation", zap.String("path", path), zap.Int("mode", int(mode)))

	res := nail.Compile(lexer.OSOpener{}, args.root, path, mode, registry.New())

	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, span.Render(d))
	}

	switch mode {
	case nail.ModeTranspile:
		if res.Source != "" {
			fmt.Println(res.Source)
		}
		printManifest(res.Manifest)
	case nail.ModeDeps:
		printManifest(res.Manifest)
	}

	if anyError(res.Diagnostics) {
		os.Exit(1)
	}
	return nil
}

// resolveMode translates the mutually-exclusive mode flags into a
// nail.Mode, defaulting to ModeCheck when none is given (spec §6 names five
// flags but no default; checking end-to-end without emitting anything is
// the least surprising default for a bare invocation).
func resolveMode() (nail.Mode, error) {
	set := 0
	mode := nail.ModeCheck
	if args.lexOnly {
		set++
		mode = nail.ModeLex
	}
	if args.parseOnly {
		set++
		mode = nail.ModeParse
	}
	if args.checkOnly {
		set++
		mode = nail.ModeCheck
	}
	if args.transpile {
		set++
		mode = nail.ModeTranspile
	}
	if args.depsOnly {
		set++
		mode = nail.ModeDeps
	}
	if set > 1 {
		return mode, fmt.Errorf("only one of --lex-only, --parse-only, --check-only, --transpile, --deps-only may be given")
	}
	return mode, nil
}

// printManifest renders the dependency manifest with a sentinel prefix line
// so it can be told apart from emitted target source in a combined stream
// (spec §6 "Emitted-file format": "followed by the dependency manifest in a
// separate stream or side-channel ... a standard-output section prefixed
// with a sentinel line").
func printManifest(lines []string) {
	fmt.Println("# nail-deps")
	for _, l := range lines {
		fmt.Println(l)
	}
}

func anyError(ds []span.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == span.Error {
			return true
		}
	}
	return false
}
