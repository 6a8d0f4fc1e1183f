package span

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Severity classifies a Diagnostic. The compiler emits no Warning
// diagnostics by design (spec §4.A); the level exists so a future stage
// could without changing the rendering contract.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind partitions diagnostics into the taxonomy of spec §7.
type Kind int

const (
	LexError Kind = iota
	ParseError
	NameError
	TypeError
	ControlFlowError
	RegistryError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case NameError:
		return "name error"
	case TypeError:
		return "type error"
	case ControlFlowError:
		return "control-flow error"
	case RegistryError:
		return "registry error"
	default:
		return "error"
	}
}

// Label attaches a human-readable note to a secondary span.
type Label struct {
	Span Span
	Text string
}

// Diagnostic is a single compiler-reported problem, collected rather than
// thrown (spec §4.A, §7).
type Diagnostic struct {
	Severity    Severity
	Kind        Kind
	Message     string
	Primary     Span
	Secondary   []Label
	Remediation string
}

// Handler accumulates diagnostics for one compilation stage. Stages never
// panic on user input; a Handler.Errorf call records the problem and lets
// the stage keep looking for more (spec §7's "recover and continue").
type Handler struct {
	diags []Diagnostic
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler { return &Handler{} }

// Errorf records an error-severity diagnostic.
func (h *Handler) Errorf(kind Kind, primary Span, format string, args ...interface{}) {
	h.diags = append(h.diags, Diagnostic{
		Severity: Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Primary:  primary,
	})
}

// Report records a fully-formed Diagnostic, e.g. one carrying secondary
// spans or a remediation hint.
func (h *Handler) Report(d Diagnostic) {
	h.diags = append(h.diags, d)
}

// Diagnostics returns everything recorded so far, in report order.
func (h *Handler) Diagnostics() []Diagnostic { return h.diags }

// Failed reports whether any Error-severity diagnostic was recorded. Per
// spec §7, a non-empty diagnostic list means the stage failed and later
// stages are not invoked.
func (h *Handler) Failed() bool {
	for _, d := range h.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Render formats a Diagnostic the way spec §4.A and §7 describe: file path,
// 1-based line:column, severity, message, and a source snippet with a caret
// range underlining the primary span.
func Render(d Diagnostic) string {
	var b strings.Builder
	f := d.Primary.File
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", f.Path(), d.Primary.StartLine, d.Primary.StartCol, d.Severity, d.Message)
	b.WriteString(snippet(d.Primary))
	for _, l := range d.Secondary {
		fmt.Fprintf(&b, "%s:%d:%d: note: %s\n", l.Span.File.Path(), l.Span.StartLine, l.Span.StartCol, l.Text)
		b.WriteString(snippet(l.Span))
	}
	if d.Remediation != "" {
		fmt.Fprintf(&b, "  help: %s\n", d.Remediation)
	}
	return b.String()
}

// snippet renders the offending source line followed by a line of carets
// under the span's range, grapheme-cluster aware so multi-byte identifiers
// still line up (spec's caret-underscore requirement, §4.A/§7).
func snippet(s Span) string {
	line := s.File.Line(s.StartLine)
	var b strings.Builder
	fmt.Fprintf(&b, "    %s\n", line)

	prefixWidth := displayWidth(line[:min(s.StartCol-1, len(line))])
	length := s.EndByte - s.StartByte
	if length <= 0 {
		length = 1
	}
	caretWidth := displayWidth(string(s.File.Bytes()[s.StartByte:min(s.StartByte+length, len(s.File.Bytes()))]))
	if caretWidth <= 0 {
		caretWidth = 1
	}
	b.WriteString("    ")
	b.WriteString(strings.Repeat(" ", prefixWidth))
	b.WriteString(strings.Repeat("^", caretWidth))
	b.WriteString("\n")
	return b.String()
}

func displayWidth(s string) int {
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		rw := g.Width()
		if rw == 0 {
			rw = 1
		}
		w += rw
	}
	return w
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
