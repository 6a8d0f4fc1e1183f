package lexer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nail-lang/nailc/internal/span"
)

// peekInsertDirective reports whether the scanner is sitting at the start
// of an insert(...) directive. The form must occupy its own line starting
// at column 1 (spec §4.D.1, §6 "Source-file format"); run is only called
// with atLineStart true, which this package treats as "nothing but the
// directive itself appears before it on the line".
func (s *scanner) peekInsertDirective() bool {
	return strings.HasPrefix(s.rest(), "insert(")
}

// consumeInsertDirective parses `insert(` STRING `)` starting at the
// current cursor and returns the string literal's decoded contents. The
// argument must be a string literal, not a variable reference (spec
// §4.D.1).
func (s *scanner) consumeInsertDirective() (string, bool) {
	start := s.cursor
	s.cursor += len("insert(")
	s.takeWhile(func(r rune) bool { return r == ' ' || r == '\t' })

	if s.peek() != '`' {
		s.l.h.Errorf(span.LexError, span.NewSpan(s.file, start, s.cursor), "insert(...) argument must be a string literal")
		s.cursor = start
		return "", false
	}
	strTok := s.scanString()

	s.takeWhile(func(r rune) bool { return r == ' ' || r == '\t' })
	if s.peek() != ')' {
		s.l.h.Errorf(span.LexError, strTok.Span, "insert(...) directive must be closed with ')'")
		return "", false
	}
	s.pop() // ')'
	s.takeWhile(func(r rune) bool { return r == ' ' || r == '\t' })
	if !s.done() && s.peek() != '\n' {
		// trailing content on the insert(...) line; tolerate a comment
		if !(s.peek() == '/' && s.peekAt(1) == '/') {
			return "", false
		}
	}
	return strTok.Str, true
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// normalizeKey canonicalizes a path for cycle-detection purposes so that
// `a/../a/x.nail` and `a/x.nail` are recognized as the same file.
func normalizeKey(path string) string {
	return filepath.Clean(path)
}

// withinRoot reports whether path, once resolved, stays inside root (spec
// §4.D.1 "Paths that escape the project root are rejected").
func withinRoot(root, path string) bool {
	if root == "" {
		return true
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// normalizeLineEndings converts CRLF and lone CR to LF (spec §6
// "Source-file format": "Line endings are LF or CRLF; both are accepted and
// normalized to LF before lexing").
func normalizeLineEndings(data []byte) []byte {
	if !hasCR(data) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\r' {
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, data[i])
	}
	return out
}

func hasCR(data []byte) bool {
	for _, b := range data {
		if b == '\r' {
			return true
		}
	}
	return false
}

// OSOpener reads files directly from the local filesystem.
type OSOpener struct{}

func (OSOpener) Open(path string) ([]byte, error) { return os.ReadFile(path) }
