// Package lexer turns Nail source text into a token.Stream (spec §2
// Component D, §4.D). Its scanning core — a cursor over the raw source
// with peek/pop/takeWhile helpers — is grounded on the teacher's
// experimental/internal/lexer package; insert(...) include expansion and
// cycle detection is grounded on the teacher's parser/imports package,
// which implements the equivalent "open this other file, splice its
// content in, detect cycles" logic for protobuf's import statement.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nail-lang/nailc/internal/span"
	"github.com/nail-lang/nailc/token"
)

// Opener resolves a project-relative path to file contents. The default
// implementation, OSOpener, reads from the local filesystem.
type Opener interface {
	Open(path string) ([]byte, error)
}

// Lex scans the file at path, including any insert(...) directives, and
// returns the resulting token stream (always ending in one EOF token) plus
// a Handler carrying any lex errors encountered (spec §4.D "Output").
//
// root bounds the project: every included path must resolve to a location
// inside it (spec §4.D.1 "Paths that escape the project root are
// rejected").
func Lex(opener Opener, root, path string) (*token.Stream, *span.Handler) {
	h := span.NewHandler()
	l := &lexer{opener: opener, root: root, h: h}
	toks := l.lexFile(path, map[string]bool{})

	var eofFile *span.File
	if len(l.files) > 0 {
		eofFile = l.files[len(l.files)-1]
	} else {
		eofFile = span.NewFile(0, path, nil)
	}
	end := len(eofFile.Bytes())
	toks = append(toks, token.Token{Kind: token.EOF, Span: span.NewSpan(eofFile, end, end)})

	return &token.Stream{Tokens: toks}, h
}

type lexer struct {
	opener  Opener
	root    string
	h       *span.Handler
	files   []*span.File
	nextID  int
}

// scanner holds the per-file scanning state. A fresh scanner is created for
// every file lexed, including each included file.
type scanner struct {
	l      *lexer
	file   *span.File
	src    string
	cursor int

	badStart int // -1 when not currently accumulating an Unrecognized run
}

func (l *lexer) lexFile(path string, open map[string]bool) []token.Token {
	key := normalizeKey(path)
	if open[key] {
		// Cycle: report against an empty span in the offending file so the
		// diagnostic still names a location (spec §4.D.1, §8 boundary
		// behaviors "include-cycle error").
		f := span.NewFile(span.FileID(l.nextID), path, nil)
		l.nextID++
		l.h.Errorf(span.LexError, span.NewSpan(f, 0, 0), "include cycle detected at %q", path)
		return nil
	}
	if !withinRoot(l.root, path) {
		f := span.NewFile(span.FileID(l.nextID), path, nil)
		l.nextID++
		l.h.Errorf(span.LexError, span.NewSpan(f, 0, 0), "included path %q escapes the project root", path)
		return nil
	}

	data, err := l.opener.Open(path)
	if err != nil {
		f := span.NewFile(span.FileID(l.nextID), path, nil)
		l.nextID++
		l.h.Errorf(span.LexError, span.NewSpan(f, 0, 0), "cannot open %q: %v", path, err)
		return nil
	}
	data = normalizeLineEndings(data)

	file := span.NewFile(span.FileID(l.nextID), path, data)
	l.nextID++
	l.files = append(l.files, file)

	open = cloneSet(open)
	open[key] = true

	s := &scanner{l: l, file: file, src: string(data), badStart: -1}
	return s.run(open)
}

func cloneSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m)+1)
	for k := range m {
		out[k] = true
	}
	return out
}

// run scans the whole file, splicing in included token streams whenever an
// insert(...) directive is found at the start of a line (spec §4.D.1).
func (s *scanner) run(open map[string]bool) []token.Token {
	var out []token.Token
	atLineStart := true
	for !s.done() {
		if atLineStart && s.peekInsertDirective() {
			path, ok := s.consumeInsertDirective()
			if ok {
				s.flushBad(&out)
				dir := dirOf(s.file.Path())
				included := joinPath(dir, path)
				out = append(out, s.l.lexFile(included, open)...)
			}
			// A rejected directive's remaining text is lexed as ordinary
			// tokens rather than being re-examined as a directive.
			atLineStart = ok
			continue
		}

		start := s.cursor
		r := s.peek()
		switch {
		case r == '\n':
			s.pop()
			s.file.AddLine(s.cursor)
			atLineStart = true
			continue
		case r == ' ' || r == '\t' || r == '\r':
			s.pop()
			atLineStart = false
			continue
		case r == '/' && s.peekAt(1) == '/':
			s.skipLineComment()
			continue
		case isIdentStart(r):
			s.flushBad(&out)
			out = append(out, s.scanIdent())
			atLineStart = false
			continue
		case isDigit(r):
			s.flushBad(&out)
			out = append(out, s.scanNumber())
			atLineStart = false
			continue
		case r == '`':
			s.flushBad(&out)
			out = append(out, s.scanString())
			atLineStart = false
			continue
		default:
			if tok, ok := s.scanPunctOrOp(); ok {
				s.flushBad(&out)
				out = append(out, tok)
				atLineStart = false
				continue
			}
		}

		// Unrecognized character: accumulate a run and recover at the next
		// whitespace boundary (spec §4.D.5).
		if s.badStart < 0 {
			s.badStart = start
		}
		s.pop()
		s.takeWhile(func(r rune) bool { return r != ' ' && r != '\t' && r != '\r' && r != '\n' })
		s.flushBad(&out)
		atLineStart = false
	}
	s.flushBad(&out)
	return out
}

func (s *scanner) flushBad(out *[]token.Token) {
	if s.badStart < 0 {
		return
	}
	sp := span.NewSpan(s.file, s.badStart, s.cursor)
	s.l.h.Errorf(span.LexError, sp, "unrecognized input %q", sp.Text())
	*out = append(*out, token.Token{Kind: token.LexError, Span: sp, Text: sp.Text()})
	s.badStart = -1
}

// --- cursor primitives (grounded on experimental/internal/lexer.go) -----

func (s *scanner) rest() string { return s.src[s.cursor:] }
func (s *scanner) done() bool   { return s.cursor >= len(s.src) }

func (s *scanner) peek() rune {
	if s.done() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.rest())
	return r
}

func (s *scanner) peekAt(n int) rune {
	rest := s.rest()
	for i := 0; i < n; i++ {
		if rest == "" {
			return -1
		}
		_, sz := utf8.DecodeRuneInString(rest)
		rest = rest[sz:]
	}
	if rest == "" {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return r
}

func (s *scanner) pop() rune {
	if s.done() {
		return -1
	}
	r, sz := utf8.DecodeRuneInString(s.rest())
	s.cursor += sz
	return r
}

func (s *scanner) takeWhile(f func(rune) bool) string {
	start := s.cursor
	for !s.done() {
		r := s.peek()
		if !f(r) {
			break
		}
		s.pop()
	}
	return s.src[start:s.cursor]
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// --- identifiers, keywords, booleans -------------------------------------

func (s *scanner) scanIdent() token.Token {
	start := s.cursor
	text := s.takeWhile(isIdentCont)
	sp := span.NewSpan(s.file, start, s.cursor)

	if text == "true" || text == "false" {
		return token.Token{Kind: token.BoolLit, Span: sp, Text: text, Bool: text == "true"}
	}
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}

	if len(text) < 2 {
		if token.TypeMarkers[text] {
			return token.Token{Kind: token.Keywords[text], Span: sp, Text: text}
		}
		s.l.h.Errorf(span.LexError, sp,
			"identifier %q must be at least two characters; choose a descriptive name", text)
		return token.Token{Kind: token.LexError, Span: sp, Text: text}
	}

	r, _ := utf8.DecodeRuneInString(text)
	if r >= 'A' && r <= 'Z' {
		return token.Token{Kind: token.PascalIdent, Span: sp, Text: text}
	}
	if r == '_' || (r >= 'a' && r <= 'z') {
		return token.Token{Kind: token.SnakeIdent, Span: sp, Text: text}
	}
	s.l.h.Errorf(span.LexError, sp, "identifier %q has an invalid leading character", text)
	return token.Token{Kind: token.LexError, Span: sp, Text: text}
}

// --- numbers ---------------------------------------------------------------

func (s *scanner) scanNumber() token.Token {
	start := s.cursor
	intPart := s.takeWhile(isDigit)

	if s.peek() == '.' {
		s.pop() // '.'
		fracPart := s.takeWhile(isDigit)
		text := s.src[start:s.cursor]
		sp := span.NewSpan(s.file, start, s.cursor)
		if fracPart == "" {
			s.l.h.Errorf(span.LexError, sp, "malformed float literal %q: needs a digit after the decimal point", text)
			return token.Token{Kind: token.LexError, Span: sp, Text: text}
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			s.l.h.Errorf(span.LexError, sp, "malformed float literal %q", text)
			return token.Token{Kind: token.LexError, Span: sp, Text: text}
		}
		return token.Token{Kind: token.FloatLit, Span: sp, Text: text, Float: v}
	}

	sp := span.NewSpan(s.file, start, s.cursor)
	v, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		s.l.h.Errorf(span.LexError, sp, "malformed int literal %q", intPart)
		return token.Token{Kind: token.LexError, Span: sp, Text: intPart}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: intPart, Int: v}
}

// --- strings -----------------------------------------------------------

func (s *scanner) scanString() token.Token {
	start := s.cursor
	s.pop() // opening backtick
	var sb strings.Builder
	for {
		if s.done() {
			sp := span.NewSpan(s.file, start, s.cursor)
			s.l.h.Errorf(span.LexError, sp, "unterminated string literal")
			return token.Token{Kind: token.LexError, Span: sp, Text: s.src[start:s.cursor]}
		}
		r := s.pop()
		if r == '`' {
			break
		}
		if r == '\n' {
			s.file.AddLine(s.cursor)
		}
		if r == '\\' {
			esc := s.pop()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '`':
				sb.WriteByte('`')
			default:
				sp := span.NewSpan(s.file, s.cursor-2, s.cursor)
				s.l.h.Errorf(span.LexError, sp, "unknown escape sequence \\%c", esc)
			}
			continue
		}
		sb.WriteRune(r)
	}
	sp := span.NewSpan(s.file, start, s.cursor)
	return token.Token{Kind: token.StringLit, Span: sp, Text: s.src[start:s.cursor], Str: sb.String()}
}

// --- comments ---------------------------------------------------------

func (s *scanner) skipLineComment() {
	s.pop()
	s.pop()
	s.takeWhile(func(r rune) bool { return r != '\n' })
}

// --- punctuation & operators --------------------------------------------

type punctRule struct {
	text string
	kind token.Kind
}

// longest-match first
var punctRules = []punctRule{
	{"::", token.ColonColon},
	{"=>", token.FatArrow},
	{"|>", token.PipeArrow},
	{"==", token.EqEq},
	{"!=", token.NotEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{":", token.Colon},
	{";", token.Semi},
	{",", token.Comma},
	{".", token.Dot},
	{"=", token.Eq},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"<", token.Lt},
	{">", token.Gt},
	{"|", token.Pipe},
	{"!", token.Bang},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
}

func (s *scanner) scanPunctOrOp() (token.Token, bool) {
	start := s.cursor
	rest := s.rest()
	for _, rule := range punctRules {
		if strings.HasPrefix(rest, rule.text) {
			s.cursor += len(rule.text)
			sp := span.NewSpan(s.file, start, s.cursor)
			return token.Token{Kind: rule.kind, Span: sp, Text: rule.text}, true
		}
	}
	return token.Token{}, false
}
