package span

// Span identifies a contiguous byte range in a single source file. Every
// token and every AST node carries one. Spans survive insert(...) expansion:
// tokens copied in from an included file keep that file's FileID, not the
// FileID of the file that included them.
type Span struct {
	File       *File
	StartByte  int
	EndByte    int
	StartLine  int
	StartCol   int
}

// NewSpan builds a Span, computing its start line/column from f.
func NewSpan(f *File, start, end int) Span {
	pos := f.Pos(start)
	return Span{File: f, StartByte: start, EndByte: end, StartLine: pos.Line, StartCol: pos.Col}
}

// Text returns the source text covered by the span.
func (s Span) Text() string {
	return string(s.File.data[s.StartByte:s.EndByte])
}

// Join returns the smallest span covering both s and other. Both must refer
// to the same file.
func (s Span) Join(other Span) Span {
	if s.File != other.File {
		return s
	}
	start, end := s.StartByte, s.EndByte
	if other.StartByte < start {
		start = other.StartByte
	}
	if other.EndByte > end {
		end = other.EndByte
	}
	return NewSpan(s.File, start, end)
}

// Len reports the byte length of the span.
func (s Span) Len() int { return s.EndByte - s.StartByte }
