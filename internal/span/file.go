// Package span identifies byte ranges within Nail source files and renders
// diagnostics against them. A File tracks line-start offsets as they are
// discovered by the lexer so that a byte offset can be turned into a
// 1-based line/column pair without rescanning the source.
package span

import "fmt"

// FileID identifies a source file across an entire compilation, including
// files pulled in via insert(...) expansion. The original file compiled is
// always FileID 0.
type FileID int

// File holds the raw contents of one source file (original or included)
// together with the offsets at which each line begins.
type File struct {
	id    FileID
	path  string
	data  []byte
	lines []int // lines[i] is the byte offset at which line i+1 begins; lines[0] == 0
}

// NewFile creates a File for the given path and contents. Line endings must
// already be normalized to LF by the caller.
func NewFile(id FileID, path string, data []byte) *File {
	return &File{id: id, path: path, data: data, lines: []int{0}}
}

func (f *File) ID() FileID    { return f.id }
func (f *File) Path() string  { return f.path }
func (f *File) Bytes() []byte { return f.data }

// AddLine records that a new line begins at offset. Offsets must be added in
// increasing order; this mirrors the lexer discovering newlines as it scans.
func (f *File) AddLine(offset int) {
	if offset <= f.lines[len(f.lines)-1] || offset > len(f.data) {
		panic(fmt.Sprintf("span: invalid line offset %d for file %q of length %d", offset, f.path, len(f.data)))
	}
	f.lines = append(f.lines, offset)
}

// Pos returns the 1-based line and column for a byte offset into the file.
func (f *File) Pos(offset int) Pos {
	if offset < 0 || offset > len(f.data) {
		panic(fmt.Sprintf("span: offset %d out of range for file %q of length %d", offset, f.path, len(f.data)))
	}
	// binary search for the line containing offset
	lo, hi := 0, len(f.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Pos{Line: lo + 1, Col: offset - f.lines[lo] + 1}
}

// Line returns the raw bytes of the given 1-based line number, excluding its
// terminating newline.
func (f *File) Line(n int) []byte {
	if n < 1 || n > len(f.lines) {
		return nil
	}
	start := f.lines[n-1]
	end := len(f.data)
	if n < len(f.lines) {
		end = f.lines[n] - 1 // exclude the newline itself
		if end < start {
			end = start
		}
	} else if end > start && f.data[end-1] == '\n' {
		end--
	}
	return f.data[start:end]
}

// Pos is a 1-based line/column pair.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }
