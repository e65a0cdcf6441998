package jsx

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a human-readable location in source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) in source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes (an insertion point).
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Encloses reports whether other lies entirely within s.
func (s Span) Encloses(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// IsValidIn reports whether the span is well formed for a source of length n.
func (s Span) IsValidIn(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	src    []byte
	starts []int
}

// NewLineIndex builds a line index over src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position converts a byte offset into a Position. Offsets past the end clamp
// to the end of the source.
func (li *LineIndex) Position(offset int) Position {
	if li == nil {
		return Position{}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	col := utf8.RuneCount(li.src[li.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: col, Offset: offset}
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.starts)
}
