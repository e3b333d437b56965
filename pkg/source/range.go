// Package source holds byte ranges and line/column lookups over source text.
package source

import "fmt"

// Range is a half-open byte range [Start, End) into a source buffer.
type Range struct {
	Start int
	End   int
}

// NewRange returns the range [start, end). It panics if end < start.
func NewRange(start, end int) Range {
	if end < start {
		panic(fmt.Sprintf("source: invalid range %d..%d", start, end))
	}
	return Range{Start: start, End: end}
}

// At returns the empty range at offset.
func At(offset int) Range {
	return Range{Start: offset, End: offset}
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange reports whether other lies entirely inside r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Intersects reports whether the two ranges share at least one byte,
// or touch when one of them is empty.
func (r Range) Intersects(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.Start <= other.End && other.Start <= r.End
	}
	return r.Start < other.End && other.Start < r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Shift returns r moved right by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Slice returns the text covered by r, clamped to the bounds of text.
func (r Range) Slice(text string) string {
	start := min(max(r.Start, 0), len(text))
	end := min(max(r.End, start), len(text))
	return text[start:end]
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Position is a 1-based line and column. Column counts bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position has positive values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
