package source

import "sort"

// LineInfo describes a single line within a source buffer.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator starts,
	// or the end of content for the final line.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	text  string
	lines []LineInfo
}

// NewLineIndex builds a line index for text. LF, CRLF and lone CR
// terminators are recognised.
func NewLineIndex(text string) *LineIndex {
	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(text) && text[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return &LineIndex{text: text, lines: lines}
}

// LineCount returns the number of lines. Empty text has one empty line.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// Lines returns the line table.
func (idx *LineIndex) Lines() []LineInfo {
	return idx.lines
}

// Position converts a byte offset to a 1-based line and column.
// Offsets past the end of text clamp to the end of the last line.
func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	if offset > len(idx.text) {
		offset = len(idx.text)
	}

	line := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if line >= len(idx.lines) {
		line = len(idx.lines) - 1
	}

	return Position{Line: line + 1, Column: offset - idx.lines[line].StartOffset + 1}
}

// Offset converts a 1-based line and column to a byte offset.
func (idx *LineIndex) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(idx.lines) || pos.Column < 1 {
		return 0, false
	}

	info := idx.lines[pos.Line-1]
	offset := info.StartOffset + pos.Column - 1
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// LineText returns the content of a 1-based line without its terminator.
func (idx *LineIndex) LineText(line int) string {
	if line < 1 || line > len(idx.lines) {
		return ""
	}
	info := idx.lines[line-1]
	return idx.text[info.StartOffset:info.NewlineStart]
}

// Line returns the line info of a 1-based line.
func (idx *LineIndex) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(idx.lines) {
		return LineInfo{}, false
	}
	return idx.lines[line-1], true
}
