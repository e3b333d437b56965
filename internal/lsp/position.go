package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/quill/pkg/source"
)

// mapper converts between byte offsets and protocol positions, whose
// characters count UTF-16 code units.
type mapper struct {
	text  string
	lines *source.LineIndex
}

func newMapper(text string) *mapper {
	return &mapper{text: text, lines: source.NewLineIndex(text)}
}

// position converts a byte offset. Offsets inside a multi-byte character
// resolve to the start of that character, and offsets inside a CRLF to
// the end of the line.
func (m *mapper) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(m.text)))
	pos := m.lines.Position(offset)
	info, _ := m.lines.Line(pos.Line)
	offset = min(offset, info.NewlineStart)

	var units int
	for idx := info.StartOffset; idx < offset; {
		r, size := utf8.DecodeRuneInString(m.text[idx:])
		if idx+size > offset {
			break
		}
		units += utf16Len(r)
		idx += size
	}

	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(units),
	}
}

// offset converts a protocol position. Lines past the end clamp to the
// end of the text and characters past the end of a line clamp to the line
// terminator.
func (m *mapper) offset(pos protocol.Position) int {
	info, ok := m.lines.Line(int(pos.Line) + 1)
	if !ok {
		return len(m.text)
	}

	idx := info.StartOffset
	for units := 0; idx < info.NewlineStart; {
		r, size := utf8.DecodeRuneInString(m.text[idx:])
		width := utf16Len(r)
		if units+width > int(pos.Character) {
			break
		}
		units += width
		idx += size
	}
	return idx
}

func (m *mapper) rangeOf(rng source.Range) protocol.Range {
	return protocol.Range{Start: m.position(rng.Start), End: m.position(rng.End)}
}

// fullRange covers the whole text.
func (m *mapper) fullRange() protocol.Range {
	return m.rangeOf(source.NewRange(0, len(m.text)))
}

// utf16Len counts invalid bytes as one unit, like editors do.
func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
