package reporter

import (
	"unicode/utf8"

	"github.com/yaklabco/quill/pkg/source"
)

// locator converts byte ranges of one file into line/column positions.
type locator struct {
	text  string
	index *source.LineIndex
}

func newLocator(src []byte) *locator {
	text := string(src)
	return &locator{text: text, index: source.NewLineIndex(text)}
}

// span returns the 1-based start and end positions of rng. Columns count
// bytes.
func (l *locator) span(rng source.Range) (source.Position, source.Position) {
	start := min(max(rng.Start, 0), len(l.text))
	end := min(max(rng.End, start), len(l.text))
	return l.index.Position(start), l.index.Position(end)
}

// codePoints converts a byte column to a column counting Unicode code
// points.
func (l *locator) codePoints(pos source.Position) int {
	line := l.index.LineText(pos.Line)
	col := min(max(pos.Column-1, 0), len(line))
	return utf8.RuneCountInString(line[:col]) + 1
}
