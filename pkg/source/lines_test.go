package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/source"
)

func TestNewLineIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []source.LineInfo{{StartOffset: 0, NewlineStart: 0, EndOffset: 0}},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "CRLF and lone CR",
			content: "a\r\nb\rc",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 6, EndOffset: 6},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, source.NewLineIndex(testCase.content).Lines())
		})
	}
}

func TestLineIndexPosition(t *testing.T) {
	t.Parallel()

	idx := source.NewLineIndex("let a;\nlet b;\n")

	assert.Equal(t, source.Position{Line: 1, Column: 1}, idx.Position(0))
	assert.Equal(t, source.Position{Line: 1, Column: 7}, idx.Position(6))
	assert.Equal(t, source.Position{Line: 2, Column: 5}, idx.Position(11))
	assert.Equal(t, source.Position{Line: 3, Column: 1}, idx.Position(100))
	assert.Equal(t, "let b;", idx.LineText(2))
	assert.Empty(t, idx.LineText(9))

	offset, ok := idx.Offset(source.Position{Line: 2, Column: 5})
	assert.True(t, ok)
	assert.Equal(t, 11, offset)

	_, ok = idx.Offset(source.Position{Line: 2, Column: 50})
	assert.False(t, ok)
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := source.NewRange(2, 5)
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
	assert.True(t, r.Intersects(source.NewRange(4, 9)))
	assert.False(t, r.Intersects(source.NewRange(5, 9)))
	assert.True(t, r.Intersects(source.At(5)))
	assert.Equal(t, source.NewRange(0, 5), r.Cover(source.NewRange(0, 1)))
	assert.Equal(t, "llo", r.Slice("hello"))
	assert.Equal(t, "", source.NewRange(10, 12).Slice("hello"))
	assert.Panics(t, func() { source.NewRange(3, 1) })
}
