package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestMapperPosition(t *testing.T) {
	t.Parallel()

	// é is 2 bytes and 1 unit; 😀 is 4 bytes and 2 units.
	m := newMapper("a\né😀b\n")

	tests := []struct {
		name   string
		offset int
		want   protocol.Position
	}{
		{name: "start", offset: 0, want: protocol.Position{Line: 0, Character: 0}},
		{name: "line terminator", offset: 1, want: protocol.Position{Line: 0, Character: 1}},
		{name: "second line", offset: 2, want: protocol.Position{Line: 1, Character: 0}},
		{name: "after two byte rune", offset: 4, want: protocol.Position{Line: 1, Character: 1}},
		{name: "inside surrogate pair rune", offset: 6, want: protocol.Position{Line: 1, Character: 1}},
		{name: "after astral rune", offset: 8, want: protocol.Position{Line: 1, Character: 3}},
		{name: "end of text", offset: 10, want: protocol.Position{Line: 2, Character: 0}},
		{name: "past end clamps", offset: 99, want: protocol.Position{Line: 2, Character: 0}},
		{name: "negative clamps", offset: -3, want: protocol.Position{Line: 0, Character: 0}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, m.position(testCase.offset))
		})
	}
}

func TestMapperOffset(t *testing.T) {
	t.Parallel()

	m := newMapper("a\né😀b\n")

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{name: "start", pos: protocol.Position{Line: 0, Character: 0}, want: 0},
		{name: "after astral rune", pos: protocol.Position{Line: 1, Character: 3}, want: 8},
		{name: "inside surrogate pair", pos: protocol.Position{Line: 1, Character: 2}, want: 4},
		{name: "past line end clamps to terminator", pos: protocol.Position{Line: 0, Character: 10}, want: 1},
		{name: "past last line", pos: protocol.Position{Line: 7, Character: 0}, want: 10},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, m.offset(testCase.pos))
		})
	}
}

func TestMapperRoundTrip(t *testing.T) {
	t.Parallel()

	text := "const s = \"日本\";\r\nlet x = '😀' + s;\n"
	m := newMapper(text)
	for offset := 0; offset <= len(text); offset++ {
		pos := m.position(offset)
		back := m.offset(pos)
		assert.LessOrEqual(t, back, offset, "offset %d", offset)
		assert.Equal(t, pos, m.position(back), "offset %d", offset)
	}
}

func TestApplyChange(t *testing.T) {
	t.Parallel()

	text := "let a = 1;\nlet b = 2;\n"
	tests := []struct {
		name   string
		change protocol.TextDocumentContentChangeEvent
		want   string
	}{
		{
			name: "replace range",
			change: protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 1, Character: 4},
					End:   protocol.Position{Line: 1, Character: 5},
				},
				Text: "c",
			},
			want: "let a = 1;\nlet c = 2;\n",
		},
		{
			name: "insert",
			change: protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: 0, Character: 0},
				},
				Text: "// x\n",
			},
			want: "// x\nlet a = 1;\nlet b = 2;\n",
		},
		{
			name:   "no range replaces everything",
			change: protocol.TextDocumentContentChangeEvent{Text: "x"},
			want:   "x",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, applyChange(text, testCase.change))
		})
	}
}

func TestURIToPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/home/dev/src/a b.ts", uriToPath("file:///home/dev/src/a%20b.ts"))
	assert.Equal(t, "untitled:Untitled-1", uriToPath("untitled:Untitled-1"))
}
