package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/source"
)

func TestWrappingBuildersCollapseEmptyContent(t *testing.T) {
	t.Parallel()

	emptyList := format.List{format.Empty{}, format.List{format.Empty{}}}

	tests := []struct {
		name  string
		build func(content format.Element) format.Element
	}{
		{name: "group", build: func(c format.Element) format.Element { return format.Group(c) }},
		{name: "group with id", build: func(c format.Element) format.Element { return format.GroupWithID(1, c) }},
		{name: "expanded group", build: func(c format.Element) format.Element { return format.ExpandedGroup(c) }},
		{name: "indent", build: func(c format.Element) format.Element { return format.Indent(c) }},
		{name: "dedent", build: func(c format.Element) format.Element { return format.Dedent(c) }},
		{name: "dedent to root", build: func(c format.Element) format.Element { return format.DedentToRoot(c) }},
		{name: "align", build: func(c format.Element) format.Element { return format.Align(2, c) }},
		{name: "block indent", build: func(c format.Element) format.Element { return format.BlockIndent(c) }},
		{name: "soft block indent", build: func(c format.Element) format.Element { return format.SoftBlockIndent(c) }},
		{name: "soft space block indent", build: func(c format.Element) format.Element { return format.SoftSpaceBlockIndent(c) }},
		{name: "soft line indent or space", build: func(c format.Element) format.Element { return format.SoftLineIndentOrSpace(c) }},
		{name: "if group breaks", build: func(c format.Element) format.Element { return format.IfGroupBreaks(c) }},
		{name: "if group breaks for", build: func(c format.Element) format.Element { return format.IfGroupBreaksFor(1, c) }},
		{name: "if group fits", build: func(c format.Element) format.Element { return format.IfGroupFitsOnLine(c) }},
		{name: "line suffix", build: func(c format.Element) format.Element { return format.LineSuffix(c) }},
		{name: "comment", build: func(c format.Element) format.Element { return format.Comment(c) }},
		{name: "labelled", build: func(c format.Element) format.Element { return format.Labelled(1, c) }},
		{name: "intern", build: func(c format.Element) format.Element { return format.Intern(c) }},
		{name: "fill", build: func(c format.Element) format.Element { return format.Fill(format.Space(), c, c) }},
		{name: "best fitting", build: func(c format.Element) format.Element { return format.BestFitting(c, c) }},
		{name: "concat", build: func(c format.Element) format.Element { return format.Concat(c, c) }},
		{name: "join", build: func(c format.Element) format.Element { return format.JoinWith(format.Text(","), c, c) }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, format.Empty{}, testCase.build(format.Empty{}))
			assert.Equal(t, format.Empty{}, testCase.build(emptyList))
			assert.Equal(t, format.Empty{}, testCase.build(format.Text("")))
			assert.False(t, format.IsEmpty(testCase.build(format.Text("x"))))
		})
	}
}

func TestConcatFlattens(t *testing.T) {
	t.Parallel()

	got := format.Concat(format.Text("a"), format.List{format.Text("b"), format.Empty{}}, format.Empty{})
	assert.Equal(t, format.List{format.StaticText{Text: "a"}, format.StaticText{Text: "b"}}, got)
	assert.Equal(t, format.StaticText{Text: "a"}, format.Concat(format.Empty{}, format.Text("a")))
}

func TestSyntaxToken(t *testing.T) {
	t.Parallel()

	src := "let answer = 42;"
	got := format.SyntaxToken(src, source.NewRange(4, 10))
	assert.Equal(t, format.SyntaxSlice{Text: "answer", Range: source.NewRange(4, 10)}, got)
	assert.Equal(t, format.Empty{}, format.SyntaxToken(src, source.At(3)))
}

func TestWillBreak(t *testing.T) {
	t.Parallel()

	assert.True(t, format.WillBreak(format.Concat(format.Text("a"), format.HardLineBreak())))
	assert.True(t, format.WillBreak(format.Group(format.Indent(format.EmptyLine(), format.Text("a")))))
	assert.True(t, format.WillBreak(format.ExpandParent()))
	assert.True(t, format.WillBreak(format.Text("a\nb")))
	assert.False(t, format.WillBreak(format.Group(format.Text("a"), format.SoftLineBreakOrSpace())))
	assert.False(t, format.WillBreak(format.IfGroupFitsOnLine(format.HardLineBreak())))
}

func TestGroupIDBuilder(t *testing.T) {
	t.Parallel()

	var ids format.GroupIDBuilder
	first := ids.GroupID("array")
	second := ids.GroupID("arguments")
	assert.Equal(t, format.GroupID(1), first)
	assert.Equal(t, format.GroupID(2), second)
	assert.Equal(t, "arguments", ids.Name(second))
	assert.Equal(t, 2, ids.Len())
}
