package format_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/source"
)

func printWidth(width int) format.PrinterOptions {
	opts := format.DefaultPrinterOptions()
	opts.LineWidth = width
	return opts
}

func text(s string) format.Element { return format.Text(s) }

func TestPrint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   format.Element
		width int
		want  string
	}{
		{
			name: "fill packs items greedily",
			doc: format.Fill(format.SoftLineBreakOrSpace(),
				text("1,"), text("2,"), text("3,"), text("723493294,"),
				format.Group(text("["), format.SoftBlockIndent(text("5")), text("],")),
				format.Group(text("["), format.SoftBlockIndent(text("123456789")), text("]")),
			),
			width: 10,
			want:  "1, 2, 3,\n723493294,\n[5],\n[\n\t123456789\n]",
		},
		{
			name: "group that does not fit expands",
			doc: format.Group(
				text("["),
				format.SoftBlockIndent(
					text("'Good morning! How are you today?',"),
					format.SoftLineBreakOrSpace(),
					text("2,"),
					format.SoftLineBreakOrSpace(),
					text("3"),
				),
				text("]"),
			),
			width: 20,
			want:  "[\n\t'Good morning! How are you today?',\n\t2,\n\t3\n]",
		},
		{
			name: "group that fits stays flat",
			doc: format.Group(
				text("["),
				format.SoftBlockIndent(text("1,"), format.SoftLineBreakOrSpace(), text("2")),
				text("]"),
			),
			width: 80,
			want:  "[1, 2]",
		},
		{
			name:  "adjacent empty lines collapse",
			doc:   format.Concat(text("a"), format.EmptyLine(), format.EmptyLine(), text("b")),
			width: 80,
			want:  "a\n\nb",
		},
		{
			name:  "hard and empty lines collapse to one blank line",
			doc:   format.Concat(text("a"), format.HardLineBreak(), format.EmptyLine(), format.HardLineBreak(), format.EmptyLine(), text("b")),
			width: 80,
			want:  "a\n\nb",
		},
		{
			name:  "hard line forces the group to expand",
			doc:   format.Group(text("a"), format.SoftLineBreakOrSpace(), text("b"), format.HardLineBreak(), text("c")),
			width: 80,
			want:  "a\nb\nc",
		},
		{
			name:  "expand parent forces the group to expand",
			doc:   format.Group(text("{"), format.SoftBlockIndent(text("a"), format.ExpandParent()), text("}")),
			width: 80,
			want:  "{\n\ta\n}",
		},
		{
			name:  "line suffix is deferred",
			doc:   format.Concat(text("a"), format.LineSuffix(text("c")), text("b")),
			width: 80,
			want:  "abc",
		},
		{
			name:  "line suffix is flushed before a hard break",
			doc:   format.Concat(text("a"), format.LineSuffix(text("c")), text("b"), format.HardLineBreak(), text("d")),
			width: 80,
			want:  "abc\nd",
		},
		{
			name: "line suffixes flush in order",
			doc: format.Concat(text("a"), format.LineSuffix(text(" // 1")), format.LineSuffix(text(" // 2")),
				text(";"), format.HardLineBreak()),
			width: 80,
			want:  "a; // 1 // 2\n",
		},
		{
			name:  "line suffix boundary breaks after the suffix",
			doc:   format.Concat(text("a"), format.LineSuffix(text(" // c")), format.LineSuffixBoundary(), text("b")),
			width: 80,
			want:  "a // c\nb",
		},
		{
			name: "line suffix boundary returns to the outer indentation",
			doc: format.Concat(text("{"), format.Indent(format.HardLineBreak(), text("a"), format.LineSuffix(text(" // c"))),
				format.LineSuffixBoundary(), text("}")),
			width: 80,
			want:  "{\n\ta // c\n}",
		},
		{
			name: "line suffix keeps its line when the indentation drops",
			doc: format.Concat(format.Indent(format.HardLineBreak(), text("a"), format.LineSuffix(text(" // c"))),
				format.HardLineBreak(), text("b")),
			width: 80,
			want:  "\ta // c\nb",
		},
		{
			name: "line suffix keeps its line when the indentation grows",
			doc: format.Concat(text("a"), format.LineSuffix(text(" // c")),
				format.Indent(format.HardLineBreak(), text("b"))),
			width: 80,
			want:  "a // c\n\tb",
		},
		{
			name: "breaking line suffix moves to the new indentation",
			doc: format.Concat(
				format.Indent(format.HardLineBreak(), text("a"), format.LineSuffix(text("x"), format.HardLineBreak(), text("y"))),
				format.HardLineBreak(), text("b")),
			width: 80,
			want:  "\ta\nx\ny\nb",
		},
		{
			name:  "breaking line suffix at the same indentation stays on its line",
			doc:   format.Concat(text("a"), format.LineSuffix(text("x"), format.HardLineBreak(), text("y")), format.HardLineBreak(), text("b")),
			width: 80,
			want:  "ax\ny\nb",
		},
		{
			name:  "spaces collapse",
			doc:   format.Concat(text("a"), format.Space(), format.Space(), text("b")),
			width: 80,
			want:  "a b",
		},
		{
			name: "if group breaks",
			doc: format.Group(text("["), format.SoftBlockIndent(text("aaaa"), format.IfGroupBreaks(text(","))),
				format.IfGroupFitsOnLine(text(" ")), text("]")),
			width: 4,
			want:  "[\n\taaaa,\n]",
		},
		{
			name: "best fitting picks the first variant that fits",
			doc: format.BestFitting(text("a very long variant"),
				format.Concat(text("short"), format.HardLineBreak(), text("x")), text("last")),
			width: 8,
			want:  "short\nx",
		},
		{
			name:  "best fitting falls back to the last variant",
			doc:   format.BestFitting(text("too long"), text("also too long"), text("the last one")),
			width: 3,
			want:  "the last one",
		},
		{
			name:  "dedent to root",
			doc:   format.Indent(format.HardLineBreak(), text("a"), format.DedentToRoot(format.HardLineBreak(), text("b"))),
			width: 80,
			want:  "\ta\nb",
		},
		{
			name:  "align adds spaces after the indentation",
			doc:   format.Concat(text("a"), format.Align(3, format.HardLineBreak(), text("b"))),
			width: 80,
			want:  "a\n   b",
		},
		{
			name:  "leading breaks are dropped",
			doc:   format.Concat(format.HardLineBreak(), format.EmptyLine(), text("a")),
			width: 80,
			want:  "a",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			printed := format.Print(testCase.doc, printWidth(testCase.width))
			assert.Equal(t, testCase.want, printed.Code)
		})
	}
}

func TestConditionalContentReferencesGroup(t *testing.T) {
	t.Parallel()

	var ids format.GroupIDBuilder
	id := ids.GroupID("head")
	doc := format.Concat(
		format.GroupWithID(id, text("head"), format.SoftLineBreak(), text("tail")),
		format.IfGroupBreaksFor(id, text(" (broken)")),
		format.IfGroupFitsOnLineFor(id, text(" (flat)")),
	)

	assert.Equal(t, "headtail (flat)", format.Print(doc, printWidth(80)).Code)
	assert.Equal(t, "head\ntail (broken)", format.Print(doc, printWidth(5)).Code)
}

func TestUnresolvedGroupPanics(t *testing.T) {
	t.Parallel()

	var ids format.GroupIDBuilder
	id := ids.GroupID("later")
	doc := format.Concat(
		format.IfGroupBreaksFor(id, text("x")),
		format.GroupWithID(id, text("y")),
	)

	assert.PanicsWithValue(t, "format: group 1 is referenced before it was printed", func() {
		format.Print(doc, printWidth(80))
	})
}

func TestIndentStyles(t *testing.T) {
	t.Parallel()

	doc := format.Concat(text("{"), format.BlockIndent(text("a"), format.Indent(format.HardLineBreak(), text("b"))), text("}"))

	tabs := format.Print(doc, format.DefaultPrinterOptions())
	assert.Equal(t, "{\n\ta\n\t\tb\n}", tabs.Code)

	spaces := format.DefaultPrinterOptions()
	spaces.IndentStyle = format.IndentSpace
	spaces.IndentWidth = 4
	assert.Equal(t, "{\n    a\n        b\n}", format.Print(doc, spaces).Code)
}

func TestLineEndings(t *testing.T) {
	t.Parallel()

	doc := format.Concat(text("a"), format.HardLineBreak(), text("b\nc"), format.HardLineBreak())

	tests := []struct {
		name   string
		ending format.LineEnding
		want   string
	}{
		{name: "lf", ending: format.LineEndingLF, want: "a\nb\nc\n"},
		{name: "crlf", ending: format.LineEndingCRLF, want: "a\r\nb\r\nc\r\n"},
		{name: "cr", ending: format.LineEndingCR, want: "a\rb\rc\r"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := format.DefaultPrinterOptions()
			opts.LineEnding = testCase.ending
			assert.Equal(t, testCase.want, format.Print(doc, opts).Code)
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	t.Parallel()

	// Each ideograph is two columns wide, so the group does not fit in 6.
	wide := format.Group(text("日本語"), format.SoftLineBreakOrSpace(), text("x"))
	assert.Equal(t, "日本語\nx", format.Print(wide, printWidth(6)).Code)
	assert.Equal(t, "日本語 x", format.Print(wide, printWidth(8)).Code)

	// A tab counts as the indent width.
	tabbed := format.Group(text("\ta"), format.SoftLineBreakOrSpace(), text("b"))
	assert.Equal(t, "\ta\nb", format.Print(tabbed, printWidth(4)).Code)
	assert.Equal(t, "\ta b", format.Print(tabbed, printWidth(5)).Code)
}

func TestFlatLinesRespectWidth(t *testing.T) {
	t.Parallel()

	words := strings.Fields("the quick brown fox jumps over the lazy dog and keeps running far away")
	for width := 8; width <= 40; width++ {
		items := make([]format.Element, 0, len(words))
		for _, word := range words {
			items = append(items, text(word))
		}
		printed := format.Print(format.Fill(format.SoftLineBreakOrSpace(), items...), printWidth(width))
		for _, line := range strings.Split(printed.Code, "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), width, "width %d", width)
		}
	}
}

func TestSourceMarkers(t *testing.T) {
	t.Parallel()

	src := "let   a=1"
	doc := format.Concat(
		format.SyntaxToken(src, source.NewRange(0, 3)),
		format.Space(),
		format.SyntaxToken(src, source.NewRange(6, 7)),
		text(" = "),
		format.Dynamic("1", 8),
		format.Verbatim(format.VerbatimOther, src, source.NewRange(8, 9)),
	)

	printed := format.Print(doc, format.DefaultPrinterOptions())
	require.Equal(t, "let a = 11", printed.Code)
	assert.Equal(t, []format.SourceMarker{
		{Source: 0, Dest: 0},
		{Source: 3, Dest: 3},
		{Source: 6, Dest: 4},
		{Source: 7, Dest: 5},
		{Source: 7, Dest: 8},
		{Source: 8, Dest: 8},
		{Source: 8, Dest: 9},
		{Source: 9, Dest: 10},
	}, printed.SourceMarkers)
	assert.Equal(t, []source.Range{source.NewRange(8, 9)}, printed.VerbatimRanges)
}

func TestSourceMarkersSurroundEveryToken(t *testing.T) {
	t.Parallel()

	src := "a;"
	doc := format.Concat(
		text("("),
		format.SyntaxToken(src, source.NewRange(0, 1)),
		text(")"),
		format.Dynamic("b", 1),
		text(";"),
	)

	printed := format.Print(doc, format.DefaultPrinterOptions())
	require.Equal(t, "(a)b;", printed.Code)
	assert.Equal(t, []format.SourceMarker{
		{Source: 0, Dest: 0},
		{Source: 0, Dest: 1},
		{Source: 1, Dest: 2},
		{Source: 1, Dest: 3},
		{Source: 1, Dest: 4},
		{Source: 1, Dest: 5},
	}, printed.SourceMarkers)
}

func TestDeepNestingDoesNotRecurse(t *testing.T) {
	t.Parallel()

	var doc format.Element = text("x")
	for range 100000 {
		doc = format.GroupElement{Content: format.List{text("("), doc, text(")")}}
	}
	printed := format.Print(doc, printWidth(320))
	assert.Len(t, printed.Code, 200001)
}

func TestPrinterOptionsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, format.DefaultPrinterOptions().Validate())

	opts := format.DefaultPrinterOptions()
	opts.LineWidth = 0
	require.ErrorIs(t, opts.Validate(), format.ErrInvalidOption)

	opts.LineWidth = 321
	require.ErrorIs(t, opts.Validate(), format.ErrInvalidOption)

	ending, err := format.ParseLineEnding("CRLF")
	require.NoError(t, err)
	assert.Equal(t, format.LineEndingCRLF, ending)

	_, err = format.ParseIndentStyle("wide")
	require.ErrorIs(t, err, format.ErrInvalidOption)
}
