// Package jsonformat formats JSON and JSONC syntax trees.
//
// Objects whose first member starts on a new line in the source stay
// expanded; everything else is laid out to fit the line width. Comments are
// kept where they were written.
package jsonformat

import (
	"errors"
	"fmt"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/jsonparser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	// ErrUnsupportedRoot is returned for trees that are not JSON documents.
	ErrUnsupportedRoot = errors.New("jsonformat: root is not a JSON document")
	// ErrSyntax is returned by FormatSource when the document has syntax
	// errors.
	ErrSyntax = errors.New("jsonformat: document has syntax errors")
)

// Options configure the JSON formatter.
type Options struct {
	format.PrinterOptions

	// TrailingCommas adds a comma after the last member of broken objects
	// and arrays. Only JSONC readers accept them.
	TrailingCommas bool
	// BracketSpacing prints `{ "a": 1 }` instead of `{"a": 1}`.
	BracketSpacing bool
}

// DefaultOptions returns the default printer options with bracket spacing.
func DefaultOptions() Options {
	return Options{PrinterOptions: format.DefaultPrinterOptions(), BracketSpacing: true}
}

// ForDialect returns o with trailing commas turned off unless the parse
// options accept them, so that the output parses with the same options.
func (o Options) ForDialect(parseOpts jsonparser.Options) Options {
	o.TrailingCommas = o.TrailingCommas && parseOpts.AllowTrailingCommas
	return o
}

// Format formats a tree produced by jsonparser.Parse. Callers that accept
// trailing commas from the settings should pass them through ForDialect.
func Format(root *syntax.Node, opts Options) (format.Printed, error) {
	if root == nil || root.Kind() != syntax.NodeJSONRoot {
		return format.Printed{}, ErrUnsupportedRoot
	}
	if err := opts.Validate(); err != nil {
		return format.Printed{}, fmt.Errorf("jsonformat: %w", err)
	}
	f := &formatter{src: root.FullText(), opts: opts}
	return format.Print(f.root(root), opts.PrinterOptions), nil
}

// FormatSource parses and formats src.
func FormatSource(src string, parseOpts jsonparser.Options, opts Options) (format.Printed, []diagnostics.Diagnostic, error) {
	result := jsonparser.Parse(src, parseOpts)
	if diagnostics.HasErrors(result.Diagnostics) {
		return format.Printed{}, result.Diagnostics, ErrSyntax
	}
	printed, err := Format(result.Root, opts.ForDialect(parseOpts))
	return printed, result.Diagnostics, err
}

type formatter struct {
	src  string
	opts Options
}

func (f *formatter) root(n *syntax.Node) format.Element {
	value := f.value(n.FieldNode("value"))
	eof := f.comments(n.FieldToken("eof"), false)
	if format.IsEmpty(value) {
		if format.IsEmpty(eof) {
			return format.Empty{}
		}
		return format.Concat(eof, format.HardLineBreak())
	}
	if !format.IsEmpty(eof) {
		value = format.Concat(value, format.HardLineBreak(), eof)
	}
	return format.Concat(value, format.HardLineBreak())
}

func (f *formatter) value(n *syntax.Node) format.Element {
	if n == nil {
		return format.Empty{}
	}
	switch n.Kind() {
	case syntax.NodeJSONObjectValue:
		return f.container(n, "l_curly", "members", "r_curly", f.opts.BracketSpacing)
	case syntax.NodeJSONArrayValue:
		return f.container(n, "l_brack", "elements", "r_brack", false)
	case syntax.NodeJSONMember:
		return format.Concat(
			f.value(n.FieldNode("name")),
			f.token(n.FieldToken("colon")),
			format.Space(),
			f.value(n.FieldNode("value")),
		)
	case syntax.NodeJSONStringValue, syntax.NodeJSONNumberValue, syntax.NodeJSONBooleanValue,
		syntax.NodeJSONNullValue, syntax.NodeJSONMemberName:
		return f.token(n.FieldToken("value"))
	}
	first, last := n.FirstToken(), n.LastToken()
	return format.Concat(f.comments(first, true), format.Verbatim(format.VerbatimBogus, f.src, n.Range()), f.trailing(last))
}

// container prints an object or array. Objects broken in the source stay
// broken.
func (f *formatter) container(n *syntax.Node, open, items, closing string, spaced bool) format.Element {
	l, r := n.FieldToken(open), n.FieldToken(closing)
	list := n.FieldNode(items)

	var children []syntax.Element
	if list != nil {
		children = list.Children()
	}
	var parts []format.Element
	expand := false
	first := true
	for i, child := range children {
		switch child := child.(type) {
		case *syntax.Node:
			if first {
				expand = n.Kind() == syntax.NodeJSONObjectValue && child.FirstToken() != nil &&
					child.FirstToken().HasLeadingNewline()
			} else {
				if blankLineBefore(child.FirstToken()) {
					parts = append(parts, format.IfGroupBreaks(format.EmptyLine()))
				}
				parts = append(parts, format.SoftLineBreakOrSpace())
			}
			first = false
			parts = append(parts, f.value(child))
		case *syntax.Token:
			if i == len(children)-1 {
				parts = append(parts, f.comments(child, false), f.trailing(child))
				continue
			}
			parts = append(parts, f.token(child))
		}
	}
	if !first && f.opts.TrailingCommas {
		parts = append(parts, format.IfGroupBreaks(format.Text(",")))
	}

	inner := format.Concat(parts...)
	dangling := f.comments(r, false)
	if format.IsEmpty(inner) && format.IsEmpty(dangling) {
		return format.Concat(f.token(l), f.closing(r))
	}
	if !format.IsEmpty(dangling) {
		if format.IsEmpty(inner) {
			inner = dangling
		} else {
			inner = format.Concat(inner, format.HardLineBreak(), dangling)
		}
	}
	var body format.Element
	if spaced {
		body = format.SoftSpaceBlockIndent(inner)
	} else {
		body = format.SoftBlockIndent(inner)
	}
	if expand {
		return format.ExpandedGroup(f.token(l), body, f.closing(r))
	}
	return format.Group(f.token(l), body, f.closing(r))
}

func (f *formatter) token(t *syntax.Token) format.Element {
	if t == nil || t.Text() == "" {
		return format.Empty{}
	}
	return format.Concat(f.comments(t, true), format.SyntaxToken(f.src, t.Range()), f.trailing(t))
}

func (f *formatter) closing(t *syntax.Token) format.Element {
	if t == nil {
		return format.Empty{}
	}
	return format.Concat(format.SyntaxToken(f.src, t.Range()), f.trailing(t))
}

// comments prints the comments before t. With separateLast the last
// comment is followed by a line break or a space.
func (f *formatter) comments(t *syntax.Token, separateLast bool) format.Element {
	if t == nil || !t.HasLeadingComments() {
		return format.Empty{}
	}
	var parts []format.Element
	newlines := 0
	printed := false
	lineComment := false
	for _, piece := range t.LeadingTrivia() {
		switch piece.Kind {
		case syntax.TriviaNewline:
			newlines++
			continue
		case syntax.TriviaWhitespace:
			continue
		}
		switch {
		case printed && (newlines > 0 || lineComment):
			parts = append(parts, lineBreak(newlines))
		case printed:
			parts = append(parts, format.Space())
		case newlines > 0:
			parts = append(parts, format.HardLineBreak())
		}
		parts = append(parts, format.Comment(format.SyntaxToken(f.src, piece.Range)))
		printed = true
		lineComment = piece.Kind == syntax.TriviaSingleLineComment
		newlines = 0
	}
	switch {
	case !separateLast:
	case lineComment || newlines > 0:
		parts = append(parts, lineBreak(newlines))
	default:
		parts = append(parts, format.Space())
	}
	return format.Concat(parts...)
}

func (f *formatter) trailing(t *syntax.Token) format.Element {
	if t == nil || !t.HasTrailingComments() {
		return format.Empty{}
	}
	var parts []format.Element
	for _, piece := range t.TrailingTrivia() {
		switch piece.Kind {
		case syntax.TriviaSingleLineComment:
			parts = append(parts, format.LineSuffix(format.Space(), format.Comment(format.SyntaxToken(f.src, piece.Range))), format.ExpandParent())
		case syntax.TriviaMultiLineComment:
			parts = append(parts, format.Space(), format.Comment(format.SyntaxToken(f.src, piece.Range)))
		}
	}
	return format.Concat(parts...)
}

func lineBreak(newlines int) format.Element {
	if newlines > 1 {
		return format.EmptyLine()
	}
	return format.HardLineBreak()
}

// blankLineBefore reports whether an empty line precedes t or its first
// comment.
func blankLineBefore(t *syntax.Token) bool {
	if t == nil {
		return false
	}
	newlines := 0
	for _, piece := range t.LeadingTrivia() {
		switch piece.Kind {
		case syntax.TriviaNewline:
			newlines++
			if newlines > 1 {
				return true
			}
		case syntax.TriviaWhitespace:
		default:
			return false
		}
	}
	return false
}
