package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// listItem is one element of a separated list with the separator after it.
// Recovered lists may have items without a node.
type listItem struct {
	node *syntax.Node
	sep  *syntax.Token
}

func splitList(list *syntax.Node) []listItem {
	if list == nil {
		return nil
	}
	var items []listItem
	for _, child := range list.Children() {
		switch child := child.(type) {
		case *syntax.Node:
			items = append(items, listItem{node: child})
		case *syntax.Token:
			if len(items) == 0 || items[len(items)-1].sep != nil {
				items = append(items, listItem{})
			}
			items[len(items)-1].sep = child
		}
	}
	return items
}

type listLayout struct {
	// separator replaces the source separators; "," when empty.
	separator string
	// line goes after each separator; SoftLineBreakOrSpace when nil.
	line func() format.Element
	// trailing adds a separator after the last item when the group breaks.
	trailing bool
	// blankLines keeps one empty line between items when the group breaks.
	blankLines bool
	// keepLast prints the separator after the last item as written.
	keepLast bool
}

// list prints a separated list. Separators are normalized and the comments
// around them are kept.
func (f *formatter) list(list *syntax.Node, layout listLayout) format.Element {
	items := splitList(list)
	if len(items) == 0 {
		return format.Empty{}
	}
	separator := layout.separator
	if separator == "" {
		separator = ","
	}
	line := layout.line
	if line == nil {
		line = format.SoftLineBreakOrSpace
	}

	parts := make([]format.Element, 0, 4*len(items))
	for i, item := range items {
		if i > 0 {
			if layout.blankLines && item.node != nil && blankLineBefore(item.node) {
				parts = append(parts, format.IfGroupBreaks(format.EmptyLine()))
			}
			parts = append(parts, line())
		}
		parts = append(parts, f.node(item.node))
		last := i == len(items)-1
		switch {
		case !last:
			parts = append(parts, f.replaced(item.sep, separator))
		case layout.keepLast && item.sep != nil:
			parts = append(parts, f.replaced(item.sep, separator))
		case layout.trailing:
			parts = append(parts, f.removed(item.sep), format.IfGroupBreaks(format.Text(separator)))
		default:
			parts = append(parts, f.removed(item.sep))
		}
	}
	return format.Concat(parts...)
}

// lines prints nodes one per line, keeping single blank lines between them.
func (f *formatter) lines(nodes []*syntax.Node, print func(*syntax.Node) format.Element) format.Element {
	parts := make([]format.Element, 0, 2*len(nodes))
	for _, n := range nodes {
		doc := print(n)
		if format.IsEmpty(doc) {
			continue
		}
		if len(parts) > 0 {
			if blankLineBefore(n) {
				parts = append(parts, format.EmptyLine())
			} else {
				parts = append(parts, format.HardLineBreak())
			}
		}
		parts = append(parts, doc)
	}
	return format.Concat(parts...)
}

// plainList concatenates the children of an unseparated list.
func (f *formatter) plainList(list *syntax.Node) format.Element {
	if list == nil {
		return format.Empty{}
	}
	children := list.Children()
	parts := make([]format.Element, 0, len(children))
	for _, child := range children {
		parts = append(parts, f.element(child))
	}
	return format.Concat(parts...)
}

type bracketStyle struct {
	// spaced prints a space inside the brackets when flat.
	spaced bool
	// expand forces the group to break.
	expand bool
}

// delimited groups content between l and r, indenting it when the group
// breaks. Comments before r stay inside the brackets.
func (f *formatter) delimited(l *syntax.Token, content format.Element, r *syntax.Token, style bracketStyle) format.Element {
	inner := f.delimitedContent(l, content, r, style)
	if style.expand {
		return format.ExpandedGroup(inner)
	}
	return format.Group(inner)
}

// delimitedContent is delimited without the enclosing group.
func (f *formatter) delimitedContent(l *syntax.Token, content format.Element, r *syntax.Token, style bracketStyle) format.Element {
	dangling := f.dangling(r)
	if format.IsEmpty(content) && format.IsEmpty(dangling) {
		return format.Concat(f.token(l), f.closing(r))
	}
	if !format.IsEmpty(dangling) {
		if format.IsEmpty(content) {
			content = dangling
		} else {
			content = format.Concat(content, format.HardLineBreak(), dangling)
		}
	}
	var body format.Element
	if style.spaced {
		body = format.SoftSpaceBlockIndent(content)
	} else {
		body = format.SoftBlockIndent(content)
	}
	return format.Concat(f.token(l), body, f.closing(r))
}

// closing prints a closing token whose leading comments were printed by the
// enclosing construct.
func (f *formatter) closing(t *syntax.Token) format.Element {
	if t == nil {
		return format.Empty{}
	}
	return format.Concat(f.tokenText(t), f.trailing(t))
}

// block prints braces around statements that always go on their own lines.
func (f *formatter) block(l *syntax.Token, content format.Element, r *syntax.Token) format.Element {
	dangling := f.dangling(r)
	switch {
	case format.IsEmpty(content) && format.IsEmpty(dangling):
		return format.Concat(f.token(l), f.closing(r))
	case format.IsEmpty(content):
		content = dangling
	case !format.IsEmpty(dangling):
		content = format.Concat(content, format.HardLineBreak(), dangling)
	}
	return format.Concat(f.token(l), format.BlockIndent(content), f.closing(r))
}
