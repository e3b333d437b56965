package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// jsx prints JSX. Children are kept as written because whitespace between
// them is significant; tags and attributes are formatted.
func (f *formatter) jsx(n *syntax.Node) (format.Element, bool) {
	switch n.Kind() {
	case syntax.NodeJSXTagExpression:
		return f.field(n, "tag"), true
	case syntax.NodeJSXElement, syntax.NodeJSXFragment:
		return format.Concat(f.field(n, "opening"), f.plainList(n.FieldNode("children")), f.field(n, "closing")), true
	case syntax.NodeJSXOpeningElement:
		return f.jsxTag(n, false), true
	case syntax.NodeJSXSelfClosingElement:
		return f.jsxTag(n, true), true
	case syntax.NodeJSXClosingElement:
		return format.Concat(f.field(n, "l_angle"), f.field(n, "slash"), f.field(n, "name"), f.field(n, "r_angle")), true
	case syntax.NodeJSXOpeningFragment:
		return format.Concat(f.field(n, "l_angle"), f.field(n, "r_angle")), true
	case syntax.NodeJSXClosingFragment:
		return format.Concat(f.field(n, "l_angle"), f.field(n, "slash"), f.field(n, "r_angle")), true
	case syntax.NodeJSXName, syntax.NodeJSXString:
		return f.field(n, "value"), true
	case syntax.NodeJSXText:
		return f.rawToken(n.FieldToken("value")), true
	case syntax.NodeJSXMemberName:
		return format.Concat(f.field(n, "object"), f.field(n, "dot"), f.field(n, "member")), true
	case syntax.NodeJSXNamespaceName:
		return format.Concat(f.field(n, "namespace"), f.field(n, "colon"), f.field(n, "name")), true
	case syntax.NodeJSXAttribute:
		return format.Concat(f.field(n, "name"), f.field(n, "initializer")), true
	case syntax.NodeJSXAttributeInitializerClause:
		return format.Concat(f.field(n, "eq"), f.field(n, "value")), true
	case syntax.NodeJSXSpreadAttribute, syntax.NodeJSXSpreadChild:
		return f.jsxContainer(n, format.Concat(f.field(n, "dotdotdot"), f.field(n, "argument"), f.field(n, "expression"))), true
	case syntax.NodeJSXExpressionAttributeValue, syntax.NodeJSXExpressionChild:
		return f.jsxContainer(n, f.field(n, "expression")), true
	}
	return nil, false
}

// jsxTag prints an opening or self-closing tag with one attribute per line
// when the tag does not fit.
func (f *formatter) jsxTag(n *syntax.Node, selfClosing bool) format.Element {
	head := format.Concat(f.field(n, "l_angle"), f.field(n, "name"), f.field(n, "type_arguments"))
	var attributes []*syntax.Node
	if list := n.FieldNode("attributes"); list != nil {
		attributes = list.ChildNodes()
	}
	r := n.FieldToken("r_angle")

	if len(attributes) == 0 {
		if selfClosing {
			return format.Concat(head, format.Space(), f.field(n, "slash"), f.token(r))
		}
		return format.Concat(head, f.token(r))
	}

	lines := make([]format.Element, 0, 2*len(attributes))
	for _, attribute := range attributes {
		lines = append(lines, format.SoftLineBreakOrSpace(), f.node(attribute))
	}
	if selfClosing {
		return format.Group(head, format.Indent(lines...), format.SoftLineBreakOrSpace(), f.field(n, "slash"), f.token(r))
	}
	return format.Group(head, format.Indent(lines...), format.SoftLineBreak(), f.token(r))
}

// jsxContainer prints `{content}`. Line comments inside the braces are
// flushed before the closing brace.
func (f *formatter) jsxContainer(n *syntax.Node, content format.Element) format.Element {
	r := n.FieldToken("r_curly")
	return format.Concat(f.field(n, "l_curly"), content, f.dangling(r), format.LineSuffixBoundary(), f.closing(r))
}
