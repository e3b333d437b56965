package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

func (f *formatter) class(n *syntax.Node) format.Element {
	var decorators format.Element
	if n.Kind() == syntax.NodeClassDeclaration {
		decorators = f.decorators(n.FieldNode("decorators"))
	} else {
		decorators = f.inlineDecorators(n.FieldNode("decorators"))
	}

	var members format.Element = format.Empty{}
	if list := n.FieldNode("members"); list != nil {
		members = f.lines(list.ChildNodes(), f.classMember)
	}
	return format.Concat(
		decorators,
		withSpace(f.field(n, "abstract")),
		f.field(n, "class"),
		spaced(f.field(n, "id")),
		f.field(n, "type_parameters"),
		spaced(f.field(n, "extends_clause")),
		spaced(f.field(n, "implements_clause")),
		format.Space(),
		f.block(n.FieldToken("l_curly"), members, n.FieldToken("r_curly")),
	)
}

func (f *formatter) classMember(n *syntax.Node) format.Element {
	if n.Kind() == syntax.NodeEmptyClassMember && !hasComments(n) {
		return format.Empty{}
	}
	if isIgnored(n) {
		return f.verbatim(n, format.VerbatimSuppressed)
	}
	return f.withTrailingLast(n, f.node)
}

// method prints class and object methods and TypeScript method signatures.
func (f *formatter) method(n *syntax.Node) format.Element {
	parts := []format.Element{
		f.modifiers(n.FieldNode("modifiers")),
		withSpace(f.field(n, "async")),
		f.field(n, "star"),
		f.field(n, "name"),
		f.field(n, "question"),
		f.signature(n),
	}
	if n.Kind() == syntax.NodeTsMethodSignatureClassMember {
		parts = append(parts, f.memberSemicolon(n))
	} else {
		parts = append(parts, spaced(f.field(n, "body")))
	}
	return format.Concat(parts...)
}

// accessor prints getters and setters of classes and objects.
func (f *formatter) accessor(n *syntax.Node) format.Element {
	keyword := "get"
	if n.Kind() == syntax.NodeSetterClassMember || n.Kind() == syntax.NodeSetterObjectMember {
		keyword = "set"
	}
	return format.Concat(
		f.modifiers(n.FieldNode("modifiers")),
		f.field(n, keyword), format.Space(),
		f.field(n, "name"),
		f.tokenOr(n.FieldToken("l_paren"), "("),
		f.field(n, "parameter"),
		f.tokenOr(n.FieldToken("r_paren"), ")"),
		f.field(n, "return_type"),
		spaced(f.field(n, "body")),
	)
}

func (f *formatter) classProperty(n *syntax.Node) format.Element {
	return format.Concat(
		f.modifiers(n.FieldNode("modifiers")),
		f.field(n, "name"),
		f.field(n, "property_annotation"),
		f.field(n, "type_annotation"),
		f.field(n, "value"),
		f.memberSemicolon(n),
	)
}

// memberSemicolon ends a class member that has no body. Without semicolons
// it is still needed when the next member would otherwise continue this
// one.
func (f *formatter) memberSemicolon(n *syntax.Node) format.Element {
	t := n.FieldToken("semicolon")
	if f.opts.Semicolons == SemicolonsAlways {
		return f.tokenOr(t, ";")
	}
	if next, ok := n.NextSibling().(*syntax.Node); ok {
		if first := next.FirstToken(); first != nil {
			switch first.Kind() {
			case syntax.TokLBrack, syntax.TokLParen, syntax.TokStar:
				return f.tokenOr(t, ";")
			}
		}
	}
	return f.removed(t)
}
