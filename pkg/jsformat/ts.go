package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// typeScript prints TypeScript types and declarations.
func (f *formatter) typeScript(n *syntax.Node) (format.Element, bool) {
	switch n.Kind() {
	case syntax.NodeTsTypeAnnotation, syntax.NodeTsReturnTypeAnnotation:
		return format.Concat(f.field(n, "colon"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsTypeParameters:
		return f.typeParameters(n), true
	case syntax.NodeTsTypeArguments:
		content := f.list(n.FieldNode("items"), listLayout{trailing: f.opts.trailingComma(false)})
		return f.delimited(n.FieldToken("l_angle"), content, n.FieldToken("r_angle"), bracketStyle{}), true
	case syntax.NodeTsTypeParameter:
		return format.Concat(f.modifiers(n.FieldNode("modifiers")), f.field(n, "name"),
			spaced(f.field(n, "constraint")), spaced(f.field(n, "default"))), true
	case syntax.NodeTsTypeConstraintClause:
		return format.Concat(f.field(n, "extends"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsDefaultTypeClause:
		return format.Concat(f.field(n, "eq"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsReferenceType:
		return format.Concat(f.field(n, "name"), f.field(n, "type_arguments")), true
	case syntax.NodeTsQualifiedName:
		return format.Concat(f.field(n, "left"), f.field(n, "dot"), f.field(n, "right")), true
	case syntax.NodeTsArrayType:
		return format.Concat(f.field(n, "element_type"), f.field(n, "l_brack"), f.field(n, "r_brack")), true
	case syntax.NodeTsIndexedAccessType:
		return format.Concat(f.field(n, "object_type"), f.field(n, "l_brack"), f.field(n, "index_type"), f.field(n, "r_brack")), true
	case syntax.NodeTsUnionType:
		return f.unionType(n), true
	case syntax.NodeTsIntersectionType:
		return f.intersectionType(n), true
	case syntax.NodeTsTupleType:
		content := f.list(n.FieldNode("elements"), listLayout{trailing: f.opts.trailingComma(false)})
		return f.delimited(n.FieldToken("l_brack"), content, n.FieldToken("r_brack"), bracketStyle{}), true
	case syntax.NodeTsNamedTupleTypeElement:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "name"), f.field(n, "question"), f.field(n, "colon"),
			format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsRestTupleTypeElement:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "ty")), true
	case syntax.NodeTsOptionalTupleTypeElement:
		return format.Concat(f.field(n, "ty"), f.field(n, "question")), true
	case syntax.NodeTsObjectType:
		return f.typeBody(n, startsOnNewLineList(n.FieldNode("members"))), true
	case syntax.NodeTsPropertySignatureTypeMember:
		return format.Concat(withSpace(f.field(n, "readonly")), f.field(n, "name"), f.field(n, "optional"), f.field(n, "type_annotation")), true
	case syntax.NodeTsMethodSignatureTypeMember:
		return format.Concat(f.field(n, "name"), f.field(n, "optional"), f.signature(n)), true
	case syntax.NodeTsIndexSignatureTypeMember:
		return format.Concat(withSpace(f.field(n, "readonly")), f.field(n, "l_brack"), f.field(n, "parameter"),
			f.field(n, "r_brack"), f.field(n, "type_annotation")), true
	case syntax.NodeTsIndexSignatureParameter:
		return format.Concat(f.field(n, "binding"), f.field(n, "type_annotation")), true
	case syntax.NodeTsCallSignatureTypeMember:
		return f.signature(n), true
	case syntax.NodeTsConstructSignatureTypeMember:
		return format.Concat(f.field(n, "new"), format.Space(), f.field(n, "type_parameters"), f.field(n, "parameters"),
			f.field(n, "type_annotation")), true
	case syntax.NodeTsFunctionType:
		return format.Concat(f.field(n, "type_parameters"), f.field(n, "parameters"), format.Space(),
			f.field(n, "fat_arrow"), format.Space(), f.field(n, "return_type")), true
	case syntax.NodeTsConstructorType:
		return format.Concat(withSpace(f.field(n, "abstract")), f.field(n, "new"), format.Space(), f.field(n, "type_parameters"),
			f.field(n, "parameters"), format.Space(), f.field(n, "fat_arrow"), format.Space(), f.field(n, "return_type")), true
	case syntax.NodeTsParenthesizedType:
		return format.Concat(f.field(n, "l_paren"), f.field(n, "ty"), f.field(n, "r_paren")), true
	case syntax.NodeTsLiteralType:
		return format.Concat(f.field(n, "minus"), f.field(n, "literal")), true
	case syntax.NodeTsTypeofType:
		return format.Concat(f.field(n, "typeof"), format.Space(), f.field(n, "expression_name"), f.field(n, "type_arguments")), true
	case syntax.NodeTsTypeOperatorType:
		return format.Concat(f.field(n, "operator"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsThisType:
		return f.field(n, "this"), true
	case syntax.NodeTsConditionalType:
		return f.conditionalType(n), true
	case syntax.NodeTsInferType:
		return format.Concat(f.field(n, "infer"), format.Space(), f.field(n, "name"), spaced(f.field(n, "constraint"))), true
	case syntax.NodeTsMappedType:
		return f.mappedType(n), true
	case syntax.NodeTsTypePredicate:
		return format.Concat(withSpace(f.field(n, "asserts")), f.field(n, "parameter_name"),
			spaced(f.field(n, "is")), spaced(f.field(n, "ty"))), true
	case syntax.NodeTsAsExpression:
		return format.Concat(f.field(n, "expression"), format.Space(), f.field(n, "as"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsSatisfiesExpression:
		return format.Concat(f.field(n, "expression"), format.Space(), f.field(n, "satisfies"), format.Space(), f.field(n, "ty")), true
	case syntax.NodeTsNonNullAssertionExpression:
		return format.Concat(f.field(n, "expression"), f.field(n, "excl")), true
	case syntax.NodeTsTypeAliasDeclaration:
		return format.Concat(f.field(n, "type"), format.Space(), f.field(n, "id"), f.field(n, "type_parameters"),
			format.Space(), f.field(n, "eq"), format.Space(), f.field(n, "ty"), f.semicolon(n.FieldToken("semicolon"))), true
	case syntax.NodeTsInterfaceDeclaration:
		return format.Concat(f.field(n, "interface"), format.Space(), f.field(n, "id"), f.field(n, "type_parameters"),
			spaced(f.field(n, "extends_clause")), format.Space(), f.typeBody(n, true)), true
	case syntax.NodeTsExtendsClause:
		return format.Concat(f.field(n, "extends"), format.Space(), format.Group(f.list(n.FieldNode("types"), listLayout{}))), true
	case syntax.NodeTsImplementsClause:
		return format.Concat(f.field(n, "implements"), format.Space(), format.Group(f.list(n.FieldNode("types"), listLayout{}))), true
	case syntax.NodeTsEnumDeclaration:
		content := f.list(n.FieldNode("members"), listLayout{trailing: f.opts.trailingComma(true), blankLines: true})
		return format.Concat(withSpace(f.field(n, "const")), f.field(n, "enum"), format.Space(), f.field(n, "id"), format.Space(),
			f.delimited(n.FieldToken("l_curly"), content, n.FieldToken("r_curly"),
				bracketStyle{spaced: f.opts.BracketSpacing, expand: true})), true
	case syntax.NodeTsEnumMember:
		return format.Concat(f.field(n, "name"), f.field(n, "initializer")), true
	case syntax.NodeTsDeclareStatement:
		return format.Concat(f.field(n, "declare"), format.Space(), f.field(n, "declaration")), true
	case syntax.NodeTsModuleDeclaration:
		return format.Concat(f.field(n, "keyword"), spaced(f.field(n, "name")), spaced(f.field(n, "body"))), true
	case syntax.NodeTsModuleBlock:
		return f.block(n.FieldToken("l_curly"), f.statementList(n.FieldNode("items")), n.FieldToken("r_curly")), true
	}
	return nil, false
}

// typeParameters prints `<T, U>`. A lone parameter keeps a comma written
// after it, which .tsx files need to tell `<T,>() => {}` from a tag.
func (f *formatter) typeParameters(n *syntax.Node) format.Element {
	list := n.FieldNode("items")
	items := splitList(list)
	layout := listLayout{trailing: f.opts.trailingComma(false)}
	if len(items) == 1 && items[0].sep != nil {
		layout = listLayout{keepLast: true}
	}
	return f.delimited(n.FieldToken("l_angle"), f.list(list, layout), n.FieldToken("r_angle"), bracketStyle{})
}

// unionType prints `A | B`, or one variant per line with leading bars when
// it does not fit.
func (f *formatter) unionType(n *syntax.Node) format.Element {
	items := splitList(n.FieldNode("types"))
	parts := make([]format.Element, 0, 4*len(items))
	for i, item := range items {
		if i > 0 {
			parts = append(parts, format.SoftLineBreakOrSpace(), f.replaced(items[i-1].sep, "|"), format.Space())
		}
		parts = append(parts, f.node(item.node))
	}
	if len(items) > 0 {
		parts = append(parts, f.removed(items[len(items)-1].sep))
	}
	if len(items) < 2 {
		return format.Concat(f.removed(n.FieldToken("leading_separator")), format.Concat(parts...))
	}
	return format.Group(
		f.removed(n.FieldToken("leading_separator")),
		format.Indent(format.SoftLineBreak(), format.IfGroupBreaks(format.Text("| ")), format.Concat(parts...)),
	)
}

func (f *formatter) intersectionType(n *syntax.Node) format.Element {
	items := splitList(n.FieldNode("types"))
	parts := make([]format.Element, 0, 4*len(items))
	for i, item := range items {
		if i > 0 {
			parts = append(parts, format.Space(), f.replaced(items[i-1].sep, "&"), format.SoftLineBreakOrSpace())
		}
		parts = append(parts, f.node(item.node))
	}
	if len(items) > 0 {
		parts = append(parts, f.removed(items[len(items)-1].sep))
	}
	return format.Group(f.removed(n.FieldToken("leading_separator")), format.Indent(parts...))
}

// typeBody prints the members of an object type or interface. Members are
// separated by semicolons; without semicolons they are only kept on a
// single line.
func (f *formatter) typeBody(n *syntax.Node, expand bool) format.Element {
	var members []*syntax.Node
	if list := n.FieldNode("members"); list != nil {
		members = list.ChildNodes()
	}
	parts := make([]format.Element, 0, 4*len(members))
	for i, member := range members {
		if i > 0 {
			if blankLineBefore(member) {
				parts = append(parts, format.IfGroupBreaks(format.EmptyLine()))
			}
			parts = append(parts, format.SoftLineBreakOrSpace())
		}
		parts = append(parts, f.typeMember(member))
		sep := member.FieldToken("separator")
		switch {
		case i < len(members)-1 && f.opts.Semicolons == SemicolonsAlways:
			parts = append(parts, f.replaced(sep, ";"))
		case i < len(members)-1:
			parts = append(parts, f.removed(sep), format.IfGroupFitsOnLine(format.Text(";")))
		case f.opts.Semicolons == SemicolonsAlways:
			parts = append(parts, f.removed(sep), format.IfGroupBreaks(format.Text(";")))
		default:
			parts = append(parts, f.removed(sep))
		}
	}
	return f.delimited(n.FieldToken("l_curly"), format.Concat(parts...), n.FieldToken("r_curly"),
		bracketStyle{spaced: f.opts.BracketSpacing, expand: expand})
}

func (f *formatter) typeMember(n *syntax.Node) format.Element {
	if isIgnored(n) {
		return f.verbatim(n, format.VerbatimSuppressed)
	}
	return f.node(n)
}

func startsOnNewLineList(list *syntax.Node) bool {
	if list == nil {
		return false
	}
	nodes := list.ChildNodes()
	return len(nodes) > 0 && startsOnNewLine(nodes[0])
}

func (f *formatter) conditionalType(n *syntax.Node) format.Element {
	return format.Group(
		f.field(n, "check_type"), format.Space(), f.field(n, "extends"), format.Space(), f.field(n, "extends_type"),
		format.Indent(
			format.SoftLineBreakOrSpace(), f.field(n, "question"), format.Space(), f.field(n, "true_type"),
			format.SoftLineBreakOrSpace(), f.field(n, "colon"), format.Space(), f.field(n, "false_type"),
		),
	)
}

// mappedType prints `{ readonly [K in T as N]?: V }`.
func (f *formatter) mappedType(n *syntax.Node) format.Element {
	var semicolon format.Element
	if f.opts.Semicolons == SemicolonsAlways {
		semicolon = format.Concat(f.removed(n.FieldToken("semicolon")), format.IfGroupBreaks(format.Text(";")))
	} else {
		semicolon = f.removed(n.FieldToken("semicolon"))
	}
	content := format.Concat(
		f.field(n, "readonly_sign"), withSpace(f.field(n, "readonly_modifier")),
		f.field(n, "l_brack"), f.field(n, "property_name"), format.Space(), f.field(n, "in"), format.Space(),
		f.field(n, "keys_type"), spaced(f.field(n, "as")), spaced(f.field(n, "name_type")), f.field(n, "r_brack"),
		f.field(n, "optional_sign"), f.field(n, "optional_modifier"), f.field(n, "type_annotation"),
		semicolon,
	)
	l := n.FieldToken("l_brack")
	expand := l != nil && l.HasLeadingNewline()
	return f.delimited(n.FieldToken("l_curly"), content, n.FieldToken("r_curly"),
		bracketStyle{spaced: f.opts.BracketSpacing, expand: expand})
}
