package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// function prints function declarations and expressions, and TypeScript
// overload signatures.
func (f *formatter) function(n *syntax.Node) format.Element {
	parts := []format.Element{
		withSpace(f.field(n, "async")),
		f.field(n, "function"),
		f.field(n, "star"),
	}
	if id := f.field(n, "id"); !format.IsEmpty(id) {
		parts = append(parts, format.Space(), id)
	} else {
		parts = append(parts, format.Space())
	}
	parts = append(parts, f.signature(n))
	if n.Kind() == syntax.NodeTsDeclareFunctionDeclaration {
		parts = append(parts, f.semicolon(n.FieldToken("semicolon")))
	} else {
		parts = append(parts, spaced(f.field(n, "body")))
	}
	return format.Concat(parts...)
}

// signature prints type parameters, parameters and the return type.
func (f *formatter) signature(n *syntax.Node) format.Element {
	return format.Concat(f.field(n, "type_parameters"), f.field(n, "parameters"), f.field(n, "return_type"))
}

func (f *formatter) functionBody(n *syntax.Node) format.Element {
	var parts []format.Element
	if directives := n.FieldNode("directives"); directives != nil {
		parts = append(parts, f.lines(directives.ChildNodes(), f.node))
	}
	statements := n.FieldNode("statements")
	if body := f.statementList(statements); !format.IsEmpty(body) {
		if len(parts) > 0 && !format.IsEmpty(parts[0]) {
			parts = append(parts, separatorBefore(statements.FirstToken()))
		}
		parts = append(parts, body)
	}
	return f.block(n.FieldToken("l_curly"), format.Concat(parts...), n.FieldToken("r_curly"))
}

// parameters prints a parameter list. A lone destructuring pattern hugs the
// parentheses so that the pattern breaks instead of the list.
func (f *formatter) parameters(n *syntax.Node) format.Element {
	l, r := n.FieldToken("l_paren"), n.FieldToken("r_paren")
	list := n.FieldNode("items")
	items := splitList(list)

	if len(items) == 1 && huggableParameter(items[0].node) && !hasComments(n) {
		return format.Concat(f.token(l), f.node(items[0].node), f.removed(items[0].sep), f.token(r))
	}

	trailing := f.opts.trailingComma(false)
	if len(items) > 0 {
		if last := items[len(items)-1].node; last != nil && last.Kind() == syntax.NodeRestParameter {
			trailing = false
		}
	}
	return f.delimited(l, f.list(list, listLayout{trailing: trailing}), r, bracketStyle{})
}

func huggableParameter(param *syntax.Node) bool {
	if param == nil || param.Kind() != syntax.NodeFormalParameter {
		return false
	}
	binding := param.FieldNode("binding")
	if binding == nil || param.HasField("initializer") {
		return false
	}
	switch binding.Kind() {
	case syntax.NodeObjectBindingPattern, syntax.NodeArrayBindingPattern:
		return true
	}
	return false
}

// arrowFunction prints an arrow function. With ArrowAsNeeded the
// parentheses around a lone plain parameter are dropped.
func (f *formatter) arrowFunction(n *syntax.Node) format.Element {
	parts := []format.Element{withSpace(f.field(n, "async")), f.field(n, "type_parameters")}

	simple := !n.HasField("type_parameters") && !n.HasField("return_type")
	params := n.FieldNode("parameters")
	switch {
	case params == nil:
	case params.Kind() == syntax.NodeIdentifierBinding && f.opts.ArrowParentheses == ArrowAlways:
		parts = append(parts, format.Text("("), f.node(params), format.Text(")"))
	case params.Kind() == syntax.NodeParameters && simple && f.opts.ArrowParentheses == ArrowAsNeeded:
		parts = append(parts, f.arrowParameters(params))
	default:
		parts = append(parts, f.node(params))
	}

	parts = append(parts, f.field(n, "return_type"), format.Space(), f.field(n, "fat_arrow"))

	body := n.FieldNode("body")
	if body == nil {
		return format.Concat(parts...)
	}
	switch body.Kind() {
	case syntax.NodeFunctionBody, syntax.NodeObjectExpression, syntax.NodeArrayExpression,
		syntax.NodeTemplateExpression, syntax.NodeJSXTagExpression, syntax.NodeArrowFunctionExpression,
		syntax.NodeParenthesizedExpression, syntax.NodeCallExpression, syntax.NodeNewExpression:
		parts = append(parts, format.Space(), f.node(body))
	default:
		parts = append(parts, format.Group(format.Indent(format.SoftLineBreakOrSpace(), f.node(body))))
	}
	return format.Concat(parts...)
}

// arrowParameters drops the parentheses around a single identifier.
func (f *formatter) arrowParameters(params *syntax.Node) format.Element {
	items := splitList(params.FieldNode("items"))
	if len(items) != 1 || hasComments(params) {
		return f.node(params)
	}
	param := items[0].node
	if param == nil || param.Kind() != syntax.NodeFormalParameter {
		return f.node(params)
	}
	binding := param.FieldNode("binding")
	if binding == nil || binding.Kind() != syntax.NodeIdentifierBinding {
		return f.node(params)
	}
	for _, name := range []string{"question", "type_annotation", "initializer"} {
		if param.HasField(name) {
			return f.node(params)
		}
	}
	if decorators := param.FieldNode("decorators"); decorators != nil && !decorators.IsEmpty() {
		return f.node(params)
	}
	return f.node(binding)
}

// decorators prints decorators before a declaration. A decorator stays on
// the line of what follows unless the source put a line break after it.
func (f *formatter) decorators(list *syntax.Node) format.Element {
	if list == nil {
		return format.Empty{}
	}
	parts := make([]format.Element, 0, 2)
	for _, decorator := range list.ChildNodes() {
		parts = append(parts, f.node(decorator), f.afterDecorator(decorator))
	}
	return format.Concat(parts...)
}

// inlineDecorators prints decorators followed by spaces.
func (f *formatter) inlineDecorators(list *syntax.Node) format.Element {
	if list == nil {
		return format.Empty{}
	}
	parts := make([]format.Element, 0, 2)
	for _, decorator := range list.ChildNodes() {
		parts = append(parts, f.node(decorator), format.Space())
	}
	return format.Concat(parts...)
}

func (f *formatter) afterDecorator(decorator *syntax.Node) format.Element {
	last := decorator.LastToken()
	if last == nil {
		return format.Empty{}
	}
	if next := last.NextToken(); next != nil && next.HasLeadingNewline() {
		return format.HardLineBreak()
	}
	return format.Space()
}

// modifiers prints modifier keywords and decorators, each followed by a
// space.
func (f *formatter) modifiers(list *syntax.Node) format.Element {
	if list == nil {
		return format.Empty{}
	}
	children := list.Children()
	parts := make([]format.Element, 0, 2*len(children))
	for _, child := range children {
		switch child := child.(type) {
		case *syntax.Node:
			parts = append(parts, f.node(child), f.afterDecorator(child))
		case *syntax.Token:
			parts = append(parts, f.token(child), format.Space())
		}
	}
	return format.Concat(parts...)
}
