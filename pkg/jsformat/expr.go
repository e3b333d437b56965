package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// array prints array literals and array patterns. Arrays of numbers fill
// the available width instead of taking one line per element.
func (f *formatter) array(n *syntax.Node, field string) format.Element {
	l, r := n.FieldToken("l_brack"), n.FieldToken("r_brack")
	list := n.FieldNode(field)
	items := splitList(list)
	if len(items) == 0 {
		return f.delimited(l, format.Empty{}, r, bracketStyle{})
	}

	last := items[len(items)-1].node
	trailing := f.opts.trailingComma(true) && !isRest(last)
	if last != nil && last.Kind() == syntax.NodeArrayHole {
		// `[a,,]` needs both commas to keep its length.
		trailing = false
	}

	if len(items) > 1 && allNumbers(items) && !hasComments(list) {
		docs := make([]format.Element, 0, len(items))
		for i, item := range items {
			sep := f.removed(item.sep)
			if i < len(items)-1 {
				sep = f.replaced(item.sep, ",")
			}
			docs = append(docs, format.Concat(f.node(item.node), sep))
		}
		var comma format.Element = format.Empty{}
		if trailing {
			comma = format.IfGroupBreaks(format.Text(","))
		}
		fill := format.Fill(format.SoftLineBreakOrSpace(), docs...)
		return format.Group(f.token(l), format.SoftBlockIndent(fill, comma), f.closing(r))
	}

	content := f.list(list, listLayout{trailing: trailing, keepLast: !trailing && last != nil && last.Kind() == syntax.NodeArrayHole})
	return f.delimited(l, content, r, bracketStyle{})
}

func isRest(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case syntax.NodeRestParameter, syntax.NodeArrayBindingPatternRestElement, syntax.NodeObjectBindingPatternRest:
		return true
	}
	return false
}

func allNumbers(items []listItem) bool {
	for _, item := range items {
		n := item.node
		if n == nil {
			return false
		}
		if n.Kind() == syntax.NodeUnaryExpression {
			op := n.FieldToken("operator")
			if op == nil || (op.Kind() != syntax.TokMinus && op.Kind() != syntax.TokPlus) {
				return false
			}
			n = n.FieldNode("argument")
		}
		if n == nil || n.Kind() != syntax.NodeNumberLiteralExpression {
			return false
		}
	}
	return true
}

// object prints object literals and object patterns. A literal whose first
// member starts on a new line stays expanded.
func (f *formatter) object(n *syntax.Node, field string, literal bool) format.Element {
	list := n.FieldNode(field)
	items := splitList(list)
	expand := false
	if literal && len(items) > 0 && items[0].node != nil {
		expand = startsOnNewLine(items[0].node)
	}
	trailing := f.opts.trailingComma(true)
	if len(items) > 0 && isRest(items[len(items)-1].node) {
		trailing = false
	}
	content := f.list(list, listLayout{trailing: trailing, blankLines: true})
	return f.delimited(n.FieldToken("l_curly"), content, n.FieldToken("r_curly"),
		bracketStyle{spaced: f.opts.BracketSpacing, expand: expand})
}

// conditional prints `test ? consequent : alternate`, breaking before the
// operators.
func (f *formatter) conditional(n *syntax.Node, test, consequent, alternate string) format.Element {
	return format.Group(
		f.field(n, test),
		format.Indent(
			format.SoftLineBreakOrSpace(), f.field(n, "question"), format.Space(), f.field(n, consequent),
			format.SoftLineBreakOrSpace(), f.field(n, "colon"), format.Space(), f.field(n, alternate),
		),
	)
}

// binary prints a chain of operators of the same precedence as one group
// that breaks after each operator.
func (f *formatter) binary(n *syntax.Node) format.Element {
	chain := []*syntax.Node{n}
	left := n.FieldNode("left")
	for left != nil && isBinary(left) && flattens(operatorOf(n), operatorOf(left)) {
		chain = append(chain, left)
		left = left.FieldNode("left")
	}

	rest := make([]format.Element, 0, 4*len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		link := chain[i]
		rest = append(rest, format.Space(), f.field(link, "operator"), format.SoftLineBreakOrSpace(), f.field(link, "right"))
	}
	if parent := n.Parent(); parent != nil && !indentsBinary(parent.Kind()) {
		return format.Group(f.node(left), format.Concat(rest...))
	}
	return format.Group(f.node(left), format.Indent(rest...))
}

func isBinary(n *syntax.Node) bool {
	return n.Kind() == syntax.NodeBinaryExpression || n.Kind() == syntax.NodeLogicalExpression
}

func operatorOf(n *syntax.Node) syntax.Kind {
	if op := n.FieldToken("operator"); op != nil {
		return op.Kind()
	}
	return syntax.Tombstone
}

// indentsBinary reports whether a binary chain directly inside a node of
// kind is indented when it breaks. Statement heads already indent it.
func indentsBinary(kind syntax.Kind) bool {
	switch kind {
	case syntax.NodeIfStatement, syntax.NodeWhileStatement, syntax.NodeDoWhileStatement,
		syntax.NodeSwitchStatement, syntax.NodeJSXExpressionChild, syntax.NodeJSXExpressionAttributeValue:
		return false
	}
	return true
}

// precedence ranks binary operators; 0 means not a binary operator.
func precedence(kind syntax.Kind) int {
	switch kind {
	case syntax.TokQuestion2:
		return 1
	case syntax.TokPipe2:
		return 2
	case syntax.TokAmp2:
		return 3
	case syntax.TokPipe:
		return 4
	case syntax.TokCaret:
		return 5
	case syntax.TokAmp:
		return 6
	case syntax.TokEq2, syntax.TokNeq, syntax.TokEq3, syntax.TokNeq2:
		return 7
	case syntax.TokLAngle, syntax.TokRAngle, syntax.TokLtEq, syntax.TokGtEq, syntax.TokInstanceofKw, syntax.TokInKw:
		return 8
	case syntax.TokShl, syntax.TokShr, syntax.TokUShr:
		return 9
	case syntax.TokPlus, syntax.TokMinus:
		return 10
	case syntax.TokStar, syntax.TokSlash, syntax.TokPercent:
		return 11
	case syntax.TokStar2:
		return 12
	}
	return 0
}

// flattens reports whether `a parent b` with a left operand `x child y`
// prints as one chain.
func flattens(parent, child syntax.Kind) bool {
	p := precedence(parent)
	if p == 0 || p != precedence(child) {
		return false
	}
	switch p {
	case 7, 9, 12:
		// a == b == c, a << b << c and a ** b ** c read better grouped.
		return false
	case 11:
		// x * y % z mixes two readings.
		return parent == child || (parent != syntax.TokPercent && child != syntax.TokPercent)
	}
	return true
}

func (f *formatter) unary(n *syntax.Node) format.Element {
	op := n.FieldToken("operator")
	argument := n.FieldNode("argument")
	space := false
	if op != nil {
		switch op.Kind() {
		case syntax.TokTypeofKw, syntax.TokVoidKw, syntax.TokDeleteKw:
			space = true
		case syntax.TokPlus, syntax.TokMinus:
			if argument != nil {
				if first := argument.FirstToken(); first != nil {
					switch first.Kind() {
					case syntax.TokPlus, syntax.TokMinus, syntax.TokPlus2, syntax.TokMinus2:
						space = true
					}
				}
			}
		}
	}
	if space {
		return format.Concat(f.token(op), format.Space(), f.node(argument))
	}
	return format.Concat(f.token(op), f.node(argument))
}

func (f *formatter) newExpression(n *syntax.Node) format.Element {
	arguments := f.field(n, "arguments")
	if format.IsEmpty(arguments) {
		arguments = format.Text("()")
	}
	return format.Concat(f.field(n, "new"), format.Space(), f.field(n, "callee"), f.field(n, "type_arguments"), arguments)
}

// memberObject prints the object of a member access. An integer needs a
// space before `.` so that the dot is not read as a decimal point.
func (f *formatter) memberObject(n *syntax.Node) format.Element {
	object := n.FieldNode("object")
	doc := f.node(object)
	if n.Kind() == syntax.NodeStaticMemberExpression && isInteger(object) {
		return format.Concat(doc, format.Space())
	}
	return doc
}

func isInteger(n *syntax.Node) bool {
	if n == nil || n.Kind() != syntax.NodeNumberLiteralExpression {
		return false
	}
	text := n.Text()
	for i := range len(text) {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return text != ""
}

func (f *formatter) memberSuffix(n *syntax.Node) format.Element {
	if n.Kind() == syntax.NodeStaticMemberExpression {
		return format.Concat(f.field(n, "operator"), f.field(n, "member"))
	}
	return format.Concat(f.field(n, "optional_chain"), f.field(n, "l_brack"), f.field(n, "member"), f.field(n, "r_brack"))
}

// arguments prints call arguments. When the last argument is a function or
// a literal that can break on its own, the call hugs it: the other
// arguments stay on the first line and the last one expands.
func (f *formatter) arguments(n *syntax.Node) format.Element {
	l, r := n.FieldToken("l_paren"), n.FieldToken("r_paren")
	list := n.FieldNode("args")
	items := splitList(list)
	if len(items) == 0 {
		return f.delimited(l, format.Empty{}, r, bracketStyle{})
	}

	docs := make([]format.Element, len(items))
	seps := make([]format.Element, len(items))
	for i, item := range items {
		docs[i] = f.node(item.node)
		if i < len(items)-1 {
			seps[i] = f.replaced(item.sep, ",")
		} else {
			seps[i] = f.removed(item.sep)
		}
	}

	parts := make([]format.Element, 0, 3*len(items))
	for i := range items {
		if i > 0 {
			parts = append(parts, format.SoftLineBreakOrSpace())
		}
		parts = append(parts, docs[i], seps[i])
	}
	if f.opts.trailingComma(false) {
		parts = append(parts, format.IfGroupBreaks(format.Text(",")))
	}
	normal := f.delimitedContent(l, format.Concat(parts...), r, bracketStyle{})
	if r != nil && r.HasLeadingComments() {
		return format.Group(normal)
	}

	switch {
	case huggsLast(items):
		hugged := make([]format.Element, 0, 3*len(items)+2)
		hugged = append(hugged, f.token(l))
		for i := range items[:len(items)-1] {
			hugged = append(hugged, docs[i], seps[i], format.Space())
		}
		last := len(items) - 1
		hugged = append(hugged, expanded(docs[last]), seps[last], f.closing(r))
		return format.BestFitting(format.Group(normal), format.Concat(hugged...), format.ExpandedGroup(normal))
	case huggsFirst(items):
		hugged := format.Concat(f.token(l), expanded(docs[0]), seps[0], format.Space(), docs[1], seps[1], f.closing(r))
		return format.BestFitting(format.Group(normal), hugged, format.ExpandedGroup(normal))
	}
	return format.Group(normal)
}

// expanded forces the outermost group of doc to break.
func expanded(doc format.Element) format.Element {
	if group, ok := doc.(format.GroupElement); ok {
		group.Expand = true
		return group
	}
	return format.ExpandedGroup(doc)
}

func huggsLast(items []listItem) bool {
	last := items[len(items)-1].node
	if !huggable(last) {
		return false
	}
	for _, item := range items[:len(items)-1] {
		if item.node == nil || huggable(item.node) || hasComments(item.node) {
			return false
		}
		switch item.node.Kind() {
		case syntax.NodeObjectExpression, syntax.NodeArrayExpression:
			return false
		}
	}
	return true
}

// huggsFirst matches `setTimeout(function () {}, 500)`.
func huggsFirst(items []listItem) bool {
	if len(items) != 2 {
		return false
	}
	first, second := items[0].node, items[1].node
	if first == nil || second == nil || hasComments(second) {
		return false
	}
	switch first.Kind() {
	case syntax.NodeFunctionExpression:
	case syntax.NodeArrowFunctionExpression:
		body := first.FieldNode("body")
		if body == nil || body.Kind() != syntax.NodeFunctionBody {
			return false
		}
	default:
		return false
	}
	return !huggable(second) && !isBinary(second) && second.Kind() != syntax.NodeConditionalExpression
}

// huggable reports whether an argument can expand on its own while the
// call stays on one line.
func huggable(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case syntax.NodeFunctionExpression:
		return true
	case syntax.NodeObjectExpression:
		return !isEmptyList(n.FieldNode("members"))
	case syntax.NodeArrayExpression:
		return !isEmptyList(n.FieldNode("elements"))
	case syntax.NodeArrowFunctionExpression:
		body := n.FieldNode("body")
		if body == nil {
			return false
		}
		switch body.Kind() {
		case syntax.NodeFunctionBody, syntax.NodeObjectExpression, syntax.NodeArrayExpression,
			syntax.NodeJSXTagExpression, syntax.NodeCallExpression, syntax.NodeParenthesizedExpression,
			syntax.NodeTemplateExpression:
			return true
		case syntax.NodeArrowFunctionExpression:
			return huggable(body)
		}
	}
	return false
}

func isEmptyList(list *syntax.Node) bool {
	return list == nil || list.IsEmpty()
}
