package jsformat

import (
	"strings"

	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

func (f *formatter) program(n *syntax.Node) format.Element {
	listField := "items"
	if n.Kind() == syntax.NodeScript {
		listField = "statements"
	}
	directives := n.FieldNode("directives")
	items := n.FieldNode(listField)

	var parts []format.Element
	if directives != nil {
		parts = append(parts, f.lines(directives.ChildNodes(), f.node))
	}
	body := f.statementList(items)
	if !format.IsEmpty(body) {
		if len(parts) > 0 {
			parts = append(parts, separatorBefore(items.FirstToken()))
		}
		parts = append(parts, body)
	}
	eof := n.FieldToken("eof")
	if comments := f.dangling(eof); !format.IsEmpty(comments) {
		if len(parts) > 0 {
			parts = append(parts, separatorBefore(eof))
		}
		parts = append(parts, comments)
	}
	if len(parts) == 0 {
		return format.Empty{}
	}
	parts = append(parts, format.HardLineBreak())
	return format.Concat(parts...)
}

func separatorBefore(t *syntax.Token) format.Element {
	if blankLineBeforeToken(t) {
		return format.EmptyLine()
	}
	return format.HardLineBreak()
}

func (f *formatter) directive(n *syntax.Node) format.Element {
	value := n.FieldToken("value")
	if value == nil {
		return f.semicolon(n.FieldToken("semicolon"))
	}
	var doc format.Element
	if text := value.Text(); len(text) >= 2 && !strings.ContainsAny(text[1:len(text)-1], `"'`) {
		doc = f.token(value)
	} else {
		doc = f.rawToken(value)
	}
	return format.Concat(doc, f.semicolon(n.FieldToken("semicolon")))
}

// statementList prints statements one per line. Empty statements without
// comments are dropped.
func (f *formatter) statementList(list *syntax.Node) format.Element {
	if list == nil {
		return format.Empty{}
	}
	children := list.ChildNodes()
	kept := make([]*syntax.Node, 0, len(children))
	for _, child := range children {
		if child.Kind() == syntax.NodeEmptyStatement && !hasComments(child) {
			continue
		}
		kept = append(kept, child)
	}
	return f.lines(kept, f.statement)
}

// statement prints a statement of a statement list.
func (f *formatter) statement(n *syntax.Node) format.Element {
	if isIgnored(n) {
		return f.verbatim(n, format.VerbatimSuppressed)
	}
	if f.opts.Semicolons == SemicolonsAsNeeded && n.Kind() == syntax.NodeExpressionStatement {
		if first := n.FirstToken(); first != nil && needsGuard(first.Kind()) {
			f.guards[first.Range().Start] = true
		}
	}
	return f.withTrailingLast(n, f.node)
}

// needsGuard reports whether a statement starting with kind would continue
// the previous statement if that one had no semicolon.
func needsGuard(kind syntax.Kind) bool {
	switch kind {
	case syntax.TokLParen, syntax.TokLBrack, syntax.TokBacktick, syntax.TokPlus, syntax.TokMinus,
		syntax.TokRegexLiteral, syntax.TokSlash, syntax.TokSlashEq:
		return true
	}
	return false
}

func (f *formatter) semicolon(t *syntax.Token) format.Element {
	if f.opts.Semicolons == SemicolonsAsNeeded {
		return f.removed(t)
	}
	return f.tokenOr(t, ";")
}

// variableDeclaration keeps the first declarator next to the keyword and
// indents the others. Several declarators with initializers always go on
// separate lines.
func (f *formatter) variableDeclaration(n *syntax.Node) format.Element {
	kind := f.field(n, "kind")
	items := splitList(n.FieldNode("declarators"))
	if len(items) == 0 {
		return kind
	}

	line := format.SoftLineBreakOrSpace
	if len(items) > 1 {
		for _, item := range items {
			if item.node != nil && item.node.HasField("initializer") {
				line = format.HardLineBreak
				break
			}
		}
	}

	var first format.Element
	rest := make([]format.Element, 0, 2*len(items))
	for i, item := range items {
		sep := f.removed(item.sep)
		if i < len(items)-1 {
			sep = f.replaced(item.sep, ",")
		}
		doc := format.Concat(f.node(item.node), sep)
		if i == 0 {
			first = doc
			continue
		}
		rest = append(rest, line(), doc)
	}
	return format.Concat(kind, format.Space(), format.Group(first, format.Indent(rest...)))
}

// assignedValue prints the right side of `=` or `:`. Values that read well
// on their own line move there when they do not fit; the others break
// internally.
func (f *formatter) assignedValue(n *syntax.Node) format.Element {
	if n == nil {
		return format.Empty{}
	}
	value := f.node(n)
	if breaksAfterOperator(n) {
		return format.Group(format.Indent(format.SoftLineBreakOrSpace(), value))
	}
	return format.Concat(format.Space(), value)
}

func breaksAfterOperator(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.NodeBinaryExpression, syntax.NodeLogicalExpression, syntax.NodeConditionalExpression,
		syntax.NodeStringLiteralExpression, syntax.NodeNumberLiteralExpression, syntax.NodeBigIntLiteralExpression,
		syntax.NodeIdentifierExpression, syntax.NodeStaticMemberExpression, syntax.NodeComputedMemberExpression,
		syntax.NodeTsAsExpression, syntax.NodeTsSatisfiesExpression, syntax.NodeUnaryExpression,
		syntax.NodeAwaitExpression, syntax.NodeTsNonNullAssertionExpression, syntax.NodeRegexLiteralExpression:
		return true
	}
	return false
}

// parenthesized prints the named child of n between the parentheses of a
// statement head.
func (f *formatter) parenthesized(n *syntax.Node, name string) format.Element {
	return f.delimited(n.FieldToken("l_paren"), f.field(n, name), n.FieldToken("r_paren"), bracketStyle{})
}

// clauseBody prints the body of a compound statement after its head.
func (f *formatter) clauseBody(body *syntax.Node) format.Element {
	if body == nil {
		return format.Empty{}
	}
	switch body.Kind() {
	case syntax.NodeBlockStatement:
		return format.Concat(format.Space(), f.node(body))
	case syntax.NodeEmptyStatement:
		return f.node(body)
	}
	return format.Group(format.Indent(format.SoftLineBreakOrSpace(), f.node(body)))
}

func (f *formatter) ifStatement(n *syntax.Node) format.Element {
	consequent := n.FieldNode("consequent")
	parts := []format.Element{
		f.field(n, "if"), format.Space(), f.parenthesized(n, "test"), f.clauseBody(consequent),
	}

	clause := n.FieldNode("else_clause")
	if clause == nil {
		return format.Concat(parts...)
	}
	elseToken := clause.FieldToken("else")
	if consequent != nil && consequent.Kind() == syntax.NodeBlockStatement &&
		(elseToken == nil || !elseToken.HasLeadingComments()) {
		parts = append(parts, format.Space())
	} else {
		parts = append(parts, format.HardLineBreak())
	}
	parts = append(parts, f.tokenOr(elseToken, "else"))

	alternate := clause.FieldNode("alternate")
	if alternate != nil && alternate.Kind() == syntax.NodeIfStatement {
		parts = append(parts, format.Space(), f.node(alternate))
	} else {
		parts = append(parts, f.clauseBody(alternate))
	}
	return format.Concat(parts...)
}

func (f *formatter) forStatement(n *syntax.Node) format.Element {
	return format.Concat(
		f.field(n, "for"), format.Space(),
		f.token(n.FieldToken("l_paren")),
		f.field(n, "initializer"),
		f.tokenOr(n.FieldToken("first_semicolon"), ";"),
		spaced(f.field(n, "test")),
		f.tokenOr(n.FieldToken("second_semicolon"), ";"),
		spaced(f.field(n, "update")),
		f.token(n.FieldToken("r_paren")),
		f.clauseBody(n.FieldNode("body")),
	)
}

func (f *formatter) forInOfStatement(n *syntax.Node) format.Element {
	keyword := "in"
	if n.Kind() == syntax.NodeForOfStatement {
		keyword = "of"
	}
	return format.Concat(
		f.field(n, "for"), spaced(f.field(n, "await")), format.Space(),
		f.token(n.FieldToken("l_paren")),
		f.field(n, "initializer"), format.Space(),
		f.field(n, keyword), format.Space(),
		f.field(n, "expression"),
		f.token(n.FieldToken("r_paren")),
		f.clauseBody(n.FieldNode("body")),
	)
}

func (f *formatter) doWhileStatement(n *syntax.Node) format.Element {
	body := n.FieldNode("body")
	parts := []format.Element{f.field(n, "do")}
	if body != nil && body.Kind() == syntax.NodeBlockStatement {
		parts = append(parts, format.Space(), f.node(body), format.Space())
	} else {
		parts = append(parts, f.clauseBody(body), format.HardLineBreak())
	}
	parts = append(parts, f.field(n, "while"), format.Space(), f.parenthesized(n, "test"),
		f.semicolon(n.FieldToken("semicolon")))
	return format.Concat(parts...)
}

// keywordStatement prints return, throw, break and continue.
func (f *formatter) keywordStatement(n *syntax.Node, argument string) format.Element {
	return format.Concat(f.element(n.Slot(0)), spaced(f.field(n, argument)), f.semicolon(n.FieldToken("semicolon")))
}

func (f *formatter) tryStatement(n *syntax.Node) format.Element {
	return format.Concat(
		f.field(n, "try"), format.Space(), f.field(n, "body"),
		spaced(f.field(n, "catch_clause")),
		spaced(f.field(n, "finally_clause")),
	)
}

func (f *formatter) switchStatement(n *syntax.Node) format.Element {
	var cases format.Element = format.Empty{}
	if list := n.FieldNode("cases"); list != nil {
		cases = f.lines(list.ChildNodes(), f.node)
	}
	return format.Concat(
		f.field(n, "switch"), format.Space(),
		f.delimited(n.FieldToken("l_paren"), f.field(n, "discriminant"), n.FieldToken("r_paren"), bracketStyle{}),
		format.Space(),
		f.block(n.FieldToken("l_curly"), cases, n.FieldToken("r_curly")),
	)
}

// switchClause prints a case or default clause. A lone block stays on the
// clause line; other statements are indented below it.
func (f *formatter) switchClause(n *syntax.Node) format.Element {
	var head format.Element
	if n.Kind() == syntax.NodeCaseClause {
		head = format.Concat(f.field(n, "case"), format.Space(), f.field(n, "test"), f.field(n, "colon"))
	} else {
		head = format.Concat(f.field(n, "default"), f.field(n, "colon"))
	}

	consequent := n.FieldNode("consequent")
	if consequent == nil {
		return head
	}
	statements := consequent.ChildNodes()
	if len(statements) == 1 && statements[0].Kind() == syntax.NodeBlockStatement && !isIgnored(statements[0]) {
		return format.Concat(head, format.Space(), f.node(statements[0]))
	}
	body := f.statementList(consequent)
	if format.IsEmpty(body) {
		return head
	}
	return format.Concat(head, format.Indent(format.HardLineBreak(), body))
}

func (f *formatter) labeledStatement(n *syntax.Node) format.Element {
	body := n.FieldNode("body")
	head := format.Concat(f.field(n, "label"), f.field(n, "colon"))
	if body != nil && body.Kind() == syntax.NodeEmptyStatement {
		return format.Concat(head, f.node(body))
	}
	return format.Concat(head, spaced(f.node(body)))
}
