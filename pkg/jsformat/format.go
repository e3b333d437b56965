// Package jsformat turns JavaScript and TypeScript syntax trees into format
// documents and prints them.
//
// The formatter never adds or removes parentheses and never reorders
// tokens, so formatted code has the same meaning as its input. Nodes that
// could not be parsed, and statements preceded by a `// quill-ignore`
// comment, are printed as written.
package jsformat

import (
	"errors"
	"fmt"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/jsparser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	// ErrUnsupportedRoot is returned for trees that are not JavaScript
	// programs.
	ErrUnsupportedRoot = errors.New("jsformat: root is not a module or script")
	// ErrSyntax is returned by FormatSource when the source has syntax
	// errors.
	ErrSyntax = errors.New("jsformat: source has syntax errors")
)

// Format formats a tree produced by jsparser.Parse.
func Format(root *syntax.Node, opts Options) (format.Printed, error) {
	doc, err := Document(root, opts)
	if err != nil {
		return format.Printed{}, err
	}
	return format.Print(doc, opts.PrinterOptions), nil
}

// Document returns the format document of root without printing it.
func Document(root *syntax.Node, opts Options) (format.Element, error) {
	if root == nil || (root.Kind() != syntax.NodeModule && root.Kind() != syntax.NodeScript) {
		return nil, ErrUnsupportedRoot
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("jsformat: %w", err)
	}
	f := newFormatter(root, opts)
	return f.program(root), nil
}

// FormatSource parses and formats src. Sources with syntax errors are not
// formatted; their diagnostics are returned with ErrSyntax.
func FormatSource(src string, parseOpts jsparser.Options, opts Options) (format.Printed, []diagnostics.Diagnostic, error) {
	result := jsparser.Parse(src, parseOpts)
	if diagnostics.HasErrors(result.Diagnostics) {
		return format.Printed{}, result.Diagnostics, ErrSyntax
	}
	printed, err := Format(result.Root, opts)
	return printed, result.Diagnostics, err
}

type formatter struct {
	src   string
	opts  Options
	bogus map[*syntax.GreenNode]bool
	// guards holds the offsets of tokens that get a leading `;` to protect
	// a statement from automatic semicolon insertion.
	guards map[int]bool
	// deferred holds the offsets of statement-final tokens whose trailing
	// comments are printed after the whole statement.
	deferred map[int]bool
}

func newFormatter(root *syntax.Node, opts Options) *formatter {
	return &formatter{
		src:      root.FullText(),
		opts:     opts,
		bogus:    make(map[*syntax.GreenNode]bool),
		guards:   make(map[int]bool),
		deferred: make(map[int]bool),
	}
}

// element prints a node or token slot.
func (f *formatter) element(e syntax.Element) format.Element {
	switch e := e.(type) {
	case *syntax.Node:
		return f.node(e)
	case *syntax.Token:
		return f.token(e)
	}
	return format.Empty{}
}

// field prints the named slot of n.
func (f *formatter) field(n *syntax.Node, name string) format.Element {
	return f.element(n.Field(name))
}

// node prints n. Bogus nodes, and list elements containing one, are kept
// verbatim.
func (f *formatter) node(n *syntax.Node) format.Element {
	if n == nil {
		return format.Empty{}
	}
	if n.Kind().IsBogus() {
		return f.verbatim(n, format.VerbatimBogus)
	}
	if parent := n.Parent(); parent != nil && parent.Kind().IsList() && f.hasBogus(n) {
		return f.verbatim(n, format.VerbatimBogus)
	}

	switch n.Kind() {
	case syntax.NodeModule, syntax.NodeScript:
		return f.program(n)
	case syntax.NodeDirective:
		return f.directive(n)

	// Statements.
	case syntax.NodeBlockStatement:
		return f.block(n.FieldToken("l_curly"), f.statementList(n.FieldNode("statements")), n.FieldToken("r_curly"))
	case syntax.NodeEmptyStatement:
		return f.field(n, "semicolon")
	case syntax.NodeExpressionStatement:
		return format.Concat(f.field(n, "expression"), f.semicolon(n.FieldToken("semicolon")))
	case syntax.NodeVariableStatement:
		return format.Concat(f.field(n, "declaration"), f.semicolon(n.FieldToken("semicolon")))
	case syntax.NodeVariableDeclaration:
		return f.variableDeclaration(n)
	case syntax.NodeVariableDeclarator:
		return format.Concat(f.field(n, "id"), f.field(n, "excl"), f.field(n, "type_annotation"), f.field(n, "initializer"))
	case syntax.NodeInitializerClause:
		return format.Concat(format.Space(), f.field(n, "eq"), f.assignedValue(n.FieldNode("expression")))
	case syntax.NodeIfStatement:
		return f.ifStatement(n)
	case syntax.NodeForStatement:
		return f.forStatement(n)
	case syntax.NodeForInStatement, syntax.NodeForOfStatement:
		return f.forInOfStatement(n)
	case syntax.NodeForVariableDeclaration:
		return format.Concat(f.field(n, "kind"), format.Space(), f.field(n, "declarator"))
	case syntax.NodeWhileStatement:
		return format.Concat(f.field(n, "while"), format.Space(), f.parenthesized(n, "test"), f.clauseBody(n.FieldNode("body")))
	case syntax.NodeDoWhileStatement:
		return f.doWhileStatement(n)
	case syntax.NodeReturnStatement, syntax.NodeThrowStatement:
		return f.keywordStatement(n, "argument")
	case syntax.NodeBreakStatement, syntax.NodeContinueStatement:
		return f.keywordStatement(n, "label")
	case syntax.NodeTryStatement, syntax.NodeTryFinallyStatement:
		return f.tryStatement(n)
	case syntax.NodeCatchClause:
		return format.Concat(f.field(n, "catch"), spaced(f.field(n, "declaration")), format.Space(), f.field(n, "body"))
	case syntax.NodeCatchDeclaration:
		return format.Concat(f.field(n, "l_paren"), f.field(n, "binding"), f.field(n, "type_annotation"), f.field(n, "r_paren"))
	case syntax.NodeFinallyClause:
		return format.Concat(f.field(n, "finally"), format.Space(), f.field(n, "body"))
	case syntax.NodeSwitchStatement:
		return f.switchStatement(n)
	case syntax.NodeCaseClause, syntax.NodeDefaultClause:
		return f.switchClause(n)
	case syntax.NodeLabeledStatement:
		return f.labeledStatement(n)
	case syntax.NodeDebuggerStatement:
		return format.Concat(f.field(n, "debugger"), f.semicolon(n.FieldToken("semicolon")))
	case syntax.NodeWithStatement:
		return format.Concat(f.field(n, "with"), format.Space(), f.parenthesized(n, "object"), f.clauseBody(n.FieldNode("body")))

	// Functions and classes.
	case syntax.NodeFunctionDeclaration, syntax.NodeFunctionExpression, syntax.NodeTsDeclareFunctionDeclaration:
		return f.function(n)
	case syntax.NodeFunctionBody:
		return f.functionBody(n)
	case syntax.NodeParameters:
		return f.parameters(n)
	case syntax.NodeFormalParameter:
		return format.Concat(f.inlineDecorators(n.FieldNode("decorators")), f.field(n, "binding"), f.field(n, "question"),
			f.field(n, "type_annotation"), f.field(n, "initializer"))
	case syntax.NodeRestParameter:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "binding"), f.field(n, "type_annotation"))
	case syntax.NodeTsPropertyParameter:
		return format.Concat(f.modifiers(n.FieldNode("modifiers")), f.field(n, "formal_parameter"))
	case syntax.NodeTsThisParameter:
		return format.Concat(f.field(n, "this"), f.field(n, "type_annotation"))
	case syntax.NodeArrowFunctionExpression:
		return f.arrowFunction(n)
	case syntax.NodeClassDeclaration, syntax.NodeClassExpression:
		return f.class(n)
	case syntax.NodeExtendsClause:
		return format.Concat(f.field(n, "extends"), format.Space(), f.field(n, "super_class"), f.field(n, "type_arguments"))
	case syntax.NodeMethodClassMember, syntax.NodeTsMethodSignatureClassMember:
		return f.method(n)
	case syntax.NodeGetterClassMember, syntax.NodeSetterClassMember,
		syntax.NodeGetterObjectMember, syntax.NodeSetterObjectMember:
		return f.accessor(n)
	case syntax.NodePropertyClassMember:
		return f.classProperty(n)
	case syntax.NodeConstructorClassMember:
		return format.Concat(f.modifiers(n.FieldNode("modifiers")), f.field(n, "name"), f.field(n, "parameters"),
			format.Space(), f.field(n, "body"))
	case syntax.NodeStaticInitializationBlockClassMember:
		return format.Concat(f.field(n, "static"), format.Space(),
			f.block(n.FieldToken("l_curly"), f.statementList(n.FieldNode("statements")), n.FieldToken("r_curly")))
	case syntax.NodeEmptyClassMember:
		return f.field(n, "semicolon")
	case syntax.NodeDecorator:
		return format.Concat(f.field(n, "at"), f.field(n, "expression"))

	// Modules.
	case syntax.NodeImport:
		return f.importDeclaration(n)
	case syntax.NodeNamespaceImportSpecifier:
		return format.Concat(f.field(n, "star"), format.Space(), f.field(n, "as"), format.Space(), f.field(n, "local"))
	case syntax.NodeNamedImportSpecifiers:
		return f.namedSpecifiers(n)
	case syntax.NodeNamedImportSpecifier:
		return f.namedImportSpecifier(n)
	case syntax.NodeImportAttributes:
		return format.Concat(f.field(n, "with"), format.Space(), f.delimited(n.FieldToken("l_curly"),
			f.list(n.FieldNode("attributes"), listLayout{line: format.SoftLineBreakOrSpace, trailing: f.opts.trailingComma(true)}),
			n.FieldToken("r_curly"), bracketStyle{spaced: f.opts.BracketSpacing}))
	case syntax.NodeImportAttribute:
		return format.Concat(f.field(n, "key"), f.field(n, "colon"), format.Space(), f.field(n, "value"))
	case syntax.NodeExport:
		return format.Concat(f.decorators(n.FieldNode("decorators")), f.field(n, "export"), format.Space(), f.field(n, "clause"))
	case syntax.NodeExportDefaultDeclarationClause:
		return format.Concat(f.field(n, "default"), format.Space(), f.field(n, "declaration"))
	case syntax.NodeExportDefaultExpressionClause:
		return format.Concat(f.field(n, "default"), format.Space(), f.field(n, "expression"), f.semicolon(n.FieldToken("semicolon")))
	case syntax.NodeExportNamedClause, syntax.NodeExportNamedFromClause:
		return f.exportNamedClause(n)
	case syntax.NodeExportNamedSpecifier:
		return format.Concat(withSpace(f.field(n, "type")), f.field(n, "local"), spaced(f.field(n, "as")), spaced(f.field(n, "exported")))
	case syntax.NodeExportFromClause:
		return format.Concat(withSpace(f.field(n, "type")), f.field(n, "star"), spaced(f.field(n, "export_as")),
			format.Space(), f.field(n, "from"), format.Space(), f.field(n, "source"), spaced(f.field(n, "attributes")),
			f.semicolon(n.FieldToken("semicolon")))
	case syntax.NodeExportAsClause:
		return format.Concat(f.field(n, "as"), format.Space(), f.field(n, "exported"))

	// Expressions.
	case syntax.NodeIdentifierExpression, syntax.NodeIdentifierBinding:
		return f.field(n, "name")
	case syntax.NodeNumberLiteralExpression, syntax.NodeBigIntLiteralExpression, syntax.NodeStringLiteralExpression,
		syntax.NodeBooleanLiteralExpression, syntax.NodeNullLiteralExpression, syntax.NodeRegexLiteralExpression,
		syntax.NodeLiteralMemberName:
		return f.field(n, "value")
	case syntax.NodeThisExpression:
		return f.field(n, "this")
	case syntax.NodeSuperExpression:
		return f.field(n, "super")
	case syntax.NodeTemplateExpression:
		return format.Concat(f.field(n, "tag"), f.field(n, "type_arguments"), f.field(n, "l_tick"),
			f.plainList(n.FieldNode("elements")), f.field(n, "r_tick"))
	case syntax.NodeTemplateChunkElement:
		return f.field(n, "chunk")
	case syntax.NodeTemplateElement:
		return format.Concat(f.field(n, "dollar_curly"), f.field(n, "expression"), format.LineSuffixBoundary(), f.field(n, "r_curly"))
	case syntax.NodeArrayExpression:
		return f.array(n, "elements")
	case syntax.NodeArrayHole:
		return format.Empty{}
	case syntax.NodeSpread:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "argument"))
	case syntax.NodeObjectExpression:
		return f.object(n, "members", true)
	case syntax.NodePropertyObjectMember:
		return format.Concat(f.field(n, "name"), f.field(n, "colon"), f.assignedValue(n.FieldNode("value")))
	case syntax.NodeShorthandPropertyObjectMember:
		return format.Concat(f.field(n, "name"), f.field(n, "initializer"))
	case syntax.NodeMethodObjectMember:
		return f.method(n)
	case syntax.NodeComputedMemberName:
		return format.Concat(f.field(n, "l_brack"), f.field(n, "expression"), f.field(n, "r_brack"))
	case syntax.NodePrivateName:
		return format.Concat(f.field(n, "hash"), f.field(n, "value"))
	case syntax.NodeParenthesizedExpression:
		if expression := n.FieldNode("expression"); expression != nil && expression.Kind() == syntax.NodeJSXTagExpression {
			return f.delimited(n.FieldToken("l_paren"), f.node(expression), n.FieldToken("r_paren"), bracketStyle{})
		}
		return format.Concat(f.field(n, "l_paren"), f.field(n, "expression"), f.field(n, "r_paren"))
	case syntax.NodeSequenceExpression:
		return format.Concat(f.field(n, "left"), f.field(n, "comma"), format.Space(), f.field(n, "right"))
	case syntax.NodeAssignmentExpression:
		return format.Concat(f.field(n, "left"), format.Space(), f.field(n, "operator"), f.assignedValue(n.FieldNode("right")))
	case syntax.NodeConditionalExpression:
		return f.conditional(n, "test", "consequent", "alternate")
	case syntax.NodeBinaryExpression, syntax.NodeLogicalExpression:
		return f.binary(n)
	case syntax.NodeUnaryExpression:
		return f.unary(n)
	case syntax.NodePreUpdateExpression:
		return format.Concat(f.field(n, "operator"), f.field(n, "operand"))
	case syntax.NodePostUpdateExpression:
		return format.Concat(f.field(n, "operand"), f.field(n, "operator"))
	case syntax.NodeAwaitExpression:
		return format.Concat(f.field(n, "await"), format.Space(), f.field(n, "argument"))
	case syntax.NodeYieldExpression:
		return format.Concat(f.field(n, "yield"), f.field(n, "star"), spaced(f.field(n, "argument")))
	case syntax.NodeCallExpression:
		return f.call(n)
	case syntax.NodeCallArguments:
		return f.arguments(n)
	case syntax.NodeNewExpression:
		return f.newExpression(n)
	case syntax.NodeStaticMemberExpression, syntax.NodeComputedMemberExpression:
		return format.Concat(f.memberObject(n), f.memberSuffix(n))
	case syntax.NodeImportCallExpression:
		return format.Concat(f.field(n, "import"), f.field(n, "arguments"))
	case syntax.NodeImportMetaExpression:
		return format.Concat(f.field(n, "import"), f.field(n, "dot"), f.field(n, "meta"))
	case syntax.NodeNewTargetExpression:
		return format.Concat(f.field(n, "new"), f.field(n, "dot"), f.field(n, "target"))

	// Bindings.
	case syntax.NodeArrayBindingPattern:
		return f.array(n, "elements")
	case syntax.NodeArrayBindingPatternElement:
		return format.Concat(f.field(n, "pattern"), f.field(n, "initializer"))
	case syntax.NodeArrayBindingPatternRestElement:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "pattern"))
	case syntax.NodeObjectBindingPattern:
		return f.object(n, "properties", false)
	case syntax.NodeObjectBindingPatternProperty:
		return format.Concat(f.field(n, "member"), f.field(n, "colon"), format.Space(), f.field(n, "pattern"), f.field(n, "initializer"))
	case syntax.NodeObjectBindingPatternShorthandProperty:
		return format.Concat(f.field(n, "identifier"), f.field(n, "initializer"))
	case syntax.NodeObjectBindingPatternRest:
		return format.Concat(f.field(n, "dotdotdot"), f.field(n, "binding"))
	}

	if doc, ok := f.typeScript(n); ok {
		return doc
	}
	if doc, ok := f.jsx(n); ok {
		return doc
	}
	return f.generic(n)
}

// generic prints the children of n separated by spaces, or a list one
// element per line.
func (f *formatter) generic(n *syntax.Node) format.Element {
	if n.Kind().IsSeparatedList() {
		return format.Group(f.list(n, listLayout{line: format.SoftLineBreakOrSpace}))
	}
	if n.Kind().IsList() {
		return f.lines(n.ChildNodes(), f.node)
	}
	children := n.Children()
	parts := make([]format.Element, 0, 2*len(children))
	for _, child := range children {
		doc := f.element(child)
		if format.IsEmpty(doc) {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, format.Space())
		}
		parts = append(parts, doc)
	}
	return format.Concat(parts...)
}

// verbatim prints n as written, keeping its outer comments formatted.
func (f *formatter) verbatim(n *syntax.Node, kind format.VerbatimKind) format.Element {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return format.Empty{}
	}
	return format.Concat(f.leading(first), format.Verbatim(kind, f.src, n.Range()), f.trailing(last))
}

func (f *formatter) hasBogus(n *syntax.Node) bool {
	return f.greenHasBogus(n.Green())
}

func (f *formatter) greenHasBogus(g *syntax.GreenNode) bool {
	if found, ok := f.bogus[g]; ok {
		return found
	}
	found := g.Kind().IsBogus()
	for _, slot := range g.Slots() {
		if found {
			break
		}
		if child, ok := slot.(*syntax.GreenNode); ok && child != nil {
			found = f.greenHasBogus(child)
		}
	}
	f.bogus[g] = found
	return found
}

// spaced prefixes e with a space unless it is empty.
func spaced(e format.Element) format.Element {
	if format.IsEmpty(e) {
		return format.Empty{}
	}
	return format.Concat(format.Space(), e)
}

// withSpace follows e with a space unless it is empty.
func withSpace(e format.Element) format.Element {
	if format.IsEmpty(e) {
		return format.Empty{}
	}
	return format.Concat(e, format.Space())
}
