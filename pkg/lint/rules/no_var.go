package rules

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// NoVarRule reports var declarations.
//
// The fix rewrites var to let only where both declare the same binding:
// the statement sits directly in a function body or at the top level of a
// module, every binding is a plain identifier, no binding is mentioned
// before the declaration, and no other declaration of the same name
// exists in that scope.
type NoVarRule struct {
	lint.BaseRule
}

// NewNoVarRule creates a new no-var rule.
func NewNoVarRule() *NoVarRule {
	return &NoVarRule{
		BaseRule: lint.NewBaseRule(
			"no-var",
			GroupStyle,
			"Require let or const instead of var",
			diagnostics.SeverityWarning,
			true,
			syntax.NodeVariableDeclaration,
			syntax.NodeForVariableDeclaration,
		),
	}
}

// Check reports declarations using var.
func (r *NoVarRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	keyword := node.FieldToken("kind")
	if keyword == nil || keyword.Kind() != syntax.TokVarKw {
		return
	}

	diag := lint.NewDiagnosticAt(keyword, "Use let or const instead of var.").
		WithLabel("var is function-scoped and hoisted").
		WithNote("let and const are block-scoped, which prevents accidental reuse of a variable.")

	if scope, ok := varScope(node); ok && canUseLet(scope, node) {
		mutation := syntax.NewBatchMutation(ctx.Root)
		mutation.ReplaceElement(keyword, syntax.NewGreenToken(syntax.TokLetKw, "let"))
		diag.WithFix("Use let", mutation)
	}
	ctx.Report(diag)
}

// varScope returns the node whose scope a var statement belongs to when
// let would be scoped the same way: a function (including its parameters)
// or a module. Script top-level var creates global object properties and
// is never rewritten.
func varScope(declaration *syntax.Node) (*syntax.Node, bool) {
	if declaration.Kind() != syntax.NodeVariableDeclaration {
		// var in a for head is shared across iterations; let is not.
		return nil, false
	}
	statement := declaration.Parent()
	if statement == nil || statement.Kind() != syntax.NodeVariableStatement {
		return nil, false
	}
	item := statement
	if parent := statement.Parent(); parent != nil && parent.Kind() == syntax.NodeExport {
		item = parent
	}
	list := item.Parent()
	if list == nil {
		return nil, false
	}
	owner := list.Parent()
	if owner == nil {
		return nil, false
	}
	switch {
	case list.Kind() == syntax.NodeModuleItemList && owner.Kind() == syntax.NodeModule:
		return owner, true
	case list.Kind() == syntax.NodeStatementList && owner.Kind() == syntax.NodeFunctionBody:
		if function := owner.Parent(); function != nil {
			return function, true
		}
	}
	return nil, false
}

// canUseLet checks the bindings of declaration against the rest of scope.
func canUseLet(scope, declaration *syntax.Node) bool {
	declarators := declaration.FieldNode("declarators")
	if declarators == nil {
		return false
	}

	names := map[string]*syntax.Node{}
	for _, declarator := range declarators.ChildNodes() {
		id := declarator.FieldNode("id")
		if id == nil || id.Kind() != syntax.NodeIdentifierBinding {
			return false
		}
		name := id.FieldToken("name")
		if name == nil {
			return false
		}
		if _, dup := names[name.Text()]; dup {
			// var a = 1, a = 2 is legal; let is not.
			return false
		}
		names[name.Text()] = id
	}

	start := declaration.Range().Start
	for _, token := range scope.Tokens() {
		if token.Range().Start >= start {
			break
		}
		for name := range names {
			if isIdentifierToken(token, name) {
				// Used or declared before the declaration: let would
				// throw in the temporal dead zone or on redeclaration.
				return false
			}
		}
	}

	for _, binding := range scope.Descendants() {
		if binding.Kind() != syntax.NodeIdentifierBinding {
			continue
		}
		name := binding.FieldToken("name")
		if name == nil {
			continue
		}
		if own, ok := names[name.Text()]; ok && !own.Equal(binding) {
			return false
		}
	}
	return true
}
