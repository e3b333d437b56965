package rules

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// NoDoubleEqualsRule reports == and !=, which coerce their operands.
//
// Options:
//   - ignore_null (bool, default true): allow `x == null` and `x != null`,
//     the idiomatic test for both null and undefined.
type NoDoubleEqualsRule struct {
	lint.BaseRule
}

// NewNoDoubleEqualsRule creates a new no-double-equals rule.
func NewNoDoubleEqualsRule() *NoDoubleEqualsRule {
	return &NoDoubleEqualsRule{
		BaseRule: lint.NewBaseRule(
			"no-double-equals",
			GroupSuspicious,
			"Require === and !== instead of == and !=",
			diagnostics.SeverityError,
			true,
			syntax.NodeBinaryExpression,
		),
	}
}

// Check reports loose equality operators.
func (r *NoDoubleEqualsRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	operator := node.FieldToken("operator")
	if operator == nil {
		return
	}

	var strict syntax.Kind
	switch operator.Kind() {
	case syntax.TokEq2:
		strict = syntax.TokEq3
	case syntax.TokNeq:
		strict = syntax.TokNeq2
	default:
		return
	}

	if ctx.OptionBool("ignore_null", true) &&
		(isNullLiteral(node.FieldNode("left")) || isNullLiteral(node.FieldNode("right"))) {
		return
	}

	mutation := syntax.NewBatchMutation(ctx.Root)
	mutation.ReplaceElement(operator, syntax.NewGreenToken(strict, strict.Text()))

	diag := lint.NewDiagnosticAt(operator, "Use "+strict.Text()+" instead of "+operator.Text()+".").
		WithLabel(operator.Text() + " converts its operands before comparing").
		WithFix("Use "+strict.Text(), mutation)
	if ctx.OptionBool("ignore_null", true) {
		diag.WithNote(operator.Text() + " is only allowed when comparing against null.")
	}
	ctx.Report(diag)
}
