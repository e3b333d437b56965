package rules

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// NoCompareNegZeroRule reports comparisons against -0, which also match 0.
type NoCompareNegZeroRule struct {
	lint.BaseRule
}

// NewNoCompareNegZeroRule creates a new no-compare-neg-zero rule.
func NewNoCompareNegZeroRule() *NoCompareNegZeroRule {
	return &NoCompareNegZeroRule{
		BaseRule: lint.NewBaseRule(
			"no-compare-neg-zero",
			GroupSuspicious,
			"Disallow comparing against -0",
			diagnostics.SeverityError,
			true,
			syntax.NodeBinaryExpression,
		),
	}
}

func isComparison(kind syntax.Kind) bool {
	switch kind {
	case syntax.TokEq2, syntax.TokEq3, syntax.TokNeq, syntax.TokNeq2,
		syntax.TokLAngle, syntax.TokLtEq, syntax.TokRAngle, syntax.TokGtEq:
		return true
	}
	return false
}

// Check reports each -0 operand of a comparison. Comparisons cannot tell
// -0 from 0, so replacing the operand keeps the result.
func (r *NoCompareNegZeroRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	operator := node.FieldToken("operator")
	if operator == nil || !isComparison(operator.Kind()) {
		return
	}
	for _, operand := range []*syntax.Node{node.FieldNode("left"), node.FieldNode("right")} {
		if !isNegativeZero(operand) {
			continue
		}
		mutation := syntax.NewBatchMutation(ctx.Root)
		mutation.ReplaceElement(operand, operand.FieldNode("argument").Green())
		ctx.Report(lint.NewDiagnosticAt(operand,
			"Do not use the "+operator.Text()+" operator to compare against -0.").
			WithDetail(operator.Range(), "comparison").
			WithSuggestion("use Object.is(x, -0) to test for negative zero").
			WithFix("Replace -0 with 0", mutation))
	}
}
