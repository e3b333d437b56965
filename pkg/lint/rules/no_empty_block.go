package rules

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// NoEmptyBlockRule reports blocks without statements. A comment inside the
// braces marks the block as intentionally empty.
//
// Options:
//   - allow_empty_catch (bool, default false): allow `catch {}`.
//   - allow_empty_functions (bool, default true): allow empty function
//     bodies such as no-op callbacks.
type NoEmptyBlockRule struct {
	lint.BaseRule
}

// NewNoEmptyBlockRule creates a new no-empty-block rule.
func NewNoEmptyBlockRule() *NoEmptyBlockRule {
	return &NoEmptyBlockRule{
		BaseRule: lint.NewBaseRule(
			"no-empty-block",
			GroupSuspicious,
			"Disallow empty block statements",
			diagnostics.SeverityWarning,
			false,
			syntax.NodeBlockStatement,
			syntax.NodeFunctionBody,
			syntax.NodeStaticInitializationBlockClassMember,
			syntax.NodeSwitchStatement,
		),
	}
}

// Check reports node when it is empty.
func (r *NoEmptyBlockRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	var list string
	what := "block"
	switch node.Kind() {
	case syntax.NodeBlockStatement:
		list = "statements"
		if parent := node.Parent(); parent != nil && parent.Kind() == syntax.NodeCatchClause {
			if ctx.OptionBool("allow_empty_catch", false) {
				return
			}
			what = "catch block"
		}
	case syntax.NodeFunctionBody:
		if ctx.OptionBool("allow_empty_functions", true) || !isEmptyList(node.FieldNode("directives")) {
			return
		}
		list = "statements"
		what = "function body"
	case syntax.NodeStaticInitializationBlockClassMember:
		list = "statements"
		what = "static block"
	case syntax.NodeSwitchStatement:
		list = "cases"
		what = "switch statement"
	default:
		return
	}

	if !isEmptyList(node.FieldNode(list)) {
		return
	}
	lCurly, rCurly := node.FieldToken("l_curly"), node.FieldToken("r_curly")
	if lCurly == nil || rCurly == nil {
		// Recovered from a syntax error.
		return
	}
	if lCurly.HasTrailingComments() || rCurly.HasLeadingComments() {
		return
	}

	rng := lCurly.Range().Cover(rCurly.Range())
	ctx.Report(lint.NewDiagnostic(rng, "Unexpected empty "+what+".").
		WithLabel("empty "+what).
		WithSuggestion("remove the "+what+" or add a comment explaining why it is empty"))
}
