package rules

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// NoDebuggerRule reports debugger statements.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates a new no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule(
			"no-debugger",
			GroupSuspicious,
			"Disallow debugger statements",
			diagnostics.SeverityError,
			true,
			syntax.NodeDebuggerStatement,
		),
	}
}

// Check reports the statement. The fix removes it, which is only offered
// inside statement lists: `if (x) debugger;` has no safe removal.
func (r *NoDebuggerRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	diag := lint.NewDiagnosticAt(node, "This is an unexpected use of the debugger statement.").
		WithLabel("debugger statement").
		WithNote("Debugger statements pause execution when developer tools are open.")
	if inStatementList(node) {
		diag.WithEdit("Remove the debugger statement", removeLineEdit(ctx.Doc.Content, node.Range()))
	}
	ctx.Report(diag)
}
