package lint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// nodeRule reports every node of one kind, optionally with a replacement.
type nodeRule struct {
	lint.BaseRule
	message     string
	replacement *string
}

func newNodeRule(name string, severity diagnostics.Severity, kind syntax.Kind) *nodeRule {
	return &nodeRule{
		BaseRule: lint.NewBaseRule(name, "test", "Test rule "+name, severity, false, kind),
		message:  name + " found",
	}
}

func newFixRule(name string, kind syntax.Kind, replacement string) *nodeRule {
	return &nodeRule{
		BaseRule:    lint.NewBaseRule(name, "test", "Test rule "+name, diagnostics.SeverityWarning, true, kind),
		message:     name + " found",
		replacement: &replacement,
	}
}

func (r *nodeRule) Check(ctx *lint.RuleContext, node *syntax.Node) {
	builder := lint.NewDiagnosticAt(node, r.message)
	if r.replacement != nil {
		builder.WithEdit("replace", fix.Replace(node.Range(), *r.replacement))
	}
	ctx.Report(builder)
}

type panicRule struct {
	lint.BaseRule
}

func newPanicRule() *panicRule {
	return &panicRule{
		BaseRule: lint.NewBaseRule("panics", "test", "Always panics", diagnostics.SeverityError, false,
			syntax.NodeDebuggerStatement),
	}
}

func (r *panicRule) Check(*lint.RuleContext, *syntax.Node) {
	panic("boom")
}

func newRegistry(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry
}

func parseDoc(t *testing.T, path, src string) *document.Document {
	t.Helper()

	doc, err := document.Parse(path, src, langdetect.Unknown)
	require.NoError(t, err)
	return doc
}

func ruleNames(diags []lint.Diagnostic) []string {
	names := make([]string, 0, len(diags))
	for _, diag := range diags {
		names = append(names, diag.Rule)
	}
	return names
}
