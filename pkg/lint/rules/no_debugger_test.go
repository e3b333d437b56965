package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
)

func TestNoDebuggerRule(t *testing.T) {
	t.Parallel()

	tests := []ruleCase{
		{name: "no debugger", src: "a();\n"},
		{name: "without semicolon", src: "a();\ndebugger\nb();\n", wantDiags: 1, want: "a();\nb();\n"},
		{
			name:      "removes the line inside a function",
			src:       "function f() {\n  a();\n  debugger;\n  b();\n}\n",
			wantDiags: 1,
			want:      "function f() {\n  a();\n  b();\n}\n",
		},
		{name: "shares a line", src: "a(); debugger; b();\n", wantDiags: 1, want: "a();  b();\n"},
		{name: "keeps comments", src: "// keep\ndebugger;\nb();\n", wantDiags: 1, want: "// keep\nb();\n"},
		{name: "last line without newline", src: "a();\ndebugger;", wantDiags: 1, want: "a();"},
		{name: "statement body is not removed", src: "if (x) debugger;\n", wantDiags: 1},
	}

	runRuleCases(t, func() lint.Rule { return NewNoDebuggerRule() }, tests)
}

func TestNoDebuggerRule_RemovesWholeFile(t *testing.T) {
	t.Parallel()

	src := "debugger;\n"
	result := lintWith(t, NewNoDebuggerRule(), "test.js", src, nil)
	assert.Len(t, result.Diagnostics, 1)
	assert.Empty(t, applyFixes(t, src, result))
}

func TestNoDebuggerRule_Metadata(t *testing.T) {
	t.Parallel()

	rule := NewNoDebuggerRule()
	assert.Equal(t, "no-debugger", rule.Name())
	assert.Equal(t, GroupSuspicious, rule.Group())
	assert.Equal(t, diagnostics.SeverityError, rule.DefaultSeverity())
	assert.True(t, rule.CanFix())
}

func TestNoDebuggerRule_Diagnostic(t *testing.T) {
	t.Parallel()

	result := lintWith(t, NewNoDebuggerRule(), "src/app.js", "a();\n  debugger;\n", nil)
	if assert.Len(t, result.Diagnostics, 1) {
		diag := result.Diagnostics[0]
		assert.Equal(t, "lint/suspicious/no-debugger", diag.Code)
		assert.Equal(t, "src/app.js", diag.Locus.Path)
		assert.Equal(t, 2, diag.Locus.Position.Line)
		assert.Equal(t, 3, diag.Locus.Position.Column)
		assert.True(t, diag.HasFix())
	}
}
