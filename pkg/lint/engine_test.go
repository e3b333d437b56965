package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

func TestEngine_LintFile(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newNodeRule("debugger", diagnostics.SeverityError, syntax.NodeDebuggerStatement)))
	doc := parseDoc(t, "src/app.js", "a();\ndebugger;\nfunction f() {\n  debugger;\n}\n")

	result, err := engine.LintFile(context.Background(), doc, config.NewConfig(), nil)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 2)

	first := result.Diagnostics[0]
	assert.Equal(t, "debugger", first.Rule)
	assert.Equal(t, "test", first.Group)
	assert.Equal(t, "lint/test/debugger", first.Code)
	assert.Equal(t, diagnostics.SeverityError, first.Severity)
	assert.Equal(t, "debugger found", first.Message)
	assert.Equal(t, "src/app.js", first.Locus.Path)
	assert.Equal(t, 2, first.Locus.Position.Line)
	assert.Equal(t, 1, first.Locus.Position.Column)

	assert.Equal(t, 4, result.Diagnostics[1].Locus.Position.Line)
	assert.Equal(t, 3, result.Diagnostics[1].Locus.Position.Column)
	assert.Equal(t, diagnostics.Count{Errors: 2}, result.Count())
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasFixes())
}

func TestEngine_LintFileRuleConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rules        map[string]config.RuleConfig
		wantCount    int
		wantSeverity diagnostics.Severity
	}{
		{name: "defaults", wantCount: 1, wantSeverity: diagnostics.SeverityError},
		{
			name:      "disabled",
			rules:     map[string]config.RuleConfig{"debugger": {Enabled: config.Ptr(false)}},
			wantCount: 0,
		},
		{
			name:         "severity override",
			rules:        map[string]config.RuleConfig{"debugger": {Severity: config.Ptr("info")}},
			wantCount:    1,
			wantSeverity: diagnostics.SeverityInfo,
		},
		{
			name:         "qualified name",
			rules:        map[string]config.RuleConfig{"test/debugger": {Severity: config.Ptr("warning")}},
			wantCount:    1,
			wantSeverity: diagnostics.SeverityWarning,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(newRegistry(newNodeRule("debugger", diagnostics.SeverityError, syntax.NodeDebuggerStatement)))
			doc := parseDoc(t, "a.js", "debugger;\n")

			result, err := engine.LintFile(context.Background(), doc, config.NewConfig(), testCase.rules)
			require.NoError(t, err)
			require.Len(t, result.Diagnostics, testCase.wantCount)
			if testCase.wantCount > 0 {
				assert.Equal(t, testCase.wantSeverity, result.Diagnostics[0].Severity)
			}
		})
	}
}

func TestEngine_LintFileFixes(t *testing.T) {
	t.Parallel()

	src := "debugger;\nx;\n"
	engine := lint.NewEngine(newRegistry(newFixRule("debugger", syntax.NodeDebuggerStatement, "void 0;")))

	cfg := config.NewConfig()
	result, err := engine.LintFile(context.Background(), parseDoc(t, "a.js", src), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FixableCount())
	assert.Empty(t, result.Edits, "fixes are only collected in fix mode")

	cfg.Fix = true
	result, err = engine.LintFile(context.Background(), parseDoc(t, "a.js", src), cfg, nil)
	require.NoError(t, err)
	require.True(t, result.HasFixes())

	out, _, err := fix.Apply(src, result.Edits)
	require.NoError(t, err)
	assert.Equal(t, "void 0;\nx;\n", out)
}

func TestEngine_LintFileEditConflicts(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(
		newFixRule("first", syntax.NodeDebuggerStatement, "a();"),
		newFixRule("second", syntax.NodeDebuggerStatement, "b();"),
	))
	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := engine.LintFile(context.Background(), parseDoc(t, "a.js", "debugger;\n"), cfg, nil)
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 2)
	assert.Len(t, result.Edits, 1)
	assert.Len(t, result.SkippedEdits, 1)
	assert.True(t, result.EditConflicts)
}

func TestEngine_LintFileSyntaxErrors(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(newFixRule("debugger", syntax.NodeDebuggerStatement, "x;")))
	cfg := config.NewConfig()
	cfg.Fix = true

	doc := parseDoc(t, "a.js", "debugger;\nlet = ;\n")
	require.True(t, doc.HasErrors())

	result, err := engine.LintFile(context.Background(), doc, cfg, nil)
	require.NoError(t, err)

	var syntaxErrors int
	for _, diag := range result.Diagnostics {
		if diag.IsSyntaxError() {
			syntaxErrors++
			assert.Equal(t, diagnostics.SeverityError, diag.Severity)
		}
	}
	assert.Positive(t, syntaxErrors)
	assert.Contains(t, ruleNames(result.Diagnostics), "debugger")
	assert.Empty(t, result.Edits, "recovered trees are never fixed")
}

func TestEngine_LintFileRulePanic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(
		newPanicRule(),
		newNodeRule("debugger", diagnostics.SeverityError, syntax.NodeDebuggerStatement),
	))

	result, err := engine.LintFile(context.Background(), parseDoc(t, "a.js", "debugger;\ndebugger;\n"), config.NewConfig(), nil)
	require.NoError(t, err)

	require.Contains(t, result.RuleErrors, "panics")
	require.ErrorIs(t, result.RuleErrors["panics"], lint.ErrRulePanic)
	assert.ErrorContains(t, result.RuleErrors["panics"], "boom")
	assert.Equal(t, []string{"debugger", "debugger"}, ruleNames(result.Diagnostics))
}

func TestEngine_LintFileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := lint.NewEngine(newRegistry(newNodeRule("debugger", diagnostics.SeverityError, syntax.NodeDebuggerStatement)))
	_, err := engine.LintFile(ctx, parseDoc(t, "a.js", "debugger;\n"), config.NewConfig(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LintFileOrdering(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(newRegistry(
		newNodeRule("b-statement", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement),
		newNodeRule("a-statement", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement),
		newNodeRule("error", diagnostics.SeverityError, syntax.NodeDebuggerStatement),
		newNodeRule("expression", diagnostics.SeverityError, syntax.NodeIdentifierExpression),
	))

	result, err := engine.LintFile(context.Background(), parseDoc(t, "a.js", "x;\ndebugger;\n"), config.NewConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"expression", "error", "a-statement", "b-statement"}, ruleNames(result.Diagnostics))
}

func TestEngine_Suppressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		src            string
		wantLines      []int
		wantSuppressed int
	}{
		{
			name:           "all rules",
			src:            "// quill-ignore-next-line\ndebugger;\ndebugger;\n",
			wantLines:      []int{3},
			wantSuppressed: 1,
		},
		{
			name:           "named rule",
			src:            "// quill-ignore-next-line debugger\ndebugger;\n",
			wantSuppressed: 1,
		},
		{
			name:           "qualified name with reason",
			src:            "// quill-ignore-next-line test/debugger -- kept for the demo\ndebugger;\n",
			wantSuppressed: 1,
		},
		{
			name:           "list of rules",
			src:            "// quill-ignore-next-line other, debugger\ndebugger;\n",
			wantSuppressed: 1,
		},
		{
			name:      "other rule",
			src:       "// quill-ignore-next-line other\ndebugger;\n",
			wantLines: []int{2},
		},
		{
			name:           "block comment",
			src:            "/* quill-ignore-next-line */\ndebugger;\n",
			wantSuppressed: 1,
		},
		{
			name:           "trailing comment",
			src:            "a(); // quill-ignore-next-line\ndebugger;\n",
			wantSuppressed: 1,
		},
		{
			name:      "same line",
			src:       "debugger; // quill-ignore-next-line\n",
			wantLines: []int{1},
		},
		{
			name:      "longer directive",
			src:       "// quill-ignore-next-lines\ndebugger;\n",
			wantLines: []int{2},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(newRegistry(newNodeRule("debugger", diagnostics.SeverityError, syntax.NodeDebuggerStatement)))
			result, err := engine.LintFile(context.Background(), parseDoc(t, "a.js", testCase.src), config.NewConfig(), nil)
			require.NoError(t, err)

			lines := make([]int, 0, len(result.Diagnostics))
			for _, diag := range result.Diagnostics {
				lines = append(lines, diag.Locus.Position.Line)
			}
			if testCase.wantLines == nil {
				testCase.wantLines = []int{}
			}
			assert.Equal(t, testCase.wantLines, lines)
			assert.Equal(t, testCase.wantSuppressed, result.Suppressed)
		})
	}
}

func TestEngine_SuppressionDoesNotHideSyntaxErrors(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())
	doc := parseDoc(t, "a.js", "// quill-ignore-next-line\nlet = ;\n")

	result, err := engine.LintFile(context.Background(), doc, config.NewConfig(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Diagnostics)
	assert.Zero(t, result.Suppressed)
}
