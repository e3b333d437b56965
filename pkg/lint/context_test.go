package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

func TestRuleContext_Options(t *testing.T) {
	t.Parallel()

	rule := newNodeRule("opts", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement)
	ruleCfg := &config.RuleConfig{Options: map[string]any{
		"int":         7,
		"int64":       int64(8),
		"float":       9.0,
		"string":      "value",
		"bool":        true,
		"strings":     []string{"a", "b"},
		"any_strings": []any{"c", 1, "d"},
		"wrong_type":  "not a number",
		"empty_slice": []any{},
	}}
	ctx := lint.NewRuleContext(context.Background(), nil, rule, ruleCfg, "")

	assert.Equal(t, 7, ctx.OptionInt("int", 0))
	assert.Equal(t, 8, ctx.OptionInt("int64", 0))
	assert.Equal(t, 9, ctx.OptionInt("float", 0))
	assert.Equal(t, 5, ctx.OptionInt("wrong_type", 5))
	assert.Equal(t, 5, ctx.OptionInt("missing", 5))
	assert.Equal(t, "value", ctx.OptionString("string", ""))
	assert.Equal(t, "dflt", ctx.OptionString("int", "dflt"))
	assert.True(t, ctx.OptionBool("bool", false))
	assert.True(t, ctx.OptionBool("missing", true))
	assert.Equal(t, []string{"a", "b"}, ctx.OptionStringSlice("strings", nil))
	assert.Equal(t, []string{"c", "d"}, ctx.OptionStringSlice("any_strings", nil))
	assert.Equal(t, []string{"x"}, ctx.OptionStringSlice("empty_slice", []string{"x"}))
	assert.Equal(t, "fallback", ctx.Option("missing", "fallback"))
}

func TestRuleContext_NoConfig(t *testing.T) {
	t.Parallel()

	rule := newNodeRule("opts", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement)
	ctx := lint.NewRuleContext(context.Background(), nil, rule, nil, "")

	assert.Equal(t, 3, ctx.OptionInt("n", 3))
	assert.False(t, ctx.Cancelled())
	assert.Nil(t, ctx.Root)
}

func TestRuleContext_Report(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "lib/a.ts", "const a = 1;\nconst b = 2;\n")
	rule := newNodeRule("reporter", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement)
	ctx := lint.NewRuleContext(context.Background(), doc, rule, nil, diagnostics.SeverityInfo)

	ctx.Report(lint.NewDiagnostic(source.Range{Start: 19, End: 20}, "found b"))

	diags := ctx.Diagnostics()
	if assert.Len(t, diags, 1) {
		assert.Equal(t, "reporter", diags[0].Rule)
		assert.Equal(t, "lint/test/reporter", diags[0].Code)
		assert.Equal(t, diagnostics.SeverityInfo, diags[0].Severity)
		assert.Equal(t, "lib/a.ts", diags[0].Locus.Path)
		assert.Equal(t, source.Position{Line: 2, Column: 7}, diags[0].Locus.Position)
	}
	assert.Same(t, doc.Root, ctx.Root)
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	rule := newNodeRule("cancel", diagnostics.SeverityWarning, syntax.NodeDebuggerStatement)
	ctx := lint.NewRuleContext(parent, nil, rule, nil, "")

	assert.False(t, ctx.Cancelled())
	cancel()
	assert.True(t, ctx.Cancelled())
}
