package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/lint"
)

func TestNoCompareNegZeroRule(t *testing.T) {
	t.Parallel()

	tests := []ruleCase{
		{name: "strict equality", src: "if (x === -0) a();\n", wantDiags: 1, want: "if (x === 0) a();\n"},
		{name: "left operand", src: "-0 < x;\n", wantDiags: 1, want: "0 < x;\n"},
		{name: "loose inequality", src: "x != -0;\n", wantDiags: 1, want: "x != 0;\n"},
		{name: "float zero", src: "x == -0.0;\n", wantDiags: 1, want: "x == 0.0;\n"},
		{name: "both operands", src: "-0 >= -0;\n", wantDiags: 2, want: "0 >= 0;\n"},
		{name: "positive zero", src: "x === 0;\n"},
		{name: "negative one", src: "x === -1;\n"},
		{name: "arithmetic", src: "x + -0;\n"},
		{name: "negated variable", src: "x === -y;\n"},
	}

	runRuleCases(t, func() lint.Rule { return NewNoCompareNegZeroRule() }, tests)
}

func TestNoCompareNegZeroRule_Message(t *testing.T) {
	t.Parallel()

	result := lintWith(t, NewNoCompareNegZeroRule(), "test.js", "x <= -0;\n", nil)
	require.Len(t, result.Diagnostics, 1)

	diag := result.Diagnostics[0]
	assert.Equal(t, "Do not use the <= operator to compare against -0.", diag.Message)
	assert.Equal(t, "lint/suspicious/no-compare-neg-zero", diag.Code)
	require.NotNil(t, diag.Fix)
	assert.Equal(t, "Replace -0 with 0", diag.Fix.Message)
}
