package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/lint"
)

func TestNoVarRule(t *testing.T) {
	t.Parallel()

	tests := []ruleCase{
		{name: "module top level", src: "var a = 1;\n", wantDiags: 1, want: "let a = 1;\n"},
		{name: "several declarators", src: "var a = 1, b = 2;\n", wantDiags: 1, want: "let a = 1, b = 2;\n"},
		{name: "exported", src: "export var a = 1;\n", wantDiags: 1, want: "export let a = 1;\n"},
		{
			name:      "function body",
			src:       "function f() {\n  var a = 1;\n  return a;\n}\n",
			wantDiags: 1,
			want:      "function f() {\n  let a = 1;\n  return a;\n}\n",
		},
		{name: "script top level", path: "test.cjs", src: "var a = 1;\n", wantDiags: 1},
		{name: "used before declaration", src: "function f() {\n  a = 2;\n  var a = 1;\n}\n", wantDiags: 1},
		{name: "shadows a parameter", src: "function f(a) {\n  var a = 1;\n}\n", wantDiags: 1},
		{name: "nested block", src: "function f() {\n  if (x) {\n    var a = 1;\n  }\n}\n", wantDiags: 1},
		{name: "for head", src: "for (var i = 0; i < n; i++) {}\n", wantDiags: 1},
		{name: "for of head", src: "for (var item of items) {}\n", wantDiags: 1},
		{name: "destructuring", src: "var { a } = obj;\n", wantDiags: 1},
		{name: "redeclared", src: "var a = 1;\nvar a = 2;\n", wantDiags: 2},
		{name: "let", src: "let a = 1;\nconst b = 2;\n"},
		{name: "typescript", path: "test.ts", src: "var a: number = 1;\n", wantDiags: 1, want: "let a: number = 1;\n"},
	}

	runRuleCases(t, func() lint.Rule { return NewNoVarRule() }, tests)
}

func TestNoVarRule_Diagnostic(t *testing.T) {
	t.Parallel()

	src := "const b = 2;\nvar a = 1;\n"
	result := lintWith(t, NewNoVarRule(), "test.js", src, nil)
	require.Len(t, result.Diagnostics, 1)

	diag := result.Diagnostics[0]
	assert.Equal(t, "Use let or const instead of var.", diag.Message)
	assert.Equal(t, "lint/style/no-var", diag.Code)
	assert.Equal(t, 2, diag.Locus.Position.Line)
	require.NotNil(t, diag.Fix)
	assert.Equal(t, "Use let", diag.Fix.Message)
}
