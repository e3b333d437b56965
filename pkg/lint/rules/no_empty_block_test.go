package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/lint"
)

func TestNoEmptyBlockRule(t *testing.T) {
	t.Parallel()

	tests := []ruleCase{
		{name: "empty if", src: "if (a) {}\n", wantDiags: 1},
		{name: "whitespace only", src: "if (a) {\n\n}\n", wantDiags: 1},
		{name: "inline comment", src: "if (a) { /* ok */ }\n"},
		{name: "line comment", src: "if (a) {\n  // nothing to do\n}\n"},
		{name: "non-empty", src: "if (a) { b(); }\n"},
		{name: "empty catch", src: "try { a(); } catch (e) {}\n", wantDiags: 1},
		{
			name:    "empty catch allowed",
			src:     "try { a(); } catch (e) {}\n",
			options: map[string]any{"allow_empty_catch": true},
		},
		{name: "empty function allowed by default", src: "function f() {}\n"},
		{
			name:      "empty function reported",
			src:       "function f() {}\nconst g = () => {};\n",
			options:   map[string]any{"allow_empty_functions": false},
			wantDiags: 2,
		},
		{
			name:    "function with directive",
			src:     "function f() {\n  \"use strict\";\n}\n",
			options: map[string]any{"allow_empty_functions": false},
		},
		{name: "empty switch", src: "switch (a) {}\n", wantDiags: 1},
		{name: "static block", src: "class A {\n  static {}\n}\n", wantDiags: 1},
		{name: "nested", src: "{\n  {}\n}\n", wantDiags: 1},
	}

	runRuleCases(t, func() lint.Rule { return NewNoEmptyBlockRule() }, tests)
}

func TestNoEmptyBlockRule_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "block", src: "while (a) {}\n", want: "Unexpected empty block."},
		{name: "catch", src: "try { a(); } catch {}\n", want: "Unexpected empty catch block."},
		{name: "switch", src: "switch (a) {}\n", want: "Unexpected empty switch statement."},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := lintWith(t, NewNoEmptyBlockRule(), "test.js", testCase.src, nil)
			require.Len(t, result.Diagnostics, 1)
			assert.Equal(t, testCase.want, result.Diagnostics[0].Message)
			assert.False(t, result.Diagnostics[0].HasFix())
		})
	}
}
