package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
)

// lintWith runs a single rule over src with fixes enabled.
func lintWith(t *testing.T, rule lint.Rule, path, src string, options map[string]any) *lint.FileResult {
	t.Helper()

	registry := lint.NewRegistry()
	registry.Register(rule)

	doc, err := document.Parse(path, src, langdetect.Unknown)
	require.NoError(t, err)
	require.False(t, doc.HasErrors(), "test source has syntax errors: %v", doc.Diagnostics)

	cfg := config.NewConfig()
	cfg.Fix = true
	if options != nil {
		cfg.Rules[rule.Name()] = config.RuleConfig{Options: options}
	}

	result, err := lint.NewEngine(registry).LintFile(context.Background(), doc, cfg, nil)
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)
	return result
}

// applyFixes applies the edits of result to src.
func applyFixes(t *testing.T, src string, result *lint.FileResult) string {
	t.Helper()

	out, _, err := fix.Apply(src, result.Edits)
	require.NoError(t, err)
	return out
}

type ruleCase struct {
	name      string
	path      string
	src       string
	options   map[string]any
	wantDiags int
	// want is the fixed source; empty means "no fix is offered".
	want string
}

func runRuleCases(t *testing.T, newRule func() lint.Rule, tests []ruleCase) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := testCase.path
			if path == "" {
				path = "test.js"
			}
			result := lintWith(t, newRule(), path, testCase.src, testCase.options)
			require.Len(t, result.Diagnostics, testCase.wantDiags)

			if testCase.want == "" {
				require.Empty(t, result.Edits, "unexpected fix")
				return
			}
			require.Equal(t, testCase.want, applyFixes(t, testCase.src, result))
		})
	}
}
