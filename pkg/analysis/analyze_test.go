package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
)

func ruleDiag(group, name string, severity diagnostics.Severity, fixable bool) lint.Diagnostic {
	diag := lint.Diagnostic{
		Diagnostic: diagnostics.Diagnostic{
			Severity: severity,
			Code:     lint.Code(group, name),
			Message:  name,
		},
		Rule:  name,
		Group: group,
	}
	if fixable {
		diag.Fix = &lint.Fix{Message: "fix", Edit: fix.Insert(0, "")}
	}
	return diag
}

func syntaxDiag() lint.Diagnostic {
	return lint.Diagnostic{Diagnostic: diagnostics.Diagnostic{
		Severity: diagnostics.SeverityError,
		Code:     "parse",
		Message:  "expected an expression",
	}}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				DisplayPath: "a.js",
				Diagnostics: []lint.Diagnostic{
					ruleDiag("suspicious", "no-debugger", diagnostics.SeverityError, true),
					ruleDiag("suspicious", "no-debugger", diagnostics.SeverityError, true),
					ruleDiag("style", "no-var", diagnostics.SeverityWarning, false),
				},
			},
			{
				DisplayPath: "b.ts",
				Diagnostics: []lint.Diagnostic{
					ruleDiag("style", "no-var", diagnostics.SeverityWarning, true),
					syntaxDiag(),
				},
			},
			{DisplayPath: "c.json", Unformatted: true},
			{DisplayPath: "d.json", Unformatted: true, Written: true},
			{DisplayPath: "e.js", Fixed: true, Written: true},
			{DisplayPath: "f.js", Error: errors.New("permission denied")},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	for _, result := range []*runner.Result{nil, {}} {
		report := Analyze(result, DefaultOptions())
		require.NotNil(t, report)
		assert.Equal(t, Totals{}, report.Totals)
		assert.Empty(t, report.ByFile)
		assert.Empty(t, report.ByRule)
	}
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:            6,
		FilesWithIssues:  2,
		FilesUnformatted: 1,
		FilesFormatted:   1,
		FilesFixed:       1,
		FilesErrored:     1,
		Issues:           5,
		Errors:           3,
		Warnings:         2,
		Fixable:          3,
		SyntaxErrors:     1,
	}, report.Totals)
	assert.False(t, report.Totals.Clean())
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())
	require.Len(t, report.ByRule, 3)

	// Count descending, ties broken by rule id.
	assert.Equal(t, RuleAnalysis{
		RuleID: "no-debugger", RuleName: "no-debugger",
		Issues: 2, Errors: 2, Fixable: true, Files: []string{"a.js"},
	}, report.ByRule[0])
	assert.Equal(t, RuleAnalysis{
		RuleID: "no-var", RuleName: "no-var",
		Issues: 2, Warnings: 2, Fixable: true, Files: []string{"a.js", "b.ts"},
	}, report.ByRule[1])
	assert.Equal(t, RuleAnalysis{
		RuleID: "parse", RuleName: "syntax",
		Issues: 1, Errors: 1, Files: []string{"b.ts"},
	}, report.ByRule[2])
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())
	require.Len(t, report.ByFile, 3)

	assert.Equal(t, FileAnalysis{
		Path: "a.js", Issues: 3, Errors: 2, Warnings: 1,
		Rules: []string{"no-debugger", "no-var"},
	}, report.ByFile[0])
	assert.Equal(t, FileAnalysis{
		Path: "b.ts", Issues: 2, Errors: 1, Warnings: 1,
		Rules: []string{"no-var", "parse"},
	}, report.ByFile[1])
	assert.Equal(t, FileAnalysis{Path: "c.json", Unformatted: true}, report.ByFile[2])
}

func TestAnalyze_QualifiedRuleFormat(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.RuleFormat = config.RuleFormatQualified
	opts.Sort = SortName
	report := Analyze(sampleResult(), opts)

	ids := make([]string, 0, len(report.ByRule))
	for _, rule := range report.ByRule {
		ids = append(ids, rule.RuleID)
	}
	assert.Equal(t, []string{"parse", "style/no-var", "suspicious/no-debugger"}, ids)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{DisplayPath: "b.js", Diagnostics: []lint.Diagnostic{
				ruleDiag("style", "no-var", diagnostics.SeverityWarning, false),
				ruleDiag("style", "no-var", diagnostics.SeverityWarning, false),
				ruleDiag("style", "no-var", diagnostics.SeverityWarning, false),
			}},
			{DisplayPath: "a.js", Diagnostics: []lint.Diagnostic{
				ruleDiag("suspicious", "no-debugger", diagnostics.SeverityError, false),
			}},
			{DisplayPath: "c.js", Diagnostics: []lint.Diagnostic{
				ruleDiag("suspicious", "no-empty-block", diagnostics.SeverityInfo, false),
				ruleDiag("suspicious", "no-empty-block", diagnostics.SeverityInfo, false),
			}},
		},
	}

	tests := []struct {
		name      string
		sortBy    SortKey
		desc      bool
		wantFiles []string
		wantRules []string
	}{
		{
			name:      "count descending",
			sortBy:    SortCount,
			desc:      true,
			wantFiles: []string{"b.js", "c.js", "a.js"},
			wantRules: []string{"no-var", "no-empty-block", "no-debugger"},
		},
		{
			name:      "count ascending",
			sortBy:    SortCount,
			wantFiles: []string{"a.js", "c.js", "b.js"},
			wantRules: []string{"no-debugger", "no-empty-block", "no-var"},
		},
		{
			name:      "name",
			sortBy:    SortName,
			desc:      true,
			wantFiles: []string{"a.js", "b.js", "c.js"},
			wantRules: []string{"no-debugger", "no-empty-block", "no-var"},
		},
		{
			name:      "severity",
			sortBy:    SortSeverity,
			wantFiles: []string{"a.js", "b.js", "c.js"},
			wantRules: []string{"no-debugger", "no-var", "no-empty-block"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			report := Analyze(result, Options{
				ByFile:     true,
				ByRule:     true,
				Sort:       testCase.sortBy,
				Descending: testCase.desc,
			})

			files := make([]string, 0, len(report.ByFile))
			for _, file := range report.ByFile {
				files = append(files, file.Path)
			}
			rules := make([]string, 0, len(report.ByRule))
			for _, rule := range report.ByRule {
				rules = append(rules, rule.RuleID)
			}
			assert.Equal(t, testCase.wantFiles, files)
			assert.Equal(t, testCase.wantRules, rules)
		})
	}
}

func TestAnalyze_ViewsAreOptional(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{Sort: SortCount})
	assert.Nil(t, report.ByFile)
	assert.Nil(t, report.ByRule)
	assert.Equal(t, 5, report.Totals.Issues)
}
