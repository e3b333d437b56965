package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/reporter"
	"github.com/yaklabco/quill/pkg/runner"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

const testSource = "if (a == b) {}\nlet é = 1; debugger;\n"

type stubRule struct {
	lint.BaseRule
}

func (r *stubRule) Check(*lint.RuleContext, *syntax.Node) {}

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	registry.Register(&stubRule{lint.NewBaseRule("no-double-equals", "suspicious",
		"Require === and !==", diagnostics.SeverityError, true)})
	registry.Register(&stubRule{lint.NewBaseRule("no-debugger", "suspicious",
		"Disallow debugger statements", diagnostics.SeverityWarning, true)})
	return registry
}

func lintDiag(group, name string, severity diagnostics.Severity, rng source.Range, message string) lint.Diagnostic {
	return lint.Diagnostic{
		Diagnostic: diagnostics.Diagnostic{
			Severity: severity,
			Code:     lint.Code(group, name),
			Message:  message,
			Primary:  diagnostics.Label{Range: rng},
			Locus:    diagnostics.Locus{Path: "src/a.js"},
		},
		Rule:  name,
		Group: group,
	}
}

// createTestResult builds a run with one file with issues, one
// unformatted file and one unreadable file.
func createTestResult() *runner.Result {
	equals := lintDiag("suspicious", "no-double-equals", diagnostics.SeverityError,
		source.NewRange(6, 8), "Use === instead of ==")
	equals.Fix = &lint.Fix{Message: "Replace == with ===", Edit: fix.Replace(source.NewRange(6, 8), "===")}
	equals.Secondary = []diagnostics.Label{{Range: source.NewRange(4, 10), Message: "comparison"}}

	debugger := lintDiag("suspicious", "no-debugger", diagnostics.SeverityWarning,
		source.NewRange(27, 35), "Unexpected debugger statement")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:        "/work/src/a.js",
				DisplayPath: "src/a.js",
				Language:    langdetect.JavaScript,
				Source:      []byte(testSource),
				Diagnostics: []lint.Diagnostic{equals, debugger},
			},
			{
				Path:        "/work/b.json",
				DisplayPath: "b.json",
				Language:    langdetect.JSON,
				Source:      []byte("{\"a\":1}\n"),
				Checked:     true,
				Unformatted: true,
				Diff:        fix.Unified("b.json", "{\"a\":1}\n", "{ \"a\": 1 }\n"),
			},
			{
				Path:        "/work/missing.ts",
				DisplayPath: "missing.ts",
				Error:       errors.New("open missing.ts: no such file or directory"),
			},
		},
		Stats: runner.Stats{
			FilesProcessed:     2,
			FilesErrored:       1,
			FilesChecked:       1,
			FilesUnformatted:   1,
			FilesWithIssues:    1,
			DiagnosticsTotal:   2,
			DiagnosticsFixable: 1,
			DiagnosticsBySeverity: map[diagnostics.Severity]int{
				diagnostics.SeverityError:   1,
				diagnostics.SeverityWarning: 1,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "diff is not an output format", input: "diff", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid formats: text, json, sarif")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: testCase.format,
				Color:  "never",
			})
			if testCase.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
	assert.NotNil(t, opts.Writer)
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_WithDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	for _, want := range []string{
		"src/a.js (2 issues)",
		"  src/a.js:1:7  error  Use === instead of ==  (no-double-equals)",
		"   1 | if (a == b) {}",
		"     |     --^^-- comparison",
		"    = fix: Replace == with ===",
		"  src/a.js:2:13  warning  Unexpected debugger statement  (no-debugger)",
		"b.json",
		"  not formatted",
		"diff --git a/b.json b/b.json",
		"-{\"a\":1}",
		"+{ \"a\": 1 }",
		"missing.ts: error: open missing.ts",
		"1 file changed, 1 insertion(+), 1 deletion(-)",
		"2 issues (1 error, 1 warning) in 1 file",
	} {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "\x1b[", "color must be disabled")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.RuleFormat
		want   string
	}{
		{name: "name", format: config.RuleFormatName, want: "(no-debugger)"},
		{name: "qualified", format: config.RuleFormatQualified, want: "(suspicious/no-debugger)"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep := reporter.NewTextReporter(reporter.Options{
				Writer:     &buf,
				Color:      "never",
				RuleFormat: testCase.format,
			})

			_, err := rep.Report(context.Background(), createTestResult())
			require.NoError(t, err)
			assert.Contains(t, buf.String(), testCase.want)
		})
	}
}

func TestTextReporter_RuleSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		RuleSummary: true,
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "Total: 2 issues")
}

func TestTextReporter_CleanFilesPrintNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := rep.Report(context.Background(), &runner.Result{
		Files: []runner.FileOutcome{{Path: "ok.js", DisplayPath: "ok.js", Checked: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output.Version)
	assert.Empty(t, output.Files)
	assert.NotNil(t, output.Files, "files must encode as an empty array")
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer:     &buf,
		RuleFormat: config.RuleFormatQualified,
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files, 3)

	assert.Equal(t, 3, output.Summary.Files)
	assert.Equal(t, 2, output.Summary.Issues)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Warnings)
	assert.Equal(t, 1, output.Summary.Fixable)
	assert.Equal(t, 1, output.Summary.FilesUnformatted)
	assert.Equal(t, 1, output.Summary.FilesErrored)

	file := output.Files[0]
	assert.Equal(t, "src/a.js", file.Path)
	assert.Equal(t, "javascript", file.Language)
	require.Len(t, file.Diagnostics, 2)

	equals := file.Diagnostics[0]
	assert.Equal(t, "suspicious/no-double-equals", equals.RuleID)
	assert.Equal(t, "no-double-equals", equals.Rule)
	assert.Equal(t, "lint/suspicious/no-double-equals", equals.Code)
	assert.Equal(t, "error", equals.Severity)
	assert.Equal(t, 1, equals.StartLine)
	assert.Equal(t, 7, equals.StartColumn)
	assert.Equal(t, 1, equals.EndLine)
	assert.Equal(t, 9, equals.EndColumn)
	assert.Equal(t, 6, equals.StartOffset)
	assert.Equal(t, 8, equals.EndOffset)
	assert.True(t, equals.Fixable)
	require.NotNil(t, equals.Fix)
	assert.Equal(t, "===", equals.Fix.NewText)
	require.Len(t, equals.Labels, 1)
	assert.Equal(t, "comparison", equals.Labels[0].Message)

	debugger := file.Diagnostics[1]
	assert.Equal(t, 2, debugger.StartLine)
	assert.Equal(t, 13, debugger.StartColumn, "columns count bytes")
	assert.False(t, debugger.Fixable)
	assert.Nil(t, debugger.Fix)

	assert.True(t, output.Files[1].Unformatted)
	assert.Contains(t, output.Files[1].Diff, "+{ \"a\": 1 }")
	assert.Contains(t, output.Files[2].Error, "no such file")
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		compact   bool
		wantLines int
	}{
		{name: "compact", compact: true, wantLines: 1},
		{name: "indented", compact: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: testCase.compact})
			_, err := rep.Report(context.Background(), createTestResult())
			require.NoError(t, err)

			lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
			if testCase.wantLines > 0 {
				assert.Equal(t, testCase.wantLines, lines)
			} else {
				assert.Greater(t, lines, 1)
			}
		})
	}
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{
		Writer:      &buf,
		Registry:    testRegistry(),
		ToolVersion: "1.2.3",
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count, "format results are not issues")

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)

	run := output.Runs[0]
	assert.Equal(t, "quill", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Equal(t, "unicodeCodePoints", run.ColumnKind)
	require.Len(t, run.Tool.Driver.Rules, 2)

	require.Len(t, run.Results, 3)

	equals := run.Results[0]
	assert.Equal(t, "no-double-equals", equals.RuleID)
	assert.Equal(t, "error", equals.Level)
	require.NotNil(t, equals.RuleIndex)
	assert.Equal(t, "no-double-equals", run.Tool.Driver.Rules[*equals.RuleIndex].ID)
	assert.Equal(t, "src/a.js", equals.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	require.Len(t, equals.RelatedLocations, 1)
	require.Len(t, equals.Fixes, 1)

	deleted := equals.Fixes[0].ArtifactChanges[0].Replacements[0].DeletedRegion
	require.NotNil(t, deleted.ByteOffset)
	require.NotNil(t, deleted.ByteLength)
	assert.Equal(t, 6, *deleted.ByteOffset)
	assert.Equal(t, 2, *deleted.ByteLength)

	debugger := run.Results[1]
	assert.Equal(t, "warning", debugger.Level)
	region := debugger.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Equal(t, 2, region.StartLine)
	assert.Equal(t, 12, region.StartColumn, "columns count code points")
	assert.Equal(t, 20, region.EndColumn)

	format := run.Results[2]
	assert.Equal(t, "format", format.RuleID)
	assert.Equal(t, "note", format.Level)
	assert.Equal(t, "b.json", format.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Nil(t, format.Locations[0].PhysicalLocation.Region)
}

func TestSARIFReporter_SyntaxError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{Writer: &buf, Registry: testRegistry()})

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path:        "broken.js",
		DisplayPath: "broken.js",
		Source:      []byte("let = ;\n"),
		Diagnostics: []lint.Diagnostic{{Diagnostic: diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Code:     "parse",
			Message:  "expected an identifier",
			Primary:  diagnostics.Label{Range: source.NewRange(4, 5)},
		}}},
	}}}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Runs[0].Results, 1)
	assert.Equal(t, "parse", output.Runs[0].Results[0].RuleID)
	assert.Nil(t, output.Runs[0].Results[0].RuleIndex)
}
