package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
	"github.com/yaklabco/quill/pkg/source"
)

// jsonSchemaVersion versions the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string                  `json:"version"`
	Files   []JSONFileResult        `json:"files"`
	Summary analysis.Totals         `json:"summary"`
	ByRule  []analysis.RuleAnalysis `json:"byRule,omitempty"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Unformatted bool             `json:"unformatted,omitempty"`
	Formatted   bool             `json:"formatted,omitempty"`
	Fixed       bool             `json:"fixed,omitempty"`
	Modified    bool             `json:"modified,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Lines and columns are
// 1-based; columns and offsets count bytes.
type JSONDiagnostic struct {
	RuleID      string      `json:"ruleId"`
	Rule        string      `json:"rule,omitempty"`
	Group       string      `json:"group,omitempty"`
	Code        string      `json:"code"`
	Severity    string      `json:"severity"`
	Message     string      `json:"message"`
	StartLine   int         `json:"startLine"`
	StartColumn int         `json:"startColumn"`
	EndLine     int         `json:"endLine"`
	EndColumn   int         `json:"endColumn"`
	StartOffset int         `json:"startOffset"`
	EndOffset   int         `json:"endOffset"`
	Labels      []JSONLabel `json:"labels,omitempty"`
	Notes       []string    `json:"notes,omitempty"`
	Fixable     bool        `json:"fixable"`
	Fix         *JSONFix    `json:"fix,omitempty"`
}

// JSONLabel is a secondary span of a diagnostic.
type JSONLabel struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Message     string `json:"message,omitempty"`
}

// JSONFix represents a proposed fix.
type JSONFix struct {
	Message     string `json:"message"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Issues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	analysisOpts := analysisOptions(r.opts)
	analysisOpts.ByFile = false
	analysisOpts.ByRule = r.opts.RuleSummary
	report := analysis.Analyze(result, analysisOpts)

	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: report.Totals,
		ByRule:  report.ByRule,
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for i := range result.Files {
		output.Files = append(output.Files, r.buildFile(&result.Files[i]))
	}
	return output
}

func (r *JSONReporter) buildFile(file *runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:        displayPath(file),
		Language:    string(file.Language),
		Diagnostics: make([]JSONDiagnostic, 0, len(file.Diagnostics)),
		Unformatted: file.Unformatted && !file.Written,
		Formatted:   file.Unformatted && file.Written,
		Fixed:       file.Fixed,
		Modified:    file.Written,
	}
	if file.Skipped {
		fileResult.Skipped = file.SkipReason
	}
	if file.Error != nil {
		fileResult.Error = file.Error.Error()
		return fileResult
	}
	if file.Diff.HasChanges() {
		fileResult.Diff = file.Diff.String()
	}

	loc := newLocator(file.Source)
	for i := range file.Diagnostics {
		fileResult.Diagnostics = append(fileResult.Diagnostics, r.buildDiagnostic(loc, &file.Diagnostics[i]))
	}
	return fileResult
}

func (r *JSONReporter) buildDiagnostic(loc *locator, diag *lint.Diagnostic) JSONDiagnostic {
	severity := diag.Severity
	if severity == "" {
		severity = diagnostics.SeverityWarning
	}

	rng := diag.Primary.Range
	start, end := loc.span(rng)
	if diag.Locus.Position.IsValid() {
		start = diag.Locus.Position
	}

	out := JSONDiagnostic{
		RuleID:      analysis.RuleID(diag, r.opts.RuleFormat),
		Rule:        diag.Rule,
		Group:       diag.Group,
		Code:        diag.Code,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     max(end.Line, start.Line),
		EndColumn:   end.Column,
		StartOffset: rng.Start,
		EndOffset:   rng.End,
		Notes:       diag.Notes,
		Fixable:     diag.HasFix(),
	}
	if end.Line < start.Line {
		out.EndColumn = start.Column
	}

	for _, label := range diag.Secondary {
		out.Labels = append(out.Labels, jsonLabel(label.Range, label.Message))
	}
	if diag.HasFix() {
		out.Fix = &JSONFix{
			Message:     diag.Fix.Message,
			StartOffset: diag.Fix.Edit.Start,
			EndOffset:   diag.Fix.Edit.End,
			NewText:     diag.Fix.Edit.NewText,
		}
	}
	return out
}

func jsonLabel(rng source.Range, message string) JSONLabel {
	return JSONLabel{StartOffset: rng.Start, EndOffset: rng.End, Message: message}
}
