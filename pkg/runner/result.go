package runner

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path, or empty for stdin.
	Path string

	// DisplayPath is the path reported to the user, relative to the
	// working directory where possible.
	DisplayPath string

	// Language is the detected language of the file.
	Language langdetect.Language

	// Lint is the lint pipeline result. Nil unless the run lints.
	Lint *lint.PipelineResult

	// Diagnostics are the lint findings and syntax errors of the final
	// content, ordered by position.
	Diagnostics []lint.Diagnostic

	// Source is the text the diagnostic ranges point into. It differs from
	// the input when lint fixes were applied.
	Source []byte

	// Checked is true when the formatter ran on the file.
	Checked bool

	// Unformatted is true when the formatter output differs from the
	// content it was given.
	Unformatted bool

	// FormatError explains why the formatter could not run, for example
	// document.ErrSyntax.
	FormatError error

	// Fixed is true when lint fixes changed the content.
	Fixed bool

	// Output is the content after the requested changes. It equals the
	// input when nothing changed.
	Output []byte

	// Changed is true when Output differs from the input.
	Changed bool

	// Diff shows the proposed changes when Options.Diff is set.
	Diff *fix.Diff

	// Written is true if the file was written to disk.
	Written bool

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Skipped is true if the file was left alone, for example because it
	// changed on disk during processing.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Count tallies the diagnostics by severity.
func (o *FileOutcome) Count() diagnostics.Count {
	var count diagnostics.Count
	for _, diag := range o.Diagnostics {
		switch diag.Severity {
		case diagnostics.SeverityError:
			count.Errors++
		case diagnostics.SeverityWarning:
			count.Warnings++
		case diagnostics.SeverityInfo:
			count.Infos++
		}
	}
	return count
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChecked is the number of files the formatter ran on.
	FilesChecked int

	// FilesUnformatted is the number of files whose formatting differs
	// from the formatter output.
	FilesUnformatted int

	// FilesFormatted is the number of unformatted files that were
	// rewritten with the formatter output.
	FilesFormatted int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsFixable is the number of diagnostics that have auto-fixes.
	DiagnosticsFixable int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[diagnostics.Severity]int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesModified is the number of files written to disk.
	FilesModified int

	// DiagnosticsFixed is the total number of fix edits applied across all files.
	DiagnosticsFixed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[diagnostics.SeverityError] > 0
}

// HasWarnings reports whether any diagnostic has warning severity.
func (r *Result) HasWarnings() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[diagnostics.SeverityWarning] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasUnformatted reports whether any file is not formatted and was not
// rewritten.
func (r *Result) HasUnformatted() bool {
	if r == nil {
		return false
	}
	for i := range r.Files {
		if r.Files[i].Unformatted && !r.Files[i].Written {
			return true
		}
	}
	return false
}

// HasFileErrors reports whether any file could not be processed.
func (r *Result) HasFileErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// AllDiagnostics returns the diagnostics of every file in file order.
func (r *Result) AllDiagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var all []lint.Diagnostic
	for i := range r.Files {
		all = append(all, r.Files[i].Diagnostics...)
	}
	return all
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[diagnostics.Severity]int),
	}
}

// NewResult collects outcomes that were processed outside Run, such as
// stdin, into a Result with statistics.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Stats: newStats()}
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Checked {
		r.Stats.FilesChecked++
	}
	if outcome.Unformatted {
		r.Stats.FilesUnformatted++
		if outcome.Written {
			r.Stats.FilesFormatted++
		}
	}
	if outcome.Lint != nil {
		r.Stats.DiagnosticsFixed += outcome.Lint.TotalEditsApplied
	}

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for i := range outcome.Diagnostics {
		diag := &outcome.Diagnostics[i]
		r.Stats.DiagnosticsTotal++
		if diag.HasFix() {
			r.Stats.DiagnosticsFixable++
		}
		severity := diag.Severity
		if severity == "" {
			severity = diagnostics.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
