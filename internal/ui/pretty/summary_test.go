package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/runner"
)

func bySeverity(errors, warnings, infos int) map[diagnostics.Severity]int {
	return map[diagnostics.Severity]int{
		diagnostics.SeverityError:   errors,
		diagnostics.SeverityWarning: warnings,
		diagnostics.SeverityInfo:    infos,
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      runner.Stats
		want       []string
		notWant    []string
		wantStatus string
	}{
		{
			name: "errors and warnings",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      15,
				DiagnosticsBySeverity: bySeverity(5, 10, 0),
			},
			want:       []string{"Summary", "Files checked:     10", "Files with issues: 3", "Total issues:      15", "Errors:          5", "Warnings:        10"},
			notWant:    []string{"Info:", "Files unformatted:"},
			wantStatus: "Check failed with errors",
		},
		{
			name: "clean",
			stats: runner.Stats{
				FilesProcessed:        5,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			notWant:    []string{"Files with issues:", "Errors:"},
			wantStatus: "Check passed",
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       2,
				FilesModified:         2,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: bySeverity(0, 5, 0),
			},
			want:       []string{"Files modified:    2"},
			wantStatus: "Check completed with warnings",
		},
		{
			name: "info only passes",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       1,
				DiagnosticsTotal:      3,
				DiagnosticsBySeverity: bySeverity(0, 0, 3),
			},
			want:       []string{"Info:            3"},
			wantStatus: "Check passed",
		},
		{
			name: "unformatted files fail",
			stats: runner.Stats{
				FilesProcessed:        4,
				FilesChecked:          4,
				FilesUnformatted:      2,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want:       []string{"Files unformatted: 2"},
			wantStatus: "Check failed: files need formatting",
		},
		{
			name: "formatted files pass",
			stats: runner.Stats{
				FilesProcessed:        4,
				FilesUnformatted:      2,
				FilesFormatted:        2,
				FilesModified:         2,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			notWant:    []string{"Files unformatted:"},
			wantStatus: "Check passed",
		},
		{
			name: "unreadable files fail",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesErrored:          1,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want:       []string{"Files errored:     1"},
			wantStatus: "Check failed with errors",
		},
	}

	styles := pretty.NewStyles(false)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := styles.FormatSummary(testCase.stats)
			for _, want := range testCase.want {
				assert.Contains(t, result, want)
			}
			for _, notWant := range testCase.notWant {
				assert.NotContains(t, result, notWant)
			}
			assert.Contains(t, result, testCase.wantStatus)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: bySeverity(0, 0, 0)},
			want:  []string{"No issues found (5 files checked)"},
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1, DiagnosticsBySeverity: bySeverity(0, 0, 0)},
			want:  []string{"(1 file checked)"},
		},
		{
			name: "issues with fixable",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      12,
				DiagnosticsFixable:    8,
				DiagnosticsBySeverity: bySeverity(4, 8, 0),
			},
			want: []string{"12 issues (4 errors, 8 warnings) in 3 files", "8 fixable"},
		},
		{
			name: "single issue",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsFixable:    1,
				DiagnosticsBySeverity: bySeverity(0, 1, 0),
			},
			want: []string{"1 issue (1 warning) in 1 file", "1 fixable"},
		},
		{
			name: "fixed",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				FilesModified:         2,
				DiagnosticsFixed:      7,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: bySeverity(0, 5, 0),
			},
			want:    []string{"5 issues", "7 fixed in 2 files"},
			notWant: []string{"fixable"},
		},
		{
			name: "fixed everything",
			stats: runner.Stats{
				FilesProcessed:        2,
				FilesModified:         1,
				DiagnosticsFixed:      3,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want: []string{"No issues found", "3 fixed in 1 file"},
		},
		{
			name: "needs formatting",
			stats: runner.Stats{
				FilesProcessed:        3,
				FilesUnformatted:      2,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want:    []string{"2 files need formatting"},
			notWant: []string{"formatted,"},
		},
		{
			name: "formatted",
			stats: runner.Stats{
				FilesProcessed:        3,
				FilesUnformatted:      1,
				FilesFormatted:        1,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want:    []string{"1 file formatted"},
			notWant: []string{"need formatting"},
		},
		{
			name: "read errors",
			stats: runner.Stats{
				FilesErrored:          2,
				DiagnosticsBySeverity: bySeverity(0, 0, 0),
			},
			want: []string{"2 files could not be read"},
		},
	}

	styles := pretty.NewStyles(false)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := styles.FormatSummaryOneLine(testCase.stats)
			for _, want := range testCase.want {
				assert.Contains(t, result, want)
			}
			for _, notWant := range testCase.notWant {
				assert.NotContains(t, result, notWant)
			}
		})
	}
}
