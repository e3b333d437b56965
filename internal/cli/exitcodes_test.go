package cli

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
)

func withSeverity(severity diagnostics.Severity) runner.FileOutcome {
	return runner.FileOutcome{
		Path:        "a.js",
		Diagnostics: []lint.Diagnostic{{Diagnostic: diagnostics.Diagnostic{Severity: severity, Message: "m"}}},
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcomes []runner.FileOutcome
		strict   bool
		want     int
	}{
		{name: "no files", want: ExitSuccess},
		{name: "clean", outcomes: []runner.FileOutcome{{Path: "a.js"}}, want: ExitSuccess},
		{name: "error", outcomes: []runner.FileOutcome{withSeverity(diagnostics.SeverityError)}, want: ExitIssues},
		{name: "warning", outcomes: []runner.FileOutcome{withSeverity(diagnostics.SeverityWarning)}, want: ExitSuccess},
		{
			name:     "warning under strict",
			outcomes: []runner.FileOutcome{withSeverity(diagnostics.SeverityWarning)},
			strict:   true,
			want:     ExitWarnings,
		},
		{
			name:     "info under strict",
			outcomes: []runner.FileOutcome{withSeverity(diagnostics.SeverityInfo)},
			strict:   true,
			want:     ExitSuccess,
		},
		{name: "unformatted", outcomes: []runner.FileOutcome{{Path: "a.js", Unformatted: true}}, want: ExitIssues},
		{
			name:     "formatted and written",
			outcomes: []runner.FileOutcome{{Path: "a.js", Unformatted: true, Written: true}},
			want:     ExitSuccess,
		},
		{
			name:     "unreadable file",
			outcomes: []runner.FileOutcome{{Path: "a.js", Error: fsutil.ErrPermissionDenied}},
			want:     ExitIOError,
		},
		{
			name: "errors outrank unreadable files",
			outcomes: []runner.FileOutcome{
				withSeverity(diagnostics.SeverityError),
				{Path: "b.js", Error: fsutil.ErrPermissionDenied},
			},
			want: ExitIssues,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := runner.NewResult(testCase.outcomes...)
			assert.Equal(t, testCase.want, ExitCodeFromResult(result, testCase.strict))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "explicit code", err: withExitCode(ExitDataError, errors.New("bad")), want: ExitDataError},
		{name: "wrapped explicit code", err: fmt.Errorf("run: %w", usageErrorf("bad flag")), want: ExitUsage},
		{name: "issues", err: issuesFound(ExitIssues), want: ExitIssues},
		{name: "validation", err: &configloader.ValidationError{Field: "jobs"}, want: ExitDataError},
		{name: "version mismatch", err: fmt.Errorf("load: %w", configloader.ErrVersionMismatch), want: ExitDataError},
		{name: "missing file", err: fmt.Errorf("open: %w", os.ErrNotExist), want: ExitIOError},
		{name: "permission", err: fsutil.ErrPermissionDenied, want: ExitIOError},
		{name: "other", err: errors.New("boom"), want: ExitInternalError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, ExitCode(testCase.err))
		})
	}
}

func TestIssuesFoundIsSilent(t *testing.T) {
	t.Parallel()

	assert.NoError(t, issuesFound(ExitSuccess))
	assert.True(t, isSilent(issuesFound(ExitIssues)))
	assert.False(t, isSilent(withExitCode(ExitUsage, errors.New("bad"))))
}
