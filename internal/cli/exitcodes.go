package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/runner"
)

// Exit codes for quill. The 64+ codes follow sysexits.h.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates lint errors or files that need formatting.
	ExitIssues = 1

	// ExitWarnings indicates warnings only, under --strict.
	ExitWarnings = 2

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 64

	// ExitDataError indicates invalid configuration or unusable input.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound signals that a run completed but found problems. It is
// not logged.
var ErrIssuesFound = errors.New("issues found")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// usageErrorf reports invalid command-line usage.
func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// issuesFound converts a result exit code into the error a command returns.
func issuesFound(code int) error {
	if code == ExitSuccess {
		return nil
	}
	return &ExitError{Code: code, Err: ErrIssuesFound}
}

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors(), result.HasUnformatted():
		return ExitIssues
	case result.HasFileErrors():
		return ExitIOError
	case strict && result.HasWarnings():
		return ExitWarnings
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, configloader.ErrVersionMismatch):
		return ExitDataError
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	}
	return ExitInternalError
}

// isSilent reports whether err only carries an exit code and should not be
// logged.
func isSilent(err error) bool {
	return errors.Is(err, ErrIssuesFound)
}
