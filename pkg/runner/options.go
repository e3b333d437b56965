// Package runner discovers source files and formats and lints them
// concurrently.
package runner

import (
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/langdetect"
)

// Mode selects the work done for every file.
type Mode uint8

const (
	// ModeLint runs the lint rules.
	ModeLint Mode = 1 << iota
	// ModeFormat runs the formatter.
	ModeFormat

	// ModeCheck runs both.
	ModeCheck = ModeLint | ModeFormat
)

// Lints reports whether m includes linting.
func (m Mode) Lints() bool { return m&ModeLint != 0 }

// Formats reports whether m includes formatting.
func (m Mode) Formats() bool { return m&ModeFormat != 0 }

// Options controls a run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Root is the project root that include, ignore and override globs are
	// relative to. Defaults to WorkingDir.
	Root string

	// Mode selects linting, formatting or both. Zero means ModeCheck.
	Mode Mode

	// Diff computes a unified diff of the proposed changes.
	Diff bool

	// DryRun never writes files, even when Config asks for fixes or
	// formatting to be written.
	DryRun bool

	// Force writes files that changed on disk after they were read.
	Force bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run. Config.Fix applies
	// lint fixes and Config.Write writes formatted output.
	Config *config.Config
}

// SupportedLanguage reports whether discovery picks up files of lang.
func SupportedLanguage(lang langdetect.Language) bool {
	return lang.IsScript() || lang.IsJSON()
}

func (o Options) mode() Mode {
	if o.Mode == 0 {
		return ModeCheck
	}
	return o.Mode
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
