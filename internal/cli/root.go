// Package cli provides the Cobra command structure for quill.
package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app holds the persistent flags shared by every command.
type app struct {
	info       BuildInfo
	configPath string
	debug      bool
	color      string
}

// NewRootCommand creates the root quill command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	state := &app{info: info}

	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "A fast formatter and linter for JavaScript, TypeScript and JSON",
		Long: `quill formats and lints JavaScript, TypeScript, JSX and JSON files.

Its parser recovers from syntax errors, so every file gets diagnostics even
when it does not parse cleanly. Formatting is idempotent and lint fixes are
applied only when they do not conflict.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains([]string{pretty.ColorAuto, pretty.ColorAlways, pretty.ColorNever}, state.color) {
				return usageErrorf("invalid --color %q: must be auto, always or never", state.color)
			}
			if state.debug {
				logging.SetLevel("debug")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&state.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&state.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitUsage, err)
	})

	rootCmd.AddCommand(
		newFormatCommand(state),
		newLintCommand(state),
		newCheckCommand(state),
		newParseCommand(state),
		newRulesCommand(state),
		newInitCommand(),
		newMigrateCommand(),
		newLSPCommand(state),
		newVersionCommand(state),
	)

	NewHelpFormatter(func() string { return state.color }).ApplyToCommand(rootCmd)

	return rootCmd
}

// Execute runs cmd and returns the process exit code. Errors other than
// the issues-found signal are logged.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := ExitCode(err)
	// Cobra reports unknown commands and bad arguments as plain errors.
	if code == ExitInternalError && isCobraUsageError(err) {
		code = ExitUsage
	}
	if !isSilent(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return code
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires at least") ||
		strings.Contains(msg, "if any flags in the group")
}
