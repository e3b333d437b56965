package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/internal/watch"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/runner"
)

type formatFlags struct {
	run      runFlags
	report   reportFlags
	write    bool
	check    bool
	diff     bool
	watch    bool
	debounce time.Duration
}

func newFormatCommand(state *app) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format JavaScript, TypeScript and JSON files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, state, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write formatted output back to the files")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report unformatted files without writing (default)")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff of the formatting changes")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "keep running and reformat files when they change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce,
		"quiet period before changed files are reformatted in watch mode")
	flags.run.register(cmd.Flags())
	flags.report.register(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	cmd.MarkFlagsMutuallyExclusive("stdin-filepath", "watch")

	return cmd
}

const formatLongDescription = `Format JavaScript, TypeScript, JSX and JSON files.

Without --write, files are only checked and the command exits with status 1
when any of them is not formatted. Files with syntax errors are reported and
left untouched.

Examples:
  quill format                          # Check the current directory
  quill format --write src/             # Format files in place
  quill format --diff index.ts          # Show what would change
  quill format --stdin-filepath a.ts    # Format stdin, print the result
  quill format --write --watch src/     # Reformat on every save`

func runFormat(cmd *cobra.Command, state *app, args []string, flags *formatFlags) error {
	if err := flags.report.validate(); err != nil {
		return err
	}
	stdin := cmd.Flags().Changed("stdin-filepath")
	if stdin && len(args) > 0 {
		return withExitCode(ExitUsage, errStdinWithPaths)
	}

	cli := cliConfig(&flags.run)
	// Stdin output always carries the formatted text.
	cli.Write = flags.write || stdin
	sess, err := newSession(cmd, state, cli)
	if err != nil {
		return err
	}

	opts := sess.runnerOptions(runner.ModeFormat, args, &flags.run, flags.diff)
	if flags.diff {
		opts.DryRun = true
	}

	if stdin {
		return formatStdin(sess, opts, flags.run.stdinPath)
	}

	result, err := sess.run(opts)
	if err != nil {
		return err
	}
	if !flags.watch {
		return sess.finish(result, &flags.report)
	}

	if err := sess.report(result, &flags.report, cmd.OutOrStdout()); err != nil {
		return err
	}
	return watchAndFormat(sess, opts, flags)
}

// formatStdin prints the formatted source to stdout. Sources that cannot
// be formatted are echoed unchanged and their diagnostics go to stderr.
func formatStdin(sess *session, opts runner.Options, path string) error {
	outcome, err := sess.processStdin(opts, path)
	if err != nil {
		return err
	}

	out := sess.cmd.OutOrStdout()
	if _, err := out.Write(outcome.Output); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write stdout: %w", err))
	}

	if outcome.FormatError == nil && len(outcome.Diagnostics) == 0 {
		return nil
	}
	result := runner.NewResult(outcome)
	report := reportFlags{format: string(config.FormatText), ruleFormat: string(config.RuleFormatName), quiet: true}
	if err := sess.report(result, &report, sess.cmd.ErrOrStderr()); err != nil {
		return err
	}
	if errors.Is(outcome.FormatError, document.ErrSyntax) {
		return withExitCode(ExitDataError, outcome.FormatError)
	}
	return issuesFound(ExitCodeFromResult(result, false))
}

// watchAndFormat reprocesses changed files until the context is cancelled.
func watchAndFormat(sess *session, opts runner.Options, flags *formatFlags) error {
	ctx := sess.cmd.Context()
	logger := logging.FromContext(ctx)

	watcher, err := watch.New(watch.Options{
		Paths:          opts.Paths,
		WorkingDir:     opts.WorkingDir,
		Debounce:       flags.debounce,
		FollowSymlinks: opts.FollowSymlinks,
	})
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("start watcher: %w", err))
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Warn("close watcher", logging.FieldError, closeErr)
		}
	}()

	logger.Info("watching for changes", logging.FieldPaths, watcher.Roots())

	err = watcher.Run(ctx, func(_ context.Context, paths []string) {
		changed := opts
		changed.Paths = paths
		result, runErr := sess.run(changed)
		if runErr != nil {
			logger.Error("format changed files", logging.FieldError, runErr)
			return
		}
		if reportErr := sess.report(result, &flags.report, sess.cmd.OutOrStdout()); reportErr != nil {
			logger.Error("report changed files", logging.FieldError, reportErr)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
