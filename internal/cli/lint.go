package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
)

type lintFlags struct {
	run      runFlags
	report   reportFlags
	fix      bool
	rules    []string
	enable   []string
	disable  []string
	fixRules []string
}

func (f *lintFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.fix, "fix", false, "automatically fix issues")
	cmd.Flags().StringSliceVar(&f.rules, "rule", nil, "run only these rules")
	cmd.Flags().StringSliceVar(&f.enable, "enable", nil, "rule names to enable")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "rule names to disable")
	cmd.Flags().StringSliceVar(&f.fixRules, "fix-rules", nil, "limit auto-fix to specific rule names")
	f.run.register(cmd.Flags())
	f.report.register(cmd.Flags())
}

// config maps the lint flags onto the CLI layer of the configuration.
func (f *lintFlags) config() *config.Config {
	cfg := cliConfig(&f.run)
	cfg.Fix = f.fix
	cfg.OnlyRules = f.rules
	cfg.EnableRules = f.enable
	cfg.DisableRules = f.disable
	cfg.FixRules = f.fixRules
	return cfg
}

// validate rejects rule names that no registered rule or alias answers to.
func (f *lintFlags) validate() error {
	if err := f.report.validate(); err != nil {
		return err
	}
	for _, list := range [][]string{f.rules, f.enable, f.disable, f.fixRules} {
		for _, name := range list {
			if _, _, ok := lint.DefaultRegistry.Resolve(name); !ok {
				return usageErrorf("unknown rule %q (run 'quill rules' to list them)", name)
			}
		}
	}
	return nil
}

func newLintCommand(state *app) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript, TypeScript and JSON files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, state, args, flags, runner.ModeLint)
		},
	}

	flags.register(cmd)

	return cmd
}

const lintLongDescription = `Lint JavaScript, TypeScript, JSX and JSON files.

By default, lints every supported file in the current directory and its
subdirectories. Specify paths to lint specific files or directories.

Examples:
  quill lint                         # Lint current directory
  quill lint src/                    # Lint src directory
  quill lint index.ts                # Lint single file
  quill lint --fix                   # Lint and auto-fix issues
  quill lint --fix --dry-run         # Show fixes without applying
  quill lint --rule no-debugger      # Run a single rule
  quill lint --format sarif          # Output SARIF for code scanning
  quill lint --strict                # Fail on warnings too`

func runLint(cmd *cobra.Command, state *app, args []string, flags *lintFlags, mode runner.Mode) error {
	if err := flags.validate(); err != nil {
		return err
	}
	stdin := cmd.Flags().Changed("stdin-filepath")
	if stdin && len(args) > 0 {
		return withExitCode(ExitUsage, errStdinWithPaths)
	}

	sess, err := newSession(cmd, state, flags.config())
	if err != nil {
		return err
	}
	opts := sess.runnerOptions(mode, args, &flags.run, flags.run.dryRun)

	if stdin {
		return lintStdin(sess, opts, flags)
	}

	result, err := sess.run(opts)
	if err != nil {
		return err
	}
	return sess.finish(result, &flags.report)
}

// lintStdin reports the diagnostics of stdin. With --fix the fixed source
// is printed to stdout and the diagnostics go to stderr.
func lintStdin(sess *session, opts runner.Options, flags *lintFlags) error {
	outcome, err := sess.processStdin(opts, flags.run.stdinPath)
	if err != nil {
		return err
	}
	result := runner.NewResult(outcome)

	if !sess.config().Fix {
		return sess.finish(result, &flags.report)
	}

	if _, err := sess.cmd.OutOrStdout().Write(outcome.Output); err != nil {
		return withExitCode(ExitIOError, err)
	}
	if err := sess.report(result, &flags.report, sess.cmd.ErrOrStderr()); err != nil {
		return err
	}
	return issuesFound(ExitCodeFromResult(result, flags.report.strict))
}
