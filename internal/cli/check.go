package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/pkg/runner"
)

func newCheckCommand(state *app) *cobra.Command {
	flags := &lintFlags{}
	var write bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check formatting and lint in one pass",
		Long: `Check formatting and run the lint rules in one pass.

Each file is parsed once. With --write, safe lint fixes are applied first
and the result is then formatted and written back.

Examples:
  quill check                 # Check the current directory
  quill check --write src/    # Fix, format and write src/
  quill check --format json   # Machine-readable output`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				flags.fix = true
			}
			return runCheck(cmd, state, args, flags, write)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "apply fixes and formatting to the files")

	return cmd
}

func runCheck(cmd *cobra.Command, state *app, args []string, flags *lintFlags, write bool) error {
	if err := flags.validate(); err != nil {
		return err
	}
	stdin := cmd.Flags().Changed("stdin-filepath")
	if stdin && len(args) > 0 {
		return withExitCode(ExitUsage, errStdinWithPaths)
	}

	cli := flags.config()
	cli.Write = write || stdin
	sess, err := newSession(cmd, state, cli)
	if err != nil {
		return err
	}
	opts := sess.runnerOptions(runner.ModeCheck, args, &flags.run, flags.run.dryRun)

	if stdin {
		return lintStdin(sess, opts, flags)
	}

	result, err := sess.run(opts)
	if err != nil {
		return err
	}
	return sess.finish(result, &flags.report)
}
