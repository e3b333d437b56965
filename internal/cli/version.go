package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
)

func newVersionCommand(state *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build date of quill.

With --check, also verify that this build satisfies the required_version
constraint of the configuration in effect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			info := state.info
			logger.Info("quill",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)

			if !check {
				return nil
			}
			return checkRequiredVersion(cmd, state, logger)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the configured required_version")

	return cmd
}

func checkRequiredVersion(cmd *cobra.Command, state *app, logger *log.Logger) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Load without a version so a mismatch is reported here rather than
	// as a load failure.
	load, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   state.configPath,
		NonInteractive: true,
		IgnoreForeign:  true,
	})
	if err != nil {
		return withExitCode(ExitDataError, fmt.Errorf("load configuration: %w", err))
	}

	constraint := load.Config.RequiredVersion
	if constraint == "" {
		logger.Info("no required_version configured")
		return nil
	}
	if err := configloader.CheckRequiredVersion(constraint, state.info.Version); err != nil {
		return withExitCode(ExitDataError, err)
	}

	logger.Info("required_version satisfied", "constraint", constraint)
	return nil
}
