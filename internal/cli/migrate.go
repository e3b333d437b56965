package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [inputs...]",
		Short: "Convert Prettier and ESLint configuration to quill format",
		Long: `Convert existing Prettier, ESLint or package.json configuration to a
quill configuration file (.quill.yml).

If no input files are specified, the command searches the current directory
for Prettier and ESLint configuration files and merges all of them.

JavaScript configuration files (.prettierrc.js, eslint.config.mjs) cannot
be converted automatically and require manual migration.

Examples:
  quill migrate                        Auto-detect and convert configs
  quill migrate .prettierrc.json       Convert a specific file
  quill migrate --output quill.toml    Write TOML instead of YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.ErrOrStderr(), args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runMigrate(out io.Writer, inputs []string, flags *migrateFlags) error {
	logger := logging.NewWithWriter(out, "info")

	if len(inputs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputs = configloader.FindForeignConfigs(cwd)
		if len(inputs) == 0 {
			return withExitCode(ExitDataError,
				errors.New("no Prettier or ESLint configuration found in current directory"))
		}
		logger.Info("found configuration", logging.FieldPaths, inputs)
	}

	for _, input := range inputs {
		if _, err := os.Stat(input); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("input file: %w", err))
		}
		if !configloader.CanMigrate(input) {
			return withExitCode(ExitDataError,
				fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(input)))
		}
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return withExitCode(ExitDataError,
				fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertForeignConfigs(inputs)
	if err != nil {
		return withExitCode(ExitDataError, fmt.Errorf("convert configuration: %w", err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(result.SourcePaths)
	if err := configloader.WriteConfig(result.Config, absOutput, header); err != nil {
		return withExitCode(ExitIOError, err)
	}

	logger.Info("migration complete", logging.FieldInput, inputs, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
