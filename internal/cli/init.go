package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new quill configuration file",
		Long: `Create a new .quill.yml configuration file in the current directory
with sensible defaults. The file can be customized to change formatting
options, enable or disable rules and override settings per path.

Examples:
  quill init                      Create minimal .quill.yml
  quill init --full               Create full config with all rules documented
  quill init --format toml        Create quill.toml instead
  quill init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .quill.yml or quill.toml)")

	return cmd
}

func runInit(out io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(out, "info")

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return usageErrorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == config.TemplateTOML {
			outputPath = "quill.toml"
		} else {
			outputPath = configloader.DefaultConfigFile
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitDataError,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	// Next steps are only useful to a person at a terminal.
	if !pretty.IsTerminal(out) {
		return nil
	}
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'quill rules' to see all available rules")

	return nil
}
