// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and Prettier/ESLint migration.
package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// DefaultConfigFile is the file name written by init and migrate.
const DefaultConfigFile = ".quill.yml"

// ErrConfigNotFound is returned when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreForeign skips Prettier and ESLint config detection.
	IgnoreForeign bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// Version is the running quill version, checked against
	// required_version. Empty skips the check.
	Version string

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Prompt receives migration prompts; defaults to stdin/stdout.
	Prompt io.ReadWriter
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Root is the directory of the project config, or the working
	// directory when there is none. Override globs are relative to it.
	Root string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if a Prettier or ESLint config was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (QUILL_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.quill.yml or quill.toml, upward search)
//  5. User config ($XDG_CONFIG_HOME/quill/config.yml)
//  6. System config (/etc/quill/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}
	result.Root = workDir

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ExplicitPath)
		}
		result.Paths.Explicit = opts.ExplicitPath
	}

	if !opts.IgnoreForeign && opts.ExplicitPath == "" {
		migrated, err := handleForeignMigration(paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			result.Paths = paths
		}
	}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{name: "explicit", path: opts.ExplicitPath},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		validation := ValidateWithFile(layerCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		if layer.name == "project" || layer.name == "explicit" {
			result.Root = filepath.Dir(layer.path)
		}
		logger.Debug("loaded config", logging.FieldConfig, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	// Files were checked one by one; this catches the environment and flags.
	if validation := Validate(cfg); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	if opts.Version != "" {
		if err := CheckRequiredVersion(cfg.RequiredVersion, opts.Version); err != nil {
			return nil, err
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML or TOML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsTOMLConfig(path) {
		cfg, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// handleForeignMigration offers to convert Prettier and ESLint configs when
// the project has no quill config.
func handleForeignMigration(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	workDir string,
) (bool, error) {
	if paths.Project != "" || len(paths.Foreign) == 0 {
		return false, nil
	}

	var convertible []string
	for _, path := range paths.Foreign {
		if CanMigrate(path) {
			convertible = append(convertible, path)
		} else if warning := GetMigrationWarning(path); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}
	if len(convertible) == 0 {
		return false, nil
	}

	names := make([]string, 0, len(convertible))
	for _, path := range convertible {
		names = append(names, filepath.Base(path))
	}
	found := strings.Join(names, ", ")

	prompt := opts.Prompt
	if prompt == nil {
		if opts.NonInteractive || !isInteractive() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("found %s but no %s; run 'quill migrate' to convert", found, DefaultConfigFile))
			return false, nil
		}
		prompt = stdio{}
	}

	shouldMigrate, err := promptMigration(prompt, found)
	if err != nil {
		return false, err
	}
	if !shouldMigrate {
		return false, nil
	}

	migration, err := ConvertForeignConfigs(convertible)
	if err != nil {
		return false, fmt.Errorf("convert %s: %w", found, err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, DefaultConfigFile)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(convertible)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s", found, DefaultConfigFile))

	return true, nil
}

// stdio joins stdin and stdout for prompting.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// promptMigration asks the user if they want to migrate.
func promptMigration(rw io.ReadWriter, found string) (bool, error) {
	if _, err := fmt.Fprintf(rw, "Found %s but no %s\nConvert to quill format? [Y/n] ", found, DefaultConfigFile); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(rw).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes cfg to path as YAML, or TOML for a .toml path.
func WriteConfig(cfg *config.Config, path, header string) error {
	var (
		content []byte
		err     error
	)
	if IsTOMLConfig(path) {
		content, err = cfg.ToTOML()
		if err == nil && header != "" {
			content = append([]byte(header+"\n"), content...)
		}
	} else {
		content, err = cfg.ToYAMLWithHeader(header)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// normalizeRuleKeys converts rule names and aliases to canonical names, so
// ESLint spellings such as "eqeqeq" work in config files. If a rule is
// configured under two keys, the last one wins with a warning.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string) // canonical name -> original key

	for key, ruleCfg := range cfg.Rules {
		canonicalID, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					originalKey, key, canonicalID))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
