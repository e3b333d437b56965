package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/quill/pkg/config"
)

// EnvPrefix starts every variable LoadFromEnv reads.
const EnvPrefix = "QUILL_"

// EnvVar is one environment override.
type EnvVar struct {
	Name        string
	Description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func optionalString(field func(*config.Config) **string) func(*config.Config, string) error {
	return stringVar(func(cfg *config.Config, value string) { *field(cfg) = &value })
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		set(cfg, parsed)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", value)
		}
		set(cfg, parsed)
		return nil
	}
}

func optionalInt(field func(*config.Config) **int) func(*config.Config, string) error {
	return intVar(func(cfg *config.Config, value int) { *field(cfg) = &value })
}

// envVars is ordered as shown in help output.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{"SEVERITY_DEFAULT", "default severity: error, warning, info",
		stringVar(func(cfg *config.Config, v string) { cfg.SeverityDefault = v })},
	{"FIX", "apply lint fixes",
		boolVar(func(cfg *config.Config, v bool) { cfg.Fix = v })},
	{"JOBS", "parallel workers, 0 picks one per CPU",
		intVar(func(cfg *config.Config, v int) { cfg.Jobs = v })},
	{"OUTPUT_FORMAT", "report format: text, json, sarif",
		stringVar(func(cfg *config.Config, v string) { cfg.OutputFormat = config.OutputFormat(v) })},
	{"BACKUPS_ENABLED", "keep a copy of files before rewriting them",
		boolVar(func(cfg *config.Config, v bool) { cfg.Backups.Enabled = &v })},
	{"NO_BACKUPS", "never keep backups",
		boolVar(func(cfg *config.Config, v bool) { cfg.NoBackups = v })},
	{"IGNORE", "comma-separated ignore globs",
		stringVar(func(cfg *config.Config, v string) { cfg.Ignore = splitList(v) })},
	{"INDENT_STYLE", "tab or space",
		optionalString(func(cfg *config.Config) **string { return &cfg.Format.IndentStyle })},
	{"INDENT_WIDTH", "columns per indentation level",
		optionalInt(func(cfg *config.Config) **int { return &cfg.Format.IndentWidth })},
	{"LINE_WIDTH", "preferred maximum line width",
		optionalInt(func(cfg *config.Config) **int { return &cfg.Format.LineWidth })},
	{"LINE_ENDING", "lf, crlf or cr",
		optionalString(func(cfg *config.Config) **string { return &cfg.Format.LineEnding })},
	{"QUOTE_STYLE", "string quotes in scripts: double or single",
		optionalString(func(cfg *config.Config) **string { return &cfg.JavaScript.QuoteStyle })},
	{"SEMICOLONS", "statement semicolons: always or as-needed",
		optionalString(func(cfg *config.Config) **string { return &cfg.JavaScript.Semicolons })},
}

// EnvVars lists the supported overrides with their full names.
func EnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, env := range envVars {
		env.Name = EnvPrefix + env.Name
		out[i] = env
	}
	return out
}

// LoadFromEnv applies QUILL_* overrides from the process environment.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	for _, env := range EnvVars() {
		value := getenv(env.Name)
		if value == "" {
			continue
		}
		if err := env.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", env.Name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
