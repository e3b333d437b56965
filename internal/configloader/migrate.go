package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint/rules"
)

// ForeignKind identifies the tool a foreign config file belongs to.
type ForeignKind string

const (
	KindPrettier ForeignKind = "prettier"
	KindESLint   ForeignKind = "eslint"
	KindPackage  ForeignKind = "package.json"
	KindUnknown  ForeignKind = ""
)

// MigrationResult contains the result of converting foreign config files.
type MigrationResult struct {
	// Config is the converted quill configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePaths are the files that were converted.
	SourcePaths []string
}

// ClassifyForeignConfig returns which tool path configures.
func ClassifyForeignConfig(path string) ForeignKind {
	base := filepath.Base(path)
	switch {
	case base == "package.json":
		return KindPackage
	case strings.HasPrefix(base, ".prettierrc"), strings.HasPrefix(base, "prettier.config."):
		return KindPrettier
	case strings.HasPrefix(base, ".eslintrc"), strings.HasPrefix(base, "eslint.config."):
		return KindESLint
	default:
		return KindUnknown
	}
}

// ConvertForeignConfigs converts Prettier and ESLint config files into one
// quill configuration. Later files win where settings overlap.
func ConvertForeignConfigs(paths []string) (*MigrationResult, error) {
	result := &MigrationResult{Config: config.NewConfig()}
	for _, path := range paths {
		converted, err := ConvertForeignConfig(path)
		if err != nil {
			return nil, err
		}
		result.Config = merge(result.Config, converted.Config)
		result.Warnings = append(result.Warnings, converted.Warnings...)
		result.SourcePaths = append(result.SourcePaths, path)
	}
	return result, nil
}

// ConvertForeignConfig converts a single Prettier, ESLint or package.json
// file to quill format.
func ConvertForeignConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		Config:      config.NewConfig(),
		SourcePaths: []string{path},
	}
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, filepath.Base(path)+": "+fmt.Sprintf(format, args...))
	}

	kind := ClassifyForeignConfig(path)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%s is not a Prettier or ESLint config file", path)
	}
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create a quill config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	raw, err := decodeForeign(path, content)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPrettier:
		convertPrettier(raw, result.Config, warn)
	case KindESLint:
		convertESLint(raw, result.Config, warn)
	case KindPackage:
		if prettier, ok := raw["prettier"]; ok {
			if options, ok := prettier.(map[string]any); ok {
				convertPrettier(options, result.Config, warn)
			} else {
				warn("shared Prettier config %v is not supported; copy its options instead", prettier)
			}
		}
		if eslint, ok := raw["eslintConfig"].(map[string]any); ok {
			convertESLint(eslint, result.Config, warn)
		}
	}

	return result, nil
}

// decodeForeign parses a config file by extension. Extension-less rc files
// are tried as JSON first, then YAML.
func decodeForeign(path string, content []byte) (map[string]any, error) {
	var raw map[string]any
	switch DetectConfigFormat(path) {
	case "json":
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		if err := parseJSONC(content, &raw); err != nil {
			if yamlErr := yaml.Unmarshal(content, &raw); yamlErr != nil {
				return nil, fmt.Errorf("parse %s as JSON or YAML: %w", filepath.Base(path), yamlErr)
			}
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments before parsing.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++ // skip the closing /
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			next := content[idx+1]
			if next == '/' {
				inSingleComment = true
				idx++
				continue
			}
			if next == '*' {
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// prettierOptions holds the formatter sections a Prettier options object
// converts to.
type prettierOptions struct {
	format     *config.FormatConfig
	javascript *config.JavaScriptConfig
	json       *config.JSONConfig
}

// convertPrettier maps Prettier options onto cfg. Prettier indents with
// spaces unless useTabs is set, so indent_style is always written.
func convertPrettier(raw map[string]any, cfg *config.Config, warn func(string, ...any)) {
	applyPrettierOptions(raw, prettierOptions{&cfg.Format, &cfg.JavaScript, &cfg.JSON}, warn)
	if cfg.Format.IndentStyle == nil {
		cfg.Format.IndentStyle = config.Ptr("space")
	}

	overrides, _ := raw["overrides"].([]any)
	for _, entry := range overrides {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		override := config.Override{Include: stringList(item["files"])}
		if excluded := stringList(item["excludeFiles"]); len(excluded) > 0 {
			warn("excludeFiles %v in overrides is not supported", excluded)
		}
		options, _ := item["options"].(map[string]any)
		applyPrettierOptions(options, prettierOptions{&override.Format, &override.JavaScript, &override.JSON}, warn)
		cfg.Overrides = append(cfg.Overrides, override)
	}
}

func applyPrettierOptions(raw map[string]any, opts prettierOptions, warn func(string, ...any)) {
	for key, value := range raw {
		switch key {
		case "printWidth":
			if n, ok := toInt(value); ok {
				opts.format.LineWidth = &n
			}
		case "tabWidth":
			if n, ok := toInt(value); ok {
				opts.format.IndentWidth = &n
			}
		case "useTabs":
			opts.format.IndentStyle = config.Ptr(choose(value == true, "tab", "space"))
		case "endOfLine":
			if s, _ := value.(string); s == "lf" || s == "crlf" || s == "cr" {
				opts.format.LineEnding = &s
			} else {
				warn("endOfLine %v has no equivalent; using lf", value)
			}
		case "semi":
			opts.javascript.Semicolons = config.Ptr(choose(value != false, "always", "as-needed"))
		case "singleQuote":
			opts.javascript.QuoteStyle = config.Ptr(choose(value == true, "single", "double"))
		case "jsxSingleQuote":
			opts.javascript.JSXQuoteStyle = config.Ptr(choose(value == true, "single", "double"))
		case "trailingComma":
			if s, _ := value.(string); s == "all" || s == "es5" || s == "none" {
				opts.javascript.TrailingComma = &s
			} else {
				warn("unknown trailingComma %v", value)
			}
		case "arrowParens":
			opts.javascript.ArrowParentheses = config.Ptr(choose(value == "avoid", "as-needed", "always"))
		case "bracketSpacing":
			if b, ok := value.(bool); ok {
				opts.javascript.BracketSpacing = &b
				opts.json.BracketSpacing = &b
			}
		case "$schema", "overrides":
		default:
			warn("Prettier option %q is not supported; skipping", key)
		}
	}
}

// convertESLint maps ESLint rules and ignore patterns onto cfg.
func convertESLint(raw map[string]any, cfg *config.Config, warn func(string, ...any)) {
	for key, value := range raw {
		switch key {
		case "rules":
			ruleMap, _ := value.(map[string]any)
			convertESLintRules(ruleMap, cfg.Rules, warn)
		case "ignorePatterns":
			cfg.Ignore = append(cfg.Ignore, stringList(value)...)
		case "overrides":
			entries, _ := value.([]any)
			for _, entry := range entries {
				item, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				override := config.Override{
					Include: stringList(item["files"]),
					Rules:   make(map[string]config.RuleConfig),
				}
				ruleMap, _ := item["rules"].(map[string]any)
				convertESLintRules(ruleMap, override.Rules, warn)
				cfg.Overrides = append(cfg.Overrides, override)
			}
		case "root", "$schema":
		default:
			warn("ESLint setting %q is not supported; skipping", key)
		}
	}
}

func convertESLintRules(raw map[string]any, target map[string]config.RuleConfig, warn func(string, ...any)) {
	for name, value := range raw {
		canonical, ok := rules.ESLintAliases[name]
		if !ok {
			warn("ESLint rule %q has no quill equivalent; skipping", name)
			continue
		}

		level, options := value, []any(nil)
		if list, isList := value.([]any); isList && len(list) > 0 {
			level, options = list[0], list[1:]
		}

		ruleCfg := config.RuleConfig{}
		switch level {
		case "off", 0, int64(0), 0.0:
			ruleCfg.Enabled = config.Ptr(false)
		case "warn", 1, int64(1), 1.0:
			ruleCfg.Enabled = config.Ptr(true)
			ruleCfg.Severity = config.Ptr("warning")
		case "error", 2, int64(2), 2.0:
			ruleCfg.Enabled = config.Ptr(true)
			ruleCfg.Severity = config.Ptr("error")
		default:
			warn("ESLint rule %q has unknown level %v; skipping", name, level)
			continue
		}
		ruleCfg.Options = convertESLintOptions(name, options)
		target[canonical] = ruleCfg
	}
}

// convertESLintOptions translates the options of rules whose behavior
// quill configures.
func convertESLintOptions(name string, options []any) map[string]any {
	switch name {
	case "eqeqeq":
		mode, _ := first(options).(string)
		ignoreNull := mode == "smart"
		if len(options) > 1 {
			if extra, ok := options[1].(map[string]any); ok && extra["null"] == "ignore" {
				ignoreNull = true
			}
		}
		return map[string]any{"ignore_null": ignoreNull}
	case "no-empty":
		if extra, ok := first(options).(map[string]any); ok {
			if allow, ok := extra["allowEmptyCatch"].(bool); ok {
				return map[string]any{"allow_empty_catch": allow}
			}
		}
	}
	return nil
}

func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// toInt accepts the number types JSON, YAML and TOML decoders produce.
func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// stringList accepts a string or a list of strings.
func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return v
	}
	return nil
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePaths []string) string {
	names := make([]string, 0, len(sourcePaths))
	for _, path := range sourcePaths {
		names = append(names, filepath.Base(path))
	}
	return fmt.Sprintf(`# quill configuration
# Migrated from: %s
# See: https://github.com/yaklabco/quill
`, strings.Join(names, ", "))
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return ClassifyForeignConfig(path) != KindUnknown && !IsJavaScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		return fmt.Sprintf("JavaScript config file %s cannot be converted automatically; "+
			"create a .quill.yml file manually or run 'quill init'", filepath.Base(path))
	}
	return ""
}
