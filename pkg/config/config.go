// Package config defines the configuration types for quill.
// These types are plain data; discovery, merging and validation live in
// internal/configloader.
package config

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Fix      *bool          `yaml:"fix,omitempty" toml:"fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// FormatConfig holds the printer settings shared by every language.
// Unset fields fall back to the printer defaults.
type FormatConfig struct {
	Enabled     *bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	IndentStyle *string `yaml:"indent_style,omitempty" toml:"indent_style,omitempty"`
	IndentWidth *int    `yaml:"indent_width,omitempty" toml:"indent_width,omitempty"`
	LineWidth   *int    `yaml:"line_width,omitempty" toml:"line_width,omitempty"`
	LineEnding  *string `yaml:"line_ending,omitempty" toml:"line_ending,omitempty"`
}

// JavaScriptConfig holds formatter settings for JavaScript and TypeScript.
type JavaScriptConfig struct {
	QuoteStyle       *string `yaml:"quote_style,omitempty" toml:"quote_style,omitempty"`
	JSXQuoteStyle    *string `yaml:"jsx_quote_style,omitempty" toml:"jsx_quote_style,omitempty"`
	Semicolons       *string `yaml:"semicolons,omitempty" toml:"semicolons,omitempty"`
	TrailingComma    *string `yaml:"trailing_comma,omitempty" toml:"trailing_comma,omitempty"`
	ArrowParentheses *string `yaml:"arrow_parentheses,omitempty" toml:"arrow_parentheses,omitempty"`
	BracketSpacing   *bool   `yaml:"bracket_spacing,omitempty" toml:"bracket_spacing,omitempty"`
}

// JSONConfig holds formatter settings for JSON and JSONC.
type JSONConfig struct {
	TrailingCommas *bool `yaml:"trailing_commas,omitempty" toml:"trailing_commas,omitempty"`
	BracketSpacing *bool `yaml:"bracket_spacing,omitempty" toml:"bracket_spacing,omitempty"`
}

// Override applies settings to the files matching Include. Overrides are
// applied in order, so later entries win.
type Override struct {
	Include    []string              `yaml:"include" toml:"include"`
	Format     FormatConfig          `yaml:"format,omitempty" toml:"format,omitempty"`
	JavaScript JavaScriptConfig      `yaml:"javascript,omitempty" toml:"javascript,omitempty"`
	JSON       JSONConfig            `yaml:"json,omitempty" toml:"json,omitempty"`
	Rules      map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName      RuleFormat = "name"      // "no-debugger"
	RuleFormatQualified RuleFormat = "qualified" // "suspicious/no-debugger"
)

// Config is the root configuration structure for quill.
type Config struct {
	// RequiredVersion is a semantic version constraint the running binary
	// must satisfy, for example ">= 1.2, < 2".
	RequiredVersion string `yaml:"required_version,omitempty" toml:"required_version,omitempty"`

	// Include limits discovery to files matching one of these globs.
	Include []string `yaml:"include,omitempty" toml:"include,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	Format     FormatConfig     `yaml:"format,omitempty" toml:"format,omitempty"`
	JavaScript JavaScriptConfig `yaml:"javascript,omitempty" toml:"javascript,omitempty"`
	JSON       JSONConfig       `yaml:"json,omitempty" toml:"json,omitempty"`

	// SeverityDefault replaces the default severity of every rule that does
	// not set one.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	Overrides []Override `yaml:"overrides,omitempty" toml:"overrides,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix applies lint fixes.
	Fix bool `yaml:"-" toml:"-"`

	// Write writes formatted output back to the files.
	Write bool `yaml:"-" toml:"-"`

	// OutputFormat specifies the diagnostic output format.
	OutputFormat OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule names to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule names to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// FixRules limits fixing to specific rules.
	FixRules []string `yaml:"-" toml:"-"`

	// OnlyRules runs just these rules, ignoring enablement in config files.
	OnlyRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:        make(map[string]RuleConfig),
		OutputFormat: FormatText,
		RuleFormat:   RuleFormatName,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}

// BackupsEnabled reports whether backups should be written, honoring the
// --no-backups flag. Backups are off unless configured.
func (c *Config) BackupsEnabled() bool {
	if c.NoBackups {
		return false
	}
	return c.Backups.Enabled != nil && *c.Backups.Enabled
}

// FormatEnabled reports whether the formatter runs.
func (c FormatConfig) FormatEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Ptr returns a pointer to v. Handy for building configs in code.
func Ptr[T any](v T) *T {
	return &v
}
