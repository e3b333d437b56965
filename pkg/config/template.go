package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template output formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// IncludeRules is a list of rule names to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Name        string
	Group       string
	Description string
	Enabled     bool
	Severity    string
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q (want yaml or toml)", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Version constraint the quill binary must satisfy
# required_version: ">= 0.1.0"

# Only check files matching these globs (default: every supported file)
# include:
#   - "src/**"

# Glob patterns to skip; node_modules and VCS directories are always skipped
# ignore:
#   - "dist/**"
#   - "*.min.js"

format:
  # tab or space
  indent_style: tab
  indent_width: 2
  line_width: 80
  # lf, crlf or cr
  line_ending: lf

javascript:
  # double or single
  quote_style: double
  jsx_quote_style: double
  # always or as-needed
  semicolons: always
  # all, es5 or none
  trailing_comma: all
  # always or as-needed
  arrow_parentheses: always
  bracket_spacing: true

json:
  trailing_commas: false
  bracket_spacing: true

# Back up files before rewriting them (<file>.quill.bak)
# backups:
#   enabled: true

# Default severity for every rule: error, warning or info
# severity_default: warning

# Settings for matching files; later entries win
# overrides:
#   - include: ["**/*.test.ts"]
#     rules:
#       no-empty-block:
#         enabled: false
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   no-double-equals:
#     severity: warning
#     fix: false
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")
	for _, rule := range selectRules(opts.IncludeRules) {
		buf.WriteString(fmt.Sprintf("\n  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # ")))
		if rule.CanFix {
			buf.WriteString("  # Fixable: yes\n")
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", rule.Name))
		buf.WriteString(fmt.Sprintf("    enabled: %t\n", rule.Enabled))
		buf.WriteString(fmt.Sprintf("    severity: %s\n", rule.Severity))
	}
	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Version constraint the quill binary must satisfy
# required_version = ">= 0.1.0"

# Only check files matching these globs (default: every supported file)
# include = ["src/**"]

# Glob patterns to skip; node_modules and VCS directories are always skipped
# ignore = ["dist/**", "*.min.js"]

# Default severity for every rule: error, warning or info
# severity_default = "warning"

[format]
# tab or space
indent_style = "tab"
indent_width = 2
line_width = 80
# lf, crlf or cr
line_ending = "lf"

[javascript]
# double or single
quote_style = "double"
jsx_quote_style = "double"
# always or as-needed
semicolons = "always"
# all, es5 or none
trailing_comma = "all"
# always or as-needed
arrow_parentheses = "always"
bracket_spacing = true

[json]
trailing_commas = false
bracket_spacing = true

# Back up files before rewriting them (<file>.quill.bak)
# [backups]
# enabled = true

# Settings for matching files; later entries win
# [[overrides]]
# include = ["**/*.test.ts"]
# [overrides.rules.no-empty-block]
# enabled = false
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# [rules.no-double-equals]
# severity = "warning"
# fix = false
`)
		return buf.Bytes()
	}

	for _, rule := range selectRules(opts.IncludeRules) {
		buf.WriteString(fmt.Sprintf("\n# %s\n", wrapComment(rule.Description, commentWrapWidth, "# ")))
		if rule.CanFix {
			buf.WriteString("# Fixable: yes\n")
		}
		buf.WriteString(fmt.Sprintf("[rules.%s]\n", rule.Name))
		buf.WriteString(fmt.Sprintf("enabled = %t\n", rule.Enabled))
		buf.WriteString(fmt.Sprintf("severity = %q\n", rule.Severity))
	}
	return buf.Bytes()
}

// selectRules returns the known rules sorted by name, limited to include
// when it is not empty.
func selectRules(include []string) []RuleInfo {
	rules := getRuleInfos()

	if len(include) > 0 {
		includeSet := make(map[string]bool, len(include))
		for _, name := range include {
			includeSet[name] = true
		}
		filtered := make([]RuleInfo, 0, len(include))
		for _, r := range rules {
			if includeSet[r.Name] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})
	return rules
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback to a static list of known rules
	return []RuleInfo{
		{
			Name: "no-debugger", Group: "suspicious", Enabled: true, Severity: "error", CanFix: true,
			Description: "Disallow debugger statements",
		},
		{
			Name: "no-compare-neg-zero", Group: "suspicious", Enabled: true, Severity: "error", CanFix: true,
			Description: "Disallow comparing against -0",
		},
		{
			Name: "no-double-equals", Group: "suspicious", Enabled: true, Severity: "error", CanFix: true,
			Description: "Require === and !== instead of == and !=",
		},
		{
			Name: "no-empty-block", Group: "suspicious", Enabled: true, Severity: "warning",
			Description: "Disallow empty block statements",
		},
		{
			Name: "no-var", Group: "style", Enabled: true, Severity: "warning", CanFix: true,
			Description: "Require let or const instead of var",
		},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters, starting
// continuation lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# quill configuration
# See: https://github.com/yaklabco/quill`
}
