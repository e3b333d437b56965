package configloader

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
)

// ValidationError is one problem found in a configuration, located by its
// dotted field path such as "overrides[0].rules.no-var.severity".
type ValidationError struct {
	FilePath string
	Field    string
	Value    any
	Message  string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult splits findings into errors, which stop loading, and
// warnings, which are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg. Unknown rules are warnings; everything else that
// cannot be honoured is an error.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.RequiredVersion != "" {
		if _, err := ParseRequiredVersion(cfg.RequiredVersion); err != nil {
			result.fail("required_version", cfg.RequiredVersion, "%v", err)
		}
	}
	if cfg.SeverityDefault != "" {
		if _, err := diagnostics.ParseSeverity(cfg.SeverityDefault); err != nil {
			result.fail("severity_default", cfg.SeverityDefault, "%v", err)
		}
	}
	if cfg.OutputFormat != "" && !cfg.OutputFormat.IsValid() {
		result.fail("output_format", cfg.OutputFormat, "unknown output format %q (want text, json or sarif)", cfg.OutputFormat)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "must be 0 for one worker per CPU, or positive")
	}

	// The resolver checks the formatter sections of overrides too.
	if _, err := config.NewResolver(cfg); err != nil {
		result.fail("format", nil, "%v", err)
	}

	result.checkRules("rules", cfg.Rules)
	result.checkGlobs("include", cfg.Include)
	result.checkGlobs("ignore", cfg.Ignore)
	for i, override := range cfg.Overrides {
		prefix := fmt.Sprintf("overrides[%d]", i)
		if len(override.Include) == 0 {
			result.warn(prefix+".include", nil, "override has no include patterns and never applies")
		}
		result.checkGlobs(prefix+".include", override.Include)
		result.checkRules(prefix+".rules", override.Rules)
	}
	return result
}

// ValidateWithFile is Validate with every finding attributed to path.
func ValidateWithFile(cfg *config.Config, path string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = path
		}
	}
	return result
}

func (r *ValidationResult) checkRules(prefix string, rules map[string]config.RuleConfig) {
	for name, ruleCfg := range rules {
		field := prefix + "." + name
		if _, ok := lint.DefaultRegistry.Get(name); !ok {
			r.warn(field, name, "unknown rule %q; it will be ignored", name)
		}
		if ruleCfg.Severity == nil {
			continue
		}
		if _, err := diagnostics.ParseSeverity(*ruleCfg.Severity); err != nil {
			r.fail(field+".severity", *ruleCfg.Severity, "%v", err)
		}
	}
}

func (r *ValidationResult) checkGlobs(field string, patterns []string) {
	for i, pattern := range patterns {
		if _, err := config.NewPathMatcher([]string{pattern}); err != nil {
			r.fail(fmt.Sprintf("%s[%d]", field, i), pattern, "%v", err)
		}
	}
}
