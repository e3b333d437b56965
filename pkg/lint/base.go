package lint

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/syntax"
)

// BaseRule provides the metadata half of the Rule interface.
// Embed this in rule implementations and add a Check method.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	name     string
	group    string
	desc     string
	severity diagnostics.Severity
	fixable  bool
	kinds    []syntax.Kind
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(
	name, group, desc string,
	severity diagnostics.Severity,
	fixable bool,
	kinds ...syntax.Kind,
) BaseRule {
	return BaseRule{
		name:     name,
		group:    group,
		desc:     desc,
		severity: severity,
		fixable:  fixable,
		kinds:    kinds,
	}
}

// Name returns the unique name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Group returns the rule category.
func (r *BaseRule) Group() string {
	return r.group
}

// Description returns what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() diagnostics.Severity {
	if r.severity == "" {
		return diagnostics.SeverityWarning
	}
	return r.severity
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Kinds returns the node kinds the rule visits.
func (r *BaseRule) Kinds() []syntax.Kind {
	return r.kinds
}
