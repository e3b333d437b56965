// Package lint provides the rule engine, diagnostics, and registry for quill.
package lint

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/syntax"
)

// Diagnostic is a lint finding. Syntax errors reported alongside lint
// findings have an empty Rule.
type Diagnostic struct {
	diagnostics.Diagnostic

	// Rule is the canonical name of the rule (e.g., "no-debugger").
	Rule string

	// Group is the rule category (e.g., "suspicious").
	Group string

	// Fix is the proposed change, if any.
	Fix *Fix
}

// Fix is a single-edit fix attached to a diagnostic.
type Fix struct {
	// Message describes the change, e.g. "Replace == with ===".
	Message string
	Edit    fix.Edit
}

// HasFix returns true if this diagnostic has an associated fix.
func (d *Diagnostic) HasFix() bool {
	return d.Fix != nil
}

// IsSyntaxError reports whether the diagnostic came from the parser.
func (d *Diagnostic) IsSyntaxError() bool {
	return d.Rule == ""
}

// Code returns the diagnostic code of a rule, "lint/<group>/<name>".
func Code(group, name string) string {
	if group == "" {
		return "lint/" + name
	}
	return "lint/" + group + "/" + name
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// Name returns the unique, kebab-case name of the rule.
	Name() string

	// Group returns the category of the rule (e.g., "suspicious", "style").
	Group() string

	// Description returns a one-line description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() diagnostics.Severity

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Kinds returns the node kinds the rule wants to visit.
	Kinds() []syntax.Kind

	// Check inspects one node of a subscribed kind and reports findings
	// through ctx. Rules must not retain node beyond the call.
	Check(ctx *RuleContext, node *syntax.Node)
}
