package lint

import (
	"context"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/syntax"
)

// RuleContext provides all context needed by a rule to perform linting.
// One RuleContext is created per rule and file and reused for every node
// the rule visits.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing it
// to Check, because it is a short-lived parameter object.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Doc is the file being linted.
	Doc *document.Document

	// Root is the syntax tree root (convenience alias for Doc.Root).
	Root *syntax.Node

	// Rule is the rule being run.
	Rule Rule

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	severity    diagnostics.Severity
	diagnostics []Diagnostic
}

// NewRuleContext creates a RuleContext for running rule over doc.
func NewRuleContext(
	ctx context.Context,
	doc *document.Document,
	rule Rule,
	ruleCfg *config.RuleConfig,
	severity diagnostics.Severity,
) *RuleContext {
	var root *syntax.Node
	if doc != nil {
		root = doc.Root
	}
	if severity == "" {
		severity = rule.DefaultSeverity()
	}

	return &RuleContext{
		Ctx:        ctx,
		Doc:        doc,
		Root:       root,
		Rule:       rule,
		RuleConfig: ruleCfg,
		severity:   severity,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Report records a finding. The rule name, group, code, resolved severity
// and locus are filled in here.
func (rc *RuleContext) Report(builder *DiagnosticBuilder) {
	diag := builder.Build()
	diag.Rule = rc.Rule.Name()
	diag.Group = rc.Rule.Group()
	diag.Code = Code(diag.Group, diag.Rule)
	diag.Severity = rc.severity
	if rc.Doc != nil {
		diag.Locus.Path = rc.Doc.Path
		diag.Locus.Position = rc.Doc.Lines().Position(diag.Primary.Range.Start)
	}
	rc.diagnostics = append(rc.diagnostics, diag)
}

// Diagnostics returns the findings reported so far.
func (rc *RuleContext) Diagnostics() []Diagnostic {
	return rc.diagnostics
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML/TOML parsing
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
