package lint

import (
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity diagnostics.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// rules holds the per-file rule settings; when nil, cfg.Rules is used.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config, rules map[string]config.RuleConfig) []ResolvedRule {
	if cfg != nil && rules == nil {
		rules = cfg.Rules
	}
	canonical := canonicalRules(registry, rules)

	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg, canonical)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// canonicalRules re-keys rule settings by canonical rule name, so aliases
// and qualified names in config files work.
func canonicalRules(registry *Registry, rules map[string]config.RuleConfig) map[string]config.RuleConfig {
	if len(rules) == 0 {
		return nil
	}
	result := make(map[string]config.RuleConfig, len(rules))
	for key, ruleCfg := range rules {
		name := key
		if resolvedName, _, ok := registry.Resolve(key); ok {
			name = resolvedName
		}
		if existing, ok := result[name]; ok {
			ruleCfg = existing.Merge(ruleCfg)
		}
		result[name] = ruleCfg
	}
	return result
}

func matchesRule(registry *Registry, keys []string, rule Rule) bool {
	for _, key := range keys {
		if name, _, ok := registry.Resolve(key); ok && name == rule.Name() {
			return true
		}
	}
	return false
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config, rules map[string]config.RuleConfig) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		if severity, err := diagnostics.ParseSeverity(cfg.SeverityDefault); err == nil {
			rr.Severity = severity
		}
	}

	// Apply rule-specific config.
	if ruleCfg, ok := rules[rule.Name()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if severity, err := diagnostics.ParseSeverity(*ruleCfg.Severity); err == nil {
				rr.Severity = severity
			}
		}
		if ruleCfg.Fix != nil {
			rr.AutoFix = *ruleCfg.Fix && rule.CanFix()
		}
	}

	// Explicit enable/disable from the CLI wins over config files.
	if matchesRule(registry, cfg.EnableRules, rule) {
		rr.Enabled = true
	}
	if matchesRule(registry, cfg.DisableRules, rule) {
		rr.Enabled = false
	}
	if len(cfg.OnlyRules) > 0 {
		rr.Enabled = matchesRule(registry, cfg.OnlyRules, rule)
	}

	// Apply fix-rules filter from CLI.
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && matchesRule(registry, cfg.FixRules, rule)
	}

	// Disable auto-fix if --fix is not set.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
