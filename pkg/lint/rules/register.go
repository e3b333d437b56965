package rules

import (
	"github.com/samber/lo"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint"
)

// Rule groups.
const (
	GroupSuspicious = "suspicious"
	GroupStyle      = "style"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Suspicious rules
	registry.Register(NewNoDebuggerRule())
	registry.Register(NewNoCompareNegZeroRule())
	registry.Register(NewNoDoubleEqualsRule())
	registry.Register(NewNoEmptyBlockRule())

	// Style rules
	registry.Register(NewNoVarRule())
}

// ESLintAliases maps ESLint rule names to the built-in rules.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ESLintAliases = map[string]string{
	"no-debugger":         "no-debugger",
	"no-compare-neg-zero": "no-compare-neg-zero",
	"eqeqeq":              "no-double-equals",
	"no-empty":            "no-empty-block",
	"no-var":              "no-var",
}

// RegisterAliases registers ESLint and Biome rule names that differ from
// the canonical names.
func RegisterAliases(registry *lint.Registry) {
	for alias, name := range ESLintAliases {
		if alias != name {
			registry.RegisterAlias(alias, name)
		}
	}
	registry.RegisterAlias("noDebugger", "no-debugger")
	registry.RegisterAlias("noCompareNegZero", "no-compare-neg-zero")
	registry.RegisterAlias("noDoubleEquals", "no-double-equals")
	registry.RegisterAlias("noEmptyBlockStatements", "no-empty-block")
	registry.RegisterAlias("noVar", "no-var")
}

// RuleInfos describes the rules of registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	return lo.Map(registry.Rules(), func(rule lint.Rule, _ int) config.RuleInfo {
		return config.RuleInfo{
			Name:        rule.Name(),
			Group:       rule.Group(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    string(rule.DefaultSeverity()),
			CanFix:      rule.CanFix(),
		}
	})
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
