package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

type disabledRule struct {
	*nodeRule
}

func (disabledRule) DefaultEnabled() bool { return false }

func resolveRegistry() *lint.Registry {
	registry := newRegistry(
		newNodeRule("plain", diagnostics.SeverityError, syntax.NodeDebuggerStatement),
		newFixRule("fixable", syntax.NodeDebuggerStatement, "x;"),
		disabledRule{newNodeRule("opt-in", diagnostics.SeverityInfo, syntax.NodeDebuggerStatement)},
	)
	registry.RegisterAlias("legacy-plain", "plain")
	return registry
}

func resolvedByName(resolved []lint.ResolvedRule) map[string]lint.ResolvedRule {
	result := make(map[string]lint.ResolvedRule, len(resolved))
	for _, rr := range resolved {
		result[rr.Rule.Name()] = rr
	}
	return result
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		configure   func(cfg *config.Config)
		wantEnabled []string
		wantFix     []string
	}{
		{
			name:        "defaults",
			configure:   func(*config.Config) {},
			wantEnabled: []string{"fixable", "plain"},
		},
		{
			name:        "fix mode",
			configure:   func(cfg *config.Config) { cfg.Fix = true },
			wantEnabled: []string{"fixable", "plain"},
			wantFix:     []string{"fixable"},
		},
		{
			name: "rule config disables",
			configure: func(cfg *config.Config) {
				cfg.Rules["plain"] = config.RuleConfig{Enabled: config.Ptr(false)}
			},
			wantEnabled: []string{"fixable"},
		},
		{
			name: "alias in rule config",
			configure: func(cfg *config.Config) {
				cfg.Rules["legacy-plain"] = config.RuleConfig{Enabled: config.Ptr(false)}
			},
			wantEnabled: []string{"fixable"},
		},
		{
			name: "rule config enables",
			configure: func(cfg *config.Config) {
				cfg.Rules["opt-in"] = config.RuleConfig{Enabled: config.Ptr(true)}
			},
			wantEnabled: []string{"fixable", "opt-in", "plain"},
		},
		{
			name: "rule config turns fixing off",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.Rules["fixable"] = config.RuleConfig{Fix: config.Ptr(false)}
			},
			wantEnabled: []string{"fixable", "plain"},
		},
		{
			name: "enable and disable flags",
			configure: func(cfg *config.Config) {
				cfg.EnableRules = []string{"opt-in"}
				cfg.DisableRules = []string{"test/fixable"}
			},
			wantEnabled: []string{"opt-in", "plain"},
		},
		{
			name: "only rules",
			configure: func(cfg *config.Config) {
				cfg.Rules["plain"] = config.RuleConfig{Enabled: config.Ptr(false)}
				cfg.OnlyRules = []string{"legacy-plain", "opt-in"}
			},
			wantEnabled: []string{"opt-in", "plain"},
		},
		{
			name: "fix rules",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.FixRules = []string{"plain"}
			},
			wantEnabled: []string{"fixable", "plain"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.configure(cfg)

			var enabled, fixing []string
			for _, rr := range lint.ResolveRules(resolveRegistry(), cfg, nil) {
				require.True(t, rr.Enabled)
				enabled = append(enabled, rr.Rule.Name())
				if rr.AutoFix {
					fixing = append(fixing, rr.Rule.Name())
				}
			}
			assert.Equal(t, testCase.wantEnabled, enabled)
			assert.Equal(t, testCase.wantFix, fixing)
		})
	}
}

func TestResolveRules_Severity(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SeverityDefault = "info"
	cfg.Rules["plain"] = config.RuleConfig{Severity: config.Ptr("error")}
	cfg.Rules["fixable"] = config.RuleConfig{Severity: config.Ptr("bogus")}

	byName := resolvedByName(lint.ResolveRules(resolveRegistry(), cfg, nil))
	assert.Equal(t, diagnostics.SeverityError, byName["plain"].Severity)
	assert.Equal(t, diagnostics.SeverityInfo, byName["fixable"].Severity, "invalid severities keep the default")
}

func TestResolveRules_PerFileRules(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["plain"] = config.RuleConfig{Enabled: config.Ptr(false)}

	perFile := map[string]config.RuleConfig{
		"plain": {Options: map[string]any{"limit": 3}},
	}
	byName := resolvedByName(lint.ResolveRules(resolveRegistry(), cfg, perFile))

	require.Contains(t, byName, "plain", "per-file rules replace the config rules")
	require.NotNil(t, byName["plain"].Config)
	assert.Equal(t, 3, byName["plain"].Config.Options["limit"])
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	byName := resolvedByName(lint.ResolveRules(resolveRegistry(), nil, nil))
	assert.Len(t, byName, 2)
	assert.True(t, byName["fixable"].AutoFix)
}
