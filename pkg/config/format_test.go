package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.RuleFormat
		group  string
		rule   string
		want   string
	}{
		{"name format", config.RuleFormatName, "suspicious", "no-debugger", "no-debugger"},
		{"qualified format", config.RuleFormatQualified, "suspicious", "no-debugger", "suspicious/no-debugger"},
		{"qualified without group", config.RuleFormatQualified, "", "no-debugger", "no-debugger"},
		{"default to name", config.RuleFormat(""), "style", "no-var", "no-var"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, config.FormatRuleID(testCase.format, testCase.group, testCase.rule))
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.OutputFormat)
	assert.NotNil(t, cfg.Rules)
	assert.False(t, cfg.BackupsEnabled())
	assert.True(t, cfg.Format.FormatEnabled())

	cfg.Backups.Enabled = config.Ptr(true)
	assert.True(t, cfg.BackupsEnabled())
	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())
}

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatSARIF.IsValid())
	assert.False(t, config.OutputFormat("table").IsValid())
}
