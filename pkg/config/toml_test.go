package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
)

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte(`
required_version = "^0.1"
ignore = ["dist/**"]

[format]
indent_style = "space"
indent_width = 4

[javascript]
quote_style = "single"

[rules.no-double-equals]
severity = "warning"
options = { ignore_null = true }

[[overrides]]
include = ["**/*.json"]
[overrides.json]
trailing_commas = true
`))
	require.NoError(t, err)
	assert.Equal(t, "^0.1", cfg.RequiredVersion)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, 4, *cfg.Format.IndentWidth)
	assert.Equal(t, "single", *cfg.JavaScript.QuoteStyle)
	require.Contains(t, cfg.Rules, "no-double-equals")
	assert.Equal(t, "warning", *cfg.Rules["no-double-equals"].Severity)
	assert.Equal(t, true, cfg.Rules["no-double-equals"].Options["ignore_null"])
	require.Len(t, cfg.Overrides, 1)
	assert.True(t, *cfg.Overrides[0].JSON.TrailingCommas)
}

func TestFromTOMLErrors(t *testing.T) {
	t.Parallel()

	_, err := config.FromTOML([]byte("[format]\nline_widht = 80\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format.line_widht")

	_, err = config.FromTOML([]byte("ignore = "))
	require.Error(t, err)
}

func TestToTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := &config.Config{
		Ignore: []string{"vendor/**"},
		Format: config.FormatConfig{LineWidth: config.Ptr(120)},
		Rules: map[string]config.RuleConfig{
			"no-var": {Enabled: config.Ptr(false)},
		},
	}

	data, err := original.ToTOML()
	require.NoError(t, err)

	back, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, original.Ignore, back.Ignore)
	assert.Equal(t, 120, *back.Format.LineWidth)
	assert.False(t, *back.Rules["no-var"].Enabled)
}
