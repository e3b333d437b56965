package configloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
)

func envLookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, envLookup(map[string]string{
		"QUILL_SEVERITY_DEFAULT": "info",
		"QUILL_FIX":              "true",
		"QUILL_JOBS":             "4",
		"QUILL_OUTPUT_FORMAT":    "sarif",
		"QUILL_BACKUPS_ENABLED":  "0",
		"QUILL_IGNORE":           " dist/** , ,*.min.js ",
		"QUILL_INDENT_STYLE":     "space",
		"QUILL_LINE_WIDTH":       "120",
		"QUILL_QUOTE_STYLE":      "single",
		"QUILL_SEMICOLONS":       "as-needed",
		"OTHER_FIX":              "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.SeverityDefault)
	assert.True(t, cfg.Fix)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, config.OutputFormat("sarif"), cfg.OutputFormat)
	assert.False(t, *cfg.Backups.Enabled)
	assert.Equal(t, []string{"dist/**", "*.min.js"}, cfg.Ignore)
	assert.Equal(t, "space", *cfg.Format.IndentStyle)
	assert.Equal(t, 120, *cfg.Format.LineWidth)
	assert.Nil(t, cfg.Format.IndentWidth)
	assert.Equal(t, "single", *cfg.JavaScript.QuoteStyle)
	assert.Equal(t, "as-needed", *cfg.JavaScript.Semicolons)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bool", env: map[string]string{"QUILL_FIX": "maybe"}, wantErr: "QUILL_FIX: expected true or false"},
		{name: "int", env: map[string]string{"QUILL_JOBS": "many"}, wantErr: "QUILL_JOBS: expected an integer"},
		{name: "width", env: map[string]string{"QUILL_LINE_WIDTH": "8o"}, wantErr: "QUILL_LINE_WIDTH"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := loadFromEnv(config.NewConfig(), envLookup(testCase.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantErr)
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	t.Parallel()

	assert.NoError(t, loadFromEnv(nil, envLookup(map[string]string{"QUILL_FIX": "true"})))
}

func TestParseSliceValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "a", want: []string{"a"}},
		{name: "trimmed", input: " a , b ", want: []string{"a", "b"}},
		{name: "blank entries", input: ",a,,", want: []string{"a"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, splitList(testCase.input))
		})
	}
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	vars := EnvVars()
	require.NotEmpty(t, vars)
	names := make(map[string]bool, len(vars))
	for _, env := range vars {
		assert.True(t, strings.HasPrefix(env.Name, EnvPrefix), env.Name)
		assert.NotEmpty(t, env.Description, env.Name)
		assert.False(t, names[env.Name], "duplicate %s", env.Name)
		names[env.Name] = true
	}
	assert.True(t, names["QUILL_LINE_WIDTH"])

	// The package table keeps its short names.
	assert.Equal(t, "FIX", envVars[1].Name)
}
