package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/diagnostics"
)

func TestPlainStylesLeaveTextAlone(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for name, style := range map[string]lipgloss.Style{
		"error":   styles.Error,
		"caret":   styles.Caret,
		"diffAdd": styles.DiffAdd,
		"success": styles.Success,
		"bold":    styles.Bold,
	} {
		assert.Equal(t, "const x = 1;", style.Render("const x = 1;"), name)
	}
}

func TestColorStylesKeepText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for _, style := range []lipgloss.Style{
		styles.Error, styles.Warning, styles.Info, styles.FilePath, styles.RuleID,
		styles.Gutter, styles.SecondaryLabels, styles.DiffHunk, styles.SummaryValue, styles.Dim,
	} {
		assert.Contains(t, style.Render("quill"), "quill")
	}
}

func TestSeverityStyle(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	tests := []struct {
		name     string
		severity diagnostics.Severity
		want     lipgloss.Style
	}{
		{name: "error", severity: diagnostics.SeverityError, want: styles.Error},
		{name: "warning", severity: diagnostics.SeverityWarning, want: styles.Warning},
		{name: "info", severity: diagnostics.SeverityInfo, want: styles.Info},
		{name: "unset", severity: "", want: styles.Warning},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := styles.SeverityStyle(testCase.severity)
			assert.Equal(t, testCase.want.Render("x"), got.Render("x"))
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(diagnostics.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(diagnostics.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(diagnostics.SeverityInfo))
	assert.Equal(t, "warning", styles.FormatSeverity(""))
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode string
		want bool
	}{
		{mode: pretty.ColorAlways, want: true},
		{mode: pretty.ColorNever, want: false},
		{mode: pretty.ColorAuto, want: false},
		{mode: "", want: false},
		{mode: "sometimes", want: false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, pretty.IsColorEnabled(testCase.mode, &buf), "mode %q", testCase.mode)
	}
}

func TestIsColorEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, os.Stdout))
}

func TestTerminalFallbacks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.False(t, pretty.IsTerminal(&buf))
	assert.False(t, pretty.IsTerminal("stdout"))
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
