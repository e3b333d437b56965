package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2026-01-01",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	require.NotNil(t, cmd)
	assert.Equal(t, "quill", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "lint", "check", "parse", "rules", "init", "migrate", "lsp", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "lint",
			flags: []string{
				"fix", "rule", "enable", "disable", "fix-rules", "jobs", "ignore", "dry-run", "force",
				"no-backups", "follow-symlinks", "stdin-filepath", "format", "rule-format", "no-context",
				"compact", "summary", "summary-order", "summary-sort", "quiet", "strict",
			},
		},
		{
			command: "format",
			flags:   []string{"write", "check", "diff", "watch", "debounce", "stdin-filepath", "format", "quiet"},
		},
		{
			command: "check",
			flags:   []string{"write", "fix", "rule", "disable", "stdin-filepath", "format", "strict"},
		},
		{command: "parse", flags: []string{"format", "language"}},
		{command: "rules", flags: []string{"format", "rule-format", "group"}},
		{command: "init", flags: []string{"force", "full", "format", "output"}},
		{command: "migrate", flags: []string{"force", "output"}},
		{command: "version", flags: []string{"check"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			subCmd, _, err := cmd.Find([]string{testCase.command})
			require.NoError(t, err)

			for _, name := range testCase.flags {
				assert.NotNil(t, subCmd.Flags().Lookup(name), "flag --%s", name)
			}
		})
	}
}

func TestFlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	assert.Equal(t, "name", lintCmd.Flags().Lookup("rule-format").DefValue)
	assert.Equal(t, "rules", lintCmd.Flags().Lookup("summary-order").DefValue)
	assert.Equal(t, "text", lintCmd.Flags().Lookup("format").DefValue)
	assert.Contains(t, lintCmd.Flags().Lookup("format").Usage, "sarif")

	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)
	assert.Equal(t, "w", formatCmd.Flags().Lookup("write").Shorthand)
	assert.Equal(t, "200ms", formatCmd.Flags().Lookup("debounce").DefValue)
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag --%s", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.Equal(t, cli.ExitSuccess, cli.Execute(context.Background(), cmd))
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
	assert.Contains(t, out.String(), "2026-01-01")
}

func TestCommandsAcceptArbitraryPaths(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"lint", "format", "check"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.NoError(t, subCmd.Args(subCmd, []string{"a.ts", "b.json", "src/"}), name)
	}
}

func TestHelpListsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--color", "never", "--help"})

	require.Equal(t, cli.ExitSuccess, cli.Execute(context.Background(), cmd))
	help := out.String()
	assert.Contains(t, help, "Exit Codes:")
	assert.Contains(t, help, "invalid command-line usage")
	assert.Contains(t, help, "Environment:")
	assert.Contains(t, help, "QUILL_LINE_WIDTH")
	assert.Contains(t, help, "QUILL_LOG_LEVEL")
	assert.Contains(t, help, "format")
	assert.Contains(t, help, "--config")
	assert.NotContains(t, help, "\x1b[")
}

func TestSubcommandHelpOmitsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"format", "--help"})

	require.Equal(t, cli.ExitSuccess, cli.Execute(context.Background(), cmd))
	assert.Contains(t, out.String(), "--stdin-filepath")
	assert.NotContains(t, out.String(), "Exit Codes:")
	assert.NotContains(t, out.String(), "Environment:")
}
