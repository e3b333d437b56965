package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	_ "github.com/yaklabco/quill/pkg/lint/rules"
	"github.com/yaklabco/quill/pkg/runner"
)

func run(t *testing.T, dir string, opts runner.Options) *runner.Result {
	t.Helper()

	opts.WorkingDir = dir
	if opts.Config == nil {
		opts.Config = config.NewConfig()
	}
	result, err := runner.NewDefault().Run(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func ruleNames(diags []lint.Diagnostic) []string {
	names := make([]string, 0, len(diags))
	for _, diag := range diags {
		names = append(names, diag.Rule)
	}
	return names
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result := run(t, t.TempDir(), runner.Options{})
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRun_Lint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.js":   "debugger;\nif (a == b) {}\n",
		"src/b.js":   "let ok = 1;\n",
		"src/c.json": "{\"a\": 1}\n",
	})

	result := run(t, dir, runner.Options{Mode: runner.ModeLint})
	require.Len(t, result.Files, 3)

	first := result.Files[0]
	assert.Equal(t, filepath.Join("src", "a.js"), first.DisplayPath)
	assert.Equal(t, langdetect.JavaScript, first.Language)
	assert.Equal(t, []string{"no-debugger", "no-double-equals", "no-empty-block"}, ruleNames(first.Diagnostics))
	assert.Equal(t, filepath.Join("src", "a.js"), first.Diagnostics[0].Locus.Path)
	assert.False(t, first.Checked)
	assert.False(t, first.Written)

	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesWithIssues)
	assert.Equal(t, 3, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 2, result.Stats.DiagnosticsFixable)
	assert.Equal(t, 2, result.Stats.DiagnosticsBySeverity[diagnostics.SeverityError])
	assert.Equal(t, 1, result.Stats.DiagnosticsBySeverity[diagnostics.SeverityWarning])
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.False(t, result.HasUnformatted())
	assert.Len(t, result.AllDiagnostics(), 3)
	assert.Equal(t, "debugger;\nif (a == b) {}\n", readFile(t, filepath.Join(dir, "src", "a.js")))
}

func TestRun_LintFix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFiles(t, dir, map[string]string{"a.js": "debugger;\nif (a == b) {}\n"})

	cfg := config.NewConfig()
	cfg.Fix = true
	result := run(t, dir, runner.Options{Mode: runner.ModeLint, Config: cfg})
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.True(t, outcome.Fixed)
	assert.True(t, outcome.Written)
	assert.False(t, outcome.BackupCreated)
	assert.Equal(t, []string{"no-empty-block"}, ruleNames(outcome.Diagnostics))
	assert.Equal(t, "if (a === b) {}\n", readFile(t, path))
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 2, result.Stats.DiagnosticsFixed)
}

func TestRun_LintFixWithBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFiles(t, dir, map[string]string{"a.js": "a == b;\n"})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Backups.Enabled = config.Ptr(true)
	result := run(t, dir, runner.Options{Mode: runner.ModeLint, Config: cfg})

	assert.True(t, result.Files[0].BackupCreated)
	assert.Equal(t, "a === b;\n", readFile(t, path))
	assert.Equal(t, "a == b;\n", readFile(t, fsutil.BackupPath(path)))
}

func TestRun_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		write           bool
		diff            bool
		dryRun          bool
		wantContent     string
		wantWritten     bool
		wantUnformatted bool
	}{
		{name: "check", wantContent: "let   a=1\n", wantUnformatted: true},
		{name: "write", write: true, wantContent: "let a = 1;\n", wantWritten: true, wantUnformatted: true},
		{name: "diff", diff: true, wantContent: "let   a=1\n", wantUnformatted: true},
		{name: "dry run", write: true, dryRun: true, wantContent: "let   a=1\n", wantUnformatted: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "a.ts")
			writeFiles(t, dir, map[string]string{"a.ts": "let   a=1\n"})

			cfg := config.NewConfig()
			cfg.Write = testCase.write
			result := run(t, dir, runner.Options{
				Mode:   runner.ModeFormat,
				Diff:   testCase.diff,
				DryRun: testCase.dryRun,
				Config: cfg,
			})
			require.Len(t, result.Files, 1)

			outcome := result.Files[0]
			assert.True(t, outcome.Checked)
			assert.Nil(t, outcome.Lint)
			assert.Equal(t, testCase.wantUnformatted, outcome.Unformatted)
			assert.Equal(t, testCase.wantWritten, outcome.Written)
			assert.Equal(t, testCase.wantContent, readFile(t, path))
			assert.Equal(t, testCase.wantUnformatted && !testCase.wantWritten, result.HasUnformatted())
			assert.Equal(t, 1, result.Stats.FilesUnformatted)
			assert.Equal(t, testCase.wantWritten, result.Stats.FilesFormatted == 1)
			if testCase.diff {
				require.NotNil(t, outcome.Diff)
				assert.Contains(t, outcome.Diff.String(), "-let   a=1")
				assert.Contains(t, outcome.Diff.String(), "+let a = 1;")
			} else {
				assert.Nil(t, outcome.Diff)
			}
		})
	}
}

func TestRun_FormattedFileIsClean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "let a = 1;\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	result := run(t, dir, runner.Options{Mode: runner.ModeFormat, Diff: true, Config: cfg})

	outcome := result.Files[0]
	assert.True(t, outcome.Checked)
	assert.False(t, outcome.Unformatted)
	assert.False(t, outcome.Changed)
	assert.False(t, outcome.Written)
	assert.Nil(t, outcome.Diff)
}

func TestRun_CheckFixesThenFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFiles(t, dir, map[string]string{"a.js": "var x=1\n"})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Write = true
	result := run(t, dir, runner.Options{Config: cfg})

	outcome := result.Files[0]
	assert.True(t, outcome.Fixed)
	assert.True(t, outcome.Checked)
	assert.True(t, outcome.Written)
	assert.Empty(t, outcome.Diagnostics)
	assert.Equal(t, "let x = 1;\n", readFile(t, path))
}

func TestRun_SyntaxErrorsBlockFormatting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFiles(t, dir, map[string]string{"a.js": "let   = ;\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	result := run(t, dir, runner.Options{Mode: runner.ModeFormat, Config: cfg})

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	require.ErrorIs(t, outcome.FormatError, document.ErrSyntax)
	assert.False(t, outcome.Checked)
	assert.NotEmpty(t, outcome.Diagnostics)
	assert.True(t, outcome.Diagnostics[0].IsSyntaxError())
	assert.Equal(t, "let   = ;\n", readFile(t, path))
	assert.True(t, result.HasErrors())
}

func TestRun_Overrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.js":    "var a = 1;\n",
		"legacy/b.js": "var b = 1;\n",
		"data.json":   "{\"a\":1}\n",
	})

	cfg := config.NewConfig()
	cfg.Overrides = []config.Override{
		{
			Include: []string{"legacy/**"},
			Rules:   map[string]config.RuleConfig{"no-var": {Enabled: config.Ptr(false)}},
		},
		{
			Include: []string{"*.json"},
			Format:  config.FormatConfig{Enabled: config.Ptr(false)},
		},
	}
	result := run(t, dir, runner.Options{Config: cfg})
	require.Len(t, result.Files, 3)

	byPath := make(map[string]runner.FileOutcome)
	for _, outcome := range result.Files {
		byPath[filepath.ToSlash(outcome.DisplayPath)] = outcome
	}
	assert.Equal(t, []string{"no-var"}, ruleNames(byPath["src/a.js"].Diagnostics))
	assert.Empty(t, byPath["legacy/b.js"].Diagnostics)
	assert.True(t, byPath["src/a.js"].Checked)
	assert.False(t, byPath["data.json"].Checked)
	assert.False(t, byPath["data.json"].Unformatted)
}

func TestRun_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	writeFiles(t, dir, map[string]string{"README.md": "# Demo\n\n```js\nconst o = {a:1}\n```\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	result := run(t, dir, runner.Options{Mode: runner.ModeFormat, Config: cfg})
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.Equal(t, langdetect.Markdown, outcome.Language)
	assert.True(t, outcome.Unformatted)
	assert.True(t, outcome.Written)
	assert.Equal(t, "# Demo\n\n```js\nconst o = { a: 1 };\n```\n", readFile(t, path))
}

func TestRun_SerialAndParallelAgree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".js"] = "if (" + name + " == 1) { debugger; }\n"
	}
	writeFiles(t, dir, files)

	serial := run(t, dir, runner.Options{Jobs: 1})
	parallel := run(t, dir, runner.Options{Jobs: 8})

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, ruleNames(serial.Files[i].Diagnostics), ruleNames(parallel.Files[i].Diagnostics))
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "a();\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.NewDefault().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	proc, err := runner.NewProcessor(runner.NewDefault().Pipeline, runner.Options{Config: cfg})
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		lang       langdetect.Language
		content    string
		wantOutput string
		wantRules  []string
	}{
		{
			name:       "stdin typescript",
			lang:       langdetect.TypeScript,
			content:    "let a:number=1",
			wantOutput: "let a: number = 1;\n",
			wantRules:  []string{},
		},
		{
			name:       "path decides the language",
			path:       "src/x.json",
			content:    "[1,2]",
			wantOutput: "[1, 2]\n",
			wantRules:  []string{},
		},
		{
			name:       "lint findings are reported",
			path:       "a.js",
			content:    "a == b;\n",
			wantOutput: "a == b;\n",
			wantRules:  []string{"no-double-equals"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			outcome := proc.Process(context.Background(), testCase.path, []byte(testCase.content), testCase.lang)
			require.NoError(t, outcome.Error)
			assert.Equal(t, testCase.wantOutput, string(outcome.Output))
			assert.Equal(t, testCase.wantRules, ruleNames(outcome.Diagnostics))
		})
	}
}

func TestProcessor_ProcessFileMissing(t *testing.T) {
	t.Parallel()

	proc, err := runner.NewProcessor(runner.NewDefault().Pipeline, runner.Options{})
	require.NoError(t, err)

	outcome := proc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "gone.js"))
	require.Error(t, outcome.Error)
	assert.True(t, runner.IsNotExist(outcome.Error))
}

func TestMode(t *testing.T) {
	t.Parallel()

	assert.True(t, runner.ModeCheck.Lints())
	assert.True(t, runner.ModeCheck.Formats())
	assert.False(t, runner.ModeLint.Formats())
	assert.False(t, runner.ModeFormat.Lints())
}
