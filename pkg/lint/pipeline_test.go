package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/syntax"
)

// chainPipeline rewrites `debugger` to `x` and then `x` to `y`, so fixing
// takes two passes.
func chainPipeline() *lint.Pipeline {
	return lint.NewPipeline(lint.NewEngine(newRegistry(
		newFixRule("debugger", syntax.NodeDebuggerStatement, "x;"),
		newFixRule("identifier", syntax.NodeIdentifierExpression, "y"),
	)))
}

func fixOptions() lint.PipelineOptions {
	return lint.PipelineOptions{Fix: true}
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		src           string
		fix           bool
		maxPasses     int
		wantModified  bool
		wantContent   string
		wantPasses    int
		wantDiagCount int
	}{
		{
			name:          "report only",
			src:           "debugger;\n",
			wantDiagCount: 1,
		},
		{
			name:        "clean",
			src:         "let a = 1;\n",
			fix:         true,
		},
		{
			name:          "multi pass",
			src:           "debugger;\n",
			fix:           true,
			wantModified:  true,
			wantContent:   "y;\n",
			wantPasses:    2,
			wantDiagCount: 1,
		},
		{
			name:          "pass limit",
			src:           "debugger;\n",
			fix:           true,
			maxPasses:     1,
			wantModified:  true,
			wantContent:   "x;\n",
			wantPasses:    1,
			wantDiagCount: 1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := lint.PipelineOptions{Fix: testCase.fix, MaxFixPasses: testCase.maxPasses}

			result, err := chainPipeline().ProcessContent(context.Background(), "a.js", []byte(testCase.src),
				config.NewConfig(), opts)
			require.NoError(t, err)

			assert.Equal(t, testCase.wantModified, result.Modified)
			assert.Equal(t, testCase.wantPasses, result.FixPasses)
			assert.False(t, result.Skipped)
			assert.Len(t, result.Diagnostics, testCase.wantDiagCount)
			if testCase.wantModified {
				assert.Equal(t, testCase.wantContent, string(result.ModifiedContent))
				assert.Equal(t, testCase.wantPasses, result.TotalEditsApplied)
			} else {
				assert.Nil(t, result.ModifiedContent)
			}
		})
	}
}

func TestPipeline_RefusesBrokenFixes(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(newRegistry(
		newFixRule("breaker", syntax.NodeDebuggerStatement, "let = ;"),
	)))

	result, err := pipeline.ProcessContent(context.Background(), "a.js", []byte("debugger;\n"),
		config.NewConfig(), fixOptions())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "fixes introduced syntax errors", result.SkipReason)
	assert.False(t, result.Modified)
	assert.Nil(t, result.ModifiedContent)
	assert.Equal(t, 1, result.FixPasses)
}

func TestPipeline_FixOptionOverridesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := chainPipeline().ProcessContent(context.Background(), "a.js", []byte("debugger;\n"),
		cfg, lint.PipelineOptions{})
	require.NoError(t, err)
	assert.False(t, result.Modified)
	assert.Nil(t, result.ModifiedContent)
	assert.True(t, cfg.Fix)

	cfg.Fix = false
	result, err = chainPipeline().ProcessContent(context.Background(), "a.js", []byte("debugger;\n"),
		cfg, fixOptions())
	require.NoError(t, err)
	assert.True(t, result.Modified)
	assert.Equal(t, "y;\n", string(result.ModifiedContent))
	assert.False(t, cfg.Fix)
}

func TestPipeline_LanguageOverride(t *testing.T) {
	t.Parallel()

	opts := lint.PipelineOptions{Language: langdetect.TypeScript}

	result, err := chainPipeline().ProcessContent(context.Background(), "", []byte("let a: number = 1;\n"),
		config.NewConfig(), opts)
	require.NoError(t, err)
	assert.False(t, result.Document.HasErrors())
	assert.Equal(t, langdetect.TypeScript, result.Document.Language)
}

func TestPipeline_ProcessContentCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chainPipeline().ProcessContent(ctx, "a.js", []byte("debugger;\n"), config.NewConfig(), fixOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lint.PipelineOptions{MaxFixPasses: lint.DefaultMaxFixPasses}, lint.PipelineOptionsFromConfig(nil))

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Fix)
	assert.Equal(t, lint.DefaultMaxFixPasses, opts.MaxFixPasses)
}
