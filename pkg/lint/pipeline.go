package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/langdetect"
)

// DefaultMaxFixPasses bounds the fix loop. Rules whose fixes keep
// producing new findings for each other stop here.
const DefaultMaxFixPasses = 10

var (
	// ErrParseFailure means the source could not be handed to a parser.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure marks a fixed file that could not be written back.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult is the outcome of linting, and possibly fixing, one source.
// The embedded FileResult always describes the final text.
type PipelineResult struct {
	*FileResult

	Path string

	// Modified reports that fixes changed the text; ModifiedContent holds it.
	Modified        bool
	ModifiedContent []byte

	// Skipped is set when fixes were computed but thrown away.
	Skipped    bool
	SkipReason string

	FixPasses         int
	TotalEditsApplied int
}

// PipelineOptions controls one pipeline run.
type PipelineOptions struct {
	Fix bool

	// MaxFixPasses of 0 means DefaultMaxFixPasses.
	MaxFixPasses int

	// Rules are the per-file rule settings; nil means the config's rules.
	Rules map[string]config.RuleConfig

	// Language overrides detection from the path, e.g. for stdin.
	Language langdetect.Language
}

// PipelineOptionsFromConfig reads the fix switch from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := PipelineOptions{MaxFixPasses: DefaultMaxFixPasses}
	if cfg != nil {
		opts.Fix = cfg.Fix
	}
	return opts
}

// Pipeline lints a source and, in fix mode, applies the fixes until the
// text stops changing.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessContent runs the pipeline over content. Nothing is written; the
// caller commits ModifiedContent.
//
// Each pass parses the current text, lints it and applies the fixable
// edits. The loop ends when a pass yields no edits, the edits leave the
// text unchanged, or the pass limit is hit. Fixes that turn a clean parse
// into one with syntax errors are discarded.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}
	limit := opts.MaxFixPasses
	if limit <= 0 {
		limit = DefaultMaxFixPasses
	}

	cfg = withFix(cfg, opts.Fix)
	text := string(content)
	var startedBroken bool
	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		doc, err := document.Parse(path, text, opts.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		if pass == 0 {
			startedBroken = doc.HasErrors()
		}

		lintResult, err := p.Engine.LintFile(ctx, doc, cfg, opts.Rules)
		if err != nil {
			return nil, err
		}
		result.FileResult = lintResult

		if !opts.Fix || len(lintResult.Edits) == 0 || pass == limit {
			break
		}
		next, applied, err := fix.Apply(text, lintResult.Edits)
		if err != nil {
			return nil, fmt.Errorf("apply fixes: %w", err)
		}
		if next == text {
			break
		}
		text = next
		result.FixPasses++
		result.TotalEditsApplied += applied.Applied
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}
	if result.Document.HasErrors() && !startedBroken {
		result.Modified = false
		result.Skipped = true
		result.SkipReason = "fixes introduced syntax errors"
		return result, nil
	}
	result.ModifiedContent = []byte(text)
	return result, nil
}

// withFix returns cfg with its fix switch set to enabled. Rule resolution
// only collects fix edits when the switch is on.
func withFix(cfg *config.Config, enabled bool) *config.Config {
	if cfg == nil || cfg.Fix == enabled {
		return cfg
	}
	clone := *cfg
	clone.Fix = enabled
	return &clone
}
