package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/embedded"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
)

// Processor runs the work of a run on single files. It is safe for
// concurrent use and is shared by the runner, stdin handling and the
// language server.
type Processor struct {
	pipeline *lint.Pipeline
	resolver *config.Resolver
	cfg      *config.Config
	opts     Options
	workDir  string
	root     string
}

// NewProcessor prepares per-file processing for opts.
func NewProcessor(pipeline *lint.Pipeline, opts Options) (*Processor, error) {
	cfg := opts.config()
	resolver, err := config.NewResolver(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve settings: %w", err)
	}
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	root := workDir
	if opts.Root != "" {
		if root, err = filepath.Abs(opts.Root); err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
	}
	return &Processor{
		pipeline: pipeline,
		resolver: resolver,
		cfg:      cfg,
		opts:     opts,
		workDir:  workDir,
		root:     root,
	}, nil
}

// DisplayPath returns path relative to the working directory when it lies
// inside it.
func (p *Processor) DisplayPath(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(p.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// ProcessFile reads, processes and, when the configuration asks for it,
// rewrites one file.
func (p *Processor) ProcessFile(ctx context.Context, path string) FileOutcome {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, DisplayPath: p.DisplayPath(path), Error: err}
	}

	outcome := p.Process(ctx, path, content, langdetect.Unknown)
	if outcome.Error != nil || !outcome.Changed || p.opts.DryRun {
		return outcome
	}

	backup := p.cfg.BackupsEnabled()
	written, err := fsutil.Commit(ctx, snap, content, outcome.Output, fsutil.CommitOptions{
		Backup: backup,
		Force:  p.opts.Force,
	})
	switch {
	case errors.Is(err, fsutil.ErrChangedOnDisk):
		outcome.Skipped = true
		outcome.SkipReason = "file modified during processing"
	case err != nil:
		outcome.Error = fmt.Errorf("%w: %w", lint.ErrWriteFailure, err)
	default:
		outcome.Written = written
		outcome.BackupCreated = written && backup
	}
	return outcome
}

// Process runs the configured work on content without touching the disk.
// path may be empty for stdin, in which case lang or the content decides
// the language.
func (p *Processor) Process(ctx context.Context, path string, content []byte, lang langdetect.Language) FileOutcome {
	display := p.DisplayPath(path)
	outcome := FileOutcome{Path: path, DisplayPath: display, Output: content, Source: content}
	if lang == langdetect.Unknown {
		lang = langdetect.Detect(path, content)
	}
	outcome.Language = lang

	settings, err := p.resolver.For(p.rel(path))
	if err != nil {
		outcome.Error = err
		return outcome
	}

	mode := p.opts.mode()
	if lang.IsMarkdown() {
		proposed := content
		if mode.Formats() && settings.FormatEnabled {
			proposed = p.formatMarkdown(&outcome, content, settings)
		}
		p.finish(ctx, &outcome, content, proposed)
		return outcome
	}

	current := content
	if mode.Lints() {
		popts := lint.PipelineOptionsFromConfig(p.cfg)
		popts.Rules = settings.Rules
		popts.Language = lang
		pr, err := p.pipeline.ProcessContent(ctx, display, content, p.cfg, popts)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Lint = pr
		outcome.Diagnostics = pr.Diagnostics
		if pr.Skipped {
			outcome.Skipped = true
			outcome.SkipReason = pr.SkipReason
		}
		if pr.Modified {
			current = pr.ModifiedContent
			outcome.Source = current
			outcome.Fixed = true
		}
	}

	proposed := current
	if mode.Formats() && settings.FormatEnabled {
		doc, err := document.Parse(display, string(current), lang)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if !mode.Lints() {
			outcome.Diagnostics = syntaxDiagnostics(doc)
		}
		printed, err := document.Format(doc, settings)
		switch {
		case errors.Is(err, document.ErrSyntax):
			outcome.FormatError = err
		case err != nil:
			outcome.Error = err
			return outcome
		default:
			outcome.Checked = true
			outcome.Unformatted = printed.Code != string(current)
			proposed = []byte(printed.Code)
			if p.cfg.Write {
				current = proposed
			}
		}
	}

	outcome.Output = current
	p.finish(ctx, &outcome, content, proposed)
	return outcome
}

// formatMarkdown formats the code blocks of a Markdown file and returns
// the proposed content.
func (p *Processor) formatMarkdown(outcome *FileOutcome, content []byte, settings config.Settings) []byte {
	result, err := embedded.Format(outcome.DisplayPath, content, settings)
	if err != nil {
		outcome.Error = err
		return content
	}
	outcome.Checked = true
	outcome.Unformatted = !bytes.Equal(result.Output, content)
	for _, diag := range result.Diagnostics {
		outcome.Diagnostics = append(outcome.Diagnostics, lint.Diagnostic{Diagnostic: diag})
	}
	if p.cfg.Write {
		outcome.Output = result.Output
	}
	return result.Output
}

// finish records whether anything changed and the diff of proposed.
func (p *Processor) finish(ctx context.Context, outcome *FileOutcome, content, proposed []byte) {
	outcome.Changed = !bytes.Equal(outcome.Output, content)
	if p.opts.Diff {
		if diff := fix.Unified(outcome.DisplayPath, string(content), string(proposed)); diff.HasChanges() {
			outcome.Diff = diff
		}
	}
	logging.FromContext(ctx).Debug("processed file",
		logging.FieldPath, outcome.DisplayPath,
		logging.FieldLanguage, outcome.Language,
		logging.FieldCount, len(outcome.Diagnostics),
		"unformatted", outcome.Unformatted,
		"changed", outcome.Changed)
}

// rel returns path relative to the project root for override matching.
func (p *Processor) rel(path string) string {
	if path == "" {
		return ""
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(p.workDir, abs)
	}
	rel, err := filepath.Rel(p.root, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// syntaxDiagnostics wraps the parse errors of doc for reporting.
func syntaxDiagnostics(doc *document.Document) []lint.Diagnostic {
	if len(doc.Diagnostics) == 0 {
		return nil
	}
	diags := make([]lint.Diagnostic, len(doc.Diagnostics))
	for i, diag := range doc.Diagnostics {
		diags[i] = lint.Diagnostic{Diagnostic: diag}
	}
	return diags
}

// IsNotExist reports whether err means the file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
