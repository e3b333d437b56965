package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/lint"
)

// Runner formats and lints many files concurrently.
type Runner struct {
	// Pipeline handles per-file linting and fixing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// NewDefault creates a Runner over the built-in rules.
func NewDefault() *Runner {
	return New(lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry)))
}

// Run discovers files under opts.Paths and processes them on a bounded
// worker pool. Outcomes are returned in path order whatever order the
// workers finish in. Per-file failures are recorded in the outcomes; the
// returned error is reserved for discovery, configuration and
// cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	proc, err := NewProcessor(r.Pipeline, opts)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	scheduled := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		scheduled[i] = true
		group.Go(func() error {
			outcomes[i] = proc.ProcessFile(ctx, path)
			return nil
		})
	}
	_ = group.Wait()

	for i := range outcomes {
		if scheduled[i] {
			result.accumulate(outcomes[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesUnformatted, result.Stats.FilesUnformatted,
		logging.FieldJobs, jobs,
		logging.FieldDuration, time.Since(start))

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
