// Package reporter writes the results of a run as text, JSON or SARIF.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// analysisOptions returns the analysis settings shared by the reporters.
func analysisOptions(opts Options) analysis.Options {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.RuleFormat = opts.RuleFormat
	analysisOpts.Sort = opts.SummarySort
	return analysisOpts
}
