package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts    Options
	styles  *pretty.Styles
	bw      *bufio.Writer
	summary *SummaryRenderer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	reporter := &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
	if opts.RuleSummary {
		summaryOpts := opts
		summaryOpts.Writer = reporter.bw
		reporter.summary = newSummaryRenderer(summaryOpts, reporter.styles, pretty.TerminalWidth(opts.Writer))
	}
	return reporter
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for i := range result.Files {
		total += r.reportFile(&result.Files[i])
	}

	if r.summary != nil {
		if err := r.summary.Render(ctx, analysis.Analyze(result, analysisOptions(r.opts))); err != nil {
			return total, err
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		writeDiffStat(r.bw, r.styles, result)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes the block of one file and returns the number of
// diagnostics written. Files with nothing to report print nothing.
func (r *TextReporter) reportFile(file *runner.FileOutcome) int {
	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n\n",
			r.styles.FilePath.Render(displayPath(file)),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	status := r.status(file)
	if len(file.Diagnostics) == 0 && status == "" && file.Diff == nil {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath(file), len(file.Diagnostics)))

	renderOpts := pretty.RenderOptions{
		Source:      string(file.Source),
		ShowContext: r.opts.ShowContext,
		RuleFormat:  r.opts.RuleFormat,
	}
	for i := range file.Diagnostics {
		fmt.Fprint(r.bw, r.styles.RenderLintDiagnostic(&file.Diagnostics[i], renderOpts))
	}

	if status != "" {
		fmt.Fprintln(r.bw, "  "+status)
	}
	if file.Diff != nil {
		fmt.Fprintln(r.bw)
		writeDiff(r.bw, r.styles, file.Diff)
	}

	// Blank line between files
	fmt.Fprintln(r.bw)
	return len(file.Diagnostics)
}

// status describes what happened to the file besides its diagnostics.
func (r *TextReporter) status(file *runner.FileOutcome) string {
	switch {
	case file.Skipped:
		return r.styles.Dim.Render("skipped: " + file.SkipReason)
	case file.Unformatted && file.Written:
		return r.styles.Success.Render("formatted")
	case file.Unformatted:
		return r.styles.Failure.Render("not formatted")
	case file.Fixed && file.Written:
		return r.styles.Success.Render("fixed")
	case file.FormatError != nil:
		return r.styles.Dim.Render("not formatted: " + file.FormatError.Error())
	}
	return ""
}

func displayPath(file *runner.FileOutcome) string {
	switch {
	case file.DisplayPath != "":
		return file.DisplayPath
	case file.Path != "":
		return file.Path
	}
	return "<stdin>"
}
