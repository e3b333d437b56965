package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	ruleColWidth      = 30 // Width of the rule name column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 8  // Width of warnings column.
	fixableColWidth   = 8  // Width of fixable column.
	maxRuleNameLength = 28 // Maximum characters for rule name before truncation.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats an analysis as per-rule and per-file tables.
type SummaryRenderer struct {
	opts      Options
	styles    *pretty.Styles
	out       io.Writer
	separator string
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return newSummaryRenderer(opts, styles, pretty.TerminalWidth(opts.Writer))
}

// newSummaryRenderer narrows the separators to termWidth when the
// terminal is smaller than the tables.
func newSummaryRenderer(opts Options, styles *pretty.Styles, termWidth int) *SummaryRenderer {
	width := min(tableWidth, termWidth)
	return &SummaryRenderer{
		opts:      opts,
		styles:    styles,
		out:       opts.Writer,
		separator: strings.Repeat("─", width),
	}
}

// Render writes the rule and file tables followed by the totals line.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Clean() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		r.renderFileTable(report.ByFile)
	}

	r.renderTotals(report.Totals)
	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.Dim.Render(r.separator))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.Bold.Render(padRight("Rule", ruleColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Errors", numColWidth)),
		r.styles.Bold.Render(padLeft("Warnings", warnColWidth)),
		r.styles.Bold.Render(padLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.Dim.Render(r.separator))

	for _, rule := range rules {
		ruleName := rule.RuleID
		if len(ruleName) > maxRuleNameLength {
			ruleName = ruleName[:maxRuleNameLength] + "…"
		}

		fixable := padLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.rowStyle(rule.Errors, rule.Warnings, padRight(ruleName, ruleColWidth)),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			fixable,
		)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.Dim.Render(r.separator))

	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.Bold.Render(padRight("File", fileColWidth)),
		r.styles.Bold.Render(padLeft("Count", numColWidth)),
		r.styles.Bold.Render(padLeft("Errors", numColWidth)),
		r.styles.Bold.Render(padLeft("Warnings", warnColWidth)),
		r.styles.Bold.Render("Format"),
	)
	fmt.Fprintln(r.out, r.styles.Dim.Render(r.separator))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		format := ""
		if file.Unformatted {
			format = r.styles.Failure.Render("✗")
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.rowStyle(file.Errors, file.Warnings, padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			format,
		)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) rowStyle(errors, warnings int, padded string) string {
	switch {
	case errors > 0:
		return r.styles.Error.Render(padded)
	case warnings > 0:
		return r.styles.Warning.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	total := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, plural(totals.Errors, "error", "errors"))))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, plural(totals.Warnings, "warning", "warnings"))))
	}
	if len(severityParts) > 0 {
		total += " (" + strings.Join(severityParts, ", ") + ")"
	}
	total += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, plural(totals.FilesWithIssues, "file", "files"))
	if totals.FilesUnformatted > 0 {
		total += fmt.Sprintf(", %d unformatted", totals.FilesUnformatted)
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+total)
}
