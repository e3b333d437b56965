package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the rule summary prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes annotated source lines in diagnostics.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// RuleSummary appends per-rule and per-file tables to text output.
	RuleSummary bool

	// SummaryOrder controls the order of the summary tables.
	SummaryOrder SummaryOrder

	// SummarySort orders the rows of the summary tables.
	SummarySort analysis.SortKey

	// Compact uses minified output for JSON and SARIF.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// Registry describes the rules in SARIF output. Nil means
	// lint.DefaultRegistry.
	Registry *lint.Registry

	// ToolVersion is reported as the driver version in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		SummaryOrder: SummaryOrderRules,
		RuleFormat:   config.RuleFormatName,
		ToolVersion:  "dev",
	}
}

func (o Options) registry() *lint.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lint.DefaultRegistry
}
