// Package diagnostics defines the structured diagnostic model shared by the
// parser, the linter and the renderers.
package diagnostics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/quill/pkg/source"
)

// Severity is the importance of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity %q (want error, warning or info)", s)
}

// Rank orders severities: error > warning > info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Label attaches a message to a byte range of the source.
type Label struct {
	Range   source.Range
	Message string
}

// Locus identifies where a diagnostic was produced.
type Locus struct {
	// Path is the file name; empty for in-memory input.
	Path string

	// Position is optional and filled in by renderers when a line index is
	// available.
	Position source.Position
}

// Diagnostic is a structured report about a source file.
type Diagnostic struct {
	Severity  Severity
	Code      string
	Message   string
	Primary   Label
	Secondary []Label
	Notes     []string
	Locus     Locus
}

// Range returns the primary label range.
func (d Diagnostic) Range() source.Range {
	return d.Primary.Range
}

// Labels returns the primary label followed by the secondary labels.
func (d Diagnostic) Labels() []Label {
	labels := make([]Label, 0, 1+len(d.Secondary))
	labels = append(labels, d.Primary)
	return append(labels, d.Secondary...)
}

func (d Diagnostic) String() string {
	if d.Code != "" {
		return fmt.Sprintf("%s[%s] %s: %s", d.Severity, d.Code, d.Primary.Range, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Primary.Range, d.Message)
}

// Sort orders diagnostics by primary range start, then severity (most severe
// first), then message. The sort is stable.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Primary.Range.Start, b.Primary.Range.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Severity.Rank(), a.Severity.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
}

// Count holds per-severity totals.
type Count struct {
	Errors   int
	Warnings int
	Infos    int
}

// Total returns the number of counted diagnostics.
func (c Count) Total() int {
	return c.Errors + c.Warnings + c.Infos
}

// Tally counts diagnostics by severity.
func Tally(diags []Diagnostic) Count {
	var count Count
	for _, diag := range diags {
		switch diag.Severity {
		case SeverityError:
			count.Errors++
		case SeverityWarning:
			count.Warnings++
		case SeverityInfo:
			count.Infos++
		}
	}
	return count
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}
