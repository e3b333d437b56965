package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/source"
)

const (
	defaultTabWidth = 4
	primaryCaret    = '^'
	secondaryCaret  = '-'
)

// RenderOptions controls how a diagnostic is rendered.
type RenderOptions struct {
	// Source is the text the diagnostic ranges point into. Without it only
	// the header line and notes are printed.
	Source string

	// ShowContext prints the annotated source lines.
	ShowContext bool

	// RuleFormat controls how lint rule identifiers appear.
	RuleFormat config.RuleFormat

	// TabWidth is the number of columns a tab occupies. Zero means 4.
	TabWidth int
}

// RenderLintDiagnostic renders a lint finding, naming the rule in the
// requested format and appending the fix description.
func (s *Styles) RenderLintDiagnostic(diag *lint.Diagnostic, opts RenderOptions) string {
	plain := diag.Diagnostic
	if diag.Rule != "" {
		plain.Code = config.FormatRuleID(opts.RuleFormat, diag.Group, diag.Rule)
	}
	if diag.Fix != nil && diag.Fix.Message != "" {
		plain.Notes = append(slices.Clone(plain.Notes), "fix: "+diag.Fix.Message)
	}
	return s.RenderDiagnostic(plain, opts)
}

// RenderDiagnostic renders diag as a header line followed, when enabled,
// by the source lines it labels with carets under each label. Primary
// carets win where labels overlap.
func (s *Styles) RenderDiagnostic(diag diagnostics.Diagnostic, opts RenderOptions) string {
	var builder strings.Builder

	var index *source.LineIndex
	if opts.Source != "" {
		index = source.NewLineIndex(opts.Source)
	}

	location := s.FilePath.Render(displayLocus(diag.Locus.Path))
	pos := diag.Locus.Position
	if !pos.IsValid() && index != nil {
		pos = index.Position(clampOffset(diag.Primary.Range.Start, len(opts.Source)))
	}
	if pos.IsValid() {
		location += s.Location.Render(":" + pos.String())
	}

	builder.WriteString("  " + location + "  " + s.FormatSeverity(diag.Severity) + "  " + s.Message.Render(diag.Message))
	if diag.Code != "" {
		builder.WriteString("  " + s.RuleID.Render("("+diag.Code+")"))
	}
	builder.WriteString("\n")

	if opts.ShowContext && index != nil {
		builder.WriteString(s.renderSnippet(index, diag, opts))
	}

	for _, note := range diag.Notes {
		builder.WriteString("    " + s.Gutter.Render("=") + " " + s.Note.Render(note) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev diagnostics.Severity) string {
	if sev == "" {
		sev = diagnostics.SeverityWarning
	}
	return s.SeverityStyle(sev).Render(string(sev))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(displayLocus(path))
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

func displayLocus(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

// marker is one label projected onto a single source line, in display
// columns.
type marker struct {
	line    int
	start   int
	end     int
	primary bool
	message string
}

func (s *Styles) renderSnippet(index *source.LineIndex, diag diagnostics.Diagnostic, opts RenderOptions) string {
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	tab := strings.Repeat(" ", tabWidth)

	markers := make([]marker, 0, 1+len(diag.Secondary))
	for i, label := range diag.Labels() {
		markers = append(markers, project(index, label, i == 0, len(opts.Source), tab))
	}

	lines := make([]int, 0, len(markers))
	for _, m := range markers {
		if !slices.Contains(lines, m.line) {
			lines = append(lines, m.line)
		}
	}
	slices.Sort(lines)

	gutterWidth := len(strconv.Itoa(lines[len(lines)-1]))
	blank := strings.Repeat(" ", gutterWidth+4) + s.Gutter.Render("|")

	var builder strings.Builder
	builder.WriteString(blank + "\n")
	for _, line := range lines {
		text := strings.ReplaceAll(index.LineText(line), "\t", tab)
		builder.WriteString(fmt.Sprintf("  %*d ", gutterWidth+1, line))
		builder.WriteString(s.Gutter.Render("|") + " " + s.SourceLine.Render(text) + "\n")

		onLine := make([]marker, 0, len(markers))
		for _, m := range markers {
			if m.line == line {
				onLine = append(onLine, m)
			}
		}
		builder.WriteString(s.renderMarkers(blank, onLine, diag.Severity))
	}
	return builder.String()
}

// project converts label to display columns on the line where it starts.
// Labels that span lines are underlined to the end of their first line.
func project(index *source.LineIndex, label diagnostics.Label, primary bool, size int, tab string) marker {
	start := clampOffset(label.Range.Start, size)
	end := max(clampOffset(label.Range.End, size), start)

	startPos := index.Position(start)
	endPos := index.Position(end)
	text := index.LineText(startPos.Line)

	startCol := min(startPos.Column-1, len(text))
	endCol := len(text)
	if endPos.Line == startPos.Line {
		endCol = min(endPos.Column-1, len(text))
	}
	startCol = runeBoundary(text, startCol)
	endCol = max(runeBoundary(text, endCol), startCol)

	displayStart := displayWidth(text[:startCol], tab)
	displayEnd := displayWidth(text[:endCol], tab)
	if displayEnd <= displayStart {
		displayEnd = displayStart + 1
	}

	return marker{
		line:    startPos.Line,
		start:   displayStart,
		end:     displayEnd,
		primary: primary,
		message: label.Message,
	}
}

// renderMarkers draws the caret row for one line and the label messages.
// Secondary carets are laid down first so primary carets overwrite them.
func (s *Styles) renderMarkers(blank string, markers []marker, severity diagnostics.Severity) string {
	slices.SortStableFunc(markers, func(a, b marker) int {
		if a.primary != b.primary {
			if a.primary {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.start, b.start)
	})

	width := 0
	for _, m := range markers {
		width = max(width, m.end)
	}
	cells := []rune(strings.Repeat(" ", width))
	for _, m := range markers {
		char := secondaryCaret
		if m.primary {
			char = primaryCaret
		}
		for col := m.start; col < m.end; col++ {
			cells[col] = char
		}
	}

	primaryStyle := s.Caret
	if severity != diagnostics.SeverityError {
		primaryStyle = s.SeverityStyle(severity)
	}

	var row strings.Builder
	for col := 0; col < len(cells); {
		next := col
		for next < len(cells) && cells[next] == cells[col] {
			next++
		}
		run := string(cells[col:next])
		switch cells[col] {
		case primaryCaret:
			row.WriteString(primaryStyle.Render(run))
		case secondaryCaret:
			row.WriteString(s.SecondaryCaret.Render(run))
		default:
			row.WriteString(run)
		}
		col = next
	}

	// The primary message goes on the caret row; when the primary label is
	// elsewhere the first secondary message takes its place.
	inline := -1
	for i, m := range markers {
		if m.message != "" && (inline < 0 || m.primary) {
			inline = i
		}
	}

	var builder strings.Builder
	builder.WriteString(blank + " " + row.String())
	if inline >= 0 {
		builder.WriteString(" " + s.labelStyle(markers[inline], primaryStyle).Render(markers[inline].message))
	}
	builder.WriteString("\n")

	for i, m := range markers {
		if i == inline || m.message == "" {
			continue
		}
		builder.WriteString(blank + " " + strings.Repeat(" ", m.start) + s.labelStyle(m, primaryStyle).Render(m.message) + "\n")
	}
	return builder.String()
}

func (s *Styles) labelStyle(m marker, primary lipgloss.Style) lipgloss.Style {
	if m.primary {
		return primary
	}
	return s.SecondaryLabels
}

func clampOffset(offset, size int) int {
	return min(max(offset, 0), size)
}

// runeBoundary moves offset back to the start of the rune containing it.
func runeBoundary(text string, offset int) int {
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}

func displayWidth(text, tab string) int {
	return runewidth.StringWidth(strings.ReplaceAll(text, "\t", tab))
}
