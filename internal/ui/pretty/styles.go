// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/quill/pkg/diagnostics"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// defaultTermWidth is used when the terminal width cannot be determined.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostic components
	FilePath        lipgloss.Style
	Location        lipgloss.Style
	RuleID          lipgloss.Style
	Message         lipgloss.Style
	Note            lipgloss.Style
	Gutter          lipgloss.Style
	SourceLine      lipgloss.Style
	Caret           lipgloss.Style
	SecondaryCaret  lipgloss.Style
	SecondaryLabels lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath:        lipgloss.NewStyle().Bold(true),
		Location:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		RuleID:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:         lipgloss.NewStyle(),
		Note:            lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),
		Gutter:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		SourceLine:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:           lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		SecondaryCaret:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		SecondaryLabels: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:           plain,
		Warning:         plain,
		Info:            plain,
		FilePath:        plain,
		Location:        plain,
		RuleID:          plain,
		Message:         plain,
		Note:            plain,
		Gutter:          plain,
		SourceLine:      plain,
		Caret:           plain,
		SecondaryCaret:  plain,
		SecondaryLabels: plain,
		DiffHeader:      plain,
		DiffHunk:        plain,
		DiffAdd:         plain,
		DiffRemove:      plain,
		DiffContext:     plain,
		SummaryTitle:    plain,
		SummaryValue:    plain,
		Success:         plain,
		Failure:         plain,
		Dim:             plain,
		Bold:            plain,
	}
}

// SeverityStyle returns the style used for sev.
func (s *Styles) SeverityStyle(sev diagnostics.Severity) lipgloss.Style {
	switch sev {
	case diagnostics.SeverityError:
		return s.Error
	case diagnostics.SeverityInfo:
		return s.Info
	default:
		return s.Warning
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return IsTerminal(writer)
	}
}

// IsTerminal reports whether writer is an interactive terminal.
func IsTerminal(writer any) bool {
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default when it is not a terminal.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
