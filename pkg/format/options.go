package format

import (
	"errors"
	"fmt"
	"strings"
)

// IndentStyle selects tabs or spaces for indentation.
type IndentStyle uint8

const (
	// IndentTab indents with one tab per level.
	IndentTab IndentStyle = iota
	// IndentSpace indents with IndentWidth spaces per level.
	IndentSpace
)

func (s IndentStyle) String() string {
	if s == IndentSpace {
		return "space"
	}
	return "tab"
}

// ParseIndentStyle parses "tab" or "space".
func ParseIndentStyle(s string) (IndentStyle, error) {
	switch strings.ToLower(s) {
	case "tab", "tabs":
		return IndentTab, nil
	case "space", "spaces":
		return IndentSpace, nil
	}
	return IndentTab, fmt.Errorf("%w: indent style %q", ErrInvalidOption, s)
}

// LineEnding is the line terminator written by the printer.
type LineEnding uint8

const (
	// LineEndingLF is "\n".
	LineEndingLF LineEnding = iota
	// LineEndingCRLF is "\r\n".
	LineEndingCRLF
	// LineEndingCR is "\r".
	LineEndingCR
)

// String returns the terminator itself.
func (e LineEnding) String() string {
	switch e {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Name returns the configuration name of e.
func (e LineEnding) Name() string {
	switch e {
	case LineEndingCRLF:
		return "crlf"
	case LineEndingCR:
		return "cr"
	default:
		return "lf"
	}
}

// ParseLineEnding parses "lf", "crlf" or "cr".
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(s) {
	case "lf":
		return LineEndingLF, nil
	case "crlf":
		return LineEndingCRLF, nil
	case "cr":
		return LineEndingCR, nil
	}
	return LineEndingLF, fmt.Errorf("%w: line ending %q", ErrInvalidOption, s)
}

const (
	// DefaultLineWidth is the default print width.
	DefaultLineWidth = 80
	// MaxLineWidth is the largest accepted print width.
	MaxLineWidth = 320
	// DefaultIndentWidth is the default number of columns per level.
	DefaultIndentWidth = 2
	// MaxIndentWidth is the largest accepted indent width.
	MaxIndentWidth = 16
)

// ErrInvalidOption is returned for options outside their accepted range.
var ErrInvalidOption = errors.New("invalid format option")

// PrinterOptions configure the printer.
type PrinterOptions struct {
	IndentStyle IndentStyle
	// IndentWidth is the number of spaces per level for IndentSpace and the
	// display width of a tab.
	IndentWidth int
	LineWidth   int
	LineEnding  LineEnding
}

// DefaultPrinterOptions returns tab indentation, a width of 80 and LF.
func DefaultPrinterOptions() PrinterOptions {
	return PrinterOptions{
		IndentStyle: IndentTab,
		IndentWidth: DefaultIndentWidth,
		LineWidth:   DefaultLineWidth,
		LineEnding:  LineEndingLF,
	}
}

// Validate checks the numeric ranges.
func (o PrinterOptions) Validate() error {
	if o.LineWidth < 1 || o.LineWidth > MaxLineWidth {
		return fmt.Errorf("%w: line width %d is not between 1 and %d", ErrInvalidOption, o.LineWidth, MaxLineWidth)
	}
	if o.IndentWidth < 0 || o.IndentWidth > MaxIndentWidth {
		return fmt.Errorf("%w: indent width %d is not between 0 and %d", ErrInvalidOption, o.IndentWidth, MaxIndentWidth)
	}
	return nil
}

// indentUnit is the text of one indentation level.
func (o PrinterOptions) indentUnit() string {
	if o.IndentStyle == IndentSpace {
		return strings.Repeat(" ", o.IndentWidth)
	}
	return "\t"
}

// tabWidth is the display width of a tab.
func (o PrinterOptions) tabWidth() int {
	if o.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return o.IndentWidth
}
