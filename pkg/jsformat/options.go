package jsformat

import (
	"fmt"
	"strings"

	"github.com/yaklabco/quill/pkg/format"
)

// QuoteStyle is the preferred quote for string literals.
type QuoteStyle uint8

const (
	QuoteDouble QuoteStyle = iota
	QuoteSingle
)

func (q QuoteStyle) String() string {
	if q == QuoteSingle {
		return "single"
	}
	return "double"
}

func (q QuoteStyle) quote() byte {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

// ParseQuoteStyle parses "double" or "single".
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch strings.ToLower(s) {
	case "double":
		return QuoteDouble, nil
	case "single":
		return QuoteSingle, nil
	}
	return QuoteDouble, fmt.Errorf("%w: quote style %q", format.ErrInvalidOption, s)
}

// Semicolons controls statement terminators.
type Semicolons uint8

const (
	// SemicolonsAlways terminates every statement.
	SemicolonsAlways Semicolons = iota
	// SemicolonsAsNeeded only keeps semicolons that automatic semicolon
	// insertion would not supply.
	SemicolonsAsNeeded
)

func (s Semicolons) String() string {
	if s == SemicolonsAsNeeded {
		return "as-needed"
	}
	return "always"
}

// ParseSemicolons parses "always" or "as-needed".
func ParseSemicolons(s string) (Semicolons, error) {
	switch strings.ToLower(s) {
	case "always":
		return SemicolonsAlways, nil
	case "as-needed", "asneeded":
		return SemicolonsAsNeeded, nil
	}
	return SemicolonsAlways, fmt.Errorf("%w: semicolons %q", format.ErrInvalidOption, s)
}

// TrailingComma controls commas after the last element of a broken list.
type TrailingComma uint8

const (
	// TrailingCommaAll adds trailing commas wherever the grammar allows.
	TrailingCommaAll TrailingComma = iota
	// TrailingCommaES5 adds them to arrays, objects, imports and exports.
	TrailingCommaES5
	TrailingCommaNone
)

func (t TrailingComma) String() string {
	switch t {
	case TrailingCommaES5:
		return "es5"
	case TrailingCommaNone:
		return "none"
	default:
		return "all"
	}
}

// ParseTrailingComma parses "all", "es5" or "none".
func ParseTrailingComma(s string) (TrailingComma, error) {
	switch strings.ToLower(s) {
	case "all":
		return TrailingCommaAll, nil
	case "es5":
		return TrailingCommaES5, nil
	case "none":
		return TrailingCommaNone, nil
	}
	return TrailingCommaAll, fmt.Errorf("%w: trailing comma %q", format.ErrInvalidOption, s)
}

// ArrowParentheses controls parentheses around a sole arrow parameter.
type ArrowParentheses uint8

const (
	ArrowAlways ArrowParentheses = iota
	ArrowAsNeeded
)

func (a ArrowParentheses) String() string {
	if a == ArrowAsNeeded {
		return "as-needed"
	}
	return "always"
}

// ParseArrowParentheses parses "always" or "as-needed".
func ParseArrowParentheses(s string) (ArrowParentheses, error) {
	switch strings.ToLower(s) {
	case "always":
		return ArrowAlways, nil
	case "as-needed", "asneeded", "avoid":
		return ArrowAsNeeded, nil
	}
	return ArrowAlways, fmt.Errorf("%w: arrow parentheses %q", format.ErrInvalidOption, s)
}

// Options configure the JavaScript formatter.
type Options struct {
	format.PrinterOptions

	QuoteStyle       QuoteStyle
	JSXQuoteStyle    QuoteStyle
	Semicolons       Semicolons
	TrailingComma    TrailingComma
	ArrowParentheses ArrowParentheses
	// BracketSpacing prints spaces inside object braces: `{ a }`.
	BracketSpacing bool
}

// DefaultOptions returns the default printer options, double quotes,
// semicolons, trailing commas everywhere and bracket spacing.
func DefaultOptions() Options {
	return Options{
		PrinterOptions: format.DefaultPrinterOptions(),
		BracketSpacing: true,
	}
}

// Validate checks the printer options.
func (o Options) Validate() error {
	return o.PrinterOptions.Validate()
}

// trailingComma reports whether lists of the given flavour get a trailing
// comma when they break. es5 lists are arrays, objects, imports and
// exports; the others are parameters, arguments and type lists.
func (o Options) trailingComma(es5 bool) bool {
	switch o.TrailingComma {
	case TrailingCommaAll:
		return true
	case TrailingCommaES5:
		return es5
	default:
		return false
	}
}
