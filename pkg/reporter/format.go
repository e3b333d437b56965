package reporter

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/config"
)

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText  = config.FormatText
	FormatJSON  = config.FormatJSON
	FormatSARIF = config.FormatSARIF
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif", formatStr)
	}
	return format, nil
}
