package analysis

import (
	"fmt"
	"strings"

	"github.com/yaklabco/quill/pkg/config"
)

// SortKey orders the per-file and per-rule views.
type SortKey int

const (
	// SortCount puts the rows with the most issues first.
	SortCount SortKey = iota
	// SortName orders rows by path or rule identifier.
	SortName
	// SortSeverity puts rows with errors ahead of rows with warnings.
	SortSeverity
)

var sortKeyNames = [...]string{
	SortCount:    "count",
	SortName:     "name",
	SortSeverity: "severity",
}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortKeyNames[k]
}

// ParseSortKey maps a flag value onto a SortKey. "alpha" is accepted as
// another spelling of "name".
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "count":
		return SortCount, nil
	case "name", "alpha":
		return SortName, nil
	case "severity":
		return SortSeverity, nil
	}
	return SortCount, fmt.Errorf("unknown sort key %q: must be count, name or severity", value)
}

// Options selects the views Analyze builds.
type Options struct {
	ByFile     bool
	ByRule     bool
	Sort       SortKey
	Descending bool // only meaningful for SortCount
	RuleFormat config.RuleFormat
}

// DefaultOptions builds both views, busiest rows first, with bare rule names.
func DefaultOptions() Options {
	return Options{
		ByFile:     true,
		ByRule:     true,
		Sort:       SortCount,
		Descending: true,
		RuleFormat: config.RuleFormatName,
	}
}
