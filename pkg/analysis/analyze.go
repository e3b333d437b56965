// Package analysis aggregates a run into per-rule and per-file views for
// the reporters.
package analysis

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
)

// syntaxRuleName names the bucket syntax errors are counted under.
const syntaxRuleName = "syntax"

// bump increments the counter matching severity.
func bump(severity diagnostics.Severity, errors, warnings, infos *int) {
	switch severity {
	case diagnostics.SeverityError:
		*errors++
	case diagnostics.SeverityInfo:
		*infos++
	default:
		*warnings++
	}
}

// RuleID returns the identifier diag is reported under.
func RuleID(diag *lint.Diagnostic, format config.RuleFormat) string {
	if diag.IsSyntaxError() {
		if diag.Code != "" {
			return diag.Code
		}
		return syntaxRuleName
	}
	return config.FormatRuleID(format, diag.Group, diag.Rule)
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	rules := make(map[string]*RuleAnalysis)
	files := make([]FileAnalysis, 0, len(result.Files))

	for i := range result.Files {
		outcome := &result.Files[i]
		report.Totals.Files++

		switch {
		case outcome.Error != nil:
			report.Totals.FilesErrored++
		case outcome.Unformatted && outcome.Written:
			report.Totals.FilesFormatted++
		case outcome.Unformatted:
			report.Totals.FilesUnformatted++
		}
		if outcome.Fixed && outcome.Written {
			report.Totals.FilesFixed++
		}

		file := FileAnalysis{
			Path:        outcome.DisplayPath,
			Unformatted: outcome.Unformatted && !outcome.Written,
		}
		for j := range outcome.Diagnostics {
			diag := &outcome.Diagnostics[j]
			severity := diag.Severity
			if severity == "" {
				severity = diagnostics.SeverityWarning
			}

			report.Totals.Issues++
			file.Issues++
			bump(severity, &file.Errors, &file.Warnings, &file.Infos)
			bump(severity, &report.Totals.Errors, &report.Totals.Warnings, &report.Totals.Infos)
			if diag.HasFix() {
				report.Totals.Fixable++
			}
			if diag.IsSyntaxError() {
				report.Totals.SyntaxErrors++
			}

			id := RuleID(diag, opts.RuleFormat)
			file.Rules = append(file.Rules, id)

			rule, ok := rules[id]
			if !ok {
				name := diag.Rule
				if name == "" {
					name = syntaxRuleName
				}
				rule = &RuleAnalysis{RuleID: id, RuleName: name}
				rules[id] = rule
			}
			rule.Issues++
			rule.Fixable = rule.Fixable || diag.HasFix()
			rule.Files = append(rule.Files, outcome.DisplayPath)
			bump(severity, &rule.Errors, &rule.Warnings, &rule.Infos)
		}

		if file.Issues > 0 {
			report.Totals.FilesWithIssues++
		}
		if file.Issues > 0 || file.Unformatted {
			file.Rules = lo.Uniq(file.Rules)
			slices.Sort(file.Rules)
			files = append(files, file)
		}
	}

	if opts.ByRule {
		report.ByRule = lo.Map(lo.Values(rules), func(rule *RuleAnalysis, _ int) RuleAnalysis {
			rule.Files = lo.Uniq(rule.Files)
			slices.Sort(rule.Files)
			return *rule
		})
		sortRuleAnalysis(report.ByRule, opts.Sort, opts.Descending)
	}
	if opts.ByFile {
		report.ByFile = files
		sortFileAnalysis(report.ByFile, opts.Sort, opts.Descending)
	}

	return report
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortKey, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareEntries(sortBy, desc,
			entry{left.RuleID, left.Issues, left.Errors, left.Warnings},
			entry{right.RuleID, right.Issues, right.Errors, right.Warnings})
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortKey, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareEntries(sortBy, desc,
			entry{left.Path, left.Issues, left.Errors, left.Warnings},
			entry{right.Path, right.Issues, right.Errors, right.Warnings})
	})
}

type entry struct {
	key      string
	issues   int
	errors   int
	warnings int
}

// compareEntries orders two rows. Ties always fall back to the key so the
// output is deterministic.
func compareEntries(sortBy SortKey, desc bool, left, right entry) int {
	var result int
	switch sortBy {
	case SortName:
		// Alphabetical sorting is always ascending (A-Z)
	case SortSeverity:
		// Errors first, then warnings, then total (always descending)
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	default: // SortCount
		result = cmp.Compare(left.issues, right.issues)
		if desc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(left.key, right.key))
}
