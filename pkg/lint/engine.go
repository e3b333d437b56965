package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/syntax"
)

// ErrRulePanic marks a rule that panicked. The rule is dropped for the rest
// of the file and the panic is reported in FileResult.RuleErrors.
var ErrRulePanic = errors.New("rule panicked")

// cancelCheckInterval is how many nodes are visited between context checks.
const cancelCheckInterval = 256

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Document is the linted file.
	Document *document.Document

	// Diagnostics contains syntax errors and lint findings ordered by
	// position.
	Diagnostics []Diagnostic

	// Suppressed counts findings silenced by ignore comments.
	Suppressed int

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.Edit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.Edit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Count tallies the diagnostics by severity.
func (fr *FileResult) Count() diagnostics.Count {
	var count diagnostics.Count
	for _, d := range fr.Diagnostics {
		switch d.Severity {
		case diagnostics.SeverityError:
			count.Errors++
		case diagnostics.SeverityWarning:
			count.Warnings++
		case diagnostics.SeverityInfo:
			count.Infos++
		}
	}
	return count
}

// Engine runs rules over parsed documents.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// ruleRun is one resolved rule running over one file.
type ruleRun struct {
	resolved ResolvedRule
	ctx      *RuleContext
	failed   bool
}

// LintFile lints a parsed document. rules holds the per-file rule settings
// (see config.Resolver); when nil, cfg.Rules is used.
//
// The tree is walked once; every node is handed to the rules subscribed to
// its kind. Fixes are only collected for documents without syntax errors.
func (e *Engine) LintFile(
	ctx context.Context,
	doc *document.Document,
	cfg *config.Config,
	rules map[string]config.RuleConfig,
) (*FileResult, error) {
	result := &FileResult{
		Document:   doc,
		RuleErrors: make(map[string]error),
	}
	for _, diag := range doc.Diagnostics {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Diagnostic: diag})
	}

	// Resolve which rules to run and subscribe them to node kinds.
	resolved := ResolveRules(e.Registry, cfg, rules)
	runs := make([]*ruleRun, 0, len(resolved))
	dispatch := make(map[syntax.Kind][]*ruleRun)
	for _, rr := range resolved {
		run := &ruleRun{
			resolved: rr,
			ctx:      NewRuleContext(ctx, doc, rr.Rule, rr.Config, rr.Severity),
		}
		runs = append(runs, run)
		for _, kind := range rr.Rule.Kinds() {
			dispatch[kind] = append(dispatch[kind], run)
		}
	}

	var cancelErr error
	visited := 0
	if len(dispatch) > 0 && doc.Root != nil {
		syntax.Walk(doc.Root, func(node *syntax.Node) bool {
			if cancelErr != nil {
				return false
			}
			visited++
			if visited%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					cancelErr = err
					return false
				}
			}
			for _, run := range dispatch[node.Kind()] {
				if run.failed {
					continue
				}
				if err := check(run, node); err != nil {
					run.failed = true
					result.RuleErrors[run.resolved.Rule.Name()] = err
				}
			}
			return true
		}, nil)
	}
	if cancelErr == nil {
		cancelErr = ctx.Err()
	}
	if cancelErr != nil {
		return result, fmt.Errorf("linting cancelled: %w", cancelErr)
	}

	// Collect findings, dropping suppressed ones.
	sups := collectSuppressions(doc, e.Registry)
	var allEdits []fix.Edit
	for _, run := range runs {
		for _, diag := range run.ctx.Diagnostics() {
			if sups.suppressed(diag) {
				result.Suppressed++
				continue
			}
			if run.resolved.AutoFix && diag.Fix != nil {
				allEdits = append(allEdits, diag.Fix.Edit)
			}
			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}
	sortDiagnostics(result.Diagnostics)

	// Rewriting a tree the parser had to recover is not safe.
	if doc.HasErrors() || len(allEdits) == 0 {
		return result, nil
	}

	// Validate and prepare edits, merging deletions and filtering conflicts.
	accepted, skipped, err := fix.Prepare(allEdits, len(doc.Content))
	if err != nil {
		// Still include diagnostics but clear edits.
		result.EditConflicts = true
		return result, nil
	}
	result.Edits = accepted
	result.SkippedEdits = skipped
	result.EditConflicts = len(skipped) > 0

	return result, nil
}

// check runs one rule on one node, turning a panic into an error.
func check(run *ruleRun, node *syntax.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRulePanic, run.resolved.Rule.Name(), r)
		}
	}()
	run.resolved.Rule.Check(run.ctx, node)
	return nil
}

// sortDiagnostics orders by position, then severity, then rule.
func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Primary.Range.Start, b.Primary.Range.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Severity.Rank(), a.Severity.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Rule, b.Rule)
	})
}
