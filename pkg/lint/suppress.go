package lint

import (
	"strings"
	"unicode"

	"github.com/yaklabco/quill/pkg/document"
)

// IgnoreNextLine is the comment directive that suppresses diagnostics on
// the following line:
//
//	// quill-ignore-next-line no-debugger, no-var -- reason
//
// Without rule names every rule is suppressed.
const IgnoreNextLine = "quill-ignore-next-line"

// suppression silences diagnostics starting on one line.
type suppression struct {
	// rules is nil when every rule is suppressed.
	rules map[string]bool
}

func (s suppression) covers(rule string) bool {
	return s.rules == nil || s.rules[rule]
}

// suppressions maps a 1-based line to the directives targeting it.
type suppressions map[int][]suppression

// collectSuppressions scans the comments of doc for directives.
func collectSuppressions(doc *document.Document, registry *Registry) suppressions {
	result := suppressions{}
	if doc == nil || doc.Root == nil {
		return result
	}
	for _, token := range doc.Root.Tokens() {
		if !token.HasLeadingComments() && !token.HasTrailingComments() {
			continue
		}
		for _, trivia := range append(token.LeadingTrivia(), token.TrailingTrivia()...) {
			if !trivia.Kind.IsComment() {
				continue
			}
			names, ok := parseDirective(trivia.Text)
			if !ok {
				continue
			}
			line := doc.Lines().Position(trivia.Range.End).Line + 1
			result[line] = append(result[line], newSuppression(names, registry))
		}
	}
	return result
}

func newSuppression(names []string, registry *Registry) suppression {
	if len(names) == 0 {
		return suppression{}
	}
	rules := make(map[string]bool, len(names))
	for _, name := range names {
		if registry != nil {
			if canonical, _, ok := registry.Resolve(name); ok {
				name = canonical
			}
		}
		rules[name] = true
	}
	return suppression{rules: rules}
}

// suppressed reports whether diag is silenced by a directive.
func (s suppressions) suppressed(diag Diagnostic) bool {
	if diag.IsSyntaxError() {
		return false
	}
	for _, sup := range s[diag.Locus.Position.Line] {
		if sup.covers(diag.Rule) {
			return true
		}
	}
	return false
}

// parseDirective extracts the rule names of a directive comment.
func parseDirective(comment string) ([]string, bool) {
	body := comment
	switch {
	case strings.HasPrefix(body, "//"):
		body = body[2:]
	case strings.HasPrefix(body, "/*"):
		body = strings.TrimSuffix(body[2:], "*/")
	default:
		return nil, false
	}
	body = strings.TrimSpace(body)

	rest, ok := strings.CutPrefix(body, IgnoreNextLine)
	if !ok {
		return nil, false
	}
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return nil, false
	}
	rest, _, _ = strings.Cut(rest, "--")
	return strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	}), true
}
