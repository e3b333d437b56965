package parser

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/syntax"
)

// Result is a parsed document.
type Result struct {
	Root        *syntax.Node
	Diagnostics []diagnostics.Diagnostic
	// SuppressedDiagnostics counts diagnostics dropped by
	// Options.MaxDiagnostics.
	SuppressedDiagnostics int
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	return diagnostics.HasErrors(r.Diagnostics)
}

// Build finishes parsing and assembles the tree. Lexer and parser
// diagnostics are merged in source order.
func (p *Parser) Build() *Result {
	events, diags := p.Finish()

	sink := syntax.NewTreeSink(p.Text(), p.source.Trivia())
	Process(events, sink)
	root := sink.Finish()

	all := make([]diagnostics.Diagnostic, 0, len(diags)+len(p.source.Diagnostics()))
	all = append(all, p.source.Diagnostics()...)
	all = append(all, diags...)
	diagnostics.Sort(all)

	suppressed := p.suppressed
	if limit := p.opts.MaxDiagnostics; limit > 0 && len(all) > limit {
		suppressed += len(all) - limit
		all = all[:limit]
	}
	return &Result{Root: root, Diagnostics: all, SuppressedDiagnostics: suppressed}
}
