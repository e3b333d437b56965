package lint

import (
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	inner *diagnostics.Builder
	fix   *Fix
}

// NewDiagnostic starts building a diagnostic whose primary label covers rng.
func NewDiagnostic(rng source.Range, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{inner: diagnostics.New(rng, message)}
}

// NewDiagnosticAt starts building a diagnostic covering an element without
// its trivia.
func NewDiagnosticAt(element syntax.Element, message string) *DiagnosticBuilder {
	return NewDiagnostic(element.Range(), message)
}

// WithLabel sets the message of the primary label.
func (b *DiagnosticBuilder) WithLabel(message string) *DiagnosticBuilder {
	b.inner.Label(message)
	return b
}

// WithDetail adds a secondary label.
func (b *DiagnosticBuilder) WithDetail(rng source.Range, message string) *DiagnosticBuilder {
	b.inner.Detail(rng, message)
	return b
}

// WithNote adds a free-text note.
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.inner.Note(note)
	return b
}

// WithSuggestion adds a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.inner.Hint(s)
	return b
}

// WithFix attaches the change recorded in mutation. Empty mutations and
// mutations that do not change the text are ignored.
func (b *DiagnosticBuilder) WithFix(message string, mutation *syntax.BatchMutation) *DiagnosticBuilder {
	if edit, ok := fix.FromMutation(mutation); ok {
		b.fix = &Fix{Message: message, Edit: edit}
	}
	return b
}

// WithEdit attaches a fix expressed as a raw text edit.
func (b *DiagnosticBuilder) WithEdit(message string, edit fix.Edit) *DiagnosticBuilder {
	b.fix = &Fix{Message: message, Edit: edit}
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return Diagnostic{Diagnostic: b.inner.Build(), Fix: b.fix}
}
