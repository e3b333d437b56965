package diagnostics

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/source"
)

// Builder helps construct Diagnostic values.
type Builder struct {
	diag Diagnostic
}

// New starts an error diagnostic whose primary label covers rng.
func New(rng source.Range, message string) *Builder {
	return &Builder{
		diag: Diagnostic{
			Severity: SeverityError,
			Message:  message,
			Primary:  Label{Range: rng},
		},
	}
}

// Newf is New with a formatted message.
func Newf(rng source.Range, format string, args ...any) *Builder {
	return New(rng, fmt.Sprintf(format, args...))
}

// Severity sets the severity.
func (b *Builder) Severity(s Severity) *Builder {
	b.diag.Severity = s
	return b
}

// Code sets the diagnostic code, for example "parse" or "lint/no-debugger".
func (b *Builder) Code(code string) *Builder {
	b.diag.Code = code
	return b
}

// Label sets the message of the primary label.
func (b *Builder) Label(message string) *Builder {
	b.diag.Primary.Message = message
	return b
}

// Detail adds a secondary label.
func (b *Builder) Detail(rng source.Range, message string) *Builder {
	b.diag.Secondary = append(b.diag.Secondary, Label{Range: rng, Message: message})
	return b
}

// Note adds a free-text note.
func (b *Builder) Note(note string) *Builder {
	b.diag.Notes = append(b.diag.Notes, note)
	return b
}

// Hint adds a note prefixed with "hint: ".
func (b *Builder) Hint(hint string) *Builder {
	return b.Note("hint: " + hint)
}

// Path sets the locus path.
func (b *Builder) Path(path string) *Builder {
	b.diag.Locus.Path = path
	return b
}

// Build returns the constructed Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.diag
}

// WithPath returns copies of diags with the locus path set, and positions
// resolved when idx is not nil.
func WithPath(diags []Diagnostic, path string, idx *source.LineIndex) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, diag := range diags {
		diag.Locus.Path = path
		if idx != nil {
			diag.Locus.Position = idx.Position(diag.Primary.Range.Start)
		}
		out[i] = diag
	}
	return out
}
