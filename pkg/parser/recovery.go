package parser

import (
	"errors"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	// ErrRecoveryAtToken means the current token is in the recovery set and
	// nothing was skipped.
	ErrRecoveryAtToken = errors.New("parser: recovery stopped at a token of the recovery set")
	// ErrRecoveryAtEOF means the end of the file was reached.
	ErrRecoveryAtEOF = errors.New("parser: recovery reached the end of the file")
	// ErrRecoveryDisabled means the parser is speculating.
	ErrRecoveryDisabled = errors.New("parser: recovery is disabled while speculating")
)

// ParseRecovery skips unexpected tokens into a bogus node.
type ParseRecovery struct {
	// BogusKind is the kind of the node wrapping the skipped tokens.
	BogusKind syntax.Kind
	// RecoverySet lists the tokens recovery stops at.
	RecoverySet TokenSet
	// LineBreak also stops recovery before a token that starts a new line.
	LineBreak bool
}

// NewRecovery returns a recovery into kind that stops at the given tokens.
func NewRecovery(kind syntax.Kind, set TokenSet) ParseRecovery {
	return ParseRecovery{BogusKind: kind, RecoverySet: set}
}

// WithLineBreak returns a copy that also stops at line breaks.
func (r ParseRecovery) WithLineBreak() ParseRecovery {
	r.LineBreak = true
	return r
}

func (r ParseRecovery) atRecovered(p *Parser) bool {
	return p.AtSet(r.RecoverySet) || (r.LineBreak && p.HasPrecedingLineBreak())
}

// Recover consumes tokens up to, but excluding, the next token in the
// recovery set and wraps them in a bogus node. At least one token is
// consumed on success.
func (r ParseRecovery) Recover(p *Parser) (CompletedMarker, error) {
	switch {
	case p.IsSpeculating():
		return CompletedMarker{}, ErrRecoveryDisabled
	case p.At(syntax.TokEOF):
		return CompletedMarker{}, ErrRecoveryAtEOF
	case r.atRecovered(p):
		return CompletedMarker{}, ErrRecoveryAtToken
	}

	m := p.Start()
	for !p.At(syntax.TokEOF) && !r.atRecovered(p) {
		p.BumpAny()
	}
	return m.Complete(p, r.BogusKind), nil
}

// ErrorBuilder produces the diagnostic for an element that is absent at rng.
type ErrorBuilder func(p *Parser, rng source.Range) diagnostics.Diagnostic

// ExpectedNode returns an ErrorBuilder for "expected <what>".
func ExpectedNode(what string) ErrorBuilder {
	return func(p *Parser, rng source.Range) diagnostics.Diagnostic {
		return p.Expected(what, rng).Build()
	}
}

// Parsed is the result of a parse function: a completed node, or nothing
// when the current token cannot start the construct. An absent result has
// consumed no tokens.
type Parsed struct {
	marker  CompletedMarker
	present bool
}

// Present wraps a completed node.
func Present(cm CompletedMarker) Parsed {
	return Parsed{marker: cm, present: true}
}

// Absent is the result of a parse function that did not apply.
func Absent() Parsed {
	return Parsed{}
}

// IsPresent reports whether a node was parsed.
func (s Parsed) IsPresent() bool {
	return s.present
}

// IsAbsent reports whether nothing was parsed.
func (s Parsed) IsAbsent() bool {
	return !s.present
}

// Marker returns the completed node and whether it is present.
func (s Parsed) Marker() (CompletedMarker, bool) {
	return s.marker, s.present
}

// Kind returns the node kind, or syntax.Tombstone when absent.
func (s Parsed) Kind() syntax.Kind {
	if !s.present {
		return syntax.Tombstone
	}
	return s.marker.kind
}

// Precede wraps the node in a new marker, or starts an empty one when
// absent.
func (s Parsed) Precede(p *Parser) *Marker {
	if s.present {
		return s.marker.Precede(p)
	}
	return p.Start()
}

// OrMissing records an empty slot when absent.
func (s Parsed) OrMissing(p *Parser) Parsed {
	if !s.present {
		p.Missing()
	}
	return s
}

// OrAddDiagnostic reports the diagnostic from build and records an empty
// slot when absent.
func (s Parsed) OrAddDiagnostic(p *Parser, build ErrorBuilder) Parsed {
	if !s.present {
		p.Error(build(p, p.CurRange()))
		p.Missing()
	}
	return s
}

// OrRecover handles an absent node by reporting the diagnostic from build
// and recovering with recovery. When recovery stops at a token of the
// recovery set an empty bogus node fills the slot. ErrRecoveryAtEOF and
// ErrRecoveryDisabled leave an empty slot and are returned.
func (s Parsed) OrRecover(p *Parser, recovery ParseRecovery, build ErrorBuilder) (CompletedMarker, error) {
	if s.present {
		return s.marker, nil
	}
	p.Error(build(p, p.CurRange()))

	cm, err := recovery.Recover(p)
	switch {
	case err == nil:
		return cm, nil
	case errors.Is(err, ErrRecoveryAtToken):
		m := p.Start()
		return m.Complete(p, recovery.BogusKind), nil
	default:
		p.Missing()
		return CompletedMarker{}, err
	}
}
