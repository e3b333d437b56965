// Package parser is the grammar-independent core shared by the JavaScript
// and JSON parsers.
//
// A Parser walks a TokenSource and records a flat list of events: nodes are
// opened with Start, closed with Marker.Complete and may be wrapped after the
// fact with CompletedMarker.Precede. Syntax errors are collected as
// diagnostics and never stop parsing; ParseRecovery skips unexpected tokens
// into bogus nodes so that every node keeps its declared shape. Checkpoint
// and Rewind support speculative parsing without leaking events or
// diagnostics from the abandoned branch.
package parser

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// DiagnosticCode is the code attached to syntax error diagnostics.
const DiagnosticCode = "parse"

// Options configure the parser core.
type Options struct {
	// MaxDiagnostics stops collecting diagnostics after this many; 0 means
	// no limit. Dropped diagnostics are counted in Result.SuppressedDiagnostics.
	MaxDiagnostics int
}

// Parser is the mutable parsing state for one document.
type Parser struct {
	source *TokenSource
	opts   Options

	events     []Event
	diags      []diagnostics.Diagnostic
	suppressed int
	open       int
	lastEnd    int
	lastError  int
	state      Context
}

// New creates a parser reading from src.
func New(src *TokenSource, opts Options) *Parser {
	return &Parser{source: src, opts: opts, lastError: -1}
}

// Source returns the token source.
func (p *Parser) Source() *TokenSource {
	return p.source
}

// Text returns the full source text.
func (p *Parser) Text() string {
	return p.source.Text()
}

// Cur returns the kind of the current token.
func (p *Parser) Cur() syntax.Kind {
	return p.source.Current()
}

// CurRange returns the range of the current token.
func (p *Parser) CurRange() source.Range {
	return p.source.CurrentRange()
}

// CurText returns the text of the current token.
func (p *Parser) CurText() string {
	return p.source.CurrentText()
}

// At reports whether the current token is kind.
func (p *Parser) At(kind syntax.Kind) bool {
	return p.source.Current() == kind
}

// AtSet reports whether the current token is in set.
func (p *Parser) AtSet(set TokenSet) bool {
	return set.Contains(p.source.Current())
}

// AtContextual reports whether the current token is an identifier spelled
// text, as used for contextual keywords.
func (p *Parser) AtContextual(text string) bool {
	return p.source.Current() == syntax.TokIdent && p.source.CurrentText() == text
}

// Nth returns the kind of the token n positions ahead.
func (p *Parser) Nth(n int) syntax.Kind {
	return p.source.Nth(n).Kind
}

// NthAt reports whether the token n positions ahead is kind.
func (p *Parser) NthAt(n int, kind syntax.Kind) bool {
	return p.source.Nth(n).Kind == kind
}

// NthText returns the text of the token n positions ahead.
func (p *Parser) NthText(n int) string {
	return p.source.Nth(n).Range.Slice(p.source.Text())
}

// NthAtContextual reports whether the token n positions ahead is an
// identifier spelled text.
func (p *Parser) NthAtContextual(n int, text string) bool {
	return p.Nth(n) == syntax.TokIdent && p.NthText(n) == text
}

// HasPrecedingLineBreak reports whether a line break precedes the current
// token.
func (p *Parser) HasPrecedingLineBreak() bool {
	return p.source.HasPrecedingLineBreak()
}

// HasNthPrecedingLineBreak reports whether a line break precedes the token
// n positions ahead.
func (p *Parser) HasNthPrecedingLineBreak(n int) bool {
	return p.source.Nth(n).LineBreak
}

// LastEnd returns the end offset of the last consumed token.
func (p *Parser) LastEnd() int {
	return p.lastEnd
}

// Bump consumes the current token, which must be kind.
func (p *Parser) Bump(kind syntax.Kind) {
	if p.Cur() != kind {
		panic(fmt.Sprintf("parser: bump of %s at %s", kind, p.Cur()))
	}
	p.doBump(kind, p.source.Bump)
}

// BumpWithContext consumes the current token, which must be kind, and lexes
// the next token in ctx.
func (p *Parser) BumpWithContext(kind syntax.Kind, ctx lexer.Context) {
	if p.Cur() != kind {
		panic(fmt.Sprintf("parser: bump of %s at %s", kind, p.Cur()))
	}
	p.doBump(kind, func() { p.source.BumpWithContext(ctx) })
}

// BumpAny consumes the current token whatever its kind. It must not be
// called at the end of the file.
func (p *Parser) BumpAny() {
	if p.At(syntax.TokEOF) {
		panic("parser: bump of any token at the end of the file")
	}
	p.doBump(p.Cur(), p.source.Bump)
}

// BumpRemap consumes the current token and records it as kind, as done for
// contextual keywords.
func (p *Parser) BumpRemap(kind syntax.Kind) {
	p.doBump(kind, p.source.Bump)
}

// BumpRemapWithContext consumes the current token as kind and lexes the
// next token in ctx.
func (p *Parser) BumpRemapWithContext(kind syntax.Kind, ctx lexer.Context) {
	p.doBump(kind, func() { p.source.BumpWithContext(ctx) })
}

func (p *Parser) doBump(kind syntax.Kind, advance func()) {
	rng := p.CurRange()
	p.events = append(p.events, Event{Kind: EventToken, Node: kind, Range: rng})
	p.lastEnd = rng.End
	advance()
}

// Eat consumes the current token if it is kind.
func (p *Parser) Eat(kind syntax.Kind) bool {
	if !p.At(kind) {
		return false
	}
	p.Bump(kind)
	return true
}

// Expect consumes the current token if it is kind. Otherwise it reports a
// diagnostic and records an empty slot.
func (p *Parser) Expect(kind syntax.Kind) bool {
	if p.Eat(kind) {
		return true
	}
	p.Error(p.ExpectedToken(kind).Build())
	p.Missing()
	return false
}

// ExpectWithContext is Expect with the next token lexed in ctx.
func (p *Parser) ExpectWithContext(kind syntax.Kind, ctx lexer.Context) bool {
	if p.At(kind) {
		p.BumpWithContext(kind, ctx)
		return true
	}
	p.Error(p.ExpectedToken(kind).Build())
	p.Missing()
	return false
}

// Missing records an empty slot in the current node.
func (p *Parser) Missing() {
	p.events = append(p.events, Event{Kind: EventMissing})
}

// ReLex lexes the current token again under ctx and returns its new kind.
func (p *Parser) ReLex(ctx lexer.ReLexContext) syntax.Kind {
	return p.source.ReLex(ctx)
}

// SkipAsTrivia turns the current token into skipped trivia.
func (p *Parser) SkipAsTrivia() {
	p.source.SkipAsTrivia()
}

// Error records a diagnostic. A second error starting at the same offset as
// the previous one is dropped; it is almost always a consequence of the
// first.
func (p *Parser) Error(diag diagnostics.Diagnostic) {
	if diag.Severity == diagnostics.SeverityError {
		if diag.Primary.Range.Start == p.lastError {
			return
		}
		p.lastError = diag.Primary.Range.Start
	}
	if diag.Code == "" {
		diag.Code = DiagnosticCode
	}
	if p.opts.MaxDiagnostics > 0 && len(p.diags) >= p.opts.MaxDiagnostics {
		p.suppressed++
		return
	}
	p.diags = append(p.diags, diag)
}

// ErrorAt records an error diagnostic covering rng.
func (p *Parser) ErrorAt(rng source.Range, format string, args ...any) {
	p.Error(diagnostics.Newf(rng, format, args...).Code(DiagnosticCode).Build())
}

// Diagnostic starts a diagnostic builder for rng with the parser's code.
func (p *Parser) Diagnostic(rng source.Range, format string, args ...any) *diagnostics.Builder {
	return diagnostics.Newf(rng, format, args...).Code(DiagnosticCode)
}

// ExpectedToken builds the diagnostic for a missing kind token.
func (p *Parser) ExpectedToken(kind syntax.Kind) *diagnostics.Builder {
	return p.Expected(kind.Describe(), p.CurRange())
}

// Expected builds an "expected <what>" diagnostic for rng, naming what was
// found instead.
func (p *Parser) Expected(what string, rng source.Range) *diagnostics.Builder {
	if p.At(syntax.TokEOF) && rng.Start >= p.CurRange().Start {
		return p.Diagnostic(rng, "expected %s but instead the file ends", what).Label("the file ends here")
	}
	return p.Diagnostic(rng, "expected %s but instead found `%s`", what, rng.Slice(p.Text())).
		Label(fmt.Sprintf("expected %s here", what))
}

// Diagnostics returns the diagnostics collected so far.
func (p *Parser) Diagnostics() []diagnostics.Diagnostic {
	return p.diags
}

// Events returns the events recorded so far.
func (p *Parser) Events() []Event {
	return p.events
}

// Finish returns the recorded events and diagnostics. It panics if a marker
// was neither completed nor abandoned.
func (p *Parser) Finish() ([]Event, []diagnostics.Diagnostic) {
	if p.open != 0 {
		panic(fmt.Sprintf("parser: %d markers were neither completed nor abandoned", p.open))
	}
	return p.events, p.diags
}

// Checkpoint is a snapshot of the parser to return to with Rewind.
type Checkpoint struct {
	events     int
	diags      int
	suppressed int
	open       int
	lastEnd    int
	lastError  int
	source     SourceCheckpoint
}

// Checkpoint captures the current state.
func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{
		events:     len(p.events),
		diags:      len(p.diags),
		suppressed: p.suppressed,
		open:       p.open,
		lastEnd:    p.lastEnd,
		lastError:  p.lastError,
		source:     p.source.Checkpoint(),
	}
}

// Rewind discards every event, diagnostic and token consumed since cp was
// taken. Markers started after cp must not be used afterwards.
func (p *Parser) Rewind(cp Checkpoint) {
	if cp.events > len(p.events) || cp.diags > len(p.diags) {
		panic("parser: rewind to a stale checkpoint")
	}
	p.events = p.events[:cp.events]
	p.diags = p.diags[:cp.diags]
	p.suppressed = cp.suppressed
	p.open = cp.open
	p.lastEnd = cp.lastEnd
	p.lastError = cp.lastError
	p.source.Rewind(cp.source)
}
