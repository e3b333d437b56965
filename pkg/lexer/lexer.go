// Package lexer splits JavaScript, TypeScript, JSX and JSON source text into
// tokens and trivia.
//
// The lexer is driven one token at a time by a token source, which picks the
// Context for every call: the grammar alone decides whether `/` starts a
// regular expression, whether `>` joins a shift operator and where template
// chunks and JSX text begin. Errors never stop lexing; unlexable input
// becomes a TokError token and a diagnostic.
package lexer

import (
	"unicode/utf8"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// DiagnosticCode is the code attached to lexer diagnostics.
const DiagnosticCode = "lex"

// Context selects the lexical grammar for the next token.
type Context uint8

const (
	// ContextRegular is the default grammar; `/` is a division operator.
	ContextRegular Context = iota
	// ContextTemplateElement lexes template chunks, `${` and the closing
	// backtick. No trivia is produced.
	ContextTemplateElement
	// ContextJSXChild lexes JSX text, `{` and `<`. No trivia is produced.
	ContextJSXChild
	// ContextJSXTag lexes names that may contain dashes and string literals
	// without escapes.
	ContextJSXTag
	// ContextJSON lexes JSON: negative numbers are single tokens and only
	// double-quoted strings are valid.
	ContextJSON
)

// ReLexContext selects how the current token is lexed again.
type ReLexContext uint8

const (
	// ReLexRegex turns `/` or `/=` into a regular expression literal.
	ReLexRegex ReLexContext = iota
	// ReLexBinaryOperator joins `>` with the characters that follow it into
	// `>=`, `>>`, `>>=`, `>>>` or `>>>=`.
	ReLexBinaryOperator
	// ReLexJSXIdent lexes an identifier that may contain dashes.
	ReLexJSXIdent
)

// Token is one lexed token or trivia piece.
type Token struct {
	Kind  syntax.Kind
	Range source.Range
}

// Lexer produces tokens from source text.
type Lexer struct {
	src   string
	pos   int
	diags []diagnostics.Diagnostic
}

// New creates a lexer at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Source returns the text being lexed.
func (l *Lexer) Source() string {
	return l.src
}

// Position returns the current byte offset.
func (l *Lexer) Position() int {
	return l.pos
}

// Diagnostics returns the diagnostics reported so far.
func (l *Lexer) Diagnostics() []diagnostics.Diagnostic {
	return l.diags
}

// Checkpoint is the lexer state needed to resume from an earlier position.
type Checkpoint struct {
	Pos   int
	Diags int
}

// Checkpoint captures the current state.
func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{Pos: l.pos, Diags: len(l.diags)}
}

// Rewind restores a checkpoint, discarding diagnostics reported after it.
func (l *Lexer) Rewind(cp Checkpoint) {
	if cp.Pos > len(l.src) || cp.Diags > len(l.diags) {
		panic("lexer: rewind to a checkpoint from the future")
	}
	l.pos = cp.Pos
	l.diags = l.diags[:cp.Diags]
}

// Next lexes one token or trivia piece in ctx. At the end of the input it
// returns an empty TokEOF token, repeatedly.
func (l *Lexer) Next(ctx Context) Token {
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Kind: syntax.TokEOF, Range: source.At(l.pos)}
	}

	var kind syntax.Kind
	switch ctx {
	case ContextTemplateElement:
		kind = l.lexTemplateElement()
	case ContextJSXChild:
		kind = l.lexJSXChild()
	case ContextJSXTag:
		kind = l.lexJSXTag()
	case ContextJSON:
		kind = l.lexJSON()
	default:
		kind = l.lexRegular()
	}
	return Token{Kind: kind, Range: source.NewRange(start, l.pos)}
}

// ReLex lexes the token starting at start again under ctx. The lexer is left
// after the new token.
func (l *Lexer) ReLex(start int, ctx ReLexContext) Token {
	l.pos = start
	var kind syntax.Kind
	switch ctx {
	case ReLexRegex:
		kind = l.lexRegex()
	case ReLexBinaryOperator:
		kind = l.lexGreaterThan()
	case ReLexJSXIdent:
		if isIdentStart(l.peekRune()) {
			l.lexJSXName()
			kind = syntax.TokJSXIdent
		} else {
			kind = l.lexRegular()
		}
	}
	return Token{Kind: kind, Range: source.NewRange(start, l.pos)}
}

// Tokenize lexes src in the regular context and returns every token and
// trivia piece up to, and including, the end of file token. Regular
// expressions and template literals are not recognized; use a parser for
// that.
func Tokenize(src string) ([]Token, []diagnostics.Diagnostic) {
	lex := New(src)
	var tokens []Token
	for {
		token := lex.Next(ContextRegular)
		tokens = append(tokens, token)
		if token.Kind == syntax.TokEOF {
			return tokens, lex.Diagnostics()
		}
	}
}

func (l *Lexer) errorf(rng source.Range, format string, args ...any) {
	l.diags = append(l.diags, diagnostics.Newf(rng, format, args...).Code(DiagnosticCode).Build())
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) advanceRune() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return r
}

func (l *Lexer) eat(b byte) bool {
	if l.peek() == b && l.pos < len(l.src) {
		l.pos++
		return true
	}
	return false
}
