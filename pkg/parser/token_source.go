package parser

import (
	"strings"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// TokenSource is the parser's cursor over the lexer. It skips trivia,
// recording it for the tree builder, and buffers lookahead.
type TokenSource struct {
	lex        *lexer.Lexer
	defaultCtx lexer.Context

	current      lexer.Token
	lineBreak    bool
	currentDiags int
	afterToken   bool

	trivia    []syntax.SourceTrivia
	lookahead []Lookahead
}

// Lookahead is a token ahead of the current one.
type Lookahead struct {
	Kind      syntax.Kind
	Range     source.Range
	LineBreak bool
}

// NewTokenSource creates a token source over text whose tokens are lexed in
// ctx unless the parser asks for a different context.
func NewTokenSource(text string, ctx lexer.Context) *TokenSource {
	s := &TokenSource{lex: lexer.New(text), defaultCtx: ctx}
	s.next(ctx)
	return s
}

// Text returns the source text.
func (s *TokenSource) Text() string {
	return s.lex.Source()
}

// Current returns the kind of the current token.
func (s *TokenSource) Current() syntax.Kind {
	return s.current.Kind
}

// CurrentRange returns the range of the current token.
func (s *TokenSource) CurrentRange() source.Range {
	return s.current.Range
}

// CurrentText returns the text of the current token.
func (s *TokenSource) CurrentText() string {
	return s.current.Range.Slice(s.lex.Source())
}

// HasPrecedingLineBreak reports whether a line break separates the current
// token from the previous one.
func (s *TokenSource) HasPrecedingLineBreak() bool {
	return s.lineBreak
}

// Position returns the start offset of the current token.
func (s *TokenSource) Position() int {
	return s.current.Range.Start
}

// Trivia returns the trivia recorded so far, in source order.
func (s *TokenSource) Trivia() []syntax.SourceTrivia {
	return s.trivia
}

// Diagnostics returns the lexer diagnostics for the consumed input.
func (s *TokenSource) Diagnostics() []diagnostics.Diagnostic {
	return s.lex.Diagnostics()
}

// Bump advances to the next token, lexed in the default context.
func (s *TokenSource) Bump() {
	s.BumpWithContext(s.defaultCtx)
}

// BumpWithContext advances to the next token, lexed in ctx.
func (s *TokenSource) BumpWithContext(ctx lexer.Context) {
	if s.current.Kind == syntax.TokEOF {
		return
	}
	s.afterToken = true
	s.next(ctx)
}

// SkipAsTrivia turns the current token into skipped trivia and advances.
func (s *TokenSource) SkipAsTrivia() {
	if s.current.Kind == syntax.TokEOF {
		return
	}
	s.trivia = append(s.trivia, syntax.SourceTrivia{Kind: syntax.TriviaSkipped, Range: s.current.Range})
	s.next(s.defaultCtx)
}

// ReLex lexes the current token again under ctx and returns its new kind.
func (s *TokenSource) ReLex(ctx lexer.ReLexContext) syntax.Kind {
	if s.current.Kind == syntax.TokEOF {
		return syntax.TokEOF
	}
	s.lookahead = s.lookahead[:0]
	s.lex.Rewind(lexer.Checkpoint{Pos: s.current.Range.Start, Diags: s.currentDiags})
	s.current = s.lex.ReLex(s.current.Range.Start, ctx)
	return s.current.Kind
}

// Nth returns the token n positions ahead of the current one; Nth(0) is the
// current token. Lookahead is always lexed in the default context.
func (s *TokenSource) Nth(n int) Lookahead {
	if n == 0 {
		return Lookahead{Kind: s.current.Kind, Range: s.current.Range, LineBreak: s.lineBreak}
	}
	if n <= len(s.lookahead) {
		return s.lookahead[n-1]
	}

	cp := s.lex.Checkpoint()
	defer s.lex.Rewind(cp)
	if len(s.lookahead) > 0 {
		last := s.lookahead[len(s.lookahead)-1]
		if last.Kind == syntax.TokEOF {
			return last
		}
		s.lex.Rewind(lexer.Checkpoint{Pos: last.Range.End, Diags: cp.Diags})
	}
	for len(s.lookahead) < n {
		lineBreak := false
		for {
			token := s.lex.Next(s.defaultCtx)
			if !token.Kind.IsTrivia() {
				s.lookahead = append(s.lookahead, Lookahead{Kind: token.Kind, Range: token.Range, LineBreak: lineBreak})
				break
			}
			if token.Kind == syntax.TokNewline || containsLineBreak(token.Range.Slice(s.lex.Source())) {
				lineBreak = true
			}
		}
		if s.lookahead[len(s.lookahead)-1].Kind == syntax.TokEOF {
			return s.lookahead[len(s.lookahead)-1]
		}
	}
	return s.lookahead[n-1]
}

func (s *TokenSource) next(ctx lexer.Context) {
	s.lookahead = s.lookahead[:0]
	s.lineBreak = false
	text := s.lex.Source()
	for {
		diags := len(s.lex.Diagnostics())
		token := s.lex.Next(ctx)
		if !token.Kind.IsTrivia() {
			s.current = token
			s.currentDiags = diags
			return
		}

		piece := syntax.SourceTrivia{Kind: triviaKind(token, text), Range: token.Range}
		switch {
		case piece.Kind == syntax.TriviaNewline:
			s.lineBreak = true
			s.afterToken = false
		case s.afterToken && !s.lineBreak:
			piece.Trailing = true
			if containsLineBreak(token.Range.Slice(text)) {
				s.lineBreak = true
				s.afterToken = false
			}
		case containsLineBreak(token.Range.Slice(text)):
			s.lineBreak = true
		}
		s.trivia = append(s.trivia, piece)
	}
}

func triviaKind(token lexer.Token, text string) syntax.TriviaKind {
	switch token.Kind {
	case syntax.TokNewline:
		return syntax.TriviaNewline
	case syntax.TokComment:
		if strings.HasPrefix(token.Range.Slice(text), "/*") {
			return syntax.TriviaMultiLineComment
		}
		return syntax.TriviaSingleLineComment
	case syntax.TokSkippedTrivia:
		return syntax.TriviaSkipped
	default:
		return syntax.TriviaWhitespace
	}
}

func containsLineBreak(text string) bool {
	return strings.ContainsAny(text, "\n\r\u2028\u2029")
}

// SourceCheckpoint is the token source state captured by a parser checkpoint.
type SourceCheckpoint struct {
	lex          lexer.Checkpoint
	current      lexer.Token
	lineBreak    bool
	currentDiags int
	afterToken   bool
	trivia       int
}

// Checkpoint captures the current state.
func (s *TokenSource) Checkpoint() SourceCheckpoint {
	return SourceCheckpoint{
		lex:          s.lex.Checkpoint(),
		current:      s.current,
		lineBreak:    s.lineBreak,
		currentDiags: s.currentDiags,
		afterToken:   s.afterToken,
		trivia:       len(s.trivia),
	}
}

// Rewind restores a checkpoint.
func (s *TokenSource) Rewind(cp SourceCheckpoint) {
	if cp.trivia > len(s.trivia) {
		panic("parser: rewind to a stale token source checkpoint")
	}
	s.lex.Rewind(cp.lex)
	s.current = cp.current
	s.lineBreak = cp.lineBreak
	s.currentDiags = cp.currentDiags
	s.afterToken = cp.afterToken
	s.trivia = s.trivia[:cp.trivia]
	s.lookahead = s.lookahead[:0]
}
