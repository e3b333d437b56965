// Package jsparser parses JavaScript, TypeScript and JSX into lossless
// syntax trees.
//
// The parser never fails: malformed input produces diagnostics and bogus
// nodes, and the tree always reproduces the source text exactly.
package jsparser

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// SourceType selects between module and script grammar.
type SourceType uint8

const (
	// Module is strict and allows import and export declarations.
	Module SourceType = iota
	// Script is the classic sloppy-mode grammar.
	Script
)

func (s SourceType) String() string {
	if s == Script {
		return "script"
	}
	return "module"
}

// Options configure the grammar.
type Options struct {
	SourceType SourceType
	TypeScript bool
	JSX        bool
	// MaxDiagnostics caps the number of collected diagnostics; 0 means no
	// limit.
	MaxDiagnostics int
}

// OptionsForPath derives options from a file extension.
func OptionsForPath(path string) Options {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return Options{TypeScript: true}
	case ".tsx":
		return Options{TypeScript: true, JSX: true}
	case ".jsx":
		return Options{JSX: true}
	case ".cjs":
		return Options{SourceType: Script}
	default:
		return Options{JSX: true}
	}
}

// Parse parses src.
func Parse(src string, opts Options) *parser.Result {
	p := newParser(src, opts)
	p.parseProgram()
	return p.Build()
}

type jsParser struct {
	*parser.Parser
	opts Options

	labels        map[string]bool
	defaultExport source.Range
	hasDefault    bool

	// lastFunctionFlags describes the function declaration completed last.
	lastFunctionFlags functionFlags
}

func newParser(src string, opts Options) *jsParser {
	base := parser.New(parser.NewTokenSource(src, lexer.ContextRegular), parser.Options{MaxDiagnostics: opts.MaxDiagnostics})
	return &jsParser{Parser: base, opts: opts, labels: map[string]bool{}}
}

func (p *jsParser) withState(change parser.StateChange, fn func() parser.Parsed) parser.Parsed {
	return parser.WithState(p.Parser, change, fn)
}

func (p *jsParser) isModule() bool {
	return p.opts.SourceType == Module
}

func (p *jsParser) parseProgram() {
	m := p.Start()
	base := parser.IncludeIn
	if p.isModule() {
		base |= parser.Strict
	}

	p.withState(parser.StateChange{Set: base}, func() parser.Parsed {
		strict := p.parseDirectives()
		change := parser.StateChange{}
		if strict {
			change.Set = parser.Strict
		}
		p.withState(change, func() parser.Parsed {
			kind := syntax.NodeStatementList
			if p.isModule() {
				kind = syntax.NodeModuleItemList
			}
			p.statementList(kind, func(p *jsParser) bool { return false })
			return parser.Absent()
		})
		return parser.Absent()
	})

	p.Bump(syntax.TokEOF)
	if p.isModule() {
		m.Complete(p.Parser, syntax.NodeModule)
	} else {
		m.Complete(p.Parser, syntax.NodeScript)
	}
}

// parseDirectives parses the directive prologue and reports whether it
// contains "use strict".
func (p *jsParser) parseDirectives() bool {
	list := p.Start()
	strict := false
	for p.atDirective() {
		m := p.Start()
		text := p.CurText()
		p.Bump(syntax.TokStringLiteral)
		p.semicolon()
		m.Complete(p.Parser, syntax.NodeDirective)
		if len(text) >= 2 && text[1:len(text)-1] == "use strict" {
			strict = true
		}
	}
	list.Complete(p.Parser, syntax.NodeDirectiveList)
	return strict
}

func (p *jsParser) atDirective() bool {
	if !p.At(syntax.TokStringLiteral) {
		return false
	}
	switch p.Nth(1) {
	case syntax.TokSemicolon, syntax.TokRCurly, syntax.TokEOF:
		return true
	}
	return p.HasNthPrecedingLineBreak(1) && !continuesExpression.Contains(p.Nth(1))
}

// continuesExpression lists tokens that continue an expression across a
// line break, so no semicolon is inserted before them.
var continuesExpression = parser.NewTokenSet(
	syntax.TokDot, syntax.TokQuestionDot, syntax.TokLParen, syntax.TokLBrack, syntax.TokBacktick,
	syntax.TokComma, syntax.TokQuestion, syntax.TokEq, syntax.TokPlus, syntax.TokMinus, syntax.TokStar,
	syntax.TokSlash, syntax.TokPercent, syntax.TokEq2, syntax.TokEq3, syntax.TokNeq, syntax.TokNeq2,
	syntax.TokLAngle, syntax.TokRAngle, syntax.TokLtEq, syntax.TokAmp, syntax.TokAmp2, syntax.TokPipe,
	syntax.TokPipe2, syntax.TokCaret, syntax.TokQuestion2, syntax.TokStar2, syntax.TokInstanceofKw,
	syntax.TokInKw,
)

// semicolon consumes a statement terminator, applying automatic semicolon
// insertion.
func (p *jsParser) semicolon() {
	if p.Eat(syntax.TokSemicolon) {
		return
	}
	p.Missing()
	if p.canInsertSemicolon() {
		return
	}
	p.Error(p.Diagnostic(p.CurRange(),
		"expected a semicolon or an implicit semicolon after a statement, but found none").
		Hint("an explicit or implicit semicolon is expected here").Build())
}

func (p *jsParser) canInsertSemicolon() bool {
	return p.At(syntax.TokRCurly) || p.At(syntax.TokEOF) || p.HasPrecedingLineBreak()
}

// tsOnly reports TypeScript syntax used in a JavaScript file.
func (p *jsParser) tsOnly(rng source.Range, what string) {
	if p.opts.TypeScript {
		return
	}
	p.Error(p.Diagnostic(rng, "%s are a TypeScript only feature", what).
		Hint("convert the file to a TypeScript file or remove the syntax").Build())
}

// bumpAs consumes the current identifier as the contextual keyword kind.
func (p *jsParser) bumpAs(kind syntax.Kind) {
	p.BumpRemap(kind)
}

// isNameToken reports whether kind can be used as a property name, which
// allows reserved words.
func isNameToken(kind syntax.Kind) bool {
	return kind == syntax.TokIdent || kind.IsKeyword()
}

// atIdentifier reports whether the current token can be an identifier
// reference or binding in the current context.
func (p *jsParser) atIdentifier() bool {
	return p.At(syntax.TokIdent)
}

func (p *jsParser) text(cm parser.CompletedMarker) string {
	return cm.Range().Slice(p.Text())
}
