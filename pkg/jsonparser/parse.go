// Package jsonparser parses JSON and JSONC documents into lossless syntax
// trees.
package jsonparser

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

// Options configure the accepted dialect.
type Options struct {
	// AllowComments accepts `//` and `/* */` comments.
	AllowComments bool
	// AllowTrailingCommas accepts a comma after the last member or element.
	AllowTrailingCommas bool
	// MaxDiagnostics caps the number of collected diagnostics; 0 means no
	// limit.
	MaxDiagnostics int
}

// jsoncFiles are well-known files that are JSON with comments regardless of
// their extension.
var jsoncFiles = map[string]bool{
	"tsconfig.json":     true,
	"jsconfig.json":     true,
	".eslintrc.json":    true,
	"devcontainer.json": true,
	"settings.json":     true,
	"launch.json":       true,
	"tasks.json":        true,
}

// OptionsForPath derives options from a file name.
func OptionsForPath(path string) Options {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".jsonc") || jsoncFiles[base] {
		return Options{AllowComments: true, AllowTrailingCommas: true}
	}
	return Options{}
}

var (
	valueRecovery   = parser.NewRecovery(syntax.NodeBogusJSONValue, parser.NewTokenSet(syntax.TokComma, syntax.TokRCurly, syntax.TokRBrack, syntax.TokColon))
	memberRecovery  = parser.NewRecovery(syntax.NodeBogusJSONValue, parser.NewTokenSet(syntax.TokComma, syntax.TokRCurly))
	expectedValue   = parser.ExpectedNode("an array, an object, or a literal")
	expectedMember  = parser.ExpectedNode("a property")
	expectedElement = parser.ExpectedNode("an array element")
)

// Parse parses src.
func Parse(src string, opts Options) *parser.Result {
	p := &jsonParser{
		Parser: parser.New(parser.NewTokenSource(src, lexer.ContextJSON), parser.Options{MaxDiagnostics: opts.MaxDiagnostics}),
		opts:   opts,
	}
	p.parseRoot()
	p.checkComments()
	return p.Build()
}

type jsonParser struct {
	*parser.Parser
	opts Options
}

func (p *jsonParser) parseRoot() {
	m := p.Start()
	p.parseValue().OrAddDiagnostic(p.Parser, expectedValue)

	// Anything after the first value is kept as skipped trivia.
	if !p.At(syntax.TokEOF) {
		p.Error(p.Diagnostic(p.CurRange(), "end of file expected").
			Hint("use an array for a sequence of values: `[1, 2]`").Build())
		for !p.At(syntax.TokEOF) {
			p.SkipAsTrivia()
		}
	}
	p.Bump(syntax.TokEOF)
	m.Complete(p.Parser, syntax.NodeJSONRoot)
}

func (p *jsonParser) parseValue() parser.Parsed {
	switch p.Cur() {
	case syntax.TokLCurly:
		return parser.Present(p.parseObject())
	case syntax.TokLBrack:
		return parser.Present(p.parseArray())
	case syntax.TokStringLiteral:
		return parser.Present(p.literal(syntax.NodeJSONStringValue))
	case syntax.TokNumberLiteral:
		return parser.Present(p.literal(syntax.NodeJSONNumberValue))
	case syntax.TokTrueKw, syntax.TokFalseKw:
		return parser.Present(p.literal(syntax.NodeJSONBooleanValue))
	case syntax.TokNullKw:
		return parser.Present(p.literal(syntax.NodeJSONNullValue))
	case syntax.TokIdent:
		m := p.Start()
		p.Error(p.Diagnostic(p.CurRange(), "`%s` is not a valid JSON value", p.CurText()).
			Hint("wrap the text in double quotes to make it a string").Build())
		p.BumpAny()
		return parser.Present(m.Complete(p.Parser, syntax.NodeBogusJSONValue))
	}
	return parser.Absent()
}

func (p *jsonParser) literal(kind syntax.Kind) parser.CompletedMarker {
	if p.At(syntax.TokStringLiteral) {
		p.checkQuotes()
	}
	m := p.Start()
	p.BumpAny()
	return m.Complete(p.Parser, kind)
}

func (p *jsonParser) checkQuotes() {
	if strings.HasPrefix(p.CurText(), "'") {
		p.Error(p.Diagnostic(p.CurRange(), "JSON standard does not allow single quoted strings").
			Hint("use double quotes to escape the string").Build())
	}
}

func (p *jsonParser) parseObject() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeJSONMemberList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseMember() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery:     memberRecovery,
			Expected:     expectedMember,
		},
		Separator:     syntax.TokComma,
		AllowTrailing: p.opts.AllowTrailingCommas,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeJSONObjectValue)
}

func (p *jsonParser) parseMember() parser.Parsed {
	m := p.Start()
	switch p.Cur() {
	case syntax.TokStringLiteral:
		p.checkQuotes()
		name := p.Start()
		p.Bump(syntax.TokStringLiteral)
		name.Complete(p.Parser, syntax.NodeJSONMemberName)
	case syntax.TokIdent, syntax.TokNumberLiteral, syntax.TokTrueKw, syntax.TokFalseKw, syntax.TokNullKw:
		p.Error(p.Diagnostic(p.CurRange(), "property names must be double quoted strings").Build())
		name := p.Start()
		p.BumpRemap(syntax.TokStringLiteral)
		name.Complete(p.Parser, syntax.NodeJSONMemberName)
	default:
		if !p.At(syntax.TokColon) {
			m.Abandon(p.Parser)
			return parser.Absent()
		}
		p.Error(expectedMember(p.Parser, p.CurRange()))
		p.Missing()
	}

	p.Expect(syntax.TokColon)
	// At the end of the file the value slot is left empty.
	_, _ = p.parseValue().OrRecover(p.Parser, valueRecovery, expectedValue)
	return parser.Present(m.Complete(p.Parser, syntax.NodeJSONMember))
}

func (p *jsonParser) parseArray() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLBrack)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeJSONArrayElementList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseValue() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRBrack) },
			Recovery:     valueRecovery,
			Expected:     expectedElement,
		},
		Separator:     syntax.TokComma,
		AllowTrailing: p.opts.AllowTrailingCommas,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRBrack)
	return m.Complete(p.Parser, syntax.NodeJSONArrayValue)
}

// checkComments reports comments unless the dialect accepts them.
func (p *jsonParser) checkComments() {
	if p.opts.AllowComments {
		return
	}
	for _, piece := range p.Source().Trivia() {
		if piece.Kind.IsComment() {
			p.Error(p.Diagnostic(piece.Range, "JSON standard does not allow comments").
				Hint("rename the file to `.jsonc` or enable comments in the configuration").Build())
		}
	}
}
