package jsparser

import (
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var bindingRecovery = parser.NewRecovery(syntax.NodeBogusBinding, parser.NewTokenSet(
	syntax.TokComma, syntax.TokRBrack, syntax.TokRCurly, syntax.TokRParen, syntax.TokEq,
	syntax.TokSemicolon,
))

func (p *jsParser) atBindingStart() bool {
	return p.At(syntax.TokIdent) || p.At(syntax.TokLBrack) || p.At(syntax.TokLCurly)
}

// parseBinding parses an identifier, array pattern or object pattern.
func (p *jsParser) parseBinding() parser.Parsed {
	switch kind := p.Cur(); {
	case kind == syntax.TokIdent:
		return parser.Present(p.parseIdentifierBinding())
	case kind == syntax.TokLBrack:
		return parser.Present(p.parseArrayBindingPattern())
	case kind == syntax.TokLCurly:
		return parser.Present(p.parseObjectBindingPattern())
	case kind.IsKeyword() && !p.NthAt(1, syntax.TokLParen):
		m := p.Start()
		p.Error(p.Diagnostic(p.CurRange(), "illegal use of reserved keyword `%s` as an identifier", p.CurText()).Build())
		p.BumpAny()
		return parser.Present(m.Complete(p.Parser, syntax.NodeIdentifierBinding))
	}
	return parser.Absent()
}

// parseIdentifierBinding parses the current identifier as a binding and
// reports names that are reserved in the current context.
func (p *jsParser) parseIdentifierBinding() parser.CompletedMarker {
	m := p.Start()
	p.checkIdentifier(true)
	p.Bump(syntax.TokIdent)
	return m.Complete(p.Parser, syntax.NodeIdentifierBinding)
}

// checkIdentifier reports contextual keywords that cannot be identifiers
// here.
func (p *jsParser) checkIdentifier(binding bool) {
	state := p.State()
	switch name := p.CurText(); {
	case name == "await" && p.awaitAllowed():
		p.Error(p.Diagnostic(p.CurRange(), "illegal use of `await` as an identifier in an async context").Build())
	case name == "yield" && (state.Has(parser.InGenerator) || state.Has(parser.Strict)):
		p.Error(p.Diagnostic(p.CurRange(), "illegal use of `yield` as an identifier in generator functions and strict mode").Build())
	case binding && state.Has(parser.Strict) && (name == "eval" || name == "arguments"):
		p.Error(p.Diagnostic(p.CurRange(), "illegal use of `%s` as an identifier in strict mode", name).Build())
	}
}

// awaitAllowed reports whether `await` is an operator here.
func (p *jsParser) awaitAllowed() bool {
	state := p.State()
	return state.Has(parser.InAsync) || (p.isModule() && !state.Has(parser.InFunction))
}

func (p *jsParser) parseArrayBindingPattern() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLBrack)
	list := p.Start()
	var progress parser.Progress
	for !p.At(syntax.TokRBrack) && !p.At(syntax.TokEOF) {
		progress.Assert(p.Parser)
		if p.At(syntax.TokComma) {
			p.Start().Complete(p.Parser, syntax.NodeArrayHole)
			p.Bump(syntax.TokComma)
			continue
		}
		if !p.parseArrayBindingElement() {
			break
		}
		if p.At(syntax.TokRBrack) {
			break
		}
		if !p.Eat(syntax.TokComma) {
			p.Error(p.ExpectedToken(syntax.TokComma).Build())
			if !p.atBindingStart() && !p.At(syntax.TokDot3) {
				break
			}
		}
	}
	list.Complete(p.Parser, syntax.NodeArrayBindingElementList)
	p.Expect(syntax.TokRBrack)
	return m.Complete(p.Parser, syntax.NodeArrayBindingPattern)
}

// parseArrayBindingElement reports whether parsing can continue.
func (p *jsParser) parseArrayBindingElement() bool {
	if p.At(syntax.TokDot3) {
		m := p.Start()
		p.Bump(syntax.TokDot3)
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
		cm := m.Complete(p.Parser, syntax.NodeArrayBindingPatternRestElement)
		if p.At(syntax.TokComma) {
			p.ErrorAt(cm.Range(), "a rest element must be the last element of an array pattern")
		}
		return true
	}
	m := p.Start()
	if p.parseBinding().IsAbsent() {
		m.Abandon(p.Parser)
		p.Error(expectedBinding(p.Parser, p.CurRange()))
		_, err := bindingRecovery.Recover(p.Parser)
		return err == nil && !p.At(syntax.TokRCurly) && !p.At(syntax.TokRParen) && !p.At(syntax.TokSemicolon)
	}
	p.parseInitializer().OrMissing(p.Parser)
	m.Complete(p.Parser, syntax.NodeArrayBindingPatternElement)
	return true
}

func (p *jsParser) parseObjectBindingPattern() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeObjectBindingPropertyList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseObjectBindingProperty() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery:     bindingRecovery,
			Expected:     parser.ExpectedNode("a property pattern"),
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeObjectBindingPattern)
}

func (p *jsParser) parseObjectBindingProperty() parser.Parsed {
	m := p.Start()
	switch {
	case p.At(syntax.TokDot3):
		p.Bump(syntax.TokDot3)
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
		return parser.Present(m.Complete(p.Parser, syntax.NodeObjectBindingPatternRest))
	case p.At(syntax.TokIdent) && !p.NthAt(1, syntax.TokColon):
		p.parseIdentifierBinding()
		p.parseInitializer().OrMissing(p.Parser)
		return parser.Present(m.Complete(p.Parser, syntax.NodeObjectBindingPatternShorthandProperty))
	}
	if p.parseMemberName(false).IsAbsent() {
		m.Abandon(p.Parser)
		return parser.Absent()
	}
	p.Expect(syntax.TokColon)
	p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
	p.parseInitializer().OrMissing(p.Parser)
	return parser.Present(m.Complete(p.Parser, syntax.NodeObjectBindingPatternProperty))
}
