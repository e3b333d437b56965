package jsparser

import (
	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// parseJSXTagExpression parses a JSX element or fragment in expression
// position.
func (p *jsParser) parseJSXTagExpression() parser.CompletedMarker {
	m := p.Start()
	p.parseJSXElement(lexer.ContextRegular)
	return m.Complete(p.Parser, syntax.NodeJSXTagExpression)
}

// parseJSXElement parses an element, a self-closing element or a fragment
// starting at `<`. after is the lexing context of the token that follows
// the element.
func (p *jsParser) parseJSXElement(after lexer.Context) parser.CompletedMarker {
	m := p.Start()
	opening := p.Start()
	p.BumpWithContext(syntax.TokLAngle, lexer.ContextJSXTag)

	if p.At(syntax.TokRAngle) {
		p.BumpWithContext(syntax.TokRAngle, lexer.ContextJSXChild)
		opening.Complete(p.Parser, syntax.NodeJSXOpeningFragment)
		p.parseJSXChildren()
		p.parseJSXClosingFragment(after)
		return m.Complete(p.Parser, syntax.NodeJSXFragment)
	}

	nameRange, name := p.parseJSXElementName()
	p.Missing()
	p.parseJSXAttributes()

	if p.At(syntax.TokSlash) {
		p.BumpWithContext(syntax.TokSlash, lexer.ContextJSXTag)
		p.ExpectWithContext(syntax.TokRAngle, after)
		cm := opening.Complete(p.Parser, syntax.NodeJSXSelfClosingElement)
		m.Abandon(p.Parser)
		return cm
	}
	p.ExpectWithContext(syntax.TokRAngle, lexer.ContextJSXChild)
	opening.Complete(p.Parser, syntax.NodeJSXOpeningElement)
	p.parseJSXChildren()
	p.parseJSXClosingElement(name, nameRange, after)
	return m.Complete(p.Parser, syntax.NodeJSXElement)
}

// parseJSXElementName parses `a`, `a.b.c` or `a:b` and returns its range
// and text.
func (p *jsParser) parseJSXElementName() (source.Range, string) {
	if !p.At(syntax.TokJSXIdent) {
		p.Error(p.Expected("a JSX element name", p.CurRange()).Build())
		p.Missing()
		return p.CurRange(), ""
	}
	start := p.CurRange().Start
	m := p.Start()
	p.BumpWithContext(syntax.TokJSXIdent, lexer.ContextJSXTag)
	if p.At(syntax.TokColon) {
		p.BumpWithContext(syntax.TokColon, lexer.ContextJSXTag)
		p.expectJSXIdent()
		m.Complete(p.Parser, syntax.NodeJSXNamespaceName)
	} else {
		cm := m.Complete(p.Parser, syntax.NodeJSXName)
		for p.At(syntax.TokDot) {
			member := cm.Precede(p.Parser)
			p.BumpWithContext(syntax.TokDot, lexer.ContextJSXTag)
			name := p.Start()
			p.expectJSXIdent()
			name.Complete(p.Parser, syntax.NodeJSXName)
			cm = member.Complete(p.Parser, syntax.NodeJSXMemberName)
		}
	}
	rng := source.NewRange(start, p.LastEnd())
	return rng, rng.Slice(p.Text())
}

func (p *jsParser) expectJSXIdent() {
	if p.At(syntax.TokJSXIdent) {
		p.BumpWithContext(syntax.TokJSXIdent, lexer.ContextJSXTag)
		return
	}
	p.Error(p.Expected("a JSX name", p.CurRange()).Build())
	p.Missing()
}

func (p *jsParser) parseJSXAttributes() {
	list := p.Start()
	var progress parser.Progress
loop:
	for {
		progress.Assert(p.Parser)
		switch {
		case p.At(syntax.TokJSXIdent):
			p.parseJSXAttribute()
		case p.At(syntax.TokLCurly):
			m := p.Start()
			p.Bump(syntax.TokLCurly)
			p.Expect(syntax.TokDot3)
			p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
			p.ExpectWithContext(syntax.TokRCurly, lexer.ContextJSXTag)
			m.Complete(p.Parser, syntax.NodeJSXSpreadAttribute)
		default:
			break loop
		}
	}
	list.Complete(p.Parser, syntax.NodeJSXAttributeList)
}

func (p *jsParser) parseJSXAttribute() {
	m := p.Start()
	name := p.Start()
	p.BumpWithContext(syntax.TokJSXIdent, lexer.ContextJSXTag)
	if p.At(syntax.TokColon) {
		p.BumpWithContext(syntax.TokColon, lexer.ContextJSXTag)
		p.expectJSXIdent()
		name.Complete(p.Parser, syntax.NodeJSXNamespaceName)
	} else {
		name.Complete(p.Parser, syntax.NodeJSXName)
	}

	if !p.At(syntax.TokEq) {
		p.Missing()
		m.Complete(p.Parser, syntax.NodeJSXAttribute)
		return
	}
	init := p.Start()
	p.BumpWithContext(syntax.TokEq, lexer.ContextJSXTag)
	switch p.Cur() {
	case syntax.TokJSXStringLiteral:
		value := p.Start()
		p.BumpWithContext(syntax.TokJSXStringLiteral, lexer.ContextJSXTag)
		value.Complete(p.Parser, syntax.NodeJSXString)
	case syntax.TokLCurly:
		value := p.Start()
		p.Bump(syntax.TokLCurly)
		p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		p.ExpectWithContext(syntax.TokRCurly, lexer.ContextJSXTag)
		value.Complete(p.Parser, syntax.NodeJSXExpressionAttributeValue)
	case syntax.TokLAngle:
		p.parseJSXElement(lexer.ContextJSXTag)
	default:
		p.Error(p.Expected("a JSX attribute value", p.CurRange()).Build())
		p.Missing()
	}
	init.Complete(p.Parser, syntax.NodeJSXAttributeInitializerClause)
	m.Complete(p.Parser, syntax.NodeJSXAttribute)
}

// parseJSXChildren parses text, expression children and nested elements
// up to a closing tag.
func (p *jsParser) parseJSXChildren() {
	list := p.Start()
	var progress parser.Progress
loop:
	for {
		progress.Assert(p.Parser)
		switch p.Cur() {
		case syntax.TokJSXText:
			m := p.Start()
			p.BumpWithContext(syntax.TokJSXText, lexer.ContextJSXChild)
			m.Complete(p.Parser, syntax.NodeJSXText)
		case syntax.TokLCurly:
			m := p.Start()
			p.Bump(syntax.TokLCurly)
			if p.Eat(syntax.TokDot3) {
				p.parseExpression().OrAddDiagnostic(p.Parser, expectedExpression)
				p.ExpectWithContext(syntax.TokRCurly, lexer.ContextJSXChild)
				m.Complete(p.Parser, syntax.NodeJSXSpreadChild)
				continue
			}
			p.parseExpression().OrMissing(p.Parser)
			p.ExpectWithContext(syntax.TokRCurly, lexer.ContextJSXChild)
			m.Complete(p.Parser, syntax.NodeJSXExpressionChild)
		case syntax.TokLAngle:
			if p.NthAt(1, syntax.TokSlash) {
				break loop
			}
			p.parseJSXElement(lexer.ContextJSXChild)
		default:
			break loop
		}
	}
	list.Complete(p.Parser, syntax.NodeJSXChildList)
}

func (p *jsParser) parseJSXClosingElement(name string, nameRange source.Range, after lexer.Context) {
	if !p.At(syntax.TokLAngle) {
		p.Error(p.Diagnostic(p.CurRange(), "expected corresponding closing tag for `%s`", name).
			Detail(nameRange, "opening tag").Build())
		p.Missing()
		return
	}
	m := p.Start()
	p.BumpWithContext(syntax.TokLAngle, lexer.ContextJSXTag)
	p.ExpectWithContext(syntax.TokSlash, lexer.ContextJSXTag)
	closeRange, closeName := p.parseJSXElementName()
	if closeName != name {
		p.Error(p.Diagnostic(closeRange, "expected corresponding closing tag for `%s`", name).
			Detail(nameRange, "opening tag").Build())
	}
	p.ExpectWithContext(syntax.TokRAngle, after)
	m.Complete(p.Parser, syntax.NodeJSXClosingElement)
}

func (p *jsParser) parseJSXClosingFragment(after lexer.Context) {
	if !p.At(syntax.TokLAngle) {
		p.Error(p.Expected("a closing fragment `</>`", p.CurRange()).Build())
		p.Missing()
		return
	}
	m := p.Start()
	p.BumpWithContext(syntax.TokLAngle, lexer.ContextJSXTag)
	p.ExpectWithContext(syntax.TokSlash, lexer.ContextJSXTag)
	p.ExpectWithContext(syntax.TokRAngle, after)
	m.Complete(p.Parser, syntax.NodeJSXClosingFragment)
}
