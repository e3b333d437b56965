package jsparser

import (
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

type functionFlags uint8

const (
	functionAsync functionFlags = 1 << iota
	functionGenerator
)

func (f functionFlags) change() parser.StateChange {
	return parser.EnterFunction(f&functionAsync != 0, f&functionGenerator != 0)
}

var parameterRecovery = parser.NewRecovery(syntax.NodeBogusParameter, parser.NewTokenSet(
	syntax.TokRParen, syntax.TokComma, syntax.TokLCurly, syntax.TokFatArrow, syntax.TokSemicolon,
))

var classMemberRecovery = parser.NewRecovery(syntax.NodeBogusMember, parser.NewTokenSet(
	syntax.TokSemicolon, syntax.TokRCurly, syntax.TokAt,
)).WithLineBreak()

// parseFunctionHead parses the optional `async`, `function` and the
// optional `*`.
func (p *jsParser) parseFunctionHead() functionFlags {
	var flags functionFlags
	if p.AtContextual("async") {
		if p.State().Has(parser.InAmbient) {
			p.ErrorAt(p.CurRange(), "'async' modifier cannot be used in an ambient context")
		}
		p.bumpAs(syntax.TokAsyncKw)
		flags |= functionAsync
	} else {
		p.Missing()
	}
	p.Bump(syntax.TokFunctionKw)
	if p.Eat(syntax.TokStar) {
		flags |= functionGenerator
	} else {
		p.Missing()
	}
	return flags
}

// parseFunctionDeclaration parses a function declaration. The name may only
// be omitted after `export default`. Without a body the declaration is an
// overload signature in TypeScript.
func (p *jsParser) parseFunctionDeclaration(exportDefault bool) parser.Parsed {
	m := p.Start()
	flags := p.parseFunctionHead()

	if p.At(syntax.TokIdent) {
		p.parseIdentifierBinding()
	} else {
		if !exportDefault {
			p.Error(p.Diagnostic(p.CurRange(),
				"expected a name for the function in a function declaration, but found none").
				Label("a name is expected here").Build())
		}
		p.Missing()
	}

	p.parseTypeParameters().OrMissing(p.Parser)
	p.parseParameters(flags, false)
	p.parseReturnTypeAnnotation().OrMissing(p.Parser)

	kind := syntax.NodeFunctionDeclaration
	switch {
	case p.At(syntax.TokLCurly):
		p.parseFunctionBody(flags)
	case p.opts.TypeScript || p.State().Has(parser.InAmbient):
		kind = syntax.NodeTsDeclareFunctionDeclaration
		p.semicolon()
	default:
		p.Error(p.Expected("a function body", p.CurRange()).Build())
		p.Missing()
	}
	cm := m.Complete(p.Parser, kind)
	p.lastFunctionFlags = flags
	return parser.Present(cm)
}

// parseFunctionExpression parses `function` in expression position.
func (p *jsParser) parseFunctionExpression() parser.CompletedMarker {
	m := p.Start()
	flags := p.parseFunctionHead()
	if p.At(syntax.TokIdent) {
		parser.WithState(p.Parser, flags.change(), p.parseIdentifierBinding)
	} else {
		p.Missing()
	}
	p.parseTypeParameters().OrMissing(p.Parser)
	p.parseParameters(flags, false)
	p.parseReturnTypeAnnotation().OrMissing(p.Parser)
	p.parseFunctionBodyOrMissing(flags)
	return m.Complete(p.Parser, syntax.NodeFunctionExpression)
}

func (p *jsParser) parseFunctionBodyOrMissing(flags functionFlags) {
	if p.At(syntax.TokLCurly) {
		p.parseFunctionBody(flags)
		return
	}
	p.Error(p.Expected("a function body", p.CurRange()).Build())
	p.Missing()
}

// parseFunctionBody parses `{ directives statements }`. Labels of the
// enclosing function are not visible inside.
func (p *jsParser) parseFunctionBody(flags functionFlags) parser.CompletedMarker {
	outer := p.labels
	p.labels = map[string]bool{}
	defer func() { p.labels = outer }()

	return parser.WithState(p.Parser, flags.change(), func() parser.CompletedMarker {
		m := p.Start()
		p.Bump(syntax.TokLCurly)
		change := parser.StateChange{}
		if p.parseDirectives() {
			change.Set = parser.Strict
		}
		p.withState(change, func() parser.Parsed {
			return parser.Present(p.statementList(syntax.NodeStatementList, atRCurly))
		})
		p.Expect(syntax.TokRCurly)
		return m.Complete(p.Parser, syntax.NodeFunctionBody)
	})
}

// parseParameters parses a parenthesized parameter list. Constructors
// accept parameter properties.
func (p *jsParser) parseParameters(flags functionFlags, constructor bool) parser.CompletedMarker {
	m := p.Start()
	p.Expect(syntax.TokLParen)
	index := 0
	change := flags.change()
	change.Set &^= parser.InFunction
	parser.WithState(p.Parser, change, func() parser.CompletedMarker {
		list := parser.SeparatedList{
			NodeList: parser.NodeList{
				Kind: syntax.NodeParameterList,
				ParseElement: func(*parser.Parser) parser.Parsed {
					parsed := p.parseParameter(constructor, index == 0)
					index++
					return parsed
				},
				IsAtEnd:  func(*parser.Parser) bool { return p.At(syntax.TokRParen) },
				Recovery: parameterRecovery,
				Expected: parser.ExpectedNode("a parameter"),
			},
			Separator:     syntax.TokComma,
			AllowTrailing: true,
		}
		return list.Parse(p.Parser)
	})
	p.Expect(syntax.TokRParen)
	return m.Complete(p.Parser, syntax.NodeParameters)
}

func (p *jsParser) parseParameter(constructor, first bool) parser.Parsed {
	switch {
	case p.At(syntax.TokDot3):
		m := p.Start()
		p.Bump(syntax.TokDot3)
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
		p.parseTypeAnnotation().OrMissing(p.Parser)
		cm := m.Complete(p.Parser, syntax.NodeRestParameter)
		switch {
		case p.At(syntax.TokEq):
			p.ErrorAt(p.CurRange(), "a rest parameter cannot have an initializer")
		case p.At(syntax.TokComma):
			p.Error(p.Diagnostic(cm.Range(), "a rest parameter must be the last parameter").
				Hint("remove the parameters after the rest parameter").Build())
		}
		return parser.Present(cm)
	case first && p.At(syntax.TokThisKw):
		m := p.Start()
		p.tsOnly(p.CurRange(), "`this` parameters")
		p.Bump(syntax.TokThisKw)
		p.parseTypeAnnotation().OrMissing(p.Parser)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsThisParameter))
	}

	m := p.Start()
	list := p.Start()
	decorated := p.parseDecoratorElements()
	if constructor && p.atModifier(parameterModifiers) {
		p.parseModifierElements(parameterModifiers, false)
		list.Complete(p.Parser, syntax.NodeModifierList)
		formal := p.Start()
		p.Start().Complete(p.Parser, syntax.NodeDecoratorList)
		p.parseFormalParameterRest(true)
		formal.Complete(p.Parser, syntax.NodeFormalParameter)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsPropertyParameter))
	}
	if !decorated && !p.atBindingStart() {
		list.Abandon(p.Parser)
		m.Abandon(p.Parser)
		return parser.Absent()
	}
	list.Complete(p.Parser, syntax.NodeDecoratorList)
	p.parseFormalParameterRest(decorated)
	return parser.Present(m.Complete(p.Parser, syntax.NodeFormalParameter))
}

func (p *jsParser) parseFormalParameterRest(required bool) {
	binding := p.parseBinding()
	if required {
		binding.OrAddDiagnostic(p.Parser, expectedBinding)
	} else {
		binding.OrMissing(p.Parser)
	}
	optional := p.At(syntax.TokQuestion)
	if optional {
		p.tsOnly(p.CurRange(), "optional parameters")
		p.Bump(syntax.TokQuestion)
	} else {
		p.Missing()
	}
	p.parseTypeAnnotation().OrMissing(p.Parser)
	init := p.parseInitializer()
	if cm, ok := init.Marker(); ok && optional {
		p.Error(p.Diagnostic(cm.Range(), "parameter cannot have question mark and initializer").
			Hint("remove either the `?` or the initializer").Build())
	}
	init.OrMissing(p.Parser)
}

// parseDecoratorElements parses `@expr` decorators into the open list and
// reports whether there was one.
func (p *jsParser) parseDecoratorElements() bool {
	found := false
	for p.At(syntax.TokAt) {
		found = true
		m := p.Start()
		p.Bump(syntax.TokAt)
		p.parseDecoratorExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		m.Complete(p.Parser, syntax.NodeDecorator)
	}
	return found
}

// parseDecorators parses a possibly empty decorator list.
func (p *jsParser) parseDecorators() parser.CompletedMarker {
	m := p.Start()
	p.parseDecoratorElements()
	return m.Complete(p.Parser, syntax.NodeDecoratorList)
}

// parseDecoratedStatement parses a class or an export preceded by
// decorators.
func (p *jsParser) parseDecoratedStatement() parser.Parsed {
	m := p.Start()
	p.parseDecorators()
	switch {
	case p.At(syntax.TokExportKw):
		return p.parseExport(m)
	case p.At(syntax.TokClassKw), p.AtContextual("abstract") && p.NthAt(1, syntax.TokClassKw):
		return p.parseClassAfterDecorators(m, false)
	}
	p.Error(p.Diagnostic(p.CurRange(), "decorators are not valid here").
		Hint("decorators can only precede classes, class members and parameters").Build())
	return parser.Present(m.Complete(p.Parser, syntax.NodeBogusStatement))
}

func (p *jsParser) parseClassDeclaration(exportDefault bool) parser.Parsed {
	m := p.Start()
	p.parseDecorators()
	return p.parseClassAfterDecorators(m, exportDefault)
}

func (p *jsParser) parseClassAfterDecorators(m *parser.Marker, exportDefault bool) parser.Parsed {
	if p.AtContextual("abstract") {
		p.tsOnly(p.CurRange(), "abstract classes")
		p.bumpAs(syntax.TokAbstractKw)
	} else {
		p.Missing()
	}
	p.Expect(syntax.TokClassKw)
	if p.At(syntax.TokIdent) && !p.AtContextual("implements") {
		p.parseIdentifierBinding()
	} else {
		if !exportDefault {
			p.Error(p.Diagnostic(p.CurRange(),
				"expected a name for the class in a class declaration, but found none").
				Label("a name is expected here").Build())
		}
		p.Missing()
	}
	p.parseClassTail()
	return parser.Present(m.Complete(p.Parser, syntax.NodeClassDeclaration))
}

func (p *jsParser) parseClassExpression() parser.CompletedMarker {
	m := p.Start()
	p.parseDecorators()
	p.Expect(syntax.TokClassKw)
	if p.At(syntax.TokIdent) && !p.AtContextual("implements") {
		p.parseIdentifierBinding()
	} else {
		p.Missing()
	}
	p.parseClassTail()
	return m.Complete(p.Parser, syntax.NodeClassExpression)
}

// parseClassTail parses the type parameters, heritage clauses and body
// shared by class declarations and expressions.
func (p *jsParser) parseClassTail() {
	p.parseTypeParameters().OrMissing(p.Parser)

	if p.At(syntax.TokExtendsKw) {
		m := p.Start()
		p.Bump(syntax.TokExtendsKw)
		p.parseHeritageExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		if p.At(syntax.TokLAngle) {
			p.parseTypeArguments().OrMissing(p.Parser)
		} else {
			p.Missing()
		}
		m.Complete(p.Parser, syntax.NodeExtendsClause)
	} else {
		p.Missing()
	}

	if p.AtContextual("implements") {
		m := p.Start()
		p.tsOnly(p.CurRange(), "implements clauses")
		p.bumpAs(syntax.TokImplementsKw)
		p.parseTypeList(func(p *jsParser) bool { return p.At(syntax.TokLCurly) })
		m.Complete(p.Parser, syntax.NodeTsImplementsClause)
	} else {
		p.Missing()
	}

	p.Expect(syntax.TokLCurly)
	p.withState(parser.StateChange{Set: parser.Strict}, func() parser.Parsed {
		list := parser.NodeList{
			Kind:         syntax.NodeClassMemberList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseClassMember() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery:     classMemberRecovery,
			Expected:     parser.ExpectedNode("a class member"),
		}
		return parser.Present(list.Parse(p.Parser))
	})
	p.Expect(syntax.TokRCurly)
}

type modifierSet uint8

const (
	classModifiers modifierSet = iota
	parameterModifiers
)

var modifierKinds = map[string]syntax.Kind{
	"static":    syntax.TokStaticKw,
	"abstract":  syntax.TokAbstractKw,
	"public":    syntax.TokPublicKw,
	"private":   syntax.TokPrivateKw,
	"protected": syntax.TokProtectedKw,
	"readonly":  syntax.TokReadonlyKw,
	"override":  syntax.TokOverrideKw,
	"declare":   syntax.TokDeclareKw,
	"accessor":  syntax.TokAccessorKw,
}

// atModifier reports whether the current identifier is a modifier rather
// than the member or parameter name it could also be.
func (p *jsParser) atModifier(set modifierSet) bool {
	if !p.At(syntax.TokIdent) {
		return false
	}
	kind, ok := modifierKinds[p.CurText()]
	if !ok {
		return false
	}
	if set == parameterModifiers {
		switch kind {
		case syntax.TokStaticKw, syntax.TokAbstractKw, syntax.TokDeclareKw, syntax.TokAccessorKw:
			return false
		}
	}
	switch p.Nth(1) {
	case syntax.TokLParen, syntax.TokEq, syntax.TokSemicolon, syntax.TokRCurly, syntax.TokColon,
		syntax.TokQuestion, syntax.TokBang, syntax.TokLAngle, syntax.TokComma, syntax.TokRParen, syntax.TokEOF:
		return false
	}
	return kind == syntax.TokStaticKw || !p.HasNthPrecedingLineBreak(1)
}

// parseModifierElements parses modifiers, and decorators when allowed, into
// the open list. It reports whether anything was parsed.
func (p *jsParser) parseModifierElements(set modifierSet, decorators bool) bool {
	seen := map[syntax.Kind]bool{}
	found := false
	for {
		if decorators && p.At(syntax.TokAt) {
			found = p.parseDecoratorElements()
			continue
		}
		if !p.atModifier(set) {
			return found
		}
		found = true
		kind := modifierKinds[p.CurText()]
		if kind != syntax.TokStaticKw && kind != syntax.TokAccessorKw {
			p.tsOnly(p.CurRange(), "accessibility and other member modifiers")
		}
		if seen[kind] {
			p.Error(p.Diagnostic(p.CurRange(), "duplicate modifier `%s`", p.CurText()).Build())
		}
		seen[kind] = true
		p.bumpAs(kind)
	}
}

func (p *jsParser) parseClassMember() parser.Parsed {
	if p.At(syntax.TokSemicolon) {
		m := p.Start()
		p.Bump(syntax.TokSemicolon)
		return parser.Present(m.Complete(p.Parser, syntax.NodeEmptyClassMember))
	}
	if p.AtContextual("static") && p.NthAt(1, syntax.TokLCurly) {
		m := p.Start()
		p.bumpAs(syntax.TokStaticKw)
		p.Bump(syntax.TokLCurly)
		p.withState(parser.EnterFunction(false, false), func() parser.Parsed {
			return parser.Present(p.statementList(syntax.NodeStatementList, atRCurly))
		})
		p.Expect(syntax.TokRCurly)
		return parser.Present(m.Complete(p.Parser, syntax.NodeStaticInitializationBlockClassMember))
	}

	cp := p.Checkpoint()
	m := p.Start()
	modifiers := p.Start()
	hasModifiers := p.parseModifierElements(classModifiers, true)
	modifiers.Complete(p.Parser, syntax.NodeModifierList)

	if (p.AtContextual("get") || p.AtContextual("set")) && p.atMemberNameAt(1) {
		return parser.Present(p.parseAccessor(m, false))
	}
	parsed := p.parseMethodOrProperty(m, hasModifiers)
	if parsed.IsAbsent() {
		p.Rewind(cp)
	}
	return parsed
}

// atMemberNameAt reports whether the token n ahead starts a member name, so
// a preceding `get`, `set` or `async` is a keyword and not the name itself.
func (p *jsParser) atMemberNameAt(n int) bool {
	if p.HasNthPrecedingLineBreak(n) {
		return false
	}
	switch kind := p.Nth(n); {
	case isNameToken(kind), kind == syntax.TokStringLiteral, kind == syntax.TokNumberLiteral,
		kind == syntax.TokBigIntLiteral, kind == syntax.TokLBrack, kind == syntax.TokHash, kind == syntax.TokStar:
		return true
	}
	return false
}

// parseAccessor parses a getter or a setter after its modifiers.
func (p *jsParser) parseAccessor(m *parser.Marker, object bool) parser.CompletedMarker {
	getter := p.AtContextual("get")
	if getter {
		p.bumpAs(syntax.TokGetKw)
	} else {
		p.bumpAs(syntax.TokSetKw)
	}
	p.parseMemberName(!object).OrAddDiagnostic(p.Parser, parser.ExpectedNode("a member name"))
	p.Expect(syntax.TokLParen)
	if !getter {
		p.parseParameter(false, true).OrAddDiagnostic(p.Parser, parser.ExpectedNode("a parameter"))
	}
	p.Expect(syntax.TokRParen)
	if getter {
		p.parseReturnTypeAnnotation().OrMissing(p.Parser)
	}
	if p.At(syntax.TokLCurly) {
		p.parseFunctionBody(0)
	} else {
		if !p.opts.TypeScript || object {
			p.Error(p.Expected("a function body", p.CurRange()).Build())
		}
		p.Missing()
	}

	switch {
	case object && getter:
		return m.Complete(p.Parser, syntax.NodeGetterObjectMember)
	case object:
		return m.Complete(p.Parser, syntax.NodeSetterObjectMember)
	case getter:
		return m.Complete(p.Parser, syntax.NodeGetterClassMember)
	default:
		return m.Complete(p.Parser, syntax.NodeSetterClassMember)
	}
}

// parseMethodOrProperty parses a method, constructor or property after its
// modifiers. Reservations hold the async, star and question slots whose
// presence depends on what follows the name.
// Without modifiers, an async or a star and a name it returns Absent and the
// caller rewinds.
func (p *jsParser) parseMethodOrProperty(m *parser.Marker, hasModifiers bool) parser.Parsed {
	var flags functionFlags
	asyncSlot, starSlot := (*parser.Reservation)(nil), (*parser.Reservation)(nil)
	if p.AtContextual("async") && p.atMemberNameAt(1) {
		p.bumpAs(syntax.TokAsyncKw)
		flags |= functionAsync
	} else {
		r := p.Reserve()
		asyncSlot = &r
	}
	if p.Eat(syntax.TokStar) {
		flags |= functionGenerator
	} else {
		r := p.Reserve()
		starSlot = &r
	}

	nameText := p.CurText()
	if p.parseMemberName(true).IsAbsent() {
		if flags == 0 && !hasModifiers {
			return parser.Absent()
		}
		p.Error(p.Expected("a member name", p.CurRange()).Build())
		p.Missing()
	}

	var questionSlot *parser.Reservation
	hasQuestion, hasBang := false, false
	switch {
	case p.At(syntax.TokQuestion):
		p.tsOnly(p.CurRange(), "optional members")
		p.Bump(syntax.TokQuestion)
		hasQuestion = true
	case p.At(syntax.TokBang) && !p.HasPrecedingLineBreak():
		p.tsOnly(p.CurRange(), "definite assignment assertions")
		p.Bump(syntax.TokBang)
		hasBang = true
	default:
		r := p.Reserve()
		questionSlot = &r
	}

	isMethod := p.At(syntax.TokLParen) || p.At(syntax.TokLAngle)
	if isMethod && flags == 0 && !hasQuestion && !hasBang && isConstructorName(nameText) && p.At(syntax.TokLParen) {
		p.parseParameters(0, true)
		if p.At(syntax.TokLCurly) {
			p.parseFunctionBody(0)
		} else {
			if !p.opts.TypeScript {
				p.Error(p.Expected("a function body", p.CurRange()).Build())
			}
			p.Missing()
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodeConstructorClassMember))
	}

	if isMethod || flags != 0 {
		for _, slot := range []*parser.Reservation{asyncSlot, starSlot, questionSlot} {
			if slot != nil {
				slot.FillMissing(p.Parser)
			}
		}
		if hasBang {
			p.ErrorAt(p.CurRange(), "a definite assignment assertion is not allowed on a method")
		}
		p.parseTypeParameters().OrMissing(p.Parser)
		p.parseParameters(flags, false)
		p.parseReturnTypeAnnotation().OrMissing(p.Parser)
		if p.At(syntax.TokLCurly) {
			p.parseFunctionBody(flags)
			return parser.Present(m.Complete(p.Parser, syntax.NodeMethodClassMember))
		}
		if p.opts.TypeScript {
			p.semicolon()
			return parser.Present(m.Complete(p.Parser, syntax.NodeTsMethodSignatureClassMember))
		}
		p.Error(p.Expected("a function body", p.CurRange()).Build())
		p.Missing()
		return parser.Present(m.Complete(p.Parser, syntax.NodeMethodClassMember))
	}

	if questionSlot != nil {
		questionSlot.FillMissing(p.Parser)
	}
	p.parseTypeAnnotation().OrMissing(p.Parser)
	p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseInitializer).OrMissing(p.Parser)
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodePropertyClassMember))
}

func isConstructorName(text string) bool {
	return text == "constructor" || text == `"constructor"` || text == "'constructor'"
}

// parseMemberName parses a property name: an identifier or keyword, a
// string or number literal, a computed name, or a private name when
// private is true.
func (p *jsParser) parseMemberName(private bool) parser.Parsed {
	m := p.Start()
	switch kind := p.Cur(); {
	case kind == syntax.TokHash && private:
		p.Bump(syntax.TokHash)
		if isNameToken(p.Cur()) {
			p.BumpAny()
		} else {
			p.Error(p.Expected("an identifier", p.CurRange()).Build())
			p.Missing()
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodePrivateName))
	case kind == syntax.TokLBrack:
		p.Bump(syntax.TokLBrack)
		p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseAssignmentExpression).
			OrAddDiagnostic(p.Parser, expectedExpression)
		p.Expect(syntax.TokRBrack)
		return parser.Present(m.Complete(p.Parser, syntax.NodeComputedMemberName))
	case isNameToken(kind), kind == syntax.TokStringLiteral, kind == syntax.TokNumberLiteral,
		kind == syntax.TokBigIntLiteral:
		p.BumpAny()
		return parser.Present(m.Complete(p.Parser, syntax.NodeLiteralMemberName))
	}
	m.Abandon(p.Parser)
	return parser.Absent()
}
