package jsparser

import (
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var typeRecovery = parser.NewRecovery(syntax.NodeBogusType, parser.NewTokenSet(
	syntax.TokComma, syntax.TokRAngle, syntax.TokRParen, syntax.TokRBrack, syntax.TokRCurly,
	syntax.TokLCurly, syntax.TokEq, syntax.TokSemicolon,
))

var typeMemberRecovery = parser.NewRecovery(syntax.NodeBogusMember, parser.NewTokenSet(
	syntax.TokComma, syntax.TokSemicolon, syntax.TokRCurly,
)).WithLineBreak()

var startsType = parser.NewTokenSet(
	syntax.TokIdent, syntax.TokStringLiteral, syntax.TokNumberLiteral, syntax.TokBigIntLiteral,
	syntax.TokTrueKw, syntax.TokFalseKw, syntax.TokNullKw, syntax.TokVoidKw, syntax.TokThisKw,
	syntax.TokTypeofKw, syntax.TokLBrack, syntax.TokLCurly, syntax.TokLParen, syntax.TokLAngle,
	syntax.TokMinus, syntax.TokBacktick, syntax.TokNewKw, syntax.TokPipe, syntax.TokAmp,
)

// parseTypeAnnotation parses `: Type`.
func (p *jsParser) parseTypeAnnotation() parser.Parsed {
	if !p.At(syntax.TokColon) {
		return parser.Absent()
	}
	m := p.Start()
	p.tsOnly(p.CurRange(), "type annotations")
	p.Bump(syntax.TokColon)
	p.parseType().OrAddDiagnostic(p.Parser, expectedType)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeAnnotation))
}

// parseReturnTypeAnnotation parses `: Type` after a parameter list, where
// the type may be a type predicate.
func (p *jsParser) parseReturnTypeAnnotation() parser.Parsed {
	if !p.At(syntax.TokColon) {
		return parser.Absent()
	}
	m := p.Start()
	p.tsOnly(p.CurRange(), "return type annotations")
	p.Bump(syntax.TokColon)
	p.parseTypeOrPredicate().OrAddDiagnostic(p.Parser, expectedType)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsReturnTypeAnnotation))
}

func (p *jsParser) parseTypeOrPredicate() parser.Parsed {
	atName := func(n int) bool { return p.NthAt(n, syntax.TokIdent) || p.NthAt(n, syntax.TokThisKw) }
	switch {
	case p.AtContextual("asserts") && atName(1) && !p.HasNthPrecedingLineBreak(1):
		m := p.Start()
		p.bumpAs(syntax.TokAssertsKw)
		p.BumpAny()
		if p.AtContextual("is") && !p.HasPrecedingLineBreak() {
			p.bumpAs(syntax.TokIsKw)
			p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		} else {
			p.Missing()
			p.Missing()
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypePredicate))
	case atName(0) && p.NthAtContextual(1, "is") && !p.HasNthPrecedingLineBreak(1):
		m := p.Start()
		p.Missing()
		p.BumpAny()
		p.bumpAs(syntax.TokIsKw)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypePredicate))
	}
	return p.parseType()
}

// parseType parses a type, including function, constructor and
// conditional types.
func (p *jsParser) parseType() parser.Parsed {
	return p.withState(parser.StateChange{Set: parser.InTypeContext}, func() parser.Parsed {
		if p.atFunctionType() {
			return parser.Present(p.parseFunctionType())
		}
		if p.At(syntax.TokNewKw) || (p.AtContextual("abstract") && p.NthAt(1, syntax.TokNewKw)) {
			return parser.Present(p.parseConstructorType())
		}

		check := p.parseUnionType()
		cm, ok := check.Marker()
		if !ok || !p.At(syntax.TokExtendsKw) || p.HasPrecedingLineBreak() {
			return check
		}
		m := cm.Precede(p.Parser)
		p.Bump(syntax.TokExtendsKw)
		p.parseUnionType().OrAddDiagnostic(p.Parser, expectedType)
		p.Expect(syntax.TokQuestion)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		p.Expect(syntax.TokColon)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsConditionalType))
	})
}

// atFunctionType reports whether a function type starts here. A
// parenthesized head is only a parameter list when `=>` follows it.
func (p *jsParser) atFunctionType() bool {
	if p.At(syntax.TokLAngle) {
		return true
	}
	if !p.At(syntax.TokLParen) {
		return false
	}
	switch p.Nth(1) {
	case syntax.TokRParen, syntax.TokDot3:
		return true
	case syntax.TokIdent, syntax.TokThisKw, syntax.TokLBrack, syntax.TokLCurly:
	default:
		return false
	}
	cp := p.Checkpoint()
	defer p.Rewind(cp)
	return parser.WithState(p.Parser, parser.StateChange{Set: parser.NoRecovery}, func() bool {
		diags := len(p.Diagnostics())
		p.parseParameters(0, false)
		return p.At(syntax.TokFatArrow) && len(p.Diagnostics()) == diags
	})
}

func (p *jsParser) parseFunctionType() parser.CompletedMarker {
	m := p.Start()
	p.parseTypeParameters().OrMissing(p.Parser)
	p.parseParameters(0, false)
	p.Expect(syntax.TokFatArrow)
	p.parseTypeOrPredicate().OrAddDiagnostic(p.Parser, expectedType)
	return m.Complete(p.Parser, syntax.NodeTsFunctionType)
}

func (p *jsParser) parseConstructorType() parser.CompletedMarker {
	m := p.Start()
	if p.AtContextual("abstract") {
		p.bumpAs(syntax.TokAbstractKw)
	} else {
		p.Missing()
	}
	p.Bump(syntax.TokNewKw)
	p.parseTypeParameters().OrMissing(p.Parser)
	if p.At(syntax.TokLParen) {
		p.parseParameters(0, false)
	} else {
		p.Error(p.ExpectedToken(syntax.TokLParen).Build())
		p.Missing()
	}
	p.Expect(syntax.TokFatArrow)
	p.parseType().OrAddDiagnostic(p.Parser, expectedType)
	return m.Complete(p.Parser, syntax.NodeTsConstructorType)
}

func (p *jsParser) parseUnionType() parser.Parsed {
	return p.parseTypeSequence(syntax.TokPipe, syntax.NodeTsUnionType, syntax.NodeTsUnionTypeVariantList,
		p.parseIntersectionType)
}

func (p *jsParser) parseIntersectionType() parser.Parsed {
	return p.parseTypeSequence(syntax.TokAmp, syntax.NodeTsIntersectionType, syntax.NodeTsIntersectionTypeElementList,
		p.parseTypeOperator)
}

// parseTypeSequence parses types joined by op. A leading op is kept in
// the leading_separator slot; a single type without one is returned as is.
func (p *jsParser) parseTypeSequence(op, kind, listKind syntax.Kind, element func() parser.Parsed) parser.Parsed {
	m := p.Start()
	leading := p.At(op)
	var slot parser.Reservation
	if leading {
		p.Bump(op)
	} else {
		slot = p.Reserve()
	}

	first := element()
	if !leading && (first.IsAbsent() || !p.At(op)) {
		m.Abandon(p.Parser)
		return first
	}
	if !leading {
		slot.FillMissing(p.Parser)
	}

	var list *parser.Marker
	if cm, ok := first.Marker(); ok {
		list = cm.Precede(p.Parser)
	} else {
		p.Error(expectedType(p.Parser, p.CurRange()))
		list = p.Start()
	}
	for p.At(op) {
		p.Bump(op)
		if element().IsAbsent() {
			p.Error(expectedType(p.Parser, p.CurRange()))
			break
		}
	}
	list.Complete(p.Parser, listKind)
	return parser.Present(m.Complete(p.Parser, kind))
}

func (p *jsParser) parseTypeOperator() parser.Parsed {
	operator := syntax.Tombstone
	switch {
	case p.AtContextual("keyof"):
		operator = syntax.TokKeyofKw
	case p.AtContextual("unique"):
		operator = syntax.TokUniqueKw
	case p.AtContextual("readonly"):
		operator = syntax.TokReadonlyKw
	case p.AtContextual("infer"):
		if p.NthAt(1, syntax.TokIdent) {
			return parser.Present(p.parseInferType())
		}
	}
	if operator != syntax.Tombstone && startsType.Contains(p.Nth(1)) && !p.NthAt(1, syntax.TokPipe) && !p.NthAt(1, syntax.TokAmp) {
		m := p.Start()
		p.bumpAs(operator)
		p.parseTypeOperator().OrAddDiagnostic(p.Parser, expectedType)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeOperatorType))
	}
	return p.parsePostfixType()
}

// parseInferType parses `infer T` with an optional constraint. The
// constraint is dropped when `?` follows it, which makes the `extends` part
// of an enclosing conditional type.
func (p *jsParser) parseInferType() parser.CompletedMarker {
	m := p.Start()
	p.bumpAs(syntax.TokInferKw)
	p.parseIdentifierBinding()
	constrained := p.At(syntax.TokExtendsKw) && p.Speculate(func() bool {
		c := p.Start()
		p.Bump(syntax.TokExtendsKw)
		if p.parseTypeOperator().IsAbsent() || p.At(syntax.TokQuestion) {
			return false
		}
		c.Complete(p.Parser, syntax.NodeTsTypeConstraintClause)
		return true
	})
	if !constrained {
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeTsInferType)
}

func (p *jsParser) parsePostfixType() parser.Parsed {
	primary := p.parsePrimaryType()
	cm, ok := primary.Marker()
	if !ok {
		return primary
	}
	for p.At(syntax.TokLBrack) && !p.HasPrecedingLineBreak() {
		m := cm.Precede(p.Parser)
		p.Bump(syntax.TokLBrack)
		if p.Eat(syntax.TokRBrack) {
			cm = m.Complete(p.Parser, syntax.NodeTsArrayType)
			continue
		}
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		p.Expect(syntax.TokRBrack)
		cm = m.Complete(p.Parser, syntax.NodeTsIndexedAccessType)
	}
	return parser.Present(cm)
}

func (p *jsParser) parsePrimaryType() parser.Parsed {
	switch p.Cur() {
	case syntax.TokIdent:
		return parser.Present(p.parseReferenceType())
	case syntax.TokVoidKw:
		m := p.Start()
		p.Bump(syntax.TokVoidKw)
		p.Missing()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsReferenceType))
	case syntax.TokThisKw:
		m := p.Start()
		p.Bump(syntax.TokThisKw)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsThisType))
	case syntax.TokStringLiteral, syntax.TokNumberLiteral, syntax.TokBigIntLiteral, syntax.TokTrueKw,
		syntax.TokFalseKw, syntax.TokNullKw:
		m := p.Start()
		p.Missing()
		p.BumpAny()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsLiteralType))
	case syntax.TokMinus:
		if !p.NthAt(1, syntax.TokNumberLiteral) && !p.NthAt(1, syntax.TokBigIntLiteral) {
			return parser.Absent()
		}
		m := p.Start()
		p.Bump(syntax.TokMinus)
		p.BumpAny()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsLiteralType))
	case syntax.TokBacktick:
		m := p.Start()
		p.Missing()
		template := p.Start()
		p.Missing()
		p.Missing()
		p.parseTemplateBody()
		template.Complete(p.Parser, syntax.NodeTemplateExpression)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsLiteralType))
	case syntax.TokTypeofKw:
		return parser.Present(p.parseTypeofType())
	case syntax.TokLBrack:
		return parser.Present(p.parseTupleType())
	case syntax.TokLCurly:
		if p.atMappedType() {
			return parser.Present(p.parseMappedType())
		}
		return parser.Present(p.parseObjectType())
	case syntax.TokLParen:
		m := p.Start()
		p.Bump(syntax.TokLParen)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		p.Expect(syntax.TokRParen)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsParenthesizedType))
	}
	return parser.Absent()
}

// parseEntityName parses `a.b.c` where every part is a name token.
func (p *jsParser) parseEntityName() {
	m := p.Start()
	p.BumpRemap(syntax.TokIdent)
	if !p.At(syntax.TokDot) {
		m.Abandon(p.Parser)
		return
	}
	p.Bump(syntax.TokDot)
	p.parseTypeMemberAccessName()
	cm := m.Complete(p.Parser, syntax.NodeTsQualifiedName)
	for p.At(syntax.TokDot) {
		outer := cm.Precede(p.Parser)
		p.Bump(syntax.TokDot)
		p.parseTypeMemberAccessName()
		cm = outer.Complete(p.Parser, syntax.NodeTsQualifiedName)
	}
}

func (p *jsParser) parseTypeMemberAccessName() {
	if isNameToken(p.Cur()) {
		p.BumpRemap(syntax.TokIdent)
		return
	}
	p.Error(expectedIdentifier(p.Parser, p.CurRange()))
	p.Missing()
}

func (p *jsParser) parseReferenceType() parser.CompletedMarker {
	m := p.Start()
	p.parseEntityName()
	if p.At(syntax.TokLAngle) && !p.HasPrecedingLineBreak() {
		p.parseTypeArguments()
	} else {
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeTsReferenceType)
}

func (p *jsParser) parseTypeofType() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokTypeofKw)
	switch {
	case p.At(syntax.TokImportKw):
		p.parseImportExpression()
	case isNameToken(p.Cur()):
		p.parseEntityName()
	default:
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		p.Missing()
	}
	if p.At(syntax.TokLAngle) && !p.HasPrecedingLineBreak() {
		p.parseTypeArguments()
	} else {
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeTsTypeofType)
}

func (p *jsParser) parseTupleType() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLBrack)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeTsTupleTypeElementList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseTupleElement() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRBrack) },
			Recovery:     typeRecovery,
			Expected:     expectedType,
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRBrack)
	return m.Complete(p.Parser, syntax.NodeTsTupleType)
}

func (p *jsParser) parseTupleElement() parser.Parsed {
	m := p.Start()
	rest := p.Eat(syntax.TokDot3)
	named := isNameToken(p.Cur()) && (p.NthAt(1, syntax.TokColon) ||
		(p.NthAt(1, syntax.TokQuestion) && p.NthAt(2, syntax.TokColon)))
	if named {
		if !rest {
			p.Missing()
		}
		p.BumpRemap(syntax.TokIdent)
		if !p.Eat(syntax.TokQuestion) {
			p.Missing()
		}
		p.Bump(syntax.TokColon)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsNamedTupleTypeElement))
	}
	if rest {
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsRestTupleTypeElement))
	}
	ty := p.parseType()
	if ty.IsAbsent() {
		m.Abandon(p.Parser)
		return ty
	}
	if p.Eat(syntax.TokQuestion) {
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsOptionalTupleTypeElement))
	}
	m.Abandon(p.Parser)
	return ty
}

// atMappedType looks for `{ [K in` with optional readonly modifiers.
func (p *jsParser) atMappedType() bool {
	n := 1
	if p.NthAt(n, syntax.TokPlus) || p.NthAt(n, syntax.TokMinus) {
		n++
		if !p.NthAtContextual(n, "readonly") {
			return false
		}
	}
	if p.NthAtContextual(n, "readonly") {
		n++
	}
	return p.NthAt(n, syntax.TokLBrack) && p.NthAt(n+1, syntax.TokIdent) && p.NthAt(n+2, syntax.TokInKw)
}

func (p *jsParser) parseMappedType() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	if p.At(syntax.TokPlus) || p.At(syntax.TokMinus) {
		p.BumpAny()
	} else {
		p.Missing()
	}
	if p.AtContextual("readonly") {
		p.bumpAs(syntax.TokReadonlyKw)
	} else {
		p.Missing()
	}
	p.Bump(syntax.TokLBrack)
	p.Bump(syntax.TokIdent)
	p.Bump(syntax.TokInKw)
	p.parseType().OrAddDiagnostic(p.Parser, expectedType)
	if p.AtContextual("as") {
		p.bumpAs(syntax.TokAsKw)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
	} else {
		p.Missing()
		p.Missing()
	}
	p.Expect(syntax.TokRBrack)
	switch {
	case (p.At(syntax.TokPlus) || p.At(syntax.TokMinus)) && p.NthAt(1, syntax.TokQuestion):
		p.BumpAny()
		p.Bump(syntax.TokQuestion)
	case p.At(syntax.TokQuestion):
		p.Missing()
		p.Bump(syntax.TokQuestion)
	default:
		p.Missing()
		p.Missing()
	}
	p.parseTypeAnnotation().OrMissing(p.Parser)
	if !p.Eat(syntax.TokSemicolon) && !p.Eat(syntax.TokComma) {
		p.Missing()
	}
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeTsMappedType)
}

func (p *jsParser) parseObjectType() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	p.parseTypeMemberList()
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeTsObjectType)
}

// parseTypeMemberList parses the members of an object type or interface
// body.
func (p *jsParser) parseTypeMemberList() parser.CompletedMarker {
	list := parser.NodeList{
		Kind:         syntax.NodeTsTypeMemberList,
		ParseElement: func(*parser.Parser) parser.Parsed { return p.parseTypeMember() },
		IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
		Recovery:     typeMemberRecovery,
		Expected:     parser.ExpectedNode("a property, a method or a signature"),
	}
	return list.Parse(p.Parser)
}

func (p *jsParser) parseTypeMember() parser.Parsed {
	m := p.Start()
	switch {
	case p.At(syntax.TokLParen) || p.At(syntax.TokLAngle):
		p.parseTypeParameters().OrMissing(p.Parser)
		p.parseParameters(0, false)
		p.parseReturnTypeAnnotation().OrMissing(p.Parser)
		p.typeMemberSeparator()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsCallSignatureTypeMember))
	case p.At(syntax.TokNewKw) && (p.NthAt(1, syntax.TokLParen) || p.NthAt(1, syntax.TokLAngle)):
		p.Bump(syntax.TokNewKw)
		p.parseTypeParameters().OrMissing(p.Parser)
		p.parseParameters(0, false)
		p.parseTypeAnnotation().OrMissing(p.Parser)
		p.typeMemberSeparator()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsConstructSignatureTypeMember))
	}

	readonly := p.AtContextual("readonly") && (p.atMemberNameAt(1) || p.NthAt(1, syntax.TokLBrack))
	readonlyRange := p.CurRange()
	if readonly {
		p.bumpAs(syntax.TokReadonlyKw)
	}
	if p.atIndexSignature() {
		if !readonly {
			p.Missing()
		}
		p.Bump(syntax.TokLBrack)
		param := p.Start()
		p.parseIdentifierBinding()
		p.parseTypeAnnotation().OrAddDiagnostic(p.Parser, parser.ExpectedNode("a type annotation"))
		param.Complete(p.Parser, syntax.NodeTsIndexSignatureParameter)
		p.Expect(syntax.TokRBrack)
		p.parseTypeAnnotation().OrAddDiagnostic(p.Parser, parser.ExpectedNode("a type annotation"))
		p.typeMemberSeparator()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsIndexSignatureTypeMember))
	}

	var slot parser.Reservation
	if !readonly {
		slot = p.Reserve()
	}
	if p.parseMemberName(false).IsAbsent() {
		if !readonly {
			m.Abandon(p.Parser)
			return parser.Absent()
		}
		p.Error(p.Expected("a member name", p.CurRange()).Build())
		p.Missing()
	}
	optional := p.Eat(syntax.TokQuestion)
	if p.At(syntax.TokLParen) || p.At(syntax.TokLAngle) {
		if !optional {
			p.Missing()
		}
		p.parseTypeParameters().OrMissing(p.Parser)
		p.parseParameters(0, false)
		p.parseReturnTypeAnnotation().OrMissing(p.Parser)
		p.typeMemberSeparator()
		if readonly {
			p.ErrorAt(readonlyRange, "`readonly` modifier can only appear on a property declaration")
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsMethodSignatureTypeMember))
	}
	if !readonly {
		slot.FillMissing(p.Parser)
	}
	if !optional {
		p.Missing()
	}
	p.parseTypeAnnotation().OrMissing(p.Parser)
	p.typeMemberSeparator()
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsPropertySignatureTypeMember))
}

func (p *jsParser) atIndexSignature() bool {
	return p.At(syntax.TokLBrack) && p.NthAt(1, syntax.TokIdent) && p.NthAt(2, syntax.TokColon)
}

// typeMemberSeparator consumes `,` or `;`. A line break or the closing
// brace also ends a member.
func (p *jsParser) typeMemberSeparator() {
	if p.Eat(syntax.TokComma) || p.Eat(syntax.TokSemicolon) {
		return
	}
	p.Missing()
	if !p.At(syntax.TokRCurly) && !p.HasPrecedingLineBreak() {
		p.Error(p.Expected("`,` or `;`", p.CurRange()).Build())
	}
}

// parseTypeParameters parses `<T extends U = V, ...>`.
func (p *jsParser) parseTypeParameters() parser.Parsed {
	if !p.At(syntax.TokLAngle) {
		return parser.Absent()
	}
	m := p.Start()
	p.tsOnly(p.CurRange(), "type parameters")
	p.Bump(syntax.TokLAngle)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeTsTypeParameterList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseTypeParameter() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRAngle) },
			Recovery:     typeRecovery,
			Expected:     parser.ExpectedNode("a type parameter"),
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	cm := list.Parse(p.Parser)
	if cm.Range().IsEmpty() {
		p.ErrorAt(p.CurRange(), "type parameter lists cannot be empty")
	}
	p.Expect(syntax.TokRAngle)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeParameters))
}

func (p *jsParser) parseTypeParameter() parser.Parsed {
	m := p.Start()
	modifiers := p.Start()
	for {
		switch {
		case p.At(syntax.TokInKw) && p.NthAt(1, syntax.TokIdent):
			p.Bump(syntax.TokInKw)
			continue
		case p.At(syntax.TokConstKw) && p.NthAt(1, syntax.TokIdent):
			p.Bump(syntax.TokConstKw)
			continue
		case p.AtContextual("out") && p.NthAt(1, syntax.TokIdent):
			p.bumpAs(syntax.TokOutKw)
			continue
		}
		break
	}
	modifiers.Complete(p.Parser, syntax.NodeModifierList)
	if !p.At(syntax.TokIdent) {
		m.Abandon(p.Parser)
		return parser.Absent()
	}
	p.parseIdentifierBinding()
	if p.At(syntax.TokExtendsKw) {
		c := p.Start()
		p.Bump(syntax.TokExtendsKw)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		c.Complete(p.Parser, syntax.NodeTsTypeConstraintClause)
	} else {
		p.Missing()
	}
	if p.At(syntax.TokEq) {
		d := p.Start()
		p.Bump(syntax.TokEq)
		p.parseType().OrAddDiagnostic(p.Parser, expectedType)
		d.Complete(p.Parser, syntax.NodeTsDefaultTypeClause)
	} else {
		p.Missing()
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeParameter))
}

// parseTypeArguments parses `<A, B>`.
func (p *jsParser) parseTypeArguments() parser.Parsed {
	if !p.At(syntax.TokLAngle) {
		return parser.Absent()
	}
	m := p.Start()
	p.tsOnly(p.CurRange(), "type arguments")
	p.Bump(syntax.TokLAngle)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeTsTypeArgumentList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseType() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRAngle) },
			Recovery:     typeRecovery,
			Expected:     expectedType,
		},
		Separator: syntax.TokComma,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRAngle)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeArguments))
}

// parseTypeList parses the comma separated references of extends and
// implements clauses.
func (p *jsParser) parseTypeList(atEnd func(*jsParser) bool) parser.CompletedMarker {
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind: syntax.NodeTsTypeList,
			ParseElement: func(*parser.Parser) parser.Parsed {
				if !p.At(syntax.TokIdent) {
					return parser.Absent()
				}
				return parser.Present(p.parseReferenceType())
			},
			IsAtEnd:  func(*parser.Parser) bool { return atEnd(p) },
			Recovery: typeRecovery,
			Expected: parser.ExpectedNode("a type reference"),
		},
		Separator: syntax.TokComma,
	}
	return list.Parse(p.Parser)
}
