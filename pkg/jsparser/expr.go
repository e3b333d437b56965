package jsparser

import (
	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var expressionRecovery = parser.NewRecovery(syntax.NodeBogusExpression, parser.NewTokenSet(
	syntax.TokComma, syntax.TokRParen, syntax.TokRBrack, syntax.TokRCurly, syntax.TokSemicolon,
))

var objectMemberRecovery = parser.NewRecovery(syntax.NodeBogusMember, parser.NewTokenSet(
	syntax.TokComma, syntax.TokRCurly, syntax.TokSemicolon,
))

// startsExpression lists the tokens an expression can start with.
var startsExpression = parser.NewTokenSet(
	syntax.TokIdent, syntax.TokNumberLiteral, syntax.TokBigIntLiteral, syntax.TokStringLiteral,
	syntax.TokLParen, syntax.TokLBrack, syntax.TokLCurly, syntax.TokPlus, syntax.TokMinus, syntax.TokBang,
	syntax.TokTilde, syntax.TokPlus2, syntax.TokMinus2, syntax.TokThisKw, syntax.TokFunctionKw,
	syntax.TokClassKw, syntax.TokNewKw, syntax.TokDeleteKw, syntax.TokVoidKw, syntax.TokTypeofKw,
	syntax.TokSuperKw, syntax.TokImportKw, syntax.TokSlash, syntax.TokSlashEq, syntax.TokBacktick,
	syntax.TokLAngle, syntax.TokHash, syntax.TokAt, syntax.TokTrueKw, syntax.TokFalseKw, syntax.TokNullKw,
)

// parseExpression parses a comma separated sequence of assignment
// expressions.
func (p *jsParser) parseExpression() parser.Parsed {
	first := p.parseAssignmentExpression()
	cm, ok := first.Marker()
	if !ok {
		return first
	}
	for p.At(syntax.TokComma) {
		m := cm.Precede(p.Parser)
		p.Bump(syntax.TokComma)
		p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		cm = m.Complete(p.Parser, syntax.NodeSequenceExpression)
	}
	return parser.Present(cm)
}

func isAssignmentOperator(kind syntax.Kind) bool {
	switch kind {
	case syntax.TokEq, syntax.TokPlusEq, syntax.TokMinusEq, syntax.TokStarEq, syntax.TokSlashEq,
		syntax.TokPercentEq, syntax.TokStar2Eq, syntax.TokShlEq, syntax.TokShrEq, syntax.TokUShrEq,
		syntax.TokAmpEq, syntax.TokPipeEq, syntax.TokCaretEq, syntax.TokAmp2Eq, syntax.TokPipe2Eq,
		syntax.TokQuestion2Eq:
		return true
	}
	return false
}

// parseAssignmentExpression parses an assignment, an arrow function, a
// yield expression or a conditional expression.
func (p *jsParser) parseAssignmentExpression() parser.Parsed {
	if p.AtContextual("yield") && p.State().Has(parser.InGenerator) {
		return parser.Present(p.parseYieldExpression())
	}
	if arrow := p.tryArrowFunction(); arrow.IsPresent() {
		return arrow
	}

	target := p.parseConditionalExpression()
	cm, ok := target.Marker()
	if !ok || !isAssignmentOperator(p.Cur()) {
		return target
	}
	p.checkAssignmentTarget(cm, p.Cur() == syntax.TokEq)
	m := cm.Precede(p.Parser)
	p.BumpAny()
	p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodeAssignmentExpression))
}

// checkAssignmentTarget reports expressions that cannot be assigned to.
// Array and object literals are patterns only for plain `=`.
func (p *jsParser) checkAssignmentTarget(cm parser.CompletedMarker, pattern bool) {
	switch cm.Kind() {
	case syntax.NodeIdentifierExpression, syntax.NodeStaticMemberExpression, syntax.NodeComputedMemberExpression,
		syntax.NodeParenthesizedExpression, syntax.NodeTsNonNullAssertionExpression, syntax.NodeTsAsExpression,
		syntax.NodeTsSatisfiesExpression, syntax.NodeBogusExpression:
		return
	case syntax.NodeArrayExpression, syntax.NodeObjectExpression:
		if pattern {
			return
		}
	}
	p.Error(p.Diagnostic(cm.Range(), "invalid assignment to `%s`", p.text(cm)).
		Hint("only identifiers, member expressions and destructuring patterns can be assigned to").Build())
}

func (p *jsParser) parseYieldExpression() parser.CompletedMarker {
	m := p.Start()
	p.bumpAs(syntax.TokYieldKw)
	switch {
	case !p.HasPrecedingLineBreak() && p.At(syntax.TokStar):
		p.Bump(syntax.TokStar)
		p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	case !p.HasPrecedingLineBreak() && p.AtSet(startsExpression):
		p.Missing()
		p.parseAssignmentExpression().OrMissing(p.Parser)
	default:
		p.Missing()
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeYieldExpression)
}

// tryArrowFunction parses an arrow function if one starts at the current
// token. Parenthesized heads that may also be expressions are parsed
// speculatively.
func (p *jsParser) tryArrowFunction() parser.Parsed {
	if p.At(syntax.TokIdent) && p.NthAt(1, syntax.TokFatArrow) && !p.HasNthPrecedingLineBreak(1) {
		return parser.Present(p.parseSimpleArrow(false))
	}
	async := p.AtContextual("async") && !p.HasNthPrecedingLineBreak(1)
	if async && p.NthAt(1, syntax.TokIdent) && p.NthAt(2, syntax.TokFatArrow) && !p.HasNthPrecedingLineBreak(2) {
		return parser.Present(p.parseSimpleArrow(true))
	}

	switch p.isParenthesizedArrow(async) {
	case parser.False:
		return parser.Absent()
	case parser.True:
		m := p.Start()
		flags := p.parseArrowHead(async)
		if !p.At(syntax.TokFatArrow) {
			p.Error(p.ExpectedToken(syntax.TokFatArrow).Build())
			p.Missing()
			p.Missing()
			return parser.Present(m.Complete(p.Parser, syntax.NodeArrowFunctionExpression))
		}
		return parser.Present(p.finishArrow(m, flags))
	}

	var m *parser.Marker
	var flags functionFlags
	ok := p.Speculate(func() bool {
		diags := len(p.Diagnostics())
		m = p.Start()
		flags = p.parseArrowHead(async)
		return p.At(syntax.TokFatArrow) && !p.HasPrecedingLineBreak() && len(p.Diagnostics()) == diags
	})
	if !ok {
		return parser.Absent()
	}
	return parser.Present(p.finishArrow(m, flags))
}

// isParenthesizedArrow classifies the token after `(` or `async (`.
func (p *jsParser) isParenthesizedArrow(async bool) parser.Tristate {
	n := 0
	if async {
		n = 1
	}
	switch p.Nth(n) {
	case syntax.TokLAngle:
		if p.opts.TypeScript {
			return parser.Unknown
		}
		return parser.False
	case syntax.TokLParen:
	default:
		return parser.False
	}
	switch p.Nth(n + 1) {
	case syntax.TokRParen:
		if p.NthAt(n+2, syntax.TokFatArrow) || p.NthAt(n+2, syntax.TokColon) {
			return parser.True
		}
		return parser.Unknown
	case syntax.TokDot3:
		return parser.True
	case syntax.TokIdent, syntax.TokLBrack, syntax.TokLCurly, syntax.TokThisKw, syntax.TokAt:
		return parser.Unknown
	}
	return parser.False
}

// parseArrowHead parses `async`, type parameters, parameters and the
// return type of an arrow function.
func (p *jsParser) parseArrowHead(async bool) functionFlags {
	var flags functionFlags
	if async {
		p.bumpAs(syntax.TokAsyncKw)
		flags |= functionAsync
	} else {
		p.Missing()
	}
	if p.At(syntax.TokLAngle) {
		p.parseTypeParameters().OrMissing(p.Parser)
	} else {
		p.Missing()
	}
	p.parseParameters(flags, false)
	p.parseReturnTypeAnnotation().OrMissing(p.Parser)
	return flags
}

func (p *jsParser) parseSimpleArrow(async bool) parser.CompletedMarker {
	m := p.Start()
	var flags functionFlags
	if async {
		p.bumpAs(syntax.TokAsyncKw)
		flags |= functionAsync
	} else {
		p.Missing()
	}
	p.Missing()
	parser.WithState(p.Parser, flags.change(), p.parseIdentifierBinding)
	p.Missing()
	return p.finishArrow(m, flags)
}

func (p *jsParser) finishArrow(m *parser.Marker, flags functionFlags) parser.CompletedMarker {
	p.Bump(syntax.TokFatArrow)
	if p.At(syntax.TokLCurly) {
		p.parseFunctionBody(flags)
	} else {
		p.withState(flags.change(), p.parseAssignmentExpression).OrAddDiagnostic(p.Parser, expectedExpression)
	}
	return m.Complete(p.Parser, syntax.NodeArrowFunctionExpression)
}

func (p *jsParser) parseConditionalExpression() parser.Parsed {
	test := p.parseBinaryExpression(p.parseUnaryExpression(), 0)
	cm, ok := test.Marker()
	if !ok || !p.At(syntax.TokQuestion) {
		return test
	}
	m := cm.Precede(p.Parser)
	p.Bump(syntax.TokQuestion)
	p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseAssignmentExpression).
		OrAddDiagnostic(p.Parser, expectedExpression)
	p.Expect(syntax.TokColon)
	p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodeConditionalExpression))
}

// binaryOperator returns the precedence and node kind of a binary operator.
func (p *jsParser) binaryOperator(kind syntax.Kind) (int, syntax.Kind, bool) {
	switch kind {
	case syntax.TokQuestion2:
		return 1, syntax.NodeLogicalExpression, true
	case syntax.TokPipe2:
		return 2, syntax.NodeLogicalExpression, true
	case syntax.TokAmp2:
		return 3, syntax.NodeLogicalExpression, true
	case syntax.TokPipe:
		return 4, syntax.NodeBinaryExpression, true
	case syntax.TokCaret:
		return 5, syntax.NodeBinaryExpression, true
	case syntax.TokAmp:
		return 6, syntax.NodeBinaryExpression, true
	case syntax.TokEq2, syntax.TokNeq, syntax.TokEq3, syntax.TokNeq2:
		return 7, syntax.NodeBinaryExpression, true
	case syntax.TokLAngle, syntax.TokRAngle, syntax.TokLtEq, syntax.TokGtEq, syntax.TokInstanceofKw:
		return 8, syntax.NodeBinaryExpression, true
	case syntax.TokInKw:
		if p.State().Has(parser.IncludeIn) {
			return 8, syntax.NodeBinaryExpression, true
		}
	case syntax.TokShl, syntax.TokShr, syntax.TokUShr:
		return 9, syntax.NodeBinaryExpression, true
	case syntax.TokPlus, syntax.TokMinus:
		return 10, syntax.NodeBinaryExpression, true
	case syntax.TokStar, syntax.TokSlash, syntax.TokPercent:
		return 11, syntax.NodeBinaryExpression, true
	case syntax.TokStar2:
		return 12, syntax.NodeBinaryExpression, true
	}
	return 0, syntax.Tombstone, false
}

// relationalPrecedence is the precedence of `as` and `satisfies`.
const relationalPrecedence = 8

// parseBinaryExpression climbs operators binding tighter than minPrec.
// `**` is right associative.
func (p *jsParser) parseBinaryExpression(left parser.Parsed, minPrec int) parser.Parsed {
	lhs, ok := left.Marker()
	if !ok {
		return left
	}
	for {
		if p.At(syntax.TokRAngle) {
			p.ReLex(lexer.ReLexBinaryOperator)
		}
		if (p.AtContextual("as") || p.AtContextual("satisfies")) && !p.HasPrecedingLineBreak() {
			if relationalPrecedence <= minPrec {
				break
			}
			kind, keyword := syntax.NodeTsAsExpression, syntax.TokAsKw
			if p.AtContextual("satisfies") {
				kind, keyword = syntax.NodeTsSatisfiesExpression, syntax.TokSatisfiesKw
			}
			m := lhs.Precede(p.Parser)
			p.tsOnly(p.CurRange(), "type assertion expressions")
			p.bumpAs(keyword)
			p.parseType().OrAddDiagnostic(p.Parser, expectedType)
			lhs = m.Complete(p.Parser, kind)
			continue
		}

		prec, kind, isOp := p.binaryOperator(p.Cur())
		if !isOp || prec <= minPrec {
			break
		}
		m := lhs.Precede(p.Parser)
		op := p.Cur()
		p.BumpAny()
		rightMin := prec
		if op == syntax.TokStar2 {
			rightMin = prec - 1
		}
		p.parseBinaryExpression(p.parseUnaryExpression(), rightMin).OrAddDiagnostic(p.Parser, expectedExpression)
		lhs = m.Complete(p.Parser, kind)
	}
	return parser.Present(lhs)
}

func (p *jsParser) parseUnaryExpression() parser.Parsed {
	switch p.Cur() {
	case syntax.TokDeleteKw, syntax.TokVoidKw, syntax.TokTypeofKw, syntax.TokPlus, syntax.TokMinus,
		syntax.TokTilde, syntax.TokBang:
		m := p.Start()
		isDelete := p.At(syntax.TokDeleteKw)
		p.BumpAny()
		argument := p.parseUnaryExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		if isDelete && argument.Kind() == syntax.NodeIdentifierExpression && p.State().Has(parser.Strict) {
			cm, _ := argument.Marker()
			p.ErrorAt(cm.Range(), "the `delete` operator cannot be applied to an identifier in strict mode")
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodeUnaryExpression))
	case syntax.TokPlus2, syntax.TokMinus2:
		m := p.Start()
		p.BumpAny()
		operand := p.parseUnaryExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		if cm, ok := operand.Marker(); ok {
			p.checkAssignmentTarget(cm, false)
		}
		return parser.Present(m.Complete(p.Parser, syntax.NodePreUpdateExpression))
	case syntax.TokIdent:
		if p.AtContextual("await") {
			if awaitExpr, ok := p.tryAwaitExpression(); ok {
				return awaitExpr
			}
		}
	}
	return p.parsePostfixExpression()
}

// tryAwaitExpression parses `await` as an operator where it is one, and
// reports misplaced `await` operators in modules.
func (p *jsParser) tryAwaitExpression() (parser.Parsed, bool) {
	if !p.awaitAllowed() {
		if !p.isModule() || p.HasNthPrecedingLineBreak(1) || !startsExpression.Contains(p.Nth(1)) {
			return parser.Absent(), false
		}
		p.Error(p.Diagnostic(p.CurRange(), "`await` is only allowed within async functions and at the top levels of modules").
			Hint("mark the enclosing function as async").Build())
	}
	m := p.Start()
	p.bumpAs(syntax.TokAwaitKw)
	p.parseUnaryExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodeAwaitExpression)), true
}

func (p *jsParser) parsePostfixExpression() parser.Parsed {
	operand := p.parseLeftHandSideExpression()
	cm, ok := operand.Marker()
	if !ok || p.HasPrecedingLineBreak() || (!p.At(syntax.TokPlus2) && !p.At(syntax.TokMinus2)) {
		return operand
	}
	p.checkAssignmentTarget(cm, false)
	m := cm.Precede(p.Parser)
	p.BumpAny()
	return parser.Present(m.Complete(p.Parser, syntax.NodePostUpdateExpression))
}

type memberOptions struct {
	calls         bool
	typeArguments bool
}

func (p *jsParser) parseLeftHandSideExpression() parser.Parsed {
	var lhs parser.Parsed
	switch p.Cur() {
	case syntax.TokNewKw:
		lhs = parser.Present(p.parseNewExpression())
	case syntax.TokSuperKw:
		m := p.Start()
		p.Bump(syntax.TokSuperKw)
		lhs = parser.Present(m.Complete(p.Parser, syntax.NodeSuperExpression))
		if !p.At(syntax.TokLParen) && !p.At(syntax.TokDot) && !p.At(syntax.TokLBrack) {
			p.ErrorAt(p.CurRange(), "`super` must be followed by an argument list or a member access")
		}
	case syntax.TokImportKw:
		lhs = parser.Present(p.parseImportExpression())
	default:
		lhs = p.parsePrimaryExpression()
	}
	cm, ok := lhs.Marker()
	if !ok {
		return lhs
	}
	return parser.Present(p.parseMemberRest(cm, memberOptions{calls: true, typeArguments: true}))
}

// parseHeritageExpression parses the expression after `extends`. Type
// arguments that follow belong to the clause.
func (p *jsParser) parseHeritageExpression() parser.Parsed {
	primary := p.parsePrimaryExpression()
	cm, ok := primary.Marker()
	if !ok {
		return primary
	}
	return parser.Present(p.parseMemberRest(cm, memberOptions{calls: true}))
}

// parseDecoratorExpression parses the expression after `@`.
func (p *jsParser) parseDecoratorExpression() parser.Parsed {
	if p.At(syntax.TokLParen) {
		return p.parsePrimaryExpression()
	}
	if !p.At(syntax.TokIdent) {
		return parser.Absent()
	}
	m := p.Start()
	p.Bump(syntax.TokIdent)
	cm := m.Complete(p.Parser, syntax.NodeIdentifierExpression)
	for p.At(syntax.TokDot) {
		member := cm.Precede(p.Parser)
		p.Bump(syntax.TokDot)
		p.parseMemberAccessName()
		cm = member.Complete(p.Parser, syntax.NodeStaticMemberExpression)
	}
	if p.At(syntax.TokLParen) {
		call := cm.Precede(p.Parser)
		p.Missing()
		p.Missing()
		p.parseCallArguments()
		cm = call.Complete(p.Parser, syntax.NodeCallExpression)
	}
	return parser.Present(cm)
}

// parseMemberRest parses member accesses, calls, tagged templates and non
// null assertions following lhs.
func (p *jsParser) parseMemberRest(lhs parser.CompletedMarker, opts memberOptions) parser.CompletedMarker {
	for {
		switch {
		case p.At(syntax.TokDot):
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.TokDot)
			p.parseMemberAccessName()
			lhs = m.Complete(p.Parser, syntax.NodeStaticMemberExpression)
		case p.At(syntax.TokQuestionDot):
			if !opts.calls {
				p.ErrorAt(p.CurRange(), "invalid optional chain from new expression")
				return lhs
			}
			lhs = p.parseOptionalChain(lhs)
		case p.At(syntax.TokLBrack):
			m := lhs.Precede(p.Parser)
			p.Missing()
			p.Bump(syntax.TokLBrack)
			p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseExpression).
				OrAddDiagnostic(p.Parser, expectedExpression)
			p.Expect(syntax.TokRBrack)
			lhs = m.Complete(p.Parser, syntax.NodeComputedMemberExpression)
		case p.At(syntax.TokLParen) && opts.calls:
			m := lhs.Precede(p.Parser)
			p.Missing()
			p.Missing()
			p.parseCallArguments()
			lhs = m.Complete(p.Parser, syntax.NodeCallExpression)
		case p.At(syntax.TokBacktick):
			m := lhs.Precede(p.Parser)
			p.Missing()
			p.parseTemplateBody()
			lhs = m.Complete(p.Parser, syntax.NodeTemplateExpression)
		case p.At(syntax.TokBang) && p.opts.TypeScript && !p.HasPrecedingLineBreak():
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.TokBang)
			lhs = m.Complete(p.Parser, syntax.NodeTsNonNullAssertionExpression)
		case p.At(syntax.TokLAngle) && p.opts.TypeScript && opts.typeArguments:
			next := p.typeArgumentsFollowedBy(opts.calls)
			if next == syntax.Tombstone {
				return lhs
			}
			m := lhs.Precede(p.Parser)
			if next == syntax.TokLParen {
				p.Missing()
				p.parseTypeArguments()
				p.parseCallArguments()
				lhs = m.Complete(p.Parser, syntax.NodeCallExpression)
			} else {
				p.parseTypeArguments()
				p.parseTemplateBody()
				lhs = m.Complete(p.Parser, syntax.NodeTemplateExpression)
			}
		default:
			return lhs
		}
	}
}

// typeArgumentsFollowedBy checks whether type arguments start at `<` and
// are followed by a call or a template. It returns the token after them,
// or Tombstone when `<` is a comparison.
func (p *jsParser) typeArgumentsFollowedBy(calls bool) syntax.Kind {
	cp := p.Checkpoint()
	defer p.Rewind(cp)
	return parser.WithState(p.Parser, parser.StateChange{Set: parser.NoRecovery}, func() syntax.Kind {
		diags := len(p.Diagnostics())
		if p.parseTypeArguments().IsAbsent() || len(p.Diagnostics()) != diags {
			return syntax.Tombstone
		}
		switch {
		case p.At(syntax.TokLParen) && calls:
			return syntax.TokLParen
		case p.At(syntax.TokBacktick):
			return syntax.TokBacktick
		}
		return syntax.Tombstone
	})
}

func (p *jsParser) parseOptionalChain(lhs parser.CompletedMarker) parser.CompletedMarker {
	m := lhs.Precede(p.Parser)
	switch p.Nth(1) {
	case syntax.TokLParen:
		p.Bump(syntax.TokQuestionDot)
		p.Missing()
		p.parseCallArguments()
		return m.Complete(p.Parser, syntax.NodeCallExpression)
	case syntax.TokLAngle:
		p.Bump(syntax.TokQuestionDot)
		p.parseTypeArguments().OrMissing(p.Parser)
		if p.At(syntax.TokLParen) {
			p.parseCallArguments()
		} else {
			p.Error(p.ExpectedToken(syntax.TokLParen).Build())
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.NodeCallExpression)
	case syntax.TokLBrack:
		p.Bump(syntax.TokQuestionDot)
		p.Bump(syntax.TokLBrack)
		p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseExpression).
			OrAddDiagnostic(p.Parser, expectedExpression)
		p.Expect(syntax.TokRBrack)
		return m.Complete(p.Parser, syntax.NodeComputedMemberExpression)
	}
	p.Bump(syntax.TokQuestionDot)
	p.parseMemberAccessName()
	return m.Complete(p.Parser, syntax.NodeStaticMemberExpression)
}

// parseMemberAccessName parses the name after `.` or `?.`. Reserved words
// are plain identifiers here.
func (p *jsParser) parseMemberAccessName() {
	switch {
	case p.At(syntax.TokHash):
		m := p.Start()
		p.Bump(syntax.TokHash)
		if isNameToken(p.Cur()) {
			p.BumpRemap(syntax.TokIdent)
		} else {
			p.Error(p.Expected("an identifier", p.CurRange()).Build())
			p.Missing()
		}
		m.Complete(p.Parser, syntax.NodePrivateName)
	case isNameToken(p.Cur()):
		p.BumpRemap(syntax.TokIdent)
	default:
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		p.Missing()
	}
}

func (p *jsParser) parseCallArguments() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLParen)
	p.withState(parser.StateChange{Set: parser.IncludeIn}, func() parser.Parsed {
		list := parser.SeparatedList{
			NodeList: parser.NodeList{
				Kind:         syntax.NodeCallArgumentList,
				ParseElement: func(*parser.Parser) parser.Parsed { return p.parseSpreadOrAssignment() },
				IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRParen) },
				Recovery:     expressionRecovery,
				Expected:     expectedExpression,
			},
			Separator:     syntax.TokComma,
			AllowTrailing: true,
		}
		return parser.Present(list.Parse(p.Parser))
	})
	p.Expect(syntax.TokRParen)
	return m.Complete(p.Parser, syntax.NodeCallArguments)
}

func (p *jsParser) parseSpreadOrAssignment() parser.Parsed {
	if !p.At(syntax.TokDot3) {
		return p.parseAssignmentExpression()
	}
	m := p.Start()
	p.Bump(syntax.TokDot3)
	p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodeSpread))
}

func (p *jsParser) parseNewExpression() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokNewKw)
	if p.At(syntax.TokDot) {
		p.Bump(syntax.TokDot)
		if p.AtContextual("target") {
			p.bumpAs(syntax.TokTargetKw)
		} else {
			p.Error(p.Expected("`target`", p.CurRange()).Build())
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.NodeNewTargetExpression)
	}

	var callee parser.Parsed
	if p.At(syntax.TokNewKw) {
		callee = parser.Present(p.parseNewExpression())
	} else {
		callee = p.parsePrimaryExpression()
	}
	if cm, ok := callee.Marker(); ok {
		p.parseMemberRest(cm, memberOptions{})
	} else {
		p.Error(expectedExpression(p.Parser, p.CurRange()))
		p.Missing()
	}

	if p.At(syntax.TokLAngle) && p.opts.TypeScript {
		p.parseTypeArguments().OrMissing(p.Parser)
	} else {
		p.Missing()
	}
	if p.At(syntax.TokLParen) {
		p.parseCallArguments()
	} else {
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeNewExpression)
}

func (p *jsParser) parseImportExpression() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokImportKw)
	if p.At(syntax.TokDot) {
		p.Bump(syntax.TokDot)
		if p.AtContextual("meta") {
			p.bumpAs(syntax.TokMetaKw)
		} else {
			p.Error(p.Expected("`meta`", p.CurRange()).Build())
			p.Missing()
		}
		cm := m.Complete(p.Parser, syntax.NodeImportMetaExpression)
		if !p.isModule() {
			p.ErrorAt(cm.Range(), "`import.meta` is only allowed in modules")
		}
		return cm
	}
	if p.At(syntax.TokLParen) {
		p.parseCallArguments()
	} else {
		p.Error(p.ExpectedToken(syntax.TokLParen).Build())
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.NodeImportCallExpression)
}

func (p *jsParser) literal(kind syntax.Kind) parser.Parsed {
	m := p.Start()
	p.BumpAny()
	return parser.Present(m.Complete(p.Parser, kind))
}

func (p *jsParser) parsePrimaryExpression() parser.Parsed {
	switch p.Cur() {
	case syntax.TokThisKw:
		return p.literal(syntax.NodeThisExpression)
	case syntax.TokNumberLiteral:
		return p.literal(syntax.NodeNumberLiteralExpression)
	case syntax.TokBigIntLiteral:
		return p.literal(syntax.NodeBigIntLiteralExpression)
	case syntax.TokStringLiteral:
		return p.literal(syntax.NodeStringLiteralExpression)
	case syntax.TokTrueKw, syntax.TokFalseKw:
		return p.literal(syntax.NodeBooleanLiteralExpression)
	case syntax.TokNullKw:
		return p.literal(syntax.NodeNullLiteralExpression)
	case syntax.TokSlash, syntax.TokSlashEq:
		p.ReLex(lexer.ReLexRegex)
		return p.literal(syntax.NodeRegexLiteralExpression)
	case syntax.TokIdent:
		if p.AtContextual("async") && p.NthAt(1, syntax.TokFunctionKw) && !p.HasNthPrecedingLineBreak(1) {
			return parser.Present(p.parseFunctionExpression())
		}
		p.checkIdentifier(false)
		return p.literal(syntax.NodeIdentifierExpression)
	case syntax.TokLParen:
		m := p.Start()
		p.Bump(syntax.TokLParen)
		p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseExpression).
			OrAddDiagnostic(p.Parser, expectedExpression)
		p.Expect(syntax.TokRParen)
		return parser.Present(m.Complete(p.Parser, syntax.NodeParenthesizedExpression))
	case syntax.TokLBrack:
		return parser.Present(p.parseArrayExpression())
	case syntax.TokLCurly:
		return parser.Present(p.parseObjectExpression())
	case syntax.TokFunctionKw:
		return parser.Present(p.parseFunctionExpression())
	case syntax.TokClassKw, syntax.TokAt:
		return parser.Present(p.parseClassExpression())
	case syntax.TokBacktick:
		m := p.Start()
		p.Missing()
		p.Missing()
		p.parseTemplateBody()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTemplateExpression))
	case syntax.TokHash:
		if p.NthAt(1, syntax.TokIdent) {
			m := p.Start()
			p.Bump(syntax.TokHash)
			p.Bump(syntax.TokIdent)
			cm := m.Complete(p.Parser, syntax.NodePrivateName)
			if !p.At(syntax.TokInKw) {
				p.ErrorAt(cm.Range(), "a private name can only appear on the left of an `in` expression")
			}
			return parser.Present(cm)
		}
	case syntax.TokLAngle:
		if p.opts.JSX {
			return parser.Present(p.parseJSXTagExpression())
		}
	}
	return parser.Absent()
}

// parseTemplateBody parses a template literal from its opening backtick.
func (p *jsParser) parseTemplateBody() {
	p.BumpWithContext(syntax.TokBacktick, lexer.ContextTemplateElement)
	list := p.Start()
loop:
	for !p.At(syntax.TokBacktick) && !p.At(syntax.TokEOF) {
		m := p.Start()
		switch p.Cur() {
		case syntax.TokTemplateChunk:
			p.BumpWithContext(syntax.TokTemplateChunk, lexer.ContextTemplateElement)
			m.Complete(p.Parser, syntax.NodeTemplateChunkElement)
		case syntax.TokDollarCurly:
			p.Bump(syntax.TokDollarCurly)
			p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseExpression).
				OrAddDiagnostic(p.Parser, expectedExpression)
			ok := p.ExpectWithContext(syntax.TokRCurly, lexer.ContextTemplateElement)
			m.Complete(p.Parser, syntax.NodeTemplateElement)
			if !ok {
				break loop
			}
		default:
			m.Abandon(p.Parser)
			break loop
		}
	}
	list.Complete(p.Parser, syntax.NodeTemplateElementList)
	p.Expect(syntax.TokBacktick)
}

func (p *jsParser) parseArrayExpression() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLBrack)
	list := p.Start()
	p.withState(parser.StateChange{Set: parser.IncludeIn}, func() parser.Parsed {
		var progress parser.Progress
		for !p.At(syntax.TokRBrack) && !p.At(syntax.TokEOF) {
			progress.Assert(p.Parser)
			if p.At(syntax.TokComma) {
				p.Start().Complete(p.Parser, syntax.NodeArrayHole)
				p.Bump(syntax.TokComma)
				continue
			}
			if p.parseSpreadOrAssignment().IsAbsent() {
				p.Error(expectedExpression(p.Parser, p.CurRange()))
				if _, err := expressionRecovery.Recover(p.Parser); err != nil && !p.At(syntax.TokComma) {
					break
				}
			}
			if p.At(syntax.TokRBrack) {
				break
			}
			if !p.Eat(syntax.TokComma) {
				p.Error(p.ExpectedToken(syntax.TokComma).Build())
				if !p.AtSet(startsExpression) && !p.At(syntax.TokDot3) {
					break
				}
			}
		}
		return parser.Absent()
	})
	list.Complete(p.Parser, syntax.NodeArrayElementList)
	p.Expect(syntax.TokRBrack)
	return m.Complete(p.Parser, syntax.NodeArrayExpression)
}

func (p *jsParser) parseObjectExpression() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	p.withState(parser.StateChange{Set: parser.IncludeIn}, func() parser.Parsed {
		list := parser.SeparatedList{
			NodeList: parser.NodeList{
				Kind:         syntax.NodeObjectMemberList,
				ParseElement: func(*parser.Parser) parser.Parsed { return p.parseObjectMember() },
				IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
				Recovery:     objectMemberRecovery,
				Expected:     parser.ExpectedNode("a property, a method or a spread element"),
			},
			Separator:     syntax.TokComma,
			AllowTrailing: true,
		}
		return parser.Present(list.Parse(p.Parser))
	})
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeObjectExpression)
}

func (p *jsParser) parseObjectMember() parser.Parsed {
	if p.At(syntax.TokDot3) {
		return p.parseSpreadOrAssignment()
	}
	m := p.Start()
	if (p.AtContextual("get") || p.AtContextual("set")) && p.atMemberNameAt(1) {
		return parser.Present(p.parseAccessor(m, true))
	}

	var flags functionFlags
	var slots []parser.Reservation
	if p.AtContextual("async") && p.atMemberNameAt(1) {
		p.bumpAs(syntax.TokAsyncKw)
		flags |= functionAsync
	} else {
		slots = append(slots, p.Reserve())
	}
	if p.Eat(syntax.TokStar) {
		flags |= functionGenerator
	} else {
		slots = append(slots, p.Reserve())
	}

	if flags == 0 && p.At(syntax.TokIdent) {
		switch p.Nth(1) {
		case syntax.TokComma, syntax.TokRCurly, syntax.TokEq, syntax.TokEOF:
			name := p.Start()
			p.checkIdentifier(false)
			p.Bump(syntax.TokIdent)
			name.Complete(p.Parser, syntax.NodeIdentifierExpression)
			p.parseInitializer().OrMissing(p.Parser)
			return parser.Present(m.Complete(p.Parser, syntax.NodeShorthandPropertyObjectMember))
		}
	}

	if p.parseMemberName(false).IsAbsent() {
		if flags == 0 {
			m.Abandon(p.Parser)
			return parser.Absent()
		}
		p.Error(p.Expected("a member name", p.CurRange()).Build())
		p.Missing()
	}

	if flags != 0 || p.At(syntax.TokLParen) || p.At(syntax.TokLAngle) {
		for _, slot := range slots {
			slot.FillMissing(p.Parser)
		}
		p.parseTypeParameters().OrMissing(p.Parser)
		p.parseParameters(flags, false)
		p.parseReturnTypeAnnotation().OrMissing(p.Parser)
		p.parseFunctionBodyOrMissing(flags)
		return parser.Present(m.Complete(p.Parser, syntax.NodeMethodObjectMember))
	}

	p.Expect(syntax.TokColon)
	p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodePropertyObjectMember))
}
