package jsparser

import (
	"strings"

	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	expectedExpression = parser.ExpectedNode("an expression")
	expectedStatement  = parser.ExpectedNode("a statement")
	expectedBinding    = parser.ExpectedNode("an identifier, an array pattern, or an object pattern")
	expectedIdentifier = parser.ExpectedNode("an identifier")
	expectedType       = parser.ExpectedNode("a type")
)

var statementRecovery = parser.NewRecovery(syntax.NodeBogusStatement, parser.NewTokenSet(
	syntax.TokSemicolon, syntax.TokLCurly, syntax.TokRCurly, syntax.TokVarKw, syntax.TokConstKw,
	syntax.TokFunctionKw, syntax.TokClassKw, syntax.TokIfKw, syntax.TokForKw, syntax.TokDoKw,
	syntax.TokWhileKw, syntax.TokReturnKw, syntax.TokBreakKw, syntax.TokContinueKw, syntax.TokThrowKw,
	syntax.TokTryKw, syntax.TokSwitchKw, syntax.TokImportKw, syntax.TokExportKw, syntax.TokDebuggerKw,
	syntax.TokWithKw, syntax.TokAt, syntax.TokEnumKw,
)).WithLineBreak()

func atRCurly(p *jsParser) bool {
	return p.At(syntax.TokRCurly)
}

// statementList parses statements until atEnd reports true. Tokens that
// cannot start a statement are wrapped in bogus statements.
func (p *jsParser) statementList(kind syntax.Kind, atEnd func(*jsParser) bool) parser.CompletedMarker {
	m := p.Start()
	var progress parser.Progress
	for !p.At(syntax.TokEOF) && !atEnd(p) {
		progress.Assert(p.Parser)
		if p.parseStatement().IsPresent() {
			continue
		}
		if p.At(syntax.TokRCurly) {
			bogus := p.Start()
			p.ErrorAt(p.CurRange(), "unexpected `}` without a matching `{`")
			p.Bump(syntax.TokRCurly)
			bogus.Complete(p.Parser, syntax.NodeBogusStatement)
			continue
		}
		p.Error(expectedStatement(p.Parser, p.CurRange()))
		if _, err := statementRecovery.Recover(p.Parser); err != nil {
			bogus := p.Start()
			p.BumpAny()
			bogus.Complete(p.Parser, syntax.NodeBogusStatement)
		}
	}
	return m.Complete(p.Parser, kind)
}

// parseStatement parses a statement or declaration. It returns Absent when
// the current token cannot start one.
func (p *jsParser) parseStatement() parser.Parsed {
	switch p.Cur() {
	case syntax.TokSemicolon:
		m := p.Start()
		p.Bump(syntax.TokSemicolon)
		return parser.Present(m.Complete(p.Parser, syntax.NodeEmptyStatement))
	case syntax.TokLCurly:
		return parser.Present(p.parseBlock())
	case syntax.TokVarKw:
		return p.parseVariableStatement()
	case syntax.TokConstKw:
		if p.NthAt(1, syntax.TokEnumKw) {
			return p.parseEnumDeclaration()
		}
		return p.parseVariableStatement()
	case syntax.TokEnumKw:
		return p.parseEnumDeclaration()
	case syntax.TokFunctionKw:
		return p.parseFunctionDeclaration(false)
	case syntax.TokClassKw:
		return p.parseClassDeclaration(false)
	case syntax.TokAt:
		return p.parseDecoratedStatement()
	case syntax.TokIfKw:
		return p.parseIfStatement()
	case syntax.TokForKw:
		return p.parseForStatement()
	case syntax.TokWhileKw:
		return p.parseWhileStatement()
	case syntax.TokDoKw:
		return p.parseDoWhileStatement()
	case syntax.TokReturnKw:
		return p.parseReturnStatement()
	case syntax.TokBreakKw:
		return p.parseBreakOrContinue(syntax.NodeBreakStatement)
	case syntax.TokContinueKw:
		return p.parseBreakOrContinue(syntax.NodeContinueStatement)
	case syntax.TokThrowKw:
		return p.parseThrowStatement()
	case syntax.TokTryKw:
		return p.parseTryStatement()
	case syntax.TokSwitchKw:
		return p.parseSwitchStatement()
	case syntax.TokDebuggerKw:
		m := p.Start()
		p.Bump(syntax.TokDebuggerKw)
		p.semicolon()
		return parser.Present(m.Complete(p.Parser, syntax.NodeDebuggerStatement))
	case syntax.TokWithKw:
		return p.parseWithStatement()
	case syntax.TokImportKw:
		if !p.NthAt(1, syntax.TokLParen) && !p.NthAt(1, syntax.TokDot) {
			return p.parseImport()
		}
	case syntax.TokExportKw:
		return p.parseExport(nil)
	case syntax.TokIdent:
		if parsed, ok := p.parseIdentStatement(); ok {
			return parsed
		}
	}
	return p.parseExpressionStatement()
}

// parseIdentStatement handles statements introduced by contextual keywords
// and labels.
func (p *jsParser) parseIdentStatement() (parser.Parsed, bool) {
	sameLine := !p.HasNthPrecedingLineBreak(1)
	switch p.CurText() {
	case "let":
		if p.atLetDeclaration() {
			return p.parseVariableStatement(), true
		}
	case "async":
		if p.NthAt(1, syntax.TokFunctionKw) && sameLine {
			return p.parseFunctionDeclaration(false), true
		}
	case "type":
		if p.NthAt(1, syntax.TokIdent) && sameLine {
			return p.parseTypeAliasDeclaration(), true
		}
	case "interface":
		if p.NthAt(1, syntax.TokIdent) && sameLine {
			return p.parseInterfaceDeclaration(), true
		}
	case "declare":
		if sameLine && p.atDeclarationAfterDeclare() {
			return p.parseDeclareStatement(), true
		}
	case "abstract":
		if p.NthAt(1, syntax.TokClassKw) && sameLine {
			return p.parseClassDeclaration(false), true
		}
	case "namespace":
		if p.NthAt(1, syntax.TokIdent) && sameLine {
			return p.parseModuleDeclaration(), true
		}
	case "module":
		if (p.NthAt(1, syntax.TokIdent) || p.NthAt(1, syntax.TokStringLiteral)) && sameLine {
			return p.parseModuleDeclaration(), true
		}
	case "global":
		if p.NthAt(1, syntax.TokLCurly) && p.State().Has(parser.InAmbient) {
			return p.parseModuleDeclaration(), true
		}
	}
	if p.NthAt(1, syntax.TokColon) {
		return p.parseLabeledStatement(), true
	}
	return parser.Absent(), false
}

func (p *jsParser) atLetDeclaration() bool {
	if !p.AtContextual("let") {
		return false
	}
	switch p.Nth(1) {
	case syntax.TokIdent, syntax.TokLBrack, syntax.TokLCurly:
		return true
	}
	return false
}

// parseBodyStatement parses the single statement body of an if, a loop or
// a label. Declarations are turned into bogus statements.
func (p *jsParser) parseBodyStatement() parser.Parsed {
	p.lastFunctionFlags = 0
	parsed := p.parseStatement()
	cm, ok := parsed.Marker()
	if !ok {
		return parsed.OrAddDiagnostic(p.Parser, expectedStatement)
	}
	if what := p.declarationInBody(cm); what != "" {
		p.Error(p.Diagnostic(cm.Range(), "%s cannot be declared in a single-statement context", what).
			Hint("wrap the declaration in a block statement").Build())
		cm.ChangeToBogus(p.Parser)
		return parser.Present(cm)
	}
	return parsed
}

func (p *jsParser) declarationInBody(cm parser.CompletedMarker) string {
	switch cm.Kind() {
	case syntax.NodeClassDeclaration:
		return "a class"
	case syntax.NodeVariableStatement:
		text := p.text(cm)
		if strings.HasPrefix(text, "let") || strings.HasPrefix(text, "const") {
			return "a lexical declaration"
		}
	case syntax.NodeFunctionDeclaration:
		switch {
		case p.lastFunctionFlags&functionAsync != 0:
			return "an async function"
		case p.lastFunctionFlags&functionGenerator != 0:
			return "a generator function"
		case p.State().Has(parser.Strict):
			return "a function in strict mode"
		}
	case syntax.NodeTsTypeAliasDeclaration, syntax.NodeTsInterfaceDeclaration, syntax.NodeTsEnumDeclaration,
		syntax.NodeTsModuleDeclaration, syntax.NodeTsDeclareStatement, syntax.NodeImport, syntax.NodeExport:
		return "a declaration"
	}
	return ""
}

func (p *jsParser) parseExpressionStatement() parser.Parsed {
	m := p.Start()
	if p.parseExpression().IsAbsent() {
		m.Abandon(p.Parser)
		return parser.Absent()
	}
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeExpressionStatement))
}

func (p *jsParser) parseBlock() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.TokLCurly)
	p.statementList(syntax.NodeStatementList, atRCurly)
	p.Expect(syntax.TokRCurly)
	return m.Complete(p.Parser, syntax.NodeBlockStatement)
}

// parseBlockOrMissing parses a block, or reports an error and leaves an
// empty slot.
func (p *jsParser) parseBlockOrMissing() {
	if p.At(syntax.TokLCurly) {
		p.parseBlock()
		return
	}
	p.Error(p.Expected("a block statement", p.CurRange()).Build())
	p.Missing()
}

func (p *jsParser) parseVariableStatement() parser.Parsed {
	m := p.Start()
	p.parseVariableDeclaration(false)
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeVariableStatement))
}

// parseVariableDeclaration parses `var`, `let` or `const` and its
// declarators. In a for head a single declarator followed by `in` or `of`
// becomes a ForVariableDeclaration.
func (p *jsParser) parseVariableDeclaration(inFor bool) parser.CompletedMarker {
	m := p.Start()
	isConst := p.At(syntax.TokConstKw)
	switch p.Cur() {
	case syntax.TokVarKw, syntax.TokConstKw:
		p.BumpAny()
	default:
		p.bumpAs(syntax.TokLetKw)
	}

	first, firstInit := p.parseVariableDeclarator()
	if inFor && (p.At(syntax.TokInKw) || p.AtContextual("of")) {
		return m.Complete(p.Parser, syntax.NodeForVariableDeclaration)
	}
	p.checkDeclaratorInit(first, firstInit, isConst)

	list := first.Precede(p.Parser)
	for p.At(syntax.TokComma) {
		p.Bump(syntax.TokComma)
		declarator, hasInit := p.parseVariableDeclarator()
		p.checkDeclaratorInit(declarator, hasInit, isConst)
	}
	list.Complete(p.Parser, syntax.NodeVariableDeclaratorList)
	return m.Complete(p.Parser, syntax.NodeVariableDeclaration)
}

func (p *jsParser) parseVariableDeclarator() (parser.CompletedMarker, bool) {
	m := p.Start()
	p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
	if p.At(syntax.TokBang) && !p.HasPrecedingLineBreak() {
		p.tsOnly(p.CurRange(), "definite assignment assertions")
		p.Bump(syntax.TokBang)
	} else {
		p.Missing()
	}
	p.parseTypeAnnotation().OrMissing(p.Parser)
	hasInit := p.parseInitializer().OrMissing(p.Parser).IsPresent()
	return m.Complete(p.Parser, syntax.NodeVariableDeclarator), hasInit
}

func (p *jsParser) checkDeclaratorInit(declarator parser.CompletedMarker, hasInit, isConst bool) {
	if hasInit || p.State().Has(parser.InAmbient) {
		return
	}
	text := p.text(declarator)
	switch {
	case isConst:
		p.Error(p.Diagnostic(declarator.Range(), "const declarations must have an initialized value").
			Hint("add an initializer, as in `const x = 1`").Build())
	case strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{"):
		p.ErrorAt(declarator.Range(), "object and array patterns require initializers")
	}
}

// parseInitializer parses `= expression`.
func (p *jsParser) parseInitializer() parser.Parsed {
	if !p.At(syntax.TokEq) {
		return parser.Absent()
	}
	m := p.Start()
	p.Bump(syntax.TokEq)
	p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	return parser.Present(m.Complete(p.Parser, syntax.NodeInitializerClause))
}

// parseCondition parses a parenthesized expression such as the test of an
// if statement.
func (p *jsParser) parseCondition() {
	p.Expect(syntax.TokLParen)
	p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseExpression).
		OrAddDiagnostic(p.Parser, expectedExpression)
	p.Expect(syntax.TokRParen)
}

func (p *jsParser) parseIfStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokIfKw)
	p.parseCondition()
	p.parseBodyStatement()
	if p.At(syntax.TokElseKw) {
		clause := p.Start()
		p.Bump(syntax.TokElseKw)
		p.parseBodyStatement()
		clause.Complete(p.Parser, syntax.NodeElseClause)
	} else {
		p.Missing()
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeIfStatement))
}

func (p *jsParser) parseLoopBody() {
	p.withState(parser.StateChange{Set: parser.BreakAllowed | parser.ContinueAllowed}, p.parseBodyStatement)
}

func (p *jsParser) parseWhileStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokWhileKw)
	p.parseCondition()
	p.parseLoopBody()
	return parser.Present(m.Complete(p.Parser, syntax.NodeWhileStatement))
}

func (p *jsParser) parseDoWhileStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokDoKw)
	p.parseLoopBody()
	p.Expect(syntax.TokWhileKw)
	p.parseCondition()
	// A semicolon is always inserted after do-while.
	if !p.Eat(syntax.TokSemicolon) {
		p.Missing()
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeDoWhileStatement))
}

func (p *jsParser) parseForStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokForKw)

	await := p.Reserve()
	hasAwait := false
	if p.AtContextual("await") {
		rng := p.CurRange()
		p.bumpAs(syntax.TokAwaitKw)
		hasAwait = true
		if !p.awaitAllowed() {
			p.ErrorAt(rng, "`for await` is only allowed within async functions and at the top levels of modules")
		}
	}
	p.Expect(syntax.TokLParen)

	noIn := parser.StateChange{Clear: parser.IncludeIn}
	switch {
	case p.At(syntax.TokSemicolon):
		p.Missing()
	case p.At(syntax.TokVarKw), p.At(syntax.TokConstKw), p.atLetDeclaration():
		parser.WithState(p.Parser, noIn, func() parser.CompletedMarker { return p.parseVariableDeclaration(true) })
	default:
		p.withState(noIn, p.parseExpression).OrAddDiagnostic(p.Parser, expectedExpression)
	}

	kind := syntax.NodeForStatement
	switch {
	case p.At(syntax.TokInKw):
		kind = syntax.NodeForInStatement
		p.Bump(syntax.TokInKw)
		p.parseExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	case p.AtContextual("of"):
		kind = syntax.NodeForOfStatement
		if !hasAwait {
			await.FillMissing(p.Parser)
		}
		p.bumpAs(syntax.TokOfKw)
		p.withState(parser.StateChange{Set: parser.IncludeIn}, p.parseAssignmentExpression).
			OrAddDiagnostic(p.Parser, expectedExpression)
	default:
		p.Expect(syntax.TokSemicolon)
		p.parseExpression().OrMissing(p.Parser)
		p.Expect(syntax.TokSemicolon)
		p.parseExpression().OrMissing(p.Parser)
	}
	if hasAwait && kind != syntax.NodeForOfStatement {
		p.ErrorAt(p.CurRange(), "`for await` requires a `for...of` loop")
	}
	p.Expect(syntax.TokRParen)
	p.parseLoopBody()
	return parser.Present(m.Complete(p.Parser, kind))
}

func (p *jsParser) parseReturnStatement() parser.Parsed {
	m := p.Start()
	rng := p.CurRange()
	p.Bump(syntax.TokReturnKw)
	if !p.State().Has(parser.InFunction) {
		p.Error(p.Diagnostic(rng, "illegal return statement outside of a function").
			Label("`return` is not inside a function body").Build())
	}
	if p.At(syntax.TokSemicolon) || p.canInsertSemicolon() {
		p.Missing()
	} else {
		p.parseExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	}
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeReturnStatement))
}

func (p *jsParser) parseBreakOrContinue(kind syntax.Kind) parser.Parsed {
	m := p.Start()
	rng := p.CurRange()
	p.BumpAny()
	if p.At(syntax.TokIdent) && !p.HasPrecedingLineBreak() {
		label := p.CurText()
		if !p.labels[label] {
			p.Error(p.Diagnostic(p.CurRange(), "use of undefined label `%s`", label).Build())
		}
		p.Bump(syntax.TokIdent)
	} else {
		p.Missing()
		switch {
		case kind == syntax.NodeBreakStatement && !p.State().Has(parser.BreakAllowed):
			p.ErrorAt(rng, "a `break` statement can only be used within an enclosing iteration or switch statement")
		case kind == syntax.NodeContinueStatement && !p.State().Has(parser.ContinueAllowed):
			p.ErrorAt(rng, "a `continue` statement can only be used within an enclosing iteration statement")
		}
	}
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, kind))
}

func (p *jsParser) parseThrowStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokThrowKw)
	if p.HasPrecedingLineBreak() {
		p.Error(p.Diagnostic(p.CurRange(), "linebreaks are not allowed after `throw`").
			Hint("move the thrown expression to the line of `throw`").Build())
		p.Missing()
	} else {
		p.parseExpression().OrAddDiagnostic(p.Parser, expectedExpression)
	}
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeThrowStatement))
}

func (p *jsParser) parseTryStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokTryKw)
	p.parseBlockOrMissing()

	hasCatch := p.At(syntax.TokCatchKw)
	if hasCatch {
		clause := p.Start()
		p.Bump(syntax.TokCatchKw)
		if p.At(syntax.TokLParen) {
			decl := p.Start()
			p.Bump(syntax.TokLParen)
			p.parseBinding().OrAddDiagnostic(p.Parser, expectedBinding)
			p.parseTypeAnnotation().OrMissing(p.Parser)
			p.Expect(syntax.TokRParen)
			decl.Complete(p.Parser, syntax.NodeCatchDeclaration)
		} else {
			p.Missing()
		}
		p.parseBlockOrMissing()
		clause.Complete(p.Parser, syntax.NodeCatchClause)
	} else {
		p.Missing()
	}

	if p.At(syntax.TokFinallyKw) {
		clause := p.Start()
		p.Bump(syntax.TokFinallyKw)
		p.parseBlockOrMissing()
		clause.Complete(p.Parser, syntax.NodeFinallyClause)
		return parser.Present(m.Complete(p.Parser, syntax.NodeTryFinallyStatement))
	}
	if !hasCatch {
		p.Error(p.Diagnostic(p.CurRange(), "missing catch or finally clause").
			Hint("add a `catch` or a `finally` block after the try block").Build())
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeTryStatement))
}

func (p *jsParser) parseSwitchStatement() parser.Parsed {
	m := p.Start()
	p.Bump(syntax.TokSwitchKw)
	p.parseCondition()
	p.Expect(syntax.TokLCurly)

	seenDefault := false
	p.withState(parser.StateChange{Set: parser.BreakAllowed}, func() parser.Parsed {
		list := parser.NodeList{
			Kind:         syntax.NodeSwitchCaseList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseSwitchClause(&seenDefault) },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery: parser.NewRecovery(syntax.NodeBogus, parser.NewTokenSet(
				syntax.TokCaseKw, syntax.TokDefaultKw, syntax.TokRCurly)),
			Expected: parser.ExpectedNode("a case or default clause"),
		}
		return parser.Present(list.Parse(p.Parser))
	})
	p.Expect(syntax.TokRCurly)
	return parser.Present(m.Complete(p.Parser, syntax.NodeSwitchStatement))
}

func (p *jsParser) parseSwitchClause(seenDefault *bool) parser.Parsed {
	atClauseEnd := func(p *jsParser) bool {
		return p.At(syntax.TokCaseKw) || p.At(syntax.TokDefaultKw) || p.At(syntax.TokRCurly)
	}
	m := p.Start()
	switch p.Cur() {
	case syntax.TokCaseKw:
		p.Bump(syntax.TokCaseKw)
		p.parseExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		p.Expect(syntax.TokColon)
		p.statementList(syntax.NodeStatementList, atClauseEnd)
		return parser.Present(m.Complete(p.Parser, syntax.NodeCaseClause))
	case syntax.TokDefaultKw:
		if *seenDefault {
			p.Error(p.Diagnostic(p.CurRange(), "multiple `default` clauses cannot appear in the same switch statement").Build())
		}
		*seenDefault = true
		p.Bump(syntax.TokDefaultKw)
		p.Expect(syntax.TokColon)
		p.statementList(syntax.NodeStatementList, atClauseEnd)
		return parser.Present(m.Complete(p.Parser, syntax.NodeDefaultClause))
	}
	m.Abandon(p.Parser)
	return parser.Absent()
}

func (p *jsParser) parseLabeledStatement() parser.Parsed {
	m := p.Start()
	label := p.CurText()
	if p.labels[label] {
		p.Error(p.Diagnostic(p.CurRange(), "duplicate statement label `%s`", label).Build())
	}
	p.Bump(syntax.TokIdent)
	p.Bump(syntax.TokColon)

	outer := p.labels[label]
	p.labels[label] = true
	p.parseBodyStatement()
	p.labels[label] = outer
	return parser.Present(m.Complete(p.Parser, syntax.NodeLabeledStatement))
}

func (p *jsParser) parseWithStatement() parser.Parsed {
	m := p.Start()
	rng := p.CurRange()
	p.Bump(syntax.TokWithKw)
	if p.State().Has(parser.Strict) {
		p.Error(p.Diagnostic(rng, "`with` statements are not allowed in strict mode").Build())
	}
	p.parseCondition()
	p.parseBodyStatement()
	return parser.Present(m.Complete(p.Parser, syntax.NodeWithStatement))
}
