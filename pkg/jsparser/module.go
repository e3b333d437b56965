package jsparser

import (
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var specifierRecovery = parser.NewRecovery(syntax.NodeBogus, parser.NewTokenSet(
	syntax.TokComma, syntax.TokRCurly, syntax.TokSemicolon,
))

func (p *jsParser) checkModuleItem(what string) {
	if p.isModule() {
		return
	}
	p.Error(p.Diagnostic(p.CurRange(), "illegal use of an %s declaration outside of a module", what).
		Hint("not allowed inside scripts").Build())
}

// parseImport parses an import declaration.
func (p *jsParser) parseImport() parser.Parsed {
	m := p.Start()
	p.checkModuleItem("import")
	p.Bump(syntax.TokImportKw)

	if p.At(syntax.TokStringLiteral) {
		for range 5 {
			p.Missing()
		}
		p.Bump(syntax.TokStringLiteral)
		p.parseImportAttributes().OrMissing(p.Parser)
		p.semicolon()
		return parser.Present(m.Complete(p.Parser, syntax.NodeImport))
	}

	if p.atTypeModifier() {
		p.tsOnly(p.CurRange(), "type-only imports")
		p.bumpAs(syntax.TokTypeKw)
	} else {
		p.Missing()
	}

	hasDefault := (p.At(syntax.TokIdent) && !p.AtContextual("from")) ||
		(p.AtContextual("from") && p.NthAtContextual(1, "from"))
	if hasDefault {
		p.parseIdentifierBinding()
		if p.At(syntax.TokComma) {
			p.Bump(syntax.TokComma)
			if !p.parseImportSpecifiers() {
				p.Error(p.Expected("a namespace import or named imports", p.CurRange()).Build())
				p.Missing()
			}
		} else {
			p.Missing()
			p.Missing()
		}
	} else {
		p.Missing()
		p.Missing()
		if !p.parseImportSpecifiers() {
			p.Error(p.Expected("a default import, a namespace import or named imports", p.CurRange()).Build())
			p.Missing()
		}
	}

	p.parseModuleSource()
	p.parseImportAttributes().OrMissing(p.Parser)
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeImport))
}

// atTypeModifier reports whether the current `type` marks a type-only
// import or export rather than naming a binding.
func (p *jsParser) atTypeModifier() bool {
	if !p.AtContextual("type") {
		return false
	}
	switch p.Nth(1) {
	case syntax.TokLCurly, syntax.TokStar:
		return true
	case syntax.TokIdent:
		return !p.NthAtContextual(1, "from") || p.NthAtContextual(2, "from")
	}
	return false
}

// parseImportSpecifiers parses `* as ns` or `{ a, b as c }`.
func (p *jsParser) parseImportSpecifiers() bool {
	switch {
	case p.At(syntax.TokStar):
		m := p.Start()
		p.Bump(syntax.TokStar)
		if p.AtContextual("as") {
			p.bumpAs(syntax.TokAsKw)
		} else {
			p.Error(p.Expected("`as`", p.CurRange()).Build())
			p.Missing()
		}
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedIdentifier)
		m.Complete(p.Parser, syntax.NodeNamespaceImportSpecifier)
		return true
	case p.At(syntax.TokLCurly):
		m := p.Start()
		p.Bump(syntax.TokLCurly)
		list := parser.SeparatedList{
			NodeList: parser.NodeList{
				Kind:         syntax.NodeNamedImportSpecifierList,
				ParseElement: func(*parser.Parser) parser.Parsed { return p.parseNamedImportSpecifier() },
				IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
				Recovery:     specifierRecovery,
				Expected:     parser.ExpectedNode("an import specifier"),
			},
			Separator:     syntax.TokComma,
			AllowTrailing: true,
		}
		list.Parse(p.Parser)
		p.Expect(syntax.TokRCurly)
		m.Complete(p.Parser, syntax.NodeNamedImportSpecifiers)
		return true
	}
	return false
}

// parseNamedImportSpecifier parses `a`, `a as b` or `type a as b`. A bare
// name occupies only the local slot.
func (p *jsParser) parseNamedImportSpecifier() parser.Parsed {
	if !isNameToken(p.Cur()) && !p.At(syntax.TokStringLiteral) {
		return parser.Absent()
	}
	m := p.Start()
	if p.AtContextual("type") && (isNameToken(p.Nth(1)) || p.NthAt(1, syntax.TokStringLiteral)) &&
		!(p.NthAtContextual(1, "as") && !isNameToken(p.Nth(2))) {
		p.tsOnly(p.CurRange(), "type-only imports")
		p.bumpAs(syntax.TokTypeKw)
	} else {
		p.Missing()
	}

	if p.NthAtContextual(1, "as") {
		if p.At(syntax.TokStringLiteral) {
			p.Bump(syntax.TokStringLiteral)
		} else {
			p.BumpRemap(syntax.TokIdent)
		}
		p.bumpAs(syntax.TokAsKw)
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedIdentifier)
		return parser.Present(m.Complete(p.Parser, syntax.NodeNamedImportSpecifier))
	}

	p.Missing()
	p.Missing()
	if p.At(syntax.TokStringLiteral) {
		p.ErrorAt(p.CurRange(), "a string import name must be renamed with `as`")
		binding := p.Start()
		p.Bump(syntax.TokStringLiteral)
		binding.Complete(p.Parser, syntax.NodeBogusBinding)
	} else {
		p.parseBinding().OrAddDiagnostic(p.Parser, expectedIdentifier)
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeNamedImportSpecifier))
}

// parseModuleSource parses `from "source"`.
func (p *jsParser) parseModuleSource() {
	if p.AtContextual("from") {
		p.bumpAs(syntax.TokFromKw)
	} else {
		p.Error(p.Expected("`from`", p.CurRange()).Build())
		p.Missing()
	}
	if !p.Eat(syntax.TokStringLiteral) {
		p.Error(p.Expected("a module source string", p.CurRange()).Build())
		p.Missing()
	}
}

// parseImportAttributes parses `with { type: "json" }`. The legacy
// `assert` keyword is accepted too.
func (p *jsParser) parseImportAttributes() parser.Parsed {
	legacy := p.AtContextual("assert") && !p.HasPrecedingLineBreak()
	if !p.At(syntax.TokWithKw) && !legacy {
		return parser.Absent()
	}
	m := p.Start()
	p.BumpAny()
	p.Expect(syntax.TokLCurly)
	seen := map[string]bool{}
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind: syntax.NodeImportAttributeList,
			ParseElement: func(*parser.Parser) parser.Parsed {
				if !isNameToken(p.Cur()) && !p.At(syntax.TokStringLiteral) {
					return parser.Absent()
				}
				attr := p.Start()
				key := p.CurText()
				if p.At(syntax.TokStringLiteral) && len(key) >= 2 {
					key = key[1 : len(key)-1]
				}
				if seen[key] {
					p.Error(p.Diagnostic(p.CurRange(), "duplicate import attribute key `%s`", key).
						Label("this key is already used").Build())
				}
				seen[key] = true
				if p.At(syntax.TokStringLiteral) {
					p.Bump(syntax.TokStringLiteral)
				} else {
					p.BumpRemap(syntax.TokIdent)
				}
				p.Expect(syntax.TokColon)
				if !p.Eat(syntax.TokStringLiteral) {
					p.Error(p.Expected("a string literal", p.CurRange()).Build())
					p.Missing()
				}
				return parser.Present(attr.Complete(p.Parser, syntax.NodeImportAttribute))
			},
			IsAtEnd:  func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery: specifierRecovery,
			Expected: parser.ExpectedNode("an import attribute"),
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRCurly)
	return parser.Present(m.Complete(p.Parser, syntax.NodeImportAttributes))
}

// parseExport parses an export declaration. m is the export node when
// decorators were already parsed into it.
func (p *jsParser) parseExport(m *parser.Marker) parser.Parsed {
	if m == nil {
		m = p.Start()
		p.Start().Complete(p.Parser, syntax.NodeDecoratorList)
	}
	p.checkModuleItem("export")
	p.Bump(syntax.TokExportKw)

	switch {
	case p.At(syntax.TokDefaultKw):
		p.parseExportDefault()
	case p.At(syntax.TokStar) || (p.atTypeModifier() && p.NthAt(1, syntax.TokStar)):
		p.parseExportFrom()
	case p.At(syntax.TokLCurly) || (p.atTypeModifier() && p.NthAt(1, syntax.TokLCurly)):
		p.parseExportNamed()
	default:
		parsed := p.parseStatement()
		if cm, ok := parsed.Marker(); !ok {
			p.Error(expectedDeclaration(p.Parser, p.CurRange()))
			p.Missing()
		} else if !isExportableDeclaration(cm.Kind()) {
			p.ErrorAt(cm.Range(), "only declarations can be exported")
		}
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeExport))
}

func isExportableDeclaration(kind syntax.Kind) bool {
	switch kind {
	case syntax.NodeVariableStatement, syntax.NodeFunctionDeclaration, syntax.NodeTsDeclareFunctionDeclaration,
		syntax.NodeClassDeclaration, syntax.NodeTsTypeAliasDeclaration, syntax.NodeTsInterfaceDeclaration,
		syntax.NodeTsEnumDeclaration, syntax.NodeTsModuleDeclaration, syntax.NodeTsDeclareStatement:
		return true
	}
	return false
}

func (p *jsParser) parseExportDefault() {
	clause := p.Start()
	defaultRange := p.CurRange()
	p.Bump(syntax.TokDefaultKw)
	if p.hasDefault {
		p.Error(p.Diagnostic(defaultRange, "duplicate export default").
			Label("multiple default exports are erroneous").
			Detail(p.defaultExport, "the module's default export is first defined here").Build())
	} else {
		p.hasDefault = true
		p.defaultExport = defaultRange
	}

	switch {
	case p.At(syntax.TokFunctionKw),
		p.AtContextual("async") && p.NthAt(1, syntax.TokFunctionKw) && !p.HasNthPrecedingLineBreak(1):
		p.parseFunctionDeclaration(true)
	case p.At(syntax.TokClassKw), p.At(syntax.TokAt),
		p.AtContextual("abstract") && p.NthAt(1, syntax.TokClassKw):
		p.parseClassDeclaration(true)
	case p.AtContextual("interface") && p.NthAt(1, syntax.TokIdent):
		p.parseInterfaceDeclaration()
	default:
		p.parseAssignmentExpression().OrAddDiagnostic(p.Parser, expectedExpression)
		p.semicolon()
		clause.Complete(p.Parser, syntax.NodeExportDefaultExpressionClause)
		return
	}
	clause.Complete(p.Parser, syntax.NodeExportDefaultDeclarationClause)
}

// parseExportFrom parses `export * from "m"` and `export * as ns from "m"`.
func (p *jsParser) parseExportFrom() {
	clause := p.Start()
	if p.AtContextual("type") {
		p.tsOnly(p.CurRange(), "type-only exports")
		p.bumpAs(syntax.TokTypeKw)
	} else {
		p.Missing()
	}
	p.Bump(syntax.TokStar)
	if p.AtContextual("as") {
		as := p.Start()
		p.bumpAs(syntax.TokAsKw)
		p.parseExportName()
		as.Complete(p.Parser, syntax.NodeExportAsClause)
	} else {
		p.Missing()
	}
	p.parseModuleSource()
	p.parseImportAttributes().OrMissing(p.Parser)
	p.semicolon()
	clause.Complete(p.Parser, syntax.NodeExportFromClause)
}

// parseExportName parses an exported name: any identifier, keyword or
// string.
func (p *jsParser) parseExportName() {
	switch {
	case p.At(syntax.TokStringLiteral):
		p.Bump(syntax.TokStringLiteral)
	case isNameToken(p.Cur()):
		p.BumpRemap(syntax.TokIdent)
	default:
		p.Error(p.Expected("a name", p.CurRange()).Build())
		p.Missing()
	}
}

// parseExportNamed parses `export { a, b as c }` with an optional `from`
// clause.
func (p *jsParser) parseExportNamed() {
	clause := p.Start()
	if p.AtContextual("type") {
		p.tsOnly(p.CurRange(), "type-only exports")
		p.bumpAs(syntax.TokTypeKw)
	} else {
		p.Missing()
	}
	p.Bump(syntax.TokLCurly)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeExportNamedSpecifierList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseExportSpecifier() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery:     specifierRecovery,
			Expected:     parser.ExpectedNode("an export specifier"),
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRCurly)

	if p.AtContextual("from") {
		p.parseModuleSource()
		p.parseImportAttributes().OrMissing(p.Parser)
		p.semicolon()
		clause.Complete(p.Parser, syntax.NodeExportNamedFromClause)
		return
	}
	p.semicolon()
	clause.Complete(p.Parser, syntax.NodeExportNamedClause)
}

func (p *jsParser) parseExportSpecifier() parser.Parsed {
	if !isNameToken(p.Cur()) && !p.At(syntax.TokStringLiteral) {
		return parser.Absent()
	}
	m := p.Start()
	if p.AtContextual("type") && (isNameToken(p.Nth(1)) || p.NthAt(1, syntax.TokStringLiteral)) &&
		!(p.NthAtContextual(1, "as") && !isNameToken(p.Nth(2)) && !p.NthAt(2, syntax.TokStringLiteral)) {
		p.tsOnly(p.CurRange(), "type-only exports")
		p.bumpAs(syntax.TokTypeKw)
	} else {
		p.Missing()
	}
	p.parseExportName()
	if p.AtContextual("as") {
		p.bumpAs(syntax.TokAsKw)
		p.parseExportName()
	} else {
		p.Missing()
		p.Missing()
	}
	return parser.Present(m.Complete(p.Parser, syntax.NodeExportNamedSpecifier))
}
