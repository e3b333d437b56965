package jsparser

import (
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var expectedDeclaration = parser.ExpectedNode("a declaration")

func (p *jsParser) parseTypeAliasDeclaration() parser.Parsed {
	m := p.Start()
	p.tsOnly(p.CurRange(), "type alias declarations")
	p.bumpAs(syntax.TokTypeKw)
	p.parseIdentifierBinding()
	p.parseTypeParameters().OrMissing(p.Parser)
	p.Expect(syntax.TokEq)
	p.parseType().OrAddDiagnostic(p.Parser, expectedType)
	p.semicolon()
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsTypeAliasDeclaration))
}

func (p *jsParser) parseInterfaceDeclaration() parser.Parsed {
	m := p.Start()
	p.tsOnly(p.CurRange(), "interface declarations")
	p.bumpAs(syntax.TokInterfaceKw)
	p.parseIdentifierBinding()
	p.parseTypeParameters().OrMissing(p.Parser)
	if p.At(syntax.TokExtendsKw) {
		clause := p.Start()
		p.Bump(syntax.TokExtendsKw)
		p.parseTypeList(func(p *jsParser) bool { return p.At(syntax.TokLCurly) })
		clause.Complete(p.Parser, syntax.NodeTsExtendsClause)
	} else {
		p.Missing()
	}
	p.Expect(syntax.TokLCurly)
	p.parseTypeMemberList()
	p.Expect(syntax.TokRCurly)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsInterfaceDeclaration))
}

// parseEnumDeclaration parses `enum` and `const enum`.
func (p *jsParser) parseEnumDeclaration() parser.Parsed {
	m := p.Start()
	p.tsOnly(p.CurRange(), "enum declarations")
	if !p.Eat(syntax.TokConstKw) {
		p.Missing()
	}
	p.Bump(syntax.TokEnumKw)
	if p.At(syntax.TokIdent) {
		p.parseIdentifierBinding()
	} else {
		p.Error(expectedIdentifier(p.Parser, p.CurRange()))
		p.Missing()
	}
	p.Expect(syntax.TokLCurly)
	list := parser.SeparatedList{
		NodeList: parser.NodeList{
			Kind:         syntax.NodeTsEnumMemberList,
			ParseElement: func(*parser.Parser) parser.Parsed { return p.parseEnumMember() },
			IsAtEnd:      func(*parser.Parser) bool { return p.At(syntax.TokRCurly) },
			Recovery:     objectMemberRecovery,
			Expected:     parser.ExpectedNode("an enum member"),
		},
		Separator:     syntax.TokComma,
		AllowTrailing: true,
	}
	list.Parse(p.Parser)
	p.Expect(syntax.TokRCurly)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsEnumDeclaration))
}

func (p *jsParser) parseEnumMember() parser.Parsed {
	m := p.Start()
	name := p.parseMemberName(false)
	cm, ok := name.Marker()
	if !ok {
		m.Abandon(p.Parser)
		return parser.Absent()
	}
	switch {
	case cm.Kind() == syntax.NodeComputedMemberName:
		p.ErrorAt(cm.Range(), "computed property names are not allowed in enums")
	case p.text(cm) != "" && p.text(cm)[0] >= '0' && p.text(cm)[0] <= '9':
		p.ErrorAt(cm.Range(), "an enum member cannot have a numeric name")
	}
	p.parseInitializer().OrMissing(p.Parser)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsEnumMember))
}

// atDeclarationAfterDeclare reports whether the `declare` at the current
// token introduces an ambient declaration.
func (p *jsParser) atDeclarationAfterDeclare() bool {
	switch p.Nth(1) {
	case syntax.TokVarKw, syntax.TokConstKw, syntax.TokFunctionKw, syntax.TokClassKw, syntax.TokEnumKw:
		return true
	case syntax.TokIdent:
		switch p.NthText(1) {
		case "let", "type", "interface", "namespace", "module", "global", "abstract", "async":
			return true
		}
	}
	return false
}

// parseDeclareStatement parses `declare` followed by a declaration, which
// is parsed in an ambient context.
func (p *jsParser) parseDeclareStatement() parser.Parsed {
	m := p.Start()
	p.tsOnly(p.CurRange(), "ambient declarations")
	p.bumpAs(syntax.TokDeclareKw)
	p.withState(parser.StateChange{Set: parser.InAmbient}, p.parseStatement).
		OrAddDiagnostic(p.Parser, expectedDeclaration)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsDeclareStatement))
}

// parseModuleDeclaration parses `namespace a.b {}`, `module "m" {}` and
// `global {}`.
func (p *jsParser) parseModuleDeclaration() parser.Parsed {
	m := p.Start()
	p.tsOnly(p.CurRange(), "namespace declarations")
	switch p.CurText() {
	case "namespace":
		p.bumpAs(syntax.TokNamespaceKw)
	case "module":
		p.bumpAs(syntax.TokModuleKw)
	default:
		p.bumpAs(syntax.TokGlobalKw)
	}

	switch {
	case p.At(syntax.TokStringLiteral):
		p.Bump(syntax.TokStringLiteral)
	case p.At(syntax.TokIdent):
		p.parseEntityName()
	default:
		p.Missing()
	}

	if !p.At(syntax.TokLCurly) {
		if !p.State().Has(parser.InAmbient) {
			p.Error(p.ExpectedToken(syntax.TokLCurly).Build())
		}
		p.Missing()
		return parser.Present(m.Complete(p.Parser, syntax.NodeTsModuleDeclaration))
	}
	block := p.Start()
	p.Bump(syntax.TokLCurly)
	p.statementList(syntax.NodeModuleItemList, atRCurly)
	p.Expect(syntax.TokRCurly)
	block.Complete(p.Parser, syntax.NodeTsModuleBlock)
	return parser.Present(m.Complete(p.Parser, syntax.NodeTsModuleDeclaration))
}
