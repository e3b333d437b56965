package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

func (f *formatter) importDeclaration(n *syntax.Node) format.Element {
	clause := f.field(n, "default_specifier")
	if specifiers := f.field(n, "specifiers"); !format.IsEmpty(specifiers) {
		if format.IsEmpty(clause) {
			clause = specifiers
		} else {
			clause = format.Concat(clause, f.tokenOr(n.FieldToken("comma"), ","), format.Space(), specifiers)
		}
	}

	parts := []format.Element{f.field(n, "import"), spaced(f.field(n, "type"))}
	if !format.IsEmpty(clause) {
		parts = append(parts, format.Space(), clause, format.Space(), f.field(n, "from"))
	}
	parts = append(parts,
		format.Space(), f.field(n, "source"),
		spaced(f.field(n, "attributes")),
		f.semicolon(n.FieldToken("semicolon")),
	)
	return format.Concat(parts...)
}

// namedImportSpecifier prints `a`, `a as b` or `type a as b`. A bare name
// has only its local slot.
func (f *formatter) namedImportSpecifier(n *syntax.Node) format.Element {
	local := f.field(n, "local")
	if !n.HasField("name") {
		return format.Concat(withSpace(f.field(n, "type")), local)
	}
	return format.Concat(withSpace(f.field(n, "type")), f.field(n, "name"), spaced(f.field(n, "as")), spaced(local))
}

// namedSpecifiers prints `{ a, b as c }` of imports and exports.
func (f *formatter) namedSpecifiers(n *syntax.Node) format.Element {
	content := f.list(n.FieldNode("specifiers"), listLayout{trailing: f.opts.trailingComma(true)})
	return f.delimited(n.FieldToken("l_curly"), content, n.FieldToken("r_curly"), bracketStyle{spaced: f.opts.BracketSpacing})
}

func (f *formatter) exportNamedClause(n *syntax.Node) format.Element {
	parts := []format.Element{withSpace(f.field(n, "type")), f.namedSpecifiers(n)}
	if n.Kind() == syntax.NodeExportNamedFromClause {
		parts = append(parts,
			format.Space(), f.field(n, "from"),
			format.Space(), f.field(n, "source"),
			spaced(f.field(n, "attributes")),
		)
	}
	parts = append(parts, f.semicolon(n.FieldToken("semicolon")))
	return format.Concat(parts...)
}
