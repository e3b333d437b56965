package rules

import (
	"strconv"
	"strings"

	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// inStatementList reports whether node is an item of a statement or module
// item list, where removing it cannot change the meaning of a parent
// statement.
func inStatementList(node *syntax.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case syntax.NodeStatementList, syntax.NodeModuleItemList:
		return true
	}
	return false
}

// removeLineEdit deletes rng. When rng is alone on its lines, the whole
// lines go, line break included.
func removeLineEdit(content string, rng source.Range) fix.Edit {
	start, end := rng.Start, rng.End
	lineStart := strings.LastIndexByte(content[:start], '\n') + 1
	if strings.TrimSpace(content[lineStart:start]) != "" {
		return fix.Delete(rng)
	}
	lineEnd := len(content)
	if nl := strings.IndexByte(content[end:], '\n'); nl >= 0 {
		lineEnd = end + nl
	}
	if strings.TrimSpace(content[end:lineEnd]) != "" {
		return fix.Delete(rng)
	}
	if lineEnd < len(content) {
		lineEnd++
	} else if lineStart > 0 {
		// Last line: take the preceding line break instead.
		lineStart--
		if lineStart > 0 && content[lineStart-1] == '\r' {
			lineStart--
		}
	}
	return fix.Delete(source.Range{Start: lineStart, End: lineEnd})
}

// isZeroLiteral reports whether node is a number literal equal to zero.
func isZeroLiteral(node *syntax.Node) bool {
	if node == nil || node.Kind() != syntax.NodeNumberLiteralExpression {
		return false
	}
	text := strings.ReplaceAll(node.Text(), "_", "")
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		return value == 0
	}
	if value, err := strconv.ParseInt(text, 0, 64); err == nil {
		return value == 0
	}
	return false
}

// isNegativeZero reports whether node is the expression `-0`.
func isNegativeZero(node *syntax.Node) bool {
	if node == nil || node.Kind() != syntax.NodeUnaryExpression {
		return false
	}
	operator := node.FieldToken("operator")
	return operator != nil && operator.Kind() == syntax.TokMinus && isZeroLiteral(node.FieldNode("argument"))
}

// isNullLiteral reports whether node is `null`.
func isNullLiteral(node *syntax.Node) bool {
	return node != nil && node.Kind() == syntax.NodeNullLiteralExpression
}

// isIdentifierToken reports whether token is an identifier spelled name.
// Contextual keywords count, since they are identifiers in most positions.
func isIdentifierToken(token *syntax.Token, name string) bool {
	kind := token.Kind()
	return (kind == syntax.TokIdent || kind.IsContextualKeyword()) && token.Text() == name
}

// isEmptyList reports whether a list node has no elements.
func isEmptyList(node *syntax.Node) bool {
	return node == nil || len(node.Children()) == 0
}
