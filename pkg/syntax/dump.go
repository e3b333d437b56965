package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the tree in an indented debug format, one element per line.
// Empty slots of fixed-shape nodes are shown as "(missing)".
func Dump(root *Node) string {
	var buf strings.Builder
	dumpNode(&buf, root, "", 0)
	return buf.String()
}

func dumpNode(buf *strings.Builder, node *Node, field string, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, "%s%s%s@%s\n", indent, fieldPrefix(field), node.Kind(), node.FullRange())

	_, shaped := Shape(node.Kind())
	for i := range node.SlotCount() {
		name := ""
		if shaped {
			name = FieldName(node.Kind(), i)
		}
		switch child := node.Slot(i).(type) {
		case *Node:
			dumpNode(buf, child, name, depth+1)
		case *Token:
			dumpToken(buf, child, name, depth+1)
		case nil:
			if shaped {
				fmt.Fprintf(buf, "%s  %s(missing)\n", indent, fieldPrefix(name))
			}
		}
	}
}

func dumpToken(buf *strings.Builder, token *Token, field string, depth int) {
	fmt.Fprintf(buf, "%s%s%s@%s %s %s %s\n",
		strings.Repeat("  ", depth),
		fieldPrefix(field),
		token.Kind(),
		token.Range(),
		strconv.Quote(token.Text()),
		dumpTrivia(token.LeadingTrivia()),
		dumpTrivia(token.TrailingTrivia()),
	)
}

func dumpTrivia(trivia []Trivia) string {
	parts := make([]string, 0, len(trivia))
	for _, piece := range trivia {
		parts = append(parts, fmt.Sprintf("%s(%s)", piece.Kind, strconv.Quote(piece.Text)))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func fieldPrefix(field string) string {
	if field == "" {
		return ""
	}
	return field + ": "
}

// ExportedElement is a serialisable view of a tree element, used for YAML
// and JSON dumps.
type ExportedElement struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Field    string            `json:"field,omitempty" yaml:"field,omitempty"`
	Start    int               `json:"start" yaml:"start"`
	End      int               `json:"end" yaml:"end"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Missing  bool              `json:"missing,omitempty" yaml:"missing,omitempty"`
	Children []ExportedElement `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export converts the tree into nested ExportedElement values.
func Export(root *Node) ExportedElement {
	return exportNode(root, "")
}

func exportNode(node *Node, field string) ExportedElement {
	rng := node.Range()
	out := ExportedElement{Kind: node.Kind().String(), Field: field, Start: rng.Start, End: rng.End}
	_, shaped := Shape(node.Kind())
	for i := range node.SlotCount() {
		name := ""
		if shaped {
			name = FieldName(node.Kind(), i)
		}
		switch child := node.Slot(i).(type) {
		case *Node:
			out.Children = append(out.Children, exportNode(child, name))
		case *Token:
			tokenRange := child.Range()
			out.Children = append(out.Children, ExportedElement{
				Kind:  child.Kind().String(),
				Field: name,
				Start: tokenRange.Start,
				End:   tokenRange.End,
				Text:  child.Text(),
			})
		case nil:
			if shaped {
				out.Children = append(out.Children, ExportedElement{Kind: "Missing", Field: name, Missing: true})
			}
		}
	}
	return out
}
