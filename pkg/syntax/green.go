package syntax

import (
	"fmt"
	"strings"
)

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaSingleLineComment
	TriviaMultiLineComment
	TriviaSkipped
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaSingleLineComment:
		return "SingleLineComment"
	case TriviaMultiLineComment:
		return "MultiLineComment"
	case TriviaSkipped:
		return "Skipped"
	default:
		return fmt.Sprintf("TriviaKind(%d)", uint8(k))
	}
}

// IsComment reports whether the trivia is a comment.
func (k TriviaKind) IsComment() bool {
	return k == TriviaSingleLineComment || k == TriviaMultiLineComment
}

// TriviaPiece is the kind and byte length of one piece of trivia.
type TriviaPiece struct {
	Kind TriviaKind
	Len  int
}

// GreenElement is either a *GreenNode or a *GreenToken.
type GreenElement interface {
	Kind() Kind
	// TextLen is the full width of the element, trivia included.
	TextLen() int
	green()
}

// GreenToken is an immutable token with its leading and trailing trivia.
type GreenToken struct {
	kind     Kind
	text     string
	leading  []TriviaPiece
	trailing []TriviaPiece
}

// NewGreenToken creates a token without trivia.
func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

// NewGreenTokenWithTrivia creates a token whose full text is the
// concatenation of the leading trivia, text and the trailing trivia. The
// trivia texts must match the pieces.
func NewGreenTokenWithTrivia(kind Kind, leadingText string, leading []TriviaPiece, text string,
	trailingText string, trailing []TriviaPiece,
) *GreenToken {
	if triviaLen(leading) != len(leadingText) || triviaLen(trailing) != len(trailingText) {
		panic("syntax: trivia pieces do not match trivia text")
	}
	return &GreenToken{
		kind:     kind,
		text:     leadingText + text + trailingText,
		leading:  leading,
		trailing: trailing,
	}
}

func (*GreenToken) green() {}

// Kind returns the token kind.
func (t *GreenToken) Kind() Kind { return t.kind }

// TextLen returns the width including trivia.
func (t *GreenToken) TextLen() int { return len(t.text) }

// FullText returns the token text including trivia.
func (t *GreenToken) FullText() string { return t.text }

// Text returns the token text without trivia.
func (t *GreenToken) Text() string {
	return t.text[triviaLen(t.leading) : len(t.text)-triviaLen(t.trailing)]
}

// LeadingTrivia returns the leading trivia pieces.
func (t *GreenToken) LeadingTrivia() []TriviaPiece { return t.leading }

// TrailingTrivia returns the trailing trivia pieces.
func (t *GreenToken) TrailingTrivia() []TriviaPiece { return t.trailing }

// LeadingText returns the text of the leading trivia.
func (t *GreenToken) LeadingText() string {
	return t.text[:triviaLen(t.leading)]
}

// TrailingText returns the text of the trailing trivia.
func (t *GreenToken) TrailingText() string {
	return t.text[len(t.text)-triviaLen(t.trailing):]
}

// WithLeading returns a copy of t whose leading trivia is replaced.
func (t *GreenToken) WithLeading(text string, pieces []TriviaPiece) *GreenToken {
	return NewGreenTokenWithTrivia(t.kind, text, pieces, t.Text(), t.TrailingText(), t.trailing)
}

// WithTrailing returns a copy of t whose trailing trivia is replaced.
func (t *GreenToken) WithTrailing(text string, pieces []TriviaPiece) *GreenToken {
	return NewGreenTokenWithTrivia(t.kind, t.LeadingText(), t.leading, t.Text(), text, pieces)
}

// WithKind returns a copy of t with a different kind.
func (t *GreenToken) WithKind(kind Kind) *GreenToken {
	clone := *t
	clone.kind = kind
	return &clone
}

func triviaLen(pieces []TriviaPiece) int {
	n := 0
	for _, piece := range pieces {
		n += piece.Len
	}
	return n
}

// GreenNode is an immutable interior node. Slots may be nil for absent
// children.
type GreenNode struct {
	kind    Kind
	width   int
	slots   []GreenElement
	offsets []int
}

// NewGreenNode creates a node from its slots. Nil slots are empty.
func NewGreenNode(kind Kind, slots ...GreenElement) *GreenNode {
	node := &GreenNode{kind: kind, slots: slots, offsets: make([]int, len(slots))}
	for i, slot := range slots {
		node.offsets[i] = node.width
		if slot != nil {
			node.width += slot.TextLen()
		}
	}
	return node
}

func (*GreenNode) green() {}

// Kind returns the node kind.
func (n *GreenNode) Kind() Kind { return n.kind }

// TextLen returns the width of the node.
func (n *GreenNode) TextLen() int { return n.width }

// SlotCount returns the number of slots, empty ones included.
func (n *GreenNode) SlotCount() int { return len(n.slots) }

// Slot returns the element in slot i, or nil if the slot is empty.
func (n *GreenNode) Slot(i int) GreenElement {
	if i < 0 || i >= len(n.slots) {
		return nil
	}
	return n.slots[i]
}

// Slots returns a copy of the slot list.
func (n *GreenNode) Slots() []GreenElement {
	return append([]GreenElement(nil), n.slots...)
}

// ReplaceSlot returns a new node with slot i replaced. The receiver is left
// untouched and every other slot is shared.
func (n *GreenNode) ReplaceSlot(i int, element GreenElement) *GreenNode {
	if i < 0 || i >= len(n.slots) {
		panic(fmt.Sprintf("syntax: slot %d out of range for %s with %d slots", i, n.kind, len(n.slots)))
	}
	slots := n.Slots()
	slots[i] = element
	return NewGreenNode(n.kind, slots...)
}

// WithKind returns a copy of n with a different kind.
func (n *GreenNode) WithKind(kind Kind) *GreenNode {
	return NewGreenNode(kind, n.slots...)
}

// FullText returns the concatenated text of every token in the node.
func (n *GreenNode) FullText() string {
	var buf strings.Builder
	buf.Grow(n.width)
	writeGreen(&buf, n)
	return buf.String()
}

func writeGreen(buf *strings.Builder, element GreenElement) {
	switch element := element.(type) {
	case *GreenToken:
		buf.WriteString(element.text)
	case *GreenNode:
		for _, slot := range element.slots {
			if slot != nil {
				writeGreen(buf, slot)
			}
		}
	}
}

// cacheKey identifies a trivia-free token for interning.
type cacheKey struct {
	kind Kind
	text string
}

// GreenCache interns trivia-free tokens so that identical punctuation and
// keywords share one green token within a tree.
type GreenCache struct {
	tokens map[cacheKey]*GreenToken
}

// NewGreenCache creates an empty cache.
func NewGreenCache() *GreenCache {
	return &GreenCache{tokens: make(map[cacheKey]*GreenToken)}
}

const maxInternedTokenLen = 16

// Token returns a green token, reusing a cached one for short tokens
// without trivia.
func (c *GreenCache) Token(kind Kind, leadingText string, leading []TriviaPiece, text string,
	trailingText string, trailing []TriviaPiece,
) *GreenToken {
	if len(leading) != 0 || len(trailing) != 0 || len(text) > maxInternedTokenLen {
		return NewGreenTokenWithTrivia(kind, leadingText, leading, text, trailingText, trailing)
	}
	key := cacheKey{kind: kind, text: text}
	if token, ok := c.tokens[key]; ok {
		return token
	}
	token := NewGreenToken(kind, text)
	c.tokens[key] = token
	return token
}
