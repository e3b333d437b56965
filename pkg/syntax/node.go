package syntax

import (
	"strings"

	"github.com/yaklabco/quill/pkg/source"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	Parent() *Node
	// IndexInParent is the slot index within the parent, or 0 for a root.
	IndexInParent() int
	// Range excludes the leading trivia of the first token and the trailing
	// trivia of the last token.
	Range() source.Range
	// FullRange includes all trivia.
	FullRange() source.Range
	Text() string
	FullText() string
	GreenElement() GreenElement
}

// Trivia is a piece of trivia positioned in the source.
type Trivia struct {
	Kind  TriviaKind
	Text  string
	Range source.Range
}

// Node is a positioned view of a GreenNode. Nodes are cheap values created
// while traversing; compare them with Equal, not ==.
type Node struct {
	green  *GreenNode
	parent *Node
	slot   int
	offset int
}

// NewRoot returns the root view of a green tree.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.green.kind }

// Green returns the underlying green node.
func (n *Node) Green() *GreenNode { return n.green }

// GreenElement returns the underlying green node as a GreenElement.
func (n *Node) GreenElement() GreenElement { return n.green }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IndexInParent returns the slot index within the parent.
func (n *Node) IndexInParent() int { return n.slot }

// Offset returns the absolute start offset, trivia included.
func (n *Node) Offset() int { return n.offset }

// SlotCount returns the number of slots, empty ones included.
func (n *Node) SlotCount() int { return len(n.green.slots) }

// Equal reports whether both views refer to the same node of the same tree.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.green == other.green && n.offset == other.offset && n.Root().green == other.Root().green
}

// Root returns the root of the tree containing n.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Slot returns the element in slot i, or nil when the slot is empty or out
// of range.
func (n *Node) Slot(i int) Element {
	green := n.green.Slot(i)
	if green == nil {
		return nil
	}
	offset := n.offset + n.green.offsets[i]
	switch green := green.(type) {
	case *GreenNode:
		return &Node{green: green, parent: n, slot: i, offset: offset}
	case *GreenToken:
		return &Token{green: green, parent: n, slot: i, offset: offset}
	}
	return nil
}

// Field returns the element in the named slot, or nil.
func (n *Node) Field(name string) Element {
	idx, ok := FieldIndex(n.Kind(), name)
	if !ok {
		return nil
	}
	return n.Slot(idx)
}

// FieldNode returns the named slot when it holds a node.
func (n *Node) FieldNode(name string) *Node {
	node, _ := n.Field(name).(*Node)
	return node
}

// FieldToken returns the named slot when it holds a token.
func (n *Node) FieldToken(name string) *Token {
	token, _ := n.Field(name).(*Token)
	return token
}

// HasField reports whether the named slot is occupied.
func (n *Node) HasField(name string) bool {
	return n.Field(name) != nil
}

// Children returns the non-empty slots in order.
func (n *Node) Children() []Element {
	children := make([]Element, 0, len(n.green.slots))
	for i := range n.green.slots {
		if child := n.Slot(i); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// ChildNodes returns the child nodes in order.
func (n *Node) ChildNodes() []*Node {
	var nodes []*Node
	for i := range n.green.slots {
		if child, ok := n.Slot(i).(*Node); ok {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// IsEmpty reports whether the node contains no tokens.
func (n *Node) IsEmpty() bool {
	return n.green.width == 0 && n.FirstToken() == nil
}

// FirstToken returns the first token in the subtree, or nil.
func (n *Node) FirstToken() *Token {
	for i := range n.green.slots {
		switch child := n.Slot(i).(type) {
		case *Token:
			return child
		case *Node:
			if token := child.FirstToken(); token != nil {
				return token
			}
		}
	}
	return nil
}

// LastToken returns the last token in the subtree, or nil.
func (n *Node) LastToken() *Token {
	for i := len(n.green.slots) - 1; i >= 0; i-- {
		switch child := n.Slot(i).(type) {
		case *Token:
			return child
		case *Node:
			if token := child.LastToken(); token != nil {
				return token
			}
		}
	}
	return nil
}

// FullRange returns the range including all trivia.
func (n *Node) FullRange() source.Range {
	return source.Range{Start: n.offset, End: n.offset + n.green.width}
}

// Range returns the range without the outer trivia.
func (n *Node) Range() source.Range {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return source.At(n.offset)
	}
	return source.Range{Start: first.Range().Start, End: last.Range().End}
}

// FullText returns the node text including all trivia.
func (n *Node) FullText() string {
	return n.green.FullText()
}

// Text returns the node text without the outer trivia.
func (n *Node) Text() string {
	full := n.FullRange()
	trimmed := n.Range()
	return n.FullText()[trimmed.Start-full.Start : trimmed.End-full.Start]
}

// Ancestors returns the parent chain, nearest first.
func (n *Node) Ancestors() []*Node {
	var ancestors []*Node
	for parent := n.parent; parent != nil; parent = parent.parent {
		ancestors = append(ancestors, parent)
	}
	return ancestors
}

// NextSibling returns the next non-empty slot of the parent, or nil.
func (n *Node) NextSibling() Element {
	return nextSibling(n)
}

// PrevSibling returns the previous non-empty slot of the parent, or nil.
func (n *Node) PrevSibling() Element {
	return prevSibling(n)
}

// ContainsBogus reports whether the node or a descendant is bogus.
func (n *Node) ContainsBogus() bool {
	found := false
	Walk(n, func(node *Node) bool {
		if node.Kind().IsBogus() {
			found = true
		}
		return !found
	}, nil)
	return found
}

// Descendants returns every node in the subtree in preorder, n included.
func (n *Node) Descendants() []*Node {
	var nodes []*Node
	Walk(n, func(node *Node) bool {
		nodes = append(nodes, node)
		return true
	}, nil)
	return nodes
}

// Tokens returns every token in the subtree in document order.
func (n *Node) Tokens() []*Token {
	var tokens []*Token
	stack := []Element{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch el := top.(type) {
		case *Token:
			tokens = append(tokens, el)
		case *Node:
			for i := el.SlotCount() - 1; i >= 0; i-- {
				if child := el.Slot(i); child != nil {
					stack = append(stack, child)
				}
			}
		}
	}
	return tokens
}

// TokenAt returns the token whose full range contains offset.
func (n *Node) TokenAt(offset int) *Token {
	node := n
	for {
		var next *Node
		for i := range node.green.slots {
			child := node.Slot(i)
			if child == nil || !child.FullRange().Contains(offset) {
				continue
			}
			switch child := child.(type) {
			case *Token:
				return child
			case *Node:
				next = child
			}
			break
		}
		if next == nil {
			return nil
		}
		node = next
	}
}

// CoveringNode returns the deepest node whose range contains rng.
func (n *Node) CoveringNode(rng source.Range) *Node {
	node := n
	for {
		var next *Node
		for _, child := range node.ChildNodes() {
			if child.Range().ContainsRange(rng) && !child.Range().IsEmpty() {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

func (n *Node) String() string {
	return n.Kind().String() + "@" + n.Range().String()
}

// Token is a positioned view of a GreenToken.
type Token struct {
	green  *GreenToken
	parent *Node
	slot   int
	offset int
}

// Kind returns the token kind.
func (t *Token) Kind() Kind { return t.green.kind }

// Green returns the underlying green token.
func (t *Token) Green() *GreenToken { return t.green }

// GreenElement returns the underlying green token as a GreenElement.
func (t *Token) GreenElement() GreenElement { return t.green }

// Parent returns the parent node.
func (t *Token) Parent() *Node { return t.parent }

// IndexInParent returns the slot index within the parent.
func (t *Token) IndexInParent() int { return t.slot }

// Text returns the token text without trivia.
func (t *Token) Text() string { return t.green.Text() }

// FullText returns the token text with trivia.
func (t *Token) FullText() string { return t.green.text }

// FullRange returns the range including trivia.
func (t *Token) FullRange() source.Range {
	return source.Range{Start: t.offset, End: t.offset + len(t.green.text)}
}

// Range returns the range of the token text.
func (t *Token) Range() source.Range {
	start := t.offset + triviaLen(t.green.leading)
	return source.Range{Start: start, End: start + len(t.green.Text())}
}

// Equal reports whether both views refer to the same token of the same tree.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.green == other.green && t.offset == other.offset && t.parent.Root().green == other.parent.Root().green
}

// LeadingTrivia returns the positioned leading trivia.
func (t *Token) LeadingTrivia() []Trivia {
	return positionTrivia(t.green.text, t.green.leading, 0, t.offset)
}

// TrailingTrivia returns the positioned trailing trivia.
func (t *Token) TrailingTrivia() []Trivia {
	start := len(t.green.text) - triviaLen(t.green.trailing)
	return positionTrivia(t.green.text, t.green.trailing, start, t.offset)
}

func positionTrivia(text string, pieces []TriviaPiece, start, base int) []Trivia {
	if len(pieces) == 0 {
		return nil
	}
	trivia := make([]Trivia, 0, len(pieces))
	pos := start
	for _, piece := range pieces {
		trivia = append(trivia, Trivia{
			Kind:  piece.Kind,
			Text:  text[pos : pos+piece.Len],
			Range: source.Range{Start: base + pos, End: base + pos + piece.Len},
		})
		pos += piece.Len
	}
	return trivia
}

// HasLeadingComments reports whether the leading trivia holds a comment.
func (t *Token) HasLeadingComments() bool {
	return hasComment(t.green.leading)
}

// HasTrailingComments reports whether the trailing trivia holds a comment.
func (t *Token) HasTrailingComments() bool {
	return hasComment(t.green.trailing)
}

// HasLeadingNewline reports whether a line break precedes the token.
func (t *Token) HasLeadingNewline() bool {
	for _, piece := range t.green.leading {
		if piece.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

func hasComment(pieces []TriviaPiece) bool {
	for _, piece := range pieces {
		if piece.Kind.IsComment() {
			return true
		}
	}
	return false
}

// NextToken returns the next token in document order, or nil.
func (t *Token) NextToken() *Token {
	var current Element = t
	for {
		parent := current.Parent()
		if parent == nil {
			return nil
		}
		for i := current.IndexInParent() + 1; i < parent.SlotCount(); i++ {
			switch child := parent.Slot(i).(type) {
			case *Token:
				return child
			case *Node:
				if token := child.FirstToken(); token != nil {
					return token
				}
			}
		}
		current = parent
	}
}

// PrevToken returns the previous token in document order, or nil.
func (t *Token) PrevToken() *Token {
	var current Element = t
	for {
		parent := current.Parent()
		if parent == nil {
			return nil
		}
		for i := current.IndexInParent() - 1; i >= 0; i-- {
			switch child := parent.Slot(i).(type) {
			case *Token:
				return child
			case *Node:
				if token := child.LastToken(); token != nil {
					return token
				}
			}
		}
		current = parent
	}
}

// NextSibling returns the next non-empty slot of the parent, or nil.
func (t *Token) NextSibling() Element {
	return nextSibling(t)
}

// PrevSibling returns the previous non-empty slot of the parent, or nil.
func (t *Token) PrevSibling() Element {
	return prevSibling(t)
}

func (t *Token) String() string {
	return t.Kind().String() + "@" + t.Range().String() + " " + strings.TrimSpace(t.Text())
}

func nextSibling(el Element) Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for i := el.IndexInParent() + 1; i < parent.SlotCount(); i++ {
		if child := parent.Slot(i); child != nil {
			return child
		}
	}
	return nil
}

func prevSibling(el Element) Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for i := el.IndexInParent() - 1; i >= 0; i-- {
		if child := parent.Slot(i); child != nil {
			return child
		}
	}
	return nil
}

// Walk visits every node of the subtree in preorder. enter returns false to
// skip the children of a node; leave may be nil. The traversal uses an
// explicit stack so deeply nested input cannot exhaust the goroutine stack.
func Walk(root *Node, enter func(*Node) bool, leave func(*Node)) {
	type frame struct {
		node  *Node
		next  int
		enter bool
	}
	stack := []frame{{node: root, enter: true}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.enter {
			top.enter = false
			if !enter(top.node) {
				if leave != nil {
					leave(top.node)
				}
				stack = stack[:len(stack)-1]
				continue
			}
		}
		var child *Node
		for top.next < top.node.SlotCount() {
			candidate, ok := top.node.Slot(top.next).(*Node)
			top.next++
			if ok {
				child = candidate
				break
			}
		}
		if child != nil {
			stack = append(stack, frame{node: child, enter: true})
			continue
		}
		if leave != nil {
			leave(top.node)
		}
		stack = stack[:len(stack)-1]
	}
}
