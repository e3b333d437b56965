package syntax

import (
	"cmp"
	"fmt"
	"slices"
)

// BatchMutation collects replacements and removals against one tree and
// commits them together into a new root. The original tree is never
// modified and every untouched subtree is shared with the result.
type BatchMutation struct {
	root     *Node
	changes  []change
	replaced *GreenNode
}

type change struct {
	parent   *Node
	slot     int
	depth    int
	element  GreenElement
	explicit bool
	seq      int
}

// NewBatchMutation starts a mutation of the tree rooted at root.
func NewBatchMutation(root *Node) *BatchMutation {
	return &BatchMutation{root: root.Root()}
}

// Root returns the root the mutation was created for.
func (m *BatchMutation) Root() *Node {
	return m.root
}

// IsEmpty reports whether no change has been recorded.
func (m *BatchMutation) IsEmpty() bool {
	return len(m.changes) == 0 && m.replaced == nil
}

// ReplaceElement replaces prev with next, moving the leading trivia of the
// first token and the trailing trivia of the last token of prev onto next.
func (m *BatchMutation) ReplaceElement(prev Element, next GreenElement) {
	var leadingText, trailingText string
	var leading, trailing []TriviaPiece
	var first, last *Token
	switch prev := prev.(type) {
	case *Token:
		first, last = prev, prev
	case *Node:
		first, last = prev.FirstToken(), prev.LastToken()
	}
	if first != nil {
		leadingText, leading = first.green.LeadingText(), first.green.leading
		trailingText, trailing = last.green.TrailingText(), last.green.trailing
		next = withFirstToken(next, func(token *GreenToken) *GreenToken {
			return token.WithLeading(leadingText, leading)
		})
		next = withLastToken(next, func(token *GreenToken) *GreenToken {
			return token.WithTrailing(trailingText, trailing)
		})
	}
	m.ReplaceElementDiscardTrivia(prev, next)
}

// ReplaceElementDiscardTrivia replaces prev with next as is; the trivia of
// prev is dropped.
func (m *BatchMutation) ReplaceElementDiscardTrivia(prev Element, next GreenElement) {
	m.record(prev, next)
}

// RemoveElement empties the slot holding prev, trivia included.
func (m *BatchMutation) RemoveElement(prev Element) {
	m.record(prev, nil)
}

func (m *BatchMutation) record(prev Element, next GreenElement) {
	parent := prev.Parent()
	if parent == nil {
		node, ok := next.(*GreenNode)
		if !ok {
			panic("syntax: the root can only be replaced by a node")
		}
		m.replaced = node
		return
	}
	if !parent.Root().Equal(m.root) {
		panic(fmt.Sprintf("syntax: %s does not belong to the mutated tree", prev.Kind()))
	}
	m.changes = append(m.changes, change{
		parent:   parent,
		slot:     prev.IndexInParent(),
		depth:    len(parent.Ancestors()),
		element:  next,
		explicit: true,
		seq:      len(m.changes),
	})
}

type nodeKey struct {
	green  *GreenNode
	offset int
}

// Commit applies every change and returns the new root. Changes are applied
// deepest first; when an element is both replaced and modified through one
// of its descendants, the replacement wins.
func (m *BatchMutation) Commit() *Node {
	if m.replaced != nil {
		return NewRoot(m.replaced)
	}
	if len(m.changes) == 0 {
		return m.root
	}

	pending := slices.Clone(m.changes)
	seq := len(pending)
	var root *GreenNode

	for len(pending) > 0 {
		slices.SortStableFunc(pending, func(a, b change) int {
			return cmp.Compare(b.depth, a.depth)
		})
		depth := pending[0].depth

		var level []change
		rest := pending[:0:0]
		for _, ch := range pending {
			if ch.depth == depth {
				level = append(level, ch)
			} else {
				rest = append(rest, ch)
			}
		}
		pending = rest

		groups := make(map[nodeKey][]change)
		var order []nodeKey
		for _, ch := range level {
			key := nodeKey{green: ch.parent.green, offset: ch.parent.offset}
			if _, seen := groups[key]; !seen {
				order = append(order, key)
			}
			groups[key] = append(groups[key], ch)
		}

		for _, key := range order {
			group := groups[key]
			slices.SortStableFunc(group, func(a, b change) int {
				if a.explicit != b.explicit {
					if a.explicit {
						return 1
					}
					return -1
				}
				return cmp.Compare(a.seq, b.seq)
			})

			parent := group[0].parent
			slots := parent.green.Slots()
			for _, ch := range group {
				slots[ch.slot] = ch.element
			}
			updated := NewGreenNode(parent.green.kind, slots...)

			if parent.parent == nil {
				root = updated
				continue
			}
			pending = append(pending, change{
				parent:  parent.parent,
				slot:    parent.slot,
				depth:   depth - 1,
				element: updated,
				seq:     seq,
			})
			seq++
		}
	}

	return NewRoot(root)
}

func withFirstToken(el GreenElement, update func(*GreenToken) *GreenToken) GreenElement {
	switch el := el.(type) {
	case *GreenToken:
		return update(el)
	case *GreenNode:
		for i, slot := range el.slots {
			if slot == nil || (slot.TextLen() == 0 && !hasToken(slot)) {
				continue
			}
			return el.ReplaceSlot(i, withFirstToken(slot, update))
		}
	}
	return el
}

func withLastToken(el GreenElement, update func(*GreenToken) *GreenToken) GreenElement {
	switch el := el.(type) {
	case *GreenToken:
		return update(el)
	case *GreenNode:
		for i := len(el.slots) - 1; i >= 0; i-- {
			slot := el.slots[i]
			if slot == nil || (slot.TextLen() == 0 && !hasToken(slot)) {
				continue
			}
			return el.ReplaceSlot(i, withLastToken(slot, update))
		}
	}
	return el
}

func hasToken(el GreenElement) bool {
	switch el := el.(type) {
	case *GreenToken:
		return true
	case *GreenNode:
		for _, slot := range el.slots {
			if slot != nil && hasToken(slot) {
				return true
			}
		}
	}
	return false
}
