package syntax

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/source"
)

// SourceTrivia is a trivia piece recorded by a token source. Trailing trivia
// belongs to the token before it, everything else to the token after it.
type SourceTrivia struct {
	Kind     TriviaKind
	Range    source.Range
	Trailing bool
}

// TreeSink builds a lossless green tree from a stream of start, token and
// finish calls, attaching the recorded trivia to the nearest token.
type TreeSink struct {
	text      string
	trivia    []SourceTrivia
	triviaPos int
	textPos   int
	cache     *GreenCache
	stack     []pendingNode
	root      *GreenNode
	strict    bool
	reshaped  []Kind
}

type pendingNode struct {
	kind  Kind
	slots []GreenElement
}

// NewTreeSink creates a sink for text with the trivia recorded while lexing.
func NewTreeSink(text string, trivia []SourceTrivia) *TreeSink {
	return &TreeSink{text: text, trivia: trivia, cache: NewGreenCache()}
}

// Strict makes the sink panic when a node does not match its declared shape
// instead of converting it to a bogus node.
func (s *TreeSink) Strict() *TreeSink {
	s.strict = true
	return s
}

// StartNode opens a node of kind.
func (s *TreeSink) StartNode(kind Kind) {
	s.stack = append(s.stack, pendingNode{kind: kind})
}

// Missing records an empty slot in the current node.
func (s *TreeSink) Missing() {
	top := s.top()
	top.slots = append(top.slots, nil)
}

// Token adds a token covering rng, with its leading and trailing trivia.
func (s *TreeSink) Token(kind Kind, rng source.Range) {
	leadingStart := s.textPos
	leading := s.collectLeading(rng.Start)

	trailingStart := rng.End
	var trailing []TriviaPiece
	end := rng.End
	for s.triviaPos < len(s.trivia) {
		entry := s.trivia[s.triviaPos]
		if !entry.Trailing || entry.Range.Start != end {
			break
		}
		trailing = append(trailing, TriviaPiece{Kind: entry.Kind, Len: entry.Range.Len()})
		end = entry.Range.End
		s.triviaPos++
	}
	s.textPos = end

	token := s.cache.Token(
		kind,
		s.text[leadingStart:rng.Start], leading,
		s.text[rng.Start:rng.End],
		s.text[trailingStart:end], trailing,
	)
	top := s.top()
	top.slots = append(top.slots, token)
}

// collectLeading consumes trivia between the current position and upTo.
// Source text that no trivia accounts for becomes skipped trivia so that
// the tree stays lossless.
func (s *TreeSink) collectLeading(upTo int) []TriviaPiece {
	var pieces []TriviaPiece
	pos := s.textPos
	for s.triviaPos < len(s.trivia) {
		entry := s.trivia[s.triviaPos]
		if entry.Range.Start >= upTo {
			break
		}
		if entry.Range.Start > pos {
			pieces = append(pieces, TriviaPiece{Kind: TriviaSkipped, Len: entry.Range.Start - pos})
		}
		pieces = append(pieces, TriviaPiece{Kind: entry.Kind, Len: entry.Range.Len()})
		pos = entry.Range.End
		s.triviaPos++
	}
	if pos < upTo {
		pieces = append(pieces, TriviaPiece{Kind: TriviaSkipped, Len: upTo - pos})
	}
	return pieces
}

// FinishNode closes the current node.
func (s *TreeSink) FinishNode() {
	if len(s.stack) == 0 {
		panic("syntax: FinishNode without matching StartNode")
	}
	pending := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	kind := pending.kind
	if !fitsShape(kind, len(pending.slots)) {
		if s.strict {
			fields, _ := Shape(kind)
			panic(fmt.Sprintf("syntax: %s built with %d slots, shape %v", kind, len(pending.slots), fields))
		}
		s.reshaped = append(s.reshaped, kind)
		kind = BogusKindFor(kind)
	}

	node := NewGreenNode(kind, pending.slots...)
	if len(s.stack) == 0 {
		s.root = node
		return
	}
	parent := &s.stack[len(s.stack)-1]
	parent.slots = append(parent.slots, node)
}

// Reshaped returns the kinds of nodes that were converted to bogus nodes
// because their slots did not match the declared shape.
func (s *TreeSink) Reshaped() []Kind {
	return s.reshaped
}

// Finish returns the root. It panics if nodes are still open or no root was
// built.
func (s *TreeSink) Finish() *Node {
	if len(s.stack) != 0 {
		panic(fmt.Sprintf("syntax: %d unfinished nodes", len(s.stack)))
	}
	if s.root == nil {
		panic("syntax: no root node")
	}
	return NewRoot(s.root)
}

func (s *TreeSink) top() *pendingNode {
	if len(s.stack) == 0 {
		panic("syntax: token outside of any node")
	}
	return &s.stack[len(s.stack)-1]
}
