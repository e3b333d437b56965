package parser

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// Marker is an open node. It must be completed or abandoned exactly once.
type Marker struct {
	pos     int
	start   int
	child   int
	settled bool
}

// Start opens a node at the current token.
func (p *Parser) Start() *Marker {
	pos := len(p.events)
	p.events = append(p.events, Event{Kind: EventStart, Node: syntax.Tombstone})
	p.open++
	return &Marker{pos: pos, start: p.source.Position(), child: -1}
}

func (m *Marker) settle(op string) {
	if m.settled {
		panic(fmt.Sprintf("parser: %s of a marker that was already completed or abandoned", op))
	}
	m.settled = true
}

// Complete closes the node with kind. Every token and node added since the
// marker was started becomes a child.
func (m *Marker) Complete(p *Parser, kind syntax.Kind) CompletedMarker {
	m.settle("completion")
	p.events[m.pos].Node = kind
	finish := len(p.events)
	p.events = append(p.events, Event{Kind: EventFinish})
	p.open--
	return CompletedMarker{
		startPos:  m.pos,
		finishPos: finish,
		kind:      kind,
		rng:       source.NewRange(m.start, max(m.start, p.lastEnd)),
	}
}

// Abandon drops the node; its children are added to the enclosing node.
func (m *Marker) Abandon(p *Parser) {
	m.settle("abandon")
	p.open--
	if m.child >= 0 {
		p.events[m.child].ForwardParent = 0
	}
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
		return
	}
	p.events[m.pos].Node = syntax.Tombstone
	p.events[m.pos].ForwardParent = 0
}

// Start returns the offset the marker was started at.
func (m *Marker) Start() int {
	return m.start
}

// CompletedMarker is a finished node that may still be wrapped, reverted or
// re-kinded.
type CompletedMarker struct {
	startPos  int
	finishPos int
	kind      syntax.Kind
	rng       source.Range
}

// Kind returns the node kind.
func (cm CompletedMarker) Kind() syntax.Kind {
	return cm.kind
}

// Range returns the source range of the node, trivia excluded.
func (cm CompletedMarker) Range() source.Range {
	return cm.rng
}

// Precede opens a new node that starts where cm starts and will contain it.
func (cm CompletedMarker) Precede(p *Parser) *Marker {
	m := p.Start()
	m.start = cm.rng.Start
	m.child = cm.startPos
	p.events[cm.startPos].ForwardParent = m.pos - cm.startPos
	return m
}

// UndoCompletion reopens the node. The returned marker keeps the original
// start position and may be completed with another kind or abandoned.
func (cm CompletedMarker) UndoCompletion(p *Parser) *Marker {
	start := &p.events[cm.startPos]
	if start.Kind != EventStart || p.events[cm.finishPos].Kind != EventFinish {
		panic(fmt.Sprintf("parser: cannot undo the completion of %s twice", cm.kind))
	}
	start.Node = syntax.Tombstone
	start.ForwardParent = 0
	p.events[cm.finishPos] = Event{Kind: EventNone}
	p.open++
	return &Marker{pos: cm.startPos, start: cm.rng.Start, child: -1}
}

// ChangeKind changes the kind of the completed node.
func (cm *CompletedMarker) ChangeKind(p *Parser, kind syntax.Kind) {
	p.events[cm.startPos].Node = kind
	cm.kind = kind
}

// ChangeToBogus changes the node to the bogus kind that stands in for it.
func (cm *CompletedMarker) ChangeToBogus(p *Parser) {
	cm.ChangeKind(p, syntax.BogusKindFor(cm.kind))
}

// Reservation is a position in the event stream where an empty slot may be
// recorded after later tokens have been parsed.
type Reservation struct {
	pos int
}

// Reserve records a placeholder that produces nothing unless filled.
func (p *Parser) Reserve() Reservation {
	pos := len(p.events)
	p.events = append(p.events, Event{Kind: EventNone})
	return Reservation{pos: pos}
}

// FillMissing turns the placeholder into an empty slot.
func (r Reservation) FillMissing(p *Parser) {
	p.events[r.pos].Kind = EventMissing
}
