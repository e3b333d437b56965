package parser

import (
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// EventKind discriminates parser events.
type EventKind uint8

const (
	// EventStart opens a node. A start whose node kind is syntax.Tombstone
	// was abandoned and produces nothing.
	EventStart EventKind = iota
	// EventFinish closes the innermost open node.
	EventFinish
	// EventToken adds a token.
	EventToken
	// EventMissing records an empty slot.
	EventMissing
	// EventNone produces nothing. It replaces undone finish events and
	// unfilled reservations.
	EventNone
)

// Event is one step of the flat tree description produced by the parser.
type Event struct {
	Kind EventKind
	// Node is the node kind of a start event and the token kind of a token
	// event.
	Node syntax.Kind
	// ForwardParent is the distance to the start event of a node that wraps
	// this one, set by CompletedMarker.Precede.
	ForwardParent int
	// Range is the source range of a token event.
	Range source.Range
}

// Sink receives the tree described by an event list.
type Sink interface {
	StartNode(kind syntax.Kind)
	FinishNode()
	Token(kind syntax.Kind, rng source.Range)
	Missing()
}

// Process replays events into sink. Start events that have forward parents
// open the parents first, outermost first. The events slice is consumed:
// start events reached through a forward parent chain are turned into
// tombstones.
func Process(events []Event, sink Sink) {
	var parents []syntax.Kind
	for i := range events {
		event := events[i]
		switch event.Kind {
		case EventStart:
			if event.Node == syntax.Tombstone && event.ForwardParent == 0 {
				continue
			}
			parents = append(parents[:0], event.Node)
			idx, forward := i, event.ForwardParent
			for forward != 0 {
				idx += forward
				parent := events[idx]
				parents = append(parents, parent.Node)
				forward = parent.ForwardParent
				events[idx].Node = syntax.Tombstone
				events[idx].ForwardParent = 0
			}
			for j := len(parents) - 1; j >= 0; j-- {
				if parents[j] != syntax.Tombstone {
					sink.StartNode(parents[j])
				}
			}
		case EventFinish:
			sink.FinishNode()
		case EventToken:
			sink.Token(event.Node, event.Range)
		case EventMissing:
			sink.Missing()
		case EventNone:
		}
	}
}
