package parser

import "strings"

// Context is the set of grammar flags in effect while parsing a construct.
type Context uint16

const (
	InGenerator Context = 1 << iota
	InAsync
	InAmbient
	InConstructor
	// IncludeIn allows `in` as a binary operator. It is cleared in the
	// initializer of a for statement.
	IncludeIn
	InFunction
	InTypeContext
	Strict
	// NoRecovery disables ParseRecovery. It is set while speculating.
	NoRecovery
	BreakAllowed
	ContinueAllowed
)

var contextNames = []string{
	"InGenerator", "InAsync", "InAmbient", "InConstructor", "IncludeIn", "InFunction",
	"InTypeContext", "Strict", "NoRecovery", "BreakAllowed", "ContinueAllowed",
}

// Has reports whether every flag in flags is set.
func (c Context) Has(flags Context) bool {
	return c&flags == flags
}

func (c Context) String() string {
	var names []string
	for i, name := range contextNames {
		if c&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// StateChange describes the flags to set and clear for a nested construct.
type StateChange struct {
	Set   Context
	Clear Context
}

// Apply returns c with the change applied.
func (s StateChange) Apply(c Context) Context {
	return (c &^ s.Clear) | s.Set
}

// EnterFunction is the change for a function body with the given
// asynchronous and generator flags.
func EnterFunction(async, generator bool) StateChange {
	change := StateChange{
		Set:   InFunction,
		Clear: InAsync | InGenerator | InConstructor | BreakAllowed | ContinueAllowed,
	}
	if async {
		change.Set |= InAsync
	}
	if generator {
		change.Set |= InGenerator
	}
	return change
}

// State returns the flags in effect.
func (p *Parser) State() Context {
	return p.state
}

// WithState runs fn with change applied to the parser state and restores
// the previous state afterwards, also when fn panics.
func WithState[T any](p *Parser, change StateChange, fn func() T) T {
	saved := p.state
	p.state = change.Apply(saved)
	defer func() { p.state = saved }()
	return fn()
}

// Tristate is the answer of a bounded lookahead check.
type Tristate uint8

const (
	False Tristate = iota
	True
	// Unknown means the construct can only be identified by parsing it.
	Unknown
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Speculate runs fn with recovery disabled. If fn reports failure every
// event, diagnostic and token it consumed is discarded.
func (p *Parser) Speculate(fn func() bool) bool {
	cp := p.Checkpoint()
	ok := WithState(p, StateChange{Set: NoRecovery}, fn)
	if !ok {
		p.Rewind(cp)
	}
	return ok
}

// IsSpeculating reports whether recovery is disabled by speculation.
func (p *Parser) IsSpeculating() bool {
	return p.state.Has(NoRecovery)
}
