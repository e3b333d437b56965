package parser

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/syntax"
)

// Progress guards parsing loops against iterations that consume nothing.
type Progress struct {
	pos    int
	events int
	seen   bool
}

// Assert panics if the parser has not advanced since the previous call.
func (pr *Progress) Assert(p *Parser) {
	pos := p.source.Position()
	if pr.seen && pos == pr.pos && len(p.events) == pr.events && !p.At(syntax.TokEOF) {
		panic(fmt.Sprintf("parser: no progress at offset %d (%s)", pos, p.Cur()))
	}
	pr.pos, pr.events, pr.seen = pos, len(p.events), true
}

// NodeList parses a list of nodes until IsAtEnd reports true.
type NodeList struct {
	Kind syntax.Kind
	// ParseElement parses one element or returns Absent without consuming.
	ParseElement func(p *Parser) Parsed
	// IsAtEnd reports whether the current token ends the list.
	IsAtEnd func(p *Parser) bool
	// Recovery is used when an element is absent.
	Recovery ParseRecovery
	// Expected reports an absent element.
	Expected ErrorBuilder
}

// Parse parses the list and completes a node of l.Kind.
func (l NodeList) Parse(p *Parser) CompletedMarker {
	m := p.Start()
	var progress Progress
	for !p.At(syntax.TokEOF) && !l.IsAtEnd(p) {
		progress.Assert(p)
		parsed := l.ParseElement(p)
		if parsed.IsPresent() {
			continue
		}
		if !l.recover(p) {
			break
		}
	}
	return m.Complete(p, l.Kind)
}

// recover reports whether parsing can continue after an absent element.
func (l NodeList) recover(p *Parser) bool {
	p.Error(l.Expected(p, p.CurRange()))
	_, err := l.Recovery.Recover(p)
	return err == nil
}

// SeparatedList parses elements separated by Separator.
type SeparatedList struct {
	NodeList
	Separator syntax.Kind
	// AllowTrailing permits a separator after the last element.
	AllowTrailing bool
}

// Parse parses the list and completes a node of l.Kind.
func (l SeparatedList) Parse(p *Parser) CompletedMarker {
	m := p.Start()
	var progress Progress
	needSeparator := false
	for !p.At(syntax.TokEOF) && !l.IsAtEnd(p) {
		progress.Assert(p)
		if needSeparator {
			if !p.At(l.Separator) {
				p.Error(p.ExpectedToken(l.Separator).Build())
			} else {
				sep := p.CurRange()
				p.Bump(l.Separator)
				if l.IsAtEnd(p) {
					if !l.AllowTrailing {
						p.ErrorAt(sep, "trailing %s is not allowed here", l.Separator.Describe())
					}
					break
				}
			}
		}
		needSeparator = true

		parsed := l.ParseElement(p)
		if parsed.IsPresent() {
			continue
		}
		if p.At(l.Separator) {
			// An empty element, as in `f(a,,b)`.
			p.Error(l.Expected(p, p.CurRange()))
			p.Bump(l.Separator)
			needSeparator = false
			continue
		}
		if !l.recover(p) {
			break
		}
	}
	return m.Complete(p, l.Kind)
}
