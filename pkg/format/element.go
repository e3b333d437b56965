// Package format holds the document IR used by the formatters and the
// printer that lays it out within a line width.
//
// A document is a tree of Elements. Groups are the unit of layout: the
// printer prints a group flat when it fits on the rest of the line and
// expanded otherwise, and line elements inside it behave accordingly.
package format

import (
	"fmt"

	"github.com/yaklabco/quill/pkg/source"
)

// Element is one node of the document IR.
type Element interface {
	element()
}

// Empty prints nothing. Wrapping builders return Empty for empty content.
type Empty struct{}

// SpaceElement prints a single space. Adjacent spaces collapse.
type SpaceElement struct{}

// LineMode is the behaviour of a Line in flat mode.
type LineMode uint8

const (
	// LineSoft prints nothing in flat mode.
	LineSoft LineMode = iota
	// LineSoftOrSpace prints a space in flat mode.
	LineSoftOrSpace
	// LineHard always breaks and forces enclosing groups to expand.
	LineHard
	// LineEmpty always breaks and leaves exactly one blank line.
	LineEmpty
)

func (m LineMode) String() string {
	switch m {
	case LineSoft:
		return "soft"
	case LineSoftOrSpace:
		return "soft-or-space"
	case LineHard:
		return "hard"
	case LineEmpty:
		return "empty"
	default:
		return fmt.Sprintf("LineMode(%d)", uint8(m))
	}
}

// IsHard reports whether the line breaks regardless of the group mode.
func (m LineMode) IsHard() bool {
	return m == LineHard || m == LineEmpty
}

// Line is a potential line break.
type Line struct {
	Mode LineMode
}

// IndentElement increases the indentation of the lines started inside
// Content.
type IndentElement struct {
	Content Element
}

// DedentMode selects how far Dedent goes back.
type DedentMode uint8

const (
	// DedentLevel removes one indentation level.
	DedentLevel DedentMode = iota
	// DedentRoot resets the indentation to the start of the line.
	DedentRoot
)

// DedentElement decreases the indentation of the lines started inside
// Content.
type DedentElement struct {
	Mode    DedentMode
	Content Element
}

// AlignElement indents the lines started inside Content by Count spaces,
// after the regular indentation.
type AlignElement struct {
	Count   int
	Content Element
}

// GroupID references a group from conditional content. The zero value
// means no group.
type GroupID uint32

// GroupElement is printed flat if its content fits on the line and expanded
// otherwise.
type GroupElement struct {
	ID GroupID
	// Expand forces expanded mode.
	Expand  bool
	Content Element
}

// PrintMode is the resolved layout of a group.
type PrintMode uint8

const (
	// ModeExpanded breaks every soft line.
	ModeExpanded PrintMode = iota
	// ModeFlat prints soft lines as nothing or a space.
	ModeFlat
)

func (m PrintMode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "expanded"
}

// ConditionalContent prints Content only when the referenced group, or the
// enclosing group when GroupID is zero, resolved to Mode.
type ConditionalContent struct {
	Mode    PrintMode
	GroupID GroupID
	Content Element
}

// List is a sequence of elements.
type List []Element

// FillElement packs as many items per line as fit, testing each adjacent
// pair.
type FillElement struct {
	Separator Element
	Items     []Element
}

// StaticText is text created by the formatter.
type StaticText struct {
	Text string
}

// DynamicText is text computed from the source starting at Source, such as
// a normalized string literal.
type DynamicText struct {
	Text   string
	Source int
}

// SyntaxSlice is text copied unchanged from Range of the source.
type SyntaxSlice struct {
	Text  string
	Range source.Range
}

// LineSuffixElement defers Content until the next line break.
type LineSuffixElement struct {
	Content Element
}

// LineSuffixBoundaryElement flushes pending line suffixes.
type LineSuffixBoundaryElement struct{}

// CommentElement marks content that comes from a comment.
type CommentElement struct {
	Content Element
}

// VerbatimKind is the reason a range is printed verbatim.
type VerbatimKind uint8

const (
	// VerbatimBogus is the text of a node that did not parse.
	VerbatimBogus VerbatimKind = iota
	// VerbatimSuppressed is the text of a node with a suppression comment.
	VerbatimSuppressed
	// VerbatimOther is text printed unchanged for any other reason.
	VerbatimOther
)

func (k VerbatimKind) String() string {
	switch k {
	case VerbatimBogus:
		return "bogus"
	case VerbatimSuppressed:
		return "suppressed"
	default:
		return "verbatim"
	}
}

// VerbatimElement prints Content, which reproduces Range of the source
// unchanged.
type VerbatimElement struct {
	Kind    VerbatimKind
	Range   source.Range
	Content Element
}

// ExpandParentElement forces the enclosing group to expand.
type ExpandParentElement struct{}

// BestFittingElement prints the first variant that fits. Variants go from
// most flat to most expanded; the last one is printed when none fits.
type BestFittingElement struct {
	Variants []Element
}

// LabelID tags content so that formatters can recognise it later.
type LabelID uint32

// Label tags Content with an ID. It does not change the output.
type Label struct {
	ID      LabelID
	Content Element
}

// Interned is content that may be referenced from several places in a
// document. It is formatted once.
type Interned struct {
	Content Element
}

func (Empty) element()                     {}
func (SpaceElement) element()              {}
func (Line) element()                      {}
func (IndentElement) element()             {}
func (DedentElement) element()             {}
func (AlignElement) element()              {}
func (GroupElement) element()              {}
func (ConditionalContent) element()        {}
func (List) element()                      {}
func (FillElement) element()               {}
func (StaticText) element()                {}
func (DynamicText) element()               {}
func (SyntaxSlice) element()               {}
func (LineSuffixElement) element()         {}
func (LineSuffixBoundaryElement) element() {}
func (CommentElement) element()            {}
func (VerbatimElement) element()           {}
func (ExpandParentElement) element()       {}
func (BestFittingElement) element()        {}
func (Label) element()                     {}
func (*Interned) element()                 {}

// IsEmpty reports whether e prints nothing: nil, Empty, or a list of empty
// elements.
func IsEmpty(e Element) bool {
	switch e := e.(type) {
	case nil, Empty:
		return true
	case List:
		for _, child := range e {
			if !IsEmpty(child) {
				return false
			}
		}
		return true
	case *Interned:
		return e == nil || IsEmpty(e.Content)
	}
	return false
}

// WillBreak reports whether e contains a hard line break or ExpandParent
// outside of nested groups that are already forced to expand, so that an
// enclosing group can never print flat.
func WillBreak(e Element) bool {
	stack := []Element{e}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch top := top.(type) {
		case Line:
			if top.Mode.IsHard() {
				return true
			}
		case ExpandParentElement:
			return true
		case StaticText:
			if containsNewline(top.Text) {
				return true
			}
		case DynamicText:
			if containsNewline(top.Text) {
				return true
			}
		case SyntaxSlice:
			if containsNewline(top.Text) {
				return true
			}
		case List:
			stack = append(stack, top...)
		case IndentElement:
			stack = append(stack, top.Content)
		case DedentElement:
			stack = append(stack, top.Content)
		case AlignElement:
			stack = append(stack, top.Content)
		case GroupElement:
			if top.Expand {
				return true
			}
			stack = append(stack, top.Content)
		case ConditionalContent:
			if top.Mode == ModeExpanded {
				stack = append(stack, top.Content)
			}
		case FillElement:
			stack = append(stack, top.Items...)
		case CommentElement:
			stack = append(stack, top.Content)
		case VerbatimElement:
			stack = append(stack, top.Content)
		case Label:
			stack = append(stack, top.Content)
		case *Interned:
			stack = append(stack, top.Content)
		case BestFittingElement:
			if len(top.Variants) > 0 {
				stack = append(stack, top.Variants[0])
			}
		}
	}
	return false
}

func containsNewline(text string) bool {
	for i := range len(text) {
		if text[i] == '\n' || text[i] == '\r' {
			return true
		}
	}
	return false
}

// GroupIDBuilder hands out dense group ids for one document.
type GroupIDBuilder struct {
	next  GroupID
	names []string
}

// GroupID returns a new id. The name is only used in panic messages.
func (b *GroupIDBuilder) GroupID(name string) GroupID {
	b.next++
	b.names = append(b.names, name)
	return b.next
}

// Name returns the debug name of id.
func (b *GroupIDBuilder) Name(id GroupID) string {
	if id == 0 || int(id) > len(b.names) {
		return fmt.Sprintf("group#%d", id)
	}
	return b.names[id-1]
}

// Len returns the number of ids handed out.
func (b *GroupIDBuilder) Len() int {
	return int(b.next)
}
