package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/quill/pkg/source"
)

// SourceMarker maps a source offset to an offset in the printed code.
type SourceMarker struct {
	Source int
	Dest   int
}

// Printed is the output of the printer.
type Printed struct {
	Code          string
	SourceMarkers []SourceMarker
	// VerbatimRanges are the source ranges that were printed unchanged.
	VerbatimRanges []source.Range
}

// Print lays out doc. It panics when doc references a group id before the
// group was printed.
func Print(doc Element, opts PrinterOptions) Printed {
	p := newPrinter(opts)
	p.run(doc)
	return Printed{
		Code:           p.out.String(),
		SourceMarkers:  p.markers,
		VerbatimRanges: p.verbatim,
	}
}

// indentation is the indentation of the lines started by an element.
type indentation struct {
	level int
	align int
}

func (i indentation) increment() indentation {
	return indentation{level: i.level + 1, align: i.align}
}

func (i indentation) decrement() indentation {
	if i.align > 0 {
		return indentation{level: i.level}
	}
	return indentation{level: max(i.level-1, 0)}
}

type printArgs struct {
	indent indentation
	mode   PrintMode
}

func (a printArgs) withMode(mode PrintMode) printArgs {
	a.mode = mode
	return a
}

// call is one entry of the work queue: an element with its arguments, or
// the continuation of a fill when fill is set.
type call struct {
	element Element
	args    printArgs
	fill    *fillState
}

// fillState is the progress through a fill. next is the index of the item
// to print next and prevFits whether the item before it was printed flat.
type fillState struct {
	fill     FillElement
	next     int
	prevFits bool
}

type groupModeSlot struct {
	mode PrintMode
	set  bool
}

type printer struct {
	opts    PrinterOptions
	unit    string
	tab     int
	newline string

	out       strings.Builder
	lineWidth int
	// newlines counts the line breaks written since the last text.
	newlines      int
	started       bool
	pendingIndent *indentation
	pendingSpace  bool

	stack      []call
	suffixes   []call
	groupModes []groupModeSlot
	markers    []SourceMarker
	verbatim   []source.Range
	// lastSource is the source offset of the last printed source text.
	// Synthesized text is marked with it.
	lastSource int
}

func newPrinter(opts PrinterOptions) *printer {
	return &printer{
		opts:    opts,
		unit:    opts.indentUnit(),
		tab:     opts.tabWidth(),
		newline: opts.LineEnding.String(),
	}
}

func (p *printer) push(element Element, args printArgs) {
	p.stack = append(p.stack, call{element: element, args: args})
}

func (p *printer) run(doc Element) {
	p.push(doc, printArgs{mode: ModeExpanded})
	for {
		for len(p.stack) > 0 {
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.printCall(top)
		}
		if len(p.suffixes) == 0 {
			return
		}
		p.pushSuffixes(nil)
	}
}

func (p *printer) printCall(c call) {
	if c.fill != nil {
		p.printFillEntry(c.fill, c.args)
		return
	}

	switch e := c.element.(type) {
	case nil, Empty, ExpandParentElement:
	case SpaceElement:
		p.pendingSpace = true
	case StaticText:
		if e.Text != "" {
			p.flushPending()
			p.mark(p.lastSource)
			p.printText(e.Text)
			p.mark(p.lastSource)
		}
	case DynamicText:
		p.flushPending()
		p.lastSource = e.Source
		p.mark(e.Source)
		p.printText(e.Text)
		p.mark(e.Source)
	case SyntaxSlice:
		p.flushPending()
		p.mark(e.Range.Start)
		p.printText(e.Text)
		p.lastSource = e.Range.End
		p.mark(e.Range.End)
	case Line:
		p.printLine(e, c.args)
	case IndentElement:
		p.push(e.Content, printArgs{indent: c.args.indent.increment(), mode: c.args.mode})
	case DedentElement:
		indent := c.args.indent.decrement()
		if e.Mode == DedentRoot {
			indent = indentation{}
		}
		p.push(e.Content, printArgs{indent: indent, mode: c.args.mode})
	case AlignElement:
		indent := c.args.indent
		indent.align += e.Count
		p.push(e.Content, printArgs{indent: indent, mode: c.args.mode})
	case GroupElement:
		p.printGroup(e, c.args)
	case ConditionalContent:
		mode := c.args.mode
		if e.GroupID != 0 {
			mode = p.groupMode(e.GroupID)
		}
		if mode == e.Mode {
			p.push(e.Content, c.args)
		}
	case List:
		for i := len(e) - 1; i >= 0; i-- {
			p.push(e[i], c.args)
		}
	case FillElement:
		p.stack = append(p.stack, call{args: c.args, fill: &fillState{fill: e}})
	case LineSuffixElement:
		p.suffixes = append(p.suffixes, call{element: e.Content, args: c.args})
	case LineSuffixBoundaryElement:
		p.printSuffixBoundary(c.args)
	case CommentElement:
		p.push(e.Content, c.args)
	case VerbatimElement:
		p.verbatim = append(p.verbatim, e.Range)
		p.push(e.Content, c.args)
	case Label:
		p.push(e.Content, c.args)
	case *Interned:
		p.push(e.Content, c.args)
	case BestFittingElement:
		p.printBestFitting(e, c.args)
	default:
		panic(fmt.Sprintf("format: unknown element %T", e))
	}
}

func (p *printer) printLine(line Line, args printArgs) {
	if args.mode == ModeFlat && !line.Mode.IsHard() {
		if line.Mode == LineSoftOrSpace {
			p.pendingSpace = true
		}
		return
	}

	// Pending suffixes go before the break; the break is printed again
	// once they are flushed.
	if len(p.suffixes) > 0 {
		p.stack = append(p.stack, call{element: line, args: args})
		p.pushSuffixes(&args.indent)
		return
	}

	indent := args.indent
	if !p.started {
		p.pendingIndent = &indent
		return
	}
	want := 1
	if line.Mode == LineEmpty {
		want = 2
	}
	for p.newlines < want {
		p.out.WriteString(p.newline)
		p.newlines++
	}
	p.lineWidth = 0
	p.pendingSpace = false
	p.pendingIndent = &indent
}

// pushSuffixes queues the pending suffixes in FIFO order. When flushed by a
// line at indent, a suffix that breaks lines and was queued at another
// indentation is moved to a line of its own at indent.
func (p *printer) pushSuffixes(indent *indentation) {
	for i := len(p.suffixes) - 1; i >= 0; i-- {
		suffix := p.suffixes[i]
		if indent == nil || suffix.args.indent == *indent || !WillBreak(suffix.element) {
			p.stack = append(p.stack, suffix)
			continue
		}
		suffix.args.indent = *indent
		p.stack = append(p.stack, suffix, call{element: Line{Mode: LineHard}, args: suffix.args})
	}
	p.suffixes = p.suffixes[:0]
}

// printSuffixBoundary flushes pending suffixes followed by a hard break, so
// that nothing after the boundary ends up behind a line comment.
func (p *printer) printSuffixBoundary(args printArgs) {
	if len(p.suffixes) == 0 {
		return
	}
	p.push(Line{Mode: LineHard}, args)
	p.pushSuffixes(&args.indent)
}

func (p *printer) printGroup(g GroupElement, args printArgs) {
	mode := ModeFlat
	switch {
	case g.Expand:
		mode = ModeExpanded
	case args.mode == ModeFlat:
	default:
		p.setGroupMode(g.ID, ModeFlat)
		local := []call{{element: g.Content, args: args.withMode(ModeFlat)}}
		if !p.fits(local, p.stack, p.currentWidth(), p.pendingSpace, true) {
			mode = ModeExpanded
		}
	}
	p.setGroupMode(g.ID, mode)
	p.push(g.Content, args.withMode(mode))
}

func (p *printer) printBestFitting(b BestFittingElement, args printArgs) {
	if args.mode == ModeFlat {
		p.push(b.Variants[0], args)
		return
	}
	// Every variant is measured flat. Only the first must be flat all the
	// way; the others may contain expanded groups and hard breaks.
	last := len(b.Variants) - 1
	for i, variant := range b.Variants[:last] {
		local := []call{{element: variant, args: args.withMode(ModeFlat)}}
		if !p.fits(local, p.stack, p.currentWidth(), p.pendingSpace, i == 0) {
			continue
		}
		if i == 0 {
			p.push(variant, args.withMode(ModeFlat))
		} else {
			p.push(variant, args.withMode(ModeExpanded))
		}
		return
	}
	p.push(b.Variants[last], args.withMode(ModeExpanded))
}

// printFillEntry prints the next item of a fill. An item stays on the
// line when the previous item did and the separator and the item fit flat;
// otherwise the separator breaks and the item is measured on its own line.
func (p *printer) printFillEntry(state *fillState, args printArgs) {
	items := state.fill.Items
	i := state.next
	if i >= len(items) {
		return
	}
	separator := state.fill.Separator
	flat := args.withMode(ModeFlat)
	expanded := args.withMode(ModeExpanded)

	if args.mode == ModeFlat {
		for j := len(items) - 1; j >= i; j-- {
			p.push(items[j], flat)
			if j > 0 {
				p.push(separator, flat)
			}
		}
		return
	}

	// After a non-last item the separator can break, which ends the
	// measurement; the last item is measured against the rest of the
	// document.
	var after, rest []call
	if i+1 < len(items) {
		after = []call{{element: separator, args: expanded}}
	} else {
		rest = p.stack
	}
	itemMode := func(fits bool) PrintMode {
		if fits {
			return ModeFlat
		}
		return ModeExpanded
	}

	if i == 0 {
		local := append(after, call{element: items[0], args: flat})
		fits := p.fits(local, rest, p.currentWidth(), p.pendingSpace, true)
		p.stack = append(p.stack, call{args: args, fill: &fillState{fill: state.fill, next: 1, prevFits: fits}})
		p.push(items[0], args.withMode(itemMode(fits)))
		return
	}

	if state.prevFits {
		local := append(after, call{element: items[i], args: flat}, call{element: separator, args: flat})
		if p.fits(local, rest, p.currentWidth(), p.pendingSpace, true) {
			p.stack = append(p.stack, call{args: args, fill: &fillState{fill: state.fill, next: i + 1, prevFits: true}})
			p.push(items[i], flat)
			p.push(separator, flat)
			return
		}
	}

	local := append(after, call{element: items[i], args: flat})
	fits := p.fits(local, rest, p.indentWidth(args.indent), false, true)
	p.stack = append(p.stack, call{args: args, fill: &fillState{fill: state.fill, next: i + 1, prevFits: fits}})
	p.push(items[i], args.withMode(itemMode(fits)))
	p.push(separator, expanded)
}

func (p *printer) setGroupMode(id GroupID, mode PrintMode) {
	if id == 0 {
		return
	}
	if int(id) >= len(p.groupModes) {
		grown := make([]groupModeSlot, int(id)+1, max(int(id)+1, 2*len(p.groupModes)))
		copy(grown, p.groupModes)
		p.groupModes = grown
	}
	p.groupModes[id] = groupModeSlot{mode: mode, set: true}
}

func (p *printer) groupMode(id GroupID) PrintMode {
	if int(id) >= len(p.groupModes) || !p.groupModes[id].set {
		panic(fmt.Sprintf("format: group %d is referenced before it was printed", id))
	}
	return p.groupModes[id].mode
}

func (p *printer) indentWidth(indent indentation) int {
	width := indent.align
	if p.opts.IndentStyle == IndentTab {
		return width + indent.level*p.tab
	}
	return width + indent.level*p.opts.IndentWidth
}

// currentWidth is the width of the line once pending indentation is
// written.
func (p *printer) currentWidth() int {
	if p.pendingIndent != nil {
		return p.lineWidth + p.indentWidth(*p.pendingIndent)
	}
	return p.lineWidth
}

func (p *printer) flushPending() {
	if p.pendingIndent != nil {
		indent := *p.pendingIndent
		p.pendingIndent = nil
		p.out.WriteString(strings.Repeat(p.unit, indent.level))
		p.out.WriteString(strings.Repeat(" ", indent.align))
		p.lineWidth += p.indentWidth(indent)
		p.pendingSpace = false
	}
	if p.pendingSpace {
		p.pendingSpace = false
		p.out.WriteByte(' ')
		p.lineWidth++
	}
}

// mark records that the output so far ends at source offset pos. Repeated
// markers are dropped.
func (p *printer) mark(pos int) {
	marker := SourceMarker{Source: pos, Dest: p.out.Len()}
	if n := len(p.markers); n > 0 && p.markers[n-1] == marker {
		return
	}
	p.markers = append(p.markers, marker)
}

// printText writes text, translating line breaks to the configured line
// ending.
func (p *printer) printText(text string) {
	if text == "" {
		return
	}
	p.flushPending()
	p.started = true
	p.newlines = 0
	for i := 0; i < len(text); {
		switch c := text[i]; c {
		case '\r', '\n':
			p.out.WriteString(p.newline)
			p.lineWidth = 0
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			i++
		case '\t':
			p.out.WriteByte('\t')
			p.lineWidth += p.tab
			i++
		default:
			j := i
			for j < len(text) && text[j] != '\r' && text[j] != '\n' && text[j] != '\t' {
				j++
			}
			p.out.WriteString(text[i:j])
			p.lineWidth += runewidth.StringWidth(text[i:j])
			i = j
		}
	}
}

// fits reports whether the local calls, followed by rest, print up to the
// next line break without exceeding the line width. width is the current
// line width. rest is read from the top down and never modified. When
// strict is set, flat content must not contain hard breaks or expanded
// groups.
func (p *printer) fits(local, rest []call, width int, pendingSpace, strict bool) bool {
	stack := append([]call(nil), local...)
	restIndex := len(rest)
	hasLineSuffix := len(p.suffixes) > 0
	limit := p.opts.LineWidth

	for {
		var c call
		switch {
		case len(stack) > 0:
			c = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case restIndex > 0:
			restIndex--
			c = rest[restIndex]
		default:
			return true
		}

		if c.fill != nil {
			items := c.fill.fill.Items
			for j := len(items) - 1; j >= c.fill.next; j-- {
				stack = append(stack, call{element: items[j], args: c.args})
				if j > 0 {
					stack = append(stack, call{element: c.fill.fill.Separator, args: c.args})
				}
			}
			continue
		}

		switch e := c.element.(type) {
		case nil, Empty:
		case SpaceElement:
			pendingSpace = true
		case Line:
			if c.args.mode != ModeFlat {
				return true
			}
			switch e.Mode {
			case LineSoftOrSpace:
				pendingSpace = true
			case LineHard, LineEmpty:
				return !strict
			}
		case StaticText, DynamicText, SyntaxSlice:
			text := textOf(e)
			if text == "" {
				continue
			}
			if pendingSpace {
				width++
				pendingSpace = false
			}
			for _, r := range text {
				switch r {
				case '\n', '\r':
					return c.args.mode != ModeFlat || !strict
				case '\t':
					width += p.tab
				default:
					width += runewidth.RuneWidth(r)
				}
				if width > limit {
					return false
				}
			}
		case IndentElement:
			stack = append(stack, call{element: e.Content, args: c.args})
		case DedentElement:
			stack = append(stack, call{element: e.Content, args: c.args})
		case AlignElement:
			stack = append(stack, call{element: e.Content, args: c.args})
		case GroupElement:
			mode := c.args.mode
			if e.Expand {
				if strict && c.args.mode == ModeFlat {
					return false
				}
				mode = ModeExpanded
			}
			p.setGroupMode(e.ID, mode)
			stack = append(stack, call{element: e.Content, args: c.args.withMode(mode)})
		case ConditionalContent:
			mode := c.args.mode
			if e.GroupID != 0 {
				mode = p.groupMode(e.GroupID)
			}
			if mode == e.Mode {
				stack = append(stack, call{element: e.Content, args: c.args})
			}
		case List:
			for i := len(e) - 1; i >= 0; i-- {
				stack = append(stack, call{element: e[i], args: c.args})
			}
		case FillElement:
			for j := len(e.Items) - 1; j >= 0; j-- {
				stack = append(stack, call{element: e.Items[j], args: c.args})
				if j > 0 {
					stack = append(stack, call{element: e.Separator, args: c.args})
				}
			}
		case LineSuffixElement:
			hasLineSuffix = true
		case LineSuffixBoundaryElement:
			if hasLineSuffix {
				return !strict
			}
		case CommentElement:
			stack = append(stack, call{element: e.Content, args: c.args})
		case VerbatimElement:
			stack = append(stack, call{element: e.Content, args: c.args})
		case Label:
			stack = append(stack, call{element: e.Content, args: c.args})
		case *Interned:
			stack = append(stack, call{element: e.Content, args: c.args})
		case ExpandParentElement:
			if strict && c.args.mode == ModeFlat {
				return false
			}
		case BestFittingElement:
			variant := e.Variants[len(e.Variants)-1]
			if c.args.mode == ModeFlat {
				variant = e.Variants[0]
			}
			stack = append(stack, call{element: variant, args: c.args})
		default:
			panic(fmt.Sprintf("format: unknown element %T", e))
		}
	}
}

func textOf(e Element) string {
	switch e := e.(type) {
	case StaticText:
		return e.Text
	case DynamicText:
		return e.Text
	case SyntaxSlice:
		return e.Text
	}
	return ""
}
