package format

import "github.com/yaklabco/quill/pkg/source"

// Text returns static text. The text must not contain tabs or line breaks
// unless they are meant to be printed as is.
func Text(text string) Element {
	if text == "" {
		return Empty{}
	}
	return StaticText{Text: text}
}

// Dynamic returns text derived from the source at offset pos.
func Dynamic(text string, pos int) Element {
	if text == "" {
		return Empty{}
	}
	return DynamicText{Text: text, Source: pos}
}

// SyntaxToken returns the text of rng in src, printed unchanged.
func SyntaxToken(src string, rng source.Range) Element {
	if rng.IsEmpty() {
		return Empty{}
	}
	return SyntaxSlice{Text: rng.Slice(src), Range: rng}
}

// Space returns a space.
func Space() Element { return SpaceElement{} }

// SoftLineBreak breaks in expanded mode and prints nothing in flat mode.
func SoftLineBreak() Element { return Line{Mode: LineSoft} }

// SoftLineBreakOrSpace breaks in expanded mode and prints a space in flat
// mode.
func SoftLineBreakOrSpace() Element { return Line{Mode: LineSoftOrSpace} }

// HardLineBreak always breaks.
func HardLineBreak() Element { return Line{Mode: LineHard} }

// EmptyLine always breaks and leaves one blank line.
func EmptyLine() Element { return Line{Mode: LineEmpty} }

// Concat joins elements into one, flattening nested lists and dropping
// empty elements.
func Concat(elements ...Element) Element {
	out := make(List, 0, len(elements))
	for _, e := range elements {
		switch e := e.(type) {
		case List:
			for _, child := range e {
				if !IsEmpty(child) {
					out = append(out, child)
				}
			}
		default:
			if !IsEmpty(e) {
				out = append(out, e)
			}
		}
	}
	switch len(out) {
	case 0:
		return Empty{}
	case 1:
		return out[0]
	}
	return out
}

// JoinWith joins the non-empty items with separator.
func JoinWith(separator Element, items ...Element) Element {
	out := make([]Element, 0, 2*len(items))
	for _, item := range items {
		if IsEmpty(item) {
			continue
		}
		if len(out) > 0 {
			out = append(out, separator)
		}
		out = append(out, item)
	}
	return Concat(out...)
}

// Indent indents content by one level.
func Indent(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return IndentElement{Content: inner}
}

// Dedent removes one indentation level from content.
func Dedent(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return DedentElement{Mode: DedentLevel, Content: inner}
}

// DedentToRoot prints the lines of content without indentation.
func DedentToRoot(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return DedentElement{Mode: DedentRoot, Content: inner}
}

// Align indents the lines of content by count spaces.
func Align(count int, content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	if count <= 0 {
		return inner
	}
	return AlignElement{Count: count, Content: inner}
}

// BlockIndent puts content on its own indented lines.
func BlockIndent(content ...Element) Element {
	return blockIndent(HardLineBreak(), content)
}

// SoftBlockIndent puts content on its own indented lines when the enclosing
// group expands.
func SoftBlockIndent(content ...Element) Element {
	return blockIndent(SoftLineBreak(), content)
}

// SoftSpaceBlockIndent is SoftBlockIndent with spaces around content when
// the enclosing group is flat.
func SoftSpaceBlockIndent(content ...Element) Element {
	return blockIndent(SoftLineBreakOrSpace(), content)
}

func blockIndent(line Element, content []Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return List{IndentElement{Content: List{line, inner}}, line}
}

// SoftLineIndentOrSpace starts content on a new indented line when the
// enclosing group expands and after a space otherwise.
func SoftLineIndentOrSpace(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return IndentElement{Content: List{SoftLineBreakOrSpace(), inner}}
}

// Group makes content one layout unit.
func Group(content ...Element) Element {
	return GroupWithID(0, content...)
}

// GroupWithID is Group whose resolved mode can be referenced with id.
func GroupWithID(id GroupID, content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return GroupElement{ID: id, Content: inner}
}

// ExpandedGroup is a group that always prints expanded.
func ExpandedGroup(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return GroupElement{Expand: true, Content: inner}
}

// IfGroupBreaks prints content only if the enclosing group expands.
func IfGroupBreaks(content ...Element) Element {
	return conditional(ModeExpanded, 0, content)
}

// IfGroupBreaksFor prints content only if the group id expanded.
func IfGroupBreaksFor(id GroupID, content ...Element) Element {
	return conditional(ModeExpanded, id, content)
}

// IfGroupFitsOnLine prints content only if the enclosing group is flat.
func IfGroupFitsOnLine(content ...Element) Element {
	return conditional(ModeFlat, 0, content)
}

// IfGroupFitsOnLineFor prints content only if the group id is flat.
func IfGroupFitsOnLineFor(id GroupID, content ...Element) Element {
	return conditional(ModeFlat, id, content)
}

func conditional(mode PrintMode, id GroupID, content []Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return ConditionalContent{Mode: mode, GroupID: id, Content: inner}
}

// LineSuffix defers content until the next line break.
func LineSuffix(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return LineSuffixElement{Content: inner}
}

// LineSuffixBoundary flushes pending line suffixes at this point and breaks
// the line if there were any.
func LineSuffixBoundary() Element { return LineSuffixBoundaryElement{} }

// Comment marks content as comment text.
func Comment(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return CommentElement{Content: inner}
}

// Verbatim prints rng of src unchanged.
func Verbatim(kind VerbatimKind, src string, rng source.Range) Element {
	text := SyntaxToken(src, rng)
	if IsEmpty(text) {
		return Empty{}
	}
	return VerbatimElement{Kind: kind, Range: rng, Content: text}
}

// ExpandParent forces the enclosing group to expand.
func ExpandParent() Element { return ExpandParentElement{} }

// BestFitting prints the first variant that fits, or the last one.
func BestFitting(variants ...Element) Element {
	kept := make([]Element, 0, len(variants))
	for _, v := range variants {
		if !IsEmpty(v) {
			kept = append(kept, v)
		}
	}
	switch len(kept) {
	case 0:
		return Empty{}
	case 1:
		return kept[0]
	}
	return BestFittingElement{Variants: kept}
}

// Labelled tags content with id.
func Labelled(id LabelID, content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return Label{ID: id, Content: inner}
}

// Intern wraps content so it can be placed several times in a document.
func Intern(content ...Element) Element {
	inner := Concat(content...)
	if IsEmpty(inner) {
		return Empty{}
	}
	return &Interned{Content: inner}
}

// Fill lays out the non-empty items with separator between them.
func Fill(separator Element, items ...Element) Element {
	kept := make([]Element, 0, len(items))
	for _, item := range items {
		if !IsEmpty(item) {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return Empty{}
	}
	return FillElement{Separator: separator, Items: kept}
}
