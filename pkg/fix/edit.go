// Package fix turns lint fixes and formatter output into text edits,
// applies them, and renders unified diffs.
package fix

import (
	"unicode/utf8"

	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

// Edit replaces the bytes [Start, End) of a file with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Replace returns an edit replacing rng.
func Replace(rng source.Range, text string) Edit {
	return Edit{Start: rng.Start, End: rng.End, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, NewText: text}
}

// Delete returns an edit removing rng.
func Delete(rng source.Range) Edit {
	return Edit{Start: rng.Start, End: rng.End}
}

// Range returns the replaced range.
func (e Edit) Range() source.Range {
	return source.Range{Start: e.Start, End: e.End}
}

// IsDeletion reports whether the edit only removes text.
func (e Edit) IsDeletion() bool {
	return e.NewText == "" && e.End > e.Start
}

// Between returns the smallest single edit that turns before into after.
// The edit boundaries never split a UTF-8 sequence. It reports false when
// the texts are equal.
func Between(before, after string) (Edit, bool) {
	if before == after {
		return Edit{}, false
	}

	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	for prefix > 0 && prefix < len(before) && !utf8.RuneStart(before[prefix]) {
		prefix--
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	for suffix > 0 && !utf8.RuneStart(before[len(before)-suffix]) {
		suffix--
	}

	return Edit{
		Start:   prefix,
		End:     len(before) - suffix,
		NewText: after[prefix : len(after)-suffix],
	}, true
}

// FromMutation commits m and returns the text edit it amounts to.
func FromMutation(m *syntax.BatchMutation) (Edit, bool) {
	if m == nil || m.IsEmpty() {
		return Edit{}, false
	}
	return Between(m.Root().FullText(), m.Commit().FullText())
}
