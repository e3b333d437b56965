package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// InvalidEditError describes an edit outside the file.
type InvalidEditError struct {
	Edit   Edit
	Reason string
}

func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Reason)
}

// EditConflictError describes two overlapping edits.
type EditConflictError struct {
	First  Edit
	Second Edit
}

func (e *EditConflictError) Error() string {
	return fmt.Sprintf("overlapping edits [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks that every edit lies within a file of size bytes.
func Validate(edits []Edit, size int) error {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return &InvalidEditError{Edit: edit, Reason: "negative start"}
		case edit.End < edit.Start:
			return &InvalidEditError{Edit: edit, Reason: "end before start"}
		case edit.End > size:
			return &InvalidEditError{Edit: edit, Reason: fmt.Sprintf("end beyond file size %d", size)}
		}
	}
	return nil
}

// sorted returns a copy of edits ordered by range. Insertions at the same
// offset keep their relative order.
func sorted(edits []Edit) []Edit {
	out := slices.Clone(edits)
	slices.SortStableFunc(out, func(a, b Edit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	return out
}

// Check validates edits and returns an EditConflictError for the first
// overlapping pair.
func Check(edits []Edit, size int) error {
	if err := Validate(edits, size); err != nil {
		return err
	}
	ordered := sorted(edits)
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Start < ordered[i-1].End {
			return &EditConflictError{First: ordered[i-1], Second: ordered[i]}
		}
	}
	return nil
}

// Prepare validates and orders edits for Apply. Duplicates are dropped and
// overlapping deletions merged; any other edit overlapping an earlier one
// is skipped so that a later pass can retry it against the updated text.
func Prepare(edits []Edit, size int) (accepted, skipped []Edit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	if err := Validate(edits, size); err != nil {
		return nil, nil, err
	}

	ordered := sorted(edits)
	current := ordered[0]
	for _, edit := range ordered[1:] {
		switch {
		case edit == current:
			// Two rules proposed the same change.
		case edit.Start >= current.End:
			accepted = append(accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.End = max(current.End, edit.End)
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)
	return accepted, skipped, nil
}
