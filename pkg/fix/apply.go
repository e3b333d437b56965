package fix

import "strings"

// Result summarises an Apply call.
type Result struct {
	Applied int
	Skipped []Edit
}

// Apply applies edits to content. Conflicting edits are skipped and
// returned in the result.
func Apply(content string, edits []Edit) (string, Result, error) {
	accepted, skipped, err := Prepare(edits, len(content))
	if err != nil {
		return content, Result{}, err
	}
	return applyOrdered(content, accepted), Result{Applied: len(accepted), Skipped: skipped}, nil
}

func applyOrdered(content string, edits []Edit) string {
	if len(edits) == 0 {
		return content
	}
	size := len(content)
	for _, edit := range edits {
		size += len(edit.NewText) - (edit.End - edit.Start)
	}

	var out strings.Builder
	out.Grow(size)
	cursor := 0
	for _, edit := range edits {
		out.WriteString(content[cursor:edit.Start])
		out.WriteString(edit.NewText)
		cursor = edit.End
	}
	out.WriteString(content[cursor:])
	return out.String()
}
