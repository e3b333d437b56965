package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/source"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.Edit
		want    string
		skipped int
	}{
		{name: "no edits", content: "a;", want: "a;"},
		{
			name:    "unordered edits",
			content: "var a = b == c;",
			edits: []fix.Edit{
				fix.Replace(source.Range{Start: 10, End: 12}, "==="),
				fix.Replace(source.Range{Start: 0, End: 3}, "let"),
			},
			want: "let a = b === c;",
		},
		{
			name:    "overlapping deletions merge",
			content: "abcdef",
			edits:   []fix.Edit{fix.Delete(source.Range{Start: 1, End: 3}), fix.Delete(source.Range{Start: 2, End: 5})},
			want:    "af",
		},
		{
			name:    "overlapping replacement is skipped",
			content: "abcdef",
			edits:   []fix.Edit{fix.Replace(source.Range{Start: 0, End: 3}, "X"), fix.Replace(source.Range{Start: 2, End: 4}, "Y")},
			want:    "Xdef",
			skipped: 1,
		},
		{
			name:    "duplicate edits apply once",
			content: "a",
			edits:   []fix.Edit{fix.Insert(1, ";"), fix.Insert(1, ";")},
			want:    "a;",
		},
		{
			name:    "insertions at one offset keep their order",
			content: "()",
			edits:   []fix.Edit{fix.Insert(1, "a"), fix.Insert(1, "b")},
			want:    "(ab)",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, result, err := fix.Apply(testCase.content, testCase.edits)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Len(t, result.Skipped, testCase.skipped)
		})
	}
}

func TestApplyRejectsInvalidEdits(t *testing.T) {
	t.Parallel()

	var invalid *fix.InvalidEditError

	_, _, err := fix.Apply("abc", []fix.Edit{{Start: 2, End: 9}})
	require.ErrorAs(t, err, &invalid)

	_, _, err = fix.Apply("abc", []fix.Edit{{Start: 2, End: 1}})
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Error(), "end before start")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, fix.Check([]fix.Edit{fix.Insert(0, "a"), fix.Delete(source.Range{Start: 0, End: 2})}, 3))

	err := fix.Check([]fix.Edit{fix.Delete(source.Range{Start: 0, End: 2}), fix.Insert(1, "x")}, 3)
	var conflict *fix.EditConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.Second.Start)
}
