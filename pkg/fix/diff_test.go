package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/fix"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "single line",
			before: "let a=1\nlet b = 2;\n",
			after:  "let a = 1;\nlet b = 2;\n",
			want:   "--- a/x.js\n+++ b/x.js\n@@ -1,2 +1,2 @@\n-let a=1\n+let a = 1;\n let b = 2;\n",
		},
		{
			name:   "missing final newline",
			before: "a",
			after:  "a;\n",
			want:   "--- a/x.js\n+++ b/x.js\n@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+a;\n",
		},
		{
			name:   "new file",
			before: "",
			after:  "a;\n",
			want:   "--- a/x.js\n+++ b/x.js\n@@ -0,0 +1 @@\n+a;\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diff := fix.Unified("x.js", testCase.before, testCase.after)
			require.True(t, diff.HasChanges())
			assert.Equal(t, testCase.want, diff.String())
		})
	}
}

func TestUnifiedEqual(t *testing.T) {
	t.Parallel()

	diff := fix.Unified("x.js", "a;\n", "a;\n")
	assert.Nil(t, diff)
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestUnifiedHunks(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := range 20 {
		line := string(rune('a'+i)) + ";\n"
		before.WriteString(line)
		switch i {
		case 1, 17:
			after.WriteString(strings.ToUpper(line))
		default:
			after.WriteString(line)
		}
	}

	diff := fix.Unified("x.js", before.String(), after.String())
	require.Len(t, diff.Hunks, 2, "distant changes get separate hunks")
	assert.Equal(t, 2, diff.Added)
	assert.Equal(t, 2, diff.Removed)

	first := diff.Hunks[0]
	assert.Equal(t, 1, first.OldStart)
	assert.Equal(t, 5, first.OldLines)
	assert.Equal(t, 5, first.NewLines)

	second := diff.Hunks[1]
	assert.Equal(t, 15, second.OldStart)
	assert.Equal(t, 6, second.OldLines)
}
