package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/runner"
)

// writeDiff outputs a single file's diff in git style with colors.
func writeDiff(out io.Writer, styles *pretty.Styles, diff *fix.Diff) {
	path := strings.TrimPrefix(diff.Path, "/")

	fmt.Fprintln(out, styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(out, styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(out, styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(out, styles.DiffHunk.Render(fmt.Sprintf("@@ -%s +%s @@",
			hunkRange(hunk.OldStart, hunk.OldLines), hunkRange(hunk.NewStart, hunk.NewLines))))
		for _, line := range hunk.Lines {
			text := strings.TrimSuffix(line.Text, "\n")
			text = strings.TrimSuffix(text, "\r")
			switch line.Kind {
			case fix.LineAdded:
				fmt.Fprintln(out, styles.DiffAdd.Render("+"+text))
			case fix.LineRemoved:
				fmt.Fprintln(out, styles.DiffRemove.Render("-"+text))
			default:
				fmt.Fprintln(out, styles.DiffContext.Render(" "+text))
			}
			if !strings.HasSuffix(line.Text, "\n") {
				fmt.Fprintln(out, styles.Dim.Render(`\ No newline at end of file`))
			}
		}
	}
}

func hunkRange(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// writeDiffStat writes a git-style "N files changed" line for the diffs
// in result. It writes nothing when there are none.
func writeDiffStat(out io.Writer, styles *pretty.Styles, result *runner.Result) {
	var files, additions, deletions int
	for i := range result.Files {
		if diff := result.Files[i].Diff; diff.HasChanges() {
			files++
			additions += diff.Added
			deletions += diff.Removed
		}
	}
	if files == 0 {
		return
	}

	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(out, strings.Join(parts, ", "))
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
