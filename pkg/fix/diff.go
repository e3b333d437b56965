package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind tells how a diff line relates the two versions.
type LineKind uint8

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) prefix() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	}
	return ' '
}

// Line is one line of a hunk. Text includes the line terminator when the
// line has one.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Diff is a unified diff of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Unified diffs before and after line by line. It returns nil when the
// texts are equal.
func Unified(path, before, after string) *Diff {
	if before == after {
		return nil
	}
	ops := diffLines(splitLines(before), splitLines(after))

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.kind {
		case LineAdded:
			diff.Added++
		case LineRemoved:
			diff.Removed++
		}
	}
	diff.Hunks = hunks(ops)
	return diff
}

// HasChanges reports whether the diff has any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff with `---`/`+++` headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", hunkRange(hunk.OldStart, hunk.OldLines), hunkRange(hunk.NewStart, hunk.NewLines))
		for _, line := range hunk.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Text)
			if !strings.HasSuffix(line.Text, "\n") {
				b.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}

func hunkRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start-1)
	}
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// splitLines splits s after each newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type lineOp struct {
	kind     LineKind
	text     string
	old, new int // 1-based line numbers before the op
}

// diffLines aligns two line slices. The common head and tail are matched
// directly and the middle with a longest common subsequence.
func diffLines(before, after []string) []lineOp {
	head := 0
	for head < len(before) && head < len(after) && before[head] == after[head] {
		head++
	}
	tail := 0
	for tail < len(before)-head && tail < len(after)-head &&
		before[len(before)-1-tail] == after[len(after)-1-tail] {
		tail++
	}

	ops := make([]lineOp, 0, len(before)+len(after))
	oldLine, newLine := 1, 1
	emit := func(kind LineKind, text string) {
		ops = append(ops, lineOp{kind: kind, text: text, old: oldLine, new: newLine})
		if kind != LineAdded {
			oldLine++
		}
		if kind != LineRemoved {
			newLine++
		}
	}

	for _, line := range before[:head] {
		emit(LineContext, line)
	}

	midBefore := before[head : len(before)-tail]
	midAfter := after[head : len(after)-tail]
	table := lcsTable(midBefore, midAfter)
	i, j := 0, 0
	for i < len(midBefore) || j < len(midAfter) {
		switch {
		case i < len(midBefore) && j < len(midAfter) && midBefore[i] == midAfter[j]:
			emit(LineContext, midBefore[i])
			i++
			j++
		case j == len(midAfter) || (i < len(midBefore) && table[i+1][j] >= table[i][j+1]):
			emit(LineRemoved, midBefore[i])
			i++
		default:
			emit(LineAdded, midAfter[j])
			j++
		}
	}

	for _, line := range before[len(before)-tail:] {
		emit(LineContext, line)
	}
	return ops
}

// lcsTable returns suffix LCS lengths: table[i][j] is the LCS length of
// a[i:] and b[j:].
func lcsTable(a, b []string) [][]int {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}
	return table
}

// hunks groups changed ops with their context. Changes separated by at
// most twice the context share a hunk.
func hunks(ops []lineOp) []Hunk {
	var out []Hunk
	i := 0
	for i < len(ops) {
		for i < len(ops) && ops[i].kind == LineContext {
			i++
		}
		if i == len(ops) {
			break
		}
		start := max(0, i-contextLines)

		end := i
		for end < len(ops) {
			if ops[end].kind != LineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == LineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(len(ops), end+contextLines)

		hunk := Hunk{OldStart: ops[start].old, NewStart: ops[start].new}
		for _, op := range ops[start:stop] {
			hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Text: op.text})
			if op.kind != LineAdded {
				hunk.OldLines++
			}
			if op.kind != LineRemoved {
				hunk.NewLines++
			}
		}
		out = append(out, hunk)
		i = stop
	}
	return out
}
