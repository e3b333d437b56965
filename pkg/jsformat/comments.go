package jsformat

import (
	"strings"

	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// ignoreDirective marks the next statement or member as formatted by hand.
const ignoreDirective = "quill-ignore"

// token prints t with its comments. Missing tokens print nothing.
func (f *formatter) token(t *syntax.Token) format.Element {
	if t == nil {
		return format.Empty{}
	}
	return format.Concat(f.leading(t), f.guard(t), f.tokenText(t), f.trailing(t))
}

// tokenOr prints t, or text when t is missing.
func (f *formatter) tokenOr(t *syntax.Token, text string) format.Element {
	if t == nil {
		return format.Text(text)
	}
	return f.token(t)
}

// replaced prints text in place of t, keeping the comments of t.
func (f *formatter) replaced(t *syntax.Token, text string) format.Element {
	if t == nil {
		return format.Text(text)
	}
	return format.Concat(f.leading(t), f.guard(t), format.Dynamic(text, t.Range().Start), f.trailing(t))
}

// removed drops t but keeps its comments.
func (f *formatter) removed(t *syntax.Token) format.Element {
	if t == nil {
		return format.Empty{}
	}
	return format.Concat(f.leading(t), f.trailing(t))
}

// tokenText is the text of t with string literals re-quoted.
func (f *formatter) tokenText(t *syntax.Token) format.Element {
	rng := t.Range()
	switch t.Kind() {
	case syntax.TokStringLiteral:
		return format.Dynamic(normalizeString(t.Text(), f.opts.QuoteStyle), rng.Start)
	case syntax.TokJSXStringLiteral:
		return format.Dynamic(normalizeJSXString(t.Text(), f.opts.JSXQuoteStyle), rng.Start)
	}
	return format.SyntaxToken(f.src, rng)
}

// rawToken prints t with its comments and its text unchanged.
func (f *formatter) rawToken(t *syntax.Token) format.Element {
	if t == nil {
		return format.Empty{}
	}
	return format.Concat(f.leading(t), f.guard(t), format.SyntaxToken(f.src, t.Range()), f.trailing(t))
}

// guard prints the `;` that protects a statement starting with t from
// joining the previous line.
func (f *formatter) guard(t *syntax.Token) format.Element {
	if f.guards[t.Range().Start] {
		return format.Text(";")
	}
	return format.Empty{}
}

// leading prints the comments before t. A comment that starts a line is
// preceded by a hard break; a line comment, or any comment followed by a
// newline, is followed by one. Two or more newlines become one blank line.
func (f *formatter) leading(t *syntax.Token) format.Element {
	return f.comments(t, true)
}

// dangling prints the comments before a closing token, without the break
// after the last one.
func (f *formatter) dangling(t *syntax.Token) format.Element {
	return f.comments(t, false)
}

func (f *formatter) comments(t *syntax.Token, separateLast bool) format.Element {
	if t == nil {
		return format.Empty{}
	}
	trivia := t.LeadingTrivia()
	if !hasPrintable(trivia) {
		return format.Empty{}
	}

	parts := make([]format.Element, 0, 2*len(trivia))
	newlines := 0
	printed := false
	lineComment := false
	for _, piece := range trivia {
		switch piece.Kind {
		case syntax.TriviaNewline:
			newlines++
			continue
		case syntax.TriviaWhitespace:
			continue
		}
		switch {
		case printed && (newlines > 0 || lineComment):
			parts = append(parts, lineBreak(newlines))
		case printed:
			parts = append(parts, format.Space())
		case newlines > 0:
			parts = append(parts, format.HardLineBreak())
		}
		parts = append(parts, f.comment(piece))
		printed = true
		lineComment = piece.Kind == syntax.TriviaSingleLineComment
		newlines = 0
	}
	switch {
	case !separateLast:
	case lineComment || newlines > 0:
		parts = append(parts, lineBreak(newlines))
	default:
		parts = append(parts, format.Space())
	}
	return format.Concat(parts...)
}

// trailing prints the comments after t on the same line. Line comments are
// deferred to the end of the line and force the enclosing group to break.
func (f *formatter) trailing(t *syntax.Token) format.Element {
	if t == nil || !t.HasTrailingComments() || f.deferred[t.Range().Start] {
		return format.Empty{}
	}
	return f.trailingComments(t, true)
}

// withTrailingLast prints n and then the trailing comments of its last
// token, outside every group opened for n.
func (f *formatter) withTrailingLast(n *syntax.Node, print func(*syntax.Node) format.Element) format.Element {
	last := n.LastToken()
	if last == nil || last.Kind() == syntax.TokSemicolon || !last.HasTrailingComments() || f.deferred[last.Range().Start] {
		return print(n)
	}
	f.deferred[last.Range().Start] = true
	return format.Concat(print(n), f.trailingComments(last, false))
}

// trailingComments prints the comments after t. A block comment right after
// an opening parenthesis or bracket is not separated from it.
func (f *formatter) trailingComments(t *syntax.Token, expand bool) format.Element {
	var parts []format.Element
	opening := t.Kind() == syntax.TokLParen || t.Kind() == syntax.TokLBrack
	for _, piece := range t.TrailingTrivia() {
		switch piece.Kind {
		case syntax.TriviaSingleLineComment:
			parts = append(parts, format.LineSuffix(format.Space(), f.comment(piece)))
			if expand {
				parts = append(parts, format.ExpandParent())
			}
		case syntax.TriviaMultiLineComment, syntax.TriviaSkipped:
			if !opening || len(parts) > 0 {
				parts = append(parts, format.Space())
			}
			parts = append(parts, f.comment(piece))
		}
	}
	return format.Concat(parts...)
}

// comment prints one comment. Block comments whose continuation lines all
// start with `*` are re-indented to the current indentation.
func (f *formatter) comment(piece syntax.Trivia) format.Element {
	switch piece.Kind {
	case syntax.TriviaSingleLineComment:
		text := strings.TrimRight(piece.Text, " \t")
		return format.Comment(format.Dynamic(text, piece.Range.Start))
	case syntax.TriviaMultiLineComment:
		if lines, ok := docCommentLines(piece.Text); ok {
			parts := []format.Element{format.Dynamic(lines[0], piece.Range.Start)}
			for _, line := range lines[1:] {
				parts = append(parts, format.HardLineBreak(), format.Text(" "+line))
			}
			return format.Comment(parts...)
		}
	}
	return format.Comment(format.SyntaxToken(f.src, piece.Range))
}

func docCommentLines(text string) ([]string, bool) {
	if !strings.ContainsAny(text, "\r\n") {
		return nil, false
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimSpace(lines[i])
		if !strings.HasPrefix(lines[i], "*") {
			return nil, false
		}
	}
	lines[0] = strings.TrimSpace(lines[0])
	return lines, true
}

func lineBreak(newlines int) format.Element {
	if newlines > 1 {
		return format.EmptyLine()
	}
	return format.HardLineBreak()
}

func hasPrintable(trivia []syntax.Trivia) bool {
	for _, piece := range trivia {
		if piece.Kind.IsComment() || piece.Kind == syntax.TriviaSkipped {
			return true
		}
	}
	return false
}

// blankLineBefore reports whether the source has an empty line before n,
// ignoring the lines after its leading comments.
func blankLineBefore(n *syntax.Node) bool {
	return blankLineBeforeToken(n.FirstToken())
}

func blankLineBeforeToken(t *syntax.Token) bool {
	if t == nil {
		return false
	}
	newlines := 0
	for _, piece := range t.LeadingTrivia() {
		switch piece.Kind {
		case syntax.TriviaNewline:
			newlines++
		case syntax.TriviaWhitespace:
		default:
			return newlines > 1
		}
	}
	return newlines > 1
}

// startsOnNewLine reports whether a line break precedes n.
func startsOnNewLine(n *syntax.Node) bool {
	first := n.FirstToken()
	return first != nil && first.HasLeadingNewline()
}

// hasComments reports whether any token of n carries a comment.
func hasComments(n *syntax.Node) bool {
	for _, t := range n.Tokens() {
		if t.HasLeadingComments() || t.HasTrailingComments() {
			return true
		}
	}
	return false
}

// isIgnored reports whether a leading comment of n is an ignore directive.
func isIgnored(n *syntax.Node) bool {
	first := n.FirstToken()
	if first == nil || !first.HasLeadingComments() {
		return false
	}
	for _, piece := range first.LeadingTrivia() {
		if piece.Kind.IsComment() && isIgnoreComment(piece.Text) {
			return true
		}
	}
	return false
}

func isIgnoreComment(text string) bool {
	body := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(text, "//"), "/*"), "*/")
	rest, ok := strings.CutPrefix(strings.TrimSpace(body), ignoreDirective)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == ':')
}
