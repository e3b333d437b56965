package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/fix"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

func TestDiagnosticBuilder(t *testing.T) {
	t.Parallel()

	rng := source.Range{Start: 2, End: 6}
	diag := lint.NewDiagnostic(rng, "message").
		WithLabel("primary").
		WithDetail(source.Range{Start: 0, End: 1}, "secondary").
		WithNote("a note").
		WithSuggestion("try this").
		WithEdit("Remove it", fix.Delete(rng)).
		Build()

	assert.Equal(t, "message", diag.Message)
	assert.Equal(t, rng, diag.Primary.Range)
	assert.Equal(t, "primary", diag.Primary.Message)
	require.Len(t, diag.Secondary, 1)
	assert.Equal(t, "secondary", diag.Secondary[0].Message)
	assert.Equal(t, []string{"a note", "hint: try this"}, diag.Notes)
	require.True(t, diag.HasFix())
	assert.Equal(t, "Remove it", diag.Fix.Message)
	assert.Equal(t, fix.Delete(rng), diag.Fix.Edit)
	assert.True(t, diag.IsSyntaxError(), "rule is only set when reported")
}

func TestDiagnosticBuilder_WithFix(t *testing.T) {
	t.Parallel()

	src := "a == b;\n"
	doc := parseDoc(t, "a.js", src)

	var operator *syntax.Token
	for _, token := range doc.Root.Tokens() {
		if token.Kind() == syntax.TokEq2 {
			operator = token
		}
	}
	require.NotNil(t, operator)

	mutation := syntax.NewBatchMutation(doc.Root)
	mutation.ReplaceElement(operator, syntax.NewGreenToken(syntax.TokEq3, "==="))

	diag := lint.NewDiagnosticAt(operator, "use ===").WithFix("Use ===", mutation).Build()
	require.True(t, diag.HasFix())

	out, _, err := fix.Apply(src, []fix.Edit{diag.Fix.Edit})
	require.NoError(t, err)
	assert.Equal(t, "a === b;\n", out)
}

func TestDiagnosticBuilder_WithEmptyMutation(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "a.js", "a;\n")
	diag := lint.NewDiagnosticAt(doc.Root, "nothing").
		WithFix("No-op", syntax.NewBatchMutation(doc.Root)).
		Build()
	assert.False(t, diag.HasFix())
}
