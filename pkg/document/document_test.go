package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/syntax"
)

func defaultSettings(t *testing.T) config.Settings {
	t.Helper()
	resolver, err := config.NewResolver(config.NewConfig())
	require.NoError(t, err)
	settings, err := resolver.For("file")
	require.NoError(t, err)
	return settings
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		lang     langdetect.Language
		wantLang langdetect.Language
		wantRoot syntax.Kind
	}{
		{name: "module", path: "a.js", content: "let a = 1;\n", wantLang: langdetect.JavaScript, wantRoot: syntax.NodeModule},
		{name: "commonjs script", path: "a.cjs", content: "var a = 1;\n", wantLang: langdetect.JavaScript, wantRoot: syntax.NodeScript},
		{name: "typescript", path: "a.ts", content: "let a: number = 1;\n", wantLang: langdetect.TypeScript, wantRoot: syntax.NodeModule},
		{name: "json", path: "package.json", content: "{\"a\": 1}\n", wantLang: langdetect.JSON, wantRoot: syntax.NodeJSONRoot},
		{name: "explicit language for stdin", content: "let a: string;\n", lang: langdetect.TypeScript, wantLang: langdetect.TypeScript, wantRoot: syntax.NodeModule},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc, err := document.Parse(testCase.path, testCase.content, testCase.lang)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantLang, doc.Language)
			assert.Equal(t, testCase.wantRoot, doc.Root.Kind())
			assert.False(t, doc.HasErrors())
			assert.Equal(t, testCase.content, doc.Root.FullText())
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	_, err := document.Parse("README.md", "# Title\n", langdetect.Unknown)
	require.ErrorIs(t, err, document.ErrUnsupportedLanguage)
}

func TestParseDiagnosticsCarryPath(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("src/a.js", "let = ;\n", langdetect.Unknown)
	require.NoError(t, err)
	require.True(t, doc.HasErrors())
	assert.Equal(t, "src/a.js", doc.Diagnostics[0].Locus.Path)
	assert.Equal(t, 1, doc.Diagnostics[0].Locus.Position.Line)
}

func TestJSONCFromLanguage(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("", "{\n  // c\n  \"a\": 1,\n}\n", langdetect.JSONC)
	require.NoError(t, err)
	assert.False(t, doc.HasErrors())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	settings := defaultSettings(t)

	doc, err := document.Parse("a.js", "let   a=1\n", langdetect.Unknown)
	require.NoError(t, err)
	printed, err := document.Format(doc, settings)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\n", printed.Code)

	doc, err = document.Parse("a.json", "{\"a\":1}", langdetect.Unknown)
	require.NoError(t, err)
	printed, err = document.Format(doc, settings)
	require.NoError(t, err)
	assert.Equal(t, "{ \"a\": 1 }\n", printed.Code)
}

func TestFormatTrailingCommasFollowDialect(t *testing.T) {
	t.Parallel()

	settings := defaultSettings(t)
	settings.JSON.TrailingCommas = true

	tests := []struct {
		path string
		want string
	}{
		{path: "a.json", want: "{\n\t\"a\": 1\n}\n"},
		{path: "a.jsonc", want: "{\n\t\"a\": 1,\n}\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			doc, err := document.Parse(testCase.path, "{\n\"a\": 1}", langdetect.Unknown)
			require.NoError(t, err)
			printed, err := document.Format(doc, settings)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, printed.Code)

			again, err := document.Parse(testCase.path, printed.Code, langdetect.Unknown)
			require.NoError(t, err)
			assert.False(t, again.HasErrors())
		})
	}
}

func TestFormatRefusesSyntaxErrors(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("a.js", "let = ;\n", langdetect.Unknown)
	require.NoError(t, err)
	_, err = document.Format(doc, defaultSettings(t))
	require.ErrorIs(t, err, document.ErrSyntax)
}

func TestReparseAndLines(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("a.ts", "let a = 1;\n", langdetect.Unknown)
	require.NoError(t, err)
	next, err := doc.Reparse("let a = 1;\nlet b = 2;\n")
	require.NoError(t, err)
	assert.Equal(t, langdetect.TypeScript, next.Language)
	assert.Equal(t, "let b = 2;", next.Lines().LineText(2))
}
