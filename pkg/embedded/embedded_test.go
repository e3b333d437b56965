package embedded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/embedded"
	"github.com/yaklabco/quill/pkg/langdetect"
)

func defaultSettings(t *testing.T) config.Settings {
	t.Helper()

	resolver, err := config.NewResolver(config.NewConfig())
	require.NoError(t, err)
	settings, err := resolver.For("README.md")
	require.NoError(t, err)
	return settings
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	content := "# Title\n\n```js\nconst a = 1\n```\n\n```go\nfunc main() {}\n```\n\n" +
		"- item\n\n  ```json\n  {\"a\":1}\n  ```\n\n> ```ts\n> let x\n> ```\n\n~~~tsx title=x.tsx\n<A />\n~~~\n"

	blocks := embedded.Blocks([]byte(content))
	require.Len(t, blocks, 3)

	assert.Equal(t, langdetect.JavaScript, blocks[0].Language)
	assert.Equal(t, "const a = 1\n", blocks[0].Code)
	assert.Equal(t, "const a = 1\n", blocks[0].Range.Slice(content))
	assert.Empty(t, blocks[0].Indent)

	assert.Equal(t, langdetect.JSON, blocks[1].Language)
	assert.Equal(t, "{\"a\":1}\n", blocks[1].Code)
	assert.Equal(t, "  ", blocks[1].Indent)
	assert.Equal(t, "  {\"a\":1}\n", blocks[1].Range.Slice(content))

	assert.Equal(t, langdetect.TSX, blocks[2].Language)
	assert.Equal(t, "tsx title=x.tsx", blocks[2].Info)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		want        string
		wantChanged int
	}{
		{
			name:        "javascript block",
			content:     "# Title\n\n```js\nconst o = {a:1,b:2}\n```\n\nText.\n",
			want:        "# Title\n\n```js\nconst o = { a: 1, b: 2 };\n```\n\nText.\n",
			wantChanged: 1,
		},
		{
			name:        "indented json block",
			content:     "- item\n\n  ```json\n  {\"a\":1,\"b\":[1,2]}\n  ```\n",
			want:        "- item\n\n  ```json\n  { \"a\": 1, \"b\": [1, 2] }\n  ```\n",
			wantChanged: 1,
		},
		{
			name:    "formatted block is untouched",
			content: "```ts\nlet a = 1;\n```\n",
			want:    "```ts\nlet a = 1;\n```\n",
		},
		{
			name:    "other languages are untouched",
			content: "```python\nx   =  1\n```\n",
			want:    "```python\nx   =  1\n```\n",
		},
		{
			name:    "no code blocks",
			content: "plain *text*\n",
			want:    "plain *text*\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := embedded.Format("doc.md", []byte(testCase.content), defaultSettings(t))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, string(result.Output))
			assert.Equal(t, testCase.wantChanged, result.Changed)
			assert.Empty(t, result.Diagnostics)
		})
	}
}

func TestFormatReportsBrokenBlocks(t *testing.T) {
	t.Parallel()

	content := "Intro\n\n```js\nlet a=1\nlet = ;\n```\n\n```js\nlet b=2\n```\n"
	result, err := embedded.Format("doc.md", []byte(content), defaultSettings(t))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Blocks)
	assert.Equal(t, 1, result.Changed)
	assert.Equal(t, "Intro\n\n```js\nlet a=1\nlet = ;\n```\n\n```js\nlet b = 2;\n```\n", string(result.Output))

	require.NotEmpty(t, result.Diagnostics)
	diag := result.Diagnostics[0]
	assert.Equal(t, "doc.md", diag.Locus.Path)
	assert.Equal(t, 5, diag.Locus.Position.Line)
}

func TestDocumentOffset(t *testing.T) {
	t.Parallel()

	content := "1. step\n\n   ```js\n   a();\n   b();\n   ```\n"
	blocks := embedded.Blocks([]byte(content))
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.Equal(t, "a();\nb();\n", block.Code)
	offset := block.DocumentOffset(5)
	assert.Equal(t, "b();", content[offset:offset+4])
}
