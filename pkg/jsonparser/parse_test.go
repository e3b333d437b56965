package jsonparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/jsonparser"
	"github.com/yaklabco/quill/pkg/syntax"
)

func TestParseValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts jsonparser.Options
		kind syntax.Kind
	}{
		{name: "object", src: `{"a": 1, "b": [true, false, null], "c": {"d": "e"}}`, kind: syntax.NodeJSONObjectValue},
		{name: "array", src: "[\n  -1.5e10,\n  0\n]\n", kind: syntax.NodeJSONArrayValue},
		{name: "string", src: `"hello"`, kind: syntax.NodeJSONStringValue},
		{name: "number", src: `42`, kind: syntax.NodeJSONNumberValue},
		{name: "null", src: `null`, kind: syntax.NodeJSONNullValue},
		{name: "empty object", src: `{}`, kind: syntax.NodeJSONObjectValue},
		{
			name: "jsonc",
			src:  "{\n  // comment\n  \"a\": [1, 2,], /* block */\n}\n",
			opts: jsonparser.Options{AllowComments: true, AllowTrailingCommas: true},
			kind: syntax.NodeJSONObjectValue,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := jsonparser.Parse(testCase.src, testCase.opts)
			assert.Empty(t, result.Diagnostics)
			assert.Equal(t, testCase.src, result.Root.FullText())
			assert.False(t, result.Root.ContainsBogus())
			require.True(t, result.Root.HasField("value"))
			assert.Equal(t, testCase.kind, result.Root.FieldNode("value").Kind())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts jsonparser.Options
		want string
	}{
		{name: "comment", src: "// x\n1", want: "JSON standard does not allow comments"},
		{name: "trailing comma", src: `[1, 2,]`, want: "trailing `,` is not allowed here"},
		{name: "single quotes", src: `'a'`, want: "JSON standard does not allow single quoted strings"},
		{name: "unquoted name", src: `{a: 1}`, want: "property names must be double quoted strings"},
		{name: "bare word", src: `[undefined]`, want: "`undefined` is not a valid JSON value"},
		{name: "two values", src: `1 2`, want: "end of file expected"},
		{name: "empty", src: ``, want: "expected an array, an object, or a literal but instead the file ends"},
		{name: "missing value", src: `{"a": }`, want: "expected an array, an object, or a literal but instead found `}`"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := jsonparser.Parse(testCase.src, testCase.opts)
			assert.Equal(t, testCase.src, result.Root.FullText())
			require.NotEmpty(t, result.Diagnostics)
			messages := make([]string, 0, len(result.Diagnostics))
			for _, diag := range result.Diagnostics {
				messages = append(messages, diag.Message)
			}
			assert.Contains(t, messages, testCase.want)
		})
	}
}

func TestOptionsForPath(t *testing.T) {
	t.Parallel()

	jsonc := jsonparser.Options{AllowComments: true, AllowTrailingCommas: true}
	assert.Equal(t, jsonc, jsonparser.OptionsForPath("a/b.jsonc"))
	assert.Equal(t, jsonc, jsonparser.OptionsForPath("project/tsconfig.json"))
	assert.Equal(t, jsonparser.Options{}, jsonparser.OptionsForPath("package.json"))
}

func FuzzParse(f *testing.F) {
	seeds := []string{`{}`, `[1,,2]`, `{"a":}`, `{"a" 1 "b": 2}`, `]]]`, `{{{`, `/* x`, `"\u00`}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		result := jsonparser.Parse(src, jsonparser.Options{AllowComments: true})
		if result.Root.FullText() != src {
			t.Fatalf("tree text differs from the source for %q", src)
		}
	})
}
