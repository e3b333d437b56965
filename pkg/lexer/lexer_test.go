package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/lexer"
	"github.com/yaklabco/quill/pkg/syntax"
)

func kinds(tokens []lexer.Token) []syntax.Kind {
	out := make([]syntax.Kind, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == syntax.TokWhitespace {
			continue
		}
		out = append(out, token.Kind)
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []syntax.Kind
	}{
		{
			name:  "declaration",
			input: "let x = 1;",
			want: []syntax.Kind{
				syntax.TokIdent, syntax.TokIdent, syntax.TokEq, syntax.TokNumberLiteral,
				syntax.TokSemicolon, syntax.TokEOF,
			},
		},
		{
			name:  "reserved words become keywords",
			input: "function f() { return this }",
			want: []syntax.Kind{
				syntax.TokFunctionKw, syntax.TokIdent, syntax.TokLParen, syntax.TokRParen,
				syntax.TokLCurly, syntax.TokReturnKw, syntax.TokThisKw, syntax.TokRCurly, syntax.TokEOF,
			},
		},
		{
			name:  "operators are lexed greedily",
			input: "a ??= b ?. c === d !== e ** f >>= g",
			want: []syntax.Kind{
				syntax.TokIdent, syntax.TokQuestion2Eq, syntax.TokIdent, syntax.TokQuestionDot,
				syntax.TokIdent, syntax.TokEq3, syntax.TokIdent, syntax.TokNeq2, syntax.TokIdent,
				syntax.TokStar2, syntax.TokIdent, syntax.TokRAngle, syntax.TokRAngle, syntax.TokEq,
				syntax.TokIdent, syntax.TokEOF,
			},
		},
		{
			name:  "optional chaining is not a conditional with a number",
			input: "a?.5:1",
			want: []syntax.Kind{
				syntax.TokIdent, syntax.TokQuestion, syntax.TokNumberLiteral, syntax.TokColon,
				syntax.TokNumberLiteral, syntax.TokEOF,
			},
		},
		{
			name:  "comments and newlines are trivia",
			input: "a // one\n/* two */ b",
			want: []syntax.Kind{
				syntax.TokIdent, syntax.TokComment, syntax.TokNewline, syntax.TokComment,
				syntax.TokIdent, syntax.TokEOF,
			},
		},
		{
			name:  "numbers",
			input: "0x1F 1_000 .5 1e10 10n 0b101",
			want: []syntax.Kind{
				syntax.TokNumberLiteral, syntax.TokNumberLiteral, syntax.TokNumberLiteral,
				syntax.TokNumberLiteral, syntax.TokBigIntLiteral, syntax.TokNumberLiteral, syntax.TokEOF,
			},
		},
		{
			name:  "hashbang",
			input: "#!/usr/bin/env node\nx",
			want:  []syntax.Kind{syntax.TokComment, syntax.TokNewline, syntax.TokIdent, syntax.TokEOF},
		},
		{
			name:  "escaped keyword stays an identifier",
			input: `\u0069f`,
			want:  []syntax.Kind{syntax.TokIdent, syntax.TokEOF},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens, diags := lexer.Tokenize(testCase.input)
			assert.Empty(t, diags)
			assert.Equal(t, testCase.want, kinds(tokens))
		})
	}
}

func TestTokenizeCoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a\r\nb",
		"\"unterminated\nx",
		"/* open",
		"€ = 1",
		"\xff\xfe",
		"x y",
		"\ufeffz",
	}

	for _, input := range inputs {
		tokens, _ := lexer.Tokenize(input)
		require.NotEmpty(t, tokens)

		pos := 0
		for _, token := range tokens {
			assert.Equal(t, pos, token.Range.Start, "input %q", input)
			pos = token.Range.End
		}
		assert.Equal(t, len(input), pos, "input %q", input)
		assert.Equal(t, syntax.TokEOF, tokens[len(tokens)-1].Kind)
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
		kind    syntax.Kind
	}{
		{name: "unterminated string", input: `"abc`, message: "unterminated string literal", kind: syntax.TokStringLiteral},
		{name: "unterminated comment", input: "/* abc", message: "unterminated block comment", kind: syntax.TokComment},
		{name: "unexpected character", input: "€", message: "unexpected character `€`", kind: syntax.TokError},
		{name: "missing hex digits", input: "0x", message: "expected digits after the numeric prefix", kind: syntax.TokNumberLiteral},
		{name: "identifier after number", input: "3in", message: "an identifier cannot appear immediately after a numeric literal", kind: syntax.TokNumberLiteral},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens, diags := lexer.Tokenize(testCase.input)
			require.Len(t, diags, 1)
			assert.Equal(t, testCase.message, diags[0].Message)
			assert.Equal(t, lexer.DiagnosticCode, diags[0].Code)
			assert.Equal(t, testCase.kind, tokens[0].Kind)
		})
	}
}

func TestContexts(t *testing.T) {
	t.Parallel()

	t.Run("template", func(t *testing.T) {
		t.Parallel()

		lex := lexer.New("`a ${b} c`")
		assert.Equal(t, syntax.TokBacktick, lex.Next(lexer.ContextRegular).Kind)
		chunk := lex.Next(lexer.ContextTemplateElement)
		assert.Equal(t, syntax.TokTemplateChunk, chunk.Kind)
		assert.Equal(t, "a ", chunk.Range.Slice(lex.Source()))
		assert.Equal(t, syntax.TokDollarCurly, lex.Next(lexer.ContextTemplateElement).Kind)
		assert.Equal(t, syntax.TokIdent, lex.Next(lexer.ContextRegular).Kind)
		assert.Equal(t, syntax.TokRCurly, lex.Next(lexer.ContextRegular).Kind)
		assert.Equal(t, syntax.TokTemplateChunk, lex.Next(lexer.ContextTemplateElement).Kind)
		assert.Equal(t, syntax.TokBacktick, lex.Next(lexer.ContextTemplateElement).Kind)
		assert.Equal(t, syntax.TokEOF, lex.Next(lexer.ContextRegular).Kind)
	})

	t.Run("jsx", func(t *testing.T) {
		t.Parallel()

		lex := lexer.New(`data-id="a\b">hi {`)
		assert.Equal(t, syntax.TokJSXIdent, lex.Next(lexer.ContextJSXTag).Kind)
		assert.Equal(t, syntax.TokEq, lex.Next(lexer.ContextJSXTag).Kind)
		value := lex.Next(lexer.ContextJSXTag)
		assert.Equal(t, syntax.TokJSXStringLiteral, value.Kind)
		assert.Equal(t, `"a\b"`, value.Range.Slice(lex.Source()))
		assert.Equal(t, syntax.TokRAngle, lex.Next(lexer.ContextJSXTag).Kind)
		assert.Equal(t, syntax.TokJSXText, lex.Next(lexer.ContextJSXChild).Kind)
		assert.Equal(t, syntax.TokLCurly, lex.Next(lexer.ContextJSXChild).Kind)
		assert.Empty(t, lex.Diagnostics())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		lex := lexer.New(`[-1.5, true]`)
		var got []syntax.Kind
		for {
			token := lex.Next(lexer.ContextJSON)
			if token.Kind != syntax.TokWhitespace {
				got = append(got, token.Kind)
			}
			if token.Kind == syntax.TokEOF {
				break
			}
		}
		assert.Equal(t, []syntax.Kind{
			syntax.TokLBrack, syntax.TokNumberLiteral, syntax.TokComma, syntax.TokTrueKw,
			syntax.TokRBrack, syntax.TokEOF,
		}, got)
	})
}

func TestReLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		ctx   lexer.ReLexContext
		kind  syntax.Kind
		text  string
	}{
		{name: "regex", input: "/[/]a\\/b/gi.test(x)", ctx: lexer.ReLexRegex, kind: syntax.TokRegexLiteral, text: "/[/]a\\/b/gi"},
		{name: "regex starting with equals", input: "/=x/", ctx: lexer.ReLexRegex, kind: syntax.TokRegexLiteral, text: "/=x/"},
		{name: "unsigned shift assignment", input: ">>>= 1", ctx: lexer.ReLexBinaryOperator, kind: syntax.TokUShrEq, text: ">>>="},
		{name: "greater or equal", input: ">= 1", ctx: lexer.ReLexBinaryOperator, kind: syntax.TokGtEq, text: ">="},
		{name: "plain greater", input: "> >", ctx: lexer.ReLexBinaryOperator, kind: syntax.TokRAngle, text: ">"},
		{name: "jsx name", input: "aria-label=", ctx: lexer.ReLexJSXIdent, kind: syntax.TokJSXIdent, text: "aria-label"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lex := lexer.New(testCase.input)
			lex.Next(lexer.ContextRegular)
			token := lex.ReLex(0, testCase.ctx)
			assert.Equal(t, testCase.kind, token.Kind)
			assert.Equal(t, testCase.text, token.Range.Slice(testCase.input))
			assert.Equal(t, token.Range.End, lex.Position())
		})
	}
}

func TestCheckpointRewindDropsDiagnostics(t *testing.T) {
	t.Parallel()

	lex := lexer.New(`a "open`)
	lex.Next(lexer.ContextRegular)
	cp := lex.Checkpoint()
	lex.Next(lexer.ContextRegular)
	lex.Next(lexer.ContextRegular)
	require.Len(t, lex.Diagnostics(), 1)

	lex.Rewind(cp)
	assert.Empty(t, lex.Diagnostics())
	assert.Equal(t, 1, lex.Position())
	assert.Panics(t, func() {
		lex.Rewind(lexer.Checkpoint{Pos: 100})
	})
}
