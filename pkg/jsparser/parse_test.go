package jsparser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/pkg/jsparser"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	jsOptions  = jsparser.Options{}
	tsOptions  = jsparser.Options{TypeScript: true}
	jsxOptions = jsparser.Options{JSX: true}
	tsxOptions = jsparser.Options{TypeScript: true, JSX: true}
)

func messages(t *testing.T, src string, opts jsparser.Options) []string {
	t.Helper()
	result := jsparser.Parse(src, opts)
	require.Equal(t, src, result.Root.FullText(), "tree must reproduce the source")
	out := make([]string, 0, len(result.Diagnostics))
	for _, diag := range result.Diagnostics {
		out = append(out, diag.Message)
	}
	return out
}

func TestParseValidSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts jsparser.Options
	}{
		{name: "empty", src: "", opts: jsOptions},
		{name: "variables", src: "const x = 1;\nlet {a, b: [c = 1, ...d]} = obj;\nvar e, f = 2;\n", opts: jsOptions},
		{name: "asi", src: "a\nb\nc = d\n", opts: jsOptions},
		{name: "functions", src: "function f(a, b = 1, ...rest) {\n  return a + b;\n}\n", opts: jsOptions},
		{name: "generators", src: "function* gen() { yield 1; yield* other(); }\n", opts: jsOptions},
		{name: "async", src: "async function f() { await g(); }\nconst h = async (x) => await x;\n", opts: jsOptions},
		{name: "top level await", src: "await load();\n", opts: jsOptions},
		{name: "arrows", src: "const add = (a, b) => a + b;\nconst id = x => x;\nconst obj = () => ({});\n", opts: jsOptions},
		{name: "parenthesized", src: "(1 >= -0);\n(a, b);\n", opts: jsOptions},
		{name: "precedence", src: "x = a + b * c ** d ** e - f % g;\ny = a ?? b || c && d;\n", opts: jsOptions},
		{name: "shifts", src: "x = a >> b >>> c << d;\nx >>= 1;\nx >>>= 2;\n", opts: jsOptions},
		{name: "conditional", src: "x = a ? b : c ? d : e;\n", opts: jsOptions},
		{name: "members", src: "a?.b?.[c]?.(d);\nnew Foo.Bar(1);\nfoo.default.if;\n", opts: jsOptions},
		{name: "templates", src: "tag`hello ${world} and ${more}`;\n`plain`;\n", opts: jsOptions},
		{name: "regex", src: "const re = /ab+c/gi;\nx = a / b / c;\n", opts: jsOptions},
		{name: "objects", src: "o = {a, b: 1, [c]: 2, d() {}, get e() { return 1; }, set e(v) {}, async *f() {}, ...g};\n", opts: jsOptions},
		{name: "arrays", src: "a = [1, , 2, ...rest, ];\n", opts: jsOptions},
		{name: "classes", src: "class A extends B {\n  #x = 1;\n  static y;\n  constructor() { super(); }\n  get z() { return this.#x; }\n  static { init(); }\n}\n", opts: jsOptions},
		{name: "control flow", src: "label: for (const x of xs) {\n  if (x) continue label;\n  else break;\n}\nwhile (a) a--;\ndo { b++ } while (b < 10)\n", opts: jsOptions},
		{name: "for variants", src: "for (let i = 0; i < n; i++) {}\nfor (const k in obj) {}\nfor (;;) { break; }\n", opts: jsOptions},
		{name: "switch", src: "switch (x) {\n  case 1:\n    y();\n    break;\n  default:\n    z();\n}\n", opts: jsOptions},
		{name: "try", src: "try { a(); } catch (e) { b(e); } finally { c(); }\ntry { a(); } catch { b(); }\n", opts: jsOptions},
		{name: "modules", src: "import x, { y as z, default as w } from \"m\";\nimport * as ns from 'ns';\nimport \"side-effect\";\nexport default x;\nexport { z, w as v };\nexport * from \"other\";\nexport const q = 1;\n", opts: jsOptions},
		{name: "import attributes", src: "import data from \"./data.json\" with { type: \"json\" };\n", opts: jsOptions},
		{name: "meta", src: "const u = import.meta.url;\nconst m = import(\"./m.js\");\nfunction F() { return new.target; }\n", opts: jsOptions},
		{name: "typescript declarations", src: "interface P { a: string; b?: number; m(x: number): void }\ntype U = \"a\" | \"b\";\nenum E { A = 1, B }\nconst enum C { X }\n", opts: tsOptions},
		{name: "typescript functions", src: "function f<T extends object>(x: T): x is T { return true; }\nfunction g(x: string): void;\n", opts: tsOptions},
		{name: "typescript expressions", src: "let v = obj as unknown as string;\nconst n = maybe!;\nconst s = f<string>(x);\nconst c = a < b;\n", opts: tsOptions},
		{name: "typescript types", src: "type F = (a: number, ...b: string[]) => void;\ntype M = { readonly [K in keyof T]?: T[K] };\ntype C = T extends (infer U)[] ? U : never;\ntype Tup = [a: string, b?: number, ...rest: boolean[]];\n", opts: tsOptions},
		{name: "typescript ambient", src: "declare module \"m\" {\n  export const x: number;\n}\ndeclare global {\n  interface Window { app: App }\n}\nnamespace A.B { export type T = string; }\n", opts: tsOptions},
		{name: "typescript classes", src: "abstract class A<T> implements I, J {\n  private readonly x: number = 1;\n  constructor(public y: string) { super(); }\n  abstract m(): void;\n}\n", opts: tsOptions},
		{name: "typescript generic arrow", src: "const id = <T,>(x: T): T => x;\n", opts: tsOptions},
		{name: "jsx", src: "const el = <div className=\"a\" {...props}>Hello {name}<br /></div>;\n", opts: jsxOptions},
		{name: "jsx fragment", src: "const f = <>\n  <Foo.Bar x={1} />\n  {items.map(i => <li key={i}>{i}</li>)}\n</>;\n", opts: jsxOptions},
		{name: "tsx", src: "const el: JSX.Element = <svg:rect aria-label=\"x\" />;\n", opts: tsxOptions},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := jsparser.Parse(testCase.src, testCase.opts)
			assert.Equal(t, testCase.src, result.Root.FullText())
			assert.Empty(t, result.Diagnostics)
			assert.False(t, result.Root.ContainsBogus(), syntax.Dump(result.Root))
		})
	}
}

func TestFunctionDeclarationWithoutName(t *testing.T) {
	t.Parallel()

	result := jsparser.Parse("function() {}", jsOptions)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "expected a name for the function in a function declaration, but found none",
		result.Diagnostics[0].Message)

	items := result.Root.FieldNode("items")
	require.NotNil(t, items)
	require.Len(t, items.ChildNodes(), 1)
	function := items.ChildNodes()[0]
	assert.Equal(t, syntax.NodeFunctionDeclaration, function.Kind())
	assert.False(t, function.HasField("id"))
	assert.True(t, function.HasField("parameters"))
	assert.True(t, function.HasField("body"))
}

func TestExpressionShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		opts  jsparser.Options
		kind  syntax.Kind
		check func(t *testing.T, expr *syntax.Node)
	}{
		{
			name: "multiplication binds tighter",
			src:  "a + b * c",
			kind: syntax.NodeBinaryExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, "a", expr.FieldNode("left").Text())
				assert.Equal(t, "b * c", expr.FieldNode("right").Text())
			},
		},
		{
			name: "exponent is right associative",
			src:  "a ** b ** c",
			kind: syntax.NodeBinaryExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, "b ** c", expr.FieldNode("right").Text())
			},
		},
		{
			name: "logical operators",
			src:  "a || b && c",
			kind: syntax.NodeLogicalExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, syntax.NodeLogicalExpression, expr.FieldNode("right").Kind())
			},
		},
		{
			name: "greater or equal is one operator",
			src:  "a >= b",
			kind: syntax.NodeBinaryExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, syntax.TokGtEq, expr.FieldToken("operator").Kind())
			},
		},
		{
			name: "simple arrow",
			src:  "x => x",
			kind: syntax.NodeArrowFunctionExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.False(t, expr.HasField("async"))
				assert.Equal(t, syntax.NodeIdentifierBinding, expr.FieldNode("parameters").Kind())
			},
		},
		{
			name: "parenthesized expression is not an arrow",
			src:  "(a, b)",
			kind: syntax.NodeParenthesizedExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, syntax.NodeSequenceExpression, expr.FieldNode("expression").Kind())
			},
		},
		{
			name: "regex after operator",
			src:  "x = /a+/g",
			kind: syntax.NodeAssignmentExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, syntax.NodeRegexLiteralExpression, expr.FieldNode("right").Kind())
			},
		},
		{
			name: "tagged template",
			src:  "tag`a${b}c`",
			kind: syntax.NodeTemplateExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, "tag", expr.FieldNode("tag").Text())
				assert.Len(t, expr.FieldNode("elements").ChildNodes(), 3)
			},
		},
		{
			name: "type arguments on a call",
			src:  "f<T>(x)",
			opts: tsOptions,
			kind: syntax.NodeCallExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.True(t, expr.HasField("type_arguments"))
			},
		},
		{
			name: "less than stays a comparison",
			src:  "a < b",
			opts: tsOptions,
			kind: syntax.NodeBinaryExpression,
		},
		{
			name: "optional call",
			src:  "a?.(b)",
			kind: syntax.NodeCallExpression,
			check: func(t *testing.T, expr *syntax.Node) {
				assert.Equal(t, syntax.TokQuestionDot, expr.FieldToken("optional_chain").Kind())
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := jsparser.Parse(testCase.src, testCase.opts)
			require.Empty(t, result.Diagnostics)
			statement := result.Root.FieldNode("items").ChildNodes()[0]
			require.Equal(t, syntax.NodeExpressionStatement, statement.Kind())
			expr := statement.FieldNode("expression")
			require.Equal(t, testCase.kind, expr.Kind(), syntax.Dump(result.Root))
			if testCase.check != nil {
				testCase.check(t, expr)
			}
		})
	}
}

func TestUnionLeadingSeparator(t *testing.T) {
	t.Parallel()

	result := jsparser.Parse("type A = | \"a\" | \"b\";\ntype B = \"a\" | \"b\";\ntype C = string;", tsOptions)
	require.Empty(t, result.Diagnostics)
	items := result.Root.FieldNode("items").ChildNodes()

	first := items[0].FieldNode("ty")
	require.Equal(t, syntax.NodeTsUnionType, first.Kind())
	assert.True(t, first.HasField("leading_separator"))

	second := items[1].FieldNode("ty")
	require.Equal(t, syntax.NodeTsUnionType, second.Kind())
	assert.False(t, second.HasField("leading_separator"))
	assert.Len(t, second.FieldNode("types").ChildNodes(), 2)

	assert.Equal(t, syntax.NodeTsReferenceType, items[2].FieldNode("ty").Kind())
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts jsparser.Options
		want string
	}{
		{name: "missing expression", src: "let x = ;", want: "expected an expression but instead found `;`"},
		{name: "const without initializer", src: "const x;", want: "const declarations must have an initialized value"},
		{name: "missing semicolon", src: "a b", want: "expected a semicolon or an implicit semicolon after a statement, but found none"},
		{name: "return outside function", src: "return 1;", opts: jsparser.Options{SourceType: jsparser.Script}, want: "illegal return statement outside of a function"},
		{name: "stray brace", src: "a; }", want: "unexpected `}` without a matching `{`"},
		{name: "class without name", src: "class {}", want: "expected a name for the class in a class declaration, but found none"},
		{name: "typescript in javascript", src: "let x: number = 1;", want: "type annotations are a TypeScript only feature"},
		{name: "jsx closing tag", src: "<a></b>;", opts: jsxOptions, want: "expected corresponding closing tag for `a`"},
		{name: "duplicate default export", src: "export default 1;\nexport default 2;", want: "duplicate export default"},
		{name: "duplicate attribute", src: "import a from \"a\" with { type: \"json\", type: \"css\" };", want: "duplicate import attribute key `type`"},
		{name: "invalid assignment", src: "1 = 2;", want: "invalid assignment to `1`"},
		{name: "await outside async", src: "function f() { await x; }", want: "`await` is only allowed within async functions and at the top levels of modules"},
		{name: "lexical declaration in if", src: "if (a) let b = 1;", opts: jsparser.Options{SourceType: jsparser.Script}, want: "a lexical declaration cannot be declared in a single-statement context"},
		{name: "export in script", src: "export const a = 1;", opts: jsparser.Options{SourceType: jsparser.Script}, want: "illegal use of an export declaration outside of a module"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := messages(t, testCase.src, testCase.opts)
			assert.Contains(t, got, testCase.want)
		})
	}
}

func TestRecoveryTerminates(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"function (",
		"class A { foo( }",
		"let [a, , = ];",
		"if (",
		"x = {a: , b: }",
		"for (;;",
		"import { from 'x'",
		"`unterminated ${",
		"<div><span></div>",
		"a => => b",
		"@@@",
		"))))]]]]}}}}",
		"new new new",
		"type T = <",
		strings.Repeat("(", 200),
		strings.Repeat("[", 200),
		strings.Repeat("{", 200),
	}

	for _, input := range inputs {
		for _, opts := range []jsparser.Options{jsOptions, tsxOptions} {
			result := jsparser.Parse(input, opts)
			assert.Equal(t, input, result.Root.FullText())
			assert.NotEmpty(t, result.Diagnostics, "input %q", input)
		}
	}
}

func TestMaxDiagnostics(t *testing.T) {
	t.Parallel()

	result := jsparser.Parse(strings.Repeat("let = ;\n", 20), jsparser.Options{MaxDiagnostics: 3})
	assert.Len(t, result.Diagnostics, 3)
	assert.Positive(t, result.SuppressedDiagnostics)
}

func TestOptionsForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want jsparser.Options
	}{
		{name: "typescript", path: "a/b.ts", want: tsOptions},
		{name: "tsx", path: "C.TSX", want: tsxOptions},
		{name: "jsx", path: "c.jsx", want: jsxOptions},
		{name: "commonjs", path: "c.cjs", want: jsparser.Options{SourceType: jsparser.Script}},
		{name: "javascript", path: "c.js", want: jsxOptions},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, jsparser.OptionsForPath(testCase.path))
		})
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"function() {}",
		"(1 >= -0)",
		"a ? b : c => d",
		"let x: Array<Map<string, number>> = [];",
		"<a>{b}</a>",
		"`${`${a}`}`",
		"/[/]/.test(x)",
		"class { constructor( }",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		for _, opts := range []jsparser.Options{jsOptions, tsxOptions} {
			result := jsparser.Parse(src, opts)
			if result.Root.FullText() != src {
				t.Fatalf("tree text differs from the source for %q", src)
			}
		}
	})
}
