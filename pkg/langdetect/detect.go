// Package langdetect decides which grammar applies to a file. File names
// decide first; content is only consulted for stdin and extension-less
// files, using go-enry for shebangs and classification.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/quill/pkg/jsonparser"
)

// Language is a supported input language.
type Language string

const (
	Unknown    Language = ""
	JavaScript Language = "javascript"
	JSX        Language = "jsx"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	JSON       Language = "json"
	JSONC      Language = "jsonc"
	// Markdown files are not parsed themselves; their fenced code blocks
	// are.
	Markdown Language = "markdown"
)

// IsScript reports whether l is parsed by the JavaScript grammar.
func (l Language) IsScript() bool {
	switch l {
	case JavaScript, JSX, TypeScript, TSX:
		return true
	}
	return false
}

// IsJSON reports whether l is parsed by the JSON grammar.
func (l Language) IsJSON() bool {
	return l == JSON || l == JSONC
}

// IsMarkdown reports whether l is Markdown.
func (l Language) IsMarkdown() bool {
	return l == Markdown
}

// Extension returns a representative file extension for l.
func (l Language) Extension() string {
	switch l {
	case JavaScript:
		return ".js"
	case JSX:
		return ".jsx"
	case TypeScript:
		return ".ts"
	case TSX:
		return ".tsx"
	case JSON:
		return ".json"
	case JSONC:
		return ".jsonc"
	case Markdown:
		return ".md"
	}
	return ""
}

func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return string(l)
}

//nolint:gochecknoglobals // Read-only lookup table.
var extensions = map[string]Language{
	".js":       JavaScript,
	".mjs":      JavaScript,
	".cjs":      JavaScript,
	".jsx":      JSX,
	".ts":       TypeScript,
	".mts":      TypeScript,
	".cts":      TypeScript,
	".tsx":      TSX,
	".json":     JSON,
	".jsonc":    JSONC,
	".md":       Markdown,
	".markdown": Markdown,
}

//nolint:gochecknoglobals // Read-only lookup table.
var fileNames = map[string]Language{
	".babelrc":  JSONC,
	".swcrc":    JSONC,
	".jshintrc": JSONC,
}

// FromPath returns the language implied by the file name, or Unknown.
func FromPath(path string) Language {
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := fileNames[base]; ok {
		return lang
	}
	lang := extensions[strings.ToLower(filepath.Ext(base))]
	if lang == JSON && jsonparser.OptionsForPath(path).AllowComments {
		return JSONC
	}
	return lang
}

// Detect returns the language of a file, falling back to its content when
// the name is not conclusive.
func Detect(path string, content []byte) Language {
	if lang := FromPath(path); lang != Unknown {
		return lang
	}
	return FromContent(content)
}

// FromContent guesses the language of content. It returns Unknown when no
// strategy is confident.
func FromContent(content []byte) Language {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	// Strategy 1: Check shebang first (most reliable).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if mapped := fromEnry(lang); mapped != Unknown {
			return mapped
		}
	}

	// Strategy 2: JSON documents parse cleanly.
	if lang := detectJSON(trimmed); lang != Unknown {
		return lang
	}

	// Strategy 3: Distinctive syntax.
	if lang := detectByPattern(string(content)); lang != Unknown {
		return lang
	}

	// Strategy 4: Use classifier with the supported candidates.
	if lang, safe := enry.GetLanguageByClassifier(content, []string{"JavaScript", "TypeScript", "JSON"}); safe {
		return fromEnry(lang)
	}

	return Unknown
}

// FromFenceInfo maps the info string of a Markdown code fence to a
// language.
func FromFenceInfo(info string) Language {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return Unknown
	}
	switch strings.ToLower(strings.Trim(fields[0], "{}.")) {
	case "js", "javascript", "mjs", "cjs", "node":
		return JavaScript
	case "jsx":
		return JSX
	case "ts", "typescript", "mts", "cts":
		return TypeScript
	case "tsx":
		return TSX
	case "json":
		return JSON
	case "jsonc", "json5":
		return JSONC
	}
	return Unknown
}

// IsVendored reports whether path lies in a directory of third-party code,
// such as node_modules or vendor.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file looks machine-generated, such as
// minified bundles and source maps.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(filepath.ToSlash(path), content)
}

func fromEnry(lang string) Language {
	switch lang {
	case "JavaScript":
		return JavaScript
	case "TypeScript":
		return TypeScript
	case "TSX":
		return TSX
	case "JSON":
		return JSON
	case "JSON with Comments":
		return JSONC
	}
	return Unknown
}

// detectJSON parses objects and arrays as JSON, then as JSONC.
func detectJSON(trimmed []byte) Language {
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return Unknown
	}
	src := string(trimmed)
	if !jsonparser.Parse(src, jsonparser.Options{}).HasErrors() {
		return JSON
	}
	if !jsonparser.Parse(src, jsonparser.Options{AllowComments: true, AllowTrailingCommas: true}).HasErrors() {
		return JSONC
	}
	return Unknown
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(contentStr string) Language {
	jsx := strings.Contains(contentStr, "</") || strings.Contains(contentStr, "/>")
	if detectTypeScript(contentStr) {
		if jsx {
			return TSX
		}
		return TypeScript
	}
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") ||
		strings.Contains(contentStr, "function ") ||
		strings.Contains(contentStr, "require(") ||
		strings.Contains(contentStr, "console.log") {
		if jsx {
			return JSX
		}
		return JavaScript
	}
	return Unknown
}

// detectTypeScript checks for type-level syntax.
func detectTypeScript(contentStr string) bool {
	for _, marker := range []string{"interface ", ": string", ": number", ": boolean", "type ", " as const", "enum ", "readonly "} {
		if strings.Contains(contentStr, marker) {
			return true
		}
	}
	return false
}
