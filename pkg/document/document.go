// Package document holds a parsed source file: its text, language, syntax
// tree and parse diagnostics.
package document

import (
	"errors"
	"fmt"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/jsformat"
	"github.com/yaklabco/quill/pkg/jsonformat"
	"github.com/yaklabco/quill/pkg/jsonparser"
	"github.com/yaklabco/quill/pkg/jsparser"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/parser"
	"github.com/yaklabco/quill/pkg/source"
	"github.com/yaklabco/quill/pkg/syntax"
)

var (
	// ErrUnsupportedLanguage is returned for files no grammar applies to.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrSyntax is returned by Format when the document has syntax errors.
	ErrSyntax = errors.New("document has syntax errors")
)

// Document is an immutable parsed file.
type Document struct {
	// Path is the display path. It may be empty for stdin.
	Path        string
	Language    langdetect.Language
	Content     string
	Root        *syntax.Node
	Diagnostics []diagnostics.Diagnostic

	lines *source.LineIndex
	json  jsonparser.Options
}

// Parse parses content as lang. When lang is Unknown it is detected from
// path and content.
func Parse(path, content string, lang langdetect.Language) (*Document, error) {
	if lang == langdetect.Unknown {
		lang = langdetect.Detect(path, []byte(content))
	}

	var (
		result   *parser.Result
		jsonOpts jsonparser.Options
	)
	switch {
	case lang.IsScript():
		result = jsparser.Parse(content, ScriptOptions(path, lang))
	case lang.IsJSON():
		jsonOpts = jsonparser.OptionsForPath(path)
		if lang == langdetect.JSONC {
			jsonOpts.AllowComments = true
			jsonOpts.AllowTrailingCommas = true
		}
		result = jsonparser.Parse(content, jsonOpts)
	default:
		return nil, fmt.Errorf("%s: %w", displayPath(path), ErrUnsupportedLanguage)
	}

	lines := source.NewLineIndex(content)
	return &Document{
		Path:        path,
		Language:    lang,
		Content:     content,
		Root:        result.Root,
		Diagnostics: diagnostics.WithPath(result.Diagnostics, path, lines),
		lines:       lines,
		json:        jsonOpts,
	}, nil
}

// ScriptOptions returns the grammar options for a script file. The file
// extension decides when it names a script language; otherwise lang does.
func ScriptOptions(path string, lang langdetect.Language) jsparser.Options {
	if langdetect.FromPath(path).IsScript() {
		return jsparser.OptionsForPath(path)
	}
	switch lang {
	case langdetect.TypeScript:
		return jsparser.Options{TypeScript: true}
	case langdetect.TSX:
		return jsparser.Options{TypeScript: true, JSX: true}
	default:
		return jsparser.Options{JSX: true}
	}
}

// Lines returns the line index of the content.
func (d *Document) Lines() *source.LineIndex {
	return d.lines
}

// HasErrors reports whether parsing produced errors.
func (d *Document) HasErrors() bool {
	return diagnostics.HasErrors(d.Diagnostics)
}

// Reparse parses content with the path and language of d.
func (d *Document) Reparse(content string) (*Document, error) {
	return Parse(d.Path, content, d.Language)
}

// Format prints the document with settings. Documents with syntax errors
// are not formatted.
func Format(doc *Document, settings config.Settings) (format.Printed, error) {
	if doc.HasErrors() {
		return format.Printed{}, fmt.Errorf("%s: %w", displayPath(doc.Path), ErrSyntax)
	}
	switch {
	case doc.Language.IsScript():
		return jsformat.Format(doc.Root, settings.JavaScript)
	case doc.Language.IsJSON():
		return jsonformat.Format(doc.Root, settings.JSON.ForDialect(doc.json))
	}
	return format.Printed{}, fmt.Errorf("%s: %w", displayPath(doc.Path), ErrUnsupportedLanguage)
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
