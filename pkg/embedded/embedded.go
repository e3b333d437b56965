// Package embedded formats JavaScript, TypeScript and JSON code fences
// inside Markdown documents. Fences are located with goldmark; everything
// outside them is left byte for byte.
package embedded

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/source"
)

// Block is a fenced code block in a supported language.
type Block struct {
	Language langdetect.Language
	// Info is the fence info string, e.g. "ts title=example.ts".
	Info string
	// Range covers the code lines, from the start of the first line to the
	// end of the last one. The fences are outside it.
	Range source.Range
	// Indent prefixes every code line in the document, as inside list
	// items.
	Indent string
	// Code is the block content with Indent removed.
	Code string

	codeStarts []int
	docStarts  []int
}

// DocumentOffset maps an offset in Code to an offset in the document.
func (b *Block) DocumentOffset(offset int) int {
	if len(b.codeStarts) == 0 {
		return b.Range.Start
	}
	line := sort.Search(len(b.codeStarts), func(i int) bool { return b.codeStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return b.docStarts[line] + offset - b.codeStarts[line]
}

// Blocks returns the supported code blocks of a Markdown document in
// document order. Blocks inside block quotes and blocks whose lines are
// indented inconsistently are not returned.
func Blocks(content []byte) []Block {
	root := newMarkdown().Parser().Parse(text.NewReader(content))

	var blocks []Block
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := newBlock(fenced, content); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func newBlock(fenced *ast.FencedCodeBlock, content []byte) (Block, bool) {
	var block Block
	if fenced.Info != nil {
		block.Info = strings.TrimSpace(string(fenced.Info.Segment.Value(content)))
	}
	block.Language = langdetect.FromFenceInfo(block.Info)
	if !block.Language.IsScript() && !block.Language.IsJSON() {
		return Block{}, false
	}

	lines := fenced.Lines()
	if lines.Len() == 0 {
		return Block{}, false
	}

	var code strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Padding > 0 {
			return Block{}, false
		}
		lineStart := bytes.LastIndexByte(content[:seg.Start], '\n') + 1
		prefix := string(content[lineStart:seg.Start])
		if strings.TrimLeft(prefix, " \t") != "" {
			return Block{}, false
		}
		value := seg.Value(content)
		switch {
		case i == 0:
			block.Indent = prefix
			block.Range.Start = lineStart
		case prefix != block.Indent && len(bytes.TrimSpace(value)) > 0:
			return Block{}, false
		}
		block.codeStarts = append(block.codeStarts, code.Len())
		block.docStarts = append(block.docStarts, seg.Start)
		code.Write(value)
		block.Range.End = seg.Stop
	}
	block.Code = code.String()
	return block, true
}

// Result is the outcome of formatting a Markdown document.
type Result struct {
	// Output is the document with its code blocks formatted.
	Output []byte
	// Blocks is the number of supported code blocks found.
	Blocks int
	// Changed is the number of blocks whose formatting changed.
	Changed int
	// Diagnostics are the syntax errors of blocks that could not be
	// formatted, positioned in the document.
	Diagnostics []diagnostics.Diagnostic
}

// Format formats every supported code block of a Markdown document with
// settings. Blocks with syntax errors are left unchanged and reported.
func Format(path string, content []byte, settings config.Settings) (*Result, error) {
	blocks := Blocks(content)
	result := &Result{Blocks: len(blocks)}
	lines := source.NewLineIndex(string(content))

	var out bytes.Buffer
	out.Grow(len(content))
	last := 0
	for i := range blocks {
		block := &blocks[i]
		doc, err := document.Parse("", block.Code, block.Language)
		if err != nil {
			return nil, fmt.Errorf("code block at %s: %w", lines.Position(block.Range.Start), err)
		}
		if doc.HasErrors() {
			result.Diagnostics = append(result.Diagnostics, block.mapDiagnostics(doc.Diagnostics)...)
			continue
		}
		printed, err := document.Format(doc, settings)
		if err != nil && !errors.Is(err, document.ErrSyntax) {
			return nil, fmt.Errorf("code block at %s: %w", lines.Position(block.Range.Start), err)
		}
		if err != nil || printed.Code == block.Code {
			continue
		}
		result.Changed++
		out.Write(content[last:block.Range.Start])
		out.WriteString(reindent(printed.Code, block.Indent))
		last = block.Range.End
	}
	out.Write(content[last:])
	result.Output = out.Bytes()
	result.Diagnostics = diagnostics.WithPath(result.Diagnostics, path, lines)
	return result, nil
}

// mapDiagnostics moves diagnostics from block offsets to document offsets.
func (b *Block) mapDiagnostics(diags []diagnostics.Diagnostic) []diagnostics.Diagnostic {
	mapped := make([]diagnostics.Diagnostic, 0, len(diags))
	for _, diag := range diags {
		diag.Primary.Range = b.mapRange(diag.Primary.Range)
		if len(diag.Secondary) > 0 {
			secondary := make([]diagnostics.Label, len(diag.Secondary))
			for i, label := range diag.Secondary {
				label.Range = b.mapRange(label.Range)
				secondary[i] = label
			}
			diag.Secondary = secondary
		}
		mapped = append(mapped, diag)
	}
	return mapped
}

func (b *Block) mapRange(r source.Range) source.Range {
	return source.NewRange(b.DocumentOffset(r.Start), b.DocumentOffset(r.End))
}

// reindent prefixes every non-empty line of code with indent.
func reindent(code, indent string) string {
	if indent == "" {
		return code
	}
	lines := strings.SplitAfter(code, "\n")
	var sb strings.Builder
	sb.Grow(len(code) + len(lines)*len(indent))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(indent)
		}
		sb.WriteString(line)
	}
	return sb.String()
}
