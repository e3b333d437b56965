package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/document"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/syntax"
)

type parseFlags struct {
	format   string
	language string
}

// parseOutput is the YAML document written by `quill parse --format yaml`.
type parseOutput struct {
	Path        string                 `yaml:"path"`
	Language    string                 `yaml:"language"`
	Tree        syntax.ExportedElement `yaml:"tree"`
	Diagnostics []parseDiagnostic      `yaml:"diagnostics,omitempty"`
}

type parseDiagnostic struct {
	Severity string `yaml:"severity"`
	Code     string `yaml:"code,omitempty"`
	Message  string `yaml:"message"`
	Start    int    `yaml:"start"`
	End      int    `yaml:"end"`
}

func newParseCommand(state *app) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a file",
		Long: `Parse a file and print its syntax tree followed by any syntax errors.

The tree is lossless: every byte of the input, including whitespace and
comments, belongs to exactly one token. Missing nodes mark where the parser
recovered from an error.

Examples:
  quill parse index.ts                  # Indented tree dump
  quill parse --format yaml data.json   # Tree as YAML
  quill parse --language tsx widget     # Override language detection`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, state, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, yaml")
	cmd.Flags().StringVar(&flags.language, "language", "",
		"language to parse as (js, jsx, ts, tsx, json, jsonc); detected from the path when empty")

	return cmd
}

func runParse(cmd *cobra.Command, state *app, path string, flags *parseFlags) error {
	if flags.format != "text" && flags.format != "yaml" {
		return usageErrorf("invalid --format %q: must be text or yaml", flags.format)
	}

	lang := langdetect.Unknown
	if flags.language != "" {
		lang = langdetect.FromFenceInfo(flags.language)
		if lang == langdetect.Unknown || lang.IsMarkdown() {
			return usageErrorf("unsupported --language %q", flags.language)
		}
	}

	content, _, err := fsutil.ReadFile(cmd.Context(), path)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	doc, err := document.Parse(path, string(content), lang)
	if err != nil {
		return withExitCode(ExitDataError, fmt.Errorf("parse %s: %w", path, err))
	}

	out := cmd.OutOrStdout()
	if flags.format == "yaml" {
		err = writeParseYAML(out, doc)
	} else {
		err = writeParseText(out, doc, state.color)
	}
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	if doc.HasErrors() {
		return issuesFound(ExitIssues)
	}
	return nil
}

func writeParseText(out io.Writer, doc *document.Document, color string) error {
	if _, err := io.WriteString(out, syntax.Dump(doc.Root)); err != nil {
		return err
	}
	if len(doc.Diagnostics) == 0 {
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
	opts := pretty.RenderOptions{Source: doc.Content, ShowContext: true}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	for _, diag := range doc.Diagnostics {
		if _, err := io.WriteString(out, styles.RenderDiagnostic(diag, opts)); err != nil {
			return err
		}
	}
	return nil
}

func writeParseYAML(out io.Writer, doc *document.Document) error {
	output := parseOutput{
		Path:     doc.Path,
		Language: string(doc.Language),
		Tree:     syntax.Export(doc.Root),
	}
	for _, diag := range doc.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, exportDiagnostic(diag))
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode syntax tree: %w", err)
	}
	return enc.Close()
}

func exportDiagnostic(diag diagnostics.Diagnostic) parseDiagnostic {
	return parseDiagnostic{
		Severity: string(diag.Severity),
		Code:     diag.Code,
		Message:  diag.Message,
		Start:    diag.Primary.Range.Start,
		End:      diag.Primary.Range.End,
	}
}
