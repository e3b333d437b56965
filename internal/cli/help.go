package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands. The color mode is
// read when help is printed, so --color given on the same command line
// applies.
type HelpFormatter struct {
	colorMode func() string
}

// NewHelpFormatter creates a help formatter. colorMode is consulted each
// time help is rendered.
func NewHelpFormatter(colorMode func() string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if not .HasParent }}

{{ heading "Exit Codes:" }}
{{ exitCodes }}

{{ heading "Environment:" }}
{{ environment }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ . | trimTrailingWhitespaces }}

{{ end }}` + usageTemplate

// exitCodeHelp documents the process exit codes in root help.
var exitCodeHelp = []struct {
	code int
	text string
}{
	{ExitSuccess, "no issues"},
	{ExitIssues, "lint errors or unformatted files"},
	{ExitWarnings, "warnings only, with --strict"},
	{ExitUsage, "invalid command-line usage"},
	{ExitDataError, "invalid configuration or input"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "file could not be read or written"},
}

func (h *HelpFormatter) funcs(styles *HelpStyles) template.FuncMap {
	return template.FuncMap{
		"heading":    styles.Heading.Render,
		"command":    styles.Command.Render,
		"subcommand": styles.Subcommand.Render,
		"dim":        styles.Dim.Render,
		"flags": func(set *pflag.FlagSet) string {
			return renderFlags(set, styles)
		},
		"exitCodes": func() string {
			lines := make([]string, 0, len(exitCodeHelp))
			for _, entry := range exitCodeHelp {
				lines = append(lines, fmt.Sprintf("  %s  %s", styles.Flag.Render(fmt.Sprintf("%-3d", entry.code)), entry.text))
			}
			return strings.Join(lines, "\n")
		},
		"environment": func() string {
			vars := configloader.EnvVars()
			lines := make([]string, 0, len(vars)+1)
			width := len(logging.EnvLevel)
			for _, env := range vars {
				width = max(width, len(env.Name))
			}
			for _, env := range vars {
				lines = append(lines, "  "+styles.Flag.Render(rpad(env.Name, width))+"  "+env.Description)
			}
			lines = append(lines, "  "+styles.Flag.Render(rpad(logging.EnvLevel, width))+"  log level: debug, info, warn, error")
			return strings.Join(lines, "\n")
		},
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) render(out io.Writer, name, text string, cmd *cobra.Command) error {
	mode := pretty.ColorAuto
	if h.colorMode != nil {
		mode = h.colorMode()
	}
	styles := NewHelpStyles(pretty.IsColorEnabled(mode, out))

	tmpl, err := template.New(name).Funcs(h.funcs(styles)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	return tmpl.Execute(out, cmd)
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// inherits both into subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command.OutOrStderr(), "usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command.OutOrStdout(), "help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// renderFlags lists the visible flags of set with aligned descriptions.
func renderFlags(set *pflag.FlagSet, styles *HelpStyles) string {
	type row struct{ names, kind, usage string }

	var rows []row
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		kind, usage := pflag.UnquoteUsage(flag)
		if def := flagDefault(flag); def != "" {
			usage += " (default " + def + ")"
		}
		entry := row{names: names, kind: kind, usage: usage}
		rows = append(rows, entry)
		width = max(width, len(entry.names)+len(entry.kind)+1)
	})

	lines := make([]string, 0, len(rows))
	for _, entry := range rows {
		plain := len(entry.names) + len(entry.kind) + 1
		line := "  " + styles.Flag.Render(entry.names) + " " + styles.Dim.Render(entry.kind) +
			strings.Repeat(" ", width-plain+2) + entry.usage
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n")
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]", "0s":
		return ""
	}
	if flag.Value.Type() == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
