package lsp

import (
	"slices"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/source"
)

const diagnosticSource = "quill"

func toSeverity(sev diagnostics.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diagnostics.SeverityError:
		return protocol.DiagnosticSeverityError
	case diagnostics.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

// toProtocolDiagnostic converts a finding. Secondary labels become related
// information in the same document and notes are appended to the message.
func toProtocolDiagnostic(m *mapper, uri protocol.DocumentUri, diag *lint.Diagnostic) protocol.Diagnostic {
	severity := toSeverity(diag.Severity)
	src := diagnosticSource

	code := diag.Code
	if diag.Rule != "" {
		code = diag.Rule
	}

	message := diag.Message
	if len(diag.Notes) > 0 {
		message += "\n" + strings.Join(diag.Notes, "\n")
	}

	out := protocol.Diagnostic{
		Range:    m.rangeOf(diag.Primary.Range),
		Severity: &severity,
		Source:   &src,
		Message:  message,
	}
	if code != "" {
		out.Code = &protocol.IntegerOrString{Value: code}
	}
	for _, label := range diag.Secondary {
		out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: m.rangeOf(label.Range)},
			Message:  label.Message,
		})
	}
	return out
}

// quickFixes offers the fix of every diagnostic whose range touches
// requested.
func quickFixes(
	m *mapper,
	uri protocol.DocumentUri,
	diags []lint.Diagnostic,
	requested source.Range,
	only []protocol.CodeActionKind,
) []protocol.CodeAction {
	actions := []protocol.CodeAction{}
	if !wants(only, protocol.CodeActionKindQuickFix) {
		return actions
	}

	kind := protocol.CodeActionKindQuickFix
	for i := range diags {
		diag := &diags[i]
		if !diag.HasFix() || !touches(diag.Primary.Range, requested) {
			continue
		}
		title := diag.Fix.Message
		if title == "" {
			title = "Fix " + diag.Rule
		}
		edit := diag.Fix.Edit
		actions = append(actions, protocol.CodeAction{
			Title:       title,
			Kind:        &kind,
			Diagnostics: []protocol.Diagnostic{toProtocolDiagnostic(m, uri, diag)},
			IsPreferred: boolPtr(true),
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					uri: {{
						Range:   m.rangeOf(source.NewRange(edit.Start, edit.End)),
						NewText: edit.NewText,
					}},
				},
			},
		})
	}
	return actions
}

// touches reports whether a overlaps b, treating empty ranges as points.
func touches(a, b source.Range) bool {
	return a.Start <= b.End && b.Start <= a.End
}

// wants reports whether a client filter admits kind. An empty filter
// admits everything; "source" admits "source.fixAll".
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	return slices.ContainsFunc(only, func(filter protocol.CodeActionKind) bool {
		return filter == kind || strings.HasPrefix(string(kind), string(filter)+".")
	})
}
