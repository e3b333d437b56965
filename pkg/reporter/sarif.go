package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/diagnostics"
	"github.com/yaklabco/quill/pkg/lint"
	"github.com/yaklabco/quill/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	sarifToolName       = "quill"
	sarifInformationURI = "https://github.com/yaklabco/quill"
	sarifColumnKind     = "unicodeCodePoints"

	// formatRuleID is reported for files whose content is not formatted.
	formatRuleID = "format"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool       SARIFTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID              string                 `json:"ruleId"`
	RuleIndex           *int                   `json:"ruleIndex,omitempty"`
	Level               string                 `json:"level"`
	Message             SARIFMessage           `json:"message"`
	Locations           []SARIFLocation        `json:"locations"`
	RelatedLocations    []SARIFRelatedLocation `json:"relatedLocations,omitempty"`
	Fixes               []SARIFFix             `json:"fixes,omitempty"`
	PartialFingerprints map[string]string      `json:"partialFingerprints,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFRelatedLocation is a secondary label of a result.
type SARIFRelatedLocation struct {
	ID               int                   `json:"id"`
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	Message          *SARIFMessage         `json:"message,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Line regions count
// code points; byte regions are used by fixes.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter. Unformatted files are reported as results
// but not counted as issues.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	issues := lo.CountBy(output.Runs[0].Results, func(res SARIFResult) bool {
		return res.RuleID != formatRuleID
	})
	return issues, nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	rules, ruleIndex := r.buildRules()

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           sarifToolName,
				Version:        lo.CoalesceOrEmpty(r.opts.ToolVersion, "dev"),
				InformationURI: sarifInformationURI,
				Rules:          rules,
			},
		},
		ColumnKind: sarifColumnKind,
		Results:    make([]SARIFResult, 0),
	}

	if result != nil {
		for i := range result.Files {
			run.Results = append(run.Results, r.buildFileResults(&result.Files[i], ruleIndex)...)
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// buildRules describes every registered rule, keyed by the identifier
// results use.
func (r *SARIFReporter) buildRules() ([]SARIFRule, map[string]int) {
	registered := r.opts.registry().Rules()
	rules := make([]SARIFRule, 0, len(registered))
	index := make(map[string]int, len(registered))

	for _, rule := range registered {
		id := config.FormatRuleID(r.opts.RuleFormat, rule.Group(), rule.Name())
		index[id] = len(rules)
		rules = append(rules, SARIFRule{
			ID:               id,
			Name:             rule.Name(),
			ShortDescription: SARIFMultiformatText{Text: rule.Description()},
			DefaultConfig: &SARIFRuleConfig{
				Enabled: rule.DefaultEnabled(),
				Level:   severityToSARIFLevel(rule.DefaultSeverity()),
			},
			Properties: map[string]any{
				"group":   rule.Group(),
				"fixable": rule.CanFix(),
			},
		})
	}
	return rules, index
}

func (r *SARIFReporter) buildFileResults(file *runner.FileOutcome, ruleIndex map[string]int) []SARIFResult {
	if file.Error != nil {
		return nil
	}

	uri := filepath.ToSlash(displayPath(file))
	artifact := SARIFArtifactLocation{URI: uri}
	loc := newLocator(file.Source)

	results := make([]SARIFResult, 0, len(file.Diagnostics)+1)
	for i := range file.Diagnostics {
		diag := &file.Diagnostics[i]
		id := analysis.RuleID(diag, r.opts.RuleFormat)

		res := SARIFResult{
			RuleID:  id,
			Level:   severityToSARIFLevel(diag.Severity),
			Message: SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: artifact,
					Region:           r.region(loc, diag.Primary),
				},
			}},
		}
		if idx, ok := ruleIndex[id]; ok {
			res.RuleIndex = lo.ToPtr(idx)
		}

		for j, label := range diag.Secondary {
			related := SARIFRelatedLocation{
				ID: j + 1,
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: artifact,
					Region:           r.region(loc, label),
				},
			}
			if label.Message != "" {
				related.Message = &SARIFMessage{Text: label.Message}
			}
			res.RelatedLocations = append(res.RelatedLocations, related)
		}

		if diag.HasFix() {
			res.Fixes = []SARIFFix{r.buildFix(artifact, diag.Fix)}
		}
		results = append(results, res)
	}

	if file.Unformatted && !file.Written {
		results = append(results, SARIFResult{
			RuleID:  formatRuleID,
			Level:   "note",
			Message: SARIFMessage{Text: "File is not formatted"},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact},
			}},
		})
	}
	return results
}

// region converts a label into a code point region.
func (r *SARIFReporter) region(loc *locator, label diagnostics.Label) *SARIFRegion {
	start, end := loc.span(label.Range)
	return &SARIFRegion{
		StartLine:   start.Line,
		StartColumn: loc.codePoints(start),
		EndLine:     end.Line,
		EndColumn:   loc.codePoints(end),
	}
}

func (r *SARIFReporter) buildFix(artifact SARIFArtifactLocation, fix *lint.Fix) SARIFFix {
	replacement := SARIFReplacement{
		DeletedRegion: SARIFRegion{
			ByteOffset: lo.ToPtr(fix.Edit.Start),
			ByteLength: lo.ToPtr(fix.Edit.End - fix.Edit.Start),
		},
	}
	if fix.Edit.NewText != "" {
		replacement.InsertedContent = &SARIFInsertedContent{Text: fix.Edit.NewText}
	}
	return SARIFFix{
		Description: SARIFMessage{Text: fix.Message},
		ArtifactChanges: []SARIFArtifactChange{{
			ArtifactLocation: artifact,
			Replacements:     []SARIFReplacement{replacement},
		}},
	}
}

// severityToSARIFLevel converts a diagnostic severity to a SARIF level.
func severityToSARIFLevel(severity diagnostics.Severity) string {
	switch severity {
	case diagnostics.SeverityError:
		return "error"
	case diagnostics.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
