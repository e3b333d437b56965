package analysis

// Report contains pre-computed views of a run. Computed once by Analyze()
// and shared by the reporters.
type Report struct {
	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups diagnostics by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files            int `json:"filesChecked"`
	FilesWithIssues  int `json:"filesWithIssues"`
	FilesUnformatted int `json:"filesUnformatted"`
	FilesFormatted   int `json:"filesFormatted"`
	FilesFixed       int `json:"filesFixed"`
	FilesErrored     int `json:"filesErrored"`
	Issues           int `json:"totalIssues"`
	Errors           int `json:"errors"`
	Warnings         int `json:"warnings"`
	Infos            int `json:"infos"`
	Fixable          int `json:"fixable"`
	SyntaxErrors     int `json:"syntaxErrors"`
}

// Clean reports whether the run found nothing to act on: no diagnostics,
// no unformatted files and no files that failed to process.
func (t Totals) Clean() bool {
	return t.Issues == 0 && t.FilesUnformatted == 0 && t.FilesErrored == 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path        string   `json:"path"`
	Issues      int      `json:"issues"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
	Infos       int      `json:"infos"`
	Unformatted bool     `json:"unformatted,omitempty"`
	Rules       []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule. Syntax errors
// are collected under their diagnostic code.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
