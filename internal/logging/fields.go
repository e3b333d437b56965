package logging

// Keys shared by structured log records.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldCount      = "count"
	FieldComponent  = "component"

	// Run settings.
	FieldConfig   = "config"
	FieldLanguage = "language"
	FieldFix      = "fix"
	FieldWrite    = "write"
	FieldJobs     = "jobs"

	// Run statistics.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesUnformatted = "files_unformatted"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"

	// Language server.
	FieldURI             = "uri"
	FieldDocumentVersion = "document_version"
)
