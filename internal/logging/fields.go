package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	FieldFilesChecked = "files_checked"
	FieldErrors       = "errors"
	FieldWarnings     = "warnings"
	FieldFixed        = "fixed"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
