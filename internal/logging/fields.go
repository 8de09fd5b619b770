// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldSize       = "size"

	// Configuration fields.
	FieldFlavor      = "flavor"
	FieldStrict      = "strict_spans"
	FieldConformance = "conformance"
	FieldJobs        = "jobs"

	// Dispatch fields.
	FieldLayer    = "layer"
	FieldParser   = "parser"
	FieldClass    = "class"
	FieldSpan     = "span"
	FieldPosition = "pos"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldElements        = "elements"
	FieldMismatches      = "mismatches"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
