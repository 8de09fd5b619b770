package runner

import (
	"github.com/yaklabco/kumark/pkg/conformance"
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Elements are the top-level block elements in document order.
	Elements []element.Element

	// Mismatches are the disagreements with the goldmark outline. Always
	// empty unless conformance checking is enabled.
	Mismatches []conformance.Mismatch

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed without error.
	FilesParsed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// ElementsTotal counts top-level elements across all files.
	ElementsTotal int

	// ElementsByClass maps element classes, inline children included, to counts.
	ElementsByClass map[string]int

	// MismatchesTotal is the number of conformance mismatches.
	MismatchesTotal int

	// FilesWithMismatches is the number of files with at least one mismatch.
	FilesWithMismatches int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to parse.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasMismatches reports whether any conformance mismatch was found.
func (r *Result) HasMismatches() bool {
	if r == nil {
		return false
	}
	return r.Stats.MismatchesTotal > 0
}

func newStats() Stats {
	return Stats{
		ElementsByClass: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.ElementsTotal += len(outcome.Elements)
	countClasses(r.Stats.ElementsByClass, outcome.Elements)

	if len(outcome.Mismatches) > 0 {
		r.Stats.MismatchesTotal += len(outcome.Mismatches)
		r.Stats.FilesWithMismatches++
	}
}

// countClasses counts elems and their inline children by class.
func countClasses(counts map[string]int, elems []element.Element) {
	for _, elem := range elems {
		counts[elem.Class()]++
		if parent, ok := elem.(grammar.Parent); ok {
			countClasses(counts, parent.Inline())
		}
	}
}
