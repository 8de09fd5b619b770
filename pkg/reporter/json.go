package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/kumark/pkg/conformance"
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/runner"
)

// jsonVersion is the version of the JSON document layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string                 `json:"path"`
	Elements   []JSONElement          `json:"elements,omitempty"`
	Mismatches []conformance.Mismatch `json:"mismatches"`
	Error      string                 `json:"error,omitempty"`
}

// JSONElement is one element with its inline children.
type JSONElement struct {
	Class    string        `json:"class"`
	Span     JSONSpan      `json:"span"`
	Text     string        `json:"text"`
	Raw      string        `json:"raw"`
	Children []JSONElement `json:"children,omitempty"`
}

// JSONSpan is an element's zero-based extent.
type JSONSpan struct {
	LineBegin int `json:"lineBegin"`
	ColBegin  int `json:"colBegin"`
	LineEnd   int `json:"lineEnd"`
	ColEnd    int `json:"colEnd"`
	Offset    int `json:"offset"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered     int            `json:"filesDiscovered"`
	FilesParsed         int            `json:"filesParsed"`
	FilesErrored        int            `json:"filesErrored"`
	FilesWithMismatches int            `json:"filesWithMismatches"`
	TotalElements       int            `json:"totalElements"`
	TotalMismatches     int            `json:"totalMismatches"`
	ByClass             map[string]int `json:"byClass"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)
	if err := encodeJSON(r.bw, output, r.opts.Compact); err != nil {
		return 0, err
	}

	return output.Summary.TotalMismatches, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByClass: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:     stats.FilesDiscovered,
		FilesParsed:         stats.FilesParsed,
		FilesErrored:        stats.FilesErrored,
		FilesWithMismatches: stats.FilesWithMismatches,
		TotalElements:       stats.ElementsTotal,
		TotalMismatches:     stats.MismatchesTotal,
		ByClass:             make(map[string]int, len(stats.ElementsByClass)),
	}
	for class, n := range stats.ElementsByClass {
		output.Summary.ByClass[class] = n
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       r.opts.displayPath(file.Path),
			Mismatches: make([]conformance.Mismatch, 0, len(file.Mismatches)),
		}
		fileResult.Mismatches = append(fileResult.Mismatches, file.Mismatches...)

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if r.opts.Elements {
			fileResult.Elements = jsonElements(file.Elements)
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonElements(elems []element.Element) []JSONElement {
	if len(elems) == 0 {
		return nil
	}

	out := make([]JSONElement, 0, len(elems))
	for _, elem := range elems {
		data := elem.Data()
		span := data.Span()
		jsonElem := JSONElement{
			Class: elem.Class(),
			Span: JSONSpan{
				LineBegin: span.LineBegin,
				ColBegin:  span.ColBegin,
				LineEnd:   span.LineEnd,
				ColEnd:    span.ColEnd,
				Offset:    span.Offset,
			},
			Text: elem.Format(),
			Raw:  data.Raw(),
		}
		if parent, ok := elem.(grammar.Parent); ok {
			jsonElem.Children = jsonElements(parent.Inline())
		}
		out = append(out, jsonElem)
	}
	return out
}

func encodeJSON(w *bufio.Writer, v any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
