package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/kumark/internal/ui/pretty"
	"github.com/yaklabco/kumark/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to parse."))
		}
		return 0, nil
	}

	var mismatches int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return mismatches, fmt.Errorf("report: %w", err)
		}
		mismatches += r.reportFile(file)
	}

	switch {
	case r.opts.ShowStats:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return mismatches, nil
}

// reportFile writes one file's error, elements and mismatches, returning
// the number of mismatches written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if r.opts.Elements && len(file.Elements) > 0 {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Elements), "element"))
		for _, elem := range file.Elements {
			fmt.Fprint(r.bw, r.styles.FormatElement(elem))
		}
		fmt.Fprintln(r.bw)
	}

	if len(file.Mismatches) == 0 {
		return 0
	}

	if !r.opts.Elements {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Mismatches), "mismatch"))
	}
	for _, m := range file.Mismatches {
		fmt.Fprint(r.bw, r.styles.FormatMismatch(path, m))
	}
	fmt.Fprintln(r.bw)

	return len(file.Mismatches)
}
