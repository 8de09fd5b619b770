package element

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrSpanMismatch is returned by Verify when a span does not describe its raw text.
var ErrSpanMismatch = errors.New("span does not match raw text")

// Verify checks that d's span is consistent with its raw text:
// coordinates are non-negative and ordered, the span covers as many lines
// as the raw text does, and a single-line span is as wide as its text.
func Verify(d Data) error {
	span := d.span

	if span.LineBegin < 0 || span.ColBegin < 0 || span.ColEnd < 0 || span.Offset < 0 {
		return fmt.Errorf("%w: negative coordinate in %s", ErrSpanMismatch, span)
	}
	if span.LineEnd < span.LineBegin {
		return fmt.Errorf("%w: span %s ends before it begins", ErrSpanMismatch, span)
	}

	// An element that starts at column 0 past the first line starts with a
	// newline line head, whose newline is already counted by LineBegin.
	body := d.raw
	if span.ColBegin == 0 && span.LineBegin > 0 {
		body = strings.TrimPrefix(body, "\n")
	}
	if lines := strings.Count(body, "\n") + 1; lines != span.Lines() {
		return fmt.Errorf("%w: raw text has %d lines, span %s has %d",
			ErrSpanMismatch, lines, span, span.Lines())
	}

	if span.IsSingleLine() && body != "" {
		// Column 0 is a line head; the first character sits at column 1.
		width := utf8.RuneCountInString(body)
		if got := span.ColEnd - max(span.ColBegin, 1) + 1; got != width {
			return fmt.Errorf("%w: raw text is %d characters wide, span %s is %d",
				ErrSpanMismatch, width, span, got)
		}
	}

	return nil
}
