package element

import (
	"fmt"

	"github.com/yaklabco/kumark/pkg/symbol"
)

// Span is the rectangle of source text an element covers.
// Lines and columns are zero-based and use the stream's completion
// semantics: ColEnd is the column of the last consumed character.
type Span struct {
	LineBegin int
	LineEnd   int
	ColBegin  int
	ColEnd    int

	// Offset is the absolute character offset at which the element starts.
	Offset int
}

// SpanOf builds the span covered by a consumed run of symbols, from its
// first and last symbol.
func SpanOf(first, last symbol.Symbol) Span {
	return Span{
		LineBegin: first.Pos.Line,
		LineEnd:   last.Pos.Line,
		ColBegin:  first.Pos.Column,
		ColEnd:    last.Pos.Column,
		Offset:    first.Pos.Offset - first.Width(),
	}
}

// IsSingleLine reports whether the span starts and ends on the same line.
func (s Span) IsSingleLine() bool {
	return s.LineBegin == s.LineEnd
}

// Lines returns the number of lines the span touches.
func (s Span) Lines() int {
	return s.LineEnd - s.LineBegin + 1
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos symbol.Position) bool {
	if pos.Line < s.LineBegin || pos.Line > s.LineEnd {
		return false
	}
	if pos.Line == s.LineBegin && pos.Column < s.ColBegin {
		return false
	}
	if pos.Line == s.LineEnd && pos.Column > s.ColEnd {
		return false
	}
	return true
}

// String renders the span as "l1:c1-l2:c2@offset".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d@%d", s.LineBegin, s.ColBegin, s.LineEnd, s.ColEnd, s.Offset)
}
