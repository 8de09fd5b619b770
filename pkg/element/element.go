// Package element defines the data model for recognized spans of source text.
//
// Concrete element kinds live with the grammar rules that produce them; this
// package only fixes what every element exposes.
package element

import "strings"

// Data is the raw text and span backing an element. It is immutable.
type Data struct {
	raw  string
	span Span
}

// NewData returns element data for raw text covering span.
// Nothing is validated here; see Verify.
func NewData(raw string, span Span) Data {
	return Data{raw: raw, span: span}
}

// Raw returns the source text the element was built from.
func (d Data) Raw() string {
	return d.raw
}

// Span returns the source region the element covers.
func (d Data) Span() Span {
	return d.span
}

// SourceLines returns the first and last source lines holding the element's
// text. A newline line head at the start of the element belongs to the line
// before it, and a trailing newline terminates the last line.
func (d Data) SourceLines() (first, last int) {
	first, last = d.span.LineBegin, d.span.LineEnd
	if d.span.ColBegin == 0 && first > 0 && strings.HasPrefix(d.raw, "\n") {
		first--
	}
	if strings.HasSuffix(d.raw, "\n") && last > first {
		last--
	}
	return first, last
}

// Element is a finalized, immutable unit of parsed source.
type Element interface {
	// Data returns the raw text and span.
	Data() Data

	// Format returns the element's rendered form.
	Format() string

	// Class returns the element's category name, e.g. "heading".
	Class() string
}

// Base carries Data for concrete elements to embed.
type Base struct {
	data Data
}

// NewBase wraps raw text and span for embedding.
func NewBase(raw string, span Span) Base {
	return Base{data: NewData(raw, span)}
}

// Data implements Element.
func (b Base) Data() Data {
	return b.data
}
