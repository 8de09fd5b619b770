package syntax

import (
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// run accumulates the raw text and span of the input a parser accepted.
type run struct {
	raw   []byte
	span  element.Span
	units int
}

// runMark is a point of a run that it can be cut back to.
type runMark struct {
	size  int
	span  element.Span
	units int
}

func (r *run) mark() runMark {
	return runMark{size: len(r.raw), span: r.span, units: r.units}
}

func (r *run) restore(m runMark) {
	r.raw = r.raw[:m.size]
	r.span = m.span
	r.units = m.units
}

func (r *run) addSymbol(sym symbol.Symbol) {
	if r.units == 0 {
		r.span = element.SpanOf(sym, sym)
	} else {
		r.span.LineEnd = sym.Pos.Line
		r.span.ColEnd = sym.Pos.Column
	}
	r.raw = append(r.raw, sym.Text()...)
	r.units++
}

func (r *run) addElement(elem element.Element) {
	data := elem.Data()
	span := data.Span()
	if r.units == 0 {
		r.span = span
	} else {
		r.span.LineEnd = span.LineEnd
		r.span.ColEnd = span.ColEnd
	}
	r.raw = append(r.raw, data.Raw()...)
	r.units++
}
