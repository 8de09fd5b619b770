// Package syntax defines the contract between grammar rules and the symbol
// stream, and the layer that dispatches a stream across competing rules.
package syntax

import (
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// Parser is one grammar rule's recognition state machine.
type Parser interface {
	// Parse consumes exactly one symbol.
	Parse(sym symbol.Symbol) Result

	// Subparse offers a child element already recognized by a nested layer.
	Subparse(elem element.Element) Result

	// Element finalizes the construct. It is only called after Parsed, with
	// the raw text and span of exactly the input the parser accepted.
	Element(raw string, span element.Span) element.Element
}

// Resetter is implemented by parsers that can be reused across attempts.
// A Layer calls Reset before every attempt.
type Resetter interface {
	Reset()
}

// Finisher is implemented by parsers whose constructs end where the next
// one begins, rather than on a closing symbol of their own.
//
// A Layer calls Finish when the parser returns Break after accepting input
// (eof is false; the rejected symbol goes back to the stream), or when the
// input runs out mid-construct (eof is true). Returning Parsed completes the
// construct with the input accepted so far; anything else abandons the
// attempt.
type Finisher interface {
	Finish(eof bool) Result
}

// Nester is implemented by parsers that take child elements only in some
// states. While Nests reports false the Layer does not try its inner layer
// and feeds raw symbols directly. Parsers without Nester are always offered
// children.
type Nester interface {
	Nests() bool
}

// Tentative is implemented by parsers that accept input they may later
// disown, such as the indentation at the start of a continuation line.
//
// Input accepted while Tentative reports true is held back. If the parser
// stops (Break or end of input) before Tentative turns false again, the held
// input returns to the stream and the construct is finished as it stood
// before it; Finish is then called with eof false. Parsed commits the held
// input.
type Tentative interface {
	Tentative() bool
}
