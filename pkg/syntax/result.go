package syntax

import "fmt"

// Result is the outcome of offering one symbol or element to a Parser.
// It is a control-flow signal, not an error.
type Result uint8

const (
	// Break rejects the offered input in the parser's current state.
	// A parser that breaks must still be able to take other input, since a
	// rejected element is re-offered as raw symbols.
	Break Result = iota

	// Continue accepts the input; the construct needs more.
	Continue

	// Parsed accepts the input and completes the construct.
	Parsed
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Break:
		return "Break"
	case Continue:
		return "Continue"
	case Parsed:
		return "Parsed"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}
