package symbol

import "fmt"

// Position is a point in the stream's progress through its input.
// All fields are zero-based. Column and Offset count characters, not bytes.
type Position struct {
	// Line is the number of newlines consumed so far.
	Line int

	// Column is the number of characters consumed on the current line.
	Column int

	// Offset is the total number of characters consumed.
	Offset int
}

// String renders the position as "line:col@offset".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d@%d", p.Line, p.Column, p.Offset)
}

// Before reports whether p precedes other in the input.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}
