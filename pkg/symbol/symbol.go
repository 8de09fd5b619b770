// Package symbol provides the position-tracked character stream that every
// grammar rule consumes.
//
// A Stream turns text into Symbols: one per character, plus a synthetic
// LineHead at the start of every line. The stream supports speculative
// consumption through TryRun, which rolls the cursor back when the attempt
// fails.
package symbol

import "fmt"

// Kind classifies a Symbol.
type Kind uint8

const (
	// Char is a literal character consumed from the input.
	Char Kind = iota

	// LineHead marks the start of a line. The stream-opening LineHead consumes
	// nothing; every other LineHead stands for the newline that triggered it.
	LineHead
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Char:
		return "Char"
	case LineHead:
		return "LineHead"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Symbol is one unit emitted by a Stream.
type Symbol struct {
	// Kind tells literal characters apart from line heads.
	Kind Kind

	// Char is the consumed character. Zero for LineHead.
	Char rune

	// Pos is the cursor state after the symbol's character was consumed.
	// The stream-opening LineHead reports the zero position.
	Pos Position
}

// IsLineHead reports whether s marks the start of a line.
func (s Symbol) IsLineHead() bool {
	return s.Kind == LineHead
}

// AsChar returns the symbol as a character. Line heads read as a space.
func (s Symbol) AsChar() rune {
	if s.Kind == LineHead {
		return ' '
	}
	return s.Char
}

// Text returns the source text this symbol consumed.
func (s Symbol) Text() string {
	switch {
	case s.Kind == Char:
		return string(s.Char)
	case s.Pos.Line > 0:
		return "\n"
	default:
		return ""
	}
}

// Width returns the number of input characters the symbol consumed (0 or 1).
func (s Symbol) Width() int {
	if s.Kind == LineHead && s.Pos.Line == 0 {
		return 0
	}
	return 1
}

// String renders the symbol as 'c' or <Ln>.
func (s Symbol) String() string {
	if s.Kind == LineHead {
		return "<Ln>"
	}
	return fmt.Sprintf("'%c'", s.Char)
}
