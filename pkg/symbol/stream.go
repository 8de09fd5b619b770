package symbol

import (
	"iter"
	"unicode/utf8"
)

// state is the stream's look-ahead state.
type state uint8

const (
	stateStart state = iota
	stateHolding
	stateExhausted
)

// cursor is the whole mutable state of a Stream. Copying it is a snapshot.
type cursor struct {
	rest   int // byte index of the unread input
	line   int
	col    int
	offset int
	state  state
	held   Symbol // valid in stateHolding; Pos is unused
}

// Stream is a lazy, forward-only sequence of Symbols over a string.
//
// The input is borrowed for the stream's lifetime and never modified.
// A Stream is not safe for concurrent use.
//
// Each malformed UTF-8 byte becomes its own U+FFFD symbol of width 1, so
// symbol text only tiles the input when the input is valid UTF-8. Callers
// reading files get that guarantee from fsutil.CheckText.
type Stream struct {
	text string
	cur  cursor
}

// NewStream returns a stream positioned before the first line of text.
func NewStream(text string) *Stream {
	return &Stream{text: text}
}

// Pos returns the cursor's current position: everything consumed so far,
// including the pending look-ahead symbol.
func (s *Stream) Pos() Position {
	return Position{Line: s.cur.line, Column: s.cur.col, Offset: s.cur.offset}
}

// Done reports whether the stream is exhausted.
func (s *Stream) Done() bool {
	return s.cur.state == stateExhausted
}

// Remaining returns the input that has not been read yet, excluding the
// pending look-ahead symbol.
func (s *Stream) Remaining() string {
	return s.text[s.cur.rest:]
}

// Next returns the next symbol. The second result is false once the input
// is exhausted, and stays false.
func (s *Stream) Next() (Symbol, bool) {
	switch s.cur.state {
	case stateStart:
		pos := s.Pos()
		s.advance()
		return Symbol{Kind: LineHead, Pos: pos}, true
	case stateHolding:
		sym := s.cur.held
		sym.Pos = s.Pos()
		s.advance()
		return sym, true
	default:
		return Symbol{}, false
	}
}

// All returns an iterator over the remaining symbols.
func (s *Stream) All() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for {
			sym, ok := s.Next()
			if !ok || !yield(sym) {
				return
			}
		}
	}
}

// advance reads one character into the look-ahead slot.
func (s *Stream) advance() {
	if s.cur.rest >= len(s.text) {
		s.cur.state = stateExhausted
		s.cur.held = Symbol{}
		return
	}

	r, size := utf8.DecodeRuneInString(s.text[s.cur.rest:])
	s.cur.rest += size
	s.cur.state = stateHolding

	if r == '\n' {
		s.cur.held = Symbol{Kind: LineHead}
		s.cur.line++
		s.cur.col = 0
	} else {
		s.cur.held = Symbol{Kind: Char, Char: r}
		s.cur.col++
	}
	s.cur.offset++
}
