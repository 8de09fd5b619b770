package grammar

import (
	"strings"
	"unicode"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
	"github.com/yaklabco/kumark/pkg/syntax"
)

type spanPhase uint8

const (
	spanOpen spanPhase = iota
	spanText
	spanClose
)

// codeSpanParser recognizes a backtick string, the text after it, and a
// closing backtick string of the same length, all on one line.
type codeSpanParser struct {
	phase spanPhase
	open  int
	close int
	code  strings.Builder
}

func (p *codeSpanParser) Reset() { *p = codeSpanParser{} }

func (p *codeSpanParser) Parse(sym symbol.Symbol) syntax.Result {
	if sym.IsLineHead() {
		return syntax.Break
	}

	switch p.phase {
	case spanOpen:
		if sym.Char == '`' {
			p.open++
			return syntax.Continue
		}
		if p.open == 0 {
			return syntax.Break
		}
		p.phase = spanText

	case spanClose:
		if sym.Char == '`' {
			p.close++
			return syntax.Continue
		}
		if p.close == p.open {
			return syntax.Break
		}
		// A backtick string of another length is part of the code.
		p.code.WriteString(strings.Repeat("`", p.close))
		p.close = 0
		p.phase = spanText
	}

	if sym.Char == '`' {
		p.close = 1
		p.phase = spanClose
		return syntax.Continue
	}
	p.code.WriteRune(sym.Char)
	return syntax.Continue
}

func (p *codeSpanParser) Subparse(element.Element) syntax.Result { return syntax.Break }

// Finish completes the span once the closing string is known to have ended.
func (p *codeSpanParser) Finish(bool) syntax.Result {
	if p.phase == spanClose && p.close == p.open {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *codeSpanParser) Element(raw string, span element.Span) element.Element {
	code := p.code.String()
	if len(code) > 1 && code[0] == ' ' && code[len(code)-1] == ' ' && strings.TrimSpace(code) != "" {
		code = code[1 : len(code)-1]
	}
	return &CodeSpan{Base: element.NewBase(raw, span), Code: code}
}

// delimited tracks the text between emphasis delimiters.
//
// A delimiter run after white space cannot close. If text that can open
// follows it, a competing construct starts there and the current one gives
// up, so an unclosed opener scans no further than the next opener of its
// kind.
type delimited struct {
	delim  rune
	text   strings.Builder
	last   rune
	spaced bool // the run of delimiters ending at last follows white space
}

func (d *delimited) write(c rune) {
	d.text.WriteRune(c)
	switch {
	case c != d.delim:
		d.spaced = false
	case d.last != d.delim:
		d.spaced = unicode.IsSpace(d.last)
	}
	d.last = c
}

// opens reports whether c may follow an opening delimiter run.
func (d *delimited) opens(c rune) bool {
	return c != d.delim && !unicode.IsSpace(c)
}

// closes reports whether c closes the run, which needs text before it
// that does not end in white space.
func (d *delimited) closes(c rune) bool {
	return c == d.delim && d.last != 0 && !unicode.IsSpace(d.last) && !d.spaced
}

// yields reports whether a competing opener starts at the delimiter run
// before c.
func (d *delimited) yields(c rune) bool {
	return d.spaced && d.opens(c)
}

func isDelimiter(c rune) bool {
	return c == '*' || c == '_'
}

// strongParser recognizes text wrapped in "**" or "__".
type strongParser struct {
	delimited

	phase spanPhase
	open  int
}

func (p *strongParser) Reset() { *p = strongParser{} }

func (p *strongParser) Parse(sym symbol.Symbol) syntax.Result {
	if sym.IsLineHead() {
		return syntax.Break
	}
	c := sym.Char

	switch p.phase {
	case spanOpen:
		switch {
		case p.open == 0 && isDelimiter(c):
			p.delim = c
			p.open++
			return syntax.Continue
		case p.open == 1 && c == p.delim:
			p.open++
			return syntax.Continue
		case p.open == 2 && p.opens(c):
			p.write(c)
			p.phase = spanText
			return syntax.Continue
		}
		return syntax.Break

	case spanClose:
		if c == p.delim {
			return syntax.Parsed
		}
		p.write(p.delim)
		p.phase = spanText
	}

	switch {
	case p.closes(c):
		p.phase = spanClose
		return syntax.Continue
	case p.yields(c):
		return syntax.Break
	}
	p.write(c)
	return syntax.Continue
}

func (p *strongParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *strongParser) Element(raw string, span element.Span) element.Element {
	return &Strong{Base: element.NewBase(raw, span), Delim: p.delim, Text: p.text.String()}
}

// emphasisParser recognizes text wrapped in '*' or '_'.
type emphasisParser struct {
	delimited

	opened bool
}

func (p *emphasisParser) Reset() { *p = emphasisParser{} }

func (p *emphasisParser) Parse(sym symbol.Symbol) syntax.Result {
	if sym.IsLineHead() {
		return syntax.Break
	}
	c := sym.Char

	if !p.opened {
		switch {
		case p.delim == 0 && isDelimiter(c):
			p.delim = c
			return syntax.Continue
		case p.delim != 0 && p.opens(c):
			p.opened = true
			p.write(c)
			return syntax.Continue
		}
		return syntax.Break
	}

	if p.closes(c) {
		return syntax.Parsed
	}
	if p.yields(c) {
		return syntax.Break
	}
	p.write(c)
	return syntax.Continue
}

func (p *emphasisParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *emphasisParser) Element(raw string, span element.Span) element.Element {
	return &Emphasis{Base: element.NewBase(raw, span), Delim: p.delim, Text: p.text.String()}
}
