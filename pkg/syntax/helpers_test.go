package syntax_test

import (
	"unicode"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
	"github.com/yaklabco/kumark/pkg/syntax"
)

type node struct {
	element.Base
	class    string
	children []element.Element
}

func (n node) Format() string { return n.Data().Raw() }
func (n node) Class() string  { return n.class }

// lineHeadParser accepts a single line head.
type lineHeadParser struct{}

func (lineHeadParser) Parse(sym symbol.Symbol) syntax.Result {
	if sym.IsLineHead() {
		return syntax.Parsed
	}
	return syntax.Break
}

func (lineHeadParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (lineHeadParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: "line-head"}
}

// runParser accepts a run of characters matching accept and ends where
// the run does.
type runParser struct {
	class  string
	accept func(rune) bool
	n      int
	resets int
}

func newWordParser() *runParser  { return &runParser{class: "word", accept: unicode.IsLetter} }
func newDigitParser() *runParser { return &runParser{class: "digits", accept: unicode.IsDigit} }

func (p *runParser) Parse(sym symbol.Symbol) syntax.Result {
	if sym.IsLineHead() || !p.accept(sym.Char) {
		return syntax.Break
	}
	p.n++
	return syntax.Continue
}

func (p *runParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *runParser) Finish(bool) syntax.Result {
	if p.n > 0 {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *runParser) Reset() {
	p.n = 0
	p.resets++
}

func (p *runParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: p.class}
}

// charParser completes on a single given character.
type charParser struct {
	class string
	char  rune
}

func (p charParser) Parse(sym symbol.Symbol) syntax.Result {
	if !sym.IsLineHead() && sym.Char == p.char {
		return syntax.Parsed
	}
	return syntax.Break
}

func (charParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p charParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: p.class}
}

// groupParser recognizes "(" ... ")" and collects word children offered by
// a nested layer. Other characters inside the group are accepted as text.
type groupParser struct {
	open     bool
	children []element.Element
	text     int
}

func (p *groupParser) Parse(sym symbol.Symbol) syntax.Result {
	switch {
	case sym.IsLineHead():
		return syntax.Break
	case !p.open:
		if sym.Char != '(' {
			return syntax.Break
		}
		p.open = true
		return syntax.Continue
	case sym.Char == ')':
		return syntax.Parsed
	default:
		p.text++
		return syntax.Continue
	}
}

func (p *groupParser) Subparse(elem element.Element) syntax.Result {
	if !p.open || elem.Class() != "word" {
		return syntax.Break
	}
	p.children = append(p.children, elem)
	return syntax.Continue
}

func (p *groupParser) Reset() {
	*p = groupParser{}
}

func (p *groupParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: "group", children: p.children}
}

// liarParser completes on any character but reports a wrong span.
type liarParser struct{}

func (liarParser) Parse(symbol.Symbol) syntax.Result      { return syntax.Parsed }
func (liarParser) Subparse(element.Element) syntax.Result { return syntax.Break }
func (liarParser) Element(raw string, span element.Span) element.Element {
	span.LineEnd += 2
	return node{Base: element.NewBase(raw, span), class: "liar"}
}

// nilParser completes on any symbol but never produces an element.
type nilParser struct{}

func (nilParser) Parse(symbol.Symbol) syntax.Result            { return syntax.Parsed }
func (nilParser) Subparse(element.Element) syntax.Result       { return syntax.Break }
func (nilParser) Element(string, element.Span) element.Element { return nil }

// linesParser accepts lines of letters. The indentation of a continuation
// line is held until a letter confirms it.
type linesParser struct {
	line        int
	lineContent bool
	finishes    []bool
}

func (p *linesParser) Reset() { *p = linesParser{} }

func (p *linesParser) Parse(sym symbol.Symbol) syntax.Result {
	switch {
	case sym.IsLineHead():
		if !p.lineContent {
			return syntax.Break
		}
		p.line++
		p.lineContent = false
		return syntax.Continue
	case sym.Char == ' ' && p.Tentative():
		return syntax.Continue
	case unicode.IsLetter(sym.Char):
		p.lineContent = true
		return syntax.Continue
	}
	return syntax.Break
}

func (p *linesParser) Tentative() bool { return p.line > 0 && !p.lineContent }

func (p *linesParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *linesParser) Finish(eof bool) syntax.Result {
	p.finishes = append(p.finishes, eof)
	return syntax.Parsed
}

func (p *linesParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: "lines"}
}

// taggedParser reads two '#' markers and then takes word children until
// the input ends. It only nests once both markers are read.
type taggedParser struct {
	marks    int
	children []element.Element
}

func (p *taggedParser) Reset() { *p = taggedParser{} }

func (p *taggedParser) Parse(sym symbol.Symbol) syntax.Result {
	if p.marks < 2 && !sym.IsLineHead() && sym.Char == '#' {
		p.marks++
		return syntax.Continue
	}
	return syntax.Break
}

func (p *taggedParser) Nests() bool { return p.marks == 2 }

func (p *taggedParser) Subparse(elem element.Element) syntax.Result {
	p.children = append(p.children, elem)
	return syntax.Continue
}

func (p *taggedParser) Finish(bool) syntax.Result {
	if len(p.children) > 0 {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *taggedParser) Element(raw string, span element.Span) element.Element {
	return node{Base: element.NewBase(raw, span), class: "tagged", children: p.children}
}
