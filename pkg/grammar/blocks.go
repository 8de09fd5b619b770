package grammar

import (
	"strings"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/langdetect"
	"github.com/yaklabco/kumark/pkg/symbol"
	"github.com/yaklabco/kumark/pkg/syntax"
)

// maxIndent is how many leading spaces a block marker may carry.
const maxIndent = 3

// blankLineParser recognizes a line holding nothing but spaces and tabs.
type blankLineParser struct {
	units int
}

func (p *blankLineParser) Reset() { *p = blankLineParser{} }

func (p *blankLineParser) Parse(sym symbol.Symbol) syntax.Result {
	switch {
	case opening(sym):
		p.units++
		return syntax.Continue
	case sym.IsLineHead():
		return syntax.Parsed
	case isBlank(sym.Char):
		p.units++
		return syntax.Continue
	}
	return syntax.Break
}

func (p *blankLineParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *blankLineParser) Nests() bool { return false }

// Finish completes a trailing blank line, or an empty document.
func (p *blankLineParser) Finish(eof bool) syntax.Result {
	if eof && p.units > 0 {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *blankLineParser) Element(raw string, span element.Span) element.Element {
	return &BlankLine{Base: element.NewBase(raw, span)}
}

type headingPhase uint8

const (
	headingIndent headingPhase = iota
	headingMarker
	headingBody
)

// headingParser recognizes an ATX heading: one to six '#' followed by a
// space or the end of the line.
type headingParser struct {
	phase    headingPhase
	indent   int
	level    int
	children []element.Element
}

func (p *headingParser) Reset() { *p = headingParser{} }

func (p *headingParser) Parse(sym symbol.Symbol) syntax.Result {
	switch p.phase {
	case headingIndent:
		switch {
		case opening(sym):
			return syntax.Continue
		case sym.IsLineHead():
			return syntax.Break
		case sym.Char == ' ' && p.indent < maxIndent:
			p.indent++
			return syntax.Continue
		case sym.Char == '#':
			p.level = 1
			p.phase = headingMarker
			return syntax.Continue
		}
		return syntax.Break

	case headingMarker:
		switch {
		case sym.IsLineHead():
			return syntax.Parsed
		case sym.Char == '#' && p.level < 6:
			p.level++
			return syntax.Continue
		case isBlank(sym.Char):
			p.phase = headingBody
			return syntax.Continue
		}
		return syntax.Break
	}

	if sym.IsLineHead() {
		return syntax.Parsed
	}
	return syntax.Continue
}

func (p *headingParser) Subparse(elem element.Element) syntax.Result {
	if p.phase != headingBody {
		return syntax.Break
	}
	p.children = append(p.children, elem)
	return syntax.Continue
}

// Nests reports whether the heading text has begun.
func (p *headingParser) Nests() bool { return p.phase == headingBody }

func (p *headingParser) Finish(eof bool) syntax.Result {
	if eof && p.phase != headingIndent {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *headingParser) Element(raw string, span element.Span) element.Element {
	return &Heading{
		Base:     element.NewBase(raw, span),
		Level:    p.level,
		Text:     headingText(raw),
		Children: p.children,
	}
}

// headingText strips the markers and an optional closing sequence.
func headingText(raw string) string {
	line := strings.TrimSpace(raw)
	line = strings.TrimLeft(line, "#")
	line = strings.TrimSpace(line)

	closing := strings.TrimRight(line, "#")
	switch {
	case closing == "":
		return ""
	case closing != line && isBlank(rune(closing[len(closing)-1])):
		return strings.TrimSpace(closing)
	}
	return line
}

// thematicBreakParser recognizes three or more '-', '*' or '_' on a line of
// their own, optionally separated by spaces.
type thematicBreakParser struct {
	indent int
	marker rune
	count  int
}

func (p *thematicBreakParser) Reset() { *p = thematicBreakParser{} }

func (p *thematicBreakParser) Parse(sym symbol.Symbol) syntax.Result {
	switch {
	case opening(sym):
		return syntax.Continue
	case sym.IsLineHead():
		if p.count >= 3 {
			return syntax.Parsed
		}
		return syntax.Break
	case isBlank(sym.Char):
		if p.marker != 0 {
			return syntax.Continue
		}
		if sym.Char == ' ' && p.indent < maxIndent {
			p.indent++
			return syntax.Continue
		}
		return syntax.Break
	case sym.Char == '-', sym.Char == '*', sym.Char == '_':
		if p.marker == 0 {
			p.marker = sym.Char
		}
		if sym.Char != p.marker {
			return syntax.Break
		}
		p.count++
		return syntax.Continue
	}
	return syntax.Break
}

func (p *thematicBreakParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *thematicBreakParser) Nests() bool { return false }

func (p *thematicBreakParser) Finish(eof bool) syntax.Result {
	if eof && p.count >= 3 {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *thematicBreakParser) Element(raw string, span element.Span) element.Element {
	return &ThematicBreak{Base: element.NewBase(raw, span), Marker: p.marker}
}

type fencePhase uint8

const (
	fenceIndent fencePhase = iota
	fenceOpen
	fenceInfo
	fenceLineStart
	fenceBody
)

// codeFenceParser recognizes a fenced code block. The block runs to a
// closing fence at least as long as the opening one, or to the end of the
// document.
type codeFenceParser struct {
	phase  fencePhase
	indent int
	marker rune
	open   int
	info   strings.Builder
	body   strings.Builder

	// The current body line, which may yet turn out to be the closing fence.
	line        strings.Builder
	closeIndent int
	closeCount  int
	closeTrail  bool
}

func (p *codeFenceParser) Reset() { *p = codeFenceParser{} }

func (p *codeFenceParser) Parse(sym symbol.Symbol) syntax.Result {
	switch p.phase {
	case fenceIndent:
		switch {
		case opening(sym):
			return syntax.Continue
		case sym.IsLineHead():
			return syntax.Break
		case sym.Char == ' ' && p.indent < maxIndent:
			p.indent++
			return syntax.Continue
		case sym.Char == '`', sym.Char == '~':
			p.marker = sym.Char
			p.open = 1
			p.phase = fenceOpen
			return syntax.Continue
		}
		return syntax.Break

	case fenceOpen:
		if sym.Char == p.marker && !sym.IsLineHead() {
			p.open++
			return syntax.Continue
		}
		if p.open < 3 {
			return syntax.Break
		}
		if sym.IsLineHead() {
			p.startLine()
			return syntax.Continue
		}
		p.phase = fenceInfo
		p.info.WriteRune(sym.Char)
		return syntax.Continue

	case fenceInfo:
		switch {
		case sym.IsLineHead():
			p.startLine()
			return syntax.Continue
		case p.marker == '`' && sym.Char == '`':
			return syntax.Break
		}
		p.info.WriteRune(sym.Char)
		return syntax.Continue

	case fenceLineStart:
		switch {
		case sym.IsLineHead():
			if p.closing() {
				return syntax.Parsed
			}
			p.flushLine(true)
			p.startLine()
			return syntax.Continue
		case sym.Char == ' ' && p.closeCount == 0 && p.closeIndent < maxIndent:
			p.closeIndent++
		case sym.Char == p.marker && !p.closeTrail:
			p.closeCount++
		case isBlank(sym.Char) && p.closeCount > 0:
			p.closeTrail = true
		default:
			p.phase = fenceBody
		}
		p.line.WriteRune(sym.Char)
		return syntax.Continue
	}

	if sym.IsLineHead() {
		p.flushLine(true)
		p.startLine()
		return syntax.Continue
	}
	p.line.WriteRune(sym.Char)
	return syntax.Continue
}

func (p *codeFenceParser) startLine() {
	p.phase = fenceLineStart
	p.line.Reset()
	p.closeIndent = 0
	p.closeCount = 0
	p.closeTrail = false
}

func (p *codeFenceParser) closing() bool {
	return p.phase == fenceLineStart && p.closeCount >= p.open
}

func (p *codeFenceParser) flushLine(newline bool) {
	p.body.WriteString(p.line.String())
	if newline {
		p.body.WriteByte('\n')
	}
	p.line.Reset()
}

func (p *codeFenceParser) Subparse(element.Element) syntax.Result { return syntax.Break }

func (p *codeFenceParser) Nests() bool { return false }

// Finish closes a block left open at the end of the document.
func (p *codeFenceParser) Finish(eof bool) syntax.Result {
	if !eof || p.open < 3 {
		return syntax.Break
	}
	if (p.phase == fenceLineStart || p.phase == fenceBody) && !p.closing() {
		p.flushLine(false)
	}
	return syntax.Parsed
}

func (p *codeFenceParser) Element(raw string, span element.Span) element.Element {
	info := strings.TrimSpace(p.info.String())
	body := p.body.String()

	return &CodeBlock{
		Base:  element.NewBase(raw, span),
		Fence: strings.Repeat(string(p.marker), p.open),
		Info:  info,
		Lang:  langdetect.Resolve(info, []byte(body)),
		Body:  body,
	}
}

// paragraphParser collects lines of text until a blank line, a heading
// marker at the start of a line, or the end of the document.
//
// The leading blanks of a continuation line are held tentatively: if the
// line turns out blank or opens a heading, they belong to that block.
type paragraphParser struct {
	line        int
	indent      int
	tabbed      bool
	lineContent bool
	content     bool
	children    []element.Element
}

func (p *paragraphParser) Reset() { *p = paragraphParser{} }

func (p *paragraphParser) Parse(sym symbol.Symbol) syntax.Result {
	switch {
	case opening(sym):
		return syntax.Continue
	case sym.IsLineHead():
		if !p.lineContent {
			return syntax.Break
		}
		p.line++
		p.indent = 0
		p.tabbed = false
		p.lineContent = false
		return syntax.Continue
	case p.Tentative() && sym.Char == '#' && !p.tabbed && p.indent <= maxIndent:
		return syntax.Break
	case p.Tentative() && isBlank(sym.Char):
		p.indent++
		p.tabbed = p.tabbed || sym.Char == '\t'
		return syntax.Continue
	}

	if !isBlank(sym.Char) {
		p.lineContent = true
		p.content = true
	}
	return syntax.Continue
}

// Tentative reports whether the parser is in the indentation of a
// continuation line.
func (p *paragraphParser) Tentative() bool {
	return p.line > 0 && !p.lineContent
}

func (p *paragraphParser) Subparse(elem element.Element) syntax.Result {
	p.children = append(p.children, elem)
	p.lineContent = true
	p.content = true
	return syntax.Continue
}

func (p *paragraphParser) Finish(bool) syntax.Result {
	if p.content {
		return syntax.Parsed
	}
	return syntax.Break
}

func (p *paragraphParser) Element(raw string, span element.Span) element.Element {
	return &Paragraph{Base: element.NewBase(raw, span), Children: p.children}
}
