package grammar

import (
	"strings"

	"github.com/yaklabco/kumark/pkg/element"
)

// Parent is a block element with inline children.
type Parent interface {
	element.Element

	Inline() []element.Element
}

// BlankLine is a line with no visible content.
type BlankLine struct {
	element.Base
}

func (*BlankLine) Class() string  { return ClassBlankLine }
func (*BlankLine) Format() string { return "" }

// Heading is an ATX heading.
type Heading struct {
	element.Base

	Level    int
	Text     string
	Children []element.Element
}

func (*Heading) Class() string { return ClassHeading }

func (h *Heading) Inline() []element.Element { return h.Children }

func (h *Heading) Format() string {
	if h.Text == "" {
		return strings.Repeat("#", h.Level)
	}
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	element.Base

	Marker rune
}

func (*ThematicBreak) Class() string { return ClassThematicBreak }

func (t *ThematicBreak) Format() string {
	return strings.Repeat(string(t.Marker), 3)
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	element.Base

	Fence string
	Info  string

	// Lang is the first word of Info, or the language detected from Body.
	Lang string
	Body string
}

func (*CodeBlock) Class() string { return ClassCodeBlock }

func (c *CodeBlock) Format() string {
	var b strings.Builder
	b.WriteString(c.Fence)
	b.WriteString(c.Info)
	b.WriteByte('\n')
	b.WriteString(c.Body)
	if c.Body != "" && !strings.HasSuffix(c.Body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(c.Fence)
	return b.String()
}

// Paragraph is a run of text lines.
type Paragraph struct {
	element.Base

	// Children are the inline elements found in the text, in order.
	Children []element.Element
}

func (*Paragraph) Class() string { return ClassParagraph }

func (p *Paragraph) Inline() []element.Element { return p.Children }

// Format joins the paragraph's lines with single spaces.
func (p *Paragraph) Format() string {
	lines := strings.Split(strings.TrimRight(p.Data().Raw(), "\n"), "\n")
	parts := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// CodeSpan is inline code.
type CodeSpan struct {
	element.Base

	Code string
}

func (*CodeSpan) Class() string { return ClassCodeSpan }

func (c *CodeSpan) Format() string {
	fence := "`"
	for strings.Contains(c.Code, fence) {
		fence += "`"
	}
	return fence + c.Code + fence
}

// Strong is strongly emphasized text.
type Strong struct {
	element.Base

	Delim rune
	Text  string
}

func (*Strong) Class() string { return ClassStrong }

func (s *Strong) Format() string {
	return "**" + s.Text + "**"
}

// Emphasis is emphasized text.
type Emphasis struct {
	element.Base

	Delim rune
	Text  string
}

func (*Emphasis) Class() string { return ClassEmphasis }

func (e *Emphasis) Format() string {
	return "*" + e.Text + "*"
}
