package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/kumark/pkg/conformance"
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// previewWidth bounds the element text shown after its span.
const previewWidth = 48

// FormatMismatch formats one conformance mismatch for terminal output,
// with a one-based line number.
func (s *Styles) FormatMismatch(path string, m conformance.Mismatch) string {
	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), m.Line+1)

	var message string
	switch m.Kind {
	case conformance.KindMissing:
		message = "goldmark found " + m.Want
	case conformance.KindExtra:
		message = "kumark found " + m.Got
	default:
		message = fmt.Sprintf("want %s, got %s", m.Want, m.Got)
	}

	return fmt.Sprintf("  %s  %s  %s\n", location, s.FormatKind(m.Kind), s.Message.Render(message))
}

// FormatKind returns a styled mismatch kind.
func (s *Styles) FormatKind(kind conformance.Kind) string {
	return s.KindStyle(kind).Render(string(kind))
}

// FormatElement formats an element and, indented below it, its inline
// children.
func (s *Styles) FormatElement(elem element.Element) string {
	var builder strings.Builder
	s.writeElement(&builder, elem, 1)
	return builder.String()
}

func (s *Styles) writeElement(builder *strings.Builder, elem element.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(builder, "%s%s  %s  %s\n",
		indent,
		s.Location.Render(SpanLabel(elem.Data().Span())),
		s.Element.Render(elem.Class()),
		s.Dim.Render(Preview(elem.Format(), previewWidth)),
	)

	if parent, ok := elem.(grammar.Parent); ok {
		for _, child := range parent.Inline() {
			s.writeElement(builder, child, depth+1)
		}
	}
}

// FormatSymbol formats one symbol of the stream dump.
func (s *Styles) FormatSymbol(sym symbol.Symbol) string {
	text := s.Message.Render(SymbolLabel(sym))
	if sym.IsLineHead() {
		text = s.LineHead.Render(SymbolLabel(sym))
	}
	return fmt.Sprintf("  %s  %s\n", s.Location.Render(sym.Pos.String()), text)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int, noun string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, noun)))
	}
	return header
}

// SpanLabel renders a span as one-based "line:col-line:col".
func SpanLabel(span element.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d", span.LineBegin+1, span.ColBegin, span.LineEnd+1, span.ColEnd)
}

// SymbolLabel renders a symbol's text, spelling out line heads.
func SymbolLabel(sym symbol.Symbol) string {
	if !sym.IsLineHead() {
		return fmt.Sprintf("%q", sym.Char)
	}
	if sym.Width() == 0 {
		return "LineHead"
	}
	return `LineHead "\n"`
}

// Preview quotes text on one line, cut to maxLen runes.
func Preview(text string, maxLen int) string {
	quoted := fmt.Sprintf("%q", text)
	return truncateString(quoted, maxLen)
}

func plural(n int, noun string) string {
	switch {
	case n == 1:
		return noun
	case strings.HasSuffix(noun, "ch"), strings.HasSuffix(noun, "s"):
		return noun + "es"
	default:
		return noun + "s"
	}
}
