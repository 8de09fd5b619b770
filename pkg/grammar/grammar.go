// Package grammar is a small reference markup grammar built on the syntax
// contracts.
//
// Block constructs own the line break that terminates their last line, so
// the elements of a document tile its text exactly. Each block starts
// either at the stream-opening line head or at the first character of a
// line.
package grammar

import (
	"context"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
	"github.com/yaklabco/kumark/pkg/syntax"
)

// Layer names.
const (
	BlockLayer  = "blocks"
	InlineLayer = "inlines"
)

// Element classes.
const (
	ClassBlankLine     = "blank-line"
	ClassHeading       = "heading"
	ClassThematicBreak = "thematic-break"
	ClassCodeBlock     = "code-block"
	ClassParagraph     = "paragraph"
	ClassCodeSpan      = "code-span"
	ClassStrong        = "strong"
	ClassEmphasis      = "emphasis"
)

// Blocks returns a fresh block layer with the inline layer nested into it.
// Parsers hold per-attempt state, so a layer must not be shared between
// goroutines.
func Blocks(opts ...syntax.Option) *syntax.Layer {
	parsers := []syntax.Parser{
		&blankLineParser{},
		&headingParser{},
		&thematicBreakParser{},
		&codeFenceParser{},
		&paragraphParser{},
	}

	all := make([]syntax.Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, syntax.WithInner(Inlines(opts...)))

	return syntax.NewLayer(BlockLayer, parsers, all...)
}

// Inlines returns a fresh inline layer.
func Inlines(opts ...syntax.Option) *syntax.Layer {
	parsers := []syntax.Parser{
		&codeSpanParser{},
		&strongParser{},
		&emphasisParser{},
	}

	return syntax.NewLayer(InlineLayer, parsers, opts...)
}

// Parse splits text into block elements.
func Parse(ctx context.Context, text string, opts ...syntax.Option) ([]element.Element, error) {
	return Blocks(opts...).Parse(ctx, symbol.NewStream(text))
}

// opening reports whether sym is the line head that opens the stream.
func opening(sym symbol.Symbol) bool {
	return sym.IsLineHead() && sym.Width() == 0
}

func isBlank(c rune) bool {
	return c == ' ' || c == '\t'
}
