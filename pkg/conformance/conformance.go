// Package conformance compares the block structure the kumark grammar finds
// with the outline goldmark produces for the same document.
package conformance

import (
	"fmt"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/parser/goldmark"
)

// Kind classifies a mismatch.
type Kind string

const (
	// KindMissing is a goldmark block with no kumark element starting on its line.
	KindMissing Kind = "missing"
	// KindExtra is a kumark element with no goldmark block starting on its line.
	KindExtra Kind = "extra"
	// KindClass is a block both sides start on the same line but classify differently.
	KindClass Kind = "class"
	// KindExtent is a block both sides agree on that ends on different lines.
	KindExtent Kind = "extent"
)

// Mismatch is one disagreement between kumark and goldmark.
type Mismatch struct {
	Kind Kind `json:"kind"`

	// Line is the zero-based source line the block starts on.
	Line int `json:"line"`

	// Want describes the goldmark block, Got the kumark element.
	Want string `json:"want,omitempty"`
	Got  string `json:"got,omitempty"`
}

// String renders the mismatch with a one-based line number.
func (m Mismatch) String() string {
	switch m.Kind {
	case KindMissing:
		return fmt.Sprintf("line %d: missing %s", m.Line+1, m.Want)
	case KindExtra:
		return fmt.Sprintf("line %d: extra %s", m.Line+1, m.Got)
	}
	return fmt.Sprintf("line %d: %s: want %s, got %s", m.Line+1, m.Kind, m.Want, m.Got)
}

// Blocks converts kumark block elements to outline blocks. Blank lines
// carry no structure and are left out.
func Blocks(elements []element.Element) []goldmark.Block {
	blocks := make([]goldmark.Block, 0, len(elements))
	for _, elem := range elements {
		if elem.Class() == grammar.ClassBlankLine {
			continue
		}
		first, last := elem.Data().SourceLines()
		blocks = append(blocks, goldmark.Block{Class: elem.Class(), LineBegin: first, LineEnd: last})
	}
	return blocks
}

// Compare pairs kumark elements with goldmark blocks by start line and
// reports every disagreement in line order. Both inputs must be in
// document order.
func Compare(elements []element.Element, outline []goldmark.Block) []Mismatch {
	got := Blocks(elements)

	var mismatches []Mismatch
	i, j := 0, 0
	for i < len(got) || j < len(outline) {
		switch {
		case j == len(outline) || (i < len(got) && got[i].LineBegin < outline[j].LineBegin):
			mismatches = append(mismatches, Mismatch{Kind: KindExtra, Line: got[i].LineBegin, Got: describe(got[i])})
			i++

		case i == len(got) || outline[j].LineBegin < got[i].LineBegin:
			mismatches = append(mismatches, Mismatch{Kind: KindMissing, Line: outline[j].LineBegin, Want: describe(outline[j])})
			j++

		default:
			if mismatch, ok := compareBlock(got[i], outline[j]); ok {
				mismatches = append(mismatches, mismatch)
			}
			i++
			j++
		}
	}

	return mismatches
}

func compareBlock(got, want goldmark.Block) (Mismatch, bool) {
	switch {
	case got.Class != want.Class:
		return Mismatch{Kind: KindClass, Line: want.LineBegin, Want: want.Class, Got: got.Class}, true
	case got.LineEnd != want.LineEnd:
		return Mismatch{Kind: KindExtent, Line: want.LineBegin, Want: describe(want), Got: describe(got)}, true
	}
	return Mismatch{}, false
}

// describe renders a block with one-based lines.
func describe(block goldmark.Block) string {
	if block.LineBegin == block.LineEnd {
		return fmt.Sprintf("%s (line %d)", block.Class, block.LineBegin+1)
	}
	return fmt.Sprintf("%s (lines %d-%d)", block.Class, block.LineBegin+1, block.LineEnd+1)
}
