package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/kumark/pkg/grammar"
)

// Classes for goldmark blocks the kumark grammar has no element for.
const (
	ClassIndentedCode = "indented-code"
	ClassList         = "list"
	ClassBlockquote   = "blockquote"
	ClassHTMLBlock    = "html-block"
	ClassTable        = "table"
)

// mapper converts a goldmark AST into a block outline.
type mapper struct {
	lines *lineIndex
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{lines: newLineIndex(content)}
}

// mapDocument returns the outline of the document's top-level blocks.
// Only blank lines separate top-level blocks, so a block without source
// segments of its own starts at the first non-blank line after the
// previous one.
func (m *mapper) mapDocument(gmDoc ast.Node) []Block {
	blocks := make([]Block, 0, gmDoc.ChildCount())
	next := 0

	for child := gmDoc.FirstChild(); child != nil; child = child.NextSibling() {
		block := m.mapBlock(child, next)
		blocks = append(blocks, block)
		next = block.LineEnd + 1
	}

	return blocks
}

// mapBlock locates one top-level block, searching from line from.
func (m *mapper) mapBlock(gmNode ast.Node, from int) Block {
	block := Block{Class: classOf(gmNode)}
	start, stop := nodeByteRange(gmNode)

	switch gmNode.(type) {
	case *ast.ThematicBreak:
		block.LineBegin = m.lines.firstNonBlank(from)
		block.LineEnd = block.LineBegin

	case *ast.FencedCodeBlock:
		block.LineBegin = m.lines.firstNonBlank(from)
		block.LineEnd = m.fenceEnd(block.LineBegin)

	case *ast.Heading:
		if start < 0 {
			block.LineBegin = m.lines.firstNonBlank(from)
		} else {
			block.LineBegin = m.lines.lineOf(start)
		}
		block.LineEnd = block.LineBegin
		if !m.atx(block.LineBegin) && stop > 0 {
			// A setext heading ends with its underline.
			block.LineEnd = m.lines.clamp(m.lines.lineOf(stop-1) + 1)
		}

	default:
		if start < 0 {
			block.LineBegin = m.lines.firstNonBlank(from)
			block.LineEnd = block.LineBegin
			break
		}
		block.LineBegin = m.lines.lineOf(start)
		block.LineEnd = m.lines.lineOf(max(stop-1, start))
	}

	return block
}

// classOf names a goldmark block with the matching kumark element class.
func classOf(gmNode ast.Node) string {
	switch gmNode.(type) {
	case *ast.Heading:
		return grammar.ClassHeading
	case *ast.Paragraph, *ast.TextBlock:
		return grammar.ClassParagraph
	case *ast.FencedCodeBlock:
		return grammar.ClassCodeBlock
	case *ast.ThematicBreak:
		return grammar.ClassThematicBreak
	case *ast.CodeBlock:
		return ClassIndentedCode
	case *ast.List:
		return ClassList
	case *ast.Blockquote:
		return ClassBlockquote
	case *ast.HTMLBlock:
		return ClassHTMLBlock
	case *east.Table:
		return ClassTable
	}
	return strings.ToLower(gmNode.Kind().String())
}

// atx reports whether line opens with an ATX heading marker.
func (m *mapper) atx(line int) bool {
	text := m.lines.text(line)
	trimmed := bytes.TrimLeft(text, " ")
	return len(text)-len(trimmed) <= 3 && bytes.HasPrefix(trimmed, []byte("#"))
}

// fenceEnd returns the line of the fence closing the block opened at line
// begin, or the last line when the block is never closed.
func (m *mapper) fenceEnd(begin int) int {
	fenceChar, fenceLength := extractFence(m.lines.text(begin))

	for line := begin + 1; line < m.lines.count(); line++ {
		if closesFence(m.lines.text(line), fenceChar, fenceLength) {
			return line
		}
	}

	return m.lines.count() - 1
}

// extractFence extracts fence character and length from an opening line.
func extractFence(line []byte) (byte, int) {
	trimmed := bytes.TrimLeft(line, " \t")
	if len(trimmed) == 0 || (trimmed[0] != '`' && trimmed[0] != '~') {
		return '`', 3
	}

	fenceChar := trimmed[0]
	fenceLength := 0
	for fenceLength < len(trimmed) && trimmed[fenceLength] == fenceChar {
		fenceLength++
	}

	return fenceChar, max(fenceLength, 3)
}

// closesFence reports whether line is a closing fence for the given style.
func closesFence(line []byte, fenceChar byte, fenceLength int) bool {
	trimmed := bytes.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}

	run := 0
	for run < len(trimmed) && trimmed[run] == fenceChar {
		run++
	}

	return run >= fenceLength && len(bytes.TrimSpace(trimmed[run:])) == 0
}
