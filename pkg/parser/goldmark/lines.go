package goldmark

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark/ast"
)

// lineIndex maps byte offsets in a document to zero-based line numbers.
// A trailing newline terminates the last line rather than opening a new one.
type lineIndex struct {
	content []byte
	starts  []int
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// count returns the number of lines.
func (x *lineIndex) count() int {
	return len(x.starts)
}

// lineOf returns the line holding the byte at offset.
func (x *lineIndex) lineOf(offset int) int {
	idx := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	})
	return max(idx-1, 0)
}

// text returns a line without its terminator.
func (x *lineIndex) text(line int) []byte {
	if line < 0 || line >= len(x.starts) {
		return nil
	}
	end := len(x.content)
	if line+1 < len(x.starts) {
		end = x.starts[line+1]
	}
	return bytes.TrimRight(x.content[x.starts[line]:end], "\r\n")
}

func (x *lineIndex) blank(line int) bool {
	return len(bytes.TrimSpace(x.text(line))) == 0
}

// firstNonBlank returns the first line at or after from with visible
// content, or the last line if there is none.
func (x *lineIndex) firstNonBlank(from int) int {
	for line := from; line < x.count(); line++ {
		if !x.blank(line) {
			return line
		}
	}
	return min(from, x.count()-1)
}

// clamp limits line to the document.
func (x *lineIndex) clamp(line int) int {
	return min(max(line, 0), x.count()-1)
}

// nodeByteRange returns the smallest start and largest stop offset of the
// segments held by gmNode and its descendants, or -1, -1 when there are none.
func nodeByteRange(gmNode ast.Node) (int, int) {
	start, stop := -1, -1
	widen := func(s, e int) {
		if s < 0 || e < s {
			return
		}
		if start == -1 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	// Inline nodes don't have Lines() and will panic if called.
	if gmNode.Type() == ast.TypeInline {
		switch n := gmNode.(type) {
		case *ast.Text:
			widen(n.Segment.Start, n.Segment.Stop)
		case *ast.RawHTML:
			for i := range n.Segments.Len() {
				seg := n.Segments.At(i)
				widen(seg.Start, seg.Stop)
			}
		}
	} else {
		lines := gmNode.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			widen(seg.Start, seg.Stop)
		}
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		widen(nodeByteRange(child))
	}

	return start, stop
}
