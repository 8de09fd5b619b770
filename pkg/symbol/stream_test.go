package symbol_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumark/pkg/symbol"
)

func collect(text string) []symbol.Symbol {
	var out []symbol.Symbol
	for sym := range symbol.NewStream(text).All() {
		out = append(out, sym)
	}
	return out
}

func lineHead(line, col, offset int) symbol.Symbol {
	return symbol.Symbol{Kind: symbol.LineHead, Pos: symbol.Position{Line: line, Column: col, Offset: offset}}
}

func char(c rune, line, col, offset int) symbol.Symbol {
	return symbol.Symbol{Kind: symbol.Char, Char: c, Pos: symbol.Position{Line: line, Column: col, Offset: offset}}
}

func TestStream_Trace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []symbol.Symbol
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []symbol.Symbol{lineHead(0, 0, 0)},
		},
		{
			name:  "two lines",
			input: "ab\ncd",
			expected: []symbol.Symbol{
				lineHead(0, 0, 0),
				char('a', 0, 1, 1),
				char('b', 0, 2, 2),
				lineHead(1, 0, 3),
				char('c', 1, 1, 4),
				char('d', 1, 2, 5),
			},
		},
		{
			name:  "trailing newline",
			input: "a\n",
			expected: []symbol.Symbol{
				lineHead(0, 0, 0),
				char('a', 0, 1, 1),
				lineHead(1, 0, 2),
			},
		},
		{
			name:  "only newlines",
			input: "\n\n",
			expected: []symbol.Symbol{
				lineHead(0, 0, 0),
				lineHead(1, 0, 1),
				lineHead(2, 0, 2),
			},
		},
		{
			name:  "multibyte characters count once",
			input: "é\nß",
			expected: []symbol.Symbol{
				lineHead(0, 0, 0),
				char('é', 0, 1, 1),
				lineHead(1, 0, 2),
				char('ß', 1, 1, 3),
			},
		},
		{
			name:  "carriage return is a character",
			input: "a\r\nb",
			expected: []symbol.Symbol{
				lineHead(0, 0, 0),
				char('a', 0, 1, 1),
				char('\r', 0, 2, 2),
				lineHead(1, 0, 3),
				char('b', 1, 1, 4),
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := collect(testCase.input)
			if diff := cmp.Diff(testCase.expected, got); diff != "" {
				t.Errorf("symbol trace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStream_LineHeadPerLine(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"x",
		"x\n",
		"\n",
		"one\ntwo\nthree",
		"\n\n\nlast",
		"# title\n\nbody text\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			symbols := collect(input)
			require.NotEmpty(t, symbols)
			assert.True(t, symbols[0].IsLineHead(), "first symbol must be a line head")

			heads := 0
			for i, sym := range symbols {
				if !sym.IsLineHead() {
					continue
				}
				heads++
				assert.Equal(t, heads-1, sym.Pos.Line, "line head %d reports wrong line", i)
				assert.Equal(t, 0, sym.Pos.Column)
			}

			assert.Equal(t, strings.Count(input, "\n")+1, heads)
		})
	}
}

func TestStream_OffsetMonotonic(t *testing.T) {
	t.Parallel()

	input := "alpha\n\nbeta gamma\n  delta\n"
	offset := 0

	for sym := range symbol.NewStream(input).All() {
		assert.Equal(t, offset+sym.Width(), sym.Pos.Offset, "symbol %s", sym)
		offset = sym.Pos.Offset
	}

	assert.Equal(t, len([]rune(input)), offset)
}

func TestStream_InvalidUTF8(t *testing.T) {
	t.Parallel()

	want := []symbol.Symbol{
		lineHead(0, 0, 0),
		char('a', 0, 1, 1),
		char('\uFFFD', 0, 2, 2),
		char('\uFFFD', 0, 3, 3),
		char('b', 0, 4, 4),
	}

	got := collect("a\xff\xfeb")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
}

func TestStream_ColumnResetsAfterLineHead(t *testing.T) {
	t.Parallel()

	symbols := collect("abc\nd\n\nef")

	for i := 1; i < len(symbols); i++ {
		prev, cur := symbols[i-1], symbols[i]
		if prev.IsLineHead() && prev.Pos.Line > 0 && !cur.IsLineHead() {
			assert.Equal(t, 1, cur.Pos.Column, "first character after %s", prev.Pos)
		}
	}
}

func TestStream_ExhaustedStaysExhausted(t *testing.T) {
	t.Parallel()

	stream := symbol.NewStream("a")
	_, ok := stream.Next()
	require.True(t, ok)
	_, ok = stream.Next()
	require.True(t, ok)

	for range 3 {
		sym, ok := stream.Next()
		assert.False(t, ok)
		assert.Equal(t, symbol.Symbol{}, sym)
	}
	assert.True(t, stream.Done())
}

func TestStream_Pos(t *testing.T) {
	t.Parallel()

	stream := symbol.NewStream("ab\nc")
	assert.Equal(t, symbol.Position{}, stream.Pos())

	// The opening line head pre-fetches 'a'.
	stream.Next()
	assert.Equal(t, symbol.Position{Line: 0, Column: 1, Offset: 1}, stream.Pos())
	assert.Equal(t, "b\nc", stream.Remaining())

	stream.Next() // 'a', pre-fetches 'b'
	stream.Next() // 'b', pre-fetches the newline
	assert.Equal(t, symbol.Position{Line: 1, Column: 0, Offset: 3}, stream.Pos())
}

func TestStream_AllStopsEarly(t *testing.T) {
	t.Parallel()

	stream := symbol.NewStream("abc")
	count := 0
	for range stream.All() {
		count++
		if count == 2 {
			break
		}
	}

	sym, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, 'b', sym.Char)
}

func TestSymbol_Accessors(t *testing.T) {
	t.Parallel()

	opening := lineHead(0, 0, 0)
	assert.Equal(t, ' ', opening.AsChar())
	assert.Equal(t, "", opening.Text())
	assert.Equal(t, 0, opening.Width())
	assert.Equal(t, "<Ln>", opening.String())

	newline := lineHead(3, 0, 12)
	assert.Equal(t, "\n", newline.Text())
	assert.Equal(t, 1, newline.Width())

	c := char('x', 0, 1, 1)
	assert.False(t, c.IsLineHead())
	assert.Equal(t, 'x', c.AsChar())
	assert.Equal(t, "x", c.Text())
	assert.Equal(t, "'x'", c.String())

	assert.Equal(t, "Char", symbol.Char.String())
	assert.Equal(t, "LineHead", symbol.LineHead.String())
	assert.Equal(t, "2:5@17", symbol.Position{Line: 2, Column: 5, Offset: 17}.String())
}
