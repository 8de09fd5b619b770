package grammar_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/syntax"
)

const document = "# Title\n\nHello *world* and `code`.\n\n```go\nfmt.Println(1)\n```\n---\n"

type piece struct {
	Class string
	Raw   string
}

func pieces(elems []element.Element) []piece {
	out := make([]piece, 0, len(elems))
	for _, elem := range elems {
		out = append(out, piece{Class: elem.Class(), Raw: elem.Data().Raw()})
	}
	return out
}

func parse(t *testing.T, text string) []element.Element {
	t.Helper()

	elems, err := grammar.Parse(context.Background(), text, syntax.WithStrictSpans(true))
	require.NoError(t, err)
	return elems
}

func TestLayers(t *testing.T) {
	t.Parallel()

	blocks := grammar.Blocks()
	assert.Equal(t, grammar.BlockLayer, blocks.Name())
	assert.Equal(t, 5, blocks.Len())
	require.NotNil(t, blocks.Inner())
	assert.Equal(t, grammar.InlineLayer, blocks.Inner().Name())
	assert.Equal(t, 3, blocks.Inner().Len())

	assert.NotSame(t, blocks, grammar.Blocks(), "each call builds a fresh layer")
}

func TestParse_Document(t *testing.T) {
	t.Parallel()

	elems := parse(t, document)

	want := []piece{
		{grammar.ClassHeading, "# Title\n"},
		{grammar.ClassBlankLine, "\n"},
		{grammar.ClassParagraph, "Hello *world* and `code`.\n"},
		{grammar.ClassBlankLine, "\n"},
		{grammar.ClassCodeBlock, "```go\nfmt.Println(1)\n```\n"},
		{grammar.ClassThematicBreak, "---\n"},
	}
	if diff := cmp.Diff(want, pieces(elems)); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TilesInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n",
		"\n\n\n",
		document,
		"para one\nstill one\n\n  \npara two",
		"```\nunclosed\n",
		"a\n# b\n***\n",
		"a\n  \nb\n   # c\n\t# d\n  ",
	}

	for _, input := range inputs {
		elems := parse(t, input)

		var raw strings.Builder
		for _, elem := range elems {
			raw.WriteString(elem.Data().Raw())
		}
		assert.Equal(t, input, raw.String())
	}
}

func TestParse_SourceLines(t *testing.T) {
	t.Parallel()

	elems := parse(t, document)

	want := [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 6}, {7, 7}}
	got := make([][2]int, 0, len(elems))
	for _, elem := range elems {
		first, last := elem.Data().SourceLines()
		got = append(got, [2]int{first, last})
	}
	assert.Equal(t, want, got)
}

func TestParse_Offsets(t *testing.T) {
	t.Parallel()

	elems := parse(t, document)

	for _, elem := range elems {
		data := elem.Data()
		runes := []rune(document)
		start := data.Span().Offset
		end := start + len([]rune(data.Raw()))
		require.LessOrEqual(t, end, len(runes))
		assert.Equal(t, data.Raw(), string(runes[start:end]), "%s at %s", elem.Class(), data.Span())
	}
}

func TestParse_LongLine(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("*a ", 16000)

	start := time.Now()
	elems := parse(t, input)
	elapsed := time.Since(start)

	require.Len(t, elems, 1)
	para, ok := elems[0].(*grammar.Paragraph)
	require.True(t, ok, "got %T", elems[0])
	assert.Equal(t, input, para.Data().Raw())
	assert.Empty(t, para.Children)
	assert.Less(t, elapsed, 5*time.Second, "unclosed openers must not rescan the line")
}

func TestParse_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := grammar.Parse(ctx, document)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	want := pieces(parse(t, document))

	var wg sync.WaitGroup
	results := make([][]piece, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			elems, err := grammar.Parse(context.Background(), document)
			if err == nil {
				results[i] = pieces(elems)
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("goroutine %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
