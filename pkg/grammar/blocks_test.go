package grammar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumark/pkg/grammar"
)

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []piece
	}{
		{
			name:  "empty document",
			input: "",
			want:  []piece{{grammar.ClassBlankLine, ""}},
		},
		{
			name:  "single newline",
			input: "\n",
			want:  []piece{{grammar.ClassBlankLine, "\n"}},
		},
		{
			name:  "whitespace line",
			input: "  \n",
			want:  []piece{{grammar.ClassBlankLine, "  \n"}},
		},
		{
			name:  "heading at end of input",
			input: "# Title",
			want:  []piece{{grammar.ClassHeading, "# Title"}},
		},
		{
			name:  "seven markers is text",
			input: "####### seven",
			want:  []piece{{grammar.ClassParagraph, "####### seven"}},
		},
		{
			name:  "marker without space is text",
			input: "#hashtag",
			want:  []piece{{grammar.ClassParagraph, "#hashtag"}},
		},
		{
			name:  "indented heading",
			input: "   # Indented",
			want:  []piece{{grammar.ClassHeading, "   # Indented"}},
		},
		{
			name:  "four spaces is text",
			input: "    # four",
			want:  []piece{{grammar.ClassParagraph, "    # four"}},
		},
		{
			name:  "starred break",
			input: "***\n",
			want:  []piece{{grammar.ClassThematicBreak, "***\n"}},
		},
		{
			name:  "spaced break at end of input",
			input: "- - -",
			want:  []piece{{grammar.ClassThematicBreak, "- - -"}},
		},
		{
			name:  "two dashes is text",
			input: "--",
			want:  []piece{{grammar.ClassParagraph, "--"}},
		},
		{
			name:  "blank line splits paragraphs",
			input: "a\n\nb",
			want: []piece{
				{grammar.ClassParagraph, "a\n"},
				{grammar.ClassBlankLine, "\n"},
				{grammar.ClassParagraph, "b"},
			},
		},
		{
			name:  "lines join one paragraph",
			input: "a\nb\n",
			want:  []piece{{grammar.ClassParagraph, "a\nb\n"}},
		},
		{
			name:  "heading interrupts paragraph",
			input: "a\n# H",
			want: []piece{
				{grammar.ClassParagraph, "a\n"},
				{grammar.ClassHeading, "# H"},
			},
		},
		{
			name:  "short fence is text",
			input: "``\n",
			want:  []piece{{grammar.ClassParagraph, "``\n"}},
		},
		{
			name:  "tilde fence holds backticks",
			input: "~~~\n```\n~~~",
			want:  []piece{{grammar.ClassCodeBlock, "~~~\n```\n~~~"}},
		},
		{
			name:  "whitespace line splits paragraphs",
			input: "a\n  \nb",
			want: []piece{
				{grammar.ClassParagraph, "a\n"},
				{grammar.ClassBlankLine, "  \n"},
				{grammar.ClassParagraph, "b"},
			},
		},
		{
			name:  "trailing whitespace line",
			input: "a\n  ",
			want: []piece{
				{grammar.ClassParagraph, "a\n"},
				{grammar.ClassBlankLine, "  "},
			},
		},
		{
			name:  "indented heading interrupts paragraph",
			input: "para\n   # h",
			want: []piece{
				{grammar.ClassParagraph, "para\n"},
				{grammar.ClassHeading, "   # h"},
			},
		},
		{
			name:  "indented continuation line",
			input: "a\n  b\n",
			want:  []piece{{grammar.ClassParagraph, "a\n  b\n"}},
		},
		{
			name:  "deep indent keeps hash in paragraph",
			input: "a\n    # h",
			want:  []piece{{grammar.ClassParagraph, "a\n    # h"}},
		},
		{
			name:  "tab indent keeps hash in paragraph",
			input: "a\n\t# h",
			want:  []piece{{grammar.ClassParagraph, "a\n\t# h"}},
		},
		{
			name:  "blank line before heading",
			input: "\n# H\n",
			want: []piece{
				{grammar.ClassBlankLine, "\n"},
				{grammar.ClassHeading, "# H\n"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := pieces(parse(t, testCase.input))
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		level     int
		text      string
		format    string
		wantChild int
	}{
		{"# Title\n", 1, "Title", "# Title", 0},
		{"### Deep ###\n", 3, "Deep", "### Deep", 0},
		{"## C#", 2, "C#", "## C#", 0},
		{"##", 2, "", "##", 0},
		{"## Hello *world*", 2, "Hello *world*", "## Hello *world*", 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			elems := parse(t, testCase.input)
			require.Len(t, elems, 1)

			heading, ok := elems[0].(*grammar.Heading)
			require.True(t, ok, "got %T", elems[0])
			assert.Equal(t, testCase.level, heading.Level)
			assert.Equal(t, testCase.text, heading.Text)
			assert.Equal(t, testCase.format, heading.Format())
			assert.Len(t, heading.Children, testCase.wantChild)
		})
	}
}

func TestCodeBlock(t *testing.T) {
	t.Parallel()

	t.Run("info string names the language", func(t *testing.T) {
		t.Parallel()

		elems := parse(t, "```go\nx := 1\n```\n")
		require.Len(t, elems, 1)

		block, ok := elems[0].(*grammar.CodeBlock)
		require.True(t, ok)
		assert.Equal(t, "```", block.Fence)
		assert.Equal(t, "go", block.Info)
		assert.Equal(t, "go", block.Lang)
		assert.Equal(t, "x := 1\n", block.Body)
		assert.Equal(t, "```go\nx := 1\n```", block.Format())
	})

	t.Run("unclosed block runs to end of input", func(t *testing.T) {
		t.Parallel()

		elems := parse(t, "```\npackage main")
		require.Len(t, elems, 1)

		block, ok := elems[0].(*grammar.CodeBlock)
		require.True(t, ok)
		assert.Empty(t, block.Info)
		assert.Equal(t, "go", block.Lang)
		assert.Equal(t, "package main", block.Body)
	})

	t.Run("longer closing fence", func(t *testing.T) {
		t.Parallel()

		elems := parse(t, "```\na\n`````\nafter")
		require.Len(t, elems, 2)

		block, ok := elems[0].(*grammar.CodeBlock)
		require.True(t, ok)
		assert.Equal(t, "a\n", block.Body)
		assert.Equal(t, grammar.ClassParagraph, elems[1].Class())
	})

	t.Run("fence with text is body", func(t *testing.T) {
		t.Parallel()

		elems := parse(t, "```\n``` x\n```")
		require.Len(t, elems, 1)

		block, ok := elems[0].(*grammar.CodeBlock)
		require.True(t, ok)
		assert.Equal(t, "``` x\n", block.Body)
	})

	t.Run("unknown info word is kept", func(t *testing.T) {
		t.Parallel()

		elems := parse(t, "```mermaid-ish\ngraph\n```")
		require.Len(t, elems, 1)

		block, ok := elems[0].(*grammar.CodeBlock)
		require.True(t, ok)
		assert.Equal(t, "mermaid-ish", block.Lang)
	})
}

func TestThematicBreak_Format(t *testing.T) {
	t.Parallel()

	elems := parse(t, "_ _ _\n")
	require.Len(t, elems, 1)

	brk, ok := elems[0].(*grammar.ThematicBreak)
	require.True(t, ok)
	assert.Equal(t, '_', brk.Marker)
	assert.Equal(t, "___", brk.Format())
}

func TestParagraph_Format(t *testing.T) {
	t.Parallel()

	elems := parse(t, "  first line\n second   line  \n")
	require.Len(t, elems, 1)
	assert.Equal(t, "first line second   line", elems[0].Format())
}
