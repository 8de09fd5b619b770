package goldmark

import (
	"context"
	"testing"
)

func checkOutline(t *testing.T, data []byte, blocks []Block) {
	t.Helper()

	lines := newLineIndex(data).count()
	for i, block := range blocks {
		if block.LineBegin < 0 || block.LineEnd >= lines {
			t.Errorf("block %d (%s) lines %d-%d outside document of %d lines",
				i, block.Class, block.LineBegin, block.LineEnd, lines)
		}
		if block.LineEnd < block.LineBegin {
			t.Errorf("block %d (%s) ends at %d before it begins at %d",
				i, block.Class, block.LineEnd, block.LineBegin)
		}
		if block.Class == "" {
			t.Errorf("block %d has no class", i)
		}
	}
}

// FuzzOutline fuzzes the outline with random input.
func FuzzOutline(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
		"Title\n=====",
		"line1\r\nline2",
		"---",
		"    indented",
		"<div>html</div>",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Outline should never panic.
		blocks, err := New(FlavorCommonMark).Outline(context.Background(), data)
		if err != nil {
			t.Fatalf("Outline() error = %v", err)
		}
		checkOutline(t, data, blocks)
	})
}

// FuzzOutlineGFM fuzzes the GFM outline with random input.
func FuzzOutlineGFM(f *testing.F) {
	seeds := []string{
		"",
		"- [x] task 1\n- [ ] task 2",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"~~strikethrough~~",
		"https://example.com",
		"# GFM\n\n- [x] done\n\n| h |\n|---|\n| c |",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		blocks, err := New(FlavorGFM).Outline(context.Background(), data)
		if err != nil {
			t.Fatalf("Outline() error = %v", err)
		}
		checkOutline(t, data, blocks)
	})
}

// FuzzOutlineDeterministic verifies that outlining is deterministic.
func FuzzOutlineDeterministic(f *testing.F) {
	seeds := []string{
		"# Hello",
		"*emphasis*",
		"- list",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(FlavorCommonMark)

		first, _ := p.Outline(context.Background(), data)
		second, _ := p.Outline(context.Background(), data)

		if len(first) != len(second) {
			t.Fatalf("block count mismatch: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("block %d: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}
