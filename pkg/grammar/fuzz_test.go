package grammar_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/syntax"
)

// FuzzParse checks that any UTF-8 text parses into elements that tile it.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"\n",
		"# Heading",
		"#\n##\n###### six",
		"para\n# interrupt",
		"```\ncode\n```",
		"~~~~\n~~~\n",
		"*emphasis* and **strong** and `code`",
		"`` a ` b ``",
		"line1\r\nline2",
		"***\n- - -\n___",
		"  \n\t\n",
		"héllo *wörld*",
		"a\n  \nb\n   # c",
		"*a *b* **c **d**",
		strings.Repeat("*a ", 64),
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		if !utf8.ValidString(text) {
			t.Skip("malformed UTF-8 reads as U+FFFD")
		}

		elems, err := grammar.Parse(context.Background(), text, syntax.WithStrictSpans(true))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", text, err)
		}

		var raw strings.Builder
		for _, elem := range elems {
			raw.WriteString(elem.Data().Raw())
		}
		if raw.String() != text {
			t.Errorf("elements cover %q, want %q", raw.String(), text)
		}
	})
}
