package goldmark

import (
	"testing"
)

func TestLineIndex(t *testing.T) {
	index := newLineIndex([]byte("a\nbc\n\n  \nd"))

	if got := index.count(); got != 5 {
		t.Fatalf("count() = %d, want 5", got)
	}

	offsets := map[int]int{0: 0, 1: 0, 2: 1, 4: 1, 5: 2, 6: 3, 9: 4}
	for offset, want := range offsets {
		if got := index.lineOf(offset); got != want {
			t.Errorf("lineOf(%d) = %d, want %d", offset, got, want)
		}
	}

	if got := string(index.text(1)); got != "bc" {
		t.Errorf("text(1) = %q, want %q", got, "bc")
	}
	if !index.blank(3) {
		t.Error("line 3 should be blank")
	}
	if got := index.firstNonBlank(2); got != 4 {
		t.Errorf("firstNonBlank(2) = %d, want 4", got)
	}
	if got := index.clamp(9); got != 4 {
		t.Errorf("clamp(9) = %d, want 4", got)
	}
}

func TestLineIndex_TrailingNewline(t *testing.T) {
	index := newLineIndex([]byte("a\n"))

	if got := index.count(); got != 1 {
		t.Errorf("count() = %d, want 1", got)
	}
}

func TestExtractFence(t *testing.T) {
	tests := []struct {
		line       string
		wantChar   byte
		wantLength int
	}{
		{"```", '`', 3},
		{"````go", '`', 4},
		{"  ~~~~~", '~', 5},
		{"text", '`', 3},
		{"", '`', 3},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			char, length := extractFence([]byte(tt.line))
			if char != tt.wantChar || length != tt.wantLength {
				t.Errorf("extractFence(%q) = %q, %d, want %q, %d",
					tt.line, char, length, tt.wantChar, tt.wantLength)
			}
		})
	}
}

func TestClosesFence(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"```", true},
		{"`````", true},
		{"```  ", true},
		{"   ```", true},
		{"    ```", false},
		{"``", false},
		{"``` x", false},
		{"~~~", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := closesFence([]byte(tt.line), '`', 3); got != tt.want {
				t.Errorf("closesFence(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
