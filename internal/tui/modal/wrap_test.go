package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestWrapANSIWidths(t *testing.T) {
	text := "\x1b[32m+" + strings.Repeat("added ", 12) + "\x1b[0m"
	lines := wrapANSI(text, 20)
	if len(lines) < 3 {
		t.Fatalf("got %d lines, want at least 3", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 20 {
			t.Errorf("line %d: width %d > 20", i, w)
		}
		if !strings.Contains(l, "\x1b[32m") {
			t.Errorf("line %d lost the colour: %q", i, l)
		}
	}
	for i := range len(lines) - 1 {
		if !strings.HasSuffix(lines[i], ansi.ResetStyle) {
			t.Errorf("line %d does not close its style: %q", i, lines[i])
		}
	}
}

func TestWrapANSIResetEndsStyle(t *testing.T) {
	text := "\x1b[31m-old\x1b[0m " + strings.Repeat("x", 25)
	lines := wrapANSI(text, 10)
	for i := 1; i < len(lines); i++ {
		if strings.Contains(lines[i], "\x1b[31m") {
			t.Errorf("line %d still red after reset: %q", i, lines[i])
		}
	}
}

func TestWrapANSIPlain(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"short", 10, []string{"short"}},
		{"@@ -1,2 +1,2 @@", 0, []string{"@@ -1,2 +1,2 @@"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}
	for _, tc := range cases {
		got := wrapANSI(tc.in, tc.width)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("wrapANSI(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
