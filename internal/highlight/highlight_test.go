package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"/src/App.TSX", "ts"},
		{"notes.md", "md"},
		{"script.PY", "python"},
		{"Dockerfile", "docker"},
		{"Makefile", "make"},
		{"notes.txt", "text"},
		{"art.ans", "text"},
		{"", "text"},
		{"mystery.zzzz", "text"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestHighlightPreservesText(t *testing.T) {
	src := `func main() { fmt.Println("hi") }`
	out := Highlight(src, "go", "github-dark", "#0d1117")
	if out == src {
		t.Fatal("expected escape sequences in highlighted output")
	}
	if got := ansi.Strip(out); got != src {
		t.Errorf("stripped = %q, want %q", got, src)
	}
	if !strings.HasPrefix(out, "\x1b[48;2;13;17;23m") {
		t.Errorf("missing background prefix: %q", out[:min(len(out), 24)])
	}
}

func TestHighlightPlainLanguages(t *testing.T) {
	for _, lang := range []string{"", "text", "no-such-lexer"} {
		if got := Highlight("a < b", lang, "github-dark", ""); got != "a < b" {
			t.Errorf("Highlight(lang=%q) = %q", lang, got)
		}
	}
}

func TestCached(t *testing.T) {
	a := Cached("x := 1", "go", "monokai", "")
	b := Cached("x := 1", "go", "monokai", "")
	if a != b || ansi.Strip(a) != "x := 1" {
		t.Errorf("cached results differ: %q vs %q", a, b)
	}
}

func TestSplitLinesCarriesStyle(t *testing.T) {
	block := "\x1b[31mred\nstill red\x1b[0m\nplain"
	lines := SplitLines(block)
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "\x1b[31m") {
		t.Errorf("line 1 lost style: %q", lines[1])
	}
	if strings.HasPrefix(lines[2], "\x1b[31m") {
		t.Errorf("line 2 kept style past reset: %q", lines[2])
	}
}

func TestThemePalette(t *testing.T) {
	p := ThemePalette("github-dark")
	for name, v := range map[string]string{
		"Bg": p.Bg, "Fg": p.Fg, "Border": p.Border, "Selection": p.Selection,
		"Dim": p.Dim, "Muted": p.Muted, "Accent": p.Accent, "Match": p.Match,
	} {
		if len(v) != 7 || v[0] != '#' {
			t.Errorf("%s = %q, want #rrggbb", name, v)
		}
	}
	if ThemePalette("github-dark") != p {
		t.Error("palette is not deterministic")
	}
}

func TestMix(t *testing.T) {
	black, _ := colorful.Hex("#000000")
	white, _ := colorful.Hex("#ffffff")
	if got := mix(black, white, 0.5); got != "#808080" {
		t.Errorf("mix midpoint = %q", got)
	}
	if got := mix(white, white, 0.7); got != "#ffffff" {
		t.Errorf("mix same = %q", got)
	}
}

func TestHighlightExactLength(t *testing.T) {
	for _, src := range []string{"x := 1", "x := 1\n", "package p\n\nvar x int"} {
		if got := ansi.Strip(Highlight(src, "go", "monokai", "#272822")); got != src {
			t.Errorf("stripped = %q, want %q", got, src)
		}
	}
}

func TestLineCachePromotes(t *testing.T) {
	c := &lineCache{cur: make(map[string]string), size: 2}
	c.put("a", "A")
	c.put("b", "B")
	c.put("c", "C") // a and b move to the old generation
	if v, ok := c.get("a"); !ok || v != "A" {
		t.Fatalf("get(a) = %q, %v", v, ok)
	}
	if _, ok := c.cur["a"]; !ok {
		t.Error("hit in old generation was not promoted")
	}
}
