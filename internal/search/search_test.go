package search

import (
	"strings"
	"testing"
)

func TestFindAllCaseInsensitive(t *testing.T) {
	got := FindAll("Hello HELLO hello", "hello", false)
	want := []Range{{0, 5}, {6, 11}, {12, 17}}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Range() != want[i] {
			t.Errorf("match %d = %v, want %v", i, m.Range(), want[i])
		}
		if m.Line != 1 || m.LineText != "Hello HELLO hello" {
			t.Errorf("match %d line = %d %q", i, m.Line, m.LineText)
		}
	}
}

func TestFindPositions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		query   string
		cs      bool
		want    []Range
	}{
		{"empty query", "abc", "", true, nil},
		{"empty content", "", "a", true, nil},
		{"no match", "abc", "x", true, nil},
		{"case sensitive skips other case", "Cat cat", "cat", true, []Range{{4, 7}}},
		{"non overlapping", "aaaa", "aa", true, []Range{{0, 2}, {2, 4}}},
		{"non overlapping folded", "AAAA", "aa", false, []Range{{0, 2}, {2, 4}}},
		{"regex metacharacters are literal", "a.b a+b (a)", "a+b", false, []Range{{4, 7}}},
		{"parens literal", "x (a) y", "(a)", false, []Range{{2, 5}}},
		{"dot does not match any", "axb a.b", "a.b", true, []Range{{4, 7}}},
		{"multibyte", "héllo HÉLLO", "héllo", false, []Range{{0, 6}, {7, 13}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPositions(tt.content, tt.query, tt.cs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFindAllAgreesWithFindPositions(t *testing.T) {
	content := "one Two\nthree two\n\ntwo TWO tw"
	for _, cs := range []bool{true, false} {
		all := FindAll(content, "two", cs)
		pos := FindPositions(content, "two", cs)
		if len(all) != len(pos) {
			t.Fatalf("cs=%v: FindAll %d, FindPositions %d", cs, len(all), len(pos))
		}
		for i := range all {
			if all[i].Range() != pos[i] {
				t.Errorf("cs=%v: match %d %v != %v", cs, i, all[i].Range(), pos[i])
			}
		}
	}
}

func TestFindAllLines(t *testing.T) {
	content := "alpha\r\nbeta foo\n\nfoo gamma\nfoo"
	got := FindAll(content, "foo", true)
	want := []struct {
		line int
		text string
	}{
		{2, "beta foo"},
		{4, "foo gamma"},
		{5, "foo"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Line != want[i].line || m.LineText != want[i].text {
			t.Errorf("match %d: line %d %q, want %d %q", i, m.Line, m.LineText, want[i].line, want[i].text)
		}
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		query       string
		replacement string
		cs          bool
		want        string
		count       int
	}{
		{"basic", "cat cat cat", "cat", "dog", true, "dog dog dog", 3},
		{"no match returns input", "cat", "dog", "x", true, "cat", 0},
		{"folded", "Cat CAT cat", "cat", "dog", false, "dog dog dog", 3},
		{"dollar is literal", "Cat cat", "cat", "$1${0}\\1", false, "$1${0}\\1 $1${0}\\1", 2},
		{"shrinking replacement", "aaaa bbbb aaaa", "aaaa", "", false, " bbbb ", 2},
		{"empty query", "abc", "", "x", false, "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := ReplaceAll(tt.content, tt.query, tt.replacement, tt.cs)
			if got != tt.want || n != tt.count {
				t.Errorf("ReplaceAll = %q, %d; want %q, %d", got, n, tt.want, tt.count)
			}
		})
	}
}

func TestReplaceAllCountMatchesFindAll(t *testing.T) {
	content := strings.Repeat("Needle hay needle NEEDLE\n", 50)
	for _, cs := range []bool{true, false} {
		_, n := ReplaceAll(content, "needle", "pin", cs)
		if want := len(FindAll(content, "needle", cs)); n != want {
			t.Errorf("cs=%v: count %d, want %d", cs, n, want)
		}
	}
}

func TestReplaceAllRemovesQuery(t *testing.T) {
	out, n := ReplaceAll("cat cat cat", "cat", "dog", true)
	if n != 3 || out != "dog dog dog" {
		t.Fatalf("got %q, %d", out, n)
	}
	if left := FindAll(out, "cat", true); len(left) != 0 {
		t.Fatalf("expected no matches after replace, got %d", len(left))
	}
}

func TestIndexAtOrAfter(t *testing.T) {
	ranges := []Range{{2, 4}, {10, 12}, {20, 22}}
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{10, 1},
		{21, 0},
		{100, 0},
	}
	for _, tt := range tests {
		if got := IndexAtOrAfter(ranges, tt.offset); got != tt.want {
			t.Errorf("IndexAtOrAfter(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
	if got := IndexAtOrAfter(nil, 0); got != -1 {
		t.Errorf("empty ranges: got %d, want -1", got)
	}
}

func TestLineIndex(t *testing.T) {
	li := NewLineIndex("a\nbb\n\nccc")
	if li.Lines() != 4 {
		t.Fatalf("Lines = %d", li.Lines())
	}
	for off, want := range map[int]int{0: 1, 1: 1, 2: 2, 4: 2, 5: 3, 6: 4, 8: 4} {
		if got := li.LineOf(off); got != want {
			t.Errorf("LineOf(%d) = %d, want %d", off, got, want)
		}
	}
	if li.Start(4) != 6 || li.Text(4) != "ccc" || li.Text(3) != "" {
		t.Errorf("Start/Text mismatch: %d %q %q", li.Start(4), li.Text(4), li.Text(3))
	}
}
