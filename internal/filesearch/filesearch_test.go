package filesearch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func testTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		".gitignore":                  "*.log\nbuild/\n",
		"main.go":                     "package main",
		"cmd/server/main.go":          "package main",
		"internal/config/config.go":   "package config",
		"internal/handler/handler.go": "package handler",
		"README.md":                   "# readme",
		"docs/design.md":              "# design",
		"debug.log":                   "ignored",
		"build/out.txt":               "ignored",
		".git/HEAD":                   "ref: refs/heads/main",
	})
}

func TestScan(t *testing.T) {
	ix, err := Scan(context.Background(), testTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		".gitignore",
		"README.md",
		"cmd/server/main.go",
		"docs/design.md",
		"internal/config/config.go",
		"internal/handler/handler.go",
		"main.go",
	}
	if !slices.Equal(ix.Paths(), want) {
		t.Fatalf("paths = %v\nwant %v", ix.Paths(), want)
	}
	if ix.Truncated() {
		t.Fatal("scan should not be truncated")
	}
	if got := ix.Abs("cmd/server/main.go"); got != filepath.Join(ix.Root(), "cmd", "server", "main.go") {
		t.Fatalf("Abs = %s", got)
	}
}

func TestScanLimits(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt":   "a",
		"b.txt":   "b",
		"c.txt":   "c",
		"big.txt": "0123456789",
	})

	ix, err := Scan(context.Background(), root, Options{MaxFiles: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(ix.Paths()) != 2 || !ix.Truncated() {
		t.Fatalf("paths = %v truncated = %v", ix.Paths(), ix.Truncated())
	}

	ix, err = Scan(context.Background(), root, Options{MaxFileSize: 5})
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(ix.Paths(), "big.txt") {
		t.Fatal("files over the size limit should be skipped")
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, testTree(t), Options{}); err == nil {
		t.Fatal("expected an error from a cancelled scan")
	}
}

func TestMatch(t *testing.T) {
	ix, err := Scan(context.Background(), testTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"name match, shorter path first", "main", 0, []string{"main.go", "cmd/server/main.go"}},
		{"subsequence", "cfg", 0, []string{"internal/config/config.go"}},
		{"ignores case", "MAIN", 1, []string{"main.go"}},
		{"no match", "xyz", 0, nil},
		{"empty query lists in order", "", 2, []string{".gitignore", "README.md"}},
		{"directory match", "docsdes", 0, []string{"docs/design.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range ix.Match(tt.query, tt.limit) {
				got = append(got, r.Path)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Match(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchPositions(t *testing.T) {
	ix := &Index{paths: []string{"cmd/server/main.go"}}
	res := ix.Match("main", 0)
	if len(res) != 1 {
		t.Fatalf("results = %v", res)
	}
	if want := []int{11, 12, 13, 14}; !slices.Equal(res[0].Positions, want) {
		t.Fatalf("positions = %v, want %v", res[0].Positions, want)
	}
}

func TestNameMatchBeatsPathMatch(t *testing.T) {
	ix := &Index{paths: []string{"src/view/other.go", "viewer.go"}}
	res := ix.Match("view", 0)
	if len(res) != 2 || res[0].Path != "viewer.go" {
		t.Fatalf("results = %+v", res)
	}
}
