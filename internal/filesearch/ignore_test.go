package filesearch

import "testing"

func TestIgnore(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"*.log", "test.log", false, true},
		{"*.log", "test.txt", false, false},
		{"*.log", "logs/test.log", false, true},

		{"node_modules/", "node_modules", true, true},
		{"node_modules/", "node_modules/package.json", false, true},
		{"node_modules/", "src/node_modules", true, true},
		{"node_modules/", "node_modules", false, false},

		{"build/*", "build/output.txt", false, true},
		{"build/*", "build", true, false},
		{"build/*", "src/build/output.txt", false, false},

		{"**/temp", "temp", false, true},
		{"**/temp", "src/temp", false, true},
		{"**/temp", "src/lib/temp", false, true},

		{"/root.txt", "root.txt", false, true},
		{"/root.txt", "src/root.txt", false, false},

		{"file?.txt", "file1.txt", false, true},
		{"file?.txt", "file10.txt", false, false},
		{"[ab].txt", "a.txt", false, true},
		{"[ab].txt", "c.txt", false, false},

		{"# comment", "# comment", false, false},
		{"", "anything", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			ig := ParseIgnore(tt.pattern)
			if got := ig.Ignored(tt.path, tt.isDir); got != tt.want {
				t.Fatalf("Ignored(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestIgnoreNegation(t *testing.T) {
	ig := ParseIgnore("*.log", "!important.log")
	if ig.Ignored("important.log", false) {
		t.Fatal("negated file should be kept")
	}
	if !ig.Ignored("debug.log", false) {
		t.Fatal("other logs should stay ignored")
	}
}

func TestNilIgnore(t *testing.T) {
	var ig *Ignore
	if ig.Ignored("a", false) {
		t.Fatal("nil Ignore ignores nothing")
	}
}
