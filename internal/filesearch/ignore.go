package filesearch

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Ignore holds the rules of a .gitignore file. The last matching rule
// decides, so a negated rule can re-include a path.
type Ignore struct {
	rules []rule
}

type rule struct {
	re      *regexp.Regexp
	negate  bool
	dirOnly bool
}

// LoadIgnore reads root/.gitignore. A missing or unreadable file yields
// no rules.
func LoadIgnore(root string) *Ignore {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return &Ignore{}
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return ParseIgnore(lines...)
}

// ParseIgnore compiles gitignore lines. Blank lines, comments and
// patterns that fail to compile are skipped.
func ParseIgnore(lines ...string) *Ignore {
	ig := &Ignore{}
	for _, line := range lines {
		if r, ok := compileRule(line); ok {
			ig.rules = append(ig.rules, r)
		}
	}
	return ig
}

// Ignored reports whether the slash-separated path rel, relative to the
// root, is excluded.
func (ig *Ignore) Ignored(rel string, isDir bool) bool {
	if ig == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	ignored := false
	for _, r := range ig.rules {
		target := rel
		if r.dirOnly && !isDir {
			// A file is covered by a directory rule through its parents.
			target = path.Dir(rel)
			if target == "." {
				continue
			}
		}
		if r.re.MatchString(target) {
			ignored = !r.negate
		}
	}
	return ignored
}

func compileRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}
	var r rule
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		r.negate = true
		line = rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		r.dirOnly = true
		line = rest
	}
	// A slash anywhere but the end ties the pattern to the root.
	anchored := strings.Contains(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return rule{}, false
	}

	var b strings.Builder
	b.WriteString("^")
	if !anchored {
		b.WriteString("(.*/)?")
	}
	b.WriteString(globToRegexp(line))
	b.WriteString("(/.*)?$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return rule{}, false
	}
	r.re = re
	return r, true
}

// globToRegexp translates gitignore wildcards. "**/" spans any number of
// directories, "*" and "?" stay within one path segment.
func globToRegexp(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(.*/)?")
			i += 2
		case strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		case c == '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(glob[i : i+end+2])
			i += end + 1
		case c == '\\' && i+1 < len(glob):
			i++
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}
	return b.String()
}
