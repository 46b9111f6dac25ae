// Package search implements literal find and replace over immutable text.
//
// All offsets are byte offsets into the searched string and ranges are
// half-open. Matches never overlap and are reported in document order.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xonecas/folio/internal/document"
)

// Range is a half-open byte range.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Match is a located occurrence with its 1-indexed line and the full text of
// that line.
type Match struct {
	Start    int
	End      int
	Line     int
	LineText string
}

// Range returns the match offsets.
func (m Match) Range() Range { return Range{Start: m.Start, End: m.End} }

// DocumentMatches groups the matches found in one document.
type DocumentMatches struct {
	Document *document.Document
	Matches  []Match
}

// Count returns the number of matches.
func (dm DocumentMatches) Count() int { return len(dm.Matches) }

// FindPositions returns the offsets of every occurrence of query in content.
// Case-insensitive searches treat query as literal text and fold case while
// scanning, so content is never copied.
func FindPositions(content, query string, caseSensitive bool) []Range {
	if query == "" || content == "" {
		return nil
	}
	if caseSensitive {
		return literalPositions(content, query)
	}
	idx := foldPattern(query).FindAllStringIndex(content, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Range, len(idx))
	for i, loc := range idx {
		out[i] = Range{Start: loc[0], End: loc[1]}
	}
	return out
}

// FindAll returns every occurrence of query with line information.
func FindAll(content, query string, caseSensitive bool) []Match {
	pos := FindPositions(content, query, caseSensitive)
	if len(pos) == 0 {
		return nil
	}
	lines := NewLineIndex(content)
	out := make([]Match, len(pos))
	for i, r := range pos {
		line := lines.LineOf(r.Start)
		out[i] = Match{
			Start:    r.Start,
			End:      r.End,
			Line:     line,
			LineText: lines.Text(line),
		}
	}
	return out
}

// ReplaceAll replaces every occurrence of query with replacement, treating
// both literally. It returns content unchanged when nothing matched.
func ReplaceAll(content, query, replacement string, caseSensitive bool) (string, int) {
	if query == "" || content == "" {
		return content, 0
	}
	if caseSensitive {
		n := strings.Count(content, query)
		if n == 0 {
			return content, 0
		}
		return strings.ReplaceAll(content, query, replacement), n
	}
	pos := FindPositions(content, query, false)
	if len(pos) == 0 {
		return content, 0
	}
	return Splice(content, pos, replacement), len(pos)
}

// Splice returns content with every range replaced by replacement. The
// ranges must be sorted and non-overlapping. The replacement is copied
// verbatim; nothing in it is expanded.
func Splice(content string, ranges []Range, replacement string) string {
	if len(ranges) == 0 {
		return content
	}
	var b strings.Builder
	if n := len(content) + len(ranges)*(len(replacement)-ranges[0].Len()); n > 0 {
		b.Grow(n)
	}
	prev := 0
	for _, r := range ranges {
		b.WriteString(content[prev:r.Start])
		b.WriteString(replacement)
		prev = r.End
	}
	b.WriteString(content[prev:])
	return b.String()
}

// IndexAtOrAfter returns the index of the first range starting at or after
// offset, 0 when every range starts before it, and -1 for no ranges.
func IndexAtOrAfter(ranges []Range, offset int) int {
	if len(ranges) == 0 {
		return -1
	}
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].Start >= offset })
	if i == len(ranges) {
		return 0
	}
	return i
}

func literalPositions(content, query string) []Range {
	var out []Range
	pos := 0
	for {
		i := strings.Index(content[pos:], query)
		if i < 0 {
			return out
		}
		start := pos + i
		out = append(out, Range{Start: start, End: start + len(query)})
		pos = start + len(query)
	}
}

func foldPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}
