package search

import (
	"sort"
	"strings"
)

// LineIndex maps byte offsets to 1-indexed line numbers. It is built with one
// linear scan and answers each lookup with a binary search.
type LineIndex struct {
	content string
	starts  []int
}

// NewLineIndex records the offset of every line start in content.
func NewLineIndex(content string) *LineIndex {
	starts := make([]int, 1, strings.Count(content, "\n")+1)
	for i := 0; i < len(content); {
		j := strings.IndexByte(content[i:], '\n')
		if j < 0 {
			break
		}
		i += j + 1
		starts = append(starts, i)
	}
	return &LineIndex{content: content, starts: starts}
}

// Lines returns the number of lines.
func (li *LineIndex) Lines() int { return len(li.starts) }

// LineOf returns the 1-indexed line containing offset.
func (li *LineIndex) LineOf(offset int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset })
}

// Start returns the offset of the first byte of the 1-indexed line.
func (li *LineIndex) Start(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(li.starts) {
		return len(li.content)
	}
	return li.starts[line-1]
}

// End returns the offset just past the last byte of the 1-indexed line,
// excluding the newline.
func (li *LineIndex) End(line int) int {
	if line < 1 {
		return 0
	}
	if line >= len(li.starts) {
		return len(li.content)
	}
	return li.starts[line] - 1
}

// Text returns the 1-indexed line without its line terminator.
func (li *LineIndex) Text(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := len(li.content)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	return strings.TrimSuffix(li.content[start:end], "\r")
}
