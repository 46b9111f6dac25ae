package find

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/search"
)

// PreviewLines caps the changed lines shown across one preview.
const PreviewLines = 200

// Preview renders the pending replacement in doc as a unified diff, or ""
// when nothing would change.
func Preview(doc *document.Document, query, replacement string, caseSensitive bool) string {
	matches := search.FindAll(doc.Content(), query, caseSensitive)
	budget := PreviewLines
	return preview(doc, matches, query, replacement, caseSensitive, &budget)
}

// PreviewAll concatenates the previews of every document in the last
// search, sharing one PreviewLines budget.
func (m *Multi) PreviewAll(replacement string) string {
	var b strings.Builder
	budget := PreviewLines
	for _, dm := range m.results {
		b.WriteString(preview(dm.Document, dm.Matches, m.query, replacement, m.caseSensitive, &budget))
	}
	return b.String()
}

// preview builds the diff from the matched lines alone, so its cost
// follows the number of matches and never the document size. Queries
// spanning lines get no preview.
func preview(doc *document.Document, matches []search.Match, query, replacement string, caseSensitive bool, budget *int) string {
	if len(matches) == 0 || strings.Contains(query, "\n") || strings.Contains(replacement, "\n") {
		return ""
	}
	name := doc.Path()
	if name == "" {
		name = doc.Name()
	}

	u := gotextdiff.Unified{From: name, To: name}
	var last *gotextdiff.Hunk
	lastLine, omitted := 0, 0
	for _, match := range matches {
		if match.Line == lastLine {
			continue
		}
		lastLine = match.Line
		if *budget <= 0 {
			omitted++
			continue
		}
		*budget--

		after, _ := search.ReplaceAll(match.LineText, query, replacement, caseSensitive)
		del := gotextdiff.Line{Kind: gotextdiff.Delete, Content: match.LineText + "\n"}
		ins := gotextdiff.Line{Kind: gotextdiff.Insert, Content: after + "\n"}
		if last != nil && last.FromLine+countDeleted(last) == match.Line {
			// adjacent line: keep deletions ahead of insertions
			n := countDeleted(last)
			lines := append([]gotextdiff.Line{}, last.Lines[:n]...)
			lines = append(lines, del)
			lines = append(lines, last.Lines[n:]...)
			last.Lines = append(lines, ins)
			continue
		}
		last = &gotextdiff.Hunk{FromLine: match.Line, ToLine: match.Line, Lines: []gotextdiff.Line{del, ins}}
		u.Hunks = append(u.Hunks, last)
	}

	out := fmt.Sprint(u)
	if omitted > 0 {
		out += fmt.Sprintf("... %d more changed line(s) in %s\n", omitted, name)
	}
	return out
}

func countDeleted(h *gotextdiff.Hunk) int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind == gotextdiff.Delete {
			n++
		}
	}
	return n
}
