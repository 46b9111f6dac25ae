package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/outline"
	"github.com/xonecas/folio/internal/tui/modal"
)

// openOutline lists the declarations of the active document. Selecting
// one selects its name in the editor.
func (m *Model) openOutline() {
	ly := m.layoutModel()
	doc := ly.ActiveDocument()
	if doc == nil || !outline.Supported(doc.Path()) {
		m.setStatus("No outline for this document", true)
		return
	}
	entries, err := outline.Parse(context.Background(), doc.Path(), m.activeEditor().Text())
	if err != nil {
		log.Warn().Err(err).Str("doc", doc.Name()).Msg("outline failed")
		m.setStatus("Outline failed: "+err.Error(), true)
		return
	}

	searchFn := func(query string) ([]modal.Item, string) {
		q := strings.ToLower(query)
		var items []modal.Item
		for _, e := range entries {
			if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
				continue
			}
			items = append(items, modal.Item{
				Name:  fmt.Sprintf("%s:%d", e.Name, e.Line),
				Desc:  e.Kind.String() + " " + e.Detail,
				Value: target{doc: doc, start: e.Start, end: e.End},
			})
		}
		return items, fmt.Sprintf("%d of %d symbol(s)", len(items), len(entries))
	}
	m.picker = modal.NewPicker(searchFn, "Go to symbol: ", "", m.styles.ModalColors())
}
