package split

import "github.com/xonecas/folio/internal/pane"

// BeginDrag records the tab being dragged.
func (l *Layout) BeginDrag(index int, source *pane.Pane) {
	l.dragIndex = index
	l.dragSource = source
}

// Dragging reports whether a tab drag is in progress.
func (l *Layout) Dragging() bool { return l.dragSource != nil && l.dragIndex >= 0 }

// CancelDrag forgets the drag.
func (l *Layout) CancelDrag() {
	l.dragIndex = -1
	l.dragSource = nil
}

// CanSplitAt reports whether dropping the dragged tab at x would create a
// split, and on which edge.
func (l *Layout) CanSplitAt(x, width int) (Edge, bool) {
	edge := EdgeAt(x, width)
	if !l.Dragging() || l.IsSplit() || l.dragSource.Count() <= 1 {
		return edge, false
	}
	return edge, true
}

// Drop ends the drag over the editor area, splitting toward the edge under
// x when allowed. The drag state is cleared either way.
func (l *Layout) Drop(x, width int) bool {
	defer l.CancelDrag()
	edge, ok := l.CanSplitAt(x, width)
	if !ok {
		return false
	}
	doc := l.dragSource.DocumentAt(l.dragIndex)
	if doc == nil {
		return false
	}
	return l.CreateSplit(doc, edge)
}

// DropOnTabs ends the drag over target's tab strip, moving the dragged
// document there at index.
func (l *Layout) DropOnTabs(target *pane.Pane, index int) bool {
	defer l.CancelDrag()
	if !l.Dragging() || l.dragSource == target {
		return false
	}
	doc := l.dragSource.DocumentAt(l.dragIndex)
	if doc == nil {
		return false
	}
	return l.TransferDocument(doc, l.dragSource, target, index)
}
