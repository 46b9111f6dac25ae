package view

// editOp records a single edit for undo/redo support.
type editOp struct {
	offset  int
	oldText string
	newText string
}

// editGroup is the unit of undo: every op recorded between BeginEdit and
// EndEdit, or a single ungrouped op.
type editGroup []editOp

// history is an undo/redo stack with a clean marker used to derive the
// modification flag.
type history struct {
	undo  []editGroup
	redo  []editGroup
	clean int // len(undo) at the last save point, -1 when unreachable
	depth int
	open  editGroup
}

// Record pushes op, joining the open group when inside BeginEdit/EndEdit.
func (h *history) Record(offset int, oldText, newText string) {
	op := editOp{offset: offset, oldText: oldText, newText: newText}
	if h.depth > 0 {
		h.open = append(h.open, op)
		return
	}
	h.push(editGroup{op})
}

func (h *history) push(g editGroup) {
	if h.clean > len(h.undo) {
		h.clean = -1
	}
	h.undo = append(h.undo, g)
	h.redo = h.redo[:0]
}

// Begin opens a group. Groups nest; only the outermost End commits.
func (h *history) Begin() { h.depth++ }

// End closes a group and reports whether a non-empty group was committed.
func (h *history) End() bool {
	if h.depth == 0 {
		return false
	}
	h.depth--
	if h.depth > 0 || len(h.open) == 0 {
		return false
	}
	g := h.open
	h.open = nil
	h.push(g)
	return true
}

// PopUndo returns the group to revert, moving it onto the redo stack.
func (h *history) PopUndo() (editGroup, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	return g, true
}

// PopRedo returns the group to reapply, moving it back onto the undo stack.
func (h *history) PopRedo() (editGroup, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	return g, true
}

// Modified reports whether the stack has moved away from the save point.
func (h *history) Modified() bool { return h.clean != len(h.undo) }

// SetModified moves the save point to the current position, or makes it
// unreachable.
func (h *history) SetModified(modified bool) {
	if modified {
		h.clean = -1
		return
	}
	h.clean = len(h.undo)
}

// Clear drops all history and makes the current state the save point.
func (h *history) Clear() {
	h.undo = nil
	h.redo = nil
	h.open = nil
	h.depth = 0
	h.clean = 0
}

// CanUndo reports whether there is anything to undo.
func (h *history) CanUndo() bool { return len(h.undo) > 0 }

// apply returns text with g applied forwards.
func (g editGroup) apply(text string) string {
	for _, op := range g {
		text = text[:op.offset] + op.newText + text[op.offset+len(op.oldText):]
	}
	return text
}

// revert returns text with g undone.
func (g editGroup) revert(text string) string {
	for i := len(g) - 1; i >= 0; i-- {
		op := g[i]
		text = text[:op.offset] + op.oldText + text[op.offset+len(op.newText):]
	}
	return text
}

// cursorAfter is where the caret lands after applying g.
func (g editGroup) cursorAfter() int {
	op := g[len(g)-1]
	return op.offset + len(op.newText)
}

// cursorBefore is where the caret lands after reverting g.
func (g editGroup) cursorBefore() int {
	op := g[0]
	return op.offset + len(op.oldText)
}
