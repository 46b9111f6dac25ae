package tui

import "charm.land/bubbles/v2/key"

// keyMap lists the application shortcuts. Editing keys belong to the
// editor widget and are not repeated here.
type keyMap struct {
	Quit      key.Binding
	Save      key.Binding
	SaveAs    key.Binding
	New       key.Binding
	Open      key.Binding
	Close     key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	OtherPane key.Binding
	Split     key.Binding
	Merge     key.Binding
	Swap      key.Binding
	Find      key.Binding
	Replace   key.Binding
	FindNext  key.Binding
	FindPrev  key.Binding
	FindAll   key.Binding
	Outline   key.Binding
	WordWrap  key.Binding
	Help      key.Binding

	// Find bar
	CloseFind   key.Binding
	SwitchField key.Binding
	Case        key.Binding
	ReplaceOne  key.Binding
	ReplaceAll  key.Binding
	ReplaceDocs key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:    key.NewBinding(key.WithKeys("ctrl+shift+s", "alt+s"), key.WithHelp("alt+s", "save as")),
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Close:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		NextTab:   key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+]"), key.WithHelp("alt+]", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("ctrl+pgup", "alt+["), key.WithHelp("alt+[", "previous tab")),
		OtherPane: key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "other pane")),
		Split:     key.NewBinding(key.WithKeys("alt+\\"), key.WithHelp("alt+\\", "split right")),
		Merge:     key.NewBinding(key.WithKeys("alt+m"), key.WithHelp("alt+m", "merge panes")),
		Swap:      key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("alt+x", "swap panes")),
		Find:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		Replace:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace")),
		FindNext:  key.NewBinding(key.WithKeys("f3", "ctrl+g"), key.WithHelp("f3", "next match")),
		FindPrev:  key.NewBinding(key.WithKeys("shift+f3", "ctrl+shift+g"), key.WithHelp("shift+f3", "previous match")),
		FindAll:   key.NewBinding(key.WithKeys("ctrl+shift+f", "alt+f"), key.WithHelp("alt+f", "find in open files")),
		Outline:   key.NewBinding(key.WithKeys("alt+g"), key.WithHelp("alt+g", "go to symbol")),
		WordWrap:  key.NewBinding(key.WithKeys("alt+z"), key.WithHelp("alt+z", "word wrap")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys")),

		CloseFind:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		SwitchField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "find/replace field")),
		Case:        key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "match case")),
		ReplaceOne:  key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "replace")),
		ReplaceAll:  key.NewBinding(key.WithKeys("alt+a"), key.WithHelp("alt+a", "replace all")),
		ReplaceDocs: key.NewBinding(key.WithKeys("alt+shift+a", "alt+A"), key.WithHelp("alt+A", "replace in open files")),
		HistoryUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older query")),
		HistoryDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer query")),
	}
}

// ShortHelp is shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Find, k.FindAll, k.Close, k.Quit, k.Help}
}

// FindHelp is shown in the status bar while the find bar has focus.
func (k keyMap) FindHelp() []key.Binding {
	return []key.Binding{k.SwitchField, k.Case, k.ReplaceOne, k.ReplaceAll, k.ReplaceDocs, k.CloseFind}
}

// FullHelp is shown in the keys dialog.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Save, k.SaveAs, k.Close, k.Quit},
		{k.NextTab, k.PrevTab, k.OtherPane, k.Split, k.Merge, k.Swap, k.WordWrap},
		{k.Find, k.Replace, k.FindNext, k.FindPrev, k.FindAll, k.Outline},
		{k.SwitchField, k.Case, k.ReplaceOne, k.ReplaceAll, k.ReplaceDocs, k.HistoryUp, k.CloseFind},
	}
}
