package modal

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xonecas/folio/internal/tui/editor"
)

// Item is a single entry in the list. Value is carried back to the caller
// on selection.
type Item struct {
	Name  string
	Desc  string
	Value any
}

// SearchFunc is called with the current query to produce results and a
// one-line summary of them.
type SearchFunc func(query string) (items []Item, status string)

const debounceDelay = 250 * time.Millisecond

// debounceMsg is sent after the debounce timer fires.
type debounceMsg struct{ seq int }

// Picker is a query field over a list of results.
type Picker struct {
	input    *editor.Model
	items    []Item
	status   string
	selected int
	inList   bool // true = list focused, false = input focused

	searchFn SearchFunc
	seq      int // debounce sequence counter
	colors   Colors

	// Prompt shown before the input text.
	Prompt string
}

// NewPicker creates a picker seeded with query and runs the first search.
func NewPicker(searchFn SearchFunc, prompt, query string, colors Colors) *Picker {
	bg := lipgloss.Color(colors.Bg)
	fg := lipgloss.Color(colors.Fg)
	in := editor.New(editor.Styles{
		Background:  colors.Bg,
		Text:        lipgloss.NewStyle().Background(bg).Foreground(fg),
		Cursor:      lipgloss.NewStyle().Background(fg).Foreground(bg),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color(colors.SelBg)).Foreground(fg),
		Placeholder: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(colors.Dim)),
	})
	in.SingleLine = true
	in.ShowLineNumbers = false
	in.SetWordWrap(false)
	in.SetText(query)
	in.SetCursorOffset(len(query))
	in.ClearUndoHistory()
	in.Focus()

	p := &Picker{input: in, searchFn: searchFn, Prompt: prompt, colors: colors}
	p.items, p.status = searchFn(query)
	return p
}

// Query returns the text in the input field.
func (p *Picker) Query() string { return p.input.Text() }

// Items returns the current results.
func (p *Picker) Items() []Item { return p.items }

// DebounceCmd returns a tea.Cmd that fires after the debounce delay.
func (p *Picker) DebounceCmd() tea.Cmd {
	seq := p.seq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// HandleMsg processes a tea.Msg and returns an optional Action.
// The second return is a tea.Cmd the parent must dispatch (for debounce).
func (p *Picker) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	case tea.PasteMsg:
		return nil, p.edit(msg)
	case debounceMsg:
		if msg.seq == p.seq {
			p.items, p.status = p.searchFn(p.input.Text())
			p.selected = 0
			p.inList = false
		}
	}
	return nil, nil
}

func (p *Picker) handleKey(msg tea.KeyPressMsg) (Action, tea.Cmd) {
	switch msg.Keystroke() {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		if len(p.items) == 0 {
			return nil, nil
		}
		return ActionSelect{Item: p.items[min(p.selected, len(p.items)-1)]}, nil
	case "up":
		switch {
		case !p.inList:
		case p.selected > 0:
			p.selected--
		default:
			p.inList = false
		}
		return nil, nil
	case "down":
		switch {
		case !p.inList && len(p.items) > 0:
			p.inList, p.selected = true, 0
		case p.inList && p.selected < len(p.items)-1:
			p.selected++
		}
		return nil, nil
	}
	if p.inList {
		if msg.Text == "" {
			return nil, nil
		}
		p.inList = false
	}
	return nil, p.edit(msg)
}

// edit forwards msg to the input and restarts the debounce when the query
// changed.
func (p *Picker) edit(msg tea.Msg) tea.Cmd {
	before := p.input.Text()
	p.input.Focus()
	p.input.Update(msg)
	if p.input.Text() == before {
		return nil
	}
	p.seq++
	return p.DebounceCmd()
}

// View renders the modal at the given app width and height.
func (p *Picker) View(appWidth, appHeight int) string {
	w, h, innerW := box(appWidth, appHeight)

	prompt := p.Prompt
	if prompt == "" {
		prompt = "> "
	}
	bg := lipgloss.Color(p.colors.Bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Dim)).Background(bg)
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Fg)).Background(bg)

	pw := lipgloss.Width(prompt)
	p.input.SetSize(max(1, innerW-pw), 1)
	if p.inList {
		p.input.Blur()
	} else {
		p.input.Focus()
	}

	var sb strings.Builder
	sb.WriteString(base.Render(prompt))
	sb.WriteString(p.input.View())
	sb.WriteByte('\n')
	sb.WriteString(dim.Render(fit(p.status, innerW)))
	sb.WriteByte('\n')
	sb.WriteString(dim.Render(strings.Repeat("─", innerW)))

	listHeight := max(1, h-5) // border + input + status + divider
	for _, l := range p.renderList(innerW, listHeight) {
		sb.WriteByte('\n')
		sb.WriteString(l)
	}
	return frame(p.colors, appWidth, appHeight, w, sb.String())
}

func (p *Picker) renderList(innerW, listHeight int) []string {
	top := 0
	if p.selected >= listHeight {
		top = p.selected - listHeight + 1
	}

	bg := lipgloss.Color(p.colors.Bg)
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Fg)).Background(bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors.Dim)).Background(bg)
	sel := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.colors.SelFg)).
		Background(lipgloss.Color(p.colors.SelBg))

	lines := make([]string, 0, listHeight)
	for i := top; i < len(p.items) && len(lines) < listHeight; i++ {
		it := p.items[i]
		if i == p.selected && p.inList {
			lines = append(lines, sel.Render(fit(it.Name+"  "+it.Desc, innerW)))
			continue
		}
		line := base.Render(it.Name)
		if it.Desc != "" {
			line += dim.Render("  " + it.Desc)
		}
		lines = append(lines, fit(line, innerW))
	}
	for len(lines) < listHeight {
		lines = append(lines, base.Render(strings.Repeat(" ", innerW)))
	}
	return lines
}
