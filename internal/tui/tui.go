// Package tui is the bubbletea program around the editing session: tab
// strips, one or two editor panes, the find bar, dialogs and the status
// bar.
package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/find"
	"github.com/xonecas/folio/internal/highlight"
	"github.com/xonecas/folio/internal/pane"
	"github.com/xonecas/folio/internal/split"
	"github.com/xonecas/folio/internal/tui/editor"
	"github.com/xonecas/folio/internal/tui/modal"
	"github.com/xonecas/folio/internal/workspace"
)

type focus int

const (
	focusEditor focus = iota
	focusFind
	focusReplace
	focusPrompt
)

// Options configures the host.
type Options struct {
	SyntaxTheme     string
	ShowLineNumbers bool
	CaseSensitive   bool
	Find            find.Options
}

// PaneFactory returns the split.Factory creating panes backed by editor
// widgets.
func PaneFactory(styles Styles, opts Options, paneOpts pane.Options) split.Factory {
	return func() *pane.Pane {
		ed := editor.New(styles.Editor)
		ed.ShowLineNumbers = opts.ShowLineNumbers
		ed.SyntaxTheme = opts.SyntaxTheme
		return pane.New(ed, paneOpts)
	}
}

// editorOf returns the widget behind p.
func editorOf(p *pane.Pane) *editor.Model {
	ed, _ := p.Buffer().(*editor.Model)
	return ed
}

// prompt is a one-line question shown in the bar row.
type prompt struct {
	label  string
	field  *editor.Model
	submit func(m *Model, value string) tea.Cmd
}

// Model is the application model.
type Model struct {
	ws     *workspace.Workspace
	opts   Options
	styles Styles
	keys   keyMap
	help   help.Model

	width  int
	height int
	ly     layout
	focus  focus

	// Find bar
	sched    *teaScheduler
	session  *find.Session
	query    *editor.Model
	replace  *editor.Model
	history  []string
	histPos  int // -1 when not browsing
	boundEd  *editor.Model
	boundRev int

	// Dialogs
	prompt    *prompt
	picker    *modal.Picker
	viewer    *modal.Viewer
	onConfirm func(m *Model) tea.Cmd

	// Mouse
	dragEditor  *editor.Model
	dragRect    int // index of the pane dragEditor belongs to
	tabDragFrom int
	tabDragPane *pane.Pane
	tabDragged  bool
	dragX       int
	dragY       int
	resizing    bool

	status    string
	statusErr bool
}

// New creates the host over ws. The workspace's layout must have been
// built with PaneFactory. An empty workspace gets an untitled document.
func New(ws *workspace.Workspace, styles Styles, opts Options) Model {
	if opts.SyntaxTheme == "" {
		opts.SyntaxTheme = "github-dark"
	}
	if len(ws.Documents()) == 0 {
		ws.NewDocument()
	}

	m := Model{
		ws:      ws,
		opts:    opts,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		sched:   newTeaScheduler(),
		query:   newField(styles, "search"),
		replace: newField(styles, "replace"),
		history: ws.RecentQueries(),
		histPos: -1,
	}
	m.help.Styles = styles.HelpStyles()

	m.boundEd = m.activeEditor()
	m.boundRev = m.boundEd.Revision()
	m.session = find.NewSession(m.boundEd, m.sched, opts.Find)
	m.session.SetCaseSensitive(opts.CaseSensitive)
	return m
}

// newField returns a single-line input for the bar row.
func newField(styles Styles, placeholder string) *editor.Model {
	f := editor.New(styles.Editor)
	f.SingleLine = true
	f.ShowLineNumbers = false
	f.Placeholder = placeholder
	f.SetWordWrap(false)
	return f
}

// Init initializes the program (required by BubbleTea).
func (m Model) Init() tea.Cmd { return nil }

func (m *Model) layoutModel() *split.Layout { return m.ws.Layout() }

func (m *Model) activeEditor() *editor.Model {
	return editorOf(m.layoutModel().Active())
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) barVisible() bool {
	return m.prompt != nil || m.session.IsOpen()
}

// relayout recomputes the frame rectangles and resizes the widgets.
func (m *Model) relayout() {
	if m.width == 0 {
		return
	}
	m.ly = generateLayout(m.width, m.height, m.layoutModel().Sizes(), m.barVisible())
	for i, p := range m.layoutModel().Panes() {
		if i >= len(m.ly.editors) {
			break
		}
		r := m.ly.editors[i]
		editorOf(p).SetSize(r.Dx(), r.Dy())
	}
	if m.barVisible() {
		m.sizeBar()
	}
	m.help.SetWidth(m.width / 2)
}

// afterUpdate keeps the widgets and the find session consistent with the
// layout after every message.
func (m *Model) afterUpdate() {
	m.relayout()

	active := m.layoutModel().Active()
	modalOpen := m.picker != nil || m.viewer != nil
	for _, p := range m.layoutModel().Panes() {
		ed := editorOf(p)
		if doc := p.ActiveDocument(); doc != nil {
			ed.Language = highlight.DetectLanguage(doc.Path())
		}
		if p == active && m.focus == focusEditor && !modalOpen {
			ed.Focus()
		} else {
			ed.Blur()
		}
	}
	m.setFieldFocus(m.query, m.focus == focusFind && !modalOpen)
	m.setFieldFocus(m.replace, m.focus == focusReplace && !modalOpen)
	if m.prompt != nil {
		m.setFieldFocus(m.prompt.field, m.focus == focusPrompt && !modalOpen)
	}

	ed := editorOf(active)
	switch {
	case ed != m.boundEd:
		m.session.Rebind(ed)
		m.boundEd, m.boundRev = ed, ed.Revision()
	case ed.Revision() != m.boundRev:
		m.boundRev = ed.Revision()
		m.session.Refresh()
	}
	m.session.Scrolled()
}

func (m *Model) setFieldFocus(f *editor.Model, on bool) {
	if on {
		f.Focus()
	} else {
		f.Blur()
	}
}

// sessionEdit runs fn, which edits the bound view through the session, and
// accepts the resulting text as already searched.
func (m *Model) sessionEdit(fn func()) {
	fn()
	m.boundRev = m.boundEd.Revision()
}
