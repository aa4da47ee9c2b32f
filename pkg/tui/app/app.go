// Package app is the Bubble Tea program behind `statictable show`: a
// catalog picker, the table view and a status line.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/statictable/pkg/descriptor"
	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/table"
	"tableflip.dev/statictable/pkg/tui/components/catalognav"
	"tableflip.dev/statictable/pkg/tui/components/eventviewer"
	"tableflip.dev/statictable/pkg/tui/components/panel"
	"tableflip.dev/statictable/pkg/tui/components/tableview"
	"tableflip.dev/statictable/pkg/tui/events"
	"tableflip.dev/statictable/pkg/tui/theme"
)

const (
	tableID events.ComponentID = "table"
	navID   events.ComponentID = "catalog"
)

// Loader returns the document stored under source.
type Loader func(source string) (*descriptor.Document, error)

// Options configures the program.
type Options struct {
	// Source names the document to open: a file path or a catalog name.
	// When empty and Catalog is set the program starts in the picker.
	Source string
	Load   Loader
	// Catalog enables the picker. Esc in the table returns to it.
	Catalog store.Catalog
	// Watch delivers change notifications; each one reloads the document.
	Watch <-chan store.Event
	// Prefs stores the values of controls bound with prefKey.
	Prefs table.Preferences

	Theme    *theme.Theme
	DebugLog io.Writer
}

type documentLoadedMsg struct {
	source string
	doc    *descriptor.Document
	err    error
	reload bool
}

type watchMsg struct {
	event  store.Event
	closed bool
}

// Model composes the picker and the table view.
type Model struct {
	opts  Options
	theme theme.Theme

	width  int
	height int

	controller *table.Controller
	table      *tableview.Model
	nav        *catalognav.Model
	picking    bool
	inspector  panel.Model
	inspecting bool
	eventLog   *eventviewer.Model
	showEvents bool

	source    string
	title     string
	status    string
	statusErr bool

	debugLog io.Writer
}

// New constructs a root model.
func New(opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	tv := tableview.NewModel()
	tv.SetID(tableID)
	tv.SetTheme(th.Table)
	tv.SetHelpVisible(true)
	if opts.DebugLog != nil {
		tv.SetDebugWriter(opts.DebugLog)
	}
	tv.Focus()

	m := &Model{
		opts:     opts,
		theme:    th,
		table:    tv,
		source:   opts.Source,
		debugLog: opts.DebugLog,
		status:   "Ready",
	}
	m.inspector = panel.New(th.Panel)
	m.eventLog = eventviewer.NewModel(0)
	if opts.Catalog != nil {
		m.nav = catalognav.NewModel(navID, nil)
		m.picking = opts.Source == ""
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) logf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05")
	_, _ = fmt.Fprintf(m.debugLog, "%s app.%s\n", ts, fmt.Sprintf(format, args...))
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.table.Init(), m.waitForChange()}
	if m.picking {
		cmds = append(cmds, m.refreshCatalog())
	} else if m.source != "" {
		cmds = append(cmds, m.load(m.source, false))
	}
	return tea.Batch(cmds...)
}

type catalogListedMsg struct {
	metas []store.Meta
}

func (m *Model) refreshCatalog() tea.Cmd {
	c := m.opts.Catalog
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		return catalogListedMsg{metas: c.List(context.Background(), "")}
	}
}

func (m *Model) load(source string, reload bool) tea.Cmd {
	loader := m.opts.Load
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		doc, err := loader(source)
		return documentLoadedMsg{source: source, doc: doc, err: err, reload: reload}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.opts.Watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return watchMsg{event: ev, closed: !ok}
	}
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if d, ok := msg.(events.Describer); ok {
		m.logf("%T %s", msg, d.Describe())
		m.eventLog.Record(msg)
	}

	var cmds []tea.Cmd
	forward := true

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		forward = false
	case tea.KeyMsg:
		forward = false
		if cmd, handled := m.handleKey(v); handled {
			return m, cmd
		}
		if m.picking {
			cmds = append(cmds, m.updateNav(msg))
		} else {
			cmds = append(cmds, m.updateTable(msg))
		}
	case catalogListedMsg:
		if m.nav != nil {
			m.nav.SetItems(v.metas)
			if m.picking {
				m.setStatus(fmt.Sprintf("%d documents", len(v.metas)), false)
			}
		}
	case events.DocumentPickMsg:
		m.source = v.Name
		cmds = append(cmds, m.load(v.Name, false))
	case documentLoadedMsg:
		cmds = append(cmds, m.applyDocument(v))
	case watchMsg:
		if v.closed {
			m.opts.Watch = nil
			break
		}
		switch {
		case m.picking:
			cmds = append(cmds, m.refreshCatalog())
		case m.source != "" && (v.event.Name == "" || v.event.Name == m.source):
			cmds = append(cmds, m.load(m.source, true))
		}
		cmds = append(cmds, m.waitForChange())
	case events.DocumentReloadMsg:
		if v.Err != nil {
			m.setStatus(v.Err.Error(), true)
		} else {
			m.setStatus("Reloaded "+v.Path, false)
		}
	case events.RowSelectMsg:
		m.setStatus("Selected "+v.Row.Label(), false)
	case events.ValueChangeMsg:
		m.setStatus(fmt.Sprintf("%s = %s", v.Row.Label(), v.Value), false)
	case events.RowDeleteMsg:
		m.setStatus("Deleted "+v.Row.Label(), false)
	case events.EditMsg:
		switch v.Mode {
		case events.EditBegin:
			m.setStatus("Editing "+v.Row.Label(), false)
		case events.EditCancel:
			m.setStatus("Edit cancelled", false)
		}
	case events.StatusMsg:
		m.setStatus(v.Text, false)
	}

	if forward {
		if m.picking {
			cmds = append(cmds, m.updateNav(msg))
		} else {
			cmds = append(cmds, m.updateTable(msg))
		}
	}
	return m, batch(cmds)
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Cmd, bool) {
	switch k.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "q":
		if m.picking || !m.table.Editing() {
			if m.filtering() {
				return nil, false
			}
			return tea.Quit, true
		}
	case "e":
		if !m.table.Editing() && !m.filtering() {
			m.showEvents = !m.showEvents
			m.layout()
			return nil, true
		}
	case "i":
		if !m.picking && !m.table.Editing() && m.controller != nil {
			m.inspecting = !m.inspecting
			m.layout()
			return nil, true
		}
	case "esc":
		if m.inspecting && !m.table.Editing() {
			m.inspecting = false
			m.layout()
			return nil, true
		}
		if !m.picking && m.nav != nil && !m.table.Editing() {
			m.picking = true
			m.setStatus("Pick a document", false)
			return m.refreshCatalog(), true
		}
	}
	return nil, false
}

func (m *Model) filtering() bool {
	return m.picking && m.nav != nil && m.nav.Filtering()
}

func (m *Model) updateTable(msg tea.Msg) tea.Cmd {
	_, cmd := m.table.Update(msg)
	return cmd
}

func (m *Model) updateNav(msg tea.Msg) tea.Cmd {
	if m.nav == nil {
		return nil
	}
	_, cmd := m.nav.Update(msg)
	return cmd
}

// applyDocument installs a loaded document. A reload keeps the controller
// when the style did not change so the cursor stays on its path.
func (m *Model) applyDocument(v documentLoadedMsg) tea.Cmd {
	if v.err != nil {
		m.logf("load source=%s err=%v", v.source, v.err)
		if v.reload {
			return reloadCmd(v.source, v.err)
		}
		m.setStatus(v.err.Error(), true)
		return nil
	}
	m.picking = false
	m.title = v.doc.Title
	if m.title == "" {
		m.title = v.source
	}

	if v.reload && m.controller != nil && m.controller.Style() == v.doc.TableStyle() {
		v.doc.Load(m.controller)
	} else {
		if m.controller != nil {
			m.controller.Attach(nil)
		}
		m.controller = v.doc.Controller(table.WithPreferences(m.opts.Prefs))
		if m.debugLog != nil {
			m.controller.SetDebugWriter(m.debugLog)
		}
		m.controller.Attach(m.table)
	}
	m.layout()

	if v.reload {
		return reloadCmd(v.source, nil)
	}
	sections, rows := v.doc.Stats()
	m.setStatus(fmt.Sprintf("%s: %d sections, %d rows", v.source, sections, rows), false)
	return nil
}

func reloadCmd(path string, err error) tea.Cmd {
	return func() tea.Msg {
		return events.DocumentReloadMsg{Path: path, Err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Controller returns the controller of the open document.
func (m *Model) Controller() *table.Controller { return m.controller }

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := m.height - 2
	if m.showEvents {
		logHeight := max(5, body/3)
		m.eventLog.SetSize(m.width, logHeight)
		body -= logHeight
	}
	if body < 1 {
		body = 1
	}
	width := m.width
	if m.inspecting {
		width = m.width - m.width/3
	}
	m.table.SetSize(width, body)
	if m.nav != nil {
		m.nav.SetSize(m.width, body)
	}
}

// View renders the composed UI.
func (m *Model) View() string {
	title := m.title
	if m.picking {
		title = "statictable"
	}
	head := m.theme.Panel.Title.Render(title)

	var body string
	if m.picking && m.nav != nil {
		body = m.nav.View()
	} else {
		body = m.table.View()
		if m.inspecting && m.controller != nil {
			m.inspector.Inspect(m.controller.ItemAtIndexPath(m.table.CursorPath()))
			if !m.inspector.Empty() {
				view, _ := m.inspector.View()
				body = lipgloss.JoinHorizontal(lipgloss.Top, body, view)
			}
		}
	}

	if m.showEvents {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.eventLog.View())
	}

	statusStyle := m.theme.Footer.Status
	if m.statusErr {
		statusStyle = m.theme.Footer.Error
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, body, statusStyle.Render(m.status))
}

func batch(cmds []tea.Cmd) tea.Cmd {
	out := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return tea.Batch(out...)
}
