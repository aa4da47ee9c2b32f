// Package eventviewer shows the most recent table events in a scrollable
// pane, newest first.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/statictable/pkg/tui/events"
)

// Level indicates the severity of a logged event.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Entry is one logged event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Level     Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Model renders a capped event log.
type Model struct {
	viewport viewport.Model
	entries  []Entry
	limit    int

	width  int
	height int

	styles Styles
	now    func() time.Time
}

// NewModel constructs a viewer keeping at most limit entries.
func NewModel(limit int) *Model {
	if limit <= 0 {
		limit = 200
	}
	return &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		limit:    limit,
		styles:   DefaultStyles(),
		now:      time.Now,
	}
}

// Len returns the number of kept entries.
func (m *Model) Len() int { return len(m.entries) }

// Entries returns the kept entries, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// Record logs msg when it describes itself. It reports whether it did.
func (m *Model) Record(msg tea.Msg) bool {
	d, ok := msg.(events.Describer)
	if !ok {
		return false
	}
	entry := Entry{Source: source(msg), Summary: d.Describe()}
	if r, ok := msg.(events.DocumentReloadMsg); ok && r.Err != nil {
		entry.Level = LevelError
	}
	m.Append(entry)
	return true
}

// source turns "events.RowSelectMsg" into "rowselect".
func source(msg tea.Msg) string {
	name := fmt.Sprintf("%T", msg)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(strings.TrimSuffix(name, "Msg"))
}

// Append inserts entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Clear drops all entries.
func (m *Model) Clear() {
	m.entries = nil
	m.refresh()
}

// SetSize resizes the pane, border included.
func (m *Model) SetSize(width, height int) {
	width = max(width, 4)
	height = max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// View renders the bordered log.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.styles.Header.Render(fmt.Sprintf("Events (%d)", len(m.entries)))
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) refresh() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(m.styles.Timestamp.Render("No events yet"))
		return
	}
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.render(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) render(e Entry) string {
	ts := m.styles.Timestamp.Render(e.Timestamp.Format("15:04:05.000"))
	src := m.styles.Source.Render(fmt.Sprintf("[%s]", e.Source))
	summary := m.styles.Info.Render(e.Summary)
	if e.Level == LevelError {
		summary = m.styles.Error.Render(e.Summary)
	}
	return fmt.Sprintf("%s %s %s", ts, src, summary)
}
