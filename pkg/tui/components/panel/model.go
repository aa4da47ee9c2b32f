// Package panel renders framed information panels for the TUI, such as the
// item inspector.
package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cast"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
	"tableflip.dev/statictable/pkg/tui/theme"
)

const maxValueWidth = 48

// Model renders a generic information panel with a title and body lines.
type Model struct {
	title      string
	lines      []string
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns a panel model styled by th.
func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// Inspect fills the panel with the identity and cell properties of item.
// A nil item resets the panel.
func (m *Model) Inspect(item *table.Item) {
	if item == nil {
		m.Reset()
		return
	}
	title := item.Text()
	if title == "" {
		title = "Item"
	}
	m.SetContent(title, ItemLines(item))
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// Empty reports whether there is nothing to show.
func (m Model) Empty() bool { return m.title == "" && len(m.lines) == 0 }

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(line))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}

// ItemLines describes item as "key: value" lines, identity first and cell
// properties sorted by key. Secure text is masked.
func ItemLines(item *table.Item) []string {
	var lines []string
	add := func(k string, v any) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, truncate(cast.ToString(v))))
	}
	if c := item.Class(); c != nil {
		add("class", c.Name)
	}
	if c := item.CellClass(); c != nil {
		add("cellClass", c.Name)
	}
	add("style", item.CellStyle())
	add("path", item.IndexPath().String())
	if item.Identifier != "" {
		add("identifier", item.Identifier)
	}
	if id := item.ReuseIdentifier(); id != "" {
		add("reuseIdentifier", id)
	}
	if item.Selector != "" {
		add("selector", item.Selector)
	}
	if item.PrefKey != "" {
		add("prefKey", item.PrefKey)
	}

	props := item.CellProperties()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	secure := cast.ToBool(props[cell.KeyInputSecureTextEntry])
	for _, k := range keys {
		v := props[k]
		if secure && k == cell.KeyInputText {
			v = strings.Repeat("•", len([]rune(cast.ToString(v))))
		}
		if s := cast.ToString(v); s == "" && v != nil {
			v = fmt.Sprintf("%v", v)
		}
		add(k, v)
	}
	return lines
}

func truncate(s string) string {
	s = strings.ReplaceAll(s, "\n", " ⏎ ")
	r := []rune(s)
	if len(r) <= maxValueWidth {
		return s
	}
	return string(r[:maxValueWidth-1]) + "…"
}
