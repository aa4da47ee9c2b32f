// Package catalognav lists the documents of the catalog and emits a
// DocumentPickMsg when one is chosen.
package catalognav

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/statictable/pkg/store"
	"tableflip.dev/statictable/pkg/timeutil"
	"tableflip.dev/statictable/pkg/tui/events"
)

var pick = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "open"),
)

// Model wraps a bubbles list for catalog navigation.
type Model struct {
	id   events.ComponentID
	list list.Model
}

// NewModel constructs the nav list with the provided documents.
func NewModel(id events.ComponentID, metas []store.Meta) *Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(itemsFromMetas(metas), delegate, 0, 0)
	l.Title = "Catalog"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{pick} }
	return &Model{id: id, list: l}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetItems replaces the rendered documents.
func (m *Model) SetItems(metas []store.Meta) {
	m.list.SetItems(itemsFromMetas(metas))
}

// Len reports how many documents are listed.
func (m *Model) Len() int { return len(m.list.Items()) }

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the filter prompt has the keyboard.
func (m *Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// Selected returns the highlighted document name.
func (m *Model) Selected() string {
	if it, ok := m.list.SelectedItem().(documentItem); ok {
		return it.meta.Name
	}
	return ""
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards Bubble Tea messages to the list. Enter outside of
// filtering picks the highlighted document.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, pick) && !m.Filtering() {
		if name := m.Selected(); name != "" {
			return m, events.DocumentPickCmd(m.id, name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m *Model) View() string {
	return m.list.View()
}

func itemsFromMetas(metas []store.Meta) []list.Item {
	items := make([]list.Item, 0, len(metas))
	for _, meta := range metas {
		items = append(items, documentItem{meta: meta})
	}
	return items
}

type documentItem struct {
	meta store.Meta
}

func (d documentItem) Title() string {
	if d.meta.Title != "" && d.meta.Title != d.meta.Name {
		return fmt.Sprintf("%s (%s)", d.meta.Name, d.meta.Title)
	}
	return d.meta.Name
}

func (d documentItem) Description() string {
	desc := fmt.Sprintf("%s · %d sections · %d rows", d.meta.Style, d.meta.Sections, d.meta.Rows)
	if age := timeutil.Age(d.meta.Updated, time.Now()); age != "" {
		desc += " · " + age
	}
	return desc
}

func (d documentItem) FilterValue() string { return d.meta.Name + " " + d.meta.Title }
