package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/statictable/pkg/table"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// RowRef captures what listeners need to know about a table row.
type RowRef struct {
	Path       table.IndexPath
	Identifier string
	Text       string
}

// RefForPath describes the row at p of ds.
func RefForPath(ds table.DataSource, p table.IndexPath) RowRef {
	ref := RowRef{Path: p}
	if ds == nil {
		return ref
	}
	if c, ok := ds.(*table.Controller); ok {
		if item := c.ItemAtIndexPath(p); item != nil {
			ref.Identifier = item.Identifier
		}
	}
	if cl := ds.CellForRow(p); cl != nil {
		ref.Text = cl.Base().TextLabel.Text
	}
	return ref
}

// Label returns a human-friendly identifier for the row.
func (r RowRef) Label() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	if r.Text != "" {
		return r.Text
	}
	return r.Path.String()
}

// RowHighlightMsg is emitted when the cursor lands on a row.
type RowHighlightMsg struct {
	Component ComponentID
	Row       RowRef
}

// Describe renders the highlight in a human-friendly format for logs.
func (m RowHighlightMsg) Describe() string {
	return fmt.Sprintf(`row:%q path:%s`, m.Row.Label(), m.Row.Path)
}

// RowSelectMsg is emitted after a row was selected and its action ran.
type RowSelectMsg struct {
	Component ComponentID
	Row       RowRef
}

// Describe renders the selection for logs.
func (m RowSelectMsg) Describe() string {
	return fmt.Sprintf(`row:%q path:%s`, m.Row.Label(), m.Row.Path)
}

// RowDeleteMsg is emitted after the user deleted a row.
type RowDeleteMsg struct {
	Component ComponentID
	Row       RowRef
}

// Describe renders the deletion for logs.
func (m RowDeleteMsg) Describe() string {
	return fmt.Sprintf(`row:%q path:%s`, m.Row.Label(), m.Row.Path)
}

// ValueChangeMsg is emitted after the control of a row changed value.
type ValueChangeMsg struct {
	Component ComponentID
	Row       RowRef
	Value     string
}

// Describe renders the change for logs.
func (m ValueChangeMsg) Describe() string {
	return fmt.Sprintf(`row:%q value:%q`, m.Row.Label(), m.Value)
}

// EditMode is the state of in-place text editing.
type EditMode string

const (
	// EditBegin indicates a text input started editing.
	EditBegin EditMode = "begin"
	// EditCommit indicates editing ended with return.
	EditCommit EditMode = "commit"
	// EditCancel indicates editing was abandoned.
	EditCancel EditMode = "cancel"
)

// EditMsg is emitted when in-place editing of a text row changes state.
type EditMsg struct {
	Component ComponentID
	Row       RowRef
	Mode      EditMode
}

// Describe renders the edit transition for logs.
func (m EditMsg) Describe() string {
	return fmt.Sprintf(`row:%q mode:%q`, m.Row.Label(), m.Mode)
}

// DocumentReloadMsg announces that the document backing the table changed
// on disk. Err is set when the new content could not be loaded.
type DocumentReloadMsg struct {
	Path string
	Err  error
}

// Describe renders the reload for logs.
func (m DocumentReloadMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`path:%q error:%q`, m.Path, m.Err)
	}
	return fmt.Sprintf(`path:%q`, m.Path)
}

// StatusMsg carries a one-line status for the shell's footer.
type StatusMsg struct {
	Text string
}

// Describe implements the logging helper.
func (m StatusMsg) Describe() string {
	return fmt.Sprintf(`status:%q`, m.Text)
}

// StatusCmd wraps StatusMsg in a tea.Cmd.
func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

// RowHighlightCmd wraps RowHighlightMsg in a tea.Cmd.
func RowHighlightCmd(component ComponentID, row RowRef) tea.Cmd {
	return func() tea.Msg {
		return RowHighlightMsg{Component: component, Row: row}
	}
}

// RowSelectCmd wraps RowSelectMsg in a tea.Cmd.
func RowSelectCmd(component ComponentID, row RowRef) tea.Cmd {
	return func() tea.Msg {
		return RowSelectMsg{Component: component, Row: row}
	}
}

// RowDeleteCmd wraps RowDeleteMsg in a tea.Cmd.
func RowDeleteCmd(component ComponentID, row RowRef) tea.Cmd {
	return func() tea.Msg {
		return RowDeleteMsg{Component: component, Row: row}
	}
}

// ValueChangeCmd wraps ValueChangeMsg in a tea.Cmd.
func ValueChangeCmd(component ComponentID, row RowRef, value string) tea.Cmd {
	return func() tea.Msg {
		return ValueChangeMsg{Component: component, Row: row, Value: value}
	}
}

// EditCmd wraps EditMsg in a tea.Cmd.
func EditCmd(component ComponentID, row RowRef, mode EditMode) tea.Cmd {
	return func() tea.Msg {
		return EditMsg{Component: component, Row: row, Mode: mode}
	}
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// DocumentPickMsg is emitted when a catalog document is chosen.
type DocumentPickMsg struct {
	Component ComponentID
	Name      string
}

// Describe renders the pick for logs.
func (m DocumentPickMsg) Describe() string {
	return fmt.Sprintf(`component:%q name:%q`, m.Component, m.Name)
}

// DocumentPickCmd wraps a DocumentPickMsg in a tea.Cmd helper.
func DocumentPickCmd(component ComponentID, name string) tea.Cmd {
	return func() tea.Msg {
		return DocumentPickMsg{Component: component, Name: name}
	}
}

// Describer is implemented by messages that can render themselves for the
// debug log.
type Describer interface {
	Describe() string
}
