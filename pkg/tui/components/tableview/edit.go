package tableview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
	"tableflip.dev/statictable/pkg/tui/events"
)

// maxEditorLines caps the editor of a text view without a maximum height.
const maxEditorLines = 6

// editSession is the in-place editor of a text field or text view row.
// Secure text views edit on a single masked line.
type editSession struct {
	path      table.IndexPath
	multiline bool
	keyboard  cell.KeyboardType
	line      textinput.Model
	area      textarea.Model
	err       error
}

func (e *editSession) value() string {
	if e.multiline {
		return e.area.Value()
	}
	return e.line.Value()
}

func (e *editSession) view() string {
	if e.multiline {
		return e.area.View()
	}
	return e.line.View()
}

func (e *editSession) setWidth(w int) {
	if e.multiline {
		e.area.SetWidth(w)
		return
	}
	e.line.SetWidth(w)
}

func (e *editSession) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.multiline {
		e.area, cmd = e.area.Update(msg)
	} else {
		e.line, cmd = e.line.Update(msg)
	}
	return cmd
}

func (m *Model) inputWidth() int {
	w := m.width - 6
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) beginEdit(p table.IndexPath, in *cell.TextInput, lines int) tea.Cmd {
	session := &editSession{path: p, keyboard: in.KeyboardType}
	var focus tea.Cmd
	if lines > 0 && !in.SecureTextEntry {
		session.multiline = true
		area := textarea.New()
		area.Prompt = ""
		area.ShowLineNumbers = false
		area.Placeholder = in.Placeholder
		area.SetWidth(m.inputWidth())
		area.SetHeight(lines)
		area.SetValue(in.Text)
		focus = area.Focus()
		session.area = area
	} else {
		line := textinput.New()
		line.Prompt = ""
		line.Placeholder = in.Placeholder
		if in.SecureTextEntry {
			line.EchoMode = textinput.EchoPassword
			line.EchoCharacter = '•'
		}
		line.SetWidth(m.inputWidth())
		line.SetValue(in.Text)
		line.CursorEnd()
		focus = line.Focus()
		session.line = line
	}
	m.edit = session
	m.logf("beginEdit path=%s multiline=%t", p, session.multiline)
	m.recomputeLineMetrics()
	m.ensureScroll()
	return tea.Batch(focus, events.EditCmd(m.id, events.RefForPath(m.ds, p), events.EditBegin))
}

func (m *Model) updateEditing(msg tea.KeyMsg) tea.Cmd {
	commit := editKeys{KeyMap: m.keys, multiline: m.edit.multiline}.commit()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelEdit()
	case key.Matches(msg, commit):
		return m.commitEdit()
	}
	cmd := m.edit.update(msg)
	m.edit.err = nil
	m.recomputeLineMetrics()
	m.ensureScroll()
	return cmd
}

// commitEdit writes the edited text into the row's input, then reports the
// value change followed by the return key.
func (m *Model) commitEdit() tea.Cmd {
	value := m.edit.value()
	if err := validate(m.edit.keyboard, value); err != nil {
		m.edit.err = err
		return nil
	}
	p := m.edit.path
	m.stopEditing()
	if m.ds == nil {
		return nil
	}
	cl := m.ds.CellForRow(p)
	holder, ok := cl.(cell.TextInputHolder)
	if !ok {
		return nil
	}
	holder.TextInputControl().Text = value
	ref := events.RefForPath(m.ds, p)
	m.logf("commitEdit path=%s", p)
	m.ds.ValueChanged(p)
	if m.validPath(p) && m.ds.CellForRow(p) == cl {
		m.ds.ReturnKey(p)
	}
	m.recomputeLineMetrics()
	m.ensureScroll()
	return tea.Batch(
		events.ValueChangeCmd(m.id, ref, value),
		events.EditCmd(m.id, ref, events.EditCommit),
	)
}

func (m *Model) cancelEdit() tea.Cmd {
	if m.edit == nil {
		return nil
	}
	p := m.edit.path
	m.stopEditing()
	m.logf("cancelEdit path=%s", p)
	return events.EditCmd(m.id, events.RefForPath(m.ds, p), events.EditCancel)
}

func (m *Model) stopEditing() {
	if m.edit == nil {
		return
	}
	if m.edit.multiline {
		m.edit.area.Blur()
	} else {
		m.edit.line.Blur()
	}
	m.edit = nil
	m.recomputeLineMetrics()
	m.ensureScroll()
}

func (m *Model) editingPath(p table.IndexPath) bool {
	return m.edit != nil && m.edit.path == p
}

// validate checks value against the keyboard a text input asked for. The
// terminal has no restricted keyboards, so the restriction is applied when
// the edit is committed.
func validate(kind cell.KeyboardType, value string) error {
	if value == "" {
		return nil
	}
	switch kind {
	case cell.KeyboardNumberPad:
		for _, r := range value {
			if r < '0' || r > '9' {
				return fmt.Errorf("%q: digits only", value)
			}
		}
	case cell.KeyboardDecimalPad:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
	case cell.KeyboardPhonePad:
		if strings.Trim(value, "0123456789+-() ") != "" {
			return fmt.Errorf("%q is not a phone number", value)
		}
	case cell.KeyboardEmailAddress:
		if !strings.Contains(value, "@") {
			return fmt.Errorf("%q is not an email address", value)
		}
	}
	return nil
}
