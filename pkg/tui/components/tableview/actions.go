package tableview

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/tui/events"
)

// sliderSteps is how many key presses move a slider across its range.
const sliderSteps = 20

// activate runs the enter key on the cursor row: switches toggle, enabled
// text inputs start editing, and anything else selectable is selected.
func (m *Model) activate() tea.Cmd {
	p := m.CursorPath()
	if !p.Found() || m.ds == nil {
		return nil
	}
	cl := m.ds.CellForRow(p)
	ref := events.RefForPath(m.ds, p)

	if sw, ok := cl.(cell.SwitchHolder); ok {
		s := sw.SwitchControl()
		s.On = !s.On
		m.logf("toggle path=%s on=%t", p, s.On)
		m.ds.ValueChanged(p)
		m.recomputeLineMetrics()
		m.ensureScroll()
		return events.ValueChangeCmd(m.id, ref, strconv.FormatBool(s.On))
	}

	if holder, ok := cl.(cell.TextInputHolder); ok {
		in := holder.TextInputControl()
		if !in.Enabled {
			return nil
		}
		lines := 0
		if tv, ok := cl.(lineCounter); ok {
			lines = tv.Lines()
			if in.MaxHeightInLines == 0 && lines < maxEditorLines {
				lines = maxEditorLines
			}
		}
		return m.beginEdit(p, in, lines)
	}

	if !m.ds.CanSelectRow(p) {
		return nil
	}
	m.selected = p
	m.logf("select path=%s", p)
	m.ds.DidSelectRow(p)
	m.recomputeLineMetrics()
	m.ensureScroll()
	return events.RowSelectCmd(m.id, ref)
}

func (m *Model) nudgeSlider(direction int) tea.Cmd {
	p := m.CursorPath()
	if !p.Found() || m.ds == nil {
		return nil
	}
	holder, ok := m.ds.CellForRow(p).(cell.SliderHolder)
	if !ok {
		return nil
	}
	s := holder.SliderControl()
	step := (s.MaximumValue - s.MinimumValue) / sliderSteps
	if step <= 0 {
		return nil
	}
	before := s.Value
	s.SetValue(s.Value + float64(direction)*step)
	if s.Value == before {
		return nil
	}
	ref := events.RefForPath(m.ds, p)
	m.logf("slide path=%s value=%v", p, s.Value)
	m.ds.ValueChanged(p)
	m.recomputeLineMetrics()
	return events.ValueChangeCmd(m.id, ref, formatValue(s.Value))
}

func (m *Model) deleteCurrent() tea.Cmd {
	p := m.CursorPath()
	if !p.Found() || m.ds == nil || !m.ds.CanEditRow(p) {
		return nil
	}
	ref := events.RefForPath(m.ds, p)
	m.logf("delete path=%s", p)
	m.ds.CommitDelete(p)
	return events.RowDeleteCmd(m.id, ref)
}
