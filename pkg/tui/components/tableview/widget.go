package tableview

import (
	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

var _ table.Widget = (*Model)(nil)

// SetDataSource implements table.Widget.
func (m *Model) SetDataSource(ds table.DataSource) {
	m.ds = ds
	m.batch = table.Batch{}
	m.selected = table.NotFound
	m.lastHighlight = table.NotFound
	if m.edit != nil {
		m.stopEditing()
	}
}

// DataSource returns the attached data source.
func (m *Model) DataSource() table.DataSource { return m.ds }

// ReloadData implements table.Widget. It drops the selection.
func (m *Model) ReloadData() {
	m.logf("ReloadData")
	m.selected = table.NotFound
	m.fresh = make(map[table.IndexPath]bool)
	m.rebuild()
}

// BeginUpdates implements table.Widget.
func (m *Model) BeginUpdates() {
	m.batch.Begin(m.ds)
}

// EndUpdates implements table.Widget. Closing the outermost batch checks
// the recorded deltas against the data source, which panics with
// *table.InconsistencyError on a mismatch, and then re-renders. The
// selection follows its row through the deltas. Inserted rows are marked
// fresh until the next key press.
func (m *Model) EndUpdates() {
	changes, done := m.batch.End(m.ds)
	if !done {
		return
	}
	m.selected = changes.MapPath(m.selected)
	m.logf("EndUpdates inserted=%d deleted=%d moves=%d reloads=%d",
		len(changes.InsertedRows), changes.DeletedRows, changes.Moves, changes.Reloads)
	m.rebuild()
	for _, p := range changes.InsertedRows {
		m.fresh[p] = true
	}
	for _, s := range changes.InsertedSections {
		for r := 0; r < m.ds.NumberOfRows(s); r++ {
			m.fresh[table.Path(s, r)] = true
		}
	}
	if len(changes.InsertedRows) > 0 || len(changes.InsertedSections) > 0 {
		m.recomputeLineMetrics()
	}
}

// record feeds a delta to the open batch. A delta delivered outside a batch
// is applied on its own right away.
func (m *Model) record(delta func(b *table.Batch)) {
	if m.batch.Active() {
		delta(&m.batch)
		return
	}
	var lone table.Batch
	lone.Begin(nil)
	delta(&lone)
	changes, _ := lone.End(nil)
	m.selected = changes.MapPath(m.selected)
	m.rebuild()
}

// InsertRows implements table.Widget.
func (m *Model) InsertRows(paths []table.IndexPath, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.InsertRows(paths) })
}

// DeleteRows implements table.Widget.
func (m *Model) DeleteRows(paths []table.IndexPath, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.DeleteRows(paths) })
}

// MoveRow implements table.Widget. A selected row keeps its selection.
func (m *Model) MoveRow(from, to table.IndexPath) {
	m.record(func(b *table.Batch) { b.MoveRow(from, to) })
}

// ReloadRows implements table.Widget.
func (m *Model) ReloadRows(paths []table.IndexPath, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.ReloadRows(paths) })
}

// InsertSections implements table.Widget.
func (m *Model) InsertSections(indexes []int, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.InsertSections(indexes) })
}

// DeleteSections implements table.Widget.
func (m *Model) DeleteSections(indexes []int, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.DeleteSections(indexes) })
}

// MoveSection implements table.Widget.
func (m *Model) MoveSection(from, to int) {
	m.record(func(b *table.Batch) { b.MoveSection(from, to) })
}

// ReloadSections implements table.Widget.
func (m *Model) ReloadSections(indexes []int, _ table.RowAnimation) {
	m.record(func(b *table.Batch) { b.ReloadSections(indexes) })
}

// SelectRow implements table.Widget. The cursor follows the selection.
func (m *Model) SelectRow(p table.IndexPath, _ bool, position table.ScrollPosition) {
	if !m.validPath(p) {
		return
	}
	m.logf("SelectRow path=%s", p)
	m.selected = p
	if m.SetCursor(p) {
		m.scrollToLine(m.lineIndexForPath(p), position)
	}
}

// DeselectRow implements table.Widget.
func (m *Model) DeselectRow(p table.IndexPath, _ bool) {
	if m.selected == p {
		m.selected = table.NotFound
	}
}

// SelectedRow implements table.Widget.
func (m *Model) SelectedRow() table.IndexPath { return m.selected }

// ScrollToRow implements table.Widget.
func (m *Model) ScrollToRow(p table.IndexPath, position table.ScrollPosition, _ bool) {
	m.scrollToLine(m.lineIndexForPath(p), position)
}

// DequeueReusableCell implements table.Widget. Pooled cells are reset
// before they are handed out.
func (m *Model) DequeueReusableCell(identifier string) cell.Cell {
	pool := m.pool[identifier]
	if len(pool) == 0 {
		return nil
	}
	c := pool[len(pool)-1]
	m.pool[identifier] = pool[:len(pool)-1]
	c.PrepareForReuse()
	return c
}

// RecycleCell implements table.Widget.
func (m *Model) RecycleCell(identifier string, c cell.Cell) {
	if identifier == "" || c == nil {
		return
	}
	m.pool[identifier] = append(m.pool[identifier], c)
}

// PoolSize reports how many cells wait in the reuse pool for identifier.
func (m *Model) PoolSize(identifier string) int {
	return len(m.pool[identifier])
}
