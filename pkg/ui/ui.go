// Package ui hosts a table.DataSource in a tui-go two pane layout: the
// sections on the left and the rows of the highlighted section on the right.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcusolsson/tui-go"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

const help = `←/→ panes, enter select, +/- slider, d delete, ESC or 'q' to QUIT`

// Do attaches a tui-go host to c and runs it until the user quits or ctx is
// done.
func Do(ctx context.Context, c *table.Controller) error {
	h := NewHost()
	c.Attach(h)

	root := tui.NewVBox(
		tui.NewHBox(h.indexView, h.rowsView),
		h.editorView,
		tui.NewSpacer(),
		h.status,
	)
	ui, err := tui.New(root)
	if err != nil {
		return err
	}

	ui.SetKeybinding("Left", h.focusIndex)
	ui.SetKeybinding("Right", h.focusRows)
	ui.SetKeybinding("+", func() { h.nudge(1) })
	ui.SetKeybinding("-", func() { h.nudge(-1) })
	ui.SetKeybinding("d", func() {
		if !h.Editing() {
			h.deleteRow(h.rows.Selected())
		}
	})
	ui.SetKeybinding("Esc", func() {
		if h.Editing() {
			h.cancelEdit()
			return
		}
		ui.Quit()
	})
	ui.SetKeybinding("q", func() {
		if !h.Editing() {
			ui.Quit()
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ui.Update(ui.Quit)
		case <-done:
		}
	}()

	h.focusRows()
	return ui.Run()
}

// Host implements table.Widget on top of tui-go tables.
type Host struct {
	ds    table.DataSource
	batch table.Batch
	pool  map[string][]cell.Cell

	section    int
	selected   table.IndexPath
	editing    table.IndexPath
	populating bool

	titles  []string
	rowText []string

	indexes    *tui.Table
	indexView  *tui.Box
	rows       *tui.Table
	rowsView   *tui.Box
	editor     *tui.Entry
	editorView *tui.Box
	status     *tui.StatusBar
}

var _ table.Widget = (*Host)(nil)

// NewHost builds the widgets of the layout. Nothing is drawn until Do runs.
func NewHost() *Host {
	h := &Host{
		pool:     make(map[string][]cell.Cell),
		selected: table.NotFound,
		editing:  table.NotFound,
	}

	h.indexes = tui.NewTable(1, 0)
	h.indexView = tui.NewVBox(h.indexes, tui.NewSpacer())
	h.indexView.SetBorder(true)
	h.indexView.SetSizePolicy(tui.Preferred, tui.Expanding)

	h.rows = tui.NewTable(1, 0)
	h.rows.SetSizePolicy(tui.Expanding, tui.Maximum)
	h.rowsView = tui.NewVBox(h.rows)
	h.rowsView.SetBorder(true)
	h.rowsView.SetSizePolicy(tui.Expanding, tui.Maximum)

	h.editor = tui.NewEntry()
	h.editorView = tui.NewVBox(h.editor)
	h.editorView.SetBorder(true)
	h.editorView.SetSizePolicy(tui.Expanding, tui.Maximum)

	h.status = tui.NewStatusBar("")
	h.status.SetPermanentText(help)

	h.indexes.OnSelectionChanged(func(t *tui.Table) {
		if h.populating || t.Selected() < 0 {
			return
		}
		h.section = t.Selected()
		h.refresh()
	})
	h.rows.OnItemActivated(func(t *tui.Table) {
		h.activate(t.Selected())
	})
	h.editor.OnSubmit(func(e *tui.Entry) {
		h.commitEdit(e.Text())
	})
	return h
}

// Editing reports whether the editor pane owns the keyboard.
func (h *Host) Editing() bool { return h.editing.Found() }

func (h *Host) focusIndex() {
	if h.Editing() {
		return
	}
	h.indexes.SetFocused(true)
	h.rows.SetFocused(false)
}

func (h *Host) focusRows() {
	if h.Editing() {
		return
	}
	h.indexes.SetFocused(false)
	h.rows.SetFocused(true)
}

// refresh re-reads the section list and the rows of the shown section.
func (h *Host) refresh() {
	h.titles = h.titles[:0]
	h.rowText = h.rowText[:0]
	sections := 0
	if h.ds != nil {
		sections = h.ds.NumberOfSections()
	}
	for s := 0; s < sections; s++ {
		h.titles = append(h.titles, sectionTitle(h.ds, s))
	}
	if h.section >= sections {
		h.section = sections - 1
	}
	if h.section < 0 {
		h.section = 0
	}
	if h.section < sections {
		for r := 0; r < h.ds.NumberOfRows(h.section); r++ {
			h.rowText = append(h.rowText, RowText(h.ds.CellForRow(table.Path(h.section, r))))
		}
	}
	if h.selected.Found() && !h.valid(h.selected) {
		h.selected = table.NotFound
	}
	if h.Editing() && !h.valid(h.editing) {
		h.cancelEdit()
	}
	h.populate()
}

func (h *Host) populate() {
	h.populating = true
	defer func() { h.populating = false }()

	cursor := h.rows.Selected()
	h.indexes.RemoveRows()
	for _, title := range h.titles {
		h.indexes.AppendRow(tui.NewLabel(title))
	}
	if len(h.titles) > 0 {
		h.indexes.Select(h.section)
	}

	h.rows.RemoveRows()
	for _, text := range h.rowText {
		h.rows.AppendRow(tui.NewLabel(text))
	}
	switch {
	case len(h.rowText) == 0:
	case h.selected.Found() && h.selected.Section == h.section:
		h.rows.Select(h.selected.Row)
	case cursor >= len(h.rowText):
		h.rows.Select(len(h.rowText) - 1)
	case cursor < 0:
		h.rows.Select(0)
	default:
		h.rows.Select(cursor)
	}

	if h.section < len(h.titles) {
		h.rowsView.SetTitle(h.titles[h.section])
		h.status.SetText(h.ds.TitleForFooter(h.section))
	} else {
		h.rowsView.SetTitle("")
		h.status.SetText("")
	}
}

func (h *Host) valid(p table.IndexPath) bool {
	if h.ds == nil || !p.Found() || p.Section >= h.ds.NumberOfSections() {
		return false
	}
	return p.Row < h.ds.NumberOfRows(p.Section)
}

func sectionTitle(ds table.DataSource, section int) string {
	if title := ds.TitleForHeader(section); title != "" {
		return title
	}
	if ds.NumberOfSections() == 1 {
		return "Items"
	}
	return fmt.Sprintf("Section %d", section+1)
}

// RowText flattens a cell into one line of plain text.
func RowText(c cell.Cell) string {
	if c == nil {
		return ""
	}
	b := c.Base()
	var parts []string
	if img := b.ImageView.Image; img != nil && img.Glyph != "" {
		parts = append(parts, img.Glyph)
	}
	if b.Style == cell.StyleValue2 {
		parts = append(parts, b.DetailTextLabel.Text, b.TextLabel.Text)
	} else {
		parts = append(parts, b.TextLabel.Text, b.DetailTextLabel.Text)
	}

	switch ctl := c.(type) {
	case cell.SwitchHolder:
		if ctl.SwitchControl().On {
			parts = append(parts, "[on]")
		} else {
			parts = append(parts, "[off]")
		}
	case cell.SliderHolder:
		s := ctl.SliderControl()
		parts = append(parts, fmt.Sprintf("%g [%g..%g]", s.Value, s.MinimumValue, s.MaximumValue))
	case cell.TextInputHolder:
		in := ctl.TextInputControl()
		switch {
		case in.Text == "":
			parts = append(parts, "("+in.Placeholder+")")
		case in.SecureTextEntry:
			parts = append(parts, strings.Repeat("•", len([]rune(in.Text))))
		default:
			parts = append(parts, strings.ReplaceAll(in.Text, "\n", " ⏎ "))
		}
	}

	if b.AccessoryView != "" {
		parts = append(parts, b.AccessoryView)
	} else if symbol := b.AccessoryType.Symbol(); symbol != "" {
		parts = append(parts, symbol)
	}

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	depth := b.IndentationLevel * b.IndentationWidth
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat(" ", depth) + strings.Join(out, "  ")
}

func (h *Host) activate(row int) {
	p := table.Path(h.section, row)
	if !h.valid(p) {
		return
	}
	switch ctl := h.ds.CellForRow(p).(type) {
	case cell.SwitchHolder:
		s := ctl.SwitchControl()
		s.On = !s.On
		h.ds.ValueChanged(p)
		h.refresh()
	case cell.TextInputHolder:
		in := ctl.TextInputControl()
		if !in.Enabled {
			return
		}
		h.editing = p
		h.editor.SetText(in.Text)
		h.editorView.SetTitle(in.Placeholder)
		h.rows.SetFocused(false)
		h.indexes.SetFocused(false)
		h.editor.SetFocused(true)
	default:
		if !h.ds.CanSelectRow(p) {
			return
		}
		h.selected = p
		h.ds.DidSelectRow(p)
		h.refresh()
	}
}

func (h *Host) nudge(direction int) {
	if h.Editing() {
		return
	}
	p := table.Path(h.section, h.rows.Selected())
	if !h.valid(p) {
		return
	}
	holder, ok := h.ds.CellForRow(p).(cell.SliderHolder)
	if !ok {
		return
	}
	s := holder.SliderControl()
	step := (s.MaximumValue - s.MinimumValue) / 20
	if step <= 0 {
		return
	}
	s.SetValue(s.Value + float64(direction)*step)
	h.ds.ValueChanged(p)
	h.refresh()
}

func (h *Host) deleteRow(row int) {
	p := table.Path(h.section, row)
	if !h.valid(p) || !h.ds.CanEditRow(p) {
		return
	}
	h.ds.CommitDelete(p)
	h.refresh()
}

func (h *Host) commitEdit(text string) {
	p := h.editing
	h.endEdit()
	if !h.valid(p) {
		return
	}
	cl := h.ds.CellForRow(p)
	holder, ok := cl.(cell.TextInputHolder)
	if !ok {
		return
	}
	holder.TextInputControl().Text = text
	h.ds.ValueChanged(p)
	if h.valid(p) && h.ds.CellForRow(p) == cl {
		h.ds.ReturnKey(p)
	}
	h.refresh()
}

func (h *Host) cancelEdit() {
	h.endEdit()
}

func (h *Host) endEdit() {
	h.editing = table.NotFound
	h.editor.SetText("")
	h.editorView.SetTitle("")
	h.editor.SetFocused(false)
	h.rows.SetFocused(true)
}

// SetDataSource implements table.Widget.
func (h *Host) SetDataSource(ds table.DataSource) {
	h.ds = ds
	h.batch = table.Batch{}
	h.selected = table.NotFound
}

// ReloadData implements table.Widget.
func (h *Host) ReloadData() {
	h.selected = table.NotFound
	h.refresh()
}

// BeginUpdates implements table.Widget.
func (h *Host) BeginUpdates() { h.batch.Begin(h.ds) }

// EndUpdates implements table.Widget. The selection, the shown section and
// an open edit follow their rows through the batch.
func (h *Host) EndUpdates() {
	if changes, done := h.batch.End(h.ds); done {
		h.follow(changes)
		h.refresh()
	}
}

func (h *Host) follow(changes table.Changes) {
	h.selected = changes.MapPath(h.selected)
	if section := changes.MapSection(h.section); section != table.NotFoundIndex {
		h.section = section
	}
	if h.Editing() {
		if p := changes.MapPath(h.editing); p.Found() {
			h.editing = p
		} else {
			h.cancelEdit()
		}
	}
}

// record feeds a delta to the open batch. A delta delivered outside a batch
// is applied on its own right away.
func (h *Host) record(delta func(b *table.Batch)) {
	if h.batch.Active() {
		delta(&h.batch)
		return
	}
	var lone table.Batch
	lone.Begin(nil)
	delta(&lone)
	changes, _ := lone.End(nil)
	h.follow(changes)
	h.refresh()
}

// InsertRows implements table.Widget.
func (h *Host) InsertRows(paths []table.IndexPath, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.InsertRows(paths) })
}

// DeleteRows implements table.Widget.
func (h *Host) DeleteRows(paths []table.IndexPath, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.DeleteRows(paths) })
}

// MoveRow implements table.Widget.
func (h *Host) MoveRow(from, to table.IndexPath) {
	h.record(func(b *table.Batch) { b.MoveRow(from, to) })
}

// ReloadRows implements table.Widget.
func (h *Host) ReloadRows(paths []table.IndexPath, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.ReloadRows(paths) })
}

// InsertSections implements table.Widget.
func (h *Host) InsertSections(indexes []int, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.InsertSections(indexes) })
}

// DeleteSections implements table.Widget.
func (h *Host) DeleteSections(indexes []int, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.DeleteSections(indexes) })
}

// MoveSection implements table.Widget.
func (h *Host) MoveSection(from, to int) {
	h.record(func(b *table.Batch) { b.MoveSection(from, to) })
}

// ReloadSections implements table.Widget.
func (h *Host) ReloadSections(indexes []int, _ table.RowAnimation) {
	h.record(func(b *table.Batch) { b.ReloadSections(indexes) })
}

// SelectRow implements table.Widget; the row's section is shown.
func (h *Host) SelectRow(p table.IndexPath, _ bool, _ table.ScrollPosition) {
	if !h.valid(p) {
		return
	}
	h.selected = p
	h.section = p.Section
	h.refresh()
}

// DeselectRow implements table.Widget.
func (h *Host) DeselectRow(p table.IndexPath, _ bool) {
	if h.selected == p {
		h.selected = table.NotFound
	}
}

// SelectedRow implements table.Widget.
func (h *Host) SelectedRow() table.IndexPath { return h.selected }

// ScrollToRow implements table.Widget by moving the cursor onto the row.
func (h *Host) ScrollToRow(p table.IndexPath, _ table.ScrollPosition, _ bool) {
	if !h.valid(p) {
		return
	}
	h.section = p.Section
	h.refresh()
	h.rows.Select(p.Row)
}

// DequeueReusableCell implements table.Widget.
func (h *Host) DequeueReusableCell(identifier string) cell.Cell {
	pool := h.pool[identifier]
	if len(pool) == 0 {
		return nil
	}
	c := pool[len(pool)-1]
	h.pool[identifier] = pool[:len(pool)-1]
	c.PrepareForReuse()
	return c
}

// RecycleCell implements table.Widget.
func (h *Host) RecycleCell(identifier string, c cell.Cell) {
	if identifier == "" || c == nil {
		return
	}
	h.pool[identifier] = append(h.pool[identifier], c)
}
