package table

import (
	"fmt"
	"testing"

	"tableflip.dev/statictable/pkg/cell"
)

// recordingWidget logs every call it receives and validates batches the way
// a real host does.
type recordingWidget struct {
	ds       DataSource
	calls    []string
	batch    Batch
	selected IndexPath
	pool     map[string][]cell.Cell
	recycled int
	reloads  int
}

func newRecordingWidget() *recordingWidget {
	return &recordingWidget{selected: NotFound, pool: map[string][]cell.Cell{}}
}

func (w *recordingWidget) record(format string, args ...any) {
	w.calls = append(w.calls, fmt.Sprintf(format, args...))
}

func (w *recordingWidget) reset() { w.calls = nil }

func (w *recordingWidget) SetDataSource(ds DataSource) { w.ds = ds }
func (w *recordingWidget) ReloadData()                 { w.reloads++; w.record("reload") }
func (w *recordingWidget) BeginUpdates()               { w.batch.Begin(w.ds); w.record("begin") }
func (w *recordingWidget) EndUpdates() {
	w.record("end")
	w.batch.End(w.ds)
}

func (w *recordingWidget) InsertRows(paths []IndexPath, _ RowAnimation) {
	w.batch.InsertRows(paths)
	w.record("insertRows %v", paths)
}

func (w *recordingWidget) DeleteRows(paths []IndexPath, _ RowAnimation) {
	w.batch.DeleteRows(paths)
	w.record("deleteRows %v", paths)
}

func (w *recordingWidget) MoveRow(from, to IndexPath) {
	w.batch.MoveRow(from, to)
	w.record("moveRow %v %v", from, to)
}

func (w *recordingWidget) ReloadRows(paths []IndexPath, _ RowAnimation) {
	w.batch.ReloadRows(paths)
	w.record("reloadRows %v", paths)
}

func (w *recordingWidget) InsertSections(indexes []int, _ RowAnimation) {
	w.batch.InsertSections(indexes)
	w.record("insertSections %v", indexes)
}

func (w *recordingWidget) DeleteSections(indexes []int, _ RowAnimation) {
	w.batch.DeleteSections(indexes)
	w.record("deleteSections %v", indexes)
}

func (w *recordingWidget) MoveSection(from, to int) {
	w.batch.MoveSection(from, to)
	w.record("moveSection %d %d", from, to)
}

func (w *recordingWidget) ReloadSections(indexes []int, _ RowAnimation) {
	w.batch.ReloadSections(indexes)
	w.record("reloadSections %v", indexes)
}

func (w *recordingWidget) SelectRow(p IndexPath, _ bool, _ ScrollPosition) {
	w.selected = p
	w.record("select %v", p)
}

func (w *recordingWidget) DeselectRow(p IndexPath, _ bool) {
	if w.selected == p {
		w.selected = NotFound
	}
	w.record("deselect %v", p)
}

func (w *recordingWidget) SelectedRow() IndexPath { return w.selected }

func (w *recordingWidget) ScrollToRow(p IndexPath, _ ScrollPosition, _ bool) {
	w.record("scroll %v", p)
}

func (w *recordingWidget) DequeueReusableCell(id string) cell.Cell {
	cells := w.pool[id]
	if len(cells) == 0 {
		return nil
	}
	c := cells[len(cells)-1]
	w.pool[id] = cells[:len(cells)-1]
	c.PrepareForReuse()
	return c
}

func (w *recordingWidget) RecycleCell(id string, c cell.Cell) {
	w.recycled++
	w.pool[id] = append(w.pool[id], c)
}

func expectPanic[T any](t *testing.T, fn func()) T {
	t.Helper()
	var got T
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatalf("expected panic")
			}
			v, ok := r.(T)
			if !ok {
				t.Fatalf("expected panic value %T, got %T: %v", got, r, r)
			}
			got = v
		}()
		fn()
	}()
	return got
}

func equalCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected calls %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q (all: %q)", i, want[i], got[i], got)
		}
	}
}

func TestBatchRejectsUnaccountedRows(t *testing.T) {
	c := NewController(Grouped)
	w := newRecordingWidget()
	c.Attach(w)
	_ = c.AppendSections([]*Section{NewSectionWithItems(NewItemWithText("a"))}, AnimationNone)

	err := expectPanic[*InconsistencyError](t, func() {
		w.BeginUpdates()
		// Mutate behind the widget's back: no delta is reported.
		s := c.SectionAtIndex(0)
		s.items = append(s.items, NewItemWithText("b"))
		w.EndUpdates()
	})
	if err.Section != 0 || err.Before != 1 || err.After != 2 {
		t.Fatalf("unexpected inconsistency %+v", err)
	}
}

func TestBatchAcceptsSectionMoveWithRowChanges(t *testing.T) {
	c := NewController(Grouped)
	w := newRecordingWidget()
	c.Attach(w)
	a := NewSectionWithItems(NewItemWithText("a1"))
	b := NewSectionWithItems(NewItemWithText("b1"), NewItemWithText("b2"))
	_ = c.AppendSections([]*Section{a, b}, AnimationNone)

	c.PerformUpdates(func() {
		_ = c.MoveSection(0, 1)
		a.AppendItems([]*Item{NewItemWithText("a2")}, AnimationNone)
	})
	if got := c.NumberOfRows(1); got != 2 {
		t.Fatalf("expected moved section to hold 2 rows, got %d", got)
	}
}

func TestBatchNests(t *testing.T) {
	var b Batch
	b.Begin(nil)
	b.Begin(nil)
	b.InsertRows([]IndexPath{Path(0, 0)})
	if _, done := b.End(nil); done {
		t.Fatalf("inner End must not commit")
	}
	changes, done := b.End(nil)
	if !done {
		t.Fatalf("outer End must commit")
	}
	if len(changes.InsertedRows) != 1 || changes.Empty() {
		t.Fatalf("unexpected changes %+v", changes)
	}
	if b.Active() {
		t.Fatalf("batch still active after commit")
	}
}

func TestChangesMapPathFollowsRows(t *testing.T) {
	var b Batch
	b.Begin(nil)
	b.DeleteRows([]IndexPath{Path(0, 0)})
	b.InsertRows([]IndexPath{Path(1, 0)})
	b.MoveRow(Path(0, 3), Path(1, 2))
	changes, _ := b.End(nil)

	cases := map[IndexPath]IndexPath{
		Path(0, 0): NotFound,
		Path(0, 2): Path(0, 1),
		Path(0, 3): Path(1, 2),
		Path(1, 0): Path(1, 1),
		Path(1, 1): Path(1, 3),
		NotFound:   NotFound,
	}
	for from, want := range cases {
		if got := changes.MapPath(from); got != want {
			t.Fatalf("expected %v to map to %v, got %v", from, want, got)
		}
	}
}

func TestChangesMapPathFollowsSections(t *testing.T) {
	var b Batch
	b.Begin(nil)
	b.DeleteSections([]int{0})
	b.InsertSections([]int{0})
	b.MoveSection(2, 3)
	changes, _ := b.End(nil)

	if got := changes.MapPath(Path(0, 4)); got != NotFound {
		t.Fatalf("expected rows of a deleted section to vanish, got %v", got)
	}
	if got := changes.MapPath(Path(1, 4)); got != Path(1, 4) {
		t.Fatalf("expected (1,4) to stay behind the inserted section, got %v", got)
	}
	if got := changes.MapPath(Path(2, 0)); got != Path(3, 0) {
		t.Fatalf("expected the moved section's row at (3,0), got %v", got)
	}
	if got := changes.MapSection(3); got != 2 {
		t.Fatalf("expected section 3 to shift to 2, got %d", got)
	}
}
