package table

import (
	"testing"

	"tableflip.dev/statictable/pkg/cell"
)

type spyReceiver struct {
	selectors []string
	items     []*Item
}

func (s *spyReceiver) Perform(selector string, item *Item) bool {
	s.selectors = append(s.selectors, selector)
	s.items = append(s.items, item)
	return true
}

func TestSelectorWinsOverCallback(t *testing.T) {
	spy := &spyReceiver{}
	callbacks := 0
	item := NewItemWithText("go")
	item.Selector = "open"
	item.Target = Explicit{Receiver: spy}
	item.OnSelect = func(*Item) { callbacks++ }

	item.PerformSelectionAction()

	if len(spy.selectors) != 1 || spy.selectors[0] != "open" || spy.items[0] != item {
		t.Fatalf("expected the spy to receive open once, got %v", spy.selectors)
	}
	if callbacks != 0 {
		t.Fatalf("expected the callback not to run, ran %d times", callbacks)
	}
}

func TestSelectionActionVariants(t *testing.T) {
	item := NewItemWithText("x")
	if _, ok := item.SelectionAction().(NoAction); !ok {
		t.Fatalf("expected NoAction by default, got %T", item.SelectionAction())
	}

	ran := 0
	item.SetSelectionAction(Callback(func(*Item) { ran++ }))
	item.PerformSelectionAction()
	if ran != 1 {
		t.Fatalf("expected the callback to run once, ran %d", ran)
	}

	item.Selectable = false
	item.PerformSelectionAction()
	if ran != 1 {
		t.Fatalf("unselectable items must not run their action")
	}

	item.SetSelectionAction(Dispatch{Selector: "open"})
	if item.OnSelect != nil || item.Selector != "open" {
		t.Fatalf("expected SetSelectionAction to replace the callback")
	}
}

func TestDispatchToControllerAndResponderChain(t *testing.T) {
	c := NewController(Plain)
	item := NewItemWithText("x")
	c.SetData([]any{item})

	var got []string
	c.Handle("toController", func(*Item) { got = append(got, "controller") })

	chained := &spyReceiver{}
	tail := &chainLink{Receiver: chained}
	first := &chainLink{Receiver: Handlers{}, next: c}
	c.SetNextResponder(tail)
	c.SetFirstResponder(first)

	item.Selector = "toController"
	item.PerformSelectionAction()

	item.Target = TargetResponder
	item.Selector = "deep"
	item.PerformSelectionAction()

	if len(got) != 1 {
		t.Fatalf("expected the controller handler to run once, got %v", got)
	}
	if len(chained.selectors) != 1 || chained.selectors[0] != "deep" {
		t.Fatalf("expected deep to walk the chain to the tail, got %v", chained.selectors)
	}

	detached := NewItemWithText("lonely")
	detached.Selector = "toController"
	detached.PerformSelectionAction()
	if len(got) != 1 {
		t.Fatalf("detached items must not reach any controller")
	}
}

type chainLink struct {
	Receiver
	next Responder
}

func (l *chainLink) NextResponder() Responder { return l.next }

func TestResponderChainStopsOnCycles(t *testing.T) {
	a := &chainLink{Receiver: Handlers{}}
	b := &chainLink{Receiver: Handlers{}, next: a}
	a.next = b
	if sendToChain(a, "nobody", nil) {
		t.Fatalf("expected an unhandled selector to report false")
	}
}

func TestCellIsLazyAndCached(t *testing.T) {
	item := NewItem(cell.StyleSubtitle, "Title", "Detail")
	if item.CellLoaded() {
		t.Fatalf("cell must not exist before it is asked for")
	}
	c := item.Cell()
	if !item.CellLoaded() || item.Cell() != c {
		t.Fatalf("expected the cell to be created once and cached")
	}
	b := c.Base()
	if b.Style != cell.StyleSubtitle || b.TextLabel.Text != "Title" || b.DetailTextLabel.Text != "Detail" {
		t.Fatalf("unexpected cell %+v", b)
	}

	item.SetCellProperty(cell.KeyTextColor, "#FF0000")
	if b.TextLabel.Color != cell.Color("#ff0000") {
		t.Fatalf("expected the loaded cell to receive the new color, got %q", b.TextLabel.Color)
	}
	item.SetCellProperty(cell.KeyTextColor, nil)
	if _, ok := item.CellProperties()[cell.KeyTextColor]; ok {
		t.Fatalf("expected nil to remove the property")
	}

	props := item.CellProperties()
	props[cell.KeyText] = "changed"
	if item.Text() != "Title" {
		t.Fatalf("CellProperties must return a copy")
	}
}

func TestReloadReappliesAndRedraws(t *testing.T) {
	c := NewController(Plain)
	w := newRecordingWidget()
	item := NewItemWithText("a")
	c.SetData([]any{item})
	c.Attach(w)
	cl := item.Cell()
	item.props[cell.KeyText] = "b"
	w.reset()

	item.Reload()

	if cl.Base().TextLabel.Text != "b" {
		t.Fatalf("expected the snapshot to be re-applied")
	}
	equalCalls(t, w.calls, "begin", "reloadRows [(0,0)]", "end")
}

func TestReuseGoesThroughThePool(t *testing.T) {
	c := NewController(Plain)
	w := newRecordingWidget()
	c.Attach(w)

	first := NewItemWithText("first")
	first.SetCellReuse("basic", true)
	second := NewItemWithText("second")
	second.SetCellReuse("basic", true)
	direct := NewItemWithText("direct")
	direct.SetCellReuse("basic", false)
	c.SetData([]any{first, second, direct})

	pooled := first.Cell()
	first.RemoveFromContainer(AnimationNone)
	if w.recycled != 1 || first.CellLoaded() {
		t.Fatalf("expected the removed item's cell to go back to the pool")
	}
	if got := second.Cell(); got != pooled {
		t.Fatalf("expected the pooled cell to be reused")
	}
	if got := second.Cell().Base().TextLabel.Text; got != "second" {
		t.Fatalf("reused cell shows %q", got)
	}

	direct.Cell()
	direct.RemoveFromContainer(AnimationNone)
	if w.recycled != 1 {
		t.Fatalf("items with reuse disabled must not recycle cells")
	}
}

func TestValueChangeCapturesControlState(t *testing.T) {
	c := NewController(Plain)
	item := NewSliderItem("Volume", 0, 10, 2)
	var seen float64
	item.OnValueChange = func(it *Item) {
		seen = it.CellProperty(cell.KeySliderValue).(float64)
	}
	c.SetData([]any{item})

	slider := c.CellForRow(Path(0, 0)).(cell.SliderHolder).SliderControl()
	slider.SetValue(7)
	c.ValueChanged(Path(0, 0))

	if seen != 7 {
		t.Fatalf("expected the callback to see 7, saw %v", seen)
	}

	returned := 0
	field := NewTextFieldItem("Name", "")
	field.OnReturnKey = func(*Item) { returned++ }
	c.SetData([]any{field})
	field.Cell().(cell.TextInputHolder).TextInputControl().Text = "Ada"
	c.ReturnKey(Path(0, 0))
	if returned != 1 || field.CellProperty(cell.KeyInputText) != "Ada" {
		t.Fatalf("expected the return key to capture the text and run once")
	}
}

func TestCommitDeleteRemovesThenNotifies(t *testing.T) {
	c := NewController(Plain)
	w := newRecordingWidget()
	items := makeItems("a", "b")
	items[1].Editable = true
	var deletedFrom *Controller = c
	items[1].OnDelete = func(it *Item) { deletedFrom = it.Controller() }
	c.SetData([]any{items[0], items[1]})
	c.Attach(w)

	if c.CanEditRow(Path(0, 0)) {
		t.Fatalf("item a is not editable")
	}
	c.CommitDelete(Path(0, 0))
	if c.NumberOfItems() != 2 {
		t.Fatalf("non-editable rows must not be deleted")
	}
	c.CommitDelete(Path(0, 1))
	if c.NumberOfItems() != 1 || deletedFrom != nil {
		t.Fatalf("expected the item to be removed before OnDelete ran")
	}
}

func TestDataSourceReportsItemFlags(t *testing.T) {
	c := NewController(Plain)
	item := NewItemWithText("a")
	item.MinimumHeight = 3
	item.Selectable = false
	c.SetData([]any{item})

	if c.HeightForRow(Path(0, 0)) != 3 {
		t.Fatalf("expected minimum height 3")
	}
	if c.CanSelectRow(Path(0, 0)) || c.CanSelectRow(Path(0, 4)) {
		t.Fatalf("expected rows to be unselectable")
	}
	if c.CellForRow(Path(3, 0)) != nil || c.NumberOfRows(3) != 0 {
		t.Fatalf("expected out of range addresses to be empty")
	}
}

type mapPreferences map[string]any

func (p mapPreferences) Preference(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func (p mapPreferences) SetPreference(key string, v any) error {
	p[key] = v
	return nil
}

func TestPrefKeyLoadsAndSavesControlValues(t *testing.T) {
	prefs := mapPreferences{"volume": 8.0}
	c := NewController(Plain, WithPreferences(prefs))
	volume := NewSliderItem("Volume", 0, 10, 2)
	volume.PrefKey = "volume"
	balance := NewSliderItem("Balance", 0, 10, 5)
	c.SetData([]any{volume, balance})

	slider := c.CellForRow(Path(0, 0)).(cell.SliderHolder).SliderControl()
	if slider.Value != 8 {
		t.Fatalf("expected the stored value 8, got %v", slider.Value)
	}
	slider.SetValue(3)
	c.ValueChanged(Path(0, 0))
	if prefs["volume"] != 3.0 {
		t.Fatalf("expected 3 to be saved, got %v", prefs["volume"])
	}

	c.CellForRow(Path(0, 1))
	c.ValueChanged(Path(0, 1))
	if len(prefs) != 1 {
		t.Fatalf("items without a prefKey must not be saved: %v", prefs)
	}

	detached := NewSwitchItem("Airplane Mode", true)
	detached.PrefKey = "volume"
	if !detached.Cell().(cell.SwitchHolder).SwitchControl().On {
		t.Fatalf("a detached item must keep its own value")
	}
}

func TestCellClassOverridesTheCellConstructor(t *testing.T) {
	f := NewFactory()
	item := f.Item(map[string]any{
		KeyClass:     ClassNameSwitch,
		KeyCellClass: CellClassNameBasic,
		cell.KeyText: "Plain",
	})
	if item.Class() != ClassSwitch || item.CellClass() != CellClassBasic {
		t.Fatalf("expected a switch item built with basic cells, got %v/%v", item.Class().Name, item.CellClass())
	}
	b, ok := item.Cell().(*cell.Basic)
	if !ok || b.TextLabel.Text != "Plain" {
		t.Fatalf("expected a configured basic cell, got %#v", item.Cell())
	}

	unknown := f.Item(map[string]any{KeyClass: ClassNameSwitch, KeyCellClass: "Nope"})
	if unknown.CellClass() != nil {
		t.Fatalf("unknown cell classes must be ignored")
	}
	if _, ok := unknown.Cell().(*cell.SwitchCell); !ok {
		t.Fatalf("expected the item class's own cell, got %#v", unknown.Cell())
	}
}

func TestDispatchToSelf(t *testing.T) {
	flips := 0
	toggle := &ItemClass{
		Name:     "Toggle",
		NewCell:  ClassItem.NewCell,
		Schema:   cell.BasicSchema,
		Handlers: Handlers{"flip": func(*Item) { flips++ }},
	}
	f := NewFactory()
	f.RegisterClass(toggle)
	item := f.Item(map[string]any{
		KeyClass:              "Toggle",
		KeySelectAction:       "flip",
		KeySelectActionTarget: TargetNameSelf,
	})
	if item.Target != TargetSelf {
		t.Fatalf("expected the self sentinel, got %#v", item.Target)
	}

	item.PerformSelectionAction()
	if flips != 1 {
		t.Fatalf("expected the class handler to run once, ran %d", flips)
	}

	own := 0
	item.Handle("flip", func(*Item) { own++ })
	item.PerformSelectionAction()
	if own != 1 || flips != 1 {
		t.Fatalf("expected the item's own handler to win, own=%d class=%d", own, flips)
	}

	plain := NewItemWithText("plain")
	plain.SetSelectionAction(Dispatch{Selector: "flip", Target: TargetSelf})
	plain.PerformSelectionAction()
	if own != 1 || flips != 1 {
		t.Fatalf("an item without handlers must ignore the action")
	}
}
