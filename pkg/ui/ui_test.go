package ui

import (
	"strings"
	"testing"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

func hosted(c *table.Controller) *Host {
	h := NewHost()
	c.Attach(h)
	return h
}

func TestSectionsAndRowsArePopulated(t *testing.T) {
	c := table.NewController(table.Grouped)
	c.SetData([]any{
		table.NewSectionWithHeader("General", table.NewItem(cell.StyleValue1, "Wi-Fi", "Home")),
		table.NewSectionWithItems(table.NewItemWithText("Version")),
	})
	h := hosted(c)

	if len(h.titles) != 2 || h.titles[0] != "General" || h.titles[1] != "Section 2" {
		t.Fatalf("expected section titles, got %q", h.titles)
	}
	if len(h.rowText) != 1 || h.rowText[0] != "Wi-Fi  Home" {
		t.Fatalf("expected the first section's rows, got %q", h.rowText)
	}

	h.indexes.Select(1)
	if h.section != 1 || len(h.rowText) != 1 || h.rowText[0] != "Version" {
		t.Fatalf("expected the second section to be shown, got %d %q", h.section, h.rowText)
	}
}

func TestRowTextFlattensControls(t *testing.T) {
	sw := table.NewSwitchItem("Airplane Mode", true)
	slider := table.NewSliderItem("Volume", 0, 10, 5)
	secret := table.NewTextFieldItem("Password", "hunter2")
	secret.SetCellProperty(cell.KeyInputSecureTextEntry, true)
	c := table.NewController(table.Plain)
	c.SetData([]any{sw, slider, secret})

	cases := map[*table.Item]string{
		sw:     "Airplane Mode  [on]",
		slider: "Volume  5 [0..10]",
		secret: "•••••••",
	}
	for item, want := range cases {
		if got := RowText(item.Cell()); !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestActivateSelectsTogglesAndEdits(t *testing.T) {
	open := table.NewItemWithText("Open")
	ran := 0
	open.OnSelect = func(*table.Item) { ran++ }
	sw := table.NewSwitchItem("Bluetooth", false)
	field := table.NewTextFieldItem("Name", "")
	returns := 0
	field.OnReturnKey = func(*table.Item) { returns++ }

	c := table.NewController(table.Plain)
	c.SetData([]any{open, sw, field})
	h := hosted(c)

	h.activate(0)
	if ran != 1 || h.SelectedRow() != table.Path(0, 0) {
		t.Fatalf("expected Open to be selected, ran=%d selected=%v", ran, h.SelectedRow())
	}

	h.activate(1)
	if sw.CellProperty(cell.KeySwitchOn) != true || !strings.Contains(h.rowText[1], "[on]") {
		t.Fatalf("expected the switch to toggle, got %q", h.rowText[1])
	}

	h.activate(2)
	if !h.Editing() {
		t.Fatalf("expected the text field to start editing")
	}
	h.commitEdit("Ada")
	if h.Editing() || returns != 1 || field.CellProperty(cell.KeyInputText) != "Ada" {
		t.Fatalf("expected Ada to be committed, editing=%t returns=%d", h.Editing(), returns)
	}
}

func TestSliderAndDelete(t *testing.T) {
	slider := table.NewSliderItem("Volume", 0, 10, 5)
	drop := table.NewItemWithText("Drop")
	drop.Editable = true
	c := table.NewController(table.Plain)
	c.SetData([]any{slider, drop})
	h := hosted(c)

	h.rows.Select(0)
	h.nudge(1)
	if got := slider.CellProperty(cell.KeySliderValue); got != 5.5 {
		t.Fatalf("expected 5.5, got %v", got)
	}

	h.deleteRow(0)
	if c.NumberOfItems() != 2 {
		t.Fatalf("non-editable rows must not be deleted")
	}
	h.deleteRow(1)
	if c.NumberOfItems() != 1 || len(h.rowText) != 1 {
		t.Fatalf("expected Drop to be deleted, items=%d rows=%q", c.NumberOfItems(), h.rowText)
	}
}

func TestBatchedInsertRefreshesOnce(t *testing.T) {
	s := table.NewSectionWithHeader("Inbox", table.NewItemWithText("first"))
	c := table.NewController(table.Grouped)
	c.SetData([]any{s})
	h := hosted(c)

	c.PerformUpdates(func() {
		s.AppendItems([]*table.Item{table.NewItemWithText("second")}, table.AnimationFade)
		if len(h.rowText) != 1 {
			t.Fatalf("expected no refresh inside a batch, got %q", h.rowText)
		}
	})
	if len(h.rowText) != 2 || h.rowText[1] != "second" {
		t.Fatalf("expected the inserted row after the batch, got %q", h.rowText)
	}
}

func TestSelectionFollowsItsRowThroughUpdates(t *testing.T) {
	a, b, last := table.NewItemWithText("a"), table.NewItemWithText("b"), table.NewItemWithText("c")
	c := table.NewController(table.Plain)
	c.SetData([]any{a, b, last})
	h := hosted(c)

	last.Select(false, table.ScrollNone)
	c.RemoveItem(table.Path(0, 0), table.AnimationNone)
	if c.SelectedItem() != last || h.SelectedRow() != table.Path(0, 1) {
		t.Fatalf("expected c to stay selected at (0,1), got %v", h.SelectedRow())
	}

	b.Select(false, table.ScrollNone)
	c.InsertItem(table.NewItemWithText("z"), table.Path(0, 0), table.AnimationNone)
	if c.SelectedItem() != b || h.SelectedRow() != table.Path(0, 1) {
		t.Fatalf("expected b to stay selected at (0,1), got %v", h.SelectedRow())
	}
	if h.rows.Selected() != 1 {
		t.Fatalf("expected the list cursor on b, got %d", h.rows.Selected())
	}
}

func TestShownSectionFollowsInsertedSections(t *testing.T) {
	c := table.NewController(table.Grouped)
	c.SetData([]any{
		table.NewSectionWithHeader("General", table.NewItemWithText("Wi-Fi")),
		table.NewSectionWithHeader("About", table.NewItemWithText("Version")),
	})
	h := hosted(c)
	h.indexes.Select(1)

	if err := c.InsertSection(table.NewSectionWithHeader("Top"), 0, table.AnimationNone); err != nil {
		t.Fatalf("InsertSection: %v", err)
	}
	if h.section != 2 || len(h.rowText) != 1 || h.rowText[0] != "Version" {
		t.Fatalf("expected About to stay shown, got %d %q", h.section, h.rowText)
	}
}
