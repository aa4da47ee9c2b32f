package demo

import (
	"testing"

	"tableflip.dev/statictable/pkg/cell"
	"tableflip.dev/statictable/pkg/table"
)

func TestDemoExercisesEveryClass(t *testing.T) {
	c := Document().Controller()
	if c.NumberOfSections() != 5 {
		t.Fatalf("expected 5 sections, got %d", c.NumberOfSections())
	}

	seen := make(map[string]bool)
	for s := 0; s < c.NumberOfSections(); s++ {
		for r := 0; r < c.NumberOfRows(s); r++ {
			item := c.ItemAtIndexPath(table.Path(s, r))
			seen[item.Class().Name] = true
			if item.Cell() == nil {
				t.Fatalf("expected a cell at %v", table.Path(s, r))
			}
		}
	}
	for _, name := range []string{table.ClassNameItem, table.ClassNameSlider, table.ClassNameSwitch, table.ClassNameTextField, table.ClassNameTextView} {
		if !seen[name] {
			t.Fatalf("expected a %s row in the demo", name)
		}
	}

	wifi := c.ItemWithIdentifier("wifi").Cell().Base()
	if wifi.ImageView.Image == nil || wifi.ImageView.Image.Glyph != "⚙" {
		t.Fatalf("expected the gear glyph, got %+v", wifi.ImageView.Image)
	}
	pin := c.ItemWithIdentifier("pin").Cell().(cell.TextInputHolder).TextInputControl()
	if pin.KeyboardType != cell.KeyboardNumberPad || !pin.SecureTextEntry {
		t.Fatalf("expected a secure number pad, got %+v", pin)
	}
}
