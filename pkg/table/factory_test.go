package table

import (
	"testing"

	"tableflip.dev/statictable/pkg/cell"
)

func TestSliderDescriptorKeepsNativeDefaults(t *testing.T) {
	item := DefaultFactory().Item(map[string]any{
		KeyClass:                   ClassNameSlider,
		cell.KeySliderMinimumValue: 0,
		cell.KeySliderMaximumValue: 10,
	})

	sc, ok := item.Cell().(*cell.SliderCell)
	if !ok {
		t.Fatalf("expected a slider cell, got %T", item.Cell())
	}
	native := cell.NewSlider()
	s := sc.Slider
	if s.MinimumValue != 0 || s.MaximumValue != 10 {
		t.Fatalf("expected range [0,10], got [%v,%v]", s.MinimumValue, s.MaximumValue)
	}
	if s.Value != native.Value || s.Continuous != native.Continuous {
		t.Fatalf("expected unspecified properties at native defaults, got %+v", s)
	}
	if s.MinimumValueImage != nil || s.ThumbTintColor != native.ThumbTintColor {
		t.Fatalf("expected no images or tints, got %+v", s)
	}
}

func TestFactoryDegradesGracefully(t *testing.T) {
	item := DefaultFactory().Item(map[string]any{
		KeyClass:              "NoSuchClass",
		KeyCellStyle:          "bogus",
		KeySelectable:         "not a bool",
		KeyMinimumHeight:      "3",
		"unknown":             true,
		cell.KeyText:          "Hello",
		cell.KeyTextColor:     "#zzzzzz",
		cell.KeySliderValue:   5,
		cell.KeyAccessoryType: "checkmark",
	})

	if item.Class() != ClassItem || item.CellStyle() != cell.StyleDefault {
		t.Fatalf("expected default class and style, got %s/%v", item.Class().Name, item.CellStyle())
	}
	if !item.Selectable || item.MinimumHeight != 3 {
		t.Fatalf("unexpected flags selectable=%t height=%d", item.Selectable, item.MinimumHeight)
	}
	if _, ok := item.CellProperties()[cell.KeySliderValue]; ok {
		t.Fatalf("keys outside the class schema must be ignored")
	}
	b := item.Cell().Base()
	if b.TextLabel.Text != "Hello" || b.TextLabel.Color != "" || b.AccessoryType != cell.AccessoryCheckmark {
		t.Fatalf("unexpected cell %+v", b)
	}
}

func TestFactoryResolvesNamedTargetsAndCallbacks(t *testing.T) {
	f := NewFactory()
	spy := &spyReceiver{}
	deleted := 0
	f.RegisterTarget("router", spy)
	f.RegisterCallback("forget", func(*Item) { deleted++ })

	item := f.Item(map[string]any{
		KeySelectAction:         "open",
		KeySelectActionTarget:   "router",
		KeyEditable:             true,
		KeyDeleteBlock:          "forget",
		KeyValueActionTarget:    TargetNameResponder,
		KeyReturnKeyActionBlock: "missing",
	})

	item.PerformSelectionAction()
	if len(spy.selectors) != 1 || spy.selectors[0] != "open" {
		t.Fatalf("expected the named target to receive open, got %v", spy.selectors)
	}
	item.OnDelete(item)
	if deleted != 1 {
		t.Fatalf("expected the named delete callback to run")
	}
	if item.ValueTarget != TargetResponder {
		t.Fatalf("expected the responder sentinel, got %#v", item.ValueTarget)
	}
	if item.OnReturnKey != nil {
		t.Fatalf("unregistered callbacks must resolve to nil")
	}
}

func TestFactoryReuseConfiguration(t *testing.T) {
	f := DefaultFactory()
	pooled := f.Item(map[string]any{KeyCellReuseIdentifier: "row"})
	if !pooled.ReusesCells() || pooled.ReuseIdentifier() != "row" {
		t.Fatalf("expected reuse to default on when an identifier is given")
	}
	direct := f.Item(map[string]any{KeyCellReuseIdentifier: "row", KeyCellReuse: false})
	if direct.ReusesCells() {
		t.Fatalf("expected cellReuse false to bypass the pool")
	}
	none := f.Item(map[string]any{})
	if none.ReusesCells() {
		t.Fatalf("expected no reuse without an identifier")
	}
}

func TestFactorySection(t *testing.T) {
	f := NewFactory()
	f.RegisterSectionClass(&SectionClass{
		Name: "Loud",
		Configure: func(s *Section, _ map[string]any) {
			s.HeaderText = s.HeaderText + "!"
		},
	})
	existing := NewItemWithText("kept")
	s := f.Section(map[string]any{
		KeyClass:      "Loud",
		KeyIdentifier: "general",
		KeyHeaderText: "General",
		KeyFooterText: "Footer",
		KeyItems: []any{
			map[string]any{KeyIdentifier: "a"},
			existing,
			map[any]any{KeyIdentifier: "b"},
			42,
		},
	})

	if s.Identifier != "general" || s.HeaderText != "General!" || s.FooterText != "Footer" {
		t.Fatalf("unexpected section %+v", s)
	}
	if got := identifiers(s.Items()); got != "[a  b]" {
		t.Fatalf("expected [a  b], got %s", got)
	}
	if existing.Section() != s {
		t.Fatalf("existing items must be adopted")
	}
}

func TestTextViewDescriptor(t *testing.T) {
	item := DefaultFactory().Item(map[string]any{
		KeyClass:                      ClassNameTextView,
		cell.KeyInputPlaceholder:      "Notes",
		cell.KeyInputKeyboardType:     cell.KeyboardType("numberPad"),
		cell.KeyInputMinHeightInLines: 2,
		cell.KeyInputMaxHeightInLines: "4",
		cell.KeyInputSecureTextEntry:  "true",
	})
	tv, ok := item.Cell().(*cell.TextViewCell)
	if !ok {
		t.Fatalf("expected a text view cell, got %T", item.Cell())
	}
	in := tv.Input
	if in.Placeholder != "Notes" || in.KeyboardType != "numberPad" || !in.SecureTextEntry {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.MinHeightInLines != 2 || in.MaxHeightInLines != 4 {
		t.Fatalf("unexpected line bounds %d..%d", in.MinHeightInLines, in.MaxHeightInLines)
	}
}
