package table

import (
	"github.com/spf13/cast"

	"tableflip.dev/statictable/pkg/cell"
)

// SectionClass customizes sections built from descriptors.
type SectionClass struct {
	Name      string
	Configure func(s *Section, dict map[string]any)
}

// Factory builds items and sections from descriptor maps. Descriptors
// degrade gracefully: unknown classes fall back to the default, unknown keys
// are ignored and values that cannot be coerced are skipped.
type Factory struct {
	items     map[string]*ItemClass
	cells     map[string]*CellClass
	sections  map[string]*SectionClass
	targets   map[string]Receiver
	callbacks map[string]func(*Item)
}

// NewFactory returns a factory knowing the built-in item classes.
func NewFactory() *Factory {
	f := &Factory{
		items:     make(map[string]*ItemClass),
		cells:     make(map[string]*CellClass),
		sections:  make(map[string]*SectionClass),
		targets:   make(map[string]Receiver),
		callbacks: make(map[string]func(*Item)),
	}
	for _, class := range []*ItemClass{ClassItem, ClassSlider, ClassSwitch, ClassTextField, ClassTextView} {
		f.RegisterClass(class)
	}
	for _, class := range []*CellClass{CellClassBasic, CellClassSlider, CellClassSwitch, CellClassTextField, CellClassTextView} {
		f.RegisterCellClass(class)
	}
	return f
}

var defaultFactory = NewFactory()

// DefaultFactory returns the factory controllers use unless given another.
func DefaultFactory() *Factory { return defaultFactory }

// RegisterClass makes class available under class.Name.
func (f *Factory) RegisterClass(class *ItemClass) {
	f.items[class.Name] = class
}

// RegisterCellClass makes class available to "cellClass" descriptor keys
// under class.Name.
func (f *Factory) RegisterCellClass(class *CellClass) {
	f.cells[class.Name] = class
}

// CellClass returns the cell class registered under name.
func (f *Factory) CellClass(name string) (*CellClass, bool) {
	class, ok := f.cells[name]
	return class, ok
}

// RegisterSectionClass makes class available under class.Name.
func (f *Factory) RegisterSectionClass(class *SectionClass) {
	f.sections[class.Name] = class
}

// RegisterTarget names a receiver for "*Target" descriptor keys.
func (f *Factory) RegisterTarget(name string, r Receiver) {
	f.targets[name] = r
}

// RegisterCallback names a closure for "*Block" descriptor keys.
func (f *Factory) RegisterCallback(name string, fn func(*Item)) {
	f.callbacks[name] = fn
}

// Class returns the item class registered under name, or ClassItem.
func (f *Factory) Class(name string) *ItemClass {
	if class, ok := f.items[name]; ok {
		return class
	}
	return ClassItem
}

// ClassNames lists the registered item classes.
func (f *Factory) ClassNames() []string {
	names := make([]string, 0, len(f.items))
	for name := range f.items {
		names = append(names, name)
	}
	return names
}

// Item builds an item from dict. Keys of the form "cell.*" that the item
// class understands become the item's cell properties.
func (f *Factory) Item(dict map[string]any) *Item {
	class := f.Class(cast.ToString(dict[KeyClass]))
	style := cell.StyleDefault
	if name, err := cast.ToStringE(dict[KeyCellStyle]); err == nil {
		if s, ok := cell.ParseStyle(name); ok {
			style = s
		}
	}
	item := NewItemOfClass(class, style)
	if cc, ok := f.CellClass(cast.ToString(dict[KeyCellClass])); ok {
		item.SetCellClass(cc)
	}

	if v, ok := stringValue(dict, KeyIdentifier); ok {
		item.Identifier = v
	}
	if v, ok := dict[KeyRepresentedObject]; ok {
		item.RepresentedObject = v
	}
	if v, ok := stringValue(dict, KeyPrefKey); ok {
		item.PrefKey = v
	}
	if v, ok := intValue(dict, KeyMinimumHeight); ok {
		item.MinimumHeight = v
	}
	if id, ok := stringValue(dict, KeyCellReuseIdentifier); ok {
		enabled := true
		if v, ok := boolValue(dict, KeyCellReuse); ok {
			enabled = v
		}
		item.SetCellReuse(id, enabled)
	}

	if v, ok := boolValue(dict, KeySelectable); ok {
		item.Selectable = v
	}
	if v, ok := stringValue(dict, KeySelectAction); ok {
		item.Selector = v
	}
	item.Target = f.target(dict[KeySelectActionTarget])
	item.OnSelect = f.callback(dict[KeySelectActionBlock])

	if v, ok := boolValue(dict, KeyEditable); ok {
		item.Editable = v
	}
	item.OnDelete = f.callback(dict[KeyDeleteBlock])

	if v, ok := stringValue(dict, KeyValueAction); ok {
		item.ValueSelector = v
	}
	item.ValueTarget = f.target(dict[KeyValueActionTarget])
	item.OnValueChange = f.callback(dict[KeyValueActionBlock])

	if v, ok := stringValue(dict, KeyReturnKeyAction); ok {
		item.ReturnKeySelector = v
	}
	item.ReturnKeyTarget = f.target(dict[KeyReturnKeyActionTarget])
	item.OnReturnKey = f.callback(dict[KeyReturnKeyActionBlock])

	for _, key := range class.Schema.Keys() {
		if v, ok := dict[key]; ok && v != nil {
			item.props[key] = v
		}
	}
	return item
}

// Section builds a section from dict. Elements of "items" may be descriptor
// maps or *Item values; anything else is skipped.
func (f *Factory) Section(dict map[string]any) *Section {
	s := NewSection()
	if v, ok := stringValue(dict, KeyIdentifier); ok {
		s.Identifier = v
	}
	if v, ok := stringValue(dict, KeyHeaderText); ok {
		s.HeaderText = v
	}
	if v, ok := stringValue(dict, KeyFooterText); ok {
		s.FooterText = v
	}
	if raw, ok := dict[KeyItems].([]any); ok {
		items := make([]*Item, 0, len(raw))
		for _, v := range raw {
			switch v := v.(type) {
			case *Item:
				items = append(items, v)
			case map[string]any:
				items = append(items, f.Item(v))
			case map[any]any:
				items = append(items, f.Item(cast.ToStringMap(v)))
			}
		}
		s.SetItems(items)
	}
	if class, ok := f.sections[cast.ToString(dict[KeyClass])]; ok && class.Configure != nil {
		class.Configure(s, dict)
	}
	return s
}

func (f *Factory) target(v any) Target {
	switch v := v.(type) {
	case nil:
		return nil
	case Target:
		return v
	case Receiver:
		return Explicit{Receiver: v}
	case string:
		switch v {
		case TargetNameController:
			return TargetController
		case TargetNameResponder:
			return TargetResponder
		case TargetNameSelf:
			return TargetSelf
		}
		if r, ok := f.targets[v]; ok {
			return Explicit{Receiver: r}
		}
	}
	return nil
}

func (f *Factory) callback(v any) func(*Item) {
	switch v := v.(type) {
	case func(*Item):
		return v
	case Callback:
		return v
	case string:
		return f.callbacks[v]
	}
	return nil
}

func stringValue(dict map[string]any, key string) (string, bool) {
	v, ok := dict[key]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

func intValue(dict map[string]any, key string) (int, bool) {
	v, ok := dict[key]
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	return n, err == nil
}

func boolValue(dict map[string]any, key string) (bool, bool) {
	v, ok := dict[key]
	if !ok || v == nil {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	return b, err == nil
}
