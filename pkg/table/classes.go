package table

import "tableflip.dev/statictable/pkg/cell"

// ItemClass describes a kind of item: the cell it builds and the cell
// properties it understands.
type ItemClass struct {
	Name    string
	NewCell func(style cell.Style, reuseIdentifier string) cell.Cell
	Schema  cell.Schema
	// Capture copies the live value of the cell's control back into the
	// property snapshot after the user changed it. Optional.
	Capture func(c cell.Cell, props map[string]any)
	// ValueKey is the cell property holding the control's value. Items
	// with a PrefKey persist it. Empty for classes without a control.
	ValueKey string
	// Handlers receive actions that target TargetSelf on items of the
	// class, after the item's own handlers.
	Handlers Handlers
}

// CellClass is a named cell constructor. An item given one builds its cell
// with it instead of with its item class.
type CellClass struct {
	Name    string
	NewCell func(style cell.Style, reuseIdentifier string) cell.Cell
}

// Built-in cell class names.
const (
	CellClassNameBasic     = "BasicCell"
	CellClassNameSlider    = "SliderCell"
	CellClassNameSwitch    = "SwitchCell"
	CellClassNameTextField = "TextFieldCell"
	CellClassNameTextView  = "TextViewCell"
)

// Built-in cell classes, one per built-in item class.
var (
	CellClassBasic = &CellClass{
		Name:    CellClassNameBasic,
		NewCell: func(style cell.Style, id string) cell.Cell { return cell.NewBasic(style, id) },
	}
	CellClassSlider = &CellClass{
		Name:    CellClassNameSlider,
		NewCell: func(style cell.Style, id string) cell.Cell { return cell.NewSliderCell(style, id) },
	}
	CellClassSwitch = &CellClass{
		Name:    CellClassNameSwitch,
		NewCell: func(style cell.Style, id string) cell.Cell { return cell.NewSwitchCell(style, id) },
	}
	CellClassTextField = &CellClass{
		Name:    CellClassNameTextField,
		NewCell: func(style cell.Style, id string) cell.Cell { return cell.NewTextFieldCell(style, id) },
	}
	CellClassTextView = &CellClass{
		Name:    CellClassNameTextView,
		NewCell: func(style cell.Style, id string) cell.Cell { return cell.NewTextViewCell(style, id) },
	}
)

// Built-in class names.
const (
	ClassNameItem      = "Item"
	ClassNameSlider    = "Slider"
	ClassNameSwitch    = "Switch"
	ClassNameTextField = "TextField"
	ClassNameTextView  = "TextView"
)

var (
	// ClassItem builds basic cells.
	ClassItem = &ItemClass{
		Name:    ClassNameItem,
		NewCell: CellClassBasic.NewCell,
		Schema:  cell.BasicSchema,
	}

	// ClassSlider builds cells carrying a slider.
	ClassSlider = &ItemClass{
		Name:    ClassNameSlider,
		NewCell: CellClassSlider.NewCell,
		Schema:  cell.SliderSchema,
		Capture: func(c cell.Cell, props map[string]any) {
			if h, ok := c.(cell.SliderHolder); ok {
				props[cell.KeySliderValue] = h.SliderControl().Value
			}
		},
		ValueKey: cell.KeySliderValue,
	}

	// ClassSwitch builds cells carrying an on/off switch.
	ClassSwitch = &ItemClass{
		Name:    ClassNameSwitch,
		NewCell: CellClassSwitch.NewCell,
		Schema:  cell.SwitchSchema,
		Capture: func(c cell.Cell, props map[string]any) {
			if h, ok := c.(cell.SwitchHolder); ok {
				props[cell.KeySwitchOn] = h.SwitchControl().On
			}
		},
		ValueKey: cell.KeySwitchOn,
	}

	// ClassTextField builds cells carrying a single line text input.
	ClassTextField = &ItemClass{
		Name:     ClassNameTextField,
		NewCell:  CellClassTextField.NewCell,
		Schema:   cell.TextFieldSchema,
		Capture:  captureText,
		ValueKey: cell.KeyInputText,
	}

	// ClassTextView builds cells carrying a multi line text input.
	ClassTextView = &ItemClass{
		Name:     ClassNameTextView,
		NewCell:  CellClassTextView.NewCell,
		Schema:   cell.TextViewSchema,
		Capture:  captureText,
		ValueKey: cell.KeyInputText,
	}
)

func captureText(c cell.Cell, props map[string]any) {
	if h, ok := c.(cell.TextInputHolder); ok {
		props[cell.KeyInputText] = h.TextInputControl().Text
	}
}

// NewSliderItem returns a slider item ranging over [min, max] at value.
func NewSliderItem(text string, min, max, value float64) *Item {
	item := NewItemOfClass(ClassSlider, cell.StyleDefault)
	item.props[cell.KeySliderLabelText] = text
	item.props[cell.KeySliderMinimumValue] = min
	item.props[cell.KeySliderMaximumValue] = max
	item.props[cell.KeySliderValue] = value
	return item
}

// NewSwitchItem returns a switch item.
func NewSwitchItem(text string, on bool) *Item {
	item := NewItemOfClass(ClassSwitch, cell.StyleDefault)
	item.props[cell.KeyText] = text
	item.props[cell.KeySwitchOn] = on
	return item
}

// NewTextFieldItem returns a single line text input item.
func NewTextFieldItem(placeholder, text string) *Item {
	item := NewItemOfClass(ClassTextField, cell.StyleDefault)
	item.props[cell.KeyInputPlaceholder] = placeholder
	if text != "" {
		item.props[cell.KeyInputText] = text
	}
	return item
}

// NewTextViewItem returns a multi line text input item bounded to
// [minLines, maxLines] lines. A maxLines of 0 leaves the height unbounded.
func NewTextViewItem(placeholder, text string, minLines, maxLines int) *Item {
	item := NewItemOfClass(ClassTextView, cell.StyleDefault)
	item.props[cell.KeyInputPlaceholder] = placeholder
	if text != "" {
		item.props[cell.KeyInputText] = text
	}
	item.props[cell.KeyInputMinHeightInLines] = minLines
	item.props[cell.KeyInputMaxHeightInLines] = maxLines
	return item
}
