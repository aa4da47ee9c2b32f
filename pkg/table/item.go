package table

import (
	"github.com/spf13/cast"

	"tableflip.dev/statictable/pkg/cell"
)

// Item describes one row: how its cell is built and configured and what
// happens when the row is selected, edited or its control fires.
type Item struct {
	// Identifier names the item for lookups. It need not be unique; lookups
	// return the first match.
	Identifier string
	// RepresentedObject carries arbitrary caller data, compared by equality
	// in ItemWithRepresentedObject.
	RepresentedObject any

	// MinimumHeight is the minimum row height in lines. Zero lets the
	// widget measure the cell.
	MinimumHeight int

	Selectable bool
	// Selector and Target describe a dispatched selection action. When
	// Selector is set it takes precedence over OnSelect.
	Selector string
	Target   Target
	OnSelect func(*Item)

	Editable bool
	// OnDelete runs after the user deleted the row and it has been removed.
	OnDelete func(*Item)

	// ValueSelector/ValueTarget/OnValueChange fire when the control of an
	// input cell changes value; same precedence rule as selection.
	ValueSelector string
	ValueTarget   Target
	OnValueChange func(*Item)

	// ReturnKeySelector/ReturnKeyTarget/OnReturnKey fire when a text input
	// commits with return.
	ReturnKeySelector string
	ReturnKeyTarget   Target
	OnReturnKey       func(*Item)

	// PrefKey binds the value of the item's control to the controller's
	// preferences. The stored value is loaded when the cell is built and
	// written back whenever the control changes.
	PrefKey string

	class           *ItemClass
	cellClass       *CellClass
	handlers        Handlers
	cellStyle       cell.Style
	reuseIdentifier string
	reuse           bool
	props           map[string]any
	cell            cell.Cell

	// parent is nil while detached. For a plain controller it is the
	// controller's anonymous section.
	parent *Section
}

// NewItem returns a basic item showing text and detail text.
func NewItem(style cell.Style, text, detailText string) *Item {
	item := NewItemOfClass(ClassItem, style)
	if text != "" {
		item.props[cell.KeyText] = text
	}
	if detailText != "" {
		item.props[cell.KeyDetailText] = detailText
	}
	return item
}

// NewItemWithText returns a default style item showing text.
func NewItemWithText(text string) *Item {
	return NewItem(cell.StyleDefault, text, "")
}

// NewItemOfClass returns an empty item of the given class.
func NewItemOfClass(class *ItemClass, style cell.Style) *Item {
	if class == nil {
		class = ClassItem
	}
	return &Item{
		Selectable: true,
		class:      class,
		cellStyle:  style,
		props:      make(map[string]any),
	}
}

// Class returns the item class that builds and configures the cell.
func (i *Item) Class() *ItemClass { return i.class }

// CellClass returns the cell class that overrides the item class's cell
// constructor, or nil.
func (i *Item) CellClass() *CellClass { return i.cellClass }

// SetCellClass makes the item build its cell with cc instead of its item
// class. The item class still configures the cell. A nil cc restores the
// item class's constructor; a loaded cell is kept until it is rebuilt.
func (i *Item) SetCellClass(cc *CellClass) { i.cellClass = cc }

// CellStyle returns the style the cell is created with.
func (i *Item) CellStyle() cell.Style { return i.cellStyle }

// ReuseIdentifier returns the pool identifier for the item's cell.
func (i *Item) ReuseIdentifier() string { return i.reuseIdentifier }

// ReusesCells reports whether the cell is taken from and returned to the
// widget's reuse pool.
func (i *Item) ReusesCells() bool { return i.reuse && i.reuseIdentifier != "" }

// SetCellReuse configures pooling explicitly. With enabled false the cell is
// always constructed directly from the item class, even when an identifier
// is set.
func (i *Item) SetCellReuse(identifier string, enabled bool) {
	i.reuseIdentifier = identifier
	i.reuse = enabled
}

// Cell returns the item's cell, creating and configuring it on first use.
// Later calls return the cached cell without re-applying properties.
func (i *Item) Cell() cell.Cell {
	if i.cell != nil {
		return i.cell
	}
	var c cell.Cell
	if i.ReusesCells() {
		if w := i.widget(); w != nil {
			c = w.DequeueReusableCell(i.reuseIdentifier)
		}
	}
	if c == nil {
		c = i.newCell()
	}
	i.loadPreference()
	cell.Apply(c, i.class.Schema, i.props, i.images())
	i.cell = c
	return c
}

func (i *Item) newCell() cell.Cell {
	if i.cellClass != nil && i.cellClass.NewCell != nil {
		return i.cellClass.NewCell(i.cellStyle, i.reuseIdentifier)
	}
	return i.class.NewCell(i.cellStyle, i.reuseIdentifier)
}

// CellLoaded reports whether the cell has been created.
func (i *Item) CellLoaded() bool { return i.cell != nil }

// CellProperties returns a copy of the property snapshot applied to the cell.
func (i *Item) CellProperties() map[string]any {
	out := make(map[string]any, len(i.props))
	for k, v := range i.props {
		out[k] = v
	}
	return out
}

// CellProperty returns a single value of the property snapshot.
func (i *Item) CellProperty(key string) any {
	return i.props[key]
}

// SetCellProperty stores v under key and, when the cell is loaded, writes it
// onto the cell. A nil v removes the key from the snapshot without touching
// the cell. Call Reload to have the widget redraw the row.
func (i *Item) SetCellProperty(key string, v any) {
	if v == nil {
		delete(i.props, key)
		return
	}
	i.props[key] = v
	if i.cell != nil {
		cell.ApplyKey(i.cell, i.class.Schema, key, i.props, i.images())
	}
}

// SetCellProperties merges props into the snapshot.
func (i *Item) SetCellProperties(props map[string]any) {
	for _, key := range i.class.Schema.Keys() {
		if v, ok := props[key]; ok {
			i.SetCellProperty(key, v)
		}
	}
}

// Text returns the text label property.
func (i *Item) Text() string { return cast.ToString(i.props[cell.KeyText]) }

// DetailText returns the detail text label property.
func (i *Item) DetailText() string { return cast.ToString(i.props[cell.KeyDetailText]) }

// Reload re-applies the whole property snapshot to a loaded cell and asks
// the widget to redraw the row.
func (i *Item) Reload() {
	if i.cell != nil {
		cell.Apply(i.cell, i.class.Schema, i.props, i.images())
	}
	c := i.Controller()
	if c == nil {
		return
	}
	c.reloadItem(i)
}

// SelectionAction returns the action run when the row is selected.
func (i *Item) SelectionAction() Action {
	return actionFor(i.Selector, i.Target, i.OnSelect)
}

// SetSelectionAction replaces the selection action.
func (i *Item) SetSelectionAction(a Action) {
	i.Selector, i.Target, i.OnSelect = "", nil, nil
	switch a := a.(type) {
	case Dispatch:
		i.Selector, i.Target = a.Selector, a.Target
	case Callback:
		i.OnSelect = a
	}
}

// PerformSelectionAction runs the selection action when the item is
// selectable.
func (i *Item) PerformSelectionAction() {
	if !i.Selectable {
		return
	}
	i.SelectionAction().perform(i)
}

// ValueAction returns the action run when the item's control changes.
func (i *Item) ValueAction() Action {
	return actionFor(i.ValueSelector, i.ValueTarget, i.OnValueChange)
}

// ReturnKeyAction returns the action run when a text input commits.
func (i *Item) ReturnKeyAction() Action {
	return actionFor(i.ReturnKeySelector, i.ReturnKeyTarget, i.OnReturnKey)
}

// SendValueChanged captures the control's value into the property snapshot
// and runs the value action.
func (i *Item) SendValueChanged() {
	i.capture()
	i.savePreference()
	i.ValueAction().perform(i)
}

// SendReturnKey captures the control's value and runs the return key action.
func (i *Item) SendReturnKey() {
	i.capture()
	i.savePreference()
	i.ReturnKeyAction().perform(i)
}

// Handle registers fn for selector on the item itself. Actions targeting
// TargetSelf reach it.
func (i *Item) Handle(selector string, fn func(*Item)) {
	if i.handlers == nil {
		i.handlers = Handlers{}
	}
	i.handlers[selector] = fn
}

// Perform implements Receiver. Handlers registered on the item are tried
// before those of its class.
func (i *Item) Perform(selector string, item *Item) bool {
	if i.handlers.Perform(selector, item) {
		return true
	}
	return i.class.Handlers.Perform(selector, item)
}

func (i *Item) capture() {
	if i.cell == nil || i.class.Capture == nil {
		return
	}
	i.class.Capture(i.cell, i.props)
}

// Section returns the enclosing section, or nil when the item is detached
// or held directly by a plain controller.
func (i *Item) Section() *Section {
	if i.parent == nil || i.parent.anonymous {
		return nil
	}
	return i.parent
}

// Controller returns the controller the item is installed in, if any.
func (i *Item) Controller() *Controller {
	if i.parent == nil {
		return nil
	}
	return i.parent.controller
}

// IndexPath searches the controller's live data for the item. It is O(n)
// and returns NotFound when the item is not installed.
func (i *Item) IndexPath() IndexPath {
	c := i.Controller()
	if c == nil {
		return NotFound
	}
	return c.IndexPathForItem(i)
}

// Select selects the item's row in the widget.
func (i *Item) Select(animated bool, position ScrollPosition) {
	if c := i.Controller(); c != nil {
		c.SelectItem(i, animated, position)
	}
}

// Deselect deselects the item's row. It does nothing when detached.
func (i *Item) Deselect(animated bool) {
	if c := i.Controller(); c != nil {
		c.DeselectItem(i, animated)
	}
}

// ScrollToPosition scrolls the widget so the row is visible.
func (i *Item) ScrollToPosition(position ScrollPosition, animated bool) {
	if c := i.Controller(); c != nil {
		c.ScrollToItem(i, position, animated)
	}
}

// RemoveFromContainer removes the item from its section with the given
// animation. It does nothing when detached.
func (i *Item) RemoveFromContainer(animation RowAnimation) {
	if i.parent == nil {
		return
	}
	idx := i.parent.IndexOfItem(i)
	if idx < 0 {
		return
	}
	i.parent.RemoveItems([]int{idx}, animation)
}

func (i *Item) widget() Widget {
	if c := i.Controller(); c != nil {
		return c.widget
	}
	return nil
}

func (i *Item) preferences() Preferences {
	if c := i.Controller(); c != nil {
		return c.prefs
	}
	return nil
}

func (i *Item) loadPreference() {
	prefs := i.preferences()
	if prefs == nil || i.PrefKey == "" || i.class.ValueKey == "" {
		return
	}
	if v, ok := prefs.Preference(i.PrefKey); ok && v != nil {
		i.props[i.class.ValueKey] = v
	}
}

func (i *Item) savePreference() {
	prefs := i.preferences()
	if prefs == nil || i.PrefKey == "" || i.class.ValueKey == "" {
		return
	}
	v, ok := i.props[i.class.ValueKey]
	if !ok {
		return
	}
	if err := prefs.SetPreference(i.PrefKey, v); err != nil {
		i.Controller().logf("SetPreference %q: %v", i.PrefKey, err)
	}
}

func (i *Item) images() cell.ImageResolver {
	if c := i.Controller(); c != nil && c.images != nil {
		return c.images
	}
	return defaultImages
}

// detach clears the back-reference and releases the cell, handing it back to
// w's pool when the item reuses cells.
func (i *Item) detach(w Widget) {
	i.parent = nil
	if i.cell == nil {
		return
	}
	if w != nil && i.ReusesCells() {
		w.RecycleCell(i.reuseIdentifier, i.cell)
	}
	i.cell = nil
}

var defaultImages cell.ImageResolver = cell.DefaultCatalog()
