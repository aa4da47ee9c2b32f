package table

import (
	"fmt"
	"io"
	"sort"
	"time"

	"tableflip.dev/statictable/pkg/cell"
)

// Controller owns the data of one list widget and acts as its data source.
// A Grouped controller holds sections; a Plain controller holds items in a
// single implicit section.
type Controller struct {
	style    Style
	sections []*Section
	widget   Widget

	factory *Factory
	images  cell.ImageResolver
	prefs   Preferences

	handlers Handlers
	next     Responder
	first    Responder

	debugLog io.Writer
}

// Option configures a Controller.
type Option func(*Controller)

// WithFactory sets the factory used to materialize descriptor maps passed to
// SetData.
func WithFactory(f *Factory) Option {
	return func(c *Controller) { c.factory = f }
}

// WithImages sets the resolver for "*ImageName" cell properties.
func WithImages(r cell.ImageResolver) Option {
	return func(c *Controller) { c.images = r }
}

// Preferences stores the values of controls bound to a preference key.
type Preferences interface {
	// Preference returns the value stored under key.
	Preference(key string) (any, bool)
	SetPreference(key string, v any) error
}

// WithPreferences sets where items with a PrefKey load and save their
// control values.
func WithPreferences(p Preferences) Option {
	return func(c *Controller) { c.prefs = p }
}

// WithDebugWriter sets a writer for debug traces.
func WithDebugWriter(w io.Writer) Option {
	return func(c *Controller) { c.debugLog = w }
}

// NewController returns an empty controller of the given style.
func NewController(style Style, opts ...Option) *Controller {
	c := &Controller{
		style:    style,
		handlers: Handlers{},
	}
	if style == Plain {
		c.sections = []*Section{{anonymous: true, controller: c}}
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		c.factory = DefaultFactory()
	}
	return c
}

// Style returns the controller's style.
func (c *Controller) Style() Style { return c.style }

// SetDebugWriter sets a writer for debug traces.
func (c *Controller) SetDebugWriter(w io.Writer) { c.debugLog = w }

func (c *Controller) logf(format string, args ...any) {
	if c.debugLog == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(c.debugLog, "[%s] TABLE: %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Widget returns the attached widget, if any.
func (c *Controller) Widget() Widget { return c.widget }

// Attach installs the controller as w's data source and reloads it. The
// previously attached widget, if different, loses its data source.
func (c *Controller) Attach(w Widget) {
	if c.widget != nil && c.widget != w {
		c.widget.SetDataSource(nil)
	}
	c.widget = w
	if w == nil {
		return
	}
	w.SetDataSource(c)
	w.ReloadData()
}

// Data returns the top-level data: sections when grouped, items when plain.
func (c *Controller) Data() []any {
	if c.style == Plain {
		items := c.sections[0].items
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out
	}
	out := make([]any, len(c.sections))
	for i, s := range c.sections {
		out[i] = s
	}
	return out
}

// SetData replaces the top-level data and reloads the widget. Grouped
// controllers take *Section values and plain ones *Item values; either
// accepts descriptor maps, which are built through the controller's
// factory. Values of the wrong kind are skipped.
func (c *Controller) SetData(data []any) {
	if c.style == Plain {
		c.setItems(data)
	} else {
		c.setSections(data)
	}
	c.logf("SetData: %d top-level values, %d sections", len(data), len(c.sections))
	if c.widget != nil {
		c.widget.ReloadData()
	}
}

func (c *Controller) setItems(data []any) {
	items := make([]*Item, 0, len(data))
	for _, v := range data {
		switch v := v.(type) {
		case *Item:
			items = append(items, v)
		case map[string]any:
			items = append(items, c.factory.Item(v))
		default:
			c.logf("SetData: skipping %T in plain data", v)
		}
	}
	anon := c.sections[0]
	keep := make(map[*Item]bool, len(items))
	for _, it := range items {
		keep[it] = true
	}
	for _, it := range anon.items {
		if !keep[it] {
			it.detach(c.widget)
		}
	}
	// Detach without notifying; the whole widget is reloaded afterwards.
	anon.controller = nil
	anon.SetItems(items)
	anon.controller = c
}

func (c *Controller) setSections(data []any) {
	next := make([]*Section, 0, len(data))
	seen := make(map[*Section]bool, len(data))
	for _, v := range data {
		var s *Section
		switch v := v.(type) {
		case *Section:
			s = v
		case map[string]any:
			s = c.factory.Section(v)
		default:
			c.logf("SetData: skipping %T in grouped data", v)
			continue
		}
		if s == nil || seen[s] {
			continue
		}
		seen[s] = true
		next = append(next, s)
	}
	for _, s := range c.sections {
		if !seen[s] {
			c.releaseSection(s)
		}
	}
	for _, s := range next {
		if s.controller != c {
			c.adopt(s)
		}
	}
	c.sections = next
}

// adopt takes a section over from whatever controller holds it.
func (c *Controller) adopt(s *Section) {
	if prev := s.controller; prev != nil && prev != c {
		prev.removeSection(s, AnimationAutomatic)
	}
	s.controller = c
}

// Sections returns a copy of the sections. It is empty for a plain
// controller.
func (c *Controller) Sections() []*Section {
	if c.style == Plain {
		return nil
	}
	out := make([]*Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// NumberOfItems returns the number of top-level values: sections when
// grouped, items when plain.
func (c *Controller) NumberOfItems() int {
	if c.style == Plain {
		return len(c.sections[0].items)
	}
	return len(c.sections)
}

// SectionAtIndex returns the section at index, or nil when out of range or
// when the controller is plain.
func (c *Controller) SectionAtIndex(index int) *Section {
	if c.style == Plain || index < 0 || index >= len(c.sections) {
		return nil
	}
	return c.sections[index]
}

// SectionWithIdentifier returns the first section whose Identifier is id.
func (c *Controller) SectionWithIdentifier(id string) *Section {
	if c.style == Plain {
		return nil
	}
	for _, s := range c.sections {
		if s.Identifier == id {
			return s
		}
	}
	return nil
}

// IndexOfSection returns the index of s, or NotFoundIndex.
func (c *Controller) IndexOfSection(s *Section) int {
	if s == nil || s.anonymous {
		return NotFoundIndex
	}
	return c.sectionIndex(s)
}

func (c *Controller) sectionIndex(s *Section) int {
	for i, sec := range c.sections {
		if sec == s {
			return i
		}
	}
	return NotFoundIndex
}

func (c *Controller) sectionAt(index int) *Section {
	if index < 0 || index >= len(c.sections) {
		return nil
	}
	return c.sections[index]
}

// ItemAtIndexPath returns the item at p, or nil.
func (c *Controller) ItemAtIndexPath(p IndexPath) *Item {
	s := c.sectionAt(p.Section)
	if s == nil {
		return nil
	}
	return s.ItemAtIndex(p.Row)
}

// ItemWithIdentifier returns the first item, in section order, whose
// Identifier is id.
func (c *Controller) ItemWithIdentifier(id string) *Item {
	for _, s := range c.sections {
		if it := s.ItemWithIdentifier(id); it != nil {
			return it
		}
	}
	return nil
}

// ItemWithRepresentedObject returns the first item, in section order, whose
// RepresentedObject equals obj.
func (c *Controller) ItemWithRepresentedObject(obj any) *Item {
	for _, s := range c.sections {
		if it := s.ItemWithRepresentedObject(obj); it != nil {
			return it
		}
	}
	return nil
}

// IndexPathForItem returns where item currently lives, or NotFound.
func (c *Controller) IndexPathForItem(item *Item) IndexPath {
	if item == nil || item.parent == nil {
		return NotFound
	}
	section := c.sectionIndex(item.parent)
	if section < 0 {
		return NotFound
	}
	row := item.parent.IndexOfItem(item)
	if row < 0 {
		return NotFound
	}
	return Path(section, row)
}

// GlobalRow flattens p into a row index counting every row of the preceding
// sections. It returns NotFoundIndex for addresses that do not exist.
func (c *Controller) GlobalRow(p IndexPath) int {
	s := c.sectionAt(p.Section)
	if s == nil || p.Row < 0 || p.Row >= len(s.items) {
		return NotFoundIndex
	}
	n := 0
	for _, sec := range c.sections[:p.Section] {
		n += len(sec.items)
	}
	return n + p.Row
}

// IndexPathForGlobalRow is the inverse of GlobalRow.
func (c *Controller) IndexPathForGlobalRow(row int) IndexPath {
	if row < 0 {
		return NotFound
	}
	for i, s := range c.sections {
		if row < len(s.items) {
			return Path(i, row)
		}
		row -= len(s.items)
	}
	return NotFound
}

// PerformUpdates groups the structural mutations made by fn into one
// widget batch. Calls nest; the widget applies the batch when the outermost
// call returns.
func (c *Controller) PerformUpdates(fn func()) {
	if c.widget == nil {
		fn()
		return
	}
	c.widget.BeginUpdates()
	fn()
	c.widget.EndUpdates()
}

// InsertSections inserts sections[k] at indexes[k], indexes addressing the
// list as it grows. Sections held by another controller are removed from it
// first.
func (c *Controller) InsertSections(sections []*Section, indexes []int, animation RowAnimation) error {
	if c.style == Plain {
		return ErrPlainStyle
	}
	if len(sections) != len(indexes) {
		panic(fmt.Sprintf("table: InsertSections: %d sections for %d indexes", len(sections), len(indexes)))
	}
	type placement struct {
		index   int
		section *Section
	}
	pairs := make([]placement, len(sections))
	seen := make(map[*Section]bool, len(sections))
	for k, s := range sections {
		switch {
		case s == nil:
			panic(fmt.Sprintf("table: InsertSections: nil section at %d", k))
		case seen[s]:
			panic(fmt.Sprintf("table: InsertSections: section %d given twice", k))
		case s.controller == c:
			panic(fmt.Sprintf("table: InsertSections: section %d is already installed", k))
		}
		seen[s] = true
		pairs[k] = placement{index: indexes[k], section: s}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].index < pairs[b].index })
	for k, p := range pairs {
		limit := len(c.sections) + k
		if p.index < 0 || p.index > limit || (k > 0 && p.index == pairs[k-1].index) {
			outOfRange("InsertSections", p.index, limit+1)
		}
	}

	for _, p := range pairs {
		c.adopt(p.section)
	}
	c.PerformUpdates(func() {
		idx := make([]int, len(pairs))
		for k, p := range pairs {
			c.sections = insertAt(c.sections, p.index, p.section)
			idx[k] = p.index
		}
		c.logf("InsertSections: %v", idx)
		if c.widget != nil {
			c.widget.InsertSections(idx, animation)
		}
	})
	return nil
}

// InsertSection inserts one section at index.
func (c *Controller) InsertSection(s *Section, index int, animation RowAnimation) error {
	return c.InsertSections([]*Section{s}, []int{index}, animation)
}

// AppendSections inserts sections after the last section.
func (c *Controller) AppendSections(sections []*Section, animation RowAnimation) error {
	indexes := make([]int, len(sections))
	for k := range sections {
		indexes[k] = len(c.sections) + k
	}
	return c.InsertSections(sections, indexes, animation)
}

// RemoveSections removes the sections at indexes. Removed sections keep
// their items but lose the controller back-reference.
func (c *Controller) RemoveSections(indexes []int, animation RowAnimation) error {
	if c.style == Plain {
		return ErrPlainStyle
	}
	c.removeSections(indexes, animation)
	return nil
}

// removeSection takes s out of a grouped controller. It does nothing when
// s is not installed.
func (c *Controller) removeSection(s *Section, animation RowAnimation) {
	if c.style != Grouped {
		return
	}
	if idx := c.sectionIndex(s); idx >= 0 {
		c.removeSections([]int{idx}, animation)
	}
}

func (c *Controller) removeSections(indexes []int, animation RowAnimation) {
	idx := dedupe(indexes)
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	for _, i := range idx {
		if i < 0 || i >= len(c.sections) {
			outOfRange("RemoveSections", i, len(c.sections))
		}
	}
	c.PerformUpdates(func() {
		for _, i := range idx {
			s := c.sections[i]
			c.sections = removeAt(c.sections, i)
			c.releaseSection(s)
		}
		c.logf("RemoveSections: %v", idx)
		if c.widget != nil {
			c.widget.DeleteSections(idx, animation)
		}
	})
}

// RemoveSection removes the section at index.
func (c *Controller) RemoveSection(index int, animation RowAnimation) error {
	return c.RemoveSections([]int{index}, animation)
}

// releaseSection clears the section's back-reference and returns the cells
// of its items to the widget pool.
func (c *Controller) releaseSection(s *Section) {
	s.controller = nil
	for _, it := range s.items {
		if it.cell != nil && c.widget != nil && it.ReusesCells() {
			c.widget.RecycleCell(it.reuseIdentifier, it.cell)
			it.cell = nil
		}
	}
}

// MoveSection moves the section at index to newIndex.
func (c *Controller) MoveSection(index, newIndex int) error {
	if c.style == Plain {
		return ErrPlainStyle
	}
	n := len(c.sections)
	if index < 0 || index >= n {
		outOfRange("MoveSection", index, n)
	}
	if newIndex < 0 || newIndex >= n {
		outOfRange("MoveSection", newIndex, n)
	}
	if index == newIndex {
		return nil
	}
	c.PerformUpdates(func() {
		s := c.sections[index]
		c.sections = removeAt(c.sections, index)
		c.sections = insertAt(c.sections, newIndex, s)
		c.logf("MoveSection: %d -> %d", index, newIndex)
		if c.widget != nil {
			c.widget.MoveSection(index, newIndex)
		}
	})
	return nil
}

// InsertItems inserts items[k] at paths[k]. Paths in the same section follow
// the same rules as Section.InsertItems. Items already installed elsewhere
// in the controller leave their sections first, so paths address every
// section as it is without them.
func (c *Controller) InsertItems(items []*Item, paths []IndexPath, animation RowAnimation) {
	if len(items) != len(paths) {
		panic(fmt.Sprintf("table: InsertItems: %d items for %d paths", len(items), len(paths)))
	}
	groups := c.group("InsertItems", paths)
	leaving := make(map[*Section]int)
	seen := make(map[*Item]bool, len(items))
	for k, it := range items {
		switch {
		case it == nil:
			panic(fmt.Sprintf("table: InsertItems: nil item at %d", k))
		case seen[it]:
			panic(fmt.Sprintf("table: InsertItems: item %d given twice", k))
		}
		seen[it] = true
		if prev := it.parent; prev != nil && prev.controller == c && prev != c.sections[paths[k].Section] {
			leaving[prev]++
		}
	}
	checked := make(map[int][]insertion, len(groups))
	for section, ks := range groups {
		its := make([]*Item, len(ks))
		rows := make([]int, len(ks))
		for j, k := range ks {
			its[j], rows[j] = items[k], paths[k].Row
		}
		s := c.sections[section]
		checked[section] = s.checkInsert("InsertItems", its, rows, len(s.items)-leaving[s])
	}
	c.PerformUpdates(func() {
		release(items)
		var out []IndexPath
		for _, section := range sortedKeys(checked) {
			rows := c.sections[section].applyInsert(checked[section])
			out = append(out, pathsIn(section, rows)...)
		}
		if c.widget != nil {
			c.widget.InsertRows(out, animation)
		}
	})
}

// InsertItem inserts one item at p.
func (c *Controller) InsertItem(item *Item, p IndexPath, animation RowAnimation) {
	c.InsertItems([]*Item{item}, []IndexPath{p}, animation)
}

// RemoveItems removes the items at paths.
func (c *Controller) RemoveItems(paths []IndexPath, animation RowAnimation) {
	groups := c.group("RemoveItems", paths)
	checked := make(map[int][]int, len(groups))
	for section, ks := range groups {
		rows := make([]int, len(ks))
		for j, k := range ks {
			rows[j] = paths[k].Row
		}
		checked[section] = c.sections[section].checkRemove("RemoveItems", rows)
	}
	c.PerformUpdates(func() {
		var out []IndexPath
		for _, section := range sortedKeys(checked) {
			c.sections[section].applyRemove(checked[section], c.widget)
			out = append(out, pathsIn(section, checked[section])...)
		}
		if c.widget != nil {
			c.widget.DeleteRows(out, animation)
		}
	})
}

// RemoveItem removes the item at p.
func (c *Controller) RemoveItem(p IndexPath, animation RowAnimation) {
	c.RemoveItems([]IndexPath{p}, animation)
}

// MoveItem moves the item at from to to, which may be in another section.
// to addresses the destination after the item has been taken out.
func (c *Controller) MoveItem(from, to IndexPath) {
	src := c.sectionAt(from.Section)
	if src == nil {
		outOfRange("MoveItem", from.Section, len(c.sections))
	}
	dst := c.sectionAt(to.Section)
	if dst == nil {
		outOfRange("MoveItem", to.Section, len(c.sections))
	}
	if src == dst {
		src.MoveItem(from.Row, to.Row)
		return
	}
	if from.Row < 0 || from.Row >= len(src.items) {
		outOfRange("MoveItem", from.Row, len(src.items))
	}
	if to.Row < 0 || to.Row > len(dst.items) {
		outOfRange("MoveItem", to.Row, len(dst.items)+1)
	}
	c.PerformUpdates(func() {
		it := src.items[from.Row]
		src.items = removeAt(src.items, from.Row)
		dst.items = insertAt(dst.items, to.Row, it)
		it.parent = dst
		if c.widget != nil {
			c.widget.MoveRow(from, to)
		}
	})
}

// group validates the section of every path and buckets path positions by
// section.
func (c *Controller) group(op string, paths []IndexPath) map[int][]int {
	groups := make(map[int][]int)
	for k, p := range paths {
		if c.sectionAt(p.Section) == nil {
			outOfRange(op, p.Section, len(c.sections))
		}
		groups[p.Section] = append(groups[p.Section], k)
	}
	return groups
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (c *Controller) reloadItem(item *Item) {
	if c.widget == nil {
		return
	}
	p := c.IndexPathForItem(item)
	if !p.Found() {
		return
	}
	c.PerformUpdates(func() {
		c.widget.ReloadRows([]IndexPath{p}, AnimationNone)
	})
}

// SelectItem selects item's row in the widget.
func (c *Controller) SelectItem(item *Item, animated bool, position ScrollPosition) {
	if c.widget == nil {
		return
	}
	if p := c.IndexPathForItem(item); p.Found() {
		c.widget.SelectRow(p, animated, position)
	}
}

// DeselectItem deselects item's row.
func (c *Controller) DeselectItem(item *Item, animated bool) {
	if c.widget == nil {
		return
	}
	if p := c.IndexPathForItem(item); p.Found() {
		c.widget.DeselectRow(p, animated)
	}
}

// ScrollToItem scrolls the widget so item's row is visible.
func (c *Controller) ScrollToItem(item *Item, position ScrollPosition, animated bool) {
	if c.widget == nil {
		return
	}
	if p := c.IndexPathForItem(item); p.Found() {
		c.widget.ScrollToRow(p, position, animated)
	}
}

// SelectedItem returns the item of the selected row, or nil.
func (c *Controller) SelectedItem() *Item {
	if c.widget == nil {
		return nil
	}
	return c.ItemAtIndexPath(c.widget.SelectedRow())
}

// ClearSelection deselects whatever row is selected.
func (c *Controller) ClearSelection(animated bool) {
	if c.widget == nil {
		return
	}
	if p := c.widget.SelectedRow(); p.Found() {
		c.widget.DeselectRow(p, animated)
	}
}

// Handle registers fn for selector. Dispatched actions targeting the
// controller, or walking a responder chain through it, call fn.
func (c *Controller) Handle(selector string, fn func(*Item)) {
	c.handlers[selector] = fn
}

// Perform implements Receiver using the handlers registered with Handle.
func (c *Controller) Perform(selector string, item *Item) bool {
	ok := c.handlers.Perform(selector, item)
	c.logf("Perform %q handled=%t", selector, ok)
	return ok
}

// NextResponder implements Responder.
func (c *Controller) NextResponder() Responder { return c.next }

// SetNextResponder links the controller to the rest of the chain.
func (c *Controller) SetNextResponder(r Responder) { c.next = r }

// FirstResponder returns where TargetResponder actions start. It defaults
// to the controller itself.
func (c *Controller) FirstResponder() Responder {
	if c.first != nil {
		return c.first
	}
	return c
}

// SetFirstResponder sets where TargetResponder actions start. nil resets it
// to the controller.
func (c *Controller) SetFirstResponder(r Responder) { c.first = r }
