package table

import (
	"fmt"
	"sort"
)

// Section is an ordered group of items with optional header and footer
// text. An item belongs to at most one section at a time.
type Section struct {
	Identifier string
	HeaderText string
	FooterText string

	items      []*Item
	controller *Controller
	// anonymous marks the single implicit section of a plain controller.
	anonymous bool
}

// NewSection returns an empty section.
func NewSection() *Section {
	return &Section{}
}

// NewSectionWithItems returns a section holding items.
func NewSectionWithItems(items ...*Item) *Section {
	s := &Section{}
	s.SetItems(items)
	return s
}

// NewSectionWithHeader returns a section with header text holding items.
func NewSectionWithHeader(header string, items ...*Item) *Section {
	s := NewSectionWithItems(items...)
	s.HeaderText = header
	return s
}

// Controller returns the controller the section is installed in, if any.
func (s *Section) Controller() *Controller { return s.controller }

// Items returns a copy of the section's items.
func (s *Section) Items() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// NumberOfItems returns the number of items.
func (s *Section) NumberOfItems() int { return len(s.items) }

// SetItems replaces the section's items. Items no longer present are
// detached, items held by another section are removed from it first and
// duplicates are dropped. A live section is reloaded as a whole.
func (s *Section) SetItems(items []*Item) {
	keep := make(map[*Item]bool, len(items))
	next := make([]*Item, 0, len(items))
	for _, it := range items {
		if it == nil || keep[it] {
			continue
		}
		keep[it] = true
		next = append(next, it)
	}

	w := s.widget()
	for _, it := range s.items {
		if !keep[it] {
			it.detach(w)
		}
	}
	var incoming []*Item
	for _, it := range next {
		if it.parent != s {
			incoming = append(incoming, it)
		}
	}
	release(incoming)
	for _, it := range next {
		it.parent = s
	}
	s.items = next

	if w != nil {
		if idx := s.controller.sectionIndex(s); idx >= 0 {
			s.controller.PerformUpdates(func() {
				w.ReloadSections([]int{idx}, AnimationAutomatic)
			})
		}
	}
}

// ItemAtIndex returns the item at index, or nil when out of range.
func (s *Section) ItemAtIndex(index int) *Item {
	if index < 0 || index >= len(s.items) {
		return nil
	}
	return s.items[index]
}

// IndexOfItem returns the index of item, or NotFoundIndex.
func (s *Section) IndexOfItem(item *Item) int {
	for i, it := range s.items {
		if it == item {
			return i
		}
	}
	return NotFoundIndex
}

// ItemWithIdentifier returns the first item whose Identifier is id.
func (s *Section) ItemWithIdentifier(id string) *Item {
	for _, it := range s.items {
		if it.Identifier == id {
			return it
		}
	}
	return nil
}

// ItemWithRepresentedObject returns the first item whose RepresentedObject
// equals obj.
func (s *Section) ItemWithRepresentedObject(obj any) *Item {
	for _, it := range s.items {
		if objectsEqual(it.RepresentedObject, obj) {
			return it
		}
	}
	return nil
}

// Index returns the section's position in its controller, or NotFoundIndex.
func (s *Section) Index() int {
	if s.controller == nil {
		return NotFoundIndex
	}
	return s.controller.sectionIndex(s)
}

// InsertItems inserts items[k] at indexes[k]. Indexes address the section as
// it grows: applied in ascending order, each must be at most the number of
// items present at that point. Out of range indexes panic with *RangeError.
func (s *Section) InsertItems(items []*Item, indexes []int, animation RowAnimation) {
	pairs := s.checkInsert("InsertItems", items, indexes, len(s.items))
	s.perform(func(w Widget, section int) {
		release(items)
		rows := s.applyInsert(pairs)
		if w != nil {
			w.InsertRows(pathsIn(section, rows), animation)
		}
	})
}

// InsertItem inserts one item at index.
func (s *Section) InsertItem(item *Item, index int, animation RowAnimation) {
	s.InsertItems([]*Item{item}, []int{index}, animation)
}

// AppendItems inserts items after the last item.
func (s *Section) AppendItems(items []*Item, animation RowAnimation) {
	indexes := make([]int, len(items))
	for k := range items {
		indexes[k] = len(s.items) + k
	}
	s.InsertItems(items, indexes, animation)
}

// RemoveItems removes the items at indexes, which address the section
// before removal. Duplicates are ignored; an out of range index panics with
// *RangeError and leaves the section untouched.
func (s *Section) RemoveItems(indexes []int, animation RowAnimation) {
	rows := s.checkRemove("RemoveItems", indexes)
	s.perform(func(w Widget, section int) {
		s.applyRemove(rows, w)
		if w != nil {
			w.DeleteRows(pathsIn(section, rows), animation)
		}
	})
}

// RemoveItem removes the item at index.
func (s *Section) RemoveItem(index int, animation RowAnimation) {
	s.RemoveItems([]int{index}, animation)
}

// MoveItem moves the item at index to newIndex. Both must address existing
// items.
func (s *Section) MoveItem(index, newIndex int) {
	n := len(s.items)
	if index < 0 || index >= n {
		outOfRange("MoveItem", index, n)
	}
	if newIndex < 0 || newIndex >= n {
		outOfRange("MoveItem", newIndex, n)
	}
	if index == newIndex {
		return
	}
	s.perform(func(w Widget, section int) {
		it := s.items[index]
		s.items = removeAt(s.items, index)
		s.items = insertAt(s.items, newIndex, it)
		if w != nil {
			w.MoveRow(Path(section, index), Path(section, newIndex))
		}
	})
}

// RemoveFromContainer removes the section from its controller.
func (s *Section) RemoveFromContainer(animation RowAnimation) {
	if s.controller == nil || s.anonymous {
		return
	}
	s.controller.removeSection(s, animation)
}

// perform runs fn inside an update batch when the section is live. fn gets a
// nil widget otherwise.
func (s *Section) perform(fn func(w Widget, section int)) {
	w := s.widget()
	if w == nil {
		fn(nil, NotFoundIndex)
		return
	}
	section := s.controller.sectionIndex(s)
	s.controller.PerformUpdates(func() { fn(w, section) })
}

func (s *Section) widget() Widget {
	if s.controller == nil {
		return nil
	}
	return s.controller.widget
}

// release takes items out of the sections holding them. Each section gets
// a single removal so its deletions address the rows as they were.
func release(items []*Item) {
	rows := make(map[*Section][]int)
	var order []*Section
	for _, it := range items {
		if it == nil || it.parent == nil {
			continue
		}
		prev := it.parent
		idx := prev.IndexOfItem(it)
		if idx < 0 {
			continue
		}
		if _, ok := rows[prev]; !ok {
			order = append(order, prev)
		}
		rows[prev] = append(rows[prev], idx)
	}
	for _, prev := range order {
		prev.RemoveItems(rows[prev], AnimationAutomatic)
	}
}

type insertion struct {
	index int
	item  *Item
}

// checkInsert validates an insertion against count, the number of items the
// section holds once the inserted items have left their old sections, and
// returns it sorted by index. It panics before anything is mutated.
func (s *Section) checkInsert(op string, items []*Item, indexes []int, count int) []insertion {
	if len(items) != len(indexes) {
		panic(fmt.Sprintf("table: %s: %d items for %d indexes", op, len(items), len(indexes)))
	}
	pairs := make([]insertion, len(items))
	seen := make(map[*Item]bool, len(items))
	for k, it := range items {
		switch {
		case it == nil:
			panic(fmt.Sprintf("table: %s: nil item at %d", op, k))
		case seen[it]:
			panic(fmt.Sprintf("table: %s: item %d given twice", op, k))
		case it.parent == s:
			panic(fmt.Sprintf("table: %s: item %d is already in the section", op, k))
		}
		seen[it] = true
		pairs[k] = insertion{index: indexes[k], item: it}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].index < pairs[b].index })
	for k, p := range pairs {
		limit := count + k
		if p.index < 0 || p.index > limit || (k > 0 && p.index == pairs[k-1].index) {
			outOfRange(op, p.index, limit+1)
		}
	}
	return pairs
}

// applyInsert inserts the validated pairs, whose items must already be
// released, and returns the rows they landed on.
func (s *Section) applyInsert(pairs []insertion) []int {
	rows := make([]int, len(pairs))
	for k, p := range pairs {
		s.items = insertAt(s.items, p.index, p.item)
		p.item.parent = s
		rows[k] = p.index
	}
	return rows
}

// checkRemove dedupes and validates indexes, returning them in descending
// order.
func (s *Section) checkRemove(op string, indexes []int) []int {
	rows := dedupe(indexes)
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))
	for _, r := range rows {
		if r < 0 || r >= len(s.items) {
			outOfRange(op, r, len(s.items))
		}
	}
	return rows
}

func (s *Section) applyRemove(rows []int, w Widget) {
	for _, r := range rows {
		it := s.items[r]
		s.items = removeAt(s.items, r)
		it.detach(w)
	}
}

func pathsIn(section int, rows []int) []IndexPath {
	paths := make([]IndexPath, len(rows))
	for k, r := range rows {
		paths[k] = Path(section, r)
	}
	return paths
}

func dedupe(indexes []int) []int {
	seen := make(map[int]bool, len(indexes))
	out := make([]int, 0, len(indexes))
	for _, i := range indexes {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}
