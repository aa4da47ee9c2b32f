// Package table maps a tree of sections and items onto the (section, row)
// address space of a list widget and keeps the two in step as the tree is
// mutated.
//
// All types in this package are meant to be used from the host's UI
// goroutine only; none of them lock.
package table

import "fmt"

// NotFoundIndex is returned by index lookups that fail.
const NotFoundIndex = -1

// IndexPath addresses a row as (section, row).
type IndexPath struct {
	Section int
	Row     int
}

// NotFound is the index path returned for items that are not installed.
var NotFound = IndexPath{Section: NotFoundIndex, Row: NotFoundIndex}

// Path is shorthand for IndexPath{Section: section, Row: row}.
func Path(section, row int) IndexPath {
	return IndexPath{Section: section, Row: row}
}

// Found reports whether p is a real address.
func (p IndexPath) Found() bool {
	return p.Section >= 0 && p.Row >= 0
}

func (p IndexPath) String() string {
	if !p.Found() {
		return "(not found)"
	}
	return fmt.Sprintf("(%d,%d)", p.Section, p.Row)
}

// Style selects how the controller's top-level data is interpreted.
type Style int

const (
	// Plain holds items directly; they are addressed as section 0.
	Plain Style = iota
	// Grouped holds sections.
	Grouped
)

func (s Style) String() string {
	if s == Grouped {
		return "grouped"
	}
	return "plain"
}

// RowAnimation is the animation a widget uses for a structural delta.
type RowAnimation int

const (
	AnimationAutomatic RowAnimation = iota
	AnimationNone
	AnimationFade
	AnimationRight
	AnimationLeft
	AnimationTop
	AnimationBottom
	AnimationMiddle
)

// ScrollPosition is where a row should land when the widget scrolls to it.
type ScrollPosition int

const (
	ScrollNone ScrollPosition = iota
	ScrollTop
	ScrollMiddle
	ScrollBottom
)
