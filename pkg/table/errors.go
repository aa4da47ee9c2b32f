package table

import (
	"errors"
	"fmt"
)

// ErrPlainStyle is returned by section level mutations on a plain
// controller, which has exactly one implicit section.
var ErrPlainStyle = errors.New("table: section mutation on a plain controller")

// RangeError is the panic value for out of range indexes passed to a
// structural mutation. These are caller bugs, not runtime conditions.
type RangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("table: %s: index %d beyond bounds [0, %d)", e.Op, e.Index, e.Len)
}

// InconsistencyError is the panic value raised by a widget when the deltas
// of an update batch do not account for the change in row or section counts.
type InconsistencyError struct {
	Section  int // -1 for the section count itself
	Before   int
	Inserted int
	Deleted  int
	After    int
}

func (e *InconsistencyError) Error() string {
	what := "number of sections"
	if e.Section >= 0 {
		what = fmt.Sprintf("number of rows in section %d", e.Section)
	}
	return fmt.Sprintf("table: invalid update: %s is %d, expected %d (%d before, %d inserted, %d deleted)",
		what, e.After, e.Before+e.Inserted-e.Deleted, e.Before, e.Inserted, e.Deleted)
}

func outOfRange(op string, index, n int) {
	panic(&RangeError{Op: op, Index: index, Len: n})
}
