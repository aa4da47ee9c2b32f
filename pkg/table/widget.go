package table

import "tableflip.dev/statictable/pkg/cell"

// Widget is the list host a Controller drives. Deltas passed between
// BeginUpdates and EndUpdates are applied together; a widget validates the
// resulting counts against its data source when the outermost batch ends.
type Widget interface {
	SetDataSource(ds DataSource)
	ReloadData()

	BeginUpdates()
	EndUpdates()

	InsertRows(paths []IndexPath, animation RowAnimation)
	DeleteRows(paths []IndexPath, animation RowAnimation)
	MoveRow(from, to IndexPath)
	ReloadRows(paths []IndexPath, animation RowAnimation)

	InsertSections(indexes []int, animation RowAnimation)
	DeleteSections(indexes []int, animation RowAnimation)
	MoveSection(from, to int)
	ReloadSections(indexes []int, animation RowAnimation)

	SelectRow(path IndexPath, animated bool, position ScrollPosition)
	DeselectRow(path IndexPath, animated bool)
	// SelectedRow returns NotFound when nothing is selected.
	SelectedRow() IndexPath
	ScrollToRow(path IndexPath, position ScrollPosition, animated bool)

	// DequeueReusableCell returns a pooled cell for identifier, or nil.
	DequeueReusableCell(identifier string) cell.Cell
	// RecycleCell hands a cell that is no longer displayed back to the pool.
	RecycleCell(identifier string, c cell.Cell)
}

// DataSource is what a widget asks of its model. Controller implements it.
type DataSource interface {
	NumberOfSections() int
	NumberOfRows(section int) int
	CellForRow(path IndexPath) cell.Cell
	TitleForHeader(section int) string
	TitleForFooter(section int) string
	// HeightForRow returns the minimum height in lines; 0 lets the widget
	// measure the cell.
	HeightForRow(path IndexPath) int

	CanSelectRow(path IndexPath) bool
	DidSelectRow(path IndexPath)
	CanEditRow(path IndexPath) bool
	CommitDelete(path IndexPath)

	// ValueChanged reports that the user changed the control of the row's
	// cell in place.
	ValueChanged(path IndexPath)
	// ReturnKey reports that a text input of the row committed with return.
	ReturnKey(path IndexPath)
}
