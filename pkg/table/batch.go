package table

import "sort"

// Changes summarizes a committed update batch.
type Changes struct {
	// InsertedRows are addressed in the post-update data.
	InsertedRows []IndexPath
	// InsertedSections are addressed in the post-update data.
	InsertedSections []int
	DeletedRows      int
	DeletedSections  int
	Moves            int
	Reloads          int

	deleted      map[IndexPath]bool
	moved        map[IndexPath]IndexPath
	sectionsGone map[int]bool
	sectionMoves map[int]int
}

// Empty reports whether the batch carried no deltas.
func (c Changes) Empty() bool {
	return len(c.InsertedRows) == 0 && len(c.InsertedSections) == 0 &&
		c.DeletedRows == 0 && c.DeletedSections == 0 && c.Moves == 0 && c.Reloads == 0
}

// Batch records the deltas a widget receives between BeginUpdates and
// EndUpdates and checks them against the data source when the outermost
// batch ends. Deletions and move sources address the data as it was at
// Begin; insertions and move destinations address it as it is at End.
// Widgets embed one to implement the update contract. Deltas recorded
// outside a batch are ignored.
type Batch struct {
	depth  int
	before []int

	insertedSections map[int]bool
	deletedSections  map[int]bool
	reloadedSections map[int]bool
	movedSections    map[int]int

	insertedRows map[int]int
	deletedRows  map[int]int
	movedOut     map[int]int
	movedIn      map[int]int

	deletedPaths map[IndexPath]bool
	movedPaths   map[IndexPath]IndexPath

	changes Changes
}

// Begin opens a batch, or nests into the open one. The row counts of ds are
// captured when the outermost batch opens.
func (b *Batch) Begin(ds DataSource) {
	b.depth++
	if b.depth > 1 {
		return
	}
	b.reset()
	if ds == nil {
		return
	}
	b.before = make([]int, ds.NumberOfSections())
	for s := range b.before {
		b.before[s] = ds.NumberOfRows(s)
	}
}

// Active reports whether a batch is open.
func (b *Batch) Active() bool { return b.depth > 0 }

// End closes the innermost batch. When it was the outermost one the deltas
// are verified against ds and the summary is returned with done true. A
// mismatch panics with *InconsistencyError. End without Begin is a no-op.
func (b *Batch) End(ds DataSource) (changes Changes, done bool) {
	if b.depth == 0 {
		return Changes{}, false
	}
	b.depth--
	if b.depth > 0 {
		return Changes{}, false
	}
	changes = b.changes
	changes.deleted = b.deletedPaths
	changes.moved = b.movedPaths
	changes.sectionsGone = b.deletedSections
	changes.sectionMoves = b.movedSections
	if ds != nil {
		b.verify(ds)
	}
	b.reset()
	return changes, true
}

func (b *Batch) reset() {
	b.before = nil
	b.insertedSections = map[int]bool{}
	b.deletedSections = map[int]bool{}
	b.reloadedSections = map[int]bool{}
	b.movedSections = map[int]int{}
	b.insertedRows = map[int]int{}
	b.deletedRows = map[int]int{}
	b.movedOut = map[int]int{}
	b.movedIn = map[int]int{}
	b.deletedPaths = map[IndexPath]bool{}
	b.movedPaths = map[IndexPath]IndexPath{}
	b.changes = Changes{}
}

// InsertRows records row insertions.
func (b *Batch) InsertRows(paths []IndexPath) {
	if b.depth == 0 {
		return
	}
	for _, p := range paths {
		b.insertedRows[p.Section]++
	}
	b.changes.InsertedRows = append(b.changes.InsertedRows, paths...)
}

// DeleteRows records row deletions.
func (b *Batch) DeleteRows(paths []IndexPath) {
	if b.depth == 0 {
		return
	}
	for _, p := range paths {
		b.deletedRows[p.Section]++
		b.deletedPaths[p] = true
	}
	b.changes.DeletedRows += len(paths)
}

// MoveRow records a row move.
func (b *Batch) MoveRow(from, to IndexPath) {
	if b.depth == 0 {
		return
	}
	b.movedOut[from.Section]++
	b.movedIn[to.Section]++
	b.movedPaths[from] = to
	b.changes.Moves++
}

// ReloadRows records row reloads. They do not change counts.
func (b *Batch) ReloadRows(paths []IndexPath) {
	if b.depth == 0 {
		return
	}
	b.changes.Reloads += len(paths)
}

// InsertSections records section insertions.
func (b *Batch) InsertSections(indexes []int) {
	if b.depth == 0 {
		return
	}
	for _, i := range indexes {
		b.insertedSections[i] = true
	}
	b.changes.InsertedSections = append(b.changes.InsertedSections, indexes...)
}

// DeleteSections records section deletions.
func (b *Batch) DeleteSections(indexes []int) {
	if b.depth == 0 {
		return
	}
	for _, i := range indexes {
		b.deletedSections[i] = true
	}
	b.changes.DeletedSections += len(indexes)
}

// MoveSection records a section move.
func (b *Batch) MoveSection(from, to int) {
	if b.depth == 0 {
		return
	}
	b.movedSections[from] = to
	b.changes.Moves++
}

// ReloadSections records section reloads. Reloaded sections are exempt
// from the row count check.
func (b *Batch) ReloadSections(indexes []int) {
	if b.depth == 0 {
		return
	}
	for _, i := range indexes {
		b.reloadedSections[i] = true
	}
	b.changes.Reloads += len(indexes)
}

func (b *Batch) verify(ds DataSource) {
	after := ds.NumberOfSections()
	if want := len(b.before) + len(b.insertedSections) - len(b.deletedSections); after != want {
		panic(&InconsistencyError{
			Section:  -1,
			Before:   len(b.before),
			Inserted: len(b.insertedSections),
			Deleted:  len(b.deletedSections),
			After:    after,
		})
	}

	taken := make(map[int]bool, len(b.insertedSections)+len(b.movedSections))
	for s := range b.insertedSections {
		taken[s] = true
	}
	for _, to := range b.movedSections {
		taken[to] = true
	}
	mapping := make(map[int]int, len(b.before))
	for from, to := range b.movedSections {
		mapping[from] = to
	}
	next := 0
	for s := range b.before {
		if b.deletedSections[s] {
			continue
		}
		if _, moved := b.movedSections[s]; moved {
			continue
		}
		for taken[next] {
			next++
		}
		mapping[s] = next
		next++
	}

	sources := make([]int, 0, len(mapping))
	for s := range mapping {
		sources = append(sources, s)
	}
	sort.Ints(sources)
	for _, s := range sources {
		a := mapping[s]
		if s >= len(b.before) || b.reloadedSections[s] || a >= after {
			continue
		}
		inserted := b.insertedRows[a] + b.movedIn[a]
		deleted := b.deletedRows[s] + b.movedOut[s]
		if got := ds.NumberOfRows(a); got != b.before[s]+inserted-deleted {
			panic(&InconsistencyError{
				Section:  a,
				Before:   b.before[s],
				Inserted: inserted,
				Deleted:  deleted,
				After:    got,
			})
		}
	}
}

// MapSection returns where section, addressed as it was when the batch
// opened, ended up. It returns NotFoundIndex for a deleted section.
func (c Changes) MapSection(section int) int {
	if section < 0 || c.sectionsGone[section] {
		return NotFoundIndex
	}
	if to, ok := c.sectionMoves[section]; ok {
		return to
	}
	gone := 0
	for s := range c.sectionsGone {
		if s < section {
			gone++
		}
	}
	for from := range c.sectionMoves {
		if from < section {
			gone++
		}
	}
	arrived := make([]int, 0, len(c.InsertedSections)+len(c.sectionMoves))
	arrived = append(arrived, c.InsertedSections...)
	for _, to := range c.sectionMoves {
		arrived = append(arrived, to)
	}
	return shiftPast(section-gone, arrived)
}

// MapPath returns where the row at p, addressed as it was when the batch
// opened, ended up. It returns NotFound when the row or its section was
// deleted. Rows of reloaded sections keep their row index.
func (c Changes) MapPath(p IndexPath) IndexPath {
	if !p.Found() {
		return NotFound
	}
	if to, ok := c.moved[p]; ok {
		return to
	}
	if c.deleted[p] {
		return NotFound
	}
	section := c.MapSection(p.Section)
	if section == NotFoundIndex {
		return NotFound
	}
	gone := 0
	for d := range c.deleted {
		if d.Section == p.Section && d.Row < p.Row {
			gone++
		}
	}
	for from := range c.moved {
		if from.Section == p.Section && from.Row < p.Row {
			gone++
		}
	}
	var arrived []int
	for _, ins := range c.InsertedRows {
		if ins.Section == section {
			arrived = append(arrived, ins.Row)
		}
	}
	for _, to := range c.moved {
		if to.Section == section {
			arrived = append(arrived, to.Row)
		}
	}
	return Path(section, shiftPast(p.Row-gone, arrived))
}

// shiftPast moves index down past every slot in arrived, which address the
// final list, that lands at or before it.
func shiftPast(index int, arrived []int) int {
	sort.Ints(arrived)
	for _, a := range arrived {
		if a <= index {
			index++
		}
	}
	return index
}
