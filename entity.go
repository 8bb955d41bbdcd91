package stash

// Entity is an opaque identifier for one stored object. Identifiers are
// assigned monotonically per storage starting at 0 and are never reused, so a
// destroyed entity's identifier can never be revalidated by a later spawn.
type Entity uint64

// entityIndex keeps the stable-identifier to dense-row mapping and the dense
// ordered sequence of live entities. The two are a bijection for every live
// entity: rows[id] == row iff ids[row] == id.
type entityIndex struct {
	rows   map[Entity]int
	ids    []Entity
	nextID Entity
}

func newEntityIndex() *entityIndex {
	return &entityIndex{rows: make(map[Entity]int)}
}

func (idx *entityIndex) row(id Entity) (int, bool) {
	row, ok := idx.rows[id]
	return row, ok
}

func (idx *entityIndex) count() int {
	return len(idx.ids)
}

// insert appends the next identifier at the trailing row. Column slots must
// already have been appended by the caller.
func (idx *entityIndex) insert() Entity {
	id := idx.nextID
	idx.rows[id] = len(idx.ids)
	idx.ids = append(idx.ids, id)
	idx.nextID++
	return id
}

// remove erases the mapping for id at row using swap-with-last-then-pop: the
// trailing entity moves into the freed row and its mapping is fixed up,
// unless the destroyed row was itself the trailing row. Column slots must be
// swap-removed by the caller against the same row.
func (idx *entityIndex) remove(id Entity, row int) {
	last := idx.ids[len(idx.ids)-1]
	idx.ids[row] = last
	idx.ids = idx.ids[:len(idx.ids)-1]
	delete(idx.rows, id)
	if len(idx.ids) > 0 && last != id {
		idx.rows[last] = row
	}
}
