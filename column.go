package stash

import (
	"reflect"
	"sync"
)

// anyColumn is the type-erased face of one component column. The storage
// holds columns behind this interface and downcasts back to the concrete
// element type on access.
type anyColumn interface {
	elem() reflect.Type
	tryExclusive() bool
	releaseExclusive()

	// Structural hooks. The caller must hold the exclusive gate.
	pushAbsent()
	swapRemove(row int)
}

type slot[T any] struct {
	value   T
	present bool
}

// column is one dense array of optional values, always the same length as the
// owning storage's entity count, guarded by a non-blocking reader/writer gate.
type column[T any] struct {
	gate  sync.RWMutex
	slots []slot[T]
}

func (c *column[T]) elem() reflect.Type { return reflect.TypeFor[T]() }

func (c *column[T]) tryExclusive() bool { return c.gate.TryLock() }

func (c *column[T]) releaseExclusive() { c.gate.Unlock() }

func (c *column[T]) pushAbsent() {
	c.slots = append(c.slots, slot[T]{})
}

func (c *column[T]) swapRemove(row int) {
	last := len(c.slots) - 1
	c.slots[row] = c.slots[last]
	c.slots = c.slots[:last]
}

// ColumnReader is a shared borrow of one component column. Any number of
// readers may be live at once; a reader conflicts with any writer.
type ColumnReader[T any] struct {
	idx      *entityIndex
	col      *column[T]
	released bool
}

// Get returns the entity's value. The bool is false both when the entity is
// unknown to the storage and when the entity has no value for this type;
// callers that need to tell the two apart look the entity up themselves.
func (r *ColumnReader[T]) Get(e Entity) (T, bool) {
	row, ok := r.idx.row(e)
	if !ok {
		var zero T
		return zero, false
	}
	s := r.col.slots[row]
	return s.value, s.present
}

func (r *ColumnReader[T]) Len() int {
	return len(r.col.slots)
}

func (r *ColumnReader[T]) At(row int) (T, bool) {
	s := r.col.slots[row]
	return s.value, s.present
}

// Release gives the shared borrow back. Safe to call more than once.
func (r *ColumnReader[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.col.gate.RUnlock()
}

// ColumnWriter is an exclusive borrow of one component column. Exactly one
// writer may be live, and no readers alongside it.
type ColumnWriter[T any] struct {
	idx      *entityIndex
	col      *column[T]
	released bool
}

// Set attaches or overwrites the entity's value.
func (w *ColumnWriter[T]) Set(e Entity, value T) error {
	row, ok := w.idx.row(e)
	if !ok {
		return InvalidEntityError{Entity: e}
	}
	w.col.slots[row] = slot[T]{value: value, present: true}
	return nil
}

// Unset detaches the entity's value, leaving the slot absent.
func (w *ColumnWriter[T]) Unset(e Entity) error {
	row, ok := w.idx.row(e)
	if !ok {
		return InvalidEntityError{Entity: e}
	}
	w.col.slots[row] = slot[T]{}
	return nil
}

func (w *ColumnWriter[T]) Get(e Entity) (T, bool) {
	row, ok := w.idx.row(e)
	if !ok {
		var zero T
		return zero, false
	}
	s := w.col.slots[row]
	return s.value, s.present
}

// GetMut returns a pointer to the entity's value for in-place mutation. The
// pointer is valid until the next structural edit of the storage.
func (w *ColumnWriter[T]) GetMut(e Entity) (*T, bool) {
	row, ok := w.idx.row(e)
	if !ok {
		return nil, false
	}
	s := &w.col.slots[row]
	if !s.present {
		return nil, false
	}
	return &s.value, true
}

func (w *ColumnWriter[T]) Len() int {
	return len(w.col.slots)
}

func (w *ColumnWriter[T]) At(row int) (T, bool) {
	s := w.col.slots[row]
	return s.value, s.present
}

// Mut returns the mutable row view over the same column, for zipping
// in-place edits with other sources.
func (w *ColumnWriter[T]) Mut() RowView[*T] {
	return mutRows[T]{col: w.col}
}

// Release gives the exclusive borrow back. Safe to call more than once.
func (w *ColumnWriter[T]) Release() {
	if w.released {
		return
	}
	w.released = true
	w.col.gate.Unlock()
}

type mutRows[T any] struct {
	col *column[T]
}

func (m mutRows[T]) Len() int {
	return len(m.col.slots)
}

func (m mutRows[T]) At(row int) (*T, bool) {
	s := &m.col.slots[row]
	if !s.present {
		return nil, false
	}
	return &s.value, true
}
