package stash

import (
	"reflect"
	"sync"
)

// Resources is a registry of singleton values keyed by type, one value per
// type, each behind the same non-blocking borrow gate as a component column.
// A Resources of its own is storage independent; every storage also carries a
// private Resources for its items.
type Resources struct {
	values map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{values: make(map[reflect.Type]any)}
}

type resourceSlot[T any] struct {
	gate  sync.RWMutex
	value T
}

// AddResource inserts or replaces the registry's value for T.
func AddResource[T any](r *Resources, value T) {
	if r.values == nil {
		r.values = make(map[reflect.Type]any)
	}
	r.values[reflect.TypeFor[T]()] = &resourceSlot[T]{value: value}
}

// RemoveResource erases the registry's value for T, if any.
func RemoveResource[T any](r *Resources) {
	delete(r.values, reflect.TypeFor[T]())
}

// ReadResource takes a shared borrow of the registry's value for T.
func ReadResource[T any](r *Resources) (*ResourceReader[T], error) {
	s, err := slotFor[T](r)
	if err != nil {
		return nil, err
	}
	if !s.gate.TryRLock() {
		return nil, ResourceBorrowedError{Type: reflect.TypeFor[T]()}
	}
	return &ResourceReader[T]{slot: s}, nil
}

// WriteResource takes an exclusive borrow of the registry's value for T.
func WriteResource[T any](r *Resources) (*ResourceWriter[T], error) {
	s, err := slotFor[T](r)
	if err != nil {
		return nil, err
	}
	if !s.gate.TryLock() {
		return nil, ResourceBorrowedError{Type: reflect.TypeFor[T]()}
	}
	return &ResourceWriter[T]{slot: s}, nil
}

// ReadItem takes a shared borrow of sto's item of type T. Items are the
// storage-scoped namespace of the same mechanism.
func ReadItem[T any](sto Storage) (*ResourceReader[T], error) {
	return ReadResource[T](sto.(*storage).items)
}

// WriteItem takes an exclusive borrow of sto's item of type T.
func WriteItem[T any](sto Storage) (*ResourceWriter[T], error) {
	return WriteResource[T](sto.(*storage).items)
}

func slotFor[T any](r *Resources) (*resourceSlot[T], error) {
	t := reflect.TypeFor[T]()
	raw, ok := r.values[t]
	if !ok {
		return nil, ResourceNotFoundError{Type: t}
	}
	s, ok := raw.(*resourceSlot[T])
	if !ok {
		// Unreachable with slots minted by AddResource.
		return nil, CorruptedResourceError{Type: t}
	}
	return s, nil
}

// ResourceReader is a shared borrow of one singleton value.
type ResourceReader[T any] struct {
	slot     *resourceSlot[T]
	released bool
}

func (r *ResourceReader[T]) Get() T {
	return r.slot.value
}

// Release gives the shared borrow back. Safe to call more than once.
func (r *ResourceReader[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.slot.gate.RUnlock()
}

// ResourceWriter is an exclusive borrow of one singleton value.
type ResourceWriter[T any] struct {
	slot     *resourceSlot[T]
	released bool
}

func (w *ResourceWriter[T]) Get() T {
	return w.slot.value
}

// Mut returns a pointer to the value for in-place mutation, valid while the
// borrow is held.
func (w *ResourceWriter[T]) Mut() *T {
	return &w.slot.value
}

// Release gives the exclusive borrow back. Safe to call more than once.
func (w *ResourceWriter[T]) Release() {
	if w.released {
		return
	}
	w.released = true
	w.slot.gate.Unlock()
}
