package stash

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

type Storage interface {
	Spawn() (Entity, error)
	Destroy(Entity) error
	Row(Entity) (int, bool)
	Contains(Entity) bool
	Count() int
	Entities() Entities
	LiveEntities() []Entity
	RowIndexFor(Component) uint32
}

type Component interface {
	table.ElementType
	elem() reflect.Type
	newColumn() anyColumn
}

// Command is one deferred mutation. It runs with exclusive access to the
// storage and the resource registry and either succeeds or surfaces its error
// to the flushing caller.
type Command func(sto Storage, res *Resources) error

// RowView is one source of a composed query: a per-row sequence aligned with
// the storage's dense row order, yielding a value and whether that row is
// present in this source.
type RowView[V any] interface {
	Len() int
	At(row int) (V, bool)
}

// Param is one declared parameter of a system. Params resolve live borrows
// in declaration order and release them after the system body returns.
type Param interface {
	resolve(sto Storage, res *Resources, queue *CommandQueue) error
	release()
}
