package stash

import (
	"reflect"

	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Storage = &storage{}

type storage struct {
	schema  table.Schema
	index   *entityIndex
	columns map[reflect.Type]anyColumn

	// Registration-ordered view of columns for structural operations.
	ordered []anyColumn

	items *Resources
}

// StorageBuilder declares the component and item set of a storage up front.
// Accessing a type that was never declared fails at runtime instead of
// registering storage on the fly.
type StorageBuilder struct {
	schema     table.Schema
	components []Component
	items      *Resources
}

func newStorageBuilder(schema table.Schema) *StorageBuilder {
	return &StorageBuilder{
		schema: schema,
		items:  newResources(),
	}
}

func (b *StorageBuilder) WithComponent(components ...Component) *StorageBuilder {
	b.components = append(b.components, components...)
	return b
}

// WithItem declares a storage-scoped singleton value on the builder.
func WithItem[T any](b *StorageBuilder, value T) *StorageBuilder {
	AddResource(b.items, value)
	return b
}

func (b *StorageBuilder) Build() Storage {
	sto := &storage{
		schema:  b.schema,
		index:   newEntityIndex(),
		columns: make(map[reflect.Type]anyColumn),
		items:   b.items,
	}
	for _, c := range b.components {
		b.schema.Register(c)
		if _, dup := sto.columns[c.elem()]; dup {
			continue
		}
		col := c.newColumn()
		sto.columns[c.elem()] = col
		sto.ordered = append(sto.ordered, col)
	}
	return sto
}

// Spawn allocates the next identifier, appends an absent slot to every
// registered column, and inserts the entity at the new trailing row. If any
// column's exclusive gate is held the whole spawn fails and no column is
// touched, so columns never desync from the entity count.
func (s *storage) Spawn() (Entity, error) {
	locked, err := s.lockColumns()
	if err != nil {
		return 0, err
	}
	for _, col := range locked {
		col.pushAbsent()
	}
	unlockColumns(locked)
	return s.index.insert(), nil
}

// Destroy removes the entity's row from the index and from every registered
// column with swap-with-last-then-pop semantics. Row order is therefore
// insertion order modulo prior swap-removals, not stable across destroys.
func (s *storage) Destroy(e Entity) error {
	row, ok := s.index.row(e)
	if !ok {
		return InvalidEntityError{Entity: e}
	}
	locked, err := s.lockColumns()
	if err != nil {
		return err
	}
	for _, col := range locked {
		col.swapRemove(row)
	}
	unlockColumns(locked)
	s.index.remove(e, row)
	return nil
}

func (s *storage) Row(e Entity) (int, bool) {
	return s.index.row(e)
}

func (s *storage) Contains(e Entity) bool {
	_, ok := s.index.row(e)
	return ok
}

func (s *storage) Count() int {
	return s.index.count()
}

func (s *storage) Entities() Entities {
	return Entities{idx: s.index}
}

// LiveEntities snapshots the dense entity sequence in row order.
func (s *storage) LiveEntities() []Entity {
	return iter_util.Collect(s.Entities().All())
}

func (s *storage) RowIndexFor(c Component) uint32 {
	return s.schema.RowIndexFor(c)
}

// lockColumns acquires every column's exclusive gate or none of them,
// reporting the first column that is already borrowed.
func (s *storage) lockColumns() ([]anyColumn, error) {
	for i, col := range s.ordered {
		if !col.tryExclusive() {
			unlockColumns(s.ordered[:i])
			return nil, ComponentBorrowedError{Type: col.elem()}
		}
	}
	return s.ordered, nil
}

func unlockColumns(cols []anyColumn) {
	for _, col := range cols {
		col.releaseExclusive()
	}
}
