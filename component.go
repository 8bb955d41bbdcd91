package stash

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// AccessibleComponent is the typed handle for one component type. It carries
// the schema element identity used for access masks and mints the concrete
// column when the type is registered with a storage builder.
type AccessibleComponent[T any] struct {
	table.ElementType
}

// FactoryNewComponent creates a component handle for T. Handles are created
// once and shared; the handle, not the Go type, is what gets declared on a
// builder and on system parameters.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{ElementType: table.FactoryNewElementType[T]()}
}

func (c AccessibleComponent[T]) elem() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c AccessibleComponent[T]) newColumn() anyColumn {
	return &column[T]{}
}
