package stash

import (
	"fmt"
	"reflect"
)

type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("entity %d is not in the live index", e.Entity)
}

type ComponentNotRegisteredError struct {
	Type reflect.Type
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component type was never registered: %v", e.Type)
}

type ComponentBorrowedError struct {
	Type reflect.Type
}

func (e ComponentBorrowedError) Error() string {
	return fmt.Sprintf("component column has a conflicting borrow outstanding: %v", e.Type)
}

type ResourceNotFoundError struct {
	Type reflect.Type
}

func (e ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %v", e.Type)
}

type ResourceBorrowedError struct {
	Type reflect.Type
}

func (e ResourceBorrowedError) Error() string {
	return fmt.Sprintf("resource has a conflicting borrow outstanding: %v", e.Type)
}

type CorruptedResourceError struct {
	Type reflect.Type
}

func (e CorruptedResourceError) Error() string {
	return fmt.Sprintf("resource storage holds the wrong concrete type: %v", e.Type)
}

type InternalStorageError struct {
	Type reflect.Type
}

func (e InternalStorageError) Error() string {
	return fmt.Sprintf("column storage holds the wrong concrete type: %v", e.Type)
}

type QueueBorrowedError struct{}

func (e QueueBorrowedError) Error() string {
	return "command queue is already exclusively borrowed"
}
