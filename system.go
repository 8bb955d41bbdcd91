package stash

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Context binds one storage, one resource registry, and one command queue for
// a sequence of system invocations.
type Context struct {
	sto   Storage
	res   *Resources
	queue *CommandQueue
}

func newContext(sto Storage, res *Resources, queue *CommandQueue) *Context {
	return &Context{sto: sto, res: res, queue: queue}
}

// Run executes one system invocation: it resolves a live borrow for every
// declared parameter in declaration order, calls the body exactly once with
// all borrows live, releases them, then flushes the command queue.
//
// The first parameter whose borrow cannot be satisfied aborts the invocation
// with that parameter's error; guards already acquired for earlier parameters
// are released and the body never runs. A failed flush is reported as the Run
// error; the body is not re-invoked.
func (ctx *Context) Run(body func(), params ...Param) error {
	if err := checkColumnAliasing(ctx.sto, params); err != nil {
		return err
	}
	resolved := make([]Param, 0, len(params))
	for _, p := range params {
		if err := p.resolve(ctx.sto, ctx.res, ctx.queue); err != nil {
			releaseAll(resolved)
			return err
		}
		resolved = append(resolved, p)
	}
	body()
	releaseAll(resolved)
	return ctx.queue.Flush(ctx.sto, ctx.res)
}

func releaseAll(params []Param) {
	for i := len(params) - 1; i >= 0; i-- {
		params[i].release()
	}
}

// columnParam is implemented by params that borrow a component column and can
// report their access signature as a schema bit.
type columnParam interface {
	Param
	columnAccess(sto Storage) (bit uint32, elem reflect.Type, exclusive, ok bool)
}

// checkColumnAliasing folds each column parameter's schema bit into read and
// write masks and rejects a tuple that declares the same column twice in
// conflicting modes before any gate is acquired. The gates would refuse the
// same conflict at resolve time; failing here just avoids acquiring borrows
// that are doomed to be rolled back. The scan stops at the first parameter
// whose column is unregistered so the resolve loop reports that parameter's
// error in declaration order.
func checkColumnAliasing(sto Storage, params []Param) error {
	var reads, writes mask.Mask
	for _, p := range params {
		cp, isColumn := p.(columnParam)
		if !isColumn {
			continue
		}
		bit, elem, exclusive, ok := cp.columnAccess(sto)
		if !ok {
			return nil
		}
		var b mask.Mask
		b.Mark(bit)
		if exclusive {
			if writes.ContainsAny(b) || reads.ContainsAny(b) {
				return ComponentBorrowedError{Type: elem}
			}
			writes.Mark(bit)
		} else {
			if writes.ContainsAny(b) {
				return ComponentBorrowedError{Type: elem}
			}
			reads.Mark(bit)
		}
	}
	return nil
}

// ReadParam declares a shared borrow of one component column.
type ReadParam[T any] struct {
	comp AccessibleComponent[T]
	view *ColumnReader[T]
}

// Reader declares this component as a shared system parameter.
func (c AccessibleComponent[T]) Reader() *ReadParam[T] {
	return &ReadParam[T]{comp: c}
}

// View returns the resolved column reader, valid during the system body.
func (p *ReadParam[T]) View() *ColumnReader[T] {
	return p.view
}

func (p *ReadParam[T]) resolve(sto Storage, _ *Resources, _ *CommandQueue) error {
	view, err := p.comp.Read(sto)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *ReadParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

func (p *ReadParam[T]) columnAccess(sto Storage) (uint32, reflect.Type, bool, bool) {
	if _, registered := sto.(*storage).columns[p.comp.elem()]; !registered {
		return 0, nil, false, false
	}
	return sto.RowIndexFor(p.comp), p.comp.elem(), false, true
}

// WriteParam declares an exclusive borrow of one component column.
type WriteParam[T any] struct {
	comp AccessibleComponent[T]
	view *ColumnWriter[T]
}

// Writer declares this component as an exclusive system parameter.
func (c AccessibleComponent[T]) Writer() *WriteParam[T] {
	return &WriteParam[T]{comp: c}
}

// View returns the resolved column writer, valid during the system body.
func (p *WriteParam[T]) View() *ColumnWriter[T] {
	return p.view
}

func (p *WriteParam[T]) resolve(sto Storage, _ *Resources, _ *CommandQueue) error {
	view, err := p.comp.Write(sto)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *WriteParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

func (p *WriteParam[T]) columnAccess(sto Storage) (uint32, reflect.Type, bool, bool) {
	if _, registered := sto.(*storage).columns[p.comp.elem()]; !registered {
		return 0, nil, false, false
	}
	return sto.RowIndexFor(p.comp), p.comp.elem(), true, true
}

// EntitiesParam declares the live-entity view.
type EntitiesParam struct {
	view Entities
}

func EntitiesView() *EntitiesParam {
	return &EntitiesParam{}
}

func (p *EntitiesParam) View() Entities {
	return p.view
}

func (p *EntitiesParam) resolve(sto Storage, _ *Resources, _ *CommandQueue) error {
	p.view = sto.Entities()
	return nil
}

func (p *EntitiesParam) release() {}

// ResourceRefParam declares a shared borrow of a global resource.
type ResourceRefParam[T any] struct {
	view *ResourceReader[T]
}

func ResourceRef[T any]() *ResourceRefParam[T] {
	return &ResourceRefParam[T]{}
}

func (p *ResourceRefParam[T]) View() *ResourceReader[T] {
	return p.view
}

func (p *ResourceRefParam[T]) resolve(_ Storage, res *Resources, _ *CommandQueue) error {
	view, err := ReadResource[T](res)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *ResourceRefParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

// ResourceMutParam declares an exclusive borrow of a global resource.
type ResourceMutParam[T any] struct {
	view *ResourceWriter[T]
}

func ResourceMut[T any]() *ResourceMutParam[T] {
	return &ResourceMutParam[T]{}
}

func (p *ResourceMutParam[T]) View() *ResourceWriter[T] {
	return p.view
}

func (p *ResourceMutParam[T]) resolve(_ Storage, res *Resources, _ *CommandQueue) error {
	view, err := WriteResource[T](res)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *ResourceMutParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

// ItemRefParam declares a shared borrow of a storage-scoped item.
type ItemRefParam[T any] struct {
	view *ResourceReader[T]
}

func ItemRef[T any]() *ItemRefParam[T] {
	return &ItemRefParam[T]{}
}

func (p *ItemRefParam[T]) View() *ResourceReader[T] {
	return p.view
}

func (p *ItemRefParam[T]) resolve(sto Storage, _ *Resources, _ *CommandQueue) error {
	view, err := ReadItem[T](sto)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *ItemRefParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

// ItemMutParam declares an exclusive borrow of a storage-scoped item.
type ItemMutParam[T any] struct {
	view *ResourceWriter[T]
}

func ItemMut[T any]() *ItemMutParam[T] {
	return &ItemMutParam[T]{}
}

func (p *ItemMutParam[T]) View() *ResourceWriter[T] {
	return p.view
}

func (p *ItemMutParam[T]) resolve(sto Storage, _ *Resources, _ *CommandQueue) error {
	view, err := WriteItem[T](sto)
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *ItemMutParam[T]) release() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

// CommandsParam declares the deferral handle. Resolving it takes the queue's
// exclusive gate for the duration of the body, so the post-body flush only
// runs once the handle has been released.
type CommandsParam struct {
	view *Commands
}

func DeferredCommands() *CommandsParam {
	return &CommandsParam{}
}

func (p *CommandsParam) View() *Commands {
	return p.view
}

func (p *CommandsParam) resolve(_ Storage, _ *Resources, queue *CommandQueue) error {
	view, err := queue.deferred()
	if err != nil {
		return err
	}
	p.view = view
	return nil
}

func (p *CommandsParam) release() {
	if p.view != nil {
		p.view.release()
		p.view = nil
	}
}
