package stash

// Read takes a shared borrow of the component's column in sto. It fails with
// ComponentNotRegisteredError if T was never declared for this storage and
// with ComponentBorrowedError while an exclusive borrow is outstanding.
func (c AccessibleComponent[T]) Read(sto Storage) (*ColumnReader[T], error) {
	s := sto.(*storage)
	col, err := columnFor[T](s, c)
	if err != nil {
		return nil, err
	}
	if !col.gate.TryRLock() {
		return nil, ComponentBorrowedError{Type: c.elem()}
	}
	return &ColumnReader[T]{idx: s.index, col: col}, nil
}

// Write takes an exclusive borrow of the component's column in sto, failing
// against outstanding shared borrows too.
func (c AccessibleComponent[T]) Write(sto Storage) (*ColumnWriter[T], error) {
	s := sto.(*storage)
	col, err := columnFor[T](s, c)
	if err != nil {
		return nil, err
	}
	if !col.gate.TryLock() {
		return nil, ComponentBorrowedError{Type: c.elem()}
	}
	return &ColumnWriter[T]{idx: s.index, col: col}, nil
}

// Attach sets the entity's value through a one-shot exclusive borrow.
func (c AccessibleComponent[T]) Attach(sto Storage, e Entity, value T) error {
	w, err := c.Write(sto)
	if err != nil {
		return err
	}
	defer w.Release()
	return w.Set(e, value)
}

// Detach removes the entity's value through a one-shot exclusive borrow.
func (c AccessibleComponent[T]) Detach(sto Storage, e Entity) error {
	w, err := c.Write(sto)
	if err != nil {
		return err
	}
	defer w.Release()
	return w.Unset(e)
}

func columnFor[T any](s *storage, c Component) (*column[T], error) {
	raw, ok := s.columns[c.elem()]
	if !ok {
		return nil, ComponentNotRegisteredError{Type: c.elem()}
	}
	col, ok := raw.(*column[T])
	if !ok {
		// Unreachable with columns minted by the handles themselves.
		return nil, InternalStorageError{Type: c.elem()}
	}
	return col, nil
}
