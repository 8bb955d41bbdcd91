package stash

import (
	"errors"
	"testing"
)

func TestBorrowExclusivity(t *testing.T) {
	tests := []struct {
		name      string
		first     string // "read" or "write"
		second    string
		wantError bool
	}{
		{"Two shared borrows", "read", "read", false},
		{"Shared then exclusive", "read", "write", true},
		{"Exclusive then shared", "write", "read", true},
		{"Two exclusive borrows", "write", "write", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posComp := FactoryNewComponent[Position]()
			storage := newTestStorage(posComp)

			release := func() {}
			if tt.first == "read" {
				reader, err := posComp.Read(storage)
				if err != nil {
					t.Fatalf("first Read() error = %v", err)
				}
				release = reader.Release
			} else {
				writer, err := posComp.Write(storage)
				if err != nil {
					t.Fatalf("first Write() error = %v", err)
				}
				release = writer.Release
			}

			var err error
			if tt.second == "read" {
				var reader *ColumnReader[Position]
				reader, err = posComp.Read(storage)
				if err == nil {
					reader.Release()
				}
			} else {
				var writer *ColumnWriter[Position]
				writer, err = posComp.Write(storage)
				if err == nil {
					writer.Release()
				}
			}

			if (err != nil) != tt.wantError {
				t.Errorf("second borrow error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				var borrowed ComponentBorrowedError
				if !errors.As(err, &borrowed) {
					t.Errorf("second borrow error = %v, want ComponentBorrowedError", err)
				}
			}

			// After releasing the first borrow the conflict is gone.
			release()
			writer, err := posComp.Write(storage)
			if err != nil {
				t.Errorf("Write() after release error = %v", err)
			} else {
				writer.Release()
			}
		})
	}
}

func TestUnregisteredComponentAccess(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	healthComp := FactoryNewComponent[Health]()
	storage := newTestStorage(posComp)

	var notRegistered ComponentNotRegisteredError
	if _, err := healthComp.Read(storage); !errors.As(err, &notRegistered) {
		t.Errorf("Read() error = %v, want ComponentNotRegisteredError", err)
	}
	if _, err := healthComp.Write(storage); !errors.As(err, &notRegistered) {
		t.Errorf("Write() error = %v, want ComponentNotRegisteredError", err)
	}
}

func TestStructuralOpsFailWhileColumnBorrowed(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	storage := newTestStorage(posComp, velComp)

	e, err := storage.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	reader, err := velComp.Read(storage)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var borrowed ComponentBorrowedError
	if _, err := storage.Spawn(); !errors.As(err, &borrowed) {
		t.Errorf("Spawn() while borrowed error = %v, want ComponentBorrowedError", err)
	}
	if err := storage.Destroy(e); !errors.As(err, &borrowed) {
		t.Errorf("Destroy() while borrowed error = %v, want ComponentBorrowedError", err)
	}

	// The blocked structural ops must not have touched the columns.
	if reader.Len() != storage.Count() {
		t.Errorf("column length = %d, count = %d", reader.Len(), storage.Count())
	}
	reader.Release()

	if _, err := storage.Spawn(); err != nil {
		t.Errorf("Spawn() after release error = %v", err)
	}
	if err := storage.Destroy(e); err != nil {
		t.Errorf("Destroy() after release error = %v", err)
	}
}

func TestAttachDetach(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	storage := newTestStorage(posComp)

	e, _ := storage.Spawn()

	if err := posComp.Attach(storage, e, Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	reader, err := posComp.Read(storage)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got, ok := reader.Get(e); !ok || got.X != 1 || got.Y != 2 {
		t.Errorf("Get() = %+v, %v, want {1 2}, true", got, ok)
	}
	reader.Release()

	// Attach overwrites.
	if err := posComp.Attach(storage, e, Position{X: 3, Y: 4}); err != nil {
		t.Fatalf("Attach() overwrite error = %v", err)
	}
	reader, _ = posComp.Read(storage)
	if got, _ := reader.Get(e); got.X != 3 || got.Y != 4 {
		t.Errorf("Get() after overwrite = %+v, want {3 4}", got)
	}
	reader.Release()

	if err := posComp.Detach(storage, e); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	reader, _ = posComp.Read(storage)
	if _, ok := reader.Get(e); ok {
		t.Error("Get() reports a value after Detach")
	}
	reader.Release()

	var invalid InvalidEntityError
	if err := posComp.Attach(storage, Entity(99), Position{}); !errors.As(err, &invalid) {
		t.Errorf("Attach(unknown) error = %v, want InvalidEntityError", err)
	}
	if err := posComp.Detach(storage, Entity(99)); !errors.As(err, &invalid) {
		t.Errorf("Detach(unknown) error = %v, want InvalidEntityError", err)
	}
}

func TestWriterMutatesInPlace(t *testing.T) {
	healthComp := FactoryNewComponent[Health]()
	storage := newTestStorage(healthComp)

	e, _ := storage.Spawn()
	if err := healthComp.Attach(storage, e, Health{Current: 50, Max: 100}); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	writer, err := healthComp.Write(storage)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	hp, ok := writer.GetMut(e)
	if !ok {
		t.Fatal("GetMut() found no value")
	}
	hp.Current = 75
	writer.Release()

	reader, _ := healthComp.Read(storage)
	defer reader.Release()
	if got, _ := reader.Get(e); got.Current != 75 {
		t.Errorf("Current = %d, want 75", got.Current)
	}
}

func TestSwapRemoveMovesComponentValues(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	storage := newTestStorage(posComp)

	a, _ := storage.Spawn()
	b, _ := storage.Spawn()
	c, _ := storage.Spawn()

	posComp.Attach(storage, a, Position{X: 1})
	posComp.Attach(storage, b, Position{X: 2})
	posComp.Attach(storage, c, Position{X: 3})

	if err := storage.Destroy(b); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	reader, err := posComp.Read(storage)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	defer reader.Release()

	// c's value followed it into the vacated row.
	if got, ok := reader.Get(c); !ok || got.X != 3 {
		t.Errorf("Get(c) = %+v, %v, want {3 0}, true", got, ok)
	}
	if got, ok := reader.Get(a); !ok || got.X != 1 {
		t.Errorf("Get(a) = %+v, %v, want {1 0}, true", got, ok)
	}
}
