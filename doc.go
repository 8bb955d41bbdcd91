/*
Package stash provides a dense entity-component store with runtime borrow checking.

Stash keeps every component type in its own dense column, one optional slot per
live entity, instead of grouping entities by shape. Columns are registered up
front, stored type-erased, and reached through non-blocking shared/exclusive
borrow gates so that heterogeneous, application-defined data gets the same
never-two-writers guarantee a statically typed store would give for free.

Core Concepts:

  - Entity: A unique identifier that represents a stored object. Identifiers
    are never recycled within a storage's lifetime.
  - Component: A data slot that may be present or absent per entity, kept in a
    dense per-type column sharing the storage's row order.
  - Resource/Item: A singleton value per type. Resources are storage
    independent, items belong to one storage.
  - RowView: One source of a composed query. Views zip positionally over the
    storage's row order and drop rows where any member is absent.
  - Command: A deferred mutation that needs exclusive access to the storage,
    queued during a system body and applied afterwards in FIFO order.

Basic Usage:

	// Declare components and build storage
	position := stash.FactoryNewComponent[Position]()
	velocity := stash.FactoryNewComponent[Velocity]()

	schema := table.Factory.NewSchema()
	storage := stash.Factory.NewStorageBuilder(schema).
		WithComponent(position, velocity).
		Build()

	// Spawn entities and attach values
	player, _ := storage.Spawn()
	position.Attach(storage, player, Position{X: 1, Y: 2})
	velocity.Attach(storage, player, Velocity{X: 1, Y: 1})

	// Run a system that moves everything with a position and velocity
	resources := stash.Factory.NewResources()
	queue := stash.Factory.NewCommandQueue()
	ctx := stash.Factory.NewContext(storage, resources, queue)

	pos := position.Writer()
	vel := velocity.Reader()
	ctx.Run(func() {
		for row := range stash.Matches(stash.Zip2[*Position, Velocity](pos.View().Mut(), vel.View())) {
			row.A.X += row.B.X
			row.A.Y += row.B.Y
		}
	}, pos, vel)

Stash is a standalone store but sits on the same component/schema identity
layer as the rest of the Bappa libraries.
*/
package stash
