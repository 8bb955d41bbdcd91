package stash

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewStorageBuilder(schema table.Schema) *StorageBuilder {
	return newStorageBuilder(schema)
}

func (f factory) NewResources() *Resources {
	return newResources()
}

func (f factory) NewCommandQueue() *CommandQueue {
	return newCommandQueue()
}

func (f factory) NewContext(sto Storage, res *Resources, queue *CommandQueue) *Context {
	return newContext(sto, res, queue)
}
