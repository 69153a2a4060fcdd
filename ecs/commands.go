package ecs

import "reflect"

// Commands buffers structural changes requested while systems run. They are
// applied in the order they were queued when the frame is flushed, followed by
// any deferred functions.
type Commands struct {
	ops    []command
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type commandKind uint8

const (
	commandSpawn commandKind = iota
	commandDelete
	commandAdd
	commandRemove
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
	onSpawn    func(EntityId)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, command{kind: commandSpawn, components: components})
}

// SpawnThen queues a spawn and calls fn with the new entity once it exists.
func (c *Commands) SpawnThen(fn func(EntityId), components ...any) {
	c.ops = append(c.ops, command{kind: commandSpawn, components: components, onSpawn: fn})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, command{kind: commandDelete, entity: entity})
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, command{kind: commandAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, command{kind: commandRemove, entity: entity, compType: compType})
}

// Defer queues a function to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued structural changes.
func (c *Commands) Pending() int {
	return len(c.ops)
}

// Flush applies all queued commands to the storage and resets the buffer.
// Operations on entities deleted earlier in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	for _, op := range c.ops {
		switch op.kind {
		case commandSpawn:
			id := storage.Spawn(op.components...)
			if op.onSpawn != nil {
				op.onSpawn(id)
			}
		case commandDelete:
			storage.Delete(op.entity)
		case commandAdd:
			storage.AddComponent(op.entity, op.components[0])
		case commandRemove:
			storage.RemoveComponent(op.entity, op.compType)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.ops)
	c.ops = c.ops[:0]
	c.defers = c.defers[:0]
}
