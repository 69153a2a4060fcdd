package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// iComponentStore is a type-erased store holding one component type.
type iComponentStore interface {
	Put(id EntityId, item any)
	Delete(id EntityId)
	Get(id EntityId) any
	Has(id EntityId) bool
	Len() int
	Iter() iter.Seq[EntityId]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage has its own registry so independent worlds do not interfere.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStore
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStore),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStore {
		return newComponentStore[T]()
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStore {
	return r.factories[t]
}

const storeBlockSize = 64

// componentStore keeps components of type T in fixed-size blocks. Blocks are
// allocated individually, so a pointer handed out by Get stays valid until the
// entity's component is deleted.
type componentStore[T any] struct {
	blocks    []*[storeBlockSize]T
	owners    []EntityId
	slots     *intmap.Map[EntityId, int]
	freeSlots []int
}

func newComponentStore[T any]() *componentStore[T] {
	return &componentStore[T]{
		slots: intmap.New[EntityId, int](64),
	}
}

func (cs *componentStore[T]) at(slot int) *T {
	return &cs.blocks[slot/storeBlockSize][slot%storeBlockSize]
}

// Put stores the component for the entity, overwriting any previous value.
func (cs *componentStore[T]) Put(id EntityId, item any) {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		panic("component store: unexpected type " + reflect.TypeOf(item).String())
	}

	if slot, ok := cs.slots.Get(id); ok {
		*cs.at(slot) = value
		return
	}

	var slot int
	if n := len(cs.freeSlots); n > 0 {
		slot = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
		cs.owners[slot] = id
	} else {
		slot = len(cs.owners)
		cs.owners = append(cs.owners, id)
		if slot/storeBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([storeBlockSize]T))
		}
	}

	*cs.at(slot) = value
	cs.slots.Put(id, slot)
}

// Delete zeroes and frees the entity's slot.
func (cs *componentStore[T]) Delete(id EntityId) {
	slot, ok := cs.slots.Get(id)
	if !ok {
		return
	}
	var zero T
	*cs.at(slot) = zero
	cs.owners[slot] = 0
	cs.slots.Del(id)
	cs.freeSlots = append(cs.freeSlots, slot)
}

// Get returns a *T for the entity or nil.
func (cs *componentStore[T]) Get(id EntityId) any {
	slot, ok := cs.slots.Get(id)
	if !ok {
		return nil
	}
	return cs.at(slot)
}

func (cs *componentStore[T]) Has(id EntityId) bool {
	return cs.slots.Has(id)
}

func (cs *componentStore[T]) Len() int {
	return cs.slots.Len()
}

// Iter yields owning entities in slot order.
func (cs *componentStore[T]) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, owner := range cs.owners {
			if owner == 0 {
				continue
			}
			if !yield(owner) {
				return
			}
		}
	}
}
