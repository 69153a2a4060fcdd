package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// Storage is the main ECS storage: live entities, their components and
// entity-less singleton components.
type Storage struct {
	registry    *ComponentRegistry
	stores      map[reflect.Type]iComponentStore
	generations []uint32
	alive       []bool
	freeIndices []uint32
	liveCount   int
	singletons  map[reflect.Type]any
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		stores:     make(map[reflect.Type]iComponentStore),
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) store(t reflect.Type) iComponentStore {
	if st, ok := s.stores[t]; ok {
		return st
	}
	factory := s.registry.getFactory(t)
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	st := factory()
	s.stores[t] = st
	return st
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	// Resolve every store first so an unregistered type panics before
	// an entity slot is consumed.
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
		s.store(types[i])
	}

	var index uint32
	if n := len(s.freeIndices); n > 0 {
		index = s.freeIndices[n-1]
		s.freeIndices = s.freeIndices[:n-1]
	} else {
		index = uint32(len(s.generations))
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}
	s.generations[index]++
	s.alive[index] = true
	s.liveCount++

	id := NewEntityId(s.generations[index], index)
	for i, comp := range components {
		s.stores[types[i]].Put(id, comp)
	}
	return id
}

// Alive reports whether the entity ID refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(s.generations) {
		return false
	}
	return s.alive[index] && s.generations[index] == id.Generation()
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}
	for _, st := range s.stores {
		st.Delete(id)
	}
	index := id.Index()
	s.alive[index] = false
	s.freeIndices = append(s.freeIndices, index)
	s.liveCount--
}

// AddComponent attaches (or overwrites) a component on a live entity.
func (s *Storage) AddComponent(id EntityId, component any) {
	if !s.Alive(id) {
		return
	}
	s.store(componentType(component)).Put(id, component)
}

// RemoveComponent detaches a component. An entity left without components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	if !s.Alive(id) {
		return
	}
	if st, ok := s.stores[compType]; ok {
		st.Delete(id)
	}
	for _, st := range s.stores {
		if st.Has(id) {
			return
		}
	}
	s.Delete(id)
}

// GetComponent returns a pointer to the component for the given entity and type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	st, ok := s.stores[compType]
	if !ok {
		return nil
	}
	return st.Get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	st, ok := s.stores[compType]
	return ok && st.Has(id)
}

// ComponentTypes lists the component types attached to the entity, sorted by name.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}
	var types []reflect.Type
	for t, st := range s.stores {
		if st.Has(id) {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Entities iterates live entities in slot order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for i, alive := range s.alive {
			if !alive {
				continue
			}
			if !yield(NewEntityId(s.generations[i], uint32(i))) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.liveCount
}

// AddSingleton stores a singleton component, replacing any existing value of the same type.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	ptr := reflect.New(t)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	ptr.Elem().Set(v)
	s.singletons[t] = ptr.Interface()
}

// ReadSingleton points target (a **T) at the stored singleton and reports whether it exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	value, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(value))
	return true
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// StorageStats summarises the storage contents.
type StorageStats struct {
	TotalEntityCount int
	SingletonCount   int
	SingletonTypes   []string
	ComponentCounts  []ComponentCount
}

// ComponentCount is the number of live components of one type.
type ComponentCount struct {
	Type  string
	Count int
}

// CollectStats gathers entity, component and singleton counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.liveCount,
		SingletonCount:   len(s.singletons),
	}
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	for t, st := range s.stores {
		stats.ComponentCounts = append(stats.ComponentCounts, ComponentCount{Type: t.String(), Count: st.Len()})
	}
	sort.Strings(stats.SingletonTypes)
	sort.Slice(stats.ComponentCounts, func(i, j int) bool {
		return stats.ComponentCounts[i].Type < stats.ComponentCounts[j].Type
	})
	return stats
}

// componentType returns the value type of a component, unwrapping one pointer level.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
