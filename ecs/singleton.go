package ecs

import "reflect"

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for match state, configuration, or
// other world-wide data.
type Singleton[T any] struct {
	storage *Storage
}

// NewSingleton creates a Singleton accessor for the storage. If the singleton
// does not exist yet it is created from the initializer, or the zero value.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{storage: storage}
	if !s.Exists() {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	return s
}

// Init binds the Singleton to a storage.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
}

// Get returns a pointer to the singleton component, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	value, _ := s.storage.singleton(reflect.TypeFor[T]()).(*T)
	return value
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
