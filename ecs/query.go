package ecs

import "iter"

// Query wraps a View and snapshots its matches once per execution, so systems
// can iterate the same result set several times in a frame.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	entities   []EntityId
	items      []T
	cacheValid bool
}

// NewQuery creates a new Query over the storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cacheValid = false
}

// Execute rebuilds the cached entity and component lists.
// Called automatically by the Scheduler before each system runs.
func (q *Query[T]) Execute() {
	q.entities = q.entities[:0]
	q.items = q.items[:0]
	for id, item := range q.view.Iter() {
		q.entities = append(q.entities, id)
		q.items = append(q.items, item)
	}
	q.cacheValid = true
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.items[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
