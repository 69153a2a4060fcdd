package ecs

import (
	"iter"
	"reflect"
)

// View represents a query for entities with a specific combination of components.
// The type T must be a struct whose fields are pointers to component types.
// Embedded fields are always required; named fields can be marked optional
// with the `ecs:"optional"` struct tag and are left nil when missing.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	fields   []int
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fields = append(v.fields, i)
	}
	return v
}

// Fill populates the provided struct with component pointers for the entity.
// Returns false if the entity is missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}

	target := reflect.ValueOf(ptr).Elem()
	for i, compType := range v.types {
		field := target.Field(v.fields[i])
		st, ok := v.storage.stores[compType]
		var component any
		if ok {
			component = st.Get(id)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		field.Set(reflect.ValueOf(component))
	}
	return true
}

// Get returns a populated view struct for the entity, or nil when a required component is missing
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter yields every entity that has all required components, in entity slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for id := range v.storage.Entities() {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
