package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/bardmages/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Len())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1.0), pos.X)

	score := ecs.ReadComponent[Score](storage, id)
	require.NotNil(t, score)
	assert.Equal(t, Score(32), *score)
}

func TestSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	assert.Panics(t, func() {
		storage.Spawn(Position{})
	})
	assert.Equal(t, 0, storage.Len())
}

func TestSpawnRejectsInvalidComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(func() {}) })
}

func TestComponentPointerIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 7})
	pos := ecs.ReadComponent[Position](storage, first)

	// Enough spawns to allocate several new blocks.
	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Name{Value: "doomed"})
	storage.Delete(id)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, 0, storage.Len())

	// Deleting twice is a no-op.
	storage.Delete(id)
	assert.Equal(t, 0, storage.Len())
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	old := storage.Spawn(Position{X: 1})
	storage.Delete(old)
	fresh := storage.Spawn(Position{X: 2})

	assert.Equal(t, old.Index(), fresh.Index())
	assert.NotEqual(t, old.Generation(), fresh.Generation())
	assert.False(t, storage.Alive(old))
	assert.Nil(t, ecs.ReadComponent[Position](storage, old))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, fresh).X)
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	velocityType := reflect.TypeFor[Velocity]()

	id := storage.Spawn(Position{X: 1})
	assert.False(t, storage.HasComponent(id, velocityType))

	storage.AddComponent(id, Velocity{DX: 3})
	assert.True(t, storage.HasComponent(id, velocityType))
	assert.Equal(t, float32(3), ecs.ReadComponent[Velocity](storage, id).DX)

	storage.RemoveComponent(id, velocityType)
	assert.False(t, storage.HasComponent(id, velocityType))
	assert.True(t, storage.Alive(id))

	storage.RemoveComponent(id, reflect.TypeFor[Position]())
	assert.False(t, storage.Alive(id), "entity without components is deleted")
}

func TestEntitiesIterateInSlotOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Tag("a"))
	b := storage.Spawn(Tag("b"))
	c := storage.Spawn(Tag("c"))
	storage.Delete(b)

	var got []ecs.EntityId
	for id := range storage.Entities() {
		got = append(got, id)
	}
	assert.Equal(t, []ecs.EntityId{a, c}, got)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))

	storage.AddSingleton(Health{Current: 5, Max: 10})

	var health *Health
	require.True(t, storage.ReadSingleton(&health))
	health.Current = 9

	singleton := ecs.NewSingleton[Health](storage)
	assert.Equal(t, 9, singleton.Get().Current)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{})
	storage.AddSingleton(Health{})

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Contains(t, stats.ComponentCounts, ecs.ComponentCount{Type: "ecs_test.Position", Count: 2})
	assert.Contains(t, stats.ComponentCounts, ecs.ComponentCount{Type: "ecs_test.Velocity", Count: 1})
}

func TestComponentTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, storage.ComponentTypes(id))

	storage.Delete(id)
	assert.Nil(t, storage.ComponentTypes(id))
}
