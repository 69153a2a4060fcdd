package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/bardmages/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnSystem struct {
	spawned []ecs.EntityId
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		s.spawned = append(s.spawned, id)
	}, Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type countingSystem struct {
	Entities ecs.Query[struct{ *Position }]
	seen     int
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = s.Entities.Len()
}

type mutateSystem struct {
	entity ecs.EntityId
	order  []string
}

func (s *mutateSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, Velocity{DX: 5, DY: 10})
	frame.Commands.RemoveComponent(s.entity, reflect.TypeFor[Name]())
	frame.Commands.Defer(func() { s.order = append(s.order, "defer") })
	frame.Commands.Delete(s.entity)
	frame.Commands.AddComponent(s.entity, Health{Current: 1})
}

func TestCommandsAreDeferredToEndOfFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	spawner := &spawnSystem{}
	counter := &countingSystem{}
	scheduler.Register(spawner)
	scheduler.Register(counter)

	scheduler.Once(0)
	assert.Equal(t, 0, counter.seen, "spawns are invisible during the frame that queued them")
	assert.Equal(t, 2, storage.Len())
	require.Len(t, spawner.spawned, 1)
	assert.True(t, storage.Alive(spawner.spawned[0]))

	scheduler.Once(0)
	assert.Equal(t, 2, counter.seen)
}

func TestCommandsApplyInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Name{Value: "x"})

	scheduler := ecs.NewScheduler(storage)
	mutate := &mutateSystem{entity: id}
	scheduler.Register(mutate)
	scheduler.Once(0)

	assert.False(t, storage.Alive(id))
	assert.Equal(t, []string{"defer"}, mutate.order)
	assert.Equal(t, 0, storage.Len(), "add after delete is dropped")
}
