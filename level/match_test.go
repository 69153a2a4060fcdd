package level_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/level"
	"github.com/plus3/bardmages/tune"
	"github.com/plus3/bardmages/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func buildWorld(t *testing.T, cfg *level.Config) *level.World {
	t.Helper()
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	world, err := level.Build(cfg, storage, level.BuildOptions{Logger: quietLogger()})
	require.NoError(t, err)
	return world
}

func TestBuildSpawnsCharacters(t *testing.T) {
	world := buildWorld(t, level.Default())
	storage := world.Storage

	require.Len(t, world.Characters, 5)
	assert.Equal(t, 5, storage.Len())

	first := world.Characters[0]
	tr := ecs.ReadComponent[bardmage.Transform](storage, first)
	require.NotNil(t, tr)
	assert.Equal(t, 3.0, tr.Position.X)
	assert.Equal(t, 1.0, tr.Forward.X)

	bard := ecs.ReadComponent[tune.Bard](storage, first)
	require.NotNil(t, bard)
	assert.Len(t, bard.Tunes, 3)
	for _, tn := range bard.Tunes {
		assert.NotEqual(t, tune.RhythmSwing, tn.Rhythm)
	}

	assert.NotNil(t, ecs.ReadComponent[bardmage.Minion](storage, world.Characters[4]))
	assert.NotNil(t, ecs.ReadComponent[ai.Controller](storage, world.Characters[3]))

	var match *level.Match
	require.True(t, storage.ReadSingleton(&match))
	assert.Equal(t, "Whispering Grove", match.Level)
	assert.NotEmpty(t, match.ID.String())
	assert.False(t, match.Finished)

	assert.False(t, world.Grid.IsWalkableAt(vmath.Vec2{X: 15, Y: 10}), "the pond is not walkable")
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	_, err := level.Build(&level.Config{}, storage, level.BuildOptions{Logger: quietLogger()})
	assert.ErrorIs(t, err, level.ErrInvalidLevel)
	assert.Equal(t, 0, storage.Len())
}

func TestMatchSystemDeclaresWinner(t *testing.T) {
	cfg, err := level.Parse([]byte(`
arena: {width: 10, depth: 10}
characters:
  - {player: 1, position: {x: 1, z: 1}}
  - {player: 2, position: {x: 8, z: 8}}
  - {minion_of: 2, position: {x: 7, z: 8}}
`))
	require.NoError(t, err)
	world := buildWorld(t, cfg)
	scheduler := level.NewScheduler(world, quietLogger())

	scheduler.Once(0.5)
	var match *level.Match
	require.True(t, world.Storage.ReadSingleton(&match))
	assert.False(t, match.Finished)

	ecs.ReadComponent[bardmage.Life](world.Storage, world.Characters[1]).Damage(1000)
	scheduler.Once(0.5)

	assert.True(t, match.Finished)
	assert.Equal(t, bardmage.PlayerOne, match.Winner)
	assert.Equal(t, 1.0, match.Elapsed)

	scheduler.Once(0.5)
	assert.Equal(t, 1.0, match.Elapsed, "a finished match stops the clock")
	assert.False(t, world.Storage.Alive(world.Characters[2]), "the minion follows its owner")
}

func TestDefaultLevelMatchFinishes(t *testing.T) {
	world := buildWorld(t, level.Default())
	scheduler := level.NewScheduler(world, quietLogger())

	var match *level.Match
	require.True(t, world.Storage.ReadSingleton(&match))

	for i := 0; i < 60*240 && !match.Finished; i++ {
		scheduler.Once(1.0 / 60.0)
	}
	require.True(t, match.Finished)

	if match.Winner != bardmage.PlayerNone {
		entity, ok := world.Registry.Lookup(match.Winner)
		require.True(t, ok)
		assert.True(t, ecs.ReadComponent[bardmage.Life](world.Storage, entity).Alive())
	}
}
