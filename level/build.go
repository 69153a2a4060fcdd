package level

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/tune"
	"github.com/plus3/bardmages/vmath"
)

// BuildOptions customise Build. The zero value is usable.
type BuildOptions struct {
	Logger  *log.Logger
	Catalog []tune.Tune // defaults to tune.DefaultCatalog()
}

// World is a built level ready to simulate.
type World struct {
	Config     *Config
	Storage    *ecs.Storage
	Grid       *navmesh.Grid
	Registry   *bardmage.Registry
	Characters []ecs.EntityId
	Obstacles  []navmesh.Rect
}

// RegisterComponents registers every component a level uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	bardmage.RegisterComponents(registry)
	ai.RegisterComponents(registry)
}

// Build populates storage with the level's characters and creates the match.
// The storage's registry is extended with every component the level needs.
func Build(cfg *Config, storage *ecs.Storage, opts BuildOptions) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = tune.DefaultCatalog()
	}

	RegisterComponents(storage.Registry())

	world := &World{
		Config:   cfg,
		Storage:  storage,
		Registry: bardmage.NewRegistry(),
	}
	for i, o := range cfg.Obstacles {
		if o.MaxX <= o.MinX || o.MaxZ <= o.MinZ {
			logger.Warn("skipping empty obstacle", "index", i, "level", cfg.Name)
			continue
		}
		world.Obstacles = append(world.Obstacles, navmesh.Rect{MinX: o.MinX, MinZ: o.MinZ, MaxX: o.MaxX, MaxZ: o.MaxZ})
	}
	world.Grid = navmesh.NewGrid(navmesh.GridConfig{
		Width:       cfg.Arena.Width,
		Depth:       cfg.Arena.Depth,
		CellSize:    cfg.Arena.CellSize,
		AgentRadius: cfg.Arena.AgentRadius,
	}, world.Obstacles)

	for i, ch := range cfg.Characters {
		id, err := world.spawn(i, ch, catalog)
		if err != nil {
			return nil, err
		}
		world.Characters = append(world.Characters, id)
	}

	match := Match{ID: uuid.New(), Level: cfg.Name}
	storage.AddSingleton(match)
	logger.Info("match created",
		"id", match.ID,
		"level", cfg.Name,
		"characters", len(world.Characters),
	)
	return world, nil
}

func (w *World) spawn(index int, ch CharacterConfig, catalog []tune.Tune) (ecs.EntityId, error) {
	forward := vmath.Vec2{X: ch.Facing.X, Y: ch.Facing.Z}.Normalize()
	components := []any{
		bardmage.Transform{
			Position: vmath.Vec3{X: ch.Position.X, Z: ch.Position.Z},
			Forward:  forward.XZ(0),
		},
		bardmage.Player{ID: ch.Player},
		bardmage.Life{Health: ch.Health, MaxHealth: ch.Health},
		bardmage.Locomotion{Speed: ch.Speed, TurnSpeed: ch.TurnSpeed, Gradual: true},
	}
	if ch.IsMinion() {
		components = append(components, bardmage.Minion{Owner: ch.MinionOf})
	}

	if ch.Controller != "" {
		behavior, err := ai.NewBehavior(ch.Controller, ai.BehaviorConfig{
			AttackRange:    ch.AttackRange,
			RepathDistance: ch.RepathDistance,
		})
		if err != nil {
			return 0, err
		}
		bard := tune.NewBard(w.Config.Seed + uint64(index))
		bard.RandomizeTunes(catalog, w.Config.Rhythms, w.Config.TunesPerBard)
		components = append(components, bard, ai.NewControl(w.Grid), ai.NewController(behavior))
	}

	id := w.Storage.Spawn(components...)
	if ch.Controller == "" && !ch.IsMinion() {
		w.Registry.Add(ch.Player, id)
	}
	return id, nil
}
