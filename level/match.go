package level

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
)

// Match is the singleton tracking the state of the fight.
type Match struct {
	ID       uuid.UUID
	Level    string
	Elapsed  float64
	Finished bool
	Winner   bardmage.PlayerID // PlayerNone on a draw
}

// MatchSystem ends the match once at most one player still has a living
// character. Minions do not count.
type MatchSystem struct {
	Logger *log.Logger

	Match   ecs.Singleton[Match]
	Players ecs.Query[struct {
		Player *bardmage.Player
		Life   *bardmage.Life
		Minion *bardmage.Minion `ecs:"optional"`
	}]
}

func (s *MatchSystem) Execute(frame *ecs.UpdateFrame) {
	match := s.Match.Get()
	if match == nil || match.Finished {
		return
	}
	match.Elapsed += frame.DeltaTime

	alive := make(map[bardmage.PlayerID]struct{})
	for p := range s.Players.Values() {
		if p.Minion == nil && p.Life.Alive() {
			alive[p.Player.ID] = struct{}{}
		}
	}
	if len(alive) > 1 {
		return
	}

	match.Finished = true
	for id := range alive {
		match.Winner = id
	}

	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("match finished",
		"id", match.ID,
		"winner", match.Winner,
		"elapsed", match.Elapsed,
		"tick", frame.Tick,
	)
}

// NewScheduler registers the standard systems for a world in update order:
// AI controllers, locomotion, minion upkeep and match flow, followed by any
// extra systems.
func NewScheduler(world *World, logger *log.Logger, extra ...ecs.System) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(world.Storage)
	scheduler.Register(&ai.ControllerSystem{
		Registry: world.Registry,
		Rhythms:  world.Config.Rhythms,
		Logger:   logger,
	})
	scheduler.Register(&bardmage.LocomotionSystem{})
	scheduler.Register(&bardmage.MinionSystem{Registry: world.Registry})
	scheduler.Register(&MatchSystem{Logger: logger})
	for _, system := range extra {
		scheduler.Register(system)
	}
	return scheduler
}
