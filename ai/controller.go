package ai

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/tune"
)

// DefaultTimingAccuracy is the chance an AI bard hits each beat perfectly.
const DefaultTimingAccuracy = 0.9

// Behavior decides what an AI character does. Initialize runs once, after the
// controller has found its opponents; UpdateAI runs every frame the character
// is alive, after its steering has been updated.
type Behavior interface {
	Initialize(agent *Agent)
	UpdateAI(agent *Agent, frame *ecs.UpdateFrame)
}

// Controller is the component that marks a character as AI driven.
type Controller struct {
	Behavior Behavior

	// Rhythms are the rhythms the level recognises, set when the controller starts.
	Rhythms []tune.RhythmType
	// Self is the player the character fights for.
	Self bardmage.PlayerID

	started bool
	roster  []ecs.EntityId
}

// NewController creates a controller running behavior.
func NewController(behavior Behavior) Controller {
	return Controller{Behavior: behavior}
}

// Started reports whether the controller has run its start step.
func (c *Controller) Started() bool {
	return c.started
}

// Roster returns the opponents found at start, in entity order.
func (c *Controller) Roster() []ecs.EntityId {
	return c.roster
}

// RegisterComponents registers the components in this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Control](registry)
	ecs.RegisterComponent[Controller](registry)
	ecs.RegisterComponent[tune.Bard](registry)
}

// AgentComponents is the component set an AI character must carry.
type AgentComponents struct {
	Transform  *bardmage.Transform
	Player     *bardmage.Player
	Life       *bardmage.Life
	Locomotion *bardmage.Locomotion
	Control    *Control
	Bard       *tune.Bard
	Controller *Controller
	Minion     *bardmage.Minion `ecs:"optional"`
}

// Agent is one AI character as seen by its behavior during a frame.
type Agent struct {
	AgentComponents
	Entity ecs.EntityId
}

// IsMinion reports whether the character was summoned by another player.
func (a *Agent) IsMinion() bool {
	return a.Minion != nil
}

// FacePosition turns the character toward target.
func (a *Agent) FacePosition(target *bardmage.Transform, override bool) bool {
	return a.Control.FacePosition(a.Transform, target.Position, override)
}

// MoveToPosition walks the character toward target.
func (a *Agent) MoveToPosition(target *bardmage.Transform, override bool) bool {
	return a.Control.MoveToPosition(a.Transform, target.Position, override)
}

// ClosestOpponent returns the roster entry nearest to the character by
// straight-line distance. Ties go to the earlier entry. Entities that no
// longer exist are skipped.
func (a *Agent) ClosestOpponent(storage *ecs.Storage) (ecs.EntityId, bool) {
	return a.closest(storage, false)
}

// ClosestLivingOpponent is ClosestOpponent restricted to opponents with health left.
func (a *Agent) ClosestLivingOpponent(storage *ecs.Storage) (ecs.EntityId, bool) {
	return a.closest(storage, true)
}

func (a *Agent) closest(storage *ecs.Storage, living bool) (ecs.EntityId, bool) {
	var (
		best     ecs.EntityId
		bestDist float64
		found    bool
	)
	for _, id := range a.Controller.roster {
		t := ecs.ReadComponent[bardmage.Transform](storage, id)
		if t == nil {
			continue
		}
		if living {
			if life := ecs.ReadComponent[bardmage.Life](storage, id); life != nil && !life.Alive() {
				continue
			}
		}
		dist := a.Transform.Position.Distance(t.Position)
		if !found || dist < bestDist {
			best, bestDist, found = id, dist, true
		}
	}
	return best, found
}

// ControllerSystem starts and runs every AI controller. Controllers seen for
// the first time are all started before any controller updates that frame.
type ControllerSystem struct {
	Registry *bardmage.Registry
	Rhythms  []tune.RhythmType
	Logger   *log.Logger

	Agents     ecs.Query[AgentComponents]
	Characters ecs.Query[struct {
		Transform *bardmage.Transform
		Player    *bardmage.Player
		Minion    *bardmage.Minion `ecs:"optional"`
	}]
}

func (s *ControllerSystem) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *ControllerSystem) Execute(frame *ecs.UpdateFrame) {
	agents := make([]*Agent, 0, s.Agents.Len())
	for id, comps := range s.Agents.Iter() {
		agents = append(agents, &Agent{AgentComponents: comps, Entity: id})
	}

	for _, agent := range agents {
		if !agent.Controller.started {
			s.start(agent)
		}
	}

	for _, agent := range agents {
		if !agent.Life.Alive() {
			continue
		}
		agent.Bard.UpdateTune(frame.DeltaTime)
		agent.Control.Update(agent.Transform)
		if agent.Controller.Behavior != nil {
			agent.Controller.Behavior.UpdateAI(agent, frame)
		}
		drive(agent)
	}
}

func (s *ControllerSystem) start(agent *Agent) {
	c := agent.Controller
	c.started = true

	if s.Registry != nil && !agent.IsMinion() {
		s.Registry.Add(agent.Player.ID, agent.Entity)
	}
	agent.Bard.TimingAccuracy = DefaultTimingAccuracy
	c.Rhythms = slices.Clone(s.Rhythms)

	c.Self = agent.Player.ID
	if agent.IsMinion() {
		c.Self = agent.Minion.Owner
	}

	c.roster = c.roster[:0]
	for id, other := range s.Characters.Iter() {
		if other.Player.ID == c.Self || other.Minion != nil {
			continue
		}
		c.roster = append(c.roster, id)
	}

	s.logger().Debug("controller started",
		"entity", agent.Entity,
		"player", agent.Player.ID,
		"self", c.Self,
		"opponents", len(c.roster),
	)

	if c.Behavior != nil {
		c.Behavior.Initialize(agent)
	}
}

// drive hands the steering output to locomotion for this frame.
func drive(agent *Agent) {
	control := agent.Control
	loco := agent.Locomotion
	loco.Input = control.Direction
	loco.TurnInPlace = control.IsTurning()
	loco.MaxStep = 0
	if !loco.TurnInPlace {
		loco.MaxStep = control.StepLimit(agent.Transform)
	}
}
