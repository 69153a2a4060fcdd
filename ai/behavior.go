package ai

import (
	"fmt"

	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/vmath"
)

// BehaviorConfig tunes the stock behaviors. Zero fields take defaults.
type BehaviorConfig struct {
	AttackRange    float64
	RepathDistance float64
}

const (
	defaultAttackRange    = 3
	defaultRepathDistance = 1
)

// NewBehavior builds a fresh behavior by name: "idle" or "chaser".
func NewBehavior(name string, cfg BehaviorConfig) (Behavior, error) {
	switch name {
	case "idle", "":
		return Idle{}, nil
	case "chaser":
		return NewChaser(cfg), nil
	default:
		return nil, fmt.Errorf("unknown behavior %q", name)
	}
}

// Idle stands still.
type Idle struct{}

func (Idle) Initialize(*Agent) {}
func (Idle) UpdateAI(*Agent, *ecs.UpdateFrame) {}

// Chaser walks to the closest living opponent and plays tunes at it once in
// range. A finished tune damages the opponent it was aimed at.
type Chaser struct {
	AttackRange    float64
	RepathDistance float64

	destination vmath.Vec3
	target      ecs.EntityId
	aimed       ecs.EntityId
	nextTune    int
}

func NewChaser(cfg BehaviorConfig) *Chaser {
	c := &Chaser{AttackRange: cfg.AttackRange, RepathDistance: cfg.RepathDistance}
	if c.AttackRange <= 0 {
		c.AttackRange = defaultAttackRange
	}
	if c.RepathDistance <= 0 {
		c.RepathDistance = defaultRepathDistance
	}
	return c
}

// Target is the opponent currently being chased.
func (c *Chaser) Target() ecs.EntityId {
	return c.target
}

func (c *Chaser) Initialize(agent *Agent) {
	c.target = 0
	c.aimed = 0
	c.nextTune = 0
}

func (c *Chaser) UpdateAI(agent *Agent, frame *ecs.UpdateFrame) {
	c.resolveCast(agent, frame.Storage)

	target, ok := agent.ClosestLivingOpponent(frame.Storage)
	if !ok {
		c.target = 0
		if agent.Control.IsMoving() {
			agent.Control.Stop()
		}
		return
	}
	targetTransform := ecs.ReadComponent[bardmage.Transform](frame.Storage, target)

	if vmath.Distance2D(agent.Transform.Position, targetTransform.Position) > c.AttackRange {
		repath := !agent.Control.IsMoving() ||
			target != c.target ||
			vmath.Distance2D(c.destination, targetTransform.Position) > c.RepathDistance
		if repath && agent.MoveToPosition(targetTransform, true) {
			c.destination = targetTransform.Position
		}
		c.target = target
		return
	}

	c.target = target
	if agent.Control.IsMoving() {
		agent.Control.Stop()
	}
	agent.FacePosition(targetTransform, false)

	if _, playing := agent.Bard.Playing(); playing || len(agent.Bard.Tunes) == 0 {
		return
	}
	if agent.Bard.Play(c.nextTune % len(agent.Bard.Tunes)) {
		c.nextTune++
		c.aimed = target
	}
}

func (c *Chaser) resolveCast(agent *Agent, storage *ecs.Storage) {
	cast, ok := agent.Bard.TakeCast()
	if !ok || c.aimed == 0 {
		return
	}
	aimed := c.aimed
	c.aimed = 0
	if life := ecs.ReadComponent[bardmage.Life](storage, aimed); life != nil {
		life.Damage(cast.Power)
	}
}
