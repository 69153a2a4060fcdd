package bardmage

import (
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/vmath"
)

// Locomotion turns a direction input into movement. Whatever drives the
// character (an AI controller, a gamepad) writes Input every frame; the
// LocomotionSystem consumes it.
type Locomotion struct {
	Speed     float64 // units per second
	TurnSpeed float64 // degrees per second, used when Gradual
	Gradual   bool

	Input       vmath.Vec2
	MaxStep     float64 // caps this frame's travel when > 0
	TurnInPlace bool
}

// Step applies and clears the pending input.
func (l *Locomotion) Step(t *Transform, dt float64) {
	dir := l.Input.Normalize()
	maxStep := l.MaxStep
	turnInPlace := l.TurnInPlace
	l.Input = vmath.Vec2{}
	l.MaxStep = 0
	l.TurnInPlace = false

	if dir.IsZero() {
		return
	}

	facing := dir
	if l.Gradual && l.TurnSpeed > 0 {
		facing = vmath.RotateTowards(t.Forward.XZ(), dir, l.TurnSpeed*dt)
	}
	t.Forward = facing.XZ(0)

	if turnInPlace {
		return
	}
	step := l.Speed * dt
	if maxStep > 0 && step > maxStep {
		step = maxStep
	}
	t.Position = t.Position.Add(dir.Scale(step).XZ(0))
}

// LocomotionSystem moves every living character according to its input.
type LocomotionSystem struct {
	Movers ecs.Query[struct {
		*Transform
		*Locomotion
		Life *Life `ecs:"optional"`
	}]
}

func (s *LocomotionSystem) Execute(frame *ecs.UpdateFrame) {
	for _, m := range s.Movers.Iter() {
		if m.Life != nil && !m.Life.Alive() {
			m.Locomotion.Input = vmath.Vec2{}
			continue
		}
		m.Locomotion.Step(m.Transform, frame.DeltaTime)
	}
}
