// Package ai steers computer-controlled bardmages: a per-character steering
// state machine (Control) and the controller that runs a behavior on top of it.
package ai

import (
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/vmath"
)

const (
	// TurnEpsilon is the facing error, in degrees, below which a turn is complete.
	TurnEpsilon = 0.1
	// ArrivalEpsilon is the horizontal distance at which a path corner counts as reached.
	ArrivalEpsilon = 0.1
)

// SteeringState is the phase a Control is in.
type SteeringState uint8

const (
	SteeringIdle SteeringState = iota
	SteeringTurning
	SteeringMoving
)

func (s SteeringState) String() string {
	switch s {
	case SteeringTurning:
		return "turning"
	case SteeringMoving:
		return "moving"
	default:
		return "idle"
	}
}

// Control is the steering component of an AI character. It either turns in
// place toward a point or walks a path corner by corner, and publishes the
// wanted heading in Direction for locomotion to act on.
//
// The zero value is idle. Pathfinder must be set before MoveToPosition is used.
type Control struct {
	Direction  vmath.Vec2
	Pathfinder navmesh.Pathfinder

	path    navmesh.Path
	next    int // index+1 of the corner being steered to, 0 without an active path
	turning bool

	steer    vmath.Vec3 // corner Direction was last computed toward
	steering bool
}

// NewControl creates an idle control that queries the given pathfinder.
func NewControl(pathfinder navmesh.Pathfinder) Control {
	return Control{Pathfinder: pathfinder}
}

// IsMoving reports whether a path is being followed.
func (c *Control) IsMoving() bool {
	return c.next > 0
}

// IsTurning reports whether a turn is in progress.
func (c *Control) IsTurning() bool {
	return c.turning
}

// IsBusy reports whether any action is in progress.
func (c *Control) IsBusy() bool {
	return c.IsMoving() || c.turning
}

// NodeIndex is the index of the corner being steered to, or -1.
func (c *Control) NodeIndex() int {
	return c.next - 1
}

// Path returns the last path found. It must not be modified.
func (c *Control) Path() navmesh.Path {
	return c.path
}

// CurrentCorner returns the corner being steered to.
func (c *Control) CurrentCorner() (vmath.Vec3, bool) {
	if !c.IsMoving() {
		return vmath.Vec3{}, false
	}
	return c.path[c.next-1], true
}

func (c *Control) State() SteeringState {
	switch {
	case c.turning:
		return SteeringTurning
	case c.IsMoving():
		return SteeringMoving
	default:
		return SteeringIdle
	}
}

// RemainingToCorner is the horizontal distance from t to the current corner,
// or 0 when not moving.
func (c *Control) RemainingToCorner(t *bardmage.Transform) float64 {
	corner, ok := c.CurrentCorner()
	if !ok {
		return 0
	}
	return vmath.Distance2D(t.Position, corner)
}

// StepLimit is how far t may travel along Direction this frame without
// passing the corner Direction points at. It is 0 when no limit applies.
func (c *Control) StepLimit(t *bardmage.Transform) float64 {
	if !c.steering {
		return 0
	}
	return vmath.Distance2D(t.Position, c.steer)
}

// FacePosition starts turning toward pos. It is ignored while busy unless
// override is set, and reports whether the turn was started.
func (c *Control) FacePosition(t *bardmage.Transform, pos vmath.Vec3, override bool) bool {
	if !override && c.IsBusy() {
		return false
	}
	c.Direction = facing(t.Position, pos)
	c.turning = true
	return true
}

// MoveToPosition starts walking toward pos along a freshly computed path. It
// is ignored while busy unless override is set. When no path exists nothing
// changes. It reports whether a new path was started.
func (c *Control) MoveToPosition(t *bardmage.Transform, pos vmath.Vec3, override bool) bool {
	if !override && c.IsBusy() {
		return false
	}
	if c.Pathfinder == nil {
		return false
	}
	path := c.Pathfinder.CalculatePath(t.Position, pos)
	if len(path) == 0 {
		return false
	}
	c.path = path
	c.next = 1
	return true
}

// Stop abandons the current path and turn.
func (c *Control) Stop() {
	c.path = nil
	c.next = 0
	c.turning = false
	c.steering = false
	c.Direction = vmath.Vec2{}
}

// Update advances the state machine for one frame given the character's
// current transform.
func (c *Control) Update(t *bardmage.Transform) {
	c.steering = false
	if c.turning && vmath.Angle(t.Forward.XZ(), c.Direction) < TurnEpsilon {
		c.turning = false
		c.Direction = vmath.Vec2{}
		return
	}
	if !c.IsMoving() {
		return
	}

	corner := c.path[c.next-1]
	c.Direction = facing(t.Position, corner)
	c.steer = corner
	c.steering = true
	if vmath.Distance2D(t.Position, corner) < ArrivalEpsilon {
		c.next++
		if c.next > len(c.path) {
			c.next = 0
		}
	}
}

func facing(from, to vmath.Vec3) vmath.Vec2 {
	return to.Sub(from).XZ().Normalize()
}
