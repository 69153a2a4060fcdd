package ai_test

import (
	"testing"

	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/navmesh/mocks"
	"github.com/plus3/bardmages/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockControl(t *testing.T) (*ai.Control, *mocks.MockPathfinder) {
	ctrl := gomock.NewController(t)
	pathfinder := mocks.NewMockPathfinder(ctrl)
	control := ai.NewControl(pathfinder)
	return &control, pathfinder
}

func facingX() *bardmage.Transform {
	return &bardmage.Transform{Forward: vmath.Vec3{X: 1}}
}

func TestZeroControlIsIdle(t *testing.T) {
	var control ai.Control

	assert.False(t, control.IsMoving())
	assert.False(t, control.IsTurning())
	assert.False(t, control.IsBusy())
	assert.Equal(t, -1, control.NodeIndex())
	assert.Equal(t, ai.SteeringIdle, control.State())
	_, ok := control.CurrentCorner()
	assert.False(t, ok)
}

func TestMoveToPositionStartsAtFirstCorner(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()
	goal := vmath.Vec3{X: 5, Z: 5}
	path := navmesh.Path{{}, {X: 5}, goal}

	pathfinder.EXPECT().CalculatePath(tr.Position, goal).Return(path)

	require.True(t, control.MoveToPosition(tr, goal, false))
	assert.True(t, control.IsMoving())
	assert.Equal(t, 0, control.NodeIndex())
	assert.Equal(t, path, control.Path())
	assert.Equal(t, ai.SteeringMoving, control.State())
}

func TestMoveToPositionWithoutPathChangesNothing(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()

	pathfinder.EXPECT().CalculatePath(gomock.Any(), vmath.Vec3{X: 9}).Return(nil).Times(2)

	assert.False(t, control.MoveToPosition(tr, vmath.Vec3{X: 9}, false))
	assert.Equal(t, ai.SteeringIdle, control.State())
	assert.Equal(t, -1, control.NodeIndex())

	// An active path survives a failed override.
	pathfinder.EXPECT().CalculatePath(gomock.Any(), vmath.Vec3{X: 2}).Return(navmesh.Path{{}, {X: 2}})
	require.True(t, control.MoveToPosition(tr, vmath.Vec3{X: 2}, false))
	control.Update(tr)
	before := *control

	assert.False(t, control.MoveToPosition(tr, vmath.Vec3{X: 9}, true))
	assert.Equal(t, before, *control)
}

func TestBusyControlIgnoresRequestsWithoutOverride(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()
	first := navmesh.Path{{}, {X: 3}}
	second := navmesh.Path{{}, {Z: 4}}

	pathfinder.EXPECT().CalculatePath(gomock.Any(), vmath.Vec3{X: 3}).Return(first)
	require.True(t, control.MoveToPosition(tr, vmath.Vec3{X: 3}, false))
	control.Update(tr)
	require.Equal(t, 1, control.NodeIndex())

	assert.False(t, control.MoveToPosition(tr, vmath.Vec3{Z: 4}, false))
	assert.False(t, control.FacePosition(tr, vmath.Vec3{Z: -1}, false))
	assert.Equal(t, first, control.Path())
	assert.Equal(t, 1, control.NodeIndex())
	assert.False(t, control.IsTurning())

	pathfinder.EXPECT().CalculatePath(gomock.Any(), vmath.Vec3{Z: 4}).Return(second)
	require.True(t, control.MoveToPosition(tr, vmath.Vec3{Z: 4}, true))
	assert.Equal(t, second, control.Path())
	assert.Equal(t, 0, control.NodeIndex())
}

func TestFacePositionTurnsUntilAligned(t *testing.T) {
	var control ai.Control
	tr := facingX()

	require.True(t, control.FacePosition(tr, vmath.Vec3{Z: 10, Y: 3}, false))
	assert.True(t, control.IsTurning())
	assert.Equal(t, vmath.Vec2{Y: 1}, control.Direction)

	control.Update(tr)
	assert.True(t, control.IsTurning(), "still facing +X")

	tr.Forward = vmath.Vec3{Z: 1}
	control.Update(tr)
	assert.False(t, control.IsTurning())
	assert.True(t, control.Direction.IsZero())
	assert.Equal(t, ai.SteeringIdle, control.State())
}

func TestFacingOwnPositionCompletesImmediately(t *testing.T) {
	var control ai.Control
	tr := facingX()

	control.FacePosition(tr, tr.Position, false)
	assert.True(t, control.Direction.IsZero())

	control.Update(tr)
	assert.False(t, control.IsTurning())
}

func TestUpdateWalksCornersThenGoesIdle(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()
	path := navmesh.Path{{}, {X: 4}, {X: 4, Z: 4}}
	pathfinder.EXPECT().CalculatePath(gomock.Any(), gomock.Any()).Return(path)
	require.True(t, control.MoveToPosition(tr, path[2], false))

	control.Update(tr)
	assert.Equal(t, 1, control.NodeIndex(), "the origin corner is reached at once")

	control.Update(tr)
	assert.Equal(t, vmath.Vec2{X: 1}, control.Direction)
	assert.InDelta(t, 4, control.RemainingToCorner(tr), 1e-12)
	assert.InDelta(t, 4, control.StepLimit(tr), 1e-12)

	tr.Position = vmath.Vec3{X: 3.95, Y: 7}
	control.Update(tr)
	assert.Equal(t, 2, control.NodeIndex(), "arrival ignores height")

	tr.Position = vmath.Vec3{X: 4, Z: 3.99}
	control.Update(tr)
	assert.False(t, control.IsMoving())
	assert.Equal(t, -1, control.NodeIndex())
	assert.Equal(t, 0.0, control.RemainingToCorner(tr))
}

func TestFaceOverrideKeepsPath(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()
	pathfinder.EXPECT().CalculatePath(gomock.Any(), gomock.Any()).Return(navmesh.Path{{}, {X: 5}})
	require.True(t, control.MoveToPosition(tr, vmath.Vec3{X: 5}, false))

	require.True(t, control.FacePosition(tr, vmath.Vec3{Z: -5}, true))
	assert.True(t, control.IsMoving())
	assert.True(t, control.IsTurning())
	assert.Equal(t, ai.SteeringTurning, control.State())
}

func TestStop(t *testing.T) {
	control, pathfinder := newMockControl(t)
	tr := facingX()
	pathfinder.EXPECT().CalculatePath(gomock.Any(), gomock.Any()).Return(navmesh.Path{{}, {X: 5}})
	control.MoveToPosition(tr, vmath.Vec3{X: 5}, false)
	control.FacePosition(tr, vmath.Vec3{Z: 1}, true)

	control.Stop()

	assert.False(t, control.IsBusy())
	assert.True(t, control.Direction.IsZero())
	assert.Empty(t, control.Path())
	assert.Equal(t, 0.0, control.StepLimit(tr))
}

func TestSteeringStateString(t *testing.T) {
	assert.Equal(t, "idle", ai.SteeringIdle.String())
	assert.Equal(t, "turning", ai.SteeringTurning.String())
	assert.Equal(t, "moving", ai.SteeringMoving.String())
}
