package ai_test

import (
	"testing"

	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/vmath"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// stubPathfinder returns the same path for every query.
type stubPathfinder struct {
	path navmesh.Path
}

func (s stubPathfinder) CalculatePath(from, to vmath.Vec3) navmesh.Path {
	return s.path
}

func genVec3(t *rapid.T, label string) vmath.Vec3 {
	return vmath.Vec3{
		X: rapid.Float64Range(-50, 50).Draw(t, label+".x"),
		Y: rapid.Float64Range(-2, 2).Draw(t, label+".y"),
		Z: rapid.Float64Range(-50, 50).Draw(t, label+".z"),
	}
}

func genPath(t *rapid.T, origin vmath.Vec3) navmesh.Path {
	n := rapid.IntRange(1, 8).Draw(t, "corners")
	path := navmesh.Path{origin}
	for i := 1; i < n; i++ {
		path = append(path, genVec3(t, "corner"))
	}
	return path
}

func TestPropertyCornersAdvanceMonotonically(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := &bardmage.Transform{Position: genVec3(t, "origin"), Forward: vmath.Vec3{X: 1}}
		path := genPath(t, tr.Position)
		control := ai.NewControl(stubPathfinder{path: path})

		require.True(t, control.MoveToPosition(tr, path[len(path)-1], false))
		require.Equal(t, 0, control.NodeIndex())

		last := control.NodeIndex()
		for range len(path) {
			control.Update(tr)
			index := control.NodeIndex()
			if index == -1 {
				require.Equal(t, len(path)-1, last)
				break
			}
			require.Equal(t, last+1, index)
			last = index

			corner, ok := control.CurrentCorner()
			require.True(t, ok)
			tr.Position = corner
		}
		require.False(t, control.IsMoving())
	})
}

func TestPropertyEmptyPathNeverChangesState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := &bardmage.Transform{Position: genVec3(t, "origin"), Forward: vmath.Vec3{Z: 1}}
		pathfinder := &stubPathfinder{path: genPath(t, tr.Position)}
		control := ai.NewControl(pathfinder)

		if rapid.Bool().Draw(t, "moving") {
			control.MoveToPosition(tr, genVec3(t, "first"), false)
		}
		if rapid.Bool().Draw(t, "turning") {
			control.FacePosition(tr, genVec3(t, "look"), true)
		}

		pathfinder.path = nil
		before := control
		control.MoveToPosition(tr, genVec3(t, "goal"), rapid.Bool().Draw(t, "override"))
		require.Equal(t, before, control)
	})
}

func TestPropertyTurnCompletesWhenAligned(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := &bardmage.Transform{Forward: vmath.Vec3{X: 1}}
		target := genVec3(t, "target")
		var control ai.Control

		require.True(t, control.FacePosition(tr, target, false))
		require.True(t, control.IsTurning())

		tr.Forward = control.Direction.XZ(0)
		control.Update(tr)
		require.False(t, control.IsTurning())
		require.True(t, control.Direction.IsZero())
	})
}

func TestPropertyClosestOpponentIsNearest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		storage := newAgentStorage()
		self := spawnAgent(storage, bardmage.PlayerOne, genVec3(t, "self"), ai.Idle{})

		n := rapid.IntRange(0, 6).Draw(t, "opponents")
		positions := make(map[ecs.EntityId]vmath.Vec3)
		for i := range n {
			pos := genVec3(t, "opponent")
			id := storage.Spawn(bardmage.Transform{Position: pos}, bardmage.Player{ID: bardmage.PlayerID(2 + i%3)})
			positions[id] = pos
		}

		runControllers(storage, nil)
		agent := agentOf(storage, self)

		best, ok := agent.ClosestOpponent(storage)
		if n == 0 {
			require.False(t, ok)
			return
		}
		require.True(t, ok)
		bestDist := agent.Transform.Position.Distance(positions[best])
		for _, pos := range positions {
			require.LessOrEqual(t, bestDist, agent.Transform.Position.Distance(pos))
		}
	})
}
