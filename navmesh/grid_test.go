package navmesh_test

import (
	"testing"

	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openArena() *navmesh.Grid {
	return navmesh.NewGrid(navmesh.GridConfig{Width: 10, Depth: 10, CellSize: 1}, nil)
}

// wallArena has a wall across z=5 from x=0 to x=8, leaving a gap on the right.
func wallArena() *navmesh.Grid {
	return navmesh.NewGrid(navmesh.GridConfig{Width: 10, Depth: 10, CellSize: 1}, []navmesh.Rect{
		{MinX: 0, MinZ: 4.5, MaxX: 8, MaxZ: 5.5},
	})
}

func TestStraightPathHasTwoCorners(t *testing.T) {
	g := openArena()
	from := vmath.Vec3{X: 1.5, Y: 2, Z: 1.5}
	to := vmath.Vec3{X: 8.2, Y: 0, Z: 7.9}

	path := g.CalculatePath(from, to)
	require.Len(t, path, 2)
	assert.Equal(t, from, path[0])
	assert.Equal(t, vmath.Vec3{X: 8.2, Y: 2, Z: 7.9}, path[1], "corners take the origin height")
}

func TestPathRoutesAroundWall(t *testing.T) {
	g := wallArena()
	from := vmath.Vec3{X: 1.5, Z: 1.5}
	to := vmath.Vec3{X: 1.5, Z: 8.5}

	path := g.CalculatePath(from, to)
	require.GreaterOrEqual(t, len(path), 3)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[len(path)-1])

	for _, corner := range path {
		assert.True(t, g.IsWalkableAt(corner.XZ()), "corner %v must be walkable", corner)
	}
	// Any route has to pass the gap at x >= 8.
	passedGap := false
	for _, corner := range path {
		if corner.X >= 8 {
			passedGap = true
		}
	}
	assert.True(t, passedGap)
	assert.Greater(t, path.Length(), vmath.Distance2D(from, to))
}

func TestUnreachableGoalYieldsEmptyPath(t *testing.T) {
	g := navmesh.NewGrid(navmesh.GridConfig{Width: 10, Depth: 10, CellSize: 1}, []navmesh.Rect{
		{MinX: 0, MinZ: 4.5, MaxX: 10, MaxZ: 5.5},
	})

	path := g.CalculatePath(vmath.Vec3{X: 1.5, Z: 1.5}, vmath.Vec3{X: 1.5, Z: 8.5})
	assert.Empty(t, path)
}

func TestOutOfBoundsYieldsEmptyPath(t *testing.T) {
	g := openArena()

	assert.Empty(t, g.CalculatePath(vmath.Vec3{X: -3}, vmath.Vec3{X: 5, Z: 5}))
	assert.Empty(t, g.CalculatePath(vmath.Vec3{X: 5, Z: 5}, vmath.Vec3{X: 50, Z: 5}))
}

func TestBlockedGoalSnapsToNearestCell(t *testing.T) {
	g := wallArena()
	to := vmath.Vec3{X: 2.5, Z: 5}

	path := g.CalculatePath(vmath.Vec3{X: 2.5, Z: 1.5}, to)
	require.NotEmpty(t, path)
	last := path[len(path)-1]
	assert.NotEqual(t, to, last)
	assert.True(t, g.IsWalkableAt(last.XZ()))
}

func TestSameCellPath(t *testing.T) {
	g := openArena()
	from := vmath.Vec3{X: 3.2, Z: 3.2}
	to := vmath.Vec3{X: 3.7, Z: 3.6}

	assert.Equal(t, navmesh.Path{from, to}, g.CalculatePath(from, to))
}

func TestAgentRadiusShrinksWalkableArea(t *testing.T) {
	g := navmesh.NewGrid(navmesh.GridConfig{Width: 10, Depth: 10, CellSize: 1, AgentRadius: 0.6}, nil)

	assert.False(t, g.Walkable(0, 0), "edge cells are too close to the boundary")
	assert.True(t, g.Walkable(1, 1))
	assert.Equal(t, 10, g.Cols())
	assert.Equal(t, 10, g.Rows())
}
