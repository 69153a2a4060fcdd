// Package navmesh answers path queries over walkable ground.
package navmesh

import "github.com/plus3/bardmages/vmath"

//go:generate go tool mockgen -destination=./mocks/pathfinder_mock.go -package=mocks . Pathfinder

// Path is an ordered list of corners. The first corner is the query origin
// and the last is the destination. An empty path means no route was found.
type Path []vmath.Vec3

// Len returns the number of corners.
func (p Path) Len() int {
	return len(p)
}

// Length returns the horizontal length of the polyline.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += vmath.Distance2D(p[i-1], p[i])
	}
	return total
}

// Pathfinder computes paths between two world positions.
type Pathfinder interface {
	CalculatePath(from, to vmath.Vec3) Path
}
