package navmesh

import (
	"container/heap"
	"math"

	"github.com/plus3/bardmages/vmath"
)

type neighbor struct {
	col      int
	row      int
	cost     float64
	diagonal bool
}

// The first four entries are the orthogonal moves.
var neighborOffsets = [...]neighbor{
	{col: 0, row: -1, cost: 1},
	{col: 1, row: 0, cost: 1},
	{col: 0, row: 1, cost: 1},
	{col: -1, row: 0, cost: 1},
	{col: 1, row: -1, cost: math.Sqrt2, diagonal: true},
	{col: 1, row: 1, cost: math.Sqrt2, diagonal: true},
	{col: -1, row: 1, cost: math.Sqrt2, diagonal: true},
	{col: -1, row: -1, cost: math.Sqrt2, diagonal: true},
}

type openNode struct {
	index    int
	priority float64
	order    int
}

type openSet []openNode

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].priority == o[j].priority {
		return o[i].order < o[j].order
	}
	return o[i].priority < o[j].priority
}
func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any) { *o = append(*o, x.(openNode)) }
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}

func octile(dc, dr int) float64 {
	dx := math.Abs(float64(dc))
	dy := math.Abs(float64(dr))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// canTraverseDiagonal forbids cutting past a blocked orthogonal neighbour.
func (g *Grid) canTraverseDiagonal(col, row int, d neighbor) bool {
	if !d.diagonal {
		return true
	}
	return g.Walkable(col+d.col, row) && g.Walkable(col, row+d.row)
}

// findCells runs A* and returns the chain of cell indices from start to goal.
func (g *Grid) findCells(start, goal int) []int {
	n := len(g.walkable)
	gScore := make([]float64, n)
	cameFrom := make([]int, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	goalCol, goalRow := goal%g.cols, goal/g.cols
	open := &openSet{}
	order := 0
	gScore[start] = 0
	heap.Push(open, openNode{index: start, priority: octile(start%g.cols-goalCol, start/g.cols-goalRow)})

	for open.Len() > 0 {
		current := heap.Pop(open).(openNode)
		if closed[current.index] {
			continue
		}
		if current.index == goal {
			return reconstruct(cameFrom, goal)
		}
		closed[current.index] = true

		col, row := current.index%g.cols, current.index/g.cols
		for _, d := range neighborOffsets {
			nc, nr := col+d.col, row+d.row
			if !g.Walkable(nc, nr) || !g.canTraverseDiagonal(col, row, d) {
				continue
			}
			next := g.index(nc, nr)
			if closed[next] {
				continue
			}
			cost := gScore[current.index] + d.cost
			if cost >= gScore[next] {
				continue
			}
			gScore[next] = cost
			cameFrom[next] = current.index
			order++
			heap.Push(open, openNode{
				index:    next,
				priority: cost + octile(nc-goalCol, nr-goalRow),
				order:    order,
			})
		}
	}
	return nil
}

func reconstruct(cameFrom []int, goal int) []int {
	var chain []int
	for idx := goal; idx != -1; idx = cameFrom[idx] {
		chain = append(chain, idx)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CalculatePath finds a route from one world position to another. Endpoints on
// blocked cells are moved to the nearest walkable cell; endpoints outside the
// grid, or goals that cannot be reached, yield an empty path. The returned
// corners all share the origin's height.
func (g *Grid) CalculatePath(from, to vmath.Vec3) Path {
	origin := from.XZ()
	target := to.XZ()

	startCol, startRow, ok := g.Locate(origin)
	if !ok {
		return nil
	}
	goalCol, goalRow, ok := g.Locate(target)
	if !ok {
		return nil
	}

	startExact := g.Walkable(startCol, startRow)
	if !startExact {
		if startCol, startRow, ok = g.closestWalkable(startCol, startRow); !ok {
			return nil
		}
	}
	goalExact := g.Walkable(goalCol, goalRow)
	if !goalExact {
		if goalCol, goalRow, ok = g.closestWalkable(goalCol, goalRow); !ok {
			return nil
		}
	}

	chain := g.findCells(g.index(startCol, startRow), g.index(goalCol, goalRow))
	if len(chain) == 0 {
		return nil
	}

	centers := make([]vmath.Vec2, 0, len(chain))
	for _, idx := range chain {
		centers = append(centers, g.WorldPos(idx%g.cols, idx/g.cols))
	}
	// The origin stands in for the start cell and the destination for the
	// goal cell, unless either had to be snapped.
	if startExact {
		centers = centers[1:]
	}
	if len(centers) > 0 {
		centers = centers[:len(centers)-1]
	}
	goalPoint := g.WorldPos(goalCol, goalRow)
	if goalExact {
		goalPoint = target
	}

	points := make([]vmath.Vec2, 0, len(centers)+2)
	points = append(points, origin)
	points = append(points, centers...)
	points = append(points, goalPoint)

	return g.stringPull(points, from.Y)
}

// stringPull keeps only the points needed to stay in line of sight.
func (g *Grid) stringPull(points []vmath.Vec2, y float64) Path {
	path := Path{points[0].XZ(y)}
	anchor := 0
	for anchor < len(points)-1 {
		next := anchor + 1
		for j := len(points) - 1; j > anchor+1; j-- {
			if g.lineOfSight(points[anchor], points[j]) {
				next = j
				break
			}
		}
		path = append(path, points[next].XZ(y))
		anchor = next
	}
	return path
}
