package navmesh

import (
	"math"

	"github.com/plus3/bardmages/vmath"
)

// Rect is an axis-aligned obstacle footprint on the xz plane.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ float64
}

// GridConfig describes the walkable area covered by a Grid.
type GridConfig struct {
	Width       float64
	Depth       float64
	CellSize    float64
	AgentRadius float64
}

// Grid is a uniform walkability grid over the xz plane starting at the origin.
type Grid struct {
	cols, rows int
	cellSize   float64
	width      float64
	depth      float64
	walkable   []bool
}

// NewGrid rasterises obstacles into a grid. A cell is walkable when an agent
// of the configured radius standing on its centre overlaps no obstacle and
// stays inside the arena.
func NewGrid(cfg GridConfig, obstacles []Rect) *Grid {
	cellSize := cfg.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Ceil(cfg.Width/cellSize)), 1)
	rows := max(int(math.Ceil(cfg.Depth/cellSize)), 1)

	g := &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		width:    cfg.Width,
		depth:    cfg.Depth,
		walkable: make([]bool, cols*rows),
	}

	r := cfg.AgentRadius
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := g.WorldPos(col, row)
			if c.X < r || c.X > cfg.Width-r || c.Y < r || c.Y > cfg.Depth-r {
				continue
			}
			blocked := false
			for _, obs := range obstacles {
				if circleRectOverlap(c, r, obs) {
					blocked = true
					break
				}
			}
			g.walkable[g.index(col, row)] = !blocked
		}
	}
	return g
}

func circleRectOverlap(c vmath.Vec2, radius float64, rect Rect) bool {
	nearestX := math.Max(rect.MinX, math.Min(c.X, rect.MaxX))
	nearestZ := math.Max(rect.MinZ, math.Min(c.Y, rect.MaxZ))
	dx := c.X - nearestX
	dz := c.Y - nearestZ
	return dx*dx+dz*dz < radius*radius || (radius == 0 && dx == 0 && dz == 0)
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) CellSize() float64 { return g.cellSize }

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

func (g *Grid) index(col, row int) int {
	return row*g.cols + col
}

// Walkable reports whether the cell can be stood on.
func (g *Grid) Walkable(col, row int) bool {
	return g.inBounds(col, row) && g.walkable[g.index(col, row)]
}

// WorldPos returns the centre of a cell on the xz plane.
func (g *Grid) WorldPos(col, row int) vmath.Vec2 {
	return vmath.Vec2{
		X: (float64(col) + 0.5) * g.cellSize,
		Y: (float64(row) + 0.5) * g.cellSize,
	}
}

// Locate maps a horizontal position to its cell.
func (g *Grid) Locate(p vmath.Vec2) (int, int, bool) {
	if p.X < 0 || p.Y < 0 || p.X > g.width || p.Y > g.depth {
		return 0, 0, false
	}
	col := min(int(p.X/g.cellSize), g.cols-1)
	row := min(int(p.Y/g.cellSize), g.rows-1)
	return col, row, true
}

// IsWalkableAt reports whether the position lies on a walkable cell.
func (g *Grid) IsWalkableAt(p vmath.Vec2) bool {
	col, row, ok := g.Locate(p)
	return ok && g.Walkable(col, row)
}

// closestWalkable runs a breadth-first search outward from the cell.
func (g *Grid) closestWalkable(col, row int) (int, int, bool) {
	if !g.inBounds(col, row) {
		return 0, 0, false
	}
	start := g.index(col, row)
	visited := map[int]struct{}{start: {}}
	queue := []int{start}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if g.walkable[idx] {
			return idx % g.cols, idx / g.cols, true
		}
		c, r := idx%g.cols, idx/g.cols
		for _, d := range neighborOffsets[:4] {
			nc, nr := c+d.col, r+d.row
			if !g.inBounds(nc, nr) {
				continue
			}
			n := g.index(nc, nr)
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return 0, 0, false
}

// lineOfSight samples the segment at quarter-cell steps.
func (g *Grid) lineOfSight(a, b vmath.Vec2) bool {
	dist := a.Distance(b)
	step := g.cellSize / 4
	n := int(math.Ceil(dist / step))
	for i := 0; i <= n; i++ {
		t := 1.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p := a.Add(b.Sub(a).Scale(t))
		if !g.IsWalkableAt(p) {
			return false
		}
	}
	return true
}
