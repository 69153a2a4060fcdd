package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/navmesh"
	"github.com/plus3/bardmages/vmath"
)

const (
	minZoom = 4.0
	maxZoom = 80.0
)

// Camera maps arena coordinates onto the screen. X and Z are the arena point
// drawn at the top-left corner and Zoom is in pixels per arena unit.
type Camera struct {
	X       float64
	Z       float64
	Zoom    float64
	ScreenW int
	ScreenH int
}

// Fit centres an arena of the given size on screen with a small margin.
func (c *Camera) Fit(width, depth float64) {
	if width <= 0 || depth <= 0 || c.ScreenW <= 0 || c.ScreenH <= 0 {
		return
	}
	c.Zoom = clampZoom(0.9 * min(float64(c.ScreenW)/width, float64(c.ScreenH)/depth))
	c.X = width/2 - float64(c.ScreenW)/(2*c.Zoom)
	c.Z = depth/2 - float64(c.ScreenH)/(2*c.Zoom)
}

// ToScreen converts an arena position to pixels.
func (c *Camera) ToScreen(p vmath.Vec3) (float32, float32) {
	return float32((p.X - c.X) * c.Zoom), float32((p.Z - c.Z) * c.Zoom)
}

// ToWorld converts a pixel position to the arena plane.
func (c *Camera) ToWorld(sx, sy int) vmath.Vec2 {
	return vmath.Vec2{X: c.X + float64(sx)/c.Zoom, Y: c.Z + float64(sy)/c.Zoom}
}

// ZoomAt changes the zoom while keeping the arena point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy int, zoom float64) {
	anchor := c.ToWorld(sx, sy)
	c.Zoom = clampZoom(zoom)
	c.X = anchor.X - float64(sx)/c.Zoom
	c.Z = anchor.Y - float64(sy)/c.Zoom
}

func clampZoom(z float64) float64 {
	return min(max(z, minZoom), maxZoom)
}

type InputState struct {
	LastMouseX    int
	LastMouseY    int
	DragStartX    float64
	DragStartZ    float64
	Dragging      bool
	PrevMouseLeft bool
}

// Screen holds the image being drawn during the render pass.
type Screen struct {
	Image *ebiten.Image
}

// ArenaView is the static part of the level the renderer needs.
type ArenaView struct {
	Width     float64
	Depth     float64
	Obstacles []navmesh.Rect
	Grid      *navmesh.Grid
	ShowGrid  bool
	ShowPaths bool
}

// Viewer holds the state toggled from the arena window.
type Viewer struct {
	Paused   bool
	Speed    float32
	Selected ecs.EntityId
	Restart  bool
}
