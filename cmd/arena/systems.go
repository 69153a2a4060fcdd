package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/ecs/debugui"
	"github.com/plus3/bardmages/tune"
)

var playerColors = map[bardmage.PlayerID]color.RGBA{
	bardmage.PlayerOne:   {255, 179, 186, 255},
	bardmage.PlayerTwo:   {179, 229, 252, 255},
	bardmage.PlayerThree: {186, 255, 201, 255},
	bardmage.PlayerFour:  {255, 223, 186, 255},
}

func playerColor(id bardmage.PlayerID) color.RGBA {
	if c, ok := playerColors[id]; ok {
		return c
	}
	return color.RGBA{217, 186, 255, 255}
}

// CameraControlSystem pans the camera with a left drag and zooms with the wheel.
type CameraControlSystem struct {
	Camera          ecs.Singleton[Camera]
	InputState      ecs.Singleton[InputState]
	ImguiInputState ecs.Singleton[debugui.ImguiInputState]
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	input := s.InputState.Get()

	if imgui := s.ImguiInputState.Get(); imgui != nil && imgui.WantCaptureMouse {
		input.Dragging = false
		return
	}

	mx, my := ebiten.CursorPosition()
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if mouseLeft && !input.PrevMouseLeft {
		input.Dragging = true
		input.DragStartX = camera.X
		input.DragStartZ = camera.Z
		input.LastMouseX = mx
		input.LastMouseY = my
	}
	if !mouseLeft {
		input.Dragging = false
	}
	if input.Dragging {
		camera.X = input.DragStartX - float64(mx-input.LastMouseX)/camera.Zoom
		camera.Z = input.DragStartZ - float64(my-input.LastMouseY)/camera.Zoom
	}
	input.PrevMouseLeft = mouseLeft

	if _, dy := ebiten.Wheel(); dy != 0 {
		camera.ZoomAt(mx, my, camera.Zoom*(1+dy*0.1))
	}
}

// RenderSystem draws the arena and its characters onto the Screen singleton.
type RenderSystem struct {
	Camera ecs.Singleton[Camera]
	Arena  ecs.Singleton[ArenaView]
	Viewer ecs.Singleton[Viewer]
	Screen ecs.Singleton[Screen]

	Characters ecs.Query[struct {
		*bardmage.Transform
		*bardmage.Player
		*bardmage.Life
		Minion  *bardmage.Minion `ecs:"optional"`
		Control *ai.Control      `ecs:"optional"`
		Bard    *tune.Bard       `ecs:"optional"`
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	arena := s.Arena.Get()
	screen := s.Screen.Get().Image
	if screen == nil {
		return
	}

	screen.Fill(color.RGBA{245, 245, 240, 255})

	x0, y0 := float32(-camera.X*camera.Zoom), float32(-camera.Z*camera.Zoom)
	zoom := float32(camera.Zoom)
	vector.DrawFilledRect(screen, x0, y0, float32(arena.Width)*zoom, float32(arena.Depth)*zoom, color.RGBA{214, 232, 200, 255}, false)
	vector.StrokeRect(screen, x0, y0, float32(arena.Width)*zoom, float32(arena.Depth)*zoom, 2, color.RGBA{120, 140, 110, 255}, false)

	if arena.ShowGrid && arena.Grid != nil {
		cell := float32(arena.Grid.CellSize()) * zoom
		for col := range arena.Grid.Cols() {
			for row := range arena.Grid.Rows() {
				if arena.Grid.Walkable(col, row) {
					continue
				}
				vector.DrawFilledRect(screen, x0+float32(col)*cell, y0+float32(row)*cell, cell, cell, color.RGBA{90, 72, 72, 90}, false)
			}
		}
	}

	for _, o := range arena.Obstacles {
		sx, sy := x0+float32(o.MinX)*zoom, y0+float32(o.MinZ)*zoom
		vector.DrawFilledRect(screen, sx, sy, float32(o.MaxX-o.MinX)*zoom, float32(o.MaxZ-o.MinZ)*zoom, color.RGBA{150, 140, 130, 255}, false)
	}

	viewer := s.Viewer.Get()
	for id, ch := range s.Characters.Iter() {
		sx, sy := camera.ToScreen(ch.Transform.Position)
		radius := 0.5 * zoom
		if ch.Minion != nil {
			radius *= 0.7
		}

		fill := playerColor(ch.Player.ID)
		if !ch.Life.Alive() {
			fill = color.RGBA{170, 170, 170, 255}
		}

		if arena.ShowPaths && ch.Control != nil && ch.Life.Alive() {
			s.drawPath(screen, camera, ch.Transform, ch.Control, fill)
		}

		vector.DrawFilledCircle(screen, sx, sy, radius, fill, true)
		if viewer != nil && viewer.Selected == id {
			vector.StrokeCircle(screen, sx, sy, radius+3, 2, color.RGBA{60, 60, 60, 255}, true)
		}

		ahead := ch.Transform.Position.Add(ch.Transform.Forward.Scale(0.8))
		fx, fy := camera.ToScreen(ahead)
		vector.StrokeLine(screen, sx, sy, fx, fy, 2, color.RGBA{60, 60, 60, 255}, true)

		if ch.Life.MaxHealth > 0 {
			pct := float32(ch.Life.Health / ch.Life.MaxHealth)
			barWidth := 2 * radius
			vector.DrawFilledRect(screen, sx-barWidth/2, sy-radius-6, barWidth, 3, color.RGBA{100, 100, 100, 255}, false)
			vector.DrawFilledRect(screen, sx-barWidth/2, sy-radius-6, barWidth*pct, 3, color.RGBA{100, 200, 100, 255}, false)
		}

		if ch.Bard == nil {
			continue
		}
		if _, playing := ch.Bard.Playing(); playing {
			vector.StrokeCircle(screen, sx, sy, radius*(1+float32(ch.Bard.Progress())), 1, color.RGBA{180, 120, 220, 255}, true)
		}
	}
}

func (s *RenderSystem) drawPath(screen *ebiten.Image, camera *Camera, t *bardmage.Transform, control *ai.Control, c color.RGBA) {
	path := control.Path()
	next := control.NodeIndex()
	if next < 0 || next >= len(path) {
		return
	}
	faded := color.NRGBA{c.R, c.G, c.B, 160}
	px, py := camera.ToScreen(t.Position)
	for _, corner := range path[next:] {
		cx, cy := camera.ToScreen(corner)
		vector.StrokeLine(screen, px, py, cx, cy, 1.5, faded, true)
		vector.DrawFilledCircle(screen, cx, cy, 2.5, faded, true)
		px, py = cx, cy
	}
}
