// Command arena replays a bardmage match in a window with debugging tools.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/ecs/debugui"
	debugui_ebiten "github.com/plus3/bardmages/ecs/debugui/ebiten"
	"github.com/plus3/bardmages/level"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	frameStep    = 1.0 / 60.0
)

func main() {
	levelPath := flag.String("level", "", "Level file to load. The built-in grove is used when empty.")
	seed := flag.Uint64("seed", 0, "Override the level's seed.")
	speed := flag.Float64("speed", 1, "Simulation speed multiplier.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := level.Default()
	if *levelPath != "" {
		var err error
		if cfg, err = level.Load(*levelPath); err != nil {
			logger.Fatal("could not load level", "error", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	game := &Game{
		Backend: debugui_ebiten.NewImguiBackend("Bardmages Arena", ScreenWidth, ScreenHeight),
		Config:  cfg,
		Logger:  logger,
	}
	if err := game.Reset(float32(*speed)); err != nil {
		logger.Fatal("could not build level", "error", err)
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("arena stopped", "error", err)
	}
}

// Game runs three schedulers over one storage: the simulation, the ImGui
// windows and the render pass.
type Game struct {
	Backend debugui_ebiten.ImguiBackend
	Config  *level.Config
	Logger  *log.Logger

	Storage         *ecs.Storage
	Scheduler       *ecs.Scheduler
	UIScheduler     *ecs.Scheduler
	RenderScheduler *ecs.Scheduler

	Camera *ecs.Singleton[Camera]
	Viewer *ecs.Singleton[Viewer]
	Screen *ecs.Singleton[Screen]
}

// Reset builds a fresh world from the game's level config.
func (g *Game) Reset(speed float32) error {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	world, err := level.Build(g.Config, storage, level.BuildOptions{Logger: g.Logger})
	if err != nil {
		return err
	}

	g.Storage = storage
	g.Scheduler = level.NewScheduler(world, g.Logger)

	g.Camera = ecs.NewSingleton[Camera](storage, Camera{ScreenW: ScreenWidth, ScreenH: ScreenHeight})
	g.Camera.Get().Fit(g.Config.Arena.Width, g.Config.Arena.Depth)
	g.Viewer = ecs.NewSingleton[Viewer](storage, Viewer{Speed: speed})
	g.Screen = ecs.NewSingleton[Screen](storage)
	ecs.NewSingleton[InputState](storage)
	ecs.NewSingleton[ArenaView](storage, ArenaView{
		Width:     g.Config.Arena.Width,
		Depth:     g.Config.Arena.Depth,
		Obstacles: world.Obstacles,
		Grid:      world.Grid,
		ShowPaths: true,
	})

	g.UIScheduler = ecs.NewScheduler(storage)
	g.UIScheduler.Register(&CameraControlSystem{})
	debugui.SpawnDebugUI(storage, g.UIScheduler, g.Scheduler)
	spawnArenaWindow(storage)

	g.RenderScheduler = ecs.NewScheduler(storage)
	g.RenderScheduler.Register(&RenderSystem{})
	return nil
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	viewer := g.Viewer.Get()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		viewer.Paused = !viewer.Paused
	}

	g.Backend.BeginFrame()
	if !viewer.Paused {
		g.Scheduler.Once(frameStep * float64(viewer.Speed))
	}
	g.UIScheduler.Once(frameStep)
	g.Backend.EndFrame()

	if viewer.Restart {
		g.Logger.Info("restarting match", "level", g.Config.Name)
		return g.Reset(viewer.Speed)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	camera := g.Camera.Get()
	camera.ScreenW = screen.Bounds().Dx()
	camera.ScreenH = screen.Bounds().Dy()

	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
