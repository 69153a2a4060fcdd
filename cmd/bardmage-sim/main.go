package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/level"
	"github.com/plus3/bardmages/spectate"
	"golang.org/x/sync/errgroup"
)

func main() {
	levelPath := flag.String("level", "", "Level file to load. The built-in grove is used when empty.")
	seed := flag.Uint64("seed", 0, "Override the level's seed.")
	step := flag.Duration("step", time.Second/60, "Simulated time per frame.")
	maxTime := flag.Duration("max-time", 5*time.Minute, "Simulated time after which the match is abandoned.")
	realtime := flag.Bool("realtime", false, "Pace frames to wall-clock time.")
	spectateAddr := flag.String("spectate", "", "Serve a websocket spectator feed on this address, e.g. :8080.")
	snapshotEvery := flag.Uint64("snapshot-every", 6, "Frames between spectator snapshots.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bardmage-sim",
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := run(ctx, logger, cfg, options{
		step:          *step,
		maxTime:       *maxTime,
		realtime:      *realtime,
		spectateAddr:  *spectateAddr,
		snapshotEvery: *snapshotEvery,
	})
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}

	fmt.Println("\n--- Match Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", "error", err)
	}
	fmt.Println("--- End of Report ---")
}

type options struct {
	step          time.Duration
	maxTime       time.Duration
	realtime      bool
	spectateAddr  string
	snapshotEvery uint64
}

func run(parent context.Context, logger *log.Logger, cfg *level.Config, opts options) (*Report, error) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	world, err := level.Build(cfg, storage, level.BuildOptions{Logger: logger})
	if err != nil {
		return nil, err
	}

	var extra []ecs.System
	var hub *spectate.Hub
	if opts.spectateAddr != "" {
		hub = spectate.NewHub(logger.WithPrefix("spectate"))
		extra = append(extra, &spectate.SnapshotSystem{Broadcaster: hub, Every: opts.snapshotEvery})
	}
	scheduler := level.NewScheduler(world, logger, extra...)

	var match *level.Match
	storage.ReadSingleton(&match)

	report := &Report{
		Level:      cfg.Name,
		MatchID:    match.ID.String(),
		Characters: len(world.Characters),
		Step:       opts.step,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithCancel(parent)
	g, ctx := errgroup.WithContext(ctx)

	if hub != nil {
		server := &http.Server{Addr: opts.spectateAddr, Handler: hub}
		g.Go(func() error {
			logger.Info("serving spectators", "addr", opts.spectateAddr)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			hub.Close()
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		dt := opts.step.Seconds()
		limit := opts.maxTime.Seconds()

		var ticker *time.Ticker
		if opts.realtime {
			ticker = time.NewTicker(opts.step)
			defer ticker.Stop()
		}

		start := time.Now()
		for !match.Finished && match.Elapsed < limit {
			if ticker != nil {
				select {
				case <-ctx.Done():
					report.Interrupted = true
					return nil
				case <-ticker.C:
				}
			} else if ctx.Err() != nil {
				report.Interrupted = true
				return nil
			}

			updateStart := time.Now()
			scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
		report.WallTime = time.Since(start)

		if hub != nil {
			if err := hub.Broadcast(spectate.Capture(storage, scheduler.GetStats().Ticks)); err != nil {
				logger.Warn("final snapshot not sent", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.UpdateTime.Finalize()
	report.Finish(match, world, scheduler.GetStats())
	runtime.ReadMemStats(&report.MemStatsEnd)

	if !match.Finished {
		logger.Warn("match did not finish", "elapsed", match.Elapsed, "interrupted", report.Interrupted)
	}
	return report, nil
}
