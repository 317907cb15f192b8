package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"isoview/internal/config"
	"isoview/internal/debugview"
	"isoview/internal/event"
	"isoview/internal/render"
	"isoview/internal/view"
	"isoview/internal/world"
)

func main() {
	cfgPath := flag.String("config", "", "config file (.toml, .yaml)")
	ticks := flag.Int("ticks", -1, "number of ticks to run, 0 runs until interrupted (overrides run.ticks)")
	pngPath := flag.String("png", "", "write a top-down image of the render cache after the run")
	saveMap := flag.String("save-map", "", "write the world to a map dump after the run")
	mapPath := flag.String("map", "", "load the world from a map dump instead of generating it")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *ticks >= 0 {
		cfg.Run.Ticks = *ticks
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	bus := event.NewBus()
	store, streamer, src, err := setupWorld(cfg, *mapPath, bus, log)
	if err != nil {
		log.Error("world setup failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	storage := setupStorage(cfg, src, bus, log)
	camera := view.NewCameraAt(cfg.StartChunk())
	camera.SetVelocity(mgl32.Vec3{cfg.Camera.VelocityX, cfg.Camera.VelocityY, 0})
	storage.AddViewpoint(camera)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
		storage.Close()
		_ = log.Sync()
	})

	loop := NewLoop(cfg, log, bus, storage, camera, store, streamer)
	var runErr error
	func() {
		defer close(done)
		runErr = loop.Run(ctx)
		if runErr == nil && ctx.Err() == nil {
			runErr = writeOutputs(storage, store, *pngPath, *saveMap, log)
		}
	}()
	if ctx.Err() != nil {
		// interrupted: the closer is already running the cleanup
		closer.Hold()
	}
	if runErr != nil {
		log.Error("run failed", zap.Error(runErr))
		closer.Exit(1)
	}
	closer.Close()
}

func writeOutputs(s *render.Storage, store *world.ChunkStore, pngPath, mapPath string, log *zap.Logger) error {
	if pngPath != "" {
		img, err := debugview.Render(s, debugview.Options{Scale: 2, Labels: true})
		if err != nil {
			return fmt.Errorf("render debug view: %w", err)
		}
		if err := debugview.WritePNG(pngPath, img); err != nil {
			return err
		}
		log.Info("debug view written", zap.String("path", pngPath), zap.Int("entries", s.Len()))
	}
	if mapPath != "" {
		f, err := os.Create(mapPath)
		if err != nil {
			return fmt.Errorf("create map %s: %w", mapPath, err)
		}
		if err := world.Save(f, store); err != nil {
			_ = f.Close()
			return fmt.Errorf("save map %s: %w", mapPath, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close map %s: %w", mapPath, err)
		}
		log.Info("map saved", zap.String("path", mapPath), zap.Int("chunks", store.Len()))
	}
	return nil
}
