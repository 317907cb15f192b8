package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"isoview/internal/config"
	"isoview/internal/event"
	"isoview/internal/registry"
	"isoview/internal/render"
	"isoview/internal/world"
)

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// setupWorld returns the chunk store and the source the render cache reads.
// A map dump is served as is; otherwise chunks are generated on demand and
// streamer is non-nil.
func setupWorld(cfg *config.Config, mapPath string, bus *event.Bus, log *zap.Logger) (*world.ChunkStore, *world.ChunkStreamer, world.Source, error) {
	store := world.NewChunkStore(bus)
	if mapPath == "" {
		mapPath = cfg.World.MapFile
	}

	if mapPath != "" {
		f, err := os.Open(mapPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open map %s: %w", mapPath, err)
		}
		defer f.Close()
		chunks, err := world.Load(f)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load map %s: %w", mapPath, err)
		}
		store.Replace(chunks)
		log.Info("map loaded", zap.String("path", mapPath), zap.Int("chunks", len(chunks)))
		return store, nil, store, nil
	}

	gen := world.NewGenerator(cfg.World.Seed, cfg.World.SeaLevel)
	streamer := world.NewChunkStreamer(store, gen, cfg.World.Radius)
	created := streamer.StreamChunksAround(cfg.StartChunk(), 1)
	log.Info("world generator ready",
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("sea_level", cfg.World.SeaLevel),
		zap.Int("radius", cfg.World.Radius),
		zap.Int("spawn_chunks", created))
	return store, streamer, streamer, nil
}

func setupStorage(cfg *config.Config, src world.Source, bus *event.Bus, log *zap.Logger) *render.Storage {
	ground, _ := registry.ByName(cfg.Render.GroundBlock)
	return render.New(src, bus,
		render.WithLogger(log),
		render.WithAmbient(render.ColumnAmbient{Shade: cfg.Render.Shade}),
		render.WithGroundBlock(world.Block{ID: ground}),
		render.WithRenderLimit(cfg.RenderLimit()),
	)
}
