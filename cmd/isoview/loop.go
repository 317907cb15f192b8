package main

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"isoview/internal/config"
	"isoview/internal/event"
	"isoview/internal/grid"
	"isoview/internal/profiling"
	"isoview/internal/render"
	"isoview/internal/view"
	"isoview/internal/world"
)

const (
	statsEvery = 60  // ticks
	keepRadius = 3   // chunks of generated world kept around the camera
	pruneEvery = 120 // ticks
)

var down = mgl32.Vec3{0, 0, -1}

// Loop drives the camera and the render cache at a fixed tick rate.
type Loop struct {
	cfg      *config.Config
	log      *zap.Logger
	storage  *render.Storage
	camera   *view.Camera
	store    *world.ChunkStore
	streamer *world.ChunkStreamer // nil when serving a loaded map
	limiter  TickLimiter

	ticks     int
	slowTicks int
	sub       *event.Subscription
}

// NewLoop wires the loop. store receives the world edits, streamer may be nil.
func NewLoop(cfg *config.Config, log *zap.Logger, bus *event.Bus, s *render.Storage, c *view.Camera, store *world.ChunkStore, streamer *world.ChunkStreamer) *Loop {
	l := &Loop{
		cfg:      cfg,
		log:      log,
		storage:  s,
		camera:   c,
		store:    store,
		streamer: streamer,
	}
	l.sub = event.Subscribe(bus, func(ev event.CenterChanged) {
		log.Info("camera entered chunk",
			zap.Stringer("chunk", ev.To),
			zap.Int("entries", s.Len()))
	})
	return l
}

// Run ticks until the configured count is reached or ctx is cancelled. A
// tick count of 0 runs until cancellation.
func (l *Loop) Run(ctx context.Context) error {
	defer l.sub.Unsubscribe()
	limit := l.cfg.Run.Ticks
	for limit == 0 || l.ticks < limit {
		select {
		case <-ctx.Done():
			l.log.Info("loop cancelled", zap.Int("ticks", l.ticks))
			return nil
		default:
		}
		l.tick()
		l.limiter.Wait(l.cfg.Run.TickDuration)
	}
	l.log.Info("loop finished",
		zap.Int("ticks", l.ticks),
		zap.Int("slow_ticks", l.slowTicks),
		zap.Int("entries", l.storage.Len()))
	return nil
}

func (l *Loop) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := float32(l.cfg.Run.TickDuration) / float32(time.Millisecond)

	// Edits land in the store from anywhere; the rebuild they trigger runs here.
	if n := l.store.Commit(); n > 0 {
		l.log.Debug("world edits committed", zap.Int("chunks", n))
	}
	func() { defer profiling.Track("camera.Move")(); l.camera.Move(dt) }()

	// Refresh the shading of the topmost cell under the camera, as a cursor would.
	top := l.camera.Position()
	top[2] = grid.GameHeight - 1
	if hit := l.storage.Raycast(top, down, 0, grid.GameHeight+grid.EdgeLength); hit.Found {
		l.storage.MarkDirty(hit.Cell)
	}
	l.storage.Update(dt)

	if l.streamer != nil && l.ticks%pruneEvery == 0 {
		if n := l.streamer.EvictFarChunks(l.camera.CenterChunk(), keepRadius); n > 0 {
			l.log.Debug("world chunks pruned", zap.Int("count", n))
		}
	}

	l.ticks++
	elapsed := time.Since(start)
	if slow := l.cfg.Run.SlowTick; slow > 0 && elapsed > slow {
		l.slowTicks++
		l.log.Warn("slow tick",
			zap.Int("tick", l.ticks),
			zap.Duration("elapsed", elapsed),
			zap.String("top", profiling.TopN(5)))
	}
	if l.ticks%statsEvery == 0 {
		l.log.Debug("render cache",
			zap.Int("tick", l.ticks),
			zap.Int("entries", l.storage.Len()),
			zap.Stringer("center", l.camera.CenterChunk()))
	}
}
