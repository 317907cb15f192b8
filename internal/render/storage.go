package render

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"isoview/internal/event"
	"isoview/internal/grid"
	"isoview/internal/profiling"
	"isoview/internal/world"
)

// Viewpoint is anything the cache keeps the surroundings of loaded for,
// typically a camera.
type Viewpoint interface {
	Enabled() bool
	CenterChunk() grid.ChunkCoord
}

// refreshSides are the neighbours whose visibility depends on a newly
// created entry: the entries beside it and the three in the row behind it.
var refreshSides = [...]grid.ChunkCoord{{X: -1}, {X: 1}, {X: -1, Y: -1}, {Y: -1}, {X: 1, Y: -1}}

// Storage owns the render entries for every chunk near an enabled
// viewpoint. It is driven from a single update goroutine; readers in the
// draw phase must not overlap with Update.
type Storage struct {
	src     world.Source
	bus     *event.Bus
	sub     *event.Subscription
	log     *zap.Logger
	ambient Ambient

	entries map[grid.ChunkCoord]*Entry
	mru     *Entry

	viewpoints []Viewpoint
	centers    []*grid.ChunkCoord

	dirty  DirtySet
	limit  float32
	ground *Cell
	pool   cellPool
	closed bool
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Storage) { s.log = l.Named("render") }
}

// WithAmbient sets the lighting pass run on every new or rebuilt entry.
func WithAmbient(a Ambient) Option {
	return func(s *Storage) { s.ambient = a }
}

// WithGroundBlock sets the block the ground cell below the world is made of.
func WithGroundBlock(b world.Block) Option {
	return func(s *Storage) { s.ground = newGroundCell(b) }
}

// WithRenderLimit sets the initial vertical render limit in game units.
func WithRenderLimit(h float32) Option {
	return func(s *Storage) { s.limit = clampLimit(h) }
}

// New creates a storage reading chunks from src. When bus is non-nil the
// storage rebuilds itself on every event.MapChanged and announces viewpoint
// centre changes there.
func New(src world.Source, bus *event.Bus, opts ...Option) *Storage {
	s := &Storage{
		src:     src,
		bus:     bus,
		log:     zap.NewNop(),
		ambient: NopAmbient{},
		entries: make(map[grid.ChunkCoord]*Entry),
		limit:   float32(math.Inf(1)),
		ground:  newGroundCell(world.Block{ID: world.BlockTypeGround}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if bus != nil {
		s.sub = event.Subscribe(bus, func(event.MapChanged) { s.Rebuild() })
	}
	return s
}

func (s *Storage) mustInit() {
	if s.entries == nil {
		panic("render: storage used before New")
	}
	if s.closed {
		panic("render: storage used after Close")
	}
}

// AddViewpoint registers v. It reports false if v is already registered.
// v must be comparable, which pointer types are.
func (s *Storage) AddViewpoint(v Viewpoint) bool {
	s.mustInit()
	if slices.Contains(s.viewpoints, v) {
		return false
	}
	s.viewpoints = append(s.viewpoints, v)
	s.centers = append(s.centers, nil)
	return true
}

// Update runs one tick: refresh dirty shading, load and evict entries
// around the enabled viewpoints, then advance cell animations by dt ms.
func (s *Storage) Update(dt float32) {
	s.mustInit()
	defer profiling.Track("render.Update")()

	s.drainDirty()
	s.checkNeededChunks()
	for _, e := range s.entries {
		e.Update(dt)
	}
}

func (s *Storage) drainDirty() {
	if s.dirty.Len() == 0 {
		return
	}
	defer profiling.Track("render.DrainDirty")()
	s.dirty.Drain(func(c grid.Coord) {
		e := s.EntryContaining(c)
		if e == nil {
			return
		}
		e.ResetShadingFor(c.X-e.topLeft.X, c.Y-e.topLeft.Y, c.Z)
	})
}

func (s *Storage) checkNeededChunks() {
	defer profiling.Track("render.CheckNeeded")()

	for _, e := range s.entries {
		e.accessed = false
	}

	for i, v := range s.viewpoints {
		if !v.Enabled() {
			continue
		}
		center := v.CenterChunk()
		for _, cc := range center.Neighbourhood() {
			s.checkChunk(cc)
		}
		if prev := s.centers[i]; prev == nil || *prev != center {
			s.centers[i] = &center
			s.log.Debug("viewpoint center changed",
				zap.Int("viewpoint", i),
				zap.Stringer("center", center))
			if s.bus != nil {
				event.Publish(s.bus, event.CenterChanged{Viewpoint: i, From: prev, To: center})
			}
		}
	}

	for cc, e := range s.entries {
		if !e.accessed {
			s.evict(cc, e)
		}
	}
}

// checkChunk marks the entry for cc as needed, creating it when the source
// has the chunk.
func (s *Storage) checkChunk(cc grid.ChunkCoord) {
	if e, ok := s.entries[cc]; ok {
		e.accessed = true
		return
	}
	ch, ok := s.src.Chunk(cc)
	if !ok || ch == nil {
		return
	}

	e := newEntry(ch, s.pool.get())
	e.accessed = true
	s.entries[cc] = e
	s.log.Debug("entry created", zap.Stringer("chunk", cc), zap.Int("entries", len(s.entries)))

	s.ambient.ComputeAmbient(e)
	s.hiddenSurfaceDetection(e)
	for _, d := range refreshSides {
		if n, ok := s.entries[grid.ChunkCoord{X: cc.X + d.X, Y: cc.Y + d.Y}]; ok {
			s.hiddenSurfaceDetection(n)
		}
	}
}

func (s *Storage) evict(cc grid.ChunkCoord, e *Entry) {
	delete(s.entries, cc)
	if s.mru == e {
		s.mru = nil
	}
	s.pool.put(e.cells)
	e.cells = nil
	s.log.Debug("entry evicted", zap.Stringer("chunk", cc), zap.Int("entries", len(s.entries)))
}

// Entry returns the entry for cc, or nil when it is not cached.
func (s *Storage) Entry(cc grid.ChunkCoord) *Entry {
	s.mustInit()
	e := s.entries[cc]
	if e != nil {
		s.mru = e
	}
	return e
}

// EntryContaining returns the entry whose column range holds c, or nil.
func (s *Storage) EntryContaining(c grid.Coord) *Entry {
	s.mustInit()
	if s.mru != nil && s.mru.Contains(c) {
		return s.mru
	}
	e := s.entries[c.Chunk()]
	if e != nil {
		s.mru = e
	}
	return e
}

// Cell returns the cell at world coordinate (x, y, z). Coordinates below the
// world resolve to the ground cell; uncached coordinates yield nil.
func (s *Storage) Cell(x, y, z int) *Cell {
	s.mustInit()
	if z <= grid.GroundLayer {
		return s.ground
	}
	if z >= grid.BlocksZ {
		return nil
	}
	c := grid.Coord{X: x, Y: y, Z: z}
	e := s.EntryContaining(c)
	if e == nil {
		return nil
	}
	return e.Cell(c)
}

// CellAt is Cell for a Coord.
func (s *Storage) CellAt(c grid.Coord) *Cell {
	return s.Cell(c.X, c.Y, c.Z)
}

// CellAtPoint returns the cell containing game-space point p.
func (s *Storage) CellAtPoint(p mgl32.Vec3) *Cell {
	return s.CellAt(grid.ToCoord(p))
}

// Ground returns the shared cell standing in for everything below the world.
func (s *Storage) Ground() *Cell {
	return s.ground
}

// MarkDirty queues cell for a shading refresh on the next Update. The
// ground cell and nil are ignored.
func (s *Storage) MarkDirty(cell *Cell) {
	s.mustInit()
	if cell == nil || cell.ground {
		return
	}
	s.dirty.Mark(cell.coord)
}

// DirtyLen returns the number of cells waiting for a shading refresh.
func (s *Storage) DirtyLen() int {
	return s.dirty.Len()
}

// IsOccluded reports whether the cell at c does not need drawing. Anything
// at or above the render limit and anything below the world is occluded.
// Uncached cells are not.
func (s *Storage) IsOccluded(c grid.Coord) bool {
	s.mustInit()
	if c.Z >= s.limitLayers() {
		return true
	}
	if c.BelowGround() {
		return true
	}
	cell := s.CellAt(c)
	if cell == nil {
		return false
	}
	return cell.IsClipped()
}

func clampLimit(h float32) float32 {
	switch {
	case math.IsNaN(float64(h)), h >= grid.GameHeight:
		return float32(math.Inf(1))
	case h < 0:
		return 0
	}
	return h
}

// SetRenderLimit sets the height in game units at and above which nothing
// is drawn. Values at or beyond the world height remove the limit. When the
// effective layer changes every entry gets a fresh visibility pass.
func (s *Storage) SetRenderLimit(h float32) {
	s.mustInit()
	before := s.limitLayers()
	s.limit = clampLimit(h)
	if s.limitLayers() == before {
		return
	}
	s.log.Debug("render limit changed", zap.Float32("height", s.limit), zap.Int("layers", s.limitLayers()))
	for _, e := range s.entries {
		s.hiddenSurfaceDetection(e)
	}
}

// RenderLimit returns the limit in game units, +Inf when unlimited.
func (s *Storage) RenderLimit() float32 {
	return s.limit
}

// LimitLayer returns the number of layers below the render limit, at most
// BlocksZ.
func (s *Storage) LimitLayer() int {
	return min(s.limitLayers(), grid.BlocksZ)
}

// limitLayers returns the first layer that is not drawn.
func (s *Storage) limitLayers() int {
	if math.IsInf(float64(s.limit), 1) {
		return math.MaxInt
	}
	return int(s.limit / grid.EdgeLength)
}

// Rebuild re-reads every cached entry from the source, then reruns the
// ambient and visibility passes over all of them. Entries whose chunk has
// disappeared from the source are evicted.
func (s *Storage) Rebuild() {
	s.mustInit()
	defer profiling.Track("render.Rebuild")()

	for cc, e := range s.entries {
		ch, ok := s.src.Chunk(cc)
		if !ok || ch == nil {
			s.evict(cc, e)
			continue
		}
		e.init(ch)
	}
	for _, e := range s.entries {
		s.ambient.ComputeAmbient(e)
	}
	for _, e := range s.entries {
		s.hiddenSurfaceDetection(e)
	}
	s.log.Info("render cache rebuilt", zap.Int("entries", len(s.entries)))
}

// Entries returns the cached entries ordered back to front (by row, then
// column).
func (s *Storage) Entries() []*Entry {
	s.mustInit()
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		if a.coord.Y != b.coord.Y {
			return a.coord.Y - b.coord.Y
		}
		return a.coord.X - b.coord.X
	})
	return out
}

// Len returns the number of cached entries.
func (s *Storage) Len() int {
	return len(s.entries)
}

// Close drops every entry and detaches from the event bus. The storage must
// not be used afterwards.
func (s *Storage) Close() {
	if s.closed {
		return
	}
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	for cc, e := range s.entries {
		s.evict(cc, e)
	}
	s.pool.clear()
	s.viewpoints = nil
	s.centers = nil
	s.closed = true
}
