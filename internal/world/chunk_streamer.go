package world

import (
	"isoview/internal/grid"
	"isoview/internal/profiling"
)

// ChunkStreamer is a Source that generates missing chunks on first request
// and keeps them in a ChunkStore. Requests outside the bounds report absence.
type ChunkStreamer struct {
	store *ChunkStore
	gen   TerrainGenerator

	// bounds in chunks around the origin; <= 0 means unbounded
	radius int
}

// NewChunkStreamer creates a streamer backed by store.
func NewChunkStreamer(store *ChunkStore, gen TerrainGenerator, radius int) *ChunkStreamer {
	return &ChunkStreamer{store: store, gen: gen, radius: radius}
}

// Store returns the backing store.
func (cs *ChunkStreamer) Store() *ChunkStore {
	return cs.store
}

// Chunk returns the stored chunk, generating it if it lies inside the bounds.
func (cs *ChunkStreamer) Chunk(cc grid.ChunkCoord) (*Chunk, bool) {
	if ch, ok := cs.store.Chunk(cc); ok {
		return ch, true
	}
	if !cs.inBounds(cc) {
		return nil, false
	}
	return cs.generateChunkSync(cc), true
}

func (cs *ChunkStreamer) inBounds(cc grid.ChunkCoord) bool {
	if cs.radius <= 0 {
		return true
	}
	return abs(cc.X) <= cs.radius && abs(cc.Y) <= cs.radius
}

// generateChunkSync builds and installs a chunk.
func (cs *ChunkStreamer) generateChunkSync(cc grid.ChunkCoord) *Chunk {
	defer profiling.Track("world.generateChunkSync")()
	ch := NewChunk(cc)
	cs.gen.PopulateChunk(ch)
	cs.store.AddChunk(ch)
	return ch
}

// StreamChunksAround generates every missing chunk in the square of the given
// radius around center and returns how many were created.
func (cs *ChunkStreamer) StreamChunksAround(center grid.ChunkCoord, radius int) int {
	defer profiling.Track("world.StreamChunksAround")()
	created := 0
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			cc := grid.ChunkCoord{X: center.X + dx, Y: center.Y + dy}
			if cs.store.HasChunk(cc) || !cs.inBounds(cc) {
				continue
			}
			cs.generateChunkSync(cc)
			created++
		}
	}
	return created
}

// EvictFarChunks drops stored chunks farther than radius (Chebyshev distance)
// from center. Returns number of removed chunks.
func (cs *ChunkStreamer) EvictFarChunks(center grid.ChunkCoord, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	for _, cc := range cs.store.Coords() {
		if abs(cc.X-center.X) > radius || abs(cc.Y-center.Y) > radius {
			if cs.store.RemoveChunk(cc) {
				removed++
			}
		}
	}
	return removed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
