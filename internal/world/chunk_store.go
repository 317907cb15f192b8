package world

import (
	"sort"
	"sync"

	"isoview/internal/event"
	"isoview/internal/grid"
)

// ChunkStore is an in-memory Source. Structural changes are announced on the
// bus as event.MapChanged. Block edits made through Set are safe from any
// goroutine and are announced in one batch by Commit.
type ChunkStore struct {
	chunks    map[grid.ChunkCoord]*Chunk
	mu        sync.RWMutex
	modCount  uint64 // Increases on any chunk add/remove and on Set
	committed uint64 // modCount seen by the last Commit

	bus *event.Bus
}

// NewChunkStore creates an empty store. bus may be nil.
func NewChunkStore(bus *event.Bus) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[grid.ChunkCoord]*Chunk),
		bus:    bus,
	}
}

// Chunk returns the chunk at cc.
func (cs *ChunkStore) Chunk(cc grid.ChunkCoord) (*Chunk, bool) {
	cs.mu.RLock()
	ch, ok := cs.chunks[cc]
	cs.mu.RUnlock()
	return ch, ok
}

// HasChunk checks if a chunk exists.
func (cs *ChunkStore) HasChunk(cc grid.ChunkCoord) bool {
	_, ok := cs.Chunk(cc)
	return ok
}

// AddChunk stores ch under its own coordinate, replacing any previous chunk.
// The chunk is taken as is and starts clean.
func (cs *ChunkStore) AddChunk(ch *Chunk) {
	cs.mu.Lock()
	ch.SetClean()
	cs.chunks[ch.Coord] = ch
	cs.modCount++
	cs.mu.Unlock()
}

// RemoveChunk deletes the chunk at cc and reports whether one was present.
func (cs *ChunkStore) RemoveChunk(cc grid.ChunkCoord) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[cc]; !ok {
		return false
	}
	delete(cs.chunks, cc)
	cs.modCount++
	return true
}

// Get returns the block at a world coordinate. Missing chunks read as air.
func (cs *ChunkStore) Get(c grid.Coord) Block {
	ch, ok := cs.Chunk(c.Chunk())
	if !ok {
		return Air
	}
	x, y, z := c.Local()
	return ch.Block(x, y, z)
}

// Set writes the block at a world coordinate, creating the chunk if needed.
// Layers outside [0, BlocksZ) are ignored. The edit is announced by the
// next Commit.
func (cs *ChunkStore) Set(c grid.Coord, b Block) {
	if c.Z < 0 || c.Z >= grid.BlocksZ {
		return
	}
	cc := c.Chunk()
	cs.mu.Lock()
	defer cs.mu.Unlock()
	ch, ok := cs.chunks[cc]
	if !ok {
		ch = NewChunk(cc)
		cs.chunks[cc] = ch
	}
	x, y, z := c.Local()
	ch.SetBlock(x, y, z, b)
	cs.modCount++
}

// Coords returns the coordinates of all stored chunks in a stable order.
func (cs *ChunkStore) Coords() []grid.ChunkCoord {
	cs.mu.RLock()
	out := make([]grid.ChunkCoord, 0, len(cs.chunks))
	for cc := range cs.chunks {
		out = append(out, cc)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Commit marks every edited chunk clean and publishes a single
// event.MapChanged when there was at least one. It returns the number of
// edited chunks. Call it from the goroutine that owns the consumers.
func (cs *ChunkStore) Commit() int {
	cs.mu.Lock()
	if cs.modCount == cs.committed {
		cs.mu.Unlock()
		return 0
	}
	cs.committed = cs.modCount
	n := 0
	for _, ch := range cs.chunks {
		if ch.IsDirty() {
			ch.SetClean()
			n++
		}
	}
	cs.mu.Unlock()

	if n > 0 {
		cs.NotifyChanged()
	}
	return n
}

// Replace swaps the whole content of the store and announces the change.
func (cs *ChunkStore) Replace(chunks []*Chunk) {
	cs.mu.Lock()
	cs.chunks = make(map[grid.ChunkCoord]*Chunk, len(chunks))
	for _, ch := range chunks {
		ch.SetClean()
		cs.chunks[ch.Coord] = ch
	}
	cs.modCount++
	cs.committed = cs.modCount
	cs.mu.Unlock()
	cs.NotifyChanged()
}

// NotifyChanged publishes event.MapChanged. Call it after edits that
// consumers cannot track incrementally.
func (cs *ChunkStore) NotifyChanged() {
	if cs.bus != nil {
		event.Publish(cs.bus, event.MapChanged{})
	}
}
