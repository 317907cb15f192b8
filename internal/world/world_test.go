package world

import (
	"testing"

	"isoview/internal/event"
	"isoview/internal/grid"
)

func TestChunkBounds(t *testing.T) {
	c := NewChunk(grid.ChunkCoord{})
	c.SetClean()
	c.SetBlock(-1, 0, 0, Block{ID: BlockTypeStone})
	c.SetBlock(0, grid.BlocksY, 0, Block{ID: BlockTypeStone})
	c.SetBlock(0, 0, grid.BlocksZ, Block{ID: BlockTypeStone})
	if c.IsDirty() || c.CountSolid() != 0 {
		t.Fatalf("out of range writes must be ignored")
	}
	if b := c.Block(grid.BlocksX, 0, 0); !b.IsAir() {
		t.Fatalf("out of range read: got %v, want air", b)
	}

	c.SetBlock(1, 2, 3, Block{ID: BlockTypeStone, Value: 4})
	if b := c.Block(1, 2, 3); b.ID != BlockTypeStone || b.Value != 4 {
		t.Fatalf("Block(1,2,3): got %+v", b)
	}
	if !c.IsDirty() {
		t.Fatalf("write should mark the chunk dirty")
	}
}

func TestChunkStoreSetGet(t *testing.T) {
	cs := NewChunkStore(nil)
	pos := grid.Coord{X: -1, Y: 45, Z: 2}
	cs.Set(pos, Block{ID: BlockTypeGrass})

	if !cs.HasChunk(grid.ChunkCoord{X: -1, Y: 1}) {
		t.Fatalf("Set should create the owning chunk")
	}
	if b := cs.Get(pos); b.ID != BlockTypeGrass {
		t.Fatalf("Get: got %v, want grass", b.ID)
	}
	if b := cs.Get(grid.Coord{X: 100, Y: 100}); !b.IsAir() {
		t.Fatalf("missing chunk should read as air")
	}

	cs.Set(grid.Coord{Z: -1}, Block{ID: BlockTypeStone})
	cs.Set(grid.Coord{Z: grid.BlocksZ}, Block{ID: BlockTypeStone})
	if cs.Len() != 1 {
		t.Fatalf("out of range layers must not create chunks, have %d", cs.Len())
	}
}

func TestChunkStoreReplaceNotifies(t *testing.T) {
	bus := event.NewBus()
	cs := NewChunkStore(bus)
	cs.AddChunk(NewChunk(grid.ChunkCoord{X: 9}))

	notified := 0
	event.Subscribe(bus, func(event.MapChanged) { notified++ })

	cs.Replace([]*Chunk{NewChunk(grid.ChunkCoord{X: 1}), NewChunk(grid.ChunkCoord{Y: 1})})
	if notified != 1 {
		t.Fatalf("Replace: got %d notifications, want 1", notified)
	}
	coords := cs.Coords()
	if len(coords) != 2 || coords[0] != (grid.ChunkCoord{X: 1}) || coords[1] != (grid.ChunkCoord{Y: 1}) {
		t.Fatalf("Coords after Replace: got %v", coords)
	}
}

func TestChunkStreamer(t *testing.T) {
	cs := NewChunkStore(nil)
	s := NewChunkStreamer(cs, NewGenerator(1, 3), 2)

	if _, ok := s.Chunk(grid.ChunkCoord{X: 3}); ok {
		t.Fatalf("chunk outside bounds should be absent")
	}
	ch, ok := s.Chunk(grid.ChunkCoord{X: 1, Y: -2})
	if !ok || ch == nil {
		t.Fatalf("chunk inside bounds should be generated")
	}
	again, _ := s.Chunk(grid.ChunkCoord{X: 1, Y: -2})
	if again != ch {
		t.Fatalf("second request should return the stored chunk")
	}

	if n := s.StreamChunksAround(grid.ChunkCoord{}, 1); n != 9 {
		t.Fatalf("StreamChunksAround: got %d new chunks, want 9", n)
	}
	if n := s.EvictFarChunks(grid.ChunkCoord{}, 1); n != 1 {
		t.Fatalf("EvictFarChunks: got %d removed, want 1", n)
	}
	if cs.Len() != 9 {
		t.Fatalf("store size: got %d, want 9", cs.Len())
	}
}

func TestChunkStoreCommit(t *testing.T) {
	bus := event.NewBus()
	cs := NewChunkStore(bus)
	cs.AddChunk(NewChunk(grid.ChunkCoord{}))
	cs.AddChunk(NewChunk(grid.ChunkCoord{X: 1}))

	notified := 0
	event.Subscribe(bus, func(event.MapChanged) { notified++ })

	if n := cs.Commit(); n != 0 || notified != 0 {
		t.Fatalf("Commit on fresh chunks: edited=%d notified=%d, want 0 and 0", n, notified)
	}

	cs.Set(grid.Coord{X: 1, Y: 1, Z: 1}, Block{ID: BlockTypeStone})
	cs.Set(grid.Coord{X: 2, Y: 1, Z: 1}, Block{ID: BlockTypeStone})
	cs.Set(grid.Coord{X: 11, Y: 1, Z: 1}, Block{ID: BlockTypeStone})
	if n := cs.Commit(); n != 2 || notified != 1 {
		t.Fatalf("Commit after edits: edited=%d notified=%d, want 2 and 1", n, notified)
	}
	if ch, _ := cs.Chunk(grid.ChunkCoord{}); ch.IsDirty() {
		t.Fatal("Commit should leave chunks clean")
	}

	// Rewriting the same block is not an edit.
	cs.Set(grid.Coord{X: 1, Y: 1, Z: 1}, Block{ID: BlockTypeStone})
	if n := cs.Commit(); n != 0 || notified != 1 {
		t.Fatalf("Commit after no-op write: edited=%d notified=%d", n, notified)
	}
}
