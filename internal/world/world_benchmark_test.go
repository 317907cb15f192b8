package world

import (
	"testing"

	"isoview/internal/grid"
)

// Benchmark streaming around a moving centre with load and evict
func BenchmarkStreamAround(b *testing.B) {
	cs := NewChunkStreamer(NewChunkStore(nil), NewGenerator(1, 4), 0)
	// Keep the radius small to avoid OOM in CI; adjust if needed
	const radius = 3

	// Warm-up populate once
	cs.StreamChunksAround(grid.ChunkCoord{}, radius)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Simulate slight movement to exercise load/unload
		center := grid.ChunkCoord{X: i % 3, Y: (i / 3) % 3}
		cs.StreamChunksAround(center, radius)
		cs.EvictFarChunks(center, radius)
	}
}
