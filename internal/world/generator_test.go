package world

import (
	"crypto/sha256"
	"testing"

	"isoview/internal/grid"
)

func TestGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(123, 3)
}

func TestHeightInRange(t *testing.T) {
	g := NewGenerator(7, 3)
	for x := -200; x <= 200; x += 7 {
		for y := -200; y <= 200; y += 11 {
			if h := g.HeightAt(x, y); h < 0 || h >= grid.BlocksZ {
				t.Fatalf("HeightAt(%d,%d) = %d out of range", x, y, h)
			}
		}
	}
}

func TestPopulateLayers(t *testing.T) {
	const sea = 4
	g := NewGenerator(99, sea)
	c := NewChunk(grid.ChunkCoord{X: 2, Y: -1})
	g.PopulateChunk(c)

	tl := c.Coord.TopLeft()
	for lx := range grid.BlocksX {
		for ly := range grid.BlocksY {
			h := g.HeightAt(tl.X+lx, tl.Y+ly)
			if b := c.Block(lx, ly, 0); b.ID != BlockTypeGround {
				t.Errorf("(%d,%d,0): expected ground, got %v", lx, ly, b.ID)
			}
			for z := h + 1; z < grid.BlocksZ; z++ {
				b := c.Block(lx, ly, z)
				if z <= sea && b.ID != BlockTypeWater {
					t.Errorf("(%d,%d,%d): expected water below sea level, got %v", lx, ly, z, b.ID)
				}
				if z > sea && !b.IsAir() {
					t.Errorf("(%d,%d,%d): expected air above sea level, got %v", lx, ly, z, b.ID)
				}
			}
		}
	}
}

// hashChunkBlocks computes a SHA-256 hash of all blocks in a chunk
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	for _, b := range c.blocks {
		h.Write([]byte{byte(b.ID), b.Value})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func TestGeneratorDeterministic(t *testing.T) {
	cc := grid.ChunkCoord{X: -3, Y: 5}
	a := NewChunk(cc)
	b := NewChunk(cc)
	NewGenerator(42, 3).PopulateChunk(a)
	NewGenerator(42, 3).PopulateChunk(b)
	if hashChunkBlocks(a) != hashChunkBlocks(b) {
		t.Fatalf("same seed produced different chunks")
	}

	c := NewChunk(cc)
	NewGenerator(43, 3).PopulateChunk(c)
	if hashChunkBlocks(a) == hashChunkBlocks(c) {
		t.Fatalf("different seeds produced identical chunks")
	}
}

func BenchmarkPopulateChunk(b *testing.B) {
	g := NewGenerator(1, 3)
	ch := NewChunk(grid.ChunkCoord{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.PopulateChunk(ch)
	}
}
