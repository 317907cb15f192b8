package render_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"isoview/internal/grid"
	"isoview/internal/render"
	"isoview/internal/view"
	"isoview/internal/world"
)

func TestRaycast(t *testing.T) {
	ch := world.NewChunk(grid.ChunkCoord{})
	ch.SetBlock(2, 2, 3, world.Block{ID: world.BlockTypeStone})
	s := render.New(world.SourceFunc(func(cc grid.ChunkCoord) (*world.Chunk, bool) {
		return ch, cc == ch.Coord
	}), nil)
	defer s.Close()
	s.AddViewpoint(view.NewCameraAt(grid.ChunkCoord{}))
	s.Update(0)

	down := mgl32.Vec3{0, 0, -1}

	// Test 1: straight down onto the stone
	start := grid.Coord{X: 2, Y: 2, Z: grid.BlocksZ - 1}.ToPoint()
	result := s.Raycast(start, down, 0, grid.GameHeight)
	if !result.Found {
		t.Fatalf("Expected hit, got miss")
	}
	if result.Hit != (grid.Coord{X: 2, Y: 2, Z: 3}) {
		t.Errorf("Expected hit at (2,2,3), got %v", result.Hit)
	}
	if result.Adjacent != (grid.Coord{X: 2, Y: 2, Z: 4}) {
		t.Errorf("Expected adjacent at (2,2,4), got %v", result.Adjacent)
	}
	// Ray starts at z=576 and enters layer 3 below z=256.
	if result.Distance != 324 {
		t.Errorf("Expected distance 324, got %v", result.Distance)
	}

	// Test 2: an empty column ends on the ground
	start = grid.Coord{X: 6, Y: 6, Z: grid.BlocksZ - 1}.ToPoint()
	result = s.Raycast(start, down, 0, grid.GameHeight+grid.EdgeLength)
	if !result.Found || !result.Cell.IsGround() {
		t.Fatalf("Expected ground hit, got %+v", result)
	}

	// Test 3: too short to reach anything
	result = s.Raycast(start, down, 0, grid.EdgeLength)
	if result.Found {
		t.Errorf("Expected miss, got hit at %v", result.Hit)
	}

	// Test 4: minimum distance skips the stone
	start = grid.Coord{X: 2, Y: 2, Z: 4}.ToPoint()
	result = s.Raycast(start, down, 2*grid.EdgeLength, grid.GameHeight)
	if !result.Found || result.Hit.Z >= 3 {
		t.Errorf("Expected hit below the stone, got %+v", result)
	}
}

func BenchmarkRaycast(b *testing.B) {
	gen := world.NewGenerator(3, 4)
	s := render.New(world.SourceFunc(func(cc grid.ChunkCoord) (*world.Chunk, bool) {
		ch := world.NewChunk(cc)
		gen.PopulateChunk(ch)
		return ch, true
	}), nil)
	s.AddViewpoint(view.NewCameraAt(grid.ChunkCoord{}))
	s.Update(0)
	start := grid.Coord{X: 4, Y: 20, Z: grid.BlocksZ - 1}.ToPoint()
	dir := mgl32.Vec3{0.3, 0.2, -1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Raycast(start, dir, 0, grid.GameHeight)
	}
}
