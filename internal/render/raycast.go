package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"isoview/internal/grid"
	"isoview/internal/profiling"
)

// raycastStep is the sampling distance along a ray in game units.
const raycastStep = float32(4)

// RaycastResult stores the result of a raycast through the cache
type RaycastResult struct {
	Cell     *Cell
	Hit      grid.Coord
	Adjacent grid.Coord // last empty coordinate before the hit
	Distance float32
	Found    bool
}

// Raycast walks from start along direction and returns the first cached
// non-air cell, or the ground once the ray leaves the world downwards.
// Uncached coordinates count as empty.
func (s *Storage) Raycast(start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	s.mustInit()
	defer profiling.Track("render.Raycast")()

	direction = direction.Normalize()
	steps := int(maxDist / raycastStep)

	var lastEmpty grid.Coord
	result := RaycastResult{}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * raycastStep
		if dist < minDist {
			continue
		}

		c := grid.ToCoord(start.Add(direction.Mul(dist)))
		if cell := s.CellAt(c); cell != nil && !cell.IsAir() {
			result.Cell = cell
			result.Hit = c
			result.Adjacent = lastEmpty
			result.Distance = dist
			result.Found = true
			return result
		}

		lastEmpty = c
	}

	return result
}
