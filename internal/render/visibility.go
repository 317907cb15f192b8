package render

import (
	"isoview/internal/grid"
	"isoview/internal/profiling"
)

// hiddenSurfaceDetection recomputes the clipping flags of every cell of e
// below the render limit by looking at the direct neighbours. Flags always
// start from scratch.
func (s *Storage) hiddenSurfaceDetection(e *Entry) {
	if e == nil {
		panic("render: visibility pass on nil entry")
	}
	defer profiling.Track("render.VisibilityPass")()

	e.ResetClipping()
	layers := s.LimitLayer()

	for x := range grid.BlocksX {
		for y := range grid.BlocksY {
			for z := 0; z < layers; z++ {
				current := e.CellByIndex(x, y, z)
				if current.IsAir() {
					continue
				}
				local := grid.Coord{X: x, Y: y, Z: z}

				// The row in front is offset by half a cell, its parity picks the shift.
				if occludes(s.cellByIndex(e, local.Neighbour(grid.SouthWest)), current) {
					current.clippedLeft = true
				}
				if occludes(s.cellByIndex(e, local.Neighbour(grid.SouthEast)), current) {
					current.clippedRight = true
				}

				if z < grid.BlocksZ-1 {
					above := e.CellByIndex(x, y, z+1)
					front := s.cellByIndex(e, grid.Coord{X: x, Y: y + 2, Z: z + 1})
					if occludes(above, current) || (front != nil && front.obscures) {
						current.clippedTop = true
					}
				}
			}
		}
	}
}

// cellByIndex resolves a local index of e, falling back to the storage when
// the index lies in a neighbouring entry.
func (s *Storage) cellByIndex(e *Entry, local grid.Coord) *Cell {
	if local.X < 0 || local.X >= grid.BlocksX || local.Y < 0 || local.Y >= grid.BlocksY {
		return s.Cell(e.topLeft.X+local.X, e.topLeft.Y+local.Y, local.Z)
	}
	return e.CellByIndex(local.X, local.Y, local.Z)
}
