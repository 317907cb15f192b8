package render

import (
	"isoview/internal/grid"
	"isoview/internal/world"
)

const cellVolume = grid.BlocksX * grid.BlocksY * grid.BlocksZ

// Entry is the render-ready materialisation of one world chunk.
type Entry struct {
	coord    grid.ChunkCoord
	topLeft  grid.Coord
	cells    []Cell
	accessed bool
}

func cellIndex(x, y, z int) int {
	return (x*grid.BlocksY+y)*grid.BlocksZ + z
}

func newEntry(ch *world.Chunk, cells []Cell) *Entry {
	e := &Entry{cells: cells}
	e.init(ch)
	return e
}

// init (re)builds every cell from ch, dropping all previous state.
func (e *Entry) init(ch *world.Chunk) {
	e.coord = ch.Coord
	e.topLeft = ch.Coord.TopLeft()
	for x := range grid.BlocksX {
		for y := range grid.BlocksY {
			for z := range grid.BlocksZ {
				coord := grid.Coord{X: e.topLeft.X + x, Y: e.topLeft.Y + y, Z: z}
				e.cells[cellIndex(x, y, z)].init(coord, ch.Block(x, y, z))
			}
		}
	}
}

// Coord returns the chunk coordinate of the entry.
func (e *Entry) Coord() grid.ChunkCoord { return e.coord }

// TopLeft returns the world coordinate of local index (0, 0, 0).
func (e *Entry) TopLeft() grid.Coord { return e.topLeft }

// Contains reports whether the column of c lies inside this entry.
func (e *Entry) Contains(c grid.Coord) bool {
	return c.X >= e.topLeft.X && c.X < e.topLeft.X+grid.BlocksX &&
		c.Y >= e.topLeft.Y && c.Y < e.topLeft.Y+grid.BlocksY
}

// CellByIndex returns the cell at a local index, or nil outside the entry.
// An evicted entry has no cells.
func (e *Entry) CellByIndex(x, y, z int) *Cell {
	if e.cells == nil {
		return nil
	}
	if x < 0 || x >= grid.BlocksX || y < 0 || y >= grid.BlocksY || z < 0 || z >= grid.BlocksZ {
		return nil
	}
	return &e.cells[cellIndex(x, y, z)]
}

// Cell returns the cell at world coordinate c, or nil outside the entry.
func (e *Entry) Cell(c grid.Coord) *Cell {
	return e.CellByIndex(c.X-e.topLeft.X, c.Y-e.topLeft.Y, c.Z)
}

// Each calls fn for every cell, in local index order.
func (e *Entry) Each(fn func(*Cell)) {
	for i := range e.cells {
		fn(&e.cells[i])
	}
}

// ResetClipping clears the clipping flags of every cell.
func (e *Entry) ResetClipping() {
	for i := range e.cells {
		e.cells[i].resetClipping()
	}
}

// ResetShadingFor restores the normal light level of one cell.
func (e *Entry) ResetShadingFor(x, y, z int) {
	if c := e.CellByIndex(x, y, z); c != nil {
		c.resetShading()
	}
}

// Update advances the time-based state of every cell by dt milliseconds.
func (e *Entry) Update(dt float32) {
	for i := range e.cells {
		e.cells[i].Update(dt)
	}
}

// cellPool recycles the cell arrays of evicted entries. Only touched from
// the update phase, so it needs no locking.
type cellPool struct {
	free [][]Cell
}

const maxPooledEntries = 32

func (p *cellPool) get() []Cell {
	if n := len(p.free); n > 0 {
		cells := p.free[n-1]
		p.free = p.free[:n-1]
		return cells
	}
	return make([]Cell, cellVolume)
}

func (p *cellPool) put(cells []Cell) {
	if len(p.free) < maxPooledEntries {
		p.free = append(p.free, cells)
	}
}

func (p *cellPool) clear() {
	p.free = nil
}
