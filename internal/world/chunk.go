package world

import "isoview/internal/grid"

const chunkVolume = grid.BlocksX * grid.BlocksY * grid.BlocksZ

// Chunk holds the raw blocks of one BlocksX x BlocksY x BlocksZ tile.
type Chunk struct {
	Coord  grid.ChunkCoord
	blocks [chunkVolume]Block
	dirty  bool
}

// NewChunk creates an empty chunk at the given chunk coordinate
func NewChunk(cc grid.ChunkCoord) *Chunk {
	return &Chunk{Coord: cc, dirty: true}
}

// index converts local (x, y, z) to a flat index, z fastest
func index(x, y, z int) int {
	return (x*grid.BlocksY+y)*grid.BlocksZ + z
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < grid.BlocksX && y >= 0 && y < grid.BlocksY && z >= 0 && z < grid.BlocksZ
}

// Block returns the block at local coordinates. Out of range reads return air.
func (c *Chunk) Block(x, y, z int) Block {
	if !inBounds(x, y, z) {
		return Air
	}
	return c.blocks[index(x, y, z)]
}

// SetBlock sets the block at local coordinates. Out of range writes are ignored.
func (c *Chunk) SetBlock(x, y, z int, b Block) {
	if !inBounds(x, y, z) {
		return
	}
	i := index(x, y, z)
	if c.blocks[i] != b {
		c.blocks[i] = b
		c.dirty = true
	}
}

// Fill sets every cell on layer z to b.
func (c *Chunk) Fill(z int, b Block) {
	for x := range grid.BlocksX {
		for y := range grid.BlocksY {
			c.SetBlock(x, y, z, b)
		}
	}
}

// CountSolid returns the number of non-air cells.
func (c *Chunk) CountSolid() int {
	n := 0
	for _, b := range c.blocks {
		if !b.IsAir() {
			n++
		}
	}
	return n
}

// IsDirty returns whether the chunk has been modified since SetClean
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as unmodified
func (c *Chunk) SetClean() {
	c.dirty = false
}
