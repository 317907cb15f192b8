package grid

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Chunk dimensions in cells, shared with the world-data source
	BlocksX = 10
	BlocksY = 40
	BlocksZ = 10

	// Cell extents in game units
	EdgeLength  = 64
	DiagLength  = 90
	DiagLength2 = DiagLength / 2

	// GameHeight is the height of the world in game units.
	GameHeight = BlocksZ * EdgeLength

	// GroundLayer is the layer directly below the world. Lookups there resolve
	// to the ground cell instead of failing.
	GroundLayer = -1
)

// Coord addresses a single cell on the offset grid. Odd rows are shifted half a
// diagonal to the right and one y step covers half a diagonal.
type Coord struct {
	X, Y, Z int
}

// ToPoint returns the game-space position of the cell's reference point.
func (c Coord) ToPoint() mgl32.Vec3 {
	x := c.X * DiagLength
	if Mod(c.Y, 2) == 1 {
		x += DiagLength2
	}
	return mgl32.Vec3{
		float32(x),
		float32(c.Y * DiagLength2),
		float32(c.Z * EdgeLength),
	}
}

// Chunk returns the chunk coordinate owning c.
func (c Coord) Chunk() ChunkCoord {
	return ChunkCoord{X: FloorDiv(c.X, BlocksX), Y: FloorDiv(c.Y, BlocksY)}
}

// Local returns the index of c inside its chunk.
func (c Coord) Local() (x, y, z int) {
	return Mod(c.X, BlocksX), Mod(c.Y, BlocksY), c.Z
}

// BelowGround reports whether c lies under the lowest layer.
func (c Coord) BelowGround() bool {
	return c.Z <= GroundLayer
}

// Neighbour returns the adjacent cell in the given direction on the same layer.
// Center returns c unchanged.
func (c Coord) Neighbour(side Side) Coord {
	even := Mod(c.Y, 2) == 0
	switch side {
	case North:
		c.Y -= 2
	case NorthEast:
		if !even {
			c.X++
		}
		c.Y--
	case East:
		c.X++
	case SouthEast:
		if !even {
			c.X++
		}
		c.Y++
	case South:
		c.Y += 2
	case SouthWest:
		if even {
			c.X--
		}
		c.Y++
	case West:
		c.X--
	case NorthWest:
		if even {
			c.X--
		}
		c.Y--
	}
	return c
}

func (c Coord) String() string {
	return "(" + strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + strconv.Itoa(c.Z) + ")"
}

// ChunkCoord identifies a BlocksX x BlocksY tile of the world.
type ChunkCoord struct {
	X, Y int
}

// TopLeft returns the coordinate of the chunk's first cell on layer 0.
func (cc ChunkCoord) TopLeft() Coord {
	return Coord{X: cc.X * BlocksX, Y: cc.Y * BlocksY}
}

// Contains reports whether the column of c lies inside the chunk.
func (cc ChunkCoord) Contains(c Coord) bool {
	left := cc.X * BlocksX
	top := cc.Y * BlocksY
	return c.X >= left && c.X < left+BlocksX && c.Y >= top && c.Y < top+BlocksY
}

// Neighbourhood returns the 3x3 block of chunk coordinates centred on cc.
func (cc ChunkCoord) Neighbourhood() [9]ChunkCoord {
	var out [9]ChunkCoord
	i := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			out[i] = ChunkCoord{X: cc.X + x, Y: cc.Y + y}
			i++
		}
	}
	return out
}

func (cc ChunkCoord) String() string {
	return strconv.Itoa(cc.X) + "," + strconv.Itoa(cc.Y)
}

// FloorDiv divides rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// Mod returns a modulo b in [0, b). b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
