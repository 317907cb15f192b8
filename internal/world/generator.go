package world

import (
	"math"

	"isoview/internal/grid"
)

// TerrainGenerator fills chunks procedurally.
type TerrainGenerator interface {
	HeightAt(x, y int) int
	PopulateChunk(c *Chunk)
}

// Generator builds a heightmap terrain with water up to the sea level.
type Generator struct {
	seed        int64
	scale       float64
	seaLevel    int
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewGenerator creates a generator with default settings.
func NewGenerator(seed int64, seaLevel int) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 24.0,
		seaLevel:    seaLevel,
		octaves:     3,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt returns the topmost solid layer of the column at world (x, y),
// always in [0, BlocksZ).
func (g *Generator) HeightAt(x, y int) int {
	n := octaveNoise2D(g.seed, float64(x)*g.scale, float64(y)*g.scale*0.5, g.octaves, g.persistence, g.lacunarity)
	h := int(math.Floor(n * float64(grid.BlocksZ)))
	return min(max(h, 0), grid.BlocksZ-1)
}

// PopulateChunk fills c: ground on layer 0, stone and dirt below the surface,
// grass or sand on top, water above the surface up to the sea level.
func (g *Generator) PopulateChunk(c *Chunk) {
	tl := c.Coord.TopLeft()
	for lx := range grid.BlocksX {
		for ly := range grid.BlocksY {
			h := g.HeightAt(tl.X+lx, tl.Y+ly)
			for z := 0; z <= h; z++ {
				var id BlockType
				switch {
				case z == 0:
					id = BlockTypeGround
				case z == h && h <= g.seaLevel:
					id = BlockTypeSand
				case z == h:
					id = BlockTypeGrass
				case z >= h-2:
					id = BlockTypeDirt
				default:
					id = BlockTypeStone
				}
				c.SetBlock(lx, ly, z, Block{ID: id})
			}
			for z := h + 1; z <= g.seaLevel && z < grid.BlocksZ; z++ {
				c.SetBlock(lx, ly, z, Block{ID: BlockTypeWater})
			}
		}
	}
}
