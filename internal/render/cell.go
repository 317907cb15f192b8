package render

import (
	"isoview/internal/grid"
	"isoview/internal/registry"
	"isoview/internal/world"
)

const (
	// NormalLight is the light level a shading reset restores.
	NormalLight float32 = 1.0

	// liquidWavePeriod is the length of one liquid animation cycle in ms.
	liquidWavePeriod float32 = 2000
)

// Cell is the render-side state of one grid cell. Cells belong to an Entry
// and live exactly as long as it does.
type Cell struct {
	coord grid.Coord
	block world.Block

	liquid   bool
	obscures bool
	ground   bool

	clippedLeft  bool
	clippedRight bool
	clippedTop   bool

	light float32
	phase float32
}

func (c *Cell) init(coord grid.Coord, b world.Block) {
	def := registry.Lookup(b.ID)
	*c = Cell{
		coord:    coord,
		block:    b,
		liquid:   def.Liquid,
		obscures: def.Obscures,
		light:    NormalLight,
	}
}

func newGroundCell(b world.Block) *Cell {
	c := &Cell{}
	c.init(grid.Coord{Z: grid.GroundLayer}, b)
	c.ground = true
	return c
}

// Coord returns the cell's world coordinate.
func (c *Cell) Coord() grid.Coord { return c.coord }

// Block returns the raw block the cell was built from.
func (c *Cell) Block() world.Block { return c.block }

// IsAir reports whether the cell is empty.
func (c *Cell) IsAir() bool { return c.block.IsAir() }

// IsLiquid reports whether the cell holds a liquid.
func (c *Cell) IsLiquid() bool { return c.liquid }

// ObscuresView reports whether the cell hides what lies behind it.
func (c *Cell) ObscuresView() bool { return c.obscures }

// IsGround reports whether this is the ground cell below the world.
func (c *Cell) IsGround() bool { return c.ground }

// ClippedLeft reports whether the left face is covered.
func (c *Cell) ClippedLeft() bool { return c.clippedLeft }

// ClippedRight reports whether the right face is covered.
func (c *Cell) ClippedRight() bool { return c.clippedRight }

// ClippedTop reports whether the top face is covered.
func (c *Cell) ClippedTop() bool { return c.clippedTop }

// Light returns the light level, NormalLight when unshaded.
func (c *Cell) Light() float32 { return c.light }

// SetLight sets the light level.
func (c *Cell) SetLight(l float32) { c.light = l }

// LiquidPhase returns the animation phase in [0, 1).
func (c *Cell) LiquidPhase() float32 { return c.phase }

// IsClipped reports whether every drawable face of the cell is covered.
func (c *Cell) IsClipped() bool {
	return c.clippedLeft && c.clippedRight && c.clippedTop
}

func (c *Cell) resetClipping() {
	c.clippedLeft = false
	c.clippedRight = false
	c.clippedTop = false
}

func (c *Cell) resetShading() {
	c.light = NormalLight
}

// Update advances time-based state by dt milliseconds.
func (c *Cell) Update(dt float32) {
	if !c.liquid {
		return
	}
	c.phase += dt / liquidWavePeriod
	for c.phase >= 1 {
		c.phase--
	}
}

// occludes reports whether n covers the face of cur that points at it.
// Liquid next to liquid counts as covered so internal liquid surfaces are
// never drawn.
func occludes(n, cur *Cell) bool {
	return n != nil && (n.obscures || (n.liquid && cur.liquid))
}
