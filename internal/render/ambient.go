package render

import "isoview/internal/grid"

// Ambient computes the lighting of a freshly built entry. It runs before the
// visibility pass.
type Ambient interface {
	ComputeAmbient(e *Entry)
}

// AmbientFunc adapts a function to Ambient.
type AmbientFunc func(e *Entry)

func (f AmbientFunc) ComputeAmbient(e *Entry) { f(e) }

// NopAmbient leaves every cell at NormalLight.
type NopAmbient struct{}

func (NopAmbient) ComputeAmbient(*Entry) {}

// ColumnAmbient darkens every cell that has a view-obscuring cell somewhere
// above it in the same column.
type ColumnAmbient struct {
	Shade float32
}

func (a ColumnAmbient) ComputeAmbient(e *Entry) {
	for x := range grid.BlocksX {
		for y := range grid.BlocksY {
			covered := false
			for z := grid.BlocksZ - 1; z >= 0; z-- {
				c := e.CellByIndex(x, y, z)
				if covered {
					c.light = NormalLight - a.Shade
				} else {
					c.light = NormalLight
				}
				if c.obscures {
					covered = true
				}
			}
		}
	}
}
