// Package debugview draws a top-down picture of the render cache: one tile
// per grid column, coloured by the topmost cell that is still drawn.
package debugview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"isoview/internal/grid"
	"isoview/internal/render"
	"isoview/internal/world"
)

// Options controls the debug image.
type Options struct {
	// Scale is the tile height in pixels; tiles are twice as wide.
	Scale    int
	Labels   bool
	FontPath string // TrueType/OpenType file, empty for the built-in face
	FontSize float64
}

var (
	Background  = color.RGBA{16, 16, 24, 255}
	Clipped     = color.RGBA{60, 60, 60, 255}
	Translucent = color.RGBA{170, 220, 230, 255}
	labelColor  = color.RGBA{255, 255, 255, 255}
)

var palette = map[world.BlockType]color.RGBA{
	world.BlockTypeGround: {70, 50, 35, 255},
	world.BlockTypeStone:  {128, 128, 128, 255},
	world.BlockTypeGrass:  {70, 160, 60, 255},
	world.BlockTypeDirt:   {120, 85, 55, 255},
	world.BlockTypeSand:   {215, 200, 140, 255},
	world.BlockTypeWater:  {40, 90, 200, 255},
	world.BlockTypeLava:   {230, 100, 20, 255},
}

// Render draws every cached entry of s. An empty cache yields an empty image.
func Render(s *render.Storage, opts Options) (*image.RGBA, error) {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	entries := s.Entries()
	if len(entries) == 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}

	minC, maxC := entries[0].Coord(), entries[0].Coord()
	for _, e := range entries[1:] {
		cc := e.Coord()
		minC.X, maxC.X = min(minC.X, cc.X), max(maxC.X, cc.X)
		minC.Y, maxC.Y = min(minC.Y, cc.Y), max(maxC.Y, cc.Y)
	}

	u := opts.Scale
	origin := minC.TopLeft()
	cols := (maxC.X - minC.X + 1) * grid.BlocksX
	rows := (maxC.Y - minC.Y + 1) * grid.BlocksY
	img := image.NewRGBA(image.Rect(0, 0, (cols*2+1)*u, rows*u))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	layers := s.LimitLayer()
	for _, e := range entries {
		tl := e.TopLeft()
		for x := range grid.BlocksX {
			for y := range grid.BlocksY {
				c, ok := columnColor(s, e, x, y, layers)
				if !ok {
					continue
				}
				wx, wy := tl.X+x-origin.X, tl.Y+y-origin.Y
				px := wx * 2 * u
				if grid.Mod(tl.Y+y, 2) == 1 {
					px += u
				}
				py := wy * u
				draw.Draw(img, image.Rect(px, py, px+2*u, py+u), image.NewUniform(c), image.Point{}, draw.Src)
			}
		}
	}

	if opts.Labels {
		face, err := loadFace(opts.FontPath, opts.FontSize)
		if err != nil {
			return nil, err
		}
		defer func() { _ = face.Close() }()
		d := &font.Drawer{Dst: img, Src: image.NewUniform(labelColor), Face: face}
		ascent := face.Metrics().Ascent
		for _, e := range entries {
			tl := e.TopLeft()
			d.Dot = fixed.Point26_6{
				X: fixed.I((tl.X-origin.X)*2*u + 2),
				Y: fixed.I((tl.Y-origin.Y)*u+2) + ascent,
			}
			d.DrawString(e.Coord().String())
		}
	}
	return img, nil
}

// columnColor picks the colour of the topmost non-air cell below the limit.
func columnColor(s *render.Storage, e *render.Entry, x, y, layers int) (color.RGBA, bool) {
	for z := layers - 1; z >= 0; z-- {
		cell := e.CellByIndex(x, y, z)
		if cell.IsAir() {
			continue
		}
		if s.IsOccluded(cell.Coord()) {
			return Clipped, true
		}
		base, ok := palette[cell.Block().ID]
		if !ok {
			base = Translucent
		}
		return shade(base, cell.Light()*(0.5+0.5*float32(z+1)/grid.BlocksZ)), true
	}
	return color.RGBA{}, false
}

func shade(c color.RGBA, f float32) color.RGBA {
	f = max(0, min(1, f))
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
