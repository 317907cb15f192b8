package view

import (
	"github.com/go-gl/mathgl/mgl32"

	"isoview/internal/grid"
)

// Camera is a free-flying viewpoint in game space. The render storage keeps
// the chunks around its centre loaded while it is enabled.
type Camera struct {
	position mgl32.Vec3
	velocity mgl32.Vec3 // game units per second
	enabled  bool
}

// NewCamera returns an enabled camera at position.
func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{position: position, enabled: true}
}

// NewCameraAt returns an enabled camera centred on the first cell of chunk cc.
func NewCameraAt(cc grid.ChunkCoord) *Camera {
	return NewCamera(cc.TopLeft().ToPoint())
}

// Enabled reports whether the cache keeps the camera's surroundings loaded.
func (c *Camera) Enabled() bool { return c.enabled }

// SetEnabled turns the camera on or off.
func (c *Camera) SetEnabled(enabled bool) { c.enabled = enabled }

// Position returns the camera position in game units.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// SetPosition moves the camera to p.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// Velocity returns the drift in game units per second.
func (c *Camera) Velocity() mgl32.Vec3 { return c.velocity }

// SetVelocity sets the drift in game units per second.
func (c *Camera) SetVelocity(v mgl32.Vec3) { c.velocity = v }

// Move advances the position by velocity over dt milliseconds.
func (c *Camera) Move(dt float32) {
	c.position = c.position.Add(c.velocity.Mul(dt / 1000))
}

// Coord returns the grid cell under the camera.
func (c *Camera) Coord() grid.Coord {
	return grid.ToCoord(c.position)
}

// CenterChunk returns the chunk holding the cell under the camera.
func (c *Camera) CenterChunk() grid.ChunkCoord {
	return c.Coord().Chunk()
}
