package grid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Side names one of the eight neighbours of a cell, clockwise from north.
type Side int

const (
	North Side = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	// Center means the position belongs to the cell itself.
	Center
)

// Opposite returns the side pointing back. Center is its own opposite.
func (s Side) Opposite() Side {
	if s == Center {
		return Center
	}
	return (s + 4) % 8
}

func (s Side) String() string {
	switch s {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "C"
	}
}

// NeighbourSide classifies a position inside one DiagLength x DiagLength square
// centred on an odd-row cell. The diamond in the middle is the cell itself, the
// four corner triangles belong to the diagonal neighbours. The pure compass
// directions only occur on the degenerate corner points.
func NeighbourSide(x, y float64) Side {
	if x < 0 {
		x += DiagLength
	}
	if y < 0 {
		y += DiagLength
	}
	result := Center
	if x+y <= DiagLength2 {
		result = NorthWest
	}
	if x-y >= DiagLength2 {
		if result == NorthWest {
			result = North
		} else {
			result = NorthEast
		}
	}
	if x+y >= 3*DiagLength2 {
		if result == NorthEast {
			result = East
		} else {
			result = SouthEast
		}
	}
	if -x+y >= DiagLength2 {
		switch result {
		case SouthEast:
			result = South
		case NorthWest:
			result = West
		default:
			result = SouthWest
		}
	}
	return result
}

// ToCoord returns the cell containing the game-space position p. It inverts
// Coord.ToPoint: ToCoord(c.ToPoint()) == c for every c.
func ToCoord(p mgl32.Vec3) Coord {
	x := float64(p.X())
	y := float64(p.Y())
	sx := math.Floor(x / DiagLength)
	sy := math.Floor(y / DiagLength)

	coarse := Coord{
		X: int(sx),
		Y: int(sy)*2 + 1,
		Z: int(math.Floor(float64(p.Z()) / EdgeLength)),
	}
	return coarse.Neighbour(NeighbourSide(x-sx*DiagLength, y-sy*DiagLength))
}
