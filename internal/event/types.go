package event

import "isoview/internal/grid"

// MapChanged is published by the world-data source after a change too broad
// to diff, such as loading or replacing chunks wholesale.
type MapChanged struct{}

// CenterChanged is published when a viewpoint's centre chunk differs from the
// one seen on the previous update. From is nil on the first observation.
// Consumers that keep draw-order state rebuild it on this event.
type CenterChanged struct {
	Viewpoint int
	From      *grid.ChunkCoord
	To        grid.ChunkCoord
}
