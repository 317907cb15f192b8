package render

import "isoview/internal/grid"

// DirtySet collects coordinates whose lighting must be refreshed.
type DirtySet struct {
	pending map[grid.Coord]struct{}
}

// Mark adds c. Marking the same coordinate again is a no-op.
func (d *DirtySet) Mark(c grid.Coord) {
	if d.pending == nil {
		d.pending = make(map[grid.Coord]struct{}, 200)
	}
	d.pending[c] = struct{}{}
}

// Len returns the number of pending coordinates.
func (d *DirtySet) Len() int {
	return len(d.pending)
}

// Contains reports whether c is pending.
func (d *DirtySet) Contains(c grid.Coord) bool {
	_, ok := d.pending[c]
	return ok
}

// Drain calls fn once for every pending coordinate and leaves the set empty.
func (d *DirtySet) Drain(fn func(grid.Coord)) {
	for c := range d.pending {
		fn(c)
	}
	clear(d.pending)
}
