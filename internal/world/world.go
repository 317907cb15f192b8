package world

import "isoview/internal/grid"

// Source supplies raw chunk contents. A missing chunk is reported with
// ok == false and is not an error.
type Source interface {
	Chunk(cc grid.ChunkCoord) (*Chunk, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(cc grid.ChunkCoord) (*Chunk, bool)

func (f SourceFunc) Chunk(cc grid.ChunkCoord) (*Chunk, bool) {
	return f(cc)
}
