package world

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"isoview/internal/grid"
)

// Map dump layout, zstd-compressed:
//
//	magic    [8]byte  "ISOMAP1\n"
//	dims     [3]uint16 BlocksX, BlocksY, BlocksZ
//	count    uint32
//	count x { x int32, y int32, blocks [volume][2]byte (id, value) }
var dumpMagic = [8]byte{'I', 'S', 'O', 'M', 'A', 'P', '1', '\n'}

// maxDumpChunks bounds allocations when reading untrusted dumps.
const maxDumpChunks = 1 << 16

// ErrBadDump is returned by Load for input that is not a map dump.
var ErrBadDump = errors.New("world: not a map dump")

// Save writes every chunk of cs to w.
func Save(w io.Writer, cs *ChunkStore) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriter(enc)

	coords := cs.Coords()
	header := struct {
		Magic [8]byte
		Dims  [3]uint16
		Count uint32
	}{dumpMagic, [3]uint16{grid.BlocksX, grid.BlocksY, grid.BlocksZ}, uint32(len(coords))}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("write header: %w", err)
	}

	raw := make([]byte, 2*chunkVolume)
	for _, cc := range coords {
		ch, ok := cs.Chunk(cc)
		if !ok {
			continue
		}
		pos := [2]int32{int32(cc.X), int32(cc.Y)}
		if err := binary.Write(bw, binary.LittleEndian, pos); err != nil {
			enc.Close()
			return fmt.Errorf("write chunk %v: %w", cc, err)
		}
		for i, b := range ch.blocks {
			raw[2*i] = byte(b.ID)
			raw[2*i+1] = b.Value
		}
		if _, err := bw.Write(raw); err != nil {
			enc.Close()
			return fmt.Errorf("write chunk %v: %w", cc, err)
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flush: %w", err)
	}
	return enc.Close()
}

// Load reads a dump written by Save.
func Load(r io.Reader) ([]*Chunk, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var header struct {
		Magic [8]byte
		Dims  [3]uint16
		Count uint32
	}
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != dumpMagic {
		return nil, ErrBadDump
	}
	if header.Dims != [3]uint16{grid.BlocksX, grid.BlocksY, grid.BlocksZ} {
		return nil, fmt.Errorf("%w: chunk dims %v", ErrBadDump, header.Dims)
	}
	if header.Count > maxDumpChunks {
		return nil, fmt.Errorf("%w: %d chunks", ErrBadDump, header.Count)
	}

	chunks := make([]*Chunk, 0, header.Count)
	raw := make([]byte, 2*chunkVolume)
	for i := uint32(0); i < header.Count; i++ {
		var pos [2]int32
		if err := binary.Read(br, binary.LittleEndian, &pos); err != nil {
			return nil, fmt.Errorf("read chunk %d: %w", i, err)
		}
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("read chunk %d: %w", i, err)
		}
		ch := NewChunk(grid.ChunkCoord{X: int(pos[0]), Y: int(pos[1])})
		for j := range ch.blocks {
			ch.blocks[j] = Block{ID: BlockType(raw[2*j]), Value: raw[2*j+1]}
		}
		chunks = append(chunks, ch)
	}
	return chunks, nil
}
