package world

// BlockType is the material id stored per cell. Its classification (liquid,
// view-blocking) lives in the registry package.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGround
	BlockTypeStone
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeSand
	BlockTypeWater
	BlockTypeLava
	BlockTypeGlass
)

// Block is the raw content of one cell as supplied by the world-data source.
type Block struct {
	ID    BlockType
	Value uint8 // sub-variant, e.g. sprite frame or fill level
}

// Air is the empty block.
var Air = Block{}

// IsAir reports whether b is empty.
func (b Block) IsAir() bool {
	return b.ID == BlockTypeAir
}
