package registry

import (
	"fmt"
	"sort"

	"isoview/internal/world"
)

// BlockDefinition defines how a block type is classified for rendering
type BlockDefinition struct {
	ID   world.BlockType
	Name string

	// Liquid cells suppress seams against neighbouring liquid cells.
	Liquid bool
	// Obscures is true when the block fully hides whatever lies behind it.
	Obscures bool
}

var (
	Blocks     = make(map[world.BlockType]*BlockDefinition)
	BlockNames = make(map[string]world.BlockType)
)

// RegisterBlock adds or replaces a definition.
func RegisterBlock(def *BlockDefinition) {
	if old, ok := Blocks[def.ID]; ok && old.Name != def.Name {
		delete(BlockNames, old.Name)
	}
	Blocks[def.ID] = def
	BlockNames[def.Name] = def.ID
}

// Lookup returns the definition for id. Unknown ids are treated as opaque
// solids so that missing registrations hide geometry rather than expose it.
func Lookup(id world.BlockType) *BlockDefinition {
	if def, ok := Blocks[id]; ok {
		return def
	}
	return &BlockDefinition{ID: id, Name: fmt.Sprintf("unknown_%d", id), Obscures: true}
}

// ByName returns the id registered under name.
func ByName(name string) (world.BlockType, bool) {
	id, ok := BlockNames[name]
	return id, ok
}

// IsLiquid reports whether blocks of this id are liquid.
func IsLiquid(id world.BlockType) bool {
	return Lookup(id).Liquid
}

// Obscures reports whether blocks of this id hide what lies behind them.
func Obscures(id world.BlockType) bool {
	return Lookup(id).Obscures
}

// Names returns all registered names, sorted.
func Names() []string {
	names := make([]string, 0, len(BlockNames))
	for n := range BlockNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeAir, Name: "air"})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGround, Name: "ground", Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeStone, Name: "stone", Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGrass, Name: "grass", Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeDirt, Name: "dirt", Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeSand, Name: "sand", Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeWater, Name: "water", Liquid: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeLava, Name: "lava", Liquid: true, Obscures: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGlass, Name: "glass"})
}
