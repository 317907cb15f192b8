package registry

import (
	"testing"

	"isoview/internal/world"
)

func TestBuiltinClassification(t *testing.T) {
	tests := []struct {
		id       world.BlockType
		liquid   bool
		obscures bool
	}{
		{world.BlockTypeAir, false, false},
		{world.BlockTypeStone, false, true},
		{world.BlockTypeWater, true, false},
		{world.BlockTypeLava, true, true},
		{world.BlockTypeGlass, false, false},
	}
	for _, tt := range tests {
		if got := IsLiquid(tt.id); got != tt.liquid {
			t.Fatalf("IsLiquid(%d): got %v, want %v", tt.id, got, tt.liquid)
		}
		if got := Obscures(tt.id); got != tt.obscures {
			t.Fatalf("Obscures(%d): got %v, want %v", tt.id, got, tt.obscures)
		}
	}
}

func TestUnknownBlockObscures(t *testing.T) {
	def := Lookup(200)
	if !def.Obscures || def.Liquid {
		t.Fatalf("unknown block: got %+v, want opaque non-liquid", def)
	}
}

func TestRegisterBlockRename(t *testing.T) {
	const id world.BlockType = 201
	RegisterBlock(&BlockDefinition{ID: id, Name: "test_a"})
	RegisterBlock(&BlockDefinition{ID: id, Name: "test_b", Liquid: true})
	t.Cleanup(func() {
		delete(Blocks, id)
		delete(BlockNames, "test_b")
	})

	if _, ok := ByName("test_a"); ok {
		t.Fatalf("old name still registered")
	}
	got, ok := ByName("test_b")
	if !ok || got != id {
		t.Fatalf("ByName(test_b): got %d %v, want %d true", got, ok, id)
	}
	if !IsLiquid(id) {
		t.Fatalf("re-registered block should be liquid")
	}
}
