package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"isoview/internal/grid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.RenderLimit() != grid.GameHeight {
		t.Errorf("RenderLimit() = %v, want %v", cfg.RenderLimit(), grid.GameHeight)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "isoview.toml", `
[render]
vertical_limit = 128.0
ground_block = "stone"

[world]
seed = 42
radius = 4

[camera]
start_x = 2
start_y = -1

[run]
ticks = 10
tick_duration = "20ms"

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.RenderLimit() != 128 {
		t.Errorf("RenderLimit() = %v, want 128", cfg.RenderLimit())
	}
	if cfg.Render.GroundBlock != "stone" {
		t.Errorf("GroundBlock = %q", cfg.Render.GroundBlock)
	}
	if cfg.World.Seed != 42 || cfg.World.Radius != 4 {
		t.Errorf("World = %+v", cfg.World)
	}
	if cfg.World.SeaLevel != defaultWorld().SeaLevel {
		t.Errorf("SeaLevel = %d, want default", cfg.World.SeaLevel)
	}
	if cfg.StartChunk() != (grid.ChunkCoord{X: 2, Y: -1}) {
		t.Errorf("StartChunk() = %v", cfg.StartChunk())
	}
	if cfg.Run.Ticks != 10 || cfg.Run.TickDuration != 20*time.Millisecond {
		t.Errorf("Run = %+v", cfg.Run)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "isoview.yaml", `
world:
  seed: 7
  sea_level: 5
  map_file: demo.isomap
run:
  ticks: 3
  slow_tick: 2ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.Seed != 7 || cfg.World.SeaLevel != 5 || cfg.World.MapFile != "demo.isomap" {
		t.Errorf("World = %+v", cfg.World)
	}
	if cfg.Run.Ticks != 3 || cfg.Run.SlowTick != 2*time.Millisecond {
		t.Errorf("Run = %+v", cfg.Run)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %q, want default", cfg.Logging.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, content, want string
	}{
		{"unknown extension", "cfg.json", `{}`, "unsupported extension"},
		{"bad toml", "cfg.toml", "[render\n", "parse config"},
		{"negative radius", "cfg.toml", "[world]\nradius = -1\n", "world.radius"},
		{"sea level", "cfg.yml", "world:\n  sea_level: 99\n", "world.sea_level"},
		{"format", "cfg.toml", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "cfg.toml", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"ground", "cfg.toml", "[render]\nground_block = \"cheese\"\n", "render.ground_block"},
		{"ground lists known blocks", "cfg.toml", "[render]\nground_block = \"cheese\"\n", "stone"},
		{"shade", "cfg.toml", "[render]\nshade = 2.0\n", "render.shade"},
		{"limit", "cfg.toml", "[render]\nvertical_limit = -5.0\n", "render.vertical_limit"},
		{"ticks", "cfg.toml", "[run]\nticks = -2\n", "run.ticks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v, want read error", err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := defaults()
	cfg.Run.Ticks = -1
	cfg.World.Radius = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"run.ticks", "world.radius"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
