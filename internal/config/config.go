package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"isoview/internal/grid"
	"isoview/internal/registry"
)

// Config is the full application configuration.
type Config struct {
	Render  RenderConfig  `toml:"render" yaml:"render"`
	World   WorldConfig   `toml:"world" yaml:"world"`
	Camera  CameraConfig  `toml:"camera" yaml:"camera"`
	Run     RunConfig     `toml:"run" yaml:"run"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// RenderConfig holds render cache settings
type RenderConfig struct {
	VerticalLimit float32 `toml:"vertical_limit" yaml:"vertical_limit"` // game units, 0 = unlimited
	GroundBlock   string  `toml:"ground_block" yaml:"ground_block"`
	Shade         float32 `toml:"shade" yaml:"shade"` // ambient darkening of covered cells (0.0-1.0)
}

// CameraConfig holds the start position and drift of the camera
type CameraConfig struct {
	StartX    int     `toml:"start_x" yaml:"start_x"` // chunk
	StartY    int     `toml:"start_y" yaml:"start_y"` // chunk
	VelocityX float32 `toml:"velocity_x" yaml:"velocity_x"`
	VelocityY float32 `toml:"velocity_y" yaml:"velocity_y"`
}

// RunConfig holds the tick loop settings
type RunConfig struct {
	Ticks        int           `toml:"ticks" yaml:"ticks"`
	TickDuration time.Duration `toml:"tick_duration" yaml:"tick_duration"`
	SlowTick     time.Duration `toml:"slow_tick" yaml:"slow_tick"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads a .toml, .yaml or .yml file over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Render: RenderConfig{
			GroundBlock: "ground",
			Shade:       0.3,
		},
		World: defaultWorld(),
		Camera: CameraConfig{
			VelocityX: grid.DiagLength * 2,
			VelocityY: grid.DiagLength2 * 3,
		},
		Run: RunConfig{
			Ticks:        600,
			TickDuration: 16 * time.Millisecond,
			SlowTick:     8 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every setting that is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.VerticalLimit < 0 {
		errs = append(errs, fmt.Errorf("render.vertical_limit %v is negative", c.Render.VerticalLimit))
	}
	if c.Render.Shade < 0 || c.Render.Shade > 1 {
		errs = append(errs, fmt.Errorf("render.shade %v outside [0, 1]", c.Render.Shade))
	}
	if _, ok := registry.ByName(c.Render.GroundBlock); !ok {
		errs = append(errs, fmt.Errorf("render.ground_block %q is not a known block (known: %s)",
			c.Render.GroundBlock, strings.Join(registry.Names(), ", ")))
	}
	errs = append(errs, c.World.validate()...)
	if c.Run.Ticks < 0 {
		errs = append(errs, fmt.Errorf("run.ticks %d is negative", c.Run.Ticks))
	}
	if c.Run.TickDuration <= 0 {
		errs = append(errs, fmt.Errorf("run.tick_duration %v must be positive", c.Run.TickDuration))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// RenderLimit returns the vertical limit in game units, with 0 mapped to
// the full world height.
func (c *Config) RenderLimit() float32 {
	if c.Render.VerticalLimit == 0 {
		return grid.GameHeight
	}
	return c.Render.VerticalLimit
}

// StartChunk returns the chunk the camera starts over.
func (c *Config) StartChunk() grid.ChunkCoord {
	return grid.ChunkCoord{X: c.Camera.StartX, Y: c.Camera.StartY}
}
