package config

import (
	"fmt"

	"isoview/internal/grid"
)

// WorldConfig holds world generation configuration
type WorldConfig struct {
	Seed     int64  `toml:"seed" yaml:"seed"`
	SeaLevel int    `toml:"sea_level" yaml:"sea_level"` // layer
	Radius   int    `toml:"radius" yaml:"radius"`       // chunks around the origin, 0 = unbounded
	MapFile  string `toml:"map_file" yaml:"map_file"`   // load this dump instead of generating
}

func defaultWorld() WorldConfig {
	return WorldConfig{
		Seed:     1,
		SeaLevel: 3,
		Radius:   16,
	}
}

func (w WorldConfig) validate() []error {
	var errs []error
	if w.SeaLevel < 0 || w.SeaLevel >= grid.BlocksZ {
		errs = append(errs, fmt.Errorf("world.sea_level %d outside [0, %d)", w.SeaLevel, grid.BlocksZ))
	}
	if w.Radius < 0 {
		errs = append(errs, fmt.Errorf("world.radius %d is negative", w.Radius))
	}
	return errs
}
