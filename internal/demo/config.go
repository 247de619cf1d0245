package demo

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config controls the demo's timing and layout. All fields have working
// defaults; a missing config file is not an error.
type Config struct {
	// TickMS is the frame interval in milliseconds.
	TickMS int `toml:"tick_ms"`

	// SpawnEvery is the spawner cadence in ticks.
	SpawnEvery int `toml:"spawn_every"`

	// PlayerHP is the player's starting hit points.
	PlayerHP int `toml:"player_hp"`

	// ArenaWidth and ArenaHeight bound player movement.
	ArenaWidth  int `toml:"arena_width"`
	ArenaHeight int `toml:"arena_height"`

	// LogLines is how many combat log lines to retain.
	LogLines int `toml:"log_lines"`

	// Script is an optional path to a Lua hook file.
	Script string `toml:"script"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		TickMS:      50,
		SpawnEvery:  30,
		PlayerHP:    30,
		ArenaWidth:  40,
		ArenaHeight: 12,
		LogLines:    8,
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file yields the defaults with no error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg.sanitized(), nil
}

// sanitized clamps nonsense values back to the defaults.
func (c Config) sanitized() Config {
	def := DefaultConfig()
	if c.TickMS <= 0 {
		c.TickMS = def.TickMS
	}
	if c.SpawnEvery <= 0 {
		c.SpawnEvery = def.SpawnEvery
	}
	if c.PlayerHP <= 0 {
		c.PlayerHP = def.PlayerHP
	}
	if c.ArenaWidth < 10 {
		c.ArenaWidth = def.ArenaWidth
	}
	if c.ArenaHeight < 5 {
		c.ArenaHeight = def.ArenaHeight
	}
	if c.LogLines <= 0 {
		c.LogLines = def.LogLines
	}
	return c
}
