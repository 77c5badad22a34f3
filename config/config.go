// Package config loads tunable engine settings from a TOML file, falling
// back to sane in-code defaults when no file is given.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's runtime-tunable knobs.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// EngineConfig controls the storage/index layer.
type EngineConfig struct {
	// BTreeOrder is the branching factor used for every secondary index
	// the engine creates (primary key and UNIQUE columns).
	BTreeOrder int `toml:"btree_order"`
}

// Default returns the configuration used when no file is loaded.
func Default() *Config {
	return &Config{Engine: EngineConfig{BTreeOrder: 32}}
}

// Load reads and parses a TOML config file at path, applying Default()
// for any field left unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads TOML content from r, applying Default() for any field left
// unset.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Engine.BTreeOrder < 3 {
		cfg.Engine.BTreeOrder = 3
	}
	return cfg, nil
}
