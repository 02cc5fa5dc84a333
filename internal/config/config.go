// Package config loads the host's optional TOML configuration file (spec
// §6's host-collaborator surface, SPEC_FULL §1): default language,
// prelude search roots and file order, default real precision, max
// call-stack depth, and whether CLI output is colorized.
//
// Grounded on lookbusy1344-arm_emulator/config/config.go's DefaultConfig +
// LoadFrom shape: a missing file is not an error, it just means the
// defaults stand.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the host's tunable knobs. Fields default to the values the
// schemas and kernel already assume when no file is present.
type Config struct {
	Language      string   `toml:"language"`
	PreludeRoots  []string `toml:"prelude_roots"`
	PreludeFiles  []string `toml:"prelude_files"`
	RealPrecision int      `toml:"real_precision"`
	MaxCallDepth  int      `toml:"max_call_depth"`
	ColoredOutput bool     `toml:"colored_output"`
}

// Default returns the configuration used when no TOML file is found.
func Default() *Config {
	return &Config{
		Language:      "lumen",
		PreludeRoots:  []string{"stdlib"},
		PreludeFiles:  []string{"core.lm", "collections.lm"},
		RealPrecision: 15,
		MaxCallDepth:  2000,
		ColoredOutput: true,
	}
}

// Load reads path, overlaying its values onto Default(). A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
