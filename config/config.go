// Package config handles stackvm.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/reend/vm-stack/pkg/bytecode"
)

// FileName is the project configuration file looked up in the working
// directory. Both CLIs fall back to defaults when it is absent.
const FileName = "stackvm.toml"

// Config represents a stackvm.toml project configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Build   Build   `toml:"build"`
}

// Machine configures the interpreter.
type Machine struct {
	// MemoryWords is the size of the unified memory region in words.
	// It must exceed the code origin or there is no code region at all.
	MemoryWords int `toml:"memory-words"`

	// Trace controls the per-instruction stdout trace.
	Trace bool `toml:"trace"`
}

// Build configures translator output.
type Build struct {
	// Output is the default bytecode file name, relative to the working
	// directory unless absolute.
	Output string `toml:"output"`
}

// Default returns the configuration used when no stackvm.toml exists.
func Default() *Config {
	return &Config{
		Machine: Machine{
			MemoryWords: bytecode.DefaultMemoryWords,
			Trace:       true,
		},
		Build: Build{
			Output: "out.bin",
		},
	}
}

// Load parses stackvm.toml from the given directory. A missing file is not
// an error; defaults are returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := LoadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile parses an explicit configuration file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Machine.MemoryWords <= bytecode.Origin {
		return fmt.Errorf("machine.memory-words must be greater than %d, got %d", bytecode.Origin, c.Machine.MemoryWords)
	}
	if c.Build.Output == "" {
		return fmt.Errorf("build.output must not be empty")
	}
	return nil
}
