// Package config loads and validates the host configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; constructing a validator per call
// is expensive.
var validate = validator.New()

// Engine configures the wasm runtime hosting the native module.
type Engine struct {
	// WasmPath locates the engine's wasm binary on disk.
	WasmPath string `yaml:"wasm_path" validate:"required"`

	// ModuleName names the guest instance.
	ModuleName string `yaml:"module_name"`

	// StartFunction is the reactor initializer run after instantiation.
	StartFunction string `yaml:"start_function"`

	// MaxHeapBytes caps the managed allocator region; zero is unbounded.
	MaxHeapBytes uint32 `yaml:"max_heap_bytes"`

	// MemoryLimitPages caps guest linear memory in 64KiB pages; zero keeps
	// the runtime default.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
}

// Calc configures the exported surface.
type Calc struct {
	// EvalBits is the precision requested by the evalf entry point.
	EvalBits uint32 `yaml:"eval_bits" validate:"omitempty,gte=11,lte=4096"`
}

// Logging configures the structured logger.
type Logging struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
	Source bool   `yaml:"source"`
}

// Config is the top-level host configuration.
type Config struct {
	Engine  Engine  `yaml:"engine"`
	Calc    Calc    `yaml:"calc"`
	Logging Logging `yaml:"logging"`
}

// Default returns the configuration used when no file is given. WasmPath
// must still be supplied by the caller.
func Default() Config {
	return Config{
		Engine: Engine{
			ModuleName:    "symengine",
			StartFunction: "_initialize",
		},
		Calc: Calc{
			EvalBits: 53,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Parse unmarshals YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}
