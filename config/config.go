// SPDX-License-Identifier: MIT

// Package config handles afdmc run configuration loading.
//
// A Config is a plain value: it is loaded from YAML on top of Default(),
// checked by Validate, and turned into the inputs of the core packages by
// BuildCouplings, BuildStates, Kernel and RunSpec. Nothing in the core reads global
// state; every run is described by one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/afdmc/auxfield"
	"github.com/katalvlaran/afdmc/propagator"
	"github.com/katalvlaran/afdmc/spin"
)

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Coupling presets.
const (
	PresetDiagonal = "diagonal"
	PresetUniform  = "uniform"
	PresetRandom   = "random"
)

// Config is the root configuration structure.
type Config struct {
	Particles int     `yaml:"particles"`
	Dt        float64 `yaml:"dt"`
	Samples   int     `yaml:"samples"`
	Seed      uint64  `yaml:"seed"`
	Offset    int     `yaml:"offset"`
	Workers   int     `yaml:"workers"` // 0 = GOMAXPROCS
	Method    string  `yaml:"method"`  // gauss | rbm

	Couplings CouplingsConfig `yaml:"couplings"`
	States    StatesConfig    `yaml:"states"`
	Log       LogConfig       `yaml:"log"`

	// MetricsOut, when set, receives the run metrics in the prometheus text format.
	MetricsOut string `yaml:"metrics_out"`
}

// CouplingsConfig selects a coupling generator.
type CouplingsConfig struct {
	Preset string  `yaml:"preset"` // diagonal | uniform | random
	Scale  float64 `yaml:"scale"`  // value for diagonal/uniform, spread for random
	Seed   uint64  `yaml:"seed"`

	// LSSpread > 0 draws spin-orbit couplings with that spread.
	LSSpread float64 `yaml:"ls_spread"`
}

// StatesConfig names the spinor of every particle, particle 0 first.
type StatesConfig struct {
	Bra []string `yaml:"bra"`
	Ket []string `yaml:"ket"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default returns the default configuration: two nucleons, diagonal
// couplings, ⟨max,max| against |up,down⟩.
func Default() *Config {
	return &Config{
		Particles: 2,
		Dt:        0.01,
		Samples:   1000,
		Seed:      17,
		Method:    "gauss",
		Couplings: CouplingsConfig{
			Preset: PresetDiagonal,
			Scale:  1,
			Seed:   1,
		},
		States: StatesConfig{
			Bra: []string{"max", "max"},
			Ket: []string{"up", "down"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads configuration from a file on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is
// empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every field against its domain. Coupling values are
// checked by the generators in BuildCouplings.
func (c *Config) Validate() error {
	if c.Particles < 1 || c.Particles > spin.MaxParticles {
		return invalidf("particles=%d, want 1..%d", c.Particles, spin.MaxParticles)
	}
	if err := (propagator.Params{Dt: c.Dt}).Validate(); err != nil {
		return invalidf("dt=%g", c.Dt)
	}
	if c.Samples < 1 {
		return invalidf("samples=%d", c.Samples)
	}
	if c.Offset < 0 {
		return invalidf("offset=%d", c.Offset)
	}
	if c.Workers < 0 {
		return invalidf("workers=%d", c.Workers)
	}
	if _, err := auxfield.KernelByName(c.Method); err != nil {
		return invalidf("method=%q", c.Method)
	}
	if !slices.Contains([]string{PresetDiagonal, PresetUniform, PresetRandom}, c.Couplings.Preset) {
		return invalidf("couplings.preset=%q", c.Couplings.Preset)
	}
	if c.Couplings.LSSpread < 0 {
		return invalidf("couplings.ls_spread=%g", c.Couplings.LSSpread)
	}
	if len(c.States.Bra) != c.Particles || len(c.States.Ket) != c.Particles {
		return invalidf("states: want %d spinors each, got bra=%d ket=%d",
			c.Particles, len(c.States.Bra), len(c.States.Ket))
	}
	for _, name := range slices.Concat(c.States.Bra, c.States.Ket) {
		if _, err := spin.Spinor(name); err != nil {
			return invalidf("unknown spinor %q, want one of %v", name, spin.SpinorNames())
		}
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Log.Format)) {
		return invalidf("log.format=%q", c.Log.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return invalidf("log.level=%q", c.Log.Level)
	}

	return nil
}
