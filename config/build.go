// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/afdmc/auxfield"
	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/propagator"
	"github.com/katalvlaran/afdmc/spin"
)

// Params returns the propagator parameters of the run.
func (c *Config) Params() propagator.Params {
	return propagator.Params{Dt: c.Dt}
}

// Kernel resolves Method.
func (c *Config) Kernel() (auxfield.Kernel, error) {
	k, err := auxfield.KernelByName(c.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return k, nil
}

// BuildCouplings runs the configured coupling generator.
func (c *Config) BuildCouplings() (*couplings.Couplings, error) {
	var (
		cs  *couplings.Couplings
		err error
	)
	switch c.Couplings.Preset {
	case PresetDiagonal:
		cs, err = couplings.Diagonal(c.Particles, c.Couplings.Scale)
	case PresetUniform:
		cs, err = couplings.Uniform(c.Particles, c.Couplings.Scale)
	case PresetRandom:
		cs, err = couplings.Random(c.Particles, c.Couplings.Seed, c.Couplings.Scale)
	default:
		return nil, invalidf("couplings.preset=%q", c.Couplings.Preset)
	}
	if err != nil {
		return nil, err
	}
	if c.Couplings.LSSpread > 0 {
		// distinct stream from the two-body draws
		if err := cs.RandomLS(c.Couplings.Seed+1, c.Couplings.LSSpread); err != nil {
			return nil, err
		}
	}

	return cs, nil
}

// BuildStates returns the configured bra and ket product states.
func (c *Config) BuildStates() (bra, ket *spin.State, err error) {
	s, err := spin.NewSpace(c.Particles)
	if err != nil {
		return nil, nil, err
	}
	if bra, err = s.ProductState(spin.Bra, c.States.Bra...); err != nil {
		return nil, nil, fmt.Errorf("states.bra: %w", err)
	}
	if ket, err = s.ProductState(spin.Ket, c.States.Ket...); err != nil {
		return nil, nil, fmt.Errorf("states.ket: %w", err)
	}

	return bra, ket, nil
}

// RunSpec assembles the sampling run described by the configuration.
func (c *Config) RunSpec() (auxfield.RunSpec, error) {
	if err := c.Validate(); err != nil {
		return auxfield.RunSpec{}, err
	}
	k, err := c.Kernel()
	if err != nil {
		return auxfield.RunSpec{}, err
	}
	cs, err := c.BuildCouplings()
	if err != nil {
		return auxfield.RunSpec{}, err
	}
	bra, ket, err := c.BuildStates()
	if err != nil {
		return auxfield.RunSpec{}, err
	}

	return auxfield.RunSpec{
		Sampler:   auxfield.Sampler{Kernel: k, Params: c.Params()},
		Bra:       bra,
		Ket:       ket,
		Couplings: cs,
		Samples:   c.Samples,
		Seed:      c.Seed,
		Offset:    c.Offset,
	}, nil
}
