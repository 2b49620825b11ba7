// SPDX-License-Identifier: MIT

package couplings

import (
	"fmt"
	"math"
)

// MaxParticles mirrors the operator layer's bound on A.
const MaxParticles = 6

// Pair is an unordered particle pair with I < J.
type Pair struct {
	I, J int
}

// Couplings holds the interaction tensors of A particles.
type Couplings struct {
	particles int
	asig      []float64
	asigtau   []float64
	atau      []float64
	vcoul     []float64
	gls       []float64
}

// New returns all-zero couplings for A particles.
// Errors: ErrShape unless 1 ≤ particles ≤ MaxParticles.
func New(particles int) (*Couplings, error) {
	if particles < 1 || particles > MaxParticles {
		return nil, fmt.Errorf("New(%d): %w", particles, ErrShape)
	}
	n := particles

	return &Couplings{
		particles: n,
		asig:      make([]float64, 9*n*n),
		asigtau:   make([]float64, 9*n*n),
		atau:      make([]float64, n*n),
		vcoul:     make([]float64, n*n),
		gls:       make([]float64, 3*n),
	}, nil
}

// FromTensors builds couplings from flat row-major tensors (copied).
// A nil gls means no spin-orbit term.
//
// Errors:
//   - ErrShape on a bad particle count or tensor length.
//   - ErrNonFinite on NaN/Inf entries.
func FromTensors(particles int, asig, asigtau, atau, vcoul, gls []float64) (*Couplings, error) {
	c, err := New(particles)
	if err != nil {
		return nil, err
	}
	if gls == nil {
		gls = c.gls
	}
	for _, t := range []struct {
		name string
		dst  []float64
		src  []float64
	}{
		{"asig", c.asig, asig},
		{"asigtau", c.asigtau, asigtau},
		{"atau", c.atau, atau},
		{"vcoul", c.vcoul, vcoul},
		{"gls", c.gls, gls},
	} {
		if len(t.src) != len(t.dst) {
			return nil, fmt.Errorf("FromTensors: %s has length %d want %d: %w", t.name, len(t.src), len(t.dst), ErrShape)
		}
		copy(t.dst, t.src)
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Particles returns A.
func (c *Couplings) Particles() int { return c.particles }

// Pairs returns the pairs (i<j) in increasing lexicographic order.
func (c *Couplings) Pairs() []Pair {
	return Pairs(c.particles)
}

// Pairs returns the pairs (i<j) of n particles in increasing lexicographic order.
func Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	out := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Pair{I: i, J: j})
		}
	}

	return out
}

// Validate reports the first shape or finiteness violation.
func (c *Couplings) Validate() error {
	n := c.particles
	if n < 1 || n > MaxParticles ||
		len(c.asig) != 9*n*n || len(c.asigtau) != 9*n*n ||
		len(c.atau) != n*n || len(c.vcoul) != n*n || len(c.gls) != 3*n {
		return fmt.Errorf("Validate: %w", ErrShape)
	}
	for _, t := range []struct {
		name string
		v    []float64
	}{
		{"asig", c.asig}, {"asigtau", c.asigtau}, {"atau", c.atau}, {"vcoul", c.vcoul}, {"gls", c.gls},
	} {
		for k, x := range t.v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("Validate: %s[%d]=%v: %w", t.name, k, x, ErrNonFinite)
			}
		}
	}

	return nil
}

// idx4 is the offset of [a][i][b][j].
func (c *Couplings) idx4(a, i, b, j int) (int, error) {
	n := c.particles
	if a < 0 || a > 2 || b < 0 || b > 2 || i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("index [%d,%d,%d,%d]: %w: %w", a, i, b, j, ErrIndexOutOfRange, ErrShape)
	}

	return ((a*n+i)*3+b)*n + j, nil
}

// idx2 is the offset of [i][j].
func (c *Couplings) idx2(i, j int) (int, error) {
	n := c.particles
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("index [%d,%d]: %w: %w", i, j, ErrIndexOutOfRange, ErrShape)
	}

	return i*n + j, nil
}

// idxLS is the offset of gls[a][i].
func (c *Couplings) idxLS(a, i int) (int, error) {
	if a < 0 || a > 2 || i < 0 || i >= c.particles {
		return 0, fmt.Errorf("index [%d,%d]: %w: %w", a, i, ErrIndexOutOfRange, ErrShape)
	}

	return a*c.particles + i, nil
}

// Sig returns asig[a,i,b,j].
// Errors: ErrIndexOutOfRange (wrapping ErrShape) for a bad index.
func (c *Couplings) Sig(a, i, b, j int) (float64, error) {
	k, err := c.idx4(a, i, b, j)
	if err != nil {
		return 0, fmt.Errorf("Sig: %w", err)
	}

	return c.asig[k], nil
}

// SigTau returns asigtau[a,i,b,j].
// Errors: ErrIndexOutOfRange (wrapping ErrShape) for a bad index.
func (c *Couplings) SigTau(a, i, b, j int) (float64, error) {
	k, err := c.idx4(a, i, b, j)
	if err != nil {
		return 0, fmt.Errorf("SigTau: %w", err)
	}

	return c.asigtau[k], nil
}

// Tau returns atau[i,j].
// Errors: ErrIndexOutOfRange (wrapping ErrShape) for a bad index.
func (c *Couplings) Tau(i, j int) (float64, error) {
	k, err := c.idx2(i, j)
	if err != nil {
		return 0, fmt.Errorf("Tau: %w", err)
	}

	return c.atau[k], nil
}

// Coul returns vcoul[i,j].
// Errors: ErrIndexOutOfRange (wrapping ErrShape) for a bad index.
func (c *Couplings) Coul(i, j int) (float64, error) {
	k, err := c.idx2(i, j)
	if err != nil {
		return 0, fmt.Errorf("Coul: %w", err)
	}

	return c.vcoul[k], nil
}

// LS returns gls[a,i].
// Errors: ErrIndexOutOfRange (wrapping ErrShape) for a bad index.
func (c *Couplings) LS(a, i int) (float64, error) {
	k, err := c.idxLS(a, i)
	if err != nil {
		return 0, fmt.Errorf("LS: %w", err)
	}

	return c.gls[k], nil
}

// HasLS reports whether any spin-orbit coupling is non-zero.
func (c *Couplings) HasLS() bool {
	for _, g := range c.gls {
		if g != 0 {
			return true
		}
	}

	return false
}

// LSSquareSum returns Σ gls².
func (c *Couplings) LSSquareSum() float64 {
	var s float64
	for _, g := range c.gls {
		s += g * g
	}

	return s
}

// set writes v at k of t after a finiteness check.
func set(t []float64, k int, v float64, tag string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", tag, ErrNonFinite)
	}
	t[k] = v

	return nil
}

// SetSig sets asig[a,i,b,j].
func (c *Couplings) SetSig(a, i, b, j int, v float64) error {
	k, err := c.idx4(a, i, b, j)
	if err != nil {
		return fmt.Errorf("SetSig: %w", err)
	}

	return set(c.asig, k, v, "SetSig")
}

// SetSigTau sets asigtau[a,i,b,j].
func (c *Couplings) SetSigTau(a, i, b, j int, v float64) error {
	k, err := c.idx4(a, i, b, j)
	if err != nil {
		return fmt.Errorf("SetSigTau: %w", err)
	}

	return set(c.asigtau, k, v, "SetSigTau")
}

// SetTau sets atau[i,j].
func (c *Couplings) SetTau(i, j int, v float64) error {
	k, err := c.idx2(i, j)
	if err != nil {
		return fmt.Errorf("SetTau: %w", err)
	}

	return set(c.atau, k, v, "SetTau")
}

// SetCoul sets vcoul[i,j].
func (c *Couplings) SetCoul(i, j int, v float64) error {
	k, err := c.idx2(i, j)
	if err != nil {
		return fmt.Errorf("SetCoul: %w", err)
	}

	return set(c.vcoul, k, v, "SetCoul")
}

// SetLS sets gls[a,i].
func (c *Couplings) SetLS(a, i int, v float64) error {
	k, err := c.idxLS(a, i)
	if err != nil {
		return fmt.Errorf("SetLS: %w", err)
	}

	return set(c.gls, k, v, "SetLS")
}

// Clone returns a deep copy.
func (c *Couplings) Clone() *Couplings {
	return &Couplings{
		particles: c.particles,
		asig:      append([]float64(nil), c.asig...),
		asigtau:   append([]float64(nil), c.asigtau...),
		atau:      append([]float64(nil), c.atau...),
		vcoul:     append([]float64(nil), c.vcoul...),
		gls:       append([]float64(nil), c.gls...),
	}
}
