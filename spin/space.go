// SPDX-License-Identifier: MIT
// Package spin - the A-particle spin-isospin space.
//
// A Space fixes the particle count and is the factory for operators and
// states of that size. It is a small value type and safe to share.

package spin

import (
	"fmt"

	"github.com/katalvlaran/afdmc/matrix"
)

const (
	// LocalDim is the single-particle spin-isospin dimension.
	LocalDim = 4
	// MaxParticles bounds A so a dense operator stays at most 4096×4096.
	MaxParticles = 6
)

// Space is the 4^A-dimensional spin-isospin space of A particles.
type Space struct {
	particles int
}

// NewSpace returns the space of the given particle count.
// Errors: ErrShapeMismatch unless 1 ≤ particles ≤ MaxParticles.
func NewSpace(particles int) (Space, error) {
	if particles < 1 || particles > MaxParticles {
		return Space{}, fmt.Errorf("NewSpace(%d): %w", particles, ErrShapeMismatch)
	}

	return Space{particles: particles}, nil
}

// Particles returns A.
func (s Space) Particles() int { return s.particles }

// Dim returns 4^A.
func (s Space) Dim() int { return pow4(s.particles) }

// Pairs returns P = A(A−1)/2.
func (s Space) Pairs() int { return s.particles * (s.particles - 1) / 2 }

// checkParticle validates a particle index.
func (s Space) checkParticle(i int) error {
	if i < 0 || i >= s.particles {
		return fmt.Errorf("particle %d of %d: %w", i, s.particles, ErrIndexOutOfRange)
	}

	return nil
}

// Identity returns the factored identity.
func (s Space) Identity() *Operator {
	blocks := make([]*matrix.Dense, s.particles)
	for k := range blocks {
		blocks[k] = IdentityBlock()
	}

	return &Operator{space: s, kind: Factored, blocks: blocks}
}

// DenseIdentity returns the 4^A×4^A identity in dense form.
func (s Space) DenseIdentity() *Operator {
	I, _ := matrix.NewIdentity(s.Dim())

	return &Operator{space: s, kind: Dense, dense: I}
}

// Zeros returns the dense zero operator.
func (s Space) Zeros() *Operator {
	z, _ := matrix.NewDense(s.Dim(), s.Dim())

	return &Operator{space: s, kind: Dense, dense: z}
}

// OneBody returns the factored operator acting with block on particle i and
// as the identity elsewhere. The block is copied.
//
// Errors:
//   - ErrIndexOutOfRange for a bad particle index.
//   - ErrShapeMismatch unless block is 4×4.
func (s Space) OneBody(i int, block *matrix.Dense) (*Operator, error) {
	if err := s.checkParticle(i); err != nil {
		return nil, spinErrorf("OneBody", err)
	}
	if block == nil || block.Rows() != LocalDim || block.Cols() != LocalDim {
		return nil, spinErrorf("OneBody", ErrShapeMismatch)
	}
	op := s.Identity()
	op.blocks[i] = block.Clone()

	return op, nil
}

// Sigma returns σ_i^a, the spin Pauli matrix on particle i along axis a ∈ {0,1,2}.
func (s Space) Sigma(i, a int) (*Operator, error) {
	b, err := SigmaBlock(a)
	if err != nil {
		return nil, spinErrorf("Sigma", err)
	}

	return s.OneBody(i, b)
}

// Tau returns τ_i^a, the isospin Pauli matrix on particle i along axis a ∈ {0,1,2}.
func (s Space) Tau(i, a int) (*Operator, error) {
	b, err := TauBlock(a)
	if err != nil {
		return nil, spinErrorf("Tau", err)
	}

	return s.OneBody(i, b)
}

// SigmaTau returns σ_i^a τ_i^c on particle i.
func (s Space) SigmaTau(i, a, c int) (*Operator, error) {
	b, err := SigmaTauBlock(a, c)
	if err != nil {
		return nil, spinErrorf("SigmaTau", err)
	}

	return s.OneBody(i, b)
}

// pow4 returns 4^n for small n ≥ 0.
func pow4(n int) int { return 1 << (2 * n) }
