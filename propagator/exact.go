// SPDX-License-Identifier: MIT

package propagator

import (
	"fmt"

	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/spin"
)

// Exact composes the full factorized propagator.
//
// Implementation:
//   - Stage 1: for each pair (i<j) in lexicographic order, left-multiply
//     Sigma, SigmaTau, Tau and Coulomb in that order.
//   - Stage 2: for each particle in increasing order, left-multiply LSLinear.
//
// Complexity: O(P · 64^A) for P pairs (dense products and exponentials).
func (as *Assembler) Exact() (*spin.Operator, error) {
	g := as.space.Identity()
	channels := []func(i, j int) (*spin.Operator, error){as.Sigma, as.SigmaTau, as.Tau, as.Coulomb}
	for _, p := range as.c.Pairs() {
		for _, ch := range channels {
			f, err := ch(p.I, p.J)
			if err != nil {
				return nil, fmt.Errorf("Exact: %w", err)
			}
			if g, err = f.Mul(g); err != nil {
				return nil, fmt.Errorf("Exact: %w", err)
			}
		}
	}
	for i := 0; i < as.space.Particles(); i++ {
		f, err := as.LSLinear(i)
		if err != nil {
			return nil, fmt.Errorf("Exact: %w", err)
		}
		if g, err = f.Mul(g); err != nil {
			return nil, fmt.Errorf("Exact: %w", err)
		}
	}

	return g, nil
}

// Exact returns the factorized propagator of c with time step p.Dt.
func Exact(c *couplings.Couplings, p Params) (*spin.Operator, error) {
	as, err := NewAssembler(c, p)
	if err != nil {
		return nil, err
	}

	return as.Exact()
}

// ExactBracket returns ⟨bra|G_exact|ket⟩.
// Errors: as Exact, plus spin.ErrShapeMismatch when the states do not have
// A particles or are not a bra and a ket.
func ExactBracket(bra, ket *spin.State, c *couplings.Couplings, p Params) (complex128, error) {
	g, err := Exact(c, p)
	if err != nil {
		return 0, err
	}
	v, err := spin.Bracket(bra, g, ket)
	if err != nil {
		return 0, fmt.Errorf("ExactBracket: %w", err)
	}

	return v, nil
}
