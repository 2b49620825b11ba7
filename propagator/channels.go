// SPDX-License-Identifier: MIT

package propagator

import (
	"fmt"

	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/spin"
)

// Assembler builds channel propagators for one set of couplings.
// It is read-only after construction and safe for concurrent use.
type Assembler struct {
	space  spin.Space
	c      *couplings.Couplings
	params Params
}

// NewAssembler validates its inputs and returns an Assembler.
//
// Errors:
//   - ErrBadParams for a bad time step.
//   - couplings.ErrShape / couplings.ErrNonFinite from c.Validate.
//   - spin.ErrShapeMismatch when A exceeds the operator layer's bound.
func NewAssembler(c *couplings.Couplings, p Params) (*Assembler, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("NewAssembler: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("NewAssembler: nil couplings: %w", couplings.ErrShape)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("NewAssembler: %w", err)
	}
	s, err := spin.NewSpace(c.Particles())
	if err != nil {
		return nil, fmt.Errorf("NewAssembler: %w", err)
	}

	return &Assembler{space: s, c: c, params: p}, nil
}

// Space returns the spin-isospin space of the couplings.
func (as *Assembler) Space() spin.Space { return as.space }

// checkPair validates a pair index.
func (as *Assembler) checkPair(i, j int) error {
	n := as.space.Particles()
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return fmt.Errorf("pair (%d,%d): %w", i, j, spin.ErrIndexOutOfRange)
	}

	return nil
}

// term is one coupling-weighted two-body product O_i·O_j.
type term struct {
	coef float64
	opi  *spin.Operator
	opj  *spin.Operator
}

// exponentiate returns exp(−scale·Σ coef·O_i·O_j), skipping zero couplings.
func (as *Assembler) exponentiate(tag string, scale float64, terms []term) (*spin.Operator, error) {
	var sum *spin.Operator
	for _, tm := range terms {
		if tm.coef == 0 {
			continue
		}
		prod, err := tm.opi.Mul(tm.opj)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		prod = prod.Scale(complex(tm.coef, 0))
		if sum == nil {
			sum = prod
			continue
		}
		if sum, err = sum.Add(prod); err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
	}
	if sum == nil {
		return as.space.Identity(), nil
	}
	out, err := sum.Scale(complex(-scale, 0)).Exponentiate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return out, nil
}

// Sigma returns exp(−½dt Σ_ab asig[a,i,b,j] σ_i^a σ_j^b).
func (as *Assembler) Sigma(i, j int) (*spin.Operator, error) {
	if err := as.checkPair(i, j); err != nil {
		return nil, fmt.Errorf("Sigma: %w", err)
	}
	terms := make([]term, 0, 9)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			v, err := as.c.Sig(a, i, b, j)
			if err != nil {
				return nil, fmt.Errorf("Sigma: %w", err)
			}
			si, _ := as.space.Sigma(i, a)
			sj, _ := as.space.Sigma(j, b)
			terms = append(terms, term{coef: v, opi: si, opj: sj})
		}
	}

	return as.exponentiate("Sigma", 0.5*as.params.Dt, terms)
}

// SigmaTau returns exp(−½dt Σ_abc asigtau[a,i,b,j] σ_i^a τ_i^c σ_j^b τ_j^c).
func (as *Assembler) SigmaTau(i, j int) (*spin.Operator, error) {
	if err := as.checkPair(i, j); err != nil {
		return nil, fmt.Errorf("SigmaTau: %w", err)
	}
	terms := make([]term, 0, 27)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 3; c++ {
				v, err := as.c.SigTau(a, i, b, j)
				if err != nil {
					return nil, fmt.Errorf("SigmaTau: %w", err)
				}
				oi, _ := as.space.SigmaTau(i, a, c)
				oj, _ := as.space.SigmaTau(j, b, c)
				terms = append(terms, term{coef: v, opi: oi, opj: oj})
			}
		}
	}

	return as.exponentiate("SigmaTau", 0.5*as.params.Dt, terms)
}

// Tau returns exp(−½dt atau[i,j] Σ_c τ_i^c τ_j^c).
func (as *Assembler) Tau(i, j int) (*spin.Operator, error) {
	if err := as.checkPair(i, j); err != nil {
		return nil, fmt.Errorf("Tau: %w", err)
	}
	v, err := as.c.Tau(i, j)
	if err != nil {
		return nil, fmt.Errorf("Tau: %w", err)
	}
	terms := make([]term, 0, 3)
	for c := 0; c < 3; c++ {
		ti, _ := as.space.Tau(i, c)
		tj, _ := as.space.Tau(j, c)
		terms = append(terms, term{coef: v, opi: ti, opj: tj})
	}

	return as.exponentiate("Tau", 0.5*as.params.Dt, terms)
}

// Coulomb returns exp(−⅛ vcoul[i,j] dt (1 + τ_i^z + τ_j^z + τ_i^z τ_j^z)),
// which acts only on proton-proton components.
func (as *Assembler) Coulomb(i, j int) (*spin.Operator, error) {
	if err := as.checkPair(i, j); err != nil {
		return nil, fmt.Errorf("Coulomb: %w", err)
	}
	v, err := as.c.Coul(i, j)
	if err != nil {
		return nil, fmt.Errorf("Coulomb: %w", err)
	}
	if v == 0 {
		return as.space.Identity(), nil
	}
	ti, _ := as.space.Tau(i, 2)
	tj, _ := as.space.Tau(j, 2)
	id := as.space.Identity()
	one := []term{
		{coef: 1, opi: id, opj: id},
		{coef: 1, opi: ti, opj: id},
		{coef: 1, opi: id, opj: tj},
		{coef: 1, opi: ti, opj: tj},
	}

	return as.exponentiate("Coulomb", 0.125*v*as.params.Dt, one)
}

// LSLinear returns the first-order spin-orbit factor of particle i,
// (1 − i gls[2,i] σ_i^z)(1 − i gls[1,i] σ_i^y)(1 − i gls[0,i] σ_i^x),
// each axis factor multiplied on the left. The result stays factored.
func (as *Assembler) LSLinear(i int) (*spin.Operator, error) {
	if i < 0 || i >= as.space.Particles() {
		return nil, fmt.Errorf("LSLinear: particle %d: %w", i, spin.ErrIndexOutOfRange)
	}
	out := as.space.Identity()
	for a := 0; a < 3; a++ {
		g, err := as.c.LS(a, i)
		if err != nil {
			return nil, fmt.Errorf("LSLinear: %w", err)
		}
		if g == 0 {
			continue
		}
		sa, _ := as.space.Sigma(i, a)
		isa, err := sa.ScalarMult(i, complex(0, g))
		if err != nil {
			return nil, fmt.Errorf("LSLinear: %w", err)
		}
		f, err := as.space.Identity().Sub(isa)
		if err != nil {
			return nil, fmt.Errorf("LSLinear: %w", err)
		}
		if out, err = f.Mul(out); err != nil {
			return nil, fmt.Errorf("LSLinear: %w", err)
		}
	}

	return out, nil
}
