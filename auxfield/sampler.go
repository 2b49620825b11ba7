// SPDX-License-Identifier: MIT

package auxfield

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/matrix"
	"github.com/katalvlaran/afdmc/propagator"
	"github.com/katalvlaran/afdmc/spin"
)

// Sampler evaluates one auxiliary-field sample of the propagator.
// It is a plain value and safe for concurrent use.
type Sampler struct {
	Kernel Kernel
	Params propagator.Params
}

// blocks caches the single-particle operators one sample needs.
type blocks struct {
	identity *matrix.Dense
	sigma    [3]*matrix.Dense
	tau      [3]*matrix.Dense
	sigmaTau [3][3]*matrix.Dense
}

func newBlocks() blocks {
	var b blocks
	b.identity = spin.IdentityBlock()
	for a := 0; a < 3; a++ {
		b.sigma[a], _ = spin.SigmaBlock(a)
		b.tau[a], _ = spin.TauBlock(a)
		for c := 0; c < 3; c++ {
			b.sigmaTau[a][c], _ = spin.SigmaTauBlock(a, c)
		}
	}

	return b
}

// validate checks the sampler, the couplings and the draw vector.
func (s Sampler) validate(c *couplings.Couplings, draws []float64) (spin.Space, error) {
	if s.Kernel == nil {
		return spin.Space{}, fmt.Errorf("nil kernel: %w", ErrBadRun)
	}
	if err := s.Params.Validate(); err != nil {
		return spin.Space{}, err
	}
	if c == nil {
		return spin.Space{}, fmt.Errorf("nil couplings: %w", couplings.ErrShape)
	}
	if err := c.Validate(); err != nil {
		return spin.Space{}, err
	}
	space, err := spin.NewSpace(c.Particles())
	if err != nil {
		return spin.Space{}, err
	}
	if want := AuxCount(c.Particles()); len(draws) != want {
		return spin.Space{}, fmt.Errorf("%d draws want %d: %w", len(draws), want, ErrDrawLength)
	}

	return space, nil
}

// Operator returns the factored one-body product G(x) for one draw vector,
// or G(reflected x) when reflect is set. The factors are applied in this
// order, each multiplied on the left:
//
//  1. per pair (i<j): 9 sigma, 27 sigma-tau and 3 tau kernels, the Coulomb
//     one-body factor exp(−⅛·v·dt·(1 + τ_i^z + τ_j^z)) and the Coulomb kernel
//     with coupling ¼·v on τ_i^z, τ_j^z;
//  2. per particle and axis: exp(−i·gls[a,i]·σ_i^a);
//  3. per pair and axis pair: the kernel with dt = 1 and coupling
//     −gls[a,i]·gls[b,j] on σ_i^a, σ_j^b;
//  4. the constant exp(½·Σ gls²).
//
// Errors: ErrDrawLength, ErrNonFinite, propagator.ErrBadParams and the
// couplings validation errors.
func (s Sampler) Operator(c *couplings.Couplings, draws []float64, reflect bool) (*spin.Operator, error) {
	space, err := s.validate(c, draws)
	if err != nil {
		return nil, fmt.Errorf("Sampler.Operator: %w", err)
	}
	w := &walk{
		space:   space,
		kernel:  s.Kernel,
		draws:   draws,
		reflect: reflect,
		blocks:  newBlocks(),
		g:       space.Identity(),
	}
	if err = w.run(c, s.Params.Dt); err != nil {
		return nil, fmt.Errorf("Sampler.Operator: %w", err)
	}

	return w.g, nil
}

// Bracket returns the antithetic sample ½(⟨bra|G(x)|ket⟩ + ⟨bra|G(x̄)|ket⟩)
// for one draw vector x and its reflection x̄.
//
// Errors: as Operator, plus spin.ErrShapeMismatch when bra or ket do not
// match the couplings' particle count or roles.
func (s Sampler) Bracket(bra, ket *spin.State, c *couplings.Couplings, draws []float64) (complex128, error) {
	if bra == nil || ket == nil || bra.Role() != spin.Bra || ket.Role() != spin.Ket {
		return 0, fmt.Errorf("Sampler.Bracket: %w", spin.ErrShapeMismatch)
	}
	if c != nil && (bra.Particles() != c.Particles() || ket.Particles() != c.Particles()) {
		return 0, fmt.Errorf("Sampler.Bracket: states with %d/%d particles, couplings with %d: %w",
			bra.Particles(), ket.Particles(), c.Particles(), spin.ErrShapeMismatch)
	}
	var sum complex128
	for _, reflect := range []bool{false, true} {
		g, err := s.Operator(c, draws, reflect)
		if err != nil {
			return 0, fmt.Errorf("Sampler.Bracket: %w", err)
		}
		v, err := spin.Bracket(bra, g, ket)
		if err != nil {
			return 0, fmt.Errorf("Sampler.Bracket: %w", err)
		}
		sum += v
	}
	out := 0.5 * sum
	if cmplx.IsNaN(out) || cmplx.IsInf(out) {
		return 0, fmt.Errorf("Sampler.Bracket: %v: %w", out, ErrNonFinite)
	}

	return out, nil
}

// walk accumulates the product of one-body factors of a single sample.
type walk struct {
	space   spin.Space
	kernel  Kernel
	draws   []float64
	reflect bool
	blocks  blocks
	g       *spin.Operator
}

// draw returns slot k, reflected if requested.
func (w *walk) draw(k int) float64 {
	if w.reflect {
		return w.kernel.Reflect(w.draws[k])
	}

	return w.draws[k]
}

// left multiplies g on the left by op.
func (w *walk) left(op *spin.Operator) error {
	g, err := op.Mul(w.g)
	if err != nil {
		return err
	}
	w.g = g

	return nil
}

// kernelStep applies the two-body kernel for coupling a on oi (particle i)
// and oj (particle j) with the draw in slot k.
func (w *walk) kernelStep(dt, a float64, k int, i int, oi *matrix.Dense, j int, oj *matrix.Dense) error {
	f, err := w.kernel.Factors(dt, a, w.draw(k))
	if err != nil {
		return err
	}
	if f.Identity() {
		return nil
	}
	op, err := w.twoBody(f, i, oi, j, oj)
	if err != nil {
		return err
	}

	return w.left(op)
}

// twoBody builds Norm·(Ci + Si·oi)_i (Cj + Sj·oj)_j as a factored operator.
func (w *walk) twoBody(f Factors, i int, oi *matrix.Dense, j int, oj *matrix.Dense) (*spin.Operator, error) {
	bi, err := w.linear(f.Ci, f.Si, oi)
	if err != nil {
		return nil, err
	}
	bj, err := w.linear(f.Cj, f.Sj, oj)
	if err != nil {
		return nil, err
	}

	return w.pairOperator(f.Norm, i, bi, j, bj)
}

// linear returns c·I + s·o.
func (w *walk) linear(c, s complex128, o *matrix.Dense) (*matrix.Dense, error) {
	ci, err := matrix.Scale(w.blocks.identity, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}
	so, err := matrix.Scale(o, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}

	return matrix.Add(ci, so)
}

// pairOperator returns norm·(bi on particle i)(bj on particle j).
func (w *walk) pairOperator(norm complex128, i int, bi *matrix.Dense, j int, bj *matrix.Dense) (*spin.Operator, error) {
	opi, err := w.space.OneBody(i, bi)
	if err != nil {
		return nil, err
	}
	opj, err := w.space.OneBody(j, bj)
	if err != nil {
		return nil, err
	}
	op, err := opi.Mul(opj)
	if err != nil {
		return nil, err
	}

	return op.ScalarMult(i, norm)
}

// expBlock returns exp(f·o) for a single-particle block.
func expBlock(o *matrix.Dense, f complex128) (*matrix.Dense, error) {
	arg, err := matrix.Scale(o, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}
	e, err := matrix.Exp(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}

	return e, nil
}

// run applies every factor of the sample in layout order.
func (w *walk) run(c *couplings.Couplings, dt float64) error {
	layout := NewLayout(c.Particles())
	b := w.blocks
	pairs := c.Pairs()
	for p, pr := range pairs {
		i, j := pr.I, pr.J
		for a := 0; a < 3; a++ {
			for bb := 0; bb < 3; bb++ {
				v, err := c.Sig(a, i, bb, j)
				if err == nil {
					err = w.kernelStep(dt, v, layout.Sigma(p, a, bb), i, b.sigma[a], j, b.sigma[bb])
				}
				if err != nil {
					return fmt.Errorf("sigma pair (%d,%d): %w", i, j, err)
				}
			}
		}
		for a := 0; a < 3; a++ {
			for bb := 0; bb < 3; bb++ {
				for cc := 0; cc < 3; cc++ {
					v, err := c.SigTau(a, i, bb, j)
					if err == nil {
						err = w.kernelStep(dt, v, layout.SigmaTau(p, a, bb, cc),
							i, b.sigmaTau[a][cc], j, b.sigmaTau[bb][cc])
					}
					if err != nil {
						return fmt.Errorf("sigma-tau pair (%d,%d): %w", i, j, err)
					}
				}
			}
		}
		vt, err := c.Tau(i, j)
		if err != nil {
			return fmt.Errorf("tau pair (%d,%d): %w", i, j, err)
		}
		for cc := 0; cc < 3; cc++ {
			if err := w.kernelStep(dt, vt, layout.Tau(p, cc), i, b.tau[cc], j, b.tau[cc]); err != nil {
				return fmt.Errorf("tau pair (%d,%d): %w", i, j, err)
			}
		}
		v, err := c.Coul(i, j)
		if err != nil {
			return fmt.Errorf("coulomb pair (%d,%d): %w", i, j, err)
		}
		if v != 0 {
			e, err := expBlock(b.tau[2], complex(-0.125*v*dt, 0))
			if err != nil {
				return fmt.Errorf("coulomb pair (%d,%d): %w", i, j, err)
			}
			op, err := w.pairOperator(complex(math.Exp(-0.125*v*dt), 0), i, e, j, e)
			if err != nil {
				return fmt.Errorf("coulomb pair (%d,%d): %w", i, j, err)
			}
			if err = w.left(op); err != nil {
				return err
			}
			if err = w.kernelStep(dt, 0.25*v, layout.Coulomb(p), i, b.tau[2], j, b.tau[2]); err != nil {
				return fmt.Errorf("coulomb pair (%d,%d): %w", i, j, err)
			}
		}
	}

	if !c.HasLS() {
		return nil
	}
	for i := 0; i < c.Particles(); i++ {
		for a := 0; a < 3; a++ {
			g, err := c.LS(a, i)
			if err != nil {
				return fmt.Errorf("spin-orbit particle %d: %w", i, err)
			}
			if g == 0 {
				continue
			}
			e, err := expBlock(b.sigma[a], complex(0, -g))
			if err != nil {
				return fmt.Errorf("spin-orbit particle %d: %w", i, err)
			}
			op, err := w.space.OneBody(i, e)
			if err != nil {
				return err
			}
			if err = w.left(op); err != nil {
				return err
			}
		}
	}
	for p, pr := range pairs {
		i, j := pr.I, pr.J
		for a := 0; a < 3; a++ {
			for bb := 0; bb < 3; bb++ {
				gi, err := c.LS(a, i)
				if err != nil {
					return fmt.Errorf("spin-orbit pair (%d,%d): %w", i, j, err)
				}
				gj, err := c.LS(bb, j)
				if err != nil {
					return fmt.Errorf("spin-orbit pair (%d,%d): %w", i, j, err)
				}
				if err := w.kernelStep(1, -gi*gj, layout.LSTwoBody(p, a, bb), i, b.sigma[a], j, b.sigma[bb]); err != nil {
					return fmt.Errorf("spin-orbit pair (%d,%d): %w", i, j, err)
				}
			}
		}
	}
	g, err := w.g.ScalarMult(0, complex(math.Exp(0.5*c.LSSquareSum()), 0))
	if err != nil {
		return err
	}
	w.g = g

	return nil
}
