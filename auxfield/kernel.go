// SPDX-License-Identifier: MIT

package auxfield

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Factors are the coefficients of one two-body kernel sample,
// G = Norm·(Ci + Si·O_i)(Cj + Sj·O_j).
type Factors struct {
	Norm   complex128
	Ci, Si complex128
	Cj, Sj complex128
}

// Identity reports whether the factors describe the identity operator.
func (f Factors) Identity() bool {
	return f.Norm == 1 && f.Ci == 1 && f.Cj == 1 && f.Si == 0 && f.Sj == 0
}

func (f Factors) finite() bool {
	for _, v := range []complex128{f.Norm, f.Ci, f.Si, f.Cj, f.Sj} {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}

	return true
}

// identityFactors is the a = 0 kernel for any draw.
var identityFactors = Factors{Norm: 1, Ci: 1, Cj: 1}

// Kernel turns one auxiliary draw into the one-body factors of a two-body
// propagator exp(−½·dt·a·O_i·O_j). Averaged over the kernel's distribution,
// and over the draw and its reflection, the factors reproduce that
// exponential exactly.
type Kernel interface {
	// Name is a short identifier used in logs and metrics.
	Name() string
	// Factors returns the coefficients for step dt, coupling a and draw x.
	Factors(dt, a, x float64) (Factors, error)
	// Reflect maps a draw to its antithetic partner.
	Reflect(x float64) float64
	// Distribution returns the draw distribution on the given source.
	Distribution(src rand.Source) distuv.Rander
}

// Gaussian is the Hubbard-Stratonovich kernel with standard normal draws.
type Gaussian struct{}

// Name implements Kernel.
func (Gaussian) Name() string { return "gauss" }

// Factors implements Kernel. A positive coupling makes k imaginary and the
// hyperbolic functions oscillate; this is the normal regime, not an error.
func (Gaussian) Factors(dt, a, x float64) (Factors, error) {
	if a == 0 {
		return identityFactors, nil
	}
	k := cmplx.Sqrt(complex(-0.5*dt*a, 0))
	kx := k * complex(x, 0)
	c, s := cmplx.Cosh(kx), cmplx.Sinh(kx)
	f := Factors{Norm: complex(math.Exp(0.5*dt*a), 0), Ci: c, Si: s, Cj: c, Sj: s}
	if !f.finite() {
		return Factors{}, fmt.Errorf("gauss dt=%v a=%v x=%v: %w", dt, a, x, ErrNonFinite)
	}

	return f, nil
}

// Reflect implements Kernel: x → −x.
func (Gaussian) Reflect(x float64) float64 { return -x }

// Distribution implements Kernel: N(0, 1).
func (Gaussian) Distribution(src rand.Source) distuv.Rander {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: src}
}

// Discrete is the restricted-Boltzmann-machine kernel with fair binary draws.
type Discrete struct{}

// Name implements Kernel.
func (Discrete) Name() string { return "rbm" }

// Factors implements Kernel. h is read as 0 or 1.
//
// Errors: ErrNonFinite when W = atanh √tanh(½·dt·|a|) is not finite, which
// happens once tanh rounds to 1 for very large |a|·dt.
func (Discrete) Factors(dt, a, h float64) (Factors, error) {
	if a == 0 {
		return identityFactors, nil
	}
	half := 0.5 * dt * math.Abs(a)
	w := math.Atanh(math.Sqrt(math.Tanh(half)))
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return Factors{}, fmt.Errorf("rbm dt=%v a=%v: W=%v: %w", dt, a, w, ErrNonFinite)
	}
	arg := w * (2*h - 1)
	c, s := complex(math.Cosh(arg), 0), complex(math.Sinh(arg), 0)
	sign := 1.0
	if a < 0 {
		sign = -1
	}
	f := Factors{Norm: complex(math.Exp(-half), 0), Ci: c, Si: s, Cj: c, Sj: complex(-sign, 0) * s}
	if !f.finite() {
		return Factors{}, fmt.Errorf("rbm dt=%v a=%v h=%v: %w", dt, a, h, ErrNonFinite)
	}

	return f, nil
}

// Reflect implements Kernel: h → 1 − h.
func (Discrete) Reflect(h float64) float64 { return 1 - h }

// Distribution implements Kernel: Bernoulli(½) on {0, 1}.
func (Discrete) Distribution(src rand.Source) distuv.Rander {
	return distuv.Bernoulli{P: 0.5, Src: src}
}

// KernelByName returns the kernel registered under name ("gauss" or "rbm").
func KernelByName(name string) (Kernel, error) {
	switch name {
	case Gaussian{}.Name(), "gaussian", "hs":
		return Gaussian{}, nil
	case Discrete{}.Name(), "discrete":
		return Discrete{}, nil
	default:
		return nil, fmt.Errorf("kernel %q: %w", name, ErrBadRun)
	}
}
