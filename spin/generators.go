// SPDX-License-Identifier: MIT
// Package spin - single-particle building blocks and preset states.
//
// Single-particle index convention: 2*s + t with s the spin (0 up, 1 down)
// and t the isospin (0 proton, 1 neutron). Spin matrices act on the left
// tensor factor (σ^a = pauli_a ⊗ I2), isospin matrices on the right one
// (τ^a = I2 ⊗ pauli_a), so τ^z is +1 on protons.

package spin

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/katalvlaran/afdmc/matrix"
	"gonum.org/v1/gonum/stat/distuv"
)

// pauli holds the three 2×2 Pauli matrices in row-major order.
var pauli = [3][4]complex128{
	{0, 1, 1, 0},
	{0, -1i, 1i, 0},
	{1, 0, 0, -1},
}

var identity2 = [4]complex128{1, 0, 0, 1}

// kron2 returns the 4×4 Kronecker product of two row-major 2×2 matrices.
func kron2(a, b [4]complex128) *matrix.Dense {
	data := make([]complex128, 16)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					data[(2*i+k)*4+2*j+l] = a[2*i+j] * b[2*k+l]
				}
			}
		}
	}
	m, _ := matrix.NewDenseFrom(4, 4, data)

	return m
}

// checkAxis validates a Cartesian axis index.
func checkAxis(a int) error {
	if a < 0 || a > 2 {
		return fmt.Errorf("axis %d: %w", a, ErrIndexOutOfRange)
	}

	return nil
}

// IdentityBlock returns I4.
func IdentityBlock() *matrix.Dense {
	I, _ := matrix.NewIdentity(LocalDim)

	return I
}

// SigmaBlock returns the 4×4 spin Pauli matrix pauli_a ⊗ I2.
func SigmaBlock(a int) (*matrix.Dense, error) {
	if err := checkAxis(a); err != nil {
		return nil, err
	}

	return kron2(pauli[a], identity2), nil
}

// TauBlock returns the 4×4 isospin Pauli matrix I2 ⊗ pauli_a.
func TauBlock(a int) (*matrix.Dense, error) {
	if err := checkAxis(a); err != nil {
		return nil, err
	}

	return kron2(identity2, pauli[a]), nil
}

// SigmaTauBlock returns σ^a τ^c = pauli_a ⊗ pauli_c.
func SigmaTauBlock(a, c int) (*matrix.Dense, error) {
	if err := checkAxis(a); err != nil {
		return nil, err
	}
	if err := checkAxis(c); err != nil {
		return nil, err
	}

	return kron2(pauli[a], pauli[c]), nil
}

// spinors are the named single-particle presets.
var spinors = map[string][LocalDim]complex128{
	"up":    {1, 0, 0, 0},
	"down":  {0, 0, 0, 1},
	"p_up":  {1, 0, 0, 0},
	"n_up":  {0, 1, 0, 0},
	"p_dn":  {0, 0, 1, 0},
	"n_dn":  {0, 0, 0, 1},
	"max":   {0.5, 0.5, 0.5, 0.5},
	"zero":  {0, 0, 0, 0},
	"nucl":  {1 / math.Sqrt2, 0, 0, 1 / math.Sqrt2},
	"mixed": {0.5, 0.5i, -0.5, -0.5i},
}

// SpinorNames lists the preset names in sorted order.
func SpinorNames() []string {
	names := make([]string, 0, len(spinors))
	for name := range spinors {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Spinor returns a fresh copy of the named 4-component preset.
//
// "up" is the spin-up proton and "down" the spin-down neutron; "max" has equal
// weight on all four components. Errors: ErrIndexOutOfRange for an unknown name.
func Spinor(name string) ([]complex128, error) {
	v, ok := spinors[name]
	if !ok {
		return nil, fmt.Errorf("Spinor(%q): %w", name, ErrIndexOutOfRange)
	}
	out := make([]complex128, LocalDim)
	copy(out, v[:])

	return out, nil
}

// ProductState builds a one-body state from one preset name per particle.
// Errors: ErrShapeMismatch if len(names) != A; ErrIndexOutOfRange for unknown names.
func (s Space) ProductState(role Role, names ...string) (*State, error) {
	if len(names) != s.particles {
		return nil, spinErrorf("ProductState", ErrShapeMismatch)
	}
	parts := make([][]complex128, len(names))
	for k, name := range names {
		v, err := Spinor(name)
		if err != nil {
			return nil, spinErrorf("ProductState", err)
		}
		parts[k] = v
	}

	return s.NewOneBody(role, parts...)
}

// RandomState builds a one-body state with each spinor drawn from a complex
// standard normal and normalized to unit length.
func (s Space) RandomState(role Role, rng *rand.Rand) *State {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	parts := make([][]complex128, s.particles)
	for k := range parts {
		v := make([]complex128, LocalDim)
		var norm float64
		for c := range v {
			v[c] = complex(normal.Rand(), normal.Rand())
			norm += real(v[c])*real(v[c]) + imag(v[c])*imag(v[c])
		}
		scale := complex(1/math.Sqrt(norm), 0)
		for c := range v {
			v[c] *= scale
		}
		parts[k] = v
	}

	return &State{space: s, role: role, basis: OneBody, parts: parts}
}
