// SPDX-License-Identifier: MIT
// Package spin - spin-isospin states.
//
// A State is either a product of A single-particle spinors (OneBody) or a
// full vector of length 4^A (ManyBody). Bras store their row coefficients
// directly; Dagger conjugates and flips the role. Every method returns fresh
// storage and leaves its receiver untouched, so states may be shared across
// goroutines as long as nobody writes to them.

package spin

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/katalvlaran/afdmc/matrix"
)

// State is a bra or ket in one of the two bases.
type State struct {
	space Space
	role  Role
	basis Basis
	parts [][]complex128 // OneBody: A spinors of length 4
	vec   []complex128   // ManyBody: length 4^A
}

// NewOneBody builds a product state from one 4-component spinor per particle.
// The spinors are copied.
// Errors: ErrShapeMismatch on a wrong count or spinor length.
func (s Space) NewOneBody(role Role, spinors ...[]complex128) (*State, error) {
	if len(spinors) != s.particles {
		return nil, fmt.Errorf("NewOneBody: %d spinors for %d particles: %w", len(spinors), s.particles, ErrShapeMismatch)
	}
	parts := make([][]complex128, len(spinors))
	for k, v := range spinors {
		if len(v) != LocalDim {
			return nil, fmt.Errorf("NewOneBody: spinor %d has length %d: %w", k, len(v), ErrShapeMismatch)
		}
		parts[k] = append([]complex128(nil), v...)
	}

	return &State{space: s, role: role, basis: OneBody, parts: parts}, nil
}

// NewManyBody builds a state from a full coefficient vector of length 4^A.
// The vector is copied.
// Errors: ErrShapeMismatch on a wrong length.
func (s Space) NewManyBody(role Role, vec []complex128) (*State, error) {
	if len(vec) != s.Dim() {
		return nil, fmt.Errorf("NewManyBody: length %d want %d: %w", len(vec), s.Dim(), ErrShapeMismatch)
	}

	return &State{space: s, role: role, basis: ManyBody, vec: append([]complex128(nil), vec...)}, nil
}

// Space returns the space the state lives in.
func (st *State) Space() Space { return st.space }

// Role returns Bra or Ket.
func (st *State) Role() Role { return st.role }

// Basis returns OneBody or ManyBody.
func (st *State) Basis() Basis { return st.basis }

// Particles returns A.
func (st *State) Particles() int { return st.space.particles }

// Spinor returns a copy of particle i's spinor of a one-body state.
// Errors: ErrIndexOutOfRange for a bad index, ErrShapeMismatch for a many-body state.
func (st *State) Spinor(i int) ([]complex128, error) {
	if err := st.space.checkParticle(i); err != nil {
		return nil, spinErrorf("State.Spinor", err)
	}
	if st.basis != OneBody {
		return nil, spinErrorf("State.Spinor", ErrShapeMismatch)
	}

	return append([]complex128(nil), st.parts[i]...), nil
}

// Amplitudes returns a copy of the full 4^A coefficient vector, expanding a
// one-body state through the Kronecker product (particle 0 most significant).
func (st *State) Amplitudes() []complex128 {
	if st.basis == ManyBody {
		return append([]complex128(nil), st.vec...)
	}

	return kronVectors(st.parts)
}

// Copy returns a deep copy.
func (st *State) Copy() *State {
	out := &State{space: st.space, role: st.role, basis: st.basis}
	if st.basis == ManyBody {
		out.vec = append([]complex128(nil), st.vec...)

		return out
	}
	out.parts = make([][]complex128, len(st.parts))
	for k, v := range st.parts {
		out.parts[k] = append([]complex128(nil), v...)
	}

	return out
}

// Dagger returns the Hermitian conjugate: coefficients conjugated, role flipped.
func (st *State) Dagger() *State {
	out := st.Copy()
	if out.role == Bra {
		out.role = Ket
	} else {
		out.role = Bra
	}
	conj := func(v []complex128) {
		for k := range v {
			v[k] = cmplx.Conj(v[k])
		}
	}
	if out.basis == ManyBody {
		conj(out.vec)
	} else {
		for _, v := range out.parts {
			conj(v)
		}
	}

	return out
}

// ToManyBody returns the state in the many-body basis. A many-body state is
// copied unchanged.
func (st *State) ToManyBody() *State {
	return &State{space: st.space, role: st.role, basis: ManyBody, vec: st.Amplitudes()}
}

// Scale returns c times the state. A one-body state scales its first spinor.
func (st *State) Scale(c complex128) *State {
	out := st.Copy()
	target := out.vec
	if out.basis == OneBody {
		target = out.parts[0]
	}
	for k := range target {
		target[k] *= c
	}

	return out
}

// Add returns st + other. One-body operands are expanded.
// Errors: ErrShapeMismatch on different particle counts or roles.
func (st *State) Add(other *State) (*State, error) {
	if other == nil || other.space != st.space || other.role != st.role {
		return nil, spinErrorf("State.Add", ErrShapeMismatch)
	}
	a, b := st.Amplitudes(), other.Amplitudes()
	for k := range a {
		a[k] += b[k]
	}

	return &State{space: st.space, role: st.role, basis: ManyBody, vec: a}, nil
}

// Dot returns the scalar ⟨st|ket⟩. st must be a bra and ket a ket.
// One-body operands contract particle by particle; otherwise both sides are
// expanded and contracted without conjugation (the bra already holds its row).
// Errors: ErrShapeMismatch on role misuse or different particle counts.
func (st *State) Dot(ket *State) (complex128, error) {
	if ket == nil || st.role != Bra || ket.role != Ket || st.space != ket.space {
		return 0, spinErrorf("State.Dot", ErrShapeMismatch)
	}
	if st.basis == OneBody && ket.basis == OneBody {
		prod := complex128(1)
		for k := range st.parts {
			d, err := matrix.Dotu(st.parts[k], ket.parts[k])
			if err != nil {
				return 0, shapeErrorf("State.Dot", err)
			}
			prod *= d
		}

		return prod, nil
	}
	d, err := matrix.Dotu(st.Amplitudes(), ket.Amplitudes())
	if err != nil {
		return 0, shapeErrorf("State.Dot", err)
	}

	return d, nil
}

// MulOperator returns the bra st·op.
// A factored operator keeps a one-body bra one-body; a dense operator expands it.
// Errors: ErrShapeMismatch if st is not a bra or the particle counts differ.
func (st *State) MulOperator(op *Operator) (*State, error) {
	if op == nil || st.role != Bra || st.space != op.space {
		return nil, spinErrorf("State.MulOperator", ErrShapeMismatch)
	}
	if op.kind == Factored {
		return op.applyFactored(st)
	}
	v, err := matrix.VecMat(st.Amplitudes(), op.dense)
	if err != nil {
		return nil, shapeErrorf("State.MulOperator", err)
	}

	return &State{space: st.space, role: Bra, basis: ManyBody, vec: v}, nil
}

// String renders the state for debugging.
func (st *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s A=%d\n", st.basis, st.role, st.space.particles)
	if st.basis == ManyBody {
		fmt.Fprintf(&b, "%v\n", st.vec)

		return b.String()
	}
	for k, v := range st.parts {
		fmt.Fprintf(&b, "  %d: %v\n", k, v)
	}

	return b.String()
}

// kronVectors expands spinors into their Kronecker product, first factor most significant.
func kronVectors(parts [][]complex128) []complex128 {
	out := []complex128{1}
	for _, v := range parts {
		next := make([]complex128, len(out)*len(v))
		for i, x := range out {
			for s, y := range v {
				next[i*len(v)+s] = x * y
			}
		}
		out = next
	}

	return out
}
