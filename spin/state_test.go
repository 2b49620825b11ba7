// SPDX-License-Identifier: MIT

package spin_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/afdmc/spin"
	"github.com/stretchr/testify/require"
)

// TestManyBodyOrdering pins particle 0 as the most significant index.
func TestManyBodyOrdering(t *testing.T) {
	s := mustSpace(t, 2)
	ket, err := s.ProductState(spin.Ket, "up", "down")
	require.NoError(t, err)
	amp := ket.ToManyBody().Amplitudes()
	require.Len(t, amp, 16)
	for k, v := range amp {
		if k == 3 {
			require.Equal(t, complex128(1), v)
		} else {
			require.Equal(t, complex128(0), v)
		}
	}
}

// TestDotBasisIndependent compares one-body, mixed and many-body contractions.
func TestDotBasisIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 2))
	for _, a := range []int{1, 2, 4} {
		s := mustSpace(t, a)
		bra, ket := s.RandomState(spin.Bra, rng), s.RandomState(spin.Ket, rng)
		d1, err := bra.Dot(ket)
		require.NoError(t, err)
		d2, err := bra.ToManyBody().Dot(ket)
		require.NoError(t, err)
		d3, err := bra.ToManyBody().Dot(ket.ToManyBody())
		require.NoError(t, err)
		requireScalarClose(t, d1, d2)
		requireScalarClose(t, d1, d3)
	}
}

// TestMaxUpDownOverlap checks ⟨max,max|up,down⟩ = 1/4.
func TestMaxUpDownOverlap(t *testing.T) {
	s := mustSpace(t, 2)
	bra, err := s.ProductState(spin.Bra, "max", "max")
	require.NoError(t, err)
	ket, err := s.ProductState(spin.Ket, "up", "down")
	require.NoError(t, err)
	v, err := bra.Dot(ket)
	require.NoError(t, err)
	requireScalarClose(t, 0.25, v)
}

func TestDaggerAndCopy(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	s := mustSpace(t, 3)
	ket := s.RandomState(spin.Ket, rng)

	bra := ket.Dagger()
	require.Equal(t, spin.Bra, bra.Role())
	requireStateClose(t, ket, bra.Dagger())

	// ⟨ψ|ψ⟩ of a normalized product state is 1.
	norm, err := bra.Dot(ket)
	require.NoError(t, err)
	requireScalarClose(t, 1, norm)

	c := ket.Copy()
	scaled := c.Scale(3)
	requireStateClose(t, ket, c)
	requireStateClose(t, ket.ToManyBody().Scale(3), scaled)

	sum, err := ket.Add(ket)
	require.NoError(t, err)
	requireStateClose(t, scaled.Scale(2.0/3.0), sum)

	sp, err := ket.Spinor(1)
	require.NoError(t, err)
	sp[0] = 99
	again, err := ket.Spinor(1)
	require.NoError(t, err)
	require.NotEqual(t, complex128(99), again[0])
}

// TestOuterFactorizes checks ⟨a|(|b⟩⟨c|)|d⟩ = ⟨a|b⟩⟨c|d⟩ in both bases.
func TestOuterFactorizes(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := mustSpace(t, 2)
	a, c := s.RandomState(spin.Bra, rng), s.RandomState(spin.Bra, rng)
	b, d := s.RandomState(spin.Ket, rng), s.RandomState(spin.Ket, rng)

	ab, err := a.Dot(b)
	require.NoError(t, err)
	cd, err := c.Dot(d)
	require.NoError(t, err)

	op, err := spin.Outer(b, c)
	require.NoError(t, err)
	require.Equal(t, spin.Factored, op.Kind())
	got, err := spin.Bracket(a, op, d)
	require.NoError(t, err)
	requireScalarClose(t, ab*cd, got)

	op, err = spin.Outer(b.ToManyBody(), c)
	require.NoError(t, err)
	require.Equal(t, spin.Dense, op.Kind())
	got, err = spin.Bracket(a, op, d)
	require.NoError(t, err)
	requireScalarClose(t, ab*cd, got)

	_, err = spin.Outer(c, b)
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
}

func TestStateErrors(t *testing.T) {
	s2, s3 := mustSpace(t, 2), mustSpace(t, 3)

	_, err := s2.NewOneBody(spin.Ket, []complex128{1, 0, 0, 0})
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = s2.NewOneBody(spin.Ket, []complex128{1, 0, 0, 0}, []complex128{1, 0})
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = s2.NewManyBody(spin.Ket, make([]complex128, 15))
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = s2.ProductState(spin.Ket, "up", "sideways")
	require.ErrorIs(t, err, spin.ErrIndexOutOfRange)
	_, err = spin.Spinor("sideways")
	require.ErrorIs(t, err, spin.ErrIndexOutOfRange)

	ket2, err := s2.ProductState(spin.Ket, "up", "up")
	require.NoError(t, err)
	ket3, err := s3.ProductState(spin.Ket, "up", "up", "up")
	require.NoError(t, err)

	_, err = ket2.Dot(ket2)
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = ket2.Dagger().Dot(ket3)
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = ket2.Add(ket3)
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
	_, err = ket2.Spinor(2)
	require.ErrorIs(t, err, spin.ErrIndexOutOfRange)
	_, err = ket2.ToManyBody().Spinor(0)
	require.ErrorIs(t, err, spin.ErrShapeMismatch)
}

func TestSpinorNamesSorted(t *testing.T) {
	names := spin.SpinorNames()
	require.Contains(t, names, "up")
	require.Contains(t, names, "max")
	require.IsIncreasing(t, names)
}

// ExampleBracket evaluates ⟨up,down|σ_0^z σ_1^z|up,down⟩.
func ExampleBracket() {
	s, _ := spin.NewSpace(2)
	ket, _ := s.ProductState(spin.Ket, "up", "down")
	sz0, _ := s.Sigma(0, 2)
	sz1, _ := s.Sigma(1, 2)
	zz, _ := sz0.Mul(sz1)

	v, _ := spin.Bracket(ket.Dagger(), zz, ket)
	fmt.Printf("%.1f %s\n", real(v), zz.Kind())
	// Output: -1.0 factored
}
