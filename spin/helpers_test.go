// SPDX-License-Identifier: MIT
// Package spin_test contains shared helpers for the operator/state tests.

package spin_test

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/afdmc/matrix"
	"github.com/katalvlaran/afdmc/spin"
	"github.com/stretchr/testify/require"
)

const tol = 1e-11

// mustSpace returns the A-particle space or fails the test.
func mustSpace(t *testing.T, a int) spin.Space {
	t.Helper()
	s, err := spin.NewSpace(a)
	require.NoError(t, err)

	return s
}

// randomBlock returns a deterministic random 4×4 block.
func randomBlock(t *testing.T, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	data := make([]complex128, 16)
	for k := range data {
		data[k] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
	}
	m, err := matrix.NewDenseFrom(4, 4, data)
	require.NoError(t, err)

	return m
}

// randomFactored returns a factored operator with every block random.
func randomFactored(t *testing.T, s spin.Space, rng *rand.Rand) *spin.Operator {
	t.Helper()
	op := s.Identity()
	for i := 0; i < s.Particles(); i++ {
		one, err := s.OneBody(i, randomBlock(t, rng))
		require.NoError(t, err)
		op, err = op.Mul(one)
		require.NoError(t, err)
	}
	require.Equal(t, spin.Factored, op.Kind())

	return op
}

// requireOpClose compares the dense forms of two operators.
func requireOpClose(t *testing.T, want, got *spin.Operator) {
	t.Helper()
	ok, err := matrix.AllClose(got.Matrix(), want.Matrix(), tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "operators differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// requireStateClose compares the full amplitudes of two states.
func requireStateClose(t *testing.T, want, got *spin.State) {
	t.Helper()
	require.Equal(t, want.Role(), got.Role())
	w, g := want.Amplitudes(), got.Amplitudes()
	require.Len(t, g, len(w))
	for k := range w {
		require.InDeltaf(t, 0, cmplx.Abs(w[k]-g[k]), tol, "component %d: want %v got %v", k, w[k], g[k])
	}
}

// requireScalarClose compares two complex scalars.
func requireScalarClose(t *testing.T, want, got complex128) {
	t.Helper()
	require.InDeltaf(t, 0, cmplx.Abs(want-got), tol, "want %v got %v", want, got)
}
