// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures and utilities for kernels.
//   - Keep all data finite and well-formed.

package matrix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/afdmc/matrix"
	"github.com/stretchr/testify/require"
)

// Tolerances shared by kernel tests.
const (
	rtol = 1e-12
	atol = 1e-12
)

// MustFrom builds a Dense from row slices or fails the test.
func MustFrom(t *testing.T, rows [][]complex128) *matrix.Dense {
	t.Helper()
	r, c := len(rows), len(rows[0])
	flat := make([]complex128, 0, r*c)
	for _, row := range rows {
		require.Len(t, row, c, "ragged fixture")
		flat = append(flat, row...)
	}
	m, err := matrix.NewDenseFrom(r, c, flat)
	require.NoError(t, err)

	return m
}

// MustIdentity returns I_n or fails the test.
func MustIdentity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	I, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return I
}

// RandomDense fills an r×c matrix with deterministic entries in [-1,1)+i[-1,1).
func RandomDense(t *testing.T, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	flat := make([]complex128, r*c)
	for k := range flat {
		flat[k] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
	}
	m, err := matrix.NewDenseFrom(r, c, flat)
	require.NoError(t, err)

	return m
}

// RequireClose asserts element-wise closeness with the package tolerances.
func RequireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// Pauli fixtures.
var (
	pauliX = [][]complex128{{0, 1}, {1, 0}}
	pauliY = [][]complex128{{0, -1i}, {1i, 0}}
	pauliZ = [][]complex128{{1, 0}, {0, -1}}
)
