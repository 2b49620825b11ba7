// SPDX-License-Identifier: MIT

// Package matrix provides the complex dense linear-algebra kernel used by the
// spin-isospin operator algebra.
//
// The matrix package provides:
//
//   - Dense, a row-major complex128 matrix with bounds-checked accessors.
//   - Canonical kernels: Add, Sub, Scale, Mul, Kron, Adjoint, MatVec, VecMat, Dotu.
//   - Exp, the matrix exponential, computed through the real 2n×2n embedding
//     of a complex matrix and gonum's Padé scaling-and-squaring routine.
//   - AllClose and ScaledIdentity comparisons used by the operator layer to
//     keep one-body factored operators factored whenever that is exact.
//
// Every kernel validates shapes through the validators in validators.go and
// returns sentinel errors from errors.go wrapped with an operation tag.
// Nothing in this package panics on user input and nothing logs.
//
// Multiplications delegate to gonum's cblas128 (pure Go BLAS), so results are
// deterministic for a fixed input.
package matrix
