// SPDX-License-Identifier: MIT
// Package matrix - element-wise comparisons.
//
// Purpose:
//   - AllClose for tolerance-based equality in tests and structural checks.
//   - IsZero / ScaledIdentity for exact structural detection, used by the
//     operator layer to decide when a factored operator can stay factored.

package matrix

import (
	"math"
	"math/cmplx"
)

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds element-wise.
// Negative tolerances are normalized to their absolute values.
//
// Errors:
//   - ErrNaNInf for non-finite tolerances.
//   - ErrNilMatrix, ErrDimensionMismatch from ValidateSameShape.
//
// Complexity: O(r*c), early exit on the first violation.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for k := range a.data {
		if cmplx.Abs(a.data[k]-b.data[k]) > atol+rtol*cmplx.Abs(b.data[k]) {
			return false, nil
		}
	}

	return true, nil
}

// Equal reports exact element-wise equality of two same-shaped matrices.
// Shape mismatch or nil operands report false.
func Equal(a, b *Dense) bool {
	if a == nil || b == nil || a.r != b.r || a.c != b.c {
		return false
	}
	for k := range a.data {
		if a.data[k] != b.data[k] {
			return false
		}
	}

	return true
}

// IsZero reports whether every entry of m is exactly zero.
func IsZero(m *Dense) bool {
	if m == nil {
		return false
	}
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}

	return true
}

// ScaledIdentity reports whether m equals λ·I exactly and returns λ.
// Non-square or nil matrices report (0, false).
// Complexity: O(n^2).
func ScaledIdentity(m *Dense) (complex128, bool) {
	if m == nil || m.r != m.c {
		return 0, false
	}
	n := m.r
	lambda := m.data[0]
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.data[i*n+j]
			if i == j {
				if v != lambda {
					return 0, false
				}
			} else if v != 0 {
				return 0, false
			}
		}
	}

	return lambda, true
}
