// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Exp returns the matrix exponential e^m of a square complex matrix.
//
// Implementation:
//   - Stage 1: validate square and finite.
//   - Stage 2: build the real embedding E = [[Re, −Im], [Im, Re]] (2n×2n).
//     The map M ↦ E is an injective algebra homomorphism, so exp(E) is the
//     embedding of exp(M).
//   - Stage 3: mat.Dense.Exp (Padé approximant with scaling and squaring).
//   - Stage 4: read Re from the top-left block and Im from the bottom-left block.
//
// Behavior highlights:
//   - The zero matrix maps to the exact identity without touching gonum.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (input or result).
//
// Complexity:
//   - Time O(n^3 · log‖m‖), Space O(n^2).
func Exp(m *Dense) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opExp, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opExp, err)
	}
	n := m.r
	if IsZero(m) {
		I, err := NewIdentity(n)
		if err != nil {
			return nil, matrixErrorf(opExp, err)
		}
		return I, nil
	}

	// Stage 2: real embedding.
	n2 := 2 * n
	emb := mat.NewDense(n2, n2, nil)
	var (
		i, j   int
		re, im float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			re, im = real(m.data[i*n+j]), imag(m.data[i*n+j])
			emb.Set(i, j, re)
			emb.Set(i, j+n, -im)
			emb.Set(i+n, j, im)
			emb.Set(i+n, j+n, re)
		}
	}

	// Stage 3: exponential of the embedding.
	var out mat.Dense
	out.Exp(emb)

	// Stage 4: project back.
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opExp, err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			res.data[i*n+j] = complex(out.At(i, j), out.At(i+n, j))
		}
	}
	if err = ValidateFinite(res); err != nil {
		return nil, matrixErrorf(opExp, fmt.Errorf("result overflow: %w", err))
	}

	return res, nil
}
