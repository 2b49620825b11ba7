// SPDX-License-Identifier: MIT
// Package matrix provides the canonical linear-algebra kernels over *Dense:
// element-wise addition and subtraction, scaling, products (matrix, Kronecker,
// matrix-vector, vector-matrix) and the adjoint. All functions perform strict
// fail-fast validation and return fresh results; operands are never mutated.
//
// Notes:
//   - Products delegate to gonum cblas128 (Gemm/Gemv/Dotu).
//   - Element-wise kernels delegate to gonum cmplxs over the flat buffers.

package matrix

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/cmplxs"
)

// Operation name constants for unified error wrapping.
const (
	opAdd     = "Add"
	opSub     = "Sub"
	opScale   = "Scale"
	opMul     = "Mul"
	opKron    = "Kron"
	opAdjoint = "Adjoint"
	opMatVec  = "MatVec"
	opVecMat  = "VecMat"
	opDotu    = "Dotu"
	opExp     = "Exp"
	opAxisMul = "AxisMatVec"
	opAxisVec = "AxisVecMat"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// general views m as a cblas128 General without copying.
func (m *Dense) general() cblas128.General {
	return cblas128.General{Rows: m.r, Cols: m.c, Stride: m.c, Data: m.data}
}

// vector views x as a unit-stride cblas128 Vector without copying.
func vector(x []complex128) cblas128.Vector {
	return cblas128.Vector{N: len(x), Inc: 1, Data: x}
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1} into a fresh Dense.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (from ValidateSameShape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b *Dense, sign float64, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res := a.Clone()
	if sign > 0 {
		cmplxs.Add(res.data, b.data)
	} else {
		cmplxs.Sub(res.data, b.data)
	}

	return res, nil
}

// Add returns a + b element-wise.
// Complexity: O(r*c).
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b element-wise.
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*m.
// Complexity: O(r*c).
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if !isFinite(alpha) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	res := m.Clone()
	cmplxs.Scale(alpha, res.data)

	return res, nil
}

// Mul performs the matrix product C = A × B via cblas128.Gemm (no aliasing).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.general(), b.general(), 0, res.general())

	return res, nil
}

// Kron returns the Kronecker product a ⊗ b with shape (ra*rb)×(ca*cb).
// Entry ((i*rb+k), (j*cb+l)) equals a[i,j]*b[k,l], so the left operand owns
// the most significant index.
//
// Complexity:
//   - Time O(ra*ca*rb*cb), Space the same.
func Kron(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opKron, ErrNilMatrix)
	}
	rows, cols := a.r*b.r, a.c*b.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	var (
		i, j, k, l int
		av         complex128
		rowOff     int
	)
	for i = 0; i < a.r; i++ {
		for j = 0; j < a.c; j++ {
			av = a.data[i*a.c+j]
			if av == 0 {
				continue
			}
			for k = 0; k < b.r; k++ {
				rowOff = (i*b.r+k)*cols + j*b.c
				for l = 0; l < b.c; l++ {
					res.data[rowOff+l] = av * b.data[k*b.c+l]
				}
			}
		}
	}

	return res, nil
}

// Adjoint returns the conjugate transpose m†.
// Complexity: O(r*c).
func Adjoint(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return res, nil
}

// MatVec returns y = m·x for a column vector x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Cols()).
//
// Complexity: O(r*c).
func MatVec(m *Dense, x []complex128) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]complex128, m.r)
	cblas128.Gemv(blas.NoTrans, 1, m.general(), vector(x), 0, vector(y))

	return y, nil
}

// VecMat returns y = x·m for a row vector x (no conjugation of x).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Rows()).
//
// Complexity: O(r*c).
func VecMat(x []complex128, m *Dense) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.r); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	y := make([]complex128, m.c)
	cblas128.Gemv(blas.Trans, 1, m.general(), vector(x), 0, vector(y))

	return y, nil
}

// Dotu returns Σ x[k]*y[k] without conjugation, the contraction of a row
// vector with a column vector.
// Complexity: O(n).
func Dotu(x, y []complex128) (complex128, error) {
	if err := ValidateVecLen(y, len(x)); err != nil {
		return 0, matrixErrorf(opDotu, err)
	}

	return cblas128.Dotu(vector(x), vector(y)), nil
}

// AxisMatVec applies a d×d block to one tensor axis of a column vector.
// The vector is read as a row-major [left][d][right] tensor and the result is
// (I_left ⊗ block ⊗ I_right)·x, without forming the Kronecker product.
//
// Implementation:
//   - Stage 1: validate block square and len(x) == left*d*right.
//   - Stage 2: for every left slab, one Gemm of the d×d block with the d×right slab.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrInvalidDimensions, ErrDimensionMismatch.
//
// Complexity: O(left * d^2 * right).
func AxisMatVec(block *Dense, x []complex128, left, right int) ([]complex128, error) {
	return axisMul(block, x, left, right, blas.NoTrans, opAxisMul)
}

// AxisVecMat is the row-vector counterpart of AxisMatVec:
// it returns x·(I_left ⊗ block ⊗ I_right).
func AxisVecMat(x []complex128, block *Dense, left, right int) ([]complex128, error) {
	return axisMul(block, x, left, right, blas.Trans, opAxisVec)
}

// axisMul computes op(block)·slab for each left slab of x, op ∈ {N, T}.
func axisMul(block *Dense, x []complex128, left, right int, tr blas.Transpose, opTag string) ([]complex128, error) {
	if err := ValidateSquare(block); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if left <= 0 || right <= 0 {
		return nil, matrixErrorf(opTag, ErrInvalidDimensions)
	}
	d := block.r
	if err := ValidateVecLen(x, left*d*right); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := make([]complex128, len(x))
	span := d * right
	for l := 0; l < left; l++ {
		src := cblas128.General{Rows: d, Cols: right, Stride: right, Data: x[l*span : (l+1)*span]}
		dst := cblas128.General{Rows: d, Cols: right, Stride: right, Data: out[l*span : (l+1)*span]}
		cblas128.Gemm(tr, blas.NoTrans, 1, block.general(), src, 0, dst)
	}

	return out, nil
}
