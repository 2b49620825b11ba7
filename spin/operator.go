// SPDX-License-Identifier: MIT
// Package spin - spin-isospin operators.
//
// An Operator is a tagged variant:
//
//   - Factored: A single-particle 4×4 blocks, the operator being their
//     tensor product B_0 ⊗ B_1 ⊗ … ⊗ B_{A−1}. Cheap, closed under products,
//     and exact for every one-body operator and for the auxiliary-field
//     kernels.
//   - Dense: one 4^A×4^A matrix, needed for genuine two-body operators and
//     for exponentials of them.
//
// Promotion Factored → Dense is total and exact. Each operation picks the
// cheapest representation that is still exact:
//
//   - Factored·Factored stays Factored (blockwise product).
//   - Factored+Factored stays Factored when the operands differ in at most one
//     block; otherwise both operands are promoted. A Dense operand always
//     promotes the other one.
//   - Exponentiate stays Factored when every block but one is a multiple of
//     the identity; otherwise it promotes and takes the dense exponential.
//
// Operators are immutable from the outside: every method returns a fresh value.

package spin

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/afdmc/matrix"
)

// Operator is a linear map on the 4^A-dimensional spin-isospin space.
type Operator struct {
	space  Space
	kind   Kind
	blocks []*matrix.Dense // Factored
	dense  *matrix.Dense   // Dense
}

// Space returns the space the operator acts on.
func (op *Operator) Space() Space { return op.space }

// Kind returns Factored or Dense.
func (op *Operator) Kind() Kind { return op.kind }

// Particles returns A.
func (op *Operator) Particles() int { return op.space.particles }

// Block returns a copy of particle i's block of a factored operator.
// Errors: ErrIndexOutOfRange for a bad index, ErrShapeMismatch for a dense operator.
func (op *Operator) Block(i int) (*matrix.Dense, error) {
	if err := op.space.checkParticle(i); err != nil {
		return nil, spinErrorf("Operator.Block", err)
	}
	if op.kind != Factored {
		return nil, spinErrorf("Operator.Block", ErrShapeMismatch)
	}

	return op.blocks[i].Clone(), nil
}

// Matrix returns a copy of the full 4^A×4^A matrix.
func (op *Operator) Matrix() *matrix.Dense {
	return op.Promote().dense
}

// Promote returns the dense form. A dense operator is copied.
//
// Implementation:
//   - Stage 1: fold the blocks left to right with Kron (particle 0 most significant).
//
// Complexity: O(16^A).
func (op *Operator) Promote() *Operator {
	if op.kind == Dense {
		return &Operator{space: op.space, kind: Dense, dense: op.dense.Clone()}
	}
	acc := op.blocks[0].Clone()
	for _, b := range op.blocks[1:] {
		// shapes are fixed by construction
		acc, _ = matrix.Kron(acc, b)
	}

	return &Operator{space: op.space, kind: Dense, dense: acc}
}

// Copy returns a deep copy.
func (op *Operator) Copy() *Operator {
	if op.kind == Dense {
		return op.Promote()
	}
	blocks := make([]*matrix.Dense, len(op.blocks))
	for k, b := range op.blocks {
		blocks[k] = b.Clone()
	}

	return &Operator{space: op.space, kind: Factored, blocks: blocks}
}

// Dagger returns the Hermitian adjoint (blockwise for a factored operator).
func (op *Operator) Dagger() *Operator {
	if op.kind == Dense {
		d, _ := matrix.Adjoint(op.dense)

		return &Operator{space: op.space, kind: Dense, dense: d}
	}
	blocks := make([]*matrix.Dense, len(op.blocks))
	for k, b := range op.blocks {
		blocks[k], _ = matrix.Adjoint(b)
	}

	return &Operator{space: op.space, kind: Factored, blocks: blocks}
}

// compatible checks that other acts on the same space.
func (op *Operator) compatible(tag string, other *Operator) error {
	if other == nil || other.space != op.space {
		return spinErrorf(tag, ErrShapeMismatch)
	}

	return nil
}

// Add returns op + other.
// Errors: ErrShapeMismatch on different particle counts.
func (op *Operator) Add(other *Operator) (*Operator, error) {
	return op.addSub(other, matrix.Add, "Operator.Add")
}

// Sub returns op − other.
// Errors: ErrShapeMismatch on different particle counts.
func (op *Operator) Sub(other *Operator) (*Operator, error) {
	return op.addSub(other, matrix.Sub, "Operator.Sub")
}

// addSub implements Add and Sub with the kernel f.
func (op *Operator) addSub(other *Operator, f func(a, b *matrix.Dense) (*matrix.Dense, error), tag string) (*Operator, error) {
	if err := op.compatible(tag, other); err != nil {
		return nil, err
	}
	if op.kind == Factored && other.kind == Factored {
		if k, ok := op.singleDifference(other); ok {
			out := op.Copy()
			sum, err := f(op.blocks[k], other.blocks[k])
			if err != nil {
				return nil, shapeErrorf(tag, err)
			}
			out.blocks[k] = sum

			return out, nil
		}
	}
	res, err := f(op.Matrix(), other.Matrix())
	if err != nil {
		return nil, shapeErrorf(tag, err)
	}

	return &Operator{space: op.space, kind: Dense, dense: res}, nil
}

// singleDifference returns the index of the only block where two factored
// operators differ, 0 when they are identical, and false when two or more
// blocks differ.
func (op *Operator) singleDifference(other *Operator) (int, bool) {
	idx, count := 0, 0
	for k := range op.blocks {
		if !matrix.Equal(op.blocks[k], other.blocks[k]) {
			idx = k
			count++
			if count > 1 {
				return 0, false
			}
		}
	}

	return idx, true
}

// Scale returns c·op. A factored operator scales its only non-scalar block
// when it has exactly one, so c·σ_i^a still differs from the identity in
// block i alone; otherwise block 0 is scaled.
func (op *Operator) Scale(c complex128) *Operator {
	j := 0
	if op.kind == Factored {
		if k, _, ok := op.foldScalars(); ok {
			j = k
		}
	}
	out, _ := op.ScalarMult(j, c)

	return out
}

// ScalarMult multiplies block i of a factored operator by f. On a dense
// operator the whole matrix is scaled, which is the same linear map.
// Errors: ErrIndexOutOfRange for a bad particle index.
func (op *Operator) ScalarMult(i int, f complex128) (*Operator, error) {
	if err := op.space.checkParticle(i); err != nil {
		return nil, spinErrorf("Operator.ScalarMult", err)
	}
	if op.kind == Dense {
		d, err := matrix.Scale(op.dense, f)
		if err != nil {
			return nil, shapeErrorf("Operator.ScalarMult", err)
		}

		return &Operator{space: op.space, kind: Dense, dense: d}, nil
	}
	out := op.Copy()
	b, err := matrix.Scale(out.blocks[i], f)
	if err != nil {
		return nil, shapeErrorf("Operator.ScalarMult", err)
	}
	out.blocks[i] = b

	return out, nil
}

// SpreadScalarMult multiplies every block by the principal root f^(1/A), so
// the operator as a whole is scaled by f while the block magnitudes stay
// balanced. On a dense operator the whole matrix is scaled by f.
// Errors: ErrShapeMismatch when the scaled entries are not finite.
func (op *Operator) SpreadScalarMult(f complex128) (*Operator, error) {
	if op.kind == Dense {
		return op.ScalarMult(0, f)
	}
	root := cmplx.Pow(f, complex(1/float64(len(op.blocks)), 0))
	out := op.Copy()
	for k, b := range out.blocks {
		s, err := matrix.Scale(b, root)
		if err != nil {
			return nil, shapeErrorf("Operator.SpreadScalarMult", err)
		}
		out.blocks[k] = s
	}

	return out, nil
}

// Mul returns the composition op·other (other acts first).
// Errors: ErrShapeMismatch on different particle counts.
//
// Complexity: O(A·64) for two factored operands, O(64^A) otherwise.
func (op *Operator) Mul(other *Operator) (*Operator, error) {
	if err := op.compatible("Operator.Mul", other); err != nil {
		return nil, err
	}
	if op.kind == Factored && other.kind == Factored {
		blocks := make([]*matrix.Dense, len(op.blocks))
		for k := range blocks {
			b, err := matrix.Mul(op.blocks[k], other.blocks[k])
			if err != nil {
				return nil, shapeErrorf("Operator.Mul", err)
			}
			blocks[k] = b
		}

		return &Operator{space: op.space, kind: Factored, blocks: blocks}, nil
	}
	res, err := matrix.Mul(op.Matrix(), other.Matrix())
	if err != nil {
		return nil, shapeErrorf("Operator.Mul", err)
	}

	return &Operator{space: op.space, kind: Dense, dense: res}, nil
}

// Exponentiate returns exp(op).
//
// Implementation:
//   - Dense: matrix exponential.
//   - Factored with every block but (at most) one equal to λ_k·I: the scalars
//     are folded into the remaining block j and exp acts on that block alone,
//     exp(c·I⊗…⊗B_j⊗…⊗I) = I⊗…⊗exp(c·B_j)⊗…⊗I. The result stays factored.
//   - Any other factored operator is promoted first.
//
// Errors: ErrShapeMismatch wrapping matrix.ErrNaNInf when the exponential overflows.
func (op *Operator) Exponentiate() (*Operator, error) {
	if op.kind == Factored {
		if j, c, ok := op.foldScalars(); ok {
			arg, err := matrix.Scale(op.blocks[j], c)
			if err != nil {
				return nil, shapeErrorf("Operator.Exponentiate", err)
			}
			e, err := matrix.Exp(arg)
			if err != nil {
				return nil, shapeErrorf("Operator.Exponentiate", err)
			}
			out := op.space.Identity()
			out.blocks[j] = e

			return out, nil
		}
	}
	e, err := matrix.Exp(op.Matrix())
	if err != nil {
		return nil, shapeErrorf("Operator.Exponentiate", err)
	}

	return &Operator{space: op.space, kind: Dense, dense: e}, nil
}

// foldScalars finds the only block j that is not a multiple of the identity
// (0 if all are) and the product c of the other blocks' scalars.
func (op *Operator) foldScalars() (int, complex128, bool) {
	j := -1
	c := complex128(1)
	for k, b := range op.blocks {
		lambda, ok := matrix.ScaledIdentity(b)
		if ok {
			c *= lambda
			continue
		}
		if j >= 0 {
			return 0, 0, false
		}
		j = k
	}
	if j < 0 {
		// every block is scalar; keep block 0 and fold the rest into it
		lambda, _ := matrix.ScaledIdentity(op.blocks[0])
		if lambda == 0 {
			return 0, 0, true
		}
		c /= lambda
		j = 0
	}

	return j, c, true
}

// Apply returns op·ket.
//
// A factored operator keeps a one-body ket one-body and acts on a many-body
// ket axis by axis (identity blocks are skipped). A dense operator expands a
// one-body ket first.
// Errors: ErrShapeMismatch if ket is not a ket or the particle counts differ.
func (op *Operator) Apply(ket *State) (*State, error) {
	if ket == nil || ket.role != Ket || ket.space != op.space {
		return nil, spinErrorf("Operator.Apply", ErrShapeMismatch)
	}
	if op.kind == Factored {
		return op.applyFactored(ket)
	}
	v, err := matrix.MatVec(op.dense, ket.Amplitudes())
	if err != nil {
		return nil, shapeErrorf("Operator.Apply", err)
	}

	return &State{space: op.space, role: Ket, basis: ManyBody, vec: v}, nil
}

// applyFactored applies a factored operator to a ket from the left or to a
// bra from the right, keeping the state's basis.
func (op *Operator) applyFactored(st *State) (*State, error) {
	tag := "Operator.Apply"
	if st.role == Bra {
		tag = "State.MulOperator"
	}
	out := &State{space: st.space, role: st.role, basis: st.basis}
	if st.basis == OneBody {
		out.parts = make([][]complex128, len(st.parts))
		for k, v := range st.parts {
			var (
				w   []complex128
				err error
			)
			if st.role == Ket {
				w, err = matrix.MatVec(op.blocks[k], v)
			} else {
				w, err = matrix.VecMat(v, op.blocks[k])
			}
			if err != nil {
				return nil, shapeErrorf(tag, err)
			}
			out.parts[k] = w
		}

		return out, nil
	}
	n := st.space.particles
	vec := append([]complex128(nil), st.vec...)
	for k, b := range op.blocks {
		if isOne(b) {
			continue
		}
		left, right := pow4(k), pow4(n-1-k)
		var err error
		if st.role == Ket {
			vec, err = matrix.AxisMatVec(b, vec, left, right)
		} else {
			vec, err = matrix.AxisVecMat(vec, b, left, right)
		}
		if err != nil {
			return nil, shapeErrorf(tag, err)
		}
	}
	out.vec = vec

	return out, nil
}

// isOne reports whether a scalar-identity block is exactly I.
func isOne(b *matrix.Dense) bool {
	lambda, ok := matrix.ScaledIdentity(b)

	return ok && lambda == 1
}

// String renders the operator for debugging.
func (op *Operator) String() string {
	if op.kind == Dense {
		return fmt.Sprintf("dense operator A=%d\n%v", op.space.particles, op.dense)
	}
	s := fmt.Sprintf("factored operator A=%d\n", op.space.particles)
	for k, b := range op.blocks {
		s += fmt.Sprintf("particle %d:\n%v", k, b)
	}

	return s
}
