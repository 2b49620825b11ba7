// SPDX-License-Identifier: MIT

package spin

import (
	"github.com/katalvlaran/afdmc/matrix"
)

// Bracket returns the matrix element ⟨bra|op|ket⟩.
// Errors: ErrShapeMismatch on role misuse or different particle counts.
func Bracket(bra *State, op *Operator, ket *State) (complex128, error) {
	if bra == nil || op == nil {
		return 0, spinErrorf("Bracket", ErrShapeMismatch)
	}
	k, err := op.Apply(ket)
	if err != nil {
		return 0, spinErrorf("Bracket", err)
	}

	return bra.Dot(k)
}

// Outer returns the operator |ket⟩⟨bra|. Two one-body states give a factored
// operator (the outer product of tensor products factorizes); any other
// combination gives a dense one.
// Errors: ErrShapeMismatch on role misuse or different particle counts.
func Outer(ket, bra *State) (*Operator, error) {
	if ket == nil || bra == nil || ket.role != Ket || bra.role != Bra || ket.space != bra.space {
		return nil, spinErrorf("Outer", ErrShapeMismatch)
	}
	if ket.basis == OneBody && bra.basis == OneBody {
		blocks := make([]*matrix.Dense, len(ket.parts))
		for k := range blocks {
			b, err := outer(ket.parts[k], bra.parts[k])
			if err != nil {
				return nil, shapeErrorf("Outer", err)
			}
			blocks[k] = b
		}

		return &Operator{space: ket.space, kind: Factored, blocks: blocks}, nil
	}
	d, err := outer(ket.Amplitudes(), bra.Amplitudes())
	if err != nil {
		return nil, shapeErrorf("Outer", err)
	}

	return &Operator{space: ket.space, kind: Dense, dense: d}, nil
}

// outer forms the column-times-row matrix u·vᵀ.
func outer(u, v []complex128) (*matrix.Dense, error) {
	col, err := matrix.NewDenseFrom(len(u), 1, u)
	if err != nil {
		return nil, err
	}
	row, err := matrix.NewDenseFrom(1, len(v), v)
	if err != nil {
		return nil, err
	}

	return matrix.Mul(col, row)
}
