// SPDX-License-Identifier: MIT

package spin

// Role tells whether a State is a row (bra) or a column (ket).
type Role int

const (
	// Ket is a column state.
	Ket Role = iota
	// Bra is a row state holding its row coefficients directly.
	Bra
)

// String implements fmt.Stringer.
func (r Role) String() string {
	if r == Bra {
		return "bra"
	}

	return "ket"
}

// Basis tells how a State stores its coefficients.
type Basis int

const (
	// OneBody stores one 4-component spinor per particle (a product state).
	OneBody Basis = iota
	// ManyBody stores one vector of length 4^A.
	ManyBody
)

// String implements fmt.Stringer.
func (b Basis) String() string {
	if b == ManyBody {
		return "many-body"
	}

	return "one-body"
}

// Kind tells how an Operator stores its matrix elements.
type Kind int

const (
	// Factored is a tensor product of A single-particle 4×4 blocks.
	Factored Kind = iota
	// Dense is one 4^A×4^A matrix.
	Dense
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Dense {
		return "dense"
	}

	return "factored"
}
