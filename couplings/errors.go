// SPDX-License-Identifier: MIT

package couplings

import "errors"

var (
	// ErrShape is returned on a wrong particle count, tensor length or index.
	ErrShape = errors.New("couplings: shape mismatch")

	// ErrIndexOutOfRange is returned for a particle index ≥ A or an axis
	// outside {0,1,2}. Index errors also match ErrShape.
	ErrIndexOutOfRange = errors.New("couplings: index out of range")

	// ErrNonFinite is returned when a coupling is NaN or infinite.
	ErrNonFinite = errors.New("couplings: non-finite value")
)
