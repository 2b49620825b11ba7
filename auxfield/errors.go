// SPDX-License-Identifier: MIT

package auxfield

import "errors"

var (
	// ErrNonFinite is returned when a kernel coefficient overflows
	// (|a|·dt too large for float64) or a bracket is not finite.
	ErrNonFinite = errors.New("auxfield: non-finite kernel value")

	// ErrDrawLength is returned when a draw vector does not match the layout.
	ErrDrawLength = errors.New("auxfield: wrong draw vector length")

	// ErrBadRun is returned for an invalid run description.
	ErrBadRun = errors.New("auxfield: invalid run")
)
