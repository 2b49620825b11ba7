// SPDX-License-Identifier: MIT
// Package spin - sentinel errors.
//
// The operator/state layer has exactly two failure kinds. Matrix-level
// failures surfacing through this layer are wrapped into one of them so a
// caller needs only errors.Is(err, spin.ErrShapeMismatch) or
// errors.Is(err, spin.ErrIndexOutOfRange); the matrix sentinel stays in the
// chain for diagnostics.

package spin

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned on particle-count, dimension or bra/ket role misuse.
var ErrShapeMismatch = errors.New("spin: shape mismatch")

// ErrIndexOutOfRange is returned when a particle or Cartesian axis index is invalid.
var ErrIndexOutOfRange = errors.New("spin: index out of range")

// spinErrorf wraps a sentinel with an operation tag.
func spinErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// shapeErrorf wraps a matrix-level error as a shape mismatch.
func shapeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrShapeMismatch, err)
}
