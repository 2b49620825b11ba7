// SPDX-License-Identifier: MIT

package propagator

import (
	"fmt"
	"math"
)

// Params carries the run constants shared by the exact assembler and the samplers.
type Params struct {
	// Dt is the imaginary-time step.
	Dt float64
}

// Validate checks that Dt is finite and positive.
func (p Params) Validate() error {
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) || p.Dt <= 0 {
		return fmt.Errorf("dt=%v: %w", p.Dt, ErrBadParams)
	}

	return nil
}
