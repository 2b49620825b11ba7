// SPDX-License-Identifier: MIT

package propagator

import "errors"

// ErrBadParams is returned when the time step is not a finite positive number.
var ErrBadParams = errors.New("propagator: invalid parameters")
