// SPDX-License-Identifier: MIT

package auxfield

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

// Estimate is the sample mean of a set of brackets and its standard error.
type Estimate struct {
	Mean   complex128
	StdErr float64
	N      int
}

// Summarize computes the mean and the standard error
// sqrt(var(Re) + var(Im)) / sqrt(N) with unbiased variances.
// A single sample has no spread estimate and reports StdErr = 0; an empty
// slice returns the zero Estimate.
func Summarize(samples []complex128) Estimate {
	n := len(samples)
	if n == 0 {
		return Estimate{}
	}
	re := make([]float64, n)
	im := make([]float64, n)
	for k, v := range samples {
		re[k], im[k] = real(v), imag(v)
	}
	est := Estimate{Mean: complex(stat.Mean(re, nil), stat.Mean(im, nil)), N: n}
	if n > 1 {
		est.StdErr = math.Sqrt((stat.Variance(re, nil) + stat.Variance(im, nil)) / float64(n))
	}

	return est
}

// Within reports whether |Mean − exact| ≤ k·StdErr.
func (e Estimate) Within(exact complex128, k float64) bool {
	return cmplx.Abs(e.Mean-exact) <= k*e.StdErr
}

// Deviation returns |Mean − exact| in units of StdErr (+Inf when StdErr is 0
// and the mean differs).
func (e Estimate) Deviation(exact complex128) float64 {
	d := cmplx.Abs(e.Mean - exact)
	if d == 0 {
		return 0
	}

	return d / e.StdErr
}

// String renders "mean ± stderr (N=n)".
func (e Estimate) String() string {
	return fmt.Sprintf("%.8g ± %.3g (N=%d)", e.Mean, e.StdErr, e.N)
}
