// SPDX-License-Identifier: MIT

package couplings

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform sets every off-diagonal entry (i≠j) of asig, asigtau, atau and vcoul
// to v, for every axis combination. gls stays zero.
func Uniform(particles int, v float64) (*Couplings, error) {
	return fill(particles, v, func(a, b int) bool { return true })
}

// Diagonal sets asig[a,i,a,j] and asigtau[a,i,a,j] (same axis only), atau and
// vcoul to v for every i≠j. All channels then commute with each other, so the
// factorized exact propagator carries no ordering error.
func Diagonal(particles int, v float64) (*Couplings, error) {
	return fill(particles, v, func(a, b int) bool { return a == b })
}

// fill writes v into the off-diagonal entries selected by keep(a,b).
func fill(particles int, v float64, keep func(a, b int) bool) (*Couplings, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("fill: %w", ErrNonFinite)
	}
	c, err := New(particles)
	if err != nil {
		return nil, err
	}
	n := c.particles
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					if keep(a, b) {
						k, _ := c.idx4(a, i, b, j)
						c.asig[k] = v
						c.asigtau[k] = v
					}
				}
			}
			c.atau[i*n+j] = v
			c.vcoul[i*n+j] = v
		}
	}

	return c, nil
}

// Random draws symmetric couplings with zero diagonals from a normal
// distribution of standard deviation spread, seeded deterministically:
// asig[a,i,b,j] = asig[b,j,a,i], atau[i,j] = atau[j,i] and so on. vcoul is
// drawn as |x| since the Coulomb repulsion is positive. gls stays zero.
//
// Errors: ErrShape for a bad particle count, ErrNonFinite for a bad spread.
func Random(particles int, seed uint64, spread float64) (*Couplings, error) {
	if math.IsNaN(spread) || math.IsInf(spread, 0) || spread < 0 {
		return nil, fmt.Errorf("Random: spread %v: %w", spread, ErrNonFinite)
	}
	c, err := New(particles)
	if err != nil {
		return nil, err
	}
	normal := distuv.Normal{Mu: 0, Sigma: spread, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	if spread == 0 {
		return c, nil
	}
	n := c.particles
	for _, p := range Pairs(n) {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				x, y := normal.Rand(), normal.Rand()
				k1, _ := c.idx4(a, p.I, b, p.J)
				k2, _ := c.idx4(b, p.J, a, p.I)
				c.asig[k1], c.asig[k2] = x, x
				c.asigtau[k1], c.asigtau[k2] = y, y
			}
		}
		t, v := normal.Rand(), math.Abs(normal.Rand())
		c.atau[p.I*n+p.J], c.atau[p.J*n+p.I] = t, t
		c.vcoul[p.I*n+p.J], c.vcoul[p.J*n+p.I] = v, v
	}

	return c, nil
}

// RandomLS fills gls[a,i] with normal draws of standard deviation spread.
func (c *Couplings) RandomLS(seed uint64, spread float64) error {
	if math.IsNaN(spread) || math.IsInf(spread, 0) || spread < 0 {
		return fmt.Errorf("RandomLS: spread %v: %w", spread, ErrNonFinite)
	}
	if spread == 0 {
		clear(c.gls)

		return nil
	}
	normal := distuv.Normal{Mu: 0, Sigma: spread, Src: rand.NewPCG(seed, ^seed)}
	for k := range c.gls {
		c.gls[k] = normal.Rand()
	}

	return nil
}

// GlsFromBls reduces the two-body spin-orbit tensor bls[a][i][j] (3×A×A,
// row-major) to the one-body couplings gls[a,i] = Σ_{j≠i} bls[a,i,j] and
// stores them. For two particles this gives gls[a,i] = bls[a,i,1−i].
//
// Errors: ErrShape on a wrong length, ErrNonFinite on NaN/Inf input.
func (c *Couplings) GlsFromBls(bls []float64) error {
	n := c.particles
	if len(bls) != 3*n*n {
		return fmt.Errorf("GlsFromBls: length %d want %d: %w", len(bls), 3*n*n, ErrShape)
	}
	gls := make([]float64, 3*n)
	for a := 0; a < 3; a++ {
		for i := 0; i < n; i++ {
			var s float64
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				x := bls[(a*n+i)*n+j]
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return fmt.Errorf("GlsFromBls: bls[%d,%d,%d]: %w", a, i, j, ErrNonFinite)
				}
				s += x
			}
			gls[a*n+i] = s
		}
	}
	copy(c.gls, gls)

	return nil
}
