// SPDX-License-Identifier: MIT

package auxfield

// Per-pair slot counts: 9 sigma, 27 sigma-tau, 3 tau, 1 Coulomb.
const (
	sigmaSlots    = 9
	sigmaTauSlots = 27
	tauSlots      = 3
	coulombSlots  = 1
	pairSlots     = sigmaSlots + sigmaTauSlots + tauSlots + coulombSlots
	lsPairSlots   = 9
)

// Layout fixes where every auxiliary draw of one sample lives.
//
// For A particles and P = A(A−1)/2 pairs in lexicographic order:
//
//	[p·40, p·40+40)            pair p: sigma (3a+b), sigma-tau 9 + (9a+3b+c),
//	                           tau 36 + c, Coulomb 39
//	[40P, 40P+3A)              one-body spin-orbit, 3i + a (reserved)
//	[40P+3A, 40P+3A+9P)        two-body spin-orbit of pair p, 9p + 3a + b
//
// The one-body spin-orbit factors are deterministic; their slots are kept so
// the positions of the two-body spin-orbit draws do not depend on how the
// one-body part is treated.
type Layout struct {
	particles int
	pairs     int
}

// NewLayout returns the layout for A particles.
func NewLayout(particles int) Layout {
	return Layout{particles: particles, pairs: particles * (particles - 1) / 2}
}

// Len returns the number of draws per sample, 49·P + 3·A.
func (l Layout) Len() int {
	return (pairSlots+lsPairSlots)*l.pairs + 3*l.particles
}

// Sigma returns the slot of sigma kernel (a,b) of pair p.
func (l Layout) Sigma(p, a, b int) int { return pairSlots*p + 3*a + b }

// SigmaTau returns the slot of sigma-tau kernel (a,b,c) of pair p.
func (l Layout) SigmaTau(p, a, b, c int) int {
	return pairSlots*p + sigmaSlots + 9*a + 3*b + c
}

// Tau returns the slot of tau kernel c of pair p.
func (l Layout) Tau(p, c int) int { return pairSlots*p + sigmaSlots + sigmaTauSlots + c }

// Coulomb returns the slot of the Coulomb kernel of pair p.
func (l Layout) Coulomb(p int) int { return pairSlots*p + pairSlots - 1 }

// LSOneBody returns the reserved slot of particle i, axis a.
func (l Layout) LSOneBody(i, a int) int { return pairSlots*l.pairs + 3*i + a }

// LSTwoBody returns the slot of the spin-orbit kernel (a,b) of pair p.
func (l Layout) LSTwoBody(p, a, b int) int {
	return pairSlots*l.pairs + 3*l.particles + lsPairSlots*p + 3*a + b
}

// AuxCount returns the number of draws per sample for A particles.
func AuxCount(particles int) int { return NewLayout(particles).Len() }
