// SPDX-License-Identifier: MIT

// Package propagator assembles the exact short-time propagator of an
// A-nucleon system from its coupling tensors and evaluates brackets
// ⟨bra|G|ket⟩ with it.
//
// For every pair i<j (lexicographic) four channel exponentials are composed,
// each new factor multiplied on the left:
//
//	sigma      exp(−½dt Σ_ab asig[a,i,b,j] σ_i^a σ_j^b)
//	sigma-tau  exp(−½dt Σ_abc asigtau[a,i,b,j] σ_i^a σ_j^b τ_i^c τ_j^c)
//	tau        exp(−½dt atau[i,j] Σ_c τ_i^c τ_j^c)
//	Coulomb    exp(−⅛ vcoul[i,j] dt (1 + τ_i^z + τ_j^z + τ_i^z τ_j^z))
//
// followed, per particle in increasing order, by the first-order spin-orbit
// factor Π_a (1 − i gls[a,i] σ_i^a).
//
// The channels of one pair generally do not commute, so the product is the
// factorized (split-operator) propagator, not exp of the summed exponent.
// This is the reference the auxiliary-field samplers converge to.
package propagator
