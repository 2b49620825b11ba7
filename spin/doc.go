// SPDX-License-Identifier: MIT

// Package spin implements the spin-isospin operator and state algebra of an
// A-nucleon system.
//
// What:
//
//   - Space fixes the particle count A (1…MaxParticles) and builds operators
//     and states: Identity, Sigma(i,a), Tau(i,a), SigmaTau(i,a,c), OneBody,
//     Zeros, ProductState, RandomState.
//   - Operator is a tagged variant: Factored (tensor product of A 4×4 blocks)
//     or Dense (4^A×4^A). Arithmetic keeps the factored form whenever that is
//     exact and promotes otherwise.
//   - State is a bra or ket stored either as A spinors (OneBody) or as one
//     vector of length 4^A (ManyBody).
//
// Why:
//
//   - Auxiliary-field propagators are products of one-body operators, so the
//     sampled path never leaves the factored representation, while exact
//     two-body propagators need the dense one. Both answer the same bracket.
//
// Conventions:
//
//   - Single-particle index 2*s + t (s spin, t isospin, 0 = up / proton).
//   - Many-body index: particle 0 is the most significant digit in base 4.
//   - Bra·ket is the unconjugated contraction of the stored row with the
//     stored column; Dagger conjugates.
//
// Errors: ErrShapeMismatch and ErrIndexOutOfRange only. Nothing panics on
// user input and nothing logs.
package spin
