// SPDX-License-Identifier: MIT

// Package couplings holds the coupling tensors of the nuclear interaction
// between A particles: spin-spin (asig), spin-isospin (asigtau), isospin
// (atau), Coulomb (vcoul) and the spin-orbit one-body couplings (gls).
//
// Tensors are stored flat in row-major order:
//
//	asig[a][i][b][j], asigtau[a][i][b][j]   3×A×3×A
//	atau[i][j], vcoul[i][j]                 A×A
//	gls[a][i]                               3×A
//
// Only finiteness and shape are enforced. Symmetry under (a,i)↔(b,j) and zero
// diagonals are conventions of the physical input; consumers read the (i<j)
// entries they need and never assume more.
//
// The generators (Uniform, Diagonal, Random, GlsFromBls) build deterministic
// inputs for tests and for the command-line driver.
package couplings
