// SPDX-License-Identifier: MIT

// Package auxfield estimates propagator brackets ⟨bra|G|ket⟩ by sampling
// auxiliary fields.
//
// Every two-body factor exp(−½·dt·a·O_i·O_j) is written as an average over an
// auxiliary variable of products of one-body operators:
//
//	Gaussian (Hubbard-Stratonovich), x ~ N(0,1):
//	  k = √(−½·dt·a),  G(x) = e^{½·dt·a} (cosh kx + sinh kx O_i)(cosh kx + sinh kx O_j)
//
//	Discrete (RBM), h ∈ {0,1} with equal weight:
//	  W = atanh √tanh(½·dt·|a|),  G(h) = e^{−½·dt·|a|}
//	         (cosh W(2h−1) + sinh W(2h−1) O_i)(cosh W(2h−1) − sgn(a) sinh W(2h−1) O_j)
//
// so one sample needs only single-particle operators and a one-body ket stays
// one-body all the way through. Each sample is evaluated on the draw and on
// its reflection (x → −x, h → 1−h) and the two brackets are averaged.
//
// What this package provides:
//
//   - Kernel, with the Gaussian and Discrete implementations.
//   - Layout, the fixed position of every draw in a sample's draw vector.
//   - DrawStream, the per-sample deterministic draw generator.
//   - Sampler.Bracket, the bracket for one draw vector.
//   - Summarize / Estimate, the sample mean and its standard error.
//   - Run, the parallel driver with optional slog logging and prometheus metrics.
//
// Core functions are pure: they neither log nor touch global state. Only Run
// reports progress, through the logger and metrics injected as options.
package auxfield
