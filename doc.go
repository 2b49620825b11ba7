// Package afdmc evaluates matrix elements ⟨bra|G|ket⟩ of the short-time
// spin-isospin propagator of a few-nucleon system, exactly and by
// auxiliary-field sampling.
//
// 🚀 What is afdmc?
//
//	A pure-Go toolkit for the spin-isospin part of auxiliary-field diffusion
//	Monte Carlo:
//		• Operators & states: 4-component nucleon spinors, σ/τ generators,
//		  factored (⊗ of 4×4 blocks) and dense (4^A×4^A) operators
//		• Exact propagator: sigma, sigma-tau, tau and Coulomb channel
//		  exponentials per pair, linearized spin-orbit per particle
//		• Sampling: Hubbard–Stratonovich Gaussian and discrete RBM kernels
//		  with antithetic pairs, seeded per-sample draw streams
//		• Runs: parallel sample evaluation, mean ± standard error,
//		  structured logs and prometheus metrics
//
// ✨ Why factored operators?
//
//   - A product of one-body factors stays a product, so a sampled propagator
//     acts on a product state in O(A) 4×4 products instead of a 4^A matrix.
//   - Promote gives the exact dense form whenever a sum of products appears.
//
// Packages, leaf first:
//
//	matrix/     — complex128 dense kernel: Mul, Kron, Exp, axis products
//	spin/       — Space, State, Operator, Bracket, Outer
//	couplings/  — coupling tensors, validation and generators
//	propagator/ — exact channel exponentials and their product
//	auxfield/   — kernels, draw layout, Sampler, Run, Estimate, Metrics
//	parallel/   — bounded parallel map over independent tasks
//	config/     — YAML run configuration
//	cmd/afdmc/  — command line driver
//
// Quick example:
//
//	afdmc init afdmc.yaml
//	afdmc sample --config afdmc.yaml --method rbm --samples 10000
//
// prints the sampled bracket with its standard error next to the exact value.
//
//	go get github.com/katalvlaran/afdmc
package afdmc
