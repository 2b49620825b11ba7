// SPDX-License-Identifier: MIT

package auxfield_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/afdmc/auxfield"
	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/propagator"
	"github.com/katalvlaran/afdmc/spin"
)

// ExampleRun samples a single σ^z σ^z coupling with the discrete kernel.
// For one coupling the antithetic pair h, 1−h averages to the exact
// exponential, so every sample already equals ⟨up,down|G|up,down⟩ = e^{0.05}.
func ExampleRun() {
	s, _ := spin.NewSpace(2)
	bra, _ := s.ProductState(spin.Bra, "up", "down")
	ket, _ := s.ProductState(spin.Ket, "up", "down")
	c, _ := couplings.New(2)
	_ = c.SetSig(2, 0, 2, 1, 1)
	p := propagator.Params{Dt: 0.1}

	res, err := auxfield.Run(context.Background(), auxfield.RunSpec{
		Sampler:   auxfield.Sampler{Kernel: auxfield.Discrete{}, Params: p},
		Bra:       bra,
		Ket:       ket,
		Couplings: c,
		Samples:   16,
		Seed:      1,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	exact, _ := propagator.ExactBracket(bra, ket, c, p)
	fmt.Printf("sampled %.6f\n", real(res.Estimate.Mean))
	fmt.Printf("exact   %.6f\n", real(exact))
	// Output:
	// sampled 1.051271
	// exact   1.051271
}

// ExampleLayout shows where the draws of a two-nucleon system live.
func ExampleLayout() {
	l := auxfield.NewLayout(2)
	fmt.Println(l.Len(), l.Sigma(0, 2, 2), l.Coulomb(0), l.LSOneBody(1, 0), l.LSTwoBody(0, 2, 2))
	// Output:
	// 55 8 39 43 54
}
