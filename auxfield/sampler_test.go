// SPDX-License-Identifier: MIT

package auxfield_test

import (
	"context"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/afdmc/auxfield"
	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/propagator"
	"github.com/katalvlaran/afdmc/spin"
	"github.com/stretchr/testify/require"
)

var kernels = []auxfield.Kernel{auxfield.Gaussian{}, auxfield.Discrete{}}

// testStates returns ⟨max,max| and |up,down⟩.
func testStates(t *testing.T) (*spin.State, *spin.State) {
	t.Helper()
	s, err := spin.NewSpace(2)
	require.NoError(t, err)
	bra, err := s.ProductState(spin.Bra, "max", "max")
	require.NoError(t, err)
	ket, err := s.ProductState(spin.Ket, "up", "down")
	require.NoError(t, err)

	return bra, ket
}

func requireScalarClose(t *testing.T, want, got complex128, tol float64) {
	t.Helper()
	require.InDeltaf(t, 0, cmplx.Abs(want-got), tol, "want %v got %v", want, got)
}

func TestLayout(t *testing.T) {
	require.Equal(t, 55, auxfield.AuxCount(2))
	require.Equal(t, 3, auxfield.AuxCount(1))
	require.Equal(t, 49*3+9, auxfield.AuxCount(3))

	// every slot is used exactly once
	l := auxfield.NewLayout(3)
	seen := make([]int, l.Len())
	for p := 0; p < 3; p++ {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				seen[l.Sigma(p, a, b)]++
				seen[l.LSTwoBody(p, a, b)]++
				for c := 0; c < 3; c++ {
					seen[l.SigmaTau(p, a, b, c)]++
				}
			}
			seen[l.Tau(p, a)]++
		}
		seen[l.Coulomb(p)]++
	}
	for i := 0; i < 3; i++ {
		for a := 0; a < 3; a++ {
			seen[l.LSOneBody(i, a)]++
		}
	}
	for k, n := range seen {
		require.Equalf(t, 1, n, "slot %d", k)
	}
}

func TestDrawStreamDeterministic(t *testing.T) {
	a := auxfield.DrawStream(auxfield.Gaussian{}, 17, 3, 55)
	b := auxfield.DrawStream(auxfield.Gaussian{}, 17, 3, 55)
	c := auxfield.DrawStream(auxfield.Gaussian{}, 17, 4, 55)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	h := auxfield.DrawStream(auxfield.Discrete{}, 17, 0, 1000)
	var ones int
	for _, v := range h {
		require.True(t, v == 0 || v == 1)
		if v == 1 {
			ones++
		}
	}
	require.InDelta(t, 500, ones, 100)
}

// TestZeroCouplingsDegenerate: with no interaction every sample is ⟨bra|ket⟩.
func TestZeroCouplingsDegenerate(t *testing.T) {
	bra, ket := testStates(t)
	c, err := couplings.New(2)
	require.NoError(t, err)
	overlap, err := bra.Dot(ket)
	require.NoError(t, err)

	for _, k := range kernels {
		res, err := auxfield.Run(context.Background(), auxfield.RunSpec{
			Sampler: auxfield.Sampler{Kernel: k, Params: propagator.Params{Dt: 0.01}},
			Bra:     bra, Ket: ket, Couplings: c, Samples: 20, Seed: 1,
		})
		require.NoError(t, err)
		for _, v := range res.Samples {
			requireScalarClose(t, overlap, v, 1e-14)
		}
		requireScalarClose(t, overlap, res.Estimate.Mean, 1e-14)
		require.InDelta(t, 0, res.Estimate.StdErr, 1e-12)
	}
}

// TestDiscreteSingleChannelExact: with one coupling the antithetic pair
// enumerates both values of h, so every sample equals the exact bracket.
func TestDiscreteSingleChannelExact(t *testing.T) {
	bra, ket := testStates(t)
	c, err := couplings.New(2)
	require.NoError(t, err)
	require.NoError(t, c.SetSig(0, 0, 2, 1, 1.3))
	p := propagator.Params{Dt: 0.2}
	exact, err := propagator.ExactBracket(bra, ket, c, p)
	require.NoError(t, err)

	sampler := auxfield.Sampler{Kernel: auxfield.Discrete{}, Params: p}
	for k := 0; k < 5; k++ {
		draws := auxfield.DrawStream(sampler.Kernel, 99, k, auxfield.AuxCount(2))
		v, err := sampler.Bracket(bra, ket, c, draws)
		require.NoError(t, err)
		requireScalarClose(t, exact, v, 1e-12)
	}
}

// TestBasisEquivalence: one-body and many-body states give the same sample.
func TestBasisEquivalence(t *testing.T) {
	c, err := couplings.Random(3, 5, 2)
	require.NoError(t, err)
	require.NoError(t, c.RandomLS(6, 0.2))
	s, err := spin.NewSpace(3)
	require.NoError(t, err)
	bra, err := s.ProductState(spin.Bra, "max", "mixed", "max")
	require.NoError(t, err)
	ket, err := s.ProductState(spin.Ket, "up", "down", "nucl")
	require.NoError(t, err)

	for _, k := range kernels {
		sampler := auxfield.Sampler{Kernel: k, Params: propagator.Params{Dt: 0.01}}
		draws := auxfield.DrawStream(k, 3, 0, auxfield.AuxCount(3))
		v1, err := sampler.Bracket(bra, ket, c, draws)
		require.NoError(t, err)
		v2, err := sampler.Bracket(bra.ToManyBody(), ket.ToManyBody(), c, draws)
		require.NoError(t, err)
		requireScalarClose(t, v1, v2, 1e-10)

		g, err := sampler.Operator(c, draws, false)
		require.NoError(t, err)
		require.Equal(t, spin.Factored, g.Kind())
	}
}

// TestReproducibleAndResumable: results depend on the seed only.
func TestReproducibleAndResumable(t *testing.T) {
	bra, ket := testStates(t)
	c, err := couplings.Uniform(2, 3.14)
	require.NoError(t, err)
	spec := auxfield.RunSpec{
		Sampler: auxfield.Sampler{Kernel: auxfield.Gaussian{}, Params: propagator.Params{Dt: 0.01}},
		Bra:     bra, Ket: ket, Couplings: c, Samples: 12, Seed: 2024,
	}
	r1, err := auxfield.Run(context.Background(), spec, auxfield.WithWorkers(1))
	require.NoError(t, err)
	r2, err := auxfield.Run(context.Background(), spec, auxfield.WithWorkers(8))
	require.NoError(t, err)
	require.Equal(t, r1.Samples, r2.Samples)
	require.Equal(t, r1.Estimate, r2.Estimate)

	tail := spec
	tail.Offset, tail.Samples = 5, 7
	r3, err := auxfield.Run(context.Background(), tail)
	require.NoError(t, err)
	require.Equal(t, r1.Samples[5:], r3.Samples)
}

// TestConvergesToExact: with same-axis couplings every channel's terms commute,
// both samplers are unbiased, and the mean lands within 3 standard errors.
func TestConvergesToExact(t *testing.T) {
	if testing.Short() {
		t.Skip("sampling run")
	}
	bra, ket := testStates(t)
	c, err := couplings.Diagonal(2, 1)
	require.NoError(t, err)
	p := propagator.Params{Dt: 0.01}
	exact, err := propagator.ExactBracket(bra, ket, c, p)
	require.NoError(t, err)

	for _, k := range kernels {
		t.Run(k.Name(), func(t *testing.T) {
			res, err := auxfield.Run(context.Background(), auxfield.RunSpec{
				Sampler: auxfield.Sampler{Kernel: k, Params: p},
				Bra:     bra, Ket: ket, Couplings: c, Samples: 1000, Seed: 17,
			})
			require.NoError(t, err)
			require.Equal(t, 1000, res.Estimate.N)
			require.Greater(t, res.Estimate.StdErr, 0.0)
			require.Truef(t, res.Estimate.Within(exact, 3), "exact %v, estimate %v, %.2fσ",
				exact, res.Estimate, res.Estimate.Deviation(exact))
		})
	}
}

// TestSpinOrbitSmallCoupling: for small gls the sampled spin-orbit treatment
// and the first-order exact factor agree to O(gls²).
func TestSpinOrbitSmallCoupling(t *testing.T) {
	bra, ket := testStates(t)
	c, err := couplings.New(2)
	require.NoError(t, err)
	require.NoError(t, c.SetLS(2, 0, 1e-3))
	require.NoError(t, c.SetLS(0, 1, -2e-3))
	p := propagator.Params{Dt: 0.01}
	exact, err := propagator.ExactBracket(bra, ket, c, p)
	require.NoError(t, err)

	sampler := auxfield.Sampler{Kernel: auxfield.Discrete{}, Params: p}
	draws := auxfield.DrawStream(sampler.Kernel, 1, 0, auxfield.AuxCount(2))
	v, err := sampler.Bracket(bra, ket, c, draws)
	require.NoError(t, err)
	requireScalarClose(t, exact, v, 1e-4)
}

func TestSamplerErrors(t *testing.T) {
	bra, ket := testStates(t)
	c, err := couplings.Diagonal(2, 1)
	require.NoError(t, err)
	p := propagator.Params{Dt: 0.01}
	sampler := auxfield.Sampler{Kernel: auxfield.Gaussian{}, Params: p}

	_, err = sampler.Bracket(bra, ket, c, make([]float64, 10))
	require.ErrorIs(t, err, auxfield.ErrDrawLength)

	_, err = auxfield.Sampler{Kernel: auxfield.Gaussian{}}.Bracket(bra, ket, c, make([]float64, 55))
	require.ErrorIs(t, err, propagator.ErrBadParams)

	_, err = sampler.Bracket(ket, ket, c, make([]float64, 55))
	require.ErrorIs(t, err, spin.ErrShapeMismatch)

	c3, err := couplings.New(3)
	require.NoError(t, err)
	_, err = sampler.Bracket(bra, ket, c3, make([]float64, auxfield.AuxCount(3)))
	require.ErrorIs(t, err, spin.ErrShapeMismatch)

	big, err := couplings.Diagonal(2, 1e5)
	require.NoError(t, err)
	_, err = auxfield.Sampler{Kernel: auxfield.Discrete{}, Params: propagator.Params{Dt: 1}}.
		Bracket(bra, ket, big, make([]float64, 55))
	require.ErrorIs(t, err, auxfield.ErrNonFinite)
}
