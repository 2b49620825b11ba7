// SPDX-License-Identifier: MIT

package couplings_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/afdmc/couplings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueOf returns an unwrapper for getters that must succeed.
func valueOf(t *testing.T) func(float64, error) float64 {
	return func(v float64, err error) float64 {
		t.Helper()
		require.NoError(t, err)

		return v
	}
}

func TestPairsLexicographic(t *testing.T) {
	require.Nil(t, couplings.Pairs(1))
	require.Equal(t, []couplings.Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, couplings.Pairs(4))

	c, err := couplings.New(3)
	require.NoError(t, err)
	require.Len(t, c.Pairs(), 3)
}

func TestNewBounds(t *testing.T) {
	_, err := couplings.New(0)
	require.ErrorIs(t, err, couplings.ErrShape)
	_, err = couplings.New(couplings.MaxParticles + 1)
	require.ErrorIs(t, err, couplings.ErrShape)
}

func TestSettersAndAccessors(t *testing.T) {
	get := valueOf(t)
	c, err := couplings.New(2)
	require.NoError(t, err)

	require.NoError(t, c.SetSig(2, 0, 1, 1, 1.5))
	require.NoError(t, c.SetSigTau(0, 1, 2, 0, -2))
	require.NoError(t, c.SetTau(0, 1, 3))
	require.NoError(t, c.SetCoul(1, 0, 4))
	require.NoError(t, c.SetLS(1, 1, 0.25))

	assert.Equal(t, 1.5, get(c.Sig(2, 0, 1, 1)))
	assert.Equal(t, 0.0, get(c.Sig(1, 0, 2, 1)), "no implicit symmetrization")
	assert.Equal(t, -2.0, get(c.SigTau(0, 1, 2, 0)))
	assert.Equal(t, 3.0, get(c.Tau(0, 1)))
	assert.Equal(t, 0.0, get(c.Tau(1, 0)))
	assert.Equal(t, 4.0, get(c.Coul(1, 0)))
	assert.Equal(t, 0.25, get(c.LS(1, 1)))
	assert.True(t, c.HasLS())
	assert.InDelta(t, 0.0625, c.LSSquareSum(), 1e-15)

	require.ErrorIs(t, c.SetSig(0, 2, 0, 0, 1), couplings.ErrShape)
	require.ErrorIs(t, c.SetTau(0, 0, math.NaN()), couplings.ErrNonFinite)
	require.ErrorIs(t, c.SetLS(3, 0, 1), couplings.ErrShape)
	require.ErrorIs(t, c.SetCoul(0, 1, math.Inf(-1)), couplings.ErrNonFinite)

	cl := c.Clone()
	require.NoError(t, cl.SetTau(0, 1, 9))
	assert.Equal(t, 3.0, get(c.Tau(0, 1)))
}

func TestFromTensors(t *testing.T) {
	get := valueOf(t)
	n := 2
	asig := make([]float64, 9*n*n)
	asig[0*n*3*n+0*3*n+0*n+1] = 2 // asig[0,0,0,1]
	c, err := couplings.FromTensors(n, asig, make([]float64, 9*n*n), make([]float64, n*n), make([]float64, n*n), nil)
	require.NoError(t, err)
	require.Equal(t, 2.0, get(c.Sig(0, 0, 0, 1)))
	require.False(t, c.HasLS())

	_, err = couplings.FromTensors(n, asig[:3], make([]float64, 9*n*n), make([]float64, n*n), make([]float64, n*n), nil)
	require.ErrorIs(t, err, couplings.ErrShape)

	bad := make([]float64, n*n)
	bad[1] = math.NaN()
	_, err = couplings.FromTensors(n, asig, make([]float64, 9*n*n), bad, make([]float64, n*n), nil)
	require.ErrorIs(t, err, couplings.ErrNonFinite)
}

func TestUniformAndDiagonal(t *testing.T) {
	get := valueOf(t)
	u, err := couplings.Uniform(3, 3.14)
	require.NoError(t, err)
	d, err := couplings.Diagonal(3, 1)
	require.NoError(t, err)
	for _, p := range u.Pairs() {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				assert.Equal(t, 3.14, get(u.Sig(a, p.I, b, p.J)))
				assert.Equal(t, 3.14, get(u.SigTau(a, p.J, b, p.I)))
				want := 0.0
				if a == b {
					want = 1
				}
				assert.Equal(t, want, get(d.Sig(a, p.I, b, p.J)))
			}
		}
		assert.Equal(t, 1.0, get(d.Tau(p.I, p.J)))
		assert.Equal(t, 1.0, get(d.Coul(p.J, p.I)))
	}
	assert.Equal(t, 0.0, get(u.Sig(0, 1, 0, 1)), "diagonal stays zero")
	require.NoError(t, u.Validate())

	_, err = couplings.Uniform(2, math.NaN())
	require.ErrorIs(t, err, couplings.ErrNonFinite)
}

func TestRandomSymmetricAndReproducible(t *testing.T) {
	get := valueOf(t)
	c1, err := couplings.Random(3, 1312, 10)
	require.NoError(t, err)
	c2, err := couplings.Random(3, 1312, 10)
	require.NoError(t, err)
	c3, err := couplings.Random(3, 1313, 10)
	require.NoError(t, err)

	require.Equal(t, c1, c2)
	require.NotEqual(t, c1, c3)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, get(c1.Tau(i, j)), get(c1.Tau(j, i)))
			assert.GreaterOrEqual(t, get(c1.Coul(i, j)), 0.0)
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					assert.Equal(t, get(c1.Sig(a, i, b, j)), get(c1.Sig(b, j, a, i)))
					assert.Equal(t, get(c1.SigTau(a, i, b, j)), get(c1.SigTau(b, j, a, i)))
					if i == j {
						assert.Equal(t, 0.0, get(c1.Sig(a, i, b, j)))
					}
				}
			}
		}
	}

	_, err = couplings.Random(2, 1, -1)
	require.ErrorIs(t, err, couplings.ErrNonFinite)

	require.NoError(t, c1.RandomLS(7, 0.1))
	require.True(t, c1.HasLS())
	require.NoError(t, c1.RandomLS(7, 0))
	require.False(t, c1.HasLS())
}

func TestGlsFromBls(t *testing.T) {
	get := valueOf(t)
	c, err := couplings.New(2)
	require.NoError(t, err)
	n := 2
	bls := make([]float64, 3*n*n)
	for a := 0; a < 3; a++ {
		bls[(a*n+0)*n+1] = float64(a + 1)
		bls[(a*n+1)*n+0] = float64(a + 1)
		bls[(a*n+0)*n+0] = 100 // diagonal ignored
	}
	require.NoError(t, c.GlsFromBls(bls))
	for a := 0; a < 3; a++ {
		assert.Equal(t, float64(a+1), get(c.LS(a, 0)))
		assert.Equal(t, float64(a+1), get(c.LS(a, 1)))
	}

	require.ErrorIs(t, c.GlsFromBls(bls[:5]), couplings.ErrShape)
	bls[1] = math.Inf(1)
	require.ErrorIs(t, c.GlsFromBls(bls), couplings.ErrNonFinite)
}

// TestGettersRejectBadIndices checks that every getter fails on an index
// outside the tensor instead of reading a value.
func TestGettersRejectBadIndices(t *testing.T) {
	c, err := couplings.New(2)
	require.NoError(t, err)

	cases := []struct {
		name string
		get  func() (float64, error)
	}{
		{"Sig axis", func() (float64, error) { return c.Sig(3, 0, 0, 1) }},
		{"Sig particle", func() (float64, error) { return c.Sig(0, 2, 0, 1) }},
		{"SigTau axis", func() (float64, error) { return c.SigTau(0, 0, -1, 1) }},
		{"SigTau particle", func() (float64, error) { return c.SigTau(0, 0, 0, 5) }},
		{"Tau", func() (float64, error) { return c.Tau(0, 2) }},
		{"Coul", func() (float64, error) { return c.Coul(-1, 0) }},
		{"LS axis", func() (float64, error) { return c.LS(3, 0) }},
		{"LS particle", func() (float64, error) { return c.LS(0, 2) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.get()
			require.ErrorIs(t, err, couplings.ErrIndexOutOfRange)
			require.ErrorIs(t, err, couplings.ErrShape)
			require.Zero(t, v)
		})
	}

	require.ErrorIs(t, c.SetSig(0, 2, 0, 0, 1), couplings.ErrIndexOutOfRange)
}
