// SPDX-License-Identifier: MIT

package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/afdmc/parallel"
	"github.com/stretchr/testify/require"
)

func TestMapOrdered(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		got, err := parallel.Map(context.Background(), 100, workers, func(_ context.Context, k int) (int, error) {
			return k * k, nil
		})
		require.NoError(t, err)
		require.Len(t, got, 100)
		for k, v := range got {
			require.Equal(t, k*k, v)
		}
	}
}

func TestMapEmptyAndNegative(t *testing.T) {
	got, err := parallel.Map(context.Background(), 0, 2, func(context.Context, int) (string, error) {
		return "x", nil
	})
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = parallel.Map(context.Background(), -1, 2, func(context.Context, int) (string, error) {
		return "", nil
	})
	require.ErrorIs(t, err, parallel.ErrBadCount)
}

func TestMapBoundedConcurrency(t *testing.T) {
	var running, peak atomic.Int64
	_, err := parallel.Map(context.Background(), 50, 4, func(_ context.Context, k int) (int, error) {
		cur := running.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		running.Add(-1)

		return k, nil
	})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int64(4))
}

func TestMapFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	_, err := parallel.Map(context.Background(), 20, 1, func(_ context.Context, k int) (int, error) {
		if k == 5 {
			return 0, boom
		}

		return k, nil
	})
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "task 5")
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int64
	_, err := parallel.Map(ctx, 10, 2, func(context.Context, int) (int, error) {
		calls.Add(1)

		return 0, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls.Load())
}
