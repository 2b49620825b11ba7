// SPDX-License-Identifier: MIT

// Package parallel runs independent indexed tasks on a bounded pool of
// goroutines.
//
// Map writes the result of task k into slot k, so the output order never
// depends on scheduling. The first error cancels the shared context and is
// returned; tasks that have not started yet are skipped.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrBadCount is returned for a negative task count.
var ErrBadCount = errors.New("parallel: negative task count")

// Map evaluates fn(ctx, k) for k in [0, n) with at most workers goroutines.
// workers ≤ 0 selects runtime.GOMAXPROCS(0).
//
// Errors:
//   - ErrBadCount for n < 0.
//   - the first error returned by fn, or ctx.Err() after cancellation.
func Map[T any](ctx context.Context, n, workers int, fn func(ctx context.Context, k int) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("Map(n=%d): %w", n, ErrBadCount)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]T, n)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := 0; k < n; k++ {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			v, err := fn(gCtx, k)
			if err != nil {
				return fmt.Errorf("task %d: %w", k, err)
			}
			out[k] = v

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped early on a parent cancellation with no task error
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
