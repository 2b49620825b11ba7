// SPDX-License-Identifier: MIT

package auxfield

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/afdmc/couplings"
	"github.com/katalvlaran/afdmc/parallel"
	"github.com/katalvlaran/afdmc/spin"
)

// RunSpec describes one sampling run.
type RunSpec struct {
	Sampler   Sampler
	Bra, Ket  *spin.State
	Couplings *couplings.Couplings
	// Samples is the number of samples N ≥ 1.
	Samples int
	// Seed keys every sample's draw stream.
	Seed uint64
	// Offset is the index of the first sample; a run of N samples at offset K
	// reproduces samples K..K+N−1 of a longer run with the same seed.
	Offset int
}

// Result holds the per-sample brackets, in sample order, and their summary.
type Result struct {
	Samples  []complex128
	Estimate Estimate
}

// validate checks everything that does not depend on the draws.
func (rs RunSpec) validate() error {
	if rs.Samples < 1 {
		return fmt.Errorf("samples=%d: %w", rs.Samples, ErrBadRun)
	}
	if rs.Offset < 0 {
		return fmt.Errorf("offset=%d: %w", rs.Offset, ErrBadRun)
	}
	if rs.Sampler.Kernel == nil {
		return fmt.Errorf("nil kernel: %w", ErrBadRun)
	}
	if err := rs.Sampler.Params.Validate(); err != nil {
		return err
	}
	if rs.Couplings == nil {
		return fmt.Errorf("nil couplings: %w", couplings.ErrShape)
	}
	if err := rs.Couplings.Validate(); err != nil {
		return err
	}
	if rs.Bra == nil || rs.Ket == nil || rs.Bra.Role() != spin.Bra || rs.Ket.Role() != spin.Ket ||
		rs.Bra.Particles() != rs.Couplings.Particles() || rs.Ket.Particles() != rs.Couplings.Particles() {
		return fmt.Errorf("states: %w", spin.ErrShapeMismatch)
	}

	return nil
}

// Run evaluates rs.Samples independent samples in parallel and summarizes them.
//
// Implementation:
//   - Stage 1: validate rs once.
//   - Stage 2: parallel.Map over sample indices; sample k draws from
//     DrawStream(kernel, Seed, Offset+k, AuxCount(A)) and writes slot k.
//   - Stage 3: Summarize.
//
// The result depends only on rs, never on the worker count.
// Errors: ErrBadRun and the validation errors of the inputs, the first
// sample error, or ctx.Err() after cancellation.
func Run(ctx context.Context, rs RunSpec, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := rs.validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	kernel := rs.Sampler.Kernel.Name()
	n := AuxCount(rs.Couplings.Particles())
	log := o.logger.With("kernel", kernel, "particles", rs.Couplings.Particles())

	log.InfoContext(ctx, "sampling started",
		"samples", rs.Samples, "seed", rs.Seed, "offset", rs.Offset, "dt", rs.Sampler.Params.Dt, "draws_per_sample", n)
	start := time.Now()

	samples, err := parallel.Map(ctx, rs.Samples, o.workers, func(ctx context.Context, k int) (complex128, error) {
		idx := rs.Offset + k
		draws := DrawStream(rs.Sampler.Kernel, rs.Seed, idx, n)
		t0 := time.Now()
		v, err := rs.Sampler.Bracket(rs.Bra, rs.Ket, rs.Couplings, draws)
		o.metrics.observeSample(kernel, time.Since(t0).Seconds(), err)
		if err != nil {
			log.WarnContext(ctx, "sample failed", "sample", idx, "error", err)

			return 0, err
		}

		return v, nil
	})
	o.metrics.observeRun(kernel, err)
	if err != nil {
		log.ErrorContext(ctx, "sampling failed", "error", err, "elapsed", time.Since(start))

		return nil, fmt.Errorf("Run: %w", err)
	}

	est := Summarize(samples)
	log.InfoContext(ctx, "sampling finished",
		"mean_re", real(est.Mean), "mean_im", imag(est.Mean), "stderr", est.StdErr, "elapsed", time.Since(start))

	return &Result{Samples: samples, Estimate: est}, nil
}
