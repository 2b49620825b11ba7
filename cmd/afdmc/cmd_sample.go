// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/afdmc/auxfield"
	"github.com/katalvlaran/afdmc/config"
	"github.com/katalvlaran/afdmc/propagator"
)

type sampleFlags struct {
	method     string
	samples    int
	seed       uint64
	offset     int
	workers    int
	metricsOut string
	skipExact  bool
}

func (s *sampleFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = s.method
	}
	if flags.Changed("samples") {
		cfg.Samples = s.samples
	}
	if flags.Changed("seed") {
		cfg.Seed = s.seed
	}
	if flags.Changed("offset") {
		cfg.Offset = s.offset
	}
	if flags.Changed("workers") {
		cfg.Workers = s.workers
	}
	if flags.Changed("metrics-out") {
		cfg.MetricsOut = s.metricsOut
	}
}

func newSampleCmd(f *rootFlags) *cobra.Command {
	s := &sampleFlags{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Estimate <bra|G|ket> by auxiliary-field sampling and compare with the exact value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			s.apply(cmd, cfg)

			return runSample(cmd, cfg, s.skipExact)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&s.method, "method", "m", "gauss", "sampling kernel: gauss | rbm")
	fl.IntVarP(&s.samples, "samples", "n", 0, "number of samples")
	fl.Uint64Var(&s.seed, "seed", 0, "seed of the draw streams")
	fl.IntVar(&s.offset, "offset", 0, "index of the first sample")
	fl.IntVarP(&s.workers, "workers", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	fl.StringVar(&s.metricsOut, "metrics-out", "", "write run metrics to this file (prometheus text format)")
	fl.BoolVar(&s.skipExact, "skip-exact", false, "do not evaluate the exact bracket")

	return cmd
}

func runSample(cmd *cobra.Command, cfg *config.Config, skipExact bool) error {
	rs, err := cfg.RunSpec()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	logger = logger.With("run_id", uuid.NewString())

	reg := prometheus.NewRegistry()
	res, err := auxfield.Run(cmd.Context(), rs,
		auxfield.WithWorkers(cfg.Workers),
		auxfield.WithLogger(logger),
		auxfield.WithMetrics(auxfield.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}
	if cfg.MetricsOut != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %s\n", rs.Sampler.Kernel.Name(), res.Estimate)
	if skipExact {
		return nil
	}
	exact, err := propagator.ExactBracket(rs.Bra, rs.Ket, rs.Couplings, rs.Sampler.Params)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "exact  %.10g\n", exact)
	fmt.Fprintf(out, "dev    %.3g sigma\n", res.Estimate.Deviation(exact))

	return nil
}
