// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/afdmc/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	particles  int
	dt         float64
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "afdmc",
		Short: "Spin-isospin propagator brackets, exact and auxiliary-field sampled",
		Long: `afdmc builds the short-time spin-isospin propagator of a few-nucleon system
from its coupling tensors and evaluates <bra|G|ket> either exactly or by
auxiliary-field sampling with a Gaussian or discrete (RBM) kernel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML run configuration (defaults apply when empty)")
	pf.StringVar(&f.logLevel, "log-level", "", "debug | info | warn | error")
	pf.StringVar(&f.logFormat, "log-format", "", "text | json")
	pf.IntVarP(&f.particles, "particles", "A", 0, "number of nucleons")
	pf.Float64Var(&f.dt, "dt", 0, "imaginary time step")

	root.AddCommand(newInitCmd(), newExactCmd(f), newSampleCmd(f))

	return root
}

// load reads the configuration and applies the flags the user set.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if flags.Changed("dt") {
		cfg.Dt = f.dt
	}
	if flags.Changed("particles") && f.particles != cfg.Particles {
		cfg.Particles = f.particles
		// product states sized to the new particle count
		cfg.States.Bra = repeat("max", f.particles)
		cfg.States.Ket = alternate("up", "down", f.particles)
	}

	return cfg, nil
}

func repeat(name string, n int) []string {
	out := make([]string, max(n, 0))
	for k := range out {
		out[k] = name
	}

	return out
}

func alternate(even, odd string, n int) []string {
	out := repeat(even, n)
	for k := 1; k < len(out); k += 2 {
		out[k] = odd
	}

	return out
}

// newLogger builds the slog handler selected by the configuration.
func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", lc.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(lc.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: %w", lc.Format, config.ErrInvalid)
	}
}
