// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/afdmc/propagator"
)

func newExactCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exact",
		Short: "Evaluate <bra|G|ket> with the exact factorized propagator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cs, err := cfg.BuildCouplings()
			if err != nil {
				return err
			}
			bra, ket, err := cfg.BuildStates()
			if err != nil {
				return err
			}
			v, err := propagator.ExactBracket(bra, ket, cs, cfg.Params())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exact  %.10g\n", v)

			return nil
		},
	}
}
