// SPDX-License-Identifier: MIT

// Command afdmc compares sampled propagator brackets against the exact
// propagator for a configured nucleon system.
//
//	afdmc init afdmc.yaml
//	afdmc exact --config afdmc.yaml
//	afdmc sample --config afdmc.yaml --method rbm --samples 5000
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "afdmc:", err)
		os.Exit(1)
	}
}
