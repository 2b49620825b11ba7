// SPDX-License-Identifier: MIT
// Package auxfield - functional options for Run.
//
// Defaults:
//   - workers: runtime.GOMAXPROCS(0)
//   - logger: discards everything
//   - metrics: none
//
// Option constructors panic on nonsensical values (programmer error), the
// same contract as any With* setter of this module.

package auxfield

import (
	"io"
	"log/slog"
)

const panicWorkersInvalid = "auxfield: WithWorkers requires n >= 0"

// Option configures Run.
type Option func(*options)

type options struct {
	workers int // 0 ⇒ GOMAXPROCS
	logger  *slog.Logger
	metrics *Metrics
}

func defaultOptions() options {
	return options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithWorkers bounds the number of goroutines evaluating samples; 0 selects
// GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger for run progress. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the prometheus instruments updated by Run.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
